package genai

import (
	"ovgenai/internal/native"
)

// GenerationConfig carries LLM sampling parameters. Zero values leave the
// native defaults untouched, mirroring how unset fields behave in the
// underlying library.
type GenerationConfig struct {
	MaxNewTokens      uint64
	MaxLength         uint64
	Temperature       float32
	TopP              float32
	TopK              uint64
	DoSample          bool
	RepetitionPenalty float32
	PresencePenalty   float32
	FrequencyPenalty  float32
	StopStrings       []string

	// JSON, when non-empty, seeds the native config from a generation_config
	// JSON document before the fields above are applied on top.
	JSON string
}

// bind materializes the config as a short-lived native object. The returned
// handle owns it; callers release it once the native call that consumed it
// returns.
func (c *GenerationConfig) bind() (*native.Handle, error) {
	var (
		p   uintptr
		err error
	)
	if c.JSON != "" {
		p, err = native.GenerationConfigFromJSON(c.JSON)
	} else {
		p, err = native.GenerationConfigCreate()
	}
	if err != nil {
		return nil, err
	}
	h := native.Acquire(p, native.KindLLMConfig, true, native.GenerationConfigFree)

	apply := func(e error) bool {
		if e != nil {
			err = e
		}
		return e == nil
	}
	ok := true
	if c.MaxNewTokens > 0 {
		ok = ok && apply(native.GenerationConfigSetMaxNewTokens(p, c.MaxNewTokens))
	}
	if c.MaxLength > 0 {
		ok = ok && apply(native.GenerationConfigSetMaxLength(p, c.MaxLength))
	}
	if c.Temperature > 0 {
		ok = ok && apply(native.GenerationConfigSetTemperature(p, c.Temperature))
	}
	if c.TopP > 0 {
		ok = ok && apply(native.GenerationConfigSetTopP(p, c.TopP))
	}
	if c.TopK > 0 {
		ok = ok && apply(native.GenerationConfigSetTopK(p, c.TopK))
	}
	if c.DoSample {
		ok = ok && apply(native.GenerationConfigSetDoSample(p, true))
	}
	if c.RepetitionPenalty > 0 {
		ok = ok && apply(native.GenerationConfigSetRepetitionPenalty(p, c.RepetitionPenalty))
	}
	if c.PresencePenalty != 0 {
		ok = ok && apply(native.GenerationConfigSetPresencePenalty(p, c.PresencePenalty))
	}
	if c.FrequencyPenalty != 0 {
		ok = ok && apply(native.GenerationConfigSetFrequencyPenalty(p, c.FrequencyPenalty))
	}
	if len(c.StopStrings) > 0 {
		ok = ok && apply(native.GenerationConfigSetStopStrings(p, c.StopStrings))
	}
	if ok {
		ok = apply(native.GenerationConfigValidate(p))
	}
	if !ok {
		h.Release()
		return nil, err
	}
	return h, nil
}

// WhisperConfig carries speech-to-text decoding parameters. Zero values
// leave the native defaults untouched.
type WhisperConfig struct {
	// Language is a token like "<|en|>", or empty for auto-detection.
	Language string
	// Task is "transcribe" or "translate".
	Task                     string
	ReturnTimestamps         bool
	InitialPrompt            string
	Hotwords                 string
	MaxInitialTimestampIndex uint64
	DecoderStartTokenID      int64
	SuppressTokens           []int64
	BeginSuppressTokens      []int64
}

func (c *WhisperConfig) bind() (*native.Handle, error) {
	p, err := native.WhisperConfigCreate()
	if err != nil {
		return nil, err
	}
	h := native.Acquire(p, native.KindWhisperConfig, true, native.WhisperConfigFree)

	apply := func(e error) bool {
		if e != nil {
			err = e
		}
		return e == nil
	}
	ok := true
	if c.Language != "" {
		ok = ok && apply(native.WhisperConfigSetLanguage(p, c.Language))
	}
	if c.Task != "" {
		ok = ok && apply(native.WhisperConfigSetTask(p, c.Task))
	}
	if c.ReturnTimestamps {
		ok = ok && apply(native.WhisperConfigSetReturnTimestamps(p, true))
	}
	if c.InitialPrompt != "" {
		ok = ok && apply(native.WhisperConfigSetInitialPrompt(p, c.InitialPrompt))
	}
	if c.Hotwords != "" {
		ok = ok && apply(native.WhisperConfigSetHotwords(p, c.Hotwords))
	}
	if c.MaxInitialTimestampIndex > 0 {
		ok = ok && apply(native.WhisperConfigSetMaxInitialTimestampIndex(p, c.MaxInitialTimestampIndex))
	}
	if c.DecoderStartTokenID != 0 {
		ok = ok && apply(native.WhisperConfigSetDecoderStartTokenID(p, c.DecoderStartTokenID))
	}
	if len(c.SuppressTokens) > 0 {
		ok = ok && apply(native.WhisperConfigSetSuppressTokens(p, c.SuppressTokens))
	}
	if len(c.BeginSuppressTokens) > 0 {
		ok = ok && apply(native.WhisperConfigSetBeginSuppressTokens(p, c.BeginSuppressTokens))
	}
	if !ok {
		h.Release()
		return nil, err
	}
	return h, nil
}
