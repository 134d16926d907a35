package genai

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"ovgenai/internal/native"
)

// SampleRate is the only input rate the whisper models accept.
const SampleRate = 16000

// WhisperPipeline wraps a native speech-to-text pipeline. Calls serialize on
// an internal mutex; the native object is not reentrant.
type WhisperPipeline struct {
	h      *native.Handle
	device string

	mu sync.Mutex
}

// NewWhisperPipeline loads the exported whisper model found at modelsPath
// onto the given device.
func NewWhisperPipeline(modelsPath, device string) (*WhisperPipeline, error) {
	if strings.TrimSpace(modelsPath) == "" {
		return nil, ErrEmptyInput("models path")
	}
	start := time.Now()
	p, err := native.WhisperPipelineCreate(modelsPath, device)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("models", modelsPath).
		Str("device", device).
		Dur("took", time.Since(start)).
		Msg("whisper: pipeline loaded")
	return &WhisperPipeline{
		h:      native.Acquire(p, native.KindWhisperPipe, true, native.WhisperPipelineFree),
		device: device,
	}, nil
}

// Transcribe decodes mono float32 PCM at SampleRate and returns the results,
// which the caller must Close. cfg may be nil for the pipeline's current
// config. The native call is not cancelable; ctx is honored before it is
// issued.
func (p *WhisperPipeline) Transcribe(ctx context.Context, samples []float32, cfg *WhisperConfig) (*WhisperResults, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, ErrEmptyInput("audio")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.h.IsInvalid() {
		return nil, ErrClosed("whisper pipeline")
	}

	var cfgPtr uintptr
	if cfg != nil {
		ch, err := cfg.bind()
		if err != nil {
			return nil, err
		}
		defer ch.Release()
		cfgPtr = ch.Pointer()
	}

	start := time.Now()
	res, err := native.WhisperPipelineGenerate(p.h.Pointer(), samples, cfgPtr)
	if err != nil {
		generateErrors.WithLabelValues("whisper").Inc()
		return nil, err
	}
	generateDuration.WithLabelValues("whisper").Observe(time.Since(start).Seconds())
	log.Debug().
		Float64("audio_seconds", float64(len(samples))/SampleRate).
		Dur("took", time.Since(start)).
		Msg("whisper: transcribe done")
	return newWhisperResults(res), nil
}

// SetWhisperConfig installs cfg as the pipeline's default for Transcribe
// calls that pass nil.
func (p *WhisperPipeline) SetWhisperConfig(cfg *WhisperConfig) error {
	if cfg == nil {
		return ErrEmptyInput("whisper config")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.h.IsInvalid() {
		return ErrClosed("whisper pipeline")
	}
	ch, err := cfg.bind()
	if err != nil {
		return err
	}
	defer ch.Release()
	return native.WhisperPipelineSetGenerationConfig(p.h.Pointer(), ch.Pointer())
}

// Close releases the native pipeline. Safe to call more than once.
func (p *WhisperPipeline) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.h.Release() {
		log.Debug().Str("kind", string(p.h.Kind())).Str("device", p.device).Msg("whisper: pipeline released")
	}
	return nil
}
