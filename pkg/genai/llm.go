package genai

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"ovgenai/internal/native"
)

// LLMPipeline wraps a native text-generation pipeline. The native object is
// not reentrant, so all calls serialize on an internal mutex; use one
// pipeline per concurrent stream of requests.
type LLMPipeline struct {
	h      *native.Handle
	device string

	mu     sync.Mutex
	inChat bool
}

// NewLLMPipeline loads the exported model found at modelsPath onto the given
// device ("CPU", "GPU", "NPU").
func NewLLMPipeline(modelsPath, device string) (*LLMPipeline, error) {
	if strings.TrimSpace(modelsPath) == "" {
		return nil, ErrEmptyInput("models path")
	}
	start := time.Now()
	p, err := native.LLMPipelineCreate(modelsPath, device)
	if err != nil {
		return nil, err
	}
	log.Info().
		Str("models", modelsPath).
		Str("device", device).
		Dur("took", time.Since(start)).
		Msg("llm: pipeline loaded")
	return &LLMPipeline{
		h:      native.Acquire(p, native.KindLLMPipeline, true, native.LLMPipelineFree),
		device: device,
	}, nil
}

// Generate runs one prompt through the pipeline and returns its decoded
// results, which the caller must Close. cfg may be nil to use the pipeline's
// current generation config. The native call itself is not cancelable; ctx
// is honored before it is issued.
func (p *LLMPipeline) Generate(ctx context.Context, prompt string, cfg *GenerationConfig) (*DecodedResults, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if prompt == "" {
		return nil, ErrEmptyInput("prompt")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.h.IsInvalid() {
		return nil, ErrClosed("llm pipeline")
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
	res, err := native.LLMPipelineGenerate(p.h.Pointer(), prompt, cfgPtr)
	if err != nil {
		generateErrors.WithLabelValues("llm").Inc()
		return nil, err
	}
	generateDuration.WithLabelValues("llm").Observe(time.Since(start).Seconds())
	log.Debug().
		Int("prompt_len", len(prompt)).
		Dur("took", time.Since(start)).
		Msg("llm: generate done")
	return newDecodedResults(res), nil
}

// StartChat switches the pipeline into chat mode: subsequent Generate calls
// share the native KV-cache history until FinishChat.
func (p *LLMPipeline) StartChat() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.h.IsInvalid() {
		return ErrClosed("llm pipeline")
	}
	if p.inChat {
		return nil
	}
	if err := native.LLMPipelineStartChat(p.h.Pointer()); err != nil {
		return err
	}
	p.inChat = true
	return nil
}

// FinishChat leaves chat mode and drops the accumulated history.
func (p *LLMPipeline) FinishChat() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.h.IsInvalid() {
		return ErrClosed("llm pipeline")
	}
	if !p.inChat {
		return nil
	}
	if err := native.LLMPipelineFinishChat(p.h.Pointer()); err != nil {
		return err
	}
	p.inChat = false
	return nil
}

// SetGenerationConfig installs cfg as the pipeline's default for Generate
// calls that pass nil.
func (p *LLMPipeline) SetGenerationConfig(cfg *GenerationConfig) error {
	if cfg == nil {
		return ErrEmptyInput("generation config")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.h.IsInvalid() {
		return ErrClosed("llm pipeline")
	}
	ch, err := cfg.bind()
	if err != nil {
		return err
	}
	defer ch.Release()
	return native.LLMPipelineSetGenerationConfig(p.h.Pointer(), ch.Pointer())
}

// MaxNewTokens reads the pipeline's current default token budget.
func (p *LLMPipeline) MaxNewTokens() (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.h.IsInvalid() {
		return 0, ErrClosed("llm pipeline")
	}
	cp, err := native.LLMPipelineGetGenerationConfig(p.h.Pointer())
	if err != nil {
		return 0, err
	}
	ch := native.Acquire(cp, native.KindLLMConfig, true, native.GenerationConfigFree)
	defer ch.Release()
	return native.GenerationConfigMaxNewTokens(ch.Pointer())
}

// Close releases the native pipeline. Safe to call more than once.
func (p *LLMPipeline) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.h.Release() {
		log.Debug().Str("kind", string(p.h.Kind())).Str("device", p.device).Msg("llm: pipeline released")
	}
	return nil
}
