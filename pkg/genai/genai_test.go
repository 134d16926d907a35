package genai

import (
	"context"
	"testing"

	"ovgenai/internal/native"
)

func TestNewPipeline_EmptyPath(t *testing.T) {
	if _, err := NewLLMPipeline("", "CPU"); !IsEmptyInput(err) {
		t.Fatalf("NewLLMPipeline(\"\") err = %v, want empty-input", err)
	}
	if _, err := NewWhisperPipeline("  ", "CPU"); !IsEmptyInput(err) {
		t.Fatalf("NewWhisperPipeline blank path err = %v, want empty-input", err)
	}
}

func TestNewPipeline_NativeRuntimeMissing(t *testing.T) {
	if native.Built {
		t.Skip("built with the native runtime")
	}
	if _, err := NewLLMPipeline("/models/llm", "CPU"); !native.IsDependencyUnavailable(err) {
		t.Fatalf("NewLLMPipeline err = %v, want dependency-unavailable", err)
	}
	if _, err := NewWhisperPipeline("/models/whisper", "CPU"); !native.IsDependencyUnavailable(err) {
		t.Fatalf("NewWhisperPipeline err = %v, want dependency-unavailable", err)
	}
}

// closedLLM builds a pipeline whose handle is already terminal, without
// touching the native runtime.
func closedLLM() *LLMPipeline {
	return &LLMPipeline{h: native.Acquire(0, native.KindLLMPipeline, true, nil)}
}

func closedWhisper() *WhisperPipeline {
	return &WhisperPipeline{h: native.Acquire(0, native.KindWhisperPipe, true, nil)}
}

func TestLLMPipeline_UseAfterClose(t *testing.T) {
	p := closedLLM()
	if _, err := p.Generate(context.Background(), "hello", nil); !IsClosed(err) {
		t.Fatalf("Generate err = %v, want closed", err)
	}
	if err := p.StartChat(); !IsClosed(err) {
		t.Fatalf("StartChat err = %v, want closed", err)
	}
	if err := p.FinishChat(); !IsClosed(err) {
		t.Fatalf("FinishChat err = %v, want closed", err)
	}
	if err := p.SetGenerationConfig(&GenerationConfig{}); !IsClosed(err) {
		t.Fatalf("SetGenerationConfig err = %v, want closed", err)
	}
	if _, err := p.MaxNewTokens(); !IsClosed(err) {
		t.Fatalf("MaxNewTokens err = %v, want closed", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestLLMPipeline_ContextAlreadyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := closedLLM()
	if _, err := p.Generate(ctx, "hello", nil); err != context.Canceled {
		t.Fatalf("Generate err = %v, want context.Canceled", err)
	}
}

func TestLLMPipeline_EmptyPrompt(t *testing.T) {
	p := closedLLM()
	if _, err := p.Generate(context.Background(), "", nil); !IsEmptyInput(err) {
		t.Fatalf("Generate err = %v, want empty-input", err)
	}
}

func TestWhisperPipeline_UseAfterClose(t *testing.T) {
	p := closedWhisper()
	if _, err := p.Transcribe(context.Background(), []float32{0}, nil); !IsClosed(err) {
		t.Fatalf("Transcribe err = %v, want closed", err)
	}
	if err := p.SetWhisperConfig(&WhisperConfig{}); !IsClosed(err) {
		t.Fatalf("SetWhisperConfig err = %v, want closed", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestWhisperPipeline_EmptyAudio(t *testing.T) {
	p := closedWhisper()
	if _, err := p.Transcribe(context.Background(), nil, nil); !IsEmptyInput(err) {
		t.Fatalf("Transcribe err = %v, want empty-input", err)
	}
}

func TestDecodedResults_UseAfterClose(t *testing.T) {
	r := newDecodedResults(0)
	if _, err := r.Text(); !IsClosed(err) {
		t.Fatalf("Text err = %v, want closed", err)
	}
	if _, err := r.PerfMetrics(); !IsClosed(err) {
		t.Fatalf("PerfMetrics err = %v, want closed", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestWhisperResults_UseAfterClose(t *testing.T) {
	r := newWhisperResults(0)
	if _, err := r.Texts(); !IsClosed(err) {
		t.Fatalf("Texts err = %v, want closed", err)
	}
	if _, err := r.Chunks(); !IsClosed(err) {
		t.Fatalf("Chunks err = %v, want closed", err)
	}
	if _, err := r.Scores(); !IsClosed(err) {
		t.Fatalf("Scores err = %v, want closed", err)
	}
	if _, err := r.PerfMetrics(); !IsClosed(err) {
		t.Fatalf("PerfMetrics err = %v, want closed", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestChunk_CloseIsNoop(t *testing.T) {
	c := Chunk{h: native.Borrow(0x10, native.KindWhisperChunk), Text: "hi"}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestPerfMetrics_UseAfterClose(t *testing.T) {
	m := &WhisperPerfMetrics{h: native.Acquire(0, native.KindWhisperMetrics, true, nil)}
	if _, _, err := m.FeaturesExtractionDuration(); !IsClosed(err) {
		t.Fatalf("FeaturesExtractionDuration err = %v, want closed", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	l := &LLMPerfMetrics{h: native.Acquire(0, native.KindLLMMetrics, true, nil)}
	if err := l.Close(); err != nil {
		t.Fatalf("llm metrics Close: %v", err)
	}
}

func TestErrorPredicates(t *testing.T) {
	if !IsClosed(ErrClosed("x")) || IsClosed(nil) {
		t.Fatalf("IsClosed misbehaved")
	}
	if !IsEmptyInput(ErrEmptyInput("x")) || IsEmptyInput(ErrClosed("x")) {
		t.Fatalf("IsEmptyInput misbehaved")
	}
}
