package genai

import (
	"ovgenai/internal/native"
)

// WhisperPerfMetrics is an owned snapshot of a transcription's performance
// counters.
type WhisperPerfMetrics struct {
	h *native.Handle
}

// FeaturesExtractionDuration returns the mean and standard deviation, in
// milliseconds, of the mel feature extraction stage.
func (m *WhisperPerfMetrics) FeaturesExtractionDuration() (mean, std float32, err error) {
	if m.h.IsInvalid() {
		return 0, 0, ErrClosed("whisper perf metrics")
	}
	defer m.h.KeepAlive()
	return native.WhisperPerfMetricsFeaturesExtraction(m.h.Pointer())
}

// Close releases the native snapshot. Safe to call more than once.
func (m *WhisperPerfMetrics) Close() error {
	m.h.Release()
	return nil
}

// LLMPerfMetrics is an owned snapshot of a generation's performance
// counters. The wrapper ABI exposes no getters for it yet; the snapshot
// exists so its lifetime can be managed like every other native object.
type LLMPerfMetrics struct {
	h *native.Handle
}

// Close releases the native snapshot. Safe to call more than once.
func (m *LLMPerfMetrics) Close() error {
	m.h.Release()
	return nil
}
