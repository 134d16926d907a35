package genai

import (
	"ovgenai/internal/native"
)

// DecodedResults holds the native output of one LLM generate call.
type DecodedResults struct {
	h *native.Handle
}

func newDecodedResults(ptr uintptr) *DecodedResults {
	return &DecodedResults{h: native.Acquire(ptr, native.KindLLMResults, true, native.DecodedResultsFree)}
}

// Text returns the generated text.
func (r *DecodedResults) Text() (string, error) {
	if r.h.IsInvalid() {
		return "", ErrClosed("decoded results")
	}
	defer r.h.KeepAlive()
	return native.DecodedResultsText(r.h.Pointer())
}

// PerfMetrics snapshots the generation's performance counters into a new
// native object owned by the returned wrapper; Close it independently of the
// results.
func (r *DecodedResults) PerfMetrics() (*LLMPerfMetrics, error) {
	if r.h.IsInvalid() {
		return nil, ErrClosed("decoded results")
	}
	defer r.h.KeepAlive()
	p, err := native.DecodedResultsPerfMetrics(r.h.Pointer())
	if err != nil {
		return nil, err
	}
	return &LLMPerfMetrics{h: native.Acquire(p, native.KindLLMMetrics, true, native.LLMPerfMetricsFree)}, nil
}

// Close releases the native results. Safe to call more than once.
func (r *DecodedResults) Close() error {
	r.h.Release()
	return nil
}

// WhisperResults holds the native output of one transcription.
type WhisperResults struct {
	h *native.Handle
}

func newWhisperResults(ptr uintptr) *WhisperResults {
	return &WhisperResults{h: native.Acquire(ptr, native.KindWhisperResults, true, native.WhisperResultsFree)}
}

// Texts returns every decoded text variant (one per beam/sequence).
func (r *WhisperResults) Texts() ([]string, error) {
	if r.h.IsInvalid() {
		return nil, ErrClosed("whisper results")
	}
	defer r.h.KeepAlive()
	n, err := native.WhisperResultsTextCount(r.h.Pointer())
	if err != nil {
		return nil, err
	}
	texts := make([]string, 0, n)
	for i := 0; i < n; i++ {
		t, err := native.WhisperResultsTextAt(r.h.Pointer(), i)
		if err != nil {
			return nil, err
		}
		texts = append(texts, t)
	}
	return texts, nil
}

// Text returns the first decoded variant, or "" when there is none.
func (r *WhisperResults) Text() (string, error) {
	texts, err := r.Texts()
	if err != nil {
		return "", err
	}
	if len(texts) == 0 {
		return "", nil
	}
	return texts[0], nil
}

// Chunk is a time-aligned transcription segment. Its text memory belongs to
// the results object it came from; the chunk's handle is a borrowed view and
// never frees anything.
type Chunk struct {
	h         *native.Handle
	StartTime float32 // seconds
	EndTime   float32 // seconds
	Text      string
}

// Close invalidates the view. It makes no native call.
func (c *Chunk) Close() error {
	c.h.Release()
	return nil
}

// Chunks returns the time-aligned segments. Only populated when the
// transcription ran with ReturnTimestamps.
func (r *WhisperResults) Chunks() ([]Chunk, error) {
	if r.h.IsInvalid() {
		return nil, ErrClosed("whisper results")
	}
	defer r.h.KeepAlive()
	n, err := native.WhisperResultsChunkCount(r.h.Pointer())
	if err != nil {
		return nil, err
	}
	chunks := make([]Chunk, 0, n)
	for i := 0; i < n; i++ {
		rc, err := native.WhisperResultsChunkAt(r.h.Pointer(), i)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, Chunk{
			h:         native.Borrow(r.h.Pointer(), native.KindWhisperChunk),
			StartTime: rc.StartTime,
			EndTime:   rc.EndTime,
			Text:      rc.Text,
		})
	}
	return chunks, nil
}

// Scores returns the per-sequence generation scores, one per text variant.
func (r *WhisperResults) Scores() ([]float32, error) {
	if r.h.IsInvalid() {
		return nil, ErrClosed("whisper results")
	}
	defer r.h.KeepAlive()
	n, err := native.WhisperResultsTextCount(r.h.Pointer())
	if err != nil {
		return nil, err
	}
	// The ABI has no score count query; scores are per returned sequence,
	// so the text count bounds the native scores vector one-to-one.
	return native.WhisperResultsScores(r.h.Pointer(), n)
}

// PerfMetrics snapshots the transcription's performance counters; Close the
// returned wrapper independently of the results.
func (r *WhisperResults) PerfMetrics() (*WhisperPerfMetrics, error) {
	if r.h.IsInvalid() {
		return nil, ErrClosed("whisper results")
	}
	defer r.h.KeepAlive()
	p, err := native.WhisperResultsPerfMetrics(r.h.Pointer())
	if err != nil {
		return nil, err
	}
	return &WhisperPerfMetrics{h: native.Acquire(p, native.KindWhisperMetrics, true, native.WhisperPerfMetricsFree)}, nil
}

// Close releases the native results. Chunk views handed out earlier must not
// be read afterwards. Safe to call more than once.
func (r *WhisperResults) Close() error {
	r.h.Release()
	return nil
}
