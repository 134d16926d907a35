package native

import (
	"runtime"
	"sync/atomic"
)

// Kind identifies which native resource a Handle holds, so the matching free
// function and telemetry labels always line up with the pointer.
type Kind string

const (
	KindLLMPipeline    Kind = "llm_pipeline"
	KindLLMConfig      Kind = "llm_generation_config"
	KindLLMResults     Kind = "llm_decoded_results"
	KindLLMMetrics     Kind = "llm_perf_metrics"
	KindWhisperPipe    Kind = "whisper_pipeline"
	KindWhisperConfig  Kind = "whisper_generation_config"
	KindWhisperResults Kind = "whisper_decoded_results"
	KindWhisperChunk   Kind = "whisper_result_chunk"
	KindWhisperMetrics Kind = "whisper_perf_metrics"
)

// FreeFunc releases one previously acquired native pointer. The native free
// functions must not be called twice on the same pointer; Handle is the sole
// caller and upholds that contract.
type FreeFunc func(uintptr)

// Handle wraps one opaque native pointer and guarantees its free function
// runs at most once, whether release comes from an explicit Close, from the
// finalizer, or from both racing.
//
// Pointers are stored as uintptr rather than unsafe.Pointer: they address
// native heap memory the Go GC must never scan or relocate.
type Handle struct {
	ptr      uintptr
	kind     Kind
	owns     bool
	free     FreeFunc
	released atomic.Bool
}

// Acquire adopts a pointer produced by a native acquisition call. It makes no
// native call itself. A zero pointer yields an immediately invalid handle.
// Owning handles get a finalizer as a safety net behind explicit release;
// borrowed handles (owns=false) observe memory owned elsewhere and never free.
func Acquire(ptr uintptr, kind Kind, owns bool, free FreeFunc) *Handle {
	h := &Handle{ptr: ptr, kind: kind, owns: owns, free: free}
	if ptr == 0 {
		return h
	}
	handlesOpen.WithLabelValues(string(kind)).Inc()
	// Borrowed handles free nothing, but still get the finalizer so the
	// open-handles gauge stays honest for views nobody closes.
	runtime.SetFinalizer(h, func(h *Handle) {
		if h.Release() {
			finalizerReclaims.WithLabelValues(string(h.kind)).Inc()
		}
	})
	return h
}

// Borrow is Acquire for non-owning views over memory owned by a longer-lived
// handle.
func Borrow(ptr uintptr, kind Kind) *Handle {
	return Acquire(ptr, kind, false, nil)
}

// IsInvalid reports whether the pointer may no longer be passed to native
// calls: either it was never set or the handle has been released.
func (h *Handle) IsInvalid() bool {
	return h.ptr == 0 || h.released.Load()
}

// Pointer returns the raw native pointer. Callers must check IsInvalid first
// and keep the handle reachable across any native call made with the returned
// value (see KeepAlive); the handle does not guard native calls made with a
// stale pointer.
func (h *Handle) Pointer() uintptr { return h.ptr }

// KeepAlive marks the handle reachable at the point of the call. Methods
// whose last use of the handle is the Pointer call itself must defer it, or
// the finalizer may free the native object while the extracted pointer is
// still in flight.
func (h *Handle) KeepAlive() { runtime.KeepAlive(h) }

// Kind returns the resource kind this handle was acquired for.
func (h *Handle) Kind() Kind { return h.kind }

// Release transitions the handle to its terminal invalid state. It returns
// true only when it invoked the native free function, i.e. for the single
// winning call on an owning, valid handle. All other calls, including
// concurrent ones and repeats, are no-ops returning false.
func (h *Handle) Release() bool {
	if h.ptr == 0 {
		return false
	}
	// CAS so that two racing callers (explicit close vs finalizer) cannot
	// both observe the valid state and double-free.
	if !h.released.CompareAndSwap(false, true) {
		return false
	}
	handlesOpen.WithLabelValues(string(h.kind)).Dec()
	if !h.owns || h.free == nil {
		return false
	}
	h.free(h.ptr)
	nativeFrees.WithLabelValues(string(h.kind)).Inc()
	runtime.SetFinalizer(h, nil)
	return true
}
