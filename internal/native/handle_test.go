package native

import (
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// countingFree returns a FreeFunc that records invocations and the last
// pointer it was handed.
func countingFree(frees *atomic.Int64, last *atomic.Uintptr) FreeFunc {
	return func(p uintptr) {
		frees.Add(1)
		if last != nil {
			last.Store(p)
		}
	}
}

func TestRelease_OwningFreesExactlyOnce(t *testing.T) {
	var frees atomic.Int64
	var last atomic.Uintptr
	h := Acquire(0xABCD, KindLLMPipeline, true, countingFree(&frees, &last))
	if h.IsInvalid() {
		t.Fatalf("handle with non-null pointer reported invalid")
	}
	if !h.Release() {
		t.Fatalf("first Release returned false")
	}
	if got := frees.Load(); got != 1 {
		t.Fatalf("free count = %d, want 1", got)
	}
	if got := last.Load(); got != 0xABCD {
		t.Fatalf("freed pointer = %#x, want 0xabcd", got)
	}
	if !h.IsInvalid() {
		t.Fatalf("handle still valid after release")
	}
	if h.Release() {
		t.Fatalf("second Release returned true")
	}
	if got := frees.Load(); got != 1 {
		t.Fatalf("free count after second release = %d, want 1", got)
	}
}

func TestRelease_Idempotent(t *testing.T) {
	var frees atomic.Int64
	h := Acquire(0x1000, KindWhisperResults, true, countingFree(&frees, nil))
	for i := 0; i < 5; i++ {
		h.Release()
	}
	if got := frees.Load(); got != 1 {
		t.Fatalf("free count = %d, want 1 after 5 releases", got)
	}
}

func TestRelease_BorrowedNeverFrees(t *testing.T) {
	var frees atomic.Int64
	h := Acquire(0x1234, KindWhisperChunk, false, countingFree(&frees, nil))
	if h.IsInvalid() {
		t.Fatalf("borrowed handle reported invalid before release")
	}
	for i := 0; i < 3; i++ {
		if h.Release() {
			t.Fatalf("Release on borrowed handle returned true")
		}
	}
	if got := frees.Load(); got != 0 {
		t.Fatalf("free count = %d, want 0 for borrowed handle", got)
	}
	if !h.IsInvalid() {
		t.Fatalf("borrowed handle still valid after release")
	}
}

func TestRelease_NullPointer(t *testing.T) {
	var frees atomic.Int64
	h := Acquire(0, KindLLMConfig, true, countingFree(&frees, nil))
	if !h.IsInvalid() {
		t.Fatalf("null handle reported valid")
	}
	if h.Release() {
		t.Fatalf("Release on null handle returned true")
	}
	if got := frees.Load(); got != 0 {
		t.Fatalf("free count = %d, want 0 for null handle", got)
	}
}

func TestBorrow_NoFreeFunc(t *testing.T) {
	h := Borrow(0x8888, KindWhisperChunk)
	if h.IsInvalid() {
		t.Fatalf("borrowed handle invalid")
	}
	if got := h.Kind(); got != KindWhisperChunk {
		t.Fatalf("Kind() = %q, want %q", got, KindWhisperChunk)
	}
	if h.Release() {
		t.Fatalf("Release on Borrow returned true")
	}
}

func TestRelease_ConcurrentSingleFree(t *testing.T) {
	for iter := 0; iter < 100; iter++ {
		var frees atomic.Int64
		var wins atomic.Int64
		h := Acquire(0xD00D, KindWhisperPipe, true, countingFree(&frees, nil))

		const n = 16
		start := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(n)
		for i := 0; i < n; i++ {
			go func() {
				defer wg.Done()
				<-start
				if h.Release() {
					wins.Add(1)
				}
			}()
		}
		close(start)
		wg.Wait()

		if got := frees.Load(); got != 1 {
			t.Fatalf("iter %d: free count = %d, want 1", iter, got)
		}
		if got := wins.Load(); got != 1 {
			t.Fatalf("iter %d: %d releases returned true, want 1", iter, got)
		}
	}
}

func TestFinalizer_ReclaimsUnreachableHandle(t *testing.T) {
	var frees atomic.Int64
	func() {
		_ = Acquire(0xBEEF, KindLLMResults, true, countingFree(&frees, nil))
	}()
	deadline := time.Now().Add(5 * time.Second)
	for frees.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("finalizer never freed the dropped handle")
		}
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}
	if got := frees.Load(); got != 1 {
		t.Fatalf("free count = %d, want 1", got)
	}
}

func TestKeepAlive_PinsHandleDuringNativeCall(t *testing.T) {
	var frees atomic.Int64
	// Mimics a results accessor: the pointer is extracted, the handle has no
	// later use, and the native call is still running. KeepAlive must hold
	// the finalizer off until the call returns.
	func() {
		h := Acquire(0xCAFE, KindWhisperResults, true, countingFree(&frees, nil))
		defer h.KeepAlive()
		ptr := h.Pointer()
		for i := 0; i < 10; i++ {
			runtime.GC()
			time.Sleep(time.Millisecond)
		}
		if got := frees.Load(); got != 0 {
			t.Errorf("free ran while pointer %#x was in flight (free count = %d)", ptr, got)
		}
	}()
	// Once the accessor returns the handle is collectable again.
	deadline := time.Now().Add(5 * time.Second)
	for frees.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("finalizer never reclaimed the handle after the call returned")
		}
		runtime.GC()
		time.Sleep(10 * time.Millisecond)
	}
}

func TestFinalizer_NoDoubleFreeAfterExplicitRelease(t *testing.T) {
	var frees atomic.Int64
	func() {
		h := Acquire(0xF00D, KindLLMResults, true, countingFree(&frees, nil))
		if !h.Release() {
			t.Fatalf("explicit Release failed")
		}
	}()
	// Give any stray finalizer a chance to run before counting.
	for i := 0; i < 5; i++ {
		runtime.GC()
		time.Sleep(5 * time.Millisecond)
	}
	if got := frees.Load(); got != 1 {
		t.Fatalf("free count = %d, want 1 (finalizer must not free again)", got)
	}
}
