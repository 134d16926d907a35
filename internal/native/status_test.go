package native

import "testing"

func TestStatusErr(t *testing.T) {
	if err := statusErr("op", StatusOK); err != nil {
		t.Fatalf("StatusOK produced error: %v", err)
	}
	err := statusErr("whisper_pipeline_generate", StatusRequestBusy)
	if err == nil {
		t.Fatalf("non-OK status produced nil error")
	}
	if got := err.Error(); got != "whisper_pipeline_generate: request busy" {
		t.Fatalf("unexpected message: %q", got)
	}
	if !IsRequestBusy(err) {
		t.Fatalf("IsRequestBusy false for busy error")
	}
	if IsCancelled(err) || IsOutOfBounds(err) || IsInvalidParam(err) {
		t.Fatalf("wrong predicate matched busy error")
	}
	if StatusOf(err) != StatusRequestBusy {
		t.Fatalf("StatusOf = %v, want request busy", StatusOf(err))
	}
}

func TestStatusPredicates(t *testing.T) {
	cases := []struct {
		status Status
		pred   func(error) bool
	}{
		{StatusInferCancelled, IsCancelled},
		{StatusOutOfBounds, IsOutOfBounds},
		{StatusInvalidCParam, IsInvalidParam},
	}
	for _, c := range cases {
		if !c.pred(statusErr("op", c.status)) {
			t.Fatalf("predicate did not match %v", c.status)
		}
	}
}

func TestDependencyUnavailable(t *testing.T) {
	err := ErrDependencyUnavailable("native runtime missing")
	if !IsDependencyUnavailable(err) {
		t.Fatalf("IsDependencyUnavailable false")
	}
	if IsDependencyUnavailable(statusErr("op", StatusGeneralError)) {
		t.Fatalf("IsDependencyUnavailable matched a status error")
	}
}
