package native

import "fmt"

// Status mirrors the ov_status_e codes returned by the wrapper library.
type Status int32

const (
	StatusOK                  Status = 0
	StatusGeneralError        Status = -1
	StatusNotImplemented      Status = -2
	StatusNetworkNotLoaded    Status = -3
	StatusParameterMismatch   Status = -4
	StatusNotFound            Status = -5
	StatusOutOfBounds         Status = -6
	StatusUnexpected          Status = -7
	StatusRequestBusy         Status = -8
	StatusResultNotReady      Status = -9
	StatusNotAllocated        Status = -10
	StatusInferNotStarted     Status = -11
	StatusNetworkNotRead      Status = -12
	StatusInferCancelled      Status = -13
	StatusInvalidCParam       Status = -14
	StatusUnknownCError       Status = -15
	StatusNotImplementCMethod Status = -16
	StatusUnknownException    Status = -17
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusGeneralError:
		return "general error"
	case StatusNotImplemented:
		return "not implemented"
	case StatusNetworkNotLoaded:
		return "network not loaded"
	case StatusParameterMismatch:
		return "parameter mismatch"
	case StatusNotFound:
		return "not found"
	case StatusOutOfBounds:
		return "out of bounds"
	case StatusUnexpected:
		return "unexpected"
	case StatusRequestBusy:
		return "request busy"
	case StatusResultNotReady:
		return "result not ready"
	case StatusNotAllocated:
		return "not allocated"
	case StatusInferNotStarted:
		return "inference not started"
	case StatusNetworkNotRead:
		return "network not read"
	case StatusInferCancelled:
		return "inference cancelled"
	case StatusInvalidCParam:
		return "invalid parameter"
	case StatusUnknownCError:
		return "unknown C error"
	case StatusNotImplementCMethod:
		return "C method not implemented"
	case StatusUnknownException:
		return "unknown exception"
	default:
		return fmt.Sprintf("status %d", int32(s))
	}
}

// callError reports a native call that returned a non-OK status.
type callError struct {
	op     string
	status Status
}

func (e callError) Error() string {
	return fmt.Sprintf("%s: %s", e.op, e.status)
}

// statusErr converts a raw status into an error, nil for OK.
func statusErr(op string, s Status) error {
	if s == StatusOK {
		return nil
	}
	return callError{op: op, status: s}
}

// StatusOf extracts the native status from an error, StatusOK if err is nil
// or did not come from a native call.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	if ce, ok := err.(callError); ok {
		return ce.status
	}
	return StatusOK
}

// IsRequestBusy reports whether err indicates the native request queue is full.
func IsRequestBusy(err error) bool {
	ce, ok := err.(callError)
	return ok && ce.status == StatusRequestBusy
}

// IsCancelled reports whether err indicates the native side cancelled inference.
func IsCancelled(err error) bool {
	ce, ok := err.(callError)
	return ok && ce.status == StatusInferCancelled
}

// IsOutOfBounds reports whether err indicates an index past a native collection.
func IsOutOfBounds(err error) bool {
	ce, ok := err.(callError)
	return ok && ce.status == StatusOutOfBounds
}

// IsInvalidParam reports whether err indicates a rejected native argument.
func IsInvalidParam(err error) bool {
	ce, ok := err.(callError)
	return ok && ce.status == StatusInvalidCParam
}

// dependencyUnavailableError signals the native runtime is missing from this
// build (no 'openvino' build tag) so callers can fail fast with a clear message.
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing native runtime.
func IsDependencyUnavailable(err error) bool {
	_, ok := err.(dependencyUnavailableError)
	return ok
}
