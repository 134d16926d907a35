package genai

// pipelineClosedError signals use of a pipeline or result object after Close.
type pipelineClosedError struct{ what string }

func (e pipelineClosedError) Error() string { return e.what + " is closed" }

// ErrClosed constructs a pipelineClosedError for the named object.
func ErrClosed(what string) error { return pipelineClosedError{what: what} }

// IsClosed reports whether err indicates use after Close.
func IsClosed(err error) bool {
	_, ok := err.(pipelineClosedError)
	return ok
}

// emptyInputError signals a generate call with nothing to work on.
type emptyInputError struct{ what string }

func (e emptyInputError) Error() string { return "empty " + e.what }

// ErrEmptyInput constructs an emptyInputError.
func ErrEmptyInput(what string) error { return emptyInputError{what: what} }

// IsEmptyInput reports whether err indicates an empty prompt or audio buffer.
func IsEmptyInput(err error) bool {
	_, ok := err.(emptyInputError)
	return ok
}
