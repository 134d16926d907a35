// Package native is the boundary to the OpenVINO GenAI wrapper library.
//
// It has three layers: the Handle ownership protocol (handle.go), the
// status/error mapping (status.go), and one Go shim per C function of the
// wrapper ABI. The shims come in two flavors selected by the 'openvino'
// build tag: real cgo calls, or a stub that fails fast so default builds
// stay CGO-free.
package native

// ResultChunk is one time-aligned transcription segment copied out of a
// whisper decoded-results object. The text is copied to the Go heap; the
// chunk does not retain native memory.
type ResultChunk struct {
	StartTime float32
	EndTime   float32
	Text      string
}
