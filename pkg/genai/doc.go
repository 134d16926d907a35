// Package genai exposes OpenVINO GenAI pipelines to Go programs: LLM text
// generation and Whisper speech-to-text.
//
// Every native object (pipeline, generation config, decoded results, perf
// metrics) is held through internal/native.Handle, so its native free
// function runs at most once no matter how the wrapper's lifetime ends.
// Pipelines must be Closed when done; results and metrics objects too,
// though the finalizer safety net reclaims anything that slips through.
//
// Default builds compile without CGO and fail at pipeline construction with
// a dependency-unavailable error; build with -tags=openvino against
// libwhisper_wrapper to run for real.
package genai
