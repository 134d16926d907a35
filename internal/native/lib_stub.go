//go:build !openvino

package native

// This file provides a no-CGO stub for the native function table. It is
// compiled when the 'openvino' build tag is NOT set, keeping default builds
// and CI CGO-free. The real shims live in lib_openvino.go (tagged 'openvino').
//
// Every acquisition fails fast with a dependency-unavailable error; the free
// functions are no-ops because no pointer can have been acquired.

// Built indicates this binary was compiled with the real native runtime.
const Built = false

func errNotBuilt() error {
	return ErrDependencyUnavailable("openvino genai support not built (missing 'openvino' build tag)")
}

// Whisper pipeline

func WhisperPipelineCreate(modelsPath, device string) (uintptr, error) { return 0, errNotBuilt() }

func WhisperPipelineFree(p uintptr) {}

func WhisperPipelineGenerate(pipe uintptr, samples []float32, config uintptr) (uintptr, error) {
	return 0, errNotBuilt()
}

func WhisperPipelineGetGenerationConfig(pipe uintptr) (uintptr, error) { return 0, errNotBuilt() }

func WhisperPipelineSetGenerationConfig(pipe, config uintptr) error { return errNotBuilt() }

// Whisper generation config

func WhisperConfigCreate() (uintptr, error) { return 0, errNotBuilt() }

func WhisperConfigFree(p uintptr) {}

func WhisperConfigSetLanguage(config uintptr, language string) error { return errNotBuilt() }

func WhisperConfigSetTask(config uintptr, task string) error { return errNotBuilt() }

func WhisperConfigSetReturnTimestamps(config uintptr, v bool) error { return errNotBuilt() }

func WhisperConfigSetInitialPrompt(config uintptr, prompt string) error { return errNotBuilt() }

func WhisperConfigSetHotwords(config uintptr, hotwords string) error { return errNotBuilt() }

func WhisperConfigSetMaxInitialTimestampIndex(config uintptr, idx uint64) error {
	return errNotBuilt()
}

func WhisperConfigSetDecoderStartTokenID(config uintptr, id int64) error { return errNotBuilt() }

func WhisperConfigSetSuppressTokens(config uintptr, tokens []int64) error { return errNotBuilt() }

func WhisperConfigSetBeginSuppressTokens(config uintptr, tokens []int64) error {
	return errNotBuilt()
}

// Whisper decoded results

func WhisperResultsFree(p uintptr) {}

func WhisperResultsTextCount(results uintptr) (int, error) { return 0, errNotBuilt() }

func WhisperResultsTextAt(results uintptr, index int) (string, error) { return "", errNotBuilt() }

func WhisperResultsChunkCount(results uintptr) (int, error) { return 0, errNotBuilt() }

func WhisperResultsChunkAt(results uintptr, index int) (ResultChunk, error) {
	return ResultChunk{}, errNotBuilt()
}

func WhisperResultsScores(results uintptr, n int) ([]float32, error) { return nil, errNotBuilt() }

func WhisperResultsPerfMetrics(results uintptr) (uintptr, error) { return 0, errNotBuilt() }

// Whisper perf metrics

func WhisperPerfMetricsFree(p uintptr) {}

func WhisperPerfMetricsFeaturesExtraction(metrics uintptr) (mean, std float32, err error) {
	return 0, 0, errNotBuilt()
}

// LLM pipeline

func LLMPipelineCreate(modelsPath, device string) (uintptr, error) { return 0, errNotBuilt() }

func LLMPipelineFree(p uintptr) {}

func LLMPipelineGenerate(pipe uintptr, prompt string, config uintptr) (uintptr, error) {
	return 0, errNotBuilt()
}

func LLMPipelineStartChat(pipe uintptr) error { return errNotBuilt() }

func LLMPipelineFinishChat(pipe uintptr) error { return errNotBuilt() }

func LLMPipelineGetGenerationConfig(pipe uintptr) (uintptr, error) { return 0, errNotBuilt() }

func LLMPipelineSetGenerationConfig(pipe, config uintptr) error { return errNotBuilt() }

// LLM generation config

func GenerationConfigCreate() (uintptr, error) { return 0, errNotBuilt() }

func GenerationConfigFromJSON(jsonConfig string) (uintptr, error) { return 0, errNotBuilt() }

func GenerationConfigFree(p uintptr) {}

func GenerationConfigSetMaxNewTokens(config uintptr, n uint64) error { return errNotBuilt() }

func GenerationConfigSetMaxLength(config uintptr, n uint64) error { return errNotBuilt() }

func GenerationConfigSetTemperature(config uintptr, v float32) error { return errNotBuilt() }

func GenerationConfigSetTopP(config uintptr, v float32) error { return errNotBuilt() }

func GenerationConfigSetTopK(config uintptr, k uint64) error { return errNotBuilt() }

func GenerationConfigSetDoSample(config uintptr, v bool) error { return errNotBuilt() }

func GenerationConfigSetRepetitionPenalty(config uintptr, v float32) error { return errNotBuilt() }

func GenerationConfigSetPresencePenalty(config uintptr, v float32) error { return errNotBuilt() }

func GenerationConfigSetFrequencyPenalty(config uintptr, v float32) error { return errNotBuilt() }

func GenerationConfigSetStopStrings(config uintptr, stops []string) error { return errNotBuilt() }

func GenerationConfigMaxNewTokens(config uintptr) (uint64, error) { return 0, errNotBuilt() }

func GenerationConfigValidate(config uintptr) error { return errNotBuilt() }

// LLM decoded results

func DecodedResultsFree(p uintptr) {}

func DecodedResultsText(results uintptr) (string, error) { return "", errNotBuilt() }

func DecodedResultsPerfMetrics(results uintptr) (uintptr, error) { return 0, errNotBuilt() }

func LLMPerfMetricsFree(p uintptr) {}
