//go:build openvino

package native

// cgo link directives for the in-process OpenVINO GenAI wrapper.
// - We set an rpath of $ORIGIN so the runtime loader finds
//   libwhisper_wrapper.so and the OpenVINO runtime libraries in the same
//   directory as the built Go binary (./bin).
// - We add -L${SRCDIR}/../../bin so the linker finds libwhisper_wrapper.so at
//   link time when building the 'openvino' variant.
// - The prototypes below mirror whisper_wrapper.hpp; the library is plain C
//   ABI so no header needs to be vendored.

/*
#cgo LDFLAGS: -Wl,-rpath,'$ORIGIN' -L${SRCDIR}/../../bin -lwhisper_wrapper
#include <stdbool.h>
#include <stddef.h>
#include <stdint.h>
#include <stdlib.h>

typedef int ov_status_e;

typedef struct {
	float start_time;
	float end_time;
	const char* text;
} whisper_result_chunk;

ov_status_e ov_genai_whisper_pipeline_create(const char* models_path, const char* device, size_t property_args_size, void** pipe);
void ov_genai_whisper_pipeline_free(void* pipe);
ov_status_e ov_genai_whisper_pipeline_generate(void* pipe, const float* raw_speech_input, size_t raw_speech_input_size, void* config, void** results);
ov_status_e ov_genai_whisper_pipeline_get_generation_config(void* pipe, void** config);
ov_status_e ov_genai_whisper_pipeline_set_generation_config(void* pipe, void* config);

ov_status_e ov_genai_whisper_generation_config_create(void** config);
void ov_genai_whisper_generation_config_free(void* config);
ov_status_e ov_genai_whisper_generation_config_set_language(void* config, const char* language);
ov_status_e ov_genai_whisper_generation_config_set_task(void* config, const char* task);
ov_status_e ov_genai_whisper_generation_config_set_return_timestamps(void* config, bool return_timestamps);
ov_status_e ov_genai_whisper_generation_config_set_initial_prompt(void* config, const char* initial_prompt);
ov_status_e ov_genai_whisper_generation_config_set_hotwords(void* config, const char* hotwords);
ov_status_e ov_genai_whisper_generation_config_set_max_initial_timestamp_index(void* config, size_t max_initial_timestamp_index);
ov_status_e ov_genai_whisper_generation_config_set_decoder_start_token_id(void* config, int64_t decoder_start_token_id);
ov_status_e ov_genai_whisper_generation_config_set_suppress_tokens(void* config, const int64_t* suppress_tokens, size_t suppress_tokens_size);
ov_status_e ov_genai_whisper_generation_config_set_begin_suppress_tokens(void* config, const int64_t* begin_suppress_tokens, size_t begin_suppress_tokens_size);

void ov_genai_whisper_decoded_results_free(void* results);
ov_status_e ov_genai_whisper_decoded_results_get_texts_size(void* results, size_t* texts_size);
ov_status_e ov_genai_whisper_decoded_results_get_text_at(void* results, size_t index, void* output, size_t output_size);
ov_status_e ov_genai_whisper_decoded_results_get_chunks_size(void* results, size_t* chunks_size);
ov_status_e ov_genai_whisper_decoded_results_get_chunk_at(void* results, size_t index, whisper_result_chunk* chunk);
ov_status_e ov_genai_whisper_decoded_results_get_scores(void* results, float* scores, size_t scores_size);
ov_status_e ov_genai_whisper_decoded_results_get_perf_metrics(void* results, void** metrics);

ov_status_e ov_genai_whisper_perf_metrics_get_features_extraction_duration(void* metrics, float* mean, float* std);
void ov_genai_whisper_perf_metrics_free(void* metrics);

ov_status_e ov_genai_llm_pipeline_create(const char* models_path, const char* device, size_t property_args_size, void** pipe);
void ov_genai_llm_pipeline_free(void* pipe);
ov_status_e ov_genai_llm_pipeline_generate(void* pipe, const char* input_text, void* config, void* streamer, void** results);
ov_status_e ov_genai_llm_pipeline_start_chat(void* pipe);
ov_status_e ov_genai_llm_pipeline_finish_chat(void* pipe);
ov_status_e ov_genai_llm_pipeline_get_generation_config(void* pipe, void** config);
ov_status_e ov_genai_llm_pipeline_set_generation_config(void* pipe, void* config);

ov_status_e ov_genai_generation_config_create(void** config);
ov_status_e ov_genai_generation_config_create_from_json(const char* json_config, void** config);
void ov_genai_generation_config_free(void* config);
ov_status_e ov_genai_generation_config_set_max_new_tokens(void* config, size_t max_new_tokens);
ov_status_e ov_genai_generation_config_set_max_length(void* config, size_t max_length);
ov_status_e ov_genai_generation_config_set_temperature(void* config, float temperature);
ov_status_e ov_genai_generation_config_set_top_p(void* config, float top_p);
ov_status_e ov_genai_generation_config_set_top_k(void* config, size_t top_k);
ov_status_e ov_genai_generation_config_set_do_sample(void* config, bool do_sample);
ov_status_e ov_genai_generation_config_set_repetition_penalty(void* config, float repetition_penalty);
ov_status_e ov_genai_generation_config_set_presence_penalty(void* config, float presence_penalty);
ov_status_e ov_genai_generation_config_set_frequency_penalty(void* config, float frequency_penalty);
ov_status_e ov_genai_generation_config_set_stop_strings(void* config, const char** stop_strings, size_t stop_strings_size);
ov_status_e ov_genai_generation_config_get_max_new_tokens(void* config, size_t* max_new_tokens);
ov_status_e ov_genai_generation_config_validate(void* config);

void ov_genai_decoded_results_free(void* results);
ov_status_e ov_genai_decoded_results_get_string(void* results, void* output, size_t output_size);
ov_status_e ov_genai_decoded_results_get_perf_metrics(void* results, void** metrics);
void ov_genai_decoded_results_perf_metrics_free(void* metrics);
*/
import "C"

import (
	"bytes"
	"fmt"
	"unsafe"
)

// Built indicates this binary was compiled with the real native runtime.
const Built = true

func ptr(p uintptr) unsafe.Pointer { return unsafe.Pointer(p) } //nolint:govet // native heap addresses, never Go pointers

// maxOutString caps the grow-and-retry buffer for string retrieval at 16 MiB.
// Output longer than this fails rather than growing without bound.
const maxOutString = 1 << 24

// outString retrieves a string through the ABI's fill-a-buffer convention.
// The ABI has no length query, so grow and retry until the copy no longer
// hits the truncation boundary, up to maxOutString bytes. Exceeding the cap
// is a binding-imposed limit and is reported as such, not as a native status.
func outString(op string, fill func(buf unsafe.Pointer, size C.size_t) C.ov_status_e) (string, error) {
	for size := 4096; size <= maxOutString; size *= 4 {
		buf := make([]byte, size)
		if s := Status(fill(unsafe.Pointer(&buf[0]), C.size_t(size))); s != StatusOK {
			return "", statusErr(op, s)
		}
		n := bytes.IndexByte(buf, 0)
		if n < 0 {
			n = size
		}
		if n < size-1 {
			return string(buf[:n]), nil
		}
	}
	return "", fmt.Errorf("%s: output exceeds %d-byte retrieval cap", op, maxOutString)
}

// Whisper pipeline

func WhisperPipelineCreate(modelsPath, device string) (uintptr, error) {
	cPath := C.CString(modelsPath)
	defer C.free(unsafe.Pointer(cPath))
	cDev := C.CString(device)
	defer C.free(unsafe.Pointer(cDev))
	var out unsafe.Pointer
	s := Status(C.ov_genai_whisper_pipeline_create(cPath, cDev, 0, &out))
	if err := statusErr("whisper_pipeline_create", s); err != nil {
		return 0, err
	}
	return uintptr(out), nil
}

func WhisperPipelineFree(p uintptr) { C.ov_genai_whisper_pipeline_free(ptr(p)) }

func WhisperPipelineGenerate(pipe uintptr, samples []float32, config uintptr) (uintptr, error) {
	if len(samples) == 0 {
		return 0, statusErr("whisper_pipeline_generate", StatusInvalidCParam)
	}
	var out unsafe.Pointer
	s := Status(C.ov_genai_whisper_pipeline_generate(
		ptr(pipe),
		(*C.float)(unsafe.Pointer(&samples[0])),
		C.size_t(len(samples)),
		ptr(config),
		&out,
	))
	if err := statusErr("whisper_pipeline_generate", s); err != nil {
		return 0, err
	}
	return uintptr(out), nil
}

func WhisperPipelineGetGenerationConfig(pipe uintptr) (uintptr, error) {
	var out unsafe.Pointer
	s := Status(C.ov_genai_whisper_pipeline_get_generation_config(ptr(pipe), &out))
	if err := statusErr("whisper_pipeline_get_generation_config", s); err != nil {
		return 0, err
	}
	return uintptr(out), nil
}

func WhisperPipelineSetGenerationConfig(pipe, config uintptr) error {
	return statusErr("whisper_pipeline_set_generation_config",
		Status(C.ov_genai_whisper_pipeline_set_generation_config(ptr(pipe), ptr(config))))
}

// Whisper generation config

func WhisperConfigCreate() (uintptr, error) {
	var out unsafe.Pointer
	s := Status(C.ov_genai_whisper_generation_config_create(&out))
	if err := statusErr("whisper_generation_config_create", s); err != nil {
		return 0, err
	}
	return uintptr(out), nil
}

func WhisperConfigFree(p uintptr) { C.ov_genai_whisper_generation_config_free(ptr(p)) }

func WhisperConfigSetLanguage(config uintptr, language string) error {
	c := C.CString(language)
	defer C.free(unsafe.Pointer(c))
	return statusErr("whisper_generation_config_set_language",
		Status(C.ov_genai_whisper_generation_config_set_language(ptr(config), c)))
}

func WhisperConfigSetTask(config uintptr, task string) error {
	c := C.CString(task)
	defer C.free(unsafe.Pointer(c))
	return statusErr("whisper_generation_config_set_task",
		Status(C.ov_genai_whisper_generation_config_set_task(ptr(config), c)))
}

func WhisperConfigSetReturnTimestamps(config uintptr, v bool) error {
	return statusErr("whisper_generation_config_set_return_timestamps",
		Status(C.ov_genai_whisper_generation_config_set_return_timestamps(ptr(config), C.bool(v))))
}

func WhisperConfigSetInitialPrompt(config uintptr, prompt string) error {
	c := C.CString(prompt)
	defer C.free(unsafe.Pointer(c))
	return statusErr("whisper_generation_config_set_initial_prompt",
		Status(C.ov_genai_whisper_generation_config_set_initial_prompt(ptr(config), c)))
}

func WhisperConfigSetHotwords(config uintptr, hotwords string) error {
	c := C.CString(hotwords)
	defer C.free(unsafe.Pointer(c))
	return statusErr("whisper_generation_config_set_hotwords",
		Status(C.ov_genai_whisper_generation_config_set_hotwords(ptr(config), c)))
}

func WhisperConfigSetMaxInitialTimestampIndex(config uintptr, idx uint64) error {
	return statusErr("whisper_generation_config_set_max_initial_timestamp_index",
		Status(C.ov_genai_whisper_generation_config_set_max_initial_timestamp_index(ptr(config), C.size_t(idx))))
}

func WhisperConfigSetDecoderStartTokenID(config uintptr, id int64) error {
	return statusErr("whisper_generation_config_set_decoder_start_token_id",
		Status(C.ov_genai_whisper_generation_config_set_decoder_start_token_id(ptr(config), C.int64_t(id))))
}

func WhisperConfigSetSuppressTokens(config uintptr, tokens []int64) error {
	if len(tokens) == 0 {
		return nil
	}
	return statusErr("whisper_generation_config_set_suppress_tokens",
		Status(C.ov_genai_whisper_generation_config_set_suppress_tokens(
			ptr(config), (*C.int64_t)(unsafe.Pointer(&tokens[0])), C.size_t(len(tokens)))))
}

func WhisperConfigSetBeginSuppressTokens(config uintptr, tokens []int64) error {
	if len(tokens) == 0 {
		return nil
	}
	return statusErr("whisper_generation_config_set_begin_suppress_tokens",
		Status(C.ov_genai_whisper_generation_config_set_begin_suppress_tokens(
			ptr(config), (*C.int64_t)(unsafe.Pointer(&tokens[0])), C.size_t(len(tokens)))))
}

// Whisper decoded results

func WhisperResultsFree(p uintptr) { C.ov_genai_whisper_decoded_results_free(ptr(p)) }

func WhisperResultsTextCount(results uintptr) (int, error) {
	var n C.size_t
	s := Status(C.ov_genai_whisper_decoded_results_get_texts_size(ptr(results), &n))
	if err := statusErr("whisper_decoded_results_get_texts_size", s); err != nil {
		return 0, err
	}
	return int(n), nil
}

func WhisperResultsTextAt(results uintptr, index int) (string, error) {
	return outString("whisper_decoded_results_get_text_at", func(buf unsafe.Pointer, size C.size_t) C.ov_status_e {
		return C.ov_genai_whisper_decoded_results_get_text_at(ptr(results), C.size_t(index), buf, size)
	})
}

func WhisperResultsChunkCount(results uintptr) (int, error) {
	var n C.size_t
	s := Status(C.ov_genai_whisper_decoded_results_get_chunks_size(ptr(results), &n))
	if err := statusErr("whisper_decoded_results_get_chunks_size", s); err != nil {
		return 0, err
	}
	return int(n), nil
}

func WhisperResultsChunkAt(results uintptr, index int) (ResultChunk, error) {
	var c C.whisper_result_chunk
	s := Status(C.ov_genai_whisper_decoded_results_get_chunk_at(ptr(results), C.size_t(index), &c))
	if err := statusErr("whisper_decoded_results_get_chunk_at", s); err != nil {
		return ResultChunk{}, err
	}
	// c.text points into the results wrapper's cache; copy before it can go away.
	return ResultChunk{
		StartTime: float32(c.start_time),
		EndTime:   float32(c.end_time),
		Text:      C.GoString(c.text),
	}, nil
}

func WhisperResultsScores(results uintptr, n int) ([]float32, error) {
	if n <= 0 {
		return nil, nil
	}
	scores := make([]float32, n)
	s := Status(C.ov_genai_whisper_decoded_results_get_scores(
		ptr(results), (*C.float)(unsafe.Pointer(&scores[0])), C.size_t(n)))
	if err := statusErr("whisper_decoded_results_get_scores", s); err != nil {
		return nil, err
	}
	return scores, nil
}

func WhisperResultsPerfMetrics(results uintptr) (uintptr, error) {
	var out unsafe.Pointer
	s := Status(C.ov_genai_whisper_decoded_results_get_perf_metrics(ptr(results), &out))
	if err := statusErr("whisper_decoded_results_get_perf_metrics", s); err != nil {
		return 0, err
	}
	return uintptr(out), nil
}

// Whisper perf metrics

func WhisperPerfMetricsFree(p uintptr) { C.ov_genai_whisper_perf_metrics_free(ptr(p)) }

func WhisperPerfMetricsFeaturesExtraction(metrics uintptr) (mean, std float32, err error) {
	var m, d C.float
	s := Status(C.ov_genai_whisper_perf_metrics_get_features_extraction_duration(ptr(metrics), &m, &d))
	if err := statusErr("whisper_perf_metrics_get_features_extraction_duration", s); err != nil {
		return 0, 0, err
	}
	return float32(m), float32(d), nil
}

// LLM pipeline

func LLMPipelineCreate(modelsPath, device string) (uintptr, error) {
	cPath := C.CString(modelsPath)
	defer C.free(unsafe.Pointer(cPath))
	cDev := C.CString(device)
	defer C.free(unsafe.Pointer(cDev))
	var out unsafe.Pointer
	s := Status(C.ov_genai_llm_pipeline_create(cPath, cDev, 0, &out))
	if err := statusErr("llm_pipeline_create", s); err != nil {
		return 0, err
	}
	return uintptr(out), nil
}

func LLMPipelineFree(p uintptr) { C.ov_genai_llm_pipeline_free(ptr(p)) }

func LLMPipelineGenerate(pipe uintptr, prompt string, config uintptr) (uintptr, error) {
	cPrompt := C.CString(prompt)
	defer C.free(unsafe.Pointer(cPrompt))
	var out unsafe.Pointer
	s := Status(C.ov_genai_llm_pipeline_generate(ptr(pipe), cPrompt, ptr(config), nil, &out))
	if err := statusErr("llm_pipeline_generate", s); err != nil {
		return 0, err
	}
	return uintptr(out), nil
}

func LLMPipelineStartChat(pipe uintptr) error {
	return statusErr("llm_pipeline_start_chat", Status(C.ov_genai_llm_pipeline_start_chat(ptr(pipe))))
}

func LLMPipelineFinishChat(pipe uintptr) error {
	return statusErr("llm_pipeline_finish_chat", Status(C.ov_genai_llm_pipeline_finish_chat(ptr(pipe))))
}

func LLMPipelineGetGenerationConfig(pipe uintptr) (uintptr, error) {
	var out unsafe.Pointer
	s := Status(C.ov_genai_llm_pipeline_get_generation_config(ptr(pipe), &out))
	if err := statusErr("llm_pipeline_get_generation_config", s); err != nil {
		return 0, err
	}
	return uintptr(out), nil
}

func LLMPipelineSetGenerationConfig(pipe, config uintptr) error {
	return statusErr("llm_pipeline_set_generation_config",
		Status(C.ov_genai_llm_pipeline_set_generation_config(ptr(pipe), ptr(config))))
}

// LLM generation config

func GenerationConfigCreate() (uintptr, error) {
	var out unsafe.Pointer
	s := Status(C.ov_genai_generation_config_create(&out))
	if err := statusErr("generation_config_create", s); err != nil {
		return 0, err
	}
	return uintptr(out), nil
}

func GenerationConfigFromJSON(jsonConfig string) (uintptr, error) {
	c := C.CString(jsonConfig)
	defer C.free(unsafe.Pointer(c))
	var out unsafe.Pointer
	s := Status(C.ov_genai_generation_config_create_from_json(c, &out))
	if err := statusErr("generation_config_create_from_json", s); err != nil {
		return 0, err
	}
	return uintptr(out), nil
}

func GenerationConfigFree(p uintptr) { C.ov_genai_generation_config_free(ptr(p)) }

func GenerationConfigSetMaxNewTokens(config uintptr, n uint64) error {
	return statusErr("generation_config_set_max_new_tokens",
		Status(C.ov_genai_generation_config_set_max_new_tokens(ptr(config), C.size_t(n))))
}

func GenerationConfigSetMaxLength(config uintptr, n uint64) error {
	return statusErr("generation_config_set_max_length",
		Status(C.ov_genai_generation_config_set_max_length(ptr(config), C.size_t(n))))
}

func GenerationConfigSetTemperature(config uintptr, v float32) error {
	return statusErr("generation_config_set_temperature",
		Status(C.ov_genai_generation_config_set_temperature(ptr(config), C.float(v))))
}

func GenerationConfigSetTopP(config uintptr, v float32) error {
	return statusErr("generation_config_set_top_p",
		Status(C.ov_genai_generation_config_set_top_p(ptr(config), C.float(v))))
}

func GenerationConfigSetTopK(config uintptr, k uint64) error {
	return statusErr("generation_config_set_top_k",
		Status(C.ov_genai_generation_config_set_top_k(ptr(config), C.size_t(k))))
}

func GenerationConfigSetDoSample(config uintptr, v bool) error {
	return statusErr("generation_config_set_do_sample",
		Status(C.ov_genai_generation_config_set_do_sample(ptr(config), C.bool(v))))
}

func GenerationConfigSetRepetitionPenalty(config uintptr, v float32) error {
	return statusErr("generation_config_set_repetition_penalty",
		Status(C.ov_genai_generation_config_set_repetition_penalty(ptr(config), C.float(v))))
}

func GenerationConfigSetPresencePenalty(config uintptr, v float32) error {
	return statusErr("generation_config_set_presence_penalty",
		Status(C.ov_genai_generation_config_set_presence_penalty(ptr(config), C.float(v))))
}

func GenerationConfigSetFrequencyPenalty(config uintptr, v float32) error {
	return statusErr("generation_config_set_frequency_penalty",
		Status(C.ov_genai_generation_config_set_frequency_penalty(ptr(config), C.float(v))))
}

func GenerationConfigSetStopStrings(config uintptr, stops []string) error {
	if len(stops) == 0 {
		return nil
	}
	cStops := make([]*C.char, len(stops))
	for i, s := range stops {
		cStops[i] = C.CString(s)
	}
	defer func() {
		for _, c := range cStops {
			C.free(unsafe.Pointer(c))
		}
	}()
	return statusErr("generation_config_set_stop_strings",
		Status(C.ov_genai_generation_config_set_stop_strings(ptr(config), &cStops[0], C.size_t(len(stops)))))
}

func GenerationConfigMaxNewTokens(config uintptr) (uint64, error) {
	var n C.size_t
	s := Status(C.ov_genai_generation_config_get_max_new_tokens(ptr(config), &n))
	if err := statusErr("generation_config_get_max_new_tokens", s); err != nil {
		return 0, err
	}
	return uint64(n), nil
}

func GenerationConfigValidate(config uintptr) error {
	return statusErr("generation_config_validate",
		Status(C.ov_genai_generation_config_validate(ptr(config))))
}

// LLM decoded results

func DecodedResultsFree(p uintptr) { C.ov_genai_decoded_results_free(ptr(p)) }

func DecodedResultsText(results uintptr) (string, error) {
	return outString("decoded_results_get_string", func(buf unsafe.Pointer, size C.size_t) C.ov_status_e {
		return C.ov_genai_decoded_results_get_string(ptr(results), buf, size)
	})
}

func DecodedResultsPerfMetrics(results uintptr) (uintptr, error) {
	var out unsafe.Pointer
	s := Status(C.ov_genai_decoded_results_get_perf_metrics(ptr(results), &out))
	if err := statusErr("decoded_results_get_perf_metrics", s); err != nil {
		return 0, err
	}
	return uintptr(out), nil
}

func LLMPerfMetricsFree(p uintptr) { C.ov_genai_decoded_results_perf_metrics_free(ptr(p)) }
