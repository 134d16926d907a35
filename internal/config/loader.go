package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// GenerationParams are default LLM sampling settings applied when the
// command line does not override them. Zero values mean "unspecified" and
// leave the native defaults in place.
type GenerationParams struct {
	MaxNewTokens      uint64   `json:"max_new_tokens" yaml:"max_new_tokens" toml:"max_new_tokens"`
	Temperature       float32  `json:"temperature" yaml:"temperature" toml:"temperature"`
	TopP              float32  `json:"top_p" yaml:"top_p" toml:"top_p"`
	TopK              uint64   `json:"top_k" yaml:"top_k" toml:"top_k"`
	DoSample          bool     `json:"do_sample" yaml:"do_sample" toml:"do_sample"`
	RepetitionPenalty float32  `json:"repetition_penalty" yaml:"repetition_penalty" toml:"repetition_penalty"`
	StopStrings       []string `json:"stop_strings" yaml:"stop_strings" toml:"stop_strings"`
}

// WhisperParams are default speech-to-text settings.
type WhisperParams struct {
	Language         string `json:"language" yaml:"language" toml:"language"`
	Task             string `json:"task" yaml:"task" toml:"task"`
	ReturnTimestamps bool   `json:"return_timestamps" yaml:"return_timestamps" toml:"return_timestamps"`
	InitialPrompt    string `json:"initial_prompt" yaml:"initial_prompt" toml:"initial_prompt"`
}

// Config holds runtime parameters for the CLI.
// Zero values mean "unspecified" and will be replaced by defaults in main.
type Config struct {
	ModelsDir  string           `json:"models_dir" yaml:"models_dir" toml:"models_dir"`
	Device     string           `json:"device" yaml:"device" toml:"device"`
	LogLevel   string           `json:"log_level" yaml:"log_level" toml:"log_level"`
	Generation GenerationParams `json:"generation" yaml:"generation" toml:"generation"`
	Whisper    WhisperParams    `json:"whisper" yaml:"whisper" toml:"whisper"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
