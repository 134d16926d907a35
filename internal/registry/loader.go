package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Model describes one exported OpenVINO model directory.
type Model struct {
	ID   string `json:"id"`
	Path string `json:"path"`
	// Kind is "whisper" when the export looks like a speech model
	// (encoder/decoder pair), otherwise "llm".
	Kind string `json:"kind"`
}

// LoadDir scans a directory for OpenVINO model exports: subdirectories
// containing openvino_model.xml, or an encoder/decoder pair for whisper
// exports. ID is the directory name; Path is the absolute directory path.
func LoadDir(dir string) ([]Model, error) {
	base, err := expandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var models []Model
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		p := filepath.Join(abs, e.Name())
		kind, ok := classify(p)
		if !ok {
			continue
		}
		models = append(models, Model{ID: e.Name(), Path: p, Kind: kind})
	}
	return models, nil
}

// classify inspects a candidate directory for the files an OpenVINO GenAI
// export carries.
func classify(dir string) (string, bool) {
	if fileExists(filepath.Join(dir, "openvino_encoder_model.xml")) &&
		fileExists(filepath.Join(dir, "openvino_decoder_model.xml")) {
		return "whisper", true
	}
	if fileExists(filepath.Join(dir, "openvino_model.xml")) {
		return "llm", true
	}
	return "", false
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

// expandHome expands a leading '~' to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	if path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	// handle cases like ~/models/openvino
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}
