package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func mkModel(t *testing.T, root, name string, files ...string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", name, err)
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("<net/>"), 0o644); err != nil {
			t.Fatalf("write %s: %v", f, err)
		}
	}
}

func TestLoadDir(t *testing.T) {
	root := t.TempDir()
	mkModel(t, root, "qwen2-7b-int4", "openvino_model.xml", "openvino_model.bin")
	mkModel(t, root, "whisper-base", "openvino_encoder_model.xml", "openvino_decoder_model.xml")
	mkModel(t, root, "not-a-model", "readme.txt")
	if err := os.WriteFile(filepath.Join(root, "stray.gguf"), nil, 0o644); err != nil {
		t.Fatalf("write stray: %v", err)
	}

	models, err := LoadDir(root)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("got %d models, want 2: %+v", len(models), models)
	}
	byID := map[string]Model{}
	for _, m := range models {
		byID[m.ID] = m
	}
	if m, ok := byID["qwen2-7b-int4"]; !ok || m.Kind != "llm" {
		t.Fatalf("llm model missing or misclassified: %+v", byID)
	}
	if m, ok := byID["whisper-base"]; !ok || m.Kind != "whisper" {
		t.Fatalf("whisper model missing or misclassified: %+v", byID)
	}
}

func TestLoadDirMissing(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	got, err := expandHome("~/models")
	if err != nil {
		t.Fatalf("expandHome: %v", err)
	}
	if got != filepath.Join(home, "models") {
		t.Fatalf("expandHome = %q", got)
	}
	if got, _ := expandHome("/abs"); got != "/abs" {
		t.Fatalf("absolute path changed: %q", got)
	}
}
