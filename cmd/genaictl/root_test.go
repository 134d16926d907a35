package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"ovgenai/internal/config"
)

func mkModelDir(t *testing.T, root, name string, files ...string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("<net/>"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return dir
}

func TestResolveModel(t *testing.T) {
	root := t.TempDir()
	llmDir := mkModelDir(t, root, "qwen", "openvino_model.xml")
	mkModelDir(t, root, "whisper-base", "openvino_encoder_model.xml", "openvino_decoder_model.xml")

	got, err := resolveModel(root, "qwen", "llm")
	if err != nil {
		t.Fatalf("resolveModel: %v", err)
	}
	if got != llmDir {
		t.Fatalf("resolved %q, want %q", got, llmDir)
	}

	// Explicit paths bypass the registry.
	if got, err := resolveModel(root, llmDir, "llm"); err != nil || got != llmDir {
		t.Fatalf("path passthrough = %q, %v", got, err)
	}

	if _, err := resolveModel(root, "whisper-base", "llm"); err == nil {
		t.Fatalf("expected kind mismatch error")
	}
	if _, err := resolveModel(root, "missing", "llm"); err == nil {
		t.Fatalf("expected not-found error")
	}
	if _, err := resolveModel(root, "", "llm"); err == nil {
		t.Fatalf("expected required-flag error")
	}
}

func genCmdWithArgs(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "x"}
	addGenerationFlags(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return cmd
}

func TestGenerationFlags_AllDefault(t *testing.T) {
	cmd := genCmdWithArgs(t)
	gen, err := generationFlags(cmd, config.GenerationParams{}, "")
	if err != nil {
		t.Fatalf("generationFlags: %v", err)
	}
	if gen != nil {
		t.Fatalf("expected nil config when nothing is set, got %+v", gen)
	}
}

func TestGenerationFlags_OverridesDefaults(t *testing.T) {
	cmd := genCmdWithArgs(t, "--max-new-tokens=128", "--do-sample", "--stop=###")
	defaults := config.GenerationParams{MaxNewTokens: 64, Temperature: 0.5}
	gen, err := generationFlags(cmd, defaults, "")
	if err != nil {
		t.Fatalf("generationFlags: %v", err)
	}
	if gen == nil {
		t.Fatalf("expected non-nil config")
	}
	if gen.MaxNewTokens != 128 {
		t.Fatalf("MaxNewTokens = %d, want flag override 128", gen.MaxNewTokens)
	}
	if gen.Temperature != 0.5 {
		t.Fatalf("Temperature = %f, want config default 0.5", gen.Temperature)
	}
	if !gen.DoSample || len(gen.StopStrings) != 1 {
		t.Fatalf("unexpected config: %+v", gen)
	}
}

func TestGenerationFlags_JSONFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "gen.json")
	if err := os.WriteFile(p, []byte(`{"max_new_tokens":32}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	gen, err := generationFlags(genCmdWithArgs(t), config.GenerationParams{}, p)
	if err != nil {
		t.Fatalf("generationFlags: %v", err)
	}
	if gen == nil || gen.JSON == "" {
		t.Fatalf("JSON not loaded: %+v", gen)
	}
	if _, err := generationFlags(genCmdWithArgs(t), config.GenerationParams{}, filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatalf("expected error for missing JSON file")
	}
}
