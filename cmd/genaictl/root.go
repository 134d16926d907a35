package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"ovgenai/internal/audio"
	"ovgenai/internal/config"
	"ovgenai/internal/registry"
	"ovgenai/pkg/genai"
)

// buildRootCmd constructs the cobra command tree. Persistent flags feed the
// shared Config; per-command flags override its defaults.
func buildRootCmd() *cobra.Command {
	cfg := &config.Config{Device: "CPU", ModelsDir: "~/models/openvino"}
	if v := os.Getenv("GENAICTL_MODELS_DIR"); v != "" {
		cfg.ModelsDir = v
	}
	if v := os.Getenv("GENAICTL_DEVICE"); v != "" {
		cfg.Device = v
	}

	root := &cobra.Command{
		Use:           "genaictl",
		Short:         "Run OpenVINO GenAI pipelines from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	var cfgPath string
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (yaml/json/toml)")
	root.PersistentFlags().String("models-dir", cfg.ModelsDir, "Directory holding exported OpenVINO models (defaults GENAICTL_MODELS_DIR)")
	root.PersistentFlags().String("device", cfg.Device, "Inference device: CPU, GPU or NPU (defaults GENAICTL_DEVICE)")
	root.PersistentFlags().String("log-level", "", "Log level: debug|info|warn|error (defaults GENAICTL_LOG_LEVEL or info)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cfgPath != "" {
			loaded, err := config.Load(cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			merge(cfg, loaded)
		}
		if v, _ := cmd.Flags().GetString("models-dir"); v != "" && cmd.Flags().Changed("models-dir") {
			cfg.ModelsDir = v
		}
		if v, _ := cmd.Flags().GetString("device"); v != "" && cmd.Flags().Changed("device") {
			cfg.Device = v
		}
		lvl := cfg.LogLevel
		if v, _ := cmd.Flags().GetString("log-level"); v != "" {
			lvl = v
		} else if v := os.Getenv("GENAICTL_LOG_LEVEL"); lvl == "" && v != "" {
			lvl = v
		}
		setLogLevel(lvl)
		return nil
	}

	root.AddCommand(buildModelsCmd(cfg))
	root.AddCommand(buildGenerateCmd(cfg))
	root.AddCommand(buildChatCmd(cfg))
	root.AddCommand(buildTranscribeCmd(cfg))
	return root
}

// merge overlays non-zero values from a loaded config file onto defaults.
func merge(dst *config.Config, src config.Config) {
	if src.ModelsDir != "" {
		dst.ModelsDir = src.ModelsDir
	}
	if src.Device != "" {
		dst.Device = src.Device
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
	dst.Generation = src.Generation
	dst.Whisper = src.Whisper
}

func buildModelsCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List exported models under the models directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			models, err := registry.LoadDir(cfg.ModelsDir)
			if err != nil {
				return err
			}
			if len(models) == 0 {
				fmt.Printf("no models under %s\n", cfg.ModelsDir)
				return nil
			}
			for _, m := range models {
				fmt.Printf("%-8s %-30s %s\n", m.Kind, m.ID, m.Path)
			}
			return nil
		},
	}
}

// resolveModel maps a --model value to a directory: a path is used as-is, a
// bare ID is looked up in the registry.
func resolveModel(modelsDir, model, kind string) (string, error) {
	if model == "" {
		return "", fmt.Errorf("--model is required")
	}
	if strings.ContainsRune(model, filepath.Separator) || model == "." {
		return model, nil
	}
	models, err := registry.LoadDir(modelsDir)
	if err != nil {
		return "", err
	}
	for _, m := range models {
		if m.ID == model {
			if m.Kind != kind {
				return "", fmt.Errorf("model %s is a %s model, not %s", model, m.Kind, kind)
			}
			return m.Path, nil
		}
	}
	return "", fmt.Errorf("model %s not found under %s", model, modelsDir)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func buildGenerateCmd(cfg *config.Config) *cobra.Command {
	var (
		model       string
		genJSONPath string
	)
	cmd := &cobra.Command{
		Use:   "generate [flags] PROMPT",
		Short: "Run one prompt through an LLM pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			path, err := resolveModel(cfg.ModelsDir, model, "llm")
			if err != nil {
				return err
			}
			gen, err := generationFlags(cmd, cfg.Generation, genJSONPath)
			if err != nil {
				return err
			}
			pipe, err := genai.NewLLMPipeline(path, cfg.Device)
			if err != nil {
				return err
			}
			defer pipe.Close()

			res, err := pipe.Generate(ctx, args[0], gen)
			if err != nil {
				return err
			}
			defer res.Close()
			text, err := res.Text()
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "Model id under --models-dir, or a path to a model directory")
	cmd.Flags().StringVar(&genJSONPath, "gen-config-json", "", "Path to a generation_config JSON file")
	addGenerationFlags(cmd)
	return cmd
}

func buildChatCmd(cfg *config.Config) *cobra.Command {
	var model string
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive chat over stdin, sharing KV-cache between turns",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			path, err := resolveModel(cfg.ModelsDir, model, "llm")
			if err != nil {
				return err
			}
			gen, err := generationFlags(cmd, cfg.Generation, "")
			if err != nil {
				return err
			}
			pipe, err := genai.NewLLMPipeline(path, cfg.Device)
			if err != nil {
				return err
			}
			defer pipe.Close()
			if err := pipe.StartChat(); err != nil {
				return err
			}
			defer pipe.FinishChat()

			sc := bufio.NewScanner(os.Stdin)
			fmt.Print("> ")
			for sc.Scan() {
				line := strings.TrimSpace(sc.Text())
				if line == "" {
					fmt.Print("> ")
					continue
				}
				res, err := pipe.Generate(ctx, line, gen)
				if err != nil {
					return err
				}
				text, err := res.Text()
				res.Close()
				if err != nil {
					return err
				}
				fmt.Println(text)
				fmt.Print("> ")
			}
			return sc.Err()
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "Model id under --models-dir, or a path to a model directory")
	addGenerationFlags(cmd)
	return cmd
}

func addGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().Uint64("max-new-tokens", 0, "Token budget for the reply (0 = model default)")
	cmd.Flags().Float32("temperature", 0, "Sampling temperature (0 = model default)")
	cmd.Flags().Float32("top-p", 0, "Nucleus sampling mass (0 = model default)")
	cmd.Flags().Uint64("top-k", 0, "Top-k cutoff (0 = model default)")
	cmd.Flags().Bool("do-sample", false, "Sample instead of greedy decoding")
	cmd.Flags().Float32("repetition-penalty", 0, "Repetition penalty (0 = model default)")
	cmd.Flags().StringSlice("stop", nil, "Stop strings")
}

// generationFlags folds config-file defaults and command-line overrides into
// one GenerationConfig. Returns nil when everything is left to the model.
func generationFlags(cmd *cobra.Command, defaults config.GenerationParams, jsonPath string) (*genai.GenerationConfig, error) {
	gen := &genai.GenerationConfig{
		MaxNewTokens:      defaults.MaxNewTokens,
		Temperature:       defaults.Temperature,
		TopP:              defaults.TopP,
		TopK:              defaults.TopK,
		DoSample:          defaults.DoSample,
		RepetitionPenalty: defaults.RepetitionPenalty,
		StopStrings:       defaults.StopStrings,
	}
	if jsonPath != "" {
		b, err := os.ReadFile(jsonPath)
		if err != nil {
			return nil, fmt.Errorf("read gen config: %w", err)
		}
		gen.JSON = string(b)
	}
	if v, _ := cmd.Flags().GetUint64("max-new-tokens"); v > 0 {
		gen.MaxNewTokens = v
	}
	if v, _ := cmd.Flags().GetFloat32("temperature"); v > 0 {
		gen.Temperature = v
	}
	if v, _ := cmd.Flags().GetFloat32("top-p"); v > 0 {
		gen.TopP = v
	}
	if v, _ := cmd.Flags().GetUint64("top-k"); v > 0 {
		gen.TopK = v
	}
	if v, _ := cmd.Flags().GetBool("do-sample"); v {
		gen.DoSample = true
	}
	if v, _ := cmd.Flags().GetFloat32("repetition-penalty"); v > 0 {
		gen.RepetitionPenalty = v
	}
	if v, _ := cmd.Flags().GetStringSlice("stop"); len(v) > 0 {
		gen.StopStrings = v
	}
	if gen.JSON == "" && gen.MaxNewTokens == 0 && gen.Temperature == 0 && gen.TopP == 0 &&
		gen.TopK == 0 && !gen.DoSample && gen.RepetitionPenalty == 0 && len(gen.StopStrings) == 0 {
		return nil, nil
	}
	return gen, nil
}

func buildTranscribeCmd(cfg *config.Config) *cobra.Command {
	var model string
	cmd := &cobra.Command{
		Use:   "transcribe [flags] FILE.wav",
		Short: "Transcribe a WAV file through a whisper pipeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			path, err := resolveModel(cfg.ModelsDir, model, "whisper")
			if err != nil {
				return err
			}
			samples, err := audio.LoadWAV(args[0], genai.SampleRate)
			if err != nil {
				return fmt.Errorf("load audio: %w", err)
			}

			wc := &genai.WhisperConfig{
				Language:         cfg.Whisper.Language,
				Task:             cfg.Whisper.Task,
				ReturnTimestamps: cfg.Whisper.ReturnTimestamps,
				InitialPrompt:    cfg.Whisper.InitialPrompt,
			}
			if v, _ := cmd.Flags().GetString("language"); v != "" {
				wc.Language = v
			}
			if v, _ := cmd.Flags().GetString("task"); v != "" {
				wc.Task = v
			}
			if v, _ := cmd.Flags().GetBool("timestamps"); v {
				wc.ReturnTimestamps = true
			}
			if v, _ := cmd.Flags().GetString("initial-prompt"); v != "" {
				wc.InitialPrompt = v
			}

			pipe, err := genai.NewWhisperPipeline(path, cfg.Device)
			if err != nil {
				return err
			}
			defer pipe.Close()

			res, err := pipe.Transcribe(ctx, samples, wc)
			if err != nil {
				return err
			}
			defer res.Close()

			if wc.ReturnTimestamps {
				chunks, err := res.Chunks()
				if err != nil {
					return err
				}
				for i := range chunks {
					fmt.Printf("[%7.2f -> %7.2f] %s\n", chunks[i].StartTime, chunks[i].EndTime, chunks[i].Text)
					chunks[i].Close()
				}
				return nil
			}
			text, err := res.Text()
			if err != nil {
				return err
			}
			fmt.Println(text)
			return nil
		},
	}
	cmd.Flags().StringVar(&model, "model", "", "Model id under --models-dir, or a path to a model directory")
	cmd.Flags().String("language", "", "Language token, e.g. \"<|en|>\" (default: auto-detect)")
	cmd.Flags().String("task", "", "\"transcribe\" or \"translate\"")
	cmd.Flags().Bool("timestamps", false, "Print time-aligned segments")
	cmd.Flags().String("initial-prompt", "", "Prompt biasing the first decoding window")
	return cmd
}
