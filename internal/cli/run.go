package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"slatecut/internal/config"
	"slatecut/internal/logging"
	"slatecut/internal/pipeline"
)

func run(cmd *cobra.Command, inputs []string) error {
	outDir, _ := cmd.Flags().GetString("out")
	configPath, _ := cmd.Flags().GetString("config")
	extract, _ := cmd.Flags().GetBool("extract")
	transcriptDir, _ := cmd.Flags().GetString("transcript-dir")
	cacheDir, _ := cmd.Flags().GetString("cache-dir")
	logLevel, _ := cmd.Flags().GetString("log-level")
	logFormat, _ := cmd.Flags().GetString("log-format")

	engine, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("fps") {
		engine.EDL.FrameRate, _ = cmd.Flags().GetFloat64("fps")
	}
	if cmd.Flags().Changed("workers") {
		engine.Batch.Workers, _ = cmd.Flags().GetInt("workers")
	}

	// Tool paths: config file first, then env, then PATH lookup defaults.
	if v := os.Getenv("SLATECUT_FFMPEG"); v != "" {
		engine.Tools.FFmpeg = v
	}
	if v := os.Getenv("SLATECUT_FFPROBE"); v != "" {
		engine.Tools.FFprobe = v
	}
	if engine.Tools.WhisperBin == "" {
		engine.Tools.WhisperBin = getenvDefault("SLATECUT_WHISPER_BIN", ".cache/bin/whisper.cpp")
	}
	if engine.Tools.WhisperModel == "" {
		engine.Tools.WhisperModel = getenvDefault("SLATECUT_WHISPER_MODEL", ".cache/models/ggml-base.bin")
	}

	log, err := logging.New(logging.Options{Level: logLevel, Format: logFormat})
	if err != nil {
		return err
	}

	abs := make([]string, len(inputs))
	for i, in := range inputs {
		if abs[i], err = filepath.Abs(in); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	results, err := pipeline.Run(ctx, pipeline.Config{
		Inputs:        abs,
		OutDir:        outDir,
		TranscriptDir: transcriptDir,
		Extract:       extract,
		CacheDir:      cacheDir,
		Engine:        engine,
		Logger:        log,
	})
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), pipeline.RenderSummary(results))

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d recordings failed", failed, len(results))
	}
	return nil
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
