package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "slatecut <input>...",
		Short:        "Turn spoken slate markers in a recording into a rough cut",
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args)
		},
	}

	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	// Visible flags
	root.Flags().String("out", "out", "Output directory")
	root.Flags().String("config", "", "Engine config file (TOML)")
	root.Flags().Float64("fps", 30, "Frame rate for EDL timecodes")
	root.Flags().Int("workers", 0, "Concurrent recordings (0 = CPU count)")
	root.Flags().Bool("extract", false, "Render selected segments with ffmpeg")
	root.Flags().String("transcript-dir", "", "Directory of pre-existing transcript artifacts")
	root.Flags().String("log-level", "info", "Log level")
	root.Flags().String("log-format", "", "Log format: console or json")

	// Hidden tuning flag (internal)
	root.Flags().String("cache-dir", "", "Base directory for local artifacts")
	_ = root.Flags().MarkHidden("cache-dir")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
