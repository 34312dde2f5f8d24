// Package config holds the engine configuration: marker vocabulary, timing
// thresholds, and batch settings. Config is an explicit value passed into
// every component; there is no ambient state.
package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full engine configuration. Zero value is not usable; start
// from Default() and overlay a TOML file with Load.
type Config struct {
	Grammar Grammar `toml:"grammar"`
	EDL     EDL     `toml:"edl"`
	Batch   Batch   `toml:"batch"`
	Tools   Tools   `toml:"tools"`
}

// Grammar configures the spoken command envelope and vocabulary.
type Grammar struct {
	StartKeyword string `toml:"start_keyword"`
	EndKeyword   string `toml:"end_keyword"`
	RetroKeyword string `toml:"retro_keyword"`
	// ApplyVocabulary lists the recognized apply targets. Entries outside
	// the closed set are rejected by Validate.
	ApplyVocabulary []string `toml:"apply_vocabulary"`
	// EnvelopeTimeoutSec discards an open envelope that never closes within
	// this much token time.
	EnvelopeTimeoutSec float64 `toml:"envelope_timeout_sec"`
}

// EDL configures timecode rendering.
type EDL struct {
	FrameRate float64 `toml:"frame_rate"`
}

// Batch configures multi-recording processing.
type Batch struct {
	Workers int `toml:"workers"`
	// ToolTimeoutSec bounds each external subprocess call (ffmpeg, ASR).
	ToolTimeoutSec float64 `toml:"tool_timeout_sec"`
}

// Tools points at the external collaborators.
type Tools struct {
	FFmpeg       string `toml:"ffmpeg"`
	FFprobe      string `toml:"ffprobe"`
	WhisperBin   string `toml:"whisper_bin"`
	WhisperModel string `toml:"whisper_model"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Grammar: Grammar{
			StartKeyword:       "slate",
			EndKeyword:         "done",
			RetroKeyword:       "apply",
			ApplyVocabulary:    []string{"best", "good", "skip", "hook", "quote", "conclusion"},
			EnvelopeTimeoutSec: 15,
		},
		EDL: EDL{FrameRate: 30},
		Batch: Batch{
			Workers:        runtime.NumCPU(),
			ToolTimeoutSec: 1800,
		},
		Tools: Tools{
			FFmpeg:  "ffmpeg",
			FFprobe: "ffprobe",
		},
	}
}

// Load reads a TOML file and overlays it onto Default(). An empty path
// returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

var knownApply = map[string]bool{
	"best": true, "good": true, "skip": true,
	"hook": true, "quote": true, "conclusion": true,
}

func (c Config) Validate() error {
	g := c.Grammar
	if g.StartKeyword == "" || g.EndKeyword == "" || g.RetroKeyword == "" {
		return errors.New("grammar: envelope keywords must be non-empty")
	}
	if g.StartKeyword == g.EndKeyword {
		return errors.New("grammar: start and end keywords must differ")
	}
	if g.EnvelopeTimeoutSec <= 0 {
		return errors.New("grammar: envelope timeout must be > 0")
	}
	if len(g.ApplyVocabulary) == 0 {
		return errors.New("grammar: apply vocabulary is empty")
	}
	for _, w := range g.ApplyVocabulary {
		if !knownApply[w] {
			return fmt.Errorf("grammar: unknown apply target %q", w)
		}
	}
	if c.EDL.FrameRate <= 0 {
		return errors.New("edl: frame rate must be > 0")
	}
	if c.Batch.Workers <= 0 {
		return errors.New("batch: workers must be > 0")
	}
	if c.Batch.ToolTimeoutSec <= 0 {
		return errors.New("batch: tool timeout must be > 0")
	}
	return nil
}
