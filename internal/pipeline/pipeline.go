// Package pipeline orchestrates batch processing: it fans recordings out to
// a worker pool, isolates per-recording failures, and renders the batch
// summary. Workers share no mutable state; each produces its own plan under
// its own run directory.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/jedib0t/go-pretty/v6/table"

	"slatecut/internal/config"
	"slatecut/internal/ports"
	"slatecut/internal/ports/adapters/ffmpeg"
	"slatecut/internal/ports/adapters/whispercpp"
	"slatecut/internal/types"
	"slatecut/internal/usecase"
)

type Config struct {
	Inputs []string
	OutDir string
	// TranscriptDir holds pre-existing transcript artifacts named
	// <recording-base>.json; a matching artifact skips the ASR call.
	TranscriptDir string
	Extract       bool

	// CacheDir is the base directory for local artifacts (audio, transcripts).
	// If empty, defaults to ".cache".
	CacheDir string

	Engine config.Config
	Logger *slog.Logger
}

func (c Config) Validate() error {
	if len(c.Inputs) == 0 {
		return errors.New("no inputs given")
	}
	for _, in := range c.Inputs {
		if in == "" {
			return errors.New("input path is empty")
		}
	}
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine config: %w", err)
	}
	return nil
}

// UnitResult is the outcome for one recording. Err is set when the unit
// failed as a whole; sibling units are unaffected.
type UnitResult struct {
	Input  string
	OutDir string
	Plan   *types.RoughCutPlan
	Err    error
}

// Run processes every input recording, at most Engine.Batch.Workers at a
// time. Results come back in input order. Run itself only fails on invalid
// configuration; per-recording failures live in the results.
func Run(ctx context.Context, cfg Config) ([]UnitResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	workers := cfg.Engine.Batch.Workers
	if workers > len(cfg.Inputs) {
		workers = len(cfg.Inputs)
	}

	results := make([]UnitResult, len(cfg.Inputs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = runUnit(ctx, cfg, log, cfg.Inputs[i])
			}
		}()
	}
	for i := range cfg.Inputs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results, nil
}

func runUnit(ctx context.Context, cfg Config, log *slog.Logger, input string) UnitResult {
	res := UnitResult{Input: input}

	timeout := time.Duration(cfg.Engine.Batch.ToolTimeoutSec * float64(time.Second))
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	baseCache := cfg.CacheDir
	if baseCache == "" {
		baseCache = ".cache"
	}
	cacheDir := filepath.Join(baseCache, "runs", hash(input))
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		res.Err = err
		return res
	}

	outRoot := cfg.OutDir
	if outRoot == "" {
		outRoot = "out"
	}
	runOutDir := buildRunOutDir(outRoot, input, time.Now().UTC())
	if err := os.MkdirAll(runOutDir, 0o755); err != nil {
		res.Err = err
		return res
	}
	res.OutDir = runOutDir

	tools := cfg.Engine.Tools
	deps := usecase.Deps{
		Video: ffmpeg.New(tools.FFmpeg, tools.FFprobe),
		ASR:   whispercpp.New(tools.WhisperBin, tools.WhisperModel),
	}
	uc := usecase.New(deps, cfg.Engine, log.With("unit", filepath.Base(input)))

	out, err := uc.Run(ctx, usecase.Input{
		MediaPath:      input,
		TranscriptPath: findTranscript(cfg.TranscriptDir, input),
		CacheDir:       cacheDir,
		OutDir:         runOutDir,
		Extract:        cfg.Extract,
	})
	if err != nil {
		log.Error("unit failed", "input", input, "err", err)
		res.Err = err
		return res
	}

	res.Plan = &out.Plan
	return res
}

func findTranscript(dir, input string) string {
	if dir == "" {
		return ""
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	p := filepath.Join(dir, base+".json")
	if _, err := os.Stat(p); err != nil {
		return ""
	}
	return p
}

// RenderSummary formats the per-recording batch outcome as a table.
func RenderSummary(results []UnitResult) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Recording", "Segments", "Selected", "Removed", "Diagnostics", "Status"})
	for _, r := range results {
		name := filepath.Base(r.Input)
		if r.Err != nil {
			t.AppendRow(table.Row{name, "-", "-", "-", "-", "failed: " + r.Err.Error()})
			continue
		}
		p := r.Plan
		t.AppendRow(table.Row{
			name,
			len(p.Selected) + len(p.Removed),
			len(p.Selected),
			len(p.Removed),
			len(p.Diagnostics),
			"ok",
		})
	}
	return t.Render()
}

func buildRunOutDir(outRoot, input string, now time.Time) string {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	name = normalizePathSegment(name)
	if name == "" {
		name = "input"
	}
	ts := now.UTC().Format("20060102-150405Z")
	runSeed := fmt.Sprintf("%s|%d", input, now.UTC().UnixNano())
	suffix := hash(runSeed)[:6]
	return filepath.Join(outRoot, fmt.Sprintf("%s-%s-%s", name, ts, suffix))
}

func normalizePathSegment(s string) string {
	var b strings.Builder
	prevDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func hash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])[:12]
}

// ensure adapters implement ports
var _ ports.VideoTool = (*ffmpeg.Adapter)(nil)
var _ ports.Transcriber = (*whispercpp.Adapter)(nil)
