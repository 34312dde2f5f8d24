// Package usecase runs the rough-cut engine for a single recording: token
// stream, marker grammar, segment construction, retroactive annotation,
// ordering, assembly, and export.
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"slatecut/internal/config"
	"slatecut/internal/domain/edl"
	"slatecut/internal/domain/marker"
	"slatecut/internal/domain/roughcut"
	"slatecut/internal/domain/segment"
	"slatecut/internal/domain/tokens"
	"slatecut/internal/ports"
	"slatecut/internal/types"
)

type Deps struct {
	Video ports.VideoTool
	ASR   ports.Transcriber
}

type Usecase struct {
	d   Deps
	cfg config.Config
	log *slog.Logger
}

func New(d Deps, cfg config.Config, log *slog.Logger) Usecase {
	return Usecase{d: d, cfg: cfg, log: log}
}

type Input struct {
	MediaPath string
	// TranscriptPath reuses an existing transcript artifact instead of
	// invoking the ASR collaborator.
	TranscriptPath string
	CacheDir       string
	OutDir         string
	Extract        bool
}

type Result struct {
	Plan types.RoughCutPlan
}

func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	tr, err := u.loadTranscript(ctx, in)
	if err != nil {
		return Result{}, err
	}

	duration := tr.Duration
	if duration <= 0 {
		duration, err = u.d.Video.ProbeDuration(ctx, in.MediaPath)
		if err != nil {
			return Result{}, fmt.Errorf("probe duration: %w", err)
		}
	}

	toks := tokens.FromTranscript(tr)
	grammar := grammarFromConfig(u.cfg.Grammar)

	markers, diags := marker.Parse(toks, grammar)
	u.log.Debug("markers parsed", "count", len(markers), "source", in.MediaPath)

	segs, buildDiags := segment.Build(markers, duration)
	diags = append(diags, buildDiags...)

	diags = append(diags, segment.ApplyRetroactive(segs, markers)...)

	selected, removed := roughcut.Assemble(segs)
	u.log.Info("rough cut assembled",
		"segments", len(segs), "selected", len(selected), "removed", len(removed),
		"diagnostics", len(diags))

	if in.Extract {
		diags = append(diags, u.extractClips(ctx, in, selected)...)
	}

	plan := types.RoughCutPlan{
		ID:          uuid.NewString(),
		Source:      in.MediaPath,
		Duration:    duration,
		Selected:    selected,
		Removed:     removed,
		Diagnostics: diags,
	}

	if err := u.writeOutputs(in.OutDir, plan, toks); err != nil {
		return Result{}, err
	}
	return Result{Plan: plan}, nil
}

func (u Usecase) loadTranscript(ctx context.Context, in Input) (types.Transcript, error) {
	if in.TranscriptPath != "" {
		b, err := os.ReadFile(in.TranscriptPath)
		if err != nil {
			return types.Transcript{}, fmt.Errorf("read transcript: %w", err)
		}
		var tr types.Transcript
		if err := json.Unmarshal(b, &tr); err != nil {
			return types.Transcript{}, fmt.Errorf("parse transcript %s: %w", in.TranscriptPath, err)
		}
		return tr, nil
	}

	wav := filepath.Join(in.CacheDir, "audio.wav")
	if err := u.d.Video.ExtractAudioMono16k(ctx, in.MediaPath, wav); err != nil {
		return types.Transcript{}, err
	}
	tr, err := u.d.ASR.Transcribe(ctx, wav, in.CacheDir)
	if err != nil {
		return types.Transcript{}, err
	}
	tr.Source = in.MediaPath
	return tr, nil
}

// extractClips renders each selected segment. A failed copy extraction is
// retried exactly once with the frame-accurate re-encode strategy; a second
// failure marks that segment failed and moves on.
func (u Usecase) extractClips(ctx context.Context, in Input, selected []types.Segment) []types.Diagnostic {
	clipsDir := filepath.Join(in.OutDir, "clips")
	if err := os.MkdirAll(clipsDir, 0o755); err != nil {
		return []types.Diagnostic{{
			Kind:    types.DiagCollaboratorFailure,
			Message: fmt.Sprintf("create clips dir: %v", err),
		}}
	}

	var diags []types.Diagnostic
	for i, s := range selected {
		out := filepath.Join(clipsDir, fmt.Sprintf("%03d-%s.mp4", i+1, pathSafe(s.Name)))
		err := u.d.Video.ExtractSegment(ctx, in.MediaPath, s.Start, s.End, out, false)
		if err != nil {
			u.log.Warn("copy extraction failed, retrying with re-encode", "segment", s.Name, "err", err)
			err = u.d.Video.ExtractSegment(ctx, in.MediaPath, s.Start, s.End, out, true)
		}
		if err != nil {
			diags = append(diags, types.Diagnostic{
				Kind:    types.DiagCollaboratorFailure,
				At:      s.Start,
				Message: fmt.Sprintf("extract %s: %v", s.Name, err),
			})
		}
	}
	return diags
}

func (u Usecase) writeOutputs(outDir string, plan types.RoughCutPlan, toks []types.Token) error {
	b, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "plan.json"), b, 0o644); err != nil {
		return err
	}

	fps := u.cfg.EDL.FrameRate
	cut := edl.Render(planTitle(plan.Source, "rough cut"), plan.Selected, fps)
	if err := os.WriteFile(filepath.Join(outDir, "selected.edl"), []byte(cut), 0o644); err != nil {
		return err
	}
	// The source tape: everything excluded from the cut, exported separately
	// so review never requires the original plan file.
	tape := edl.Render(planTitle(plan.Source, "source tape"), plan.Removed, fps)
	if err := os.WriteFile(filepath.Join(outDir, "removed.edl"), []byte(tape), 0o644); err != nil {
		return err
	}

	txt := removedTranscript(plan.Removed, toks, fps)
	return os.WriteFile(filepath.Join(outDir, "removed_transcript.txt"), []byte(txt), 0o644)
}

// removedTranscript renders the spoken content of removed segments, keyed by
// segment name and original timecode, for non-destructive review.
func removedTranscript(removed []types.Segment, toks []types.Token, fps float64) string {
	var b strings.Builder
	for _, s := range removed {
		fmt.Fprintf(&b, "== %s [%s - %s]\n", s.Name,
			edl.FromSeconds(s.Start, fps), edl.FromSeconds(s.End, fps))
		var words []string
		for _, t := range toks {
			if t.Start >= s.Start && t.Start < s.End {
				words = append(words, t.Text)
			}
		}
		b.WriteString(strings.Join(words, " "))
		b.WriteString("\n\n")
	}
	return b.String()
}

func grammarFromConfig(g config.Grammar) marker.Grammar {
	apply := make(map[string]types.ApplyTarget, len(g.ApplyVocabulary))
	for _, w := range g.ApplyVocabulary {
		apply[w] = types.ApplyTarget(w)
	}
	return marker.Grammar{
		StartKeyword: g.StartKeyword,
		EndKeyword:   g.EndKeyword,
		RetroKeyword: g.RetroKeyword,
		Apply:        apply,
		TimeoutSec:   g.EnvelopeTimeoutSec,
	}
}

func planTitle(source, suffix string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	if base == "" || base == "." {
		base = "recording"
	}
	return base + " " + suffix
}

func pathSafe(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		default:
			return '-'
		}
	}, s)
}
