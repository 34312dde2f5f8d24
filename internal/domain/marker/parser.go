// Package marker recognizes spoken command envelopes ("slate ... done") in a
// token stream and turns them into structured markers with cut points.
package marker

import (
	"fmt"
	"sort"
	"strings"

	"slatecut/internal/types"
)

// Grammar is the recognized command vocabulary. Build one from engine config;
// DefaultGrammar matches the built-in keyword set.
type Grammar struct {
	StartKeyword string
	EndKeyword   string
	RetroKeyword string
	// Apply maps spoken words to apply targets.
	Apply map[string]types.ApplyTarget
	// TimeoutSec is the maximum token time an open envelope may span before
	// it is discarded as malformed.
	TimeoutSec float64
}

func DefaultGrammar() Grammar {
	return Grammar{
		StartKeyword: "slate",
		EndKeyword:   "done",
		RetroKeyword: "apply",
		Apply: map[string]types.ApplyTarget{
			"best":       types.ApplyBest,
			"good":       types.ApplyGood,
			"skip":       types.ApplySkip,
			"hook":       types.ApplyHook,
			"quote":      types.ApplyQuote,
			"conclusion": types.ApplyConclusion,
		},
		TimeoutSec: 15,
	}
}

// Parse scans the sorted token stream for command envelopes and returns the
// recognized markers in time order, IDs assigned sequentially. An envelope
// that never closes within the timeout window is discarded with a
// MalformedMarker diagnostic and scanning resumes after the orphaned start
// keyword.
func Parse(toks []types.Token, g Grammar) ([]types.Marker, []types.Diagnostic) {
	var markers []types.Marker
	var diags []types.Diagnostic

	i := 0
	for i < len(toks) {
		if !keywordEq(toks[i].Text, g.StartKeyword) {
			i++
			continue
		}

		open := toks[i]
		var body []types.Token
		closeIdx := -1
		for j := i + 1; j < len(toks); j++ {
			if toks[j].Start-open.Start > g.TimeoutSec {
				break
			}
			if keywordEq(toks[j].Text, g.EndKeyword) {
				closeIdx = j
				break
			}
			body = append(body, toks[j])
		}

		if closeIdx < 0 {
			diags = append(diags, types.Diagnostic{
				Kind:    types.DiagMalformedMarker,
				At:      open.Start,
				Message: fmt.Sprintf("envelope opened at %.2fs never closed", open.Start),
			})
			i++
			continue
		}

		markers = append(markers, buildMarker(open, toks[closeIdx], body, g))
		i = closeIdx + 1
	}

	sort.SliceStable(markers, func(a, b int) bool {
		return markers[a].EnvelopeStart < markers[b].EnvelopeStart
	})
	for idx := range markers {
		markers[idx].ID = idx
	}
	return markers, diags
}

func buildMarker(open, closing types.Token, body []types.Token, g Grammar) types.Marker {
	words := make([]string, 0, len(body))
	for _, t := range body {
		if w := normalizeWord(t.Text); w != "" {
			words = append(words, w)
		}
	}

	retro := len(words) > 0 && words[0] == g.RetroKeyword
	if retro {
		words = words[1:]
	}

	parsed, intent := parseCommand(words, g)

	kind := types.KindStandalone
	switch {
	case retro:
		kind = types.KindRetroactive
	case intent == intentStart:
		kind = types.KindStart
	case intent == intentEnd:
		kind = types.KindEnd
	}

	// The asymmetric cut point rule: the operator narrates before acting,
	// so opening instructions cut after the envelope while closing and
	// retroactive instructions cut before it.
	cut := closing.End
	if kind == types.KindEnd || kind == types.KindRetroactive {
		cut = open.Start
	}

	return types.Marker{
		EnvelopeStart: open.Start,
		EnvelopeEnd:   closing.End,
		CutPoint:      cut,
		Kind:          kind,
		Parsed:        parsed,
	}
}

func keywordEq(tokenText, keyword string) bool {
	return normalizeWord(tokenText) == keyword
}

// normalizeWord lowercases and strips the punctuation ASR engines attach to
// spoken words ("Slate," -> "slate").
func normalizeWord(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Trim(s, ".,!?;:\"'")
}
