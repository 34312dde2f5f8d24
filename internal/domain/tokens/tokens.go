// Package tokens normalizes the external transcript into the internal token
// stream the marker parser scans.
package tokens

import (
	"sort"
	"strings"

	"slatecut/internal/types"
)

// FromTranscript flattens a transcript into tokens sorted ascending by start
// time. Words whose timestamps are missing or inverted get approximate
// timestamps derived proportionally from the enclosing sentence span; that
// is a documented fallback, not an error.
func FromTranscript(tr types.Transcript) []types.Token {
	var out []types.Token
	for _, seg := range tr.Segments {
		out = append(out, segmentTokens(seg)...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

func segmentTokens(seg types.TranscriptSegment) []types.Token {
	words := seg.Words
	if len(words) == 0 {
		words = splitUntimed(seg.Text)
	}

	toks := make([]types.Token, 0, len(words))
	for _, w := range words {
		text := strings.TrimSpace(w.Word)
		if text == "" {
			continue
		}
		toks = append(toks, types.Token{Text: text, Start: w.Start, End: w.End})
	}

	// Interpolate any word lacking a usable span. Position within the
	// sentence span is proportional to word index, which is close enough
	// for envelope scanning.
	span := seg.End - seg.Start
	if span > 0 {
		per := span / float64(len(toks)+1)
		for i := range toks {
			if toks[i].End > toks[i].Start {
				continue
			}
			toks[i].Start = seg.Start + per*float64(i)
			toks[i].End = seg.Start + per*float64(i+1)
		}
	}

	kept := toks[:0]
	for _, t := range toks {
		if t.End > t.Start {
			kept = append(kept, t)
		}
	}
	return kept
}

func splitUntimed(text string) []types.Word {
	fields := strings.Fields(text)
	words := make([]types.Word, len(fields))
	for i, f := range fields {
		words[i] = types.Word{Word: f}
	}
	return words
}
