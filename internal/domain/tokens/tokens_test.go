package tokens

import (
	"testing"

	"slatecut/internal/types"
)

func TestFromTranscript_FlattensAndSorts(t *testing.T) {
	t.Parallel()

	tr := types.Transcript{Segments: []types.TranscriptSegment{
		{Start: 5, End: 8, Text: "second sentence", Words: []types.Word{
			{Start: 5.0, End: 5.5, Word: "second"},
			{Start: 5.6, End: 6.2, Word: "sentence"},
		}},
		{Start: 0, End: 3, Text: "first one", Words: []types.Word{
			{Start: 0.1, End: 0.6, Word: "first"},
			{Start: 0.7, End: 1.1, Word: "one"},
		}},
	}}

	toks := FromTranscript(tr)
	if len(toks) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(toks))
	}
	for i := 1; i < len(toks); i++ {
		if toks[i].Start < toks[i-1].Start {
			t.Fatalf("tokens not sorted by start: %+v", toks)
		}
	}
	if toks[0].Text != "first" {
		t.Fatalf("expected earliest word first, got %q", toks[0].Text)
	}
}

func TestFromTranscript_InterpolatesMissingTimestamps(t *testing.T) {
	t.Parallel()

	tr := types.Transcript{Segments: []types.TranscriptSegment{
		{Start: 10, End: 14, Text: "a b c d", Words: []types.Word{
			{Start: 10.0, End: 10.8, Word: "a"},
			{Word: "b"}, // no timestamps
			{Word: "c"},
			{Start: 13.1, End: 13.9, Word: "d"},
		}},
	}}

	toks := FromTranscript(tr)
	if len(toks) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(toks))
	}
	for _, tok := range toks {
		if tok.End <= tok.Start {
			t.Fatalf("token %q has empty span [%v, %v)", tok.Text, tok.Start, tok.End)
		}
		if tok.Start < 10 || tok.End > 14 {
			t.Fatalf("interpolated token %q escapes the sentence span: [%v, %v)", tok.Text, tok.Start, tok.End)
		}
	}
}

func TestFromTranscript_UntimedSentenceFallsBackToText(t *testing.T) {
	t.Parallel()

	tr := types.Transcript{Segments: []types.TranscriptSegment{
		{Start: 2, End: 4, Text: "slate scene one done"},
	}}

	toks := FromTranscript(tr)
	if len(toks) != 4 {
		t.Fatalf("expected 4 tokens from sentence text, got %d", len(toks))
	}
	if toks[0].Text != "slate" || toks[3].Text != "done" {
		t.Fatalf("unexpected tokens: %+v", toks)
	}
	for i := 1; i < len(toks); i++ {
		if toks[i].Start < toks[i-1].Start {
			t.Fatalf("interpolated tokens must remain ordered: %+v", toks)
		}
	}
}

func TestFromTranscript_DropsBlankWords(t *testing.T) {
	t.Parallel()

	tr := types.Transcript{Segments: []types.TranscriptSegment{
		{Start: 0, End: 2, Text: "x", Words: []types.Word{
			{Start: 0.1, End: 0.5, Word: "  "},
			{Start: 0.6, End: 1.0, Word: "x"},
		}},
	}}
	toks := FromTranscript(tr)
	if len(toks) != 1 || toks[0].Text != "x" {
		t.Fatalf("expected blank words dropped, got %+v", toks)
	}
}
