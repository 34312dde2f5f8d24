package segment

import (
	"testing"

	"slatecut/internal/types"
)

func retro(id int, cut float64, target types.ApplyTarget) types.Marker {
	return types.Marker{
		ID:            id,
		EnvelopeStart: cut,
		EnvelopeEnd:   cut + 1.5,
		CutPoint:      cut,
		Kind:          types.KindRetroactive,
		Parsed:        types.ParsedCommand{Apply: &target},
	}
}

func TestApplyRetroactive_TargetsMostRecentlyClosed(t *testing.T) {
	t.Parallel()

	segs := []types.Segment{
		{ID: 0, Start: 0, End: 10, Name: "a"},
		{ID: 1, Start: 10, End: 20, Name: "b"},
		{ID: 2, Start: 20, End: 30, Name: "c"},
	}
	diags := ApplyRetroactive(segs, []types.Marker{retro(9, 20, types.ApplyBest)})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if !segs[1].HasTag(types.ApplyBest) {
		t.Fatalf("expected tag on the segment closed at the cut point, tags: %v %v %v",
			segs[0].Tags, segs[1].Tags, segs[2].Tags)
	}
	if segs[0].Tags != nil || segs[2].Tags != nil {
		t.Fatalf("only the target segment may be annotated")
	}
}

func TestApplyRetroactive_TagsAccumulateInOrder(t *testing.T) {
	t.Parallel()

	segs := []types.Segment{{ID: 0, Start: 0, End: 10}}
	diags := ApplyRetroactive(segs, []types.Marker{
		retro(1, 11, types.ApplyGood),
		retro(2, 13, types.ApplyHook),
		retro(3, 15, types.ApplyGood),
	})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	want := []types.ApplyTarget{types.ApplyGood, types.ApplyHook, types.ApplyGood}
	if len(segs[0].Tags) != len(want) {
		t.Fatalf("tags = %v, want %v", segs[0].Tags, want)
	}
	for i, tag := range want {
		if segs[0].Tags[i] != tag {
			t.Fatalf("tags = %v, want %v", segs[0].Tags, want)
		}
	}
}

func TestApplyRetroactive_NoPriorSegment(t *testing.T) {
	t.Parallel()

	// A lone "apply hook" with nothing before it: zero segments touched, one
	// diagnostic, no crash.
	var segs []types.Segment
	diags := ApplyRetroactive(segs, []types.Marker{retro(0, 5, types.ApplyHook)})
	if len(diags) != 1 || diags[0].Kind != types.DiagAmbiguousRetroTarget {
		t.Fatalf("expected AmbiguousRetroactiveTarget, got %v", diags)
	}
}

func TestApplyRetroactive_SegmentClosingAfterCutIsNotATarget(t *testing.T) {
	t.Parallel()

	segs := []types.Segment{{ID: 0, Start: 0, End: 10}}
	diags := ApplyRetroactive(segs, []types.Marker{retro(1, 4, types.ApplyBest)})
	if len(diags) != 1 || diags[0].Kind != types.DiagAmbiguousRetroTarget {
		t.Fatalf("a still-open segment must not be annotated, got %v", diags)
	}
	if len(segs[0].Tags) != 0 {
		t.Fatalf("unexpected tags: %v", segs[0].Tags)
	}
}

func TestApplyRetroactive_MissingApplyWord(t *testing.T) {
	t.Parallel()

	segs := []types.Segment{{ID: 0, Start: 0, End: 10}}
	m := types.Marker{ID: 1, EnvelopeStart: 12, CutPoint: 12, Kind: types.KindRetroactive}
	diags := ApplyRetroactive(segs, []types.Marker{m})
	if len(diags) != 1 || diags[0].Kind != types.DiagMalformedMarker {
		t.Fatalf("expected MalformedMarker for apply without a target word, got %v", diags)
	}
	if len(segs[0].Tags) != 0 {
		t.Fatalf("unexpected tags: %v", segs[0].Tags)
	}
}
