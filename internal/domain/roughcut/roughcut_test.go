package roughcut

import (
	"testing"

	"slatecut/internal/types"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }

func take(scene float64, takeN, detection int, tags ...types.ApplyTarget) types.Segment {
	return types.Segment{
		Start: float64(detection) * 10,
		End:   float64(detection)*10 + 8,
		Name:  "t",
		Key:   types.SceneOrderKey{Scene: fp(scene), DetectionIndex: detection},
		Take:  ip(takeN),
		Tags:  tags,
	}
}

func TestAssemble_BestTagWinsScene(t *testing.T) {
	t.Parallel()

	// "slate scene one take one done ... slate scene one take two done ...
	// slate apply best done": take two carries Best and is selected, take
	// one is removed but retained.
	one := take(1, 1, 0)
	two := take(1, 2, 1, types.ApplyBest)
	selected, removed := Assemble([]types.Segment{one, two})

	if len(selected) != 1 || selected[0].Key.DetectionIndex != 1 {
		t.Fatalf("expected take two selected, got %+v", selected)
	}
	if len(removed) != 1 || removed[0].Key.DetectionIndex != 0 {
		t.Fatalf("expected take one removed, got %+v", removed)
	}
}

func TestAssemble_TagPriority(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		segs []types.Segment
		want int // detection index of the selected take
	}{
		{
			name: "best beats good",
			segs: []types.Segment{take(1, 1, 0, types.ApplyGood), take(1, 2, 1, types.ApplyBest)},
			want: 1,
		},
		{
			name: "good beats untagged",
			segs: []types.Segment{take(1, 1, 0), take(1, 2, 1, types.ApplyGood)},
			want: 1,
		},
		{
			name: "default picks lowest take number",
			segs: []types.Segment{take(1, 3, 0), take(1, 1, 1), take(1, 2, 2)},
			want: 1,
		},
		{
			name: "same tag resolves by take number then detection",
			segs: []types.Segment{take(1, 2, 0, types.ApplyBest), take(1, 1, 1, types.ApplyBest)},
			want: 1,
		},
		{
			name: "skip never selected even when tagged best",
			segs: []types.Segment{take(1, 1, 0, types.ApplyBest, types.ApplySkip), take(1, 2, 1)},
			want: 1,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			selected, removed := Assemble(tc.segs)
			if len(selected) != 1 {
				t.Fatalf("expected exactly one selected take, got %d", len(selected))
			}
			if got := selected[0].Key.DetectionIndex; got != tc.want {
				t.Fatalf("selected detection index = %d, want %d", got, tc.want)
			}
			if len(selected)+len(removed) != len(tc.segs) {
				t.Fatalf("segments must be partitioned, never deleted: %d + %d != %d",
					len(selected), len(removed), len(tc.segs))
			}
		})
	}
}

func TestAssemble_AllSkippedSelectsNothing(t *testing.T) {
	t.Parallel()

	segs := []types.Segment{
		take(1, 1, 0, types.ApplySkip),
		take(1, 2, 1, types.ApplySkip),
	}
	selected, removed := Assemble(segs)
	if len(selected) != 0 {
		t.Fatalf("expected empty cut, got %+v", selected)
	}
	if len(removed) != 2 {
		t.Fatalf("skipped takes must be retained for review, got %d", len(removed))
	}
}

func TestAssemble_SceneLessSegmentsPassThrough(t *testing.T) {
	t.Parallel()

	a := types.Segment{Start: 0, End: 5, Name: "a", Key: types.SceneOrderKey{DetectionIndex: 0}}
	b := types.Segment{Start: 5, End: 9, Name: "b", Key: types.SceneOrderKey{DetectionIndex: 1}}
	selected, removed := Assemble([]types.Segment{a, b})
	if len(selected) != 2 || len(removed) != 0 {
		t.Fatalf("untagged solo segments pass through unchanged: %d selected, %d removed",
			len(selected), len(removed))
	}
}

func TestAssemble_SelectedInSceneOrderRemovedInDetectionOrder(t *testing.T) {
	t.Parallel()

	segs := []types.Segment{
		take(7, 1, 0),
		take(6.5, 1, 1),
		take(6, 1, 2),
		take(6, 2, 3, types.ApplySkip),
	}
	selected, removed := Assemble(segs)

	if len(selected) != 3 {
		t.Fatalf("expected 3 selected scenes, got %d", len(selected))
	}
	order := []float64{6, 6.5, 7}
	for i, want := range order {
		if *selected[i].Key.Scene != want {
			t.Fatalf("selected[%d] scene = %v, want %v", i, *selected[i].Key.Scene, want)
		}
	}
	if len(removed) != 1 || removed[0].Key.DetectionIndex != 3 {
		t.Fatalf("unexpected removed list: %+v", removed)
	}
}
