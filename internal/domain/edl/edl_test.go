package edl

import (
	"math"
	"strings"
	"testing"

	"slatecut/internal/types"
)

func TestTimecodeRoundTrip(t *testing.T) {
	t.Parallel()

	cases := []struct {
		sec float64
		fps float64
	}{
		{0, 30},
		{1.0 / 3, 30},
		{12.345, 30},
		{59.999, 30},
		{61.5, 25},
		{3599.97, 24},
		{3725.04, 60},
	}
	for _, tc := range cases {
		tc := tc
		frame := 1 / tc.fps
		tcode := FromSeconds(tc.sec, tc.fps)
		back, err := ToSeconds(tcode, tc.fps)
		if err != nil {
			t.Fatalf("ToSeconds(%q): %v", tcode, err)
		}
		if diff := math.Abs(back - tc.sec); diff > frame {
			t.Fatalf("round trip of %vs at %vfps drifted %vs (> one frame %vs), tc=%s",
				tc.sec, tc.fps, diff, frame, tcode)
		}
	}
}

func TestFromSeconds_RoundsToNearestFrame(t *testing.T) {
	t.Parallel()

	// 0.49 of a frame rounds down, 0.51 rounds up.
	if got := FromSeconds(1.0+0.49/30, 30); got != "00:00:01:00" {
		t.Fatalf("got %s", got)
	}
	if got := FromSeconds(1.0+0.51/30, 30); got != "00:00:01:01" {
		t.Fatalf("got %s", got)
	}
}

func TestToSeconds_RejectsBadInput(t *testing.T) {
	t.Parallel()

	if _, err := ToSeconds("not a timecode", 30); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := ToSeconds("00:00:00:31", 30); err == nil {
		t.Fatal("expected frame-out-of-range error")
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	segs := []types.Segment{
		{Start: 10, End: 20, Name: "scene-1-take-2"},
		{Start: 40, End: 45.5, Name: "outro"},
	}
	got := Render("myshow rough cut", segs, 30)

	if !strings.HasPrefix(got, "TITLE: myshow rough cut\nFCM: NON-DROP FRAME\n") {
		t.Fatalf("bad header:\n%s", got)
	}
	for _, want := range []string{
		"001  AX       V     C        00:00:10:00 00:00:20:00 00:00:00:00 00:00:10:00",
		"002  AX       V     C        00:00:40:00 00:00:45:15 00:00:10:00 00:00:15:15",
		"* FROM CLIP NAME: scene-1-take-2",
		"* FROM CLIP NAME: outro",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("missing %q in:\n%s", want, got)
		}
	}
}

func TestRender_Empty(t *testing.T) {
	t.Parallel()

	got := Render("empty", nil, 30)
	if !strings.Contains(got, "TITLE: empty") || strings.Contains(got, "001") {
		t.Fatalf("unexpected render:\n%s", got)
	}
}
