// Package edl renders segment lists as CMX3600-style edit decision lists
// and handles timecode conversion at a configurable frame rate.
package edl

import (
	"fmt"
	"strings"

	"slatecut/internal/types"
)

// Render writes an EDL for the given segments in their given order. Source
// in/out timecodes come from the segment interval; record timecodes pack the
// entries back to back from zero. The segment name travels as the clip-name
// comment so NLEs keep it visible.
func Render(title string, segs []types.Segment, fps float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "TITLE: %s\n", title)
	b.WriteString("FCM: NON-DROP FRAME\n\n")

	rec := 0.0
	for i, s := range segs {
		dur := s.End - s.Start
		fmt.Fprintf(&b, "%03d  AX       V     C        %s %s %s %s\n",
			i+1,
			FromSeconds(s.Start, fps),
			FromSeconds(s.End, fps),
			FromSeconds(rec, fps),
			FromSeconds(rec+dur, fps),
		)
		fmt.Fprintf(&b, "* FROM CLIP NAME: %s\n\n", s.Name)
		rec += dur
	}
	return b.String()
}
