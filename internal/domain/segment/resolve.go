package segment

import (
	"fmt"
	"sort"

	"slatecut/internal/types"
)

// ApplyRetroactive attaches each retroactive marker's apply target to the
// most recently closed segment at the marker's cut point: the segment with
// the greatest end time not after the cut point. Tags accumulate in spoken
// order; nothing is ever overwritten or cleared.
//
// Targets are resolved over the already-built segment list by binary search
// on end time, so resolution never mutates interval construction state.
func ApplyRetroactive(segs []types.Segment, markers []types.Marker) []types.Diagnostic {
	byEnd := make([]int, len(segs))
	for i := range segs {
		byEnd[i] = i
	}
	sort.SliceStable(byEnd, func(a, b int) bool { return segs[byEnd[a]].End < segs[byEnd[b]].End })

	var diags []types.Diagnostic
	for _, m := range markers {
		if m.Kind != types.KindRetroactive {
			continue
		}

		// First segment index (in end order) whose end exceeds the cut point;
		// the target is the one just before it.
		n := sort.Search(len(byEnd), func(i int) bool {
			return segs[byEnd[i]].End > m.CutPoint
		})
		if n == 0 {
			diags = append(diags, types.Diagnostic{
				Kind:    types.DiagAmbiguousRetroTarget,
				At:      m.EnvelopeStart,
				Message: fmt.Sprintf("retroactive marker at %.2fs has no closed segment to annotate", m.EnvelopeStart),
			})
			continue
		}
		if m.Parsed.Apply == nil {
			diags = append(diags, types.Diagnostic{
				Kind:    types.DiagMalformedMarker,
				At:      m.EnvelopeStart,
				Message: fmt.Sprintf("retroactive marker at %.2fs names no recognized apply target", m.EnvelopeStart),
			})
			continue
		}

		target := &segs[byEnd[n-1]]
		target.Tags = append(target.Tags, *m.Parsed.Apply)
		target.SourceMarkerIDs = append(target.SourceMarkerIDs, m.ID)
	}
	return diags
}
