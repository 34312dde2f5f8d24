// Package segment builds clip intervals from the ordered marker list and
// applies retroactive annotations onto them.
package segment

import (
	"fmt"
	"sort"
	"strconv"

	"slatecut/internal/types"
)

// Build pairs markers into segments covering one recording of clipDuration
// seconds. Retroactive markers create no segments here but still act as
// interval boundaries for orphan starts and standalones.
//
// Intervals that come out empty or inverted are dropped with a diagnostic;
// that never affects sibling segments.
func Build(markers []types.Marker, clipDuration float64) ([]types.Segment, []types.Diagnostic) {
	// Upstream already sorts by cut point; re-sort defensively since pairing
	// correctness depends on it.
	ms := make([]types.Marker, len(markers))
	copy(ms, markers)
	sort.SliceStable(ms, func(i, j int) bool { return ms[i].CutPoint < ms[j].CutPoint })

	// nextCut is the boundary for open-ended intervals: the cut point of the
	// next marker of any kind, or the end of the recording.
	nextCut := func(pos int) float64 {
		if pos+1 < len(ms) {
			return ms[pos+1].CutPoint
		}
		return clipDuration
	}

	var starts, ends []int // positions into ms
	var opens []openInterval
	for pos, m := range ms {
		switch m.Kind {
		case types.KindStart:
			starts = append(starts, pos)
		case types.KindEnd:
			ends = append(ends, pos)
		case types.KindStandalone:
			opens = append(opens, openInterval{pos: pos})
		}
	}

	var diags []types.Diagnostic
	var segs []types.Segment

	// Pair each end with the earliest unconsumed start preceding it.
	consumed := make(map[int]bool)
	for _, endPos := range ends {
		end := ms[endPos]
		paired := false
		for _, startPos := range starts {
			if consumed[startPos] || ms[startPos].CutPoint >= end.CutPoint {
				continue
			}
			consumed[startPos] = true
			start := ms[startPos]
			seg, ok := materialize(start.CutPoint, end.CutPoint, start, &diags)
			if ok {
				seg.SourceMarkerIDs = []int{start.ID, end.ID}
				segs = append(segs, seg)
			}
			paired = true
			break
		}
		if !paired {
			diags = append(diags, types.Diagnostic{
				Kind:    types.DiagUnmatchedEnd,
				At:      end.EnvelopeStart,
				Message: fmt.Sprintf("end marker at %.2fs has no open start", end.EnvelopeStart),
			})
		}
	}

	// Orphan starts extend to the next marker of any kind, or to the end of
	// the recording. Standalones behave the same way.
	for _, startPos := range starts {
		if consumed[startPos] {
			continue
		}
		opens = append(opens, openInterval{pos: startPos})
	}
	for _, o := range opens {
		m := ms[o.pos]
		seg, ok := materialize(m.CutPoint, nextCut(o.pos), m, &diags)
		if ok {
			segs = append(segs, seg)
		}
	}

	sort.SliceStable(segs, func(i, j int) bool { return segs[i].Start < segs[j].Start })
	for i := range segs {
		segs[i].ID = i
	}
	return segs, diags
}

type openInterval struct{ pos int }

// materialize builds a segment from its originating marker, enforcing the
// strict positive-duration invariant.
func materialize(start, end float64, m types.Marker, diags *[]types.Diagnostic) (types.Segment, bool) {
	if end <= start {
		*diags = append(*diags, types.Diagnostic{
			Kind:    types.DiagZeroDurationSegment,
			At:      start,
			Message: fmt.Sprintf("interval [%.3f, %.3f) has no duration", start, end),
		})
		return types.Segment{}, false
	}

	p := m.Parsed
	seg := types.Segment{
		Start: start,
		End:   end,
		Name:  segmentName(p, m.ID),
		Key: types.SceneOrderKey{
			Scene:          p.SceneNumber,
			Step:           p.Step,
			LegacyOrder:    p.LegacyOrder,
			DetectionIndex: m.ID,
		},
		Take:            p.TakeNumber,
		SourceMarkerIDs: []int{m.ID},
	}
	if p.Apply != nil {
		seg.Tags = append(seg.Tags, *p.Apply)
	}
	return seg, true
}

func segmentName(p types.ParsedCommand, detectionIndex int) string {
	if p.Naming != "" {
		return p.Naming
	}
	if p.SceneNumber != nil {
		name := "scene-" + formatScene(*p.SceneNumber)
		if p.TakeNumber != nil {
			name += fmt.Sprintf("-take-%d", *p.TakeNumber)
		}
		return name
	}
	return fmt.Sprintf("clip-%03d", detectionIndex+1)
}

func formatScene(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
