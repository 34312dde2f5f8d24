// Package sceneorder computes the total order over segments used for the
// final cut: decimal scene numbers first, then step (with the deprecated
// order field as its fallback), then detection order.
package sceneorder

import (
	"math"
	"sort"

	"slatecut/internal/types"
)

// Less is the total-order comparator over scene keys. Absent numeric fields
// sort after present ones within their tier, so scene 6.5 lands strictly
// between 6 and 7 and unscoped segments trail scoped ones. The deprecated
// legacy order field substitutes for a missing step (tier 2, never tier 1),
// which keeps replayed old recordings interleaving deterministically with
// step-tagged ones. DetectionIndex is always present and breaks every
// remaining tie, so the order is total and stable.
func Less(a, b types.SceneOrderKey) bool {
	if as, bs := orInf(a.Scene), orInf(b.Scene); as != bs {
		return as < bs
	}
	if at, bt := tier2(a), tier2(b); at != bt {
		return at < bt
	}
	return a.DetectionIndex < b.DetectionIndex
}

// Sort orders segments in place by their scene keys.
func Sort(segs []types.Segment) {
	sort.SliceStable(segs, func(i, j int) bool { return Less(segs[i].Key, segs[j].Key) })
}

func tier2(k types.SceneOrderKey) float64 {
	if k.Step != nil {
		return float64(*k.Step)
	}
	if k.LegacyOrder != nil {
		return float64(*k.LegacyOrder)
	}
	return math.Inf(1)
}

func orInf(v *float64) float64 {
	if v == nil {
		return math.Inf(1)
	}
	return *v
}
