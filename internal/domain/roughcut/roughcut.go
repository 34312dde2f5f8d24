// Package roughcut assembles the rough cut: one selected take per scene,
// with every other take retained as removed footage for review.
package roughcut

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"slatecut/internal/domain/sceneorder"
	"slatecut/internal/types"
)

// Assemble partitions segments into the selected cut and the removed pile.
// Within a scene group, tag priority picks the take: Best beats Good beats
// the default of lowest take number. Skip-tagged takes never enter the cut
// but are kept in removed with full metadata; segments are partitioned,
// never deleted.
//
// When several takes in a scene carry the same winning tag, the lowest take
// number wins, then the lowest detection index.
func Assemble(segs []types.Segment) (selected, removed []types.Segment) {
	groups, order := groupByScene(segs)

	for _, key := range order {
		group := groups[key]
		pick := pickTake(segs, group)
		for _, idx := range group {
			if idx == pick {
				selected = append(selected, segs[idx])
			} else {
				removed = append(removed, segs[idx])
			}
		}
	}

	sceneorder.Sort(selected)
	sort.SliceStable(removed, func(i, j int) bool {
		return removed[i].Key.DetectionIndex < removed[j].Key.DetectionIndex
	})
	return selected, removed
}

// groupByScene buckets segment indices by scene number. A segment without
// one forms its own group and passes through untouched.
func groupByScene(segs []types.Segment) (map[string][]int, []string) {
	groups := make(map[string][]int)
	var order []string
	for i, s := range segs {
		key := fmt.Sprintf("solo:%d", i)
		if s.Key.Scene != nil {
			key = "scene:" + strconv.FormatFloat(*s.Key.Scene, 'f', -1, 64)
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}
	return groups, order
}

// pickTake returns the index of the take selected for the cut, or -1 when
// every take in the group is skipped.
func pickTake(segs []types.Segment, group []int) int {
	for _, tag := range []types.ApplyTarget{types.ApplyBest, types.ApplyGood} {
		if idx := lowestWith(segs, group, &tag); idx >= 0 {
			return idx
		}
	}
	return lowestWith(segs, group, nil)
}

// lowestWith finds the non-skipped group member carrying tag (or any member
// when tag is nil) with the lowest take number, ties broken by detection
// index.
func lowestWith(segs []types.Segment, group []int, tag *types.ApplyTarget) int {
	best := -1
	for _, idx := range group {
		s := segs[idx]
		if s.HasTag(types.ApplySkip) {
			continue
		}
		if tag != nil && !s.HasTag(*tag) {
			continue
		}
		if best < 0 || takeLess(s, segs[best]) {
			best = idx
		}
	}
	return best
}

func takeLess(a, b types.Segment) bool {
	at, bt := takeOrInf(a), takeOrInf(b)
	if at != bt {
		return at < bt
	}
	return a.Key.DetectionIndex < b.Key.DetectionIndex
}

func takeOrInf(s types.Segment) float64 {
	if s.Take == nil {
		return math.Inf(1)
	}
	return float64(*s.Take)
}
