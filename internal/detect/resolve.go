package detect

import (
	"sort"

	"github.com/cloakscan/cloakscan/internal/types"
)

// resolveOverlaps reduces raw detections to a non-overlapping set sorted
// by position. Among intersecting spans the higher confidence wins, with
// the longer span as tie-break; identical spans from different patterns
// collapse the same way.
func resolveOverlaps(dets []types.Detection) []types.Detection {
	if len(dets) <= 1 {
		return dets
	}
	sort.SliceStable(dets, func(i, j int) bool {
		if dets[i].Start != dets[j].Start {
			return dets[i].Start < dets[j].Start
		}
		if dets[i].Confidence != dets[j].Confidence {
			return dets[i].Confidence > dets[j].Confidence
		}
		return dets[i].Len() > dets[j].Len()
	})
	out := make([]types.Detection, 0, len(dets))
	kept := dets[0]
	for _, d := range dets[1:] {
		if d.Start < kept.End {
			if betterThan(d, kept) {
				kept = d
			}
			continue
		}
		out = append(out, kept)
		kept = d
	}
	return append(out, kept)
}

func betterThan(a, b types.Detection) bool {
	if a.Confidence != b.Confidence {
		return a.Confidence > b.Confidence
	}
	return a.Len() > b.Len()
}
