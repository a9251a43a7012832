package detect

import (
	"testing"

	"github.com/cloakscan/cloakscan/internal/types"
)

func TestResolveKeepsHigherConfidence(t *testing.T) {
	// Two overlapping claims on "mysupersecretkey": the stronger one
	// survives.
	a := types.Detection{Pattern: "a", Start: 0, End: 13, Confidence: 0.7}
	b := types.Detection{Pattern: "b", Start: 2, End: 16, Confidence: 0.9}
	out := resolveOverlaps([]types.Detection{a, b})
	if len(out) != 1 {
		t.Fatalf("expected 1 survivor, got %d", len(out))
	}
	if out[0].Pattern != "b" {
		t.Fatalf("kept %s, want b", out[0].Pattern)
	}
}

func TestResolveTieBreaksOnLength(t *testing.T) {
	a := types.Detection{Pattern: "short", Start: 0, End: 10, Confidence: 0.8}
	b := types.Detection{Pattern: "long", Start: 0, End: 20, Confidence: 0.8}
	out := resolveOverlaps([]types.Detection{a, b})
	if len(out) != 1 || out[0].Pattern != "long" {
		t.Fatalf("tie-break failed: %+v", out)
	}
}

func TestResolveKeepsDisjoint(t *testing.T) {
	dets := []types.Detection{
		{Pattern: "c", Start: 40, End: 50, Confidence: 0.6},
		{Pattern: "a", Start: 0, End: 10, Confidence: 0.9},
		{Pattern: "b", Start: 20, End: 30, Confidence: 0.5},
	}
	out := resolveOverlaps(dets)
	if len(out) != 3 {
		t.Fatalf("disjoint spans merged: %+v", out)
	}
	for i := 1; i < len(out); i++ {
		if out[i-1].End > out[i].Start {
			t.Fatalf("output overlaps: %+v", out)
		}
		if out[i-1].Start > out[i].Start {
			t.Fatalf("output unsorted: %+v", out)
		}
	}
}

func TestResolveChain(t *testing.T) {
	// a-b overlap, b-c overlap, a-c do not. The strongest of the chain
	// wins its region and the sweep continues from its end.
	dets := []types.Detection{
		{Pattern: "a", Start: 0, End: 10, Confidence: 0.6},
		{Pattern: "b", Start: 8, End: 18, Confidence: 0.9},
		{Pattern: "c", Start: 16, End: 26, Confidence: 0.5},
	}
	out := resolveOverlaps(dets)
	if len(out) != 1 || out[0].Pattern != "b" {
		t.Fatalf("chain resolution: %+v", out)
	}
}
