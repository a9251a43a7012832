package detect

import (
	"strings"
	"testing"

	"github.com/cloakscan/cloakscan/internal/types"
)

const randomCore = "xK9mN3pQ7rS5tV2wY4zA6bC8dE0fG1hI3jL5nO7p"

func TestEntropyFindsPaddedSecret(t *testing.T) {
	e := New(types.DetectionOptions{Sensitivity: types.SensStrict})
	content := strings.Repeat("a", 30) + randomCore + strings.Repeat("b", 30)
	dets := e.scanEntropy(content)
	if len(dets) == 0 {
		t.Fatal("no entropy detection for padded random core")
	}
	coreStart := 30
	coreEnd := 30 + len(randomCore)
	var inside bool
	for _, d := range dets {
		if d.Pattern != "entropy" || d.Type != types.TypeGenericSecret {
			t.Fatalf("unexpected detection: %+v", d)
		}
		if d.Start >= coreStart && d.End <= coreEnd {
			inside = true
		}
	}
	if !inside {
		t.Fatalf("no detection inside the high-entropy core: %+v", dets)
	}
}

func TestEntropyIgnoresRepeatedFiller(t *testing.T) {
	e := New(types.DetectionOptions{Sensitivity: types.SensStrict})
	if dets := e.scanEntropy(strings.Repeat("a", 200)); len(dets) != 0 {
		t.Fatalf("repeated filler triggered entropy: %+v", dets)
	}
	if dets := e.scanEntropy(strings.Repeat("abab", 50)); len(dets) != 0 {
		t.Fatalf("two-symbol filler triggered entropy: %+v", dets)
	}
}

func TestEntropyIgnoresShortRuns(t *testing.T) {
	e := New(types.DetectionOptions{})
	// High entropy but under the 50-char run minimum.
	if dets := e.scanEntropy(randomCore); len(dets) != 0 {
		t.Fatalf("short run triggered entropy: %+v", dets)
	}
}

func TestEntropyConfidenceRange(t *testing.T) {
	e := New(types.DetectionOptions{})
	content := strings.Repeat("a", 30) + randomCore + randomCore + strings.Repeat("b", 30)
	for _, d := range e.scanEntropy(content) {
		if d.Confidence < 0.5 || d.Confidence > 0.9 {
			t.Fatalf("entropy confidence out of [0.5,0.9]: %v", d.Confidence)
		}
	}
}

func TestEntropyConfidenceScalesWithEntropy(t *testing.T) {
	if got := entropyConfidence(3.5, 3.5); got != 0.5 {
		t.Fatalf("threshold entropy confidence = %v", got)
	}
	if got := entropyConfidence(entropyMax, 3.5); got != 0.9 {
		t.Fatalf("max entropy confidence = %v", got)
	}
	lo := entropyConfidence(3.8, 3.5)
	hi := entropyConfidence(4.6, 3.5)
	if !(lo > 0.5 && hi > lo && hi < 0.9) {
		t.Fatalf("confidence not monotone: lo=%v hi=%v", lo, hi)
	}
}

func TestTrimRepeats(t *testing.T) {
	run := "aaaaaaXyZ123QrStUvWxbbbbbb"
	s, e := trimRepeats(run, 0, len(run))
	if run[s:e] != "XyZ123QrStUvWx" {
		t.Fatalf("trimmed = %q", run[s:e])
	}
	// Runs shorter than 3 stay.
	s, e = trimRepeats("aaXYZbb", 0, 7)
	if s != 0 || e != 7 {
		t.Fatalf("short edge runs trimmed: %d-%d", s, e)
	}
}

func TestQuickEntropy(t *testing.T) {
	thresh := entropyThreshold(types.SensNormal)
	if quickEntropy(strings.Repeat("a", 120), thresh) {
		t.Fatal("quickEntropy tripped on filler")
	}
	if !quickEntropy(randomCore+randomCore, thresh) {
		t.Fatal("quickEntropy missed a long random run")
	}
}
