package generator

import (
	"math"
	"testing"
	"time"
)

var paramsTests = map[int]Params{
	1:  {Level: 1, Tier: TierNormal, MinGap: 550 * time.Millisecond, Sensitivity: 2.5, ChordRatio: 99},
	3:  {Level: 3, Tier: TierNormal, MinGap: 460 * time.Millisecond, Sensitivity: 2.14, ChordRatio: 99},
	4:  {Level: 4, Tier: TierNormal, MinGap: 415 * time.Millisecond, Sensitivity: 1.96, ChordRatio: 3.0},
	7:  {Level: 7, Tier: TierEasy, MinGap: 450 * time.Millisecond, Sensitivity: 1.42, ChordRatio: 999},
	10: {Level: 10, Tier: TierNormal, MinGap: 145 * time.Millisecond, Sensitivity: 1.02, ChordRatio: 1.5},
	// Out of range levels clamp
	0:  {Level: 1, Tier: TierNormal, MinGap: 550 * time.Millisecond, Sensitivity: 2.5, ChordRatio: 99},
	12: {Level: 10, Tier: TierNormal, MinGap: 145 * time.Millisecond, Sensitivity: 1.02, ChordRatio: 1.5},
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewParams(t *testing.T) {
	for level, expected := range paramsTests {
		p := NewParams(level)
		if p.Level != expected.Level ||
			p.Tier != expected.Tier ||
			p.MinGap != expected.MinGap ||
			!near(p.Sensitivity, expected.Sensitivity) ||
			!near(p.ChordRatio, expected.ChordRatio) {
			t.Log("level   ", level)
			t.Log("params  ", p)
			t.Log("expected", expected)
			t.Fail()
		}
	}
}
