package generator

import (
	"time"
)

type Tier int

const (
	TierNormal Tier = iota
	TierEasy
)

// easyLevel is the level slot designated as the easy tier. It keeps
// the relaxed gap, no chords and simple patterns whatever the scaling
// formulas would give it.
const easyLevel = 7

type Params struct {
	Level       int
	Tier        Tier
	MinGap      time.Duration // Minimum spacing between accepted onsets
	Sensitivity float64       // Energy over local average ratio to fire an onset
	ChordRatio  float64       // Energy over average ratio to add a chord note
}

func NewParams(level int) Params {
	if level < 1 {
		level = 1
	} else if level > 10 {
		level = 10
	}

	gap := 550 - (level-1)*45
	if gap < 110 {
		gap = 110
	}
	sensitivity := 2.5 - float64(level-1)*0.18
	if sensitivity < 1.02 {
		sensitivity = 1.02
	}
	chord := 99.0 // Effectively disabled below the chord threshold level
	if level >= 4 {
		chord = 3.0 - float64(level-4)*0.25
	}

	tier := TierNormal
	if level == easyLevel {
		tier = TierEasy
		if gap < 450 {
			gap = 450
		}
		chord = 999
	}

	return Params{
		Level:       level,
		Tier:        tier,
		MinGap:      time.Duration(gap) * time.Millisecond,
		Sensitivity: sensitivity,
		ChordRatio:  chord,
	}
}
