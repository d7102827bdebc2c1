package game

import (
	"time"
)

type Judgement struct {
	Window time.Duration // Maximum absolute distance for this judgement
	Name   string
	Score  int64   // Base score, doubled while overdrive is active
	Health float64 // Health delta on hit
	Meter  float64 // Overdrive meter delta on hit
}

// Judgements is ordered tightest window first. The last entry is the
// passive miss threshold, not a hit window.
var Judgements = []Judgement{
	{Window: 50 * time.Millisecond, Name: "Perfect", Score: 100, Health: 0.5, Meter: 2.5},
	{Window: 120 * time.Millisecond, Name: "Good", Score: 50, Health: 0.1, Meter: 1.0},
	{Window: 200 * time.Millisecond, Name: "Bad", Score: 10, Health: 0, Meter: -5},
	{Window: 250 * time.Millisecond, Name: "Miss"},
}
