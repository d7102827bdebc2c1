package analysis

import (
	"time"
)

const (
	// historyWindows is how many previous windows feed the moving average.
	historyWindows = 43
	// silenceFloor stops quiet sections from triggering onsets however
	// far they sit above their (near zero) local average.
	silenceFloor = 0.05
)

type Onset struct {
	Window  int
	Time    time.Duration
	Energy  float64
	Average float64 // Local average at detection time, kept for chord decisions
}

// DetectOnsets runs adaptive-threshold peak picking over an energy
// series. A window fires when its energy exceeds the trailing average
// by the sensitivity factor; firings closer than minGap to the last
// accepted onset are suppressed. leadIn is baked into every onset time
// so downstream timestamps are already song-clock absolute.
func DetectOnsets(energies []float64, sampleRate int, sensitivity float64, minGap, leadIn time.Duration) []Onset {
	var onsets []Onset
	lastAccepted := time.Duration(-1 << 62)

	for i, energy := range energies {
		start := i - historyWindows
		if start < 0 {
			start = 0
		}
		avg := 0.0
		if i > start {
			sum := 0.0
			for _, e := range energies[start:i] {
				sum += e
			}
			avg = sum / float64(i-start)
		}

		if energy <= avg*sensitivity || energy <= silenceFloor {
			continue
		}

		at := WindowTime(i, sampleRate) + leadIn
		if at-lastAccepted <= minGap {
			continue
		}
		lastAccepted = at
		onsets = append(onsets, Onset{Window: i, Time: at, Energy: energy, Average: avg})
	}
	return onsets
}
