package analysis

import (
	"math"
	"time"
)

// WindowSize is the number of samples per energy window.
const WindowSize = 1024

// Profile splits mono samples into fixed windows and returns the RMS
// energy of each. Window i covers samples [i*WindowSize, (i+1)*WindowSize).
// A trailing partial window is dropped.
func Profile(samples []float64) []float64 {
	count := len(samples) / WindowSize
	if count == 0 {
		return nil
	}
	energies := make([]float64, count)
	for i := 0; i < count; i++ {
		var sum float64
		for _, s := range samples[i*WindowSize : (i+1)*WindowSize] {
			sum += s * s
		}
		energies[i] = math.Sqrt(sum / WindowSize)
	}
	return energies
}

// WindowTime is the start time of energy window i.
func WindowTime(i, sampleRate int) time.Duration {
	return time.Duration(float64(i) * WindowSize / float64(sampleRate) * float64(time.Second))
}
