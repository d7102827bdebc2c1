package testdata

import (
	"time"

	"git.lost.host/meutraa/reso/internal/analysis"
)

// Ambient fills a buffer with a quiet constant floor, below the onset
// silence threshold however sensitive the detector is.
func Ambient(sampleRate int, length time.Duration) []float64 {
	n := int(float64(sampleRate) * length.Seconds())
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 0.01
	}
	return samples
}

// WithImpulse overlays a full analysis window of the given amplitude
// starting at each time, so the window RMS rises to the amplitude.
func WithImpulse(samples []float64, sampleRate int, amplitude float64, at ...time.Duration) []float64 {
	for _, t := range at {
		start := int(float64(sampleRate) * t.Seconds())
		// Align to a window boundary so exactly one window carries it
		start -= start % analysis.WindowSize
		for i := start; i < start+analysis.WindowSize && i < len(samples); i++ {
			samples[i] = amplitude
		}
	}
	return samples
}

// Sustained overlays a run of windows above the ambient floor, long
// enough to read as a held sound.
func Sustained(samples []float64, sampleRate int, amplitude float64, at, length time.Duration) []float64 {
	start := int(float64(sampleRate) * at.Seconds())
	start -= start % analysis.WindowSize
	end := start + int(float64(sampleRate)*length.Seconds())
	for i := start; i < end && i < len(samples); i++ {
		samples[i] = amplitude
	}
	return samples
}
