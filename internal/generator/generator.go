package generator

import (
	"time"

	"git.lost.host/meutraa/reso/internal/game"
)

type Options struct {
	Level  int           // Difficulty level, 1-10
	Lanes  int           // 4, 5 or 7
	LeadIn time.Duration // Baked into every note timestamp
	Seed   int64         // 0 picks a time-based seed (non-reproducible charts)
}

type Generator interface {
	Generate(samples []float64, sampleRate int, opts Options) (*game.Chart, error)
}
