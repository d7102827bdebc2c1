package score

import (
	"git.lost.host/meutraa/reso/internal/game"
)

// Result is the persistent outcome of one session on a chart.
type Result struct {
	Score    int64
	Rank     string
	Perfects int
	Goods    int
	Bads     int
	Misses   int
	MaxCombo int
}

type Scorer interface {
	Init() error
	Deinit()

	// Save the outcome of this performance
	Save(chart *game.Chart, result Result) error

	// Best returns the highest scoring saved result for the chart
	Best(chart *game.Chart) (*Result, error)
}
