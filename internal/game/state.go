package game

// PlayerState is the runtime scoring state for one player. It is owned
// by the judge and copied by value everywhere else, including onto the
// opponent relay channel.
type PlayerState struct {
	Score     int64   `json:"score"`
	Combo     int     `json:"combo"`
	MaxCombo  int     `json:"maxCombo"`
	Health    float64 `json:"health"` // 0..100
	Meter     float64 `json:"meter"`  // 0..100 overdrive meter
	Overdrive bool    `json:"overdrive"`
	Perfects  int     `json:"perfects"`
	Goods     int     `json:"goods"`
	Bads      int     `json:"bads"`
	Misses    int     `json:"misses"`
}

// NewPlayerState returns the state a player starts a chart with.
func NewPlayerState() PlayerState {
	return PlayerState{Health: 100}
}
