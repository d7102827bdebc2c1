package game

import (
	"time"
)

type Note struct {
	ID     int           `json:"id"`
	Lane   int           `json:"lane"`
	Time   time.Duration `json:"time"`   // The time the note should be hit
	Length time.Duration `json:"length"` // Hold length, 0 for a tap note

	// This is state, owned by the judge
	Hit          bool `json:"-"`
	Missed       bool `json:"-"`
	Holding      bool `json:"-"`
	HoldComplete bool `json:"-"`
}

func (n *Note) IsHold() bool {
	return n.Length > 0
}

// End is the time the note should be released, equal to Time for taps.
func (n *Note) End() time.Duration {
	return n.Time + n.Length
}

// Pending reports whether the note can still be consumed by an input.
func (n *Note) Pending() bool {
	return !n.Hit && !n.Missed
}
