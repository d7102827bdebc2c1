package game

import (
	"time"
)

type Chart struct {
	Notes     []*Note
	NoteCount int64
	HoldCount int64
	Level     int
	Lanes     int
	Duration  time.Duration // Length of the source track, lead-in included

	activeNotes    []*Note
	startNoteIndex int
	endNoteIndex   int
}

func (c *Chart) Active() ([]*Note, int, int) {
	return c.activeNotes, c.startNoteIndex, c.endNoteIndex
}

func (c *Chart) SetActive(start int, end int) {
	c.activeNotes = c.Notes[start:end]
	c.startNoteIndex = start
	c.endNoteIndex = end
}

// Reset clears all judge-owned note state so the chart can be replayed.
func (c *Chart) Reset() {
	for _, n := range c.Notes {
		n.Hit = false
		n.Missed = false
		n.Holding = false
		n.HoldComplete = false
	}
	c.SetActive(0, 0)
}
