package clock

import (
	"time"
)

// Media is the external playback backend the clock reconciles against.
type Media interface {
	Position() time.Duration
	Playing() bool
}

// Sample is one authoritative reading of song time, taken once per tick
// and passed to everything that needs "now".
type Sample struct {
	Time     time.Duration
	LeadIn   bool // Still inside the pre-roll window, media held paused
	Fallback bool // Media stalled or missing, wall clock in use
}

// stallWindow is how long the media position may sit still while
// nominally playing before the clock degrades to wall time.
const stallWindow = 250 * time.Millisecond

// Clock reconciles wall-clock elapsed time, the media backend's own
// position, pause intervals and the manual offset into one song time.
type Clock struct {
	media  Media
	leadIn time.Duration
	offset time.Duration
	now    func() time.Time

	start      time.Time
	pauseTotal time.Duration
	pausedAt   time.Time
	running    bool
	paused     bool

	lastPos   time.Duration
	lastPosAt time.Time
}

func New(media Media, leadIn, offset time.Duration) *Clock {
	return &Clock{
		media:  media,
		leadIn: leadIn,
		offset: offset,
		now:    time.Now,
	}
}

func (c *Clock) Start() {
	now := c.now()
	c.start = now
	c.pauseTotal = 0
	c.paused = false
	c.running = true
	c.lastPos = -1
	c.lastPosAt = now
}

func (c *Clock) Running() bool {
	return c.running
}

func (c *Clock) Paused() bool {
	return c.paused
}

func (c *Clock) Stop() {
	c.running = false
	c.paused = false
}

// Pause freezes the clock. A second Pause is a no-op.
func (c *Clock) Pause() {
	if !c.running || c.paused {
		return
	}
	c.pausedAt = c.now()
	c.paused = true
}

// Resume re-derives the clock base from the media position instead of
// accumulating the pause interval, so repeated pause/resume cycles
// cannot drift the clock away from what is actually audible. The
// caller seeks/restarts the media before calling this.
func (c *Clock) Resume() {
	if !c.running || !c.paused {
		return
	}
	now := c.now()
	c.paused = false

	elapsedAtPause := c.pausedAt.Sub(c.start) - c.pauseTotal
	if c.media == nil || elapsedAtPause < c.leadIn {
		// Nothing audible yet, just discount the pause interval.
		c.pauseTotal += now.Sub(c.pausedAt)
		return
	}

	c.start = now.Add(-(c.media.Position() + c.leadIn))
	c.pauseTotal = 0
	c.lastPos = -1
	c.lastPosAt = now
}

func (c *Clock) SetOffset(d time.Duration) {
	c.offset = d
}

func (c *Clock) LeadIn() time.Duration {
	return c.leadIn
}

func (c *Clock) Sample() Sample {
	if !c.running {
		return Sample{}
	}
	now := c.now()
	if c.paused {
		now = c.pausedAt
	}
	elapsed := now.Sub(c.start) - c.pauseTotal

	var s Sample
	switch {
	case elapsed < c.leadIn:
		s = Sample{Time: elapsed, LeadIn: true}
	case c.media != nil && c.media.Playing() && !c.stalled(now):
		s = Sample{Time: c.media.Position() + c.leadIn}
	default:
		s = Sample{Time: elapsed, Fallback: true}
	}
	s.Time -= c.offset
	return s
}

// stalled tracks whether the media position has advanced recently.
func (c *Clock) stalled(now time.Time) bool {
	pos := c.media.Position()
	if pos != c.lastPos {
		c.lastPos = pos
		c.lastPosAt = now
		return false
	}
	return now.Sub(c.lastPosAt) > stallWindow
}
