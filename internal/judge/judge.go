package judge

import (
	"time"

	"git.lost.host/meutraa/reso/internal/clock"
	"git.lost.host/meutraa/reso/internal/game"
)

const (
	holdReleaseWindow = 200 * time.Millisecond
	holdTickScore     = 2
	holdBonus         = 200
	comboBonusOver    = 10
	comboBonus        = 10
	missHealth        = 4.0
	releaseHealth     = 5.0
	missMeter         = 20.0
	meterMax          = 100.0
	meterDecay        = 0.15
	healthMax         = 100.0
	lookahead         = 5 * time.Second
	grace             = 3 * time.Second
)

// Event is emitted for anything the host may want to show or sound.
type Event struct {
	Note      *game.Note
	Lane      int
	Judgement int           // Index into game.Judgements, -1 for a ghost tap
	Distance  time.Duration // Signed, negative is early
	Ghost     bool
	Release   bool // Hold dropped early
}

// Judge owns all per-note state transitions and the player state.
// Notes resolve exactly once; nothing here mutates a resolved note.
type Judge struct {
	chart      *game.Chart
	state      game.PlayerState
	autoplay   bool
	activeKeys []bool
	done       bool
}

func New(chart *game.Chart, autoplay bool) *Judge {
	chart.SetActive(0, 0)
	return &Judge{
		chart:      chart,
		state:      game.NewPlayerState(),
		autoplay:   autoplay,
		activeKeys: make([]bool, chart.Lanes),
	}
}

func (j *Judge) State() game.PlayerState {
	return j.state
}

func (j *Judge) Done() bool {
	return j.done
}

func (j *Judge) Held(lane int) bool {
	return lane >= 0 && lane < len(j.activeKeys) && j.activeKeys[lane]
}

// Abort ends the session and releases all held input state so nothing
// leaks into a following session on the same chart.
func (j *Judge) Abort() {
	for i := range j.activeKeys {
		j.activeKeys[i] = false
	}
	j.done = true
}

func (j *Judge) multiplier() int64 {
	if j.state.Overdrive {
		return 2
	}
	return 1
}

func (j *Judge) addHealth(d float64) {
	j.state.Health += d
	if j.state.Health > healthMax {
		j.state.Health = healthMax
	} else if j.state.Health < 0 {
		j.state.Health = 0
	}
}

func (j *Judge) addMeter(d float64) {
	j.state.Meter += d
	if j.state.Meter > meterMax {
		j.state.Meter = meterMax
	} else if j.state.Meter < 0 {
		j.state.Meter = 0
	}
}

func (j *Judge) bumpCombo() {
	j.state.Combo++
	if j.state.Combo > j.state.MaxCombo {
		j.state.MaxCombo = j.state.Combo
	}
}

// InputDown consumes a key press for a lane. Duplicate presses for an
// already held lane, out-of-range lanes, autoplay and ended sessions
// are all ignored.
func (j *Judge) InputDown(lane int, s clock.Sample) *Event {
	if j.done || j.autoplay || lane < 0 || lane >= j.chart.Lanes {
		return nil
	}
	if j.activeKeys[lane] {
		return nil
	}
	j.activeKeys[lane] = true

	note, distance := j.closest(lane, s.Time)
	windows := game.Judgements
	if note == nil || abs(distance) >= windows[len(windows)-2].Window {
		// Ghost tap, audible but scoreless and meter-neutral
		return &Event{Lane: lane, Judgement: -1, Ghost: true}
	}

	idx := 0
	for i := 0; i < len(windows)-1; i++ {
		if abs(distance) < windows[i].Window {
			idx = i
			break
		}
	}
	jd := windows[idx]

	mult := j.multiplier()
	note.Hit = true
	if note.IsHold() {
		note.Holding = true
	}

	j.state.Score += jd.Score * mult
	if idx == 0 && j.state.Combo > comboBonusOver {
		j.state.Score += comboBonus
	}
	j.addHealth(jd.Health)
	j.bumpCombo()
	switch idx {
	case 0:
		j.state.Perfects++
	case 1:
		j.state.Goods++
	case 2:
		j.state.Bads++
	}

	// Meter moves only outside overdrive; activation happens after the
	// triggering hit has been scored at 1x.
	if !j.state.Overdrive {
		j.addMeter(jd.Meter)
		if j.state.Meter >= meterMax {
			j.state.Overdrive = true
		}
	}

	return &Event{Note: note, Lane: lane, Judgement: idx, Distance: distance}
}

// InputUp releases a lane. Dropping a hold more than the release
// window before its tail is a miss.
func (j *Judge) InputUp(lane int, s clock.Sample) *Event {
	if lane < 0 || lane >= j.chart.Lanes {
		return nil
	}
	j.activeKeys[lane] = false
	if j.done || j.autoplay {
		return nil
	}

	for _, note := range j.chart.Notes {
		if note.Lane != lane || !note.Holding || note.HoldComplete {
			continue
		}
		if s.Time < note.End()-holdReleaseWindow {
			note.Missed = true
			note.HoldComplete = true
			note.Holding = false
			j.state.Combo = 0
			j.state.Misses++
			j.addHealth(-releaseHealth)
			return &Event{Note: note, Lane: lane, Judgement: len(game.Judgements) - 1, Release: true}
		}
		break
	}
	return nil
}

// Tick runs the passive scan: autoplay resolution, hold scoring and
// completion, miss detection, overdrive decay and terminal conditions.
func (j *Judge) Tick(s clock.Sample) []Event {
	if j.done {
		return nil
	}

	var events []Event
	missWindow := game.Judgements[len(game.Judgements)-1].Window

	_, start, end := j.chart.Active()
	for end < len(j.chart.Notes) && j.chart.Notes[end].Time <= s.Time+lookahead {
		end++
	}

	for _, note := range j.chart.Notes[start:end] {
		delta := s.Time - note.Time

		if j.autoplay && note.Pending() && delta >= 0 {
			// Practice aid, no score credited
			note.Hit = true
			j.state.Perfects++
			j.bumpCombo()
			if note.IsHold() {
				note.Holding = true
			}
			events = append(events, Event{Note: note, Lane: note.Lane, Judgement: 0})
		}

		if note.Holding && !note.HoldComplete {
			if !j.autoplay {
				// Awarded once per tick, not integrated over time
				j.state.Score += holdTickScore * j.multiplier()
			}
			if s.Time >= note.End() {
				note.HoldComplete = true
				note.Holding = false
				if !j.autoplay {
					j.state.Score += holdBonus * j.multiplier()
				}
				j.bumpCombo()
				events = append(events, Event{Note: note, Lane: note.Lane, Judgement: 0})
			}
		}

		if note.Pending() && delta > missWindow {
			note.Missed = true
			j.state.Combo = 0
			j.state.Misses++
			j.addHealth(-missHealth)
			j.addMeter(-missMeter)
			j.state.Overdrive = false
			events = append(events, Event{Note: note, Lane: note.Lane, Judgement: len(game.Judgements) - 1})
		}
	}

	for start < end && j.resolved(j.chart.Notes[start], s.Time, missWindow) {
		start++
	}
	j.chart.SetActive(start, end)

	if j.state.Overdrive {
		j.state.Meter -= meterDecay
		if j.state.Meter <= 0 {
			j.state.Meter = 0
			j.state.Overdrive = false
		}
	}

	if j.state.Health <= 0 || s.Time > j.chart.Duration+grace {
		j.Abort()
	}

	return events
}

func (j *Judge) resolved(n *game.Note, t time.Duration, missWindow time.Duration) bool {
	if n.Missed {
		return true
	}
	if n.Hit {
		if n.IsHold() {
			return n.HoldComplete
		}
		return true
	}
	return t-n.End() > missWindow
}

// closest finds the unresolved note in a lane nearest to t. Notes are
// time ordered, so the scan stops as soon as distances start growing.
func (j *Judge) closest(lane int, t time.Duration) (*game.Note, time.Duration) {
	var closestNote *game.Note
	var distance time.Duration
	best := time.Hour * 24

	for _, note := range j.chart.Notes {
		if note.Lane != lane || !note.Pending() {
			continue
		}
		dd := t - note.Time
		d := abs(dd)
		if d < best {
			best = d
			distance = dd
			closestNote = note
		} else if nil != closestNote {
			// already found the closest, and this d is > best
			break
		}
	}
	return closestNote, distance
}

func abs(x time.Duration) time.Duration {
	if x < 0 {
		return -x
	}
	return x
}
