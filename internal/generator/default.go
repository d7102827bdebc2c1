package generator

import (
	"fmt"
	"math/rand"
	"time"

	"git.lost.host/meutraa/reso/internal/analysis"
	"git.lost.host/meutraa/reso/internal/game"
	"golang.org/x/exp/slices"
)

type DefaultGenerator struct{}

type patternKind int

const (
	patternRandom patternKind = iota
	patternStream
	patternTrill
	patternJack
	patternJump
	patternChaos
)

const (
	tripleRatio   = 2.5
	sustainRatio  = 1.1
	minHoldLength = 350 * time.Millisecond
	maxHoldLength = 2 * time.Second
)

var normalKinds = []patternKind{
	patternRandom, patternStream, patternTrill, patternJack, patternJump, patternChaos,
}

var easyKinds = []patternKind{patternRandom, patternStream}

type patternState struct {
	kind     patternKind
	step     int
	dir      int
	lastLane int
	since    int // Notes emitted since the last pattern change
	switchAt int
	jackRun  int
}

func (s *patternState) reroll(rng *rand.Rand, tier Tier) {
	kinds := normalKinds
	if tier == TierEasy {
		kinds = easyKinds
	}
	s.kind = kinds[rng.Intn(len(kinds))]
	s.switchAt = 2 + rng.Intn(5)
	s.since = 0
	s.jackRun = 0
}

// nextLane advances the pattern state machine one primary note.
func (s *patternState) nextLane(rng *rand.Rand, lanes int) int {
	lane := s.lastLane
	switch s.kind {
	case patternStream:
		lane = s.lastLane + s.dir
		if lane < 0 || lane >= lanes {
			s.dir = -s.dir
			lane = s.lastLane + s.dir
		}
	case patternTrill:
		if s.step%2 == 0 {
			lane = s.lastLane + 1
		} else {
			lane = s.lastLane - 1
		}
		s.step++
	case patternJack:
		lane = s.lastLane
		s.jackRun++
		if s.jackRun >= 3 {
			s.kind = patternRandom
			s.jackRun = 0
		}
	case patternJump:
		lane = s.lastLane + 2*s.dir
		if lane < 0 || lane >= lanes {
			s.dir = -s.dir
			lane = s.lastLane + s.dir
		}
	case patternChaos:
		lane = rng.Intn(lanes)
	default: // patternRandom, weighted local movement
		lane = s.lastLane + rng.Intn(3) - 1
	}

	// Anything that is not deliberately repeating must not land on the
	// previous lane, or every pattern degrades into accidental jacks.
	if s.kind != patternJack && s.kind != patternChaos && lane == s.lastLane {
		lane = (s.lastLane + 1) % lanes
	}

	if lane < 0 {
		lane = 0
	} else if lane >= lanes {
		lane = lanes - 1
	}
	return lane
}

func (g *DefaultGenerator) Generate(samples []float64, sampleRate int, opts Options) (*game.Chart, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %v", sampleRate)
	}
	if opts.Lanes != 4 && opts.Lanes != 5 && opts.Lanes != 7 {
		return nil, fmt.Errorf("unsupported lane count %v", opts.Lanes)
	}

	params := NewParams(opts.Level)
	energies := analysis.Profile(samples)
	onsets := analysis.DetectOnsets(energies, sampleRate, params.Sensitivity, params.MinGap, opts.LeadIn)

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	state := patternState{dir: 1, lastLane: opts.Lanes / 2}
	state.reroll(rng, params.Tier)

	notes := []*game.Note{}
	holds := int64(0)
	id := 0
	add := func(lane int, at, length time.Duration) *game.Note {
		n := &game.Note{ID: id, Lane: lane, Time: at, Length: length}
		id++
		if length > 0 {
			holds++
		}
		notes = append(notes, n)
		return n
	}

	for _, onset := range onsets {
		if state.since >= state.switchAt {
			state.reroll(rng, params.Tier)
		}

		lane := state.nextLane(rng, opts.Lanes)
		occupied := map[int]bool{lane: true}
		add(lane, onset.Time, holdLength(energies, onset, sampleRate))
		state.lastLane = lane
		state.since++

		if onset.Energy > onset.Average*params.ChordRatio &&
			state.kind != patternTrill && state.kind != patternJack {
			// Opposite side of the field, for readability
			chord := (lane + opts.Lanes/2) % opts.Lanes
			if occupied[chord] {
				chord = (chord + 1) % opts.Lanes
			}
			occupied[chord] = true
			add(chord, onset.Time, 0)

			if params.Level == 10 && onset.Energy > onset.Average*tripleRatio {
				third := (lane + 2) % opts.Lanes
				if !occupied[third] {
					occupied[third] = true
					add(third, onset.Time, 0)
				}
			}
		}
	}

	slices.SortStableFunc(notes, func(a, b *game.Note) bool {
		return a.Time < b.Time
	})

	duration := time.Duration(float64(len(samples)) / float64(sampleRate) * float64(time.Second))
	return &game.Chart{
		Notes:     notes,
		NoteCount: int64(len(notes)),
		HoldCount: holds,
		Level:     params.Level,
		Lanes:     opts.Lanes,
		Duration:  duration + opts.LeadIn,
	}, nil
}

// holdLength measures how long the energy stays over the local average
// after an onset. Long enough sustains become hold notes.
func holdLength(energies []float64, o analysis.Onset, sampleRate int) time.Duration {
	if o.Average <= 0 {
		return 0
	}
	threshold := o.Average * sustainRatio
	span := 0
	for j := o.Window + 1; j < len(energies) && energies[j] > threshold; j++ {
		span++
	}
	length := analysis.WindowTime(span, sampleRate)
	if length < minHoldLength {
		return 0
	}
	if length > maxHoldLength {
		length = maxHoldLength
	}
	return length
}
