package generator

import (
	"testing"
	"time"

	"git.lost.host/meutraa/reso/internal/game"
	"git.lost.host/meutraa/reso/internal/testdata"
)

const testRate = 44100

// beatBuffer is quiet ambience with strong impulses at a fixed spacing.
func beatBuffer(length, spacing time.Duration) []float64 {
	samples := testdata.Ambient(testRate, length)
	for at := time.Second; at < length; at += spacing {
		testdata.WithImpulse(samples, testRate, 0.9, at)
	}
	return samples
}

func generate(t *testing.T, samples []float64, opts Options) *game.Chart {
	t.Helper()
	g := DefaultGenerator{}
	chart, err := g.Generate(samples, testRate, opts)
	if nil != err {
		t.Fatal("unable to generate chart:", err)
	}
	return chart
}

func TestGenerateDeterministic(t *testing.T) {
	samples := beatBuffer(6*time.Second, 600*time.Millisecond)
	opts := Options{Level: 8, Lanes: 4, LeadIn: 3 * time.Second, Seed: 42}

	a := generate(t, samples, opts)
	b := generate(t, samples, opts)
	if len(a.Notes) != len(b.Notes) {
		t.Log("note counts differ:", len(a.Notes), len(b.Notes))
		t.FailNow()
	}
	for i := range a.Notes {
		p, q := a.Notes[i], b.Notes[i]
		if p.ID != q.ID || p.Lane != q.Lane || p.Time != q.Time || p.Length != q.Length {
			t.Log("note", i, "differs:", p, q)
			t.Fail()
		}
	}
}

func TestGenerateInvariants(t *testing.T) {
	samples := beatBuffer(8*time.Second, 400*time.Millisecond)
	leadIn := 2 * time.Second
	for _, level := range []int{1, 4, 7, 10} {
		chart := generate(t, samples, Options{Level: level, Lanes: 4, LeadIn: leadIn, Seed: 7})

		if len(chart.Notes) == 0 {
			t.Log("level", level, "produced no notes")
			t.Fail()
			continue
		}

		last := time.Duration(-1)
		type key struct {
			lane int
			at   time.Duration
		}
		seen := map[key]bool{}
		for _, n := range chart.Notes {
			if n.Time < last {
				t.Log("level", level, "notes out of order at id", n.ID)
				t.Fail()
			}
			last = n.Time
			if n.Lane < 0 || n.Lane >= chart.Lanes {
				t.Log("level", level, "lane out of range:", n.Lane)
				t.Fail()
			}
			if n.Time < 0 || n.Time > chart.Duration {
				t.Log("level", level, "time out of range:", n.Time, chart.Duration)
				t.Fail()
			}
			k := key{n.Lane, n.Time}
			if seen[k] {
				t.Log("level", level, "duplicate note on lane", n.Lane, "at", n.Time)
				t.Fail()
			}
			seen[k] = true
			if n.IsHold() != (n.Length > 0) {
				t.Log("level", level, "hold/tap length invariant broken:", n)
				t.Fail()
			}
		}
	}
}

// Chords are disabled below the threshold level and at the easy tier,
// so every timestamp carries exactly one note there. Where chords do
// appear they sit on the opposite side of the field.
func TestGenerateChords(t *testing.T) {
	samples := beatBuffer(10*time.Second, 300*time.Millisecond)

	for _, level := range []int{1, 3, 7} {
		chart := generate(t, samples, Options{Level: level, Lanes: 4, Seed: 3})
		byTime := map[time.Duration]int{}
		for _, n := range chart.Notes {
			byTime[n.Time]++
		}
		for at, count := range byTime {
			if count > 1 {
				t.Log("level", level, "unexpected chord at", at)
				t.Fail()
			}
		}
	}

	chart := generate(t, samples, Options{Level: 10, Lanes: 4, Seed: 3})
	byTime := map[time.Duration][]*game.Note{}
	for _, n := range chart.Notes {
		byTime[n.Time] = append(byTime[n.Time], n)
	}
	for at, group := range byTime {
		if len(group) < 2 {
			continue
		}
		lanes := map[int]bool{}
		for _, n := range group {
			if lanes[n.Lane] {
				t.Log("chord at", at, "reuses a lane")
				t.Fail()
			}
			lanes[n.Lane] = true
		}
		if len(group) > 3 {
			t.Log("chord at", at, "has", len(group), "notes")
			t.Fail()
		}
	}
}

// The easy tier runs only the random and stream patterns, and the
// repeat guard means consecutive notes never share a lane.
func TestGenerateEasyTierMovement(t *testing.T) {
	samples := beatBuffer(10*time.Second, 500*time.Millisecond)
	chart := generate(t, samples, Options{Level: 7, Lanes: 4, Seed: 11})

	if len(chart.Notes) < 2 {
		t.Log("expected a playable chart, got", len(chart.Notes), "notes")
		t.FailNow()
	}
	for i := 1; i < len(chart.Notes); i++ {
		if chart.Notes[i].Lane == chart.Notes[i-1].Lane {
			t.Log("consecutive notes share lane", chart.Notes[i].Lane, "at", chart.Notes[i].Time)
			t.Fail()
		}
	}
}

func TestGenerateHolds(t *testing.T) {
	samples := testdata.Ambient(testRate, 3*time.Second)
	testdata.Sustained(samples, testRate, 0.2, time.Second, 600*time.Millisecond)
	testdata.WithImpulse(samples, testRate, 0.9, time.Second)

	chart := generate(t, samples, Options{Level: 4, Lanes: 4, Seed: 5})
	if chart.HoldCount == 0 {
		t.Log("expected a hold note from the sustained span")
		t.FailNow()
	}
	for _, n := range chart.Notes {
		if !n.IsHold() {
			continue
		}
		if n.Length < 350*time.Millisecond || n.Length > 2*time.Second {
			t.Log("hold length out of range:", n.Length)
			t.Fail()
		}
	}
}

func TestGenerateErrors(t *testing.T) {
	g := DefaultGenerator{}
	if _, err := g.Generate(nil, testRate, Options{Level: 5, Lanes: 6}); nil == err {
		t.Log("expected error for unsupported lane count")
		t.Fail()
	}
	if _, err := g.Generate(nil, 0, Options{Level: 5, Lanes: 4}); nil == err {
		t.Log("expected error for invalid sample rate")
		t.Fail()
	}

	chart, err := g.Generate(nil, testRate, Options{Level: 5, Lanes: 4})
	if nil != err {
		t.Fatal("empty input must not error:", err)
	}
	if len(chart.Notes) != 0 {
		t.Log("expected empty chart for empty input")
		t.Fail()
	}
}
