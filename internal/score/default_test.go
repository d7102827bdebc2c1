package score

import (
	"testing"
	"time"

	"git.lost.host/meutraa/reso/internal/game"
)

func chart(level int, notes ...*game.Note) *game.Chart {
	return &game.Chart{Notes: notes, NoteCount: int64(len(notes)), Level: level, Lanes: 4}
}

func TestHashChartStable(t *testing.T) {
	a := chart(5, &game.Note{Lane: 1, Time: time.Second}, &game.Note{Lane: 2, Time: 2 * time.Second})
	b := chart(5, &game.Note{Lane: 1, Time: time.Second}, &game.Note{Lane: 2, Time: 2 * time.Second})
	if hashChart(a) != hashChart(b) {
		t.Log("identical charts must hash equal")
		t.Fail()
	}
}

// Runtime flags on the notes must not change the identity of the chart.
func TestHashChartIgnoresPlayState(t *testing.T) {
	a := chart(5, &game.Note{Lane: 1, Time: time.Second})
	b := chart(5, &game.Note{Lane: 1, Time: time.Second, Hit: true, Missed: true})
	if hashChart(a) != hashChart(b) {
		t.Log("play state leaked into the chart hash")
		t.Fail()
	}
}

func TestHashChartDistinct(t *testing.T) {
	base := chart(5, &game.Note{Lane: 1, Time: time.Second})
	variants := map[string]*game.Chart{
		"level": chart(6, &game.Note{Lane: 1, Time: time.Second}),
		"lane":  chart(5, &game.Note{Lane: 2, Time: time.Second}),
		"time":  chart(5, &game.Note{Lane: 1, Time: time.Second + time.Millisecond}),
		"count": chart(5, &game.Note{Lane: 1, Time: time.Second}, &game.Note{Lane: 3, Time: 2 * time.Second}),
	}
	for name, v := range variants {
		if hashChart(base) == hashChart(v) {
			t.Log("expected", name, "change to alter the hash")
			t.Fail()
		}
	}
}
