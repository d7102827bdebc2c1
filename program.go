package main

import (
	"fmt"
	"time"

	"git.lost.host/meutraa/reso/internal/clock"
	"git.lost.host/meutraa/reso/internal/config"
	"git.lost.host/meutraa/reso/internal/game"
	"git.lost.host/meutraa/reso/internal/input"
	"git.lost.host/meutraa/reso/internal/judge"
	"git.lost.host/meutraa/reso/internal/media"
	"git.lost.host/meutraa/reso/internal/relay"
	"git.lost.host/meutraa/reso/internal/render"
	"git.lost.host/meutraa/reso/internal/theme"
	"github.com/eiannone/keyboard"
)

const (
	// Terminal rows per this many milliseconds of note travel
	scrollMsPerRow = 30
	// Rewind applied to the track on resume, for a lead-in
	resumeRewind = 2 * time.Second
	// Terminal key polling has no release events, so a lane is deemed
	// released once auto-repeat has been silent this long
	inferredRelease = 250 * time.Millisecond
	relayPeriod     = 500 * time.Millisecond
)

type Program struct {
	Renderer render.Renderer
	Theme    theme.Theme

	chart  *game.Chart
	judge  *judge.Judge
	clk    *clock.Clock
	player *media.Player
	relay  *relay.Relay

	keyChannel <-chan keyboard.KeyEvent
	evChannel  chan *input.Event

	rows, cols   int
	hitRow       int
	laneCols     []int
	sideCol      int
	noteRows     map[int]int // note id -> last rendered row, for clearing
	lastPress    []time.Time
	mediaStarted bool
	lastPublish  time.Time

	// Signed hit errors in milliseconds, for the results screen
	Errors []float64
}

func (p *Program) layout() {
	p.rows, p.cols = p.Renderer.Size()
	p.hitRow = p.rows - int(*config.BarRow)
	mc := p.cols / 2
	spacing := 6
	p.laneCols = make([]int, p.chart.Lanes)
	for i := range p.laneCols {
		p.laneCols[i] = mc + (i-p.chart.Lanes/2)*spacing
	}
	p.sideCol = p.laneCols[0] - 30
	if p.sideCol < 2 {
		p.sideCol = 2
	}
	p.noteRows = map[int]int{}
	p.lastPress = make([]time.Time, p.chart.Lanes)
}

func (p *Program) Run() {
	p.layout()
	p.clk.Start()
	p.Renderer.RenderLoop(*config.FramePeriod, p.frame)
}

func (p *Program) frame(now time.Time) bool {
	sample := p.clk.Sample()

	if !sample.LeadIn && !p.mediaStarted && !p.clk.Paused() {
		p.player.Play()
		p.mediaStarted = true
	}

	if !p.handleInput(now, sample) {
		p.judge.Abort()
		p.clk.Stop()
		return false
	}

	if !p.clk.Paused() {
		p.inferReleases(now, sample)
		for _, ev := range p.judge.Tick(sample) {
			p.onEvent(ev)
		}
	}

	p.render(sample)
	p.publish(now)

	return !p.judge.Done()
}

// handleInput drains both input sources. Returns false on quit.
func (p *Program) handleInput(now time.Time, sample clock.Sample) bool {
	for i := 0; i < len(p.evChannel); i++ {
		ev := <-p.evChannel
		lane := input.Lane(ev.Code, p.chart.Lanes)
		if lane < 0 {
			continue
		}
		switch {
		case ev.Released:
			// Release edges land even while paused, or the lane stays
			// held across the resume and eats the next press
			p.onEvent(deref(p.judge.InputUp(lane, sample)))
		case ev.Pressed && !p.clk.Paused():
			p.onEvent(deref(p.judge.InputDown(lane, sample)))
		}
	}

	for i := 0; i < len(p.keyChannel); i++ {
		key := <-p.keyChannel
		switch {
		case key.Key == keyboard.KeyEsc:
			return false
		case key.Key == keyboard.KeySpace:
			p.togglePause()
		default:
			lane := config.KeyLane(key.Rune, p.chart.Lanes)
			if lane < 0 || p.clk.Paused() {
				continue
			}
			p.lastPress[lane] = now
			p.onEvent(deref(p.judge.InputDown(lane, sample)))
		}
	}
	return true
}

// inferReleases releases terminal-held lanes once key auto-repeat has
// gone quiet. Lanes held through the evdev channel get real edges and
// never pass through here.
func (p *Program) inferReleases(now time.Time, sample clock.Sample) {
	if p.evChannel != nil {
		return
	}
	for lane := range p.lastPress {
		if p.judge.Held(lane) && now.Sub(p.lastPress[lane]) > inferredRelease {
			p.onEvent(deref(p.judge.InputUp(lane, sample)))
		}
	}
}

func (p *Program) togglePause() {
	if p.clk.Paused() {
		if p.mediaStarted {
			// Seek failure is fine, the clock re-derives from wherever
			// the track actually is
			_ = p.player.Rewind(resumeRewind)
			p.player.Play()
		}
		p.clk.Resume()
		return
	}
	p.clk.Pause()
	if p.mediaStarted {
		p.player.Pause()
	}
}

func (p *Program) onEvent(ev judge.Event) {
	if ev.Note == nil && !ev.Ghost {
		return
	}
	if ev.Ghost {
		p.Renderer.AddDecoration(p.hitRow+1, p.laneCols[ev.Lane], "·", 24)
		return
	}
	if ev.Judgement >= 0 {
		p.Renderer.AddDecoration(p.hitRow+1, p.sideCol, p.Theme.RenderJudgement(ev.Judgement), 60)
	}
	if ev.Judgement >= 0 && ev.Judgement < len(game.Judgements)-1 && !ev.Release {
		p.Errors = append(p.Errors, float64(ev.Distance.Microseconds())/1000.0)
	}
}

func deref(ev *judge.Event) judge.Event {
	if ev == nil {
		return judge.Event{}
	}
	return *ev
}

func (p *Program) noteRow(n *game.Note, t time.Duration) int {
	return p.hitRow - int((n.Time-t).Milliseconds())/scrollMsPerRow
}

func (p *Program) render(sample clock.Sample) {
	t := sample.Time

	for i := 0; i < p.chart.Lanes; i++ {
		p.Renderer.Fill(p.hitRow, p.laneCols[i], p.Theme.RenderHitField(i))
	}

	if sample.LeadIn {
		remaining := (p.clk.LeadIn() - t).Seconds()
		p.Renderer.Fill(p.rows/2, p.cols/2-1, fmt.Sprintf("%2.0f", remaining))
	} else {
		p.Renderer.Fill(p.rows/2, p.cols/2-1, "  ")
	}

	active, _, _ := p.chart.Active()
	for _, note := range active {
		col := p.laneCols[note.Lane]
		if row, ok := p.noteRows[note.ID]; ok && row > 0 && row < p.hitRow {
			p.Renderer.Fill(row, col, " ")
		}

		row := p.noteRow(note, t)
		p.noteRows[note.ID] = row

		visible := note.Pending() || note.Holding
		if visible && row > 0 && row < p.hitRow {
			p.Renderer.Fill(row, col, p.Theme.RenderNote(note.Lane, note.IsHold()))
		}
		if note.IsHold() && (note.Pending() || note.Holding) {
			endRow := p.hitRow - int((note.End()-t).Milliseconds())/scrollMsPerRow
			for r := endRow; r < row; r++ {
				if r > 0 && r < p.hitRow {
					p.Renderer.Fill(r, col, p.Theme.RenderHoldBody(note.Lane))
				}
			}
		}
	}

	state := p.judge.State()
	p.Renderer.Fill(3, p.sideCol, fmt.Sprintf("  Score:  %8v", state.Score))
	p.Renderer.Fill(4, p.sideCol, fmt.Sprintf("  Combo:  %8v", state.Combo))
	p.Renderer.Fill(5, p.sideCol, fmt.Sprintf(" Health:  %8.1f", state.Health))
	p.Renderer.Fill(6, p.sideCol, fmt.Sprintf("  Meter:  %8.1f", state.Meter))
	if state.Overdrive {
		p.Renderer.Fill(7, p.sideCol, "Overdrive!")
	} else {
		p.Renderer.Fill(7, p.sideCol, "          ")
	}
	p.Renderer.Fill(9, p.sideCol, fmt.Sprintf("   Rank:  %8v", judge.Rank(state.Perfects, state.Goods, state.Misses)))
	for i, j := range game.Judgements {
		count := [...]int{state.Perfects, state.Goods, state.Bads, state.Misses}[i]
		p.Renderer.Fill(11+i, p.sideCol, fmt.Sprintf("%7v:  %6v", j.Name, count))
	}
	if sample.Fallback && !sample.LeadIn {
		p.Renderer.Fill(p.rows-1, 2, "audio stalled, wall clock")
	}

	if p.relay != nil {
		if opp := p.relay.Opponent(); opp != nil {
			p.Renderer.Fill(3, p.cols-24, fmt.Sprintf("Opponent: %8v", opp.State.Score))
			p.Renderer.Fill(4, p.cols-24, fmt.Sprintf("   Combo: %8v", opp.State.Combo))
			p.Renderer.Fill(5, p.cols-24, fmt.Sprintf("  Health: %8.1f", opp.State.Health))
		}
	}
}

func (p *Program) publish(now time.Time) {
	if p.relay == nil || now.Sub(p.lastPublish) < relayPeriod {
		return
	}
	p.lastPublish = now
	p.relay.Publish(p.judge.State())
}
