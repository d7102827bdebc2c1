package theme

import (
	"fmt"

	"git.lost.host/meutraa/reso/internal/game"
)

type DefaultTheme struct{}

type color struct {
	R, G, B uint8
}

const (
	noteSym     = "⬤"
	holdHeadSym = "◉"
	holdBodySym = "│"
	barSym      = "-"
)

var laneColors = []color{
	{236, 30, 0},   // red
	{0, 118, 236},  // blue
	{236, 195, 0},  // yellow
	{0, 236, 128},  // green
	{106, 0, 236},  // purple
	{236, 128, 0},  // orange
	{173, 236, 236}, // light blue
}

var judgementColors = []color{
	{173, 236, 236}, // Perfect
	{0, 236, 128},   // Good
	{236, 195, 0},   // Bad
	{236, 30, 0},    // Miss
}

func paint(c color, s string) string {
	return fmt.Sprintf("\033[38;2;%v;%v;%vm%v\033[0m", c.R, c.G, c.B, s)
}

func laneColor(lane int) color {
	return laneColors[lane%len(laneColors)]
}

func (t *DefaultTheme) RenderNote(lane int, hold bool) string {
	if hold {
		return paint(laneColor(lane), holdHeadSym)
	}
	return paint(laneColor(lane), noteSym)
}

func (t *DefaultTheme) RenderHoldBody(lane int) string {
	return paint(laneColor(lane), holdBodySym)
}

func (t *DefaultTheme) RenderHitField(lane int) string {
	return barSym
}

func (t *DefaultTheme) RenderJudgement(index int) string {
	if index < 0 || index >= len(game.Judgements) {
		return ""
	}
	c := judgementColors[index%len(judgementColors)]
	return paint(c, game.Judgements[index].Name)
}
