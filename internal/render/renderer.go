package render

import (
	"time"
)

type Renderer interface {
	Init() error
	Deinit() error
	Size() (rows, cols int)
	Fill(row, col int, message string)
	AddDecoration(row, col int, content string, frames int)
	RenderLoop(period time.Duration, render func(now time.Time) bool)
}
