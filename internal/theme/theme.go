package theme

type Theme interface {
	RenderNote(lane int, hold bool) string
	RenderHoldBody(lane int) string
	RenderHitField(lane int) string
	RenderJudgement(index int) string
}
