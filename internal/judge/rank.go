package judge

var ranks = []struct {
	Min  float64
	Name string
}{
	{99, "SS"},
	{98, "S"},
	{95, "A"},
	{90, "B"},
	{80, "C"},
	{70, "D"},
}

// Accuracy weighs perfects at full value and goods at half against
// every judged note. No attempts yet reads as perfect.
func Accuracy(perfects, goods, misses int) float64 {
	total := perfects + goods + misses
	if total == 0 {
		return 100
	}
	return float64(perfects*100+goods*50) / float64(total*100) * 100
}

// Rank derives the letter grade for a set of hit counts. It is a pure
// function, safe to call mid-session for live display.
func Rank(perfects, goods, misses int) string {
	acc := Accuracy(perfects, goods, misses)
	for _, r := range ranks {
		if acc >= r.Min {
			return r.Name
		}
	}
	return "F"
}
