package config

import (
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	Directory   = kingpin.Arg("directory", "Song directory").Required().ExistingDir()
	Level       = kingpin.Flag("level", "Difficulty level (1-10)").Default("5").Short('l').Int()
	Lanes       = kingpin.Flag("lanes", "Lane count (4, 5 or 7)").Default("4").Short('n').Int()
	Offset      = kingpin.Flag("offset", "Manual audio offset").Default("0ms").Short('o').Duration()
	LeadIn      = kingpin.Flag("lead-in", "Pre-roll before the track starts").Default("3s").Short('d').Duration()
	Seed        = kingpin.Flag("seed", "Chart generation seed, 0 for time-based").Default("0").Int64()
	Autoplay    = kingpin.Flag("autoplay", "Let the engine hit every note").Bool()
	RelayAddr   = kingpin.Flag("relay", "Listen address for the state relay, empty to disable").Default("").String()
	InputDevice = kingpin.Flag("input-device", "evdev device for press/release input").Default("").String()
	FramePeriod = kingpin.Flag("frame-period", "Render frame period").Default("4ms").Short('p').Duration()
	BarRow      = kingpin.Flag("bar-row", "Console rows between hit bar and bottom").Default("4").Uint()
	keys4       = kingpin.Flag("keys-4", "Keys for 4 lanes").Default("dfjk").String()
	keys5       = kingpin.Flag("keys-5", "Keys for 5 lanes").Default("df jk").String()
	keys7       = kingpin.Flag("keys-7", "Keys for 7 lanes").Default("sdf jkl").String()
)

func Keys(lanes int) []rune {
	switch lanes {
	case 5:
		return []rune(*keys5)
	case 7:
		return []rune(*keys7)
	}
	return []rune(*keys4)
}

func KeyLane(r rune, lanes int) int {
	for i, c := range Keys(lanes) {
		if r == c {
			return i
		}
	}
	return -1
}

// Parse processes the command line. Called once from main, so test
// binaries importing this package never hit the flag parser.
func Parse() {
	kingpin.Version("0.1.0")
	kingpin.Parse()
}
