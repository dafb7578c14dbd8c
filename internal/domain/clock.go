package domain

import "github.com/jonboulle/clockwork"

// clock stamps results and anchors "now"-relative schedules (threat
// assessments, game rounds). Every other calculation ignores it.
var clock = clockwork.NewRealClock()

// SetClock swaps the package time source. Pass nil to reset to real time.
func SetClock(c clockwork.Clock) {
	if c == nil {
		clock = clockwork.NewRealClock()
		return
	}
	clock = c
}
