package game

import "fmt"

// RakePolicy is a percentage-of-pot rake with a cap. The zero value takes
// no rake.
type RakePolicy struct {
	Percent      float64 // fraction of the pot, e.g. 0.05 for 5%
	Cap          int     // maximum rake per hand; 0 means uncapped
	NoFlopNoRake bool    // pre-flop fold-outs are rake-free
}

func (p RakePolicy) validate() error {
	if p.Percent < 0 || p.Percent >= 1 {
		return fmt.Errorf("game: rake percent %v out of range", p.Percent)
	}
	if p.Cap < 0 {
		return fmt.Errorf("game: negative rake cap")
	}
	return nil
}

// Take returns the rake for a pot. It is zero when the policy says hands
// that never saw a flop are rake-free and this one did not.
func (p RakePolicy) Take(pot int, sawFlop bool) int {
	if p.Percent == 0 || pot <= 0 {
		return 0
	}
	if p.NoFlopNoRake && !sawFlop {
		return 0
	}
	rake := int(float64(pot) * p.Percent)
	if p.Cap > 0 && rake > p.Cap {
		rake = p.Cap
	}
	return rake
}
