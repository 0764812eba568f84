package game

import (
	"github.com/smarter-poker/arena-engine/internal/deck"
)

// SeatPlayer represents a player seated in a hand. The hand controller owns
// these records exclusively for the duration of the hand; the stack persists
// across hands because the caller re-supplies it when constructing the next
// hand.
type SeatPlayer struct {
	Seat       int
	ID         string
	Name       string
	Stack      int
	Bet        int // chips committed on the current street
	TotalBet   int // cumulative contribution for the whole hand
	HoleCards  []deck.Card
	Folded     bool
	AllIn      bool
	SittingOut bool
}

// CanAct returns true if the player can still take betting actions.
func (p *SeatPlayer) CanAct() bool {
	return !p.Folded && !p.AllIn && !p.SittingOut
}

// InHand returns true if the player still has a claim on the pot.
func (p *SeatPlayer) InHand() bool {
	return !p.Folded && !p.SittingOut
}

// pay moves up to amount chips from the stack into the current street bet,
// returning what was actually paid. A player who pays their whole stack is
// all-in.
func (p *SeatPlayer) pay(amount int) int {
	if amount > p.Stack {
		amount = p.Stack
	}
	p.Stack -= amount
	p.Bet += amount
	p.TotalBet += amount
	if p.Stack == 0 {
		p.AllIn = true
	}
	return amount
}

// payDead commits chips that bypass the street bet (antes). Dead money
// still counts toward the hand total and therefore toward side pots.
func (p *SeatPlayer) payDead(amount int) int {
	if amount > p.Stack {
		amount = p.Stack
	}
	p.Stack -= amount
	p.TotalBet += amount
	if p.Stack == 0 {
		p.AllIn = true
	}
	return amount
}
