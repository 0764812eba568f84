package game

import (
	"time"

	"github.com/smarter-poker/arena-engine/internal/deck"
)

// ActionRecord is an append-only log entry for one accepted action.
type ActionRecord struct {
	Seat   int
	Action Action
	Amount int
	Street Street
	At     time.Time
}

// GameState is an immutable snapshot of a hand. Snapshots are copies;
// mutating one has no effect on the hand that produced it.
type GameState struct {
	TableID string
	HandID  string
	HandNo  uint64
	Variant Variant

	Street        Street
	Board         []deck.Card
	PotTotal      int
	CurrentBet    int
	MinRaise      int
	LastRaiseSize int
	DealerSeat    int
	ActingSeat    int // -1 when nobody is to act
	SawFlop       bool
	Completed     bool

	Players []SeatPlayer
	Pots    []Pot
	History []ActionRecord
}

// Snapshot copies the hand's current state for external consumers. The
// underlying game state is never handed out by reference, so callers cannot
// corrupt the hand's invariants out-of-band.
func (h *Hand) Snapshot() GameState {
	players := make([]SeatPlayer, len(h.players))
	for i, p := range h.players {
		players[i] = *p
		players[i].HoleCards = append([]deck.Card(nil), p.HoleCards...)
	}

	pots := BuildPots(h.players)

	return GameState{
		TableID:       h.cfg.TableID,
		HandID:        h.cfg.HandID,
		HandNo:        h.cfg.HandNo,
		Variant:       h.cfg.Variant,
		Street:        h.street,
		Board:         append([]deck.Card(nil), h.board...),
		PotTotal:      h.potTotal(),
		CurrentBet:    h.currentBet,
		MinRaise:      h.minRaise,
		LastRaiseSize: h.lastRaiseSize,
		DealerSeat:    h.dealerSeat,
		ActingSeat:    h.actingSeat,
		SawFlop:       h.sawFlop,
		Completed:     h.completed,
		Players:       players,
		Pots:          pots,
		History:       append([]ActionRecord(nil), h.history...),
	}
}
