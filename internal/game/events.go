package game

import (
	"time"

	"github.com/smarter-poker/arena-engine/internal/deck"
)

// EventType identifies a domain event emitted by a hand.
type EventType string

const (
	EventTypeHandStarted       EventType = "hand_started"
	EventTypeHoleCardsDealt    EventType = "hole_cards_dealt"
	EventTypeCommunityDealt    EventType = "community_dealt"
	EventTypePlayerActed       EventType = "player_acted"
	EventTypePotUpdated        EventType = "pot_updated"
	EventTypeTurnChanged       EventType = "turn_changed"
	EventTypeShowdownResult    EventType = "showdown_result"
	EventTypeWinnersDetermined EventType = "winners_determined"
	EventTypeHandCompleted     EventType = "hand_completed"
)

func (et EventType) String() string { return string(et) }

// Event is a domain event. The hand emits events synchronously and in
// order; every subscriber sees every event.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// base carries the fields common to all events.
type base struct {
	At time.Time
}

func (b base) Timestamp() time.Time { return b.At }

// HandStarted opens the event stream for a hand.
type HandStarted struct {
	base
	TableID    string
	HandID     string
	HandNo     uint64
	Variant    Variant
	SmallBlind int
	BigBlind   int
	DealerSeat int
	Seats      []int
}

func (HandStarted) EventType() EventType { return EventTypeHandStarted }

// HoleCardsDealt reports one seat's hole cards.
type HoleCardsDealt struct {
	base
	Seat  int
	Cards []deck.Card
}

func (HoleCardsDealt) EventType() EventType { return EventTypeHoleCardsDealt }

// CommunityDealt reports newly revealed community cards along with the full
// board after the reveal.
type CommunityDealt struct {
	base
	Street Street
	Cards  []deck.Card
	Board  []deck.Card
}

func (CommunityDealt) EventType() EventType { return EventTypeCommunityDealt }

// PlayerActed reports an accepted action.
type PlayerActed struct {
	base
	Seat   int
	Action Action
	Amount int
	Street Street
}

func (PlayerActed) EventType() EventType { return EventTypePlayerActed }

// PotUpdated reports the pot total after chips move.
type PotUpdated struct {
	base
	PotTotal int
}

func (PotUpdated) EventType() EventType { return EventTypePotUpdated }

// TurnChanged announces the next actor and the actions open to them.
type TurnChanged struct {
	base
	Seat         int
	LegalActions []Action
	ToCall       int
	MinRaise     int
}

func (TurnChanged) EventType() EventType { return EventTypeTurnChanged }

// ShowdownResult reveals one seat's evaluated hand at showdown.
type ShowdownResult struct {
	base
	Seat      int
	Ranking   string
	HoleCards []deck.Card
	BestCards []deck.Card
}

func (ShowdownResult) EventType() EventType { return EventTypeShowdownResult }

// WinnersDetermined carries the settled payouts, post-rake.
type WinnersDetermined struct {
	base
	Winners []Winner
}

func (WinnersDetermined) EventType() EventType { return EventTypeWinnersDetermined }

// HandCompleted closes the event stream. Rake is the only value that left
// the table.
type HandCompleted struct {
	base
	HandID   string
	PotTotal int
	Rake     int
	Stacks   map[int]int
}

func (HandCompleted) EventType() EventType { return EventTypeHandCompleted }

// subscriber pairs a handler with its registration id so unsubscription
// does not depend on func identity.
type subscriber struct {
	id int
	fn func(Event)
}

// broadcaster fans events out to subscribers synchronously, in
// subscription order. Handlers run to completion before the next event is
// emitted and must not call back into the hand's mutating API.
type broadcaster struct {
	subs   []subscriber
	nextID int
}

// subscribe registers a handler and returns its unsubscribe func.
func (b *broadcaster) subscribe(fn func(Event)) func() {
	id := b.nextID
	b.nextID++
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// publish delivers an event to every subscriber in order. Delivery runs
// over a copy of the subscriber list so a handler that unsubscribes itself
// (or anyone else) cannot shift the list under the iteration: everyone
// subscribed at emission time sees the event exactly once.
func (b *broadcaster) publish(e Event) {
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	for _, s := range subs {
		s.fn(e)
	}
}
