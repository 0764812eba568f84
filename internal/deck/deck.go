package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// ErrExhausted is returned when a deal asks for more cards than remain.
// Under correct variant and player-count configuration this is unreachable;
// callers should treat it as an internal invariant violation, not retry.
var ErrExhausted = errors.New("deck: exhausted")

// Deck holds the cards not yet dealt for a single hand. A Deck is created
// per hand and discarded when the hand ends; it is mutated only by Reset,
// StripBelow and Deal.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a shuffled 52-card deck. The RNG is required so that shuffles
// are reproducible when the caller seeds it deterministically.
func New(rng *rand.Rand) *Deck {
	if rng == nil {
		panic("deck: rng is required")
	}
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	d.Reset()
	return d
}

// Reset repopulates the full 52 cards and shuffles.
func (d *Deck) Reset() {
	d.cards = d.cards[:0]
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	d.shuffle()
}

// StripBelow removes every card whose rank is below the threshold and
// reshuffles the remainder. Short-deck (6+) play strips below Six.
func (d *Deck) StripBelow(rank Rank) {
	kept := d.cards[:0]
	for _, c := range d.cards {
		if c.Rank >= rank {
			kept = append(kept, c)
		}
	}
	d.cards = kept
	d.shuffle()
}

// shuffle is a uniform Fisher-Yates.
func (d *Deck) shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the first n cards.
func (d *Deck) Deal(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrExhausted, n, len(d.cards))
	}
	cards := make([]Card, n)
	copy(cards, d.cards[:n])
	d.cards = d.cards[n:]
	return cards, nil
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
