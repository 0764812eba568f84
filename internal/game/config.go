package game

import (
	"errors"
	"fmt"
)

// Variant selects the game being dealt.
type Variant int

const (
	Holdem Variant = iota
	ShortDeck
	Omaha
	Omaha5
	Omaha6
)

// String returns the variant name
func (v Variant) String() string {
	switch v {
	case Holdem:
		return "holdem"
	case ShortDeck:
		return "short-deck"
	case Omaha:
		return "omaha"
	case Omaha5:
		return "omaha-5"
	case Omaha6:
		return "omaha-6"
	default:
		return "unknown"
	}
}

// ParseVariant parses a variant name as used in table configuration.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "holdem", "":
		return Holdem, nil
	case "short-deck", "shortdeck", "6plus":
		return ShortDeck, nil
	case "omaha", "plo":
		return Omaha, nil
	case "omaha-5", "plo5":
		return Omaha5, nil
	case "omaha-6", "plo6":
		return Omaha6, nil
	default:
		return 0, fmt.Errorf("unknown variant %q", s)
	}
}

// HoleCardCount returns how many hole cards the variant deals.
func (v Variant) HoleCardCount() int {
	switch v {
	case Omaha:
		return 4
	case Omaha5:
		return 5
	case Omaha6:
		return 6
	default:
		return 2
	}
}

// IsOmaha reports whether the variant uses the two-hole-three-board rule.
func (v Variant) IsOmaha() bool {
	return v == Omaha || v == Omaha5 || v == Omaha6
}

// HandConfig carries the immutable per-hand parameters.
type HandConfig struct {
	TableID string
	HandID  string // minted as a UUID by NewHand when empty
	HandNo  uint64

	Variant Variant
	HiLo    bool // eight-or-better split pots; Omaha variants only

	SmallBlind int
	BigBlind   int
	Ante       int // per-player ante, 0 for none

	// BombPotMultiplier, when positive, turns the hand into a bomb pot:
	// every seated player posts Multiplier x BigBlind and blinds are skipped.
	BombPotMultiplier int

	Rake RakePolicy
}

var (
	errTooFewPlayers = errors.New("game: at least 2 players required")
	errBadBlinds     = errors.New("game: blinds must be positive")
	errBadDealer     = errors.New("game: dealer seat not found")
	errDuplicateSeat = errors.New("game: duplicate seat index")
	errDeckOverflow  = errors.New("game: variant deals more cards than the deck holds")
)

// validate fails fast on malformed configuration; these are caller bugs.
func (c *HandConfig) validate() error {
	if c.SmallBlind <= 0 || c.BigBlind <= 0 || c.SmallBlind > c.BigBlind {
		return errBadBlinds
	}
	if c.Ante < 0 || c.BombPotMultiplier < 0 {
		return fmt.Errorf("game: negative ante configuration")
	}
	if c.HiLo && !c.Variant.IsOmaha() {
		return fmt.Errorf("game: hi/lo requires an omaha variant, got %s", c.Variant)
	}
	if err := c.Rake.validate(); err != nil {
		return err
	}
	return nil
}
