package game

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// Action represents a player action
type Action int

const (
	Fold Action = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

func (a Action) String() string {
	return [...]string{"fold", "check", "call", "bet", "raise", "allin"}[a]
}

// BettingState is the slice of hand state the validator needs. It is passed
// by value so validation can never mutate the hand.
type BettingState struct {
	CurrentBet int
	MinRaise   int
	Pot        int
	ToCall     int
}

// Validate decides whether an action is legal given the betting state.
// It returns an empty reason when the action is accepted. Validation is a
// pure function: rejected actions must never mutate anything.
func Validate(action Action, amount int, player *SeatPlayer, st BettingState) (ok bool, reason string) {
	switch action {
	case Fold:
		return true, ""

	case Check:
		if st.ToCall != 0 {
			return false, "cannot check facing a bet"
		}
		return true, ""

	case Call:
		if st.ToCall == 0 {
			return false, "nothing to call"
		}
		return true, ""

	case Bet:
		if st.CurrentBet != 0 {
			return false, "cannot bet facing a bet, raise instead"
		}
		if amount < st.MinRaise {
			return false, "bet below minimum"
		}
		if amount > player.Stack {
			return false, "bet exceeds stack"
		}
		return true, ""

	case Raise:
		if st.CurrentBet == 0 {
			return false, "nothing to raise, bet instead"
		}
		if amount > player.Stack+st.ToCall {
			return false, "raise exceeds stack"
		}
		if amount-st.CurrentBet < st.MinRaise {
			// An under-raise is only legal when it puts the player all-in.
			if amount != player.Stack+player.Bet {
				return false, "raise below minimum"
			}
		}
		return true, ""

	case AllIn:
		return true, ""

	default:
		return false, "unknown action"
	}
}

// legalActions returns the set of actions the player could validly take.
// Emitted with every turn change so callers can present choices without
// re-deriving the rules.
func legalActions(player *SeatPlayer, st BettingState) []Action {
	actions := []Action{Fold}

	if st.ToCall == 0 {
		actions = append(actions, Check)
		if st.CurrentBet == 0 && player.Stack >= st.MinRaise {
			actions = append(actions, Bet)
		}
	} else if player.Stack > 0 {
		actions = append(actions, Call)
	}

	// A raise is open whenever the player can put in more than a call; an
	// under-raise is legalised by going all-in for less.
	if st.CurrentBet > 0 && player.Stack > st.ToCall {
		actions = append(actions, Raise)
	}

	if player.Stack > 0 {
		actions = append(actions, AllIn)
	}

	return actions
}
