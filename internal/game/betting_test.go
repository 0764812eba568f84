package game

import "testing"

func TestValidate(t *testing.T) {
	// Facing a 20 bet with a 20 min-raise: the canonical boundary cases.
	facing := BettingState{CurrentBet: 20, MinRaise: 20, Pot: 35, ToCall: 20}
	open := BettingState{CurrentBet: 0, MinRaise: 10, Pot: 15, ToCall: 0}

	tests := []struct {
		name   string
		action Action
		amount int
		player SeatPlayer
		st     BettingState
		wantOK bool
	}{
		{"fold is always legal", Fold, 0, SeatPlayer{Stack: 100}, facing, true},
		{"fold with nothing owed", Fold, 0, SeatPlayer{Stack: 100}, open, true},

		{"check with no bet", Check, 0, SeatPlayer{Stack: 100}, open, true},
		{"check facing a bet", Check, 0, SeatPlayer{Stack: 100}, facing, false},

		{"call facing a bet", Call, 0, SeatPlayer{Stack: 100}, facing, true},
		{"call with nothing to call", Call, 0, SeatPlayer{Stack: 100}, open, false},

		{"bet at the minimum", Bet, 10, SeatPlayer{Stack: 100}, open, true},
		{"bet below the minimum", Bet, 9, SeatPlayer{Stack: 100}, open, false},
		{"bet over the stack", Bet, 101, SeatPlayer{Stack: 100}, open, false},
		{"bet the whole stack", Bet, 100, SeatPlayer{Stack: 100}, open, true},
		{"bet while facing a bet", Bet, 40, SeatPlayer{Stack: 100}, facing, false},

		{"raise to exactly the minimum", Raise, 40, SeatPlayer{Stack: 100}, facing, true},
		{"raise one chip short", Raise, 39, SeatPlayer{Stack: 100}, facing, false},
		{"under-raise all-in", Raise, 39, SeatPlayer{Stack: 39}, facing, true},
		{"raise with no bet outstanding", Raise, 20, SeatPlayer{Stack: 100}, open, false},
		{"raise beyond reach", Raise, 200, SeatPlayer{Stack: 100}, facing, false},

		{"all-in is always legal", AllIn, 0, SeatPlayer{Stack: 5}, facing, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.player
			ok, reason := Validate(tt.action, tt.amount, &p, tt.st)
			if ok != tt.wantOK {
				t.Errorf("Validate(%v, %d) = %v (%q), want %v", tt.action, tt.amount, ok, reason, tt.wantOK)
			}
			if !ok && reason == "" {
				t.Error("rejection must carry a reason")
			}
		})
	}
}

func TestLegalActions(t *testing.T) {
	has := func(actions []Action, a Action) bool {
		for _, x := range actions {
			if x == a {
				return true
			}
		}
		return false
	}

	t.Run("unopened pot", func(t *testing.T) {
		p := SeatPlayer{Stack: 100}
		actions := legalActions(&p, BettingState{MinRaise: 10})
		for _, want := range []Action{Fold, Check, Bet, AllIn} {
			if !has(actions, want) {
				t.Errorf("missing %v in %v", want, actions)
			}
		}
		if has(actions, Call) || has(actions, Raise) {
			t.Errorf("call/raise should not be offered with no bet: %v", actions)
		}
	})

	t.Run("facing a bet", func(t *testing.T) {
		p := SeatPlayer{Stack: 100}
		actions := legalActions(&p, BettingState{CurrentBet: 20, MinRaise: 20, ToCall: 20})
		for _, want := range []Action{Fold, Call, Raise, AllIn} {
			if !has(actions, want) {
				t.Errorf("missing %v in %v", want, actions)
			}
		}
		if has(actions, Check) || has(actions, Bet) {
			t.Errorf("check/bet should not be offered facing a bet: %v", actions)
		}
	})

	t.Run("short stack cannot raise", func(t *testing.T) {
		p := SeatPlayer{Stack: 15}
		actions := legalActions(&p, BettingState{CurrentBet: 20, MinRaise: 20, ToCall: 20})
		if has(actions, Raise) {
			t.Errorf("raise offered to a stack that cannot exceed a call: %v", actions)
		}
		if !has(actions, Call) || !has(actions, AllIn) {
			t.Errorf("short stack should still call or shove: %v", actions)
		}
	})

	t.Run("matched bet can check", func(t *testing.T) {
		// The big blind pre-flop after limps: bet matched, nothing to call.
		p := SeatPlayer{Stack: 90, Bet: 10}
		actions := legalActions(&p, BettingState{CurrentBet: 10, MinRaise: 10, ToCall: 0})
		if !has(actions, Check) {
			t.Errorf("matched bet should be allowed to check: %v", actions)
		}
		if !has(actions, Raise) {
			t.Errorf("matched bet should still be allowed to raise: %v", actions)
		}
	})
}
