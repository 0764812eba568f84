package game

import "testing"

func TestPayCapsAtStack(t *testing.T) {
	p := SeatPlayer{Stack: 40}
	paid := p.pay(100)

	if paid != 40 {
		t.Errorf("paid %d, want the whole 40 stack", paid)
	}
	if p.Stack != 0 {
		t.Errorf("stack = %d, want 0", p.Stack)
	}
	if !p.AllIn {
		t.Error("emptying the stack must mark the player all-in")
	}
	if p.Bet != 40 || p.TotalBet != 40 {
		t.Errorf("bet = %d total = %d, want 40/40", p.Bet, p.TotalBet)
	}
}

func TestPayAccumulates(t *testing.T) {
	p := SeatPlayer{Stack: 100}
	p.pay(10)
	p.pay(20)

	if p.Bet != 30 || p.TotalBet != 30 || p.Stack != 70 {
		t.Errorf("bet/total/stack = %d/%d/%d, want 30/30/70", p.Bet, p.TotalBet, p.Stack)
	}
	if p.AllIn {
		t.Error("player with chips behind is not all-in")
	}
}

func TestPayDeadSkipsLiveBet(t *testing.T) {
	// Antes are dead money: they count toward the pot but not toward
	// matching the current bet.
	p := SeatPlayer{Stack: 100}
	p.payDead(5)

	if p.Bet != 0 {
		t.Errorf("live bet = %d, want 0", p.Bet)
	}
	if p.TotalBet != 5 || p.Stack != 95 {
		t.Errorf("total/stack = %d/%d, want 5/95", p.TotalBet, p.Stack)
	}
}

func TestCanActAndInHand(t *testing.T) {
	tests := []struct {
		name       string
		player     SeatPlayer
		wantCanAct bool
		wantInHand bool
	}{
		{"live player", SeatPlayer{Stack: 100}, true, true},
		{"folded", SeatPlayer{Folded: true}, false, false},
		{"all-in still in hand", SeatPlayer{AllIn: true}, false, true},
		{"sitting out", SeatPlayer{SittingOut: true}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.player.CanAct(); got != tt.wantCanAct {
				t.Errorf("CanAct() = %v, want %v", got, tt.wantCanAct)
			}
			if got := tt.player.InHand(); got != tt.wantInHand {
				t.Errorf("InHand() = %v, want %v", got, tt.wantInHand)
			}
		})
	}
}
