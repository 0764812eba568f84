package game

import "testing"

func potSeats(p Pot) map[int]bool {
	m := make(map[int]bool, len(p.Eligible))
	for _, s := range p.Eligible {
		m[s] = true
	}
	return m
}

func TestBuildPotsEqualBets(t *testing.T) {
	// No all-ins, equal contributions: a single pot everyone can win.
	players := []*SeatPlayer{
		{Seat: 0, TotalBet: 100},
		{Seat: 1, TotalBet: 100},
		{Seat: 2, TotalBet: 100},
	}

	pots := BuildPots(players)
	if len(pots) != 1 {
		t.Fatalf("expected 1 pot, got %d", len(pots))
	}
	if pots[0].Amount != 300 {
		t.Errorf("pot amount = %d, want 300", pots[0].Amount)
	}
	if len(pots[0].Eligible) != 3 {
		t.Errorf("eligible = %v, want all three seats", pots[0].Eligible)
	}
}

func TestBuildPotsOneShortAllIn(t *testing.T) {
	// Seat 2 is all-in for 50; the other two bet 100.
	// Main pot: 50 x 3 = 150 with everyone eligible.
	// Side pot: 50 x 2 = 100 for seats 0 and 1 only.
	players := []*SeatPlayer{
		{Seat: 0, TotalBet: 100},
		{Seat: 1, TotalBet: 100},
		{Seat: 2, TotalBet: 50, AllIn: true},
	}

	pots := BuildPots(players)
	if len(pots) != 2 {
		t.Fatalf("expected 2 pots, got %+v", pots)
	}
	if pots[0].Amount != 150 || len(pots[0].Eligible) != 3 {
		t.Errorf("main pot = %+v, want 150 with 3 eligible", pots[0])
	}
	if pots[1].Amount != 100 || len(pots[1].Eligible) != 2 {
		t.Errorf("side pot = %+v, want 100 with 2 eligible", pots[1])
	}
	if potSeats(pots[1])[2] {
		t.Error("all-in seat must not be eligible for the side pot")
	}
}

func TestBuildPotsLadderedAllIns(t *testing.T) {
	players := []*SeatPlayer{
		{Seat: 0, TotalBet: 30, AllIn: true},
		{Seat: 1, TotalBet: 70, AllIn: true},
		{Seat: 2, TotalBet: 100},
		{Seat: 3, TotalBet: 100},
	}

	pots := BuildPots(players)
	if len(pots) != 3 {
		t.Fatalf("expected 3 pots, got %+v", pots)
	}
	wantAmounts := []int{120, 120, 60}
	wantEligible := []int{4, 3, 2}
	for i, pot := range pots {
		if pot.Amount != wantAmounts[i] {
			t.Errorf("pot %d amount = %d, want %d", i, pot.Amount, wantAmounts[i])
		}
		if len(pot.Eligible) != wantEligible[i] {
			t.Errorf("pot %d eligible = %v, want %d seats", i, pot.Eligible, wantEligible[i])
		}
	}
}

func TestBuildPotsFoldedMoneyStaysInPot(t *testing.T) {
	// Seat 2 folded after contributing 40. The chips stay in the pot but the
	// seat is not eligible for any of it.
	players := []*SeatPlayer{
		{Seat: 0, TotalBet: 100},
		{Seat: 1, TotalBet: 100},
		{Seat: 2, TotalBet: 40, Folded: true},
	}

	pots := BuildPots(players)
	if got := PotTotal(pots); got != 240 {
		t.Fatalf("pot total = %d, want 240", got)
	}
	for i, pot := range pots {
		if potSeats(pot)[2] {
			t.Errorf("pot %d lists a folded seat as eligible", i)
		}
	}
}

func TestBuildPotsMergesSameEligibleLevels(t *testing.T) {
	// A folded short contribution creates a level boundary but no change in
	// eligibility, so the two levels collapse into one pot.
	players := []*SeatPlayer{
		{Seat: 0, TotalBet: 100},
		{Seat: 1, TotalBet: 100},
		{Seat: 2, TotalBet: 40, Folded: true},
	}

	pots := BuildPots(players)
	if len(pots) != 1 {
		t.Fatalf("expected merged single pot, got %+v", pots)
	}
	if pots[0].Amount != 240 {
		t.Errorf("merged pot = %d, want 240", pots[0].Amount)
	}
}

func TestPotTotal(t *testing.T) {
	pots := []Pot{{Amount: 150}, {Amount: 100}, {Amount: 5}}
	if got := PotTotal(pots); got != 255 {
		t.Errorf("PotTotal = %d, want 255", got)
	}
	if got := PotTotal(nil); got != 0 {
		t.Errorf("PotTotal(nil) = %d, want 0", got)
	}
}
