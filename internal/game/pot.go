package game

import (
	"sort"
)

// Pot is a main or side pot with the seats eligible to win it.
type Pot struct {
	Amount   int
	Eligible []int
}

// BuildPots converts the players' cumulative hand contributions into a main
// pot plus side pots.
//
// The distinct positive contribution levels are walked in ascending order;
// each level's slice is (level - previous) x (players whose contribution
// reached it, folded or not), while eligibility is restricted to non-folded
// players at that level. Adjacent pots whose eligible sets coincide are
// merged, so a hand with no all-ins produces a single main pot.
func BuildPots(players []*SeatPlayer) []Pot {
	levels := make([]int, 0, len(players))
	seen := make(map[int]bool)
	for _, p := range players {
		if p.TotalBet > 0 && !seen[p.TotalBet] {
			seen[p.TotalBet] = true
			levels = append(levels, p.TotalBet)
		}
	}
	sort.Ints(levels)

	var pots []Pot
	prev := 0
	for _, level := range levels {
		pot := Pot{}
		for _, p := range players {
			if p.TotalBet >= level {
				pot.Amount += level - prev
				if !p.Folded {
					pot.Eligible = append(pot.Eligible, p.Seat)
				}
			}
		}
		prev = level

		if pot.Amount == 0 {
			continue
		}
		if n := len(pots); n > 0 && sameSeats(pots[n-1].Eligible, pot.Eligible) {
			pots[n-1].Amount += pot.Amount
			continue
		}
		pots = append(pots, pot)
	}
	return pots
}

// PotTotal sums all pot amounts.
func PotTotal(pots []Pot) int {
	total := 0
	for _, pot := range pots {
		total += pot.Amount
	}
	return total
}

// sameSeats compares two seat lists that were built in the same order.
func sameSeats(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
