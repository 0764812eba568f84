package game

import (
	"sort"

	"github.com/smarter-poker/arena-engine/internal/deck"
	"github.com/smarter-poker/arena-engine/internal/evaluator"
)

// Winner is a settled payout for one player, aggregated across every pot
// the player took a share of.
type Winner struct {
	Seat     int
	PlayerID string
	Amount   int
	Desc     string
}

// showdownHand pairs a seat with its evaluated holdings.
type showdownHand struct {
	seat int
	high evaluator.Evaluation
	low  *evaluator.Low
}

// evaluateShowdown ranks every non-folded player's best hand for the
// variant, plus the best qualifying low for Hi/Lo games.
func evaluateShowdown(players []*SeatPlayer, variant Variant, hiLo bool, board []deck.Card) map[int]*showdownHand {
	hands := make(map[int]*showdownHand)
	for _, p := range players {
		if !p.InHand() {
			continue
		}
		sh := &showdownHand{seat: p.Seat}
		if variant.IsOmaha() {
			sh.high = evaluator.BestOmahaHigh(p.HoleCards, board)
			if hiLo {
				sh.low = evaluator.BestLow(p.HoleCards, board)
			}
		} else {
			sh.high = evaluator.BestHoldem(p.HoleCards, board)
		}
		hands[p.Seat] = sh
	}
	return hands
}

// resolvePots maps evaluated hands onto each pot's eligible set and returns
// the winners with amounts, before rake. For Hi/Lo pots with at least one
// qualifying low, the low half is floor(pot/2) and the high half the
// remainder, so the halves always sum to the full pot.
func resolvePots(players []*SeatPlayer, pots []Pot, hands map[int]*showdownHand) []Winner {
	byID := make(map[int]*SeatPlayer, len(players))
	for _, p := range players {
		byID[p.Seat] = p
	}

	totals := make(map[int]*Winner)
	credit := func(seat, amount int, desc string) {
		w, ok := totals[seat]
		if !ok {
			w = &Winner{Seat: seat, PlayerID: byID[seat].ID, Desc: desc}
			totals[seat] = w
		}
		w.Amount += amount
		if w.Desc == "" {
			w.Desc = desc
		}
	}

	for _, pot := range pots {
		eligible := make([]*showdownHand, 0, len(pot.Eligible))
		for _, seat := range pot.Eligible {
			if sh, ok := hands[seat]; ok {
				eligible = append(eligible, sh)
			}
		}
		if len(eligible) == 0 {
			continue
		}

		highSeats := bestHighSeats(eligible)
		lowSeats := bestLowSeats(eligible)

		highHalf := pot.Amount
		if len(lowSeats) > 0 {
			lowHalf := pot.Amount / 2
			highHalf = pot.Amount - lowHalf
			desc := "Eight or Better Low"
			splitHalf(lowHalf, lowSeats, func(seat, amount int) {
				credit(seat, amount, desc)
			})
		}

		desc := hands[highSeats[0]].high.Ranking.String()
		splitHalf(highHalf, highSeats, func(seat, amount int) {
			credit(seat, amount, desc)
		})
	}

	winners := make([]Winner, 0, len(totals))
	for _, w := range totals {
		winners = append(winners, *w)
	}
	sort.Slice(winners, func(i, j int) bool { return winners[i].Seat < winners[j].Seat })
	return winners
}

// bestHighSeats returns the seats tied for the best high hand, in the
// eligibility order they were evaluated.
func bestHighSeats(eligible []*showdownHand) []int {
	var best *showdownHand
	var seats []int
	for _, sh := range eligible {
		if best == nil {
			best = sh
			seats = []int{sh.seat}
			continue
		}
		switch evaluator.Compare(sh.high, best.high) {
		case 1:
			best = sh
			seats = []int{sh.seat}
		case 0:
			seats = append(seats, sh.seat)
		}
	}
	return seats
}

// bestLowSeats returns the seats tied for the best qualifying low, or nil
// when nobody qualifies.
func bestLowSeats(eligible []*showdownHand) []int {
	var best *evaluator.Low
	var seats []int
	for _, sh := range eligible {
		if sh.low == nil {
			continue
		}
		switch evaluator.CompareLow(sh.low, best) {
		case 1:
			best = sh.low
			seats = []int{sh.seat}
		case 0:
			seats = append(seats, sh.seat)
		}
	}
	return seats
}

// splitHalf divides an amount evenly among winners, handing the remainder
// out one chip at a time in evaluation order. Given the same input ordering
// the distribution is fully deterministic.
func splitHalf(amount int, seats []int, credit func(seat, amount int)) {
	share := amount / len(seats)
	remainder := amount % len(seats)
	for i, seat := range seats {
		extra := 0
		if i < remainder {
			extra = 1
		}
		credit(seat, share+extra)
	}
}

// shrinkForRake rescales already-computed winner shares by (pot-rake)/pot
// rather than re-deriving shares from the post-rake pot; the product rule
// is the proportional shrink, preserved here to avoid rounding drift
// across pots. The rake actually collected is whatever the shrunk shares
// leave behind, which keeps chip conservation exact.
func shrinkForRake(winners []Winner, potTotal, rake int) ([]Winner, int) {
	if rake <= 0 || potTotal <= 0 {
		return winners, 0
	}
	distributed := 0
	for i := range winners {
		winners[i].Amount = winners[i].Amount * (potTotal - rake) / potTotal
		distributed += winners[i].Amount
	}
	return winners, potTotal - distributed
}
