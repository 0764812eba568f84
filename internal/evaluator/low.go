package evaluator

import (
	"sort"

	"github.com/smarter-poker/arena-engine/internal/deck"
)

// Low is a qualifying eight-or-better low hand. Ranks are sorted descending
// with the ace counted as 1; the best low is the lexicographically smallest
// sequence (8-7-6-5-4 loses to 6-4-3-2-A).
type Low struct {
	Ranks []int
	Cards []deck.Card
}

// CompareLow returns 1 if a is the better (lower) hand, -1 if b is, 0 on a
// tie. Nil means no qualifying low and always loses to a qualifying one.
func CompareLow(a, b *Low) int {
	switch {
	case a == nil && b == nil:
		return 0
	case b == nil:
		return 1
	case a == nil:
		return -1
	}
	for i := 0; i < 5; i++ {
		if a.Ranks[i] != b.Ranks[i] {
			if a.Ranks[i] < b.Ranks[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// lowRank maps a card to its low value: ace counts as 1, everything else
// keeps its face value.
func lowRank(c deck.Card) int {
	if c.Rank == deck.Ace {
		return 1
	}
	return int(c.Rank)
}

// lowFromFive builds a qualifying low from five cards, or nil when the
// selection has a pair or any rank above eight.
func lowFromFive(cards []deck.Card) *Low {
	ranks := make([]int, 5)
	seen := make(map[int]bool, 5)
	for i, c := range cards {
		r := lowRank(c)
		if r > 8 || seen[r] {
			return nil
		}
		seen[r] = true
		ranks[i] = r
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	picked := make([]deck.Card, 5)
	copy(picked, cards)
	return &Low{Ranks: ranks, Cards: picked}
}

// BestLow returns the best eight-or-better low using exactly two hole cards
// and exactly three board cards, or nil when no combination qualifies.
// Callers treat nil as "no low, the entire pot goes to the high hand".
func BestLow(hole, board []deck.Card) *Low {
	if len(hole) < 4 || len(board) < 3 {
		return nil
	}

	var best *Low
	pick := make([]deck.Card, 5)
	combinations(len(hole), 2, func(holeIdxs []int) {
		h0, h1 := hole[holeIdxs[0]], hole[holeIdxs[1]]
		combinations(len(board), 3, func(boardIdxs []int) {
			pick[0], pick[1] = h0, h1
			for i, idx := range boardIdxs {
				pick[2+i] = board[idx]
			}
			if low := lowFromFive(pick); low != nil && CompareLow(low, best) > 0 {
				best = low
			}
		})
	})
	return best
}
