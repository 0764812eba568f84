// Package evaluator ranks poker hands. A five-card selection is classified
// into one of ten categories with a kicker sequence for tie-breaking; the
// package also finds the best high hand over hold'em and Omaha card sets and
// the best eight-or-better low for Hi/Lo variants.
package evaluator

import (
	"sort"

	"github.com/smarter-poker/arena-engine/internal/deck"
)

// Ranking is the category of a five-card hand, weakest first.
type Ranking int

const (
	HighCard Ranking = iota + 1
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns a human-readable category name
func (r Ranking) String() string {
	switch r {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Evaluation is the result of classifying a five-card hand.
// Kickers hold the tie-break ranks: rank groups ordered by count descending
// then rank descending, truncated to five entries.
type Evaluation struct {
	Ranking Ranking
	Cards   []deck.Card
	Kickers []int
}

// Evaluate5 classifies exactly five cards. Calling it with any other count
// is a programming error.
func Evaluate5(cards []deck.Card) Evaluation {
	if len(cards) != 5 {
		panic("evaluator: Evaluate5 requires exactly 5 cards")
	}

	sorted := make([]deck.Card, 5)
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Rank > sorted[j].Rank
	})

	flush := isFlush(sorted)
	straightHigh, straight := straightHigh(sorted)

	if flush && straight {
		// A royal flush is the ace-high straight flush; the wheel reports
		// high rank 5 so it stays an ordinary straight flush.
		if straightHigh == int(deck.Ace) {
			return Evaluation{Ranking: RoyalFlush, Cards: sorted, Kickers: []int{int(deck.Ace)}}
		}
		return Evaluation{Ranking: StraightFlush, Cards: sorted, Kickers: straightKickers(straightHigh)}
	}

	kickers := groupedKickers(sorted)
	counts := rankCounts(sorted)

	switch {
	case counts[0] == 4:
		return Evaluation{Ranking: FourOfAKind, Cards: sorted, Kickers: kickers}
	case counts[0] == 3 && counts[1] == 2:
		return Evaluation{Ranking: FullHouse, Cards: sorted, Kickers: kickers}
	case flush:
		return Evaluation{Ranking: Flush, Cards: sorted, Kickers: kickers}
	case straight:
		return Evaluation{Ranking: Straight, Cards: sorted, Kickers: straightKickers(straightHigh)}
	case counts[0] == 3:
		return Evaluation{Ranking: ThreeOfAKind, Cards: sorted, Kickers: kickers}
	case counts[0] == 2 && counts[1] == 2:
		return Evaluation{Ranking: TwoPair, Cards: sorted, Kickers: kickers}
	case counts[0] == 2:
		return Evaluation{Ranking: Pair, Cards: sorted, Kickers: kickers}
	default:
		return Evaluation{Ranking: HighCard, Cards: sorted, Kickers: kickers}
	}
}

// Compare returns 1 if a beats b, -1 if b beats a, 0 on an exact tie.
// Comparison is lexicographic: category first, then the kicker sequence.
func Compare(a, b Evaluation) int {
	if a.Ranking != b.Ranking {
		if a.Ranking > b.Ranking {
			return 1
		}
		return -1
	}
	for i := 0; i < len(a.Kickers) && i < len(b.Kickers); i++ {
		if a.Kickers[i] != b.Kickers[i] {
			if a.Kickers[i] > b.Kickers[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// isFlush reports whether all five cards share a suit.
func isFlush(cards []deck.Card) bool {
	suit := cards[0].Suit
	for _, c := range cards[1:] {
		if c.Suit != suit {
			return false
		}
	}
	return true
}

// straightHigh detects a straight in five rank-descending cards and returns
// its high rank. The wheel (A-2-3-4-5) is the lowest straight and reports
// high rank 5.
func straightHigh(sorted []deck.Card) (int, bool) {
	// Wheel: A,5,4,3,2 after descending sort.
	if sorted[0].Rank == deck.Ace &&
		sorted[1].Rank == deck.Five &&
		sorted[2].Rank == deck.Four &&
		sorted[3].Rank == deck.Three &&
		sorted[4].Rank == deck.Two {
		return int(deck.Five), true
	}

	for i := 1; i < 5; i++ {
		if sorted[i-1].Rank != sorted[i].Rank+1 {
			return 0, false
		}
	}
	return int(sorted[0].Rank), true
}

// straightKickers returns the descending rank run for a straight, counting
// the ace as 1 in the wheel so a wheel sorts below every other straight.
func straightKickers(high int) []int {
	ks := make([]int, 5)
	for i := 0; i < 5; i++ {
		ks[i] = high - i
	}
	return ks
}

// groupedKickers produces the tie-break sequence: ranks grouped by
// multiplicity, groups ordered by count descending then rank descending,
// truncated to five entries.
func groupedKickers(sorted []deck.Card) []int {
	counts := make(map[int]int)
	for _, c := range sorted {
		counts[int(c.Rank)]++
	}

	type group struct{ rank, count int }
	groups := make([]group, 0, len(counts))
	for rank, count := range counts {
		groups = append(groups, group{rank, count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	kickers := make([]int, 0, 5)
	for _, g := range groups {
		kickers = append(kickers, g.rank)
		if len(kickers) == 5 {
			break
		}
	}
	return kickers
}

// rankCounts returns the multiplicities of the hand's ranks, descending.
func rankCounts(sorted []deck.Card) []int {
	byRank := make(map[deck.Rank]int)
	for _, c := range sorted {
		byRank[c.Rank]++
	}
	counts := make([]int, 0, len(byRank))
	for _, n := range byRank {
		counts = append(counts, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))
	return counts
}

// combinations calls fn with every k-subset of indices [0,n). The slice
// passed to fn is reused between calls.
func combinations(n, k int, fn func(idxs []int)) {
	idxs := make([]int, k)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			fn(idxs)
			return
		}
		for i := start; i < n; i++ {
			idxs[depth] = i
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
}

// BestHoldem returns the best five-card hand from the player's hole cards
// plus the board (every 5-of-n combination). Used for hold'em and short-deck.
func BestHoldem(hole, board []deck.Card) Evaluation {
	all := make([]deck.Card, 0, len(hole)+len(board))
	all = append(all, hole...)
	all = append(all, board...)
	if len(all) < 5 {
		panic("evaluator: need at least 5 cards")
	}

	var best Evaluation
	pick := make([]deck.Card, 5)
	combinations(len(all), 5, func(idxs []int) {
		for i, idx := range idxs {
			pick[i] = all[idx]
		}
		ev := Evaluate5(pick)
		if best.Ranking == 0 || Compare(ev, best) > 0 {
			best = ev
		}
	})
	return best
}

// BestOmahaHigh returns the best high hand using exactly two hole cards and
// exactly three board cards. Any other split is not a legal Omaha hand.
func BestOmahaHigh(hole, board []deck.Card) Evaluation {
	if len(hole) < 4 || len(board) < 3 {
		panic("evaluator: omaha needs 4+ hole cards and 3+ board cards")
	}

	var best Evaluation
	pick := make([]deck.Card, 5)
	combinations(len(hole), 2, func(holeIdxs []int) {
		h0, h1 := hole[holeIdxs[0]], hole[holeIdxs[1]]
		combinations(len(board), 3, func(boardIdxs []int) {
			pick[0], pick[1] = h0, h1
			for i, idx := range boardIdxs {
				pick[2+i] = board[idx]
			}
			ev := Evaluate5(pick)
			if best.Ranking == 0 || Compare(ev, best) > 0 {
				best = ev
			}
		})
	})
	return best
}
