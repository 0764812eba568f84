package game

import (
	"testing"

	"github.com/smarter-poker/arena-engine/internal/deck"
	"github.com/smarter-poker/arena-engine/internal/evaluator"
)

func TestResolvePotsSingleWinner(t *testing.T) {
	players := []*SeatPlayer{
		{Seat: 0, ID: "a", TotalBet: 100},
		{Seat: 1, ID: "b", TotalBet: 100},
	}
	board := deck.MustParseCards("Ks", "Qd", "7h", "4c", "2s")
	players[0].HoleCards = deck.MustParseCards("As", "Kd") // top pair, ace kicker
	players[1].HoleCards = deck.MustParseCards("Kh", "Jc") // top pair, jack kicker

	pots := BuildPots(players)
	hands := evaluateShowdown(players, Holdem, false, board)
	winners := resolvePots(players, pots, hands)

	if len(winners) != 1 {
		t.Fatalf("expected one winner, got %+v", winners)
	}
	if winners[0].Seat != 0 || winners[0].Amount != 200 {
		t.Errorf("winner = %+v, want seat 0 taking 200", winners[0])
	}
}

func TestResolvePotsSidePotGoesToCovering(t *testing.T) {
	// The short all-in holds the best hand. They win only the main pot; the
	// side pot goes to the best hand among those who covered it.
	players := []*SeatPlayer{
		{Seat: 0, ID: "a", TotalBet: 50, AllIn: true},
		{Seat: 1, ID: "b", TotalBet: 100},
		{Seat: 2, ID: "c", TotalBet: 100},
	}
	board := deck.MustParseCards("Ks", "Qd", "7h", "4c", "2s")
	players[0].HoleCards = deck.MustParseCards("Kh", "Kd") // trips
	players[1].HoleCards = deck.MustParseCards("Qs", "Qh") // lower trips
	players[2].HoleCards = deck.MustParseCards("As", "7d") // pair of sevens

	pots := BuildPots(players)
	hands := evaluateShowdown(players, Holdem, false, board)
	winners := resolvePots(players, pots, hands)

	byScan := make(map[int]int, len(winners))
	for _, w := range winners {
		byScan[w.Seat] = w.Amount
	}
	if byScan[0] != 150 {
		t.Errorf("seat 0 won %d, want the 150 main pot", byScan[0])
	}
	if byScan[1] != 100 {
		t.Errorf("seat 1 won %d, want the 100 side pot", byScan[1])
	}
	if byScan[2] != 0 {
		t.Errorf("seat 2 won %d, want nothing", byScan[2])
	}
}

func TestResolvePotsSplitWithOddChip(t *testing.T) {
	// A chopped board with an odd pot: the extra chip goes to exactly one
	// winner, deterministically, and nothing is lost.
	players := []*SeatPlayer{
		{Seat: 0, ID: "a", TotalBet: 50},
		{Seat: 1, ID: "b", TotalBet: 50},
		{Seat: 2, ID: "c", TotalBet: 1, Folded: true},
	}
	board := deck.MustParseCards("As", "Kd", "Qh", "Jc", "Ts")
	players[0].HoleCards = deck.MustParseCards("2s", "3d")
	players[1].HoleCards = deck.MustParseCards("4h", "5c")

	pots := BuildPots(players)
	hands := evaluateShowdown(players, Holdem, false, board)
	winners := resolvePots(players, pots, hands)

	if len(winners) != 2 {
		t.Fatalf("expected two winners, got %+v", winners)
	}
	total := winners[0].Amount + winners[1].Amount
	if total != 101 {
		t.Errorf("distributed %d, want the full 101 pot", total)
	}
	diff := winners[0].Amount - winners[1].Amount
	if diff != 1 && diff != -1 {
		t.Errorf("odd chip split %d/%d, want amounts one apart", winners[0].Amount, winners[1].Amount)
	}
}

func TestResolvePotsHiLoSplit(t *testing.T) {
	// Omaha Hi/Lo with a qualifying low: the low half is floor(pot/2) and
	// the high half the remainder.
	players := []*SeatPlayer{
		{Seat: 0, ID: "a", TotalBet: 101},
		{Seat: 1, ID: "b", TotalBet: 101},
	}
	board := deck.MustParseCards("Ah", "4d", "6s", "Kc", "Qd")
	// Seat 0 scoops nothing low but holds top set for the high.
	players[0].HoleCards = deck.MustParseCards("As", "Ad", "Ks", "Jh")
	// Seat 1 takes the low with a 6-4 smooth low.
	players[1].HoleCards = deck.MustParseCards("2s", "3d", "9c", "9d")

	pots := BuildPots(players)
	hands := evaluateShowdown(players, Omaha, true, board)
	winners := resolvePots(players, pots, hands)

	byScan := make(map[int]int, len(winners))
	for _, w := range winners {
		byScan[w.Seat] = w.Amount
	}
	// Pot 202: low half 101, high half 101.
	if byScan[1] != 101 {
		t.Errorf("low winner got %d, want 101", byScan[1])
	}
	if byScan[0] != 101 {
		t.Errorf("high winner got %d, want 101", byScan[0])
	}
}

func TestResolvePotsHiLoNoQualifierScoops(t *testing.T) {
	players := []*SeatPlayer{
		{Seat: 0, ID: "a", TotalBet: 100},
		{Seat: 1, ID: "b", TotalBet: 100},
	}
	board := deck.MustParseCards("Kh", "Qd", "Js", "Tc", "9d")
	players[0].HoleCards = deck.MustParseCards("As", "Kd", "2s", "3h")
	players[1].HoleCards = deck.MustParseCards("9s", "9h", "4c", "5d")

	pots := BuildPots(players)
	hands := evaluateShowdown(players, Omaha, true, board)
	winners := resolvePots(players, pots, hands)

	total := 0
	for _, w := range winners {
		total += w.Amount
	}
	if total != 200 {
		t.Errorf("distributed %d, want the whole 200 pot to the high hand", total)
	}
	if len(winners) != 1 {
		t.Errorf("expected a single scooping winner, got %+v", winners)
	}
}

func TestSplitHalf(t *testing.T) {
	tests := []struct {
		name   string
		amount int
		seats  []int
		want   map[int]int
	}{
		{"even split", 100, []int{3, 7}, map[int]int{3: 50, 7: 50}},
		{"odd chip to first seat", 101, []int{3, 7}, map[int]int{3: 51, 7: 50}},
		{"three way with two extra", 101, []int{1, 2, 3}, map[int]int{1: 34, 2: 34, 3: 33}},
		{"single winner", 55, []int{4}, map[int]int{4: 55}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make(map[int]int)
			splitHalf(tt.amount, tt.seats, func(seat, amount int) {
				got[seat] += amount
			})
			for seat, want := range tt.want {
				if got[seat] != want {
					t.Errorf("seat %d got %d, want %d", seat, got[seat], want)
				}
			}
		})
	}
}

func TestShrinkForRake(t *testing.T) {
	winners := []Winner{
		{Seat: 0, Amount: 667},
		{Seat: 1, Amount: 333},
	}
	shrunk, rake := shrinkForRake(winners, 1000, 50)

	distributed := 0
	for _, w := range shrunk {
		distributed += w.Amount
	}
	if distributed+rake != 1000 {
		t.Errorf("distributed %d + rake %d != pot 1000", distributed, rake)
	}
	if rake < 50 {
		t.Errorf("actual rake %d below nominal 50", rake)
	}
	for i, w := range shrunk {
		if w.Amount > winners[i].Amount {
			t.Errorf("seat %d share grew after rake", w.Seat)
		}
	}
}

func TestShrinkForRakeZero(t *testing.T) {
	winners := []Winner{{Seat: 0, Amount: 100}}
	shrunk, rake := shrinkForRake(winners, 100, 0)
	if rake != 0 || shrunk[0].Amount != 100 {
		t.Errorf("zero rake must be a no-op, got %+v rake %d", shrunk, rake)
	}
}

func TestEvaluateShowdownSkipsFolded(t *testing.T) {
	players := []*SeatPlayer{
		{Seat: 0, HoleCards: deck.MustParseCards("As", "Kd"), TotalBet: 10},
		{Seat: 1, HoleCards: deck.MustParseCards("Qh", "Qc"), TotalBet: 10, Folded: true},
	}
	board := deck.MustParseCards("2s", "5d", "9h", "Jc", "Kh")

	hands := evaluateShowdown(players, Holdem, false, board)
	if _, ok := hands[1]; ok {
		t.Error("folded player must not be evaluated")
	}
	sh, ok := hands[0]
	if !ok {
		t.Fatal("live player missing from showdown")
	}
	if sh.high.Ranking != evaluator.Pair {
		t.Errorf("seat 0 ranking = %v, want Pair", sh.high.Ranking)
	}
}
