package game

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/smarter-poker/arena-engine/internal/deck"
	"github.com/smarter-poker/arena-engine/internal/randutil"
)

var (
	// ErrHandNotStarted is returned for actions before Start.
	ErrHandNotStarted = errors.New("game: hand not started")
	// ErrHandCompleted is returned for actions after the hand finished.
	ErrHandCompleted = errors.New("game: hand already completed")
	// ErrNotYourTurn rejects actions from any seat but the current actor.
	ErrNotYourTurn = errors.New("game: not this seat's turn")
)

// Hand drives one poker hand end to end. It is the only component with
// mutable state; dealing, evaluation, pot building, validation, rake and
// winner resolution are called as pure services.
//
// A Hand is single-threaded: callers must serialize all calls into one
// instance. Event handlers run synchronously and must not call back into
// the mutating API.
type Hand struct {
	cfg        HandConfig
	players    []*SeatPlayer // sorted by seat
	bySeat     map[int]*SeatPlayer
	dealerSeat int

	deck          *deck.Deck
	street        Street
	board         []deck.Card
	currentBet    int
	minRaise      int
	lastRaiseSize int
	actingSeat    int
	acted         map[int]bool
	sawFlop       bool
	history       []ActionRecord

	bus   broadcaster
	clock quartz.Clock
	rng   *rand.Rand

	started   bool
	completed bool
	lastErr   error
}

// HandOption configures a Hand during creation.
type HandOption func(*Hand)

// WithRNG injects the randomness source used to shuffle. Tests seed it via
// randutil.New for reproducible deals.
func WithRNG(rng *rand.Rand) HandOption {
	return func(h *Hand) { h.rng = rng }
}

// WithClock injects the clock used to stamp action records and events.
// The engine has no internal timers; this exists purely for timestamps.
func WithClock(clock quartz.Clock) HandOption {
	return func(h *Hand) { h.clock = clock }
}

// NewHand constructs a hand from its config, the seated roster and the
// dealer seat. Malformed configuration is a caller bug and fails here, not
// later.
func NewHand(cfg HandConfig, roster []SeatPlayer, dealerSeat int, opts ...HandOption) (*Hand, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	players := make([]*SeatPlayer, 0, len(roster))
	seen := make(map[int]bool, len(roster))
	for i := range roster {
		p := roster[i]
		if seen[p.Seat] {
			return nil, fmt.Errorf("%w: seat %d", errDuplicateSeat, p.Seat)
		}
		seen[p.Seat] = true
		if p.Stack <= 0 {
			p.SittingOut = true
		}
		p.Bet, p.TotalBet = 0, 0
		p.Folded, p.AllIn = false, false
		p.HoleCards = nil
		players = append(players, &p)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].Seat < players[j].Seat })

	dealt := 0
	for _, p := range players {
		if !p.SittingOut {
			dealt++
		}
	}
	if dealt < 2 {
		return nil, errTooFewPlayers
	}
	deckSize := 52
	if cfg.Variant == ShortDeck {
		deckSize = 36
	}
	if need := dealt*cfg.Variant.HoleCardCount() + 5; need > deckSize {
		return nil, fmt.Errorf("%w: %d players need %d cards", errDeckOverflow, dealt, need)
	}
	if !seen[dealerSeat] {
		return nil, fmt.Errorf("%w: seat %d", errBadDealer, dealerSeat)
	}

	if cfg.HandID == "" {
		cfg.HandID = uuid.NewString()
	}

	h := &Hand{
		cfg:        cfg,
		players:    players,
		bySeat:     make(map[int]*SeatPlayer, len(players)),
		dealerSeat: dealerSeat,
		actingSeat: -1,
		acted:      make(map[int]bool),
	}
	for _, p := range players {
		h.bySeat[p.Seat] = p
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.rng == nil {
		h.rng = randutil.NewTimeSeeded()
	}
	if h.clock == nil {
		h.clock = quartz.NewReal()
	}
	return h, nil
}

// Subscribe registers an event handler and returns its unsubscribe func.
// Every subscriber receives every event, synchronously, in emission order.
func (h *Hand) Subscribe(fn func(Event)) func() {
	return h.bus.subscribe(fn)
}

// LastError returns the reason the most recent PerformAction call was
// rejected, or nil.
func (h *Hand) LastError() error { return h.lastErr }

// CurrentActor returns the seat due to act, or -1.
func (h *Hand) CurrentActor() int { return h.actingSeat }

// Completed reports whether the hand has finished.
func (h *Hand) Completed() bool { return h.completed }

// Board returns a copy of the community cards.
func (h *Hand) Board() []deck.Card {
	return append([]deck.Card(nil), h.board...)
}

// PotTotal returns the sum of all contributions this hand.
func (h *Hand) PotTotal() int { return h.potTotal() }

func (h *Hand) potTotal() int {
	total := 0
	for _, p := range h.players {
		total += p.TotalBet
	}
	return total
}

func (h *Hand) now() base { return base{At: h.clock.Now()} }

// Start posts blinds or the bomb-pot ante, deals hole cards and opens the
// betting. It may complete the hand immediately when the forced bets leave
// fewer than two players able to act.
func (h *Hand) Start() error {
	if h.started {
		return errors.New("game: hand already started")
	}
	h.started = true

	h.deck = deck.New(h.rng)
	if h.cfg.Variant == ShortDeck {
		h.deck.StripBelow(deck.Six)
	}

	seats := make([]int, 0, len(h.players))
	for _, p := range h.players {
		if !p.SittingOut {
			seats = append(seats, p.Seat)
		}
	}
	h.bus.publish(HandStarted{
		base:       h.now(),
		TableID:    h.cfg.TableID,
		HandID:     h.cfg.HandID,
		HandNo:     h.cfg.HandNo,
		Variant:    h.cfg.Variant,
		SmallBlind: h.cfg.SmallBlind,
		BigBlind:   h.cfg.BigBlind,
		DealerSeat: h.dealerSeat,
		Seats:      seats,
	})

	h.minRaise = h.cfg.BigBlind
	firstActor := -1

	if h.cfg.BombPotMultiplier > 0 {
		// Bomb pot: a flat ante from every seated player, no blinds, and
		// action opens on the first seat after the dealer.
		ante := h.cfg.BombPotMultiplier * h.cfg.BigBlind
		for _, p := range h.players {
			if !p.SittingOut {
				p.payDead(ante)
			}
		}
		firstActor = h.nextCanActSeat(h.dealerSeat)
	} else {
		if h.cfg.Ante > 0 {
			for _, p := range h.players {
				if !p.SittingOut {
					p.payDead(h.cfg.Ante)
				}
			}
		}

		sbSeat, bbSeat := h.blindSeats()
		h.bySeat[sbSeat].pay(h.cfg.SmallBlind)
		h.bySeat[bbSeat].pay(h.cfg.BigBlind)
		h.currentBet = h.cfg.BigBlind
		firstActor = h.nextCanActSeat(bbSeat)
	}

	h.bus.publish(PotUpdated{base: h.now(), PotTotal: h.potTotal()})

	if err := h.dealHoleCards(); err != nil {
		return err
	}

	h.actingSeat = firstActor
	h.continueBetting()
	return nil
}

// blindSeats returns the small and big blind seats. Heads-up the dealer
// posts the small blind.
func (h *Hand) blindSeats() (sb, bb int) {
	inHand := 0
	for _, p := range h.players {
		if !p.SittingOut {
			inHand++
		}
	}
	if inHand == 2 {
		sb = h.dealerSeat
		if h.bySeat[sb].SittingOut {
			sb = h.nextSeatInHand(h.dealerSeat)
		}
		bb = h.nextSeatInHand(sb)
		return sb, bb
	}
	sb = h.nextSeatInHand(h.dealerSeat)
	bb = h.nextSeatInHand(sb)
	return sb, bb
}

func (h *Hand) dealHoleCards() error {
	count := h.cfg.Variant.HoleCardCount()
	for _, seat := range h.seatsInOrderAfter(h.dealerSeat) {
		p := h.bySeat[seat]
		if p.SittingOut {
			continue
		}
		cards, err := h.deck.Deal(count)
		if err != nil {
			return err
		}
		p.HoleCards = cards
		h.bus.publish(HoleCardsDealt{base: h.now(), Seat: seat, Cards: append([]deck.Card(nil), cards...)})
	}
	return nil
}

// PerformAction applies one action for the given seat. It returns false
// and records the reason (see LastError) when the action is rejected;
// rejected actions never mutate state.
func (h *Hand) PerformAction(seat int, action Action, amount int) bool {
	switch {
	case !h.started:
		h.lastErr = ErrHandNotStarted
		return false
	case h.completed:
		h.lastErr = ErrHandCompleted
		return false
	case seat != h.actingSeat:
		h.lastErr = fmt.Errorf("%w: seat %d acting, got %d", ErrNotYourTurn, h.actingSeat, seat)
		return false
	}

	p := h.bySeat[seat]
	st := BettingState{
		CurrentBet: h.currentBet,
		MinRaise:   h.minRaise,
		Pot:        h.potTotal(),
		ToCall:     h.currentBet - p.Bet,
	}
	if ok, reason := Validate(action, amount, p, st); !ok {
		h.lastErr = fmt.Errorf("game: %s", reason)
		return false
	}
	h.lastErr = nil

	recorded := 0
	switch action {
	case Fold:
		p.Folded = true

	case Check:
		// nothing moves

	case Call:
		recorded = p.pay(st.ToCall)

	case Bet:
		p.pay(amount)
		h.currentBet = p.Bet
		h.lastRaiseSize = p.Bet
		if p.Bet > h.minRaise {
			h.minRaise = p.Bet
		}
		recorded = p.Bet

	case Raise:
		// pay is capped at the stack, so an all-in under-raise lands on
		// the player's true total rather than the requested amount.
		p.pay(amount - p.Bet)
		if p.Bet > h.currentBet {
			increment := p.Bet - st.CurrentBet
			h.lastRaiseSize = increment
			if increment > h.minRaise {
				h.minRaise = increment
			}
			h.currentBet = p.Bet
		}
		recorded = p.Bet

	case AllIn:
		p.pay(p.Stack)
		if p.Bet > h.currentBet {
			increment := p.Bet - h.currentBet
			h.lastRaiseSize = increment
			if increment > h.minRaise {
				h.minRaise = increment
			}
			h.currentBet = p.Bet
		}
		recorded = p.Bet
	}

	h.acted[seat] = true
	h.history = append(h.history, ActionRecord{
		Seat:   seat,
		Action: action,
		Amount: recorded,
		Street: h.street,
		At:     h.clock.Now(),
	})
	h.bus.publish(PlayerActed{base: h.now(), Seat: seat, Action: action, Amount: recorded, Street: h.street})
	h.bus.publish(PotUpdated{base: h.now(), PotTotal: h.potTotal()})

	if h.countInHand() == 1 {
		h.finishFoldOut()
		return true
	}

	h.actingSeat = h.nextCanActSeat(seat)
	h.continueBetting()
	return true
}

// continueBetting either hands the turn to the next actor or, when the
// round is over (or nobody can act), advances the street.
func (h *Hand) continueBetting() {
	if h.actingSeat == -1 || h.roundComplete() {
		h.advanceStreet()
		return
	}
	h.emitTurn()
}

func (h *Hand) emitTurn() {
	p := h.bySeat[h.actingSeat]
	st := BettingState{
		CurrentBet: h.currentBet,
		MinRaise:   h.minRaise,
		Pot:        h.potTotal(),
		ToCall:     h.currentBet - p.Bet,
	}
	h.bus.publish(TurnChanged{
		base:         h.now(),
		Seat:         h.actingSeat,
		LegalActions: legalActions(p, st),
		ToCall:       st.ToCall,
		MinRaise:     st.MinRaise,
	})
}

// roundComplete reports whether the current betting round is over: every
// player who can still act has acted on this street and has matched the
// street's target bet. The predicate is pure; calling it twice in a row
// yields the same answer.
func (h *Hand) roundComplete() bool {
	for _, p := range h.players {
		if !p.CanAct() {
			continue
		}
		if !h.acted[p.Seat] {
			return false
		}
		if p.Bet != h.currentBet {
			return false
		}
	}
	return true
}

// advanceStreet moves to the next stage, dealing community cards and
// re-opening betting, or switching to the run-out path when fewer than two
// players can act.
func (h *Hand) advanceStreet() {
	if h.street == River || h.street == Showdown {
		h.showdown()
		return
	}

	h.dealNextStreet()

	if h.countCanAct() < 2 {
		h.runOut()
		return
	}

	h.actingSeat = h.nextCanActSeat(h.dealerSeat)
	if h.actingSeat == -1 {
		h.runOut()
		return
	}
	h.emitTurn()
}

// dealNextStreet advances a single street and reveals its cards.
func (h *Hand) dealNextStreet() {
	for _, p := range h.players {
		p.Bet = 0
	}
	h.currentBet = 0
	h.minRaise = h.cfg.BigBlind
	h.lastRaiseSize = 0
	h.acted = make(map[int]bool)

	var n int
	switch h.street {
	case Preflop:
		h.street, n = Flop, 3
		h.sawFlop = true
	case Flop:
		h.street, n = Turn, 1
	case Turn:
		h.street, n = River, 1
	default:
		return
	}

	cards, err := h.deck.Deal(n)
	if err != nil {
		// Unreachable under correct variant and player-count config; a
		// short deck here means the controller's bookkeeping is broken.
		panic(err)
	}
	h.board = append(h.board, cards...)
	h.bus.publish(CommunityDealt{
		base:   h.now(),
		Street: h.street,
		Cards:  cards,
		Board:  h.Board(),
	})
}

// runOut deals the remaining community cards without further betting and
// goes to showdown.
func (h *Hand) runOut() {
	h.actingSeat = -1
	for h.street != River {
		h.dealNextStreet()
	}
	h.showdown()
}

// showdown settles the hand: side pots, evaluation, winner resolution,
// rake, stack credit, terminal events.
func (h *Hand) showdown() {
	h.street = Showdown
	h.actingSeat = -1

	pots := BuildPots(h.players)
	h.bus.publish(PotUpdated{base: h.now(), PotTotal: PotTotal(pots)})

	hands := evaluateShowdown(h.players, h.cfg.Variant, h.cfg.HiLo, h.board)
	for _, p := range h.players {
		sh, ok := hands[p.Seat]
		if !ok {
			continue
		}
		h.bus.publish(ShowdownResult{
			base:      h.now(),
			Seat:      p.Seat,
			Ranking:   sh.high.Ranking.String(),
			HoleCards: append([]deck.Card(nil), p.HoleCards...),
			BestCards: append([]deck.Card(nil), sh.high.Cards...),
		})
	}

	winners := resolvePots(h.players, pots, hands)
	h.settle(winners)
}

// finishFoldOut ends the hand early: the single remaining player wins every
// pot outright, without evaluation.
func (h *Hand) finishFoldOut() {
	h.street = Showdown
	h.actingSeat = -1

	var last *SeatPlayer
	for _, p := range h.players {
		if p.InHand() {
			last = p
			break
		}
	}
	winners := []Winner{{Seat: last.Seat, PlayerID: last.ID, Amount: h.potTotal()}}
	h.settle(winners)
}

// settle applies rake, credits stacks and emits the terminal events.
func (h *Hand) settle(winners []Winner) {
	potTotal := h.potTotal()
	rake := h.cfg.Rake.Take(potTotal, h.sawFlop)
	winners, rake = shrinkForRake(winners, potTotal, rake)

	for _, w := range winners {
		h.bySeat[w.Seat].Stack += w.Amount
	}

	stacks := make(map[int]int, len(h.players))
	for _, p := range h.players {
		stacks[p.Seat] = p.Stack
	}

	h.completed = true
	h.bus.publish(WinnersDetermined{base: h.now(), Winners: winners})
	h.bus.publish(HandCompleted{
		base:     h.now(),
		HandID:   h.cfg.HandID,
		PotTotal: potTotal,
		Rake:     rake,
		Stacks:   stacks,
	})
}

// countInHand counts players who still hold a claim on the pot.
func (h *Hand) countInHand() int {
	n := 0
	for _, p := range h.players {
		if p.InHand() {
			n++
		}
	}
	return n
}

// countCanAct counts players who can still take betting actions.
func (h *Hand) countCanAct() int {
	n := 0
	for _, p := range h.players {
		if p.CanAct() {
			n++
		}
	}
	return n
}

// seatsInOrderAfter returns every seat once, starting just after the given
// seat and wrapping circularly.
func (h *Hand) seatsInOrderAfter(seat int) []int {
	idx := 0 // wraps to the lowest seat when none is higher
	for i, p := range h.players {
		if p.Seat > seat {
			idx = i
			break
		}
	}
	seats := make([]int, 0, len(h.players))
	for i := 0; i < len(h.players); i++ {
		seats = append(seats, h.players[(idx+i)%len(h.players)].Seat)
	}
	return seats
}

// nextSeatInHand returns the next non-sitting-out seat after the given
// seat, wrapping circularly.
func (h *Hand) nextSeatInHand(seat int) int {
	for _, s := range h.seatsInOrderAfter(seat) {
		if !h.bySeat[s].SittingOut {
			return s
		}
	}
	return -1
}

// nextCanActSeat returns the next seat able to act after the given seat,
// or -1 when nobody can. Folded and all-in players are skipped.
func (h *Hand) nextCanActSeat(seat int) int {
	for _, s := range h.seatsInOrderAfter(seat) {
		if h.bySeat[s].CanAct() {
			return s
		}
	}
	return -1
}
