// Command dealer plays hands from a table configuration with simple
// scripted actors and prints the engine's event stream. It is a wrapper
// around the engine, not part of it; real deployments replace the actors
// with a network layer.
package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/smarter-poker/arena-engine/internal/deck"
	"github.com/smarter-poker/arena-engine/internal/engineconfig"
	"github.com/smarter-poker/arena-engine/internal/game"
	"github.com/smarter-poker/arena-engine/internal/randutil"
)

type CLI struct {
	Config  string `short:"c" default:"tables.hcl" help:"HCL table configuration file"`
	Table   string `short:"t" default:"" help:"Table name (defaults to the first table)"`
	Hands   int    `default:"1" help:"Number of hands to play"`
	Players int    `short:"p" default:"6" help:"Number of seated players"`
	Seed    int64  `default:"0" help:"RNG seed (0 for random)"`
	Verbose bool   `short:"v" help:"Verbose logging"`
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	redCard     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	blackCard   = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	if cli.Verbose {
		log.SetLevel(log.DebugLevel)
	}
	lipgloss.SetColorProfile(termenv.ColorProfile())

	if err := run(&cli); err != nil {
		log.Fatal("dealer failed", "error", err)
	}
	ctx.Exit(0)
}

func run(cli *CLI) error {
	cfg, err := engineconfig.Load(cli.Config)
	if err != nil {
		return err
	}
	table, err := cfg.Table(cli.Table)
	if err != nil {
		return err
	}

	if cli.Players < 2 || cli.Players > 9 {
		return fmt.Errorf("players must be between 2 and 9, got %d", cli.Players)
	}

	seed := cli.Seed
	if seed == 0 {
		seed = randutil.NewTimeSeeded().Int64()
	}
	log.Debug("seeding", "seed", seed)
	rng := randutil.New(seed)

	stacks := make([]int, cli.Players)
	for i := range stacks {
		stacks[i] = table.StartingStack
	}

	dealerSeat := 0
	for n := 1; n <= cli.Hands; n++ {
		funded := 0
		for _, s := range stacks {
			if s > 0 {
				funded++
			}
		}
		if funded < 2 {
			log.Info("table is done, one player has all the chips")
			break
		}

		handCfg, err := table.HandConfig(uint64(n))
		if err != nil {
			return err
		}

		roster := make([]game.SeatPlayer, cli.Players)
		for i := range roster {
			roster[i] = game.SeatPlayer{
				Seat:  i,
				ID:    fmt.Sprintf("player-%d", i),
				Name:  fmt.Sprintf("Player %d", i+1),
				Stack: stacks[i],
			}
		}

		hand, err := game.NewHand(handCfg, roster, dealerSeat, game.WithRNG(rng))
		if err != nil {
			return err
		}

		printer := &eventPrinter{out: os.Stdout}
		unsubscribe := hand.Subscribe(printer.onEvent)

		if err := hand.Start(); err != nil {
			return err
		}
		if err := playOut(hand, rng); err != nil {
			return err
		}
		unsubscribe()

		for _, p := range hand.Snapshot().Players {
			stacks[p.Seat] = p.Stack
		}
		dealerSeat = (dealerSeat + 1) % cli.Players
	}
	return nil
}

// playOut drives the hand to completion with a simple calling-station
// policy mixed with occasional raises.
func playOut(hand *game.Hand, rng interface{ IntN(int) int }) error {
	for !hand.Completed() {
		seat := hand.CurrentActor()
		if seat < 0 {
			return fmt.Errorf("hand stalled with no actor")
		}

		state := hand.Snapshot()
		var player game.SeatPlayer
		for _, p := range state.Players {
			if p.Seat == seat {
				player = p
				break
			}
		}
		toCall := state.CurrentBet - player.Bet

		var ok bool
		switch {
		case toCall == 0 && state.CurrentBet == 0 && player.Stack >= state.MinRaise && rng.IntN(5) == 0:
			ok = hand.PerformAction(seat, game.Bet, state.MinRaise)
		case toCall == 0:
			ok = hand.PerformAction(seat, game.Check, 0)
		case rng.IntN(4) == 0:
			ok = hand.PerformAction(seat, game.Fold, 0)
		default:
			ok = hand.PerformAction(seat, game.Call, 0)
		}
		if !ok {
			return fmt.Errorf("action rejected: %w", hand.LastError())
		}
	}
	return nil
}

// eventPrinter renders the event stream for the terminal.
type eventPrinter struct {
	out *os.File
}

func (ep *eventPrinter) onEvent(e game.Event) {
	switch ev := e.(type) {
	case game.HandStarted:
		fmt.Fprintln(ep.out, headerStyle.Render(fmt.Sprintf(
			"=== Hand %d (%s) %d/%d, dealer seat %d ===",
			ev.HandNo, ev.Variant, ev.SmallBlind, ev.BigBlind, ev.DealerSeat)))
	case game.HoleCardsDealt:
		fmt.Fprintf(ep.out, "seat %d dealt %s\n", ev.Seat, renderCards(ev.Cards))
	case game.CommunityDealt:
		fmt.Fprintf(ep.out, "%s: %s\n", headerStyle.Render(ev.Street.String()), renderCards(ev.Board))
	case game.PlayerActed:
		if ev.Amount > 0 {
			fmt.Fprintf(ep.out, "seat %d %s %d\n", ev.Seat, ev.Action, ev.Amount)
		} else {
			fmt.Fprintf(ep.out, "seat %d %s\n", ev.Seat, ev.Action)
		}
	case game.ShowdownResult:
		fmt.Fprintf(ep.out, "seat %d shows %s (%s)\n", ev.Seat, renderCards(ev.HoleCards), ev.Ranking)
	case game.WinnersDetermined:
		for _, w := range ev.Winners {
			if w.Desc != "" {
				fmt.Fprintf(ep.out, "seat %d wins %d (%s)\n", w.Seat, w.Amount, w.Desc)
			} else {
				fmt.Fprintf(ep.out, "seat %d wins %d\n", w.Seat, w.Amount)
			}
		}
	case game.HandCompleted:
		fmt.Fprintf(ep.out, "pot %d, rake %d\n\n", ev.PotTotal, ev.Rake)
	}
}

func renderCards(cards []deck.Card) string {
	s := ""
	for i, c := range cards {
		if i > 0 {
			s += " "
		}
		text := c.Rank.String() + c.Suit.Symbol()
		if c.IsRed() {
			s += redCard.Render(text)
		} else {
			s += blackCard.Render(text)
		}
	}
	return "[" + s + "]"
}
