// Command table-server wraps one engine table behind a websocket feed: the
// event stream is fanned out to every connected client as JSON, and client
// messages are applied to the current hand as actions. All calls into a
// hand are serialized through the table goroutine, as the engine requires.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/smarter-poker/arena-engine/internal/engineconfig"
	"github.com/smarter-poker/arena-engine/internal/game"
	"github.com/smarter-poker/arena-engine/internal/randutil"
)

type CLI struct {
	Config  string `short:"c" default:"tables.hcl" help:"HCL table configuration file"`
	Table   string `short:"t" default:"" help:"Table name (defaults to the first table)"`
	Listen  string `short:"l" default:"localhost:8080" help:"Listen address"`
	Players int    `short:"p" default:"6" help:"Number of seated players"`
	Seed    int64  `default:"0" help:"RNG seed (0 for random)"`
	Verbose bool   `short:"v" help:"Verbose logging"`
}

func main() {
	var cli CLI
	kong.Parse(&cli)

	if cli.Verbose {
		log.SetLevel(log.DebugLevel)
	}

	if err := run(&cli); err != nil {
		log.Fatal("table-server failed", "error", err)
	}
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

	seed := cli.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	srv := newTableServer(table, cli.Players, seed)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", srv.handleWS)

	httpServer := &http.Server{Addr: cli.Listen, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", "addr", cli.Listen, "table", table.Name)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return srv.runTable(ctx)
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// actionMsg is what clients send to act for a seat.
type actionMsg struct {
	Seat   int    `json:"seat"`
	Action string `json:"action"`
	Amount int    `json:"amount"`
}

// envelope wraps engine events for the wire.
type envelope struct {
	Type string `json:"type"`
	At   string `json:"at"`
	Data any    `json:"data"`
}

type tableServer struct {
	table   *engineconfig.TableConfig
	players int
	seed    int64

	upgrader websocket.Upgrader
	actions  chan actionMsg

	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte
}

func newTableServer(table *engineconfig.TableConfig, players int, seed int64) *tableServer {
	return &tableServer{
		table:   table,
		players: players,
		seed:    seed,
		actions: make(chan actionMsg, 16),
		clients: make(map[*websocket.Conn]chan []byte),
	}
}

func (s *tableServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("upgrade failed", "error", err)
		return
	}

	send := make(chan []byte, 256)
	s.mu.Lock()
	s.clients[conn] = send
	s.mu.Unlock()
	log.Info("client connected", "remote", conn.RemoteAddr())

	go func() {
		for msg := range send {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		}
	}()

	defer func() {
		s.mu.Lock()
		if ch, ok := s.clients[conn]; ok {
			delete(s.clients, conn)
			close(ch)
		}
		s.mu.Unlock()
		conn.Close()
		log.Info("client disconnected", "remote", conn.RemoteAddr())
	}()

	for {
		var msg actionMsg
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		select {
		case s.actions <- msg:
		default:
			log.Warn("action dropped, queue full", "seat", msg.Seat)
		}
	}
}

// broadcast sends an event envelope to every connected client. Slow
// clients are dropped rather than allowed to stall the table.
func (s *tableServer) broadcast(e game.Event) {
	data, err := json.Marshal(envelope{
		Type: e.EventType().String(),
		At:   e.Timestamp().Format(time.RFC3339Nano),
		Data: e,
	})
	if err != nil {
		log.Error("marshal event", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for conn, send := range s.clients {
		select {
		case send <- data:
		default:
			delete(s.clients, conn)
			close(send)
			conn.Close()
		}
	}
}

// runTable plays hands forever, applying client actions in arrival order.
// The engine instance is only ever touched from this goroutine.
func (s *tableServer) runTable(ctx context.Context) error {
	rng := randutil.New(s.seed)

	stacks := make([]int, s.players)
	for i := range stacks {
		stacks[i] = s.table.StartingStack
	}

	dealerSeat := 0
	for handNo := uint64(1); ; handNo++ {
		funded := 0
		for _, st := range stacks {
			if st > 0 {
				funded++
			}
		}
		if funded < 2 {
			log.Info("table is done, one player has all the chips")
			return nil
		}

		handCfg, err := s.table.HandConfig(handNo)
		if err != nil {
			return err
		}

		roster := make([]game.SeatPlayer, s.players)
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
		unsubscribe := hand.Subscribe(s.broadcast)

		if err := hand.Start(); err != nil {
			return err
		}

		for !hand.Completed() {
			select {
			case <-ctx.Done():
				unsubscribe()
				return ctx.Err()
			case msg := <-s.actions:
				action, err := parseAction(msg.Action)
				if err != nil {
					log.Debug("bad action", "error", err)
					continue
				}
				if !hand.PerformAction(msg.Seat, action, msg.Amount) {
					log.Debug("action rejected", "seat", msg.Seat, "reason", hand.LastError())
				}
			}
		}
		unsubscribe()

		for _, p := range hand.Snapshot().Players {
			stacks[p.Seat] = p.Stack
		}
		dealerSeat = (dealerSeat + 1) % s.players
	}
}

func parseAction(s string) (game.Action, error) {
	switch s {
	case "fold":
		return game.Fold, nil
	case "check":
		return game.Check, nil
	case "call":
		return game.Call, nil
	case "bet":
		return game.Bet, nil
	case "raise":
		return game.Raise, nil
	case "allin":
		return game.AllIn, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}
