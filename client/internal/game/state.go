package game

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/rintaro-s/kurikka/shared/protocol"
)

// Task cadences. Everything is a short non-blocking step; only the sync
// cycle performs blocking HTTP, on its own goroutine.
const (
	mainPollInterval    = 16 * time.Millisecond // primary surface, ~60 Hz
	widgetPollInterval  = 100 * time.Millisecond
	autoBuyPollInterval = time.Second
	syncInterval        = 5 * time.Second
)

type connResult struct {
	n   *Net
	err error
}

// Game is the owned context object for the whole client: the reconciler,
// the engine connection, the multiplayer cycle and the two render
// surfaces all hang off it. Nothing in this package lives in package-level
// mutable state.
type Game struct {
	rec  *Reconciler
	mp   *MultiplayerClient
	sync *SyncCycle

	MainView *Surface
	Widget   *Surface

	engineURL       string
	connCh          chan connResult
	connectInFlight bool // owned by the run loop

	mu      sync.Mutex
	net     *Net // command senders run on caller goroutines
	status  string
	cfg     protocol.AppConfig
	autoBuy protocol.AutoBuyState
}

func New(engineURL, syncURL string) *Game {
	rec := NewReconciler()
	mp := NewMultiplayerClient(syncURL)
	g := &Game{
		rec:       rec,
		mp:        mp,
		sync:      NewSyncCycle(rec, mp),
		MainView:  NewMainView(rec),
		Widget:    NewWidget(rec),
		engineURL: engineURL,
		connCh:    make(chan connResult, 4),
	}
	return g
}

func (g *Game) Reconciler() *Reconciler         { return g.rec }
func (g *Game) Multiplayer() *MultiplayerClient { return g.mp }

func (g *Game) currentNet() *Net {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.net
}

func (g *Game) setNet(n *Net) {
	g.mu.Lock()
	g.net = n
	g.mu.Unlock()
}

// Status returns the transient status line (last engine/service error or
// multiplayer notice).
func (g *Game) Status() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

func (g *Game) setStatus(s string) {
	g.mu.Lock()
	g.status = s
	g.mu.Unlock()
}

// Config returns the last configuration record received from the engine.
func (g *Game) Config() protocol.AppConfig {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cfg
}

// AutoBuy returns the last auto-buy status reported by the engine.
func (g *Game) AutoBuy() protocol.AutoBuyState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.autoBuy
}

// Run drives the client until ctx is cancelled: engine connection upkeep,
// per-surface polling, the auto-buy status poll and inbound event
// dispatch. The multiplayer cycle and the render surfaces run on their own
// tickers.
func (g *Game) Run(ctx context.Context) error {
	g.retryConnect()

	go g.sync.Run(ctx)
	go g.MainView.Run(ctx)
	go g.Widget.Run(ctx)

	mainTick := time.NewTicker(mainPollInterval)
	defer mainTick.Stop()
	widgetTick := time.NewTicker(widgetPollInterval)
	defer widgetTick.Stop()
	autoBuyTick := time.NewTicker(autoBuyPollInterval)
	defer autoBuyTick.Stop()

	for {
		var in <-chan protocol.MsgEnvelope
		if n := g.currentNet(); n != nil {
			in = n.In()
		}

		select {
		case <-ctx.Done():
			if n := g.currentNet(); n != nil {
				_ = n.Close()
			}
			return ctx.Err()

		case res := <-g.connCh:
			g.connectInFlight = false
			if res.err != nil {
				g.setStatus("engine: " + res.err.Error())
				g.retryConnect()
				break
			}
			g.setNet(res.n)
			g.setStatus("")
			log.Println("NET: connected")
			g.send("GetConfig", protocol.GetConfig{})

		case env, ok := <-in:
			if !ok {
				g.setNet(nil)
				g.retryConnect()
				break
			}
			g.handle(env)

		case <-mainTick.C:
			g.pollState()

		case <-widgetTick.C:
			g.pollState()

		case <-autoBuyTick.C:
			g.send("GetAutoBuy", protocol.GetAutoBuy{})
		}
	}
}

// pollState issues a GetState tagged with a fresh generation. The response
// lands in handle() and goes through the reconciler's staleness gates.
func (g *Game) pollState() {
	if n := g.currentNet(); n == nil || n.IsClosed() {
		return
	}
	gen := g.rec.NextPollGen()
	g.send("GetState", protocol.GetState{Gen: gen})
}
