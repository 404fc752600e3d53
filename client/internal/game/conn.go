package game

import (
	"log"
	"time"

	"github.com/cenkalti/backoff"
)

func (g *Game) retryConnect() {
	if g.connectInFlight {
		return
	}
	g.connectInFlight = true
	go g.connectAsync()
}

// connectAsync dials the engine with exponential backoff and reports the
// outcome on connCh. A single attempt chain is in flight at a time,
// guarded by connectInFlight on the run loop.
func (g *Game) connectAsync() {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	bo.MaxInterval = 5 * time.Second
	bo.MaxElapsedTime = 30 * time.Second

	var n *Net
	err := backoff.Retry(func() error {
		var derr error
		n, derr = NewNet(g.engineURL)
		return derr
	}, bo)

	// send result without blocking forever; drop oldest on overflow
	select {
	case g.connCh <- connResult{n: n, err: err}:
	default:
		select {
		case <-g.connCh:
		default:
		}
		g.connCh <- connResult{n: n, err: err}
	}
}

// safe send wrapper; runs on caller goroutines as well as the run loop
func (g *Game) send(typ string, payload interface{}) {
	n := g.currentNet()
	if n == nil || n.IsClosed() {
		return
	}
	if err := n.Send(typ, payload); err != nil {
		log.Printf("NET: send(%s) failed: %v", typ, err)
	}
}
