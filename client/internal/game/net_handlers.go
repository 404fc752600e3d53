package game

import (
	"encoding/json"
	"log"

	"github.com/rintaro-s/kurikka/shared/protocol"
)

// handle dispatches one inbound engine event. Malformed payloads are a
// contract violation with the engine, not a runtime condition: they are
// skipped, never recovered into partial state.
func (g *Game) handle(env protocol.MsgEnvelope) {
	switch env.Type {
	case "GameUpdate":
		var u protocol.GameUpdate
		if err := json.Unmarshal(env.Data, &u); err != nil {
			return
		}
		g.rec.ApplyPush(u.Seq, &u.State)

	case "StateSync":
		var s protocol.StateSync
		if err := json.Unmarshal(env.Data, &s); err != nil {
			return
		}
		g.rec.ApplyPoll(s.Gen, s.Seq, &s.State)

	case "ConfigData":
		var c protocol.ConfigData
		if err := json.Unmarshal(env.Data, &c); err != nil {
			return
		}
		g.applyConfig(c.Config)

	case "AutoBuyStatus":
		var ab protocol.AutoBuyState
		if err := json.Unmarshal(env.Data, &ab); err != nil {
			return
		}
		g.mu.Lock()
		g.autoBuy = ab
		g.mu.Unlock()

	case "Error":
		var e protocol.ErrorMsg
		if err := json.Unmarshal(env.Data, &e); err != nil {
			return
		}
		g.setStatus(e.Message)
		log.Println("engine:", e.Message)
	}
}

// applyConfig adopts the engine's configuration record. A stored player
// name means a past registration: re-register to pick up the session token
// and whatever progress another device pushed since.
func (g *Game) applyConfig(cfg protocol.AppConfig) {
	g.mu.Lock()
	g.cfg = cfg
	g.mu.Unlock()

	if cfg.MultiplayerServerURL != "" {
		g.mp.SetServerURL(cfg.MultiplayerServerURL)
	}
	if cfg.MultiplayerName != "" && !g.mp.IsConnected() {
		go func(name string) {
			if _, err := g.sync.Register(name); err != nil {
				log.Printf("MP: re-register failed: %v", err)
			}
		}(cfg.MultiplayerName)
	}
}
