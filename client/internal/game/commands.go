package game

import (
	"fmt"
	"log"

	"github.com/rintaro-s/kurikka/shared/protocol"
)

// Engine command wrappers. All of these are fire-and-forget: the outcome
// shows up in the next snapshot (push or poll), never as a direct reply.

func (g *Game) Purchase(track protocol.UpgradeTrack, unit protocol.UnitType) {
	g.send("PurchaseUpgrade", protocol.PurchaseUpgrade{Track: track, UnitType: unit})
}

func (g *Game) ResetStage() {
	g.send("ResetStage", protocol.ResetStage{})
}

func (g *Game) StartAutoBuy(track protocol.UpgradeTrack, unit protocol.UnitType, seconds float64) {
	g.send("StartAutoBuy", protocol.StartAutoBuy{Track: track, UnitType: unit, DurationSeconds: seconds})
}

func (g *Game) StopAutoBuy() {
	g.send("StopAutoBuy", protocol.StopAutoBuy{})
}

func (g *Game) SaveConfig(cfg protocol.AppConfig) {
	g.mu.Lock()
	g.cfg = cfg
	g.mu.Unlock()
	if cfg.MultiplayerServerURL != "" {
		g.mp.SetServerURL(cfg.MultiplayerServerURL)
	}
	g.send("SaveConfig", protocol.SaveConfig{Config: cfg})
}

func (g *Game) Exit() {
	g.send("Exit", protocol.Exit{})
}

// RegisterPlayer performs the one-time multiplayer handshake: the returned
// identity is adopted into the config record and the service's progress
// becomes the local baseline (it counts as a pull).
func (g *Game) RegisterPlayer(name string) error {
	resp, err := g.sync.Register(name)
	if err != nil {
		g.setStatus("multiplayer: " + err.Error())
		return err
	}

	g.mu.Lock()
	cfg := g.cfg
	g.mu.Unlock()
	cfg.MultiplayerName = resp.PlayerName
	cfg.MultiplayerID = resp.PlayerID
	g.SaveConfig(cfg)

	g.setStatus(resp.Message)
	log.Printf("MP: registered as %q (%s), stage %d", resp.PlayerName, resp.PlayerID, resp.Progress.Stage)
	return nil
}

// Players fetches the service's player listing for the social overlay.
func (g *Game) Players() ([]protocol.PlayerSummary, error) {
	players, err := g.mp.ListPlayers()
	if err != nil {
		g.setStatus(fmt.Sprintf("multiplayer: %v", err))
		return nil, err
	}
	return players, nil
}
