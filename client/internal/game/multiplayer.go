package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/rintaro-s/kurikka/shared/protocol"
)

var errNotRegistered = errors.New("not registered to server")

// MultiplayerClient talks to the progress service. It holds the assigned
// identity, the session token and the last remote update timestamp used to
// decide whether a pulled record is actually newer than what this session
// already knows.
type MultiplayerClient struct {
	mu               sync.Mutex
	serverURL        string
	playerID         string
	playerName       string
	token            string
	lastRemoteUpdate int64

	hc *http.Client
}

func NewMultiplayerClient(serverURL string) *MultiplayerClient {
	return &MultiplayerClient{
		serverURL: serverURL,
		hc:        &http.Client{Timeout: 4 * time.Second},
	}
}

func (c *MultiplayerClient) SetServerURL(url string) {
	c.mu.Lock()
	c.serverURL = url
	c.mu.Unlock()
}

func (c *MultiplayerClient) ServerURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.serverURL
}

// IsConnected reports whether sync ticks should do anything: a server URL
// is configured and a registration has succeeded.
func (c *MultiplayerClient) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.serverURL != "" && c.playerID != ""
}

func (c *MultiplayerClient) identity() (base, id, token string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.serverURL == "" {
		return "", "", "", errors.New("no server URL configured")
	}
	if c.playerID == "" {
		return "", "", "", errNotRegistered
	}
	return c.serverURL, c.playerID, c.token, nil
}

// Register probes the service, then performs the registration handshake
// and adopts the returned identity and token.
func (c *MultiplayerClient) Register(name string) (protocol.RegisterResponse, error) {
	base := c.ServerURL()
	if base == "" {
		return protocol.RegisterResponse{}, errors.New("no server URL configured")
	}
	if _, err := c.Health(); err != nil {
		return protocol.RegisterResponse{}, fmt.Errorf("service unreachable: %w", err)
	}

	resp, err := postJSON[protocol.RegisterRequest, protocol.RegisterResponse](
		c.hc, base+"/api/player/register", "", protocol.RegisterRequest{PlayerName: name})
	if err != nil {
		return protocol.RegisterResponse{}, err
	}

	c.mu.Lock()
	c.playerID = resp.PlayerID
	c.playerName = resp.PlayerName
	c.token = resp.Token
	c.lastRemoteUpdate = resp.LastUpdate
	c.mu.Unlock()
	return resp, nil
}

// PushProgress uploads the progression subset. The call is idempotent on
// the remote side beyond refreshing its last-seen timestamp, which is
// recorded here so the next pull is not mistaken for another session's
// advance.
func (c *MultiplayerClient) PushProgress(p protocol.PlayerProgress) (protocol.PlayerProfile, error) {
	base, id, token, err := c.identity()
	if err != nil {
		return protocol.PlayerProfile{}, err
	}

	profile, err := postJSON[protocol.SyncRequest, protocol.PlayerProfile](
		c.hc, base+"/api/player/"+id+"/update", token, protocol.SyncRequest{Progress: p})
	if err != nil {
		return protocol.PlayerProfile{}, err
	}

	c.mu.Lock()
	c.lastRemoteUpdate = profile.LastUpdate
	c.mu.Unlock()
	return profile, nil
}

// FetchProfile reads back this player's stored record.
func (c *MultiplayerClient) FetchProfile() (protocol.PlayerProfile, error) {
	base, id, token, err := c.identity()
	if err != nil {
		return protocol.PlayerProfile{}, err
	}
	return getJSON[protocol.PlayerProfile](c.hc, base+"/api/player/"+id, token)
}

func (c *MultiplayerClient) ListPlayers() ([]protocol.PlayerSummary, error) {
	base := c.ServerURL()
	if base == "" {
		return nil, errors.New("no server URL configured")
	}
	return getJSON[[]protocol.PlayerSummary](c.hc, base+"/api/players", "")
}

func (c *MultiplayerClient) Health() (protocol.HealthStatus, error) {
	base := c.ServerURL()
	if base == "" {
		return protocol.HealthStatus{}, errors.New("no server URL configured")
	}
	return getJSON[protocol.HealthStatus](c.hc, base+"/health", "")
}

// markRemoteUpdate records ts if it is newer than the last update this
// session has seen. The return value is the "another session advanced the
// record" signal.
func (c *MultiplayerClient) markRemoteUpdate(ts int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ts > c.lastRemoteUpdate {
		c.lastRemoteUpdate = ts
		return true
	}
	return false
}

// SyncCycle pushes progression to the service every tick and pulls the
// stored record back on alternating ticks.
type SyncCycle struct {
	rec *Reconciler
	mp  *MultiplayerClient

	interval time.Duration
	pullTick bool // parity bit, toggled once per connected tick
}

func NewSyncCycle(rec *Reconciler, mp *MultiplayerClient) *SyncCycle {
	return &SyncCycle{rec: rec, mp: mp, interval: syncInterval}
}

func (s *SyncCycle) Run(ctx context.Context) {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Tick()
		}
	}
}

// Tick is one sync step. Any network failure degrades to local-only play
// for this tick: logged, never fatal, and the ticker is never stalled.
func (s *SyncCycle) Tick() {
	if !s.mp.IsConnected() {
		return
	}

	st, _ := s.rec.Current()
	pb, eb := s.rec.Baselines()
	if _, err := s.mp.PushProgress(ExportProgress(st, pb, eb)); err != nil {
		log.Printf("MP: push failed: %v", err)
	}

	s.pullTick = !s.pullTick
	if !s.pullTick {
		return
	}

	profile, err := s.mp.FetchProfile()
	if err != nil {
		log.Printf("MP: pull failed: %v", err)
		return
	}
	if s.mp.markRemoteUpdate(profile.LastUpdate) {
		s.rec.ApplyProgress(profile.Progress)
		log.Printf("MP: adopted remote progress (stage %d, %d coins)",
			profile.Progress.Stage, profile.Progress.Coins)
	}
}

// Register runs the handshake and adopts the returned progress as the new
// local baseline; it counts as a pull.
func (s *SyncCycle) Register(name string) (protocol.RegisterResponse, error) {
	resp, err := s.mp.Register(name)
	if err != nil {
		return protocol.RegisterResponse{}, err
	}
	s.rec.ApplyProgress(resp.Progress)
	return resp, nil
}
