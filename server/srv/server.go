// Package srv exposes the progress service's HTTP API.
package srv

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/rintaro-s/kurikka/server/auth"
	"github.com/rintaro-s/kurikka/server/store"
	"github.com/rintaro-s/kurikka/shared/protocol"
)

// Fresh accounts start here; mirrors the client's opening battlefield.
var defaultProgress = protocol.PlayerProgress{
	Stage:           1,
	Coins:           0,
	MaxPlayerBaseHP: 1000,
	MaxEnemyBaseHP:  500,
}

type Server struct {
	store *store.Store
	auth  *auth.Auth
	now   func() time.Time
}

func New(st *store.Store, a *auth.Auth) *Server {
	return &Server{store: st, auth: a, now: time.Now}
}

func (s *Server) Routes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/api/player/register", s.handleRegister).Methods("POST")
	r.HandleFunc("/api/player/{id}", s.handleGetPlayer).Methods("GET")
	r.HandleFunc("/api/player/{id}/update", s.handleUpdate).Methods("POST")
	r.HandleFunc("/api/players", s.handleListPlayers).Methods("GET")
	return r
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, protocol.APIError{Error: msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.Count()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	writeJSON(w, http.StatusOK, protocol.HealthStatus{
		Status:      "ok",
		Timestamp:   s.now().Unix(),
		PlayerCount: count,
	})
}

// handleRegister creates a profile, or welcomes back an existing name
// (case-insensitive) with its stored progress. Either way the response
// carries a fresh session token.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req protocol.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	name := strings.TrimSpace(req.PlayerName)
	if name == "" {
		writeError(w, http.StatusBadRequest, "Player name is required")
		return
	}

	if existing, ok, err := s.store.GetByName(name); err != nil {
		writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	} else if ok {
		s.respondRegistered(w, existing, "Welcome back! Progress loaded.")
		return
	}

	profile := &protocol.PlayerProfile{
		PlayerID:   uuid.NewString(),
		PlayerName: name,
		Progress:   defaultProgress,
		LastUpdate: s.now().Unix(),
	}
	if err := s.store.Put(profile); err != nil {
		log.Printf("register: save failed: %v", err)
		writeError(w, http.StatusInternalServerError, "save failed")
		return
	}
	s.respondRegistered(w, profile, "Account created!")
}

func (s *Server) respondRegistered(w http.ResponseWriter, p *protocol.PlayerProfile, msg string) {
	token, err := s.auth.IssueToken(p.PlayerID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token issue failed")
		return
	}
	writeJSON(w, http.StatusOK, protocol.RegisterResponse{
		PlayerID:   p.PlayerID,
		PlayerName: p.PlayerName,
		Token:      token,
		Message:    msg,
		Progress:   p.Progress,
		LastUpdate: p.LastUpdate,
	})
}

func (s *Server) handleGetPlayer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	profile, ok, err := s.store.Get(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Player not found")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// handleUpdate replaces the stored progression record and bumps
// last_update. The bearer token must belong to the player being updated.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	sub, err := s.auth.FromRequest(r)
	if err != nil || sub != id {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req protocol.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	profile, ok, err := s.store.Get(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Player not found")
		return
	}

	profile.Progress = req.Progress
	profile.LastUpdate = s.now().Unix()
	if err := s.store.Put(profile); err != nil {
		log.Printf("update: save failed: %v", err)
		writeError(w, http.StatusInternalServerError, "save failed")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	profiles, err := s.store.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "store unavailable")
		return
	}
	summaries := make([]protocol.PlayerSummary, 0, len(profiles))
	for _, p := range profiles {
		summaries = append(summaries, protocol.PlayerSummary{
			PlayerID:   p.PlayerID,
			PlayerName: p.PlayerName,
			Stage:      p.Progress.Stage,
			LastUpdate: p.LastUpdate,
		})
	}
	writeJSON(w, http.StatusOK, summaries)
}
