package protocol

// Wire types for the multiplayer progress service (HTTP/JSON).

type RegisterRequest struct {
	PlayerName string `json:"player_name"`
}

// RegisterResponse is returned by POST /api/player/register. Registering a
// name the service already knows returns the stored profile with a fresh
// token instead of creating a new identity.
type RegisterResponse struct {
	PlayerID   string         `json:"player_id"`
	PlayerName string         `json:"player_name"`
	Token      string         `json:"token"`
	Message    string         `json:"message"`
	Progress   PlayerProgress `json:"progress"`
	LastUpdate int64          `json:"last_update"`
}

// SyncRequest carries the progression subset pushed on every sync tick.
type SyncRequest struct {
	Progress PlayerProgress `json:"progress"`
}

type PlayerProfile struct {
	PlayerID   string         `json:"player_id"`
	PlayerName string         `json:"player_name"`
	Progress   PlayerProgress `json:"progress"`
	LastUpdate int64          `json:"last_update"`
}

type PlayerSummary struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
	Stage      int    `json:"stage"`
	LastUpdate int64  `json:"last_update"`
}

type HealthStatus struct {
	Status      string `json:"status"`
	Timestamp   int64  `json:"timestamp"`
	PlayerCount int    `json:"player_count"`
}

type APIError struct {
	Error string `json:"error"`
}
