package protocol

import "encoding/json"

// Envelope
type MsgEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ================= C -> E (commands) =================

// GetState requests the current snapshot. Gen is a client-issued
// generation counter echoed back in StateSync so that late responses can
// be told apart from the latest one.
type GetState struct {
	Gen uint64 `json:"gen"`
}

type PurchaseUpgrade struct {
	Track    UpgradeTrack `json:"upgrade_type"`
	UnitType UnitType     `json:"unit_type,omitempty"`
}

type ResetStage struct{}

type GetConfig struct{}

type SaveConfig struct {
	Config AppConfig `json:"config"`
}

type GetAutoBuy struct{}

type StartAutoBuy struct {
	Track           UpgradeTrack `json:"upgrade_type"`
	UnitType        UnitType     `json:"unit_type,omitempty"`
	DurationSeconds float64      `json:"duration_seconds"`
}

type StopAutoBuy struct{}

type Exit struct{}

// ================= E -> C (events) =================

// GameUpdate is the push event: a full snapshot at engine cadence. Seq is
// stamped by the engine and increases monotonically per snapshot.
type GameUpdate struct {
	Seq   uint64    `json:"seq"`
	State GameState `json:"state"`
}

// StateSync is the response to GetState: the same payload as GameUpdate
// plus the echoed request generation.
type StateSync struct {
	Gen   uint64    `json:"gen"`
	Seq   uint64    `json:"seq"`
	State GameState `json:"state"`
}

type ConfigData struct {
	Config AppConfig `json:"config"`
}

// AutoBuyState doubles as the GetAutoBuy response payload.

type ErrorMsg struct {
	Message string `json:"message"`
}
