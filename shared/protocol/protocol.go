package protocol

// Lane coordinates: player base sits at 0, enemy base at 1000.
const (
	LaneMin = 0.0
	LaneMax = 1000.0
)

type UnitType string

const (
	UnitSmall  UnitType = "small"
	UnitMedium UnitType = "medium"
	UnitLarge  UnitType = "large"
)

// UpgradeTrack names a purchasable upgrade family. The unit-attribute
// tracks are qualified by a UnitType; coin_rate and base_hp are global.
type UpgradeTrack string

const (
	TrackAttack   UpgradeTrack = "attack"
	TrackHP       UpgradeTrack = "hp"
	TrackSpeed    UpgradeTrack = "speed"
	TrackCoinRate UpgradeTrack = "coin_rate"
	TrackBaseHP   UpgradeTrack = "base_hp"
)

// Unit is one battlefield entity as reported by the engine. TargetID is a
// weak reference: it may name a unit the engine already removed, so it is
// only echoed through, never dereferenced client-side. The knockback triple
// is zero-valued when no knockback is in progress.
type Unit struct {
	ID                int64    `json:"id"`
	Type              UnitType `json:"unit_type"`
	Position          float64  `json:"position"`
	HP                float64  `json:"hp"`
	MaxHP             float64  `json:"max_hp"`
	Attack            float64  `json:"attack"`
	Speed             float64  `json:"speed"`
	IsPlayer          bool     `json:"is_player"`
	TargetID          *int64   `json:"target_id,omitempty"`
	KnockbackVelocity float64  `json:"knockback_velocity,omitempty"`
	KnockbackTime     float64  `json:"knockback_time,omitempty"`
	KnockbackTotal    float64  `json:"knockback_total,omitempty"`
}

// Upgrades holds the per-track purchase levels. Levels only ever grow; the
// engine is the sole writer.
type Upgrades struct {
	SmallAttack  int `json:"small_attack"`
	MediumAttack int `json:"medium_attack"`
	LargeAttack  int `json:"large_attack"`
	SmallHP      int `json:"small_hp"`
	MediumHP     int `json:"medium_hp"`
	LargeHP      int `json:"large_hp"`
	SmallSpeed   int `json:"small_speed"`
	MediumSpeed  int `json:"medium_speed"`
	LargeSpeed   int `json:"large_speed"`
	CoinRate     int `json:"coin_rate"`
	BaseHP       int `json:"base_hp"`
}

// Level returns the current level of a track. The unit type is ignored for
// the global tracks. Unknown combinations report level 0, mirroring the
// engine's own lookup.
func (u Upgrades) Level(track UpgradeTrack, unit UnitType) int {
	switch track {
	case TrackAttack:
		switch unit {
		case UnitSmall:
			return u.SmallAttack
		case UnitMedium:
			return u.MediumAttack
		case UnitLarge:
			return u.LargeAttack
		}
	case TrackHP:
		switch unit {
		case UnitSmall:
			return u.SmallHP
		case UnitMedium:
			return u.MediumHP
		case UnitLarge:
			return u.LargeHP
		}
	case TrackSpeed:
		switch unit {
		case UnitSmall:
			return u.SmallSpeed
		case UnitMedium:
			return u.MediumSpeed
		case UnitLarge:
			return u.LargeSpeed
		}
	case TrackCoinRate:
		return u.CoinRate
	case TrackBaseHP:
		return u.BaseHP
	}
	return 0
}

// GameState is the canonical snapshot. It is replaced wholesale on every
// intake; the client never patches it field by field.
type GameState struct {
	PlayerUnits  []Unit   `json:"player_units"`
	EnemyUnits   []Unit   `json:"enemy_units"`
	PlayerBaseHP float64  `json:"player_base_hp"`
	EnemyBaseHP  float64  `json:"enemy_base_hp"`
	Coins        int      `json:"coins"`
	Stage        int      `json:"stage"`
	ClickCount   int      `json:"click_count"`
	TypeCount    int      `json:"type_count"`
	Upgrades     Upgrades `json:"upgrades"`
}

// PlayerProgress is the persistent-progression subset shared with the
// multiplayer service: stage, coins and upgrade levels travel; live
// battlefield state never does. The base-HP ceilings ride along for the
// service's records but are not applied back to the client's own ratchet.
type PlayerProgress struct {
	Stage           int      `json:"stage"`
	Coins           int      `json:"coins"`
	Upgrades        Upgrades `json:"upgrades"`
	MaxPlayerBaseHP float64  `json:"max_player_base_hp"`
	MaxEnemyBaseHP  float64  `json:"max_enemy_base_hp"`
}

// AppConfig is the engine-owned configuration record.
type AppConfig struct {
	MultiplayerServerURL string `json:"multiplayer_server_url"`
	MultiplayerName      string `json:"multiplayer_player_name"`
	MultiplayerID        string `json:"multiplayer_player_id"`
	WidgetYOffset        int    `json:"widget_y_offset"`
	WidgetUnitSize       int    `json:"widget_unit_size"`
}

// AutoBuyState reports the engine's timed auto-purchase task.
type AutoBuyState struct {
	Enabled       bool         `json:"enabled"`
	Track         UpgradeTrack `json:"upgrade_type"`
	UnitType      UnitType     `json:"unit_type"`
	RemainingTime float64      `json:"remaining_time"`
}
