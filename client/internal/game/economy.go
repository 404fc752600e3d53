package game

import (
	"math"

	"github.com/rintaro-s/kurikka/shared/protocol"
)

// Upgrade price curve. Every track starts at 3000 coins and grows 20% per
// level already bought: cost(level) = floor(3000 * 1.2^level).
const (
	upgradeBasePrice  = 3000
	upgradeGrowthRate = 1.2
)

func UpgradeCost(level int) int {
	if level < 0 {
		level = 0
	}
	return int(math.Floor(upgradeBasePrice * math.Pow(upgradeGrowthRate, float64(level))))
}

// CanAfford reports whether a purchase at the given level would be accepted.
// Equality counts: coins == cost is affordable. This only gates the UI; the
// engine makes the authoritative debit when the purchase command arrives.
func CanAfford(coins, level int) bool {
	return coins >= UpgradeCost(level)
}

// UpgradeOffer is one purchasable row as shown to a render surface.
type UpgradeOffer struct {
	Track      protocol.UpgradeTrack
	UnitType   protocol.UnitType // empty for the global tracks
	Level      int
	Cost       int
	Affordable bool
}

var unitTracks = []protocol.UpgradeTrack{protocol.TrackAttack, protocol.TrackHP, protocol.TrackSpeed}
var unitKinds = []protocol.UnitType{protocol.UnitSmall, protocol.UnitMedium, protocol.UnitLarge}

// AvailableUpgrades lists all eleven tracks with their current price and
// affordability against the snapshot's coin balance.
func AvailableUpgrades(st *protocol.GameState) []UpgradeOffer {
	offers := make([]UpgradeOffer, 0, 11)
	for _, track := range unitTracks {
		for _, ut := range unitKinds {
			offers = append(offers, makeOffer(st, track, ut))
		}
	}
	offers = append(offers, makeOffer(st, protocol.TrackCoinRate, ""))
	offers = append(offers, makeOffer(st, protocol.TrackBaseHP, ""))
	return offers
}

func makeOffer(st *protocol.GameState, track protocol.UpgradeTrack, ut protocol.UnitType) UpgradeOffer {
	level := st.Upgrades.Level(track, ut)
	cost := UpgradeCost(level)
	return UpgradeOffer{
		Track:      track,
		UnitType:   ut,
		Level:      level,
		Cost:       cost,
		Affordable: st.Coins >= cost,
	}
}
