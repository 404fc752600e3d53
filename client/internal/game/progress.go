package game

import "github.com/rintaro-s/kurikka/shared/protocol"

// ExportProgress extracts the progression subset pushed to the multiplayer
// service. The base-HP ceilings come from the reconciler's ratchet, not
// from the snapshot, because the snapshot only carries current HP.
func ExportProgress(st *protocol.GameState, maxPlayerBaseHP, maxEnemyBaseHP float64) protocol.PlayerProgress {
	return protocol.PlayerProgress{
		Stage:           st.Stage,
		Coins:           st.Coins,
		Upgrades:        st.Upgrades,
		MaxPlayerBaseHP: maxPlayerBaseHP,
		MaxEnemyBaseHP:  maxEnemyBaseHP,
	}
}

// MergeProgress returns a snapshot with the progression fields of p applied
// on top of st. Unit slices are shared with st, not copied: in-flight
// battlefield state must come through the merge bit-identical. Current base
// HP and the input counters are likewise session-local and stay put.
func MergeProgress(st *protocol.GameState, p protocol.PlayerProgress) *protocol.GameState {
	merged := *st
	merged.Stage = p.Stage
	merged.Coins = p.Coins
	merged.Upgrades = p.Upgrades
	return &merged
}
