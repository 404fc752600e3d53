package game

import (
	"sync"

	"github.com/rintaro-s/kurikka/shared/protocol"
)

// Reconciler owns the canonical snapshot. Push events and poll responses
// both land here; whichever carries the higher engine sequence wins, so a
// slow response can never roll the display back to older data. The slot
// holds an immutable *GameState that is swapped whole, so consumers may
// keep reading a snapshot they already hold without ever observing a torn
// one.
type Reconciler struct {
	mu  sync.Mutex
	cur *protocol.GameState
	seq uint64

	// generation of the newest GetState issued; responses for older
	// generations are dropped before the seq check.
	pollGen uint64

	// ratchet baselines: highest base HP observed this process, used only
	// to normalize bar fill. Never decrease, never leave the client.
	maxPlayerBaseHP float64
	maxEnemyBaseHP  float64

	subs []chan struct{}
}

func NewReconciler() *Reconciler {
	return &Reconciler{cur: &protocol.GameState{Stage: 1}}
}

// Subscribe returns a redraw-notification channel. Notifications are
// best-effort edge triggers: a consumer that misses one still sees the
// newest snapshot on its next read.
func (r *Reconciler) Subscribe() <-chan struct{} {
	ch := make(chan struct{}, 1)
	r.mu.Lock()
	r.subs = append(r.subs, ch)
	r.mu.Unlock()
	return ch
}

func (r *Reconciler) notifyLocked() {
	for _, ch := range r.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Current returns the canonical snapshot and its sequence. The returned
// state must be treated as immutable.
func (r *Reconciler) Current() (*protocol.GameState, uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cur, r.seq
}

// Baselines returns the ratcheted base-HP ceilings (player, enemy).
func (r *Reconciler) Baselines() (float64, float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.maxPlayerBaseHP, r.maxEnemyBaseHP
}

// NextPollGen reserves the generation for an outgoing GetState.
func (r *Reconciler) NextPollGen() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pollGen++
	return r.pollGen
}

// ApplyPush installs a pushed snapshot. Returns false when the snapshot is
// stale (seq not above the held one).
func (r *Reconciler) ApplyPush(seq uint64, st *protocol.GameState) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.replaceLocked(seq, st)
}

// ApplyPoll installs a poll response. A response whose generation is not
// the newest one issued is an in-flight straggler and is discarded; the
// survivor still has to pass the seq check.
func (r *Reconciler) ApplyPoll(gen, seq uint64, st *protocol.GameState) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.pollGen {
		return false
	}
	return r.replaceLocked(seq, st)
}

func (r *Reconciler) replaceLocked(seq uint64, st *protocol.GameState) bool {
	if seq <= r.seq {
		return false
	}
	r.cur = st
	r.seq = seq
	r.ratchetLocked(st)
	r.notifyLocked()
	return true
}

// ratchetLocked raises the ceilings, never lowers them: floating-point
// wobble just under the ceiling is absorbed by staying put, while a real
// base-HP upgrade clears it and lifts the baseline.
func (r *Reconciler) ratchetLocked(st *protocol.GameState) {
	if st.PlayerBaseHP > r.maxPlayerBaseHP {
		r.maxPlayerBaseHP = st.PlayerBaseHP
	}
	if st.EnemyBaseHP > r.maxEnemyBaseHP {
		r.maxEnemyBaseHP = st.EnemyBaseHP
	}
}

// ApplyProgress merges a pulled progression record into the canonical
// snapshot. Only the progression subset changes; the battlefield of the
// current snapshot is carried over untouched. The engine sequence is kept:
// this is a local overlay, not fresher engine data.
func (r *Reconciler) ApplyProgress(p protocol.PlayerProgress) {
	r.mu.Lock()
	defer r.mu.Unlock()
	merged := MergeProgress(r.cur, p)
	r.cur = merged
	r.notifyLocked()
}

// FillRatios reports hp/baseline for both bases, clamped to [0, 1]. Before
// the first snapshot lands the baselines are zero and both ratios are 0.
func (r *Reconciler) FillRatios() (player, enemy float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	player = fillRatio(r.cur.PlayerBaseHP, r.maxPlayerBaseHP)
	enemy = fillRatio(r.cur.EnemyBaseHP, r.maxEnemyBaseHP)
	return
}

func fillRatio(hp, baseline float64) float64 {
	if baseline <= 0 {
		return 0
	}
	ratio := hp / baseline
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}
