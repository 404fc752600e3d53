package game

import (
	"context"
	"sync"
	"time"

	"github.com/rintaro-s/kurikka/shared/protocol"
)

// UnitSprite is everything a surface needs to draw one unit: lane position,
// HP bar fill and the knockback lift for this surface's amplitude table.
type UnitSprite struct {
	ID       int64
	Type     protocol.UnitType
	Position float64
	Fill     float64
	Lift     float64
	IsPlayer bool
}

// Frame is the consumption contract of a render surface: a self-contained
// view-model built from one snapshot. Drawing itself happens elsewhere.
type Frame struct {
	Seq            uint64
	Stage          int
	Coins          int
	PlayerBaseFill float64
	EnemyBaseFill  float64
	PlayerUnits    []UnitSprite
	EnemyUnits     []UnitSprite
	Offers         []UpgradeOffer
}

// Surface is a read-only consumer of the reconciled snapshot: it rebuilds
// its frame on its own ticker and additionally whenever the reconciler
// signals a replacement. It never writes back.
type Surface struct {
	name     string
	rec      *Reconciler
	amp      KnockbackAmplitude
	interval time.Duration

	mu    sync.Mutex
	frame Frame
}

func NewMainView(rec *Reconciler) *Surface {
	return &Surface{name: "main", rec: rec, amp: MainViewAmplitude, interval: mainPollInterval}
}

func NewWidget(rec *Reconciler) *Surface {
	return &Surface{name: "widget", rec: rec, amp: WidgetAmplitude, interval: widgetPollInterval}
}

func (s *Surface) Run(ctx context.Context) {
	notify := s.rec.Subscribe()
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Refresh()
		case <-notify:
			s.Refresh()
		}
	}
}

// Refresh rebuilds the frame from the current snapshot.
func (s *Surface) Refresh() {
	f := BuildFrame(s.rec, s.amp)
	s.mu.Lock()
	s.frame = f
	s.mu.Unlock()
}

// Frame returns the last built frame.
func (s *Surface) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// BuildFrame derives a surface frame from the reconciler's snapshot. The
// snapshot is immutable, so this needs no coordination with intake.
func BuildFrame(rec *Reconciler, amp KnockbackAmplitude) Frame {
	st, seq := rec.Current()
	playerFill, enemyFill := rec.FillRatios()

	f := Frame{
		Seq:            seq,
		Stage:          st.Stage,
		Coins:          st.Coins,
		PlayerBaseFill: playerFill,
		EnemyBaseFill:  enemyFill,
		PlayerUnits:    sprites(st.PlayerUnits, amp),
		EnemyUnits:     sprites(st.EnemyUnits, amp),
		Offers:         AvailableUpgrades(st),
	}
	return f
}

func sprites(units []protocol.Unit, amp KnockbackAmplitude) []UnitSprite {
	if len(units) == 0 {
		return nil
	}
	out := make([]UnitSprite, len(units))
	for i, u := range units {
		out[i] = UnitSprite{
			ID:       u.ID,
			Type:     u.Type,
			Position: u.Position,
			Fill:     unitFill(u),
			Lift:     KnockbackOffset(u, amp),
			IsPlayer: u.IsPlayer,
		}
	}
	return out
}

// unitFill clamps hp/max_hp to [0, 1]; pending damage events can leave hp
// transiently above max_hp until the next snapshot.
func unitFill(u protocol.Unit) float64 {
	return fillRatio(u.HP, u.MaxHP)
}
