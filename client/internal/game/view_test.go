package game

import (
	"testing"

	"github.com/rintaro-s/kurikka/shared/protocol"
)

func TestBuildFrame(t *testing.T) {
	rec := NewReconciler()
	rec.ApplyPush(1, &protocol.GameState{
		PlayerUnits: []protocol.Unit{
			{ID: 1, Type: protocol.UnitLarge, Position: 250, HP: 60, MaxHP: 120,
				KnockbackTime: 0.25, KnockbackTotal: 0.5, IsPlayer: true},
		},
		EnemyUnits:   []protocol.Unit{{ID: 2, Type: protocol.UnitSmall, Position: 900, HP: 15, MaxHP: 10}},
		PlayerBaseHP: 800,
		EnemyBaseHP:  500,
		Coins:        4000,
		Stage:        6,
	})
	rec.ApplyPush(2, &protocol.GameState{
		PlayerUnits: []protocol.Unit{
			{ID: 1, Type: protocol.UnitLarge, Position: 250, HP: 60, MaxHP: 120,
				KnockbackTime: 0.25, KnockbackTotal: 0.5, IsPlayer: true},
		},
		EnemyUnits:   []protocol.Unit{{ID: 2, Type: protocol.UnitSmall, Position: 900, HP: 15, MaxHP: 10}},
		PlayerBaseHP: 640,
		EnemyBaseHP:  500,
		Coins:        4000,
		Stage:        6,
	})

	f := BuildFrame(rec, MainViewAmplitude)

	if f.Seq != 2 || f.Stage != 6 || f.Coins != 4000 {
		t.Fatalf("frame header wrong: %+v", f)
	}
	if f.PlayerBaseFill != 0.8 {
		t.Errorf("player base fill = %v, want 0.8 (640/800)", f.PlayerBaseFill)
	}
	if f.EnemyBaseFill != 1 {
		t.Errorf("enemy base fill = %v, want 1", f.EnemyBaseFill)
	}

	if len(f.PlayerUnits) != 1 || len(f.EnemyUnits) != 1 {
		t.Fatalf("sprite counts wrong: %d/%d", len(f.PlayerUnits), len(f.EnemyUnits))
	}
	u := f.PlayerUnits[0]
	if u.Fill != 0.5 {
		t.Errorf("unit fill = %v, want 0.5", u.Fill)
	}
	peak := MainViewAmplitude.Base + MainViewAmplitude.Large
	if u.Lift != peak {
		t.Errorf("unit at mid-knockback: lift = %v, want %v", u.Lift, peak)
	}
	// hp transiently above max clamps to a full bar
	if f.EnemyUnits[0].Fill != 1 {
		t.Errorf("overfull unit fill = %v, want 1", f.EnemyUnits[0].Fill)
	}

	if len(f.Offers) != 11 {
		t.Fatalf("want 11 upgrade offers, got %d", len(f.Offers))
	}
	for _, o := range f.Offers {
		if o.Level != 0 {
			continue
		}
		if o.Affordable != (f.Coins >= 3000) {
			t.Errorf("offer %s/%s affordability wrong: %+v", o.Track, o.UnitType, o)
		}
	}
}

func TestSurfaceRefresh(t *testing.T) {
	rec := NewReconciler()
	w := NewWidget(rec)

	rec.ApplyPush(1, &protocol.GameState{Stage: 2, PlayerBaseHP: 1000, EnemyBaseHP: 500})
	w.Refresh()
	if f := w.Frame(); f.Seq != 1 || f.Stage != 2 {
		t.Fatalf("widget frame stale: %+v", f)
	}

	rec.ApplyPush(2, &protocol.GameState{Stage: 3, PlayerBaseHP: 1000, EnemyBaseHP: 500})
	w.Refresh()
	if f := w.Frame(); f.Seq != 2 || f.Stage != 3 {
		t.Fatalf("widget frame not rebuilt: %+v", f)
	}
}
