package game

import (
	"math"
	"testing"

	"github.com/rintaro-s/kurikka/shared/protocol"
)

func knocked(t protocol.UnitType, remaining, total float64) protocol.Unit {
	return protocol.Unit{Type: t, KnockbackTime: remaining, KnockbackTotal: total}
}

func TestKnockbackArcEndpoints(t *testing.T) {
	// progress 0: knockback just started
	if got := KnockbackOffset(knocked(protocol.UnitSmall, 2, 2), MainViewAmplitude); got != 0 {
		t.Errorf("displacement at progress 0 = %v, want 0", got)
	}
	// progress 1: timer fully decayed
	if got := KnockbackOffset(knocked(protocol.UnitSmall, 0, 2), MainViewAmplitude); got != 0 {
		t.Errorf("displacement at progress 1 = %v, want 0", got)
	}
}

func TestKnockbackArcPeak(t *testing.T) {
	amp := MainViewAmplitude
	want := amp.Base + amp.Large
	if got := KnockbackOffset(knocked(protocol.UnitLarge, 1, 2), amp); got != want {
		t.Errorf("peak displacement = %v, want %v", got, want)
	}
}

func TestKnockbackArcSymmetry(t *testing.T) {
	const total = 0.8
	for _, p := range []float64{0.1, 0.25, 0.4} {
		early := KnockbackOffset(knocked(protocol.UnitMedium, total*(1-p), total), WidgetAmplitude)
		late := KnockbackOffset(knocked(protocol.UnitMedium, total*p, total), WidgetAmplitude)
		if math.Abs(early-late) > 1e-9 {
			t.Errorf("arc asymmetric at progress %v: %v vs %v", p, early, late)
		}
	}
}

func TestKnockbackAbsentIsZero(t *testing.T) {
	cases := []protocol.Unit{
		{Type: protocol.UnitLarge},                         // no knockback at all
		{Type: protocol.UnitLarge, KnockbackTime: 0.5},     // total missing
		{Type: protocol.UnitLarge, KnockbackTotal: -1, KnockbackTime: 0.5}, // bad total
	}
	for i, u := range cases {
		if got := KnockbackOffset(u, MainViewAmplitude); got != 0 {
			t.Errorf("case %d: displacement = %v, want 0", i, got)
		}
	}
}

func TestKnockbackRestartable(t *testing.T) {
	u := knocked(protocol.UnitMedium, 0.3, 0.6)
	first := KnockbackOffset(u, MainViewAmplitude)

	// fresh knockback with the same relative progress replays identically
	u.KnockbackTime, u.KnockbackTotal = 0.15, 0.3
	if second := KnockbackOffset(u, MainViewAmplitude); second != first {
		t.Errorf("arc not restartable: %v vs %v", first, second)
	}
}

func TestAmplitudeOrdering(t *testing.T) {
	for _, amp := range []KnockbackAmplitude{MainViewAmplitude, WidgetAmplitude} {
		small := amp.forType(protocol.UnitSmall)
		medium := amp.forType(protocol.UnitMedium)
		large := amp.forType(protocol.UnitLarge)
		if !(small < medium && medium < large) {
			t.Errorf("amplitude must grow with unit size: %v %v %v", small, medium, large)
		}
	}
}
