package game

import (
	"math"

	"github.com/rintaro-s/kurikka/shared/protocol"
)

// KnockbackAmplitude is the vertical-arc height table for one render
// surface. The widget draws smaller units than the main view, so each
// surface carries its own table; the arc shape is shared.
type KnockbackAmplitude struct {
	Base   float64
	Small  float64
	Medium float64
	Large  float64
}

var (
	MainViewAmplitude = KnockbackAmplitude{Base: 6, Small: 2, Medium: 4, Large: 7}
	WidgetAmplitude   = KnockbackAmplitude{Base: 3, Small: 1, Medium: 2, Large: 3}
)

func (a KnockbackAmplitude) forType(t protocol.UnitType) float64 {
	switch t {
	case protocol.UnitMedium:
		return a.Base + a.Medium
	case protocol.UnitLarge:
		return a.Base + a.Large
	default:
		return a.Base + a.Small
	}
}

// KnockbackOffset derives the vertical displacement of a unit from its
// decaying knockback timers: amplitude * sin(progress*pi), with
// progress = 1 - time/total. Zero at both ends of the arc, peak amplitude
// at the midpoint. A fresh knockback resets the timers and the arc replays
// identically. Units with no knockback in progress sit at 0.
func KnockbackOffset(u protocol.Unit, amp KnockbackAmplitude) float64 {
	if u.KnockbackTotal <= 0 || u.KnockbackTime <= 0 {
		return 0
	}
	progress := 1 - u.KnockbackTime/u.KnockbackTotal
	return amp.forType(u.Type) * math.Sin(progress*math.Pi)
}
