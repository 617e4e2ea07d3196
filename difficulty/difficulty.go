// Package difficulty carries the shared calculation settings: mods, clock
// rate, attribute overrides and the passed-object count. A Difficulty value
// is cheap to copy and resolves against a beatmap right before calculation.
package difficulty

import (
	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/mods"
	"github.com/osukit/rating-go/util/mutils"
)

const (
	// Preempt milliseconds at AR 0, 5 and 10.
	PreemptMin = 1800.0
	PreemptMid = 1200.0
	PreemptMax = 450.0

	// Great hit window milliseconds at OD 0, 5 and 10.
	HitWindowGreatMin = 80.0
	HitWindowGreatMid = 50.0
	HitWindowGreatMax = 20.0

	// NormalizedRadius is the playfield-independent radius difficulty math
	// works in.
	NormalizedRadius = 50.0

	ObjectRadius = 64.0
)

type override struct {
	value    float64
	withMods bool
}

// Difficulty holds the user-facing knobs of a calculation. The zero value
// means "no mods, no overrides, full map".
type Difficulty struct {
	Mods  mods.Modifier
	Lazer bool

	clockRate *float64
	ar        *override
	od        *override
	cs        *override
	hp        *override

	passedObjects *int
}

func New(m mods.Modifier) Difficulty {
	return Difficulty{Mods: m}
}

// WithClockRate overrides the mod-implied clock rate. Clamped to 0.01..100.
func (d Difficulty) WithClockRate(rate float64) Difficulty {
	rate = mutils.Clamp(rate, 0.01, 100)
	d.clockRate = &rate

	return d
}

// WithAR overrides the approach rate. withMods decides whether the value is
// taken as already mod-adjusted. Clamped to -20..20.
func (d Difficulty) WithAR(value float64, withMods bool) Difficulty {
	d.ar = &override{mutils.Clamp(value, -20, 20), withMods}
	return d
}

func (d Difficulty) WithOD(value float64, withMods bool) Difficulty {
	d.od = &override{mutils.Clamp(value, -20, 20), withMods}
	return d
}

func (d Difficulty) WithCS(value float64, withMods bool) Difficulty {
	d.cs = &override{mutils.Clamp(value, -20, 20), withMods}
	return d
}

func (d Difficulty) WithHP(value float64, withMods bool) Difficulty {
	d.hp = &override{mutils.Clamp(value, -20, 20), withMods}
	return d
}

// WithPassedObjects restricts the calculation to the first n hit objects,
// producing the difficulty of a partial play.
func (d Difficulty) WithPassedObjects(n int) Difficulty {
	n = max(0, n)
	d.passedObjects = &n

	return d
}

// ClockRate returns the effective clock rate.
func (d Difficulty) ClockRate() float64 {
	if d.clockRate != nil {
		return *d.clockRate
	}

	return d.Mods.ClockRate()
}

// PassedObjects limits total to the configured passed-object count.
func (d Difficulty) PassedObjects(total int) int {
	if d.passedObjects != nil {
		return min(*d.passedObjects, total)
	}

	return total
}

// MapAttributes are the per-beatmap resolved settings every mode consumes.
// Preempt and GreatHitWindow have the clock rate applied; AR and OD are
// derived back from those, so they can exceed 10 under DT.
type MapAttributes struct {
	AR float64
	OD float64
	CS float64
	HP float64

	ClockRate      float64
	Preempt        float64
	GreatHitWindow float64
	Radius         float64
}

// Resolve applies mods, overrides and the clock rate to a beatmap's base
// settings.
func (d Difficulty) Resolve(b *beatmap.Beatmap) MapAttributes {
	clockRate := d.ClockRate()

	ar := d.resolveValue(d.ar, b.AR, 10)
	od := d.resolveValue(d.od, b.OD, 10)
	cs := d.resolveValue(d.cs, b.CS, 10, 1.3)
	hp := d.resolveValue(d.hp, b.HP, 10)

	preempt := DifficultyRange(ar, PreemptMin, PreemptMid, PreemptMax) / clockRate
	greatWindow := DifficultyRange(od, HitWindowGreatMin, HitWindowGreatMid, HitWindowGreatMax) / clockRate

	return MapAttributes{
		AR:             arFromPreempt(preempt),
		OD:             (HitWindowGreatMin - greatWindow) / 6,
		CS:             cs,
		HP:             hp,
		ClockRate:      clockRate,
		Preempt:        preempt,
		GreatHitWindow: greatWindow,
		Radius:         ObjectRadius * (1 - 0.7*(cs-5)/5) / 2,
	}
}

// resolveValue applies EZ/HR scaling to base (or to a pre-mod override) and
// caps at limit. hrScale defaults to 1.4; CS uses 1.3.
func (d Difficulty) resolveValue(ov *override, base, limit float64, hrScale ...float64) float64 {
	if ov != nil && ov.withMods {
		return ov.value
	}

	value := base
	if ov != nil {
		value = ov.value
	}

	scale := 1.4
	if len(hrScale) > 0 {
		scale = hrScale[0]
	}

	if d.Mods.HR() {
		value = min(value*scale, limit)
	} else if d.Mods.EZ() {
		value *= 0.5
	}

	return value
}

// DifficultyRange maps a 0..10 difficulty value onto min/mid/max anchored at
// 0, 5 and 10, extrapolating linearly outside that range.
func DifficultyRange(difficulty, min, mid, max float64) float64 {
	if difficulty > 5 {
		return mid + (max-mid)*(difficulty-5)/5
	}

	if difficulty < 5 {
		return mid - (mid-min)*(5-difficulty)/5
	}

	return mid
}

func arFromPreempt(preempt float64) float64 {
	if preempt > PreemptMid {
		return (PreemptMin - preempt) / 120
	}

	return (PreemptMid-preempt)/150 + 5
}
