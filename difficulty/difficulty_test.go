package difficulty

import (
	"testing"

	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/mods"
	"github.com/stretchr/testify/assert"
)

func baseMap() *beatmap.Beatmap {
	return &beatmap.Beatmap{AR: 9, OD: 8, CS: 4, HP: 6}
}

func TestResolveNoMod(t *testing.T) {
	attrs := New(mods.None).Resolve(baseMap())

	assert.InDelta(t, 9, attrs.AR, 1e-9)
	assert.InDelta(t, 8, attrs.OD, 1e-9)
	assert.InDelta(t, 1.0, attrs.ClockRate, 1e-9)
	assert.InDelta(t, 600, attrs.Preempt, 1e-9)
	assert.InDelta(t, 32, attrs.GreatHitWindow, 1e-9)
}

func TestHardRockCapsAtTen(t *testing.T) {
	attrs := New(mods.HardRock).Resolve(baseMap())

	assert.InDelta(t, 10, attrs.AR, 1e-9)
	assert.InDelta(t, 10, attrs.OD, 1e-9)
	assert.InDelta(t, 5.2, attrs.CS, 1e-9)
}

func TestDoubleTimePushesARPastTen(t *testing.T) {
	attrs := New(mods.DoubleTime).Resolve(baseMap())

	assert.InDelta(t, 1.5, attrs.ClockRate, 1e-9)
	assert.InDelta(t, 400, attrs.Preempt, 1e-9)
	assert.Greater(t, attrs.AR, 10.0)
}

func TestOverrideWithModsSkipsScaling(t *testing.T) {
	attrs := New(mods.HardRock).WithAR(9, true).Resolve(baseMap())

	assert.InDelta(t, 9, attrs.AR, 1e-9)
}

func TestOverrideWithoutModsIsScaled(t *testing.T) {
	attrs := New(mods.Easy).WithAR(8, false).Resolve(baseMap())

	assert.InDelta(t, 4, attrs.AR, 1e-9)
}

func TestClockRateClamped(t *testing.T) {
	d := New(mods.None).WithClockRate(1000)

	assert.InDelta(t, 100, d.ClockRate(), 1e-9)
}

func TestPassedObjects(t *testing.T) {
	d := New(mods.None).WithPassedObjects(3)

	assert.Equal(t, 3, d.PassedObjects(10))
	assert.Equal(t, 2, d.PassedObjects(2))
	assert.Equal(t, 10, New(mods.None).PassedObjects(10))
}
