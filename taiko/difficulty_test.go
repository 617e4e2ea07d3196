package taiko

import (
	"testing"

	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/mods"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMap builds a native taiko pattern of n notes, 120ms apart, with every
// third note a rim.
func testMap(n int) *beatmap.Beatmap {
	b := &beatmap.Beatmap{
		Mode: beatmap.ModeTaiko,
		OD:   5, HP: 6,
		SliderMultiplier: 1.4,
		SliderTickRate:   1,
	}

	for i := 0; i < n; i++ {
		sound := 0
		if i%3 == 0 {
			sound = 2
		}

		b.HitObjects = append(b.HitObjects, beatmap.HitObject{
			StartTime: float64(i) * 120,
			EndTime:   float64(i) * 120,
			Kind:      beatmap.KindCircle,
			Sound:     sound,
		})
	}

	return b
}

func TestDifficultyPositiveStars(t *testing.T) {
	attr := CalculateDifficulty(testMap(50), difficulty.New(mods.None))

	assert.Greater(t, attr.Stars, 0.0)
	assert.Greater(t, attr.Stamina, 0.0)
	assert.Greater(t, attr.Peak, 0.0)
	assert.Equal(t, 50, attr.ObjectCount)
	assert.Equal(t, 50, attr.MaxCombo)
	assert.False(t, attr.IsConvert)
}

func TestFewObjectsHaveNoStars(t *testing.T) {
	attr := CalculateDifficulty(testMap(10), difficulty.New(mods.None).WithPassedObjects(2))

	assert.Zero(t, attr.Stars)
	assert.Equal(t, 2, attr.ObjectCount)
	assert.Equal(t, 2, attr.MaxCombo)
}

func TestClockRateRaisesDifficulty(t *testing.T) {
	b := testMap(50)

	nomod := CalculateDifficulty(b, difficulty.New(mods.None))
	dt := CalculateDifficulty(b, difficulty.New(mods.DoubleTime))

	assert.Greater(t, dt.Stars, nomod.Stars)
}

func TestHitWindows(t *testing.T) {
	attr := CalculateDifficulty(testMap(10), difficulty.New(mods.None))

	// OD 5 sits exactly on the mid anchors.
	assert.InDelta(t, 35.0, attr.GreatHitWindow, 1e-9)
	assert.InDelta(t, 80.0, attr.OkHitWindow, 1e-9)

	dt := CalculateDifficulty(testMap(10), difficulty.New(mods.DoubleTime))

	assert.InDelta(t, 35.0/1.5, dt.GreatHitWindow, 1e-9)
	assert.InDelta(t, 80.0/1.5, dt.OkHitWindow, 1e-9)
}

func TestConvertPenalty(t *testing.T) {
	native := testMap(50)

	converted := testMap(50)
	converted.Mode = beatmap.ModeOsu

	nativeAttr := CalculateDifficulty(native, difficulty.New(mods.None))
	convertAttr := CalculateDifficulty(converted, difficulty.New(mods.None))

	require.True(t, convertAttr.IsConvert)

	// Circles convert one to one, so only the convert penalty differs.
	assert.InDelta(t, nativeAttr.Stars*0.925, convertAttr.Stars, 1e-12)
}

func TestDrumRollsDontBuildCombo(t *testing.T) {
	b := testMap(20)
	b.HitObjects = append(b.HitObjects, beatmap.HitObject{
		StartTime: 3000,
		EndTime:   3500,
		Kind:      beatmap.KindSlider,
		Slider: &beatmap.SliderData{
			CurveType:   'L',
			Repeats:     1,
			PixelLength: 300,
		},
	})

	attr := CalculateDifficulty(b, difficulty.New(mods.None))

	assert.Equal(t, 20, attr.MaxCombo)
	assert.Equal(t, 21, attr.ObjectCount)
}

func TestGradualMatchesBatch(t *testing.T) {
	b := testMap(30)
	d := difficulty.New(mods.None)

	gradual := NewGradualDifficulty(b, d)

	for n := 1; n <= 30; n++ {
		step := gradual.Next()
		require.NotNil(t, step, "step %d", n)

		batch := CalculateDifficulty(b, d.WithPassedObjects(n))

		assert.InDelta(t, batch.Stars, step.Stars, 1e-12, "stars after %d hits", n)
		assert.Equal(t, batch.MaxCombo, step.MaxCombo, "combo after %d hits", n)
	}

	assert.Nil(t, gradual.Next())
	assert.Zero(t, gradual.Remaining())
}

func TestGradualStepsPerHit(t *testing.T) {
	b := testMap(10)
	b.HitObjects = append(b.HitObjects, beatmap.HitObject{
		StartTime: 1500,
		EndTime:   2000,
		Kind:      beatmap.KindSlider,
		Slider: &beatmap.SliderData{
			CurveType:   'L',
			Repeats:     1,
			PixelLength: 300,
		},
	})
	b.HitObjects = append(b.HitObjects, beatmap.HitObject{
		StartTime: 2200,
		EndTime:   2200,
		Kind:      beatmap.KindCircle,
	})

	gradual := NewGradualDifficulty(b, difficulty.New(mods.None))

	// The drum roll is consumed together with the hit that follows it.
	assert.Equal(t, 11, gradual.Remaining())

	last := gradual.Nth(10)
	require.NotNil(t, last)

	assert.Equal(t, 11, last.MaxCombo)
	assert.Equal(t, 12, last.ObjectCount)
	assert.Nil(t, gradual.Next())
}

func TestStrainPeaksExport(t *testing.T) {
	peaks := CalculateStrainPeaks(testMap(60), difficulty.New(mods.None))

	require.NotEmpty(t, peaks.Rhythm)
	assert.Len(t, peaks.Color, len(peaks.Rhythm))
	assert.Len(t, peaks.Stamina, len(peaks.Rhythm))
	assert.Len(t, peaks.Total, len(peaks.Rhythm))
	assert.Empty(t, peaks.Aim)

	for i, total := range peaks.Total {
		assert.GreaterOrEqual(t, total, 0.0, "section %d", i)
	}
}
