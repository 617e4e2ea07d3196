package osu

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/mods"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMap builds a jump pattern of n circles, 150ms apart.
func testMap(n int) *beatmap.Beatmap {
	b := &beatmap.Beatmap{
		AR: 9, OD: 8.5, CS: 4, HP: 5,
		SliderMultiplier: 1.4,
		SliderTickRate:   1,
	}

	for i := 0; i < n; i++ {
		x := 100.0
		if i%2 == 1 {
			x = 350.0
		}

		b.HitObjects = append(b.HitObjects, beatmap.HitObject{
			StartTime: float64(i) * 150,
			EndTime:   float64(i) * 150,
			Pos:       mgl64.Vec2{x, 200},
			Kind:      beatmap.KindCircle,
		})
	}

	return b
}

func TestDifficultyDeterminism(t *testing.T) {
	b := testMap(50)
	d := difficulty.New(mods.Hidden | mods.DoubleTime)

	first := CalculateDifficulty(b, d)
	second := CalculateDifficulty(b, d)

	assert.Equal(t, first, second)
}

func TestDifficultyPositiveStars(t *testing.T) {
	attr := CalculateDifficulty(testMap(50), difficulty.New(mods.None))

	assert.Greater(t, attr.Stars, 0.0)
	assert.Greater(t, attr.Aim, 0.0)
	assert.Greater(t, attr.Speed, 0.0)
	assert.Equal(t, 50, attr.ObjectCount)
	assert.Equal(t, 50, attr.MaxCombo)
	assert.InDelta(t, 1.0, attr.SliderFactor, 1e-9)
}

func TestSingleObjectHasNoStars(t *testing.T) {
	attr := CalculateDifficulty(testMap(10), difficulty.New(mods.None).WithPassedObjects(1))

	assert.Zero(t, attr.Stars)
	assert.Zero(t, attr.Aim)
	assert.Zero(t, attr.Speed)
	assert.Equal(t, 1, attr.ObjectCount)
}

func TestClockRateRaisesDifficulty(t *testing.T) {
	b := testMap(50)

	nomod := CalculateDifficulty(b, difficulty.New(mods.None))
	dt := CalculateDifficulty(b, difficulty.New(mods.DoubleTime))

	assert.Greater(t, dt.Stars, nomod.Stars)
}

func TestFlashlightOnlyWithMod(t *testing.T) {
	b := testMap(50)

	nomod := CalculateDifficulty(b, difficulty.New(mods.None))
	fl := CalculateDifficulty(b, difficulty.New(mods.Flashlight))

	assert.Greater(t, fl.Flashlight, 0.0)
	assert.GreaterOrEqual(t, fl.Stars, nomod.Stars)
}

func TestGradualMatchesBatch(t *testing.T) {
	b := testMap(30)
	d := difficulty.New(mods.None)

	gradual := NewGradualDifficulty(b, d)

	for n := 1; n <= 30; n++ {
		step := gradual.Next()
		require.NotNil(t, step, "step %d", n)

		batch := CalculateDifficulty(b, d.WithPassedObjects(n))

		assert.InDelta(t, batch.Stars, step.Stars, 1e-12, "stars after %d objects", n)
		assert.Equal(t, batch.MaxCombo, step.MaxCombo, "combo after %d objects", n)
	}

	assert.Nil(t, gradual.Next())
	assert.Zero(t, gradual.Remaining())
}

func TestGradualNthSkips(t *testing.T) {
	b := testMap(20)
	d := difficulty.New(mods.None)

	gradual := NewGradualDifficulty(b, d)
	attr := gradual.Nth(9) // consumes objects 1..10

	require.NotNil(t, attr)
	assert.Equal(t, 10, attr.ObjectCount)

	batch := CalculateDifficulty(b, d.WithPassedObjects(10))
	assert.InDelta(t, batch.Stars, attr.Stars, 1e-12)
}

func TestStrainPeaksExport(t *testing.T) {
	peaks := CalculateStrainPeaks(testMap(60), difficulty.New(mods.None))

	require.NotEmpty(t, peaks.Aim)
	assert.Len(t, peaks.Speed, len(peaks.Aim))
	assert.Len(t, peaks.Total, len(peaks.Aim))

	for i, total := range peaks.Total {
		assert.GreaterOrEqual(t, total, 0.0, "section %d", i)
	}
}
