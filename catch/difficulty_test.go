package catch

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/mods"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMap builds an alternating wide-jump pattern of n fruits, 150ms apart.
func testMap(n int) *beatmap.Beatmap {
	b := &beatmap.Beatmap{
		Mode: beatmap.ModeCatch,
		AR:   8, OD: 8, CS: 4, HP: 5,
		SliderMultiplier: 1.0,
		SliderTickRate:   1,
		TimingPoints:     []beatmap.TimingPoint{{Time: 0, BeatLen: 500}},
	}

	for i := 0; i < n; i++ {
		x := 64.0
		if i%2 == 1 {
			x = 448.0
		}

		b.HitObjects = append(b.HitObjects, beatmap.HitObject{
			StartTime: float64(i) * 150,
			EndTime:   float64(i) * 150,
			Pos:       mgl64.Vec2{x, 192},
			Kind:      beatmap.KindCircle,
		})
	}

	return b
}

func TestDifficultyPositiveStars(t *testing.T) {
	attr := CalculateDifficulty(testMap(50), difficulty.New(mods.None))

	assert.Greater(t, attr.Stars, 0.0)
	assert.Equal(t, 50, attr.Fruits)
	assert.Equal(t, 50, attr.Combo())
	assert.False(t, attr.IsConvert)
}

func TestSingleFruitHasNoStars(t *testing.T) {
	attr := CalculateDifficulty(testMap(10), difficulty.New(mods.None).WithPassedObjects(1))

	assert.Zero(t, attr.Stars)
	assert.Equal(t, 1, attr.Fruits)
}

func TestStackedFruitsNeedNoMovement(t *testing.T) {
	b := testMap(30)
	for i := range b.HitObjects {
		b.HitObjects[i].Pos = mgl64.Vec2{256, 192}
	}

	attr := CalculateDifficulty(b, difficulty.New(mods.None))

	assert.Zero(t, attr.Stars)
}

func TestJuiceStreamExpansion(t *testing.T) {
	b := testMap(0)
	b.HitObjects = append(b.HitObjects, beatmap.HitObject{
		StartTime: 0,
		Pos:       mgl64.Vec2{100, 192},
		Kind:      beatmap.KindSlider,
		Slider: &beatmap.SliderData{
			CurveType:     'L',
			ControlPoints: []mgl64.Vec2{{100, 192}, {300, 192}},
			Repeats:       1,
			PixelLength:   200,
		},
	})

	attr := CalculateDifficulty(b, difficulty.New(mods.None))

	// Head and tail fruit, one tick droplet, tiny droplets in the gaps.
	assert.Equal(t, 2, attr.Fruits)
	assert.Equal(t, 1, attr.Droplets)
	assert.Greater(t, attr.TinyDroplets, 0)
	assert.Equal(t, 3, attr.Combo())
}

func TestClockRateRaisesDifficulty(t *testing.T) {
	b := testMap(50)

	nomod := CalculateDifficulty(b, difficulty.New(mods.None))
	dt := CalculateDifficulty(b, difficulty.New(mods.DoubleTime))

	assert.Greater(t, dt.Stars, nomod.Stars)
}

func TestGradualMatchesBatch(t *testing.T) {
	b := testMap(30)
	d := difficulty.New(mods.None)

	gradual := NewGradualDifficulty(b, d)

	for n := 1; n <= 30; n++ {
		step := gradual.Next()
		require.NotNil(t, step, "step %d", n)

		batch := CalculateDifficulty(b, d.WithPassedObjects(n))

		assert.InDelta(t, batch.Stars, step.Stars, 1e-12, "stars after %d fruits", n)
		assert.Equal(t, batch.Fruits, step.Fruits, "fruits after %d fruits", n)
	}

	assert.Nil(t, gradual.Next())
	assert.Zero(t, gradual.Remaining())
}

func TestStrainPeaksExport(t *testing.T) {
	peaks := CalculateStrainPeaks(testMap(60), difficulty.New(mods.None))

	require.NotEmpty(t, peaks.Movement)
	assert.Len(t, peaks.Total, len(peaks.Movement))
	assert.Empty(t, peaks.Aim)

	for i, total := range peaks.Total {
		assert.GreaterOrEqual(t, total, 0.0, "section %d", i)
	}
}
