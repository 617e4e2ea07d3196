package mania

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/mania/preprocessing"
	"github.com/osukit/rating-go/mods"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMap builds a native 4K chart of n notes cycling through the columns,
// 150ms apart.
func testMap(n int) *beatmap.Beatmap {
	b := &beatmap.Beatmap{
		Mode: beatmap.ModeMania,
		CS:   4, OD: 8, HP: 7,
	}

	columns := []float64{64, 192, 320, 448}

	for i := 0; i < n; i++ {
		b.HitObjects = append(b.HitObjects, beatmap.HitObject{
			StartTime: float64(i) * 150,
			EndTime:   float64(i) * 150,
			Pos:       mgl64.Vec2{columns[i%4], 192},
			Kind:      beatmap.KindCircle,
		})
	}

	return b
}

// convertMap builds a Standard map with the requested share of sliders for
// exercising the key count heuristic.
func convertMap(total, sliders int, cs, od float64) *beatmap.Beatmap {
	b := &beatmap.Beatmap{
		Mode: beatmap.ModeOsu,
		CS:   cs, OD: od, HP: 5,
		SliderMultiplier: 1.4,
		SliderTickRate:   1,
		TimingPoints:     []beatmap.TimingPoint{{Time: 0, BeatLen: 500}},
	}

	for i := 0; i < total; i++ {
		h := beatmap.HitObject{
			StartTime: float64(i) * 200,
			EndTime:   float64(i) * 200,
			Pos:       mgl64.Vec2{float64(64 + (i%4)*128), 192},
			Kind:      beatmap.KindCircle,
		}

		if i < sliders {
			h.EndTime = h.StartTime + 100
			h.Kind = beatmap.KindSlider
			h.Slider = &beatmap.SliderData{
				CurveType:     'L',
				ControlPoints: []mgl64.Vec2{h.Pos, h.Pos.Add(mgl64.Vec2{50, 0})},
				Repeats:       1,
				PixelLength:   50,
			}
		}

		b.HitObjects = append(b.HitObjects, h)
	}

	return b
}

func TestDifficultyPositiveStars(t *testing.T) {
	attr := CalculateDifficulty(testMap(50), difficulty.New(mods.None))

	assert.Greater(t, attr.Stars, 0.0)
	assert.Equal(t, 50, attr.ObjectCount)
	assert.Equal(t, 50, attr.MaxCombo)
	assert.Zero(t, attr.HoldCount)
	assert.False(t, attr.IsConvert)
}

func TestSingleNoteHasNoStars(t *testing.T) {
	attr := CalculateDifficulty(testMap(10), difficulty.New(mods.None).WithPassedObjects(1))

	assert.Zero(t, attr.Stars)
	assert.Equal(t, 1, attr.ObjectCount)
	assert.Equal(t, 1, attr.MaxCombo)
}

func TestHoldsTickCombo(t *testing.T) {
	b := testMap(20)
	b.HitObjects = append(b.HitObjects, beatmap.HitObject{
		StartTime: 3000,
		EndTime:   3500,
		Pos:       mgl64.Vec2{64, 192},
		Kind:      beatmap.KindSlider,
		Slider: &beatmap.SliderData{
			CurveType:   'L',
			Repeats:     1,
			PixelLength: 100,
		},
	})

	attr := CalculateDifficulty(b, difficulty.New(mods.None))

	assert.Equal(t, 21, attr.ObjectCount)
	assert.Equal(t, 1, attr.HoldCount)
	// 500ms of hold body adds five combo ticks on top of the note itself.
	assert.Equal(t, 26, attr.MaxCombo)
}

func TestClockRateRaisesDifficulty(t *testing.T) {
	b := testMap(50)

	nomod := CalculateDifficulty(b, difficulty.New(mods.None))
	dt := CalculateDifficulty(b, difficulty.New(mods.DoubleTime))

	assert.Greater(t, dt.Stars, nomod.Stars)
}

func TestNativeKeyCountFromCS(t *testing.T) {
	b := testMap(10)
	b.CS = 7

	assert.Equal(t, 7, preprocessing.KeyCount(b))
}

func TestConvertKeyCount(t *testing.T) {
	// All circles land in the densest layout.
	assert.Equal(t, 7, preprocessing.KeyCount(convertMap(50, 0, 4, 5)))

	// A quarter sliders keys off the overall difficulty.
	assert.Equal(t, 7, preprocessing.KeyCount(convertMap(50, 13, 4, 7)))
	assert.Equal(t, 6, preprocessing.KeyCount(convertMap(50, 13, 4, 3)))

	// Slider-heavy maps get the sparse layouts.
	assert.Equal(t, 5, preprocessing.KeyCount(convertMap(50, 35, 4, 5)))
	assert.Equal(t, 4, preprocessing.KeyCount(convertMap(50, 35, 4, 3)))

	// The fallback clamps od+1 into the mid range.
	assert.Equal(t, 4, preprocessing.KeyCount(convertMap(50, 20, 4, 2)))
	assert.Equal(t, 6, preprocessing.KeyCount(convertMap(50, 20, 4, 5)))
}

func TestConvertFlagged(t *testing.T) {
	attr := CalculateDifficulty(convertMap(50, 0, 4, 5), difficulty.New(mods.None))

	assert.True(t, attr.IsConvert)
	assert.Greater(t, attr.Stars, 0.0)
}

func TestGradualMatchesBatch(t *testing.T) {
	b := testMap(30)
	d := difficulty.New(mods.None)

	gradual := NewGradualDifficulty(b, d)

	for n := 1; n <= 30; n++ {
		step := gradual.Next()
		require.NotNil(t, step, "step %d", n)

		batch := CalculateDifficulty(b, d.WithPassedObjects(n))

		assert.InDelta(t, batch.Stars, step.Stars, 1e-12, "stars after %d notes", n)
		assert.Equal(t, batch.MaxCombo, step.MaxCombo, "combo after %d notes", n)
	}

	assert.Nil(t, gradual.Next())
	assert.Zero(t, gradual.Remaining())
}

func TestStrainPeaksExport(t *testing.T) {
	peaks := CalculateStrainPeaks(testMap(60), difficulty.New(mods.None))

	require.NotEmpty(t, peaks.Strain)
	assert.Len(t, peaks.Total, len(peaks.Strain))
	assert.Empty(t, peaks.Aim)

	for i, total := range peaks.Total {
		assert.GreaterOrEqual(t, total, 0.0, "section %d", i)
	}
}
