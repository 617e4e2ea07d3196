package rating

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osukit/rating-go/api"
	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/catch"
	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/mania"
	"github.com/osukit/rating-go/mods"
	"github.com/osukit/rating-go/osu"
	"github.com/osukit/rating-go/taiko"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOsuMap(n int) *beatmap.Beatmap {
	b := &beatmap.Beatmap{
		Mode: beatmap.ModeOsu,
		AR:   9, OD: 8, CS: 4, HP: 5,
		SliderMultiplier: 1.4,
		SliderTickRate:   1,
		TimingPoints:     []beatmap.TimingPoint{{Time: 0, BeatLen: 500}},
	}

	for i := 0; i < n; i++ {
		x := 100.0
		if i%2 == 1 {
			x = 300
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

func testTaikoMap(n int) *beatmap.Beatmap {
	b := testOsuMap(n)
	b.Mode = beatmap.ModeTaiko

	return b
}

func TestNativeModeDispatch(t *testing.T) {
	b := testTaikoMap(40)

	perf := NewPerformance(b).Calculate()
	direct := taiko.NewPerformance(b).Calculate()

	assert.Equal(t, beatmap.ModeTaiko, perf.Mode())
	assert.InDelta(t, direct.PP, perf.Total(), 1e-12)
}

func TestModeConversionFromStandard(t *testing.T) {
	b := testOsuMap(40)

	perf := NewPerformance(b).ModeOrIgnore(beatmap.ModeMania)
	require.Equal(t, beatmap.ModeMania, perf.Mode())

	direct := mania.NewPerformance(b).Calculate()

	assert.InDelta(t, direct.PP, perf.Calculate().Total(), 1e-12)
}

func TestConversionNeedsMap(t *testing.T) {
	attrs := osu.CalculateDifficulty(testOsuMap(40), difficulty.New(mods.None))

	perf := NewPerformanceFromAttrs(attrs)

	err := perf.TryMode(beatmap.ModeTaiko)
	require.ErrorIs(t, err, ErrConversionUnavailable)

	// A failed conversion must leave the calculator usable and unchanged.
	perf.ModeOrIgnore(beatmap.ModeCatch)
	assert.Equal(t, beatmap.ModeOsu, perf.Mode())
	assert.Greater(t, perf.Calculate().Total(), 0.0)
}

func TestOnlyStandardConverts(t *testing.T) {
	perf := NewPerformance(testTaikoMap(40))

	assert.ErrorIs(t, perf.TryMode(beatmap.ModeCatch), ErrConversionUnavailable)
	assert.Equal(t, beatmap.ModeTaiko, perf.Mode())
}

func TestRelaxDispatch(t *testing.T) {
	perf := NewPerformance(testOsuMap(40)).Relax(true).Mods(mods.Relax).Calculate()

	_, ok := perf.(api.RelaxPerformanceAttributes)

	require.True(t, ok)
	assert.Greater(t, perf.Total(), 0.0)
}

func TestGenericStateMapsCatchBuckets(t *testing.T) {
	b := testOsuMap(40)

	state := NewPerformance(b).ModeOrIgnore(beatmap.ModeCatch).GenerateState()
	direct := catch.NewPerformance(b).GenerateState()

	assert.Equal(t, direct.Fruits, state.N300)
	assert.Equal(t, direct.Droplets, state.N100)
	assert.Equal(t, direct.TinyDroplets, state.N50)
	assert.Equal(t, direct.MaxCombo, state.MaxCombo)
}

func TestGenericStateForwardsTinyDropletMisses(t *testing.T) {
	b := testOsuMap(40)
	b.HitObjects = append(b.HitObjects, beatmap.HitObject{
		StartTime: 6100,
		Pos:       mgl64.Vec2{100, 192},
		Kind:      beatmap.KindSlider,
		Slider: &beatmap.SliderData{
			CurveType:     'L',
			ControlPoints: []mgl64.Vec2{{100, 192}, {300, 192}},
			Repeats:       1,
			PixelLength:   200,
		},
	})

	state := NewPerformance(b).ModeOrIgnore(beatmap.ModeCatch).NKatu(2).GenerateState()
	direct := catch.NewPerformance(b).TinyDropletMisses(2).GenerateState()

	require.Greater(t, direct.TinyDroplets, 0)
	assert.Equal(t, 2, state.NKatu)
	assert.Equal(t, direct.TinyDroplets, state.N50)
	assert.Equal(t, direct.TinyDropletMiss, state.NKatu)
}

func TestGenericDifficultyDispatch(t *testing.T) {
	b := testOsuMap(40)
	d := difficulty.New(mods.None)

	attrs, err := CalculateDifficulty(b, d, beatmap.ModeTaiko)
	require.NoError(t, err)

	taikoAttrs, ok := attrs.(api.TaikoDifficultyAttributes)
	require.True(t, ok)

	assert.True(t, taikoAttrs.IsConvert)
	assert.InDelta(t, taiko.CalculateDifficulty(b, d).Stars, attrs.TotalStars(), 1e-12)

	_, err = CalculateDifficulty(testTaikoMap(10), d, beatmap.ModeMania)
	assert.ErrorIs(t, err, ErrConversionUnavailable)
}
