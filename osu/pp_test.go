package osu

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osukit/rating-go/api"
	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/mods"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSliderMap is testMap with every fifth object replaced by a short
// slider.
func testSliderMap(n int) *beatmap.Beatmap {
	b := testMap(n)
	b.TimingPoints = []beatmap.TimingPoint{{Time: 0, BeatLen: 500}}

	for i := range b.HitObjects {
		if i%5 != 0 {
			continue
		}

		h := &b.HitObjects[i]
		h.EndTime = h.StartTime + 250
		h.Kind = beatmap.KindSlider
		h.Slider = &beatmap.SliderData{
			CurveType:     'L',
			ControlPoints: []mgl64.Vec2{h.Pos, h.Pos.Add(mgl64.Vec2{100, 0})},
			Repeats:       1,
			PixelLength:   100,
		}
	}

	return b
}

func TestPerformancePositive(t *testing.T) {
	perf := NewPerformance(testMap(50)).Accuracy(99).Calculate()

	assert.Greater(t, perf.PP, 0.0)
	assert.Greater(t, perf.PPAim, 0.0)
	assert.Greater(t, perf.PPSpeed, 0.0)
	assert.Greater(t, perf.PPAcc, 0.0)
	assert.Zero(t, perf.PPFlashlight)
}

func TestSSStateSynthesis(t *testing.T) {
	state := NewPerformance(testMap(10)).GenerateState()

	assert.Equal(t, 10, state.N300)
	assert.Zero(t, state.N100)
	assert.Zero(t, state.N50)
	assert.Zero(t, state.Misses)
	assert.Equal(t, 10, state.MaxCombo)
	assert.InDelta(t, 1.0, state.Accuracy(0, 0), 1e-12)
}

func TestZeroHitsZeroPP(t *testing.T) {
	perf := NewPerformance(testMap(10)).PassedObjects(0).Calculate()

	assert.Zero(t, perf.PP)
}

func TestAccuracyRoundTrip(t *testing.T) {
	state := NewPerformance(testMap(100)).Accuracy(96.5).GenerateState()

	assert.InDelta(t, 0.965, state.Accuracy(0, 0), 0.005)
	assert.Equal(t, 100, state.TotalHits())
}

func TestPriorityBracketsAccuracy(t *testing.T) {
	b := testMap(100)

	best := NewPerformance(b).Accuracy(95).GenerateState()
	worst := NewPerformance(b).Accuracy(95).HitResultPriority(api.WorstCase).GenerateState()

	assert.InDelta(t, 0.95, best.Accuracy(0, 0), 0.005)
	assert.InDelta(t, 0.95, worst.Accuracy(0, 0), 0.005)

	// Both hit the same accuracy; the worst case trades 100s for 300+50
	// pairs.
	assert.GreaterOrEqual(t, worst.N300, best.N300)
	assert.GreaterOrEqual(t, best.N100, worst.N100)
}

func TestMissesLowerPP(t *testing.T) {
	b := testMap(100)

	fc := NewPerformance(b).Accuracy(98).Calculate()
	missed := NewPerformance(b).Accuracy(98).Misses(5).Calculate()

	assert.Less(t, missed.PP, fc.PP)
	assert.GreaterOrEqual(t, missed.EffectiveMissCount, 5.0)
}

func TestComboBasedEffectiveMisses(t *testing.T) {
	b := testSliderMap(50)

	perf := NewPerformance(b).N100(5).Combo(10).Calculate()

	// Slider breaks show up as effective misses even without real ones.
	assert.Greater(t, perf.EffectiveMissCount, 0.0)
	assert.LessOrEqual(t, perf.EffectiveMissCount, 5.0)
}

func TestLazerToggleChangesAccuracyWeight(t *testing.T) {
	b := testSliderMap(50)

	lazer := NewPerformance(b).Accuracy(97).Calculate()
	stable := NewPerformance(b).Accuracy(97).Lazer(false).Calculate()

	// Slider heads carry accuracy weight only on lazer.
	assert.NotEqual(t, lazer.PPAcc, stable.PPAcc)
}

func TestHiddenRaisesPP(t *testing.T) {
	b := testMap(50)

	nomod := NewPerformance(b).Accuracy(99).Calculate()
	hd := NewPerformance(b).Mods(mods.Hidden).Accuracy(99).Calculate()

	assert.Greater(t, hd.PP, nomod.PP)
}

func TestGradualPerformanceProgression(t *testing.T) {
	b := testMap(30)
	d := difficulty.New(mods.None)

	gradual := NewGradualPerformance(b, d)

	state := api.OsuScoreState{}

	var last *api.OsuPerformanceAttributes

	for gradual.Remaining() > 0 {
		state.N300++
		state.MaxCombo++

		last = gradual.Next(state)
		require.NotNil(t, last)
	}

	full := NewPerformance(b).Difficulty(d).State(state).Calculate()

	assert.InDelta(t, full.PP, last.PP, 1e-9)
	assert.Nil(t, gradual.Next(state))
}

func TestAttrsReuseMatchesMapPath(t *testing.T) {
	b := testMap(60)
	d := difficulty.New(mods.Hidden)

	attrs := CalculateDifficulty(b, d)

	fromMap := NewPerformance(b).Difficulty(d).Accuracy(97).Calculate()
	fromAttrs := NewPerformanceFromAttrs(attrs).Difficulty(d).Accuracy(97).Calculate()

	assert.InDelta(t, fromMap.PP, fromAttrs.PP, 1e-12)
}
