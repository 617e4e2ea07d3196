package catch

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

func TestPerformancePositive(t *testing.T) {
	perf := NewPerformance(testMap(50)).Calculate()

	assert.Greater(t, perf.PP, 0.0)
}

func TestSSStateSynthesis(t *testing.T) {
	state := NewPerformance(testMap(50)).GenerateState()

	assert.Equal(t, 50, state.Fruits)
	assert.Zero(t, state.Misses)
	assert.Equal(t, 50, state.MaxCombo)
	assert.InDelta(t, 1.0, state.Accuracy(), 1e-12)
}

func TestMissesReduceFruits(t *testing.T) {
	state := NewPerformance(testMap(20)).Misses(3).GenerateState()

	assert.Equal(t, 17, state.Fruits)
	assert.Equal(t, 3, state.Misses)
	assert.Equal(t, 17, state.MaxCombo)
}

func TestMissesLowerPP(t *testing.T) {
	b := testMap(50)

	full := NewPerformance(b).Calculate()
	missed := NewPerformance(b).Misses(3).Calculate()

	assert.Less(t, missed.PP, full.PP)
}

func TestComboScaling(t *testing.T) {
	b := testMap(50)

	full := NewPerformance(b).Calculate()
	choked := NewPerformance(b).Combo(25).Calculate()

	assert.Less(t, choked.PP, full.PP)
}

func sliderMap(n int) *beatmap.Beatmap {
	b := testMap(n)
	b.HitObjects = append(b.HitObjects, beatmap.HitObject{
		StartTime: 4000,
		Pos:       mgl64.Vec2{100, 192},
		Kind:      beatmap.KindSlider,
		Slider: &beatmap.SliderData{
			CurveType:     'L',
			ControlPoints: []mgl64.Vec2{{100, 192}, {300, 192}},
			Repeats:       1,
			PixelLength:   200,
		},
	})

	return b
}

func TestTinyDropletsFollowAccuracy(t *testing.T) {
	state := NewPerformance(sliderMap(20)).Accuracy(90).GenerateState()

	assert.InDelta(t, 0.9, state.Accuracy(), 0.05)
	assert.Greater(t, state.TinyDropletMiss, 0)
}

func TestTinyDropletMissesSetter(t *testing.T) {
	b := sliderMap(20)

	full := NewPerformance(b).GenerateState()
	require.Greater(t, full.TinyDroplets, 1)

	missed := NewPerformance(b).TinyDropletMisses(2).GenerateState()

	assert.Equal(t, full.TinyDroplets-2, missed.TinyDroplets)
	assert.Equal(t, 2, missed.TinyDropletMiss)
}

func TestStateRoundTripKeepsTinyDropletMisses(t *testing.T) {
	b := sliderMap(20)

	state := NewPerformance(b).TinyDropletMisses(2).GenerateState()
	again := NewPerformance(b).State(state).GenerateState()

	assert.Equal(t, state, again)
}

func TestHiddenRaisesPP(t *testing.T) {
	b := testMap(50)

	nomod := NewPerformance(b).Calculate()
	hd := NewPerformance(b).Mods(mods.Hidden).Calculate()

	assert.Greater(t, hd.PP, nomod.PP)
}

func TestGradualPerformanceProgression(t *testing.T) {
	b := testMap(30)
	d := difficulty.New(mods.None)

	gradual := NewGradualPerformance(b, d)

	state := api.CatchScoreState{}

	var last *api.CatchPerformanceAttributes

	for gradual.Remaining() > 0 {
		state.Fruits++
		state.MaxCombo++

		last = gradual.Next(state)
		require.NotNil(t, last)
	}

	full := NewPerformance(b).Difficulty(d).State(state).Calculate()

	assert.InDelta(t, full.PP, last.PP, 1e-9)
	assert.Nil(t, gradual.Next(state))
}

func TestAttrsReuseMatchesMapPath(t *testing.T) {
	b := testMap(40)
	d := difficulty.New(mods.HardRock)

	attrs := CalculateDifficulty(b, d)

	fromMap := NewPerformance(b).Difficulty(d).Accuracy(97).Calculate()
	fromAttrs := NewPerformanceFromAttrs(attrs).Difficulty(d).Accuracy(97).Calculate()

	assert.InDelta(t, fromMap.PP, fromAttrs.PP, 1e-12)
}
