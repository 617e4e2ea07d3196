package relax

import (
	"testing"

	"github.com/osukit/rating-go/api"
	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/mods"
	"github.com/osukit/rating-go/osu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformancePositive(t *testing.T) {
	perf := NewPerformance(testMap(50)).
		Mods(mods.Relax).
		Accuracy(99).
		Calculate()

	assert.Greater(t, perf.PP, 0.0)
	assert.Greater(t, perf.PPAim, 0.0)
	assert.Greater(t, perf.PPSpeed, 0.0)
}

func TestGenerateStateFullComboSS(t *testing.T) {
	p := NewPerformance(testMap(20)).Accuracy(100)
	state := p.GenerateState()

	assert.Equal(t, 20, state.N300)
	assert.Zero(t, state.N100)
	assert.Zero(t, state.N50)
	assert.Zero(t, state.Misses)
	assert.Equal(t, 20, state.MaxCombo)
}

func TestAccuracyRoundTrip(t *testing.T) {
	p := NewPerformance(testMap(100)).Accuracy(96.5)
	state := p.GenerateState()

	assert.InDelta(t, 0.965, state.Accuracy(0, 0), 0.005)
}

func TestStateSynthesisMatchesStandard(t *testing.T) {
	b := testMap(100)

	for _, acc := range []float64{100, 97.3, 91, 60} {
		state := NewPerformance(b).Accuracy(acc).Misses(3).GenerateState()
		standard := osu.NewPerformance(b).Accuracy(acc).Misses(3).GenerateState()

		assert.Equal(t, standard.N300, state.N300)
		assert.Equal(t, standard.N100, state.N100)
		assert.Equal(t, standard.N50, state.N50)
		assert.Equal(t, standard.Misses, state.Misses)
		assert.Equal(t, standard.MaxCombo, state.MaxCombo)
	}
}

func TestMissesLowerPP(t *testing.T) {
	b := testMap(100)

	fc := NewPerformance(b).Accuracy(98).Calculate()
	missed := NewPerformance(b).Accuracy(98).Misses(5).Calculate()

	assert.Less(t, missed.PP, fc.PP)
}

func TestMapCalibrationMultiplier(t *testing.T) {
	plain := testMap(50)

	nerfed := testMap(50)
	nerfed.ID = 1821147 // over the top [Above the stars]

	base := NewPerformance(plain).Accuracy(99).Calculate()
	capped := NewPerformance(nerfed).Accuracy(99).Calculate()

	require.Greater(t, base.PP, 0.0)
	assert.InDelta(t, base.PP*0.70, capped.PP, base.PP*1e-9)
}

func TestCreatorMultiplier(t *testing.T) {
	plain := testMap(50)

	flagged := testMap(50)
	flagged.Creator = "gwb"

	base := NewPerformance(plain).Accuracy(99).Calculate()
	nerfed := NewPerformance(flagged).Accuracy(99).Calculate()

	assert.InDelta(t, base.PP*0.9, nerfed.PP, base.PP*1e-9)
}

func TestZeroHitsZeroPP(t *testing.T) {
	perf := NewPerformance(testMap(10)).
		PassedObjects(0).
		Calculate()

	assert.Zero(t, perf.PP)
}

func TestStateOverridesAccuracy(t *testing.T) {
	state := api.OsuScoreState{
		MaxCombo: 40,
		N300:     45,
		N100:     4,
		N50:      1,
	}

	perf := NewPerformance(testMap(50)).State(state).Calculate()

	assert.Greater(t, perf.PP, 0.0)
}

func TestGradualPerformanceProgresses(t *testing.T) {
	b := testMap(30)
	d := difficulty.New(mods.None)

	gradual := NewGradualPerformance(b, d)

	var state api.OsuScoreState
	var last float64

	for gradual.Remaining() > 0 {
		state.N300++
		state.MaxCombo++

		perf := gradual.Next(state)
		require.NotNil(t, perf)

		assert.GreaterOrEqual(t, perf.PP, last*0.5)
		last = perf.PP
	}

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
