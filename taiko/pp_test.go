package taiko

import (
	"testing"

	"github.com/osukit/rating-go/api"
	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/mods"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerformancePositive(t *testing.T) {
	perf := NewPerformance(testMap(50)).Calculate()

	assert.Greater(t, perf.PP, 0.0)
	assert.Greater(t, perf.PPDifficulty, 0.0)
	assert.Greater(t, perf.PPAcc, 0.0)
}

func TestSSStateSynthesis(t *testing.T) {
	state := NewPerformance(testMap(50)).GenerateState()

	assert.Equal(t, 50, state.N300)
	assert.Zero(t, state.N100)
	assert.Zero(t, state.Misses)
	assert.Equal(t, 50, state.MaxCombo)
	assert.InDelta(t, 1.0, state.Accuracy(), 1e-12)
}

func TestAccuracyRoundTrip(t *testing.T) {
	state := NewPerformance(testMap(50)).Accuracy(95).GenerateState()

	// Two judgements leave a granularity of 1/(2*50).
	assert.InDelta(t, 0.95, state.Accuracy(), 0.011)
	assert.Equal(t, 50, state.TotalHits())
}

func TestMissesLowerPP(t *testing.T) {
	b := testMap(50)

	full := NewPerformance(b).Calculate()
	missed := NewPerformance(b).Accuracy(98).Misses(3).Calculate()

	assert.Less(t, missed.PP, full.PP)
	assert.Greater(t, missed.EffectiveMissCount, 3.0)
}

func TestHiddenRaisesPPNotStars(t *testing.T) {
	b := testMap(50)

	nomod := NewPerformance(b).Calculate()
	hd := NewPerformance(b).Mods(mods.Hidden).Calculate()

	assert.InDelta(t, nomod.Attributes.Stars, hd.Attributes.Stars, 1e-12)
	assert.Greater(t, hd.PP, nomod.PP)
}

func TestZeroHitsZeroPP(t *testing.T) {
	perf := NewPerformance(testMap(10)).PassedObjects(0).Calculate()

	assert.Zero(t, perf.PP)
}

func TestStateOverrides(t *testing.T) {
	state := NewPerformance(testMap(50)).
		N300(40).
		Misses(2).
		GenerateState()

	assert.Equal(t, 40, state.N300)
	assert.Equal(t, 8, state.N100)
	assert.Equal(t, 2, state.Misses)
	assert.Equal(t, 48, state.MaxCombo)
}

func TestWorstCasePriority(t *testing.T) {
	state := NewPerformance(testMap(50)).
		HitResultPriority(api.WorstCase).
		GenerateState()

	assert.Zero(t, state.N300)
	assert.Equal(t, 50, state.N100)
}

func TestGradualPerformanceProgression(t *testing.T) {
	b := testMap(30)
	d := difficulty.New(mods.None)

	gradual := NewGradualPerformance(b, d)

	state := api.TaikoScoreState{}

	var last *api.TaikoPerformanceAttributes

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
	b := testMap(40)
	d := difficulty.New(mods.HardRock)

	attrs := CalculateDifficulty(b, d)

	fromMap := NewPerformance(b).Difficulty(d).Accuracy(97).Calculate()
	fromAttrs := NewPerformanceFromAttrs(attrs).Difficulty(d).Accuracy(97).Calculate()

	assert.InDelta(t, fromMap.PP, fromAttrs.PP, 1e-12)
}
