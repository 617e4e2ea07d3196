package beatmap

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testOsuFile = `osu file format v14

[General]
Mode: 1

[Metadata]
Creator: cartographer
BeatmapID: 123456

[Difficulty]
OverallDifficulty:7
CircleSize:4
HPDrainRate:6
SliderMultiplier:1.8
SliderTickRate:2

[TimingPoints]
0,500,4,2,0,60,1,0
4000,-50,4,2,0,60,0,0

[HitObjects]
256,192,2000,1,0,0:0:0:0:
100,100,1000,6,0,L|300:100,2,150
256,192,3000,12,0,5000
448,192,6000,128,0,6500:0:0:0:
`

func TestParseSettings(t *testing.T) {
	b, err := Parse(strings.NewReader(testOsuFile))
	require.NoError(t, err)

	assert.Equal(t, ModeTaiko, b.Mode)
	assert.Equal(t, 14, b.FormatVersion)
	assert.Equal(t, "cartographer", b.Creator)
	assert.Equal(t, 123456, b.ID)

	assert.Equal(t, 7.0, b.OD)
	assert.Equal(t, 4.0, b.CS)
	assert.Equal(t, 6.0, b.HP)
	assert.Equal(t, 1.8, b.SliderMultiplier)
	assert.Equal(t, 2.0, b.SliderTickRate)
}

func TestParseARFallsBackToOD(t *testing.T) {
	// Old format versions have no ApproachRate entry; OD doubles as AR.
	b, err := Parse(strings.NewReader(testOsuFile))
	require.NoError(t, err)

	assert.Equal(t, b.OD, b.AR)

	withAR := strings.Replace(testOsuFile,
		"OverallDifficulty:7", "OverallDifficulty:7\nApproachRate:9.2", 1)

	b, err = Parse(strings.NewReader(withAR))
	require.NoError(t, err)

	assert.Equal(t, 9.2, b.AR)
	assert.Equal(t, 7.0, b.OD)
}

func TestParseTimingPointSplit(t *testing.T) {
	b, err := Parse(strings.NewReader(testOsuFile))
	require.NoError(t, err)

	require.Len(t, b.TimingPoints, 1)
	assert.Equal(t, TimingPoint{Time: 0, BeatLen: 500}, b.TimingPoints[0])

	require.Len(t, b.DifficultyPoints, 1)
	assert.Equal(t, DifficultyPoint{Time: 4000, SliderVelocity: 2.0}, b.DifficultyPoints[0])
}

func TestParseHitObjects(t *testing.T) {
	b, err := Parse(strings.NewReader(testOsuFile))
	require.NoError(t, err)
	require.Len(t, b.HitObjects, 4)

	slider := b.HitObjects[0]
	assert.Equal(t, KindSlider, slider.Kind)
	assert.Equal(t, 1000.0, slider.StartTime)
	assert.True(t, slider.NewCombo)

	require.NotNil(t, slider.Slider)
	assert.Equal(t, byte('L'), slider.Slider.CurveType)
	assert.Equal(t, []mgl64.Vec2{{100, 100}, {300, 100}}, slider.Slider.ControlPoints)
	assert.Equal(t, 2, slider.Slider.Repeats)
	assert.Equal(t, 150.0, slider.Slider.PixelLength)

	circle := b.HitObjects[1]
	assert.Equal(t, KindCircle, circle.Kind)
	assert.Equal(t, 2000.0, circle.StartTime)
	assert.Equal(t, mgl64.Vec2{256, 192}, circle.Pos)

	spinner := b.HitObjects[2]
	assert.Equal(t, KindSpinner, spinner.Kind)
	assert.Equal(t, 5000.0, spinner.EndTime)

	hold := b.HitObjects[3]
	assert.Equal(t, KindHold, hold.Kind)
	assert.Equal(t, 6500.0, hold.EndTime)
}

func TestParseRejectsMissingHeader(t *testing.T) {
	_, err := Parse(strings.NewReader("[General]\nMode: 0\n"))

	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestControlPointLookup(t *testing.T) {
	b, err := Parse(strings.NewReader(testOsuFile))
	require.NoError(t, err)

	assert.Equal(t, 500.0, b.TimingPointAt(-1).BeatLen)
	assert.Equal(t, 500.0, b.TimingPointAt(4500).BeatLen)

	assert.Equal(t, DefaultSliderVelocity, b.DifficultyPointAt(1000).SliderVelocity)
	assert.Equal(t, 2.0, b.DifficultyPointAt(4000).SliderVelocity)
	assert.Equal(t, 2.0, b.DifficultyPointAt(9999).SliderVelocity)
}

func TestControlPointDefaults(t *testing.T) {
	empty := &Beatmap{}

	assert.Equal(t, DefaultBeatLen, empty.TimingPointAt(0).BeatLen)
	assert.Equal(t, DefaultSliderVelocity, empty.DifficultyPointAt(0).SliderVelocity)
}
