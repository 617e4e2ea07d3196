package beatmap

import "sort"

const (
	DefaultBeatLen        = 1000.0
	DefaultSliderVelocity = 1.0
)

// TimingPoint is an uninherited timing control point.
type TimingPoint struct {
	Time    float64
	BeatLen float64
}

// DifficultyPoint is an inherited control point carrying a slider velocity
// multiplier.
type DifficultyPoint struct {
	Time           float64
	SliderVelocity float64
}

// TimingPointAt returns the most recent timing point at or before time, or a
// default point when none applies yet.
func (b *Beatmap) TimingPointAt(time float64) TimingPoint {
	points := b.TimingPoints

	idx := sort.Search(len(points), func(i int) bool { return points[i].Time > time })
	if idx == 0 {
		if len(points) > 0 {
			return points[0]
		}

		return TimingPoint{BeatLen: DefaultBeatLen}
	}

	return points[idx-1]
}

// DifficultyPointAt returns the most recent difficulty point at or before
// time, or the default velocity when none applies yet.
func (b *Beatmap) DifficultyPointAt(time float64) DifficultyPoint {
	points := b.DifficultyPoints

	idx := sort.Search(len(points), func(i int) bool { return points[i].Time > time })
	if idx == 0 {
		return DifficultyPoint{SliderVelocity: DefaultSliderVelocity}
	}

	return points[idx-1]
}
