package preprocessing

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/beatmap/curves"
)

// LazySlider precomputes everything the difficulty engine needs from a
// slider: its flattened path, nested events and the lazy cursor path a
// player is assumed to take while holding the follow circle.
type LazySlider struct {
	Base *beatmap.HitObject

	Curve *curves.Curve

	Velocity     float64
	SpanDuration float64
	TickDistance float64

	Events []curves.Event

	TickCount   int
	RepeatCount int

	// EndTimeLazer is the legacy last tick time, the moment the slider is
	// actually judged.
	EndTimeLazer float64

	LazyEndPosition    mgl64.Vec2
	LazyTravelDistance float64
	LazyTravelTime     float64
}

func NewLazySlider(obj *beatmap.HitObject, b *beatmap.Beatmap) *LazySlider {
	data := obj.Slider

	timing := b.TimingPointAt(obj.StartTime)
	point := b.DifficultyPointAt(obj.StartTime)

	scoringDistance := 100 * b.SliderMultiplier * point.SliderVelocity

	s := &LazySlider{
		Base:            obj,
		Curve:           curves.NewCurve(data.ControlPoints, data.CurveType, data.PixelLength),
		Velocity:        scoringDistance / timing.BeatLen,
		TickDistance:    scoringDistance / b.SliderTickRate,
		RepeatCount:     data.SpanCount(),
		LazyEndPosition: obj.Pos,
	}

	s.SpanDuration = s.Curve.Dist() / s.Velocity
	s.Events = curves.Events(obj.StartTime, s.SpanDuration, s.Velocity, s.TickDistance, s.Curve.Dist(), s.RepeatCount)

	for _, e := range s.Events {
		switch e.Kind {
		case curves.EventTick:
			s.TickCount++
		case curves.EventLastTick:
			s.EndTimeLazer = e.Time
		}
	}

	return s
}

// EndTime returns the geometric slider end, not the judgement time.
func (s *LazySlider) EndTime() float64 {
	return s.Base.StartTime + s.SpanDuration*float64(s.RepeatCount)
}

// ComboElements returns how many combo increments the slider awards: head,
// ticks, repeats and tail.
func (s *LazySlider) ComboElements() int {
	return len(s.Events) - 1 // the legacy last tick replaces the tail judgement
}

// PositionAt returns the path position at the given absolute time.
func (s *LazySlider) PositionAt(time float64) mgl64.Vec2 {
	if s.SpanDuration <= 0 {
		return s.Base.Pos
	}

	elapsed := time - s.Base.StartTime
	span := int(elapsed / s.SpanDuration)
	span = max(0, min(span, s.RepeatCount-1))

	progress := elapsed/s.SpanDuration - float64(span)
	progress = max(0, min(1, progress))

	if span%2 == 1 {
		progress = 1 - progress
	}

	return s.Curve.PointAt(progress)
}

// computeLazyTravel walks the nested events and advances a virtual cursor
// only when an event leaves the assumed follow radius, mirroring how little
// a player actually has to move while sliding. Distances are accumulated in
// normalized units.
func (s *LazySlider) computeLazyTravel(radius float64) {
	if len(s.Events) < 2 {
		return
	}

	// Tail is judged at the legacy last tick; drop the geometric tail and
	// order the rest by time.
	nested := make([]curves.Event, 0, len(s.Events)-1)

	for _, e := range s.Events {
		if e.Kind != curves.EventTail {
			nested = append(nested, e)
		}
	}

	sort.SliceStable(nested, func(i, j int) bool { return nested[i].Time < nested[j].Time })

	s.LazyTravelTime = nested[len(nested)-1].Time - s.Base.StartTime

	scalingFactor := NormalizedRadius / radius
	currCursorPosition := s.Base.Pos

	for i := 1; i < len(nested); i++ {
		currMovementObj := s.Curve.PointAt(nested[i].PathProgress)
		currMovement := currMovementObj.Sub(currCursorPosition)
		currMovementLength := scalingFactor * currMovement.Len()

		requiredMovement := assumedSliderRadius

		if currMovementLength > requiredMovement {
			currCursorPosition = currCursorPosition.Add(currMovement.Mul((currMovementLength - requiredMovement) / currMovementLength))
			currMovementLength *= (currMovementLength - requiredMovement) / currMovementLength
			s.LazyTravelDistance += currMovementLength
		}

		if i == len(nested)-1 {
			s.LazyEndPosition = currCursorPosition
		}
	}
}
