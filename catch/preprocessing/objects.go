package preprocessing

import (
	"math"
	"sort"

	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/beatmap/curves"
	"github.com/osukit/rating-go/util/mutils"
)

const (
	// AllowedCatchRange is the fraction of the catcher plate that actually
	// catches.
	AllowedCatchRange = 0.8

	CatcherSize      = 106.75
	CatcherBaseSpeed = 1.0

	PlayfieldWidth = 512.0
)

type ObjectKind int

const (
	KindFruit ObjectKind = iota
	KindDroplet
	KindTinyDroplet
)

// Object is one catchable element. Tiny droplets count toward accuracy but
// neither combo nor difficulty.
type Object struct {
	Kind      ObjectKind
	StartTime float64
	X         float64

	// Hyperdash state toward the next fruit or droplet, filled in by
	// initializeHyperDash.
	HyperDash           bool
	DistanceToHyperDash float64
}

func (o *Object) IsPalpable() bool { return o.Kind != KindTinyDroplet }

// CalculateCatchWidth returns the effective catcher width at the given CS.
func CalculateCatchWidth(cs float64) float64 {
	scale := 1 - 0.7*(cs-5)/5

	return CatcherSize * math.Abs(scale) * AllowedCatchRange
}

// HalfCatcherWidth returns half the catch range the difficulty math
// normalizes against.
func HalfCatcherWidth(cs float64) float64 {
	return CalculateCatchWidth(cs) / 2 / AllowedCatchRange
}

// CreateObjects converts a chart into time-ordered catch objects. Circles
// become fruits, sliders become juice streams and spinners become banana
// showers, which never influence difficulty and are skipped entirely.
func CreateObjects(b *beatmap.Beatmap, cs float64) (objects []*Object, isConvert bool) {
	isConvert = b.Mode == beatmap.ModeOsu

	for i := range b.HitObjects {
		h := &b.HitObjects[i]

		switch h.Kind {
		case beatmap.KindCircle:
			objects = append(objects, &Object{
				Kind:      KindFruit,
				StartTime: h.StartTime,
				X:         h.Pos.X(),
			})
		case beatmap.KindSlider:
			objects = append(objects, convertJuiceStream(b, h)...)
		}
	}

	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].StartTime < objects[j].StartTime
	})

	initializeHyperDash(objects, cs)

	return objects, isConvert
}

// convertJuiceStream expands a slider into fruits on its head, repeats and
// tail, droplets on its ticks, and tiny droplets filling every gap longer
// than 80ms.
func convertJuiceStream(b *beatmap.Beatmap, h *beatmap.HitObject) []*Object {
	data := h.Slider

	timing := b.TimingPointAt(h.StartTime)
	point := b.DifficultyPointAt(h.StartTime)

	scoringDistance := 100 * b.SliderMultiplier * point.SliderVelocity

	curve := curves.NewCurve(data.ControlPoints, data.CurveType, data.PixelLength)

	velocity := scoringDistance / timing.BeatLen
	tickDistance := scoringDistance / b.SliderTickRate

	spanCount := data.SpanCount()
	spanDuration := curve.Dist() / velocity

	events := curves.Events(h.StartTime, spanDuration, velocity, tickDistance, curve.Dist(), spanCount)

	xAt := func(progress float64) float64 {
		return mutils.Clamp(h.Pos.X()+curve.PointAt(progress).X()-curve.PointAt(0).X(), 0, PlayfieldWidth)
	}

	var objects []*Object

	var last *curves.Event

	for i := range events {
		e := &events[i]

		if last != nil {
			objects = append(objects, tinyDroplets(last, e, xAt)...)
		}

		last = e

		switch e.Kind {
		case curves.EventHead, curves.EventRepeat, curves.EventTail:
			objects = append(objects, &Object{
				Kind:      KindFruit,
				StartTime: e.Time,
				X:         xAt(e.PathProgress),
			})
		case curves.EventTick:
			objects = append(objects, &Object{
				Kind:      KindDroplet,
				StartTime: e.Time,
				X:         xAt(e.PathProgress),
			})
		}
	}

	return objects
}

// tinyDroplets fills the gap between two nested events. Gaps of 80ms or less
// stay empty; longer gaps are halved until the spacing drops to 100ms.
func tinyDroplets(last, next *curves.Event, xAt func(float64) float64) []*Object {
	sinceLast := next.Time - last.Time
	if sinceLast <= 80 {
		return nil
	}

	timeBetween := sinceLast
	for timeBetween > 100 {
		timeBetween /= 2
	}

	var objects []*Object

	for t := timeBetween; t < sinceLast; t += timeBetween {
		progress := last.PathProgress + t/sinceLast*(next.PathProgress-last.PathProgress)

		objects = append(objects, &Object{
			Kind:      KindTinyDroplet,
			StartTime: last.Time + t,
			X:         xAt(progress),
		})
	}

	return objects
}

// initializeHyperDash marks fruits and droplets from which the following
// object is only reachable by hyperdashing, and records how much room was
// left on the plate otherwise.
func initializeHyperDash(objects []*Object, cs float64) {
	halfCatcherWidth := HalfCatcherWidth(cs)

	var palpable []*Object

	for _, o := range objects {
		if o.IsPalpable() {
			palpable = append(palpable, o)
		}
	}

	lastDirection := 0
	lastExcess := halfCatcherWidth

	for i := 0; i+1 < len(palpable); i++ {
		current, next := palpable[i], palpable[i+1]

		direction := -1
		if next.X > current.X {
			direction = 1
		}

		// A quarter of a frame at 60fps is forgiven, like in the game.
		timeToNext := next.StartTime - current.StartTime - 1000.0/60/4

		distanceToNext := math.Abs(next.X - current.X)
		if lastDirection == direction {
			distanceToNext -= lastExcess
		} else {
			distanceToNext -= halfCatcherWidth
		}

		if timeToNext*CatcherBaseSpeed < distanceToNext {
			current.HyperDash = true
			lastExcess = halfCatcherWidth
		} else {
			current.DistanceToHyperDash = timeToNext*CatcherBaseSpeed - distanceToNext
			lastExcess = mutils.Clamp(current.DistanceToHyperDash, 0, halfCatcherWidth)
		}

		lastDirection = direction
	}
}
