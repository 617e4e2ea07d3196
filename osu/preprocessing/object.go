package preprocessing

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/difficulty"
)

const (
	NormalizedRadius        = 50.0
	CircleSizeBuffThreshold = 30.0
	MinDeltaTime            = 25.0

	maximumSliderRadius = NormalizedRadius * 2.4
	assumedSliderRadius = NormalizedRadius * 1.8
)

// Object pairs a raw hit object with its precomputed slider data.
type Object struct {
	Base   *beatmap.HitObject
	Slider *LazySlider
}

func (o *Object) IsSpinner() bool { return o.Base.IsSpinner() }

// EndCursorPosition is where the player's cursor is assumed to rest once
// the object is done.
func (o *Object) EndCursorPosition() mgl64.Vec2 {
	if o.Slider != nil {
		return o.Slider.LazyEndPosition
	}

	return o.Base.Pos
}

// CreateObjects wraps the first n hit objects of a beatmap, flattening
// slider paths and lazy travel on the way.
func CreateObjects(b *beatmap.Beatmap, attrs difficulty.MapAttributes, n int) []*Object {
	n = min(n, len(b.HitObjects))
	objects := make([]*Object, 0, n)

	for i := 0; i < n; i++ {
		ho := &b.HitObjects[i]
		obj := &Object{Base: ho}

		if ho.IsSlider() {
			obj.Slider = NewLazySlider(ho, b)
			obj.Slider.computeLazyTravel(attrs.Radius)
		}

		objects = append(objects, obj)
	}

	return objects
}

// DifficultyObject carries the precomputed spacing and timing features of
// one hit object relative to its predecessors. Times are in adjusted
// (clock-rate divided) milliseconds.
type DifficultyObject struct {
	listOfDiffs *[]*DifficultyObject
	Index       int

	Diff  difficulty.Difficulty
	Attrs difficulty.MapAttributes

	BaseObject *Object

	lastObject     *Object
	lastLastObject *Object

	IsSlider  bool
	IsSpinner bool

	DeltaTime float64
	StartTime float64
	EndTime   float64

	LazyJumpDistance    float64
	MinimumJumpDistance float64
	MinimumJumpTime     float64
	TravelDistance      float64
	TravelTime          float64

	// Angle is NaN when there is no prior movement vector.
	Angle float64

	StrainTime float64
}

func NewDifficultyObject(hitObject, lastLastObject, lastObject *Object, d difficulty.Difficulty, attrs difficulty.MapAttributes, listOfDiffs *[]*DifficultyObject, index int) *DifficultyObject {
	clockRate := attrs.ClockRate

	obj := &DifficultyObject{
		listOfDiffs:    listOfDiffs,
		Index:          index,
		Diff:           d,
		Attrs:          attrs,
		BaseObject:     hitObject,
		lastObject:     lastObject,
		lastLastObject: lastLastObject,
		DeltaTime:      (hitObject.Base.StartTime - lastObject.Base.StartTime) / clockRate,
		StartTime:      hitObject.Base.StartTime / clockRate,
		EndTime:        hitObject.Base.EndTime / clockRate,
		Angle:          math.NaN(),
		IsSlider:       hitObject.Slider != nil,
		IsSpinner:      hitObject.IsSpinner(),
	}

	obj.StrainTime = max(obj.DeltaTime, MinDeltaTime)
	obj.MinimumJumpTime = obj.StrainTime

	obj.setDistances()

	return obj
}

// CreateDifficultyObjects builds the difficulty object sequence; the first
// hit object has no predecessor and produces none.
func CreateDifficultyObjects(objects []*Object, d difficulty.Difficulty, attrs difficulty.MapAttributes) []*DifficultyObject {
	if len(objects) < 2 {
		return nil
	}

	diffObjects := make([]*DifficultyObject, 0, len(objects)-1)

	for i := 1; i < len(objects); i++ {
		var lastLast *Object
		if i > 1 {
			lastLast = objects[i-2]
		}

		diffObjects = append(diffObjects, NewDifficultyObject(objects[i], lastLast, objects[i-1], d, attrs, &diffObjects, i-1))
	}

	return diffObjects
}

func (o *DifficultyObject) Previous(backwardsIndex int) *DifficultyObject {
	index := o.Index - (backwardsIndex + 1)

	if index < 0 {
		return nil
	}

	return (*o.listOfDiffs)[index]
}

func (o *DifficultyObject) Next(forwardsIndex int) *DifficultyObject {
	index := o.Index + (forwardsIndex + 1)

	if index >= len(*o.listOfDiffs) {
		return nil
	}

	return (*o.listOfDiffs)[index]
}

func (o *DifficultyObject) setDistances() {
	if slider := o.BaseObject.Slider; slider != nil {
		// Span count is folded into travel distance with a soft power curve.
		o.TravelDistance = slider.LazyTravelDistance * math.Pow(1+float64(slider.RepeatCount-1)/2.5, 1.0/2.5)
		o.TravelTime = max(slider.LazyTravelTime/o.Attrs.ClockRate, MinDeltaTime)
	}

	if o.BaseObject.IsSpinner() || o.lastObject.IsSpinner() {
		return
	}

	scalingFactor := NormalizedRadius / o.Attrs.Radius

	if o.Attrs.Radius < CircleSizeBuffThreshold {
		smallCircleBonus := min(CircleSizeBuffThreshold-o.Attrs.Radius, 5.0) / 50.0
		scalingFactor *= 1.0 + smallCircleBonus
	}

	lastCursorPosition := o.lastObject.EndCursorPosition()

	o.LazyJumpDistance = o.BaseObject.Base.Pos.Sub(lastCursorPosition).Len() * scalingFactor
	o.MinimumJumpDistance = o.LazyJumpDistance

	if lastSlider := o.lastObject.Slider; lastSlider != nil {
		lastTravelTime := max(lastSlider.LazyTravelTime/o.Attrs.ClockRate, MinDeltaTime)
		o.MinimumJumpTime = max(o.StrainTime-lastTravelTime, MinDeltaTime)

		// Players either cut the slider short to jump to the next object
		// or follow it to its visual end; assume whichever movement is
		// shorter.
		tailJumpDistance := lastSlider.PositionAt(lastSlider.EndTimeLazer).Sub(o.BaseObject.Base.Pos).Len() * scalingFactor
		o.MinimumJumpDistance = max(0, min(o.LazyJumpDistance-(maximumSliderRadius-assumedSliderRadius), tailJumpDistance-maximumSliderRadius))
	}

	if o.lastLastObject != nil && !o.lastLastObject.IsSpinner() {
		lastLastCursorPosition := o.lastLastObject.EndCursorPosition()

		v1 := lastLastCursorPosition.Sub(o.lastObject.Base.Pos)
		v2 := o.BaseObject.Base.Pos.Sub(lastCursorPosition)

		dot := v1.Dot(v2)
		det := v1.X()*v2.Y() - v1.Y()*v2.X()

		o.Angle = math.Abs(math.Atan2(det, dot))
	}
}
