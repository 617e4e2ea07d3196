package preprocessing

import (
	"math"
	"sort"

	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/util/mutils"
)

const playfieldWidth = 512.0

// Object is one mania note or hold, pinned to a column.
type Object struct {
	Column    int
	StartTime float64
	EndTime   float64
	IsHold    bool
}

// KeyCount derives the column count of a chart. Native charts encode it in
// the circle size; converts pick a count from the note density mix the way
// the game's converter does.
func KeyCount(b *beatmap.Beatmap) int {
	if b.Mode == beatmap.ModeMania {
		return max(1, int(math.Round(b.CS)))
	}

	total := len(b.HitObjects)
	if total == 0 {
		return 4
	}

	sliderOrSpinner := 0
	for i := range b.HitObjects {
		if b.HitObjects[i].Kind != beatmap.KindCircle {
			sliderOrSpinner++
		}
	}

	percent := float64(sliderOrSpinner) / float64(total)
	roundedCS := int(math.Round(b.CS))
	roundedOD := int(math.Round(b.OD))

	switch {
	case percent < 0.2:
		return 7
	case percent < 0.3 || roundedCS >= 5:
		if roundedOD > 5 {
			return 7
		}

		return 6
	case percent > 0.6:
		if roundedOD > 4 {
			return 5
		}

		return 4
	default:
		return mutils.Clamp(roundedOD+1, 4, 7)
	}
}

// CreateObjects converts a chart into column-pinned objects, time-ordered.
// Converted charts derive the column from the horizontal position; duration
// objects become holds.
func CreateObjects(b *beatmap.Beatmap) (objects []*Object, keyCount int, isConvert bool) {
	isConvert = b.Mode == beatmap.ModeOsu
	keyCount = KeyCount(b)

	columnWidth := playfieldWidth / float64(keyCount)

	for i := range b.HitObjects {
		h := &b.HitObjects[i]

		column := mutils.Clamp(int(h.Pos.X()/columnWidth), 0, keyCount-1)

		endTime := h.StartTime
		isHold := false

		if h.EndTime > h.StartTime && h.Kind != beatmap.KindCircle {
			endTime = h.EndTime
			isHold = true
		}

		objects = append(objects, &Object{
			Column:    column,
			StartTime: h.StartTime,
			EndTime:   endTime,
			IsHold:    isHold,
		})
	}

	sort.SliceStable(objects, func(i, j int) bool {
		return objects[i].StartTime < objects[j].StartTime
	})

	return objects, keyCount, isConvert
}

// DifficultyObject links a note to its predecessor in map order. Times are
// clock-rate adjusted.
type DifficultyObject struct {
	Base *Object

	Index     int
	DeltaTime float64
	StartTime float64
	EndTime   float64
}

// CreateDifficultyObjects pairs up consecutive notes across all columns. The
// first note has no predecessor and is skipped.
func CreateDifficultyObjects(objects []*Object, d difficulty.Difficulty) []*DifficultyObject {
	clockRate := d.ClockRate()

	diffObjects := make([]*DifficultyObject, 0, max(0, len(objects)-1))

	for i := 1; i < len(objects); i++ {
		current, last := objects[i], objects[i-1]

		diffObjects = append(diffObjects, &DifficultyObject{
			Base:      current,
			Index:     i - 1,
			DeltaTime: (current.StartTime - last.StartTime) / clockRate,
			StartTime: current.StartTime / clockRate,
			EndTime:   current.EndTime / clockRate,
		})
	}

	return diffObjects
}
