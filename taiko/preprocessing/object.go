package preprocessing

import (
	"math"

	"github.com/osukit/rating-go/difficulty"
)

// HitRhythm is one entry of the closed rhythm-change table. Objects share
// pointers into the table, so pattern comparison is pointer equality.
type HitRhythm struct {
	Ratio      float64
	Difficulty float64
}

// The set of rhythm ratios the rhythm skill can reward, with hand-tuned
// difficulty for each transition.
var commonRhythms = [...]HitRhythm{
	{Ratio: 1.0 / 1.0, Difficulty: 0.0},
	{Ratio: 2.0 / 1.0, Difficulty: 0.3},
	{Ratio: 1.0 / 2.0, Difficulty: 0.5},
	{Ratio: 3.0 / 1.0, Difficulty: 0.3},
	{Ratio: 1.0 / 3.0, Difficulty: 0.35},
	{Ratio: 3.0 / 2.0, Difficulty: 0.6},
	{Ratio: 2.0 / 3.0, Difficulty: 0.4},
	{Ratio: 5.0 / 4.0, Difficulty: 0.5},
	{Ratio: 4.0 / 5.0, Difficulty: 0.7},
}

func closestRhythm(deltaTime, lastDelta float64) *HitRhythm {
	ratio := deltaTime / lastDelta

	best := &commonRhythms[0]
	bestDist := math.Abs(ratio - best.Ratio)

	for i := 1; i < len(commonRhythms); i++ {
		if dist := math.Abs(ratio - commonRhythms[i].Ratio); dist < bestDist {
			best = &commonRhythms[i]
			bestDist = dist
		}
	}

	return best
}

// ColourData carries the colour-encoding nodes an object is the head of.
// Only the first object of each structure holds a non-nil pointer.
type ColourData struct {
	MonoStreak          *MonoStreak
	AlternatingPattern  *AlternatingMonoPattern
	RepeatingHitPattern *RepeatingHitPatterns
}

// DifficultyObject links a taiko object to its two predecessors and the
// rhythm and colour context the skills evaluate.
type DifficultyObject struct {
	list *ObjectList

	Index     int
	Base      *Object
	DeltaTime float64
	StartTime float64

	Rhythm *HitRhythm
	Colour ColourData

	// MonoIndex and NoteIndex address the same-colour and all-hits lists;
	// -1 for non-hits.
	MonoIndex int
	NoteIndex int
}

// ObjectList owns the difficulty objects plus the per-colour and all-note
// views the stamina and colour skills look back through.
type ObjectList struct {
	Objects []*DifficultyObject

	centreHits []*DifficultyObject
	rimHits    []*DifficultyObject
	notes      []*DifficultyObject
}

// CreateDifficultyObjects builds the difficulty-object graph. The first two
// objects have no entry since rhythm needs the previous delta time.
func CreateDifficultyObjects(objects []*Object, d difficulty.Difficulty) *ObjectList {
	list := &ObjectList{}

	if len(objects) < 3 {
		encodeColours(list)
		return list
	}

	clockRate := d.ClockRate()

	list.Objects = make([]*DifficultyObject, 0, len(objects)-2)

	for i := 2; i < len(objects); i++ {
		current, last, lastLast := objects[i], objects[i-1], objects[i-2]

		obj := &DifficultyObject{
			list:      list,
			Index:     i - 2,
			Base:      current,
			DeltaTime: (current.StartTime - last.StartTime) / clockRate,
			StartTime: current.StartTime / clockRate,
			Rhythm:    closestRhythm((current.StartTime-last.StartTime)/clockRate, (last.StartTime-lastLast.StartTime)/clockRate),
			MonoIndex: -1,
			NoteIndex: -1,
		}

		if current.IsHit() {
			obj.NoteIndex = len(list.notes)
			list.notes = append(list.notes, obj)

			if current.Rim {
				obj.MonoIndex = len(list.rimHits)
				list.rimHits = append(list.rimHits, obj)
			} else {
				obj.MonoIndex = len(list.centreHits)
				list.centreHits = append(list.centreHits, obj)
			}
		}

		list.Objects = append(list.Objects, obj)
	}

	encodeColours(list)

	return list
}

func (o *DifficultyObject) Previous(backwardsIndex int) *DifficultyObject {
	idx := o.Index - (backwardsIndex + 1)
	if idx < 0 {
		return nil
	}

	return o.list.Objects[idx]
}

// PreviousNote walks back through hit objects only.
func (o *DifficultyObject) PreviousNote(backwardsIndex int) *DifficultyObject {
	idx := o.NoteIndex - (backwardsIndex + 1)
	if idx < 0 || o.NoteIndex < 0 {
		return nil
	}

	return o.list.notes[idx]
}

// PreviousMono walks back through hits of the same colour. One step back is
// the note played by the other hand on an alternating mono stream.
func (o *DifficultyObject) PreviousMono(backwardsIndex int) *DifficultyObject {
	if o.MonoIndex < 0 {
		return nil
	}

	idx := o.MonoIndex - (backwardsIndex + 1)
	if idx < 0 {
		return nil
	}

	if o.Base.Rim {
		return o.list.rimHits[idx]
	}

	return o.list.centreHits[idx]
}
