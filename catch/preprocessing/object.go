package preprocessing

import "math"

// NormalizedHitObjectRadius is the radius difficulty math works in after
// dividing out the catcher width.
const NormalizedHitObjectRadius = 41.0

// DifficultyObject carries one fruit or droplet, its predecessor and the
// plate-normalized positions the movement skill works with.
type DifficultyObject struct {
	Base       *Object
	LastObject *Object

	StartTime  float64
	DeltaTime  float64
	StrainTime float64

	NormalizedPosition     float64
	LastNormalizedPosition float64
}

// CreateDifficultyObjects pairs up consecutive palpable objects. Tiny
// droplets are caught incidentally and never strain the player, so they are
// left out.
func CreateDifficultyObjects(objects []*Object, halfCatcherWidth, clockRate float64) []*DifficultyObject {
	scalingFactor := NormalizedHitObjectRadius / halfCatcherWidth

	var palpable []*Object

	for _, o := range objects {
		if o.IsPalpable() {
			palpable = append(palpable, o)
		}
	}

	diffObjects := make([]*DifficultyObject, 0, max(0, len(palpable)-1))

	for i := 1; i < len(palpable); i++ {
		current, last := palpable[i], palpable[i-1]

		diffObjects = append(diffObjects, &DifficultyObject{
			Base:                   current,
			LastObject:             last,
			StartTime:              current.StartTime / clockRate,
			DeltaTime:              (current.StartTime - last.StartTime) / clockRate,
			StrainTime:             math.Max(40, (current.StartTime-last.StartTime)/clockRate),
			NormalizedPosition:     current.X * scalingFactor,
			LastNormalizedPosition: last.X * scalingFactor,
		})
	}

	return diffObjects
}
