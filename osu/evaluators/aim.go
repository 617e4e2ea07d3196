package evaluators

import (
	"math"

	"github.com/osukit/rating-go/osu/preprocessing"
)

const (
	aimAngleBonusBegin = math.Pi / 3
	aimTimingThreshold = 107.0
	aimAngleBonusScale = 90.0
)

// EvaluateAim rates the difficulty of moving to the current object,
// combining jump and travel distance with an angle bonus.
func EvaluateAim(current *preprocessing.DifficultyObject, withSliders bool) float64 {
	if current.IsSpinner {
		return 0
	}

	result := 0.0

	if prev := current.Previous(0); prev != nil {
		if angle := current.Angle; !math.IsNaN(angle) && angle > aimAngleBonusBegin {
			angleBonus := math.Sqrt(
				math.Pow(math.Sin(angle-aimAngleBonusBegin), 2) *
					math.Max(prev.LazyJumpDistance-aimAngleBonusScale, 0) *
					math.Max(current.LazyJumpDistance-aimAngleBonusScale, 0))

			result = 1.5 * applyDiminishingExp(math.Max(angleBonus, 0)) / math.Max(aimTimingThreshold, prev.StrainTime)
		}
	}

	travelDistance := 0.0
	if withSliders {
		travelDistance = current.TravelDistance
	}

	jumpDistExp := applyDiminishingExp(current.LazyJumpDistance)
	travelDistExp := applyDiminishingExp(travelDistance)

	distExp := jumpDistExp + travelDistExp + math.Sqrt(travelDistExp*jumpDistExp)

	return math.Max(
		result+distExp/math.Max(current.StrainTime, aimTimingThreshold),
		distExp/current.StrainTime)
}

func applyDiminishingExp(val float64) float64 {
	return math.Pow(val, 0.99)
}
