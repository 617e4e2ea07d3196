package evaluators

import (
	"math"

	"github.com/osukit/rating-go/osu/preprocessing"
)

const (
	singleSpacingThreshold = 125.0
	speedAngleBonusBegin   = 5 * math.Pi / 6
	minSpeedBonus          = 75.0
	maxSpeedBonus          = 45.0
	speedBalancingFactor   = 40.0
)

// EvaluateSpeed rates the difficulty of pressing the current object in time,
// capping the distance contribution and rewarding short delta times.
func EvaluateSpeed(current *preprocessing.DifficultyObject) float64 {
	if current.IsSpinner {
		return 0
	}

	dist := math.Min(singleSpacingThreshold, current.TravelDistance+current.LazyJumpDistance)
	deltaTime := math.Max(maxSpeedBonus, current.DeltaTime)

	speedBonus := 1.0

	if deltaTime < minSpeedBonus {
		expBase := (minSpeedBonus - deltaTime) / speedBalancingFactor
		speedBonus += expBase * expBase
	}

	angleBonus := 1.0

	if angle := current.Angle; !math.IsNaN(angle) && angle < speedAngleBonusBegin {
		expBase := math.Sin(1.5 * (speedAngleBonusBegin - angle))
		angleBonus = 1.0 + expBase*expBase/3.57

		if angle < math.Pi/2 {
			angleBonus = 1.28

			if dist < 90 && angle < math.Pi/4 {
				angleBonus += (1.0 - angleBonus) * math.Min((90-dist)/10, 1)
			} else if dist < 90 {
				angleBonus += (1.0 - angleBonus) * math.Min((90-dist)/10, 1) * math.Sin((math.Pi/2-angle)/(math.Pi/4))
			}
		}
	}

	return (1.0 + (speedBonus-1.0)*0.75) * angleBonus *
		(0.95 + speedBonus*math.Pow(dist/singleSpacingThreshold, 3.5)) /
		current.StrainTime
}
