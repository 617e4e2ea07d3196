package evaluators

import (
	"math"

	"github.com/osukit/rating-go/osu/preprocessing"
)

const (
	flashlightMaxHistory    = 10
	flashlightScalingBase   = 52.0
	flashlightMinDistance   = 75.0
	flashlightRepeatPenalty = 0.8
)

// EvaluateFlashlight rates how hard the current object is to find with a
// restricted view, based on the distances to recently visible objects.
func EvaluateFlashlight(current *preprocessing.DifficultyObject, hidden bool) float64 {
	if current.IsSpinner {
		return 0
	}

	scalingFactor := flashlightScalingBase / current.Attrs.Radius

	smallDistNerf := 1.0
	cumulativeStrainTime := 0.0
	result := 0.0

	last := current

	for i := 0; i < min(current.Index, flashlightMaxHistory); i++ {
		currentObj := current.Previous(i)

		cumulativeStrainTime += last.StrainTime

		if !currentObj.IsSpinner {
			jumpDistance := current.BaseObject.Base.Pos.Sub(currentObj.BaseObject.EndCursorPosition()).Len() * scalingFactor

			if i == 0 {
				smallDistNerf = math.Min(1.0, jumpDistance/flashlightMinDistance)
			}

			// Objects further back in time matter less.
			stackNerf := math.Min(1.0, (currentObj.LazyJumpDistance/scalingFactor)/25.0)

			result += stackNerf * jumpDistance / cumulativeStrainTime
		}

		last = currentObj
	}

	result = math.Pow(smallDistNerf*result, 2)

	if hidden {
		result *= 1.0 + 0.2
	}

	// Sliders force extra tracking under the beam.
	if current.IsSlider {
		pixelTravelDistance := current.TravelDistance / scalingFactor
		sliderBonus := math.Pow(math.Max(0, pixelTravelDistance/current.TravelTime-0.5), 0.5)
		sliderBonus *= pixelTravelDistance

		if repeats := current.BaseObject.Slider.RepeatCount - 1; repeats > 0 {
			sliderBonus /= float64(repeats) / flashlightRepeatPenalty
		}

		result += sliderBonus * 1.3
	}

	return result
}
