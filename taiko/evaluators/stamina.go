package evaluators

import (
	"math"

	"github.com/osukit/rating-go/taiko/preprocessing"
)

func speedBonus(interval float64) float64 {
	// Cap at a very small interval to prevent infinite values.
	interval = math.Max(interval, 1)

	return 30 / interval
}

// EvaluateStamina measures hand speed. The previous object hit by the same
// key is two notes of the same colour back, assuming alternating fingers on
// mono streams.
func EvaluateStamina(current *preprocessing.DifficultyObject) float64 {
	if !current.Base.IsHit() {
		return 0
	}

	keyPrevious := current.PreviousMono(1)
	if keyPrevious == nil {
		return 0
	}

	return 0.5 + speedBonus(current.StartTime-keyPrevious.StartTime)
}
