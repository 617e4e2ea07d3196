package evaluators

import (
	"math"

	"github.com/osukit/rating-go/taiko/preprocessing"
)

// sigmoid is centered and scaled: the result grows from middle-height/2 to
// middle+height/2 as val crosses center over the given width.
func sigmoid(val, center, width, middle, height float64) float64 {
	s := math.Tanh(math.E * -(val - center) / width)

	return s*(height/2) + middle
}

func evaluateMonoStreak(streak *preprocessing.MonoStreak) float64 {
	return sigmoid(float64(streak.Index), 2, 2, 0.5, 1) * evaluateAlternatingPattern(streak.Parent) * 0.5
}

func evaluateAlternatingPattern(pattern *preprocessing.AlternatingMonoPattern) float64 {
	return sigmoid(float64(pattern.Index), 2, 2, 0.5, 1) * evaluateRepeatingPattern(pattern.Parent)
}

func evaluateRepeatingPattern(pattern *preprocessing.RepeatingHitPatterns) float64 {
	return 2 * (1 - sigmoid(float64(pattern.RepetitionInterval), 2, 2, 0.5, 1))
}

// EvaluateColour rewards colour changes: an object scores for every colour
// structure it opens, discounted by how repetitive the surrounding pattern
// is.
func EvaluateColour(current *preprocessing.DifficultyObject) float64 {
	difficulty := 0.0

	if current.Colour.MonoStreak != nil {
		difficulty += evaluateMonoStreak(current.Colour.MonoStreak)
	}

	if current.Colour.AlternatingPattern != nil {
		difficulty += evaluateAlternatingPattern(current.Colour.AlternatingPattern)
	}

	if current.Colour.RepeatingHitPattern != nil {
		difficulty += evaluateRepeatingPattern(current.Colour.RepeatingHitPattern)
	}

	return difficulty
}
