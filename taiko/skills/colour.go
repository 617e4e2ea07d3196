package skills

import (
	"math"

	"github.com/osukit/rating-go/taiko/evaluators"
	"github.com/osukit/rating-go/taiko/preprocessing"
)

const (
	colourSkillMultiplier float64 = 0.12
	colourStrainDecayBase float64 = 0.8
)

type ColourSkill struct {
	*Skill
	CurrentStrain float64
}

func NewColourSkill() *ColourSkill {
	skill := &ColourSkill{Skill: NewSkill()}

	skill.StrainValueOf = skill.colourStrainValue
	skill.CalculateInitialStrain = skill.colourInitialStrain

	return skill
}

func (skill *ColourSkill) strainDecay(ms float64) float64 {
	return math.Pow(colourStrainDecayBase, ms/1000)
}

func (skill *ColourSkill) colourInitialStrain(time float64, current *preprocessing.DifficultyObject) float64 {
	prevStartTime := 0.0
	if prev := current.Previous(0); prev != nil {
		prevStartTime = prev.StartTime
	}

	return skill.CurrentStrain * skill.strainDecay(time-prevStartTime)
}

func (skill *ColourSkill) colourStrainValue(current *preprocessing.DifficultyObject) float64 {
	skill.CurrentStrain *= skill.strainDecay(current.DeltaTime)
	skill.CurrentStrain += evaluators.EvaluateColour(current) * colourSkillMultiplier

	return skill.CurrentStrain
}
