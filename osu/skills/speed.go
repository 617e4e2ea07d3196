package skills

import (
	"math"

	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/osu/evaluators"
	"github.com/osukit/rating-go/osu/preprocessing"
)

const (
	speedSkillMultiplier float64 = 1400
	speedStrainDecayBase float64 = 0.3
)

type SpeedSkill struct {
	*Skill
	CurrentStrain float64
}

func NewSpeedSkill(d difficulty.Difficulty, stepCalc bool) *SpeedSkill {
	skill := &SpeedSkill{Skill: NewSkill(d, stepCalc)}

	skill.StrainValueOf = skill.speedStrainValue
	skill.CalculateInitialStrain = skill.speedInitialStrain

	return skill
}

func (skill *SpeedSkill) strainDecay(ms float64) float64 {
	return math.Pow(speedStrainDecayBase, ms/1000)
}

func (skill *SpeedSkill) speedInitialStrain(time float64, current *preprocessing.DifficultyObject) float64 {
	prevStartTime := 0.0
	if prev := current.Previous(0); prev != nil {
		prevStartTime = prev.StartTime
	}

	return skill.CurrentStrain * skill.strainDecay(time-prevStartTime)
}

func (skill *SpeedSkill) speedStrainValue(current *preprocessing.DifficultyObject) float64 {
	skill.CurrentStrain *= skill.strainDecay(current.StrainTime)
	skill.CurrentStrain += evaluators.EvaluateSpeed(current) * speedSkillMultiplier

	skill.objectStrains = append(skill.objectStrains, skill.CurrentStrain)

	return skill.CurrentStrain
}
