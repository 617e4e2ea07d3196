package skills

import (
	"math"

	"github.com/osukit/rating-go/taiko/evaluators"
	"github.com/osukit/rating-go/taiko/preprocessing"
)

const (
	staminaSkillMultiplier float64 = 1.1
	staminaStrainDecayBase float64 = 0.4
)

type StaminaSkill struct {
	*Skill
	CurrentStrain float64
}

func NewStaminaSkill() *StaminaSkill {
	skill := &StaminaSkill{Skill: NewSkill()}

	skill.StrainValueOf = skill.staminaStrainValue
	skill.CalculateInitialStrain = skill.staminaInitialStrain

	return skill
}

func (skill *StaminaSkill) strainDecay(ms float64) float64 {
	return math.Pow(staminaStrainDecayBase, ms/1000)
}

func (skill *StaminaSkill) staminaInitialStrain(time float64, current *preprocessing.DifficultyObject) float64 {
	prevStartTime := 0.0
	if prev := current.Previous(0); prev != nil {
		prevStartTime = prev.StartTime
	}

	return skill.CurrentStrain * skill.strainDecay(time-prevStartTime)
}

func (skill *StaminaSkill) staminaStrainValue(current *preprocessing.DifficultyObject) float64 {
	skill.CurrentStrain *= skill.strainDecay(current.DeltaTime)
	skill.CurrentStrain += evaluators.EvaluateStamina(current) * staminaSkillMultiplier

	return skill.CurrentStrain
}
