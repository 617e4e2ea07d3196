package skills

import (
	"math"

	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/osu/evaluators"
	"github.com/osukit/rating-go/osu/preprocessing"
)

const (
	aimSkillMultiplier float64 = 26.25
	aimStrainDecayBase float64 = 0.15
)

type AimSkill struct {
	*Skill
	withSliders   bool
	CurrentStrain float64
}

func NewAimSkill(d difficulty.Difficulty, withSliders, stepCalc bool) *AimSkill {
	skill := &AimSkill{Skill: NewSkill(d, stepCalc), withSliders: withSliders}

	skill.StrainValueOf = skill.aimStrainValue
	skill.CalculateInitialStrain = skill.aimInitialStrain

	return skill
}

func (skill *AimSkill) strainDecay(ms float64) float64 {
	return math.Pow(aimStrainDecayBase, ms/1000)
}

func (skill *AimSkill) aimInitialStrain(time float64, current *preprocessing.DifficultyObject) float64 {
	prevStartTime := 0.0
	if prev := current.Previous(0); prev != nil {
		prevStartTime = prev.StartTime
	}

	return skill.CurrentStrain * skill.strainDecay(time-prevStartTime)
}

func (skill *AimSkill) aimStrainValue(current *preprocessing.DifficultyObject) float64 {
	skill.CurrentStrain *= skill.strainDecay(current.DeltaTime)
	skill.CurrentStrain += evaluators.EvaluateAim(current, skill.withSliders) * aimSkillMultiplier

	skill.objectStrains = append(skill.objectStrains, skill.CurrentStrain)

	return skill.CurrentStrain
}
