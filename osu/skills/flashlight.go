package skills

import (
	"math"

	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/mods"
	"github.com/osukit/rating-go/osu/evaluators"
	"github.com/osukit/rating-go/osu/preprocessing"
)

const (
	flashlightSkillMultiplier float64 = 0.052
	flashlightStrainDecayBase float64 = 0.15
)

type FlashlightSkill struct {
	*Skill
	hidden        bool
	CurrentStrain float64
}

func NewFlashlightSkill(d difficulty.Difficulty, stepCalc bool) *FlashlightSkill {
	skill := &FlashlightSkill{Skill: NewSkill(d, stepCalc), hidden: d.Mods.HD()}

	// Flashlight rewards every section evenly, no early down-weighting.
	skill.ReducedSectionCount = 0
	skill.ReducedStrainBaseline = 1.0

	skill.StrainValueOf = skill.flashlightStrainValue
	skill.CalculateInitialStrain = skill.flashlightInitialStrain

	return skill
}

func NewFlashlightSkillIfActive(d difficulty.Difficulty, stepCalc bool) *FlashlightSkill {
	if !d.Mods.Active(mods.Flashlight) {
		return nil
	}

	return NewFlashlightSkill(d, stepCalc)
}

func (skill *FlashlightSkill) strainDecay(ms float64) float64 {
	return math.Pow(flashlightStrainDecayBase, ms/1000)
}

func (skill *FlashlightSkill) flashlightInitialStrain(time float64, current *preprocessing.DifficultyObject) float64 {
	prevStartTime := 0.0
	if prev := current.Previous(0); prev != nil {
		prevStartTime = prev.StartTime
	}

	return skill.CurrentStrain * skill.strainDecay(time-prevStartTime)
}

func (skill *FlashlightSkill) flashlightStrainValue(current *preprocessing.DifficultyObject) float64 {
	skill.CurrentStrain *= skill.strainDecay(current.DeltaTime)
	skill.CurrentStrain += evaluators.EvaluateFlashlight(current, skill.hidden) * flashlightSkillMultiplier

	skill.objectStrains = append(skill.objectStrains, skill.CurrentStrain)

	return skill.CurrentStrain
}

// FlashlightDifficultyToPerformance converts flashlight stars into a raw pp
// component.
func FlashlightDifficultyToPerformance(difficulty float64) float64 {
	return 25 * difficulty * difficulty
}

// DefaultDifficultyToPerformance converts aim or speed stars into a raw pp
// component.
func DefaultDifficultyToPerformance(difficulty float64) float64 {
	return math.Pow(5*math.Max(1, difficulty/0.0675)-4, 3) / 100000
}
