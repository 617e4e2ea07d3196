package osu

import (
	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/osu/preprocessing"
	"github.com/osukit/rating-go/osu/skills"
)

// SkillsProcessor feeds every difficulty object to all active skills.
type SkillsProcessor struct {
	Aim               *skills.AimSkill
	AimWithoutSliders *skills.AimSkill
	Speed             *skills.SpeedSkill
	Flashlight        *skills.FlashlightSkill
}

func NewSkillsProcessor(d difficulty.Difficulty, stepCalc bool) *SkillsProcessor {
	return &SkillsProcessor{
		Aim:               skills.NewAimSkill(d, true, stepCalc),
		AimWithoutSliders: skills.NewAimSkill(d, false, stepCalc),
		Speed:             skills.NewSpeedSkill(d, stepCalc),
		Flashlight:        skills.NewFlashlightSkill(d, stepCalc),
	}
}

func (proc *SkillsProcessor) Process(obj *preprocessing.DifficultyObject) {
	proc.Aim.Process(obj)
	proc.AimWithoutSliders.Process(obj)
	proc.Speed.Process(obj)
	proc.Flashlight.Process(obj)
}
