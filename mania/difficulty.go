package mania

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/osukit/rating-go/api"
	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/mania/preprocessing"
	"github.com/osukit/rating-go/mania/skills"
)

// StarScalingFactor is a global stars multiplier
const StarScalingFactor float64 = 0.018

func getStars(skill *skills.StrainSkill, attr api.ManiaDifficultyAttributes) api.ManiaDifficultyAttributes {
	attr.Stars = skill.DifficultyValue() * StarScalingFactor

	return attr
}

func addObjectToAttribs(o *preprocessing.Object, attr *api.ManiaDifficultyAttributes) {
	attr.ObjectCount++
	attr.MaxCombo++

	if o.IsHold {
		attr.HoldCount++
		// Holds tick combo every 100ms while held.
		attr.MaxCombo += int((o.EndTime - o.StartTime) / 100)
	}
}

// CalculateDifficulty computes the difficulty attributes of a chart,
// converting from Standard when needed.
func CalculateDifficulty(b *beatmap.Beatmap, d difficulty.Difficulty) api.ManiaDifficultyAttributes {
	objects, keyCount, isConvert := preprocessing.CreateObjects(b)
	objects = objects[:d.PassedObjects(len(objects))]

	diffObjects := preprocessing.CreateDifficultyObjects(objects, d)

	skill := skills.NewStrainSkill(keyCount)

	attr := api.ManiaDifficultyAttributes{IsConvert: isConvert}

	for _, o := range objects {
		addObjectToAttribs(o, &attr)
	}

	// A single note has no predecessor, hence no strain and no stars.
	if len(diffObjects) == 0 {
		return attr
	}

	for _, o := range diffObjects {
		skill.Process(o)
	}

	return getStars(skill, attr)
}

// CalculateStep computes successive attributes for every prefix of a chart.
func CalculateStep(b *beatmap.Beatmap, d difficulty.Difficulty) []api.ManiaDifficultyAttributes {
	log.Info("Calculating step SR (mania)", "mods", d.Mods.String())

	startTime := time.Now()

	objects, keyCount, isConvert := preprocessing.CreateObjects(b)
	objects = objects[:d.PassedObjects(len(objects))]

	diffObjects := preprocessing.CreateDifficultyObjects(objects, d)

	skill := skills.NewStrainSkill(keyCount)

	if len(objects) == 0 {
		return nil
	}

	stars := make([]api.ManiaDifficultyAttributes, 1, len(objects))
	stars[0].IsConvert = isConvert

	addObjectToAttribs(objects[0], &stars[0])

	for i, o := range diffObjects {
		attr := stars[i]
		addObjectToAttribs(objects[i+1], &attr)

		skill.Process(o)

		stars = append(stars, getStars(skill, attr))
	}

	log.Info("Calculations finished!", "took", time.Since(startTime).Truncate(time.Millisecond))

	return stars
}

// CalculateStrainPeaks exports the chronological section peak curve of the
// strain skill.
func CalculateStrainPeaks(b *beatmap.Beatmap, d difficulty.Difficulty) api.StrainPeaks {
	objects, keyCount, _ := preprocessing.CreateObjects(b)
	objects = objects[:d.PassedObjects(len(objects))]

	diffObjects := preprocessing.CreateDifficultyObjects(objects, d)

	skill := skills.NewStrainSkill(keyCount)

	for _, o := range diffObjects {
		skill.Process(o)
	}

	peaks := api.StrainPeaks{Strain: skill.GetCurrentStrainPeaks()}

	peaks.Total = make([]float64, len(peaks.Strain))

	for i, s := range peaks.Strain {
		peaks.Total[i] = s * StarScalingFactor
	}

	return peaks
}
