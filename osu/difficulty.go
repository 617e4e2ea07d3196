package osu

import (
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/osukit/rating-go/api"
	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/osu/preprocessing"
	"github.com/osukit/rating-go/osu/skills"
)

const (
	// StarScalingFactor is a global stars multiplier
	StarScalingFactor float64 = 0.0675

	// PerformanceBaseMultiplier keeps the final pp value scaled around what
	// it used to be when changing things.
	PerformanceBaseMultiplier float64 = 1.15
)

// getStarsFromRawValues converts raw skill values to attributes.
func getStarsFromRawValues(rawAim, rawAimNoSliders, rawSpeed, rawFlashlight float64, d difficulty.Difficulty, attr api.OsuDifficultyAttributes) api.OsuDifficultyAttributes {
	aimRating := math.Sqrt(rawAim) * StarScalingFactor
	aimRatingNoSliders := math.Sqrt(rawAimNoSliders) * StarScalingFactor
	speedRating := math.Sqrt(rawSpeed) * StarScalingFactor
	flashlightRating := math.Sqrt(rawFlashlight) * StarScalingFactor

	sliderFactor := 1.0
	if aimRating > 0.00001 {
		sliderFactor = aimRatingNoSliders / aimRating
	}

	if d.Mods.TD() {
		aimRating = math.Pow(aimRating, 0.8)
		flashlightRating = math.Pow(flashlightRating, 0.8)
	}

	if d.Mods.RX() {
		aimRating *= 0.9
		speedRating = 0
		flashlightRating *= 0.7
	}

	baseAimPerformance := skills.DefaultDifficultyToPerformance(aimRating)
	baseSpeedPerformance := skills.DefaultDifficultyToPerformance(speedRating)

	baseFlashlightPerformance := 0.0
	if d.Mods.FL() {
		baseFlashlightPerformance = skills.FlashlightDifficultyToPerformance(flashlightRating)
	}

	basePerformance := math.Pow(
		math.Pow(baseAimPerformance, 1.1)+
			math.Pow(baseSpeedPerformance, 1.1)+
			math.Pow(baseFlashlightPerformance, 1.1),
		1.0/1.1,
	)

	var total float64
	if basePerformance > 0.00001 {
		total = math.Cbrt(PerformanceBaseMultiplier) * 0.027 * (math.Cbrt(100000/math.Pow(2, 1/1.1)*basePerformance) + 4)
	}

	attr.Stars = total
	attr.Aim = aimRating
	attr.SliderFactor = sliderFactor
	attr.Speed = speedRating
	attr.Flashlight = flashlightRating

	return attr
}

// getStars retrieves skill values and converts them to attributes.
func getStars(proc *SkillsProcessor, d difficulty.Difficulty, attr api.OsuDifficultyAttributes) api.OsuDifficultyAttributes {
	attr = getStarsFromRawValues(
		proc.Aim.DifficultyValue(),
		proc.AimWithoutSliders.DifficultyValue(),
		proc.Speed.DifficultyValue(),
		proc.Flashlight.DifficultyValue(),
		d,
		attr,
	)

	attr.SpeedNoteCount = proc.Speed.RelevantNoteCount()
	attr.AimDifficultStrainCount = proc.Aim.CountDifficultStrains()
	attr.SpeedDifficultStrainCount = proc.Speed.CountDifficultStrains()

	return attr
}

func addObjectToAttribs(o *preprocessing.Object, attr *api.OsuDifficultyAttributes) {
	switch {
	case o.Slider != nil:
		attr.Sliders++
		attr.SliderTicks += o.Slider.TickCount
		attr.MaxCombo += o.Slider.ComboElements() - 1
	case o.Base.IsSpinner():
		attr.Spinners++
	default:
		attr.Circles++
	}

	attr.MaxCombo++
	attr.ObjectCount++
}

func mapAttrsInto(mapAttrs difficulty.MapAttributes, attr *api.OsuDifficultyAttributes) {
	attr.AR = mapAttrs.AR
	attr.OD = mapAttrs.OD
	attr.HP = mapAttrs.HP
}

// CalculateDifficulty computes the difficulty attributes of a map.
func CalculateDifficulty(b *beatmap.Beatmap, d difficulty.Difficulty) api.OsuDifficultyAttributes {
	mapAttrs := d.Resolve(b)

	objects := preprocessing.CreateObjects(b, mapAttrs, d.PassedObjects(len(b.HitObjects)))
	diffObjects := preprocessing.CreateDifficultyObjects(objects, d, mapAttrs)

	proc := NewSkillsProcessor(d, false)

	attr := api.OsuDifficultyAttributes{}
	mapAttrsInto(mapAttrs, &attr)

	if len(objects) == 0 {
		return attr
	}

	addObjectToAttribs(objects[0], &attr)

	// A single object has no predecessor, hence no strain and no stars.
	if len(diffObjects) == 0 {
		return attr
	}

	for i, o := range diffObjects {
		addObjectToAttribs(objects[i+1], &attr)

		proc.Process(o)
	}

	return getStars(proc, d, attr)
}

// CalculateStep computes successive attributes for every prefix of a map.
func CalculateStep(b *beatmap.Beatmap, d difficulty.Difficulty) []api.OsuDifficultyAttributes {
	log.Info("Calculating step SR", "mods", d.Mods.String())

	startTime := time.Now()

	mapAttrs := d.Resolve(b)

	objects := preprocessing.CreateObjects(b, mapAttrs, d.PassedObjects(len(b.HitObjects)))
	diffObjects := preprocessing.CreateDifficultyObjects(objects, d, mapAttrs)

	proc := NewSkillsProcessor(d, true)

	if len(objects) == 0 {
		return nil
	}

	stars := make([]api.OsuDifficultyAttributes, 1, len(objects))
	mapAttrsInto(mapAttrs, &stars[0])

	addObjectToAttribs(objects[0], &stars[0])

	for i, o := range diffObjects {
		attr := stars[i]
		addObjectToAttribs(objects[i+1], &attr)

		proc.Process(o)

		stars = append(stars, getStars(proc, d, attr))
	}

	log.Info("Calculations finished!", "took", time.Since(startTime).Truncate(time.Millisecond))

	return stars
}

// CalculateStrainPeaks exports the chronological section peak curves of
// every skill.
func CalculateStrainPeaks(b *beatmap.Beatmap, d difficulty.Difficulty) api.StrainPeaks {
	mapAttrs := d.Resolve(b)

	objects := preprocessing.CreateObjects(b, mapAttrs, d.PassedObjects(len(b.HitObjects)))
	diffObjects := preprocessing.CreateDifficultyObjects(objects, d, mapAttrs)

	proc := NewSkillsProcessor(d, false)

	for _, o := range diffObjects {
		proc.Process(o)
	}

	peaks := api.StrainPeaks{
		Aim:        proc.Aim.GetCurrentStrainPeaks(),
		Speed:      proc.Speed.GetCurrentStrainPeaks(),
		Flashlight: proc.Flashlight.GetCurrentStrainPeaks(),
	}

	peaks.Total = make([]float64, len(peaks.Aim))

	for i := 0; i < len(peaks.Aim); i++ {
		stars := getStarsFromRawValues(peaks.Aim[i], peaks.Aim[i], peaks.Speed[i], peaks.Flashlight[i], d, api.OsuDifficultyAttributes{})
		peaks.Total[i] = stars.Stars
	}

	return peaks
}
