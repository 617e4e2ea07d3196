package relax

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
	PerformanceBaseMultiplier float64 = 1.09
)

// skillset is the legacy two-skill pipeline. Flashlight never contributed
// to the 2019 rating, so only aim and speed run.
type skillset struct {
	Aim   *skills.AimSkill
	Speed *skills.SpeedSkill
}

func newSkillset(d difficulty.Difficulty, stepCalc bool) *skillset {
	return &skillset{
		Aim:   skills.NewAimSkill(d, true, stepCalc),
		Speed: skills.NewSpeedSkill(d, stepCalc),
	}
}

func (set *skillset) Process(obj *preprocessing.DifficultyObject) {
	set.Aim.Process(obj)
	set.Speed.Process(obj)
}

// getStarsFromRawValues converts raw skill values to attributes. The legacy
// total favors the dominant skill instead of going through a pp basis.
func getStarsFromRawValues(rawAim, rawSpeed float64, attr api.RelaxDifficultyAttributes) api.RelaxDifficultyAttributes {
	aimRating := math.Sqrt(rawAim) * StarScalingFactor
	speedRating := math.Sqrt(rawSpeed) * StarScalingFactor

	attr.Aim = aimRating
	attr.Speed = speedRating
	attr.Stars = aimRating + speedRating + math.Abs(aimRating-speedRating)/2

	return attr
}

func getStars(set *skillset, attr api.RelaxDifficultyAttributes) api.RelaxDifficultyAttributes {
	attr = getStarsFromRawValues(set.Aim.DifficultyValue(), set.Speed.DifficultyValue(), attr)

	attr.AimDifficultStrainCount = set.Aim.CountDifficultStrains()
	attr.SpeedDifficultStrainCount = set.Speed.CountDifficultStrains()

	return attr
}

func addObjectToAttribs(o *preprocessing.Object, attr *api.RelaxDifficultyAttributes) {
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

func mapAttrsInto(b *beatmap.Beatmap, mapAttrs difficulty.MapAttributes, attr *api.RelaxDifficultyAttributes) {
	attr.AR = mapAttrs.AR
	attr.OD = mapAttrs.OD
	attr.HP = mapAttrs.HP

	attr.BeatmapID = b.ID
	attr.BeatmapCreator = b.Creator
}

// CalculateDifficulty computes the legacy difficulty attributes of a map.
func CalculateDifficulty(b *beatmap.Beatmap, d difficulty.Difficulty) api.RelaxDifficultyAttributes {
	mapAttrs := d.Resolve(b)

	objects := preprocessing.CreateObjects(b, mapAttrs, d.PassedObjects(len(b.HitObjects)))
	diffObjects := preprocessing.CreateDifficultyObjects(objects, d, mapAttrs)

	set := newSkillset(d, false)

	attr := api.RelaxDifficultyAttributes{}
	mapAttrsInto(b, mapAttrs, &attr)

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

		set.Process(o)
	}

	return getStars(set, attr)
}

// CalculateStep computes successive attributes for every prefix of a map.
func CalculateStep(b *beatmap.Beatmap, d difficulty.Difficulty) []api.RelaxDifficultyAttributes {
	log.Info("Calculating step SR (legacy)", "mods", d.Mods.String())

	startTime := time.Now()

	mapAttrs := d.Resolve(b)

	objects := preprocessing.CreateObjects(b, mapAttrs, d.PassedObjects(len(b.HitObjects)))
	diffObjects := preprocessing.CreateDifficultyObjects(objects, d, mapAttrs)

	set := newSkillset(d, true)

	if len(objects) == 0 {
		return nil
	}

	stars := make([]api.RelaxDifficultyAttributes, 1, len(objects))
	mapAttrsInto(b, mapAttrs, &stars[0])

	addObjectToAttribs(objects[0], &stars[0])

	for i, o := range diffObjects {
		attr := stars[i]
		addObjectToAttribs(objects[i+1], &attr)

		set.Process(o)

		stars = append(stars, getStars(set, attr))
	}

	log.Info("Calculations finished!", "took", time.Since(startTime).Truncate(time.Millisecond))

	return stars
}

// CalculateStrainPeaks exports the chronological section peak curves of the
// two legacy skills.
func CalculateStrainPeaks(b *beatmap.Beatmap, d difficulty.Difficulty) api.StrainPeaks {
	mapAttrs := d.Resolve(b)

	objects := preprocessing.CreateObjects(b, mapAttrs, d.PassedObjects(len(b.HitObjects)))
	diffObjects := preprocessing.CreateDifficultyObjects(objects, d, mapAttrs)

	set := newSkillset(d, false)

	for _, o := range diffObjects {
		set.Process(o)
	}

	peaks := api.StrainPeaks{
		Aim:   set.Aim.GetCurrentStrainPeaks(),
		Speed: set.Speed.GetCurrentStrainPeaks(),
	}

	peaks.Total = make([]float64, len(peaks.Aim))

	for i := 0; i < len(peaks.Aim); i++ {
		stars := getStarsFromRawValues(peaks.Aim[i], peaks.Speed[i], api.RelaxDifficultyAttributes{})
		peaks.Total[i] = stars.Stars
	}

	return peaks
}
