package taiko

import (
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/osukit/rating-go/api"
	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/taiko/preprocessing"
	"github.com/osukit/rating-go/taiko/skills"
)

const (
	difficultyMultiplier float64 = 1.35

	// The skill weights below share one final multiplier so their relative
	// balance stays readable.
	finalMultiplier float64 = 0.0625

	rhythmWeight  float64 = 0.2 * finalMultiplier
	colourWeight  float64 = 0.375 * finalMultiplier
	staminaWeight float64 = 0.375 * finalMultiplier
)

type skillset struct {
	Rhythm  *skills.RhythmSkill
	Colour  *skills.ColourSkill
	Stamina *skills.StaminaSkill
}

func newSkillset() *skillset {
	return &skillset{
		Rhythm:  skills.NewRhythmSkill(),
		Colour:  skills.NewColourSkill(),
		Stamina: skills.NewStaminaSkill(),
	}
}

func (set *skillset) Process(obj *preprocessing.DifficultyObject) {
	set.Rhythm.Process(obj)
	set.Colour.Process(obj)
	set.Stamina.Process(obj)
}

// norm computes the p-norm of the given values.
func norm(p float64, values ...float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += math.Pow(v, p)
	}

	return math.Pow(sum, 1/p)
}

// rescale flattens the high end of the star scale so extreme maps stay in a
// sane range.
func rescale(sr float64) float64 {
	if sr < 0 {
		return sr
	}

	return 10.43 * math.Log(sr/8+1)
}

// combinedSectionPeak merges the per-section peaks of the three skills.
// Colour and stamina blend almost additively while rhythm joins through a
// harder norm, so a map needs more than rhythm alone to gain difficulty.
func combinedSectionPeak(rhythmPeak, colourPeak, staminaPeak float64) float64 {
	peak := norm(1.5, colourPeak*colourWeight, staminaPeak*staminaWeight)

	return norm(2, peak, rhythmPeak*rhythmWeight)
}

// combinedDifficultyValue reduces the merged section peaks the same way a
// single skill would.
func combinedDifficultyValue(set *skillset) float64 {
	rhythmPeaks := set.Rhythm.GetCurrentStrainPeaks()
	colourPeaks := set.Colour.GetCurrentStrainPeaks()
	staminaPeaks := set.Stamina.GetCurrentStrainPeaks()

	peaks := make([]float64, 0, len(colourPeaks))

	for i := range colourPeaks {
		if peak := combinedSectionPeak(rhythmPeaks[i], colourPeaks[i], staminaPeaks[i]); peak > 0 {
			peaks = append(peaks, peak)
		}
	}

	slices.Sort(peaks)

	diff := 0.0
	weight := 1.0

	for i := len(peaks) - 1; i >= 0; i-- {
		diff += peaks[i] * weight
		weight *= 0.9
	}

	return diff
}

func getStars(set *skillset, attr api.TaikoDifficultyAttributes) api.TaikoDifficultyAttributes {
	attr.Rhythm = set.Rhythm.DifficultyValue() * rhythmWeight * difficultyMultiplier
	attr.Color = set.Colour.DifficultyValue() * colourWeight * difficultyMultiplier
	attr.Stamina = set.Stamina.DifficultyValue() * staminaWeight * difficultyMultiplier
	attr.Peak = combinedDifficultyValue(set) * difficultyMultiplier

	stars := rescale(attr.Peak * 1.4)

	if attr.IsConvert {
		stars *= 0.925

		// Pure colour converts with huge stamina overrate badly.
		if attr.Color < 2 && attr.Stamina > 8 {
			stars *= 0.80
		}
	}

	attr.Stars = stars

	return attr
}

func addObjectToAttribs(o *preprocessing.Object, attr *api.TaikoDifficultyAttributes) {
	attr.ObjectCount++

	if o.IsHit() {
		attr.MaxCombo++
	}
}

// hitWindows derives the taiko great and ok windows. Taiko anchors its own
// millisecond ranges on the mod-adjusted OD before the clock rate applies.
func hitWindows(mapAttrs difficulty.MapAttributes) (great, ok float64) {
	od := (difficulty.HitWindowGreatMin - mapAttrs.GreatHitWindow*mapAttrs.ClockRate) / 6

	great = difficulty.DifficultyRange(od, 50, 35, 20) / mapAttrs.ClockRate
	ok = difficulty.DifficultyRange(od, 120, 80, 50) / mapAttrs.ClockRate

	return great, ok
}

func baseAttributes(mapAttrs difficulty.MapAttributes, isConvert bool) api.TaikoDifficultyAttributes {
	attr := api.TaikoDifficultyAttributes{IsConvert: isConvert}
	attr.GreatHitWindow, attr.OkHitWindow = hitWindows(mapAttrs)

	return attr
}

// CalculateDifficulty computes the difficulty attributes of a map, converting
// from Standard when needed.
func CalculateDifficulty(b *beatmap.Beatmap, d difficulty.Difficulty) api.TaikoDifficultyAttributes {
	mapAttrs := d.Resolve(b)

	objects, isConvert := preprocessing.CreateObjects(b)
	objects = objects[:d.PassedObjects(len(objects))]

	list := preprocessing.CreateDifficultyObjects(objects, d)

	set := newSkillset()

	attr := baseAttributes(mapAttrs, isConvert)

	for _, o := range objects {
		addObjectToAttribs(o, &attr)
	}

	// Fewer than three objects leave no difficulty objects and no stars.
	if len(list.Objects) == 0 {
		return attr
	}

	for _, o := range list.Objects {
		set.Process(o)
	}

	return getStars(set, attr)
}

// CalculateStep computes successive attributes for every prefix of a map.
func CalculateStep(b *beatmap.Beatmap, d difficulty.Difficulty) []api.TaikoDifficultyAttributes {
	log.Info("Calculating step SR (taiko)", "mods", d.Mods.String())

	startTime := time.Now()

	mapAttrs := d.Resolve(b)

	objects, isConvert := preprocessing.CreateObjects(b)
	objects = objects[:d.PassedObjects(len(objects))]

	list := preprocessing.CreateDifficultyObjects(objects, d)

	set := newSkillset()

	if len(objects) == 0 {
		return nil
	}

	stars := make([]api.TaikoDifficultyAttributes, 0, len(objects))

	attr := baseAttributes(mapAttrs, isConvert)

	for i, o := range objects {
		addObjectToAttribs(o, &attr)

		// Difficulty objects start at the third object.
		if i < 2 {
			stars = append(stars, attr)
			continue
		}

		set.Process(list.Objects[i-2])

		stars = append(stars, getStars(set, attr))
	}

	log.Info("Calculations finished!", "took", time.Since(startTime).Truncate(time.Millisecond))

	return stars
}

// CalculateStrainPeaks exports the chronological section peak curves of the
// three skills.
func CalculateStrainPeaks(b *beatmap.Beatmap, d difficulty.Difficulty) api.StrainPeaks {
	objects, _ := preprocessing.CreateObjects(b)
	objects = objects[:d.PassedObjects(len(objects))]

	list := preprocessing.CreateDifficultyObjects(objects, d)

	set := newSkillset()

	for _, o := range list.Objects {
		set.Process(o)
	}

	peaks := api.StrainPeaks{
		Rhythm:  set.Rhythm.GetCurrentStrainPeaks(),
		Color:   set.Colour.GetCurrentStrainPeaks(),
		Stamina: set.Stamina.GetCurrentStrainPeaks(),
	}

	peaks.Total = make([]float64, len(peaks.Rhythm))

	for i := range peaks.Rhythm {
		combined := combinedSectionPeak(peaks.Rhythm[i], peaks.Color[i], peaks.Stamina[i])
		peaks.Total[i] = rescale(combined * difficultyMultiplier * 1.4)
	}

	return peaks
}
