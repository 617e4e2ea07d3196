package catch

import (
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/osukit/rating-go/api"
	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/catch/preprocessing"
	"github.com/osukit/rating-go/catch/skills"
	"github.com/osukit/rating-go/difficulty"
)

// StarScalingFactor is a global stars multiplier
const StarScalingFactor float64 = 0.153

func countPalpable(objects []*preprocessing.Object) int {
	count := 0

	for _, o := range objects {
		if o.IsPalpable() {
			count++
		}
	}

	return count
}

// takeObjects truncates the object list after the nth fruit or droplet,
// keeping the tiny droplets leading up to it.
func takeObjects(objects []*preprocessing.Object, n int) []*preprocessing.Object {
	if n <= 0 {
		return objects[:0]
	}

	count := 0

	for i, o := range objects {
		if o.IsPalpable() {
			if count++; count == n {
				return objects[:i+1]
			}
		}
	}

	return objects
}

func getStars(skill *skills.MovementSkill, attr api.CatchDifficultyAttributes) api.CatchDifficultyAttributes {
	attr.Stars = math.Sqrt(skill.DifficultyValue()) * StarScalingFactor

	return attr
}

func addObjectToAttribs(o *preprocessing.Object, attr *api.CatchDifficultyAttributes) {
	switch o.Kind {
	case preprocessing.KindFruit:
		attr.Fruits++
	case preprocessing.KindDroplet:
		attr.Droplets++
	case preprocessing.KindTinyDroplet:
		attr.TinyDroplets++
	}
}

// CalculateDifficulty computes the difficulty attributes of a map,
// converting from Standard when needed.
func CalculateDifficulty(b *beatmap.Beatmap, d difficulty.Difficulty) api.CatchDifficultyAttributes {
	mapAttrs := d.Resolve(b)

	objects, isConvert := preprocessing.CreateObjects(b, mapAttrs.CS)
	objects = takeObjects(objects, d.PassedObjects(countPalpable(objects)))

	diffObjects := preprocessing.CreateDifficultyObjects(objects, preprocessing.HalfCatcherWidth(mapAttrs.CS), mapAttrs.ClockRate)

	skill := skills.NewMovementSkill(mapAttrs.ClockRate)

	attr := api.CatchDifficultyAttributes{AR: mapAttrs.AR, IsConvert: isConvert}

	for _, o := range objects {
		addObjectToAttribs(o, &attr)
	}

	// A single fruit cannot require movement and carries no stars.
	if len(diffObjects) == 0 {
		return attr
	}

	for _, o := range diffObjects {
		skill.Process(o)
	}

	return getStars(skill, attr)
}

// CalculateStep computes successive attributes for every fruit-or-droplet
// prefix of a map.
func CalculateStep(b *beatmap.Beatmap, d difficulty.Difficulty) []api.CatchDifficultyAttributes {
	log.Info("Calculating step SR (catch)", "mods", d.Mods.String())

	startTime := time.Now()

	mapAttrs := d.Resolve(b)

	objects, isConvert := preprocessing.CreateObjects(b, mapAttrs.CS)
	objects = takeObjects(objects, d.PassedObjects(countPalpable(objects)))

	diffObjects := preprocessing.CreateDifficultyObjects(objects, preprocessing.HalfCatcherWidth(mapAttrs.CS), mapAttrs.ClockRate)

	skill := skills.NewMovementSkill(mapAttrs.ClockRate)

	attr := api.CatchDifficultyAttributes{AR: mapAttrs.AR, IsConvert: isConvert}

	var stars []api.CatchDifficultyAttributes

	palpableSeen := 0

	for _, o := range objects {
		addObjectToAttribs(o, &attr)

		if !o.IsPalpable() {
			continue
		}

		// The first fruit has no difficulty object.
		if palpableSeen++; palpableSeen > 1 {
			skill.Process(diffObjects[palpableSeen-2])
		}

		stars = append(stars, getStars(skill, attr))
	}

	log.Info("Calculations finished!", "took", time.Since(startTime).Truncate(time.Millisecond))

	return stars
}

// CalculateStrainPeaks exports the chronological section peak curve of the
// movement skill.
func CalculateStrainPeaks(b *beatmap.Beatmap, d difficulty.Difficulty) api.StrainPeaks {
	mapAttrs := d.Resolve(b)

	objects, _ := preprocessing.CreateObjects(b, mapAttrs.CS)
	objects = takeObjects(objects, d.PassedObjects(countPalpable(objects)))

	diffObjects := preprocessing.CreateDifficultyObjects(objects, preprocessing.HalfCatcherWidth(mapAttrs.CS), mapAttrs.ClockRate)

	skill := skills.NewMovementSkill(mapAttrs.ClockRate)

	for _, o := range diffObjects {
		skill.Process(o)
	}

	peaks := api.StrainPeaks{Movement: skill.GetCurrentStrainPeaks()}

	peaks.Total = make([]float64, len(peaks.Movement))

	for i, m := range peaks.Movement {
		peaks.Total[i] = math.Sqrt(m) * StarScalingFactor
	}

	return peaks
}
