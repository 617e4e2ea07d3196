package skills

import (
	"math"
	"slices"

	"github.com/osukit/rating-go/catch/preprocessing"
	"github.com/osukit/rating-go/util/mutils"
)

const (
	// A player can sit this far off-center and still catch.
	absolutePlayerPositioningError = 16.0

	directionChangeBonus = 21.0

	movementSkillMultiplier float64 = 900
	movementStrainDecayBase float64 = 0.2

	movementSectionLength float64 = 750
	movementDecayWeight   float64 = 0.94
)

// MovementSkill is the single catch skill. It models the horizontal plate
// movement between consecutive fruits and droplets, including hyperdashes
// and edge dashes.
type MovementSkill struct {
	catcherSpeedMultiplier float64

	currentStrain float64

	lastPlayerPosition *float64
	lastDistanceMoved  float64
	lastStrainTime     float64

	currentSectionPeak float64
	currentSectionEnd  float64

	strainPeaks []float64

	processed bool
}

func NewMovementSkill(clockRate float64) *MovementSkill {
	return &MovementSkill{catcherSpeedMultiplier: clockRate}
}

func (skill *MovementSkill) strainDecay(ms float64) float64 {
	return math.Pow(movementStrainDecayBase, ms/1000)
}

func (skill *MovementSkill) Process(current *preprocessing.DifficultyObject) {
	if !skill.processed {
		skill.currentSectionEnd = math.Ceil(current.StartTime/movementSectionLength) * movementSectionLength
		skill.processed = true
	}

	for current.StartTime > skill.currentSectionEnd {
		skill.strainPeaks = append(skill.strainPeaks, skill.currentSectionPeak)
		skill.currentSectionPeak = skill.currentStrain * skill.strainDecay(skill.currentSectionEnd-(current.StartTime-current.DeltaTime))
		skill.currentSectionEnd += movementSectionLength
	}

	skill.currentStrain *= skill.strainDecay(current.DeltaTime)
	skill.currentStrain += skill.strainValueOf(current) * movementSkillMultiplier

	skill.currentSectionPeak = math.Max(skill.currentStrain, skill.currentSectionPeak)
}

func (skill *MovementSkill) strainValueOf(current *preprocessing.DifficultyObject) float64 {
	if skill.lastPlayerPosition == nil {
		pos := current.LastNormalizedPosition
		skill.lastPlayerPosition = &pos
	}

	playerPosition := mutils.Clamp(
		*skill.lastPlayerPosition,
		current.NormalizedPosition-(preprocessing.NormalizedHitObjectRadius-absolutePlayerPositioningError),
		current.NormalizedPosition+(preprocessing.NormalizedHitObjectRadius-absolutePlayerPositioningError),
	)

	distanceMoved := playerPosition - *skill.lastPlayerPosition

	weightedStrainTime := current.StrainTime + 13 + 3/skill.catcherSpeedMultiplier

	distanceAddition := math.Pow(math.Abs(distanceMoved), 1.3) / 510
	sqrtStrain := math.Sqrt(weightedStrainTime)

	if math.Abs(distanceMoved) > 0.1 {
		if math.Abs(skill.lastDistanceMoved) > 0.1 && sign(distanceMoved) != sign(skill.lastDistanceMoved) {
			bonusFactor := math.Min(50, math.Abs(distanceMoved)) / 50
			antiflowFactor := math.Max(math.Min(70, math.Abs(skill.lastDistanceMoved))/70, 0.38)

			distanceAddition += directionChangeBonus / math.Sqrt(skill.lastStrainTime+16) *
				bonusFactor * antiflowFactor *
				math.Max(1-math.Pow(weightedStrainTime/1000, 3), 0)
		}

		// Base bonus for every movement, giving some weight to streams.
		distanceAddition += 12.5 * math.Min(math.Abs(distanceMoved), preprocessing.NormalizedHitObjectRadius*2) /
			(preprocessing.NormalizedHitObjectRadius * 6) / sqrtStrain
	}

	// Edge dashes are heavily rewarded the closer they are to the limit.
	if current.LastObject.DistanceToHyperDash <= 20 {
		if !current.LastObject.HyperDash {
			edgeDashBonus := 5.7

			distanceAddition *= 1 + edgeDashBonus*((20-current.LastObject.DistanceToHyperDash)/20)*
				math.Pow(math.Min(current.StrainTime*skill.catcherSpeedMultiplier, 265)/265, 1.5)
		} else {
			// After a hyperdash the catcher lands exactly on target.
			playerPosition = current.NormalizedPosition
		}
	}

	skill.lastPlayerPosition = &playerPosition
	skill.lastDistanceMoved = distanceMoved
	skill.lastStrainTime = current.StrainTime

	return distanceAddition / weightedStrainTime
}

// GetCurrentStrainPeaks returns the chronological section peaks including
// the still-open section.
func (skill *MovementSkill) GetCurrentStrainPeaks() []float64 {
	peaks := make([]float64, len(skill.strainPeaks), len(skill.strainPeaks)+1)
	copy(peaks, skill.strainPeaks)

	return append(peaks, skill.currentSectionPeak)
}

// DifficultyValue reduces the section peaks into a single scalar. Unlike the
// other modes no peaks are down-weighted first.
func (skill *MovementSkill) DifficultyValue() float64 {
	strains := skill.GetCurrentStrainPeaks()
	slices.Sort(strains)

	difficulty := 0.0
	weight := 1.0

	for i := len(strains) - 1; i >= 0; i-- {
		difficulty += strains[i] * weight
		weight *= movementDecayWeight
	}

	return difficulty
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}

	if v > 0 {
		return 1
	}

	return 0
}
