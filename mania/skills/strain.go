package skills

import (
	"math"
	"slices"

	"github.com/osukit/rating-go/mania/preprocessing"
	"github.com/osukit/rating-go/util/mutils"
)

const (
	individualDecayBase float64 = 0.125
	overallDecayBase    float64 = 0.30

	// Releases within this many milliseconds of another release are free.
	releaseThreshold float64 = 24

	sectionLength         float64 = 400
	decayWeight           float64 = 0.9
	reducedSectionCount   int     = 10
	reducedStrainBaseline float64 = 0.75
)

// StrainSkill is the single mania skill. It tracks a per-column strain for
// jacks plus an overall strain for the note stream, with bonuses for notes
// played while a hold is active and for awkward releases.
type StrainSkill struct {
	startTimes        []float64
	endTimes          []float64
	individualStrains []float64

	individualStrain float64
	overallStrain    float64
	currentStrain    float64

	currentSectionPeak float64
	currentSectionEnd  float64

	strainPeaks []float64

	peakWeights []float64
}

func NewStrainSkill(totalColumns int) *StrainSkill {
	return &StrainSkill{
		startTimes:        make([]float64, totalColumns),
		endTimes:          make([]float64, totalColumns),
		individualStrains: make([]float64, totalColumns),
	}
}

func applyDecay(value, deltaTime, decayBase float64) float64 {
	return value * math.Pow(decayBase, deltaTime/1000)
}

func (skill *StrainSkill) Process(current *preprocessing.DifficultyObject) {
	if current.Index == 0 {
		skill.currentSectionEnd = math.Ceil(current.StartTime/sectionLength) * sectionLength
	}

	for current.StartTime > skill.currentSectionEnd {
		skill.strainPeaks = append(skill.strainPeaks, skill.currentSectionPeak)
		skill.currentSectionPeak = skill.calculateInitialStrain(skill.currentSectionEnd, current)
		skill.currentSectionEnd += sectionLength
	}

	skill.strainValue(current)
	skill.currentStrain = skill.individualStrain + skill.overallStrain

	skill.currentSectionPeak = math.Max(skill.currentStrain, skill.currentSectionPeak)
}

func (skill *StrainSkill) calculateInitialStrain(time float64, current *preprocessing.DifficultyObject) float64 {
	prevStart := current.StartTime - current.DeltaTime

	return applyDecay(skill.individualStrain, time-prevStart, individualDecayBase) +
		applyDecay(skill.overallStrain, time-prevStart, overallDecayBase)
}

func (skill *StrainSkill) strainValue(current *preprocessing.DifficultyObject) {
	startTime := current.StartTime
	endTime := current.EndTime
	column := current.Base.Column

	isOverlapping := false

	closestEndTime := math.Abs(endTime - startTime)
	holdFactor := 1.0
	holdAddition := 0.0

	for _, held := range skill.endTimes {
		// The note body overlaps an active hold.
		isOverlapping = isOverlapping || (held > startTime+1 && endTime > held+1)

		// Everything is slightly harder while something else is held.
		if held > endTime+1 {
			holdFactor = 1.25
		}

		closestEndTime = math.Min(closestEndTime, math.Abs(endTime-held))
	}

	// Releasing multiple holds at once is as easy as releasing one, so the
	// addition fades out as another release gets close.
	if isOverlapping {
		holdAddition = 1 / (1 + math.Exp(0.5*(releaseThreshold-closestEndTime)))
	}

	skill.individualStrains[column] = applyDecay(skill.individualStrains[column], startTime-skill.startTimes[column], individualDecayBase)
	skill.individualStrains[column] += 2 * holdFactor

	// Notes in a chord share the hardest column strain among them.
	if current.DeltaTime <= 1 {
		skill.individualStrain = math.Max(skill.individualStrain, skill.individualStrains[column])
	} else {
		skill.individualStrain = skill.individualStrains[column]
	}

	skill.overallStrain = applyDecay(skill.overallStrain, current.DeltaTime, overallDecayBase) + (1+holdAddition)*holdFactor

	skill.startTimes[column] = startTime
	skill.endTimes[column] = endTime
}

// GetCurrentStrainPeaks returns the chronological section peaks including
// the still-open section.
func (skill *StrainSkill) GetCurrentStrainPeaks() []float64 {
	peaks := make([]float64, len(skill.strainPeaks), len(skill.strainPeaks)+1)
	copy(peaks, skill.strainPeaks)

	return append(peaks, skill.currentSectionPeak)
}

// DifficultyValue reduces the section peaks into a single scalar.
func (skill *StrainSkill) DifficultyValue() float64 {
	if skill.peakWeights == nil {
		skill.peakWeights = make([]float64, reducedSectionCount)
		for i := range reducedSectionCount {
			scale := math.Log10(mutils.Lerp(1.0, 10.0, mutils.Clamp(float64(i)/float64(reducedSectionCount), 0, 1)))
			skill.peakWeights[i] = mutils.Lerp(reducedStrainBaseline, 1.0, scale)
		}
	}

	strains := skill.GetCurrentStrainPeaks()
	slices.Sort(strains)

	// Down-weight the highest peaks to soften isolated difficulty spikes.
	for i := range min(len(strains), reducedSectionCount) {
		strains[len(strains)-1-i] *= skill.peakWeights[i]
	}

	slices.Sort(strains)

	difficulty := 0.0
	weight := 1.0

	for i := range strains {
		difficulty += strains[len(strains)-1-i] * weight
		weight *= decayWeight
	}

	return difficulty
}
