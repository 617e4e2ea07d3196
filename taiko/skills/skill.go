package skills

import (
	"math"
	"slices"

	"github.com/osukit/rating-go/taiko/preprocessing"
	"github.com/osukit/rating-go/util/mutils"
)

// Skill is the shared strain accumulator for the taiko skills, mirroring the
// Standard one but typed to the taiko difficulty-object graph.
type Skill struct {
	SectionLength float64
	DecayWeight   float64

	ReducedSectionCount   int
	ReducedStrainBaseline float64

	StrainValueOf          func(obj *preprocessing.DifficultyObject) float64
	CalculateInitialStrain func(time float64, current *preprocessing.DifficultyObject) float64

	currentSectionPeak float64
	currentSectionEnd  float64

	strainPeaks []float64

	peakWeights []float64
	difficulty  float64
}

func NewSkill() *Skill {
	return &Skill{
		SectionLength:         400,
		DecayWeight:           0.9,
		ReducedSectionCount:   10,
		ReducedStrainBaseline: 0.75,
	}
}

func (skill *Skill) Process(current *preprocessing.DifficultyObject) {
	if current.Index == 0 {
		skill.currentSectionEnd = math.Ceil(current.StartTime/skill.SectionLength) * skill.SectionLength
	}

	for current.StartTime > skill.currentSectionEnd {
		skill.strainPeaks = append(skill.strainPeaks, skill.currentSectionPeak)
		skill.currentSectionPeak = skill.CalculateInitialStrain(skill.currentSectionEnd, current)
		skill.currentSectionEnd += skill.SectionLength
	}

	skill.currentSectionPeak = math.Max(skill.StrainValueOf(current), skill.currentSectionPeak)
}

// GetCurrentStrainPeaks returns the chronological section peaks including
// the still-open section.
func (skill *Skill) GetCurrentStrainPeaks() []float64 {
	peaks := make([]float64, len(skill.strainPeaks), len(skill.strainPeaks)+1)
	copy(peaks, skill.strainPeaks)

	return append(peaks, skill.currentSectionPeak)
}

// DifficultyValue reduces the section peaks into a single scalar.
func (skill *Skill) DifficultyValue() float64 {
	if skill.peakWeights == nil {
		skill.peakWeights = make([]float64, skill.ReducedSectionCount)
		for i := range skill.ReducedSectionCount {
			scale := math.Log10(mutils.Lerp(1.0, 10.0, mutils.Clamp(float64(i)/float64(skill.ReducedSectionCount), 0, 1)))
			skill.peakWeights[i] = mutils.Lerp(skill.ReducedStrainBaseline, 1.0, scale)
		}
	}

	strains := skill.GetCurrentStrainPeaks()
	slices.Sort(strains)

	// Down-weight the highest peaks to soften isolated difficulty spikes.
	for i := range min(len(strains), skill.ReducedSectionCount) {
		strains[len(strains)-1-i] *= skill.peakWeights[i]
	}

	slices.Sort(strains)

	skill.difficulty = 0.0
	weight := 1.0

	for i := range strains {
		skill.difficulty += strains[len(strains)-1-i] * weight
		weight *= skill.DecayWeight
	}

	return skill.difficulty
}
