package skills

import (
	"math"
	"slices"

	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/osu/preprocessing"
	"github.com/osukit/rating-go/util/mutils"
)

// Skill is the shared strain accumulator. Concrete skills embed it and plug
// their evaluators in via the function fields.
type Skill struct {
	// SectionLength is the strain-peak window in adjusted milliseconds.
	SectionLength float64

	// DecayWeight is the geometric decay of sorted peak contributions.
	DecayWeight float64

	// ReducedSectionCount peaks get down-weighted at the start of a map.
	ReducedSectionCount   int
	ReducedStrainBaseline float64

	// StrainValueOf computes the decayed strain after the given object.
	StrainValueOf func(obj *preprocessing.DifficultyObject) float64

	// CalculateInitialStrain carries strain across a section boundary with
	// no new increment.
	CalculateInitialStrain func(time float64, current *preprocessing.DifficultyObject) float64

	diff difficulty.Difficulty

	currentSectionPeak float64
	currentSectionEnd  float64

	strainPeaks   []float64
	objectStrains []float64

	peakWeights []float64

	stepCalc             bool
	difficulty           float64
	lastDifficulty       float64
	difficultStrainCount float64
}

func NewSkill(d difficulty.Difficulty, stepCalc bool) *Skill {
	return &Skill{
		SectionLength:         400,
		DecayWeight:           0.9,
		ReducedSectionCount:   10,
		ReducedStrainBaseline: 0.75,
		diff:                  d,
		stepCalc:              stepCalc,
	}
}

// Process updates the running strain with one difficulty object. Objects
// must arrive in increasing start-time order.
func (skill *Skill) Process(current *preprocessing.DifficultyObject) {
	if current.Index == 0 {
		skill.currentSectionEnd = math.Ceil(current.StartTime/skill.SectionLength) * skill.SectionLength
	}

	for current.StartTime > skill.currentSectionEnd {
		skill.strainPeaks = append(skill.strainPeaks, skill.currentSectionPeak)
		skill.currentSectionPeak = skill.CalculateInitialStrain(skill.currentSectionEnd, current)
		skill.currentSectionEnd += skill.SectionLength
	}

	currentStrain := skill.StrainValueOf(current)
	skill.currentSectionPeak = math.Max(currentStrain, skill.currentSectionPeak)

	if !skill.stepCalc {
		return
	}

	skill.difficultyValue()

	if skill.lastDifficulty != skill.difficulty {
		skill.difficultStrainCount = skill.countDifficultStrains()
	} else if skill.difficulty != 0 {
		skill.difficultStrainCount += 1.1 / (1 + math.Exp(-10*(currentStrain/(skill.difficulty/10)-0.88)))
	}

	skill.lastDifficulty = skill.difficulty
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
	return skill.difficultyValue()
}

func (skill *Skill) difficultyValue() float64 {
	if skill.peakWeights == nil { // precalculated peak weights
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

// CountDifficultStrains estimates how many objects are genuinely difficult
// relative to the map's overall level, used for miss-penalty shaping.
func (skill *Skill) CountDifficultStrains() float64 {
	if skill.stepCalc {
		return skill.difficultStrainCount
	}

	return skill.countDifficultStrains()
}

func (skill *Skill) countDifficultStrains() float64 {
	if skill.difficulty == 0 {
		skill.difficultyValue()
	}

	if skill.difficulty == 0 {
		return 0
	}

	singleStrain := skill.difficulty / 10

	sum := 0.0
	for _, strain := range skill.objectStrains {
		sum += 1.1 / (1 + math.Exp(-10*(strain/singleStrain-0.88)))
	}

	return sum
}

// RelevantNoteCount weighs every object against the hardest one, yielding
// the effective count of notes that matter for speed accuracy.
func (skill *Skill) RelevantNoteCount() float64 {
	if len(skill.objectStrains) == 0 {
		return 0
	}

	maxStrain := slices.Max(skill.objectStrains)
	if maxStrain <= 0 {
		return 0
	}

	sum := 0.0
	for _, strain := range skill.objectStrains {
		sum += 1 / (1 + math.Exp(-(strain/maxStrain*12 - 6)))
	}

	return sum
}
