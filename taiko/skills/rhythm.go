package skills

import (
	"math"

	"github.com/osukit/rating-go/taiko/preprocessing"
	"github.com/osukit/rating-go/util/mutils"
	"github.com/osukit/rating-go/util/queue"
)

const (
	rhythmSkillMultiplier float64 = 10
	rhythmStrainDecay     float64 = 0.96

	rhythmHistoryMaxLength = 8
)

// RhythmSkill rewards rhythm changes. Strain carries over per note with its
// own decay rather than over wall time, so the base skill gets no
// cross-section carry.
type RhythmSkill struct {
	*Skill

	CurrentStrain float64

	history                *queue.LimitedQueue[*preprocessing.DifficultyObject]
	notesSinceRhythmChange int
}

func NewRhythmSkill() *RhythmSkill {
	skill := &RhythmSkill{
		Skill:   NewSkill(),
		history: queue.NewLimitedQueue[*preprocessing.DifficultyObject](rhythmHistoryMaxLength),
	}

	skill.StrainValueOf = skill.rhythmStrainValue
	skill.CalculateInitialStrain = func(float64, *preprocessing.DifficultyObject) float64 { return 0 }

	return skill
}

func (skill *RhythmSkill) rhythmStrainValue(current *preprocessing.DifficultyObject) float64 {
	if !current.Base.IsHit() {
		skill.reset()
		return 0
	}

	skill.CurrentStrain *= rhythmStrainDecay
	skill.notesSinceRhythmChange++

	if current.Rhythm.Difficulty == 0 {
		return skill.CurrentStrain * rhythmSkillMultiplier
	}

	objectStrain := current.Rhythm.Difficulty
	objectStrain *= skill.repetitionPenalties(current)
	objectStrain *= patternLengthPenalty(skill.notesSinceRhythmChange)
	objectStrain *= skill.speedPenalty(current.DeltaTime)

	skill.notesSinceRhythmChange = 0

	skill.CurrentStrain += objectStrain

	return skill.CurrentStrain * rhythmSkillMultiplier
}

// repetitionPenalties nerfs rhythm patterns that already appeared recently.
func (skill *RhythmSkill) repetitionPenalties(current *preprocessing.DifficultyObject) float64 {
	penalty := 1.0

	skill.history.Push(current)

	for mostRecentPatternsToCompare := 2; mostRecentPatternsToCompare <= rhythmHistoryMaxLength/2; mostRecentPatternsToCompare++ {
		for start := skill.history.Len() - mostRecentPatternsToCompare - 1; start >= 0; start-- {
			if !skill.samePattern(start, mostRecentPatternsToCompare) {
				continue
			}

			notesSince := current.Index - skill.history.Get(start).Index
			penalty *= repetitionPenalty(notesSince)

			break
		}
	}

	return penalty
}

func (skill *RhythmSkill) samePattern(start, mostRecentPatternsToCompare int) bool {
	for i := 0; i < mostRecentPatternsToCompare; i++ {
		if skill.history.Get(start+i).Rhythm != skill.history.Get(skill.history.Len()-mostRecentPatternsToCompare+i).Rhythm {
			return false
		}
	}

	return true
}

func repetitionPenalty(notesSince int) float64 {
	return math.Min(1.0, 0.032*float64(notesSince))
}

// patternLengthPenalty nerfs both very short and very long stretches
// between rhythm changes.
func patternLengthPenalty(patternLength int) float64 {
	shortPenalty := math.Min(0.15*float64(patternLength), 1.0)
	longPenalty := mutils.Clamp(2.5-0.15*float64(patternLength), 0.0, 1.0)

	return math.Min(shortPenalty, longPenalty)
}

// speedPenalty fades rhythm strain out entirely below roughly 143 BPM.
func (skill *RhythmSkill) speedPenalty(deltaTime float64) float64 {
	if deltaTime < 80 {
		return 1
	}

	if deltaTime < 210 {
		return math.Max(0, 1.4-0.005*deltaTime)
	}

	skill.reset()

	return 0
}

func (skill *RhythmSkill) reset() {
	skill.CurrentStrain = 0
	skill.notesSinceRhythmChange = 0
}
