package preprocessing

// MaxRepetitionInterval caps how far back a repeated hit pattern is still
// considered repetitive.
const MaxRepetitionInterval = 16

// MonoStreak is a run of consecutive same-colour hits.
type MonoStreak struct {
	Parent *AlternatingMonoPattern
	Index  int

	HitObjects []*DifficultyObject
}

func (m *MonoStreak) RunLength() int { return len(m.HitObjects) }

func (m *MonoStreak) FirstObject() *DifficultyObject { return m.HitObjects[0] }

func (m *MonoStreak) Rim() bool { return m.HitObjects[0].Base.Rim }

// AlternatingMonoPattern is a run of mono streaks of equal length,
// alternating in colour.
type AlternatingMonoPattern struct {
	Parent *RepeatingHitPatterns
	Index  int

	MonoStreaks []*MonoStreak
}

func (a *AlternatingMonoPattern) FirstObject() *DifficultyObject {
	return a.MonoStreaks[0].FirstObject()
}

func (a *AlternatingMonoPattern) HasIdenticalMonoLength(other *AlternatingMonoPattern) bool {
	return a.MonoStreaks[0].RunLength() == other.MonoStreaks[0].RunLength()
}

func (a *AlternatingMonoPattern) IsRepetitionOf(other *AlternatingMonoPattern) bool {
	return a.HasIdenticalMonoLength(other) &&
		len(a.MonoStreaks) == len(other.MonoStreaks) &&
		a.MonoStreaks[0].Rim() == other.MonoStreaks[0].Rim()
}

// RepeatingHitPatterns groups alternating mono patterns and measures how
// many notes pass until the whole pattern repeats.
type RepeatingHitPatterns struct {
	Previous *RepeatingHitPatterns

	AlternatingPatterns []*AlternatingMonoPattern

	// RepetitionInterval is the note distance to the previous identical
	// pattern, capped at MaxRepetitionInterval+1 when none is close enough.
	RepetitionInterval int
}

func (r *RepeatingHitPatterns) FirstObject() *DifficultyObject {
	return r.AlternatingPatterns[0].FirstObject()
}

// Duration is the total note length of the pattern.
func (r *RepeatingHitPatterns) Duration() int {
	total := 0
	for _, pattern := range r.AlternatingPatterns {
		for _, streak := range pattern.MonoStreaks {
			total += streak.RunLength()
		}
	}

	return total
}

func (r *RepeatingHitPatterns) isRepetitionOf(other *RepeatingHitPatterns) bool {
	if len(r.AlternatingPatterns) != len(other.AlternatingPatterns) {
		return false
	}

	for i := 0; i < min(len(r.AlternatingPatterns), 2); i++ {
		if !r.AlternatingPatterns[i].HasIdenticalMonoLength(other.AlternatingPatterns[i]) {
			return false
		}
	}

	return true
}

func (r *RepeatingHitPatterns) findRepetitionInterval() {
	if r.Previous == nil || r.Previous.Previous == nil {
		r.RepetitionInterval = MaxRepetitionInterval + 1
		return
	}

	interval := 0

	for other := r.Previous; other != nil && interval < MaxRepetitionInterval; other = other.Previous {
		interval += other.Duration()

		if other.isRepetitionOf(r) {
			r.RepetitionInterval = min(interval, MaxRepetitionInterval)
			return
		}
	}

	r.RepetitionInterval = MaxRepetitionInterval + 1
}

// encodeColours builds the three-level colour encoding and hangs each
// structure off its first hit object.
func encodeColours(list *ObjectList) {
	streaks := encodeMonoStreaks(list)
	patterns := encodeAlternatingPatterns(streaks)
	encodeRepeatingPatterns(patterns)
}

// encodeMonoStreaks splits the hit sequence into same-colour runs. Drum
// rolls and swells break a run.
func encodeMonoStreaks(list *ObjectList) []*MonoStreak {
	var streaks []*MonoStreak
	var current *MonoStreak

	for _, obj := range list.Objects {
		if !obj.Base.IsHit() {
			current = nil
			continue
		}

		previous := obj.PreviousNote(0)

		if current == nil || previous == nil || obj.Base.Rim != previous.Base.Rim {
			current = &MonoStreak{}
			streaks = append(streaks, current)

			obj.Colour.MonoStreak = current
		}

		current.HitObjects = append(current.HitObjects, obj)
	}

	return streaks
}

func encodeAlternatingPatterns(streaks []*MonoStreak) []*AlternatingMonoPattern {
	var patterns []*AlternatingMonoPattern
	var current *AlternatingMonoPattern

	for i, streak := range streaks {
		if current == nil || streak.RunLength() != streaks[i-1].RunLength() {
			current = &AlternatingMonoPattern{}
			patterns = append(patterns, current)

			streak.FirstObject().Colour.AlternatingPattern = current
		}

		streak.Parent = current
		streak.Index = len(current.MonoStreaks)
		current.MonoStreaks = append(current.MonoStreaks, streak)
	}

	return patterns
}

func encodeRepeatingPatterns(patterns []*AlternatingMonoPattern) {
	var all []*RepeatingHitPatterns
	var current *RepeatingHitPatterns

	for i, pattern := range patterns {
		if current == nil || !pattern.IsRepetitionOf(patterns[i-1]) {
			current = &RepeatingHitPatterns{Previous: current}
			all = append(all, current)

			pattern.FirstObject().Colour.RepeatingHitPattern = current
		}

		pattern.Parent = current
		pattern.Index = len(current.AlternatingPatterns)
		current.AlternatingPatterns = append(current.AlternatingPatterns, pattern)
	}

	for _, r := range all {
		r.findRepetitionInterval()
	}
}
