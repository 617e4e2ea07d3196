package beatmap

// Mode is the ruleset a map was authored for.
type Mode int

const (
	ModeOsu Mode = iota
	ModeTaiko
	ModeCatch
	ModeMania
)

func (m Mode) String() string {
	switch m {
	case ModeTaiko:
		return "taiko"
	case ModeCatch:
		return "catch"
	case ModeMania:
		return "mania"
	default:
		return "osu"
	}
}

// Beatmap is the in-memory chart model consumed by the difficulty engines.
// It is immutable once decoded; calculators only ever borrow it.
type Beatmap struct {
	Mode          Mode
	FormatVersion int

	ID      int
	Creator string

	AR float64
	OD float64
	CS float64
	HP float64

	SliderMultiplier float64
	SliderTickRate   float64

	HitObjects       []HitObject
	TimingPoints     []TimingPoint
	DifficultyPoints []DifficultyPoint
}

func (b *Beatmap) IsConvertibleTo(mode Mode) bool {
	return b.Mode == mode || b.Mode == ModeOsu
}
