package api

// HitResultPriority steers hitresult synthesis when a target accuracy leaves
// slack: BestCase converts the remainder into the best judgement, WorstCase
// into the worst.
type HitResultPriority int

const (
	BestCase HitResultPriority = iota
	WorstCase
)

// ScoreState is the mode-agnostic score state accepted by the dispatch
// facade. Buckets map onto the mode-specific judgements: N320 and NKatu only
// matter for mania (perfects and 200s), for catch N300/N100/N50 carry
// fruits/droplets/tiny droplets and NKatu the tiny droplet misses.
type ScoreState struct {
	MaxCombo int

	SliderTickHits int
	SliderEndHits  int

	N320   int
	N300   int
	NKatu  int
	N100   int
	N50    int
	Misses int
}

func (s ScoreState) ToOsu() OsuScoreState {
	return OsuScoreState{
		MaxCombo:       s.MaxCombo,
		SliderTickHits: s.SliderTickHits,
		SliderEndHits:  s.SliderEndHits,
		N300:           s.N300,
		N100:           s.N100,
		N50:            s.N50,
		Misses:         s.Misses,
	}
}

func (s ScoreState) ToTaiko() TaikoScoreState {
	return TaikoScoreState{
		MaxCombo: s.MaxCombo,
		N300:     s.N300,
		N100:     s.N100,
		Misses:   s.Misses,
	}
}

func (s ScoreState) ToCatch() CatchScoreState {
	return CatchScoreState{
		MaxCombo:        s.MaxCombo,
		Fruits:          s.N300,
		Droplets:        s.N100,
		TinyDroplets:    s.N50,
		TinyDropletMiss: s.NKatu,
		Misses:          s.Misses,
	}
}

func (s ScoreState) ToMania() ManiaScoreState {
	return ManiaScoreState{
		MaxCombo: s.MaxCombo,
		N320:     s.N320,
		N300:     s.N300,
		N200:     s.NKatu,
		N100:     s.N100,
		N50:      s.N50,
		Misses:   s.Misses,
	}
}

// OsuScoreState describes a (partial) Standard play. SliderTickHits and
// SliderEndHits only matter for lazer scoring.
type OsuScoreState struct {
	MaxCombo int

	SliderTickHits int
	SliderEndHits  int

	N300   int
	N100   int
	N50    int
	Misses int
}

func (s OsuScoreState) TotalHits() int {
	return s.N300 + s.N100 + s.N50 + s.Misses
}

// Accuracy computes the lazer accuracy fraction in 0..1. Pass zero max
// counts for stable scoring.
func (s OsuScoreState) Accuracy(maxSliderTicks, maxSliderEnds int) float64 {
	if s.TotalHits()+s.SliderTickHits+s.SliderEndHits == 0 {
		return 0
	}

	numerator := 300*s.N300 + 100*s.N100 + 50*s.N50 + 150*s.SliderEndHits + 30*s.SliderTickHits
	denominator := 300*s.TotalHits() + 150*maxSliderEnds + 30*maxSliderTicks

	return float64(numerator) / float64(denominator)
}

// TaikoScoreState describes a (partial) Taiko play.
type TaikoScoreState struct {
	MaxCombo int

	N300   int
	N100   int
	Misses int
}

func (s TaikoScoreState) TotalHits() int {
	return s.N300 + s.N100 + s.Misses
}

func (s TaikoScoreState) Accuracy() float64 {
	if s.TotalHits() == 0 {
		return 0
	}

	return float64(2*s.N300+s.N100) / float64(2*s.TotalHits())
}

// CatchScoreState describes a (partial) Catch play. Fruits, droplets and
// tiny droplets are separate judgement buckets; only tiny droplet misses are
// tracked separately from regular misses.
type CatchScoreState struct {
	MaxCombo int

	Fruits           int
	Droplets         int
	TinyDroplets     int
	TinyDropletMiss  int
	Misses           int
}

func (s CatchScoreState) TotalHits() int {
	return s.Fruits + s.Droplets + s.TinyDroplets + s.TinyDropletMiss + s.Misses
}

func (s CatchScoreState) TotalSuccessfulHits() int {
	return s.Fruits + s.Droplets + s.TinyDroplets
}

func (s CatchScoreState) Accuracy() float64 {
	if s.TotalHits() == 0 {
		return 0
	}

	return float64(s.TotalSuccessfulHits()) / float64(s.TotalHits())
}

// ManiaScoreState describes a (partial) Mania play over the six judgements.
type ManiaScoreState struct {
	MaxCombo int

	N320   int
	N300   int
	N200   int
	N100   int
	N50    int
	Misses int
}

func (s ManiaScoreState) TotalHits() int {
	return s.N320 + s.N300 + s.N200 + s.N100 + s.N50 + s.Misses
}

func (s ManiaScoreState) Accuracy() float64 {
	total := s.TotalHits()
	if total == 0 {
		return 0
	}

	numerator := 320*s.N320 + 300*s.N300 + 200*s.N200 + 100*s.N100 + 50*s.N50

	return float64(numerator) / float64(320*total)
}
