package api

import "github.com/osukit/rating-go/beatmap"

// DifficultyAttributes is the closed union over the per-mode attribute
// records. Values are immutable snapshots; cloning is a plain copy.
type DifficultyAttributes interface {
	Mode() beatmap.Mode
	TotalStars() float64
	Combo() int
}

// PerformanceAttributes is the closed union over the per-mode performance
// records.
type PerformanceAttributes interface {
	Mode() beatmap.Mode
	Total() float64
	Difficulty() DifficultyAttributes
}

// OsuDifficultyAttributes holds the reduced skill values of a Standard map.
type OsuDifficultyAttributes struct {
	// Total star rating, visible on the beatmap page
	Stars float64

	// Aim stars, needed for Performance Points (aka PP) calculations
	Aim float64

	// Speed stars, needed for Performance Points (aka PP) calculations
	Speed float64

	SpeedNoteCount float64

	AimDifficultStrainCount   float64
	SpeedDifficultStrainCount float64

	// Flashlight stars, only computed when the mod is active
	Flashlight float64

	// SliderFactor is a ratio of Aim calculated without sliders to Aim with them
	SliderFactor float64

	AR float64
	OD float64
	HP float64

	ObjectCount int
	Circles     int
	Sliders     int
	Spinners    int
	SliderTicks int
	MaxCombo    int
}

func (a OsuDifficultyAttributes) Mode() beatmap.Mode  { return beatmap.ModeOsu }
func (a OsuDifficultyAttributes) TotalStars() float64 { return a.Stars }
func (a OsuDifficultyAttributes) Combo() int          { return a.MaxCombo }

// RelaxDifficultyAttributes holds the legacy skill pair used by the
// Relax-calibrated engine.
type RelaxDifficultyAttributes struct {
	Stars float64
	Aim   float64
	Speed float64

	AimDifficultStrainCount   float64
	SpeedDifficultStrainCount float64

	AR float64
	OD float64
	HP float64

	ObjectCount int
	Circles     int
	Sliders     int
	Spinners    int
	SliderTicks int
	MaxCombo    int

	// Identity of the chart, consumed by the per-map calibration table.
	BeatmapID      int
	BeatmapCreator string
}

func (a RelaxDifficultyAttributes) Mode() beatmap.Mode  { return beatmap.ModeOsu }
func (a RelaxDifficultyAttributes) TotalStars() float64 { return a.Stars }
func (a RelaxDifficultyAttributes) Combo() int          { return a.MaxCombo }

type TaikoDifficultyAttributes struct {
	Stars   float64
	Rhythm  float64
	Color   float64
	Stamina float64

	Peak float64

	GreatHitWindow float64
	OkHitWindow    float64

	ObjectCount int
	MaxCombo    int

	IsConvert bool
}

func (a TaikoDifficultyAttributes) Mode() beatmap.Mode  { return beatmap.ModeTaiko }
func (a TaikoDifficultyAttributes) TotalStars() float64 { return a.Stars }
func (a TaikoDifficultyAttributes) Combo() int          { return a.MaxCombo }

type CatchDifficultyAttributes struct {
	Stars float64

	AR float64

	Fruits       int
	Droplets     int
	TinyDroplets int

	IsConvert bool
}

func (a CatchDifficultyAttributes) Mode() beatmap.Mode  { return beatmap.ModeCatch }
func (a CatchDifficultyAttributes) TotalStars() float64 { return a.Stars }

// Combo excludes tiny droplets, they never break combo.
func (a CatchDifficultyAttributes) Combo() int { return a.Fruits + a.Droplets }

type ManiaDifficultyAttributes struct {
	Stars float64

	ObjectCount int
	HoldCount   int
	MaxCombo    int

	IsConvert bool
}

func (a ManiaDifficultyAttributes) Mode() beatmap.Mode  { return beatmap.ModeMania }
func (a ManiaDifficultyAttributes) TotalStars() float64 { return a.Stars }
func (a ManiaDifficultyAttributes) Combo() int          { return a.MaxCombo }

// StrainPeaks carries the chronological section peaks of every skill of a
// calculation, suitable for plotting difficulty over time.
type StrainPeaks struct {
	Aim        []float64
	Speed      []float64
	Flashlight []float64

	Rhythm  []float64
	Color   []float64
	Stamina []float64

	Movement []float64

	Strain []float64

	// Total contains the per-section peaks passed through the star rating
	// formula of the mode.
	Total []float64
}

type OsuPerformanceAttributes struct {
	Attributes OsuDifficultyAttributes

	PP           float64
	PPAim        float64
	PPSpeed      float64
	PPAcc        float64
	PPFlashlight float64

	EffectiveMissCount float64
}

func (p OsuPerformanceAttributes) Mode() beatmap.Mode { return beatmap.ModeOsu }
func (p OsuPerformanceAttributes) Total() float64     { return p.PP }

func (p OsuPerformanceAttributes) Difficulty() DifficultyAttributes { return p.Attributes }

type RelaxPerformanceAttributes struct {
	Attributes RelaxDifficultyAttributes

	PP      float64
	PPAim   float64
	PPSpeed float64
	PPAcc   float64
}

func (p RelaxPerformanceAttributes) Mode() beatmap.Mode { return beatmap.ModeOsu }
func (p RelaxPerformanceAttributes) Total() float64     { return p.PP }

func (p RelaxPerformanceAttributes) Difficulty() DifficultyAttributes { return p.Attributes }

type TaikoPerformanceAttributes struct {
	Attributes TaikoDifficultyAttributes

	PP           float64
	PPDifficulty float64
	PPAcc        float64

	EffectiveMissCount float64
}

func (p TaikoPerformanceAttributes) Mode() beatmap.Mode { return beatmap.ModeTaiko }
func (p TaikoPerformanceAttributes) Total() float64     { return p.PP }

func (p TaikoPerformanceAttributes) Difficulty() DifficultyAttributes { return p.Attributes }

type CatchPerformanceAttributes struct {
	Attributes CatchDifficultyAttributes

	PP float64
}

func (p CatchPerformanceAttributes) Mode() beatmap.Mode { return beatmap.ModeCatch }
func (p CatchPerformanceAttributes) Total() float64     { return p.PP }

func (p CatchPerformanceAttributes) Difficulty() DifficultyAttributes { return p.Attributes }

type ManiaPerformanceAttributes struct {
	Attributes ManiaDifficultyAttributes

	PP           float64
	PPDifficulty float64
}

func (p ManiaPerformanceAttributes) Mode() beatmap.Mode { return beatmap.ModeMania }
func (p ManiaPerformanceAttributes) Total() float64     { return p.PP }

func (p ManiaPerformanceAttributes) Difficulty() DifficultyAttributes { return p.Attributes }
