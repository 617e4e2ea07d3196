// Package rating exposes the difficulty and performance engines of every
// mode behind a single mode-dispatching facade. The per-mode packages stay
// usable on their own; this package only routes.
package rating

import (
	"errors"

	"github.com/osukit/rating-go/api"
	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/catch"
	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/mania"
	"github.com/osukit/rating-go/mods"
	"github.com/osukit/rating-go/osu"
	"github.com/osukit/rating-go/relax"
	"github.com/osukit/rating-go/taiko"
)

// ErrConversionUnavailable is returned when a mode conversion is requested
// but the original beatmap is no longer held, or the held map cannot be
// played in the requested mode.
var ErrConversionUnavailable = errors.New("rating: mode conversion requires the original beatmap")

// CalculateDifficulty computes the difficulty attributes of a map in the
// requested mode, converting from Standard when needed.
func CalculateDifficulty(b *beatmap.Beatmap, d difficulty.Difficulty, mode beatmap.Mode) (api.DifficultyAttributes, error) {
	if !b.IsConvertibleTo(mode) {
		return nil, ErrConversionUnavailable
	}

	switch mode {
	case beatmap.ModeTaiko:
		return taiko.CalculateDifficulty(b, d), nil
	case beatmap.ModeCatch:
		return catch.CalculateDifficulty(b, d), nil
	case beatmap.ModeMania:
		return mania.CalculateDifficulty(b, d), nil
	default:
		return osu.CalculateDifficulty(b, d), nil
	}
}

// CalculateStrainPeaks computes the per-section strain curves of a map in
// the requested mode.
func CalculateStrainPeaks(b *beatmap.Beatmap, d difficulty.Difficulty, mode beatmap.Mode) (api.StrainPeaks, error) {
	if !b.IsConvertibleTo(mode) {
		return api.StrainPeaks{}, ErrConversionUnavailable
	}

	switch mode {
	case beatmap.ModeTaiko:
		return taiko.CalculateStrainPeaks(b, d), nil
	case beatmap.ModeCatch:
		return catch.CalculateStrainPeaks(b, d), nil
	case beatmap.ModeMania:
		return mania.CalculateStrainPeaks(b, d), nil
	default:
		return osu.CalculateStrainPeaks(b, d), nil
	}
}

// Performance is the mode-agnostic pp calculator. Setters are collected
// generically and routed to the right engine at calculation time; buckets
// that do not exist in the target mode are ignored.
type Performance struct {
	bmap  *beatmap.Beatmap
	attrs api.DifficultyAttributes

	mode  beatmap.Mode
	relax bool

	diff   difficulty.Difficulty
	lazer  bool
	passed *int

	acc *float64

	combo          *int
	sliderTickHits *int
	sliderEndHits  *int
	n320           *int
	n300           *int
	nKatu          *int
	n100           *int
	n50            *int
	misses         *int

	priority api.HitResultPriority
}

// NewPerformance builds a calculator in the map's native mode.
func NewPerformance(b *beatmap.Beatmap) *Performance {
	return &Performance{bmap: b, mode: b.Mode, lazer: true}
}

// NewPerformanceFromAttrs builds a calculator from previously computed
// attributes. Mode conversion is no longer possible on the result.
func NewPerformanceFromAttrs(attrs api.DifficultyAttributes) *Performance {
	p := &Performance{attrs: attrs, mode: attrs.Mode(), lazer: true}

	if _, ok := attrs.(api.RelaxDifficultyAttributes); ok {
		p.relax = true
	}

	return p
}

// HasMap reports whether the calculator still holds a beatmap.
func (p *Performance) HasMap() bool { return p.bmap != nil }

// Mode returns the mode the calculator will dispatch to.
func (p *Performance) Mode() beatmap.Mode { return p.mode }

// TryMode switches the calculator to another mode. Conversion needs the
// original beatmap and only Standard maps convert to other modes; a failed
// conversion leaves the calculator untouched.
func (p *Performance) TryMode(mode beatmap.Mode) error {
	if mode == p.mode {
		return nil
	}

	if p.bmap == nil || !p.bmap.IsConvertibleTo(mode) {
		return ErrConversionUnavailable
	}

	p.mode = mode

	if mode != beatmap.ModeOsu {
		p.relax = false
	}

	return nil
}

// ModeOrIgnore switches the calculator to another mode, keeping the current
// one when conversion is unavailable.
func (p *Performance) ModeOrIgnore(mode beatmap.Mode) *Performance {
	_ = p.TryMode(mode)
	return p
}

// Relax toggles the legacy Relax-calibrated engine. It only applies while
// the calculator dispatches to Standard.
func (p *Performance) Relax(relax bool) *Performance {
	p.relax = relax
	return p
}

func (p *Performance) Mods(m mods.Modifier) *Performance {
	p.diff.Mods = m
	return p
}

func (p *Performance) Difficulty(d difficulty.Difficulty) *Performance {
	p.diff = d
	return p
}

func (p *Performance) GetDifficulty() difficulty.Difficulty { return p.diff }

// Lazer toggles lazer scoring where the mode distinguishes it.
func (p *Performance) Lazer(lazer bool) *Performance {
	p.lazer = lazer
	return p
}

func (p *Performance) PassedObjects(n int) *Performance {
	p.passed = &n
	return p
}

// Accuracy sets a target accuracy between 0 and 100 used to synthesize
// hitresults.
func (p *Performance) Accuracy(acc float64) *Performance {
	p.acc = &acc
	return p
}

func (p *Performance) Combo(combo int) *Performance {
	p.combo = &combo
	return p
}

func (p *Performance) SliderTickHits(n int) *Performance {
	p.sliderTickHits = &n
	return p
}

func (p *Performance) SliderEndHits(n int) *Performance {
	p.sliderEndHits = &n
	return p
}

// N320 sets the mania perfect count. Other modes ignore it.
func (p *Performance) N320(n int) *Performance {
	p.n320 = &n
	return p
}

// N300 sets the great count; for catch this is the fruit count.
func (p *Performance) N300(n int) *Performance {
	p.n300 = &n
	return p
}

// NKatu sets the mania 200 count or the catch tiny droplet miss count.
func (p *Performance) NKatu(n int) *Performance {
	p.nKatu = &n
	return p
}

// N100 sets the ok count; for catch this is the droplet count.
func (p *Performance) N100(n int) *Performance {
	p.n100 = &n
	return p
}

// N50 sets the meh count; for catch this is the tiny droplet count.
func (p *Performance) N50(n int) *Performance {
	p.n50 = &n
	return p
}

func (p *Performance) Misses(n int) *Performance {
	p.misses = &n
	return p
}

func (p *Performance) HitResultPriority(priority api.HitResultPriority) *Performance {
	p.priority = priority
	return p
}

func (p *Performance) State(state api.ScoreState) *Performance {
	return p.Combo(state.MaxCombo).
		SliderTickHits(state.SliderTickHits).
		SliderEndHits(state.SliderEndHits).
		N320(state.N320).
		N300(state.N300).
		NKatu(state.NKatu).
		N100(state.N100).
		N50(state.N50).
		Misses(state.Misses)
}

// GenerateState resolves the configured inputs into the generic score state
// the calculation will use.
// canRelax reports whether the legacy engine serves this calculation.
// Relax-flavoured attributes always dispatch there, only the Standard engine
// can read the regular ones; with a map the toggle decides.
func (p *Performance) canRelax() bool {
	if p.mode != beatmap.ModeOsu {
		return false
	}

	if _, ok := p.attrs.(api.RelaxDifficultyAttributes); ok {
		return true
	}

	return p.relax && p.bmap != nil
}

func (p *Performance) GenerateState() api.ScoreState {
	switch {
	case p.canRelax():
		return generalizeOsu(p.buildRelax().GenerateState())
	case p.mode == beatmap.ModeTaiko:
		state := p.buildTaiko().GenerateState()

		return api.ScoreState{
			MaxCombo: state.MaxCombo,
			N300:     state.N300,
			N100:     state.N100,
			Misses:   state.Misses,
		}
	case p.mode == beatmap.ModeCatch:
		state := p.buildCatch().GenerateState()

		return api.ScoreState{
			MaxCombo: state.MaxCombo,
			N300:     state.Fruits,
			N100:     state.Droplets,
			N50:      state.TinyDroplets,
			NKatu:    state.TinyDropletMiss,
			Misses:   state.Misses,
		}
	case p.mode == beatmap.ModeMania:
		state := p.buildMania().GenerateState()

		return api.ScoreState{
			MaxCombo: state.MaxCombo,
			N320:     state.N320,
			N300:     state.N300,
			NKatu:    state.N200,
			N100:     state.N100,
			N50:      state.N50,
			Misses:   state.Misses,
		}
	default:
		return generalizeOsu(p.buildOsu().GenerateState())
	}
}

// Calculate dispatches the full performance computation to the engine of the
// current mode.
func (p *Performance) Calculate() api.PerformanceAttributes {
	switch {
	case p.canRelax():
		return p.buildRelax().Calculate()
	case p.mode == beatmap.ModeTaiko:
		return p.buildTaiko().Calculate()
	case p.mode == beatmap.ModeCatch:
		return p.buildCatch().Calculate()
	case p.mode == beatmap.ModeMania:
		return p.buildMania().Calculate()
	default:
		return p.buildOsu().Calculate()
	}
}

func generalizeOsu(state api.OsuScoreState) api.ScoreState {
	return api.ScoreState{
		MaxCombo:       state.MaxCombo,
		SliderTickHits: state.SliderTickHits,
		SliderEndHits:  state.SliderEndHits,
		N300:           state.N300,
		N100:           state.N100,
		N50:            state.N50,
		Misses:         state.Misses,
	}
}

func (p *Performance) buildOsu() *osu.Performance {
	var inner *osu.Performance

	if attrs, ok := p.attrs.(api.OsuDifficultyAttributes); ok {
		inner = osu.NewPerformanceFromAttrs(attrs)
	} else {
		inner = osu.NewPerformance(p.bmap)
	}

	inner.Difficulty(p.diff).Lazer(p.lazer).HitResultPriority(p.priority)

	if p.passed != nil {
		inner.PassedObjects(*p.passed)
	}

	if p.acc != nil {
		inner.Accuracy(*p.acc)
	}

	if p.combo != nil {
		inner.Combo(*p.combo)
	}

	if p.sliderTickHits != nil {
		inner.SliderTickHits(*p.sliderTickHits)
	}

	if p.sliderEndHits != nil {
		inner.SliderEndHits(*p.sliderEndHits)
	}

	if p.n300 != nil {
		inner.N300(*p.n300)
	}

	if p.n100 != nil {
		inner.N100(*p.n100)
	}

	if p.n50 != nil {
		inner.N50(*p.n50)
	}

	if p.misses != nil {
		inner.Misses(*p.misses)
	}

	return inner
}

func (p *Performance) buildRelax() *relax.Performance {
	var inner *relax.Performance

	if attrs, ok := p.attrs.(api.RelaxDifficultyAttributes); ok {
		inner = relax.NewPerformanceFromAttrs(attrs)
	} else {
		inner = relax.NewPerformance(p.bmap)
	}

	inner.Difficulty(p.diff).Lazer(p.lazer).HitResultPriority(p.priority)

	if p.passed != nil {
		inner.PassedObjects(*p.passed)
	}

	if p.acc != nil {
		inner.Accuracy(*p.acc)
	}

	if p.combo != nil {
		inner.Combo(*p.combo)
	}

	if p.sliderTickHits != nil {
		inner.SliderTickHits(*p.sliderTickHits)
	}

	if p.sliderEndHits != nil {
		inner.SliderEndHits(*p.sliderEndHits)
	}

	if p.n300 != nil {
		inner.N300(*p.n300)
	}

	if p.n100 != nil {
		inner.N100(*p.n100)
	}

	if p.n50 != nil {
		inner.N50(*p.n50)
	}

	if p.misses != nil {
		inner.Misses(*p.misses)
	}

	return inner
}

func (p *Performance) buildTaiko() *taiko.Performance {
	var inner *taiko.Performance

	if attrs, ok := p.attrs.(api.TaikoDifficultyAttributes); ok {
		inner = taiko.NewPerformanceFromAttrs(attrs)
	} else {
		inner = taiko.NewPerformance(p.bmap)
	}

	inner.Difficulty(p.diff).HitResultPriority(p.priority)

	if p.passed != nil {
		inner.PassedObjects(*p.passed)
	}

	if p.acc != nil {
		inner.Accuracy(*p.acc)
	}

	if p.combo != nil {
		inner.Combo(*p.combo)
	}

	if p.n300 != nil {
		inner.N300(*p.n300)
	}

	if p.n100 != nil {
		inner.N100(*p.n100)
	}

	if p.misses != nil {
		inner.Misses(*p.misses)
	}

	return inner
}

func (p *Performance) buildCatch() *catch.Performance {
	var inner *catch.Performance

	if attrs, ok := p.attrs.(api.CatchDifficultyAttributes); ok {
		inner = catch.NewPerformanceFromAttrs(attrs)
	} else {
		inner = catch.NewPerformance(p.bmap)
	}

	inner.Difficulty(p.diff)

	if p.passed != nil {
		inner.PassedObjects(*p.passed)
	}

	if p.acc != nil {
		inner.Accuracy(*p.acc)
	}

	if p.combo != nil {
		inner.Combo(*p.combo)
	}

	if p.n300 != nil {
		inner.Fruits(*p.n300)
	}

	if p.n100 != nil {
		inner.Droplets(*p.n100)
	}

	if p.n50 != nil {
		inner.TinyDroplets(*p.n50)
	}

	if p.nKatu != nil {
		inner.TinyDropletMisses(*p.nKatu)
	}

	if p.misses != nil {
		inner.Misses(*p.misses)
	}

	return inner
}

func (p *Performance) buildMania() *mania.Performance {
	var inner *mania.Performance

	if attrs, ok := p.attrs.(api.ManiaDifficultyAttributes); ok {
		inner = mania.NewPerformanceFromAttrs(attrs)
	} else {
		inner = mania.NewPerformance(p.bmap)
	}

	inner.Difficulty(p.diff).HitResultPriority(p.priority)

	if p.passed != nil {
		inner.PassedObjects(*p.passed)
	}

	if p.acc != nil {
		inner.Accuracy(*p.acc)
	}

	if p.combo != nil {
		inner.Combo(*p.combo)
	}

	if p.n320 != nil {
		inner.N320(*p.n320)
	}

	if p.n300 != nil {
		inner.N300(*p.n300)
	}

	if p.nKatu != nil {
		inner.N200(*p.nKatu)
	}

	if p.n100 != nil {
		inner.N100(*p.n100)
	}

	if p.n50 != nil {
		inner.N50(*p.n50)
	}

	if p.misses != nil {
		inner.Misses(*p.misses)
	}

	return inner
}
