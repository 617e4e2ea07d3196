package relax

import (
	"math"

	"github.com/osukit/rating-go/api"
	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/mods"
	"github.com/osukit/rating-go/osu"
	"github.com/osukit/rating-go/util/mutils"
)

// Performance is the builder-style pp calculator for the legacy
// Relax-calibrated engine. It is backed either by a beatmap or by
// previously computed attributes.
type Performance struct {
	bmap  *beatmap.Beatmap
	attrs *api.RelaxDifficultyAttributes

	diff difficulty.Difficulty

	acc *float64

	combo          *int
	sliderTickHits *int
	sliderEndHits  *int
	n300           *int
	n100           *int
	n50            *int
	misses         *int

	priority api.HitResultPriority
	lazer    bool
}

func NewPerformance(b *beatmap.Beatmap) *Performance {
	return &Performance{bmap: b, lazer: true}
}

func NewPerformanceFromAttrs(attrs api.RelaxDifficultyAttributes) *Performance {
	return &Performance{attrs: &attrs, lazer: true}
}

// HasMap reports whether the calculator still holds a beatmap, which is
// required for mode conversion.
func (p *Performance) HasMap() bool { return p.bmap != nil }

// Beatmap returns the held beatmap, or nil after attribute substitution.
func (p *Performance) Beatmap() *beatmap.Beatmap { return p.bmap }

func (p *Performance) Mods(m mods.Modifier) *Performance {
	p.diff.Mods = m
	return p
}

func (p *Performance) Difficulty(d difficulty.Difficulty) *Performance {
	p.diff = d
	return p
}

func (p *Performance) GetDifficulty() difficulty.Difficulty { return p.diff }

// Accuracy sets a target accuracy between 0 and 100 used to synthesize
// hitresults.
func (p *Performance) Accuracy(acc float64) *Performance {
	acc = mutils.Clamp(acc, 0, 100) / 100
	p.acc = &acc

	return p
}

func (p *Performance) Combo(combo int) *Performance {
	p.combo = &combo
	return p
}

func (p *Performance) N300(n int) *Performance {
	p.n300 = &n
	return p
}

func (p *Performance) N100(n int) *Performance {
	p.n100 = &n
	return p
}

func (p *Performance) N50(n int) *Performance {
	p.n50 = &n
	return p
}

func (p *Performance) Misses(n int) *Performance {
	p.misses = &n
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

func (p *Performance) HitResultPriority(priority api.HitResultPriority) *Performance {
	p.priority = priority
	return p
}

// Lazer toggles lazer scoring rules; slider ticks and ends count toward
// accuracy only on lazer. Defaults to true.
func (p *Performance) Lazer(lazer bool) *Performance {
	p.lazer = lazer
	return p
}

func (p *Performance) PassedObjects(n int) *Performance {
	p.diff = p.diff.WithPassedObjects(n)
	return p
}

func (p *Performance) State(state api.OsuScoreState) *Performance {
	return p.Combo(state.MaxCombo).
		SliderTickHits(state.SliderTickHits).
		SliderEndHits(state.SliderEndHits).
		N300(state.N300).
		N100(state.N100).
		N50(state.N50).
		Misses(state.Misses)
}

func (p *Performance) attributes() api.RelaxDifficultyAttributes {
	if p.attrs == nil {
		attrs := CalculateDifficulty(p.bmap, p.diff)
		p.attrs = &attrs
		p.bmap = nil
	}

	return *p.attrs
}

// GenerateState resolves the configured inputs into the score state used
// for calculation, synthesizing hitresults from accuracy when buckets are
// left open.
func (p *Performance) GenerateState() api.OsuScoreState {
	attrs := p.attributes()

	state := osu.SynthesizeScoreState(osu.ScoreStateInputs{
		ObjectCount:    min(p.diff.PassedObjects(attrs.ObjectCount), attrs.ObjectCount),
		MaxCombo:       attrs.MaxCombo,
		Sliders:        attrs.Sliders,
		SliderTicks:    attrs.SliderTicks,
		Lazer:          p.lazer,
		Priority:       p.priority,
		Accuracy:       p.acc,
		Combo:          p.combo,
		SliderTickHits: p.sliderTickHits,
		SliderEndHits:  p.sliderEndHits,
		N300:           p.n300,
		N100:           p.n100,
		N50:            p.n50,
		Misses:         p.misses,
	})

	p.State(state)

	return state
}

// Calculate runs the full performance computation.
func (p *Performance) Calculate() api.RelaxPerformanceAttributes {
	state := p.GenerateState()
	attrs := p.attributes()

	var nSliderEnds, nSliderTicks int
	if p.lazer {
		nSliderEnds = attrs.Sliders
		nSliderTicks = attrs.SliderTicks
	}

	inner := performanceInner{
		attrs:              attrs,
		mods:               p.diff.Mods,
		acc:                state.Accuracy(nSliderTicks, nSliderEnds),
		state:              state,
		effectiveMissCount: calculateEffectiveMisses(attrs, state),
	}

	return inner.calculate()
}

type performanceInner struct {
	attrs              api.RelaxDifficultyAttributes
	mods               mods.Modifier
	acc                float64
	state              api.OsuScoreState
	effectiveMissCount float64
}

func (inner *performanceInner) calculate() api.RelaxPerformanceAttributes {
	totalHits := float64(inner.state.TotalHits())

	if totalHits == 0 {
		return api.RelaxPerformanceAttributes{Attributes: inner.attrs}
	}

	multiplier := PerformanceBaseMultiplier

	if inner.mods.SO() {
		multiplier *= 1 - math.Pow(float64(inner.attrs.Spinners)/totalHits, 0.85)
	}

	aimValue := inner.computeAimValue(totalHits)
	speedValue := inner.computeSpeedValue(totalHits)
	accValue := inner.computeAccuracyValue(totalHits)

	// Jump maps with inflated accuracy get their aim share depressed.
	accDepression := 1.0

	streamsNerf := math.Round(inner.attrs.Aim/inner.attrs.Speed*100) / 100

	if streamsNerf < 1.09 {
		accFactor := math.Abs(1 - inner.acc)
		accDepression = math.Max(0.86-accFactor, 0.5)

		aimValue *= accDepression
	}

	nodtBonus := 1.0
	if !inner.mods.DT() && !inner.mods.HT() {
		nodtBonus = 1.02
	}

	pp := math.Pow(
		math.Pow(aimValue, 1.185*nodtBonus)+
			math.Pow(speedValue, 0.83*accDepression)+
			math.Pow(accValue, 1.14*nodtBonus),
		1.0/1.1,
	) * multiplier

	if inner.mods.DT() && inner.mods.HR() {
		pp *= 1.025
	}

	if inner.attrs.BeatmapCreator == "gwb" || inner.attrs.BeatmapCreator == "Plasma" {
		pp *= 0.9
	}

	pp *= inner.mapCalibration()

	return api.RelaxPerformanceAttributes{
		Attributes: inner.attrs,
		PP:         pp,
		PPAim:      aimValue,
		PPSpeed:    speedValue,
		PPAcc:      accValue,
	}
}

// mapCalibration holds per-map multipliers for charts whose legacy rating
// overshoots by a wide margin, mostly marathon compilations.
func (inner *performanceInner) mapCalibration() float64 {
	switch inner.attrs.BeatmapID {
	case 1808605: // Louder than steel [ok this is epic]
		return 0.85
	case 1821147: // over the top [Above the stars]
		return 0.70
	case 1844776: // Just press F [Parkour's ok this is epic]
		return 0.64
	case 1777768: // Hardware Store [skyapple mode]
		return 0.90
	case 1962833: // Akatsuki compilation [ok this is akatsuki]
		if inner.mods.DT() {
			return 0.885 * 0.83
		}

		return 0.885
	case 2403677: // Songs Compilation [Marathon]
		return 0.85
	case 2174272: // Songs Compilation [Remembrance]
		return 0.85
	case 2382377: // Apocalypse 1992 [Universal Annihilation]
		return 0.85
	default:
		return 1.0
	}
}

func (inner *performanceInner) lengthBonus(totalHits float64) float64 {
	bonus := 0.88 + 0.4*math.Min(totalHits/2000, 1)

	if totalHits > 2000 {
		bonus += math.Log10(totalHits/2000) * 0.5
	}

	return bonus
}

func (inner *performanceInner) computeAimValue(totalHits float64) float64 {
	rawAim := inner.attrs.Aim
	if inner.mods.TD() {
		rawAim = math.Pow(rawAim, 0.8)
	}

	aimValue := math.Pow(5*math.Max(1, rawAim/0.0675)-4, 3) / 100000

	lenBonus := inner.lengthBonus(totalHits)
	aimValue *= lenBonus

	if inner.effectiveMissCount > 0 {
		aimValue *= inner.calculateMissPenalty(totalHits)
	}

	arFactor := 0.0
	if inner.attrs.AR > 10.33 {
		arFactor = 0.3 * (inner.attrs.AR - 10.33)
	}

	if inner.attrs.AR < 8.0 {
		arFactor = 0.025 * (8.0 - inner.attrs.AR)
	}

	aimValue *= 1 + arFactor*lenBonus

	if inner.mods.HD() {
		aimValue *= 1 + 0.05*(11-inner.attrs.AR)
	}

	if inner.mods.FL() {
		flBonus := 1 + 0.3*math.Min(totalHits/200, 1)

		if totalHits > 200 {
			flBonus += 0.25 * math.Min((totalHits-200)/300, 1)
		}

		if totalHits > 500 {
			flBonus += (totalHits - 500) / 1600
		}

		aimValue *= flBonus
	}

	if inner.mods.EZ() {
		baseBuff := 1.08

		if inner.attrs.AR <= 8 {
			baseBuff += (7 - inner.attrs.AR) / 100
		}

		aimValue *= baseBuff
	}

	// Scale with accuracy and accuracy difficulty.
	aimValue *= 0.3 + inner.acc/2
	aimValue *= 0.98 + inner.attrs.OD*inner.attrs.OD/2500

	return aimValue
}

func (inner *performanceInner) computeSpeedValue(totalHits float64) float64 {
	speedValue := math.Pow(5*math.Max(1, inner.attrs.Speed/0.0675)-4, 3) / 100000

	lenBonus := inner.lengthBonus(totalHits)
	speedValue *= lenBonus

	if inner.effectiveMissCount > 0 {
		speedValue *= inner.calculateMissPenalty(totalHits)
	}

	arFactor := 0.0
	if inner.attrs.AR > 10.33 {
		arFactor = 0.3 * (inner.attrs.AR - 10.33)
	}

	if inner.attrs.AR < 8.0 {
		arFactor = 0.025 * (8.0 - inner.attrs.AR)
	}

	speedValue *= 1 + arFactor*lenBonus

	if inner.mods.HD() {
		speedValue *= 1 + 0.05*(11-inner.attrs.AR)
	}

	// Scale the speed value with accuracy and OD.
	speedValue *= (0.93 + inner.attrs.OD*inner.attrs.OD/750) *
		math.Pow(inner.acc, (14.5-math.Max(inner.attrs.OD, 8))/2)

	// Punish doubletapping through the 50 count.
	n50 := float64(inner.state.N50)
	if n50 >= totalHits/500 {
		speedValue *= math.Pow(0.98, n50-totalHits/500)
	}

	return speedValue
}

func (inner *performanceInner) computeAccuracyValue(totalHits float64) float64 {
	nCircles := float64(inner.attrs.Circles)

	betterAccPercentage := 0.0
	if nCircles > 0 {
		betterAccPercentage = math.Max(0,
			((float64(inner.state.N300)-(totalHits-nCircles))*6+
				float64(inner.state.N100)*2+
				float64(inner.state.N50))/(nCircles*6))
	}

	accValue := math.Pow(1.52163, inner.attrs.OD) * math.Pow(betterAccPercentage, 24) * 2.83

	// Bonus for many hitcircles.
	accValue *= math.Min(1.15, math.Pow(nCircles/1000, 0.3))

	if inner.mods.HD() {
		accValue *= 1.08
	}

	if inner.mods.FL() {
		accValue *= 1.02
	}

	return accValue
}

func (inner *performanceInner) calculateMissPenalty(totalHits float64) float64 {
	return 0.97 * math.Pow(
		1-math.Pow(inner.effectiveMissCount/totalHits, 0.5),
		1+inner.effectiveMissCount/1.5)
}

func calculateEffectiveMisses(attrs api.RelaxDifficultyAttributes, state api.OsuScoreState) float64 {
	// Guess the number of misses plus slider breaks from combo.
	comboBasedMissCount := 0.0

	if attrs.Sliders > 0 {
		fullComboThreshold := float64(attrs.MaxCombo) - 0.1*float64(attrs.Sliders)

		if float64(state.MaxCombo) < fullComboThreshold {
			comboBasedMissCount = fullComboThreshold / math.Max(1, float64(state.MaxCombo))
		}
	}

	// Clamp to the maximum amount of possible breaks.
	comboBasedMissCount = math.Min(comboBasedMissCount, float64(state.N100+state.N50+state.Misses))

	return math.Max(comboBasedMissCount, float64(state.Misses))
}
