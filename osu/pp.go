package osu

import (
	"math"

	"github.com/osukit/rating-go/api"
	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/mods"
	"github.com/osukit/rating-go/osu/skills"
	"github.com/osukit/rating-go/util/mutils"
)

// Performance is the builder-style pp calculator for Standard. It is backed
// either by a beatmap (attributes are computed on demand) or by previously
// computed attributes.
type Performance struct {
	bmap  *beatmap.Beatmap
	attrs *api.OsuDifficultyAttributes

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

func NewPerformanceFromAttrs(attrs api.OsuDifficultyAttributes) *Performance {
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

func (p *Performance) attributes() api.OsuDifficultyAttributes {
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

	state := SynthesizeScoreState(ScoreStateInputs{
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
func (p *Performance) Calculate() api.OsuPerformanceAttributes {
	state := p.GenerateState()
	attrs := p.attributes()

	effectiveMissCount := calculateEffectiveMisses(attrs, state)

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
		effectiveMissCount: effectiveMissCount,
		lazer:              p.lazer,
	}

	return inner.calculate()
}

type performanceInner struct {
	attrs              api.OsuDifficultyAttributes
	mods               mods.Modifier
	acc                float64
	state              api.OsuScoreState
	effectiveMissCount float64
	lazer              bool
}

func (inner *performanceInner) calculate() api.OsuPerformanceAttributes {
	usingClassicSliderAcc := !inner.lazer

	totalHits := float64(inner.state.TotalHits())

	if totalHits == 0 {
		return api.OsuPerformanceAttributes{Attributes: inner.attrs}
	}

	multiplier := PerformanceBaseMultiplier

	if inner.mods.NF() {
		multiplier *= math.Max(0.9, 1-0.02*inner.effectiveMissCount)
	}

	if inner.mods.SO() {
		multiplier *= 1 - math.Pow(float64(inner.attrs.Spinners)/totalHits, 0.85)
	}

	if inner.mods.RX() {
		// OD 13.33 is where the great hit window reaches zero, well beyond
		// anything achievable.
		n100Mult, n50Mult := 1.0, 1.0
		if inner.attrs.OD > 0 {
			n100Mult = 1 - math.Pow(inner.attrs.OD/13.33, 1.8)
			n50Mult = 1 - math.Pow(inner.attrs.OD/13.33, 5)
		}

		inner.effectiveMissCount = math.Min(totalHits,
			inner.effectiveMissCount+float64(inner.state.N100)*n100Mult+float64(inner.state.N50)*n50Mult)
	}

	aimValue := inner.computeAimValue()
	speedValue := inner.computeSpeedValue()
	accValue := inner.computeAccuracyValue(usingClassicSliderAcc)
	flashlightValue := inner.computeFlashlightValue()

	pp := math.Pow(
		math.Pow(aimValue, 1.1)+
			math.Pow(speedValue, 1.1)+
			math.Pow(accValue, 1.1)+
			math.Pow(flashlightValue, 1.1),
		1.0/1.1,
	) * multiplier

	return api.OsuPerformanceAttributes{
		Attributes:         inner.attrs,
		PP:                 pp,
		PPAim:              aimValue,
		PPSpeed:            speedValue,
		PPAcc:              accValue,
		PPFlashlight:       flashlightValue,
		EffectiveMissCount: inner.effectiveMissCount,
	}
}

func (inner *performanceInner) lengthBonus(totalHits float64) float64 {
	bonus := 0.95 + 0.4*math.Min(totalHits/2000, 1)

	if totalHits > 2000 {
		bonus += math.Log10(totalHits/2000) * 0.5
	}

	return bonus
}

func (inner *performanceInner) computeAimValue() float64 {
	if inner.mods.AP() {
		return 0
	}

	aimValue := skills.DefaultDifficultyToPerformance(inner.attrs.Aim)

	totalHits := float64(inner.state.TotalHits())
	lenBonus := inner.lengthBonus(totalHits)

	aimValue *= lenBonus

	if inner.effectiveMissCount > 0 {
		aimValue *= calculateMissPenalty(inner.effectiveMissCount, inner.attrs.AimDifficultStrainCount)
	}

	arFactor := 0.0
	switch {
	case inner.mods.RX():
	case inner.attrs.AR > 10.33:
		arFactor = 0.3 * (inner.attrs.AR - 10.33)
	case inner.attrs.AR < 8.0:
		arFactor = 0.05 * (8.0 - inner.attrs.AR)
	}

	// Buff for longer maps with high AR.
	aimValue *= 1 + arFactor*lenBonus

	if inner.mods.HD() {
		// Reward lower AR when HD is on, nerf high AR.
		aimValue *= 1 + 0.04*(12-inner.attrs.AR)
	}

	// Assume 15% of sliders are difficult; there is no way to tell from
	// the score alone.
	estimateDiffSliders := float64(inner.attrs.Sliders) * 0.15

	if inner.attrs.Sliders > 0 {
		estimateSliderEndsDropped := mutils.Clamp(
			float64(min(inner.state.N100+inner.state.N50+inner.state.Misses, inner.attrs.MaxCombo-inner.state.MaxCombo)),
			0, estimateDiffSliders)

		sliderNerfFactor := (1-inner.attrs.SliderFactor)*
			math.Pow(1-estimateSliderEndsDropped/estimateDiffSliders, 3) +
			inner.attrs.SliderFactor

		aimValue *= sliderNerfFactor
	}

	aimValue *= inner.acc
	// Accuracy difficulty still matters when scaling with accuracy.
	aimValue *= 0.98 + math.Pow(inner.attrs.OD, 2)/2500

	return aimValue
}

func (inner *performanceInner) computeSpeedValue() float64 {
	if inner.mods.RX() {
		return 0
	}

	speedValue := skills.DefaultDifficultyToPerformance(inner.attrs.Speed)

	totalHits := float64(inner.state.TotalHits())
	lenBonus := inner.lengthBonus(totalHits)

	speedValue *= lenBonus

	if inner.effectiveMissCount > 0 {
		speedValue *= calculateMissPenalty(inner.effectiveMissCount, inner.attrs.SpeedDifficultStrainCount)
	}

	arFactor := 0.0
	if !inner.mods.AP() && inner.attrs.AR > 10.33 {
		arFactor = 0.3 * (inner.attrs.AR - 10.33)
	}

	speedValue *= 1 + arFactor*lenBonus

	if inner.mods.HD() {
		speedValue *= 1 + 0.04*(12-inner.attrs.AR)
	}

	// Accuracy of the speed-relevant notes, assuming the worst case.
	relevantTotalDiff := totalHits - inner.attrs.SpeedNoteCount
	relevantN300 := math.Max(0, float64(inner.state.N300)-relevantTotalDiff)
	relevantN100 := math.Max(0, float64(inner.state.N100)-math.Max(0, relevantTotalDiff-float64(inner.state.N300)))
	relevantN50 := math.Max(0, float64(inner.state.N50)-math.Max(0, relevantTotalDiff-float64(inner.state.N300+inner.state.N100)))

	relevantAcc := 0.0
	if inner.attrs.SpeedNoteCount > 0 {
		relevantAcc = (relevantN300*6 + relevantN100*2 + relevantN50) / (inner.attrs.SpeedNoteCount * 6)
	}

	// Scale the speed value with accuracy and OD.
	speedValue *= (0.95 + inner.attrs.OD*inner.attrs.OD/750) *
		math.Pow((inner.acc+relevantAcc)/2, (14.5-inner.attrs.OD)/2)

	// Punish doubletapping through the 50 count.
	n50 := float64(inner.state.N50)
	if n50 >= totalHits/500 {
		speedValue *= math.Pow(0.99, n50-totalHits/500)
	}

	return speedValue
}

func (inner *performanceInner) computeAccuracyValue(usingClassicSliderAcc bool) float64 {
	if inner.mods.RX() {
		return 0
	}

	// Only objects with a timing window count here; slider heads join in
	// under lazer scoring.
	amountHitObjectsWithAcc := inner.attrs.Circles
	if !usingClassicSliderAcc {
		amountHitObjectsWithAcc += inner.attrs.Sliders
	}

	betterAccPercentage := 0.0

	if amountHitObjectsWithAcc > 0 {
		sub := inner.state.TotalHits() - amountHitObjectsWithAcc

		// The formula can go negative; cap at zero points.
		if inner.state.N300 >= sub {
			betterAccPercentage = float64((inner.state.N300-sub)*6+inner.state.N100*2+inner.state.N50) /
				float64(amountHitObjectsWithAcc*6)
		}
	}

	// Lots of arbitrary values from testing.
	accValue := math.Pow(1.52163, inner.attrs.OD) * math.Pow(betterAccPercentage, 24) * 2.83

	// Harder to keep good accuracy up on longer maps.
	accValue *= math.Min(1.15, math.Pow(float64(amountHitObjectsWithAcc)/1000, 0.3))

	if inner.mods.HD() {
		accValue *= 1.08
	}

	if inner.mods.FL() {
		accValue *= 1.02
	}

	return accValue
}

func (inner *performanceInner) computeFlashlightValue() float64 {
	if !inner.mods.FL() {
		return 0
	}

	flashlightValue := skills.FlashlightDifficultyToPerformance(inner.attrs.Flashlight)

	totalHits := float64(inner.state.TotalHits())

	// Penalize misses relative to the total object count; any miss costs at
	// least 3%.
	if inner.effectiveMissCount > 0 {
		flashlightValue *= 0.97 * math.Pow(
			1-math.Pow(inner.effectiveMissCount/totalHits, 0.775),
			math.Pow(inner.effectiveMissCount, 0.875))
	}

	flashlightValue *= inner.comboScalingFactor()

	// Shorter maps spend a larger share at low-combo beam radius.
	lenBonus := 0.7 + 0.1*math.Min(totalHits/200, 1)
	if totalHits > 200 {
		lenBonus += 0.2 * math.Min((totalHits-200)/200, 1)
	}

	flashlightValue *= lenBonus

	// Scale the flashlight value with accuracy slightly.
	flashlightValue *= 0.5 + inner.acc/2
	flashlightValue *= 0.98 + math.Pow(inner.attrs.OD, 2)/2500

	return flashlightValue
}

func (inner *performanceInner) comboScalingFactor() float64 {
	if inner.attrs.MaxCombo == 0 {
		return 1
	}

	return math.Min(1, math.Pow(float64(inner.state.MaxCombo), 0.8)/math.Pow(float64(inner.attrs.MaxCombo), 0.8))
}

// calculateMissPenalty assumes misses land on the hardest sections, so maps
// with fewer hard sections are punished harder per miss.
func calculateMissPenalty(missCount, diffStrainCount float64) float64 {
	return 0.96 / ((missCount / (4 * math.Pow(math.Log(diffStrainCount), 0.94))) + 1)
}

func calculateEffectiveMisses(attrs api.OsuDifficultyAttributes, state api.OsuScoreState) float64 {
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
