package taiko

import (
	"math"

	"github.com/osukit/rating-go/api"
	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/mods"
	"github.com/osukit/rating-go/util/mutils"
)

// Performance is the builder-style pp calculator for taiko. It is backed
// either by a beatmap or by previously computed attributes.
type Performance struct {
	bmap  *beatmap.Beatmap
	attrs *api.TaikoDifficultyAttributes

	diff difficulty.Difficulty

	acc *float64

	combo  *int
	n300   *int
	n100   *int
	misses *int

	priority api.HitResultPriority
}

func NewPerformance(b *beatmap.Beatmap) *Performance {
	return &Performance{bmap: b}
}

func NewPerformanceFromAttrs(attrs api.TaikoDifficultyAttributes) *Performance {
	return &Performance{attrs: &attrs}
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

func (p *Performance) Misses(n int) *Performance {
	p.misses = &n
	return p
}

func (p *Performance) HitResultPriority(priority api.HitResultPriority) *Performance {
	p.priority = priority
	return p
}

func (p *Performance) PassedObjects(n int) *Performance {
	p.diff = p.diff.WithPassedObjects(n)
	return p
}

func (p *Performance) State(state api.TaikoScoreState) *Performance {
	return p.Combo(state.MaxCombo).
		N300(state.N300).
		N100(state.N100).
		Misses(state.Misses)
}

func (p *Performance) attributes() api.TaikoDifficultyAttributes {
	if p.attrs == nil {
		attrs := CalculateDifficulty(p.bmap, p.diff)
		p.attrs = &attrs
		p.bmap = nil
	}

	return *p.attrs
}

// GenerateState resolves the configured inputs into the score state used for
// calculation, synthesizing hitresults from accuracy when buckets are left
// open. Only hits judge, so the total is the max combo.
func (p *Performance) GenerateState() api.TaikoScoreState {
	attrs := p.attributes()

	total := min(p.diff.PassedObjects(attrs.MaxCombo), attrs.MaxCombo)

	misses := 0
	if p.misses != nil {
		misses = min(*p.misses, total)
	}

	nRemaining := total - misses

	n300 := clampSet(p.n300, nRemaining)
	n100 := clampSet(p.n100, nRemaining)

	if p.acc != nil {
		switch {
		case p.n300 != nil && p.n100 != nil:
			remaining := max(0, total-(n300+n100+misses))

			if p.priority == api.BestCase {
				n300 += remaining
			} else {
				n100 += remaining
			}
		case p.n300 != nil:
			n100 = max(0, total-(n300+misses))
		case p.n100 != nil:
			n300 = max(0, total-(n100+misses))
		default:
			// Accuracy counts a 300 twice and a 100 once, so the 300 count
			// follows directly from the target.
			target := math.Round(*p.acc * float64(2*total))

			n300 = mutils.Clamp(int(target)-nRemaining, 0, nRemaining)
			n100 = nRemaining - n300
		}
	} else {
		remaining := max(0, total-(n300+n100+misses))

		if p.priority == api.BestCase {
			if p.n300 == nil {
				n300 = remaining
			} else if p.n100 == nil {
				n100 = remaining
			} else {
				n300 += remaining
			}
		} else {
			if p.n100 == nil {
				n100 = remaining
			} else if p.n300 == nil {
				n300 = remaining
			} else {
				n100 += remaining
			}
		}
	}

	maxPossibleCombo := max(0, attrs.MaxCombo-misses)

	maxCombo := maxPossibleCombo
	if p.combo != nil {
		maxCombo = min(*p.combo, maxPossibleCombo)
	}

	state := api.TaikoScoreState{
		MaxCombo: maxCombo,
		N300:     n300,
		N100:     n100,
		Misses:   misses,
	}

	p.State(state)

	return state
}

// Calculate runs the full performance computation.
func (p *Performance) Calculate() api.TaikoPerformanceAttributes {
	state := p.GenerateState()
	attrs := p.attributes()

	inner := performanceInner{
		attrs:              attrs,
		mods:               p.diff.Mods,
		acc:                state.Accuracy(),
		state:              state,
		effectiveMissCount: calculateEffectiveMisses(state),
	}

	return inner.calculate()
}

func clampSet(v *int, limit int) int {
	if v == nil {
		return 0
	}

	return min(*v, limit)
}

type performanceInner struct {
	attrs              api.TaikoDifficultyAttributes
	mods               mods.Modifier
	acc                float64
	state              api.TaikoScoreState
	effectiveMissCount float64
}

func (inner *performanceInner) calculate() api.TaikoPerformanceAttributes {
	totalHits := float64(inner.state.TotalHits())

	if totalHits == 0 {
		return api.TaikoPerformanceAttributes{Attributes: inner.attrs}
	}

	multiplier := 1.13

	if inner.mods.HD() {
		multiplier *= 1.075
	}

	if inner.mods.EZ() {
		multiplier *= 0.975
	}

	diffValue := inner.computeDifficultyValue(totalHits)
	accValue := inner.computeAccuracyValue(totalHits)

	pp := math.Pow(
		math.Pow(diffValue, 1.1)+
			math.Pow(accValue, 1.1),
		1.0/1.1,
	) * multiplier

	return api.TaikoPerformanceAttributes{
		Attributes:         inner.attrs,
		PP:                 pp,
		PPDifficulty:       diffValue,
		PPAcc:              accValue,
		EffectiveMissCount: inner.effectiveMissCount,
	}
}

func (inner *performanceInner) computeDifficultyValue(totalHits float64) float64 {
	diffValue := math.Pow(5*math.Max(1, inner.attrs.Stars/0.115)-4, 2.25) / 1150

	lenBonus := 1 + 0.1*math.Min(totalHits/1500, 1)
	diffValue *= lenBonus

	diffValue *= math.Pow(0.986, inner.effectiveMissCount)

	if inner.mods.EZ() {
		diffValue *= 0.985
	}

	if inner.mods.HD() {
		diffValue *= 1.025
	}

	if inner.mods.HR() {
		diffValue *= 1.05
	}

	if inner.mods.FL() {
		diffValue *= 1.05 * lenBonus
	}

	return diffValue * inner.acc * inner.acc
}

func (inner *performanceInner) computeAccuracyValue(totalHits float64) float64 {
	if inner.attrs.GreatHitWindow <= 0 {
		return 0
	}

	accValue := math.Pow(60/inner.attrs.GreatHitWindow, 1.1) *
		math.Pow(inner.acc, 8) *
		math.Pow(inner.attrs.Stars, 0.4) * 27

	lenBonus := math.Min(1.15, math.Pow(totalHits/1500, 0.3))

	// Slight aiming bonus for longer maps with the vision mods stacked.
	if inner.mods.HD() && inner.mods.FL() {
		accValue *= math.Max(1.05, 1.075*lenBonus)
	}

	return accValue
}

// calculateEffectiveMisses scales misses up on short maps so a single miss
// is never free.
func calculateEffectiveMisses(state api.TaikoScoreState) float64 {
	if state.TotalHits() == 0 {
		return 0
	}

	return math.Max(1, 1000/float64(state.TotalHits())) * float64(state.Misses)
}
