package mania

import (
	"math"

	"github.com/osukit/rating-go/api"
	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/mods"
	"github.com/osukit/rating-go/util/mutils"
)

// Performance is the builder-style pp calculator for mania. It is backed
// either by a beatmap or by previously computed attributes.
type Performance struct {
	bmap  *beatmap.Beatmap
	attrs *api.ManiaDifficultyAttributes

	diff difficulty.Difficulty

	acc *float64

	combo  *int
	n320   *int
	n300   *int
	n200   *int
	n100   *int
	n50    *int
	misses *int

	priority api.HitResultPriority
}

func NewPerformance(b *beatmap.Beatmap) *Performance {
	return &Performance{bmap: b}
}

func NewPerformanceFromAttrs(attrs api.ManiaDifficultyAttributes) *Performance {
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

func (p *Performance) N320(n int) *Performance {
	p.n320 = &n
	return p
}

func (p *Performance) N300(n int) *Performance {
	p.n300 = &n
	return p
}

func (p *Performance) N200(n int) *Performance {
	p.n200 = &n
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

func (p *Performance) HitResultPriority(priority api.HitResultPriority) *Performance {
	p.priority = priority
	return p
}

func (p *Performance) PassedObjects(n int) *Performance {
	p.diff = p.diff.WithPassedObjects(n)
	return p
}

func (p *Performance) State(state api.ManiaScoreState) *Performance {
	return p.Combo(state.MaxCombo).
		N320(state.N320).
		N300(state.N300).
		N200(state.N200).
		N100(state.N100).
		N50(state.N50).
		Misses(state.Misses)
}

func (p *Performance) attributes() api.ManiaDifficultyAttributes {
	if p.attrs == nil {
		attrs := CalculateDifficulty(p.bmap, p.diff)
		p.attrs = &attrs
		p.bmap = nil
	}

	return *p.attrs
}

// GenerateState resolves the configured inputs into the score state used for
// calculation. Open judgement buckets are synthesized from the target
// accuracy: BestCase mixes perfects with 100s, WorstCase mixes 300s with
// 50s, which brackets the same accuracy from above and below.
func (p *Performance) GenerateState() api.ManiaScoreState {
	attrs := p.attributes()

	total := min(p.diff.PassedObjects(attrs.ObjectCount), attrs.ObjectCount)

	misses := 0
	if p.misses != nil {
		misses = min(*p.misses, total)
	}

	nRemaining := total - misses

	n320 := clampSet(p.n320, nRemaining)
	n300 := clampSet(p.n300, nRemaining)
	n200 := clampSet(p.n200, nRemaining)
	n100 := clampSet(p.n100, nRemaining)
	n50 := clampSet(p.n50, nRemaining)

	remaining := max(0, nRemaining-(n320+n300+n200+n100+n50))

	if p.acc != nil && remaining > 0 {
		// Solve the open share against the lazer accuracy weights.
		current := 320*n320 + 300*n300 + 200*n200 + 100*n100 + 50*n50
		target := *p.acc*float64(320*total) - float64(current)

		if p.priority == api.BestCase {
			perfect := int(math.Round((target - 100*float64(remaining)) / 220))
			perfect = mutils.Clamp(perfect, 0, remaining)

			n320 += perfect
			n100 += remaining - perfect
		} else {
			great := int(math.Round((target - 50*float64(remaining)) / 250))
			great = mutils.Clamp(great, 0, remaining)

			n300 += great
			n50 += remaining - great
		}
	} else if remaining > 0 {
		if p.priority == api.BestCase {
			switch {
			case p.n320 == nil:
				n320 = remaining
			case p.n300 == nil:
				n300 = remaining
			case p.n200 == nil:
				n200 = remaining
			case p.n100 == nil:
				n100 = remaining
			case p.n50 == nil:
				n50 = remaining
			default:
				n320 += remaining
			}
		} else {
			switch {
			case p.n50 == nil:
				n50 = remaining
			case p.n100 == nil:
				n100 = remaining
			case p.n200 == nil:
				n200 = remaining
			case p.n300 == nil:
				n300 = remaining
			case p.n320 == nil:
				n320 = remaining
			default:
				n50 += remaining
			}
		}
	}

	maxPossibleCombo := max(0, attrs.MaxCombo-misses)

	maxCombo := maxPossibleCombo
	if p.combo != nil {
		maxCombo = min(*p.combo, maxPossibleCombo)
	}

	state := api.ManiaScoreState{
		MaxCombo: maxCombo,
		N320:     n320,
		N300:     n300,
		N200:     n200,
		N100:     n100,
		N50:      n50,
		Misses:   misses,
	}

	p.State(state)

	return state
}

// Calculate runs the full performance computation.
func (p *Performance) Calculate() api.ManiaPerformanceAttributes {
	state := p.GenerateState()
	attrs := p.attributes()

	totalHits := float64(state.TotalHits())

	if totalHits == 0 {
		return api.ManiaPerformanceAttributes{Attributes: attrs}
	}

	multiplier := 8.0

	if p.diff.Mods.NF() {
		multiplier *= 0.75
	}

	if p.diff.Mods.EZ() {
		multiplier *= 0.5
	}

	difficultyValue := math.Pow(math.Max(attrs.Stars-0.15, 0.05), 2.2) *
		math.Max(0, 5*customAccuracy(state)-4) *
		(1 + 0.1*math.Min(1, totalHits/1500))

	return api.ManiaPerformanceAttributes{
		Attributes:   attrs,
		PP:           difficultyValue * multiplier,
		PPDifficulty: difficultyValue,
	}
}

// customAccuracy weighs perfects above greats, unlike the display accuracy.
func customAccuracy(state api.ManiaScoreState) float64 {
	total := state.TotalHits()
	if total == 0 {
		return 0
	}

	numerator := 32*state.N320 + 30*state.N300 + 20*state.N200 + 10*state.N100 + 5*state.N50

	return float64(numerator) / float64(32*total)
}

func clampSet(v *int, limit int) int {
	if v == nil {
		return 0
	}

	return min(*v, limit)
}
