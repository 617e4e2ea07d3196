package catch

import (
	"math"

	"github.com/osukit/rating-go/api"
	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/mods"
	"github.com/osukit/rating-go/util/mutils"
)

// Performance is the builder-style pp calculator for catch. It is backed
// either by a beatmap or by previously computed attributes.
type Performance struct {
	bmap  *beatmap.Beatmap
	attrs *api.CatchDifficultyAttributes

	diff difficulty.Difficulty

	acc *float64

	combo             *int
	fruits            *int
	droplets          *int
	tinyDroplets      *int
	tinyDropletMisses *int
	misses            *int
}

func NewPerformance(b *beatmap.Beatmap) *Performance {
	return &Performance{bmap: b}
}

func NewPerformanceFromAttrs(attrs api.CatchDifficultyAttributes) *Performance {
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

func (p *Performance) Fruits(n int) *Performance {
	p.fruits = &n
	return p
}

func (p *Performance) Droplets(n int) *Performance {
	p.droplets = &n
	return p
}

func (p *Performance) TinyDroplets(n int) *Performance {
	p.tinyDroplets = &n
	return p
}

func (p *Performance) TinyDropletMisses(n int) *Performance {
	p.tinyDropletMisses = &n
	return p
}

func (p *Performance) Misses(n int) *Performance {
	p.misses = &n
	return p
}

func (p *Performance) PassedObjects(n int) *Performance {
	p.diff = p.diff.WithPassedObjects(n)
	return p
}

func (p *Performance) State(state api.CatchScoreState) *Performance {
	return p.Combo(state.MaxCombo).
		Fruits(state.Fruits).
		Droplets(state.Droplets).
		TinyDroplets(state.TinyDroplets).
		TinyDropletMisses(state.TinyDropletMiss).
		Misses(state.Misses)
}

func (p *Performance) attributes() api.CatchDifficultyAttributes {
	if p.attrs == nil {
		attrs := CalculateDifficulty(p.bmap, p.diff)
		p.attrs = &attrs
		p.bmap = nil
	}

	return *p.attrs
}

// GenerateState resolves the configured inputs into the score state used for
// calculation. Misses eat droplets before fruits; tiny droplets follow the
// target accuracy since they only ever affect accuracy.
func (p *Performance) GenerateState() api.CatchScoreState {
	attrs := p.attributes()

	misses := 0
	if p.misses != nil {
		misses = min(*p.misses, attrs.Fruits+attrs.Droplets)
	}

	droplets := max(0, attrs.Droplets-misses)
	if p.droplets != nil {
		droplets = min(*p.droplets, attrs.Droplets)
	}

	fruits := max(0, attrs.Fruits-max(0, misses-(attrs.Droplets-droplets)))
	if p.fruits != nil {
		fruits = min(*p.fruits, attrs.Fruits)
	}

	tinyDroplets := attrs.TinyDroplets

	switch {
	case p.tinyDroplets != nil:
		tinyDroplets = min(*p.tinyDroplets, attrs.TinyDroplets)
	case p.tinyDropletMisses != nil:
		tinyDroplets = max(0, attrs.TinyDroplets-*p.tinyDropletMisses)
	case p.acc != nil:
		// The denominator is fixed once fruits, droplets and misses are,
		// so the tiny droplet count follows directly.
		fixed := fruits + droplets + misses
		target := *p.acc * float64(fixed+attrs.TinyDroplets)

		tinyDroplets = mutils.Clamp(int(math.Round(target))-fruits-droplets, 0, attrs.TinyDroplets)
	}

	maxPossibleCombo := max(0, attrs.Combo()-misses)

	maxCombo := maxPossibleCombo
	if p.combo != nil {
		maxCombo = min(*p.combo, maxPossibleCombo)
	}

	tinyDropletMisses := attrs.TinyDroplets - tinyDroplets
	if p.tinyDropletMisses != nil {
		tinyDropletMisses = min(*p.tinyDropletMisses, tinyDropletMisses)
	}

	state := api.CatchScoreState{
		MaxCombo:        maxCombo,
		Fruits:          fruits,
		Droplets:        droplets,
		TinyDroplets:    tinyDroplets,
		TinyDropletMiss: tinyDropletMisses,
		Misses:          misses,
	}

	p.State(state)

	return state
}

// Calculate runs the full performance computation.
func (p *Performance) Calculate() api.CatchPerformanceAttributes {
	state := p.GenerateState()
	attrs := p.attributes()

	acc := state.Accuracy()

	// Tiny droplets never count toward combo or length.
	comboHits := float64(state.Fruits + state.Droplets + state.Misses)

	if comboHits == 0 {
		return api.CatchPerformanceAttributes{Attributes: attrs}
	}

	value := math.Pow(5*math.Max(1, attrs.Stars/0.0049)-4, 2) / 100000

	lengthBonus := 0.95 + 0.3*math.Min(1, comboHits/2500)
	if comboHits > 2500 {
		lengthBonus += math.Log10(comboHits/2500) * 0.475
	}

	value *= lengthBonus

	value *= math.Pow(0.97, float64(state.Misses))

	if maxCombo := attrs.Combo(); maxCombo > 0 {
		value *= math.Min(math.Pow(float64(state.MaxCombo), 0.8)/math.Pow(float64(maxCombo), 0.8), 1)
	}

	arFactor := 1.0
	if attrs.AR > 9 {
		arFactor += 0.1 * (attrs.AR - 9)
	}

	if attrs.AR > 10 {
		arFactor += 0.1 * (attrs.AR - 10)
	} else if attrs.AR < 8 {
		arFactor += 0.025 * (8 - attrs.AR)
	}

	value *= arFactor

	if p.diff.Mods.HD() {
		// Hidden helps less and less the higher the approach rate gets.
		if attrs.AR <= 10 {
			value *= 1.05 + 0.075*(10-attrs.AR)
		} else {
			value *= 1.01 + 0.04*(11-math.Min(11, attrs.AR))
		}
	}

	if p.diff.Mods.FL() {
		value *= 1.35 * lengthBonus
	}

	value *= math.Pow(acc, 5.5)

	if p.diff.Mods.NF() {
		value *= 0.9
	}

	return api.CatchPerformanceAttributes{
		Attributes: attrs,
		PP:         value,
	}
}
