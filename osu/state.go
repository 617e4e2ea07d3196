package osu

import (
	"math"

	"github.com/osukit/rating-go/api"
)

// ScoreStateInputs carries the per-bucket overrides used to synthesize a
// full score state against a map's known totals. Nil fields are open and
// get filled from the target accuracy, or from the hit result priority
// when no accuracy is set.
type ScoreStateInputs struct {
	ObjectCount int
	MaxCombo    int
	Sliders     int
	SliderTicks int

	Lazer    bool
	Priority api.HitResultPriority

	Accuracy *float64

	Combo          *int
	SliderTickHits *int
	SliderEndHits  *int
	N300           *int
	N100           *int
	N50            *int
	Misses         *int
}

// SynthesizeScoreState resolves the inputs into a complete score state,
// distributing the open hit result buckets so the state's accuracy lands
// as close to the target as possible.
func SynthesizeScoreState(in ScoreStateInputs) api.OsuScoreState {
	nObjects := in.ObjectCount

	misses := 0
	if in.Misses != nil {
		misses = min(*in.Misses, nObjects)
	}

	nRemaining := nObjects - misses

	n300 := clampSet(in.N300, nRemaining)
	n100 := clampSet(in.N100, nRemaining)
	n50 := clampSet(in.N50, nRemaining)

	var nSliderEnds, nSliderTicks, maxSliderEnds, maxSliderTicks int

	if in.Lazer {
		maxSliderEnds = in.Sliders
		maxSliderTicks = in.SliderTicks

		nSliderEnds = maxSliderEnds
		if in.SliderEndHits != nil {
			nSliderEnds = min(*in.SliderEndHits, maxSliderEnds)
		}

		nSliderTicks = maxSliderTicks
		if in.SliderTickHits != nil {
			nSliderTicks = min(*in.SliderTickHits, maxSliderTicks)
		}
	}

	if in.Accuracy != nil {
		acc := *in.Accuracy
		targetTotal := acc * float64(30*nObjects+15*maxSliderEnds+3*maxSliderTicks)

		accuracyOf := func(new300, new100, new50 int) float64 {
			return api.OsuScoreState{
				SliderTickHits: nSliderTicks,
				SliderEndHits:  nSliderEnds,
				N300:           new300,
				N100:           new100,
				N50:            new50,
				Misses:         misses,
			}.Accuracy(maxSliderTicks, maxSliderEnds)
		}

		switch {
		case in.N300 != nil && in.N100 != nil && in.N50 != nil:
			remaining := max(0, nObjects-(n300+n100+n50+misses))

			if in.Priority == api.BestCase {
				n300 += remaining
			} else {
				n50 += remaining
			}
		case in.N300 != nil && in.N100 != nil:
			n50 = max(0, nObjects-(n300+n100+misses))
		case in.N300 != nil && in.N50 != nil:
			n100 = max(0, nObjects-(n300+n50+misses))
		case in.N100 != nil && in.N50 != nil:
			n300 = max(0, nObjects-(n100+n50+misses))
		case in.N300 != nil:
			bestDist := math.MaxFloat64

			n300 = min(n300, nRemaining)
			left := nRemaining - n300

			raw100 := (targetTotal - float64(5*left+30*n300+15*nSliderEnds+3*nSliderTicks)) / 5
			min100 := min(left, int(math.Floor(raw100)))
			max100 := min(left, int(math.Ceil(raw100)))

			for new100 := max(0, min100); new100 <= max100; new100++ {
				new50 := left - new100

				if dist := math.Abs(acc - accuracyOf(n300, new100, new50)); dist < bestDist {
					bestDist = dist
					n100 = new100
					n50 = new50
				}
			}
		case in.N100 != nil:
			bestDist := math.MaxFloat64

			n100 = min(n100, nRemaining)
			left := nRemaining - n100

			raw300 := (targetTotal - float64(5*left+10*n100+15*nSliderEnds+3*nSliderTicks)) / 25
			min300 := min(left, int(math.Floor(raw300)))
			max300 := min(left, int(math.Ceil(raw300)))

			for new300 := max(0, min300); new300 <= max300; new300++ {
				new50 := left - new300

				if dist := math.Abs(acc - accuracyOf(new300, n100, new50)); dist < bestDist {
					bestDist = dist
					n300 = new300
					n50 = new50
				}
			}
		case in.N50 != nil:
			bestDist := math.MaxFloat64

			n50 = min(n50, nRemaining)
			left := nRemaining - n50

			raw300 := (targetTotal + float64(10*misses+5*n50) - float64(10*nObjects+15*nSliderEnds+3*nSliderTicks)) / 20
			min300 := min(left, int(math.Floor(raw300)))
			max300 := min(left, int(math.Ceil(raw300)))

			for new300 := max(0, min300); new300 <= max300; new300++ {
				new100 := left - new300

				if dist := math.Abs(acc - accuracyOf(new300, new100, n50)); dist < bestDist {
					bestDist = dist
					n300 = new300
					n100 = new100
				}
			}
		default:
			bestDist := math.MaxFloat64

			raw300 := (targetTotal - float64(5*nRemaining+15*nSliderEnds+3*nSliderTicks)) / 25
			min300 := min(nRemaining, int(math.Floor(raw300)))
			max300 := min(nRemaining, int(math.Ceil(raw300)))

			for new300 := max(0, min300); new300 <= max300; new300++ {
				raw100 := (targetTotal - float64(5*nRemaining+25*new300+15*nSliderEnds+3*nSliderTicks)) / 5
				min100 := min(int(math.Floor(raw100)), nRemaining-new300)
				max100 := min(int(math.Ceil(raw100)), nRemaining-new300)

				for new100 := max(0, min100); new100 <= max100; new100++ {
					new50 := nRemaining - new300 - new100

					if dist := math.Abs(acc - accuracyOf(new300, new100, new50)); dist < bestDist {
						bestDist = dist
						n300 = new300
						n100 = new100
						n50 = new50
					}
				}
			}

			if in.Priority == api.BestCase {
				// Shift n50 to n100 by sacrificing n300.
				n := min(n300, n50/4)
				n300 -= n
				n100 += 5 * n
				n50 -= 4 * n
			} else {
				// Shift n100 to n50 by gaining n300.
				n := n100 / 5
				n300 += n
				n100 -= 5 * n
				n50 += 4 * n
			}
		}
	} else {
		remaining := max(0, nObjects-(n300+n100+n50+misses))

		if in.Priority == api.BestCase {
			switch {
			case in.N300 == nil:
				n300 = remaining
			case in.N100 == nil:
				n100 = remaining
			case in.N50 == nil:
				n50 = remaining
			default:
				n300 += remaining
			}
		} else {
			switch {
			case in.N50 == nil:
				n50 = remaining
			case in.N100 == nil:
				n100 = remaining
			case in.N300 == nil:
				n300 = remaining
			default:
				n50 += remaining
			}
		}
	}

	maxPossibleCombo := max(0, in.MaxCombo-misses)

	maxCombo := maxPossibleCombo
	if in.Combo != nil {
		maxCombo = min(*in.Combo, maxPossibleCombo)
	}

	return api.OsuScoreState{
		MaxCombo:       maxCombo,
		SliderTickHits: nSliderTicks,
		SliderEndHits:  nSliderEnds,
		N300:           n300,
		N100:           n100,
		N50:            n50,
		Misses:         misses,
	}
}

func clampSet(v *int, limit int) int {
	if v == nil {
		return 0
	}

	return min(*v, limit)
}
