package preprocessing

import (
	"math"

	"github.com/osukit/rating-go/beatmap"
)

// Conversion from Standard speeds sliders up the way the legacy client did.
const VelocityMultiplier float64 = 1.4

const rimSoundMask = 2 | 8 // whistle or clap

type ObjectKind int

const (
	KindHit ObjectKind = iota
	KindDrumRoll
	KindSwell
)

// Object is one taiko gameplay element. Only hits carry colour and combo;
// drum rolls and swells are duration objects that neither break nor build
// combo.
type Object struct {
	Kind      ObjectKind
	StartTime float64
	EndTime   float64
	Rim       bool
}

func (o *Object) IsHit() bool { return o.Kind == KindHit }

func isRimSound(sound int) bool {
	return sound&rimSoundMask != 0
}

// CreateObjects converts a chart into taiko objects. Standard charts go
// through the legacy converter: circles become hits coloured by hitsound,
// spinners become swells, and sliders become either a drum roll or a stream
// of hits when their tick pattern is dense enough to play as notes.
func CreateObjects(b *beatmap.Beatmap) (objects []*Object, isConvert bool) {
	isConvert = b.Mode == beatmap.ModeOsu

	for i := range b.HitObjects {
		h := &b.HitObjects[i]

		switch h.Kind {
		case beatmap.KindCircle:
			objects = append(objects, &Object{
				Kind:      KindHit,
				StartTime: h.StartTime,
				EndTime:   h.StartTime,
				Rim:       isRimSound(h.Sound),
			})
		case beatmap.KindSlider:
			if isConvert {
				objects = append(objects, convertSlider(b, h)...)
			} else {
				objects = append(objects, &Object{
					Kind:      KindDrumRoll,
					StartTime: h.StartTime,
					EndTime:   h.EndTime,
				})
			}
		default:
			objects = append(objects, &Object{
				Kind:      KindSwell,
				StartTime: h.StartTime,
				EndTime:   h.EndTime,
			})
		}
	}

	return objects, isConvert
}

// convertSlider mirrors the legacy slider-to-taiko rules: short sliders with
// a valid tick spacing unroll into individual hits, everything else becomes
// a drum roll spanning the slider's duration.
func convertSlider(b *beatmap.Beatmap, h *beatmap.HitObject) []*Object {
	timing := b.TimingPointAt(h.StartTime)
	sv := b.DifficultyPointAt(h.StartTime).SliderVelocity

	spans := float64(h.Slider.SpanCount())
	distance := h.Slider.PixelLength * spans * VelocityMultiplier

	// The speed-adjusted beat length determines the velocity; format v8+
	// uses the raw beat length for tick spacing.
	beatLen := timing.BeatLen / math.Max(sv, 0.1)

	taikoVelocity := 100 * b.SliderMultiplier * VelocityMultiplier
	duration := distance / taikoVelocity * beatLen
	osuVelocity := taikoVelocity * 1000 / beatLen

	if b.FormatVersion >= 8 {
		beatLen = timing.BeatLen
	}

	tickSpacing := math.Min(beatLen/b.SliderTickRate, duration/spans)

	if !(tickSpacing > 0 && distance/osuVelocity*1000 < 2*beatLen) {
		return []*Object{{
			Kind:      KindDrumRoll,
			StartTime: h.StartTime,
			EndTime:   h.StartTime + duration,
		}}
	}

	var hits []*Object

	for i, t := 0, h.StartTime; t <= h.StartTime+duration+tickSpacing/8; i, t = i+1, t+tickSpacing {
		sound := h.Sound
		if len(h.Slider.EdgeSounds) > 0 {
			sound = h.Slider.EdgeSounds[i%len(h.Slider.EdgeSounds)]
		}

		hits = append(hits, &Object{
			Kind:      KindHit,
			StartTime: t,
			EndTime:   t,
			Rim:       isRimSound(sound),
		})
	}

	return hits
}
