package beatmap

import (
	"github.com/go-gl/mathgl/mgl64"
)

type HitObjectKind int

const (
	KindCircle HitObjectKind = iota
	KindSlider
	KindSpinner
	KindHold
)

// HitObject is one playable element of a chart, before any mode-specific
// conversion. Times are in milliseconds of the unmodified (rate 1.0) map.
type HitObject struct {
	StartTime float64
	EndTime   float64
	Pos       mgl64.Vec2
	Kind      HitObjectKind
	NewCombo  bool
	Sound     int

	// Slider is set iff Kind == KindSlider.
	Slider *SliderData
}

func (h *HitObject) IsCircle() bool  { return h.Kind == KindCircle }
func (h *HitObject) IsSlider() bool  { return h.Kind == KindSlider }
func (h *HitObject) IsSpinner() bool { return h.Kind == KindSpinner }

type SliderData struct {
	CurveType     byte // 'L', 'P', 'B' or 'C'
	ControlPoints []mgl64.Vec2
	Repeats       int // number of spans
	PixelLength   float64

	// EdgeSounds holds the per-edge hitsound bitsets, head first. Taiko
	// conversion cycles through them to colour generated hits.
	EdgeSounds []int
}

// SpanCount returns the amount of slider spans (1 for a no-repeat slider).
func (s *SliderData) SpanCount() int {
	return max(1, s.Repeats)
}
