package curves

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	bezierSamplesPerSegment = 50
	arcSamples              = 64
)

// Curve is a flattened slider path. It answers the two queries the
// difficulty engines need: total usable distance and position at a progress
// fraction of that distance.
type Curve struct {
	points     []mgl64.Vec2
	cumulative []float64
	pathLength float64
	dist       float64
}

// NewCurve flattens the control points of the given curve type into a
// polyline. expectedDist is the authored pixel length; when positive it
// overrides the geometric length (the path is truncated or the final segment
// extrapolated, matching how the game engine treats slider lengths).
func NewCurve(controlPoints []mgl64.Vec2, curveType byte, expectedDist float64) *Curve {
	var points []mgl64.Vec2

	switch {
	case len(controlPoints) < 2:
		points = append(points, controlPoints...)
	case curveType == 'P' && len(controlPoints) == 3:
		points = flattenArc(controlPoints)
	case curveType == 'B' || curveType == 'C':
		points = flattenBezier(controlPoints)
	default:
		points = append(points, controlPoints...)
	}

	c := &Curve{points: points}
	c.cumulative = make([]float64, len(points))

	for i := 1; i < len(points); i++ {
		c.pathLength += points[i].Sub(points[i-1]).Len()
		c.cumulative[i] = c.pathLength
	}

	c.dist = c.pathLength
	if expectedDist > 0 {
		c.dist = expectedDist
	}

	return c
}

// Dist returns the usable path distance of a single span.
func (c *Curve) Dist() float64 {
	return c.dist
}

// PointAt returns the position at progress t in [0, 1] along Dist().
func (c *Curve) PointAt(t float64) mgl64.Vec2 {
	if len(c.points) == 0 {
		return mgl64.Vec2{}
	}

	if len(c.points) == 1 {
		return c.points[0]
	}

	target := math.Max(0, math.Min(1, t)) * c.dist

	if target >= c.pathLength {
		// Extrapolate along the final segment for lengths past the
		// geometric path.
		last := c.points[len(c.points)-1]
		prev := c.points[len(c.points)-2]

		dir := last.Sub(prev)
		if segLen := dir.Len(); segLen > 0 {
			return last.Add(dir.Mul((target - c.pathLength) / segLen))
		}

		return last
	}

	// Binary search the first cumulative distance >= target.
	lo, hi := 0, len(c.cumulative)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if c.cumulative[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	if lo == 0 {
		return c.points[0]
	}

	segStart := c.cumulative[lo-1]
	segLen := c.cumulative[lo] - segStart

	if segLen == 0 {
		return c.points[lo]
	}

	f := (target - segStart) / segLen

	return c.points[lo-1].Add(c.points[lo].Sub(c.points[lo-1]).Mul(f))
}

func flattenBezier(controlPoints []mgl64.Vec2) []mgl64.Vec2 {
	var out []mgl64.Vec2

	// Repeated control points split the curve into independent segments.
	segStart := 0

	for i := 0; i < len(controlPoints); i++ {
		if i == len(controlPoints)-1 || controlPoints[i] == controlPoints[i+1] {
			seg := controlPoints[segStart : i+1]

			for s := 0; s <= bezierSamplesPerSegment; s++ {
				out = append(out, bezierPoint(seg, float64(s)/bezierSamplesPerSegment))
			}

			segStart = i + 1
		}
	}

	return out
}

func bezierPoint(cp []mgl64.Vec2, t float64) mgl64.Vec2 {
	if len(cp) == 1 {
		return cp[0]
	}

	work := make([]mgl64.Vec2, len(cp))
	copy(work, cp)

	for n := len(work) - 1; n > 0; n-- {
		for i := 0; i < n; i++ {
			work[i] = work[i].Add(work[i+1].Sub(work[i]).Mul(t))
		}
	}

	return work[0]
}

func flattenArc(cp []mgl64.Vec2) []mgl64.Vec2 {
	a, b, c := cp[0], cp[1], cp[2]

	d := 2 * (a.X()*(b.Y()-c.Y()) + b.X()*(c.Y()-a.Y()) + c.X()*(a.Y()-b.Y()))
	if math.Abs(d) < 1e-9 { // colinear, degrade to a polyline
		return []mgl64.Vec2{a, b, c}
	}

	aSq, bSq, cSq := a.Dot(a), b.Dot(b), c.Dot(c)

	center := mgl64.Vec2{
		(aSq*(b.Y()-c.Y()) + bSq*(c.Y()-a.Y()) + cSq*(a.Y()-b.Y())) / d,
		(aSq*(c.X()-b.X()) + bSq*(a.X()-c.X()) + cSq*(b.X()-a.X())) / d,
	}

	radius := a.Sub(center).Len()

	start := math.Atan2(a.Y()-center.Y(), a.X()-center.X())
	end := math.Atan2(c.Y()-center.Y(), c.X()-center.X())
	mid := math.Atan2(b.Y()-center.Y(), b.X()-center.X())

	// Pick the sweep direction that passes through the middle point.
	sweep := normalizeAngle(end - start)
	if normalizeAngle(mid-start) > sweep {
		sweep -= 2 * math.Pi
	}

	out := make([]mgl64.Vec2, 0, arcSamples+1)

	for i := 0; i <= arcSamples; i++ {
		theta := start + sweep*float64(i)/arcSamples
		out = append(out, center.Add(mgl64.Vec2{math.Cos(theta), math.Sin(theta)}.Mul(radius)))
	}

	return out
}

func normalizeAngle(a float64) float64 {
	for a < 0 {
		a += 2 * math.Pi
	}

	for a >= 2*math.Pi {
		a -= 2 * math.Pi
	}

	return a
}
