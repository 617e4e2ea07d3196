package curves

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestLinearCurve(t *testing.T) {
	c := NewCurve([]mgl64.Vec2{{0, 0}, {100, 0}}, 'L', 100)

	assert.InDelta(t, 100, c.Dist(), 1e-9)
	assert.InDelta(t, 50, c.PointAt(0.5).X(), 1e-9)
	assert.InDelta(t, 0, c.PointAt(0.5).Y(), 1e-9)
}

func TestExpectedDistExtends(t *testing.T) {
	c := NewCurve([]mgl64.Vec2{{0, 0}, {100, 0}}, 'L', 150)

	assert.InDelta(t, 150, c.Dist(), 1e-9)
	assert.InDelta(t, 150, c.PointAt(1).X(), 1e-9)
}

func TestExpectedDistTruncates(t *testing.T) {
	c := NewCurve([]mgl64.Vec2{{0, 0}, {100, 0}}, 'L', 60)

	assert.InDelta(t, 60, c.PointAt(1).X(), 1e-9)
}

func TestPerfectArcStaysOnRadius(t *testing.T) {
	c := NewCurve([]mgl64.Vec2{{0, 0}, {50, 50}, {100, 0}}, 'P', 0)

	center := mgl64.Vec2{50, 0}

	for _, p := range []float64{0, 0.25, 0.5, 0.75, 1} {
		assert.InDelta(t, 50, c.PointAt(p).Sub(center).Len(), 0.5)
	}
}

func TestBezierEndpoints(t *testing.T) {
	c := NewCurve([]mgl64.Vec2{{0, 0}, {50, 100}, {100, 0}}, 'B', 0)

	assert.InDelta(t, 0, c.PointAt(0).X(), 1e-9)
	assert.InDelta(t, 100, c.PointAt(1).X(), 1e-6)
}

func TestEventsOrderAndKinds(t *testing.T) {
	// Two spans of 1000ms, ticks every 100px over a 300px span.
	events := Events(0, 1000, 0.3, 100, 300, 2)

	assert.Equal(t, EventHead, events[0].Kind)
	assert.Equal(t, EventTail, events[len(events)-1].Kind)
	assert.Equal(t, EventLastTick, events[len(events)-2].Kind)

	var repeats, ticks int
	for _, e := range events {
		switch e.Kind {
		case EventRepeat:
			repeats++
		case EventTick:
			ticks++
		}
	}

	assert.Equal(t, 1, repeats)
	assert.Equal(t, 4, ticks)
	assert.InDelta(t, 2000, events[len(events)-1].Time, 1e-9)
}

func TestLastTickNeverBeforeMidpoint(t *testing.T) {
	events := Events(0, 20, 0.3, 0, 100, 1)

	var last Event
	for _, e := range events {
		if e.Kind == EventLastTick {
			last = e
		}
	}

	assert.InDelta(t, 10, last.Time, 1e-9)
}
