package curves

import "math"

// EventKind classifies the nested events produced while a slider is held.
type EventKind int

const (
	EventHead EventKind = iota
	EventTick
	EventRepeat
	EventLastTick
	EventTail
)

// Event is a single judgeable moment of a slider: the head, a tick, a repeat
// arrow, the legacy last tick, or the tail.
type Event struct {
	Kind         EventKind
	Time         float64
	SpanIndex    int
	PathProgress float64
}

// Last tick offset in ms, carried over from the original game engine.
const lastTickOffset = 36.0

// Events expands a slider into its judgeable moments, in time order per
// span. velocity is in pixels per ms, tickDist in pixels; spanDuration is the
// duration of one span in ms.
func Events(startTime, spanDuration, velocity, tickDist, totalDist float64, spanCount int) []Event {
	var events []Event

	events = append(events, Event{Kind: EventHead, Time: startTime})

	// Ticks too close to the span end never spawn.
	minDistFromEnd := velocity * 10

	if tickDist > 0 && totalDist > 0 {
		for span := 0; span < spanCount; span++ {
			spanStart := startTime + float64(span)*spanDuration
			reversed := span%2 == 1

			var ticks []Event

			for d := tickDist; d <= totalDist-minDistFromEnd; d += tickDist {
				progress := d / totalDist
				if reversed {
					progress = 1 - progress
				}

				ticks = append(ticks, Event{
					Kind:         EventTick,
					Time:         spanStart + d/velocity,
					SpanIndex:    span,
					PathProgress: progress,
				})
			}

			events = append(events, ticks...)

			if span < spanCount-1 {
				progress := float64((span + 1) % 2)

				events = append(events, Event{
					Kind:         EventRepeat,
					Time:         spanStart + spanDuration,
					SpanIndex:    span,
					PathProgress: progress,
				})
			}
		}
	} else {
		for span := 0; span < spanCount-1; span++ {
			events = append(events, Event{
				Kind:         EventRepeat,
				Time:         startTime + float64(span+1)*spanDuration,
				SpanIndex:    span,
				PathProgress: float64((span + 1) % 2),
			})
		}
	}

	totalDuration := spanDuration * float64(spanCount)
	endTime := startTime + totalDuration

	// The legacy last tick is judged slightly before the actual end, but
	// never before the midpoint of the slider.
	lastTickTime := math.Max(startTime+totalDuration/2, endTime-lastTickOffset)

	events = append(events, Event{
		Kind:         EventLastTick,
		Time:         lastTickTime,
		SpanIndex:    spanCount - 1,
		PathProgress: progressAt(lastTickTime-startTime, spanDuration, spanCount),
	})

	events = append(events, Event{
		Kind:         EventTail,
		Time:         endTime,
		SpanIndex:    spanCount - 1,
		PathProgress: float64(spanCount % 2),
	})

	return events
}

func progressAt(elapsed, spanDuration float64, spanCount int) float64 {
	if spanDuration <= 0 {
		return 0
	}

	span := int(elapsed / spanDuration)
	if span >= spanCount {
		span = spanCount - 1
	}

	progress := elapsed/spanDuration - float64(span)

	if span%2 == 1 {
		progress = 1 - progress
	}

	return math.Max(0, math.Min(1, progress))
}
