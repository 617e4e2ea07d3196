package catch

import (
	"github.com/osukit/rating-go/api"
	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/catch/preprocessing"
	"github.com/osukit/rating-go/catch/skills"
	"github.com/osukit/rating-go/difficulty"
)

// GradualDifficulty yields the catch difficulty attributes after each
// consumed fruit or droplet. Tiny droplets in between are consumed silently,
// so the iterator length equals the fruit plus droplet count. Next returns
// nil once every palpable object has been consumed.
type GradualDifficulty struct {
	d difficulty.Difficulty

	objects     []*preprocessing.Object
	diffObjects []*preprocessing.DifficultyObject

	skill *skills.MovementSkill
	attr  api.CatchDifficultyAttributes

	totalPalpable int

	// idx counts consumed fruits and droplets, pos is the cursor into the
	// full object list.
	idx int
	pos int
}

func NewGradualDifficulty(b *beatmap.Beatmap, d difficulty.Difficulty) *GradualDifficulty {
	mapAttrs := d.Resolve(b)

	objects, isConvert := preprocessing.CreateObjects(b, mapAttrs.CS)
	objects = takeObjects(objects, d.PassedObjects(countPalpable(objects)))

	return &GradualDifficulty{
		d:             d,
		objects:       objects,
		diffObjects:   preprocessing.CreateDifficultyObjects(objects, preprocessing.HalfCatcherWidth(mapAttrs.CS), mapAttrs.ClockRate),
		skill:         skills.NewMovementSkill(mapAttrs.ClockRate),
		attr:          api.CatchDifficultyAttributes{AR: mapAttrs.AR, IsConvert: isConvert},
		totalPalpable: countPalpable(objects),
	}
}

// Remaining reports how many fruits and droplets are left to process.
func (g *GradualDifficulty) Remaining() int {
	return g.totalPalpable - g.idx
}

// Next processes objects up to and including the next fruit or droplet and
// returns the attributes of the prefix consumed so far, or nil when
// exhausted.
func (g *GradualDifficulty) Next() *api.CatchDifficultyAttributes {
	for g.pos < len(g.objects) {
		o := g.objects[g.pos]
		g.pos++

		addObjectToAttribs(o, &g.attr)

		if !o.IsPalpable() {
			continue
		}

		// The first fruit has no difficulty object.
		if g.idx > 0 {
			g.skill.Process(g.diffObjects[g.idx-1])
		}

		g.idx++

		attr := getStars(g.skill, g.attr)

		return &attr
	}

	return nil
}

// Nth advances by n+1 fruits or droplets (zero-indexed like Next) and
// returns the resulting attributes, or nil when the iterator runs out on the
// way.
func (g *GradualDifficulty) Nth(n int) *api.CatchDifficultyAttributes {
	var attr *api.CatchDifficultyAttributes

	for i := 0; i <= n; i++ {
		if attr = g.Next(); attr == nil {
			return nil
		}
	}

	return attr
}

// GradualPerformance layers a score state update per call on top of
// GradualDifficulty.
type GradualPerformance struct {
	diff *GradualDifficulty
}

func NewGradualPerformance(b *beatmap.Beatmap, d difficulty.Difficulty) *GradualPerformance {
	return &GradualPerformance{diff: NewGradualDifficulty(b, d)}
}

func (g *GradualPerformance) Remaining() int {
	return g.diff.Remaining()
}

// Next processes one more fruit or droplet and computes the performance of
// the prefix with the given partial score state.
func (g *GradualPerformance) Next(state api.CatchScoreState) *api.CatchPerformanceAttributes {
	return g.Nth(state, 0)
}

// Nth processes n+1 more fruits or droplets, zero-indexed like Next.
func (g *GradualPerformance) Nth(state api.CatchScoreState, n int) *api.CatchPerformanceAttributes {
	attrs := g.diff.Nth(n)
	if attrs == nil {
		return nil
	}

	perf := NewPerformanceFromAttrs(*attrs).
		Difficulty(g.diff.d).
		State(state).
		PassedObjects(g.diff.idx).
		Calculate()

	return &perf
}
