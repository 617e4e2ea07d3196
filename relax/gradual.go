package relax

import (
	"github.com/osukit/rating-go/api"
	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/osu/preprocessing"
)

// GradualDifficulty yields the legacy difficulty attributes after each
// consumed hit object. Next returns nil once every object has been
// processed.
type GradualDifficulty struct {
	d difficulty.Difficulty

	objects     []*preprocessing.Object
	diffObjects []*preprocessing.DifficultyObject

	set  *skillset
	attr api.RelaxDifficultyAttributes

	idx int
}

func NewGradualDifficulty(b *beatmap.Beatmap, d difficulty.Difficulty) *GradualDifficulty {
	mapAttrs := d.Resolve(b)

	objects := preprocessing.CreateObjects(b, mapAttrs, d.PassedObjects(len(b.HitObjects)))

	g := &GradualDifficulty{
		d:           d,
		objects:     objects,
		diffObjects: preprocessing.CreateDifficultyObjects(objects, d, mapAttrs),
		set:         newSkillset(d, false),
	}

	mapAttrsInto(b, mapAttrs, &g.attr)

	return g
}

// Remaining reports how many objects are left to process.
func (g *GradualDifficulty) Remaining() int {
	return len(g.objects) - g.idx
}

// Next processes one more hit object and returns the attributes of the
// prefix consumed so far, or nil when exhausted.
func (g *GradualDifficulty) Next() *api.RelaxDifficultyAttributes {
	if g.idx >= len(g.objects) {
		return nil
	}

	addObjectToAttribs(g.objects[g.idx], &g.attr)

	if g.idx > 0 {
		g.set.Process(g.diffObjects[g.idx-1])
	}

	g.idx++

	// The first object has no difficulty object and carries no stars.
	if g.idx == 1 {
		attr := g.attr
		return &attr
	}

	attr := getStars(g.set, g.attr)

	return &attr
}

// Nth advances by n+1 objects (zero-indexed like Next) and returns the
// resulting attributes, or nil when the iterator runs out on the way.
func (g *GradualDifficulty) Nth(n int) *api.RelaxDifficultyAttributes {
	var attr *api.RelaxDifficultyAttributes

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
	diff  *GradualDifficulty
	lazer bool
}

func NewGradualPerformance(b *beatmap.Beatmap, d difficulty.Difficulty) *GradualPerformance {
	return &GradualPerformance{diff: NewGradualDifficulty(b, d), lazer: true}
}

// Lazer toggles lazer scoring for all subsequent steps.
func (g *GradualPerformance) Lazer(lazer bool) *GradualPerformance {
	g.lazer = lazer
	return g
}

func (g *GradualPerformance) Remaining() int {
	return g.diff.Remaining()
}

// Next processes one more object and computes the performance of the prefix
// with the given partial score state.
func (g *GradualPerformance) Next(state api.OsuScoreState) *api.RelaxPerformanceAttributes {
	return g.Nth(state, 0)
}

// Nth processes n+1 more objects, zero-indexed like Next.
func (g *GradualPerformance) Nth(state api.OsuScoreState, n int) *api.RelaxPerformanceAttributes {
	attrs := g.diff.Nth(n)
	if attrs == nil {
		return nil
	}

	perf := NewPerformanceFromAttrs(*attrs).
		Difficulty(g.diff.d).
		Lazer(g.lazer).
		State(state).
		PassedObjects(g.diff.idx).
		Calculate()

	return &perf
}
