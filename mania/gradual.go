package mania

import (
	"github.com/osukit/rating-go/api"
	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/mania/preprocessing"
	"github.com/osukit/rating-go/mania/skills"
)

// GradualDifficulty yields the difficulty attributes after each consumed
// note. Next returns nil once every note has been processed.
type GradualDifficulty struct {
	d difficulty.Difficulty

	objects     []*preprocessing.Object
	diffObjects []*preprocessing.DifficultyObject

	skill *skills.StrainSkill
	attr  api.ManiaDifficultyAttributes

	idx int
}

func NewGradualDifficulty(b *beatmap.Beatmap, d difficulty.Difficulty) *GradualDifficulty {
	objects, keyCount, isConvert := preprocessing.CreateObjects(b)
	objects = objects[:d.PassedObjects(len(objects))]

	g := &GradualDifficulty{
		d:           d,
		objects:     objects,
		diffObjects: preprocessing.CreateDifficultyObjects(objects, d),
		skill:       skills.NewStrainSkill(keyCount),
	}

	g.attr.IsConvert = isConvert

	return g
}

// Remaining reports how many notes are left to process.
func (g *GradualDifficulty) Remaining() int {
	return len(g.objects) - g.idx
}

// Next processes one more note and returns the attributes of the prefix
// consumed so far, or nil when exhausted.
func (g *GradualDifficulty) Next() *api.ManiaDifficultyAttributes {
	if g.idx >= len(g.objects) {
		return nil
	}

	addObjectToAttribs(g.objects[g.idx], &g.attr)

	if g.idx > 0 {
		g.skill.Process(g.diffObjects[g.idx-1])
	}

	g.idx++

	// The first note has no difficulty object and carries no stars.
	if g.idx == 1 {
		attr := g.attr
		return &attr
	}

	attr := getStars(g.skill, g.attr)

	return &attr
}

// Nth advances by n+1 notes (zero-indexed like Next) and returns the
// resulting attributes, or nil when the iterator runs out on the way.
func (g *GradualDifficulty) Nth(n int) *api.ManiaDifficultyAttributes {
	var attr *api.ManiaDifficultyAttributes

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

// Next processes one more note and computes the performance of the prefix
// with the given partial score state.
func (g *GradualPerformance) Next(state api.ManiaScoreState) *api.ManiaPerformanceAttributes {
	return g.Nth(state, 0)
}

// Nth processes n+1 more notes, zero-indexed like Next.
func (g *GradualPerformance) Nth(state api.ManiaScoreState, n int) *api.ManiaPerformanceAttributes {
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
