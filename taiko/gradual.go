package taiko

import (
	"github.com/osukit/rating-go/api"
	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/taiko/preprocessing"
)

// GradualDifficulty yields the taiko difficulty attributes after each
// consumed hit. Drum rolls and swells between hits are processed silently,
// so the iterator length equals the hit count. Next returns nil once every
// hit has been consumed.
type GradualDifficulty struct {
	d difficulty.Difficulty

	list *preprocessing.ObjectList

	set  *skillset
	attr api.TaikoDifficultyAttributes

	totalHits int

	// idx counts consumed hits, pos is the cursor into the difficulty
	// objects, which start at the third object.
	idx int
	pos int

	firstIsHit  bool
	secondIsHit bool
}

func NewGradualDifficulty(b *beatmap.Beatmap, d difficulty.Difficulty) *GradualDifficulty {
	mapAttrs := d.Resolve(b)

	objects, isConvert := preprocessing.CreateObjects(b)
	objects = objects[:d.PassedObjects(len(objects))]

	g := &GradualDifficulty{
		d:    d,
		list: preprocessing.CreateDifficultyObjects(objects, d),
		set:  newSkillset(),
		attr: baseAttributes(mapAttrs, isConvert),
	}

	for i, o := range objects {
		if o.IsHit() {
			g.totalHits++
		}

		if i == 0 {
			g.firstIsHit = o.IsHit()
		} else if i == 1 {
			g.secondIsHit = o.IsHit()
		}
	}

	return g
}

// Remaining reports how many hits are left to process.
func (g *GradualDifficulty) Remaining() int {
	return g.totalHits - g.idx
}

// Next processes objects up to and including the next hit and returns the
// attributes of the prefix consumed so far, or nil when exhausted.
func (g *GradualDifficulty) Next() *api.TaikoDifficultyAttributes {
	if g.idx >= 2 {
		for {
			if g.pos >= len(g.list.Objects) {
				return nil
			}

			o := g.list.Objects[g.pos]
			g.pos++

			g.set.Process(o)
			g.attr.ObjectCount++

			if o.Base.IsHit() {
				g.attr.MaxCombo++
				break
			}
		}
	} else if len(g.list.Objects) == 0 {
		return nil
	} else {
		// The first two objects have no difficulty objects but still count
		// toward combo when they are hits.
		switch {
		case g.idx == 0 && g.firstIsHit:
			g.attr.MaxCombo = 1
		case g.idx == 1 && g.firstIsHit && g.secondIsHit:
			g.attr.MaxCombo = 2
		case g.idx == 1 && (g.firstIsHit || g.secondIsHit):
			g.attr.MaxCombo = 1
		}

		g.attr.ObjectCount++
	}

	g.idx++

	attr := getStars(g.set, g.attr)

	return &attr
}

// Nth advances by n+1 hits (zero-indexed like Next) and returns the
// resulting attributes, or nil when the iterator runs out on the way.
func (g *GradualDifficulty) Nth(n int) *api.TaikoDifficultyAttributes {
	var attr *api.TaikoDifficultyAttributes

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

// Next processes one more hit and computes the performance of the prefix
// with the given partial score state.
func (g *GradualPerformance) Next(state api.TaikoScoreState) *api.TaikoPerformanceAttributes {
	return g.Nth(state, 0)
}

// Nth processes n+1 more hits, zero-indexed like Next.
func (g *GradualPerformance) Nth(state api.TaikoScoreState, n int) *api.TaikoPerformanceAttributes {
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
