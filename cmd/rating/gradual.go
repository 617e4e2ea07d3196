package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/osukit/rating-go/api"
	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/catch"
	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/mania"
	"github.com/osukit/rating-go/mods"
	"github.com/osukit/rating-go/osu"
	"github.com/osukit/rating-go/relax"
	"github.com/osukit/rating-go/taiko"
)

var (
	gradualMods  string
	gradualEvery int
)

var gradualCmd = &cobra.Command{
	Use:   "gradual <map.osu>",
	Short: "Dump the star rating growth over the course of a map",
	Args:  cobra.ExactArgs(1),
	RunE:  runGradual,
}

func init() {
	gradualCmd.Flags().StringVar(&gradualMods, "mods", "NM", "mod combo, e.g. HDDT")
	gradualCmd.Flags().IntVar(&gradualEvery, "every", 10, "print a row every n objects")
}

// stepperFor adapts the per-mode gradual iterators to a single pull
// function returning nil at exhaustion.
func stepperFor(rs ruleset, b *beatmap.Beatmap, d difficulty.Difficulty) func() api.DifficultyAttributes {
	switch {
	case rs.relax:
		g := relax.NewGradualDifficulty(b, d)

		return func() api.DifficultyAttributes {
			if a := g.Next(); a != nil {
				return *a
			}

			return nil
		}
	case rs.mode == beatmap.ModeTaiko:
		g := taiko.NewGradualDifficulty(b, d)

		return func() api.DifficultyAttributes {
			if a := g.Next(); a != nil {
				return *a
			}

			return nil
		}
	case rs.mode == beatmap.ModeCatch:
		g := catch.NewGradualDifficulty(b, d)

		return func() api.DifficultyAttributes {
			if a := g.Next(); a != nil {
				return *a
			}

			return nil
		}
	case rs.mode == beatmap.ModeMania:
		g := mania.NewGradualDifficulty(b, d)

		return func() api.DifficultyAttributes {
			if a := g.Next(); a != nil {
				return *a
			}

			return nil
		}
	default:
		g := osu.NewGradualDifficulty(b, d)

		return func() api.DifficultyAttributes {
			if a := g.Next(); a != nil {
				return *a
			}

			return nil
		}
	}
}

func runGradual(cmd *cobra.Command, args []string) error {
	b, err := beatmap.FromPath(args[0])
	if err != nil {
		return err
	}

	rs, err := resolveRuleset(modeName, b)
	if err != nil {
		return err
	}

	if !b.IsConvertibleTo(rs.mode) {
		return fmt.Errorf("%s cannot be played as %s", args[0], rs.mode)
	}

	m := mods.Parse(gradualMods)
	d := difficulty.New(m)

	log.Info("Calculating gradual SR", "mods", m.String())

	startTime := time.Now()

	next := stepperFor(rs, b, d)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Objects", "Combo", "Stars"})

	appendRow := func(n int, attr api.DifficultyAttributes) {
		table.Append([]string{
			humanize.Comma(int64(n)),
			humanize.Comma(int64(attr.Combo())),
			fmt.Sprintf("%.4f", attr.TotalStars()),
		})
	}

	n := 0

	var last api.DifficultyAttributes

	for {
		attr := next()
		if attr == nil {
			break
		}

		n++
		last = attr

		if n%gradualEvery == 0 {
			appendRow(n, attr)
		}
	}

	if last == nil {
		return fmt.Errorf("%s has no objects", args[0])
	}

	if n%gradualEvery != 0 {
		appendRow(n, last)
	}

	table.Render()

	log.Info("Calculations finished!", "took", time.Since(startTime).Truncate(time.Millisecond))

	return nil
}
