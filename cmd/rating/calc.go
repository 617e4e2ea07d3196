package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/patrickmn/go-cache"
	"github.com/spf13/cobra"

	rating "github.com/osukit/rating-go"
	"github.com/osukit/rating-go/api"
	"github.com/osukit/rating-go/beatmap"
	"github.com/osukit/rating-go/difficulty"
	"github.com/osukit/rating-go/mods"
	"github.com/osukit/rating-go/relax"
)

// ruleset pairs the dispatch mode with the legacy relax variant flag.
type ruleset struct {
	mode  beatmap.Mode
	relax bool
}

func resolveRuleset(name string, b *beatmap.Beatmap) (ruleset, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return ruleset{mode: b.Mode}, nil
	case "osu":
		return ruleset{mode: beatmap.ModeOsu}, nil
	case "relax":
		return ruleset{mode: beatmap.ModeOsu, relax: true}, nil
	case "taiko":
		return ruleset{mode: beatmap.ModeTaiko}, nil
	case "catch":
		return ruleset{mode: beatmap.ModeCatch}, nil
	case "mania":
		return ruleset{mode: beatmap.ModeMania}, nil
	default:
		return ruleset{}, fmt.Errorf("unknown mode %q", name)
	}
}

// attrCache memoizes difficulty attributes across mod sweeps; stars only
// depend on the map, the ruleset and the difficulty settings, so repeated pp
// queries reuse them.
var attrCache = cache.New(10*time.Minute, time.Minute)

func cachedDifficulty(path string, b *beatmap.Beatmap, d difficulty.Difficulty, rs ruleset) (api.DifficultyAttributes, error) {
	key := fmt.Sprintf("%s|%d|%v|%s|%.4f", path, rs.mode, rs.relax, d.Mods.String(), d.ClockRate())

	if cached, ok := attrCache.Get(key); ok {
		return cached.(api.DifficultyAttributes), nil
	}

	var (
		attrs api.DifficultyAttributes
		err   error
	)

	if rs.relax {
		attrs = relax.CalculateDifficulty(b, d)
	} else {
		attrs, err = rating.CalculateDifficulty(b, d, rs.mode)
		if err != nil {
			return nil, err
		}
	}

	attrCache.SetDefault(key, attrs)

	return attrs, nil
}

var (
	calcMods   string
	calcAcc    float64
	calcCombo  int
	calcMisses int
	calcClock  float64
	calcLazer  bool
)

var calcCmd = &cobra.Command{
	Use:   "calc <map.osu>",
	Short: "Compute stars and pp for a map across a mod list",
	Args:  cobra.ExactArgs(1),
	RunE:  runCalc,
}

func init() {
	calcCmd.Flags().StringVar(&calcMods, "mods", "", "comma-separated mod combos, e.g. NM,HD,HDDT")
	calcCmd.Flags().Float64Var(&calcAcc, "acc", 100, "target accuracy in percent")
	calcCmd.Flags().IntVar(&calcCombo, "combo", -1, "max combo achieved (-1 for full combo)")
	calcCmd.Flags().IntVar(&calcMisses, "misses", 0, "miss count")
	calcCmd.Flags().Float64Var(&calcClock, "clock", 0, "custom clock rate (overrides mod rate)")
	calcCmd.Flags().BoolVar(&calcLazer, "lazer", true, "use lazer scoring rules")
}

func runCalc(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	b, err := beatmap.FromPath(args[0])
	if err != nil {
		return err
	}

	rs, err := resolveRuleset(modeName, b)
	if err != nil {
		return err
	}

	log.Info("map loaded",
		"mode", rs.mode,
		"objects", humanize.Comma(int64(len(b.HitObjects))))

	modList := cfg.Mods
	if calcMods != "" {
		modList = strings.Split(calcMods, ",")
	}

	clock := cfg.ClockRate
	if calcClock > 0 {
		clock = calcClock
	}

	lazer := cfg.Lazer
	if cmd.Flags().Changed("lazer") {
		lazer = calcLazer
	}

	startTime := time.Now()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Mods", "Stars", "Max Combo", "Acc", "PP"})

	for _, entry := range modList {
		m := mods.Parse(entry)

		d := difficulty.New(m)
		if clock > 0 {
			d = d.WithClockRate(clock)
		}

		attrs, err := cachedDifficulty(args[0], b, d, rs)
		if err != nil {
			return err
		}

		perf := rating.NewPerformanceFromAttrs(attrs).
			Difficulty(d).
			Lazer(lazer).
			Accuracy(calcAcc).
			Misses(calcMisses)

		if calcCombo >= 0 {
			perf.Combo(calcCombo)
		}

		result := perf.Calculate()

		table.Append([]string{
			m.String(),
			fmt.Sprintf("%.2f", attrs.TotalStars()),
			humanize.Comma(int64(attrs.Combo())),
			fmt.Sprintf("%.2f%%", calcAcc),
			fmt.Sprintf("%.2f", result.Total()),
		})
	}

	table.Render()

	log.Info("calculations finished!", "took", time.Since(startTime).Truncate(time.Millisecond))

	return nil
}
