// Command rating computes star ratings and performance points for beatmaps.
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	modeName   string
)

var rootCmd = &cobra.Command{
	Use:          "rating",
	Short:        "Difficulty and performance calculator for rhythm-game beatmaps",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&modeName, "mode", "auto", "ruleset: auto, osu, taiko, catch, mania or relax")

	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(gradualCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("command failed", "err", err)
		os.Exit(1)
	}
}
