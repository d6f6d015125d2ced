package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/jumpman/internal/level"
)

var (
	flagGenOut    string
	flagGenWidth  int
	flagGenLevels int
)

var levelgenCmd = &cobra.Command{
	Use:   "levelgen",
	Short: "Generate levels from noise",
	Long: `Write procedurally generated levels in the stacked level-file format.
Level i uses seed+i (--seed, default 1), so the same seed always yields
the same file.

The generation options are saved next to the output as <out>.yaml.

Examples:
  jumpman levelgen --out levels.txt
  jumpman levelgen --out levels.txt --levels 5 --width 400 --seed 7`,
	Args: cobra.NoArgs,
	Run:  runLevelgen,
}

func init() {
	def := level.DefaultGenerateOptions()
	levelgenCmd.Flags().StringVar(&flagGenOut, "out", "", "Output level file (required)")
	levelgenCmd.Flags().IntVar(&flagGenWidth, "width", def.Width, "Level width in tiles")
	levelgenCmd.Flags().IntVar(&flagGenLevels, "levels", 1, "Number of levels to generate")
	//nolint:errcheck // Flag is defined above
	levelgenCmd.MarkFlagRequired("out")
}

func runLevelgen(cmd *cobra.Command, _ []string) {
	if flagGenLevels < 1 {
		fail("--levels must be >= 1")
	}

	opts := level.DefaultGenerateOptions()
	opts.Width = flagGenWidth
	if cmd.Flags().Changed("seed") {
		opts.Seed = flagSeed
	}

	levels := make([]*level.Grid, flagGenLevels)
	for i := range levels {
		o := opts
		o.Seed = opts.Seed + int64(i)
		levels[i] = level.Generate(o)
	}

	if err := level.Save(flagGenOut, levels); err != nil {
		fail("%v", err)
	}

	descriptor, err := yaml.Marshal(struct {
		Levels  int                   `yaml:"levels"`
		Options level.GenerateOptions `yaml:"options"`
	}{flagGenLevels, opts})
	if err != nil {
		fail("encoding options: %v", err)
	}
	descPath := flagGenOut + ".yaml"
	if err := os.WriteFile(descPath, descriptor, 0o644); err != nil {
		fail("writing %s: %v", descPath, err)
	}

	fmt.Printf("Wrote %d level(s) of width %d to %s\n", len(levels), opts.Width, flagGenOut)
	fmt.Printf("Options saved to %s\n", descPath)
}
