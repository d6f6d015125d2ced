// jumpman evolves input sequences that carry a platformer character through
// a tile level.
//
// Usage:
//
//	jumpman train --level <file>      - Train on a level
//	jumpman replay --level <file>     - Replay a saved genome
//	jumpman runs                      - List recorded training runs
//	jumpman levelgen --out <file>     - Generate levels from noise
//	jumpman serve --level <file>      - Train and show the dashboard over SSH
//
// Global flags:
//
//	--seed <value>      - RNG seed (overrides the config)
//	--workers <n>       - Worker goroutines (0 = GOMAXPROCS)
//	--config <path>     - Custom training config YAML
//	--preset <name>     - Search budget: quick, standard, thorough
//	--db <path>         - Run database (default: ~/.jumpman/runs.db)
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed     int64
	flagWorkers  int
	flagConfig   string
	flagPreset   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jumpman",
	Short: "Jumpman - evolve input sequences for a tile platformer",
	Long: `Jumpman trains a population of input sequences with a genetic
algorithm until one of them carries the character to the end of a level.

Available commands:
  train     - Train on a level
  replay    - Replay a saved genome
  runs      - List recorded training runs
  levelgen  - Generate levels from noise
  serve     - Train and show the dashboard over SSH

Examples:
  jumpman levelgen --out levels.txt --levels 3
  jumpman train --level levels.txt --preset quick
  jumpman replay --level levels.txt --genome out/bestGeneration.txt
  jumpman runs
  jumpman serve --level levels.txt --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (overrides the config; 0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagWorkers, "workers", 0, "Worker goroutines (overrides the config; 0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom training config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPreset, "preset", "", "Search budget preset: quick, standard, thorough")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.jumpman/runs.db", "Path to run database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(trainCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(levelgenCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the process logger from --log-level.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "jumpman",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
