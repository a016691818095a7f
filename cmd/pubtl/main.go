// Package main provides the pubtl CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pubtimeline/pubtl/internal/config"
	"github.com/pubtimeline/pubtl/internal/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	// configPath overrides the global config location
	configPath string
	// logLevel overrides the configured log level
	logLevel string
)

// Set by the root command before any subcommand runs.
var (
	cfg    *config.GlobalConfig
	logger = zerolog.Nop()
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pubtl",
	Short: "Publication timeline builder",
	Long: `pubtl turns a researcher's BibTeX bibliography into a publication timeline.

Each entry is classified (journal, conference, workshop, ...), ranked with the
JCR quartile or the CORE edition in force when it was published, and the
researcher's author position is located. Entries are then grouped into year
columns ordered by prestige and date.

Ranking tables are read from CORE<year>.csv files and can be cached in SQLite
with 'pubtl rankings index'. Bibliographies can be downloaded from DBLP.

All commands output JSON by default. Use --human for human-readable output.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Load .env file if present (for PUBTL_* overrides)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/pubtl/config.yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error, disabled")
	rootCmd.Version = Version
}

// setup loads the configuration and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadGlobalConfig()
	}
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	logger = logging.New(logging.Config{Level: level, Format: cfg.LogFormat, Output: os.Stderr})
	return nil
}
