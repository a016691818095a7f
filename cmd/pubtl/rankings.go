package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pubtimeline/pubtl/internal/config"
	"github.com/pubtimeline/pubtl/internal/ranking"
)

func init() {
	rankingsCmd.AddCommand(rankingsIndexCmd)
	rankingsCmd.AddCommand(rankingsListCmd)
	rootCmd.AddCommand(rankingsCmd)
}

var rankingsCmd = &cobra.Command{
	Use:   "rankings",
	Short: "Manage CORE ranking tables",
	Long: `Manage CORE ranking tables.

Tables are CSV files named CORE<year>.csv in the rankings directory
(rankings_dir in the config). They can be indexed into a SQLite cache
(rankings_db) that build, timeline, chart and rank then read instead.`,
}

var rankingsIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Parse the CSV tables into the SQLite cache",
	Args:  cobra.NoArgs,
	RunE:  runRankingsIndex,
}

var rankingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the available ranking editions",
	Args:  cobra.NoArgs,
	RunE:  runRankingsList,
}

// RankingsResponse is the response for the rankings commands.
type RankingsResponse struct {
	Source   string                 `json:"source"`
	Editions []ranking.EditionCount `json:"editions"`
	Rows     int                    `json:"rows"`
}

func runRankingsIndex(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := config.ValidateRankingsDir(cfg.RankingsDir); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	years, err := editionYears(cfg)
	if err != nil {
		exitWithError(ExitConfigError, "listing editions: %v", err)
	}
	if len(years) == 0 {
		exitWithError(ExitConfigError, "no CORE<year>.csv tables found in %s", cfg.RankingsDir)
	}

	resolver, err := ranking.LoadDir(ctx, cfg.RankingsDir, years, logger)
	if err != nil {
		exitWithError(ExitError, "loading editions: %v", err)
	}
	if resolver.Len() == 0 {
		exitWithError(ExitDataError, "none of the ranking tables in %s could be read", cfg.RankingsDir)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.RankingsDB), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}
	cache, err := ranking.OpenCache(cfg.RankingsDB)
	if err != nil {
		exitWithError(ExitError, "opening cache: %v", err)
	}
	defer cache.Close()

	rows, err := cache.Store(resolver.EditionTables())
	if err != nil {
		exitWithError(ExitError, "storing editions: %v", err)
	}
	counts, err := cache.Counts()
	if err != nil {
		exitWithError(ExitError, "counting editions: %v", err)
	}

	if humanOutput {
		outputHuman("Indexed %d rows from %d editions (%s) into %s\n", rows, len(resolver.Editions()), formatEditions(resolver.Editions()), cfg.RankingsDB)
		return nil
	}
	return outputJSON(RankingsResponse{Source: cfg.RankingsDB, Editions: counts, Rows: rows})
}

func runRankingsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	resolver, source, err := loadResolver(ctx, cfg, logger)
	if err != nil {
		exitWithError(ExitConfigError, "loading rankings: %v", err)
	}

	counts := resolver.Counts()
	total := 0
	for _, c := range counts {
		total += c.Rows
	}

	if humanOutput {
		if len(counts) == 0 {
			outputHuman("No ranking editions found in %s\n", cfg.RankingsDir)
			return nil
		}
		outputHuman("Source: %s\n", source)
		for _, c := range counts {
			outputHuman("  %s  %5d rows\n", ranking.EditionLabel(c.Year), c.Rows)
		}
		if missing := missingEditions(resolver.Editions()); len(missing) > 0 {
			outputHuman("Missing known editions: %s\n", formatEditions(missing))
		}
		return nil
	}
	return outputJSON(RankingsResponse{Source: source, Editions: counts, Rows: total})
}

// missingEditions returns the published CORE editions that are not loaded.
func missingEditions(loaded []int) []int {
	have := make(map[int]bool, len(loaded))
	for _, y := range loaded {
		have[y] = true
	}
	var missing []int
	for _, y := range ranking.DefaultEditions {
		if !have[y] {
			missing = append(missing, y)
		}
	}
	return missing
}
