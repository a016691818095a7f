package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pubtimeline/pubtl/internal/builder"
	"github.com/pubtimeline/pubtl/internal/ranking"
	"github.com/pubtimeline/pubtl/internal/textnorm"
)

var (
	rankYear    int
	rankAcronym string
)

func init() {
	rankCmd.Flags().IntVar(&rankYear, "year", 0, "Publication year (required)")
	rankCmd.Flags().StringVar(&rankAcronym, "acronym", "", "Venue acronym (default derived from the venue name)")
	rankCmd.MarkFlagRequired("year")
	rootCmd.AddCommand(rankCmd)
}

var rankCmd = &cobra.Command{
	Use:   "rank <venue>",
	Short: "Look up the CORE rank of a venue at publication time",
	Long: `Look up the CORE rank of a venue at publication time.

Only editions published in or before the given year are considered, most
recent first. A venue matches when either name contains the other or the
acronyms are equal.

Examples:
  pubtl rank "International Conference on Software Engineering" --year 2015
  pubtl rank "Proceedings of SPLC" --acronym SPLC --year 2023`,
	Args: cobra.ExactArgs(1),
	RunE: runRank,
}

// RankResponse is the response for the rank command.
type RankResponse struct {
	Query   string `json:"query"`
	Acronym string `json:"acronym"`
	Year    int    `json:"year"`
	ranking.Result
	Source string `json:"source,omitempty"`
}

func runRank(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	venue := textnorm.NormalizeAccents(args[0])
	if strings.TrimSpace(venue) == "" {
		exitWithError(ExitError, "venue must not be empty")
	}
	acronym := strings.TrimSpace(rankAcronym)
	if acronym == "" {
		acronym = textnorm.AcronymOrTruncate(venue, builder.RankingAcronymMaxLen)
	}

	resolver, source, err := loadResolver(ctx, cfg, logger)
	if err != nil {
		exitWithError(ExitConfigError, "loading rankings: %v", err)
	}
	if resolver.Len() == 0 {
		exitWithError(ExitConfigError, "no ranking editions available in %s\n\nDownload CORE<year>.csv tables there or set rankings_dir.", cfg.RankingsDir)
	}

	result := resolver.Resolve(venue, acronym, rankYear)

	if humanOutput {
		if !result.Found() {
			outputHuman("%s (%d): unranked, no matching venue in editions up to %d\n", venue, rankYear, rankYear)
			return nil
		}
		outputHuman("%s (%d): %s\n", venue, rankYear, result.Rank)
		outputHuman("  matched: %s (%s), %s, raw rank %q\n", result.Venue, result.Acronym, ranking.EditionLabel(result.Edition), result.Raw)
		return nil
	}

	return outputJSON(RankResponse{
		Query:   venue,
		Acronym: acronym,
		Year:    rankYear,
		Result:  result,
		Source:  source,
	})
}

// formatEditions lists edition years for human output.
func formatEditions(years []int) string {
	parts := make([]string, len(years))
	for i, y := range years {
		parts[i] = fmt.Sprint(y)
	}
	return strings.Join(parts, ", ")
}
