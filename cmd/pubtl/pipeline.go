package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pubtimeline/pubtl/internal/bibtex"
	"github.com/pubtimeline/pubtl/internal/builder"
	"github.com/pubtimeline/pubtl/internal/config"
	"github.com/pubtimeline/pubtl/internal/dblp"
	"github.com/pubtimeline/pubtl/internal/ranking"
)

// Flags shared by build, timeline and chart.
var (
	researcherFlag string
	fromDBLP       bool
)

func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&researcherFlag, "researcher", "r", "", "Researcher whose author position is located (default from config)")
	cmd.Flags().BoolVar(&fromDBLP, "dblp", false, "Download the researcher's bibliography from DBLP instead of reading a file")
}

// resolveResearcher picks the researcher name from the flag or the config.
func resolveResearcher(flag string, cfg *config.GlobalConfig) string {
	if r := strings.TrimSpace(flag); r != "" {
		return r
	}
	if cfg != nil {
		return strings.TrimSpace(cfg.Researcher)
	}
	return ""
}

// loadResolver builds the ranking resolver. The SQLite cache is used when it
// holds any edition; otherwise the CSV tables are read directly. Returns the
// source the editions came from.
func loadResolver(ctx context.Context, cfg *config.GlobalConfig, log zerolog.Logger) (*ranking.Resolver, string, error) {
	if cfg.RankingsDB != "" {
		if _, err := os.Stat(cfg.RankingsDB); err == nil {
			cache, err := ranking.OpenCache(cfg.RankingsDB)
			if err != nil {
				return nil, "", err
			}
			defer cache.Close()

			resolver, err := cache.LoadResolver()
			if err != nil {
				return nil, "", err
			}
			if resolver.Len() > 0 {
				log.Debug().Str("cache", cfg.RankingsDB).Ints("editions", resolver.Editions()).Msg("using ranking cache")
				return resolver, cfg.RankingsDB, nil
			}
		}
	}

	years, err := editionYears(cfg)
	if err != nil {
		return nil, "", err
	}
	if len(years) == 0 {
		log.Warn().Str("dir", cfg.RankingsDir).Msg("no ranking editions found; conference ranks will be unranked")
		return ranking.NewResolver(), "", nil
	}

	resolver, err := ranking.LoadDir(ctx, cfg.RankingsDir, years, log)
	if err != nil {
		return nil, "", err
	}
	return resolver, cfg.RankingsDir, nil
}

// editionYears returns the configured editions, or every edition table
// present in the rankings directory.
func editionYears(cfg *config.GlobalConfig) ([]int, error) {
	if len(cfg.Editions) > 0 {
		return cfg.Editions, nil
	}
	years, err := ranking.DiscoverEditions(cfg.RankingsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return years, nil
}

// readSource returns the BibTeX text of a file argument ("-" reads stdin).
func readSource(path string) (string, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("opening bibliography: %w", err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("reading bibliography: %w", err)
	}
	return string(data), nil
}

// buildBatch parses BibTeX text and builds every record. A parse failure
// yields no publications at all.
func buildBatch(src string, resolver *ranking.Resolver, researcher string, log zerolog.Logger) (builder.Batch, error) {
	records, err := bibtex.ParseString(src)
	if err != nil {
		return builder.Batch{}, err
	}
	b := builder.New(resolver, researcher, builder.WithLogger(log))
	batch := b.BuildAll(records)
	log.Info().
		Int("records", len(records)).
		Int("publications", len(batch.Publications)).
		Int("rejected", len(batch.Rejected)).
		Msg("bibliography built")
	return batch, nil
}

// mustRunPipeline reads the bibliography named by args (or DBLP), loads the
// rankings and builds the batch, exiting on failure.
func mustRunPipeline(cmd *cobra.Command, args []string) (builder.Batch, string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	researcher := resolveResearcher(researcherFlag, cfg)

	var src string
	switch {
	case fromDBLP:
		if researcher == "" {
			exitWithError(ExitConfigError, "--dblp needs a researcher\n\n%s", config.HelpfulConfigMessage())
		}
		_, bib, err := newDBLPClient(cfg).AuthorBibTeX(ctx, researcher)
		if err != nil {
			exitWithDBLPError(err)
		}
		src = bib
	case len(args) == 1:
		var err error
		src, err = readSource(args[0])
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
	default:
		exitWithError(ExitError, "a BibTeX file argument or --dblp is required")
	}

	if researcher == "" {
		logger.Warn().Msg("no researcher configured; author positions will only carry the author count")
	}

	resolver, _, err := loadResolver(ctx, cfg, logger)
	if err != nil {
		exitWithError(ExitConfigError, "loading rankings: %v", err)
	}

	batch, err := buildBatch(src, resolver, researcher, logger)
	if err != nil {
		var perr *bibtex.ParseError
		if errors.As(err, &perr) {
			exitWithError(ExitDataError, "parsing BibTeX: %v", err)
		}
		exitWithError(ExitError, "building publications: %v", err)
	}
	return batch, researcher
}

func newDBLPClient(cfg *config.GlobalConfig) *dblp.Client {
	var opts []dblp.ClientOption
	if cfg.DBLPURL != "" {
		opts = append(opts, dblp.WithBaseURL(cfg.DBLPURL))
	}
	if cfg.DBLPRate > 0 {
		opts = append(opts, dblp.WithRateLimit(cfg.DBLPRate))
	}
	return dblp.NewClient(opts...)
}

func exitWithDBLPError(err error) {
	switch {
	case dblp.IsNotFound(err):
		exitWithError(ExitNotFound, "%v", err)
	case dblp.IsRateLimited(err):
		exitWithError(ExitAPIError, "%v", err)
	default:
		exitWithError(ExitAPIError, "DBLP request failed: %v", err)
	}
}
