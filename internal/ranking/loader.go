package ranking

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentLoads bounds how many ranking tables are parsed at once.
const maxConcurrentLoads = 4

// LoadDir reads the CSV table of every requested edition from dir and
// returns a resolver over the editions that loaded.
//
// A table that is missing or malformed is logged and left out, so lookups
// for the affected years fall back to older editions. The only error
// returned is a cancelled context.
func LoadDir(ctx context.Context, dir string, years []int, logger zerolog.Logger) (*Resolver, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)

	var mu sync.Mutex
	loaded := make([]Edition, 0, len(years))

	for _, year := range years {
		year := year
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			ed, err := ReadEditionFile(dir, year)
			if err != nil {
				logger.Warn().Err(err).Int("edition", year).Msg("skipping ranking edition")
				return nil
			}
			logger.Debug().Int("edition", year).Int("rows", len(ed.Rows)).Msg("loaded ranking edition")

			mu.Lock()
			loaded = append(loaded, ed)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return NewResolver(loaded...), nil
}
