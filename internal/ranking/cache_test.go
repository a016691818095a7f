package ranking

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pubtimeline/pubtl/internal/publication"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := OpenCache(filepath.Join(t.TempDir(), "rankings.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCache_StoreAndLoad(t *testing.T) {
	c := openTestCache(t)

	n, err := c.Store(testEditions())
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	editions, err := c.Load()
	require.NoError(t, err)
	require.Len(t, editions, 2)
	assert.Equal(t, 2020, editions[0].Year)
	assert.Equal(t, 2010, editions[1].Year)
	assert.Equal(t, testEditions()[1].Rows, editions[0].Rows, "row order preserved")

	counts, err := c.Counts()
	require.NoError(t, err)
	assert.Equal(t, []EditionCount{{Year: 2020, Rows: 3}, {Year: 2010, Rows: 2}}, counts)
}

func TestCache_StoreReplacesEdition(t *testing.T) {
	c := openTestCache(t)

	_, err := c.Store(testEditions())
	require.NoError(t, err)

	_, err = c.Store([]Edition{{Year: 2010, Rows: []Row{{Venue: "Only", Acronym: "ONLY", Rank: "C"}}}})
	require.NoError(t, err)

	r, err := c.LoadResolver()
	require.NoError(t, err)
	assert.Equal(t, []int{2020, 2010}, r.Editions())
	assert.Equal(t, publication.CoreC, r.Resolve("", "ONLY", 2012).Rank)
	assert.Equal(t, publication.CoreUnranked, r.Resolve("", "ICSE", 2012).Rank)
	assert.Equal(t, publication.CoreAStar, r.Resolve("", "ICSE", 2021).Rank)
}

func TestCache_EmptyLoad(t *testing.T) {
	c := openTestCache(t)

	editions, err := c.Load()
	require.NoError(t, err)
	assert.Empty(t, editions)
}
