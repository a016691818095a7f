package ranking

import (
	"sort"
	"strings"

	"github.com/pubtimeline/pubtl/internal/publication"
)

// Result is the outcome of a ranking lookup.
type Result struct {
	Edition int                  `json:"edition"`
	Rank    publication.CoreRank `json:"rank"`
	Raw     string               `json:"raw,omitempty"` // Rank text as written in the table
	Venue   string               `json:"venue,omitempty"`
	Acronym string               `json:"acronym,omitempty"`
}

// Found reports whether the lookup matched a table row.
func (r Result) Found() bool {
	return r.Venue != "" || r.Acronym != ""
}

// indexedRow caches the lower-cased matching keys of a row.
type indexedRow struct {
	Row
	venue   string
	acronym string
}

type indexedEdition struct {
	year int
	rows []indexedRow
}

// Resolver looks up conference ranks. It is immutable after construction and
// safe for concurrent use.
type Resolver struct {
	editions []indexedEdition // most recent first
}

// NewResolver builds a resolver over the given editions. When two editions
// share a year the later argument wins.
func NewResolver(editions ...Edition) *Resolver {
	byYear := make(map[int]Edition, len(editions))
	for _, ed := range editions {
		byYear[ed.Year] = ed
	}

	r := &Resolver{editions: make([]indexedEdition, 0, len(byYear))}
	for year, ed := range byYear {
		ie := indexedEdition{year: year, rows: make([]indexedRow, len(ed.Rows))}
		for i, row := range ed.Rows {
			ie.rows[i] = indexedRow{
				Row:     row,
				venue:   strings.ToLower(strings.TrimSpace(row.Venue)),
				acronym: strings.ToLower(strings.TrimSpace(row.Acronym)),
			}
		}
		r.editions = append(r.editions, ie)
	}
	sort.Slice(r.editions, func(i, j int) bool {
		return r.editions[i].year > r.editions[j].year
	})
	return r
}

// Editions returns the loaded edition years, most recent first.
func (r *Resolver) Editions() []int {
	years := make([]int, len(r.editions))
	for i, ed := range r.editions {
		years[i] = ed.year
	}
	return years
}

// Len returns the number of loaded editions.
func (r *Resolver) Len() int {
	return len(r.editions)
}

// EditionTables returns copies of the loaded editions, most recent first.
func (r *Resolver) EditionTables() []Edition {
	out := make([]Edition, len(r.editions))
	for i, ed := range r.editions {
		rows := make([]Row, len(ed.rows))
		for j, row := range ed.rows {
			rows[j] = row.Row
		}
		out[i] = Edition{Year: ed.year, Rows: rows}
	}
	return out
}

// Counts returns the row count per loaded edition, most recent first.
func (r *Resolver) Counts() []EditionCount {
	counts := make([]EditionCount, len(r.editions))
	for i, ed := range r.editions {
		counts[i] = EditionCount{Year: ed.year, Rows: len(ed.rows)}
	}
	return counts
}

// Resolve returns the rank of a venue at publication time.
//
// Only editions published in or before year are considered, most recent
// first. A row matches when either venue name contains the other
// (case-insensitive) or the acronyms are equal. The first matching row of
// the first edition that has one wins. Without a match the result carries
// the publication year and CoreUnranked; Resolve never fails.
func (r *Resolver) Resolve(venue, acronym string, year int) Result {
	venue = strings.ToLower(strings.TrimSpace(venue))
	acronym = strings.ToLower(strings.TrimSpace(acronym))

	for _, ed := range r.editions {
		if ed.year > year {
			continue
		}
		for _, row := range ed.rows {
			if !row.matches(venue, acronym) {
				continue
			}
			return Result{
				Edition: ed.year,
				Rank:    publication.ParseCoreRank(row.Rank),
				Raw:     row.Rank,
				Venue:   row.Venue,
				Acronym: row.Acronym,
			}
		}
	}

	return Result{Edition: year, Rank: publication.CoreUnranked}
}

// matches compares lower-cased query keys. Empty strings never match.
func (row indexedRow) matches(venue, acronym string) bool {
	if venue != "" && row.venue != "" {
		if strings.Contains(row.venue, venue) || strings.Contains(venue, row.venue) {
			return true
		}
	}
	return acronym != "" && row.acronym == acronym
}
