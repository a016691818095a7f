// Package layout orders publications into year columns for the timeline.
package layout

import (
	"sort"

	"github.com/pubtimeline/pubtl/internal/publication"
)

// YearGroup holds the publications of one year.
type YearGroup struct {
	Year         int                       `json:"year"`
	Publications []publication.Publication `json:"publications"`
}

// MaxYearSpan is the widest range of years Group fills with empty columns.
const MaxYearSpan = publication.MaxYear - publication.MinYear + 1

// Group buckets publications by year. Every year between the earliest and
// the latest publication gets a group, empty or not, in ascending order.
// Input order is kept inside each group.
//
// When the years span more than MaxYearSpan only the years that have
// publications get a group.
func Group(pubs []publication.Publication) []YearGroup {
	if len(pubs) == 0 {
		return []YearGroup{}
	}

	minYear, maxYear := pubs[0].Year, pubs[0].Year
	for _, p := range pubs[1:] {
		minYear = min(minYear, p.Year)
		maxYear = max(maxYear, p.Year)
	}

	// Computed in uint64 so extreme years cannot overflow the span.
	if uint64(maxYear)-uint64(minYear) >= MaxYearSpan {
		return groupSparse(pubs)
	}

	groups := make([]YearGroup, maxYear-minYear+1)
	for i := range groups {
		groups[i] = YearGroup{Year: minYear + i, Publications: []publication.Publication{}}
	}
	for _, p := range pubs {
		g := &groups[p.Year-minYear]
		g.Publications = append(g.Publications, p)
	}
	return groups
}

func groupSparse(pubs []publication.Publication) []YearGroup {
	byYear := make(map[int]int)
	var groups []YearGroup
	for _, p := range pubs {
		i, ok := byYear[p.Year]
		if !ok {
			i = len(groups)
			byYear[p.Year] = i
			groups = append(groups, YearGroup{Year: p.Year, Publications: []publication.Publication{}})
		}
		groups[i].Publications = append(groups[i].Publications, p)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Year < groups[j].Year })
	return groups
}

// Compare orders two publications for display within a year column.
// Negative means a is shown before b.
//
// Types are ordered by prestige. Journals are then ordered by quartile;
// conference and workshop papers by CORE rank and then by number of awards,
// most first. Ties fall back to the most recent date.
func Compare(a, b publication.Publication) int {
	if d := a.Type.Rank() - b.Type.Rank(); d != 0 {
		return d
	}

	switch a.Type {
	case publication.TypeJournal:
		if d := a.Quartile.Rank() - b.Quartile.Rank(); d != 0 {
			return d
		}
	case publication.TypeConference, publication.TypeWorkshop:
		if d := a.Icore.Rank() - b.Icore.Rank(); d != 0 {
			return d
		}
		if d := len(b.Awards) - len(a.Awards); d != 0 {
			return d
		}
	}

	return b.Date.Compare(a.Date)
}

// Less reports whether a is shown before b.
func Less(a, b publication.Publication) bool {
	return Compare(a, b) < 0
}

// SortPublications sorts pubs in place for display. The sort is stable.
func SortPublications(pubs []publication.Publication) {
	sort.SliceStable(pubs, func(i, j int) bool {
		return Less(pubs[i], pubs[j])
	})
}
