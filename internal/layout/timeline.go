package layout

import "github.com/pubtimeline/pubtl/internal/publication"

// Entry is a publication placed in a column. Stack 0 is the top slot.
type Entry struct {
	Stack       int                     `json:"stack"`
	Publication publication.Publication `json:"publication"`
}

// Column is one year of the timeline.
type Column struct {
	Year    int     `json:"year"`
	Index   int     `json:"index"`
	Entries []Entry `json:"entries"`
}

// Timeline is the positioned form of a bibliography.
type Timeline struct {
	Columns  []Column `json:"columns"`
	MaxStack int      `json:"max_stack"` // Entries in the tallest column
	Total    int      `json:"total"`
}

// Arrange groups, sorts and stacks publications. The input slice is not
// modified.
func Arrange(pubs []publication.Publication) Timeline {
	groups := Group(pubs)
	tl := Timeline{Columns: make([]Column, 0, len(groups))}

	for i, g := range groups {
		SortPublications(g.Publications)

		col := Column{Year: g.Year, Index: i, Entries: make([]Entry, len(g.Publications))}
		for j, p := range g.Publications {
			col.Entries[j] = Entry{Stack: j, Publication: p}
		}
		tl.Columns = append(tl.Columns, col)
		tl.MaxStack = max(tl.MaxStack, len(col.Entries))
		tl.Total += len(col.Entries)
	}
	return tl
}

// Years returns the column years in order.
func (t Timeline) Years() []int {
	years := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		years[i] = c.Year
	}
	return years
}

// CountByType tallies entries per publication type.
func (t Timeline) CountByType() map[publication.Type]int {
	counts := make(map[publication.Type]int)
	for _, c := range t.Columns {
		for _, e := range c.Entries {
			counts[e.Publication.Type]++
		}
	}
	return counts
}
