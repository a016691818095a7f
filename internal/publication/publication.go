// Package publication defines the canonical publication model built from raw
// bibliographic records.
package publication

// Publication is one entry of a researcher's publication record.
//
// Every field is always present. Values that do not apply to the entry's
// type hold their sentinel (CoreNone, QuartileUnknown, empty strings) rather
// than being omitted.
type Publication struct {
	// Identity
	Key       string `json:"key"`        // Citation key from the bibliography
	EntryType string `json:"entry_type"` // Lower-cased raw entry type (article, inproceedings, ...)
	Type      Type   `json:"type"`

	// Rankings
	Quartile     Quartile `json:"quartile"`
	JCR          string   `json:"jcr"`
	Icore        CoreRank `json:"icore"`
	IcoreEdition int      `json:"icore_edition"`

	// Authorship
	Authors        string         `json:"authors"`
	AuthorPosition AuthorPosition `json:"author_position"`

	// Venue and title
	Title     string `json:"title"`
	Journal   string `json:"journal"`
	BookTitle string `json:"booktitle"`
	Acronym   string `json:"acronym"`
	Track     string `json:"track"`
	Publisher string `json:"publisher"`

	// Annotations
	Awards []string `json:"awards"`
	Notes  string   `json:"notes"`

	// Publication date
	Year  int    `json:"year"`
	Month string `json:"month"`
	Date  Date   `json:"date"`

	// Passthrough details
	DOI          string `json:"doi"`
	Abstract     string `json:"abstract"`
	Keywords     string `json:"keywords"`
	Address      string `json:"address"`
	Volume       string `json:"volume"`
	Pages        string `json:"pages"`
	Calification string `json:"calification"`
}

// Ranking returns the label shown for the entry's ranking: the quartile for
// journals, the CORE rank for conferences and workshops, the free-text
// calification otherwise. Returns "-" when nothing applies.
func (p Publication) Ranking() string {
	switch p.Type {
	case TypeJournal:
		if p.Quartile == "" {
			return string(QuartileUnindexed)
		}
		return string(p.Quartile)
	case TypeConference, TypeWorkshop:
		if p.Icore == CoreNone {
			return string(CoreUnranked)
		}
		return string(p.Icore)
	}
	if p.Calification != "" {
		return p.Calification
	}
	return "-"
}

// HasAwards reports whether the entry received at least one award.
func (p Publication) HasAwards() bool {
	return len(p.Awards) > 0
}
