// Package builder turns raw bibliography records into canonical
// publications.
package builder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pubtimeline/pubtl/internal/author"
	"github.com/pubtimeline/pubtl/internal/classify"
	"github.com/pubtimeline/pubtl/internal/publication"
	"github.com/pubtimeline/pubtl/internal/ranking"
	"github.com/pubtimeline/pubtl/internal/textnorm"
)

// Acronym length limits.
const (
	// DefaultAcronymMaxLen bounds the acronym shown for a venue.
	DefaultAcronymMaxLen = 25
	// RankingAcronymMaxLen bounds the acronym used for ranking lookups.
	RankingAcronymMaxLen = 50
)

// Fixed acronyms for entries without a venue.
const (
	BookAcronym   = "Book"
	ThesisAcronym = "PhD Thesis"
)

// ErrInvalidYear is returned for records whose year is missing, not an
// integer or outside publication.MinYear..MaxYear. The publication is still
// built.
var ErrInvalidYear = errors.New("invalid publication year")

// Builder builds publications for one researcher against one set of
// ranking editions.
type Builder struct {
	resolver      *ranking.Resolver
	researcher    string
	acronymMaxLen int
	logger        zerolog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithAcronymMaxLen overrides DefaultAcronymMaxLen.
func WithAcronymMaxLen(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.acronymMaxLen = n
		}
	}
}

// WithLogger sets the logger used to report rejected records.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Builder) {
		b.logger = l
	}
}

// New creates a builder. A nil resolver behaves like one with no editions.
func New(resolver *ranking.Resolver, researcher string, opts ...Option) *Builder {
	if resolver == nil {
		resolver = ranking.NewResolver()
	}
	b := &Builder{
		resolver:      resolver,
		researcher:    researcher,
		acronymMaxLen: DefaultAcronymMaxLen,
		logger:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build converts one record. Missing fields never fail the record; an
// unusable year returns the best-effort publication along with an error
// wrapping ErrInvalidYear.
func (b *Builder) Build(rec publication.RawRecord) (publication.Publication, error) {
	entryType := strings.ToLower(strings.TrimSpace(rec.EntryType))
	journal := textnorm.NormalizeAccents(rec.Get("journal"))
	bookTitle := textnorm.NormalizeAccents(rec.Get("booktitle"))
	publisher := textnorm.NormalizeAccents(rec.Get("publisher"))

	rawYear := strings.TrimSpace(rec.Get("year"))
	year, yearErr := strconv.Atoi(rawYear)
	if yearErr == nil && !publication.ValidYear(year) {
		yearErr = fmt.Errorf("year %d out of range", year)
	}
	if yearErr != nil {
		year = 0
	}

	icore := publication.CoreNone
	icoreEdition := 0
	if bookTitle != "" && yearErr == nil {
		res := b.resolver.Resolve(bookTitle, textnorm.AcronymOrTruncate(bookTitle, RankingAcronymMaxLen), year)
		icore = res.Rank
		if res.Found() {
			icoreEdition = res.Edition
		}
	} else if bookTitle != "" {
		icore = publication.CoreUnranked
	}

	pubType := classify.Classify(classify.Input{
		EntryType: entryType,
		Journal:   journal,
		Venue:     bookTitle,
		National:  classify.IsNationalScope(rec.Get("scope")),
		Workshop:  classify.IsWorkshopTitle(bookTitle),
		Publisher: publisher,
	})

	names := author.SplitAuthors(rec.Get("author"))
	for i, n := range names {
		names[i] = textnorm.NormalizeAccents(n)
	}

	jcr, hasJCR := rec.Lookup("jcr")

	month := strings.TrimSpace(rec.Get("month"))

	pub := publication.Publication{
		Key:            rec.Key,
		EntryType:      entryType,
		Type:           pubType,
		Quartile:       publication.ParseQuartile(jcr, hasJCR),
		JCR:            strings.TrimSpace(jcr),
		Icore:          icore,
		IcoreEdition:   icoreEdition,
		Authors:        strings.Join(names, ", "),
		AuthorPosition: author.FindPositionIn(names, b.researcher),
		Title:          textnorm.NormalizeAccents(rec.Get("title")),
		Journal:        journal,
		BookTitle:      bookTitle,
		Acronym:        b.acronym(entryType, pubType, journal, bookTitle, publisher),
		Track:          textnorm.CapitalizeFirst(strings.TrimSpace(rec.Get("track"))),
		Publisher:      publisher,
		Awards:         textnorm.SplitTrim(rec.Get("awards"), ","),
		Notes:          rec.Get("note"),
		Year:           year,
		Month:          textnorm.CapitalizeFirst(month),
		Date:           publication.NewDate(year, MonthNumber(month)),
		DOI:            textnorm.FormatDOIURL(rec.FirstOf("doi", "url")),
		Abstract:       strings.TrimSpace(rec.Get("abstract")),
		Keywords:       strings.Join(textnorm.SplitTrim(rec.Get("keywords"), ","), ", "),
		Address:        textnorm.NormalizeAccents(rec.Get("address")),
		Volume:         strings.TrimSpace(rec.Get("volume")),
		Pages:          strings.TrimSpace(rec.Get("pages")),
		Calification:   strings.TrimSpace(rec.Get("calification")),
	}

	if yearErr != nil {
		return pub, fmt.Errorf("%s: %w: %q", rec.Key, ErrInvalidYear, rawYear)
	}
	return pub, nil
}

func (b *Builder) acronym(entryType string, t publication.Type, journal, bookTitle, publisher string) string {
	switch {
	case entryType == "book":
		return BookAcronym
	case entryType == "phdthesis":
		return ThesisAcronym
	case t == publication.TypeDataArtifacts:
		return publisher
	}
	venue := journal
	if venue == "" {
		venue = bookTitle
	}
	return textnorm.AcronymOrTruncate(venue, b.acronymMaxLen)
}

// Rejected is a record that could not be placed on the timeline.
type Rejected struct {
	Key         string                  `json:"key"`
	Publication publication.Publication `json:"publication"`
	Err         error                   `json:"-"`
	Reason      string                  `json:"reason"`
}

// Batch is the outcome of building a whole bibliography. Both slices keep
// the input order.
type Batch struct {
	Publications []publication.Publication `json:"publications"`
	Rejected     []Rejected                `json:"rejected"`
}

// BuildAll builds every record. Records with an invalid year go to the
// rejected list instead of the timeline.
func (b *Builder) BuildAll(recs []publication.RawRecord) Batch {
	batch := Batch{
		Publications: make([]publication.Publication, 0, len(recs)),
		Rejected:     []Rejected{},
	}
	for _, rec := range recs {
		pub, err := b.Build(rec)
		if err != nil {
			b.logger.Warn().Err(err).Str("key", rec.Key).Msg("rejecting record")
			batch.Rejected = append(batch.Rejected, Rejected{
				Key:         rec.Key,
				Publication: pub,
				Err:         err,
				Reason:      err.Error(),
			})
			continue
		}
		batch.Publications = append(batch.Publications, pub)
	}
	return batch
}
