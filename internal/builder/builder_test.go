package builder

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pubtimeline/pubtl/internal/bibtex"
	"github.com/pubtimeline/pubtl/internal/publication"
	"github.com/pubtimeline/pubtl/internal/ranking"
)

func testResolver() *ranking.Resolver {
	return ranking.NewResolver(
		ranking.Edition{Year: 2010, Rows: []ranking.Row{
			{Venue: "International Conference on Software Engineering", Acronym: "ICSE", Rank: "A"},
		}},
		ranking.Edition{Year: 2020, Rows: []ranking.Row{
			{Venue: "International Conference on Software Engineering", Acronym: "ICSE", Rank: "A*"},
		}},
		ranking.Edition{Year: 2021, Rows: []ranking.Row{
			{Venue: "International Systems and Software Product Line Conference", Acronym: "SPLC", Rank: "B"},
		}},
	)
}

func rec(key, entryType string, fields map[string]string) publication.RawRecord {
	return publication.RawRecord{Key: key, EntryType: entryType, Fields: fields}
}

func TestBuildConferencePaper(t *testing.T) {
	b := New(testResolver(), "David Benavides")

	pub, err := b.Build(rec("Galindo2023", "InProceedings", map[string]string{
		"author":    `Jos{\'e} A. Galindo and David Benavides and Ana Lopez`,
		"title":     "Automated Analysis of {Feature} Models",
		"booktitle": "Proceedings of the 27th ACM International Systems and Software Product Line Conference (SPLC)",
		"year":      "2023",
		"month":     "sep",
		"doi":       "10.1145/3579027.3608972",
		"awards":    "Best Paper Award, Distinguished Artifact ,",
		"note":      "Extended version in {JSS}",
		"track":     "research",
		"keywords":  "variability,  feature models",
	}))
	require.NoError(t, err)

	assert.Equal(t, "inproceedings", pub.EntryType)
	assert.Equal(t, publication.TypeConference, pub.Type)
	assert.Equal(t, publication.CoreB, pub.Icore)
	assert.Equal(t, 2021, pub.IcoreEdition)
	assert.Equal(t, "SPLC", pub.Acronym)
	assert.Equal(t, publication.QuartileUnknown, pub.Quartile)
	assert.Equal(t, "Jose A. Galindo, David Benavides, Ana Lopez", pub.Authors)
	assert.Equal(t, publication.Found(2, 3), pub.AuthorPosition)
	assert.Equal(t, "Automated Analysis of Feature Models", pub.Title)
	assert.Equal(t, 2023, pub.Year)
	assert.Equal(t, "Sep", pub.Month)
	assert.Equal(t, "2023-09-01", pub.Date.String())
	assert.Equal(t, "https://doi.org/10.1145/3579027.3608972", pub.DOI)
	assert.Equal(t, []string{"Best Paper Award", "Distinguished Artifact"}, pub.Awards)
	assert.Equal(t, "Extended version in {JSS}", pub.Notes)
	assert.Equal(t, "Research", pub.Track)
	assert.Equal(t, "variability, feature models", pub.Keywords)
}

func TestBuildJournalArticle(t *testing.T) {
	b := New(testResolver(), "Benavides, David")

	pub, err := b.Build(rec("Benavides2020", "article", map[string]string{
		"author":  "David Benavides and Sergio Segura",
		"journal": "Journal of Systems and Software",
		"year":    "2020",
		"jcr":     " q1 ",
		"url":     "https://example.org/jss",
	}))
	require.NoError(t, err)

	assert.Equal(t, publication.TypeJournal, pub.Type)
	assert.Equal(t, publication.Q1, pub.Quartile)
	assert.Equal(t, "q1", pub.JCR)
	assert.Equal(t, publication.CoreNone, pub.Icore)
	assert.Equal(t, 0, pub.IcoreEdition)
	assert.Equal(t, "JOSAS", pub.Acronym)
	assert.Equal(t, publication.Found(1, 2), pub.AuthorPosition)
	assert.Equal(t, "2020-01-01", pub.Date.String())
	assert.Equal(t, "", pub.Month)
	assert.Equal(t, "https://example.org/jss", pub.DOI)
	assert.Empty(t, pub.Awards)
	assert.NotNil(t, pub.Awards)
}

func TestBuildRankingUsesEditionAtPublicationTime(t *testing.T) {
	b := New(testResolver(), "")

	tests := []struct {
		year        string
		wantRank    publication.CoreRank
		wantEdition int
	}{
		{"2015", publication.CoreA, 2010},
		{"2022", publication.CoreAStar, 2020},
		{"2005", publication.CoreUnranked, 0},
	}
	for _, tt := range tests {
		t.Run(tt.year, func(t *testing.T) {
			pub, err := b.Build(rec("icse", "inproceedings", map[string]string{
				"booktitle": "International Conference on Software Engineering",
				"year":      tt.year,
			}))
			require.NoError(t, err)
			assert.Equal(t, tt.wantRank, pub.Icore)
			assert.Equal(t, tt.wantEdition, pub.IcoreEdition)
		})
	}
}

func TestBuildAcronyms(t *testing.T) {
	b := New(nil, "")

	tests := []struct {
		name      string
		entryType string
		fields    map[string]string
		wantType  publication.Type
		wantAcr   string
	}{
		{
			name:      "book",
			entryType: "book",
			fields:    map[string]string{"title": "Variability", "year": "2019"},
			wantType:  publication.TypeBook,
			wantAcr:   BookAcronym,
		},
		{
			name:      "thesis",
			entryType: "phdthesis",
			fields:    map[string]string{"title": "On Features", "year": "2009"},
			wantType:  publication.TypeBook,
			wantAcr:   ThesisAcronym,
		},
		{
			name:      "artifact",
			entryType: "misc",
			fields:    map[string]string{"publisher": "Zenodo", "year": "2022"},
			wantType:  publication.TypeDataArtifacts,
			wantAcr:   "Zenodo",
		},
		{
			name:      "short venue kept",
			entryType: "inproceedings",
			fields:    map[string]string{"booktitle": "VaMoS", "year": "2022"},
			wantType:  publication.TypeConference,
			wantAcr:   "VaMoS",
		},
		{
			name:      "workshop",
			entryType: "inproceedings",
			fields:    map[string]string{"booktitle": "First International Workshop on Product Line Testing", "year": "2018"},
			wantType:  publication.TypeWorkshop,
			wantAcr:   "FIWOPLT",
		},
		{
			name:      "no venue",
			entryType: "techreport",
			fields:    map[string]string{"year": "2018"},
			wantType:  publication.TypeOther,
			wantAcr:   "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub, err := b.Build(rec(tt.name, tt.entryType, tt.fields))
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, pub.Type)
			assert.Equal(t, tt.wantAcr, pub.Acronym)
		})
	}
}

func TestBuildQuartile(t *testing.T) {
	b := New(nil, "")

	blank, err := b.Build(rec("a", "article", map[string]string{"journal": "IST", "year": "2020", "jcr": ""}))
	require.NoError(t, err)
	assert.Equal(t, publication.QuartileUnindexed, blank.Quartile)

	absent, err := b.Build(rec("b", "article", map[string]string{"journal": "IST", "year": "2020"}))
	require.NoError(t, err)
	assert.Equal(t, publication.QuartileUnknown, absent.Quartile)
}

func TestBuildMissingFields(t *testing.T) {
	b := New(nil, "David Benavides")

	pub, err := b.Build(rec("bare", "article", map[string]string{"year": "2021"}))
	require.NoError(t, err)

	assert.Equal(t, "", pub.Authors)
	assert.Equal(t, publication.PositionNoAuthors, pub.AuthorPosition.Status())
	assert.Equal(t, "", pub.Title)
	assert.Equal(t, "", pub.DOI)
	assert.Equal(t, "2021-01-01", pub.Date.String())
}

func TestBuildUnknownMonth(t *testing.T) {
	b := New(nil, "")

	pub, err := b.Build(rec("m", "article", map[string]string{"year": "2021", "month": "Spring"}))
	require.NoError(t, err)
	assert.Equal(t, "2021-01-01", pub.Date.String())
	assert.Equal(t, "Spring", pub.Month)
}

func TestBuildInvalidYear(t *testing.T) {
	b := New(testResolver(), "")

	pub, err := b.Build(rec("pending", "inproceedings", map[string]string{
		"title":     "Accepted Paper",
		"booktitle": "International Conference on Software Engineering",
		"year":      "in press",
	}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidYear))
	assert.Contains(t, err.Error(), "in press")
	assert.Equal(t, "Accepted Paper", pub.Title)
	assert.Equal(t, 0, pub.Year)
	assert.Equal(t, publication.CoreUnranked, pub.Icore)
}

func TestBuildOutOfRangeYear(t *testing.T) {
	b := New(testResolver(), "")

	for _, year := range []string{"9223372036854775807", "99999999", "10000", "999", "-2020", "0"} {
		t.Run(year, func(t *testing.T) {
			pub, err := b.Build(rec("typo", "inproceedings", map[string]string{
				"booktitle": "International Conference on Software Engineering",
				"year":      year,
			}))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidYear)
			assert.Equal(t, 0, pub.Year)
		})
	}

	for _, year := range []string{"1000", "9999"} {
		_, err := b.Build(rec("edge", "article", map[string]string{"year": year}))
		assert.NoError(t, err, year)
	}
}

func TestBuildAllRejectsInvalidYears(t *testing.T) {
	var logs bytes.Buffer
	b := New(nil, "", WithLogger(zerolog.New(&logs)))

	batch := b.BuildAll([]publication.RawRecord{
		rec("a", "article", map[string]string{"year": "2020"}),
		rec("b", "article", map[string]string{"year": ""}),
		rec("c", "article", map[string]string{"year": "2018"}),
		rec("d", "article", map[string]string{}),
		rec("e", "article", map[string]string{"year": "9223372036854775807"}),
	})

	require.Len(t, batch.Publications, 2)
	assert.Equal(t, "a", batch.Publications[0].Key)
	assert.Equal(t, "c", batch.Publications[1].Key)

	require.Len(t, batch.Rejected, 3)
	assert.Equal(t, "b", batch.Rejected[0].Key)
	assert.Equal(t, "d", batch.Rejected[1].Key)
	assert.Equal(t, "e", batch.Rejected[2].Key)
	assert.ErrorIs(t, batch.Rejected[0].Err, ErrInvalidYear)
	assert.NotEmpty(t, batch.Rejected[0].Reason)

	assert.Contains(t, logs.String(), "rejecting record")
}

func TestBuildAllEmpty(t *testing.T) {
	batch := New(nil, "").BuildAll(nil)
	assert.NotNil(t, batch.Publications)
	assert.NotNil(t, batch.Rejected)
	assert.Empty(t, batch.Publications)
}

func TestBuildAllDeterministic(t *testing.T) {
	recs := []publication.RawRecord{
		rec("x", "inproceedings", map[string]string{
			"author":    "Ana Lopez and Juan Perez",
			"booktitle": "International Conference on Software Engineering",
			"year":      "2021",
		}),
		rec("y", "article", map[string]string{"journal": "IEEE Software", "year": "2019", "jcr": "Q2"}),
	}
	b := New(testResolver(), "Juan Perez")

	first := b.BuildAll(recs)
	second := b.BuildAll(recs)
	assert.Equal(t, first.Publications, second.Publications)
}

func TestWithAcronymMaxLen(t *testing.T) {
	b := New(nil, "", WithAcronymMaxLen(3))
	pub, err := b.Build(rec("a", "article", map[string]string{"journal": "Information and Software Technology", "year": "2020"}))
	require.NoError(t, err)
	assert.Equal(t, "AST", pub.Acronym)

	b = New(nil, "", WithAcronymMaxLen(0))
	pub, err = b.Build(rec("a", "article", map[string]string{"journal": "IEEE Software", "year": "2020"}))
	require.NoError(t, err)
	assert.Equal(t, "IEEE Software", pub.Acronym)
}

func TestBuildFromBibTeX(t *testing.T) {
	const src = `
@inproceedings{Horcas2023,
  author    = {Jos{\'{e}} Miguel Horcas and David Benavides and Lidia Fuentes},
  title     = {Uniform and Scalable Sampling of Highly Configurable Systems},
  booktitle = {Proceedings of the 27th ACM International Systems and Software Product Line Conference - Volume A ({SPLC})},
  year      = {2023},
  month     = sep,
  doi       = {10.1145/3579027.3608972}
}

@article{Galindo2019,
  author  = {Galindo, Jos{\'{e}} A.},
  title   = {Automated analysis of feature models: Quo vadis?},
  journal = {Computing},
  year    = {2019},
  jcr     = {Q2}
}

@misc{Dataset2022,
  author    = {David Benavides},
  title     = {Feature model dataset},
  publisher = {Zenodo},
  year      = {forthcoming}
}
`
	recs, err := bibtex.ParseString(src)
	require.NoError(t, err)

	batch := New(testResolver(), "David Benavides").BuildAll(recs)
	require.Len(t, batch.Publications, 2)
	require.Len(t, batch.Rejected, 1)

	splc := batch.Publications[0]
	assert.Equal(t, "Horcas2023", splc.Key)
	assert.Equal(t, publication.TypeConference, splc.Type)
	assert.Equal(t, "SPLC", splc.Acronym)
	assert.Equal(t, publication.CoreB, splc.Icore)
	assert.Equal(t, "2/3", splc.AuthorPosition.String())
	assert.Equal(t, "Jose Miguel Horcas, David Benavides, Lidia Fuentes", splc.Authors)
	assert.Equal(t, "2023-09-01", splc.Date.String())

	journal := batch.Publications[1]
	assert.Equal(t, publication.TypeJournal, journal.Type)
	assert.Equal(t, publication.Q2, journal.Quartile)
	assert.Equal(t, "Computing", journal.Acronym)

	assert.Equal(t, "Dataset2022", batch.Rejected[0].Key)
	assert.Equal(t, publication.TypeDataArtifacts, batch.Rejected[0].Publication.Type)
}
