// Package ranking resolves conference CORE ranks across historical ranking
// editions.
package ranking

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Column positions in a CORE ranking table row.
const (
	colVenue   = 1
	colAcronym = 2
	colRank    = 4
)

// UnrankedText is the rank value used by the tables for venues that are
// listed but not ranked.
const UnrankedText = "Unranked"

// DefaultEditions are the CORE editions published so far.
var DefaultEditions = []int{2023, 2021, 2020, 2018, 2017, 2014, 2013, 2010, 2008}

// Row is one venue of a ranking edition.
type Row struct {
	Venue   string `json:"venue"`
	Acronym string `json:"acronym"`
	Rank    string `json:"rank"` // Raw rank text (A*, A, B, C, Unranked, National: ...)
}

// Edition is the ranking table published in a given year.
type Edition struct {
	Year int   `json:"year"`
	Rows []Row `json:"rows"`
}

// Label returns the edition name, e.g. "CORE2023".
func (e Edition) Label() string {
	return EditionLabel(e.Year)
}

// EditionLabel formats an edition year as "CORE<year>".
func EditionLabel(year int) string {
	return fmt.Sprintf("CORE%d", year)
}

// EditionFileName returns the CSV file name of an edition.
func EditionFileName(year int) string {
	return EditionLabel(year) + ".csv"
}

// ErrEmptyEdition is returned when a ranking table has no usable rows.
var ErrEmptyEdition = errors.New("ranking edition has no rows")

// ParseEditionCSV reads a ranking table. Rows are
// (index, venue, acronym, source, rank, ...); rows with fewer columns or no
// venue and acronym are skipped.
func ParseEditionCSV(r io.Reader, year int) (Edition, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	ed := Edition{Year: year}
	line := 0
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return Edition{}, fmt.Errorf("parsing %s line %d: %w", EditionLabel(year), line, err)
		}
		if len(rec) <= colRank {
			continue
		}
		row := Row{
			Venue:   strings.TrimSpace(rec[colVenue]),
			Acronym: strings.TrimSpace(rec[colAcronym]),
			Rank:    strings.TrimSpace(rec[colRank]),
		}
		if row.Venue == "" && row.Acronym == "" {
			continue
		}
		ed.Rows = append(ed.Rows, row)
	}

	if len(ed.Rows) == 0 {
		return Edition{}, fmt.Errorf("%s: %w", EditionLabel(year), ErrEmptyEdition)
	}
	return ed, nil
}

// ReadEditionFile reads the CSV table of one edition from dir.
func ReadEditionFile(dir string, year int) (Edition, error) {
	f, err := os.Open(filepath.Join(dir, EditionFileName(year)))
	if err != nil {
		return Edition{}, fmt.Errorf("opening ranking table: %w", err)
	}
	defer f.Close()
	return ParseEditionCSV(f, year)
}

var editionFilePattern = regexp.MustCompile(`^CORE(\d{4})\.csv$`)

// DiscoverEditions lists the edition years that have a CSV table in dir,
// most recent first.
func DiscoverEditions(dir string) ([]int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading rankings directory: %w", err)
	}

	var years []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := editionFilePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		year, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}
