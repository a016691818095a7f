// Package bibtex reads BibTeX bibliographies into raw records.
package bibtex

import (
	"fmt"
	"io"
	"strings"

	"github.com/nickng/bibtex"

	"github.com/pubtimeline/pubtl/internal/publication"
)

// ParseError reports malformed BibTeX input. The whole document is rejected.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("bibtex: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// monthMacros defines the month abbreviations the standard BibTeX styles
// provide, so "month = sep" resolves to "sep".
const monthMacros = `@string{jan = "jan"} @string{feb = "feb"} @string{mar = "mar"} ` +
	`@string{apr = "apr"} @string{may = "may"} @string{jun = "jun"} ` +
	`@string{jul = "jul"} @string{aug = "aug"} @string{sep = "sep"} ` +
	`@string{oct = "oct"} @string{nov = "nov"} @string{dec = "dec"}` + "\n"

// Parse reads every entry of a BibTeX document.
//
// Entry types and field names are lower-cased. Field values lose their
// outer delimiters, @string macros and "#" concatenations are resolved, and
// inner braces and LaTeX escapes are kept. Entries come back in document
// order. Any syntax error fails the whole document with a *ParseError.
func Parse(r io.Reader) ([]publication.RawRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading bibtex: %w", err)
	}
	return ParseString(string(data))
}

// ParseString is Parse over an in-memory document.
func ParseString(src string) ([]publication.RawRecord, error) {
	bib, err := bibtex.Parse(strings.NewReader(monthMacros + src))
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	records := make([]publication.RawRecord, 0, len(bib.Entries))
	for _, entry := range bib.Entries {
		records = append(records, toRecord(entry))
	}
	return records, nil
}

func toRecord(entry *bibtex.BibEntry) publication.RawRecord {
	rec := publication.RawRecord{
		Key:       strings.TrimSpace(entry.CiteName),
		EntryType: strings.ToLower(strings.TrimSpace(entry.Type)),
		Fields:    make(map[string]string, len(entry.Fields)),
	}
	for name, value := range entry.Fields {
		if value == nil {
			continue
		}
		rec.Fields[strings.ToLower(strings.TrimSpace(name))] = value.String()
	}
	return rec
}
