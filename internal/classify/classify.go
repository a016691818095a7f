// Package classify infers the canonical publication type of a bibliography
// entry.
package classify

import (
	"regexp"
	"strings"

	"github.com/pubtimeline/pubtl/internal/publication"
)

// Input holds the record features the classifier looks at.
type Input struct {
	EntryType string // Raw entry type (article, inproceedings, ...)
	Journal   string
	Venue     string // Book title of proceedings
	National  bool   // Record is flagged as national scope
	Workshop  bool   // Venue title names a workshop
	Publisher string
}

var (
	bookTypes       = set("book", "phdthesis")
	journalTypes    = set("article")
	conferenceTypes = set("inproceedings", "conference")
	artifactTypes   = set("misc", "dataset", "data", "software", "artifact")
	editorshipTypes = set("proceedings", "editorship", "editedbook")
)

// Classify returns the publication type. Rules are applied in order and the
// first one that matches wins:
//
//  1. book or PhD thesis
//  2. journal article
//  3. workshop paper
//  4. national-scope paper
//  5. conference paper
//  6. data or software artifact with a publisher
//  7. edited volume
//  8. other
func Classify(in Input) publication.Type {
	entryType := strings.ToLower(strings.TrimSpace(in.EntryType))

	switch {
	case bookTypes[entryType]:
		return publication.TypeBook
	case journalTypes[entryType]:
		return publication.TypeJournal
	case in.Workshop:
		return publication.TypeWorkshop
	case in.National:
		return publication.TypeNational
	case conferenceTypes[entryType]:
		return publication.TypeConference
	case strings.TrimSpace(in.Publisher) != "" && artifactTypes[entryType]:
		return publication.TypeDataArtifacts
	case editorshipTypes[entryType]:
		return publication.TypeEditorship
	}
	return publication.TypeOther
}

// workshopPattern matches whole words only, so "News" or "Webs" in a venue
// name are not taken for a workshop.
var workshopPattern = regexp.MustCompile(`(?i)\b(workshops?|ws)\b`)

// IsWorkshopTitle reports whether a venue title names a workshop.
func IsWorkshopTitle(title string) bool {
	return workshopPattern.MatchString(title)
}

// IsNationalScope reports whether the raw scope field flags a national venue.
func IsNationalScope(scope string) bool {
	return strings.EqualFold(strings.TrimSpace(scope), "national")
}

func set(values ...string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}
