package author

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"

	"github.com/pubtimeline/pubtl/internal/publication"
	"github.com/pubtimeline/pubtl/internal/textnorm"
)

// Score thresholds for matching a researcher against an author entry.
const (
	// WordSetScore is given when one name's words contain the other's.
	WordSetScore = 1.0
	// InitialsScore is given when the initials of both names are equal.
	InitialsScore = 0.95
	// MatchThreshold is the minimum score for a confident match.
	MatchThreshold = 0.8
)

var authorSeparators = regexp.MustCompile(`(?i)\s+and\s+|,|;`)

// SplitAuthors splits a free-text author list on "and", commas and
// semicolons. Entries are trimmed and empty entries dropped.
func SplitAuthors(list string) []string {
	var names []string
	for _, part := range authorSeparators.Split(list, -1) {
		if p := strings.TrimSpace(part); p != "" {
			names = append(names, p)
		}
	}
	return names
}

// NormalizeName prepares a name for comparison: LaTeX escapes and
// diacritics removed, lower-cased, periods and hyphens dropped, whitespace
// collapsed. "Jos{\'{e}} A. Galindo" becomes "jose a galindo".
func NormalizeName(name string) string {
	name = textnorm.NormalizeAccents(name)
	name = strings.ToLower(name)
	name = strings.NewReplacer(".", "", "-", "").Replace(name)
	return strings.Join(strings.Fields(name), " ")
}

// FindPosition locates target in a free-text author list.
func FindPosition(list, target string) publication.AuthorPosition {
	return FindPositionIn(SplitAuthors(list), target)
}

// FindPositionIn locates target among already split author names.
//
// The best scoring author is a confident match when its score reaches
// MatchThreshold; otherwise the position only carries the author count.
// An empty list gives the zero position.
func FindPositionIn(names []string, target string) publication.AuthorPosition {
	total := len(names)
	if total == 0 {
		return publication.AuthorPosition{}
	}

	normTarget := NormalizeName(ParseQuery(target).FullName())
	if normTarget == "" {
		return publication.NotConfident(total)
	}
	targetName := newName(normTarget)

	bestScore := 0.0
	bestIdx := -1
	for i, n := range names {
		normAuthor := NormalizeName(n)
		if normAuthor == "" {
			continue
		}
		score := similarity(targetName, newName(normAuthor))
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}

	if bestIdx >= 0 && bestScore >= MatchThreshold {
		return publication.Found(bestIdx+1, total)
	}
	return publication.NotConfident(total)
}

// name holds the comparison features of a normalized name.
type name struct {
	text     string
	words    map[string]bool
	initials string
}

func newName(normalized string) name {
	n := name{text: normalized, words: make(map[string]bool)}
	var b strings.Builder
	for _, w := range strings.Fields(normalized) {
		n.words[w] = true
		r, _ := utf8.DecodeRuneInString(w)
		b.WriteRune(r)
	}
	n.initials = b.String()
	return n
}

// similarity scores two normalized names between 0 and 1. Rules are tried
// in order: word-set containment, equal initials, then edit distance.
func similarity(a, b name) float64 {
	if isSubset(a.words, b.words) || isSubset(b.words, a.words) {
		return WordSetScore
	}
	if a.initials != "" && a.initials == b.initials {
		return InitialsScore
	}

	longest := utf8.RuneCountInString(a.text)
	if l := utf8.RuneCountInString(b.text); l > longest {
		longest = l
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a.text, b.text)
	return 1 - float64(dist)/float64(longest)
}

// NameSimilarity normalizes both names and scores them with the same rules as FindPosition.
func NameSimilarity(a, b string) float64 {
	na, nb := NormalizeName(a), NormalizeName(b)
	if na == "" || nb == "" {
		return 0
	}
	return similarity(newName(na), newName(nb))
}

func isSubset(small, large map[string]bool) bool {
	if len(small) == 0 {
		return false
	}
	for w := range small {
		if !large[w] {
			return false
		}
	}
	return true
}
