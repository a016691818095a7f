// Package textnorm cleans free-text bibliographic fields: LaTeX escapes,
// diacritics, acronyms and DOI links.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var (
	// \c{c}, \v{s}, \H{o}: letter commands must be handled before braces go.
	letterAccentBraced = regexp.MustCompile(`\\[cvuHkrdb]\{\s*([A-Za-z])\s*\}`)
	// \'e, \"u, \~n (braces already removed)
	symbolAccent = regexp.MustCompile("\\\\['\"`^~=.]\\s*([A-Za-z])")
	// \c c, \v s
	letterAccentSpaced = regexp.MustCompile(`\\[cvuHkrdb]\s+([A-Za-z])`)
	// dotless i/j and a few ligatures
	specialLetters = strings.NewReplacer(
		`\i`, "i",
		`\j`, "j",
		`\ss`, "ss",
		`\o`, "o",
		`\O`, "O",
		`\ae`, "ae",
		`\AE`, "AE",
		`\l`, "l",
		`\L`, "L",
		`\&`, "&",
		`\_`, "_",
		`\%`, "%",
		`\$`, "$",
		`\#`, "#",
	)
	braces = strings.NewReplacer("{", "", "}", "")
)

// NormalizeAccents removes LaTeX accent escapes and Unicode diacritics and
// collapses whitespace. "Jos{\'{e}} Fern{\'a}ndez{-}Amor{\'o}s" becomes
// "Jose Fernandez-Amoros". Applying it twice gives the same result as once.
//
// Passes repeat until the text stops changing; a pass that changes the text
// always shortens it.
func NormalizeAccents(text string) string {
	for {
		next := normalizeOnce(text)
		if next == text {
			return text
		}
		text = next
	}
}

func normalizeOnce(text string) string {
	text = letterAccentBraced.ReplaceAllString(text, "$1")
	text = braces.Replace(text)
	text = symbolAccent.ReplaceAllString(text, "$1")
	text = letterAccentSpaced.ReplaceAllString(text, "$1")
	text = specialLetters.Replace(text)
	text = StripDiacritics(text)
	return strings.Join(strings.Fields(text), " ")
}

// StripDiacritics decomposes text and drops combining marks.
func StripDiacritics(text string) string {
	out, _, err := transform.String(stripMarks, text)
	if err != nil {
		return text
	}
	return out
}

var (
	acronymPattern = regexp.MustCompile(`[({]([A-Z]+)[})]`)
	nonLetters     = regexp.MustCompile(`[^a-zA-Z\s]`)
)

// AcronymOrTruncate returns text unchanged when it fits in maxLen
// characters. Longer text yields its last parenthesised acronym, e.g.
// "... Conference (SPLC)" gives "SPLC". Without one, the initials of every
// word are used, keeping the last maxLen letters when they are still too
// long.
func AcronymOrTruncate(text string, maxLen int) string {
	if text == "" {
		return ""
	}
	if utf8.RuneCountInString(text) <= maxLen {
		return text
	}

	if matches := acronymPattern.FindAllStringSubmatch(text, -1); len(matches) > 0 {
		return matches[len(matches)-1][1]
	}

	cleaned := nonLetters.ReplaceAllString(text, "")
	var b strings.Builder
	for _, word := range strings.Fields(cleaned) {
		b.WriteByte(word[0])
	}
	initials := strings.ToUpper(b.String())

	if maxLen >= 0 && len(initials) > maxLen {
		return initials[len(initials)-maxLen:]
	}
	return initials
}

// CapitalizeFirst upper-cases the first letter of s.
func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// SplitTrim splits s on sep, trims every part and drops empty ones.
// Returns an empty (non-nil) slice for blank input.
func SplitTrim(s, sep string) []string {
	out := []string{}
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// FormatDOIURL turns a bare DOI into a resolvable https://doi.org link.
// URLs and other identifiers (handles) are returned trimmed but unchanged.
func FormatDOIURL(doi string) string {
	doi = strings.TrimSpace(doi)
	if doi == "" {
		return ""
	}
	lower := strings.ToLower(doi)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return doi
	}
	for _, prefix := range []string{"doi.org/", "doi:"} {
		if strings.HasPrefix(lower, prefix) {
			doi = strings.TrimSpace(doi[len(prefix):])
			lower = strings.ToLower(doi)
		}
	}
	if strings.HasPrefix(lower, "10.") {
		return "https://doi.org/" + doi
	}
	return doi
}
