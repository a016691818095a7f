package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pubtimeline/pubtl/internal/builder"
	"github.com/pubtimeline/pubtl/internal/publication"
)

// Title truncation lengths by context
const (
	ListTitleMaxLen = 70 // Used in build output
	CellTitleMaxLen = 40 // Used in timeline columns
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that write files.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
	Count  int    `json:"count"`
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// formatPublicationLine renders one publication as a single summary line.
func formatPublicationLine(p publication.Publication) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d  %-13s %-4s", p.Year, p.Type, p.Ranking())
	if pos := p.AuthorPosition.String(); pos != "" {
		fmt.Fprintf(&sb, " [%s]", pos)
	}
	if p.Acronym != "" {
		fmt.Fprintf(&sb, " %s:", p.Acronym)
	}
	fmt.Fprintf(&sb, " %s", truncateString(p.Title, ListTitleMaxLen))
	if p.HasAwards() {
		sb.WriteString(" " + strings.Repeat("*", len(p.Awards)))
	}
	return sb.String()
}

// formatRejected renders the rejected records of a batch.
func formatRejected(rejected []builder.Rejected) string {
	if len(rejected) == 0 {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nRejected %d record(s):\n", len(rejected))
	for _, r := range rejected {
		fmt.Fprintf(&sb, "  %s: %s\n", r.Key, r.Reason)
	}
	return sb.String()
}
