package publication

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// PositionStatus tells how an author position was determined.
type PositionStatus string

const (
	// PositionFound means the researcher was confidently located.
	PositionFound PositionStatus = "found"
	// PositionNotConfident means the author list exists but the researcher
	// could not be confidently located in it.
	PositionNotConfident PositionStatus = "not_confident"
	// PositionNoAuthors means the record has no authors.
	PositionNoAuthors PositionStatus = "no_authors"
)

// AuthorPosition is the researcher's place in an author list.
//
// Index is 1-based and zero when the researcher was not confidently found.
// The text form is "i/n" when found, "n" when not confident and "" when the
// list is empty.
type AuthorPosition struct {
	Index int
	Total int
}

// Found returns a confident position.
func Found(index, total int) AuthorPosition {
	return AuthorPosition{Index: index, Total: total}
}

// NotConfident returns a position that only carries the author count.
func NotConfident(total int) AuthorPosition {
	return AuthorPosition{Total: total}
}

// Status classifies the position.
func (p AuthorPosition) Status() PositionStatus {
	switch {
	case p.Total == 0:
		return PositionNoAuthors
	case p.Index > 0:
		return PositionFound
	default:
		return PositionNotConfident
	}
}

func (p AuthorPosition) String() string {
	switch p.Status() {
	case PositionFound:
		return fmt.Sprintf("%d/%d", p.Index, p.Total)
	case PositionNotConfident:
		return strconv.Itoa(p.Total)
	}
	return ""
}

// ParseAuthorPosition parses the text form produced by String.
func ParseAuthorPosition(s string) (AuthorPosition, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return AuthorPosition{}, nil
	}
	if i, n, ok := strings.Cut(s, "/"); ok {
		index, err := strconv.Atoi(i)
		if err != nil {
			return AuthorPosition{}, fmt.Errorf("invalid author index %q", i)
		}
		total, err := strconv.Atoi(n)
		if err != nil {
			return AuthorPosition{}, fmt.Errorf("invalid author count %q", n)
		}
		if index < 1 || index > total {
			return AuthorPosition{}, fmt.Errorf("author index %d out of range 1-%d", index, total)
		}
		return Found(index, total), nil
	}
	total, err := strconv.Atoi(s)
	if err != nil {
		return AuthorPosition{}, fmt.Errorf("invalid author count %q", s)
	}
	return NotConfident(total), nil
}

// MarshalJSON encodes the position in its text form.
func (p AuthorPosition) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes the text form.
func (p *AuthorPosition) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseAuthorPosition(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
