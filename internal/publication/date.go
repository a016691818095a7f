package publication

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar date with day precision. Publications always use day 1.
type Date struct {
	Year  int
	Month int // 1-12
	Day   int // 1-31
}

// Publication years outside MinYear..MaxYear are not accepted.
const (
	MinYear = 1000
	MaxYear = 9999
)

// ValidYear reports whether year is a four-digit year.
func ValidYear(year int) bool {
	return year >= MinYear && year <= MaxYear
}

// NewDate returns the first day of the given month. Months outside 1-12
// fall back to January.
func NewDate(year, month int) Date {
	if month < 1 || month > 12 {
		month = 1
	}
	return Date{Year: year, Month: month, Day: 1}
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(d.Month - o.Month)
	default:
		return sign(d.Day - o.Day)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

// MarshalJSON encodes the date as an ISO string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes an ISO date string.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", s, err)
	}
	*d = Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
	return nil
}
