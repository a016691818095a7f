package builder

import (
	"strconv"
	"strings"
)

var monthNumbers = map[string]int{
	"jan": 1, "january": 1,
	"feb": 2, "february": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8,
	"sep": 9, "sept": 9, "september": 9,
	"oct": 10, "october": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

// MonthNumber maps a month name, three-letter abbreviation or number
// ("9", "09") to 1-12. Returns 0 when the month is not recognized.
func MonthNumber(month string) int {
	m := strings.ToLower(strings.TrimSpace(month))
	m = strings.TrimSuffix(m, ".")
	if n, ok := monthNumbers[m]; ok {
		return n
	}
	if n, err := strconv.Atoi(m); err == nil && n >= 1 && n <= 12 {
		return n
	}
	return 0
}
