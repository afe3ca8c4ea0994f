package pkg

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDateOr parses a YYYY-MM-DD value as a UTC date, falling back to the day of
// fallback when value is empty.
func ParseDateOr(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		y, m, d := fallback.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date [%s], expected YYYY-MM-DD: %w", value, err)
	}
	return parsed, nil
}
