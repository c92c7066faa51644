package parse

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Date parses a YYYY-MM-DD form value into a UTC timestamp.
func Date(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", raw)
	}
	return t, nil
}

// OptionalDate parses a YYYY-MM-DD form value, returning nil for an empty
// string.
func OptionalDate(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	t, err := Date(raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
