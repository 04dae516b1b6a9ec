package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const DateLayout = "2006-01-02"

// ParseUUID parses an identifier taken from a path or body field
func ParseUUID(value, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", field)
	}
	return id, nil
}

// ParseDate parses YYYY-MM-DD as the start of that day in UTC
func ParseDate(value string) (time.Time, error) {
	date, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return date, nil
}

// DayBounds returns [start, start+24h) of the UTC day containing t
func DayBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}
