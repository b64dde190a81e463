package utils

import (
	"fmt"
	"time"
)

// naiveLayout matches ISO-8601 timestamps written without a zone,
// with or without fractional seconds.
const naiveLayout = "2006-01-02T15:04:05.999999999"

// ParseTimestamp accepts RFC 3339 and zone-less ISO-8601 timestamps.
// Zone-less values are read in local time.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(naiveLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
	}
	return t, nil
}
