package utils

import "time"

// timestampLayout is RFC3339 with fixed-width nanoseconds. The fixed width
// keeps lexical order identical to temporal order, which the recency queries
// rely on, and nanosecond precision keeps Sentence timestamps unique under
// their uniqueness constraint.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// NowTimestamp returns the current time as a sortable ISO-8601 UTC string.
func NowTimestamp() string {
	return time.Now().UTC().Format(timestampLayout)
}

// ParseTimestamp parses a stored timestamp string.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
