package models

import (
	"strings"
	"time"
)

// Timestamp is an ISO-8601 instant exactly as it travels on the wire.
// An empty Timestamp means "not set". Values that do not parse are kept verbatim
// and are never considered to be in the past.
type Timestamp string

// IsoLayout matches what the mobile client produces: naive UTC with microseconds.
const IsoLayout = "2006-01-02T15:04:05.000000"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.UTC().Format(IsoLayout))
}

// TimestampPtr is a convenience for optional JSON fields.
func TimestampPtr(t time.Time) *Timestamp {
	ts := NewTimestamp(t)
	return &ts
}

func (ts Timestamp) IsZero() bool {
	return strings.TrimSpace(string(ts)) == ""
}

// Time parses the timestamp. Naive values are read as UTC.
func (ts Timestamp) Time() (time.Time, bool) {
	raw := strings.TrimSpace(string(ts))
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ExpiredAt reports whether the timestamp parses and lies strictly before now.
func (ts Timestamp) ExpiredAt(now time.Time) bool {
	t, ok := ts.Time()
	if !ok {
		return false
	}
	return t.Before(now)
}
