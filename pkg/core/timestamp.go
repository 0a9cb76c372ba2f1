package core

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Timestamp is a point in time in Unix epoch milliseconds, the canonical
// representation for note timestamps in memory and on disk.
type Timestamp int64

// stringLayouts are the textual encodings accepted on read. Older stores
// persisted ISO-8601 strings; everything is written back as numbers.
// Layouts without a zone are read in local time.
var stringLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NewTimestamp truncates t to millisecond precision.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t.UnixMilli())
}

// Time returns the timestamp in the local time zone.
func (ts Timestamp) Time() time.Time {
	return time.UnixMilli(int64(ts))
}

// In returns the timestamp in loc.
func (ts Timestamp) In(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return ts.Time().In(loc)
}

func (ts Timestamp) String() string {
	return ts.Time().UTC().Format(time.RFC3339Nano)
}

// MarshalJSON always encodes epoch milliseconds.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, int64(ts), 10), nil
}

// UnmarshalJSON accepts epoch milliseconds (integer or float), numeric
// strings, and ISO-8601 strings.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*ts = 0
		return nil
	}

	if data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("invalid timestamp %s: %w", data, err)
		}
		parsed, err := ParseTimestamp(s)
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	}

	parsed, err := parseNumber(string(data))
	if err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", data, err)
	}
	*ts = parsed
	return nil
}

// ParseTimestamp decodes the textual forms accepted by UnmarshalJSON.
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if n, err := parseNumber(s); err == nil {
		return n, nil
	}
	for _, layout := range stringLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return NewTimestamp(t), nil
		}
	}
	return 0, fmt.Errorf("invalid timestamp %q", s)
}

func parseNumber(s string) (Timestamp, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Timestamp(n), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number")
	}
	return Timestamp(math.Round(f)), nil
}
