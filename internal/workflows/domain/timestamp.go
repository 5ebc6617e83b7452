package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// timestampLayouts are tried in order. The server emits naive ISO times
// (Python's isoformat without an offset), which are read as local time.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// Timestamp is a creation time that tolerates the formats the API produces.
// Raw keeps the original text so records round-trip unchanged; an empty or
// unparseable value has a zero Time and sorts after every dated record.
type Timestamp struct {
	time.Time
	Raw string
}

// ParseTimestamp parses s with the accepted layouts.
func ParseTimestamp(s string) Timestamp {
	s = strings.TrimSpace(s)
	ts := Timestamp{Raw: s}
	for _, layout := range timestampLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339Nano {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, time.Local)
		}
		if err == nil {
			ts.Time = t
			return ts
		}
	}
	return ts
}

// UnmarshalJSON implements json.Unmarshaler. Invalid values decode to a zero
// Timestamp rather than failing the whole record.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*t = Timestamp{}
		return nil
	}
	*t = ParseTimestamp(s)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.Raw != "" {
		return json.Marshal(t.Raw)
	}
	if t.IsZero() {
		return json.Marshal("")
	}
	return json.Marshal(t.Format(time.RFC3339Nano))
}

// Display formats the timestamp for lists, or "N/A" when unknown.
func (t Timestamp) Display() string {
	if t.IsZero() {
		if t.Raw != "" {
			return t.Raw
		}
		return "N/A"
	}
	return t.Local().Format("2006-01-02 15:04")
}
