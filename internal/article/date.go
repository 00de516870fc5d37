package article

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// PublishDate decodes the loosely typed publish_date field. The news service
// has shipped it as a Unix timestamp, as a formatted string and as a
// serialized Firestore timestamp object. Anything unrecognised decodes to the
// zero time rather than failing the whole feed.
type PublishDate struct {
	time.Time
}

// serializedTimestamp covers both Firestore wire shapes.
type serializedTimestamp struct {
	Seconds    *int64 `json:"seconds"`
	AltSeconds *int64 `json:"_seconds"`
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (d *PublishDate) UnmarshalJSON(data []byte) error {
	d.Time = time.Time{}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		d.Time = parseDate(s)
	case '{':
		var ts serializedTimestamp
		if err := json.Unmarshal(data, &ts); err != nil {
			return nil
		}
		switch {
		case ts.Seconds != nil:
			d.Time = time.UnixMilli(*ts.Seconds * 1000)
		case ts.AltSeconds != nil:
			d.Time = time.UnixMilli(*ts.AltSeconds * 1000)
		}
	default:
		n, err := strconv.ParseFloat(string(data), 64)
		if err != nil {
			return nil
		}
		d.Time = parseUnixTime(int64(n))
	}

	return nil
}

func (d PublishDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.UTC().Format(time.RFC3339))
}

// parseDate example "2025-12-01T09:15:00Z" or "Mon, 01 Dec 2025 09:15:00 GMT"
func parseDate(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return parseUnixTime(n)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// parseUnixTime example `1764580500000`. A present 0 is the epoch, not a
// missing date.
func parseUnixTime(n int64) time.Time {
	// detect milliseconds vs seconds
	if n > 9999999999 {
		return time.UnixMilli(n)
	}
	return time.Unix(n, 0)
}
