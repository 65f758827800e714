package view

import (
	"fmt"
	"strings"
	"time"
)

// Timestamp layouts accepted from the backend. Some endpoints emit a space
// between date and time instead of the RFC3339 'T'; ParseTimestamp
// normalizes that before trying each layout.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a loosely ISO-like timestamp string. ok is false
// for empty or malformed input.
func ParseTimestamp(ts string) (time.Time, bool) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return time.Time{}, false
	}
	if len(ts) > 10 && ts[10] == ' ' {
		ts = ts[:10] + "T" + ts[11:]
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// TimeAgo renders ts as a coarse relative-age label against now: the
// largest whole unit among years, months (30d), days, hours and minutes,
// or "Just now" under a minute. Empty or unparseable input yields "".
// now is a parameter rather than the system clock so callers and tests
// control the reference point.
func TimeAgo(now time.Time, ts string) string {
	t, ok := ParseTimestamp(ts)
	if !ok {
		return ""
	}
	secs := int64(now.Sub(t).Seconds())
	days := secs / 86400

	switch {
	case days/365 >= 1:
		return plural(days/365, "year")
	case days/30 >= 1:
		return plural(days/30, "month")
	case days >= 1:
		return plural(days, "day")
	case secs/3600 >= 1:
		return plural(secs/3600, "hour")
	case secs/60 >= 1:
		return plural(secs/60, "minute")
	default:
		return "Just now"
	}
}

func plural(n int64, unit string) string {
	if n > 1 {
		unit += "s"
	}
	return fmt.Sprintf("%d %s ago", n, unit)
}
