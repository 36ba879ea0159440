package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayout is the wire format for calendar dates (ISO-8601, no time component).
const DateLayout = "2006-01-02"

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseDate parses an ISO calendar date (YYYY-MM-DD) in UTC.
func ParseDate(dateStr string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, dateStr, time.UTC)
}

// TruncateToDate drops the time-of-day component, keeping the UTC calendar date.
func TruncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a time as an ISO calendar date string.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
