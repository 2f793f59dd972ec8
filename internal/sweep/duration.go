package sweep

// ABOUTME: Parses human age strings such as "21d", "3hrs" or "5 months"
// ABOUTME: via a fixed unit table.

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	day   = 24 * time.Hour
	month = 30 * day
	year  = 365 * day
)

// ageUnits maps every accepted unit spelling to its length.
var ageUnits = map[string]time.Duration{
	"s": time.Second, "sec": time.Second, "secs": time.Second, "second": time.Second, "seconds": time.Second,
	"m": time.Minute, "min": time.Minute, "mins": time.Minute, "minute": time.Minute, "minutes": time.Minute,
	"h": time.Hour, "hr": time.Hour, "hrs": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"d": day, "day": day, "days": day,
	"w": 7 * day, "wk": 7 * day, "wks": 7 * day, "week": 7 * day, "weeks": 7 * day,
	"mo": month, "mon": month, "month": month, "months": month,
	"y": year, "yr": year, "yrs": year, "year": year, "years": year,
}

// ParseAge parses a non-negative integer followed by a unit, e.g. "21d" or
// "3 hrs". Months are 30 days and years 365.
func ParseAge(s string) (time.Duration, error) {
	trimmed := strings.TrimSpace(s)
	split := strings.IndexFunc(trimmed, func(r rune) bool { return !unicode.IsDigit(r) })
	if split <= 0 {
		return 0, fmt.Errorf("%w %q: expected a number followed by a unit", ErrInvalidDuration, s)
	}

	n, err := strconv.ParseInt(trimmed[:split], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrInvalidDuration, s, err)
	}

	suffix := strings.ToLower(strings.TrimSpace(trimmed[split:]))
	unit, ok := ageUnits[suffix]
	if !ok {
		return 0, fmt.Errorf("%w %q: unknown unit %q", ErrInvalidDuration, s, suffix)
	}

	if n > math.MaxInt64/int64(unit) {
		return 0, fmt.Errorf("%w %q: too large", ErrInvalidDuration, s)
	}
	return time.Duration(n) * unit, nil
}
