package alerts

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// isoPeriod accepts week, day, hour, minute, and (fractional) second
// designators. Years and months have no fixed length and are rejected.
var isoPeriod = regexp.MustCompile(`^P(?:(\d+)W)?(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// ParsePeriod converts an ISO-8601 duration such as "PT5M" or "P1D".
func ParsePeriod(s string) (time.Duration, error) {
	m := isoPeriod.FindStringSubmatch(s)
	if m == nil || s == "P" || s == "PT" || s[len(s)-1] == 'T' {
		return 0, fmt.Errorf("invalid ISO-8601 period %q", s)
	}

	units := []time.Duration{7 * 24 * time.Hour, 24 * time.Hour, time.Hour, time.Minute}
	var total time.Duration
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid ISO-8601 period %q: %w", s, err)
		}
		if n > math.MaxInt64/int64(unit) {
			return 0, fmt.Errorf("ISO-8601 period %q is out of range", s)
		}
		if total, err = addDuration(s, total, time.Duration(n)*unit); err != nil {
			return 0, err
		}
	}

	if m[5] != "" {
		secs, err := strconv.ParseFloat(m[5], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid ISO-8601 period %q: %w", s, err)
		}
		if secs >= float64(math.MaxInt64)/float64(time.Second) {
			return 0, fmt.Errorf("ISO-8601 period %q is out of range", s)
		}
		if total, err = addDuration(s, total, time.Duration(secs*float64(time.Second))); err != nil {
			return 0, err
		}
	}

	return total, nil
}

// addDuration adds two non-negative durations, failing instead of wrapping.
func addDuration(period string, total, d time.Duration) (time.Duration, error) {
	if d > math.MaxInt64-total {
		return 0, fmt.Errorf("ISO-8601 period %q is out of range", period)
	}
	return total + d, nil
}
