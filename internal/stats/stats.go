// Package stats holds the pure reducers behind the statistics endpoints. They
// take already loaded queue and visit rows and never fail: rows with malformed
// dates or timestamps are left out of the rollups they cannot be placed in.
package stats

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Unknown labels rows whose grouping column is empty.
const Unknown = "Unknown"

// topN caps the "top ..." rankings.
const topN = 10

// Round rounds val to precision decimal places.
func Round(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

func round2(val float64) float64 { return Round(val, 2) }

// MonthKey returns the YYYY-MM prefix of an ISO date string.
func MonthKey(date string) (string, bool) {
	return datePrefix(date, 7)
}

// DayKey returns the YYYY-MM-DD prefix of an ISO date or timestamp string.
func DayKey(date string) (string, bool) {
	return datePrefix(date, 10)
}

func datePrefix(date string, n int) (string, bool) {
	date = strings.TrimSpace(date)
	if len(date) < n {
		return "", false
	}
	key := date[:n]
	// the key must at least look like YYYY-MM
	for i, c := range key[:7] {
		if i == 4 {
			if c != '-' {
				return "", false
			}
			continue
		}
		if c < '0' || c > '9' {
			return "", false
		}
	}
	return key, true
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses the ISO-8601 forms found in stored timestamps: with or
// without fractional seconds, and with a trailing Z, an offset, or no zone.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Elapsed is end minus start when both parse and end is not before start.
func Elapsed(start, end *string) (time.Duration, bool) {
	if start == nil || end == nil {
		return 0, false
	}
	from, ok := ParseTimestamp(*start)
	if !ok {
		return 0, false
	}
	to, ok := ParseTimestamp(*end)
	if !ok || to.Before(from) {
		return 0, false
	}
	return to.Sub(from), true
}

// NoShowRate is cancelled over total as a percentage rounded to 2 decimals,
// or 0 when there is nothing to divide by.
func NoShowRate(cancelled, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round2(float64(cancelled) / float64(total) * 100)
}

// MinuteSummary describes a set of durations in minutes. All fields are nil
// when the set is empty.
type MinuteSummary struct {
	Avg *float64 `json:"avg"`
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

// SummarizeMinutes reduces durations to their average, minimum and maximum in
// minutes, each rounded to 2 decimals.
func SummarizeMinutes(durations []time.Duration) MinuteSummary {
	if len(durations) == 0 {
		return MinuteSummary{}
	}
	var sum float64
	lo, hi := durations[0], durations[0]
	for _, d := range durations {
		sum += d.Seconds()
		if d < lo {
			lo = d
		}
		if d > hi {
			hi = d
		}
	}
	avg := round2(sum / float64(len(durations)) / 60)
	minimum := round2(lo.Minutes())
	maximum := round2(hi.Minutes())
	return MinuteSummary{Avg: &avg, Min: &minimum, Max: &maximum}
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return Unknown
	}
	return s
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
