package event

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultTimezone is the zone applied to every resolved instant. The source
// pages never state a timezone, so the configured local zone wins.
const DefaultTimezone = "America/Kentucky/Louisville"

// datePattern matches an optional three-letter weekday, a month name or
// abbreviation, a day number, and an optional four-digit year, anywhere in
// the string. Examples: "Mon Dec 8", "Tue Jan 5 2026", "December 8".
var datePattern = regexp.MustCompile(`(?i)(?:[A-Za-z]{3}\s+)?([A-Za-z]{3,9})\s+(\d{1,2})(?:\s+(\d{4}))?`)

// months resolves month names and abbreviations, case-insensitively.
var months = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "june": time.June, "july": time.July,
	"august": time.August, "september": time.September, "october": time.October,
	"november": time.November, "december": time.December,
}

// dateFormats are the absolute formats tried, in order, when the regex
// extraction finds nothing usable.
var dateFormats = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"01/02/2006",
	"01/02/06",
	"2006-01-02",
}

// timeFormats are tried in order; the first match wins.
var timeFormats = []string{
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"15:04",
}

// Normalizer resolves free-text date and time strings into instants in a
// fixed local zone. The clock is injectable so the school-year and
// year-clamp rules can be tested against a frozen "now".
type Normalizer struct {
	clock clockwork.Clock
	loc   *time.Location
}

// NewNormalizer creates a Normalizer using the real clock and the default
// timezone.
func NewNormalizer() (*Normalizer, error) {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %s: %w", DefaultTimezone, err)
	}
	return &Normalizer{clock: clockwork.NewRealClock(), loc: loc}, nil
}

// NewNormalizerAt creates a Normalizer with an explicit clock and location.
func NewNormalizerAt(clock clockwork.Clock, loc *time.Location) *Normalizer {
	return &Normalizer{clock: clock, loc: loc}
}

// Location returns the zone all resolved instants carry.
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Resolve converts a date string plus an optional time string into a single
// instant in the normalizer's zone. The boolean is false when the date
// cannot be understood; callers drop such records.
func (n *Normalizer) Resolve(dateStr, timeStr string) (time.Time, bool) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return time.Time{}, false
	}

	now := n.clock.Now().In(n.loc)

	var year int
	var month time.Month
	var day int

	lower := strings.ToLower(dateStr)
	switch {
	case strings.Contains(lower, "today"):
		year, month, day = now.Year(), now.Month(), now.Day()
	case strings.Contains(lower, "tomorrow"):
		t := now.AddDate(0, 0, 1)
		year, month, day = t.Year(), t.Month(), t.Day()
	default:
		var ok bool
		year, month, day, ok = n.resolveAbsolute(dateStr, now)
		if !ok {
			return time.Time{}, false
		}
	}

	hour, minute := parseClock(timeStr)

	return time.Date(year, month, day, hour, minute, 0, 0, n.loc), true
}

// resolveAbsolute handles non-relative date strings: regex extraction with
// school-year and year-clamp semantics first, then the fixed format list.
func (n *Normalizer) resolveAbsolute(dateStr string, now time.Time) (int, time.Month, int, bool) {
	if m := datePattern.FindStringSubmatch(dateStr); m != nil {
		if month, ok := months[strings.ToLower(m[1])]; ok {
			day, _ := strconv.Atoi(m[2])
			year := 0
			if m[3] != "" {
				year, _ = strconv.Atoi(m[3])
				year = clampYear(year, month, now)
			} else {
				year = schoolYear(month, now)
			}
			if validDate(year, month, day) {
				return year, month, day, true
			}
		}
	}

	for _, format := range dateFormats {
		if t, err := time.ParseInLocation(format, dateStr, n.loc); err == nil {
			return t.Year(), t.Month(), t.Day(), true
		}
	}

	return 0, 0, 0, false
}

// clampYear corrects a known source-site quirk where future years are shown
// one year too far ahead. An explicit year more than one year out is pulled
// back to next year for spring dates and to the current year otherwise.
func clampYear(year int, month time.Month, now time.Time) int {
	if year > now.Year()+1 {
		if month < time.July {
			return now.Year() + 1
		}
		return now.Year()
	}
	return year
}

// schoolYear assigns a year to a month-only date using August-July school
// year semantics: fall dates belong to the current calendar year, spring
// dates to the next one, unless the spring of that school year has already
// arrived.
func schoolYear(month time.Month, now time.Time) int {
	if month >= time.August {
		return now.Year()
	}
	if now.Month() <= time.July {
		return now.Year()
	}
	return now.Year() + 1
}

// validDate rejects day numbers the month cannot hold (time.Date would
// silently roll them into the next month).
func validDate(year int, month time.Month, day int) bool {
	if day < 1 {
		return false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return t.Month() == month && t.Day() == day
}

// parseClock extracts hour and minute from a free-text time string. An
// unrecognized or empty string keeps the date at midnight.
func parseClock(timeStr string) (int, int) {
	timeStr = strings.ToUpper(strings.TrimSpace(timeStr))
	if timeStr == "" {
		return 0, 0
	}
	for _, format := range timeFormats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t.Hour(), t.Minute()
		}
	}
	return 0, 0
}
