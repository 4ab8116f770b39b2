package event

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

// mustLoadLouisville loads the default zone or fails the test.
func mustLoadLouisville(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		t.Fatalf("loading timezone: %v", err)
	}
	return loc
}

// normalizerAt builds a Normalizer frozen at the given local date.
func normalizerAt(t *testing.T, year int, month time.Month, day int) *Normalizer {
	t.Helper()
	loc := mustLoadLouisville(t)
	now := time.Date(year, month, day, 12, 0, 0, 0, loc)
	return NewNormalizerAt(clockwork.NewFakeClockAt(now), loc)
}

func TestResolve_SchoolYear(t *testing.T) {
	tests := []struct {
		name     string
		nowYear  int
		nowMonth time.Month
		dateStr  string
		wantYear int
	}{
		{
			name:     "October date in the fall stays in the current year",
			nowYear:  2024, nowMonth: time.November,
			dateStr:  "Mon Oct 14",
			wantYear: 2024,
		},
		{
			name:     "March date seen in the fall rolls to next year",
			nowYear:  2024, nowMonth: time.November,
			dateStr:  "Fri Mar 7",
			wantYear: 2025,
		},
		{
			name:     "March date seen in the spring stays in the current year",
			nowYear:  2025, nowMonth: time.February,
			dateStr:  "Fri Mar 7",
			wantYear: 2025,
		},
		{
			name:     "December date seen in the fall stays in the current year",
			nowYear:  2024, nowMonth: time.September,
			dateStr:  "Mon Dec 8",
			wantYear: 2024,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := normalizerAt(t, tt.nowYear, tt.nowMonth, 15)
			got, ok := n.Resolve(tt.dateStr, "")
			if !ok {
				t.Fatalf("Resolve(%q) failed, expected success", tt.dateStr)
			}
			if got.Year() != tt.wantYear {
				t.Errorf("Resolve(%q).Year() = %d, want %d", tt.dateStr, got.Year(), tt.wantYear)
			}
		})
	}
}

func TestResolve_YearClamp(t *testing.T) {
	tests := []struct {
		name     string
		dateStr  string
		wantYear int
	}{
		{
			name:     "one year ahead is accepted as written",
			dateStr:  "Jan 5 2026",
			wantYear: 2026,
		},
		{
			name:     "two years ahead is clamped to next year for spring dates",
			dateStr:  "Jan 5 2027",
			wantYear: 2026,
		},
		{
			name:     "two years ahead is clamped to current year for fall dates",
			dateStr:  "Sep 5 2027",
			wantYear: 2025,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := normalizerAt(t, 2025, time.October, 1)
			got, ok := n.Resolve(tt.dateStr, "")
			if !ok {
				t.Fatalf("Resolve(%q) failed, expected success", tt.dateStr)
			}
			if got.Year() != tt.wantYear {
				t.Errorf("Resolve(%q).Year() = %d, want %d", tt.dateStr, got.Year(), tt.wantYear)
			}
		})
	}
}

func TestResolve_DateAndTime(t *testing.T) {
	n := normalizerAt(t, 2024, time.September, 1)

	got, ok := n.Resolve("Mon Dec 8", "7:00 PM")
	if !ok {
		t.Fatal("Resolve failed, expected success")
	}

	want := time.Date(2024, time.December, 8, 19, 0, 0, 0, n.Location())
	if !got.Equal(want) {
		t.Errorf("Resolve() = %v, want %v", got, want)
	}
	if got.Location() != n.Location() {
		t.Errorf("Resolve() location = %v, want %v", got.Location(), n.Location())
	}
}

func TestResolve_TimeFormats(t *testing.T) {
	tests := []struct {
		timeStr  string
		wantHour int
		wantMin  int
	}{
		{"7:00 PM", 19, 0},
		{"7:00PM", 19, 0},
		{"7 PM", 19, 0},
		{"19:00", 19, 0},
		{"9:45 am", 9, 45},
		{"", 0, 0},
		{"kickoff", 0, 0}, // unrecognized time keeps midnight
	}

	for _, tt := range tests {
		t.Run(tt.timeStr, func(t *testing.T) {
			n := normalizerAt(t, 2024, time.September, 1)
			got, ok := n.Resolve("Dec 8", tt.timeStr)
			if !ok {
				t.Fatalf("Resolve(%q) failed, expected success", tt.timeStr)
			}
			if got.Hour() != tt.wantHour || got.Minute() != tt.wantMin {
				t.Errorf("Resolve(_, %q) = %02d:%02d, want %02d:%02d",
					tt.timeStr, got.Hour(), got.Minute(), tt.wantHour, tt.wantMin)
			}
		})
	}
}

func TestResolve_RelativeDates(t *testing.T) {
	n := normalizerAt(t, 2024, time.September, 15)

	today, ok := n.Resolve("Today's events", "")
	if !ok {
		t.Fatal("Resolve(today) failed")
	}
	if today.Day() != 15 || today.Month() != time.September {
		t.Errorf("Resolve(today) = %v, want Sep 15", today)
	}

	tomorrow, ok := n.Resolve("Tomorrow", "")
	if !ok {
		t.Fatal("Resolve(tomorrow) failed")
	}
	if tomorrow.Day() != 16 || tomorrow.Month() != time.September {
		t.Errorf("Resolve(tomorrow) = %v, want Sep 16", tomorrow)
	}
}

func TestResolve_FallbackFormats(t *testing.T) {
	tests := []struct {
		dateStr string
		want    time.Time
	}{
		{"01/15/2025", time.Date(2025, time.January, 15, 0, 0, 0, 0, time.Local)},
		{"01/15/25", time.Date(2025, time.January, 15, 0, 0, 0, 0, time.Local)},
		{"2025-01-15", time.Date(2025, time.January, 15, 0, 0, 0, 0, time.Local)},
	}

	for _, tt := range tests {
		t.Run(tt.dateStr, func(t *testing.T) {
			n := normalizerAt(t, 2024, time.September, 1)
			got, ok := n.Resolve(tt.dateStr, "")
			if !ok {
				t.Fatalf("Resolve(%q) failed, expected success", tt.dateStr)
			}
			if got.Year() != tt.want.Year() || got.Month() != tt.want.Month() || got.Day() != tt.want.Day() {
				t.Errorf("Resolve(%q) = %v, want %v", tt.dateStr, got, tt.want)
			}
		})
	}
}

func TestResolve_Failures(t *testing.T) {
	tests := []string{
		"",
		"not a date",
		"Buy tickets",
		"Feb 31", // impossible day of month
	}

	for _, dateStr := range tests {
		t.Run(dateStr, func(t *testing.T) {
			n := normalizerAt(t, 2024, time.September, 1)
			if got, ok := n.Resolve(dateStr, "7:00 PM"); ok {
				t.Errorf("Resolve(%q) = %v, expected failure", dateStr, got)
			}
		})
	}
}

// Normalizing the canonical rendering of an already-resolved instant must
// yield the same instant back.
func TestResolve_Idempotent(t *testing.T) {
	n := normalizerAt(t, 2024, time.September, 1)

	first, ok := n.Resolve("Mon Dec 8", "7:00 PM")
	if !ok {
		t.Fatal("first Resolve failed")
	}

	second, ok := n.Resolve(first.Format("Jan 2 2006"), first.Format("3:04 PM"))
	if !ok {
		t.Fatal("second Resolve failed")
	}

	if !first.Equal(second) {
		t.Errorf("round trip changed instant: %v -> %v", first, second)
	}
}
