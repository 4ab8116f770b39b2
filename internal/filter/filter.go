// Package filter narrows scraped events before calendar generation.
//
// Filters match on the fields the scraper fills in: sport, activity level,
// opponent, and the home/away tag. Text criteria use case-insensitive
// substring matching so "--sport basket" catches both "Basketball" and
// "Girls Basketball".
//
// Example usage:
//
//	f := filter.New()
//	f.Sport = "basketball"
//	f.HomeOnly = true
//
//	filtered := f.Apply(events)
package filter

import (
	"fmt"
	"strings"

	"gamecal/internal/event"
)

// Filter represents event filtering criteria
type Filter struct {
	// Sport filtering (case-insensitive substring match)
	Sport string `json:"sport,omitempty"`

	// Activity level filtering, e.g. "Varsity" or "JV"
	// (case-insensitive substring match)
	Level string `json:"level,omitempty"`

	// Opponent filtering (case-insensitive substring match)
	Opponent string `json:"opponent,omitempty"`

	// Keep only home games
	HomeOnly bool `json:"home_only,omitempty"`

	// Keep only away games
	AwayOnly bool `json:"away_only,omitempty"`
}

// New creates a new empty filter with no active criteria.
// The filter will match all events until criteria are added.
func New() *Filter {
	return &Filter{}
}

// IsEmpty checks if the filter has any active criteria.
// Returns true if the filter would match all events.
func (f *Filter) IsEmpty() bool {
	return f.Sport == "" &&
		f.Level == "" &&
		f.Opponent == "" &&
		!f.HomeOnly &&
		!f.AwayOnly
}

// Matches checks if an event matches all active filter criteria.
// An empty filter matches all events.
//
// Level matching also consults the title prefix: cards that never exposed
// an activity-levels element still carry "GBB:"/"BBB:" markers there.
func (f *Filter) Matches(evt event.Raw) bool {
	if f.IsEmpty() {
		return true
	}

	if f.Sport != "" && !containsFold(evt.Sport, f.Sport) {
		return false
	}

	if f.Level != "" {
		if !containsFold(evt.Levels, f.Level) && !containsFold(evt.Title, f.Level) {
			return false
		}
	}

	if f.Opponent != "" && !containsFold(evt.Opponent, f.Opponent) {
		return false
	}

	if f.HomeOnly && !strings.EqualFold(evt.HomeAway, "Home") {
		return false
	}

	if f.AwayOnly && !strings.EqualFold(evt.HomeAway, "Away") {
		return false
	}

	return true
}

// Apply applies the filter to a list of events and returns only matching
// events. If the filter is empty, returns the original list unchanged.
func (f *Filter) Apply(events []event.Raw) []event.Raw {
	if f.IsEmpty() {
		return events
	}

	var filtered []event.Raw
	for _, evt := range events {
		if f.Matches(evt) {
			filtered = append(filtered, evt)
		}
	}

	return filtered
}

// String returns a human-readable description of the active filter criteria.
// Returns "No active filters" if the filter is empty.
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if f.Sport != "" {
		parts = append(parts, fmt.Sprintf("Sport: %s", f.Sport))
	}

	if f.Level != "" {
		parts = append(parts, fmt.Sprintf("Level: %s", f.Level))
	}

	if f.Opponent != "" {
		parts = append(parts, fmt.Sprintf("Opponent: %s", f.Opponent))
	}

	if f.HomeOnly {
		parts = append(parts, "Home games only")
	}

	if f.AwayOnly {
		parts = append(parts, "Away games only")
	}

	return strings.Join(parts, " | ")
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
