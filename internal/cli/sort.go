package cli

import (
	"sort"

	"gamecal/internal/event"
)

// SortEvents orders events chronologically. Events without a resolved start
// time sort last, keeping the dated schedule readable at the top of the
// listing.
func SortEvents(events []event.Normalized) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.Start.IsZero() {
			return false
		}
		if b.Start.IsZero() {
			return true
		}
		return a.Start.Before(b.Start)
	})
}
