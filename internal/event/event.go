package event

import "time"

// Raw represents an event as extracted from a school page, before any
// date/time resolution. Every field is optional; extraction strategies
// only retain records with at least one of Date or Title populated.
type Raw struct {
	Title     string `json:"title,omitempty"`
	FullName  string `json:"full_name,omitempty"`
	Date      string `json:"date,omitempty"`
	Time      string `json:"time,omitempty"`
	Venue     string `json:"venue,omitempty"`
	Address   string `json:"address,omitempty"`
	Opponent  string `json:"opponent,omitempty"`
	TicketURL string `json:"ticket_url,omitempty"`
	HomeAway  string `json:"home_away,omitempty"`
	Sport     string `json:"sport,omitempty"`
	Levels    string `json:"levels,omitempty"`
}

// HasIdentity reports whether the record carries enough information to be
// worth keeping: at least one of date or title must be non-empty.
func (r Raw) HasIdentity() bool {
	return r.Date != "" || r.Title != ""
}

// Normalized is a Raw event whose date and time strings have been resolved
// into a single timezone-aware start instant.
type Normalized struct {
	Raw
	Start time.Time `json:"start"`
}
