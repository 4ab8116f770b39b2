package scraper

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"gamecal/internal/event"
)

// eventMarkers are the field names whose presence marks a JSON object as an
// event. Any single one is enough.
var eventMarkers = []string{"eventName", "eventDate", "startTime", "venueName"}

// Field alias lists, consulted in priority order; the first key holding a
// non-empty string wins.
var (
	titleKeys    = []string{"eventName", "name", "title"}
	dateKeys     = []string{"eventDate", "date", "startDate"}
	timeKeys     = []string{"startTime", "time"}
	venueKeys    = []string{"venueName", "venue"}
	addressKeys  = []string{"venueAddress", "address"}
	ticketKeys   = []string{"ticketUrl", "url"}
	opponentKeys = []string{"opponent", "awayTeam"}
)

// fromNextData parses the framework-injected __NEXT_DATA__ JSON payload and
// walks its object graph for event-shaped objects.
func (s *Scraper) fromNextData(doc *goquery.Document) []event.Raw {
	payload := doc.Find(`script#__NEXT_DATA__`).First().Text()
	if strings.TrimSpace(payload) == "" {
		return nil
	}

	var root interface{}
	if err := json.Unmarshal([]byte(payload), &root); err != nil {
		return nil
	}

	return collectEvents(root)
}

// collectEvents walks the decoded JSON graph with an explicit worklist so
// arbitrarily deep payloads cannot exhaust the stack. Map keys are visited
// in sorted order to keep output deterministic for a given payload.
func collectEvents(root interface{}) []event.Raw {
	var events []event.Raw

	stack := []interface{}{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch v := node.(type) {
		case map[string]interface{}:
			if looksLikeEvent(v) {
				events = append(events, eventFromObject(v))
			}
			keys := make([]string, 0, len(v))
			for k := range v {
				keys = append(keys, k)
			}
			sort.Sort(sort.Reverse(sort.StringSlice(keys)))
			for _, k := range keys {
				stack = append(stack, v[k])
			}
		case []interface{}:
			for i := len(v) - 1; i >= 0; i-- {
				stack = append(stack, v[i])
			}
		}
	}

	return events
}

// looksLikeEvent reports whether the object carries any event marker field.
func looksLikeEvent(obj map[string]interface{}) bool {
	for _, key := range eventMarkers {
		if _, ok := obj[key]; ok {
			return true
		}
	}
	return false
}

// eventFromObject maps an event-shaped JSON object into a Raw record using
// the per-field alias lists.
func eventFromObject(obj map[string]interface{}) event.Raw {
	return event.Raw{
		Title:     firstString(obj, titleKeys),
		Date:      firstString(obj, dateKeys),
		Time:      firstString(obj, timeKeys),
		Venue:     firstString(obj, venueKeys),
		Address:   firstString(obj, addressKeys),
		TicketURL: firstString(obj, ticketKeys),
		Opponent:  firstString(obj, opponentKeys),
	}
}

// firstString returns the first non-empty string value among the candidate
// keys, in order.
func firstString(obj map[string]interface{}, keys []string) string {
	for _, key := range keys {
		if v, ok := obj[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
