package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"gamecal/internal/event"
)

// fromCards extracts events from structured event cards. Each card exposes
// its fields through data-testid attributes:
//
//	event-tag          Home / Away
//	day-of-week        Mon, Tue, ...
//	month-day-of-year  Dec 8, Jan 5
//	year               2026 (only rendered for future years)
//	time               7:00 PM
//	event-name         Oldham County Colonels vs Kentucky Country Bearcats
//	sport              Basketball
//	activity-levels    Girls JV/Varsity
//	more-info          Oldham County High School (Buckner, KY)
func (s *Scraper) fromCards(doc *goquery.Document) []event.Raw {
	var events []event.Raw

	doc.Find(`[data-testid="event-card"]`).Each(func(_ int, card *goquery.Selection) {
		if ev, ok := s.eventFromCard(card); ok {
			events = append(events, ev)
		}
	})

	return events
}

// eventFromCard reads one card. A card is kept only when it yields both a
// date and a title.
func (s *Scraper) eventFromCard(card *goquery.Selection) (event.Raw, bool) {
	var ev event.Raw

	ev.HomeAway = testIDText(card, "event-tag")

	if monthDay := testIDText(card, "month-day-of-year"); monthDay != "" {
		ev.Date = monthDay
		if year := testIDText(card, "year"); year != "" {
			ev.Date = monthDay + " " + year
		}
	}
	ev.Time = testIDText(card, "time")

	if fullName := testIDText(card, "event-name"); fullName != "" {
		ev.FullName = fullName
		ev.Title, ev.Opponent = matchupTitle(fullName, ev.HomeAway)
	}

	ev.Sport = testIDText(card, "sport")
	if levels := testIDText(card, "activity-levels"); levels != "" {
		ev.Levels = levels
		ev.Title = levelPrefix(levels) + ev.Title
	}

	ev.Venue = testIDText(card, "more-info")

	if href, ok := card.Find(`a[href*="/event/"]`).First().Attr("href"); ok {
		ev.TicketURL = s.absoluteURL(href)
	}

	if ev.Date == "" || ev.Title == "" {
		return event.Raw{}, false
	}
	return ev, true
}

// matchupTitle turns a "Team A vs Team B" matchup into a short title from
// the home team's point of view. Names without " vs " pass through as-is
// (tournaments and special events).
func matchupTitle(fullName, homeAway string) (title, opponent string) {
	if !strings.Contains(fullName, " vs ") {
		return fullName, ""
	}

	parts := strings.SplitN(fullName, " vs ", 2)
	if homeAway == "Home" {
		opponent = strings.TrimSpace(parts[1])
		return "vs " + opponent, opponent
	}
	opponent = strings.TrimSpace(parts[0])
	return "@ " + opponent, opponent
}

// levelPrefix marks girls' and boys' basketball titles the way the school's
// schedules abbreviate them.
func levelPrefix(levels string) string {
	switch {
	case strings.Contains(levels, "Girls"):
		return "GBB: "
	case strings.Contains(levels, "Boys"):
		return "BBB: "
	}
	return ""
}

func testIDText(sel *goquery.Selection, id string) string {
	return strings.TrimSpace(sel.Find(`[data-testid="` + id + `"]`).First().Text())
}
