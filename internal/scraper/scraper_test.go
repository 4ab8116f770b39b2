package scraper

import (
	"os"
	"testing"

	"gamecal/internal/event"
)

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return string(data)
}

func TestExtract_NextDataWins(t *testing.T) {
	// The fixture carries both a __NEXT_DATA__ payload and a rendered event
	// card; the JSON strategy must win and the card must never be consulted.
	html := loadFixture(t, "nextdata.html")

	s := New()
	result, err := s.Extract(html, "https://gofan.co/app/school/KY6207")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if result.Strategy != StrategyNextData {
		t.Fatalf("strategy = %q, want %q", result.Strategy, StrategyNextData)
	}
	if len(result.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(result.Events))
	}

	first := result.Events[0]
	if first.Title != "Girls Basketball vs North Oldham" {
		t.Errorf("title = %q", first.Title)
	}
	if first.Date != "2025-12-08" {
		t.Errorf("date = %q", first.Date)
	}
	if first.Time != "7:00 PM" {
		t.Errorf("time = %q", first.Time)
	}
	if first.Venue != "Oldham County High School" {
		t.Errorf("venue = %q", first.Venue)
	}
	if first.Address != "Buckner, KY" {
		t.Errorf("address = %q", first.Address)
	}
	if first.TicketURL != "/event/5212753?schoolId=KY6207" {
		t.Errorf("ticket url = %q", first.TicketURL)
	}
	if first.Opponent != "North Oldham Mustangs" {
		t.Errorf("opponent = %q", first.Opponent)
	}

	// Second event exercises the alias chain (name/date/time/venue).
	second := result.Events[1]
	if second.Title != "Boys Basketball vs Ballard" {
		t.Errorf("alias title = %q", second.Title)
	}
	if second.Date != "2026-01-16" {
		t.Errorf("alias date = %q", second.Date)
	}
	if second.Venue != "Ballard High School" {
		t.Errorf("alias venue = %q", second.Venue)
	}
}

func TestExtract_Cards(t *testing.T) {
	html := loadFixture(t, "cards.html")

	s := New()
	result, err := s.Extract(html, "https://gofan.co/app/school/KY6207")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if result.Strategy != StrategyCards {
		t.Fatalf("strategy = %q, want %q", result.Strategy, StrategyCards)
	}
	// The fourth card has no date and no event name and must be dropped.
	if len(result.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(result.Events))
	}

	home := result.Events[0]
	if home.Title != "GBB: vs Kentucky Country Bearcats" {
		t.Errorf("home title = %q", home.Title)
	}
	if home.Opponent != "Kentucky Country Bearcats" {
		t.Errorf("home opponent = %q", home.Opponent)
	}
	if home.Date != "Dec 8" {
		t.Errorf("home date = %q", home.Date)
	}
	if home.Time != "7:00 PM" {
		t.Errorf("home time = %q", home.Time)
	}
	if home.HomeAway != "Home" {
		t.Errorf("home tag = %q", home.HomeAway)
	}
	if home.Venue != "Oldham County High School (Buckner, KY)" {
		t.Errorf("home venue = %q", home.Venue)
	}
	if home.TicketURL != "https://gofan.co/event/5212753?schoolId=KY6207" {
		t.Errorf("home ticket url = %q", home.TicketURL)
	}

	away := result.Events[1]
	if away.Title != "BBB: @ Ballard Bruins" {
		t.Errorf("away title = %q", away.Title)
	}
	if away.Opponent != "Ballard Bruins" {
		t.Errorf("away opponent = %q", away.Opponent)
	}
	// The year element only renders for future years and joins the date.
	if away.Date != "Jan 16 2026" {
		t.Errorf("away date = %q", away.Date)
	}
	if away.TicketURL != "https://gofan.co/event/5298811?schoolId=KY6207" {
		t.Errorf("away ticket url = %q", away.TicketURL)
	}

	special := result.Events[2]
	if special.Title != "Ronald McDonald House Classic" {
		t.Errorf("special title = %q", special.Title)
	}
	if special.Opponent != "" {
		t.Errorf("special opponent = %q, want empty", special.Opponent)
	}
}

func TestExtract_TextFallback(t *testing.T) {
	html := loadFixture(t, "text.html")

	s := New()
	result, err := s.Extract(html, "https://gofan.co/app/school/KY6207")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if result.Strategy != StrategyText {
		t.Fatalf("strategy = %q, want %q", result.Strategy, StrategyText)
	}
	if len(result.Events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(result.Events))
	}

	first := result.Events[0]
	if first.Title != "Girls Basketball vs North Oldham" {
		t.Errorf("title = %q", first.Title)
	}
	if first.Date != "Mon Dec 8" {
		t.Errorf("date = %q", first.Date)
	}
	if first.Time != "7:00 PM" {
		t.Errorf("time = %q", first.Time)
	}
	if first.TicketURL != "https://gofan.co/event/5212753?schoolId=KY6207" {
		t.Errorf("ticket url = %q", first.TicketURL)
	}

	// An unlabeled event link falls back to the generic title.
	second := result.Events[1]
	if second.Title != FallbackTitle {
		t.Errorf("fallback title = %q, want %q", second.Title, FallbackTitle)
	}
	if second.Date != "Fri Jan 16 2026" {
		t.Errorf("date = %q", second.Date)
	}
}

func TestExtract_NoEvents(t *testing.T) {
	html := loadFixture(t, "empty.html")

	s := New()
	result, err := s.Extract(html, "https://gofan.co/app/school/KY6207")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if result.Strategy != StrategyNone {
		t.Errorf("strategy = %q, want %q", result.Strategy, StrategyNone)
	}
	if len(result.Events) != 0 {
		t.Errorf("expected no events, got %d", len(result.Events))
	}
}

func TestExtract_EveryEventHasIdentity(t *testing.T) {
	for _, fixture := range []string{"nextdata.html", "cards.html", "text.html"} {
		html := loadFixture(t, fixture)

		s := New()
		result, err := s.Extract(html, "https://gofan.co/app/school/KY6207")
		if err != nil {
			t.Fatalf("%s: Extract failed: %v", fixture, err)
		}

		for i, evt := range result.Events {
			if !evt.HasIdentity() {
				t.Errorf("%s: event %d has neither date nor title: %+v", fixture, i, evt)
			}
		}
	}
}

func TestMatchupTitle(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		homeAway string
		title    string
		opponent string
	}{
		{
			name:     "home game names the visitor",
			fullName: "Oldham County Colonels vs Kentucky Country Bearcats",
			homeAway: "Home",
			title:    "vs Kentucky Country Bearcats",
			opponent: "Kentucky Country Bearcats",
		},
		{
			name:     "away game names the host",
			fullName: "Southern Trojans vs Oldham County Colonels",
			homeAway: "Away",
			title:    "@ Southern Trojans",
			opponent: "Southern Trojans",
		},
		{
			name:     "special event passes through",
			fullName: "Ronald McDonald House Classic",
			homeAway: "Home",
			title:    "Ronald McDonald House Classic",
			opponent: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			title, opponent := matchupTitle(tt.fullName, tt.homeAway)
			if title != tt.title {
				t.Errorf("title = %q, want %q", title, tt.title)
			}
			if opponent != tt.opponent {
				t.Errorf("opponent = %q, want %q", opponent, tt.opponent)
			}
		})
	}
}

func TestFirstString(t *testing.T) {
	obj := map[string]interface{}{
		"eventName": "",
		"name":      "Boys Basketball vs Ballard",
		"title":     "never reached",
		"count":     float64(3),
	}

	if got := firstString(obj, titleKeys); got != "Boys Basketball vs Ballard" {
		t.Errorf("firstString = %q", got)
	}
	if got := firstString(obj, []string{"count", "missing"}); got != "" {
		t.Errorf("firstString on non-string = %q, want empty", got)
	}
}

func TestRetained(t *testing.T) {
	events := []event.Raw{
		{Title: "vs North Oldham"},
		{},
		{Date: "Dec 8"},
		{Venue: "somewhere", Time: "7:00 PM"},
	}

	kept := retained(events)
	if len(kept) != 2 {
		t.Fatalf("retained %d events, want 2", len(kept))
	}
	if kept[0].Title != "vs North Oldham" || kept[1].Date != "Dec 8" {
		t.Errorf("unexpected retained set: %+v", kept)
	}
}
