package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"gamecal/internal/event"
	"gamecal/internal/logger"
)

const (
	// BaseURL resolves relative ticket links found on the page.
	BaseURL = "https://gofan.co"

	// FallbackTitle is used when the text strategy finds an event link with
	// no usable label.
	FallbackTitle = "Game"
)

// Strategy identifies which extraction strategy produced a result.
type Strategy string

const (
	StrategyNextData Strategy = "next-data"
	StrategyCards    Strategy = "cards"
	StrategyText     Strategy = "text"
	StrategyNone     Strategy = "none"
)

// Result carries the extracted events together with the strategy that
// produced them, so callers can report how the page was understood.
type Result struct {
	Events   []event.Raw
	Strategy Strategy
}

// Scraper turns rendered HTML into raw event records.
type Scraper struct {
	baseURL string
}

// New creates a Scraper resolving relative links against the default host.
func New() *Scraper {
	return &Scraper{baseURL: BaseURL}
}

// Extract runs the strategy cascade over the rendered HTML. Strategies are
// consulted in priority order and the first non-empty result is returned;
// later strategies are never invoked once one succeeds. A page yielding no
// events from any strategy returns an empty Result, not an error.
func (s *Scraper) Extract(html, sourceURL string) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	strategies := []struct {
		name Strategy
		run  func(*goquery.Document) []event.Raw
	}{
		{StrategyNextData, s.fromNextData},
		{StrategyCards, s.fromCards},
		{StrategyText, s.fromText},
	}

	for _, strat := range strategies {
		events := retained(strat.run(doc))
		if len(events) > 0 {
			logger.Debug("extraction strategy succeeded", logger.Fields{
				"strategy": string(strat.name),
				"events":   len(events),
				"source":   sourceURL,
			})
			return &Result{Events: events, Strategy: strat.name}, nil
		}
	}

	return &Result{Strategy: StrategyNone}, nil
}

// retained drops records carrying neither a date nor a title. This is
// policy, not an error: such records have nothing a calendar entry could be
// built from.
func retained(events []event.Raw) []event.Raw {
	kept := events[:0]
	for _, evt := range events {
		if evt.HasIdentity() {
			kept = append(kept, evt)
		}
	}
	return kept
}

// absoluteURL resolves page-relative hrefs against the scraper's base host.
func (s *Scraper) absoluteURL(href string) string {
	if strings.HasPrefix(href, "/") {
		return s.baseURL + href
	}
	return href
}
