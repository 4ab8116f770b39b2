package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"gamecal/internal/event"
)

var (
	textDatePattern = regexp.MustCompile(`\d{1,2}/\d{1,2}|[A-Za-z]+\s+\d{1,2}`)
	textTimePattern = regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*(?:AM|PM)?`)
	clockPattern    = regexp.MustCompile(`\d{1,2}:\d{2}`)
)

// fromText is the last-resort strategy: walk every ticket link on the page
// and mine its enclosing block for date and time lines.
func (s *Scraper) fromText(doc *goquery.Document) []event.Raw {
	var events []event.Raw

	doc.Find(`a[href*="/event/"]`).Each(func(_ int, link *goquery.Selection) {
		parent := link.Closest("div, li, article")
		if parent.Length() == 0 {
			return
		}

		href, _ := link.Attr("href")
		ev := event.Raw{
			TicketURL: s.absoluteURL(href),
			Title:     strings.TrimSpace(link.Text()),
		}
		if ev.Title == "" {
			ev.Title = FallbackTitle
		}

		for _, line := range blockLines(parent) {
			if textDatePattern.MatchString(line) {
				ev.Date = line
			}
			if clockPattern.MatchString(line) {
				ev.Time = textTimePattern.FindString(line)
			}
		}

		events = append(events, ev)
	})

	return events
}

// blockLines renders the element's text one node per line, trimmed, with
// blanks dropped.
func blockLines(sel *goquery.Selection) []string {
	var lines []string
	for _, line := range strings.Split(nodeText(sel), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// nodeText joins the selection's text nodes with newlines so sibling fields
// rendered in separate elements stay on separate lines.
func nodeText(sel *goquery.Selection) string {
	var b strings.Builder
	sel.Contents().Each(func(_ int, child *goquery.Selection) {
		if goquery.NodeName(child) == "#text" {
			if t := strings.TrimSpace(child.Text()); t != "" {
				b.WriteString(t)
				b.WriteByte('\n')
			}
			return
		}
		if t := nodeText(child); t != "" {
			b.WriteString(t)
			b.WriteByte('\n')
		}
	})
	return strings.TrimRight(b.String(), "\n")
}
