package calendar

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"time"

	"github.com/emersion/go-ical"

	"gamecal/internal/event"
)

const (
	// ProductID identifies the generator in the calendar header.
	ProductID = "-//gamecal//gamecal//EN"

	// DefaultName is used when the caller does not name the calendar.
	DefaultName = "GoFan Events"

	// gameDuration is assumed for every event; the source pages never
	// publish an end time.
	gameDuration = 2 * time.Hour
)

// uidUnsafe strips everything that has no business in a calendar UID.
var uidUnsafe = regexp.MustCompile(`[^a-zA-Z0-9@.-]`)

// Options configures the generated calendar.
type Options struct {
	// Name becomes the calendar's display name (X-WR-CALNAME).
	Name string

	// Timezone is advertised as the calendar's default zone
	// (X-WR-TIMEZONE). Event times already carry their own offsets.
	Timezone string
}

// Build assembles an iCalendar from normalized events. Events without a
// resolved start instant are skipped; callers drop them before reaching
// here, this only enforces it.
func Build(events []event.Normalized, opts Options) *ical.Calendar {
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.Timezone == "" {
		opts.Timezone = event.DefaultTimezone
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, ProductID)
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	// X-properties have no registered default value type; SetText would
	// tag them VALUE=TEXT.
	name := ical.NewProp("X-WR-CALNAME")
	name.Value = opts.Name
	cal.Props.Add(name)
	tz := ical.NewProp("X-WR-TIMEZONE")
	tz.Value = opts.Timezone
	cal.Props.Add(tz)

	for _, evt := range events {
		if evt.Start.IsZero() {
			continue
		}
		cal.Children = append(cal.Children, buildEvent(evt))
	}

	return cal
}

// Encode writes the calendar in wire format. The encoder rejects a
// calendar with no components, so callers must hold at least one event.
func Encode(w io.Writer, cal *ical.Calendar) error {
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encoding calendar: %w", err)
	}
	return nil
}

// WriteFile renders the calendar to the given path.
func WriteFile(path string, cal *ical.Calendar) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating calendar file: %w", err)
	}
	defer f.Close() // nolint:errcheck

	if err := Encode(f, cal); err != nil {
		return err
	}
	return f.Close()
}

func buildEvent(evt event.Normalized) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)

	title := evt.Title
	if title == "" {
		title = "Game"
	}
	ve.Props.SetText(ical.PropSummary, title)
	ve.Props.SetText(ical.PropUID, UID(evt.Raw))
	ve.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, evt.Start)
	ve.Props.SetDateTime(ical.PropDateTimeEnd, evt.Start.Add(gameDuration))

	if evt.Venue != "" {
		ve.Props.SetText(ical.PropLocation, evt.Venue)
	}
	if evt.TicketURL != "" {
		// URL's default value type is URI; SetText would tag it VALUE=TEXT.
		url := ical.NewProp(ical.PropURL)
		url.Value = evt.TicketURL
		ve.Props.Add(url)
	}
	if desc := description(evt.Raw); desc != "" {
		ve.Props.SetText(ical.PropDescription, desc)
	}

	return ve
}

// UID derives a stable identifier from the raw date and title so that
// re-importing a regenerated feed updates events instead of duplicating
// them.
func UID(evt event.Raw) string {
	date := evt.Date
	if date == "" {
		date = "unknown"
	}
	title := evt.Title
	if title == "" {
		title = "event"
	}
	return uidUnsafe.ReplaceAllString(date+"-"+title+"@gamecal", "")
}

func description(evt event.Raw) string {
	var desc string
	if evt.Opponent != "" {
		desc = "vs " + evt.Opponent
	}
	if evt.TicketURL != "" {
		if desc != "" {
			desc += "\n"
		}
		desc += "Tickets: " + evt.TicketURL
	}
	return desc
}
