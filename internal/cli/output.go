package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gamecal/internal/event"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	GeneratedAt time.Time          `json:"generated_at"`
	SourceURL   string             `json:"source_url,omitempty"`
	Strategy    string             `json:"strategy,omitempty"`
	Events      []event.Normalized `json:"events"`
	EventCount  int                `json:"event_count"`
	OutputPath  string             `json:"output_path,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult) error {
	fmt.Fprintf(w, "\nFound %d events:\n", result.EventCount)
	for _, evt := range result.Events {
		title := evt.Title
		if title == "" {
			title = "Unknown"
		}
		date := evt.Date
		if date == "" {
			date = "?"
		}
		fmt.Fprintf(w, "  - %s | %s %s\n", title, date, evt.Time)
	}

	if result.OutputPath != "" {
		fmt.Fprintf(w, "\nCalendar saved to: %s\n", result.OutputPath)
		fmt.Fprintln(w, "\nTo subscribe in Apple Calendar:")
		fmt.Fprintln(w, "  1. Host this file at a URL (GitHub Gist, Dropbox, etc.)")
		fmt.Fprintln(w, "  2. In Calendar.app: File -> New Calendar Subscription")
		fmt.Fprintln(w, "  3. Paste the URL")
	}

	return nil
}
