package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"gamecal/internal/browser"
	"gamecal/internal/calendar"
	"gamecal/internal/event"
	"gamecal/internal/filter"
	"gamecal/internal/logger"
	"gamecal/internal/scraper"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// DebugHTMLPath is where --debug drops the rendered page.
const DebugHTMLPath = "gofan_debug.html"

var (
	flagOutput       string
	flagCalendarName string
	flagFormat       string
	flagNoHeadless   bool
	flagDebug        bool
	flagTest         bool
	flagVerbose      bool

	flagSport    string
	flagLevel    string
	flagOpponent string
	flagHomeOnly bool
	flagAwayOnly bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gamecal [url]",
		Short: "Scrape GoFan events to an ICS calendar",
		Long: `A CLI tool that scrapes a GoFan school schedule page and writes the
events as an ICS calendar file for importing or subscribing.

Examples:
  gamecal "https://gofan.co/app/school/KY6207?activity=Basketball&gender=Girls"
  gamecal URL -o dragons_basketball.ics --calendar-name "Dragons Girls Basketball"
  gamecal --test  # Generate sample calendar for testing`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGenerate,
	}

	cmd.Flags().StringVarP(&flagOutput, "output", "o", "gofan_events.ics", "Output ICS file path")
	cmd.Flags().StringVar(&flagCalendarName, "calendar-name", calendar.DefaultName, "Calendar display name")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Event listing format: text or json")
	cmd.Flags().BoolVar(&flagNoHeadless, "no-headless", false, "Run browser in visible mode (for debugging)")
	cmd.Flags().BoolVar(&flagDebug, "debug", false, "Save debug HTML file and enable debug logging")
	cmd.Flags().BoolVar(&flagTest, "test", false, "Generate calendar with sample events (no scraping)")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.Flags().StringVar(&flagSport, "sport", "", "Only include events matching this sport")
	cmd.Flags().StringVar(&flagLevel, "level", "", "Only include events matching this activity level (e.g. Varsity)")
	cmd.Flags().StringVar(&flagOpponent, "opponent", "", "Only include events against this opponent")
	cmd.Flags().BoolVar(&flagHomeOnly, "home-only", false, "Only include home games")
	cmd.Flags().BoolVar(&flagAwayOnly, "away-only", false, "Only include away games")

	return cmd
}

// runGenerate is the main command logic
func runGenerate(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	if flagHomeOnly && flagAwayOnly {
		return fmt.Errorf("--home-only and --away-only are mutually exclusive")
	}

	configureLogging()

	var (
		raws      []event.Raw
		strategy  scraper.Strategy
		sourceURL string
	)

	switch {
	case flagTest:
		fmt.Println("Generating test calendar with sample events...")
		raws = event.Samples()
	case len(args) == 1:
		sourceURL = args[0]
		fmt.Printf("Scraping events from: %s\n", sourceURL)

		result, err := scrape(cmd, sourceURL)
		if err != nil {
			return err
		}
		raws = result.Events
		strategy = result.Strategy
	default:
		return cmd.Help()
	}

	raws = buildFilter().Apply(raws)

	normalizer, err := event.NewNormalizer()
	if err != nil {
		return fmt.Errorf("initializing date resolution: %w", err)
	}
	events := normalize(normalizer, raws)
	SortEvents(events)

	result := &OutputResult{
		GeneratedAt: time.Now().UTC(),
		SourceURL:   sourceURL,
		Strategy:    string(strategy),
		Events:      events,
		EventCount:  len(events),
	}

	if len(events) == 0 {
		if format == FormatJSON {
			return WriteOutput(os.Stdout, result, format)
		}
		fmt.Println("No events found. Try running with --debug to inspect the page HTML.")
		return nil
	}

	cal := calendar.Build(events, calendar.Options{Name: flagCalendarName})
	if err := calendar.WriteFile(flagOutput, cal); err != nil {
		return err
	}
	result.OutputPath = flagOutput

	return WriteOutput(os.Stdout, result, format)
}

func scrape(cmd *cobra.Command, url string) (*scraper.Result, error) {
	opts := browser.Options{Headless: !flagNoHeadless}
	if flagDebug {
		opts.DebugFile = DebugHTMLPath
	}

	html, err := browser.NewFetcher(opts).Fetch(cmd.Context(), url)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}

	result, err := scraper.New().Extract(html, url)
	if err != nil {
		return nil, fmt.Errorf("extracting events: %w", err)
	}
	return result, nil
}

func buildFilter() *filter.Filter {
	return &filter.Filter{
		Sport:    flagSport,
		Level:    flagLevel,
		Opponent: flagOpponent,
		HomeOnly: flagHomeOnly,
		AwayOnly: flagAwayOnly,
	}
}

// normalize resolves each event's start time. Events whose date cannot be
// resolved are dropped, not defaulted; a warning names each one.
func normalize(n *event.Normalizer, raws []event.Raw) []event.Normalized {
	events := make([]event.Normalized, 0, len(raws))
	for _, raw := range raws {
		start, ok := n.Resolve(raw.Date, raw.Time)
		if !ok {
			logger.Warn("dropping event with unresolvable date", logger.Fields{
				"title": raw.Title,
				"date":  raw.Date,
				"time":  raw.Time,
			})
			continue
		}
		events = append(events, event.Normalized{Raw: raw, Start: start})
	}
	return events
}

func configureLogging() {
	level := logger.LevelWarn
	if flagVerbose {
		level = logger.LevelInfo
	}
	if flagDebug {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stderr))
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
