// Package event provides the event records that flow through the scraping
// pipeline and the date/time normalization that turns free-text schedule
// strings into timezone-aware instants.
//
// A Raw event is whatever the extractor could pull off the page; fields are
// optional and unvalidated. Normalization resolves the raw date and time
// strings against school-year semantics (August through July) and produces a
// Normalized event with a single unambiguous start instant. Events whose
// dates cannot be resolved are dropped by the caller, never defaulted.
package event
