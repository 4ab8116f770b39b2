// Package cli implements the command-line interface for gamecal.
//
// The cli package provides the Cobra-based CLI that drives the full
// pipeline: fetch a rendered school schedule page, extract events, filter
// them, resolve their dates into the school's timezone, and write an ICS
// calendar file.
package cli
