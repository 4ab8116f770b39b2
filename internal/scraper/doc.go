// Package scraper extracts event records from rendered school ticketing
// pages. Three extraction strategies are tried in strict priority order:
// the framework-injected JSON payload, attribute-tagged event cards, and a
// free-text fallback over event links. The first strategy that yields any
// records wins; an all-empty result is a normal "no events found" outcome,
// not an error.
package scraper
