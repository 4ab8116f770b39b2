// Package storage caches downloaded AWS price list files on disk so that
// historical pricing queries do not re-download multi-megabyte offer files
// on every run.
package storage
