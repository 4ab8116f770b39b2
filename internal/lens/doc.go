// Package lens creates S3 Storage Lens dashboards scoped to a subset of an
// account's buckets, selected by name prefix. Storage Lens itself only
// supports account-wide or explicit-bucket dashboards; this package bridges
// the gap by resolving the prefix at configuration time.
package lens
