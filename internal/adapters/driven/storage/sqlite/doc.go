// Package sqlite provides a SQLite-backed content sink. Documents are
// upserted by source path so repeated ingestion runs stay idempotent.
package sqlite
