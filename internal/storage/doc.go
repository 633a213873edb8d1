// Package storage provides the durable local store backing media ingestion:
// a content-addressed blob table for raw media bytes and a key-value bucket
// for per-scope project lists, both in one SQLite database.
//
// The database uses WAL mode for concurrent read performance. Blob writes
// are best-effort and never retried here; when a write fails the importer
// downgrades the asset to a session-local reference.
package storage
