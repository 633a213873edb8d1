// Package project defines the editing entity graph — Project, TimelineClip,
// AudioTrack, ExportSettings — and the per-scope persistence layer over
// local key-value storage.
//
// A scope is the storage partition for projects: a user identity, or the
// shared "local" bucket when no identity is available. Each scope's
// projects are stored as one JSON array under a single key, read and
// written whole. Read failures and corrupt lists are absorbed into an
// empty result; writes are last-write-wins.
package project
