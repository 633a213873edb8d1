// Package importer is the media item factory: it classifies a raw file,
// persists its bytes to the durable store, probes its metadata and
// assembles the resulting MediaItem.
//
// The factory never fails for a file that classifies: probe failures
// degrade to sentinel metadata, and a failed persistence write degrades
// the item to a session-local reference instead of losing it. Only an
// unclassifiable file is an error, and that is caller misuse — callers
// pre-check with mediatypes.IsSupported.
package importer
