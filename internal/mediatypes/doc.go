// Package mediatypes provides the shared value types for media ingestion:
// the file classifier, the MediaItem record, and the storage reference
// encoding.
//
// This package exists as a dependency-free foundation that can be imported
// by other packages without creating import cycles. It contains primitive
// types, constants, and pure functions only.
//
// # Classification
//
// Use Classify to determine what kind of media a user-supplied file is:
//
//	t := mediatypes.Classify("clip.mov", "video/quicktime")
//	switch t {
//	case mediatypes.TypeVideo:
//	    // probe duration, dimensions, thumbnail
//	case mediatypes.TypeUnsupported:
//	    // reject before import
//	}
//
// The file extension is matched against fixed allow-lists first; the
// declared content type is only a fallback. Classification is deterministic
// and total — every input maps to exactly one type.
//
// # Storage references
//
// A Ref is either persisted ("media://<id>", resolved through the durable
// binary store) or ephemeral (a session-local playback path used when
// persistence failed). Any wire string without the media:// scheme is
// treated as directly playable.
package mediatypes
