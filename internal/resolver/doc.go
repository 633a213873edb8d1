// Package resolver turns persisted media:// references into playback paths
// and manages the session scratch directory those paths live in.
//
// Resolution is idempotent and memoized per media id: the first resolution
// fetches the bytes from the durable store and materializes them as a
// session-local file, every later one returns the cached path. References
// that do not carry the media:// scheme are already playable and pass
// through untouched, including dead references for ids the store has never
// seen.
package resolver
