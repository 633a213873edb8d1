package resolver

import (
	"context"
	"errors"
	"sync"

	"media-studio/internal/logging"
	"media-studio/internal/mediatypes"
	"media-studio/internal/metrics"
	"media-studio/internal/storage"
)

// BlobGetter is the slice of the durable store the resolver needs.
type BlobGetter interface {
	GetBlob(ctx context.Context, id string) (data []byte, name string, err error)
}

// Resolver translates persisted media:// references back into playback
// paths, memoizing one path per media id for the session lifetime.
//
// The cache is never evicted: each entry corresponds to one imported asset,
// so it stays bounded by the number of imports in a session. Concurrent
// resolutions of the same id may fetch and mint twice; mints are distinct
// files, the first one cached wins and the loser's file is released, so
// every caller observes the same live path.
type Resolver struct {
	blobs   BlobGetter
	session *Session

	mu    sync.RWMutex
	cache map[string]string // media id -> playback path
}

// New creates a Resolver over the given blob store and session.
func New(blobs BlobGetter, session *Session) *Resolver {
	return &Resolver{
		blobs:   blobs,
		session: session,
		cache:   make(map[string]string),
	}
}

// Resolve turns a reference into a playback path. Non-persisted references
// pass through unchanged. A persisted reference whose id is unknown to the
// store is returned as-is — the caller must treat it as dead media and show
// a placeholder.
func (r *Resolver) Resolve(ctx context.Context, ref string) string {
	parsed := mediatypes.ParseRef(ref)
	if !parsed.IsPersisted() {
		return ref
	}
	id := parsed.ID

	r.mu.RLock()
	path, ok := r.cache[id]
	r.mu.RUnlock()
	if ok {
		metrics.ResolverCacheHits.Inc()
		return path
	}
	metrics.ResolverCacheMisses.Inc()

	data, name, err := r.blobs.GetBlob(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			metrics.ResolverDeadRefs.Inc()
			logging.Debug("No stored content for media id %s, returning dead reference", id)
		} else {
			logging.Warn("Failed to fetch blob for media id %s: %v", id, err)
		}
		return ref
	}
	if name == "" {
		name = id
	}

	path, err = r.session.Mint(name, data)
	if err != nil {
		logging.Warn("Failed to mint playback file for media id %s: %v", id, err)
		return ref
	}

	r.mu.Lock()
	// A racing resolution may have minted first; keep the existing entry so
	// every caller observes one stable path per id.
	if existing, ok := r.cache[id]; ok {
		r.mu.Unlock()
		r.session.Release(path)
		return existing
	}
	r.cache[id] = path
	r.mu.Unlock()

	return path
}
