package importer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"media-studio/internal/logging"
	"media-studio/internal/mediatypes"
	"media-studio/internal/metrics"
	"media-studio/internal/prober"
)

// ErrUnsupportedType is returned when a file fails classification. Callers
// are expected to pre-check with mediatypes.IsSupported; reaching this is
// caller misuse, the only way Import fails for readable input.
var ErrUnsupportedType = errors.New("importer: unsupported media type")

// BlobStore is the slice of durable storage the importer needs.
type BlobStore interface {
	SaveBlob(ctx context.Context, id, name string, data []byte) error
}

// RefMinter mints and releases session-local playback files.
type RefMinter interface {
	Mint(name string, data []byte) (string, error)
	Release(path string)
}

// Prober extracts metadata from a playback path. Implementations absorb
// their own failures into sentinel values.
type Prober interface {
	VideoInfo(ctx context.Context, path string) prober.VideoInfo
	AudioDuration(ctx context.Context, path string) float64
	VideoThumbnail(ctx context.Context, path, id string) string
	ImageInfo(data []byte) (width, height int)
	ImagePreview(data []byte, id string) string
}

// Importer builds fully-populated media items from raw files: classify,
// persist, probe. It never fails outright for a classified file — partial
// metadata from failed probes is acceptable output.
type Importer struct {
	blobs  BlobStore
	probe  Prober
	minter RefMinter
}

// New creates an Importer over the given collaborators.
func New(blobs BlobStore, probe Prober, minter RefMinter) *Importer {
	return &Importer{blobs: blobs, probe: probe, minter: minter}
}

// Import creates a MediaItem from a raw file. The bytes are persisted to
// the durable store when possible; when the write fails the item keeps its
// session-local reference permanently — a documented degraded mode, logged
// rather than raised, in which the asset survives only for this session.
func (im *Importer) Import(ctx context.Context, name, contentType string, data []byte) (*mediatypes.MediaItem, error) {
	start := time.Now()
	defer func() { metrics.ImportDuration.Observe(time.Since(start).Seconds()) }()

	mediaType := mediatypes.Classify(name, contentType)
	if mediaType == mediatypes.TypeUnsupported {
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, name, contentType)
	}

	id := uuid.NewString()

	// The probing reference must exist before the persistence outcome is
	// known: it doubles as the permanent URI on the fallback path.
	tempRef, err := im.minter.Mint(id+"-"+name, data)
	if err != nil {
		return nil, fmt.Errorf("failed to mint session reference: %w", err)
	}

	item := &mediatypes.MediaItem{
		ID:        id,
		Type:      mediaType,
		Name:      name,
		Size:      int64(len(data)),
		CreatedAt: time.Now().UTC(),
	}

	persisted := true
	if err := im.blobs.SaveBlob(ctx, id, name, data); err != nil {
		persisted = false
		metrics.BlobWriteFailures.Inc()
		logging.Warn("Persistence failed for %s (%s), keeping session-only reference: %v", name, id, err)
		item.URI = mediatypes.EphemeralRef(tempRef)
	} else {
		item.URI = mediatypes.PersistedRef(id)
	}

	im.probeInto(ctx, item, tempRef, data)

	// The temp reference is released only when the bytes are durable; on
	// the fallback path it is the asset's sole reference and must stay.
	if persisted {
		im.minter.Release(tempRef)
		metrics.ImportsTotal.WithLabelValues(string(mediaType), "persisted").Inc()
	} else {
		metrics.ImportsTotal.WithLabelValues(string(mediaType), "ephemeral").Inc()
	}

	logging.Info("Imported %s as %s (%s, %d bytes, persisted=%v)", name, id, mediaType, len(data), persisted)
	return item, nil
}

// probeInto runs the probes relevant to the item's type. Probes for one
// file are independent and write to disjoint fields, so they run
// concurrently; each absorbs its own failures into sentinels.
func (im *Importer) probeInto(ctx context.Context, item *mediatypes.MediaItem, playRef string, data []byte) {
	var wg sync.WaitGroup

	switch item.Type {
	case mediatypes.TypeVideo:
		wg.Add(2)
		go func() {
			defer wg.Done()
			info := im.probe.VideoInfo(ctx, playRef)
			d := info.Duration
			item.Duration = &d
			item.Width = info.Width
			item.Height = info.Height
		}()
		go func() {
			defer wg.Done()
			item.Thumbnail = im.probe.VideoThumbnail(ctx, playRef, item.ID)
		}()

	case mediatypes.TypeAudio:
		wg.Add(1)
		go func() {
			defer wg.Done()
			d := im.probe.AudioDuration(ctx, playRef)
			item.Duration = &d
		}()

	case mediatypes.TypePhoto:
		wg.Add(2)
		go func() {
			defer wg.Done()
			item.Width, item.Height = im.probe.ImageInfo(data)
		}()
		go func() {
			defer wg.Done()
			item.Thumbnail = im.probe.ImagePreview(data, item.ID)
		}()
	}

	wg.Wait()
}
