package mediatypes

import (
	"fmt"
	"time"
)

// MediaItem is one imported asset. Its Type is fixed at creation and
// constrains which optional fields may be populated:
//
//   - Duration: video and audio only. A nil pointer means the duration was
//     never probed (or does not apply); a pointer to 0 means the probe ran
//     but could not determine it.
//   - Width/Height: video and photo only; 0/0 after a failed probe.
//   - Thumbnail: video and photo only; empty after a failed capture.
type MediaItem struct {
	ID        string    `json:"id"`
	Type      MediaType `json:"type"`
	URI       Ref       `json:"uri"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	Duration  *float64  `json:"duration,omitempty"`
	Width     int       `json:"width,omitempty"`
	Height    int       `json:"height,omitempty"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks the type/field invariant: fields are never populated for
// a type that does not carry them.
func (m *MediaItem) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("media item has no id")
	}
	switch m.Type {
	case TypeVideo:
		// All optional fields are legal for video.
	case TypeAudio:
		if m.Width != 0 || m.Height != 0 {
			return fmt.Errorf("audio item %s carries dimensions", m.ID)
		}
		if m.Thumbnail != "" {
			return fmt.Errorf("audio item %s carries a thumbnail", m.ID)
		}
	case TypePhoto:
		if m.Duration != nil {
			return fmt.Errorf("photo item %s carries a duration", m.ID)
		}
	default:
		return fmt.Errorf("media item %s has invalid type %q", m.ID, m.Type)
	}
	return nil
}
