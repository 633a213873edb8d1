package project

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"media-studio/internal/mediatypes"
)

// durationEpsilon tolerates float drift when comparing second-based windows.
const durationEpsilon = 1e-6

// TimelineClip is one placed instance of a media item on the edit timeline.
// StartTime/EndTime trim into the source media; Order is the clip's position
// among its siblings, unique and contiguous at every committed state.
type TimelineClip struct {
	ID        string  `json:"id"`
	MediaID   string  `json:"mediaId"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Order     int     `json:"order"`

	// Cosmetic fields, no structural invariants beyond enum membership.
	Speed      float64 `json:"speed,omitempty"`
	Rotation   int     `json:"rotation,omitempty"`
	FlipH      bool    `json:"flipH,omitempty"`
	FlipV      bool    `json:"flipV,omitempty"`
	CropRatio  string  `json:"cropRatio,omitempty"`
	Filter     string  `json:"filter,omitempty"`
	Transition string  `json:"transition,omitempty"`
	MotionTag  string  `json:"motionTag,omitempty"`
}

// Validate checks the clip's trim window. originalDuration is the known
// source duration in seconds; pass 0 when unknown and the upper bound is
// skipped. Invalid windows are rejected, never clamped.
func (c *TimelineClip) Validate(originalDuration float64) error {
	if c.StartTime < 0 {
		return fmt.Errorf("clip %s: startTime %.3f is negative", c.ID, c.StartTime)
	}
	if c.StartTime >= c.EndTime {
		return fmt.Errorf("clip %s: startTime %.3f must be before endTime %.3f", c.ID, c.StartTime, c.EndTime)
	}
	if originalDuration > 0 && c.EndTime > originalDuration+durationEpsilon {
		return fmt.Errorf("clip %s: endTime %.3f exceeds source duration %.3f", c.ID, c.EndTime, originalDuration)
	}
	return nil
}

// AudioTrack is an audio layer placed on the timeline independent of video
// clips. StartTime/EndTime place the track on the timeline; TrimStart/TrimEnd
// trim into the source audio — distinct semantics from TimelineClip.
type AudioTrack struct {
	ID        string  `json:"id"`
	MediaID   string  `json:"mediaId"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	TrimStart float64 `json:"trimStart"`
	TrimEnd   float64 `json:"trimEnd"`
	Volume    float64 `json:"volume"`
	FadeIn    float64 `json:"fadeIn,omitempty"`
	FadeOut   float64 `json:"fadeOut,omitempty"`
}

// Validate enforces the audio track invariants: the placed duration equals
// the trimmed source duration (audio tracks have no playback-rate field, so
// unequal durations are a modeling error, not an implicit speed change),
// volume stays in [0,1], and fades fit inside the placed window.
func (a *AudioTrack) Validate() error {
	placed := a.EndTime - a.StartTime
	trimmed := a.TrimEnd - a.TrimStart

	if a.StartTime < 0 || a.TrimStart < 0 {
		return fmt.Errorf("audio track %s: negative start", a.ID)
	}
	if placed <= 0 {
		return fmt.Errorf("audio track %s: placed window %.3f..%.3f is empty", a.ID, a.StartTime, a.EndTime)
	}
	if trimmed <= 0 {
		return fmt.Errorf("audio track %s: trim window %.3f..%.3f is empty", a.ID, a.TrimStart, a.TrimEnd)
	}
	if math.Abs(placed-trimmed) > durationEpsilon {
		return fmt.Errorf("audio track %s: placed duration %.3f != trimmed duration %.3f", a.ID, placed, trimmed)
	}
	if a.Volume < 0 || a.Volume > 1 {
		return fmt.Errorf("audio track %s: volume %.3f outside [0,1]", a.ID, a.Volume)
	}
	if a.FadeIn < 0 || a.FadeOut < 0 {
		return fmt.Errorf("audio track %s: negative fade", a.ID)
	}
	if a.FadeIn+a.FadeOut > placed+durationEpsilon {
		return fmt.Errorf("audio track %s: fades %.3f exceed placed duration %.3f", a.ID, a.FadeIn+a.FadeOut, placed)
	}
	return nil
}

// ExportSettings is a value object; it is always fully populated from
// defaults at project creation and freely overwritten afterwards.
type ExportSettings struct {
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	FPS              int    `json:"fps"`
	BitrateKbps      int    `json:"bitrateKbps"`
	Format           string `json:"format"`
	IncludeAudio     bool   `json:"includeAudio"`
	IncludeWatermark bool   `json:"includeWatermark"`
}

// DefaultExportSettings returns the settings every new project starts with.
func DefaultExportSettings() ExportSettings {
	return ExportSettings{
		Width:        1920,
		Height:       1080,
		FPS:          30,
		BitrateKbps:  8000,
		Format:       "mp4",
		IncludeAudio: true,
	}
}

// Project is the aggregate root: it owns its media item records, timeline
// clips, audio tracks and export settings by value. Only metadata is owned
// here — raw bytes live in the durable store keyed by media id, so one
// asset may be referenced by many projects without duplication.
type Project struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	MediaItems  []mediatypes.MediaItem `json:"mediaItems"`
	Timeline    []TimelineClip         `json:"timeline"`
	AudioTracks []AudioTrack           `json:"audioTracks"`
	Export      ExportSettings         `json:"exportSettings"`

	// Duration is denormalized from timeline content; callers keep it
	// consistent, nothing recomputes it automatically.
	Duration  float64   `json:"duration"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New creates an in-memory project with empty collections and default
// export settings. Pure, no I/O.
func New(name string) *Project {
	now := time.Now().UTC()
	return &Project{
		ID:          uuid.NewString(),
		Name:        name,
		MediaItems:  []mediatypes.MediaItem{},
		Timeline:    []TimelineClip{},
		AudioTracks: []AudioTrack{},
		Export:      DefaultExportSettings(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Clone deep-copies the project with a fresh id and timestamps. Collections
// are copied by value so edits to the clone never leak into the original.
func (p *Project) Clone() *Project {
	now := time.Now().UTC()
	dup := &Project{
		ID:          uuid.NewString(),
		Name:        p.Name,
		MediaItems:  make([]mediatypes.MediaItem, len(p.MediaItems)),
		Timeline:    make([]TimelineClip, len(p.Timeline)),
		AudioTracks: make([]AudioTrack, len(p.AudioTracks)),
		Export:      p.Export,
		Duration:    p.Duration,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	copy(dup.MediaItems, p.MediaItems)
	copy(dup.Timeline, p.Timeline)
	copy(dup.AudioTracks, p.AudioTracks)
	return dup
}

// NormalizeTimeline reassigns clip orders to be unique and contiguous,
// preserving the current relative ordering. Gaps are tolerated while the
// editor shuffles clips around but must not survive a save.
func (p *Project) NormalizeTimeline() {
	clips := p.Timeline
	for i := 1; i < len(clips); i++ {
		for j := i; j > 0 && clips[j-1].Order > clips[j].Order; j-- {
			clips[j-1], clips[j] = clips[j], clips[j-1]
		}
	}
	for i := range clips {
		clips[i].Order = i
	}
}

// Validate checks every clip and audio track in the project. Clip trim
// windows are checked against the referenced media item's duration when it
// is known.
func (p *Project) Validate() error {
	durations := make(map[string]float64, len(p.MediaItems))
	for _, item := range p.MediaItems {
		if item.Duration != nil {
			durations[item.ID] = *item.Duration
		}
	}
	for i := range p.Timeline {
		if err := p.Timeline[i].Validate(durations[p.Timeline[i].MediaID]); err != nil {
			return err
		}
	}
	for i := range p.AudioTracks {
		if err := p.AudioTracks[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
