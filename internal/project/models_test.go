package project

import (
	"testing"
	"time"

	"media-studio/internal/mediatypes"
)

func TestNewProjectDefaults(t *testing.T) {
	p := New("My Cut")

	if p.ID == "" {
		t.Error("New() produced empty id")
	}
	if p.Name != "My Cut" {
		t.Errorf("Name = %q, want %q", p.Name, "My Cut")
	}
	if p.MediaItems == nil || p.Timeline == nil || p.AudioTracks == nil {
		t.Error("New() collections must be empty, not nil")
	}
	if len(p.MediaItems)+len(p.Timeline)+len(p.AudioTracks) != 0 {
		t.Error("New() collections must start empty")
	}
	if p.Export != DefaultExportSettings() {
		t.Errorf("Export = %+v, want defaults", p.Export)
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("New() timestamps not set")
	}
}

func TestDefaultExportSettingsFullyPopulated(t *testing.T) {
	e := DefaultExportSettings()
	if e.Width == 0 || e.Height == 0 || e.FPS == 0 || e.BitrateKbps == 0 || e.Format == "" {
		t.Errorf("DefaultExportSettings() has zero fields: %+v", e)
	}
}

func TestTimelineClipValidate(t *testing.T) {
	tests := []struct {
		name       string
		clip       TimelineClip
		sourceDur  float64
		wantErr    bool
	}{
		{"ValidWindow", TimelineClip{ID: "c1", StartTime: 0, EndTime: 5}, 10, false},
		{"FullSource", TimelineClip{ID: "c2", StartTime: 0, EndTime: 10}, 10, false},
		{"UnknownSourceDuration", TimelineClip{ID: "c3", StartTime: 2, EndTime: 100}, 0, false},
		{"NegativeStart", TimelineClip{ID: "c4", StartTime: -1, EndTime: 5}, 10, true},
		{"StartEqualsEnd", TimelineClip{ID: "c5", StartTime: 3, EndTime: 3}, 10, true},
		{"StartAfterEnd", TimelineClip{ID: "c6", StartTime: 5, EndTime: 3}, 10, true},
		{"EndPastSource", TimelineClip{ID: "c7", StartTime: 0, EndTime: 11}, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.clip.Validate(tt.sourceDur)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAudioTrackValidate(t *testing.T) {
	tests := []struct {
		name    string
		track   AudioTrack
		wantErr bool
	}{
		{
			"PlacedEqualsTrimmed",
			AudioTrack{ID: "a1", StartTime: 2, EndTime: 5, TrimStart: 0, TrimEnd: 3, Volume: 1},
			false,
		},
		{
			"TrimLongerThanPlacement",
			AudioTrack{ID: "a2", StartTime: 2, EndTime: 5, TrimStart: 0, TrimEnd: 4, Volume: 1},
			true,
		},
		{
			"TrimShorterThanPlacement",
			AudioTrack{ID: "a3", StartTime: 0, EndTime: 5, TrimStart: 0, TrimEnd: 3, Volume: 1},
			true,
		},
		{
			"VolumeAboveOne",
			AudioTrack{ID: "a4", StartTime: 0, EndTime: 3, TrimStart: 0, TrimEnd: 3, Volume: 1.5},
			true,
		},
		{
			"NegativeVolume",
			AudioTrack{ID: "a5", StartTime: 0, EndTime: 3, TrimStart: 0, TrimEnd: 3, Volume: -0.1},
			true,
		},
		{
			"FadesFitPlacement",
			AudioTrack{ID: "a6", StartTime: 0, EndTime: 4, TrimStart: 1, TrimEnd: 5, Volume: 0.8, FadeIn: 1, FadeOut: 2},
			false,
		},
		{
			"FadesExceedPlacement",
			AudioTrack{ID: "a7", StartTime: 0, EndTime: 4, TrimStart: 1, TrimEnd: 5, Volume: 0.8, FadeIn: 3, FadeOut: 2},
			true,
		},
		{
			"NegativeFade",
			AudioTrack{ID: "a8", StartTime: 0, EndTime: 3, TrimStart: 0, TrimEnd: 3, Volume: 1, FadeIn: -1},
			true,
		},
		{
			"EmptyPlacedWindow",
			AudioTrack{ID: "a9", StartTime: 5, EndTime: 5, TrimStart: 0, TrimEnd: 0, Volume: 1},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.track.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := New("Original")
	p.MediaItems = append(p.MediaItems, mediatypes.MediaItem{ID: "m1", Type: mediatypes.TypeVideo})
	p.Timeline = append(p.Timeline, TimelineClip{ID: "c1", MediaID: "m1", StartTime: 0, EndTime: 5})
	p.AudioTracks = append(p.AudioTracks, AudioTrack{ID: "a1", StartTime: 0, EndTime: 3, TrimEnd: 3, Volume: 1})
	p.Duration = 5

	created := p.CreatedAt
	time.Sleep(2 * time.Millisecond)

	dup := p.Clone()

	if dup.ID == p.ID {
		t.Error("Clone() kept the original id")
	}
	if !dup.CreatedAt.After(created) {
		t.Error("Clone() did not refresh CreatedAt")
	}
	if dup.Duration != p.Duration || dup.Export != p.Export || dup.Name != p.Name {
		t.Error("Clone() lost value fields")
	}

	dup.Timeline[0].StartTime = 99
	dup.MediaItems[0].Name = "mutated"
	dup.AudioTracks[0].Volume = 0

	if p.Timeline[0].StartTime == 99 || p.MediaItems[0].Name == "mutated" || p.AudioTracks[0].Volume == 0 {
		t.Error("mutating the clone leaked into the original")
	}
}

func TestNormalizeTimeline(t *testing.T) {
	p := New("P")
	p.Timeline = []TimelineClip{
		{ID: "c", Order: 7},
		{ID: "a", Order: 0},
		{ID: "b", Order: 3},
	}

	p.NormalizeTimeline()

	wantIDs := []string{"a", "b", "c"}
	for i, clip := range p.Timeline {
		if clip.ID != wantIDs[i] {
			t.Errorf("position %d has clip %s, want %s", i, clip.ID, wantIDs[i])
		}
		if clip.Order != i {
			t.Errorf("clip %s order = %d, want contiguous %d", clip.ID, clip.Order, i)
		}
	}
}

func TestProjectValidateUsesKnownDurations(t *testing.T) {
	dur := 10.0
	p := New("P")
	p.MediaItems = []mediatypes.MediaItem{{ID: "m1", Type: mediatypes.TypeVideo, Duration: &dur}}
	p.Timeline = []TimelineClip{{ID: "c1", MediaID: "m1", StartTime: 0, EndTime: 12}}

	if err := p.Validate(); err == nil {
		t.Error("Validate() accepted a clip trimmed past its source duration")
	}

	p.Timeline[0].EndTime = 8
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() rejected a valid project: %v", err)
	}
}
