package prober

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/disintegration/imaging"

	"media-studio/internal/logging"
	"media-studio/internal/metrics"
)

// Probe timeouts. Probing never blocks item creation longer than these; on
// expiry the probe resolves to its sentinel value and the late result is
// discarded.
const (
	// DefaultProbeTimeout bounds duration and dimension probes.
	DefaultProbeTimeout = 10 * time.Second
	// DefaultThumbnailTimeout bounds video frame capture.
	DefaultThumbnailTimeout = 15 * time.Second
)

// VideoInfo holds probed video metadata. Zero values are the failure
// sentinels: Duration 0 means "probed, undeterminable", Width/Height 0/0
// mean the dimension probe failed.
type VideoInfo struct {
	Duration float64
	Width    int
	Height   int
}

// FFProber extracts media metadata with ffprobe and captures video frames
// with ffmpeg. Every operation is bounded by a timeout and absorbs failure
// into a sentinel value instead of returning an error.
type FFProber struct {
	thumbDir         string
	probeTimeout     time.Duration
	thumbnailTimeout time.Duration
}

// New creates an FFProber writing previews into thumbDir.
func New(thumbDir string) *FFProber {
	if err := os.MkdirAll(thumbDir, 0o755); err != nil {
		logging.Warn("Failed to create thumbnail dir %s: %v", thumbDir, err)
	}
	return &FFProber{
		thumbDir:         thumbDir,
		probeTimeout:     DefaultProbeTimeout,
		thumbnailTimeout: DefaultThumbnailTimeout,
	}
}

// VideoInfo probes duration and pixel dimensions of a video file.
func (p *FFProber) VideoInfo(ctx context.Context, path string) VideoInfo {
	start := time.Now()
	defer func() { metrics.ProbeDuration.WithLabelValues("video_info").Observe(time.Since(start).Seconds()) }()

	ctx, cancel := context.WithTimeout(ctx, p.probeTimeout)
	defer cancel()

	out, err := runFFProbe(ctx, path)
	if err != nil {
		metrics.ProbeFailures.WithLabelValues("video_info").Inc()
		logging.Warn("Video probe failed for %s: %v", path, err)
		return VideoInfo{}
	}

	info := VideoInfo{Duration: out.duration()}
	if w, h, ok := out.dimensions(); ok {
		info.Width, info.Height = w, h
	} else {
		metrics.ProbeFailures.WithLabelValues("video_info").Inc()
		logging.Warn("No video stream dimensions for %s", path)
	}
	return info
}

// AudioDuration probes the duration of an audio file. Returns 0 when the
// duration cannot be determined.
func (p *FFProber) AudioDuration(ctx context.Context, path string) float64 {
	start := time.Now()
	defer func() {
		metrics.ProbeDuration.WithLabelValues("audio_duration").Observe(time.Since(start).Seconds())
	}()

	ctx, cancel := context.WithTimeout(ctx, p.probeTimeout)
	defer cancel()

	out, err := runFFProbe(ctx, path)
	if err != nil {
		metrics.ProbeFailures.WithLabelValues("audio_duration").Inc()
		logging.Warn("Audio probe failed for %s: %v", path, err)
		return 0
	}
	return out.duration()
}

// VideoThumbnail captures a still frame from a video, re-encodes it as a
// compressed JPEG preview and returns the preview path. Returns "" on any
// failure. The capture seeks to min(1s, duration/4) to skip black leading
// frames while tolerating very short clips.
func (p *FFProber) VideoThumbnail(ctx context.Context, path, id string) string {
	start := time.Now()
	defer func() { metrics.ProbeDuration.WithLabelValues("thumbnail").Observe(time.Since(start).Seconds()) }()

	ctx, cancel := context.WithTimeout(ctx, p.thumbnailTimeout)
	defer cancel()

	seek := 1.0
	if out, err := runFFProbe(ctx, path); err == nil {
		if d := out.duration(); d > 0 && d/4 < seek {
			seek = d / 4
		}
	}

	frame, err := captureFrame(ctx, path, seek)
	if err != nil {
		logging.Debug("Seeked frame capture failed for %s: %v, retrying without seek", path, err)
		frame, err = captureFrame(ctx, path, -1)
	}
	if err != nil {
		metrics.ProbeFailures.WithLabelValues("thumbnail").Inc()
		logging.Warn("Thumbnail capture failed for %s: %v", path, err)
		return ""
	}

	thumbPath, err := p.writePreview(frame, id)
	if err != nil {
		metrics.ProbeFailures.WithLabelValues("thumbnail").Inc()
		logging.Warn("Failed to write thumbnail for %s: %v", path, err)
		return ""
	}
	return thumbPath
}

// captureFrame extracts one frame via ffmpeg. A negative seek captures the
// first decodable frame.
func captureFrame(ctx context.Context, path string, seek float64) (image.Image, error) {
	args := []string{}
	if seek >= 0 {
		args = append(args, "-ss", strconv.FormatFloat(seek, 'f', 3, 64))
	}
	args = append(args,
		"-i", path,
		"-vframes", "1",
		"-f", "image2pipe",
		"-vcodec", "png",
		"-",
	)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg failed: %w - %s", err, stderr.String())
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg produced no output for %s", path)
	}

	img, _, err := image.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ffmpeg output: %w", err)
	}
	return img, nil
}

// writePreview fits the image to the preview bounds, encodes it as JPEG and
// writes it next to the other previews.
func (p *FFProber) writePreview(img image.Image, id string) (string, error) {
	thumb := imaging.Fit(img, 200, 200, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 80}); err != nil {
		return "", fmt.Errorf("failed to encode preview: %w", err)
	}

	path := filepath.Join(p.thumbDir, id+".jpg")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write preview: %w", err)
	}
	return path, nil
}

// ffprobeOutput mirrors the slice of `ffprobe -print_format json` output
// the prober consumes.
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
		Duration  string `json:"duration"`
	} `json:"streams"`
}

func runFFProbe(ctx context.Context, path string) (*ffprobeOutput, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe error: %w - %s", err, stderr.String())
	}
	return parseFFProbeOutput(stdout.Bytes())
}

func parseFFProbeOutput(data []byte) (*ffprobeOutput, error) {
	var out ffprobeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	return &out, nil
}

// duration returns the container duration, falling back to the first stream
// that declares one. Returns 0 when undeterminable.
func (o *ffprobeOutput) duration() float64 {
	if d, err := strconv.ParseFloat(o.Format.Duration, 64); err == nil && d > 0 {
		return d
	}
	for _, s := range o.Streams {
		if d, err := strconv.ParseFloat(s.Duration, 64); err == nil && d > 0 {
			return d
		}
	}
	return 0
}

// dimensions returns the first video stream's pixel dimensions.
func (o *ffprobeOutput) dimensions() (int, int, bool) {
	for _, s := range o.Streams {
		if s.CodecType == "video" && s.Width > 0 && s.Height > 0 {
			return s.Width, s.Height, true
		}
	}
	return 0, 0, false
}
