package prober

import (
	"bytes"
	"image"
	"time"

	"github.com/disintegration/imaging"

	"media-studio/internal/logging"
	"media-studio/internal/metrics"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// ImageInfo decodes the pixel dimensions of an image without decoding the
// full pixel data. HEIC/HEIF/AVIF content falls back to libvips when it is
// initialized. Returns 0/0 when the image cannot be decoded.
func (p *FFProber) ImageInfo(data []byte) (width, height int) {
	start := time.Now()
	defer func() { metrics.ProbeDuration.WithLabelValues("image_info").Observe(time.Since(start).Seconds()) }()

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err == nil {
		logging.Debug("Decoded image config: format=%s %dx%d", format, cfg.Width, cfg.Height)
		return cfg.Width, cfg.Height
	}

	if isHeifLike(data) && vipsEnabled() {
		w, h, vipsErr := vipsImageConfig(data)
		if vipsErr == nil {
			logging.Debug("Decoded image config via vips: %dx%d", w, h)
			return w, h
		}
		err = vipsErr
	}

	metrics.ProbeFailures.WithLabelValues("image_info").Inc()
	logging.Warn("Image dimension probe failed: %v", err)
	return 0, 0
}

// ImagePreview re-encodes an image as a compressed JPEG preview and returns
// the preview path, or "" when the image cannot be decoded. As with
// ImageInfo, HEIC/HEIF/AVIF content is decoded through libvips.
func (p *FFProber) ImagePreview(data []byte, id string) string {
	start := time.Now()
	defer func() {
		metrics.ProbeDuration.WithLabelValues("image_preview").Observe(time.Since(start).Seconds())
	}()

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil && isHeifLike(data) && vipsEnabled() {
		img, err = vipsDecode(data)
	}
	if err != nil {
		metrics.ProbeFailures.WithLabelValues("image_preview").Inc()
		logging.Warn("Image preview decode failed: %v", err)
		return ""
	}

	path, err := p.writePreview(img, id)
	if err != nil {
		metrics.ProbeFailures.WithLabelValues("image_preview").Inc()
		logging.Warn("Failed to write image preview: %v", err)
		return ""
	}
	return path
}
