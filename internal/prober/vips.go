package prober

import (
	"bytes"
	"fmt"
	"image"
	"sync"

	"github.com/davidbyttow/govips/v2/vips"
	"github.com/disintegration/imaging"

	"media-studio/internal/logging"
)

var (
	vipsMu    sync.Mutex
	vipsReady bool
)

// InitVips starts libvips for the image formats the standard decoders do
// not cover (HEIC/HEIF/AVIF). Call once at startup, before imports run.
// Without it those formats probe to sentinels like any other decode
// failure.
func InitVips() {
	vipsMu.Lock()
	defer vipsMu.Unlock()
	if vipsReady {
		return
	}

	// Route vips logs through our logger, dropping everything below
	// warning unless debug logging is on.
	minLevel := vips.LogLevelWarning
	if logging.IsDebugEnabled() {
		minLevel = vips.LogLevelInfo
	}
	vips.LoggingSettings(func(domain string, level vips.LogLevel, msg string) {
		switch {
		case level <= vips.LogLevelCritical:
			logging.Error("[%s] %s", domain, msg)
		case level == vips.LogLevelWarning:
			logging.Warn("[%s] %s", domain, msg)
		default:
			logging.Debug("[%s] %s", domain, msg)
		}
	}, minLevel)

	// Conservative memory settings: one image at a time, small cache.
	// The heavy lifting here is occasional HEIC decodes, not bulk work.
	vips.Startup(&vips.Config{
		ConcurrencyLevel: 1,
		MaxCacheMem:      50 * 1024 * 1024,
		MaxCacheSize:     100,
	})

	vipsReady = true
	logging.Info("libvips initialized (version: %s)", vips.Version)
}

// ShutdownVips releases libvips resources. Call once at process exit.
func ShutdownVips() {
	vipsMu.Lock()
	defer vipsMu.Unlock()
	if vipsReady {
		vips.Shutdown()
		vipsReady = false
	}
}

func vipsEnabled() bool {
	vipsMu.Lock()
	defer vipsMu.Unlock()
	return vipsReady
}

// isHeifLike sniffs the ISOBMFF ftyp header for the HEIF/AVIF brands that
// need libvips to decode. Everything else is left to the standard decoders.
func isHeifLike(data []byte) bool {
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heix", "hevc", "hevx", "mif1", "msf1", "avif", "avis":
		return true
	}
	return false
}

// vipsImageConfig reads pixel dimensions through libvips.
func vipsImageConfig(data []byte) (width, height int, err error) {
	ref, err := vips.LoadImageFromBuffer(data, vips.NewImportParams())
	if err != nil {
		return 0, 0, fmt.Errorf("vips failed to load image: %w", err)
	}
	defer ref.Close()
	return ref.Width(), ref.Height(), nil
}

// vipsDecode decodes an image through libvips and converts it to an
// image.Image so the rest of the preview pipeline stays decoder-agnostic.
func vipsDecode(data []byte) (image.Image, error) {
	ref, err := vips.LoadImageFromBuffer(data, vips.NewImportParams())
	if err != nil {
		return nil, fmt.Errorf("vips failed to load image: %w", err)
	}
	defer ref.Close()

	jpegBytes, _, err := ref.ExportJpeg(&vips.JpegExportParams{Quality: 95})
	if err != nil {
		return nil, fmt.Errorf("vips export failed: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(jpegBytes), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode vips output: %w", err)
	}
	return img, nil
}
