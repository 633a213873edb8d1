package startup

import (
	"os"
	"runtime/debug"
	"strconv"

	"media-studio/internal/logging"
)

// defaultHeapRatio is the share of the container memory limit given to the
// Go heap. The remainder is headroom for ffmpeg/ffprobe subprocesses and
// image decode buffers, which allocate outside the Go runtime.
const defaultHeapRatio = 0.85

// ConfigureMemoryLimit sets GOMEMLIMIT from the container's memory limit
// when one is advertised via MEMORY_LIMIT (bytes, e.g. from the Kubernetes
// Downward API). An explicit GOMEMLIMIT env var always wins; without either
// the runtime default stays in effect. Call early in main, before large
// allocations.
func ConfigureMemoryLimit() {
	if v := os.Getenv("GOMEMLIMIT"); v != "" {
		logging.Info("GOMEMLIMIT set via environment: %s", v)
		return
	}

	limitStr := os.Getenv("MEMORY_LIMIT")
	if limitStr == "" {
		logging.Debug("MEMORY_LIMIT not set, leaving GOMEMLIMIT unconfigured")
		return
	}
	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil || limit <= 0 {
		logging.Warn("Ignoring unparseable MEMORY_LIMIT %q", limitStr)
		return
	}

	ratio := defaultHeapRatio
	if s := os.Getenv("MEMORY_RATIO"); s != "" {
		if r, err := strconv.ParseFloat(s, 64); err == nil && r > 0 && r <= 1.0 {
			ratio = r
		} else {
			logging.Warn("Ignoring MEMORY_RATIO %q, using %.2f", s, defaultHeapRatio)
		}
	}

	heapLimit := int64(float64(limit) * ratio)
	debug.SetMemoryLimit(heapLimit)
	logging.Info("GOMEMLIMIT configured: %d bytes (%.0f%% of container limit %d)", heapLimit, ratio*100, limit)
}
