package startup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"media-studio/internal/logging"
)

// Config holds all application configuration
type Config struct {
	Port       string
	DataDir    string
	ScratchDir string

	// Enhancement service (optional; endpoints return 503 when unset)
	EnhanceURL   string
	EnhanceToken string

	// Derived paths
	ThumbnailDir string
}

// LoadConfig loads and validates configuration from environment variables.
func LoadConfig() (*Config, error) {
	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")

	port := getEnv("PORT", "8080")
	dataDir := getEnv("DATA_DIR", "./data")
	scratchDir := getEnv("SCRATCH_DIR", filepath.Join(os.TempDir(), "media-studio"))
	enhanceURL := strings.TrimRight(os.Getenv("ENHANCE_URL"), "/")
	enhanceToken := os.Getenv("ENHANCE_TOKEN")

	logging.Info("  PORT:        %s", port)
	logging.Info("  DATA_DIR:    %s", dataDir)
	logging.Info("  SCRATCH_DIR: %s", scratchDir)
	logging.Info("  ENHANCE_URL: %s", orUnset(enhanceURL))
	logging.Info("  LOG_LEVEL:   %s", logging.GetLevel())

	var err error
	dataDir, err = filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}
	scratchDir, err = filepath.Abs(scratchDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve scratch directory path: %w", err)
	}

	if err := ensureWritableDir(dataDir); err != nil {
		return nil, fmt.Errorf("data directory: %w", err)
	}
	if err := ensureWritableDir(scratchDir); err != nil {
		return nil, fmt.Errorf("scratch directory: %w", err)
	}

	thumbnailDir := filepath.Join(scratchDir, "thumbnails")

	return &Config{
		Port:         port,
		DataDir:      dataDir,
		ScratchDir:   scratchDir,
		EnhanceURL:   enhanceURL,
		EnhanceToken: enhanceToken,
		ThumbnailDir: thumbnailDir,
	}, nil
}

// ensureWritableDir creates the directory if needed and verifies it is
// writable with a probe file.
func ensureWritableDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create %s: %w", dir, err)
	}
	probe := filepath.Join(dir, ".perm-test")
	if err := os.WriteFile(probe, []byte("test"), 0o600); err != nil {
		return fmt.Errorf("%s is not writable: %w", dir, err)
	}
	_ = os.Remove(probe)
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func orUnset(s string) string {
	if s == "" {
		return "(unset)"
	}
	return s
}
