package resolver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"media-studio/internal/logging"
)

// Session owns a scratch directory of session-local playback files. Minted
// paths are directly playable by a renderer and vanish when the session is
// closed at process exit.
type Session struct {
	dir string
}

// NewSession creates a fresh scratch directory under baseDir.
func NewSession(baseDir string) (*Session, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scratch base dir: %w", err)
	}
	dir, err := os.MkdirTemp(baseDir, "session-")
	if err != nil {
		return nil, fmt.Errorf("failed to create session dir: %w", err)
	}
	logging.Debug("Session scratch dir: %s", dir)
	return &Session{dir: dir}, nil
}

// Dir returns the session scratch directory.
func (s *Session) Dir() string {
	return s.dir
}

// Mint materializes data as a session-local playback file and returns its
// path. Every call creates a distinct file, so two mints for the same name
// never alias each other and releasing one cannot affect the other. The
// name is sanitized to its base form; its extension is preserved so the
// path stays recognizable to renderers and MIME lookups.
func (s *Session) Mint(name string, data []byte) (string, error) {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) || base == "" {
		base = "unnamed"
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	f, err := os.CreateTemp(s.dir, stem+"-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to mint playback file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to write playback file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to finalize playback file: %w", err)
	}
	return f.Name(), nil
}

// Release removes one minted playback file. Paths outside the session dir
// are refused; releasing an already-removed file is a no-op.
func (s *Session) Release(path string) {
	if !strings.HasPrefix(path, s.dir+string(filepath.Separator)) {
		logging.Warn("Refusing to release path outside session dir: %s", path)
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logging.Warn("Failed to release playback file %s: %v", path, err)
	}
}

// Close tears down the scratch directory and every playback file in it.
// Call once at process exit.
func (s *Session) Close() error {
	logging.Debug("Removing session scratch dir: %s", s.dir)
	return os.RemoveAll(s.dir)
}
