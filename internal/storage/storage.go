package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"media-studio/internal/logging"
	"media-studio/internal/metrics"
)

// DatabaseFile is the fixed name of the local studio database.
const DatabaseFile = "studio.db"

// Default timeout for storage operations
const defaultTimeout = 5 * time.Second

// ErrNotFound is returned when a blob or key has never been stored.
var ErrNotFound = errors.New("storage: not found")

// Store is the durable local store for the studio: raw media bytes keyed
// by media id, plus a small key-value bucket used for project lists.
//
// A single Store is built once at startup and injected into every consumer;
// there is no ambient handle. Writes are best-effort — a failed SaveBlob is
// not retried here, callers fall back to a session-local reference.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Open opens (or creates) the studio database inside dataDir.
// The directory must already exist and be writable.
func Open(ctx context.Context, dataDir string) (*Store, error) {
	dbPath := filepath.Join(dataDir, DatabaseFile)
	logging.Info("Storage path: %s", dbPath)

	if err := checkDirWritable(dataDir); err != nil {
		logging.Warn("Storage directory diagnostics: %v", err)
	}

	// WAL mode; busy_timeout prevents "database is locked" errors when the
	// importer and resolver touch the store concurrently.
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db, dbPath: dbPath}

	if err := s.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after initialization failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize storage schema: %w", err)
	}

	logging.Info("Storage initialized at %s", dbPath)
	return s, nil
}

func (s *Store) initialize(ctx context.Context) error {
	schema := `
	-- Raw media bytes, one row per imported asset. The original filename
	-- rides along so playback references can keep their extension.
	CREATE TABLE IF NOT EXISTS blobs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		data BLOB NOT NULL,
		size INTEGER NOT NULL,
		created_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
	);

	-- Key-value bucket (project lists keyed per scope)
	CREATE TABLE IF NOT EXISTS kv (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveBlob persists raw media bytes keyed by id together with the original
// filename, replacing any previous content for the same id.
func (s *Store) SaveBlob(ctx context.Context, id, name string, data []byte) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("save_blob", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO blobs (id, name, data, size) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, data = excluded.data, size = excluded.size
	`, id, name, data, len(data))
	if err != nil {
		return fmt.Errorf("failed to save blob %s: %w", id, err)
	}
	return nil
}

// GetBlob returns the stored bytes and original filename for id, or
// ErrNotFound if the id was never stored.
func (s *Store) GetBlob(ctx context.Context, id string) ([]byte, string, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_blob", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var data []byte
	var name string
	err = s.db.QueryRowContext(ctx, "SELECT data, name FROM blobs WHERE id = ?", id).Scan(&data, &name)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil // absence is an expected outcome, not a query failure
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to read blob %s: %w", id, err)
	}
	return data, name, nil
}

// DeleteBlob removes the stored bytes for id. Deleting an unknown id is a
// no-op.
func (s *Store) DeleteBlob(ctx context.Context, id string) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("delete_blob", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = s.db.ExecContext(ctx, "DELETE FROM blobs WHERE id = ?", id)
	return err
}

// GetValue reads a key from the kv bucket. The second return is false when
// the key has never been written.
func (s *Store) GetValue(ctx context.Context, key string) (string, bool, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_value", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var value string
	err = s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		err = nil
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, true, nil
}

// SetValue writes a key in the kv bucket, replacing any previous value.
func (s *Store) SetValue(ctx context.Context, key, value string) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("set_value", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// DeleteValue removes a key from the kv bucket. Unknown keys are a no-op.
func (s *Store) DeleteValue(ctx context.Context, key string) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("delete_value", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err = s.db.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key)
	return err
}

// recordQuery records storage operation metrics
func recordQuery(operation string, start time.Time, err error) {
	duration := time.Since(start).Seconds()
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.StoreQueryTotal.WithLabelValues(operation, status).Inc()
	metrics.StoreQueryDuration.WithLabelValues(operation).Observe(duration)
}

// checkDirWritable probes the storage directory for writability so that
// permission problems surface as a clear diagnostic at startup.
func checkDirWritable(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("cannot stat storage directory: %w", err)
	}
	logging.Debug("Storage directory: %s (mode: %v)", dir, info.Mode())

	testFile := filepath.Join(dir, ".perm-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		return fmt.Errorf("storage directory not writable: %w", err)
	}
	_ = os.Remove(testFile)
	return nil
}
