package project

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"media-studio/internal/logging"
	"media-studio/internal/metrics"
)

// keyPrefix combines with a scope to form the storage key of that scope's
// project list.
const keyPrefix = "projects:"

// DefaultScope is the shared unscoped bucket used when no caller identity
// is available.
const DefaultScope = "local"

// ErrNotFound is returned when an operation names a project id absent from
// the scope's list.
var ErrNotFound = errors.New("project: not found")

// KV is the slice of local storage the project store needs.
type KV interface {
	GetValue(ctx context.Context, key string) (string, bool, error)
	SetValue(ctx context.Context, key, value string) error
}

// Store persists project lists per scope in local key-value storage. Each
// scope owns one key holding a JSON array of projects; reads and writes
// replace the whole list, so concurrent saves for the same scope are
// last-write-wins — acceptable for single-device local state.
type Store struct {
	kv KV

	// identity cache: lets rendering code that cannot block resolve the
	// current scope synchronously. A convenience, not a security boundary.
	identityMu sync.RWMutex
	identity   string
}

// NewStore creates a project store over the given key-value storage.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// SetIdentity caches the caller's identity for synchronous scope lookups.
func (s *Store) SetIdentity(identity string) {
	s.identityMu.Lock()
	s.identity = identity
	s.identityMu.Unlock()
}

// CurrentScope returns the cached identity, or DefaultScope when none has
// been set.
func (s *Store) CurrentScope() string {
	s.identityMu.RLock()
	defer s.identityMu.RUnlock()
	if s.identity == "" {
		return DefaultScope
	}
	return s.identity
}

func scopeKey(scope string) string {
	if scope == "" {
		scope = DefaultScope
	}
	return keyPrefix + scope
}

// List returns every project stored for a scope. A missing key or a list
// that fails to parse yields an empty result, never an error — the failure
// is absorbed and logged.
func (s *Store) List(ctx context.Context, scope string) []Project {
	value, ok, err := s.kv.GetValue(ctx, scopeKey(scope))
	if err != nil {
		metrics.ProjectOpsTotal.WithLabelValues("list", "error").Inc()
		logging.Warn("Failed to read project list for scope %s: %v", scope, err)
		return []Project{}
	}
	if !ok {
		metrics.ProjectOpsTotal.WithLabelValues("list", "success").Inc()
		return []Project{}
	}

	var projects []Project
	if err := json.Unmarshal([]byte(value), &projects); err != nil {
		metrics.ProjectOpsTotal.WithLabelValues("list", "error").Inc()
		logging.Warn("Corrupt project list for scope %s, returning empty: %v", scope, err)
		return []Project{}
	}
	metrics.ProjectOpsTotal.WithLabelValues("list", "success").Inc()
	return projects
}

// Get returns one project by id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, scope, id string) (*Project, error) {
	for _, p := range s.List(ctx, scope) {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

// Save upserts a project into the scope's list. An existing id is replaced
// in place, preserving the relative order of untouched entries; a new id is
// prepended. UpdatedAt is refreshed and the timeline normalized before the
// list is written back.
func (s *Store) Save(ctx context.Context, scope string, p *Project) error {
	p.NormalizeTimeline()
	p.UpdatedAt = time.Now().UTC()

	projects := s.List(ctx, scope)

	replaced := false
	for i := range projects {
		if projects[i].ID == p.ID {
			projects[i] = *p
			replaced = true
			break
		}
	}
	if !replaced {
		projects = append([]Project{*p}, projects...)
	}

	if err := s.writeList(ctx, scope, projects); err != nil {
		metrics.ProjectOpsTotal.WithLabelValues("save", "error").Inc()
		return err
	}
	metrics.ProjectOpsTotal.WithLabelValues("save", "success").Inc()
	return nil
}

// Delete removes a project by id. Deleting an unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, scope, id string) error {
	projects := s.List(ctx, scope)

	kept := projects[:0]
	for _, p := range projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	if len(kept) == len(projects) {
		metrics.ProjectOpsTotal.WithLabelValues("delete", "success").Inc()
		return nil
	}

	if err := s.writeList(ctx, scope, kept); err != nil {
		metrics.ProjectOpsTotal.WithLabelValues("delete", "error").Inc()
		return err
	}
	metrics.ProjectOpsTotal.WithLabelValues("delete", "success").Inc()
	return nil
}

// Duplicate deep-copies the named project under a new id with fresh
// timestamps and a " (Copy)" name suffix, saves it and returns it. Returns
// ErrNotFound — and writes nothing — when the source id is absent.
func (s *Store) Duplicate(ctx context.Context, scope, id string) (*Project, error) {
	original, err := s.Get(ctx, scope, id)
	if err != nil {
		metrics.ProjectOpsTotal.WithLabelValues("duplicate", "not_found").Inc()
		return nil, err
	}

	dup := original.Clone()
	dup.Name = original.Name + " (Copy)"

	if err := s.Save(ctx, scope, dup); err != nil {
		metrics.ProjectOpsTotal.WithLabelValues("duplicate", "error").Inc()
		return nil, err
	}
	metrics.ProjectOpsTotal.WithLabelValues("duplicate", "success").Inc()
	return dup, nil
}

func (s *Store) writeList(ctx context.Context, scope string, projects []Project) error {
	data, err := json.Marshal(projects)
	if err != nil {
		return fmt.Errorf("failed to encode project list: %w", err)
	}
	if err := s.kv.SetValue(ctx, scopeKey(scope), string(data)); err != nil {
		return fmt.Errorf("failed to write project list for scope %s: %w", scope, err)
	}
	return nil
}
