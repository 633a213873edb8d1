package project

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// memKV is an in-memory stand-in for the sqlite kv bucket.
type memKV struct {
	mu     sync.Mutex
	data   map[string]string
	writes int
	fail   bool
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string]string)}
}

func (m *memKV) GetValue(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return "", false, errors.New("storage unavailable")
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) SetValue(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("storage unavailable")
	}
	m.writes++
	m.data[key] = value
	return nil
}

func TestSaveListRoundTrip(t *testing.T) {
	kv := newMemKV()
	s := NewStore(kv)
	ctx := context.Background()

	p := New("Holiday Cut")
	before := p.UpdatedAt
	time.Sleep(2 * time.Millisecond)

	if err := s.Save(ctx, "alice", p); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	projects := s.List(ctx, "alice")
	if len(projects) != 1 {
		t.Fatalf("List() returned %d projects, want 1", len(projects))
	}
	got := projects[0]
	if got.ID != p.ID || got.Name != p.Name {
		t.Errorf("round-trip mismatch: got %s/%s", got.ID, got.Name)
	}
	if !got.UpdatedAt.After(before) {
		t.Errorf("UpdatedAt not advanced: %v -> %v", before, got.UpdatedAt)
	}
	if !got.CreatedAt.Equal(p.CreatedAt) {
		t.Errorf("CreatedAt changed on save: %v -> %v", p.CreatedAt, got.CreatedAt)
	}
}

func TestSaveUpsertOrdering(t *testing.T) {
	s := NewStore(newMemKV())
	ctx := context.Background()

	p1, p2, p3 := New("one"), New("two"), New("three")
	for _, p := range []*Project{p1, p2, p3} {
		if err := s.Save(ctx, "alice", p); err != nil {
			t.Fatalf("Save() error: %v", err)
		}
	}

	// New ids are prepended: latest save first.
	ids := func() []string {
		var out []string
		for _, p := range s.List(ctx, "alice") {
			out = append(out, p.ID)
		}
		return out
	}
	want := []string{p3.ID, p2.ID, p1.ID}
	for i, id := range ids() {
		if id != want[i] {
			t.Fatalf("order after inserts = %v, want %v", ids(), want)
		}
	}

	// Re-saving an existing id replaces in place without reordering.
	p2.Name = "two edited"
	if err := s.Save(ctx, "alice", p2); err != nil {
		t.Fatalf("Save() upsert error: %v", err)
	}
	got := s.List(ctx, "alice")
	if got[1].ID != p2.ID || got[1].Name != "two edited" {
		t.Errorf("in-place replace failed: position 1 is %s/%s", got[1].ID, got[1].Name)
	}
}

func TestListEmptyAndCorrupt(t *testing.T) {
	kv := newMemKV()
	s := NewStore(kv)
	ctx := context.Background()

	if got := s.List(ctx, "nobody"); len(got) != 0 {
		t.Errorf("List(empty scope) returned %d projects", len(got))
	}

	// Corrupt stored content is absorbed into an empty result.
	kv.data["projects:alice"] = "{not json"
	if got := s.List(ctx, "alice"); len(got) != 0 {
		t.Errorf("List(corrupt) returned %d projects, want 0", len(got))
	}

	// Read failures likewise.
	kv.fail = true
	if got := s.List(ctx, "alice"); len(got) != 0 {
		t.Errorf("List(failing storage) returned %d projects, want 0", len(got))
	}
}

func TestDelete(t *testing.T) {
	s := NewStore(newMemKV())
	ctx := context.Background()

	p := New("doomed")
	if err := s.Save(ctx, "alice", p); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if err := s.Delete(ctx, "alice", p.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if got := s.List(ctx, "alice"); len(got) != 0 {
		t.Errorf("List() after delete returned %d projects", len(got))
	}

	// Unknown id is a no-op.
	if err := s.Delete(ctx, "alice", "missing-id"); err != nil {
		t.Errorf("Delete(unknown) error = %v, want nil", err)
	}
}

func TestDuplicate(t *testing.T) {
	s := NewStore(newMemKV())
	ctx := context.Background()

	p := New("Reel")
	p.Timeline = []TimelineClip{{ID: "c1", MediaID: "m1", StartTime: 0, EndTime: 5}}
	if err := s.Save(ctx, "alice", p); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	dup, err := s.Duplicate(ctx, "alice", p.ID)
	if err != nil {
		t.Fatalf("Duplicate() error: %v", err)
	}
	if dup.ID == p.ID {
		t.Error("duplicate kept the original id")
	}
	if dup.Name != "Reel (Copy)" {
		t.Errorf("duplicate name = %q, want %q", dup.Name, "Reel (Copy)")
	}
	if len(dup.Timeline) != 1 || dup.Timeline[0].ID != "c1" {
		t.Error("duplicate lost timeline content")
	}

	projects := s.List(ctx, "alice")
	if len(projects) != 2 {
		t.Fatalf("List() after duplicate returned %d projects, want 2", len(projects))
	}
}

func TestDuplicateMissingIDWritesNothing(t *testing.T) {
	kv := newMemKV()
	s := NewStore(kv)

	_, err := s.Duplicate(context.Background(), "alice", "missing-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Duplicate(missing) error = %v, want ErrNotFound", err)
	}
	if kv.writes != 0 {
		t.Errorf("Duplicate(missing) wrote to storage %d times, want 0", kv.writes)
	}
}

func TestScopeIsolation(t *testing.T) {
	s := NewStore(newMemKV())
	ctx := context.Background()

	pa, pb := New("alice's"), New("bob's")
	if err := s.Save(ctx, "alice", pa); err != nil {
		t.Fatalf("Save(alice) error: %v", err)
	}
	if err := s.Save(ctx, "bob", pb); err != nil {
		t.Fatalf("Save(bob) error: %v", err)
	}

	for _, p := range s.List(ctx, "alice") {
		if p.ID == pb.ID {
			t.Error("bob's project visible in alice's scope")
		}
	}
	for _, p := range s.List(ctx, "bob") {
		if p.ID == pa.ID {
			t.Error("alice's project visible in bob's scope")
		}
	}
}

func TestSaveNormalizesTimeline(t *testing.T) {
	s := NewStore(newMemKV())
	ctx := context.Background()

	p := New("P")
	p.Timeline = []TimelineClip{
		{ID: "b", Order: 5},
		{ID: "a", Order: 2},
	}
	if err := s.Save(ctx, "alice", p); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got := s.List(ctx, "alice")[0]
	if got.Timeline[0].ID != "a" || got.Timeline[0].Order != 0 ||
		got.Timeline[1].ID != "b" || got.Timeline[1].Order != 1 {
		t.Errorf("timeline not contiguous after save: %+v", got.Timeline)
	}
}

func TestScopeCache(t *testing.T) {
	s := NewStore(newMemKV())

	if got := s.CurrentScope(); got != DefaultScope {
		t.Errorf("CurrentScope() with no identity = %q, want %q", got, DefaultScope)
	}

	s.SetIdentity("alice")
	if got := s.CurrentScope(); got != "alice" {
		t.Errorf("CurrentScope() = %q, want alice", got)
	}
}

func TestGet(t *testing.T) {
	s := NewStore(newMemKV())
	ctx := context.Background()

	p := New("Reel")
	if err := s.Save(ctx, "alice", p); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := s.Get(ctx, "alice", p.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("Get() returned %s, want %s", got.ID, p.ID)
	}

	if _, err := s.Get(ctx, "alice", "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}
