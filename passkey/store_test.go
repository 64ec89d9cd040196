package passkey

import (
	"errors"
	"testing"
)

// fakePersister is a test-only Persister backed by a map, with injectable
// errors.
type fakePersister struct {
	saved   map[string]string
	loadErr error
	saveErr error
}

func (f *fakePersister) Load() (map[string]string, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.saved, nil
}

func (f *fakePersister) Save(entries map[string]string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = entries
	return nil
}

func (f *fakePersister) Clear() error {
	f.saved = nil
	return nil
}

func TestStore_SetGetClear(t *testing.T) {
	store := New(nil, nil)

	store.Set("project-1", "p@ss")
	store.Set("project-2", "other")

	if got := store.Get("project-1"); got != "p@ss" {
		t.Errorf("Get(project-1) = %q, want %q", got, "p@ss")
	}
	if got := store.Get("missing"); got != "" {
		t.Errorf("Get(missing) = %q, want empty", got)
	}

	store.Clear("project-1")
	if got := store.Get("project-1"); got != "" {
		t.Errorf("Get after Clear = %q, want empty", got)
	}
	if store.Len() != 1 {
		t.Errorf("Len() = %d, want 1", store.Len())
	}
}

// Requirement: updates are last-writer-wins.
func TestStore_LastWriterWins(t *testing.T) {
	store := New(nil, nil)

	store.Set("project-1", "first")
	store.Set("project-1", "second")

	if got := store.Get("project-1"); got != "second" {
		t.Errorf("Get() = %q, want %q", got, "second")
	}
}

// Requirement: ClearAll wipes the store and the persisted copy (logout).
func TestStore_ClearAll(t *testing.T) {
	persister := &fakePersister{}
	store := New(persister, nil)

	store.Set("project-1", "p@ss")
	store.Set("project-2", "other")
	store.ClearAll()

	if store.Len() != 0 {
		t.Errorf("Len() = %d, want 0", store.Len())
	}
	if persister.saved != nil {
		t.Error("persisted entries should be cleared")
	}
}

// Requirement: entries survive a persister round trip (continuity across
// navigations).
func TestStore_PersisterRoundTrip(t *testing.T) {
	persister := &fakePersister{}

	first := New(persister, nil)
	first.Set("project-1", "p@ss")

	second := New(persister, nil)
	if got := second.Get("project-1"); got != "p@ss" {
		t.Errorf("Get() after reload = %q, want %q", got, "p@ss")
	}
}

// Requirement: persister failures are logged, never fatal.
func TestStore_PersisterFailuresAreSoft(t *testing.T) {
	persister := &fakePersister{
		loadErr: errors.New("cache unavailable"),
		saveErr: errors.New("cache unavailable"),
	}

	store := New(persister, nil)
	store.Set("project-1", "p@ss")

	if got := store.Get("project-1"); got != "p@ss" {
		t.Errorf("Get() = %q, want %q despite persister failure", got, "p@ss")
	}
}
