// Package passkey holds the client-side mapping from project to passphrase.
// Passphrases never reach the server; the store only exists so field
// encryption can look them up between navigations.
package passkey

import (
	"log/slog"
	"sync"
)

// Persister is the ephemeral continuity layer behind the store, the
// equivalent of a browser session cache. Entries written through it outlive
// a navigation but not an explicit clear or logout.
type Persister interface {
	Load() (map[string]string, error)
	Save(entries map[string]string) error
	Clear() error
}

// Store maps projectID to passphrase. Updates are last-writer-wins and every
// mutation is synced to the persister immediately; a failed sync is logged
// and never fatal.
type Store struct {
	mu        sync.RWMutex
	entries   map[string]string
	persister Persister // optional
	logger    *slog.Logger
}

// New builds a store, seeding it from persister when one is given.
func New(persister Persister, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	entries := make(map[string]string)
	if persister != nil {
		loaded, err := persister.Load()
		if err != nil {
			logger.Warn("failed to load passkeys from session cache", "error", err)
		} else {
			for k, v := range loaded {
				entries[k] = v
			}
		}
	}

	return &Store{
		entries:   entries,
		persister: persister,
		logger:    logger,
	}
}

// Set remembers the passphrase for a project.
func (s *Store) Set(projectID, passphrase string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[projectID] = passphrase
	s.sync()
}

// Get returns the passphrase for a project, or the empty string when the
// user has not entered one this session.
func (s *Store) Get(projectID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[projectID]
}

// Clear forgets one project's passphrase.
func (s *Store) Clear(projectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, projectID)
	s.sync()
}

// ClearAll forgets everything. Invoked at logout.
func (s *Store) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]string)
	if s.persister != nil {
		if err := s.persister.Clear(); err != nil {
			s.logger.Warn("failed to clear passkeys from session cache", "error", err)
		}
	}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// sync pushes a snapshot to the persister. Callers hold the write lock.
func (s *Store) sync() {
	if s.persister == nil {
		return
	}
	snapshot := make(map[string]string, len(s.entries))
	for k, v := range s.entries {
		snapshot[k] = v
	}
	if err := s.persister.Save(snapshot); err != nil {
		s.logger.Warn("failed to save passkeys to session cache", "error", err)
	}
}
