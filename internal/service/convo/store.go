package convo

import (
	"sort"
	"sync"
	"time"

	"github.com/servicezone/concierge/internal/model/convo"
)

// Store keeps one mutable session per user key for the process lifetime.
// Sessions are created on first contact and never expire; an explicit
// Delete is the only way to drop one.
//
// Each key owns its own lock so the read-modify-write of a session is
// atomic per user while unrelated users proceed in parallel.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

type entry struct {
	mu      sync.Mutex
	session convo.Session
}

// NewStore bootstraps the in-memory session store.
func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// With runs fn with exclusive access to the session for key, creating a
// default session on first contact. Mutations made by fn are retained.
// fn must not block on external calls; take a snapshot and do slow work
// after With returns.
func (s *Store) With(key string, fn func(sess *convo.Session)) {
	e := s.entry(key)

	e.mu.Lock()
	defer e.mu.Unlock()
	fn(&e.session)
	e.session.UpdatedAt = time.Now().UTC()
}

// Get returns a snapshot of the session for key.
func (s *Store) Get(key string) (convo.Session, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return convo.Session{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session, true
}

// List returns snapshots of all sessions ordered by user key.
func (s *Store) List() []convo.Session {
	s.mu.RLock()
	entries := make([]*entry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	sessions := make([]convo.Session, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		sessions = append(sessions, e.session)
		e.mu.Unlock()
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UserKey < sessions[j].UserKey
	})
	return sessions
}

// Delete removes the session for key, reporting whether one existed.
func (s *Store) Delete(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; !ok {
		return false
	}
	delete(s.entries, key)
	return true
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) entry(key string) *entry {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		return e
	}
	e = &entry{session: newSession(key)}
	s.entries[key] = e
	return e
}

func newSession(key string) convo.Session {
	now := time.Now().UTC()
	return convo.Session{
		UserKey:   key,
		Stage:     convo.StageWaitingService,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
