// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package briefing

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/pdiddy/briefing-engine/pkg/types"
)

// Session holds the state owned by one user session: the last successful
// briefing. At most one run per session is in flight.
type Session struct {
	ID string

	running atomic.Bool

	mu      sync.RWMutex
	current *types.Briefing
}

// NewSession returns an empty session.
func NewSession(id string) *Session {
	return &Session{ID: id}
}

// Current returns the last successful briefing, or nil.
func (s *Session) Current() *types.Briefing {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Busy reports whether a run is in flight.
func (s *Session) Busy() bool {
	return s.running.Load()
}

// Generate runs r for this session. A call made while another is in flight
// fails with ErrRunInProgress. The stored briefing is replaced only by a
// complete, successful result; a failed run leaves it untouched.
func (s *Session) Generate(ctx context.Context, r Runner, req types.BriefingRequest, apiKey string) (*types.Briefing, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, ErrRunInProgress
	}
	defer s.running.Store(false)

	b, err := r.Run(ctx, req, apiKey)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.current = b
	s.mu.Unlock()
	return b, nil
}

// SessionStore keeps sessions in memory, keyed by ID. Sessions never share state.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore returns an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Get returns the session for id, creating it on first use.
func (st *SessionStore) Get(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if !ok {
		s = NewSession(id)
		st.sessions[id] = s
	}
	return s
}

// Lookup returns the session for id, or nil if none exists.
func (st *SessionStore) Lookup(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sessions[id]
}

// Delete forgets the session for id.
func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

// Len returns the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
