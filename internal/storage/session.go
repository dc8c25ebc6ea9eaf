// Package storage keeps process-local state: cached facts and chat sessions.
package storage

import (
	"context"
	"sync"
	"time"

	"github.com/aliskhannn/euroexplorer-bot/internal/state"
)

// Session is the live state of one chat.
// Callers must hold Lock while reading or replacing State.
type Session struct {
	sync.Mutex

	ChatID   int64
	UserID   int64
	State    state.State
	LastSeen time.Time

	cancels map[string]context.CancelFunc
}

// SetCancel registers the cancel func of the in-flight request of a kind,
// cancelling the one it replaces.
func (s *Session) SetCancel(kind string, cancel context.CancelFunc) {
	if prev, ok := s.cancels[kind]; ok {
		prev()
	}
	if cancel == nil {
		delete(s.cancels, kind)
		return
	}
	s.cancels[kind] = cancel
}

// Cancel aborts the in-flight request of a kind.
func (s *Session) Cancel(kind string) {
	s.SetCancel(kind, nil)
}

func (s *Session) cancelAll() {
	for kind, cancel := range s.cancels {
		cancel()
		delete(s.cancels, kind)
	}
}

// SessionStore provides in-memory storage for chat sessions by chat ID.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]*Session
	now      func() time.Time
}

// NewSessionStore creates a new SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[int64]*Session),
		now:      time.Now,
	}
}

// Get returns the session of a chat, creating it on first use.
func (s *SessionStore) Get(chatID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		sess = &Session{
			ChatID:  chatID,
			State:   state.New(),
			cancels: make(map[string]context.CancelFunc),
		}
		s.sessions[chatID] = sess
	}
	sess.LastSeen = s.now()

	return sess
}

// Peek returns the session of a chat without creating or touching it.
func (s *SessionStore) Peek(chatID int64) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	return sess, ok
}

// Sweep removes sessions idle for longer than ttl and returns how many were removed.
// In-flight requests of removed sessions are cancelled.
func (s *SessionStore) Sweep(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	var idle []*Session
	for id, sess := range s.sessions {
		if sess.LastSeen.Before(cutoff) {
			idle = append(idle, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range idle {
		sess.Lock()
		sess.cancelAll()
		sess.Unlock()
	}

	return len(idle)
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
