// Package session holds the authenticated identity for the lifetime of the
// process. Nothing here ever touches disk.
package session

import (
	"context"
	"log/slog"
	"sync"

	"blogdeck/internal/core"
)

type Store struct {
	Logger *slog.Logger

	mu      sync.RWMutex
	session *core.Session
	onClear []func()
}

func (s *Store) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "session.Store")
	return nil
}

func (s *Store) Current() (core.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return core.Session{}, false
	}
	return *s.session, true
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return ""
	}
	return s.session.Token
}

func (s *Store) Set(sess core.Session) {
	s.mu.Lock()
	s.session = &sess
	s.mu.Unlock()

	s.Logger.Info("session established", "username", sess.Username, "role", sess.Role)
}

// Clear drops the identity and runs the registered hooks, in order. Hooks
// fire once per clear, even when no session was present, so a 401 on an
// anonymous request still triggers the login redirect.
func (s *Store) Clear() {
	s.mu.Lock()
	s.session = nil
	hooks := make([]func(), len(s.onClear))
	copy(hooks, s.onClear)
	s.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
}

// OnClear registers a hook invoked after every Clear. The notification
// channel uses it to stop reconnecting, the CLI to route to login.
func (s *Store) OnClear(hook func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.onClear = append(s.onClear, hook)
}
