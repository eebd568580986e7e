package session_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"blogdeck/internal/core"
	"blogdeck/internal/session"
)

func newStore(t *testing.T) *session.Store {
	t.Helper()

	s := &session.Store{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	require.NoError(t, s.Init(t.Context()))
	return s
}

func TestStore_Lifecycle(t *testing.T) {
	t.Parallel()

	s := newStore(t)

	_, ok := s.Current()
	require.False(t, ok)
	require.Empty(t, s.Token())

	s.Set(core.Session{UserID: 1, Username: "lee", Role: core.RoleUser, Token: "tok"})

	sess, ok := s.Current()
	require.True(t, ok)
	require.Equal(t, "lee", sess.Username)
	require.Equal(t, "tok", s.Token())

	s.Clear()

	_, ok = s.Current()
	require.False(t, ok)
	require.Empty(t, s.Token())
}

func TestStore_OnClear(t *testing.T) {
	t.Parallel()

	s := newStore(t)

	var order []string
	s.OnClear(func() { order = append(order, "first") })
	s.OnClear(func() { order = append(order, "second") })

	s.Set(core.Session{UserID: 1, Token: "tok"})
	require.Empty(t, order)

	s.Clear()
	require.Equal(t, []string{"first", "second"}, order)

	// Hooks fire on every clear, session or not.
	s.Clear()
	require.Equal(t, []string{"first", "second", "first", "second"}, order)
}
