// Package notifications owns the in-memory notification feed, the popup
// rotation and the push channel feeding both.
package notifications

import (
	"context"
	"log/slog"
	"sync"

	"github.com/samber/lo"

	"blogdeck/internal/core"
)

// Store is the in-memory feed with its unread counter. Read/delete state
// flips locally only after the server confirmed the mutation.
type Store struct {
	Logger *slog.Logger
	Config *core.Config
	API    core.NotificationAPI

	mu     sync.Mutex
	items  []core.Notification
	unread int
}

func (s *Store) Init(_ context.Context) error {
	s.Logger = s.Logger.With("component", "notifications.Store")
	return nil
}

// Seed replaces the feed with the newest server page, the way the panel is
// filled right after login.
func (s *Store) Seed(ctx context.Context) error {
	page, err := s.API.ListNotifications(ctx, 0, s.Config.NotificationSeed)
	if err != nil {
		s.Logger.Error("seeding notification feed failed", "error", err)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = page.Content
	s.unread = lo.CountBy(s.items, core.Notification.Unread)
	return nil
}

// Push prepends a freshly arrived notification and bumps the unread
// counter. Callers pass normalized records only.
func (s *Store) Push(n core.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append([]core.Notification{n}, s.items...)
	s.unread++
}

func (s *Store) MarkAsRead(ctx context.Context, id int64) error {
	if err := s.API.MarkNotificationRead(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Status = core.NotificationRead
		}
	}
	s.unread = lo.CountBy(s.items, core.Notification.Unread)
	return nil
}

func (s *Store) MarkAllAsRead(ctx context.Context) error {
	if err := s.API.MarkAllNotificationsRead(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		s.items[i].Status = core.NotificationRead
	}
	s.unread = 0
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	if err := s.API.DeleteNotification(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = lo.Reject(s.items, func(n core.Notification, _ int) bool {
		return n.ID == id
	})
	s.unread = lo.CountBy(s.items, core.Notification.Unread)
	return nil
}

func (s *Store) Notifications() []core.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Notification, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.unread
}
