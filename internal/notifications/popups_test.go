package notifications_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"blogdeck/internal/core"
	"blogdeck/internal/notifications"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newPopups(t *testing.T, ttl time.Duration) *notifications.Popups {
	t.Helper()

	p := &notifications.Popups{
		Logger: discardLogger(),
		Config: &core.Config{PopupLimit: 3, PopupTTL: ttl},
	}
	require.NoError(t, p.Init(t.Context()))
	t.Cleanup(func() {
		require.NoError(t, p.Shutdown(context.Background()))
	})
	return p
}

func notification(id int64) core.Notification {
	return core.Notification{
		ID:      id,
		Type:    core.NotificationComment,
		Content: "something happened",
		Status:  core.NotificationUnread,
	}
}

func shownIDs(p *notifications.Popups) []int64 {
	return lo.Map(p.Active(), func(popup notifications.Popup, _ int) int64 {
		return popup.Notification.ID
	})
}

func TestPopups_FIFOEviction(t *testing.T) {
	t.Parallel()

	p := newPopups(t, time.Minute)

	for id := int64(1); id <= 3; id++ {
		p.Show(notification(id))
	}
	require.Equal(t, []int64{1, 2, 3}, shownIDs(p))

	// The fourth concurrent popup pushes out the oldest.
	p.Show(notification(4))
	require.Equal(t, []int64{2, 3, 4}, shownIDs(p))

	p.Show(notification(5))
	require.Equal(t, []int64{3, 4, 5}, shownIDs(p))
}

func TestPopups_AutoDismiss(t *testing.T) {
	t.Parallel()

	p := newPopups(t, 20*time.Millisecond)

	p.Show(notification(1))
	require.Len(t, p.Active(), 1)

	require.Eventually(t, func() bool {
		return len(p.Active()) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestPopups_ManualDismiss(t *testing.T) {
	t.Parallel()

	p := newPopups(t, time.Minute)

	p.Show(notification(1))
	p.Show(notification(2))

	active := p.Active()
	require.Len(t, active, 2)

	p.Dismiss(active[0].ID)
	require.Equal(t, []int64{2}, shownIDs(p))

	// Dismissing twice is a no-op.
	p.Dismiss(active[0].ID)
	require.Equal(t, []int64{2}, shownIDs(p))
}

func TestPopups_OnChange(t *testing.T) {
	t.Parallel()

	var changes [][]notifications.Popup

	p := newPopups(t, time.Minute)
	p.OnChange = func(popups []notifications.Popup) {
		changes = append(changes, popups)
	}

	p.Show(notification(1))

	require.Len(t, changes, 1)
	require.Len(t, changes[0], 1)
	require.Equal(t, int64(1), changes[0][0].Notification.ID)
}

func TestPopups_OnChangeDeliversInOrder(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var sizes []int

	p := newPopups(t, time.Minute)
	p.OnChange = func(popups []notifications.Popup) {
		mu.Lock()
		sizes = append(sizes, len(popups))
		mu.Unlock()
	}

	var wg sync.WaitGroup
	for id := int64(1); id <= 4; id++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Show(notification(id))
		}()
	}
	wg.Wait()

	// Four rotations, each snapshot at least as large as the one before
	// it until the cap, never shrinking back below it. A renderer acting
	// on these in order can never regress to an older window.
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, sizes, 4)
	require.Equal(t, []int{1, 2, 3, 3}, sizes)
}
