package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"blogdeck/internal/api"
	"blogdeck/internal/core"
	"blogdeck/internal/notifications"
	"blogdeck/internal/session"
)

var notificationsCmd = &cli.Command{
	Name:  "notifications",
	Usage: "List notifications, mark them read or delete them",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "mark-read",
			Usage: "Notification id to mark as read",
		},
		&cli.BoolFlag{
			Name:  "mark-all-read",
			Usage: "Mark every notification as read",
		},
		&cli.IntFlag{
			Name:  "delete",
			Usage: "Notification id to delete",
		},
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&notificationManager{
				MarkRead:    c.Int("mark-read"),
				MarkAllRead: c.Bool("mark-all-read"),
				Delete:      c.Int("delete"),
			}),
		)
	},
}

type notificationManager struct {
	Logger *slog.Logger
	Config *core.Config
	Store  *session.Store
	API    *api.Client

	MarkRead    int64
	MarkAllRead bool
	Delete      int64

	feed *notifications.Store
}

func (m *notificationManager) Init(ctx context.Context) error {
	m.feed = &notifications.Store{Logger: m.Logger, Config: m.Config, API: m.API}
	return m.feed.Init(ctx)
}

func (m *notificationManager) Run(ctx context.Context) error {
	if _, ok := m.Store.Current(); !ok {
		return core.ErrNoSession
	}

	if err := m.feed.Seed(ctx); err != nil {
		return err
	}

	switch {
	case m.MarkAllRead:
		if err := m.feed.MarkAllAsRead(ctx); err != nil {
			return err
		}
	case m.MarkRead != 0:
		if err := m.feed.MarkAsRead(ctx, m.MarkRead); err != nil {
			return err
		}
	case m.Delete != 0:
		if err := m.feed.Delete(ctx, m.Delete); err != nil {
			return err
		}
	}

	items := m.feed.Notifications()
	for _, n := range items {
		marker := " "
		if n.Unread() {
			marker = "*"
		}
		fmt.Printf("%s [%d] %-11s %s (%s)\n",
			marker, n.ID, n.Type, truncate(n.Content, 120), timeAgo(n.CreatedAt))
	}
	fmt.Printf("\n%d notifications, %d unread\n", len(items), m.feed.UnreadCount())
	return nil
}
