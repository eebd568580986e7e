package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/k0kubun/pp"
	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"blogdeck/internal/api"
	"blogdeck/internal/cmd/flags"
	"blogdeck/internal/config"
	"blogdeck/internal/core"
	"blogdeck/internal/metrics"
	"blogdeck/internal/notifications"
	"blogdeck/internal/session"
)

var watchCmd = &cli.Command{
	Name:  "watch",
	Usage: "Stay connected to the push channel and render notifications as they arrive",
	Flags: []cli.Flag{
		flags.MetricsAddr,
		flags.Debug,
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&metrics.Server{Addr: c.String("metrics-addr")}),
			pal.Provide(&watcher{}),
		)
	},
}

type watcher struct {
	Logger *slog.Logger
	Config *core.Config
	Flags  *config.Config
	Store  *session.Store
	API    *api.Client

	feed    *notifications.Store
	popups  *notifications.Popups
	channel *notifications.Channel
}

func (w *watcher) Init(ctx context.Context) error {
	w.feed = &notifications.Store{Logger: w.Logger, Config: w.Config, API: w.API}
	w.popups = &notifications.Popups{Logger: w.Logger, Config: w.Config, OnChange: w.render}
	w.channel = &notifications.Channel{
		Logger: w.Logger,
		Config: w.Config,
		Store:  w.Store,
		Feed:   w.feed,
		Popups: w.popups,
	}

	if err := w.feed.Init(ctx); err != nil {
		return err
	}
	if err := w.popups.Init(ctx); err != nil {
		return err
	}
	return w.channel.Init(ctx)
}

func (w *watcher) Shutdown(ctx context.Context) error {
	if err := w.popups.Shutdown(ctx); err != nil {
		return err
	}
	return w.channel.Shutdown(ctx)
}

func (w *watcher) Run(ctx context.Context) error {
	if _, ok := w.Store.Current(); !ok {
		return core.ErrNoSession
	}

	// Seed the panel the way the UI does right after login. Not fatal:
	// the push channel still delivers everything new.
	if err := w.feed.Seed(ctx); err == nil {
		fmt.Printf("%d notifications, %d unread\n",
			len(w.feed.Notifications()), w.feed.UnreadCount())
	}

	return w.channel.Run(ctx)
}

// render reprints the popup window whenever it rotates.
func (w *watcher) render(popups []notifications.Popup) {
	for _, popup := range popups {
		n := popup.Notification
		fmt.Printf("[%s] %s (%s)\n", n.Type, n.Content, timeAgo(n.CreatedAt))

		if w.Flags.Debug {
			pp.Println(n)
		}
	}
	fmt.Printf("-- %d unread --\n", w.feed.UnreadCount())
}
