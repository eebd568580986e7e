// Package cmd wires the CLI commands to the component tree.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"blogdeck/internal/api"
	"blogdeck/internal/auth"
	"blogdeck/internal/cmd/flags"
	"blogdeck/internal/config"
	"blogdeck/internal/core"
	"blogdeck/internal/session"
	"blogdeck/pkg/clicfg"
)

const VERSION = "0.1.0"

var cmd = &cli.Command{
	Name:    "blogdeck",
	Usage:   "Headless client for the Lcones blog API",
	Version: VERSION,
	Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
		if err := initLogger(c.String("log-level")); err != nil {
			return ctx, err
		}
		return ctx, nil
	},
	Flags: []cli.Flag{
		flags.LogLevel,
		flags.APIURL,
		flags.WSURL,
		flags.Username,
		flags.Password,
		flags.Token,
	},
	Commands: []*cli.Command{
		browseCmd,
		readCmd,
		publishCmd,
		categoriesCmd,
		notificationsCmd,
		watchCmd,
		loginCmd,
		signupCmd,
	},
}

func Run() {
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, c *cli.Command, services ...pal.ServiceDef) error {
	cfg := config.Config{}
	if err := clicfg.ParseFlags(c, &cfg); err != nil {
		return err
	}

	services = append(services,
		pal.Provide(&cfg),
		pal.Provide(&core.Config{}),
		pal.Provide(&session.Store{}),
		pal.Provide(&api.Client{}),
		pal.Provide(&auth.Authenticator{}),
		pal.Provide(&bootstrap{}),
	)

	return pal.New(services...).
		InjectSlog().
		InitTimeout(10*time.Second).
		HealthCheckTimeout(1*time.Second).
		ShutdownTimeout(10*time.Second).
		Run(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// bootstrap establishes the session before any command runs: either a
// reused bearer token or a fresh login when credentials were given.
type bootstrap struct {
	Logger *slog.Logger
	Config *config.Config
	Store  *session.Store
	Auth   *auth.Authenticator
}

func (b *bootstrap) Init(ctx context.Context) error {
	switch {
	case b.Config.Token != "":
		b.Store.Set(core.Session{Token: b.Config.Token})
	case b.Config.Username != "":
		// Not fatal here: commands that need a session report
		// ErrNoSession themselves, signup must be able to proceed.
		if err := b.Auth.Login(ctx, b.Config.Username, b.Config.Password); err != nil {
			b.Logger.Warn("startup login failed", "error", err)
		}
	}
	return nil
}
