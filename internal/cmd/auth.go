package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"blogdeck/internal/auth"
	"blogdeck/internal/config"
	"blogdeck/internal/session"
)

var loginCmd = &cli.Command{
	Name:  "login",
	Usage: "Log in and print the session token for reuse with --token",
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c, pal.Provide(&loginRunner{}))
	},
}

type loginRunner struct {
	Logger *slog.Logger
	Config *config.Config
	Auth   *auth.Authenticator
	Store  *session.Store
}

func (l *loginRunner) Run(ctx context.Context) error {
	// bootstrap already logged in when credentials were given; this only
	// reports the outcome.
	sess, ok := l.Store.Current()
	if !ok {
		if err := l.Auth.Login(ctx, l.Config.Username, l.Config.Password); err != nil {
			return err
		}
		sess, _ = l.Store.Current()
	}

	fmt.Printf("logged in as %s (%s)\ntoken: %s\n", sess.Username, sess.Role, sess.Token)
	return nil
}

var signupCmd = &cli.Command{
	Name:  "signup",
	Usage: "Create an account",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "email", Usage: "Email address", Required: true},
		&cli.StringFlag{Name: "confirm", Usage: "Password confirmation"},
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&signupRunner{
				Email:   c.String("email"),
				Confirm: c.String("confirm"),
			}),
		)
	},
}

type signupRunner struct {
	Logger *slog.Logger
	Config *config.Config
	Auth   *auth.Authenticator

	Email   string
	Confirm string
}

func (s *signupRunner) Run(ctx context.Context) error {
	confirm := s.Confirm
	if confirm == "" {
		confirm = s.Config.Password
	}

	err := s.Auth.Signup(ctx, s.Config.Username, s.Email, s.Config.Password, confirm)
	if err != nil {
		return err
	}

	fmt.Printf("account %s created, log in with blogdeck login\n", s.Config.Username)
	return nil
}
