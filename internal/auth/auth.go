// Package auth drives login, signup and logout against the backend and
// the session store.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"blogdeck/internal/api"
	"blogdeck/internal/session"
)

var (
	ErrMissingFields    = errors.New("username and password are required")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

type Authenticator struct {
	Logger *slog.Logger
	API    *api.Client
	Store  *session.Store
}

func (a *Authenticator) Init(_ context.Context) error {
	a.Logger = a.Logger.With("component", "auth.Authenticator")
	return nil
}

// Login exchanges credentials for a session and installs it in the store.
// Server failures carry the backend's message through verbatim.
func (a *Authenticator) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrMissingFields
	}

	sess, err := a.API.Login(ctx, api.Credentials{Username: username, Password: password})
	if err != nil {
		a.Logger.Warn("login failed", "username", username, "error", err)
		return err
	}

	a.Store.Set(sess)
	return nil
}

// Signup validates client-side before dispatching: required fields and a
// matching password confirmation.
func (a *Authenticator) Signup(ctx context.Context, username, email, password, confirm string) error {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return ErrMissingFields
	}
	if password != confirm {
		return ErrPasswordMismatch
	}

	return a.API.Signup(ctx, api.SignupRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
}

// Logout clears the session. Everything hooked to the store (the push
// channel included) observes the teardown.
func (a *Authenticator) Logout() {
	a.Store.Clear()
	a.Logger.Info("logged out")
}
