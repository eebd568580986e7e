package api

import (
	"context"

	"blogdeck/internal/core"
)

const (
	loginPath  = "/auth/login"
	signupPath = "/auth/signup"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session. Storing it is the caller's
// job, see internal/auth.
func (c *Client) Login(ctx context.Context, creds Credentials) (core.Session, error) {
	res, err := c.r(ctx).
		SetBody(creds).
		SetResult(&core.Session{}).
		Post(loginPath)
	if err := check(res, err); err != nil {
		return core.Session{}, err
	}

	return *res.Result().(*core.Session), nil
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	res, err := c.r(ctx).
		SetBody(req).
		Post(signupPath)
	return check(res, err)
}
