// Package api is the one HTTP client for the blog backend. Every request
// goes out with the bearer token from the session store, every 401 clears
// the session, whatever operation triggered it.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"resty.dev/v3"

	"blogdeck/internal/core"
	"blogdeck/internal/session"
)

type Client struct {
	Logger *slog.Logger
	Config *core.Config
	Store  *session.Store

	client *resty.Client
}

func (c *Client) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "api.Client")

	c.client = resty.NewWithTransportSettings(&resty.TransportSettings{
		DialerTimeout:         5 * time.Second,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
	})
	c.client.SetBaseURL(c.Config.APIURL)
	c.client.SetHeader("Content-Type", "application/json")

	c.client.AddRequestMiddleware(func(_ *resty.Client, req *resty.Request) error {
		if token := c.Store.Token(); token != "" {
			req.SetAuthToken(token)
		}
		return nil
	})

	c.client.AddResponseMiddleware(func(_ *resty.Client, res *resty.Response) error {
		if res.StatusCode() == 401 {
			c.Logger.Warn("unauthorized response, clearing session",
				"path", res.Request.URL)
			c.Store.Clear()
		}
		return nil
	})

	return nil
}

func (c *Client) Shutdown(_ context.Context) error {
	return c.client.Close()
}

func (c *Client) r(ctx context.Context) *resty.Request {
	return c.client.R().WithContext(ctx)
}

// check collapses the transport error and the response status into the
// error taxonomy: 401 and 404 map to sentinels, anything else non-2xx
// becomes a StatusError carrying the server's message verbatim.
func check(res *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if !res.IsError() {
		return nil
	}

	switch res.StatusCode() {
	case 401:
		return core.ErrUnauthorized
	case 404:
		return core.ErrNotFound
	}

	var body struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(res.Bytes(), &body)

	return &core.StatusError{Code: res.StatusCode(), Message: body.Message}
}
