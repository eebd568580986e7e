package api

import (
	"context"
	"strconv"

	"blogdeck/internal/core"
)

const (
	notificationsPath   = "/notifications"
	notificationRead    = "/notifications/{id}/read"
	notificationReadAll = "/notifications/read-all"
	notificationPath    = "/notifications/{id}"
)

// ListNotifications returns the newest-first page used to seed the feed
// after login.
func (c *Client) ListNotifications(ctx context.Context, page, size int) (core.Page[core.Notification], error) {
	res, err := c.r(ctx).
		SetQueryParam("page", strconv.Itoa(page)).
		SetQueryParam("size", strconv.Itoa(size)).
		SetQueryParam("sortBy", "createdAt").
		SetQueryParam("sortDirection", "desc").
		SetResult(&core.Page[core.Notification]{}).
		Get(notificationsPath)
	if err := check(res, err); err != nil {
		return core.Page[core.Notification]{}, err
	}

	result := *res.Result().(*core.Page[core.Notification])
	valid := result.Content[:0]
	for i := range result.Content {
		if result.Content[i].Normalize() {
			valid = append(valid, result.Content[i])
		}
	}
	result.Content = valid
	if result.Content == nil {
		result.Content = []core.Notification{}
	}
	return result, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id int64) error {
	res, err := c.r(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Put(notificationRead)
	return check(res, err)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	res, err := c.r(ctx).
		Put(notificationReadAll)
	return check(res, err)
}

func (c *Client) DeleteNotification(ctx context.Context, id int64) error {
	res, err := c.r(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete(notificationPath)
	return check(res, err)
}
