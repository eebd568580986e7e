package api

import (
	"context"
	"strconv"

	"blogdeck/internal/core"
)

const (
	commentsPath     = "/comments"
	postCommentsPath = "/comments/post/{id}/all"
	commentPath      = "/comments/{id}"
)

// ListComments fetches the full comment tree for a post in one call,
// replies nested one level.
func (c *Client) ListComments(ctx context.Context, postID int64) ([]core.Comment, error) {
	var comments []core.Comment

	res, err := c.r(ctx).
		SetPathParam("id", strconv.FormatInt(postID, 10)).
		SetResult(&comments).
		Get(postCommentsPath)
	if err := check(res, err); err != nil {
		return nil, err
	}

	if comments == nil {
		comments = []core.Comment{}
	}
	for i := range comments {
		comments[i].Normalize()
	}
	return comments, nil
}

func (c *Client) CreateComment(ctx context.Context, req core.CommentRequest) error {
	res, err := c.r(ctx).
		SetBody(req).
		Post(commentsPath)
	return check(res, err)
}

func (c *Client) DeleteComment(ctx context.Context, id int64) error {
	res, err := c.r(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete(commentPath)
	return check(res, err)
}
