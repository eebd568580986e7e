package api

import (
	"context"
	"strconv"
	"strings"

	"blogdeck/internal/core"
)

const (
	postsPath    = "/posts"
	searchPath   = "/posts/search"
	postPath     = "/posts/{id}"
	reactionPath = "/posts/{id}/reaction"
)

// PostRequest is the body for creating or updating a post. Ownership and
// admin checks stay server-side.
type PostRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	CategoryID *int64   `json:"categoryId,omitempty"`
	TagNames   []string `json:"tagNames,omitempty"`
}

func (c *Client) ListPosts(ctx context.Context, q core.PostQuery) (core.Page[core.Post], error) {
	req := c.r(ctx).
		SetQueryParam("page", strconv.Itoa(q.Page)).
		SetQueryParam("size", strconv.Itoa(q.Size)).
		SetQueryParam("sortBy", q.SortBy).
		SetQueryParam("sortDirection", q.SortDirection).
		SetResult(&core.Page[core.Post]{})

	// Omitted entirely for the "all" selection.
	if len(q.Categories) > 0 {
		req.SetQueryParam("categories", strings.Join(q.Categories, ","))
	}

	res, err := req.Get(postsPath)
	if err := check(res, err); err != nil {
		return core.Page[core.Post]{}, err
	}

	page := *res.Result().(*core.Page[core.Post])
	normalizePage(&page)
	return page, nil
}

func (c *Client) SearchPosts(ctx context.Context, keyword string, page, size int) (core.Page[core.Post], error) {
	res, err := c.r(ctx).
		SetQueryParam("keyword", keyword).
		SetQueryParam("page", strconv.Itoa(page)).
		SetQueryParam("size", strconv.Itoa(size)).
		SetResult(&core.Page[core.Post]{}).
		Get(searchPath)
	if err := check(res, err); err != nil {
		return core.Page[core.Post]{}, err
	}

	result := *res.Result().(*core.Page[core.Post])
	normalizePage(&result)
	return result, nil
}

func (c *Client) GetPost(ctx context.Context, id int64) (core.Post, error) {
	res, err := c.r(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetResult(&core.Post{}).
		Get(postPath)
	if err := check(res, err); err != nil {
		return core.Post{}, err
	}

	post := *res.Result().(*core.Post)
	post.Normalize()
	return post, nil
}

func (c *Client) CreatePost(ctx context.Context, req PostRequest) (core.Post, error) {
	res, err := c.r(ctx).
		SetBody(req).
		SetResult(&core.Post{}).
		Post(postsPath)
	if err := check(res, err); err != nil {
		return core.Post{}, err
	}

	post := *res.Result().(*core.Post)
	post.Normalize()
	return post, nil
}

func (c *Client) UpdatePost(ctx context.Context, id int64, req PostRequest) (core.Post, error) {
	res, err := c.r(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetBody(req).
		SetResult(&core.Post{}).
		Put(postPath)
	if err := check(res, err); err != nil {
		return core.Post{}, err
	}

	post := *res.Result().(*core.Post)
	post.Normalize()
	return post, nil
}

func (c *Client) DeletePost(ctx context.Context, id int64) error {
	res, err := c.r(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete(postPath)
	return check(res, err)
}

// React submits a LIKE or DISLIKE. The server enforces a cooldown between
// changes, its rejection message reaches the caller verbatim.
func (c *Client) React(ctx context.Context, postID int64, typ core.ReactionType) (core.ReactionResult, error) {
	res, err := c.r(ctx).
		SetPathParam("id", strconv.FormatInt(postID, 10)).
		SetBody(map[string]core.ReactionType{"type": typ}).
		SetResult(&core.ReactionResult{}).
		Post(reactionPath)
	if err := check(res, err); err != nil {
		return core.ReactionResult{}, err
	}

	return *res.Result().(*core.ReactionResult), nil
}

func normalizePage(page *core.Page[core.Post]) {
	if page.Content == nil {
		page.Content = []core.Post{}
	}
	for i := range page.Content {
		page.Content[i].Normalize()
	}
}
