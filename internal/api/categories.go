package api

import (
	"context"
	"strconv"

	"blogdeck/internal/core"
)

const (
	hierarchyPath  = "/categories/hierarchy"
	categoriesPath = "/categories"
	categoryPath   = "/categories/{id}"
)

// CategoryRequest is the admin-only management body. Flows using it
// re-fetch the hierarchy afterwards, categories are never mutated locally.
type CategoryRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	DisplayOrder int    `json:"displayOrder,omitempty"`
	ParentID     *int64 `json:"parentId,omitempty"`
}

// CategoryHierarchy returns the flat category list, nesting expressed via
// parentId. Tree building happens client-side, see internal/categories.
func (c *Client) CategoryHierarchy(ctx context.Context) ([]core.Category, error) {
	var categories []core.Category

	res, err := c.r(ctx).
		SetResult(&categories).
		Get(hierarchyPath)
	if err := check(res, err); err != nil {
		return nil, err
	}

	if categories == nil {
		categories = []core.Category{}
	}
	return categories, nil
}

func (c *Client) CreateCategory(ctx context.Context, req CategoryRequest) (core.Category, error) {
	res, err := c.r(ctx).
		SetBody(req).
		SetResult(&core.Category{}).
		Post(categoriesPath)
	if err := check(res, err); err != nil {
		return core.Category{}, err
	}
	return *res.Result().(*core.Category), nil
}

func (c *Client) UpdateCategory(ctx context.Context, id int64, req CategoryRequest) (core.Category, error) {
	res, err := c.r(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		SetBody(req).
		SetResult(&core.Category{}).
		Put(categoryPath)
	if err := check(res, err); err != nil {
		return core.Category{}, err
	}
	return *res.Result().(*core.Category), nil
}

func (c *Client) DeleteCategory(ctx context.Context, id int64) error {
	res, err := c.r(ctx).
		SetPathParam("id", strconv.FormatInt(id, 10)).
		Delete(categoryPath)
	return check(res, err)
}
