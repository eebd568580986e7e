package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"blogdeck/internal/api"
	"blogdeck/internal/categories"
	"blogdeck/internal/core"
)

var categoriesCmd = &cli.Command{
	Name:  "categories",
	Usage: "Show the category tree, or manage categories (admin)",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "create",
			Usage: "Create a category with this name",
		},
		&cli.IntFlag{
			Name:  "rename",
			Usage: "Category id to rename, requires --name",
		},
		&cli.StringFlag{
			Name:  "name",
			Usage: "New name for --rename",
		},
		&cli.IntFlag{
			Name:  "parent",
			Usage: "Parent category id for --create",
		},
		&cli.StringFlag{
			Name:  "description",
			Usage: "Description for --create",
		},
		&cli.IntFlag{
			Name:  "delete",
			Usage: "Category id to delete",
		},
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&categoryManager{
				Create:      c.String("create"),
				Rename:      c.Int("rename"),
				Name:        c.String("name"),
				Parent:      c.Int("parent"),
				Description: c.String("description"),
				Delete:      c.Int("delete"),
			}),
		)
	},
}

type categoryManager struct {
	Logger *slog.Logger
	Config *core.Config
	API    *api.Client

	Create      string
	Rename      int64
	Name        string
	Parent      int64
	Description string
	Delete      int64
}

func (m *categoryManager) Run(ctx context.Context) error {
	switch {
	case m.Create != "":
		req := api.CategoryRequest{Name: m.Create, Description: m.Description}
		if m.Parent != 0 {
			req.ParentID = &m.Parent
		}
		created, err := m.API.CreateCategory(ctx, req)
		if err != nil {
			return err
		}
		fmt.Printf("category #%d %s created\n", created.ID, created.Name)

	case m.Rename != 0:
		if m.Name == "" {
			return fmt.Errorf("--rename requires --name")
		}
		updated, err := m.API.UpdateCategory(ctx, m.Rename, api.CategoryRequest{Name: m.Name})
		if err != nil {
			return err
		}
		fmt.Printf("category #%d is now %s\n", updated.ID, updated.Name)

	case m.Delete != 0:
		if err := m.API.DeleteCategory(ctx, m.Delete); err != nil {
			return err
		}
		fmt.Printf("category #%d deleted\n", m.Delete)
	}

	return m.printTree(ctx)
}

// printTree renders the same two-level view the post list sidebar shows,
// the synthetic All entry first with the total post count.
func (m *categoryManager) printTree(ctx context.Context) error {
	flat, err := m.API.CategoryHierarchy(ctx)
	if err != nil {
		return err
	}

	// The All count is the unfiltered total, not a sum of per-category
	// counts, a post may carry no category at all.
	page, err := m.API.ListPosts(ctx, core.PostQuery{
		Size: 1, SortBy: "createdAt", SortDirection: "desc",
	})
	if err != nil {
		return err
	}

	tree := categories.WithAll(categories.BuildTree(flat), page.TotalElements)
	for _, node := range tree {
		fmt.Printf("%-6s %s (%d)\n", node.SelectionID(), node.Category.Name, node.PostCount)
		for _, child := range node.Children {
			fmt.Printf("%-6d   %s (%d)\n", child.ID, child.Name, child.PostCount)
		}
	}
	return nil
}
