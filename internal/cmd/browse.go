package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"blogdeck/internal/api"
	"blogdeck/internal/core"
	"blogdeck/internal/feed"
)

var browseCmd = &cli.Command{
	Name:  "browse",
	Usage: "List posts with category, keyword, sort and page filters",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "categories",
			Usage: "Comma-separated category ids, or \"all\"",
			Value: "all",
		},
		&cli.StringFlag{
			Name:    "keyword",
			Aliases: []string{"k"},
			Usage:   "Search keyword, takes precedence over categories",
		},
		&cli.StringFlag{
			Name:  "sort",
			Usage: "latest, oldest, views, likes or comments",
			Value: "latest",
		},
		&cli.IntFlag{
			Name:  "page",
			Usage: "Zero-based page index",
			Value: 0,
		},
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&browser{
				Categories: c.String("categories"),
				Keyword:    c.String("keyword"),
				Sort:       c.String("sort"),
				Page:       int(c.Int("page")),
			}),
		)
	},
}

type browser struct {
	Logger *slog.Logger
	Config *core.Config
	API    *api.Client

	Categories string
	Keyword    string
	Sort       string
	Page       int
}

func (b *browser) Run(ctx context.Context) error {
	coordinator := &feed.Coordinator{Logger: b.Logger, Config: b.Config, API: b.API}
	if err := coordinator.Init(ctx); err != nil {
		return err
	}

	for _, id := range strings.Split(b.Categories, ",") {
		if id = strings.TrimSpace(id); id != "" {
			coordinator.Selection.Toggle(id)
		}
	}

	if err := coordinator.Apply(ctx, b.Keyword, feed.Sort(b.Sort), b.Page); err != nil {
		return err
	}

	posts, totalPages, totalElements := coordinator.Page()
	if len(posts) == 0 {
		fmt.Println("no posts found")
		return nil
	}

	for _, post := range posts {
		printPostLine(post)
	}
	fmt.Printf("\npage %d of %d, %d posts total\n",
		coordinator.CurrentPage()+1, totalPages, totalElements)
	return nil
}

func printPostLine(post core.Post) {
	category := "-"
	if post.Category != nil {
		category = post.Category.Name
	}
	fmt.Printf("#%-6d %-10s %s\n        by %s, %s · %d views · %d likes · %d comments\n",
		post.ID, category, post.Title,
		post.AuthorName, timeAgo(post.CreatedAt),
		post.ViewCount, post.LikeCount, post.CommentCount)
}
