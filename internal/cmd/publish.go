package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"blogdeck/internal/api"
	"blogdeck/internal/core"
)

var publishCmd = &cli.Command{
	Name:  "publish",
	Usage: "Create a post, or update one with --update",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "title",
			Aliases:  []string{"t"},
			Usage:    "Post title",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "content",
			Usage: "Post body, reads stdin when omitted",
		},
		&cli.IntFlag{
			Name:  "category",
			Usage: "Category id to file the post under",
		},
		&cli.StringFlag{
			Name:  "tags",
			Usage: "Comma-separated tag names",
		},
		&cli.IntFlag{
			Name:  "update",
			Usage: "Post id to update instead of creating",
		},
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		return run(ctx, c,
			pal.Provide(&publisher{
				Title:    c.String("title"),
				Content:  c.String("content"),
				Category: c.Int("category"),
				Tags:     c.String("tags"),
				Update:   c.Int("update"),
			}),
		)
	},
}

type publisher struct {
	Logger *slog.Logger
	API    *api.Client

	Title    string
	Content  string
	Category int64
	Tags     string
	Update   int64
}

func (p *publisher) Run(ctx context.Context) error {
	content := p.Content
	if content == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		content = strings.TrimSpace(string(raw))
	}
	if content == "" {
		return core.ErrEmptyContent
	}

	req := api.PostRequest{
		Title:   p.Title,
		Content: content,
		TagNames: lo.FilterMap(strings.Split(p.Tags, ","), func(tag string, _ int) (string, bool) {
			tag = strings.TrimSpace(tag)
			return tag, tag != ""
		}),
	}
	if p.Category != 0 {
		req.CategoryID = &p.Category
	}

	var (
		post core.Post
		err  error
	)
	if p.Update != 0 {
		post, err = p.API.UpdatePost(ctx, p.Update, req)
	} else {
		post, err = p.API.CreatePost(ctx, req)
	}
	if err != nil {
		return err
	}

	fmt.Printf("post #%d published: %s\n", post.ID, post.Title)
	return nil
}
