package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/pal"

	"blogdeck/internal/api"
	"blogdeck/internal/core"
	"blogdeck/internal/reader"
	"blogdeck/internal/session"
)

var readCmd = &cli.Command{
	Name:      "read",
	Usage:     "Show a post with its comments, optionally comment, react or delete",
	ArgsUsage: "<post-id>",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "comment",
			Usage: "Add a top-level comment",
		},
		&cli.IntFlag{
			Name:  "reply-to",
			Usage: "Comment id to reply to, requires --comment",
		},
		&cli.StringFlag{
			Name:  "mention",
			Usage: "Username to mention in the reply",
		},
		&cli.BoolFlag{
			Name:  "like",
			Usage: "Send a LIKE reaction",
		},
		&cli.BoolFlag{
			Name:  "dislike",
			Usage: "Send a DISLIKE reaction",
		},
		&cli.BoolFlag{
			Name:  "delete",
			Usage: "Delete the post (asks for confirmation)",
		},
	},
	Action: func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() != 1 {
			return errors.New("expected exactly one post id")
		}
		id, err := strconv.ParseInt(c.Args().First(), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid post id: %s", c.Args().First())
		}
		if c.Int("reply-to") != 0 && c.String("comment") == "" {
			return errors.New("--reply-to requires --comment")
		}

		return run(ctx, c,
			pal.Provide(&postReader{
				PostID:  id,
				Comment: c.String("comment"),
				ReplyTo: int64(c.Int("reply-to")),
				Mention: c.String("mention"),
				Like:    c.Bool("like"),
				Dislike: c.Bool("dislike"),
				Delete:  c.Bool("delete"),
			}),
		)
	},
}

type postReader struct {
	Logger *slog.Logger
	API    *api.Client
	Store  *session.Store

	PostID  int64
	Comment string
	ReplyTo int64
	Mention string
	Like    bool
	Dislike bool
	Delete  bool

	viewer *reader.Viewer
}

func (r *postReader) Init(ctx context.Context) error {
	r.viewer = &reader.Viewer{
		Logger:  r.Logger,
		API:     r.API,
		Store:   r.Store,
		Confirm: confirmOnTerminal,
	}
	return r.viewer.Init(ctx)
}

func (r *postReader) Run(ctx context.Context) error {
	if r.Delete {
		if err := r.viewer.DeletePost(ctx, r.PostID); err != nil {
			return err
		}
		fmt.Println("post deleted")
		return nil
	}

	post, err := r.viewer.LoadPost(ctx, r.PostID)
	if errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("post %d does not exist", r.PostID)
	}
	if err != nil {
		return err
	}

	if r.Like || r.Dislike {
		typ := core.ReactionLike
		if r.Dislike {
			typ = core.ReactionDislike
		}
		result, err := r.viewer.React(ctx, r.PostID, typ)
		if err != nil {
			// Cooldown and other business rejections arrive with the
			// server's own wording.
			return err
		}
		post.LikeCount = result.LikeCount
		post.DislikeCount = result.DislikeCount
	}

	var comments []core.Comment
	switch {
	case r.Comment != "" && r.ReplyTo != 0:
		comments, err = r.viewer.SubmitReply(ctx, r.PostID, r.ReplyTo, r.Comment, r.Mention)
	case r.Comment != "":
		comments, err = r.viewer.SubmitComment(ctx, r.PostID, r.Comment)
	default:
		comments, err = r.viewer.LoadComments(ctx, r.PostID)
	}
	if err != nil {
		return err
	}

	printPost(post)
	printComments(comments)
	return nil
}

func printPost(post core.Post) {
	category := ""
	if post.Category != nil {
		category = " [" + post.Category.Name + "]"
	}
	fmt.Printf("#%d%s %s\nby %s, %s · %d views · %d likes · %d dislikes\n\n%s\n",
		post.ID, category, post.Title,
		post.AuthorName, timeAgo(post.CreatedAt),
		post.ViewCount, post.LikeCount, post.DislikeCount,
		post.Content)

	if len(post.Tags) > 0 {
		names := make([]string, len(post.Tags))
		for i, tag := range post.Tags {
			names[i] = "#" + tag.Name
		}
		fmt.Printf("\n%s\n", strings.Join(names, " "))
	}
	for _, file := range post.Files {
		fmt.Printf("attachment: %s (%s) %s\n", file.Name, formatFileSize(file.Size), file.URL)
	}
}

func printComments(comments []core.Comment) {
	fmt.Printf("\n%d comments\n", len(comments))
	for _, comment := range comments {
		printComment(comment, false)
		for _, reply := range comment.Replies {
			printComment(reply, true)
		}
	}
}

func printComment(c core.Comment, reply bool) {
	indent := ""
	if reply {
		indent = "    "
	}
	fmt.Printf("%s[%d] %s (%s): %s (+%d/-%d)\n",
		indent, c.ID, c.Author, timeAgo(c.CreatedAt),
		truncate(c.Content, 200), c.LikeCount, c.DislikeCount)
}

func confirmOnTerminal(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
