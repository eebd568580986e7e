// Package reader is the post detail flow: one post, its comment tree,
// reactions and the guarded delete operations.
package reader

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"blogdeck/internal/core"
	"blogdeck/internal/session"
)

// ErrCancelled means the user backed out of a confirmation prompt. No
// request was sent.
var ErrCancelled = errors.New("cancelled")

type Viewer struct {
	Logger *slog.Logger
	API    core.PostReader
	Store  *session.Store

	// Confirm gates the destructive operations. nil means always
	// confirmed, useful in tests.
	Confirm func(prompt string) bool
}

func (v *Viewer) Init(_ context.Context) error {
	v.Logger = v.Logger.With("component", "reader.Viewer")
	return nil
}

// LoadPost fetches one post. A missing post surfaces as core.ErrNotFound,
// kept distinct from generic failure.
func (v *Viewer) LoadPost(ctx context.Context, id int64) (core.Post, error) {
	return v.API.GetPost(ctx, id)
}

func (v *Viewer) LoadComments(ctx context.Context, postID int64) ([]core.Comment, error) {
	return v.API.ListComments(ctx, postID)
}

// SubmitComment posts a top-level comment and reloads the tree so
// server-assigned ids and ordering stay authoritative. Empty trimmed
// content and a missing session are rejected before any network call.
func (v *Viewer) SubmitComment(ctx context.Context, postID int64, content string) ([]core.Comment, error) {
	return v.submit(ctx, core.CommentRequest{
		Content: strings.TrimSpace(content),
		PostID:  postID,
	})
}

// SubmitReply posts a single-level reply under parentID, optionally
// mentioning the replied-to author.
func (v *Viewer) SubmitReply(ctx context.Context, postID, parentID int64, content, mention string) ([]core.Comment, error) {
	return v.submit(ctx, core.CommentRequest{
		Content:         strings.TrimSpace(content),
		PostID:          postID,
		ParentID:        &parentID,
		MentionUsername: mention,
	})
}

func (v *Viewer) submit(ctx context.Context, req core.CommentRequest) ([]core.Comment, error) {
	if req.Content == "" {
		return nil, core.ErrEmptyContent
	}
	if _, ok := v.Store.Current(); !ok {
		return nil, core.ErrNoSession
	}

	if err := v.API.CreateComment(ctx, req); err != nil {
		return nil, err
	}
	return v.API.ListComments(ctx, req.PostID)
}

// React submits a LIKE or DISLIKE. The returned counters are the server's,
// they replace whatever the caller had. Cooldown rejections come back as a
// StatusError with the server's message untouched.
func (v *Viewer) React(ctx context.Context, postID int64, typ core.ReactionType) (core.ReactionResult, error) {
	if _, ok := v.Store.Current(); !ok {
		return core.ReactionResult{}, core.ErrNoSession
	}
	return v.API.React(ctx, postID, typ)
}

// CanModify says whether the delete/edit controls should render at all.
// Enforcement stays server-side.
func (v *Viewer) CanModify(post core.Post) bool {
	sess, ok := v.Store.Current()
	if !ok {
		return false
	}
	return sess.IsAdmin() || sess.UserID == post.AuthorID
}

func (v *Viewer) DeletePost(ctx context.Context, id int64) error {
	if !v.confirmed("Delete this post?") {
		return ErrCancelled
	}
	return v.API.DeletePost(ctx, id)
}

// DeleteComment removes a comment after confirmation and returns the
// reloaded tree.
func (v *Viewer) DeleteComment(ctx context.Context, postID, commentID int64) ([]core.Comment, error) {
	if !v.confirmed("Delete this comment?") {
		return nil, ErrCancelled
	}
	if err := v.API.DeleteComment(ctx, commentID); err != nil {
		return nil, err
	}
	return v.API.ListComments(ctx, postID)
}

func (v *Viewer) confirmed(prompt string) bool {
	if v.Confirm == nil {
		return true
	}
	return v.Confirm(prompt)
}
