package core

import (
	"context"
)

// PostQuery is the single outgoing shape the query coordinator produces.
type PostQuery struct {
	Page          int
	Size          int
	Categories    []string
	SortBy        string
	SortDirection string
}

type PostLister interface {
	ListPosts(ctx context.Context, q PostQuery) (Page[Post], error)
	SearchPosts(ctx context.Context, keyword string, page, size int) (Page[Post], error)
}

type PostReader interface {
	GetPost(ctx context.Context, id int64) (Post, error)
	ListComments(ctx context.Context, postID int64) ([]Comment, error)
	CreateComment(ctx context.Context, req CommentRequest) error
	DeleteComment(ctx context.Context, id int64) error
	DeletePost(ctx context.Context, id int64) error
	React(ctx context.Context, postID int64, typ ReactionType) (ReactionResult, error)
}

type CommentRequest struct {
	Content         string `json:"content"`
	PostID          int64  `json:"postId"`
	ParentID        *int64 `json:"parentId,omitempty"`
	MentionUsername string `json:"mentionUsername,omitempty"`
}

type NotificationAPI interface {
	ListNotifications(ctx context.Context, page, size int) (Page[Notification], error)
	MarkNotificationRead(ctx context.Context, id int64) error
	MarkAllNotificationsRead(ctx context.Context) error
	DeleteNotification(ctx context.Context, id int64) error
}
