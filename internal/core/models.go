package core

import (
	"strings"
	"time"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Session is the authenticated identity. It lives in the session store for
// the lifetime of the process and is never written to disk.
type Session struct {
	UserID   int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Token    string `json:"token"`
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// Category as returned by GET /categories/hierarchy: a flat record, nesting
// is expressed through ParentID only.
type Category struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	DisplayOrder int        `json:"displayOrder"`
	Active       bool       `json:"active"`
	ParentID     *int64     `json:"parentId"`
	ParentName   string     `json:"parentName"`
	PostCount    int64      `json:"postCount"`
	CreatedAt    *time.Time `json:"createdAt"`
	UpdatedAt    *time.Time `json:"updatedAt"`
}

func (c Category) TopLevel() bool {
	return c.ParentID == nil
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type File struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

type Post struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	AuthorID     int64     `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	Category     *Category `json:"category"`
	CreatedAt    time.Time `json:"createdAt"`
	ViewCount    int64     `json:"viewCount"`
	LikeCount    int64     `json:"likeCount"`
	DislikeCount int64     `json:"dislikeCount"`
	CommentCount int64     `json:"commentCount"`
	Tags         []Tag     `json:"tags"`
	Files        []File    `json:"files"`
}

// Normalize coerces a freshly decoded post into the shape the rest of the
// code may rely on. The API occasionally omits list fields entirely.
func (p *Post) Normalize() {
	if p.Tags == nil {
		p.Tags = []Tag{}
	}
	if p.Files == nil {
		p.Files = []File{}
	}
}

type Comment struct {
	ID           int64     `json:"id"`
	Content      string    `json:"content"`
	Author       string    `json:"author"`
	CreatedAt    time.Time `json:"createdAt"`
	LikeCount    int64     `json:"likeCount"`
	DislikeCount int64     `json:"dislikeCount"`
	// Replies is populated one level deep only, a reply's own Replies
	// stays empty.
	Replies []Comment `json:"replies"`
}

func (c *Comment) Normalize() {
	if c.Replies == nil {
		c.Replies = []Comment{}
	}
	for i := range c.Replies {
		c.Replies[i].Replies = []Comment{}
	}
}

type ReactionType string

const (
	ReactionLike    ReactionType = "LIKE"
	ReactionDislike ReactionType = "DISLIKE"
)

// ReactionResult carries the authoritative counters returned by the server
// after POST /posts/{id}/reaction.
type ReactionResult struct {
	LikeCount    int64 `json:"likeCount"`
	DislikeCount int64 `json:"dislikeCount"`
}

type NotificationType string

const (
	NotificationComment    NotificationType = "COMMENT"
	NotificationReply      NotificationType = "REPLY"
	NotificationLike       NotificationType = "LIKE"
	NotificationPostLike   NotificationType = "POST_LIKE"
	NotificationPostUpdate NotificationType = "POST_UPDATE"
	NotificationSystem     NotificationType = "SYSTEM"
)

type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "UNREAD"
	NotificationRead   NotificationStatus = "READ"
)

type Notification struct {
	ID        int64              `json:"id"`
	Type      NotificationType   `json:"type"`
	Content   string             `json:"content"`
	Status    NotificationStatus `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
}

// Normalize validates a pushed or fetched notification once, on receipt,
// so nothing downstream has to re-check fields. Records without an id or
// content are rejected.
func (n *Notification) Normalize() bool {
	if n.ID == 0 || strings.TrimSpace(n.Content) == "" {
		return false
	}
	switch n.Type {
	case NotificationComment, NotificationReply, NotificationLike,
		NotificationPostLike, NotificationPostUpdate, NotificationSystem:
	default:
		n.Type = NotificationSystem
	}
	if n.Status != NotificationRead {
		n.Status = NotificationUnread
	}
	return true
}

func (n Notification) Unread() bool {
	return n.Status == NotificationUnread
}

// Page mirrors the server's paged response envelope.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalPages    int   `json:"totalPages"`
	TotalElements int64 `json:"totalElements"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}
