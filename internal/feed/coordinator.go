// Package feed folds selection, keyword, sort and page into one outgoing
// post query and owns the resulting page state.
package feed

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"blogdeck/internal/categories"
	"blogdeck/internal/core"
)

var (
	queriesIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "blogdeck_feed_queries_total",
		Help: "Post list queries issued, by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	staleDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blogdeck_feed_stale_responses_dropped_total",
		Help: "Responses discarded because a newer query was issued meanwhile.",
	})
)

type Sort string

const (
	SortLatest   Sort = "latest"
	SortOldest   Sort = "oldest"
	SortViews    Sort = "views"
	SortLikes    Sort = "likes"
	SortComments Sort = "comments"
)

// SortMapping translates a sort order into the server's (sortBy,
// sortDirection) pair. Total: anything unrecognized maps like latest.
func SortMapping(s Sort) (field, direction string) {
	switch s {
	case SortOldest:
		return "createdAt", "asc"
	case SortViews:
		return "viewCount", "desc"
	case SortLikes:
		return "likeCount", "desc"
	case SortComments:
		return "commentCount", "desc"
	default:
		return "createdAt", "desc"
	}
}

type Coordinator struct {
	Logger *slog.Logger
	Config *core.Config
	API    core.PostLister

	Selection *categories.Selection

	mu      sync.Mutex
	keyword string
	sort    Sort
	page    int

	posts         []core.Post
	totalPages    int
	totalElements int64

	seq atomic.Int64
}

func (c *Coordinator) Init(_ context.Context) error {
	c.Logger = c.Logger.With("component", "feed.Coordinator")
	if c.Selection == nil {
		c.Selection = categories.NewSelection()
	}
	c.sort = SortLatest
	return nil
}

// SetKeyword routes subsequent queries to the search endpoint. A keyword
// takes precedence over the category filter, matching the backend's
// mutually exclusive endpoints.
func (c *Coordinator) SetKeyword(ctx context.Context, keyword string) error {
	c.mu.Lock()
	c.keyword = strings.TrimSpace(keyword)
	c.page = 0
	c.mu.Unlock()

	return c.Refresh(ctx)
}

func (c *Coordinator) SetSort(ctx context.Context, sort Sort) error {
	c.mu.Lock()
	c.sort = sort
	c.page = 0
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// SetPage changes only the page index, every other input stays put.
func (c *Coordinator) SetPage(ctx context.Context, page int) error {
	c.mu.Lock()
	if page < 0 {
		page = 0
	}
	c.page = page
	c.mu.Unlock()

	return c.Refresh(ctx)
}

func (c *Coordinator) Toggle(ctx context.Context, id string) error {
	c.Selection.Toggle(id)
	return c.resetAndRefresh(ctx)
}

func (c *Coordinator) Select(ctx context.Context, id string) error {
	c.Selection.Select(id)
	return c.resetAndRefresh(ctx)
}

// ClearFilters resets keyword, selection, sort and page in one shot, then
// queries once.
func (c *Coordinator) ClearFilters(ctx context.Context) error {
	c.Selection.Clear()

	c.mu.Lock()
	c.keyword = ""
	c.sort = SortLatest
	c.page = 0
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// Apply sets every input at once and issues a single query, the way a
// freshly mounted page does.
func (c *Coordinator) Apply(ctx context.Context, keyword string, sort Sort, page int) error {
	c.mu.Lock()
	c.keyword = strings.TrimSpace(keyword)
	c.sort = sort
	if page < 0 {
		page = 0
	}
	c.page = page
	c.mu.Unlock()

	return c.Refresh(ctx)
}

func (c *Coordinator) resetAndRefresh(ctx context.Context) error {
	c.mu.Lock()
	c.page = 0
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// Refresh issues exactly one query for the current inputs. A failure leaves
// the previous page state intact. Responses superseded by a newer query are
// dropped, arrival order is not guaranteed to match issue order.
func (c *Coordinator) Refresh(ctx context.Context) error {
	// The sequence number is taken under the same lock as the input
	// snapshot, so snapshot order and sequence order always agree.
	c.mu.Lock()
	keyword := c.keyword
	sort := c.sort
	page := c.page
	seq := c.seq.Add(1)
	c.mu.Unlock()

	var (
		result   core.Page[core.Post]
		err      error
		endpoint string
	)

	if keyword != "" {
		endpoint = "search"
		result, err = c.API.SearchPosts(ctx, keyword, page, c.Config.PageSize)
	} else {
		endpoint = "list"
		sortBy, direction := SortMapping(sort)
		result, err = c.API.ListPosts(ctx, core.PostQuery{
			Page:          page,
			Size:          c.Config.PageSize,
			Categories:    c.Selection.Filter(),
			SortBy:        sortBy,
			SortDirection: direction,
		})
	}

	if err != nil {
		queriesIssued.WithLabelValues(endpoint, "error").Inc()
		c.Logger.Error("post query failed", "endpoint", endpoint, "error", err)
		return err
	}
	queriesIssued.WithLabelValues(endpoint, "ok").Inc()

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq.Load() {
		staleDropped.Inc()
		return nil
	}

	c.posts = result.Content
	c.totalPages = result.TotalPages
	c.totalElements = result.TotalElements
	return nil
}

// Page is a snapshot of the current page state.
func (c *Coordinator) Page() ([]core.Post, int, int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	posts := make([]core.Post, len(c.posts))
	copy(posts, c.posts)
	return posts, c.totalPages, c.totalElements
}

func (c *Coordinator) Keyword() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.keyword
}

func (c *Coordinator) CurrentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

func (c *Coordinator) CurrentSort() Sort {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sort
}
