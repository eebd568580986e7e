package feed_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"blogdeck/internal/core"
	"blogdeck/internal/feed"
)

type listCall struct {
	query core.PostQuery
}

type searchCall struct {
	keyword string
	page    int
	size    int
}

type fakeLister struct {
	mu       sync.Mutex
	lists    []listCall
	searches []searchCall

	page core.Page[core.Post]
	err  error

	// derive makes each list call answer with a page derived from its own
	// query, so a test can tell which request a result belongs to.
	derive bool

	// onList, when set, runs before a list call returns. Used to model
	// overlapping in-flight requests.
	onList func(call int)
}

func (f *fakeLister) ListPosts(_ context.Context, q core.PostQuery) (core.Page[core.Post], error) {
	f.mu.Lock()
	f.lists = append(f.lists, listCall{query: q})
	call := len(f.lists)
	hook := f.onList
	f.mu.Unlock()

	if hook != nil {
		hook(call)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.derive {
		return page(int64(q.Page)), nil
	}
	return f.page, f.err
}

func (f *fakeLister) SearchPosts(_ context.Context, keyword string, page, size int) (core.Page[core.Post], error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.searches = append(f.searches, searchCall{keyword: keyword, page: page, size: size})
	return f.page, f.err
}

func (f *fakeLister) lastList(t *testing.T) core.PostQuery {
	t.Helper()

	f.mu.Lock()
	defer f.mu.Unlock()

	require.NotEmpty(t, f.lists)
	return f.lists[len(f.lists)-1].query
}

func newCoordinator(t *testing.T, lister *fakeLister) *feed.Coordinator {
	t.Helper()

	c := &feed.Coordinator{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: &core.Config{PageSize: 10},
		API:    lister,
	}
	require.NoError(t, c.Init(t.Context()))
	return c
}

func page(ids ...int64) core.Page[core.Post] {
	return core.Page[core.Post]{
		Content: lo.Map(ids, func(id int64, _ int) core.Post {
			return core.Post{ID: id}
		}),
		TotalPages:    3,
		TotalElements: int64(len(ids)),
	}
}

func TestSortMapping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		sort      feed.Sort
		field     string
		direction string
	}{
		{feed.SortLatest, "createdAt", "desc"},
		{feed.SortOldest, "createdAt", "asc"},
		{feed.SortViews, "viewCount", "desc"},
		{feed.SortLikes, "likeCount", "desc"},
		{feed.SortComments, "commentCount", "desc"},
		{feed.Sort("bogus"), "createdAt", "desc"},
		{feed.Sort(""), "createdAt", "desc"},
	}

	for _, c := range cases {
		field, direction := feed.SortMapping(c.sort)
		require.Equal(t, c.field, field, "sort %q", c.sort)
		require.Equal(t, c.direction, direction, "sort %q", c.sort)
	}
}

func TestCoordinator_Refresh(t *testing.T) {
	t.Parallel()

	t.Run("all selection issues a list query with no category filter", func(t *testing.T) {
		t.Parallel()

		lister := &fakeLister{page: page(1, 2)}
		c := newCoordinator(t, lister)

		require.NoError(t, c.Refresh(t.Context()))

		q := lister.lastList(t)
		require.Empty(t, q.Categories)
		require.Equal(t, "createdAt", q.SortBy)
		require.Equal(t, "desc", q.SortDirection)
		require.Equal(t, 10, q.Size)

		posts, totalPages, totalElements := c.Page()
		require.Len(t, posts, 2)
		require.Equal(t, 3, totalPages)
		require.Equal(t, int64(2), totalElements)
	})

	t.Run("selecting a category then all drops the filter", func(t *testing.T) {
		t.Parallel()

		lister := &fakeLister{page: page(1)}
		c := newCoordinator(t, lister)

		require.NoError(t, c.Toggle(t.Context(), "7"))
		require.Equal(t, []string{"7"}, lister.lastList(t).Categories)

		require.NoError(t, c.Toggle(t.Context(), "all"))
		require.Equal(t, []string{"all"}, c.Selection.IDs())
		require.Empty(t, lister.lastList(t).Categories)
	})

	t.Run("keyword routes to the search endpoint and wins over categories", func(t *testing.T) {
		t.Parallel()

		lister := &fakeLister{page: page(1)}
		c := newCoordinator(t, lister)

		require.NoError(t, c.Toggle(t.Context(), "7"))
		require.NoError(t, c.SetKeyword(t.Context(), "  golang  "))

		require.Len(t, lister.searches, 1)
		require.Equal(t, searchCall{keyword: "golang", page: 0, size: 10}, lister.searches[0])
		require.Len(t, lister.lists, 1) // only the toggle before the keyword
	})

	t.Run("failure leaves the previous page state intact", func(t *testing.T) {
		t.Parallel()

		lister := &fakeLister{page: page(1, 2)}
		c := newCoordinator(t, lister)
		require.NoError(t, c.Refresh(t.Context()))

		lister.err = io.ErrUnexpectedEOF
		require.Error(t, c.Refresh(t.Context()))

		posts, totalPages, _ := c.Page()
		require.Len(t, posts, 2)
		require.Equal(t, 3, totalPages)
	})
}

func TestCoordinator_PageReset(t *testing.T) {
	t.Parallel()

	t.Run("keyword, sort and selection changes reset the page", func(t *testing.T) {
		t.Parallel()

		lister := &fakeLister{page: page(1)}
		c := newCoordinator(t, lister)

		require.NoError(t, c.SetPage(t.Context(), 4))
		require.Equal(t, 4, c.CurrentPage())

		require.NoError(t, c.SetSort(t.Context(), feed.SortLikes))
		require.Equal(t, 0, c.CurrentPage())

		require.NoError(t, c.SetPage(t.Context(), 2))
		require.NoError(t, c.Toggle(t.Context(), "7"))
		require.Equal(t, 0, c.CurrentPage())

		require.NoError(t, c.SetPage(t.Context(), 2))
		require.NoError(t, c.SetKeyword(t.Context(), "x"))
		require.Equal(t, 0, c.CurrentPage())
	})

	t.Run("page change leaves the other inputs alone", func(t *testing.T) {
		t.Parallel()

		lister := &fakeLister{page: page(1)}
		c := newCoordinator(t, lister)

		require.NoError(t, c.SetSort(t.Context(), feed.SortViews))
		require.NoError(t, c.Toggle(t.Context(), "7"))
		require.NoError(t, c.SetPage(t.Context(), 3))

		require.Equal(t, feed.SortViews, c.CurrentSort())
		require.Equal(t, []string{"7"}, c.Selection.IDs())

		q := lister.lastList(t)
		require.Equal(t, 3, q.Page)
		require.Equal(t, "viewCount", q.SortBy)
	})
}

func TestCoordinator_StaleResponseDiscarded(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	started := make(chan struct{})

	lister := &fakeLister{}
	lister.onList = func(call int) {
		if call == 1 {
			close(started)
			<-release
			lister.mu.Lock()
			lister.page = page(1) // the stale result
			lister.mu.Unlock()
		}
	}

	c := newCoordinator(t, lister)

	done := make(chan error)
	go func() {
		done <- c.Refresh(t.Context())
	}()

	<-started

	// A newer query completes while the first is still in flight.
	lister.mu.Lock()
	lister.page = page(7, 8)
	lister.mu.Unlock()
	require.NoError(t, c.SetPage(t.Context(), 1))

	close(release)
	require.NoError(t, <-done)

	posts, _, _ := c.Page()
	require.Equal(t, []int64{7, 8}, lo.Map(posts, func(p core.Post, _ int) int64 {
		return p.ID
	}))
}

func TestCoordinator_OverlappingRefreshesLatestIssuedWins(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})

	lister := &fakeLister{derive: true}
	lister.onList = func(call int) {
		if call == 1 {
			close(started)
			<-release
		}
	}

	c := newCoordinator(t, lister)

	done := make(chan error)
	go func() {
		done <- c.Refresh(t.Context()) // snapshots page 0
	}()
	<-started

	// Two newer queries issue and complete while the first hangs. The
	// page each result carries identifies the query it answered.
	require.NoError(t, c.SetPage(t.Context(), 3))
	require.NoError(t, c.SetPage(t.Context(), 5))

	close(release)
	require.NoError(t, <-done)

	posts, _, _ := c.Page()
	require.Len(t, posts, 1)
	require.Equal(t, int64(5), posts[0].ID)
	require.Equal(t, 5, c.CurrentPage())
}
