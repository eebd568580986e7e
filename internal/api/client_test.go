package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"blogdeck/internal/api"
	"blogdeck/internal/core"
	"blogdeck/internal/session"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newClient(t *testing.T, handler http.Handler) (*api.Client, *session.Store) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := &session.Store{Logger: discardLogger()}
	client := &api.Client{
		Logger: discardLogger(),
		Config: &core.Config{APIURL: srv.URL},
		Store:  store,
	}
	require.NoError(t, client.Init(t.Context()))
	t.Cleanup(func() {
		require.NoError(t, client.Shutdown(context.Background()))
	})

	return client, store
}

func TestClient_BearerToken(t *testing.T) {
	t.Parallel()

	var authHeader string
	client, store := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(core.Page[core.Post]{})
	}))

	_, err := client.ListPosts(t.Context(), core.PostQuery{Size: 10})
	require.NoError(t, err)
	require.Empty(t, authHeader)

	store.Set(core.Session{Token: "tok-123"})
	_, err = client.ListPosts(t.Context(), core.PostQuery{Size: 10})
	require.NoError(t, err)
	require.Equal(t, "Bearer tok-123", authHeader)
}

func TestClient_UnauthorizedClearsSession(t *testing.T) {
	t.Parallel()

	client, store := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	store.Set(core.Session{UserID: 1, Username: "lee", Token: "tok"})

	redirected := false
	store.OnClear(func() { redirected = true })

	// Any endpoint triggers the same global handling.
	_, err := client.GetPost(t.Context(), 1)
	require.ErrorIs(t, err, core.ErrUnauthorized)

	_, ok := store.Current()
	require.False(t, ok)
	require.True(t, redirected)
}

func TestClient_NotFoundIsDistinct(t *testing.T) {
	t.Parallel()

	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetPost(t.Context(), 42)
	require.ErrorIs(t, err, core.ErrNotFound)
	require.NotErrorIs(t, err, core.ErrUnauthorized)
}

func TestClient_ServerMessagePassesThroughVerbatim(t *testing.T) {
	t.Parallel()

	client, store := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]string{
			"message": "You can change your reaction again in 5 minutes",
		})
	}))
	store.Set(core.Session{Token: "tok"})

	_, err := client.React(t.Context(), 1, core.ReactionLike)
	require.Error(t, err)

	var statusErr *core.StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusTooManyRequests, statusErr.Code)
	require.Equal(t, "You can change your reaction again in 5 minutes", statusErr.Message)
}

func TestClient_ListPosts(t *testing.T) {
	t.Parallel()

	t.Run("sends the sort pair and comma-joined categories", func(t *testing.T) {
		t.Parallel()

		var query map[string][]string
		client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.Query()
			json.NewEncoder(w).Encode(core.Page[core.Post]{
				Content:    []core.Post{{ID: 1, Title: "hello"}},
				TotalPages: 1,
			})
		}))

		page, err := client.ListPosts(t.Context(), core.PostQuery{
			Page:          2,
			Size:          10,
			Categories:    []string{"7", "9"},
			SortBy:        "likeCount",
			SortDirection: "desc",
		})
		require.NoError(t, err)

		require.Equal(t, []string{"2"}, query["page"])
		require.Equal(t, []string{"10"}, query["size"])
		require.Equal(t, []string{"7,9"}, query["categories"])
		require.Equal(t, []string{"likeCount"}, query["sortBy"])
		require.Equal(t, []string{"desc"}, query["sortDirection"])

		require.Len(t, page.Content, 1)
		// The normalization boundary fills in what the server omitted.
		require.NotNil(t, page.Content[0].Tags)
		require.NotNil(t, page.Content[0].Files)
	})

	t.Run("omits the categories parameter for the all selection", func(t *testing.T) {
		t.Parallel()

		var query map[string][]string
		client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			query = r.URL.Query()
			json.NewEncoder(w).Encode(core.Page[core.Post]{})
		}))

		_, err := client.ListPosts(t.Context(), core.PostQuery{Size: 10, SortBy: "createdAt", SortDirection: "desc"})
		require.NoError(t, err)
		require.NotContains(t, query, "categories")
	})
}

func TestClient_ListNotifications(t *testing.T) {
	t.Parallel()

	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/notifications", r.URL.Path)
		require.Equal(t, "createdAt", r.URL.Query().Get("sortBy"))
		require.Equal(t, "desc", r.URL.Query().Get("sortDirection"))

		json.NewEncoder(w).Encode(core.Page[core.Notification]{
			Content: []core.Notification{
				{ID: 1, Type: "COMMENT", Content: "new comment", Status: "UNREAD"},
				{ID: 2, Type: "WEIRD", Content: "mystery", Status: ""},
				{ID: 0, Content: "no id, dropped"},
				{ID: 3, Type: "REPLY", Content: "   ", Status: "READ"},
			},
		})
	}))

	page, err := client.ListNotifications(t.Context(), 0, 50)
	require.NoError(t, err)

	require.Len(t, page.Content, 2)
	require.Equal(t, core.NotificationComment, page.Content[0].Type)
	// Unknown types coerce to SYSTEM, missing status to UNREAD.
	require.Equal(t, core.NotificationSystem, page.Content[1].Type)
	require.Equal(t, core.NotificationUnread, page.Content[1].Status)
}
