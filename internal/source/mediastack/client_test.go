package mediastack

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news_cache/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestClient(baseURL string) *Client {
	return New(Config{
		BaseURL:   baseURL,
		AccessKey: "test-key",
		Countries: "pe",
		Limit:     5,
		Timeout:   5 * time.Second,
	}, testLogger())
}

func TestFetchNews_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/news", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("access_key"))
		assert.Equal(t, "pe", r.URL.Query().Get("countries"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		assert.Equal(t, "2024-06-01", r.URL.Query().Get("date"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"pagination": {"limit": 5, "offset": 0, "count": 2, "total": 2},
			"data": [
				{"author": "a", "title": "first", "url": "https://example.com/1", "published_at": "2024-06-01T10:00:00+00:00"},
				{"author": "b", "title": "second", "url": "https://example.com/2", "published_at": "2024-06-01T12:00:00+00:00"}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	snapshot, err := client.FetchNews(context.Background(), "2024-06-01")
	require.NoError(t, err)
	require.NotNil(t, snapshot)

	assert.Equal(t, 2, snapshot.Pagination.Count)
	require.Len(t, snapshot.Items, 2)
	assert.Equal(t, "first", snapshot.Items[0].Title)
	assert.Equal(t, "second", snapshot.Items[1].Title)
}

func TestFetchNews_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	snapshot, err := client.FetchNews(context.Background(), "1999-01-01")
	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, domain.ErrProviderNotFound)
}

func TestFetchNews_InvalidRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	snapshot, err := client.FetchNews(context.Background(), "2024-06-01")
	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, domain.ErrProviderInvalidRequest)
}

func TestFetchNews_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	snapshot, err := client.FetchNews(context.Background(), "2024-06-01")
	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestFetchNews_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL)

	snapshot, err := client.FetchNews(context.Background(), "2024-06-01")
	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestFetchNews_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	snapshot, err := client.FetchNews(context.Background(), "2024-06-01")
	assert.Nil(t, snapshot)
	assert.ErrorIs(t, err, domain.ErrProviderUnavailable)
}

func TestFetchNews_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchNews(ctx, "2024-06-01")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrProviderUnavailable))
}
