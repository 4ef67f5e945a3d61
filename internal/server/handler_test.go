package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news_cache/internal/config"
	"news_cache/internal/domain"
)

func configForTest() config.ServerConfig {
	return config.ServerConfig{
		Addr:         ":0",
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}
}

type lookupStub struct {
	snapshot *domain.NewsSnapshot
	err      error
	gotDate  string
}

func (l *lookupStub) Lookup(ctx context.Context, date string) (*domain.NewsSnapshot, error) {
	l.gotDate = date
	return l.snapshot, l.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func doGet(t *testing.T, lookup NewsLookup, target string) *httptest.ResponseRecorder {
	t.Helper()
	handler := NewNewsHandler(lookup, testLogger())
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.GetNews(rec, req)
	return rec
}

func TestGetNews_Found(t *testing.T) {
	stub := &lookupStub{
		snapshot: &domain.NewsSnapshot{
			Pagination: domain.Pagination{Count: 1, Total: 1},
			Items:      []domain.NewsItem{{Title: "cached", URL: "https://example.com/1"}},
		},
	}

	rec := doGet(t, stub, "/api/v1/news?date=2024-06-01")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2024-06-01", stub.gotDate)

	var body DataResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "data found", body.Message)
	require.NotNil(t, body.Data)
	assert.Equal(t, "cached", body.Data.Items[0].Title)
}

func TestGetNews_Pending(t *testing.T) {
	stub := &lookupStub{err: domain.ErrNotYetAvailable}

	rec := doGet(t, stub, "/api/v1/news?date=2024-06-01")

	assert.Equal(t, http.StatusAccepted, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "NEWS_MS_201", body.Error.Code)
}

func TestGetNews_InvalidDate(t *testing.T) {
	stub := &lookupStub{err: domain.ErrInvalidDate}

	rec := doGet(t, stub, "/api/v1/news?date=2024/06/01")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "NEWS_MS_001", body.Error.Code)
}

func TestGetNews_InfrastructureError(t *testing.T) {
	stub := &lookupStub{err: errors.New("redis connection refused")}

	rec := doGet(t, stub, "/api/v1/news?date=2024-06-01")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "NEWS_MS_002", body.Error.Code)
	// Raw infrastructure details must not leak to the caller.
	assert.NotContains(t, body.Error.Message, "redis")
}

func TestServer_RoutesLookup(t *testing.T) {
	stub := &lookupStub{err: domain.ErrNotYetAvailable}

	srv := New(configForTest(), stub, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/news?date=2024-06-01", nil)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "2024-06-01", stub.gotDate)
}

func TestServer_UnknownRoute(t *testing.T) {
	srv := New(configForTest(), &lookupStub{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
