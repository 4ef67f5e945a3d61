package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"news_cache/internal/domain"
)

// SnapshotStore is the cache of news snapshots keyed by date. Get returns
// (nil, nil) on a miss; Set overwrites with a TTL in a single operation.
type SnapshotStore interface {
	Get(ctx context.Context, date string) (*domain.NewsSnapshot, error)
	Set(ctx context.Context, date string, snapshot *domain.NewsSnapshot) error
}

// BackfillPublisher enqueues a backfill request for a date.
type BackfillPublisher interface {
	Publish(ctx context.Context, date string) error
}

// NewsProvider fetches a snapshot from the external news API.
type NewsProvider interface {
	FetchNews(ctx context.Context, date string) (*domain.NewsSnapshot, error)
}
