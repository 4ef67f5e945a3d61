package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"news_cache/internal/domain"
)

// datePattern is the only validation the system applies to a date key. The
// worker trusts whatever arrives over the queue.
var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ReaderService answers lookups from the cache and triggers an asynchronous
// backfill on a miss. It never blocks waiting for fresh data.
type ReaderService struct {
	store     SnapshotStore
	publisher BackfillPublisher
	logger    *slog.Logger
}

func NewReaderService(store SnapshotStore, publisher BackfillPublisher, logger *slog.Logger) *ReaderService {
	return &ReaderService{
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// Lookup returns the cached snapshot for date. On a miss it publishes one
// backfill request and returns domain.ErrNotYetAvailable. Invalid dates are
// rejected before any cache read or publish. Cache and publish failures are
// surfaced, never treated as a miss.
func (s *ReaderService) Lookup(ctx context.Context, date string) (*domain.NewsSnapshot, error) {
	if !datePattern.MatchString(date) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDate, date)
	}

	snapshot, err := s.store.Get(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("read cache: %w", err)
	}

	if snapshot != nil {
		s.logger.Info("cache hit", "date", date)
		return snapshot, nil
	}

	s.logger.Info("cache miss, requesting backfill", "date", date)

	if err := s.publisher.Publish(ctx, date); err != nil {
		return nil, fmt.Errorf("publish backfill request: %w", err)
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrNotYetAvailable, date)
}
