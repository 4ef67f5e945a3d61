package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"news_cache/internal/domain"
)

// BackfillService handles one backfill request end to end: re-check the
// cache, fetch from the provider on a genuine miss, write back with TTL.
type BackfillService struct {
	store    SnapshotStore
	provider NewsProvider
	logger   *slog.Logger
}

func NewBackfillService(store SnapshotStore, provider NewsProvider, logger *slog.Logger) *BackfillService {
	return &BackfillService{
		store:    store,
		provider: provider,
		logger:   logger,
	}
}

// Process runs the backfill pipeline for a date. The cache re-check absorbs
// duplicate and redelivered requests: if another worker already populated the
// entry, this is a no-op. The re-check is not a lock, so two concurrent
// workers can still both fetch; the overwriting cache write keeps that
// harmless.
//
// Every outcome is terminal for the request. Provider errors are returned so
// the consume site can log them, but nothing is requeued.
func (s *BackfillService) Process(ctx context.Context, date string) error {
	existing, err := s.store.Get(ctx, date)
	if err != nil {
		return fmt.Errorf("re-check cache: %w", err)
	}

	if existing != nil {
		s.logger.Info("cache already populated, skipping fetch", "date", date)
		return nil
	}

	snapshot, err := s.provider.FetchNews(ctx, date)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProviderNotFound):
			s.logger.Warn("provider has no news for date", "date", date)
		case errors.Is(err, domain.ErrProviderInvalidRequest):
			s.logger.Error("provider rejected backfill request", "date", date, "error", err)
		default:
			s.logger.Error("provider fetch failed", "date", date, "error", err)
		}
		return err
	}

	if err := s.store.Set(ctx, date, snapshot); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}

	s.logger.Info("backfill completed", "date", date, "items", len(snapshot.Items))

	return nil
}
