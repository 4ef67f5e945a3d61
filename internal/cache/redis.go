package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"news_cache/internal/domain"
)

// SnapshotStore keeps news snapshots in Redis keyed by date with a fixed TTL.
// Every write is a single SET with expiration, so concurrent writers for the
// same date simply overwrite each other (last writer wins).
type SnapshotStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
	logger    *slog.Logger
}

type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	TTL       time.Duration
}

func NewSnapshotStore(ctx context.Context, cfg Config, logger *slog.Logger) (*SnapshotStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	logger.Info("connected to redis", "addr", cfg.Addr)

	return &SnapshotStore{
		client:    client,
		keyPrefix: cfg.KeyPrefix,
		ttl:       cfg.TTL,
		logger:    logger,
	}, nil
}

// Get returns the cached snapshot for date, or (nil, nil) when the key is
// absent or expired.
func (s *SnapshotStore) Get(ctx context.Context, date string) (*domain.NewsSnapshot, error) {
	data, err := s.client.Get(ctx, s.key(date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var snapshot domain.NewsSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}

	s.logger.Debug("cache hit", "date", date)

	return &snapshot, nil
}

// Set stores the snapshot under news:<date> with the configured TTL.
func (s *SnapshotStore) Set(ctx context.Context, date string, snapshot *domain.NewsSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := s.client.Set(ctx, s.key(date), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}

	s.logger.Debug("cached snapshot", "date", date, "ttl", s.ttl)

	return nil
}

func (s *SnapshotStore) key(date string) string {
	return s.keyPrefix + date
}

func (s *SnapshotStore) Close() error {
	return s.client.Close()
}
