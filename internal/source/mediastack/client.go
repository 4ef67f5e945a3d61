package mediastack

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"news_cache/internal/domain"
)

const SourceID = "mediastack"

// Config holds MediaStack client configuration. The access key must be
// supplied externally; there is no default.
type Config struct {
	BaseURL   string
	AccessKey string
	Countries string
	Limit     int
	Timeout   time.Duration
}

// Client fetches news snapshots for a single date from the MediaStack API.
// It classifies outcomes but never retries; retry policy belongs to the
// caller, if anywhere.
type Client struct {
	httpClient *http.Client
	baseURL    string
	accessKey  string
	countries  string
	limit      int
	logger     *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:   cfg.BaseURL,
		accessKey: cfg.AccessKey,
		countries: cfg.Countries,
		limit:     cfg.Limit,
		logger:    logger.With("source", SourceID),
	}
}

// FetchNews requests all news for the given date. Errors wrap one of the
// domain sentinels: ErrProviderNotFound for a 404, ErrProviderInvalidRequest
// for a 400, ErrProviderUnavailable for everything else.
func (c *Client) FetchNews(ctx context.Context, date string) (*domain.NewsSnapshot, error) {
	reqURL := c.buildURL(date)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "NewsCache/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: execute request: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.logger.Warn("no news for date", "date", date, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: %s", domain.ErrProviderNotFound, date)
	case resp.StatusCode == http.StatusBadRequest:
		c.logger.Error("provider rejected request", "date", date, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", domain.ErrProviderInvalidRequest, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		c.logger.Error("unexpected provider response", "date", date, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", domain.ErrProviderUnavailable, err)
	}

	c.logger.Debug("fetched news", "date", date, "items", len(apiResp.Data))

	return transform(&apiResp), nil
}

func (c *Client) buildURL(date string) string {
	params := url.Values{}
	params.Set("access_key", c.accessKey)
	params.Set("countries", c.countries)
	params.Set("limit", strconv.Itoa(c.limit))
	params.Set("date", date)

	return fmt.Sprintf("%s/v1/news?%s", c.baseURL, params.Encode())
}

func transform(resp *apiResponse) *domain.NewsSnapshot {
	items := make([]domain.NewsItem, 0, len(resp.Data))
	for _, item := range resp.Data {
		items = append(items, domain.NewsItem{
			Author:      item.Author,
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			Source:      item.Source,
			Image:       item.Image,
			Category:    item.Category,
			Language:    item.Language,
			Country:     item.Country,
			PublishedAt: item.PublishedAt,
		})
	}

	return &domain.NewsSnapshot{
		Pagination: domain.Pagination{
			Limit:  resp.Pagination.Limit,
			Offset: resp.Pagination.Offset,
			Count:  resp.Pagination.Count,
			Total:  resp.Pagination.Total,
		},
		Items: items,
	}
}
