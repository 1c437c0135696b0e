package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmcdole/tube/internal/domain"
	"github.com/mmcdole/tube/internal/store"
)

// SearchService runs every scrape through the result cache: check first,
// fetch on a miss, then write the result back. Cache writes are
// best-effort and never fail the operation.
type SearchService struct {
	source domain.VideoSource
	cache  *store.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// NewSearchService creates a search service. A non-positive ttl falls back
// to the cache default.
func NewSearchService(source domain.VideoSource, cache *store.Cache, ttl time.Duration, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = store.DefaultCacheTTL
	}
	return &SearchService{
		source: source,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

// SearchVideos returns up to limit videos matching query, in upstream
// order. An empty result set reports domain.ErrNoResults; transport and
// parse failures propagate unchanged.
func (s *SearchService) SearchVideos(ctx context.Context, query string, limit int) ([]domain.Video, error) {
	key := searchKey(PrefixVideoSearch, query, limit)

	var cached []domain.Video
	if s.cache.Get(key, &cached) && len(cached) > 0 {
		s.logger.Debug("video search served from cache", "query", query, "count", len(cached))
		return cached, nil
	}

	videos, err := s.source.SearchVideos(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, domain.ErrNoResults
	}

	s.cachePut(key, videos)
	return videos, nil
}

// SearchChannels returns up to limit channels matching query. Empty and
// error semantics match SearchVideos.
func (s *SearchService) SearchChannels(ctx context.Context, query string, limit int) ([]domain.ChannelInfo, error) {
	key := searchKey(PrefixChannelSearch, query, limit)

	var cached []domain.ChannelInfo
	if s.cache.Get(key, &cached) && len(cached) > 0 {
		s.logger.Debug("channel search served from cache", "query", query, "count", len(cached))
		return cached, nil
	}

	channels, err := s.source.SearchChannels(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(channels) == 0 {
		return nil, domain.ErrNoResults
	}

	s.cachePut(key, channels)
	return channels, nil
}

// FetchChannelVideos returns the latest uploads for a channel handle.
// Unlike the search operations an empty result is a normal success: feed
// aggregation expects quiet channels.
func (s *SearchService) FetchChannelVideos(ctx context.Context, handle string, limit int) ([]domain.Video, error) {
	key := searchKey(PrefixChannelFeed, handle, limit)

	var cached []domain.Video
	if s.cache.Get(key, &cached) && len(cached) > 0 {
		return cached, nil
	}

	videos, err := s.source.ChannelVideos(ctx, handle, limit)
	if err != nil {
		return nil, err
	}

	if len(videos) > 0 {
		s.cachePut(key, videos)
	}
	return videos, nil
}

func (s *SearchService) cachePut(key string, value any) {
	if err := s.cache.Set(key, value, s.ttl); err != nil {
		s.logger.Warn("failed to cache search result", "key", key, "error", err)
	}
}
