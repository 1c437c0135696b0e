package service

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/time/rate"

	"github.com/mmcdole/tube/internal/domain"
)

const (
	// feedWorkers bounds concurrent per-channel fetches
	feedWorkers = 4

	// feedFetchesPerSec gates the aggregate scrape rate across workers
	feedFetchesPerSec = 2
)

// SeenMarker records which feed videos have been surfaced before.
type SeenMarker interface {
	Seen(id string) bool
	MarkSeen(ids []string) error
}

// FeedService aggregates the latest uploads across all subscriptions.
type FeedService struct {
	search  *SearchService
	seen    SeenMarker
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewFeedService creates a feed service.
func NewFeedService(search *SearchService, seen SeenMarker, logger *slog.Logger) *FeedService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedService{
		search:  search,
		seen:    seen,
		limiter: rate.NewLimiter(rate.Limit(feedFetchesPerSec), 1),
		logger:  logger,
	}
}

// Fetch pulls up to perChannel uploads for every subscription. Channels
// are fetched concurrently but the combined result keeps subscription
// order. A failing channel logs a warning and contributes nothing; the
// batch aborts only when ctx is cancelled. Every returned video is
// annotated with its channel name and whether it is new since the last
// fetch, and the whole batch is marked seen before returning.
func (f *FeedService) Fetch(ctx context.Context, subs []domain.Subscription, perChannel int) ([]domain.FeedItem, error) {
	if len(subs) == 0 {
		return nil, nil
	}

	results := make([][]domain.Video, len(subs))

	var wg sync.WaitGroup
	sem := make(chan struct{}, feedWorkers)

	for i, sub := range subs {
		wg.Add(1)
		go func(i int, sub domain.Subscription) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			if err := f.limiter.Wait(ctx); err != nil {
				return
			}

			videos, err := f.search.FetchChannelVideos(ctx, sub.Handle, perChannel)
			if err != nil {
				f.logger.Warn("channel feed fetch failed", "channel", sub.Handle, "error", err)
				return
			}
			results[i] = videos
		}(i, sub)
	}

	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var items []domain.FeedItem
	var ids []string
	for i, sub := range subs {
		for _, v := range results[i] {
			items = append(items, domain.FeedItem{
				Video:   v,
				Channel: sub.Name,
				New:     !f.seen.Seen(v.ID),
			})
			ids = append(ids, v.ID)
		}
	}

	if err := f.seen.MarkSeen(ids); err != nil {
		f.logger.Warn("failed to record seen feed videos", "error", err)
	}

	f.logger.Debug("feed assembled", "channels", len(subs), "videos", len(items))
	return items, nil
}
