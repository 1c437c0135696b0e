package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/tube/internal/config"
	"github.com/mmcdole/tube/internal/domain"
)

// Search runs the main search, pick, play loop. Returning from the
// player reopens the picker on the same result set so a session can
// chain videos; cancelling the picker ends the session.
func (a *App) Search(ctx context.Context, query string, act Action) error {
	videos, err := a.search.SearchVideos(ctx, query, a.cfg.Search.Limit)
	if err != nil {
		return err
	}

	labels := make([]string, len(videos))
	for i, v := range videos {
		labels[i] = v.Label()
	}

	for {
		idx, err := a.selector.Select(labels, "Search")
		if errors.Is(err, domain.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}

		done, err := a.perform(videos[idx], act)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// History opens the watch history picker, most recent first. A query
// narrows the list with fuzzy title matching before the picker opens.
func (a *App) History(ctx context.Context, query string, act Action) error {
	if err := a.history.Load(); err != nil {
		return err
	}

	entries := a.history.GetAll()
	if query != "" {
		entries = filterHistory(entries, query)
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "History is empty.")
		return nil
	}

	labels := make([]string, len(entries))
	for i, e := range entries {
		labels[i] = e.Label()
	}

	for {
		idx, err := a.selector.Select(labels, "History")
		if errors.Is(err, domain.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}

		done, err := a.perform(entries[idx].Video, act)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// filterHistory narrows entries to fuzzy title matches, best match first.
func filterHistory(entries []domain.HistoryEntry, query string) []domain.HistoryEntry {
	titles := make([]string, len(entries))
	for i, e := range entries {
		titles[i] = e.Title
	}

	matches := fuzzy.RankFindFold(query, titles)
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Distance < matches[j].Distance
	})

	out := make([]domain.HistoryEntry, 0, len(matches))
	for _, m := range matches {
		out = append(out, entries[m.OriginalIndex])
	}
	return out
}

// Feed aggregates the latest uploads from every subscription and opens
// the picker on them.
func (a *App) Feed(ctx context.Context, act Action) error {
	subs, err := a.subs.Load()
	if err != nil {
		return err
	}
	if len(subs) == 0 {
		fmt.Fprintln(a.out, "No subscriptions yet. Add one with: tube -s <channel>")
		return nil
	}

	fmt.Fprintf(a.out, "Fetching feed from %d channels...\n", len(subs))
	items, err := a.feed.Fetch(ctx, subs, a.cfg.Search.Limit)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Nothing in the feed right now.")
		return nil
	}

	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.Label()
	}

	for {
		idx, err := a.selector.Select(labels, "Feed")
		if errors.Is(err, domain.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}

		done, err := a.perform(items[idx].Video, act)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// Subscribe searches channels matching query and records the picked one.
func (a *App) Subscribe(ctx context.Context, query string) error {
	channels, err := a.search.SearchChannels(ctx, query, a.cfg.Search.Limit)
	if err != nil {
		return err
	}

	labels := make([]string, len(channels))
	for i, ch := range channels {
		labels[i] = ch.Label()
	}

	idx, err := a.selector.Select(labels, "Subscribe")
	if errors.Is(err, domain.ErrCancelled) {
		return nil
	}
	if err != nil {
		return err
	}

	ch := channels[idx]
	if ch.Handle == "" {
		return fmt.Errorf("channel %s has no handle to subscribe with", ch.Name)
	}

	if err := a.subs.Add(domain.Subscription{Name: ch.Name, Handle: ch.Handle}); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Subscribed to %s\n", ch.Name)
	return nil
}

// Subscriptions opens the picker on the subscription list; picking a
// channel unsubscribes from it. The picker reopens on the remaining
// channels until the user cancels.
func (a *App) Subscriptions(ctx context.Context) error {
	for {
		subs, err := a.subs.Load()
		if err != nil {
			return err
		}
		if len(subs) == 0 {
			fmt.Fprintln(a.out, "No subscriptions yet. Add one with: tube -s <channel>")
			return nil
		}

		labels := make([]string, len(subs))
		for i, sub := range subs {
			labels[i] = sub.Label()
		}

		idx, err := a.selector.Select(labels, "Unsubscribe")
		if errors.Is(err, domain.ErrCancelled) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := a.subs.Remove(subs[idx].Handle); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Unsubscribed from %s\n", subs[idx].Name)
	}
}

// EditConfig opens the config file in the editor, writing the defaults
// first if no config exists yet.
func (a *App) EditConfig() error {
	path, err := config.EnsureConfigFile(a.paths)
	if err != nil {
		return err
	}
	return a.openEditor(path)
}

// ClearCache deletes every cached search result.
func (a *App) ClearCache() error {
	if err := a.cache.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Cache cleared.")
	return nil
}
