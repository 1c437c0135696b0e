package domain

import (
	"fmt"
	"time"
)

// watchURLBase is the canonical watch page for a video id
const watchURLBase = "https://www.youtube.com/watch?v="

// Video represents one search result from the results page.
// Textual fields keep whatever formatting upstream served (locale and unit
// ambiguity make structured parsing unreliable); they are display strings.
type Video struct {
	ID        string `json:"id"`        // Platform identifier, unique
	Title     string `json:"title"`     // Display title, entity-decoded
	Author    string `json:"author"`    // Channel display name
	Duration  string `json:"duration"`  // "H:MM:SS", "M:SS", or "LIVE"
	Views     string `json:"views"`     // Free-form, e.g. "1.2M views"
	Published string `json:"published"` // Free-form relative time
	Thumbnail string `json:"thumbnail"` // URL, possibly empty
}

// WatchURL returns the canonical watch page URL for a video id.
func WatchURL(id string) string {
	return watchURLBase + id
}

// WatchURL returns the canonical watch page URL for this video.
func (v Video) WatchURL() string {
	return WatchURL(v.ID)
}

// Label returns the picker row for this video.
func (v Video) Label() string {
	return fmt.Sprintf("%s [%s] - %s", v.Title, v.Duration, v.Author)
}

// HistoryEntry is a watched video with its capture time. The embedded Video
// keeps the serialized form flat: video fields and timestamp at one level.
type HistoryEntry struct {
	Video
	Timestamp int64 `json:"timestamp"` // Unix seconds at watch time
}

// Label returns the picker row for this entry, with relative watch time.
func (e HistoryEntry) Label() string {
	return fmt.Sprintf("%s (%s)", e.Video.Label(), relativeAge(e.Timestamp))
}

// ChannelInfo identifies a channel found by a channel search. It exists
// transiently during the subscribe flow; persisted form is Subscription.
type ChannelInfo struct {
	Name   string `json:"name"`
	Handle string `json:"handle"` // @handle or raw channel identifier
}

// Label returns the picker row for this channel.
func (c ChannelInfo) Label() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Handle)
}

// Subscription is a followed channel. Handle is the unique key; Name is
// display only.
type Subscription struct {
	Name   string
	Handle string
}

// Label returns the picker row for this subscription.
func (s Subscription) Label() string {
	return fmt.Sprintf("%s (%s)", s.Name, s.Handle)
}

// FeedItem is one video in the aggregated subscription feed.
type FeedItem struct {
	Video
	Channel string // Subscription display name the video came from
	New     bool   // First time this video id has been observed
}

// Label returns the picker row for this feed item.
func (f FeedItem) Label() string {
	label := fmt.Sprintf("%s - %s", f.Video.Label(), f.Channel)
	if f.New {
		return "NEW " + label
	}
	return label
}

// relativeAge renders a unix timestamp as a coarse "N units ago" string
func relativeAge(unix int64) string {
	d := time.Since(time.Unix(unix, 0))
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
