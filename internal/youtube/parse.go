package youtube

import (
	"html"

	"github.com/mmcdole/tube/internal/domain"
)

// liveDuration is the sentinel for items without a duration badge.
// Undecorated duration text means a livestream.
const liveDuration = "LIVE"

// parseVideos walks the fixed result path and maps every video-shaped item
// to a Video. Items of other shapes (ads, shelves) are skipped, a missing
// path yields an empty slice rather than an error, and the limit is
// applied only after filtering so skipped items never starve the result.
func parseVideos(data any, limit int) []domain.Video {
	var videos []domain.Video
	for _, item := range resultItems(data) {
		renderer, ok := dig(item, "videoRenderer")
		if !ok {
			continue
		}
		video, ok := mapVideo(renderer)
		if !ok {
			continue
		}
		videos = append(videos, video)
	}

	if limit > 0 && len(videos) > limit {
		videos = videos[:limit]
	}
	return videos
}

// parseChannels is the channel-shaped counterpart of parseVideos.
func parseChannels(data any, limit int) []domain.ChannelInfo {
	var channels []domain.ChannelInfo
	for _, item := range resultItems(data) {
		renderer, ok := dig(item, "channelRenderer")
		if !ok {
			continue
		}
		channel, ok := mapChannel(renderer)
		if !ok {
			continue
		}
		channels = append(channels, channel)
	}

	if limit > 0 && len(channels) > limit {
		channels = channels[:limit]
	}
	return channels
}

// resultItems digs to the flat list of search result items. Any absent
// step of the path yields nil.
func resultItems(data any) []any {
	sections, ok := digSlice(data,
		"contents",
		"twoColumnSearchResultsRenderer",
		"primaryContents",
		"sectionListRenderer",
		"contents",
	)
	if !ok || len(sections) == 0 {
		return nil
	}

	items, ok := digSlice(sections[0], "itemSectionRenderer", "contents")
	if !ok {
		return nil
	}
	return items
}

// mapVideo extracts one Video, tolerating missing fields. The id is the
// only field with no safe default; items without one are dropped.
func mapVideo(renderer any) (domain.Video, bool) {
	id, ok := digString(renderer, "videoId")
	if !ok || id == "" {
		return domain.Video{}, false
	}

	video := domain.Video{
		ID:        id,
		Title:     html.UnescapeString(runText(renderer, "title")),
		Author:    runText(renderer, "longBylineText"),
		Duration:  liveDuration,
		Views:     simpleText(renderer, "viewCountText"),
		Published: simpleText(renderer, "publishedTimeText"),
		Thumbnail: lastThumbnail(renderer),
	}

	if d := simpleText(renderer, "lengthText"); d != "" {
		video.Duration = d
	}

	return video, true
}

// mapChannel extracts one ChannelInfo. Name and handle must both end up
// non-empty or the item is dropped. The raw identifier is promoted to an
// @handle only when a subscriber-count badge is present; upstream renders
// that badge for handle-shaped identifiers.
func mapChannel(renderer any) (domain.ChannelInfo, bool) {
	name := simpleText(renderer, "title")
	raw, _ := digString(renderer, "channelId")
	if name == "" || raw == "" {
		return domain.ChannelInfo{}, false
	}

	handle := raw
	if _, ok := dig(renderer, "subscriberCountText"); ok {
		handle = "@" + raw
	}

	return domain.ChannelInfo{Name: name, Handle: handle}, true
}

// runText returns the first run's text under field.runs[0].text.
func runText(renderer any, field string) string {
	runs, ok := digSlice(renderer, field, "runs")
	if !ok || len(runs) == 0 {
		return ""
	}
	text, _ := digString(runs[0], "text")
	return text
}

// simpleText returns the text under field.simpleText.
func simpleText(renderer any, field string) string {
	text, _ := digString(renderer, field, "simpleText")
	return text
}

// lastThumbnail returns the URL of the last thumbnail variant, which is
// heuristically the highest resolution offered.
func lastThumbnail(renderer any) string {
	thumbs, ok := digSlice(renderer, "thumbnail", "thumbnails")
	if !ok || len(thumbs) == 0 {
		return ""
	}
	url, _ := digString(thumbs[len(thumbs)-1], "url")
	return url
}
