package domain

import (
	"context"
)

// VideoSource provides search access to the upstream video platform.
type VideoSource interface {
	// SearchVideos returns up to limit videos matching query, in upstream
	// order. An empty result is returned as an empty slice, not an error.
	SearchVideos(ctx context.Context, query string, limit int) ([]Video, error)

	// SearchChannels returns up to limit channels matching query.
	SearchChannels(ctx context.Context, query string, limit int) ([]ChannelInfo, error)

	// ChannelVideos returns the latest uploads for a channel handle.
	ChannelVideos(ctx context.Context, handle string, limit int) ([]Video, error)
}

// Selector presents labeled rows and returns the index the user chose.
// Implementations return ErrCancelled when the user dismisses the picker.
type Selector interface {
	Select(items []string, prompt string) (int, error)
}

// Player launches a watch URL in an external media player and blocks until
// playback ends.
type Player interface {
	Play(url string) error
}

// Downloader saves a video to local disk via an external tool, blocking
// until the download finishes.
type Downloader interface {
	Download(url string) error
}
