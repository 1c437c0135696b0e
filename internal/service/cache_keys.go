package service

import "fmt"

// Cache key namespaces for scrape results
const (
	// PrefixVideoSearch namespaces video searches (video:{query}:{limit})
	PrefixVideoSearch = "video"

	// PrefixChannelSearch namespaces channel searches (channel:{query}:{limit})
	PrefixChannelSearch = "channel"

	// PrefixChannelFeed namespaces per-channel upload fetches (feed:{handle}:{limit})
	PrefixChannelFeed = "feed"
)

// searchKey composes the logical cache key for an operation kind and its
// argument. Only the composed string has to be deterministic; the cache
// hashes it before touching disk.
func searchKey(prefix, arg string, limit int) string {
	return fmt.Sprintf("%s:%s:%d", prefix, arg, limit)
}
