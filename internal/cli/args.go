package cli

import (
	"fmt"
	"strings"
)

// Version is set at build time via -ldflags
var Version = "dev"

// Args represents the parsed command line. With no mode flag set, tube
// searches for the positional query and plays the selection.
type Args struct {
	Query []string `arg:"positional" help:"Search query (words are joined)"`

	Video    bool `arg:"--video" help:"Play or download video instead of audio only"`
	Download bool `arg:"-d,--download" help:"Download the selection instead of playing it"`
	Limit    int  `arg:"-l,--limit" help:"Maximum results to fetch (overrides config)"`

	History   bool   `arg:"--history" help:"Pick from watch history"`
	Feed      bool   `arg:"-F,--feed" help:"Browse the latest uploads from subscribed channels"`
	Subscribe string `arg:"-s,--subscribe" help:"Search channels matching QUERY and subscribe to one"`
	Subs      bool   `arg:"--subs" help:"List subscriptions and remove picked ones"`

	CopyURL  bool `arg:"--copy-url" help:"Copy the selection's watch URL instead of playing"`
	Syncplay bool `arg:"--syncplay" help:"Hand the selection to syncplay for a watch party"`

	EditConfig bool `arg:"-e,--edit-config" help:"Open the config file in your editor"`
	ClearCache bool `arg:"--clear-cache" help:"Delete all cached search results"`
}

// Description returns the program description
func (Args) Description() string {
	return "tube - watch and listen to YouTube from the terminal"
}

// Version returns the program version
func (Args) Version() string {
	return "tube " + Version
}

// Epilogue returns additional help text
func (Args) Epilogue() string {
	return `Examples:
  tube lofi hip hop radio        # Search, pick, listen
  tube --video blender tutorial  # Play the selection with video
  tube -d acoustic covers        # Download the selection as mp3
  tube --history                 # Replay something you watched before
  tube -s veritasium             # Subscribe to a channel
  tube -F                        # Browse new uploads from subscriptions`
}

// QueryString joins the positional words back into one search query.
func (a *Args) QueryString() string {
	return strings.TrimSpace(strings.Join(a.Query, " "))
}

// Validate rejects flag combinations with no sensible meaning.
func (a *Args) Validate() error {
	if a.Download && a.CopyURL {
		return fmt.Errorf("cannot combine --download with --copy-url")
	}
	if a.Download && a.Syncplay {
		return fmt.Errorf("cannot combine --download with --syncplay")
	}
	if a.Limit < 0 {
		return fmt.Errorf("limit must be positive")
	}
	return nil
}
