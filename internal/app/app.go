package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/mmcdole/tube/internal/config"
	"github.com/mmcdole/tube/internal/domain"
	"github.com/mmcdole/tube/internal/service"
	"github.com/mmcdole/tube/internal/store"
)

// Action is what happens to a picked video.
type Action int

const (
	ActionPlay Action = iota
	ActionDownload
	ActionCopyURL
)

// Copier places text on the system clipboard.
type Copier interface {
	Copy(text string) error
}

// Deps carries everything App needs wired up.
type Deps struct {
	Config     *config.Config
	Paths      config.Paths
	Search     *service.SearchService
	Feed       *service.FeedService
	History    *store.History
	Subs       *store.Subscriptions
	Cache      *store.Cache
	Selector   domain.Selector
	Player     domain.Player
	Downloader domain.Downloader
	Copier     Copier
	Logger     *slog.Logger
	Out        io.Writer // User-facing output, defaults to stdout
}

// App drives the command line modes on top of the services and stores.
type App struct {
	cfg        *config.Config
	paths      config.Paths
	search     *service.SearchService
	feed       *service.FeedService
	history    *store.History
	subs       *store.Subscriptions
	cache      *store.Cache
	selector   domain.Selector
	player     domain.Player
	downloader domain.Downloader
	copier     Copier
	logger     *slog.Logger
	out        io.Writer
}

// New creates the application from its wired dependencies.
func New(deps Deps) *App {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	out := deps.Out
	if out == nil {
		out = os.Stdout
	}
	return &App{
		cfg:        deps.Config,
		paths:      deps.Paths,
		search:     deps.Search,
		feed:       deps.Feed,
		history:    deps.History,
		subs:       deps.Subs,
		cache:      deps.Cache,
		selector:   deps.Selector,
		player:     deps.Player,
		downloader: deps.Downloader,
		copier:     deps.Copier,
		logger:     logger,
		out:        out,
	}
}

// perform applies the action to a picked video. It reports whether the
// session is finished: playback hands control back to the picker, the
// one-shot actions end it.
func (a *App) perform(v domain.Video, act Action) (bool, error) {
	url := v.WatchURL()

	switch act {
	case ActionDownload:
		return true, a.downloader.Download(url)

	case ActionCopyURL:
		if err := a.copier.Copy(url); err != nil {
			// The run should still be useful without a clipboard, so
			// echo the URL for manual copying.
			fmt.Fprintln(a.out, url)
			return true, err
		}
		fmt.Fprintf(a.out, "Copied %s\n", url)
		return true, nil

	default:
		a.recordHistory(v)
		fmt.Fprintf(a.out, "Playing %s\n", v.Title)
		if err := a.player.Play(url); err != nil {
			return true, err
		}
		return false, nil
	}
}

// recordHistory adds v to the watch history. Failures are logged and do
// not block playback.
func (a *App) recordHistory(v domain.Video) {
	if err := a.history.Add(v); err != nil {
		a.logger.Warn("failed to record history", "video", v.ID, "error", err)
	}
}

// openEditor runs the configured editor on path and waits for it.
func (a *App) openEditor(path string) error {
	editor := a.cfg.Editor
	if editor == "" {
		editor = "vi"
	}

	fields := strings.Fields(editor)
	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	a.logger.Debug("opening editor", "editor", editor, "path", path)
	return cmd.Run()
}
