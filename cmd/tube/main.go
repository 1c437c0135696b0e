package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alexflint/go-arg"

	"github.com/mmcdole/tube/internal/app"
	"github.com/mmcdole/tube/internal/cli"
	"github.com/mmcdole/tube/internal/clip"
	"github.com/mmcdole/tube/internal/config"
	"github.com/mmcdole/tube/internal/domain"
	"github.com/mmcdole/tube/internal/downloader"
	"github.com/mmcdole/tube/internal/log"
	"github.com/mmcdole/tube/internal/player"
	"github.com/mmcdole/tube/internal/selector"
	"github.com/mmcdole/tube/internal/service"
	"github.com/mmcdole/tube/internal/store"
	"github.com/mmcdole/tube/internal/youtube"
)

func main() {
	var args cli.Args
	arg.MustParse(&args)

	if err := run(&args); err != nil {
		if errors.Is(err, domain.ErrNoResults) {
			fmt.Fprintln(os.Stderr, "No results found.")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args *cli.Args) error {
	if err := args.Validate(); err != nil {
		return err
	}

	paths := config.DefaultPaths()

	cfg, err := config.LoadConfig(paths)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting tube", "version", cli.Version)

	// Flag overrides on top of the loaded config
	if args.Limit > 0 {
		cfg.Search.Limit = args.Limit
	}
	if args.Video {
		cfg.Player.Video = true
	}
	if args.Syncplay {
		cfg.Player.Command = "syncplay"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cache := store.NewCache(paths, logger)
	subs := store.NewSubscriptions(paths, logger)

	// Load up front so recording a watch in any mode appends to the
	// persisted history instead of overwriting it with this session's.
	history := store.NewHistory(paths, cfg.History.MaxEntries, logger)
	if err := history.Load(); err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	client := youtube.NewClient(logger)
	searchSvc := service.NewSearchService(client, cache, time.Duration(cfg.Search.CacheTTL)*time.Second, logger)

	// The seen database only opens in feed mode, so parallel tube runs
	// don't contend on the bolt file lock.
	var feedSvc *service.FeedService
	if args.Feed {
		seen, err := store.NewSeenStore(paths, logger)
		if err != nil {
			return fmt.Errorf("failed to open seen store: %w", err)
		}
		defer seen.Close()
		feedSvc = service.NewFeedService(searchSvc, seen, logger)
	}

	a := app.New(app.Deps{
		Config:     cfg,
		Paths:      paths,
		Search:     searchSvc,
		Feed:       feedSvc,
		History:    history,
		Subs:       subs,
		Cache:      cache,
		Selector:   selector.Detect(cfg.Selector.Command, logger),
		Player:     player.NewLauncher(cfg.Player, logger),
		Downloader: downloader.NewDownloader(cfg.Download, cfg.Player.Video, logger),
		Copier:     clip.NewCopier(logger),
		Logger:     logger,
	})

	act := app.ActionPlay
	switch {
	case args.Download:
		act = app.ActionDownload
	case args.CopyURL:
		act = app.ActionCopyURL
	}

	switch {
	case args.EditConfig:
		return a.EditConfig()
	case args.ClearCache:
		return a.ClearCache()
	case args.Subs:
		return a.Subscriptions(ctx)
	case args.Subscribe != "":
		return a.Subscribe(ctx, args.Subscribe)
	case args.Feed:
		return a.Feed(ctx, act)
	case args.History:
		return a.History(ctx, args.QueryString(), act)
	default:
		query := args.QueryString()
		if query == "" {
			return fmt.Errorf("no search query given (try: tube lofi hip hop)")
		}
		return a.Search(ctx, query, act)
	}
}
