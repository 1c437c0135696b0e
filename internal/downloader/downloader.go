package downloader

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/mmcdole/tube/internal/config"
)

const (
	ytdlpCommand = "yt-dlp"

	// outputTemplate keeps the video id in the filename so downloads stay
	// traceable after the title changes upstream.
	outputTemplate = "%(title)s [%(id)s].%(ext)s"
)

// Downloader shells out to yt-dlp to save a video or its audio track.
type Downloader struct {
	dir    string
	video  bool
	logger *slog.Logger
}

// NewDownloader creates a downloader writing into the configured download
// directory. The video flag picks between an mp4 remux and an mp3 extract.
func NewDownloader(cfg config.DownloadConfig, video bool, logger *slog.Logger) *Downloader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Downloader{
		dir:    cfg.Dir,
		video:  video,
		logger: logger,
	}
}

// commandArgs assembles the yt-dlp argument list for one download.
func (d *Downloader) commandArgs(url string) []string {
	args := []string{"-o", filepath.Join(d.dir, outputTemplate)}
	if d.video {
		args = append(args, "--remux-video", "mp4")
	} else {
		args = append(args, "-x", "--audio-format", "mp3")
	}
	return append(args, url)
}

// Download fetches url into the download directory, streaming yt-dlp's
// own progress output to the terminal.
func (d *Downloader) Download(url string) error {
	if _, err := exec.LookPath(ytdlpCommand); err != nil {
		return fmt.Errorf("%s not found in PATH: %w", ytdlpCommand, err)
	}

	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return fmt.Errorf("create download dir %s: %w", d.dir, err)
	}

	args := d.commandArgs(url)

	d.logger.Info("starting download", "url", url, "dir", d.dir, "video", d.video)

	cmd := exec.Command(ytdlpCommand, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", ytdlpCommand, err)
	}
	return nil
}
