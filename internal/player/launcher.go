package player

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mmcdole/tube/internal/config"
)

// playerProfile defines the flags a known player needs for quiet
// streaming playback.
type playerProfile struct {
	quietArgs   []string
	noVideoArg  string
	formatFlag  string // flag prefix, format value appended directly
	okExitCodes []int
}

// playerProfiles registry - flag shapes for the players we know how to drive.
// Unknown commands run with only the configured args.
var playerProfiles = map[string]playerProfile{
	"mpv": {
		quietArgs:  []string{"--really-quiet"},
		noVideoArg: "--no-video",
		formatFlag: "--ytdl-format=",
		// mpv exits 4 when the user quits with a signal mid-stream
		okExitCodes: []int{4},
	},
	"vlc": {
		quietArgs:  []string{"--quiet"},
		noVideoArg: "--novideo",
	},
	"syncplay": {},
}

// Launcher starts an external player on a watch URL and waits in the
// foreground until playback ends.
type Launcher struct {
	command string
	args    []string
	video   bool
	format  string
	logger  *slog.Logger
}

// NewLauncher creates a launcher from the player configuration.
func NewLauncher(cfg config.PlayerConfig, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: cfg.Command,
		args:    cfg.Args,
		video:   cfg.Video,
		format:  cfg.Format,
		logger:  logger,
	}
}

// profileKey normalizes a configured command to a registry key, stripping
// any path and Windows extension.
func profileKey(command string) string {
	base := filepath.Base(command)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.ToLower(base)
}

// playerArgs assembles the full argument list for one playback.
func (l *Launcher) playerArgs(url string) []string {
	profile := playerProfiles[profileKey(l.command)]

	args := append([]string{}, profile.quietArgs...)
	if !l.video && profile.noVideoArg != "" {
		args = append(args, profile.noVideoArg)
	}
	if l.format != "" && profile.formatFlag != "" {
		args = append(args, profile.formatFlag+l.format)
	}
	args = append(args, l.args...)
	return append(args, url)
}

// Play runs the player on url and blocks until it exits. The terminal is
// handed to the child so players with console UIs work. A user-initiated
// quit is success even when the player signals it with a nonzero status.
func (l *Launcher) Play(url string) error {
	if _, err := exec.LookPath(l.command); err != nil {
		return fmt.Errorf("player %s not found in PATH: %w", l.command, err)
	}

	args := l.playerArgs(url)

	l.logger.Info("launching player", "command", l.command, "args", args, "url", url)

	cmd := exec.Command(l.command, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	profile := playerProfiles[profileKey(l.command)]

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		for _, code := range profile.okExitCodes {
			if exitErr.ExitCode() == code {
				l.logger.Debug("player quit by user", "status", code)
				return nil
			}
		}
	}
	return fmt.Errorf("player %s: %w", l.command, err)
}
