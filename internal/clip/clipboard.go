package clip

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"golang.design/x/clipboard"
)

// Copier writes text to the system clipboard. It prefers the native
// bindings and falls back to the platform's clipboard command when the
// native path cannot initialize (headless session, missing X bindings).
type Copier struct {
	logger *slog.Logger

	initOnce sync.Once
	initErr  error
}

// NewCopier creates a clipboard copier.
func NewCopier(logger *slog.Logger) *Copier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Copier{logger: logger}
}

// Copy places text on the system clipboard.
func (c *Copier) Copy(text string) error {
	c.initOnce.Do(func() {
		c.initErr = clipboard.Init()
	})

	if c.initErr == nil {
		clipboard.Write(clipboard.FmtText, []byte(text))
		return nil
	}

	c.logger.Debug("native clipboard unavailable, trying external command", "error", c.initErr)
	return c.copyWithCommand(text)
}

// copyWithCommand pipes text into the first available platform clipboard
// tool.
func (c *Copier) copyWithCommand(text string) error {
	var candidates [][]string
	switch runtime.GOOS {
	case "darwin":
		candidates = [][]string{{"pbcopy"}}
	case "windows":
		candidates = [][]string{{"clip"}}
	default:
		candidates = [][]string{
			{"wl-copy"},
			{"xclip", "-selection", "clipboard"},
			{"xsel", "--clipboard", "--input"},
		}
	}

	for _, argv := range candidates {
		if _, err := exec.LookPath(argv[0]); err != nil {
			continue
		}
		cmd := exec.Command(argv[0], argv[1:]...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("%s: %w", argv[0], err)
		}
		return nil
	}
	return fmt.Errorf("no clipboard command available")
}
