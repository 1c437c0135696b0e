package selector

import (
	"log/slog"
	"os/exec"
	"strings"

	"github.com/mmcdole/tube/internal/domain"
)

// Detect picks the selection UI. An explicit command from config wins,
// "builtin" forces the embedded picker, and the default probes PATH for
// fzf before settling on the embedded picker.
func Detect(command string, logger *slog.Logger) domain.Selector {
	if logger == nil {
		logger = slog.Default()
	}

	switch command {
	case "", "auto":
		if path, err := exec.LookPath("fzf"); err == nil {
			logger.Debug("using fzf selector", "path", path)
			return NewFZF("fzf", nil, logger)
		}
		logger.Debug("fzf not found, using builtin selector")
		return NewBuiltin(logger)
	case "builtin":
		return NewBuiltin(logger)
	default:
		fields := strings.Fields(command)
		return NewFZF(fields[0], fields[1:], logger)
	}
}
