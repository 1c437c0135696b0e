package selector

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mmcdole/tube/internal/domain"
)

// FZF drives an external fzf-compatible selector. Items are written to the
// child's stdin as "{index}\t{label}" lines; the hidden index column
// survives the round trip so the selection maps back to the caller's slice
// even after fzf reorders by match score.
type FZF struct {
	command   string
	extraArgs []string
	logger    *slog.Logger
}

// NewFZF creates a selector backed by the given external command.
func NewFZF(command string, extraArgs []string, logger *slog.Logger) *FZF {
	if logger == nil {
		logger = slog.Default()
	}
	return &FZF{command: command, extraArgs: extraArgs, logger: logger}
}

// Select presents items and returns the index of the chosen one. Exit
// status 130 (interrupt) and 1 (nothing accepted) both report
// domain.ErrCancelled; anything else from the child is a real failure.
func (f *FZF) Select(items []string, prompt string) (int, error) {
	if len(items) == 0 {
		return 0, domain.ErrCancelled
	}

	var input strings.Builder
	for i, label := range items {
		fmt.Fprintf(&input, "%d\t%s\n", i, label)
	}

	args := append([]string{}, f.extraArgs...)
	args = append(args,
		"--delimiter=\t",
		"--with-nth=2..",
		"--prompt="+prompt+"> ",
	)

	f.logger.Debug("launching selector", "command", f.command, "items", len(items))

	cmd := exec.Command(f.command, args...)
	cmd.Stdin = strings.NewReader(input.String())
	cmd.Stderr = os.Stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			switch exitErr.ExitCode() {
			case 1, 130:
				return 0, domain.ErrCancelled
			}
		}
		return 0, fmt.Errorf("run %s: %w", f.command, err)
	}

	line := strings.TrimRight(string(out), "\n")
	field, _, _ := strings.Cut(line, "\t")
	idx, err := strconv.Atoi(field)
	if err != nil || idx < 0 || idx >= len(items) {
		return 0, fmt.Errorf("unexpected selector output %q", line)
	}
	return idx, nil
}
