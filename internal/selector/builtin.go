package selector

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"
	"golang.org/x/term"

	"github.com/mmcdole/tube/internal/domain"
)

// maxVisible caps the result rows drawn below the query line
const maxVisible = 15

var (
	accentColor = lipgloss.Color("#FF4444")
	dimColor    = lipgloss.Color("#6B7280")
	lightColor  = lipgloss.Color("#9CA3AF")
	whiteColor  = lipgloss.Color("#F9FAFB")

	cursorStyle = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	matchStyle  = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	normalStyle = lipgloss.NewStyle().Foreground(lightColor)
	activeStyle = lipgloss.NewStyle().Foreground(whiteColor).Bold(true)
	countStyle  = lipgloss.NewStyle().Foreground(dimColor)
)

// labelIndex implements fuzzy.Source over pre-lowered labels so queries
// match case-insensitively without per-keystroke allocation.
type labelIndex struct {
	labels []string
	lower  []string
}

func (ix *labelIndex) String(i int) string { return ix.lower[i] }
func (ix *labelIndex) Len() int            { return len(ix.labels) }

func newLabelIndex(labels []string) *labelIndex {
	lower := make([]string, len(labels))
	for i, l := range labels {
		lower[i] = strings.ToLower(l)
	}
	return &labelIndex{labels: labels, lower: lower}
}

// Builtin is the embedded picker used when no external selector is
// available. It runs a full-screen fuzzy filter list inside the current
// terminal.
type Builtin struct {
	logger *slog.Logger
}

// NewBuiltin creates the embedded picker.
func NewBuiltin(logger *slog.Logger) *Builtin {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builtin{logger: logger}
}

// Select presents items and returns the index of the chosen one, or
// domain.ErrCancelled when the user backs out.
func (b *Builtin) Select(items []string, prompt string) (int, error) {
	if len(items) == 0 {
		return 0, domain.ErrCancelled
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return 0, fmt.Errorf("interactive selection requires a terminal")
	}

	b.logger.Debug("launching builtin picker", "items", len(items))

	p := tea.NewProgram(newPickerModel(items, prompt), tea.WithAltScreen())
	out, err := p.Run()
	if err != nil {
		return 0, fmt.Errorf("run picker: %w", err)
	}

	final := out.(pickerModel)
	if final.choice < 0 {
		return 0, domain.ErrCancelled
	}
	return final.choice, nil
}

type pickerModel struct {
	input   textinput.Model
	index   *labelIndex
	matches fuzzy.Matches
	cursor  int
	width   int
	height  int
	choice  int
}

func newPickerModel(items []string, prompt string) pickerModel {
	ti := textinput.New()
	ti.Prompt = prompt + "> "
	ti.PromptStyle = cursorStyle
	ti.CharLimit = 200
	ti.Focus()

	m := pickerModel{
		input:  ti,
		index:  newLabelIndex(items),
		choice: -1,
	}

	// Size before the first WindowSizeMsg arrives so frame one is right.
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		m.width, m.height = w, h
	}

	m.refilter()
	return m
}

// Init implements tea.Model.
func (m pickerModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit

		case tea.KeyEnter:
			if len(m.matches) > 0 {
				m.choice = m.matches[m.cursor].Index
			}
			return m, tea.Quit

		case tea.KeyDown, tea.KeyCtrlN:
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil

		case tea.KeyUp, tea.KeyCtrlP:
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refilter()
	}
	return m, cmd
}

// refilter recomputes the match set for the current query. An empty query
// shows every item in original order.
func (m *pickerModel) refilter() {
	query := strings.ToLower(strings.TrimSpace(m.input.Value()))
	if query == "" {
		all := make(fuzzy.Matches, m.index.Len())
		for i := range all {
			all[i] = fuzzy.Match{Index: i}
		}
		m.matches = all
	} else {
		m.matches = fuzzy.FindFrom(query, m.index)
	}
	if m.cursor >= len(m.matches) {
		m.cursor = 0
	}
}

// View implements tea.Model.
func (m pickerModel) View() string {
	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(countStyle.Render(fmt.Sprintf("  %d/%d", len(m.matches), m.index.Len())))
	b.WriteString("\n")

	visible := len(m.matches)
	if visible > maxVisible {
		visible = maxVisible
	}
	if m.height > 0 && visible > m.height-4 {
		visible = m.height - 4
	}

	// Keep the cursor on screen by scrolling the window, fzf style.
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}

	for i := start; i < start+visible && i < len(m.matches); i++ {
		match := m.matches[i]
		selected := i == m.cursor

		if selected {
			b.WriteString(cursorStyle.Render("> "))
		} else {
			b.WriteString("  ")
		}

		// Truncate by display width, not bytes, so wide and multibyte
		// titles never get split mid-rune.
		label := m.index.labels[match.Index]
		if m.width > 4 {
			label = runewidth.Truncate(label, m.width-4, "")
		}
		b.WriteString(highlight(label, match.MatchedIndexes, selected))
		b.WriteString("\n")
	}

	return b.String()
}

// highlight renders label with the matched byte positions emphasised,
// batching runs of equal match state to keep escape sequences down.
func highlight(label string, matched []int, selected bool) string {
	base := normalStyle
	if selected {
		base = activeStyle
	}
	if len(matched) == 0 {
		return base.Render(label)
	}

	matchSet := make(map[int]bool, len(matched))
	for _, idx := range matched {
		matchSet[idx] = true
	}

	var out strings.Builder
	i := 0
	for i < len(label) {
		isMatch := matchSet[i]
		j := i
		for j < len(label) && matchSet[j] == isMatch {
			j++
		}
		if isMatch {
			out.WriteString(matchStyle.Render(label[i:j]))
		} else {
			out.WriteString(base.Render(label[i:j]))
		}
		i = j
	}
	return out.String()
}
