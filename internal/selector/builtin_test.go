package selector

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func testModel(items []string, width int) pickerModel {
	m := newPickerModel(items, "Test")
	m.width = width
	m.height = 40
	return m
}

func TestPickerViewTruncatesWithoutSplittingRunes(t *testing.T) {
	// Wide CJK title, far longer than the terminal.
	m := testModel([]string{"日本語のタイトルがとても長い動画です"}, 12)

	view := m.View()
	if !utf8.ValidString(view) {
		t.Fatalf("expected valid UTF-8 after truncation, got %q", view)
	}
	if strings.Contains(view, "�") {
		t.Errorf("expected no replacement characters in view, got %q", view)
	}
}

func TestPickerViewTruncatesByDisplayWidth(t *testing.T) {
	// Each CJK rune occupies two columns; at width 10 only a few fit.
	m := testModel([]string{"ああああああああああ"}, 10)

	view := m.View()
	for _, line := range strings.Split(view, "\n") {
		if strings.Contains(line, "ああああ") {
			t.Errorf("expected at most three wide runes per row at width 10, got %q", line)
		}
	}
}

func TestPickerRefilterNarrowsAndResets(t *testing.T) {
	m := testModel([]string{"alpha", "beta", "gamma"}, 80)

	if len(m.matches) != 3 {
		t.Fatalf("expected every item shown for an empty query, got %d", len(m.matches))
	}

	m.input.SetValue("ga")
	m.cursor = 2
	m.refilter()

	if len(m.matches) != 1 {
		t.Fatalf("expected one match for %q, got %d", "ga", len(m.matches))
	}
	if m.index.labels[m.matches[0].Index] != "gamma" {
		t.Errorf("unexpected match: %+v", m.matches)
	}
	if m.cursor != 0 {
		t.Errorf("expected cursor reset after the match set shrank, got %d", m.cursor)
	}
}
