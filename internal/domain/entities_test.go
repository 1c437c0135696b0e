package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestWatchURL(t *testing.T) {
	want := "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
	if got := WatchURL("dQw4w9WgXcQ"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	v := Video{ID: "dQw4w9WgXcQ"}
	if got := v.WatchURL(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestVideoLabel(t *testing.T) {
	tests := []struct {
		name  string
		video Video
		want  string
	}{
		{
			name:  "regular",
			video: Video{Title: "Go in 100 Seconds", Duration: "2:21", Author: "Fireship"},
			want:  "Go in 100 Seconds [2:21] - Fireship",
		},
		{
			name:  "livestream",
			video: Video{Title: "lofi radio", Duration: "LIVE", Author: "Lofi Girl"},
			want:  "lofi radio [LIVE] - Lofi Girl",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.video.Label(); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestHistoryEntryLabel(t *testing.T) {
	e := HistoryEntry{
		Video:     Video{Title: "t", Duration: "1:00", Author: "a"},
		Timestamp: time.Now().Add(-2 * time.Hour).Unix(),
	}

	got := e.Label()
	if !strings.HasPrefix(got, "t [1:00] - a (") {
		t.Errorf("unexpected label prefix: %q", got)
	}
	if !strings.Contains(got, "2h ago") {
		t.Errorf("expected relative age in label, got %q", got)
	}

	fresh := HistoryEntry{Video: Video{Title: "t", Duration: "1:00", Author: "a"}, Timestamp: time.Now().Unix()}
	if !strings.Contains(fresh.Label(), "just now") {
		t.Errorf("expected 'just now' for fresh entry, got %q", fresh.Label())
	}
}

func TestHistoryEntryJSONShape(t *testing.T) {
	e := HistoryEntry{
		Video:     Video{ID: "abc", Title: "x"},
		Timestamp: 1700000000,
	}

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The embedded video must serialize flat, not nested.
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m["id"] != "abc" {
		t.Errorf("expected flat id field, got %v", m)
	}
	if m["timestamp"] != float64(1700000000) {
		t.Errorf("expected timestamp field, got %v", m)
	}
	if _, nested := m["Video"]; nested {
		t.Error("video fields should not be nested under a Video key")
	}
}

func TestFeedItemLabel(t *testing.T) {
	item := FeedItem{
		Video:   Video{Title: "t", Duration: "3:00", Author: "a"},
		Channel: "Some Channel",
	}
	if got := item.Label(); got != "t [3:00] - a - Some Channel" {
		t.Errorf("unexpected label: %q", got)
	}

	item.New = true
	if got := item.Label(); !strings.HasPrefix(got, "NEW ") {
		t.Errorf("expected NEW prefix, got %q", got)
	}
}

func TestChannelAndSubscriptionLabels(t *testing.T) {
	ch := ChannelInfo{Name: "Veritasium", Handle: "@veritasium"}
	if got := ch.Label(); got != "Veritasium (@veritasium)" {
		t.Errorf("unexpected label: %q", got)
	}

	sub := Subscription{Name: "Veritasium", Handle: "@veritasium"}
	if got := sub.Label(); got != "Veritasium (@veritasium)" {
		t.Errorf("unexpected label: %q", got)
	}
}
