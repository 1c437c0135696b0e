package youtube

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mmcdole/tube/internal/domain"
	"github.com/mmcdole/tube/internal/log"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewClient(log.NullLogger())
	c.baseURL = server.URL
	return c
}

func resultsPageHTML(items ...string) string {
	return "<html><body><script>var ytInitialData = " + resultsPage(items...) + ";</script></body></html>"
}

func TestClientSendsBrowserHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla/5.0") {
			t.Errorf("expected browser user agent, got %q", ua)
		}
		if al := r.Header.Get("Accept-Language"); !strings.HasPrefix(al, "en-US") {
			t.Errorf("expected english accept-language, got %q", al)
		}
		w.Write([]byte(resultsPageHTML(fullVideo)))
	})

	videos, err := c.SearchVideos(context.Background(), "cartoons", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(videos) != 1 || videos[0].ID != "abc123" {
		t.Errorf("unexpected result: %+v", videos)
	}
}

func TestClientQueryEncoding(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/results" {
			t.Errorf("expected /results path, got %q", r.URL.Path)
		}
		if q := r.URL.Query().Get("search_query"); q != "lofi hip hop & chill" {
			t.Errorf("unexpected decoded query: %q", q)
		}
		// The filter token must arrive encoded exactly once.
		if sp := r.URL.Query().Get("sp"); sp != "EgIQAQ==" {
			t.Errorf("unexpected decoded filter token: %q", sp)
		}
		w.Write([]byte(resultsPageHTML()))
	})

	if _, err := c.SearchVideos(context.Background(), "lofi hip hop & chill", 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClientChannelFilterToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if sp := r.URL.Query().Get("sp"); sp != "EgIQAg==" {
			t.Errorf("unexpected decoded filter token: %q", sp)
		}
		w.Write([]byte(resultsPageHTML()))
	})

	if _, err := c.SearchChannels(context.Background(), "science", 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClientBadStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.SearchVideos(context.Background(), "anything", 10)
	if err == nil {
		t.Fatal("expected error for 429 response")
	}

	var netErr *domain.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %T", err)
	}
	if netErr.Status != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", netErr.Status)
	}
}

func TestClientTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	c := NewClient(log.NullLogger())
	c.baseURL = server.URL
	server.Close() // Refuse connections from now on

	_, err := c.SearchVideos(context.Background(), "anything", 10)
	if err == nil {
		t.Fatal("expected error for refused connection")
	}

	var netErr *domain.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("expected NetworkError, got %T", err)
	}
	if netErr.Status != 0 {
		t.Errorf("expected zero status for transport failure, got %d", netErr.Status)
	}
}

func TestClientUnparseablePage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>blocked</body></html>"))
	})

	_, err := c.SearchVideos(context.Background(), "anything", 10)
	if err == nil {
		t.Fatal("expected error for page without embedded data")
	}

	var parseErr *domain.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %T", err)
	}
}

func TestClientContextCancellation(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(resultsPageHTML()))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.SearchVideos(ctx, "anything", 10); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
