package dblp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const searchJSON = `{"result":{"hits":{"@total":"1","hit":[{"info":{"author":"José Miguel Horcas","url":"https://dblp.org/pid/157/1234"}}]}}}`

const bibText = `@inproceedings{DBLP:conf/splc/Horcas23,
  author = {Jos{\'{e}} Miguel Horcas},
  title = {Sampling},
  year = {2023}
}
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/search/author/api", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("format") != "json" {
			http.Error(w, "bad format", http.StatusBadRequest)
			return
		}
		switch r.URL.Query().Get("q") {
		case "José Miguel Horcas":
			w.Write([]byte(searchJSON))
		case "No PID":
			w.Write([]byte(`{"result":{"hits":{"hit":[{"info":{"author":"No PID","url":"https://dblp.org/search"}}]}}}`))
		case "Broken":
			w.Write([]byte(`{"result":`))
		case "Busy":
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			w.Write([]byte(`{"result":{"hits":{"@total":"0"}}}`))
		}
	})
	mux.HandleFunc("/pid/157/1234.bib", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(bibText))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(WithBaseURL(srv.URL+"/"), WithRateLimit(1000))
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient()
	if c.baseURL != BaseURL {
		t.Errorf("baseURL = %s, want %s", c.baseURL, BaseURL)
	}
	if c.httpClient.Timeout != DefaultTimeout {
		t.Errorf("timeout = %v, want %v", c.httpClient.Timeout, DefaultTimeout)
	}
	if c.limiter == nil {
		t.Error("limiter should not be nil")
	}
}

func TestNewClient_WithOptions(t *testing.T) {
	hc := &http.Client{Timeout: 5 * time.Second}
	c := NewClient(WithHTTPClient(hc), WithBaseURL("http://mirror.example/"), WithRateLimit(5))
	if c.httpClient != hc {
		t.Error("custom HTTP client not used")
	}
	if c.baseURL != "http://mirror.example" {
		t.Errorf("baseURL = %s", c.baseURL)
	}
	if float64(c.limiter.Limit()) != 5 {
		t.Errorf("limit = %v, want 5", c.limiter.Limit())
	}
}

func TestSearchAuthor(t *testing.T) {
	c := newTestClient(newTestServer(t))

	author, err := c.SearchAuthor(context.Background(), "José Miguel Horcas")
	if err != nil {
		t.Fatalf("SearchAuthor() error = %v", err)
	}
	if author.PID != "157/1234" {
		t.Errorf("PID = %q, want 157/1234", author.PID)
	}
	if author.Name != "José Miguel Horcas" {
		t.Errorf("Name = %q", author.Name)
	}
}

func TestSearchAuthor_Errors(t *testing.T) {
	c := newTestClient(newTestServer(t))

	tests := []struct {
		name  string
		query string
		check func(error) bool
	}{
		{"no hits", "Nobody", func(err error) bool { return errors.Is(err, ErrAuthorNotFound) }},
		{"empty name", "  ", func(err error) bool { return errors.Is(err, ErrAuthorNotFound) }},
		{"no pid", "No PID", func(err error) bool { return errors.Is(err, ErrNoPID) }},
		{"bad json", "Broken", func(err error) bool { return errors.Is(err, ErrInvalidResponse) }},
		{"rate limited", "Busy", IsRateLimited},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.SearchAuthor(context.Background(), tt.query)
			if err == nil {
				t.Fatal("expected error")
			}
			if !tt.check(err) {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestFetchBibTeX(t *testing.T) {
	c := newTestClient(newTestServer(t))

	bib, err := c.FetchBibTeX(context.Background(), "157/1234")
	if err != nil {
		t.Fatalf("FetchBibTeX() error = %v", err)
	}
	if bib != bibText {
		t.Errorf("bib = %q", bib)
	}

	_, err = c.FetchBibTeX(context.Background(), "000/0000")
	if !IsNotFound(err) {
		t.Errorf("missing pid error = %v, want not found", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected APIError 404, got %v", err)
	}

	if _, err := c.FetchBibTeX(context.Background(), ""); !errors.Is(err, ErrNoPID) {
		t.Errorf("empty pid error = %v", err)
	}
}

func TestAuthorBibTeX(t *testing.T) {
	c := newTestClient(newTestServer(t))

	author, bib, err := c.AuthorBibTeX(context.Background(), "José Miguel Horcas")
	if err != nil {
		t.Fatalf("AuthorBibTeX() error = %v", err)
	}
	if author.PID != "157/1234" || bib != bibText {
		t.Errorf("author = %+v, bib = %q", author, bib)
	}
}

func TestCancelledContext(t *testing.T) {
	c := newTestClient(newTestServer(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.SearchAuthor(ctx, "José Miguel Horcas"); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestExtractPID(t *testing.T) {
	tests := []struct {
		url     string
		want    string
		wantErr bool
	}{
		{"https://dblp.org/pid/157/1234", "157/1234", false},
		{"https://dblp.org/pid/h/JoseMiguelHorcas", "h/JoseMiguelHorcas", false},
		{"https://dblp.org/search?q=x", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ExtractPID(tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("ExtractPID(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ExtractPID(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestGet_ResponseSizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/exact":
			w.Write([]byte(strings.Repeat("x", 16)))
		case "/over":
			w.Write([]byte(strings.Repeat("x", 17)))
		}
	}))
	t.Cleanup(srv.Close)
	c := newTestClient(srv)

	body, err := c.get(context.Background(), srv.URL+"/exact", 16)
	if err != nil {
		t.Fatalf("get(exact) error = %v", err)
	}
	if len(body) != 16 {
		t.Errorf("len(body) = %d, want 16", len(body))
	}

	body, err = c.get(context.Background(), srv.URL+"/over", 16)
	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("get(over) error = %v, want ErrInvalidResponse", err)
	}
	if body != nil {
		t.Errorf("get(over) returned %d bytes, want none", len(body))
	}
}

func TestFetchBibTeX_Oversized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chunk := []byte(strings.Repeat("%", 1<<20))
		for i := 0; i <= maxBibTeXSize>>20; i++ {
			w.Write(chunk)
		}
	}))
	t.Cleanup(srv.Close)

	_, err := newTestClient(srv).FetchBibTeX(context.Background(), "157/1234")
	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("FetchBibTeX() error = %v, want ErrInvalidResponse", err)
	}
}
