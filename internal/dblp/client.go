// Package dblp downloads a researcher's bibliography from DBLP.
package dblp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// BaseURL is the DBLP site root.
	BaseURL = "https://dblp.org"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// RateLimit is a polite request rate for the public DBLP API.
	RateLimit = 1.0

	// maxBibTeXSize caps the downloaded bibliography.
	maxBibTeXSize = 32 << 20
)

var pidPattern = regexp.MustCompile(`pid/(.+)`)

// Client is a rate-limited HTTP client for the DBLP API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing or mirrors).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithRateLimit sets the maximum requests per second.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// NewClient creates a new DBLP client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Author is the first author search hit.
type Author struct {
	Name string `json:"name"`
	PID  string `json:"pid"`
	URL  string `json:"url"`
}

type searchResponse struct {
	Result struct {
		Hits struct {
			Hit []struct {
				Info struct {
					Author string `json:"author"`
					URL    string `json:"url"`
				} `json:"info"`
			} `json:"hit"`
		} `json:"hits"`
	} `json:"result"`
}

// checkHTTPErrors returns an error if the HTTP response indicates a problem.
func checkHTTPErrors(resp *http.Response, reqURL string) error {
	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode >= 400 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			URL:        reqURL,
		}
	}
	return nil
}

// get performs a rate-limited GET and returns the body.
func (c *Client) get(ctx context.Context, reqURL string, limit int64) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	if err := checkHTTPErrors(resp, reqURL); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrNetworkError, err)
	}
	if int64(len(body)) > limit {
		return nil, fmt.Errorf("%w: response from %s exceeds %d bytes", ErrInvalidResponse, reqURL, limit)
	}
	return body, nil
}

// SearchAuthor returns the best DBLP match for an author name.
func (c *Client) SearchAuthor(ctx context.Context, name string) (*Author, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrAuthorNotFound)
	}

	reqURL := c.baseURL + "/search/author/api?q=" + url.QueryEscape(name) + "&format=json"
	body, err := c.get(ctx, reqURL, 1<<20)
	if err != nil {
		return nil, err
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("%w: parsing author search: %v", ErrInvalidResponse, err)
	}
	hits := sr.Result.Hits.Hit
	if len(hits) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrAuthorNotFound, name)
	}

	info := hits[0].Info
	pid, err := ExtractPID(info.URL)
	if err != nil {
		return nil, err
	}
	return &Author{Name: info.Author, PID: pid, URL: info.URL}, nil
}

// ExtractPID returns the PID part of a DBLP profile URL, e.g. "h/JoseMiguelHorcas"
// for "https://dblp.org/pid/h/JoseMiguelHorcas".
func ExtractPID(profileURL string) (string, error) {
	m := pidPattern.FindStringSubmatch(profileURL)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrNoPID, profileURL)
	}
	return m[1], nil
}

// FetchBibTeX downloads the full bibliography of a PID.
func (c *Client) FetchBibTeX(ctx context.Context, pid string) (string, error) {
	pid = strings.Trim(strings.TrimSpace(pid), "/")
	if pid == "" {
		return "", fmt.Errorf("%w: empty pid", ErrNoPID)
	}
	body, err := c.get(ctx, c.baseURL+"/pid/"+pid+".bib", maxBibTeXSize)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// AuthorBibTeX resolves an author name and downloads their bibliography.
func (c *Client) AuthorBibTeX(ctx context.Context, name string) (*Author, string, error) {
	author, err := c.SearchAuthor(ctx, name)
	if err != nil {
		return nil, "", err
	}
	bib, err := c.FetchBibTeX(ctx, author.PID)
	if err != nil {
		return author, "", err
	}
	return author, bib, nil
}
