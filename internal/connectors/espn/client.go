package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit caps outbound requests per second.
	DefaultRateLimit = rate.Limit(5)

	// DefaultBurst is the rate limiter burst size.
	DefaultBurst = 5

	// DateLayout is the YYYYMMDD form of the API's date parameters.
	DateLayout = "20060102"
)

// Client talks to an ESPN-style site API.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRateLimit overrides the outbound request throttle.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(limit, burst) }
}

// NewClient creates a client rooted at baseURL, e.g.
// "https://site.api.espn.com/apis/site/v2/sports".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		limiter: rate.NewLimiter(DefaultRateLimit, DefaultBurst),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Scoreboard fetches the scoreboard for a league. dates is optional, in
// YYYYMMDD form; empty means the API's current window, whose response
// also carries the season calendar.
func (c *Client) Scoreboard(ctx context.Context, sport, league, dates string) ([]byte, error) {
	query := url.Values{}
	if dates != "" {
		query.Set("dates", dates)
	}
	return c.get(ctx, fmt.Sprintf("/%s/%s/scoreboard", sport, league), query)
}

// Standings fetches the league table. date is optional, in YYYYMMDD
// form; empty means the current table, a past date a historical
// snapshot as of that day.
func (c *Client) Standings(ctx context.Context, sport, league, date string) ([]byte, error) {
	query := url.Values{}
	if date != "" {
		query.Set("date", date)
	}
	return c.get(ctx, fmt.Sprintf("/%s/%s/standings", sport, league), query)
}

// Teams fetches the league's team list.
func (c *Client) Teams(ctx context.Context, sport, league string) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("/%s/%s/teams", sport, league), nil)
}

// Roster fetches one team's roster.
func (c *Client) Roster(ctx context.Context, sport, league, teamID string) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("/%s/%s/teams/%s/roster", sport, league, teamID), nil)
}

// News fetches the league's news feed.
func (c *Client) News(ctx context.Context, sport, league string) ([]byte, error) {
	return c.get(ctx, fmt.Sprintf("/%s/%s/news", sport, league), nil)
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request %s: unexpected status %d", path, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response %s: %w", path, err)
	}
	return data, nil
}
