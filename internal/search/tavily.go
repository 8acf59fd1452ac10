package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.tavily.com"

// Result is one search hit. PublishedDate is optional and unreliable.
type Result struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	URL           string `json:"url"`
	PublishedDate string `json:"published_date,omitempty"`
}

// Request mirrors the provider's search contract.
type Request struct {
	Query          string
	MaxResults     int
	Depth          string // basic|advanced
	IncludeDomains []string
	Days           int // restrict to the last N days; 0 = no restriction
}

// Client is a rate-limited Tavily search client.
type Client struct {
	apiKey  string
	baseURL string
	hc      *http.Client
	limiter *rate.Limiter
}

// NewClient builds a client with a requests-per-second budget enforced as a
// minimum inter-call interval.
func NewClient(apiKey string, reqPerSec float64) *Client {
	if reqPerSec <= 0 {
		reqPerSec = 1
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		hc:      &http.Client{Timeout: 30 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(reqPerSec), 1),
	}
}

// WithBaseURL points the client at a different endpoint. Used by tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

type searchRequest struct {
	APIKey         string   `json:"api_key"`
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth,omitempty"`
	MaxResults     int      `json:"max_results,omitempty"`
	IncludeDomains []string `json:"include_domains,omitempty"`
	Days           int      `json:"days,omitempty"`
}

type searchResponse struct {
	Results []Result `json:"results"`
}

// Search issues one search call, blocking on the rate budget first.
func (c *Client) Search(ctx context.Context, req Request) ([]Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body := searchRequest{
		APIKey:         c.apiKey,
		Query:          req.Query,
		SearchDepth:    req.Depth,
		MaxResults:     req.MaxResults,
		IncludeDomains: req.IncludeDomains,
		Days:           req.Days,
	}
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", buf)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return nil, fmt.Errorf("search status %d: %s", res.StatusCode, string(b))
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("search decode: %w", err)
	}
	return sr.Results, nil
}
