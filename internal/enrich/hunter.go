package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.hunter.io/v2"

// FinderResult is the provider's best guess for one person.
type FinderResult struct {
	Email string
	Score int
}

// DomainEmail is one entry from a domain-wide search.
type DomainEmail struct {
	FirstName string
	LastName  string
	Email     string
}

// Client is a rate-limited Hunter email-finder client.
type Client struct {
	apiKey  string
	baseURL string
	hc      *http.Client
	limiter *rate.Limiter
}

func NewClient(apiKey string, reqPerSec float64) *Client {
	if reqPerSec <= 0 {
		reqPerSec = 1
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		hc:      &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Limit(reqPerSec), 1),
	}
}

// WithBaseURL points the client at a different endpoint. Used by tests.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimRight(u, "/")
	return c
}

type finderResponse struct {
	Data struct {
		Email string `json:"email"`
		Score int    `json:"score"`
	} `json:"data"`
}

type domainSearchResponse struct {
	Data struct {
		Emails []struct {
			Value     string `json:"value"`
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
		} `json:"emails"`
	} `json:"data"`
}

// FindEmail queries the email-finder endpoint for one (domain, name) pair.
func (c *Client) FindEmail(ctx context.Context, dom, firstName, lastName string) (FinderResult, error) {
	params := url.Values{
		"api_key":    {c.apiKey},
		"domain":     {dom},
		"first_name": {firstName},
		"last_name":  {lastName},
	}
	var fr finderResponse
	if err := c.get(ctx, "/email-finder", params, &fr); err != nil {
		return FinderResult{}, err
	}
	return FinderResult{Email: fr.Data.Email, Score: fr.Data.Score}, nil
}

// DomainSearch lists known senior addresses for a domain.
func (c *Client) DomainSearch(ctx context.Context, dom string) ([]DomainEmail, error) {
	params := url.Values{
		"api_key":   {c.apiKey},
		"domain":    {dom},
		"seniority": {"senior"},
		"limit":     {"10"},
	}
	var dr domainSearchResponse
	if err := c.get(ctx, "/domain-search", params, &dr); err != nil {
		return nil, err
	}
	out := make([]DomainEmail, 0, len(dr.Data.Emails))
	for _, e := range dr.Data.Emails {
		out = append(out, DomainEmail{FirstName: e.FirstName, LastName: e.LastName, Email: e.Value})
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("finder request: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 1024))
		return fmt.Errorf("finder status %d: %s", res.StatusCode, string(b))
	}
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return fmt.Errorf("finder decode: %w", err)
	}
	return nil
}
