package sharepoint

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	ntlmssp "github.com/Azure/go-ntlmssp"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/sharepoint-lookup/internal/core/domain"
	"github.com/custodia-labs/sharepoint-lookup/internal/core/ports/driven"
	"github.com/custodia-labs/sharepoint-lookup/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.SearchClient = (*Client)(nil)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// searchPath is the search REST endpoint relative to the site URL.
	searchPath = "/_api/search/query"

	// acceptJSON selects the compact JSON response format.
	acceptJSON = "application/json;odata=nometadata"

	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 64 * 1024
)

// Client searches a single SharePoint site.
type Client struct {
	siteURL     *url.URL
	httpClient  *http.Client
	account     string
	password    string
	rateLimiter *RateLimiter
}

// NewClient creates a client for the site in settings.
// A non-empty access token selects bearer authentication; otherwise
// NTLM credentials are required.
func NewClient(ctx context.Context, settings domain.ConnectionSettings) (*Client, error) {
	site, err := parseSiteURL(settings.SiteURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		siteURL:     site,
		rateLimiter: NewRateLimiter(),
	}

	switch {
	case settings.AccessToken != "":
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: settings.AccessToken})
		c.httpClient = oauth2.NewClient(ctx, ts)
		c.httpClient.Timeout = DefaultTimeout
		logger.Debug("SharePoint client for %s using bearer token", site)

	case settings.Username != "" && settings.Password != "":
		c.httpClient = &http.Client{
			Transport: ntlmssp.Negotiator{RoundTripper: http.DefaultTransport.(*http.Transport).Clone()},
			Timeout:   DefaultTimeout,
		}
		c.account = settings.Username
		if settings.Domain != "" {
			c.account = settings.Domain + `\` + settings.Username
		}
		c.password = settings.Password
		logger.Debug("SharePoint client for %s using NTLM as %s", site, c.account)

	default:
		return nil, ErrMissingCredentials
	}

	return c, nil
}

// NewClientWithHTTPClient creates a client with a custom http.Client.
// The http.Client is responsible for authentication.
func NewClientWithHTTPClient(siteURL string, httpClient *http.Client) (*Client, error) {
	site, err := parseSiteURL(siteURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		siteURL:     site,
		httpClient:  httpClient,
		rateLimiter: NewRateLimiter(),
	}, nil
}

// SiteURL returns the site the client searches.
func (c *Client) SiteURL() string {
	return c.siteURL.String()
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// Search runs the query and returns the primary (relevant) results.
func (c *Client) Search(ctx context.Context, q domain.SearchQuery) ([]domain.RawResult, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	endpoint := c.searchURL(q)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", acceptJSON)
	if c.account != "" {
		req.SetBasicAuth(c.account, c.password)
	}

	logger.Trace("SharePoint search: %s", endpoint)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if err := c.rateLimiter.CheckThrottle(resp); err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, decodeError(resp.StatusCode, endpoint, body)
	}

	results, err := decodeResults(resp.Body)
	if err != nil {
		return nil, err
	}
	logger.Debug("SharePoint search %q: %d results", q.Text, len(results))
	return results, nil
}

// searchURL builds the GET URL for a query. String parameters are
// single-quoted, with embedded quotes doubled.
func (c *Client) searchURL(q domain.SearchQuery) string {
	rowLimit := q.RowLimit
	if rowLimit <= 0 {
		rowLimit = domain.DefaultRowLimit
	}

	params := url.Values{}
	params.Set("querytext", quoteParam(q.Text))
	params.Set("rowlimit", strconv.Itoa(rowLimit))
	params.Set("enableinterleaving", strconv.FormatBool(q.EnableInterleaving))
	params.Set("selectproperties", quoteParam(strings.Join(SelectProperties, ",")))

	u := *c.siteURL
	u.Path = strings.TrimSuffix(u.Path, "/") + searchPath
	u.RawQuery = params.Encode()
	return u.String()
}

func quoteParam(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func parseSiteURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSiteURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSiteURL, raw)
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
