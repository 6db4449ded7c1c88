package wellknown

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/m-mizutani/appassoc/pkg/domain/interfaces"
	"github.com/m-mizutani/appassoc/pkg/domain/model"
	"github.com/m-mizutani/appassoc/pkg/utils/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

const (
	// DefaultAppSiteAssociationURL is Apple's CDN endpoint for apple-app-site-association documents
	DefaultAppSiteAssociationURL = "https://app-site-association.cdn-apple.com/a/v1/{domain}"

	// DefaultAssetLinksURL is where Android expects the Digital Asset Links document
	DefaultAssetLinksURL = "https://www.{domain}/.well-known/assetlinks.json"

	domainPlaceholder = "{domain}"
)

// Apple's CDN rejects requests that do not look like a browser
var appSiteAssociationHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/125.0.6422.112 Safari/537.36",
	"Accept":       "application/json, text/plain, */*",
	"Content-Type": "application/json",
}

type client struct {
	httpClient            *http.Client
	appSiteAssociationURL string
	assetLinksURL         string
	headers               http.Header
}

// Option is a functional option for the client
type Option func(*client)

// WithHTTPClient sets the HTTP client shared by all requests
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// WithAppSiteAssociationURL sets the App Site Association URL template. "{domain}" is replaced by the queried domain.
func WithAppSiteAssociationURL(tmpl string) Option {
	return func(c *client) {
		c.appSiteAssociationURL = tmpl
	}
}

// WithAssetLinksURL sets the assetlinks.json URL template. "{domain}" is replaced by the queried domain.
func WithAssetLinksURL(tmpl string) Option {
	return func(c *client) {
		c.assetLinksURL = tmpl
	}
}

// WithHeader adds a header sent with every request
func WithHeader(key, value string) Option {
	return func(c *client) {
		c.headers.Add(key, value)
	}
}

// NewClient creates a client for the well-known association endpoints
func NewClient(opts ...Option) interfaces.WellKnownClient {
	c := &client{
		httpClient:            http.DefaultClient,
		appSiteAssociationURL: DefaultAppSiteAssociationURL,
		assetLinksURL:         DefaultAssetLinksURL,
		headers:               http.Header{},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchAppSiteAssociation fetches the apple-app-site-association document of domain from Apple's CDN
func (c *client) FetchAppSiteAssociation(ctx context.Context, domain string) (*model.AppSiteAssociation, error) {
	url := buildURL(c.appSiteAssociationURL, domain)

	var doc model.AppSiteAssociation
	if err := c.getJSON(ctx, url, appSiteAssociationHeaders, &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// FetchAssetLinks fetches the assetlinks.json document of domain
func (c *client) FetchAssetLinks(ctx context.Context, domain string) ([]model.AssetLink, error) {
	url := buildURL(c.assetLinksURL, domain)

	var links []model.AssetLink
	if err := c.getJSON(ctx, url, nil, &links); err != nil {
		return nil, err
	}

	return links, nil
}

// getJSON sends a GET request and decodes a 200 response body into out.
// Any other status is returned as *model.FetchError.
func (c *client) getJSON(ctx context.Context, url string, headers map[string]string, out any) error {
	logger := ctxlog.From(ctx)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return goerr.Wrap(err, "failed to create request", goerr.V("url", url))
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}
	// Configured headers replace the fixed set for the same key
	for key, values := range c.headers {
		req.Header.Del(key)
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	logger.Debug("Sending request", "url", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to send request", goerr.V("url", url))
	}
	defer resp.Body.Close()

	logger.Debug("Received response", "url", url, "status", resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return &model.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return goerr.Wrap(err, "failed to read response body", goerr.V("url", url))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return goerr.Wrap(err, "failed to decode JSON response",
			goerr.V("url", url),
			goerr.V("body_size", len(body)),
		)
	}

	return nil
}

func buildURL(tmpl, domain string) string {
	return strings.ReplaceAll(tmpl, domainPlaceholder, domain)
}
