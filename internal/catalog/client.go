package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/storefront/internal/domain"
)

const (
	defaultTimeout = 15 * time.Second
	userAgent      = "Storefront/1.0"
)

// Client implements domain.CatalogRepository against a dummyjson-style API:
// GET <base>/<collection>?limit=<n>&skip=<offset>
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new collection API client. A non-positive timeout
// falls back to the default.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// BaseURL returns the configured API root
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest fetches one batch of a collection and returns the raw body.
// Every failure is reported as a *FetchError.
func (c *Client) doRequest(ctx context.Context, collection domain.Collection, skip, limit int) ([]byte, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("skip", strconv.Itoa(skip))
	reqURL := fmt.Sprintf("%s/%s?%s", c.baseURL, collection, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &FetchError{Collection: collection, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("catalog request", "collection", collection, "url", reqURL)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	requestDuration.WithLabelValues(string(collection)).Observe(time.Since(start).Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(string(collection), "network").Inc()
		return nil, &FetchError{Collection: collection, Err: err}
	}
	defer resp.Body.Close()

	requestsTotal.WithLabelValues(string(collection), strconv.Itoa(resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Collection: collection, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			Collection: collection,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}

	return body, nil
}

// decode parses a JSON body, reporting malformed data as a fetch failure
func (c *Client) decode(collection domain.Collection, body []byte, dest interface{}) error {
	if err := json.Unmarshal(body, dest); err != nil {
		c.logger.Error("JSON parse error", "collection", collection, "error", err, "bodyLen", len(body))
		return &FetchError{Collection: collection, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	return nil
}

// GetPosts returns one batch of posts with the collection total
func (c *Client) GetPosts(ctx context.Context, skip, limit int) (domain.Page[*domain.Post], error) {
	body, err := c.doRequest(ctx, domain.CollectionPosts, skip, limit)
	if err != nil {
		return domain.Page[*domain.Post]{}, err
	}

	var resp PostsResponse
	if err := c.decode(domain.CollectionPosts, body, &resp); err != nil {
		return domain.Page[*domain.Post]{}, err
	}

	return domain.Page[*domain.Post]{
		Items: MapPosts(resp.Posts),
		Total: resp.Total,
		Skip:  skip,
		Limit: limit,
	}, nil
}

// GetProducts returns one batch of products with the collection total
func (c *Client) GetProducts(ctx context.Context, skip, limit int) (domain.Page[*domain.Product], error) {
	body, err := c.doRequest(ctx, domain.CollectionProducts, skip, limit)
	if err != nil {
		return domain.Page[*domain.Product]{}, err
	}

	var resp ProductsResponse
	if err := c.decode(domain.CollectionProducts, body, &resp); err != nil {
		return domain.Page[*domain.Product]{}, err
	}

	return domain.Page[*domain.Product]{
		Items: MapProducts(resp.Products),
		Total: resp.Total,
		Skip:  skip,
		Limit: limit,
	}, nil
}
