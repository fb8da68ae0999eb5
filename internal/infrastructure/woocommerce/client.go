// Package woocommerce is a read-only client for the WooCommerce REST
// API, used by the backup tool to pull the full order history.
package woocommerce

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/orderdocs/backend/internal/domain/order"
	"github.com/orderdocs/backend/internal/domain/shared"
)

const (
	// apiBasePath is the WooCommerce REST API v3 prefix.
	apiBasePath = "/wp-json/wc/v3"
	// DefaultPageSize is the page size used when none is configured.
	DefaultPageSize = 20
	// defaultPageDelay spaces out paged requests so a full export does
	// not hammer the store.
	defaultPageDelay = 2 * time.Second
	// maxResponseSize limits the response body size to prevent memory exhaustion
	maxResponseSize = 32 * 1024 * 1024
)

// Config holds WooCommerce REST API credentials.
type Config struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	TimeoutSeconds int
}

// Validate checks that the configuration is complete.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("woocommerce configuration is required")
	}
	if c.BaseURL == "" {
		return errors.New("woocommerce base url is required")
	}
	if c.ConsumerKey == "" || c.ConsumerSecret == "" {
		return errors.New("woocommerce consumer key and secret are required")
	}
	return nil
}

// Client fetches orders from a WooCommerce store.
type Client struct {
	config     *Config
	httpClient *http.Client
	pageDelay  time.Duration
	logger     *zap.Logger
}

// ClientOption is a functional option for configuring Client.
type ClientOption func(*Client)

// WithClientLogger sets a custom logger for Client.
func WithClientLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithPageDelay overrides the delay between paged requests.
func WithPageDelay(d time.Duration) ClientOption {
	return func(c *Client) {
		c.pageDelay = d
	}
}

// NewClient creates a client from configuration.
func NewClient(config *Config, opts ...ClientOption) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	timeout := time.Duration(config.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		pageDelay: defaultPageDelay,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListOrders fetches a single page of orders, newest first.
func (c *Client) ListOrders(ctx context.Context, page, perPage int) ([]order.Order, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPageSize
	}

	endpoint := strings.TrimRight(c.config.BaseURL, "/") + apiBasePath + "/orders"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := url.Values{}
	q.Set("consumer_key", c.config.ConsumerKey)
	q.Set("consumer_secret", c.config.ConsumerSecret)
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("orderby", "date")
	q.Set("order", "desc")
	req.URL.RawQuery = q.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, shared.ErrSourceFetch.WithCause(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, shared.ErrSourceFetch.WithCause(err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, shared.ErrSourceFetch.WithCause(
			fmt.Errorf("woocommerce API returned status %d: %s", resp.StatusCode, string(body)))
	}

	var orders []order.Order
	if err := json.Unmarshal(body, &orders); err != nil {
		return nil, shared.ErrSourceFetch.WithCause(err)
	}

	c.logger.Debug("Fetched orders page",
		zap.Int("page", page),
		zap.Int("count", len(orders)))
	return orders, nil
}

// FetchAllOrders pages through the store's order history until an empty
// page, pausing between requests.
func (c *Client) FetchAllOrders(ctx context.Context) ([]order.Order, error) {
	var all []order.Order
	for page := 1; ; page++ {
		orders, err := c.ListOrders(ctx, page, DefaultPageSize)
		if err != nil {
			return nil, err
		}
		if len(orders) == 0 {
			return all, nil
		}
		all = append(all, orders...)

		if c.pageDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.pageDelay):
			}
		}
	}
}
