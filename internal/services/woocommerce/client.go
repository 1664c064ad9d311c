package woocommerce

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storemigrate/internal/logger"
)

// Client talks to the WooCommerce REST API (wp-json/wc/v3). Total page counts
// are reported through the X-WP-TotalPages response header.
type Client struct {
	baseURL        string
	consumerKey    string
	consumerSecret string
	httpClient     *http.Client
	logger         *logger.Logger
}

// Response is one page of records plus the header-reported total page count.
type Response struct {
	Data       json.RawMessage
	TotalPages int
}

func NewClient(baseURL, consumerKey, consumerSecret string, logger *logger.Logger) *Client {
	return &Client{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Get fetches a single page of records from an endpoint such as "products"
// or "products/categories".
func (c *Client) Get(endpoint string, query url.Values) (*Response, error) {
	reqURL := fmt.Sprintf("%s/wp-json/wc/v3/%s", c.baseURL, strings.TrimPrefix(endpoint, "/"))

	req, err := http.NewRequest("GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.consumerKey, c.consumerSecret)
	req.Header.Set("Content-Type", "application/json")
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed: %d - %s", resp.StatusCode, string(body))
	}

	totalPages := 0
	if header := resp.Header.Get("X-WP-TotalPages"); header != "" {
		totalPages, err = strconv.Atoi(header)
		if err != nil {
			return nil, fmt.Errorf("invalid X-WP-TotalPages header %q: %w", header, err)
		}
	}

	return &Response{Data: body, TotalPages: totalPages}, nil
}
