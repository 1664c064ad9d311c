package swell

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storemigrate/internal/logger"
)

const defaultBaseURL = "https://api.swell.store"

// Client talks to the Swell backend API using store-key basic auth.
type Client struct {
	baseURL    string
	storeID    string
	secretKey  string
	httpClient *http.Client
	logger     *logger.Logger
}

func NewClient(storeID, secretKey string, logger *logger.Logger) *Client {
	return &Client{
		baseURL:   defaultBaseURL,
		storeID:   storeID,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

// Get runs a list query against an endpoint such as "/products" and returns
// the count/results page shape.
func (c *Client) Get(endpoint string, query url.Values) (*ListResponse, error) {
	body, err := c.do("GET", endpoint, query, nil)
	if err != nil {
		return nil, err
	}

	var list ListResponse
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &list, nil
}

// Post creates a record and returns the raw created record.
func (c *Client) Post(endpoint string, payload interface{}) (json.RawMessage, error) {
	return c.do("POST", endpoint, nil, payload)
}

// Put updates a record and returns the raw updated record.
func (c *Client) Put(endpoint string, payload interface{}) (json.RawMessage, error) {
	return c.do("PUT", endpoint, nil, payload)
}

// Delete removes a record.
func (c *Client) Delete(endpoint string) (json.RawMessage, error) {
	return c.do("DELETE", endpoint, nil, nil)
}

// Batch submits an ordered list of operations to the /:batch endpoint and
// returns one response element per input element. An element without an id
// field means the operation was rejected, typically as a duplicate.
func (c *Client) Batch(items []BatchItem) ([]json.RawMessage, error) {
	body, err := c.do("POST", "/:batch", nil, items)
	if err != nil {
		return nil, err
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(body, &elements); err != nil {
		return nil, fmt.Errorf("failed to decode batch response: %w", err)
	}
	return elements, nil
}

func (c *Client) do(method, endpoint string, query url.Values, payload interface{}) (json.RawMessage, error) {
	reqURL := c.baseURL + "/" + strings.TrimPrefix(endpoint, "/")

	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.SetBasicAuth(c.storeID, c.secretKey)
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

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("API request failed: %d - %s", resp.StatusCode, string(body))
	}

	return body, nil
}
