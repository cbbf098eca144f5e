// Package client talks to a confstore API server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nauticalab/confstore/internal/api"
)

// DefaultTimeout is the default HTTP client timeout
const DefaultTimeout = 30 * time.Second

// ErrNotFound is returned when the server has nothing at the requested path.
var ErrNotFound = errors.New("not found")

// Client represents an HTTP client for the confstore API
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// ClientConfig holds configuration for the client
type ClientConfig struct {
	BaseURL string
	// Token is sent as a Bearer token when set
	Token   string
	Timeout time.Duration
}

// NewClient creates a new API client
func NewClient(config ClientConfig) *Client {
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &Client{
		baseURL: config.BaseURL,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		token: config.Token,
	}
}

// doRequest performs an HTTP request with authentication
func (c *Client) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}

// parseResponse parses the HTTP response into the target structure
func parseResponse(resp *http.Response, target any) error {
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp api.ErrorResponse
		if err := json.Unmarshal(bodyBytes, &errResp); err != nil {
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(bodyBytes))
		}
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s: %w", errResp.Message, ErrNotFound)
		}
		return fmt.Errorf("API error: %s (code: %d)", errResp.Message, errResp.Code)
	}

	if target != nil {
		if err := json.Unmarshal(bodyBytes, target); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return nil
}

func call[T any](c *Client, ctx context.Context, method, path string, body any) (*T, error) {
	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	var out T
	if err := parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health checks the health of the API server
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	return call[api.HealthResponse](c, ctx, http.MethodGet, "/api/v1/health", nil)
}

// Version retrieves version information from the API server
func (c *Client) Version(ctx context.Context) (*api.VersionResponse, error) {
	return call[api.VersionResponse](c, ctx, http.MethodGet, "/api/v1/version", nil)
}

// Keys lists the top-level keys, or every path when deep is set
func (c *Client) Keys(ctx context.Context, deep bool) (*api.KeysResponse, error) {
	return call[api.KeysResponse](c, ctx, http.MethodGet, "/api/v1/keys?deep="+strconv.FormatBool(deep), nil)
}

// GetValue reads the value at a dotted path
func (c *Client) GetValue(ctx context.Context, path string) (*api.ValueResponse, error) {
	return call[api.ValueResponse](c, ctx, http.MethodGet, "/api/v1/values/"+url.PathEscape(path), nil)
}

// SetValue stores value at a dotted path on the server; it is written on Save
func (c *Client) SetValue(ctx context.Context, path string, value any) (*api.ValueResponse, error) {
	return call[api.ValueResponse](c, ctx, http.MethodPut, "/api/v1/values/"+url.PathEscape(path), api.SetValueRequest{Value: value})
}

// DeleteValue removes the value at a dotted path
func (c *Client) DeleteValue(ctx context.Context, path string) (*api.StatusResponse, error) {
	return call[api.StatusResponse](c, ctx, http.MethodDelete, "/api/v1/values/"+url.PathEscape(path), nil)
}

// GetHeader reads the header of path; the empty path reads the document header
func (c *Client) GetHeader(ctx context.Context, path string) (*api.HeaderResponse, error) {
	return call[api.HeaderResponse](c, ctx, http.MethodGet, "/api/v1/headers/"+headerSegment(path), nil)
}

// SetHeader replaces the header of path; the empty path sets the document header
func (c *Client) SetHeader(ctx context.Context, path, text string) (*api.HeaderResponse, error) {
	return call[api.HeaderResponse](c, ctx, http.MethodPut, "/api/v1/headers/"+headerSegment(path), api.SetHeaderRequest{Header: text})
}

// DeleteHeader removes the header of path
func (c *Client) DeleteHeader(ctx context.Context, path string) (*api.StatusResponse, error) {
	return call[api.StatusResponse](c, ctx, http.MethodDelete, "/api/v1/headers/"+headerSegment(path), nil)
}

// Reload makes the server discard its changes and read the file again
func (c *Client) Reload(ctx context.Context) (*api.StatusResponse, error) {
	return call[api.StatusResponse](c, ctx, http.MethodPost, "/api/v1/reload", nil)
}

// Save makes the server write its changes to the file
func (c *Client) Save(ctx context.Context) (*api.StatusResponse, error) {
	return call[api.StatusResponse](c, ctx, http.MethodPost, "/api/v1/save", nil)
}

func headerSegment(path string) string {
	if path == "" {
		return api.DocumentHeaderPath
	}
	return url.PathEscape(path)
}
