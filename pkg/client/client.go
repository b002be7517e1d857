// Package client talks to the scan API over HTTP.
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
	"strings"
	"time"

	"github.com/scanlog/scanlog/pkg/models"
)

// ErrEmptyBarcode is returned before any request is made when the barcode
// is blank.
var ErrEmptyBarcode = errors.New("barcode must not be empty")

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return e.Detail
}

// Detail extracts the server-supplied detail from err, falling back to
// fallback when err carries none.
func Detail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

// Client is a thin JSON client for the /scans/ resource.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for baseURL (e.g. http://localhost:8000).
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreateScan records a barcode and returns the stored record.
func (c *Client) CreateScan(ctx context.Context, barcode string) (*models.Scan, error) {
	if strings.TrimSpace(barcode) == "" {
		return nil, ErrEmptyBarcode
	}
	body, err := json.Marshal(models.CreateScanRequest{Barcode: barcode})
	if err != nil {
		return nil, fmt.Errorf("failed to encode scan: %w", err)
	}

	var scan models.Scan
	if err := c.do(ctx, http.MethodPost, "/scans/", nil, body, &scan); err != nil {
		return nil, err
	}
	return &scan, nil
}

// ListScans returns the scans matching filter, newest first.
func (c *Client) ListScans(ctx context.Context, filter models.QueryFilter) ([]models.Scan, error) {
	scans := []models.Scan{}
	if err := c.do(ctx, http.MethodGet, "/scans/", filter.Values(), nil, &scans); err != nil {
		return nil, err
	}
	return scans, nil
}

// DeleteAllScans removes every record and returns the server's message.
func (c *Client) DeleteAllScans(ctx context.Context) (string, error) {
	var resp models.MessageResponse
	if err := c.do(ctx, http.MethodDelete, "/scans/", nil, nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body []byte, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{StatusCode: resp.StatusCode, Detail: errorDetail(data)}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorDetail pulls a readable message out of an error body. The API uses
// "detail"; "message" and "error" are accepted from other backends.
func errorDetail(data []byte) string {
	var body struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
		Error   string          `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if len(body.Detail) > 0 {
		var s string
		if err := json.Unmarshal(body.Detail, &s); err == nil {
			return s
		}
		// Validation errors may carry a structured detail; show it raw.
		return string(body.Detail)
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
