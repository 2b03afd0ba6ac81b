// Package cloud implements the remote mirror of the local store. It
// speaks the snake_case /api/db transport and wraps every failure as
// RemoteUnavailable so the unified store can absorb it.
package cloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"copydesk/internal/domain"
)

// TokenProvider supplies the bearer token for cloud calls
type TokenProvider func(ctx context.Context) (string, error)

// ClientOptions configures a cloud API client
type ClientOptions struct {
	BaseURL       string
	TokenProvider TokenProvider
	HTTPClient    *http.Client
	UserAgent     string
}

// Client is a thin JSON client for the /api/db endpoints. There is no
// retry logic: a failed call surfaces immediately and the caller decides
// whether to fall back.
type Client struct {
	baseURL       string
	tokenProvider TokenProvider
	httpClient    *http.Client
	userAgent     string
}

// NewClient creates a cloud API client
func NewClient(opts ClientOptions) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{
		baseURL:       baseURL,
		tokenProvider: opts.TokenProvider,
		httpClient:    httpClient,
		userAgent:     strings.TrimSpace(opts.UserAgent),
	}
}

// errorBody is the JSON error surface of the cloud API. Both the legacy
// {"error", "details"} shape and RFC 7807 problem documents decode into
// it; whichever field is populated becomes the message.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
	Title   string `json:"title"`
	Detail  string `json:"detail"`
}

func (e *errorBody) message() string {
	switch {
	case e.Error != "" && e.Details != "":
		return e.Error + ": " + e.Details
	case e.Error != "":
		return e.Error
	case e.Detail != "":
		return e.Detail
	case e.Title != "":
		return e.Title
	}
	return ""
}

// do performs a JSON request. body nil sends no payload; out nil
// discards the response body. Every failure, transport or HTTP, comes
// back wrapped in domain.ErrRemoteUnavailable.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", domain.ErrRemoteUnavailable, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", domain.ErrRemoteUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.tokenProvider != nil {
		token, err := c.tokenProvider(ctx)
		if err != nil {
			return fmt.Errorf("%w: token: %v", domain.ErrRemoteUnavailable, err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", domain.ErrRemoteUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody errorBody
		if json.Unmarshal(respBody, &errBody) == nil && errBody.message() != "" {
			return fmt.Errorf("%w: %s (status %d)", domain.ErrRemoteUnavailable, errBody.message(), resp.StatusCode)
		}
		return fmt.Errorf("%w: status %d", domain.ErrRemoteUnavailable, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("%w: decode response: %v", domain.ErrRemoteUnavailable, err)
		}
	}

	return nil
}
