// Package gateway is the shared HTTP plumbing for the external payment and
// messaging services. Both gateways speak JSON over HTTPS and differ only in
// base URL and auth header, so the request/response handling lives here once.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RemoteError is returned for any non-2xx gateway response. The HTTP status
// is carried so callers can report it; nothing is retried.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("gateway returned status %d", e.Status)
}

// Client is an authenticated JSON client bound to one gateway.
type Client struct {
	baseURL    string
	authHeader string
	authValue  string
	httpClient *http.Client
}

// New builds a client for the gateway at baseURL, authenticating every
// request with the given header.
func New(baseURL, authHeader, authValue string) *Client {
	return &Client{
		baseURL:    baseURL,
		authHeader: authHeader,
		authValue:  authValue,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Do sends one JSON request. body is marshalled when non-nil; the response
// body is unmarshalled into out when non-nil. A non-2xx response yields a
// *RemoteError.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}

		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(c.authHeader, c.authValue)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &RemoteError{Status: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}
