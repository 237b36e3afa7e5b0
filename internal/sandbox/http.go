package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
)

const maxResponseBytes = 10 << 20

// HTTPClient is the outbound capability backed by net/http. Request bodies
// are sent as JSON. A response is returned as a map with status, ok,
// headers and body; JSON bodies are decoded, others are returned as text.
// Error statuses are not errors.
type HTTPClient struct {
	client *http.Client
}

// NewHTTPClient wraps client, or http.DefaultClient when nil.
func NewHTTPClient(client *http.Client) *HTTPClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPClient{client: client}
}

func (c *HTTPClient) Get(ctx context.Context, url string) (any, error) {
	return c.do(ctx, http.MethodGet, url, nil)
}

func (c *HTTPClient) Post(ctx context.Context, url string, body any) (any, error) {
	return c.do(ctx, http.MethodPost, url, body)
}

func (c *HTTPClient) Put(ctx context.Context, url string, body any) (any, error) {
	return c.do(ctx, http.MethodPut, url, body)
}

func (c *HTTPClient) Delete(ctx context.Context, url string) (any, error) {
	return c.do(ctx, http.MethodDelete, url, nil)
}

func (c *HTTPClient) do(ctx context.Context, method, url string, body any) (any, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", method, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, url, err)
	}

	headers := make(map[string]any, len(resp.Header))
	for k := range resp.Header {
		headers[k] = resp.Header.Get(k)
	}

	return map[string]any{
		"status":  resp.StatusCode,
		"ok":      resp.StatusCode >= 200 && resp.StatusCode < 300,
		"headers": headers,
		"body":    decodeBody(resp.Header.Get("Content-Type"), raw),
	}, nil
}

func decodeBody(contentType string, raw []byte) any {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil && mt == "application/json" {
		var v any
		if json.Unmarshal(raw, &v) == nil {
			return v
		}
	}
	return string(raw)
}
