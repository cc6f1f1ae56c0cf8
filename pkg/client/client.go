// Package client is a typed Go client for the faceembed HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "http://localhost:5001"

// APIError is returned for any non-2xx answer from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("face service returned %d: %s", e.StatusCode, e.Message)
}

// Embedding is one face descriptor as returned by the service.
type Embedding []float64

type CompareResult struct {
	Match      bool    `json:"match"`
	Distance   float64 `json:"distance"`
	Similarity float64 `json:"similarity"`
}

type Client struct {
	baseURL string
	http    *http.Client
	breaker *circuitBreaker
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithBreaker replaces the default circuit breaker settings.
func WithBreaker(timeout time.Duration, maxFailures uint32) Option {
	return func(c *Client) { c.breaker = newCircuitBreaker("faceembed", timeout, maxFailures) }
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		breaker: newCircuitBreaker("faceembed", 30*time.Second, 5),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Health(ctx context.Context) error {
	var out struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return err
	}
	if out.Status != "ok" {
		return fmt.Errorf("unexpected health status %q", out.Status)
	}
	return nil
}

func (c *Client) ExtractEmbeddings(ctx context.Context, paths []string) ([]Embedding, error) {
	req := map[string]any{"image_paths": paths}
	var out struct {
		Embeddings []Embedding `json:"embeddings"`
		Count      int         `json:"count"`
	}
	if err := c.do(ctx, http.MethodPost, "/extract-embeddings", req, &out); err != nil {
		return nil, err
	}
	return out.Embeddings, nil
}

// CompareFaces leaves threshold to the server default when it is nil.
func (c *Client) CompareFaces(ctx context.Context, probe Embedding, gallery []Embedding, threshold *float64) (*CompareResult, error) {
	req := map[string]any{
		"probe_embedding":    probe,
		"gallery_embeddings": gallery,
	}
	if threshold != nil {
		req["threshold"] = *threshold
	}
	var out CompareResult
	if err := c.do(ctx, http.MethodPost, "/compare-faces", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any) error {
	return c.breaker.execute(func() error {
		var reader io.Reader
		if body != nil {
			b, err := json.Marshal(body)
			if err != nil {
				return fmt.Errorf("failed to marshal request: %w", err)
			}
			reader = bytes.NewReader(b)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
		if err != nil {
			return err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode >= http.StatusBadRequest {
			var e struct {
				Error string `json:"error"`
			}
			msg := strings.TrimSpace(string(raw))
			if json.Unmarshal(raw, &e) == nil && e.Error != "" {
				msg = e.Error
			}
			return &APIError{StatusCode: resp.StatusCode, Message: msg}
		}

		if out == nil {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		return nil
	})
}
