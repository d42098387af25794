package docsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client communicates with the document backend HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Document identifies a created document on the backend.
type Document struct {
	ID  string `json:"document_id"`
	URL string `json:"url"`
}

// CreateDocument creates an empty document with the given title.
func (c *Client) CreateDocument(ctx context.Context, title string) (*Document, error) {
	body, err := json.Marshal(map[string]string{"title": title})
	if err != nil {
		return nil, fmt.Errorf("marshal create request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/documents", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus("create document", resp); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if doc.ID == "" {
		return nil, fmt.Errorf("create document: backend returned no document id")
	}
	return &doc, nil
}

// BatchUpdate submits a list of edit requests against a document in one
// call. The backend applies them in order or rejects the whole batch.
func (c *Client) BatchUpdate(ctx context.Context, docID string, reqs []Request) error {
	body, err := json.Marshal(map[string]any{"requests": reqs})
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}
	u := fmt.Sprintf("%s/v1/documents/%s:batchUpdate", c.baseURL, docID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("batch update %s: %w", docID, err)
	}
	defer resp.Body.Close()

	return c.checkStatus("batch update", resp)
}

// checkStatus maps an unexpected response status to the error taxonomy:
// AuthError for 401/403, RetryableError for 429 and 5xx, a plain error
// otherwise. 2xx returns nil.
func (c *Client) checkStatus(op string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	msg := string(respBody)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &AuthError{Op: op, StatusCode: resp.StatusCode, Message: msg}
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return &RetryableError{Op: op, StatusCode: resp.StatusCode, Message: msg}
	default:
		return fmt.Errorf("%s: status %d: %s", op, resp.StatusCode, msg)
	}
}

// AuthError indicates the backend rejected our credentials. Not retryable.
type AuthError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: auth failed (status %d): %s", e.Op, e.StatusCode, truncate(e.Message, 200))
}

// RetryableError indicates a transient failure that can be retried.
type RetryableError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("%s: retryable error (status %d): %s", e.Op, e.StatusCode, truncate(e.Message, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Close releases any resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
