// Package catalog is the HTTP client for the remote book catalog service.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/acorntide/shelfd/internal/book"
)

// DefaultBaseURL is where the catalog API listens when nothing else is
// configured.
const DefaultBaseURL = "http://127.0.0.1:8000"

// Client talks to the catalog API.
type Client struct {
	BaseURL    string
	httpClient *http.Client
}

// NewClient creates a catalog client. An empty baseURL falls back to
// DefaultBaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// FetchBooks retrieves the full collection.
func (c *Client) FetchBooks(ctx context.Context) ([]book.Book, error) {
	var books []book.Book
	if err := c.doJSON(ctx, http.MethodGet, "/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// FetchMetadata looks up book metadata for an ISBN.
func (c *Client) FetchMetadata(ctx context.Context, isbn string) (book.Book, error) {
	var b book.Book
	path := "/metadata/" + url.PathEscape(isbn)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &b); err != nil {
		return book.Book{}, err
	}
	return b, nil
}

// CreateBook persists a new record. The payload must not carry an id.
func (c *Client) CreateBook(ctx context.Context, payload map[string]any) (book.Book, error) {
	var b book.Book
	if err := c.doJSON(ctx, http.MethodPost, "/books", payload, &b); err != nil {
		return book.Book{}, err
	}
	return b, nil
}

// UpdateBook applies a partial update to an existing record.
func (c *Client) UpdateBook(ctx context.Context, id book.ID, payload map[string]any) (book.Book, error) {
	var b book.Book
	path := "/books/" + url.PathEscape(id.String())
	if err := c.doJSON(ctx, http.MethodPut, path, payload, &b); err != nil {
		return book.Book{}, err
	}
	return b, nil
}

// DeleteBook removes a record. The API returns no body on success.
func (c *Client) DeleteBook(ctx context.Context, id book.ID) error {
	path := "/books/" + url.PathEscape(id.String())
	req, err := c.newRequest(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call catalog API: %w", err)
	}
	defer resp.Body.Close()

	return checkResponse(resp)
}

func (c *Client) newRequest(ctx context.Context, method, path string, payload map[string]any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload map[string]any, out any) error {
	req, err := c.newRequest(ctx, method, path, payload)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call catalog API: %w", err)
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return nil
}

// checkResponse turns a non-2xx response into an *APIError carrying the
// status code and response text.
func checkResponse(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(resp.Body)
	return &APIError{Status: resp.StatusCode, Body: string(body)}
}
