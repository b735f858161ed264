package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// requestIDHeader matches the header the server echoes back.
const requestIDHeader = "X-Request-ID"

// response is a fully read HTTP response.
type response struct {
	Status      int
	ContentType string
	Body        []byte
}

// HTTPClient wraps http.Client with a timeout and tags every request with
// a run-scoped request ID so server logs can be matched to a probe run.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	runID   string
	seq     atomic.Int64
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		runID:   uuid.NewString(),
	}
}

// RunID identifies this client's requests in server logs.
func (c *HTTPClient) RunID() string { return c.runID }

// Do performs a request with an empty body and reads the whole response.
func (c *HTTPClient) Do(ctx context.Context, method, path string) (response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, http.NoBody)
	if err != nil {
		return response{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(requestIDHeader, fmt.Sprintf("%s-%d", c.runID, c.seq.Add(1)))

	resp, err := c.client.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return response{}, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	return response{
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, path string) (response, error) {
	return c.Do(ctx, http.MethodGet, path)
}
