// Package client is the HTTP client for the thread backend. It issues the
// metadata and per-run fetches and classifies every failure into an
// api.ErrorKind so the history layer can apply its partial-failure policy.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/docker/threadview/pkg/api"
	"github.com/docker/threadview/pkg/httpclient"
)

// Client is an HTTP client for the thread backend API
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
}

// Option is a function for configuring the Client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if c.httpClient == nil {
			c.httpClient = &http.Client{}
		}
		c.httpClient.Timeout = timeout
	}
}

// WithToken sets the bearer token attached to every request
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// New creates a new HTTP client for the thread backend
func New(baseURL string, opts ...Option) (*Client, error) {
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	client := &Client{
		baseURL:    parsedURL,
		httpClient: httpclient.NewHttpClient(),
	}
	client.httpClient.Timeout = 30 * time.Second

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// ErrorResponse represents an error response from the API
type ErrorResponse struct {
	Error string `json:"error"`
}

// GetThread retrieves the run registry for one thread
func (c *Client) GetThread(ctx context.Context, roomID, threadID string) (*api.ThreadResponse, error) {
	if roomID == "" {
		return nil, api.NewError(api.ErrorKindValidation, "room id must not be empty")
	}
	if threadID == "" {
		return nil, api.NewError(api.ErrorKindValidation, "thread id must not be empty")
	}

	var thread api.ThreadResponse
	endpoint := path.Join("/api/rooms", url.PathEscape(roomID), "threads", url.PathEscape(threadID))
	if err := c.doRequest(ctx, endpoint, &thread); err != nil {
		return nil, err
	}
	return &thread, nil
}

// GetRun retrieves the event log and run input for one run
func (c *Client) GetRun(ctx context.Context, roomID, threadID, runID string) (*api.RunResponse, error) {
	if roomID == "" {
		return nil, api.NewError(api.ErrorKindValidation, "room id must not be empty")
	}
	if threadID == "" {
		return nil, api.NewError(api.ErrorKindValidation, "thread id must not be empty")
	}
	if runID == "" {
		return nil, api.NewError(api.ErrorKindValidation, "run id must not be empty")
	}

	var run api.RunResponse
	endpoint := path.Join("/api/rooms", url.PathEscape(roomID), "threads", url.PathEscape(threadID), "runs", url.PathEscape(runID))
	if err := c.doRequest(ctx, endpoint, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// doRequest performs a GET request and decodes the response, classifying
// every failure path into an api error kind
func (c *Client) doRequest(ctx context.Context, endpoint string, result any) error {
	u := *c.baseURL
	u.Path = path.Join(u.Path, endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return api.WrapError(api.ErrorKindNetwork, "creating request", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return api.WrapError(api.ErrorKindCanceled, "request canceled", err)
		}
		return api.WrapError(api.ErrorKindNetwork, "performing request", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return api.WrapError(api.ErrorKindCanceled, "request canceled", err)
		}
		return api.WrapError(api.ErrorKindNetwork, "reading response body", err)
	}

	if resp.StatusCode >= 400 {
		message := string(respBody)
		var errResp ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			message = errResp.Error
		}
		return api.StatusError(classifyStatus(resp.StatusCode), resp.StatusCode, message)
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		// A payload we cannot decode at all counts as a backend failure.
		return api.WrapError(api.ErrorKindServer, "unmarshaling response", err)
	}

	return nil
}

func classifyStatus(status int) api.ErrorKind {
	switch {
	case status == http.StatusNotFound:
		return api.ErrorKindNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return api.ErrorKindAuth
	default:
		return api.ErrorKindServer
	}
}
