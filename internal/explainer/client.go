package explainer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// explainPath is the fixed endpoint path of the all-in-one explain
// operation. Only the host part is configurable.
const explainPath = "/code-explainer/all-in-one"

// Client issues explain requests against the code-explainer service
type Client struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
}

// NewClient creates a client for the configured service host
func NewClient(config *Config) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.Endpoint)
	if err != nil {
		return nil, NewConfigurationError("endpoint", fmt.Sprintf("invalid endpoint URL: %v", err))
	}

	client := &http.Client{
		Timeout: config.Timeout,
	}

	return &Client{
		config:  config,
		client:  client,
		baseURL: baseURL,
	}, nil
}

// Endpoint returns the full URL the client posts to
func (c *Client) Endpoint() string {
	return c.baseURL.JoinPath(explainPath).String()
}

// Explain sends one query/file pair to the service and returns the
// parsed result. The query text and file bytes are transmitted exactly
// as supplied. Non-2xx responses become protocol errors carrying the
// status line; faults before a usable response become transport errors.
func (c *Client) Explain(ctx context.Context, req *ExplainRequest) (*ExplainResult, error) {
	if req == nil {
		return nil, NewValidationError("request", "explain request is required")
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	if c.config.MaxFileSize > 0 && int64(len(req.FileData)) > c.config.MaxFileSize {
		return nil, NewValidationError("file",
			fmt.Sprintf("file exceeds maximum size of %d bytes", c.config.MaxFileSize))
	}

	body, contentType, err := buildRequestBody(req)
	if err != nil {
		return nil, NewTransportErrorWithCause("failed to build request body", err)
	}

	endpoint := c.baseURL.JoinPath(explainPath)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), body)
	if err != nil {
		return nil, NewTransportErrorWithCause("failed to create request", err)
	}

	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, NewTransportErrorWithCause("request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, NewProtocolError(resp.StatusCode, resp.Status)
	}

	var result ExplainResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, NewTransportErrorWithCause("failed to decode response", err)
	}

	return &result, nil
}

// buildRequestBody encodes the query and file as a multipart form with
// the two field names the service expects
func buildRequestBody(req *ExplainRequest) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("query", req.Query); err != nil {
		return nil, "", fmt.Errorf("failed to write query field: %w", err)
	}

	name := req.FileName
	if name == "" {
		name = "upload"
	}

	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}

	if _, err := part.Write(req.FileData); err != nil {
		return nil, "", fmt.Errorf("failed to write file content: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}
