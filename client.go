// Package pinata is a client for the Pinata IPFS pinning service REST API.
//
// A Client is constructed from an API key pair and exposes one method per
// endpoint: pinning by hash, JSON or file/directory upload, unpinning,
// metadata and pin-policy updates, and the filtered job/pin list queries.
// The client holds no mutable per-call state and is safe for concurrent use.
// No call is ever retried; every error is surfaced to the caller.
package pinata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultBaseURL = "https://api.pinata.cloud"
	defaultTimeout = 30 * time.Second

	apiKeyHeader    = "pinata_api_key"
	apiSecretHeader = "pinata_secret_api_key"
)

// Client represents a Pinata API client.
type Client struct {
	apiKey       string
	secretAPIKey string
	baseURL      string
	httpClient   *http.Client
	logger       logrus.FieldLogger
}

var _ API = (*Client)(nil)

// NewClient creates a new Pinata client from an API key pair. It fails if
// either credential is empty.
func NewClient(apiKey, secretAPIKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrEmptyAPIKey
	}
	if secretAPIKey == "" {
		return nil, ErrEmptySecretAPIKey
	}

	c := &Client{
		apiKey:       apiKey,
		secretAPIKey: secretAPIKey,
		baseURL:      defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: discardLogger(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

func discardLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// doRequest executes an HTTP request with the authentication headers set.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set(apiSecretHeader, c.secretAPIKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.logger.WithFields(logrus.Fields{"method": method, "path": path}).Debug("pinata request")

	return c.httpClient.Do(req)
}

// doJSON executes a request with a JSON-encoded body.
func (c *Client) doJSON(ctx context.Context, method, path string, payload any) (*http.Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	return c.doRequest(ctx, method, path, nil, bytes.NewReader(data), "application/json")
}

// parseResult decodes a successful response into out, or the error envelope
// into an *APIError.
func parseResult(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	return nil
}

// parseOK checks the status of a response whose body carries no result.
func parseOK(resp *http.Response) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseAPIError(resp)
	}

	return nil
}

// TestAuthentication verifies the configured credentials against the API.
func (c *Client) TestAuthentication(ctx context.Context) error {
	resp, err := c.doRequest(ctx, http.MethodGet, "/data/testAuthentication", nil, nil, "")
	if err != nil {
		return err
	}

	return parseOK(resp)
}

// SetHashPinPolicy changes the pin policy for an individual piece of content.
// It does not affect the account-level pin policy.
func (c *Client) SetHashPinPolicy(ctx context.Context, policy HashPinPolicy) error {
	resp, err := c.doJSON(ctx, http.MethodPut, "/pinning/hashPinPolicy", policy)
	if err != nil {
		return err
	}

	return parseOK(resp)
}

// PinByHash queues a hash for asynchronous pinning. The content must already
// be available from another node on the IPFS network.
func (c *Client) PinByHash(ctx context.Context, pin PinByHash) (*PinByHashResult, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/pinning/pinByHash", pin)
	if err != nil {
		return nil, err
	}

	var result PinByHashResult
	if err := parseResult(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// PinJobs lists the pins currently in the pin queue, narrowed by filter.
func (c *Client) PinJobs(ctx context.Context, filter PinJobsFilter) (*PinJobs, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/pinning/pinJobs", filter.values(), nil, "")
	if err != nil {
		return nil, err
	}

	var result PinJobs
	if err := parseResult(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// PinJSON pins a JSON-serializable value directly.
func (c *Client) PinJSON(ctx context.Context, pin PinByJSON) (*PinnedObject, error) {
	resp, err := c.doJSON(ctx, http.MethodPost, "/pinning/pinJSONToIPFS", pin)
	if err != nil {
		return nil, err
	}

	var result PinnedObject
	if err := parseResult(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// PinFile pins a local file, or every file under a local directory. For a
// directory the returned hash is the hash of the directory itself.
func (c *Client) PinFile(ctx context.Context, pin PinByFile) (*PinnedObject, error) {
	body, contentType, err := pin.multipartBody()
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/pinning/pinFileToIPFS", nil, body, contentType)
	if err != nil {
		return nil, err
	}

	var result PinnedObject
	if err := parseResult(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Unpin removes previously pinned content.
func (c *Client) Unpin(ctx context.Context, hash string) error {
	resp, err := c.doRequest(ctx, http.MethodDelete, "/pinning/unpin/"+hash, nil, nil, "")
	if err != nil {
		return err
	}

	return parseOK(resp)
}

// ChangeHashMetadata updates the name and key/values of pinned content.
func (c *Client) ChangeHashMetadata(ctx context.Context, change ChangeHashMetadata) error {
	resp, err := c.doJSON(ctx, http.MethodPut, "/pinning/hashMetadata", change)
	if err != nil {
		return err
	}

	return parseOK(resp)
}

// TotalPinnedData returns the combined size of everything the account has
// pinned.
func (c *Client) TotalPinnedData(ctx context.Context) (*TotalPinnedData, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/data/userPinnedDataTotal", nil, nil, "")
	if err != nil {
		return nil, err
	}

	var result TotalPinnedData
	if err := parseResult(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// PinList lists the account's pin records, narrowed by filter.
func (c *Client) PinList(ctx context.Context, filter PinListFilter) (*PinList, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/data/pinList", filter.values(), nil, "")
	if err != nil {
		return nil, err
	}

	var result PinList
	if err := parseResult(resp, &result); err != nil {
		return nil, err
	}

	return &result, nil
}
