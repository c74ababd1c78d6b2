// Package client provides the control API client used by sppctl.
//
// The control API (spp-ctl) is a REST server in front of the primary and the
// secondary processes. This package wraps the Resty HTTP client so that every
// request returns either a Response with a status code and an optional JSON body,
// or no response at all when the transport failed.
//
// API CLIENT ARCHITECTURE:
//   - Connection Management: timeout from --timeout, base URL http://<api>/v1
//   - Fault Tolerance: retries only on connection errors, never on HTTP status codes
//   - Logging: request, response and failure traces routed through internal/logging
//
// Interpreting status codes is the caller's job. The client never turns a 4xx or
// 5xx answer into an error, because the dispatch engine decides per operation
// which codes are expected, which are silently absorbed and which are unknown.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/concave-dev/spp/cmd/sppctl/config"
	"github.com/concave-dev/spp/cmd/sppctl/utils"
	"github.com/concave-dev/spp/internal/cmderr"
	defaults "github.com/concave-dev/spp/internal/config"
	"github.com/concave-dev/spp/internal/logging"
	"github.com/concave-dev/spp/internal/version"
	"github.com/go-resty/resty/v2"
)

// Response is the result of one control API call.
type Response struct {
	StatusCode int
	Body       []byte
}

// DecodeJSON unmarshals the response body into v.
func (r *Response) DecodeJSON(v any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("empty response body")
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// ControlAPI is the contract between the dispatch engine and the transport. A nil
// *Response means no result; the error then describes the transport failure.
type ControlAPI interface {
	Get(ctx context.Context, path string) (*Response, error)
	Put(ctx context.Context, path string, body any) (*Response, error)
	Delete(ctx context.Context, path string) (*Response, error)
}

// SppCtlClient talks to the spp-ctl REST server.
type SppCtlClient struct {
	client  *resty.Client
	baseURL string
}

// NewSppCtlClient creates a client for the control API at apiAddr ("host:port")
// with a request timeout in seconds.
//
// Retries are limited to connection errors so that a PUT which reached the
// server is never sent twice.
func NewSppCtlClient(apiAddr string, timeout int) *SppCtlClient {
	client := resty.New()

	baseURL := fmt.Sprintf("http://%s/%s", apiAddr, defaults.DefaultAPIVersion)

	// Route Resty's internal logging through our structured logging system
	client.SetLogger(utils.RestyLogger{})

	client.
		SetTimeout(time.Duration(timeout)*time.Second).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", version.UserAgent())

	client.
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Only retry on connection errors, not HTTP errors
			return err != nil
		})

	client.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logging.Debug("Making API request: %s %s", req.Method, req.URL)
		return nil
	})

	client.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logging.Debug("API response: %d %s (took %v)",
			resp.StatusCode(), resp.Status(), resp.Time())
		return nil
	})

	client.OnError(func(req *resty.Request, err error) {
		logging.Debug("API request failed: %s %s - %v", req.Method, req.URL, err)
	})

	return &SppCtlClient{
		client:  client,
		baseURL: baseURL,
	}
}

// CreateAPIClient creates a control API client from the global CLI configuration.
func CreateAPIClient() *SppCtlClient {
	return NewSppCtlClient(config.Global.APIAddr, config.Global.Timeout)
}

// BaseURL returns the URL every request path is resolved against.
func (api *SppCtlClient) BaseURL() string {
	return api.baseURL
}

// Get sends GET <base>/<path>.
func (api *SppCtlClient) Get(ctx context.Context, path string) (*Response, error) {
	resp, err := api.client.R().
		SetContext(ctx).
		Get("/" + path)
	return api.result("GET", path, resp, err)
}

// Put sends PUT <base>/<path> with body encoded as JSON.
func (api *SppCtlClient) Put(ctx context.Context, path string, body any) (*Response, error) {
	req := api.client.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Put("/" + path)
	return api.result("PUT", path, resp, err)
}

// Delete sends DELETE <base>/<path>.
func (api *SppCtlClient) Delete(ctx context.Context, path string) (*Response, error) {
	resp, err := api.client.R().
		SetContext(ctx).
		Delete("/" + path)
	return api.result("DELETE", path, resp, err)
}

// result converts a Resty outcome into the ControlAPI contract and reports
// transport failures to the operator through the error log.
func (api *SppCtlClient) result(method, path string, resp *resty.Response, err error) (*Response, error) {
	if err != nil {
		if cmderr.IsConnectionRefused(err) {
			logging.Error("Cannot connect to spp-ctl at %s, is it running?", api.baseURL)
		} else {
			logging.Error("Failed to %s %s: %v", method, path, err)
		}
		return nil, fmt.Errorf("failed to connect to API server at %s: %w", api.baseURL, err)
	}

	return &Response{
		StatusCode: resp.StatusCode(),
		Body:       resp.Body(),
	}, nil
}
