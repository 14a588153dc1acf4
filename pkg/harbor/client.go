// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package harbor is a small client for the Harbor registry REST API.
//
// The client carries the negotiated API version and sends it with every
// request. It also implements apiversion.VersionSource so that the version
// negotiation can ask the server which versions it accepts.
package harbor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stacklok/harbor-cli/pkg/apiversion"
	"github.com/stacklok/harbor-cli/pkg/errors"
	"github.com/stacklok/harbor-cli/pkg/logger"
	"github.com/stacklok/harbor-cli/pkg/networking"
	"github.com/stacklok/harbor-cli/pkg/versions"
)

const (
	// APIPrefix is the path prefix of every versioned Harbor endpoint.
	APIPrefix = "/api/v2.0"

	// VersionPath reports the API versions the server accepts.
	VersionPath = "/api/version"

	// APIVersionHeader carries the negotiated version on each request.
	APIVersionHeader = "Harbor-API-Version"

	// RequestIDHeader correlates client and server logs.
	RequestIDHeader = "X-Request-Id"
)

// Options configures a Client.
type Options struct {
	BaseURL    string
	Username   string
	Password   string
	Project    string
	Timeout    time.Duration
	Insecure   bool
	CACertPath string

	// APIVersion may be null before negotiation but never latest.
	APIVersion apiversion.Version

	// Timings records the duration of every request.
	Timings bool

	// HTTPClient overrides the client built from the TLS and auth options.
	HTTPClient *http.Client
}

// Timing is the wall clock span of one request.
type Timing struct {
	Label string
	Start time.Time
	End   time.Time
}

// Duration is End minus Start.
func (t Timing) Duration() time.Duration {
	return t.End.Sub(t.Start)
}

// Client talks to one Harbor server on behalf of one user.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	gate       *apiversion.Gate
	username   string
	project    string
	userAgent  string
	timings    bool

	mu         sync.Mutex
	apiVersion apiversion.Version
	times      []Timing
}

// NewClient creates a Client. A base URL without a scheme is treated as
// plain HTTP. The API version is checked against the installed majors and
// must be explicit.
func NewClient(gate *apiversion.Gate, opts Options) (*Client, error) {
	if err := checkClientVersion(gate, opts.APIVersion); err != nil {
		return nil, err
	}

	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient, err = networking.NewHttpClientBuilder().
			WithCABundle(opts.CACertPath).
			WithInsecureSkipVerify(opts.Insecure).
			WithTimeout(opts.Timeout).
			WithBasicAuth(opts.Username, opts.Password).
			Build()
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
	}

	return &Client{
		baseURL:    base,
		httpClient: httpClient,
		gate:       gate,
		username:   opts.Username,
		project:    opts.Project,
		userAgent:  versions.UserAgent(),
		timings:    opts.Timings,
		apiVersion: opts.APIVersion,
	}, nil
}

func checkClientVersion(gate *apiversion.Gate, v apiversion.Version) error {
	if v.IsLatest() {
		return errors.NewUnsupportedVersionError("The version should be explicit, not latest.", nil)
	}
	if gate != nil {
		return gate.CheckMajor(v)
	}
	return nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, errors.NewInvalidArgumentError("harbor url must not be empty", nil)
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.NewInvalidArgumentError(fmt.Sprintf("invalid harbor url %q", raw), err)
	}
	if u.Host == "" {
		return nil, errors.NewInvalidArgumentError(fmt.Sprintf("harbor url %q has no host", raw), nil)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	return u, nil
}

// BaseURL returns the normalised server URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Username returns the user the client authenticates as.
func (c *Client) Username() string {
	return c.username
}

// Project returns the default project of the session.
func (c *Client) Project() string {
	return c.project
}

// APIVersion returns the version sent with each request.
func (c *Client) APIVersion() apiversion.Version {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apiVersion
}

// SetAPIVersion replaces the version sent with each request, typically with
// the result of negotiation. Latest is rejected.
func (c *Client) SetAPIVersion(v apiversion.Version) error {
	if err := checkClientVersion(c.gate, v); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiVersion = v
	return nil
}

// Timings returns the recorded request timings in request order.
func (c *Client) Timings() []Timing {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Timing(nil), c.times...)
}

func (c *Client) recordTiming(label string, start, end time.Time) {
	if !c.timings {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.times = append(c.times, Timing{Label: label, Start: start, End: end})
}

// Get fetches path below the API prefix and decodes the JSON response into
// out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, APIPrefix+path, query, nil, out)
}

// Post sends body as JSON to path below the API prefix.
func (c *Client) Post(ctx context.Context, path string, body any) error {
	return c.Do(ctx, http.MethodPost, APIPrefix+path, nil, body, nil)
}

// Delete removes the resource at path below the API prefix.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, APIPrefix+path, nil, nil, nil)
}

// Do sends one request to the server. path is absolute on the server. body,
// when non-nil, is sent as JSON. out, when non-nil, receives the decoded
// JSON response.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	resp, err := c.send(ctx, method, target, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return networking.NewHTTPErrorFromResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("failed to decode response from %s: %w", target.String(), err)
	}
	return nil
}

// send performs a single round trip and records its timing. The caller
// closes the response body.
func (c *Client) send(ctx context.Context, method string, target *url.URL, payload []byte) (*http.Response, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", networking.ContentTypeJSON)
	req.Header.Set(RequestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", networking.ContentTypeJSON)
	}
	if v := c.APIVersion(); !v.IsNull() {
		req.Header.Set(APIVersionHeader, v.String())
	}

	label := method + " " + target.String()
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	end := time.Now()
	c.recordTiming(label, start, end)
	if err != nil {
		logger.Debugw("harbor request failed", "method", method, "url", target.String(),
			"request_id", requestID, "error", err)
		return nil, fmt.Errorf("request to %s failed: %w", target.String(), err)
	}

	logger.Debugw("harbor request", "method", method, "url", target.String(),
		"status", resp.StatusCode, "elapsed", end.Sub(start), "request_id", requestID)
	return resp, nil
}
