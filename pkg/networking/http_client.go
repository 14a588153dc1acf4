// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package networking

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"net/http"
	"os"
	"time"
)

const (
	// HttpTimeout is the default timeout for outgoing HTTP requests
	HttpTimeout = 30 * time.Second

	// ContentTypeJSON is the JSON content type.
	ContentTypeJSON = "application/json"
)

// ValidatingTransport rejects requests whose URL cannot reach a Harbor
// server before they hit the network.
type ValidatingTransport struct {
	Transport http.RoundTripper
}

// RoundTrip validates the request URL prior to forwarding
func (t *ValidatingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL == nil || req.URL.Host == "" {
		return nil, fmt.Errorf("the supplied URL %v has no host", req.URL)
	}
	if req.URL.Scheme != "http" && req.URL.Scheme != "https" {
		return nil, fmt.Errorf("the supplied URL %s is not HTTP or HTTPS scheme", req.URL.String())
	}

	return t.Transport.RoundTrip(req)
}

// basicAuthTransport adds HTTP basic credentials to every request
type basicAuthTransport struct {
	transport http.RoundTripper
	username  string
	password  string
}

// RoundTrip adds the Authorization header and forwards the request
func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	newReq := req.Clone(req.Context())
	newReq.SetBasicAuth(t.username, t.password)

	return t.transport.RoundTrip(newReq)
}

// HttpClientBuilder provides a fluent interface for building HTTP clients
type HttpClientBuilder struct {
	clientTimeout         time.Duration
	tlsHandshakeTimeout   time.Duration
	responseHeaderTimeout time.Duration
	caCertPath            string
	insecureSkipVerify    bool
	username              string
	password              string
}

// NewHttpClientBuilder returns a new HttpClientBuilder
func NewHttpClientBuilder() *HttpClientBuilder {
	return &HttpClientBuilder{
		clientTimeout:         HttpTimeout,
		tlsHandshakeTimeout:   10 * time.Second,
		responseHeaderTimeout: 10 * time.Second,
	}
}

// WithCABundle sets the CA certificate bundle path
func (b *HttpClientBuilder) WithCABundle(path string) *HttpClientBuilder {
	b.caCertPath = path
	return b
}

// WithInsecureSkipVerify disables server certificate verification
func (b *HttpClientBuilder) WithInsecureSkipVerify(insecure bool) *HttpClientBuilder {
	b.insecureSkipVerify = insecure
	return b
}

// WithTimeout sets the overall client timeout. Non-positive values keep the
// default.
func (b *HttpClientBuilder) WithTimeout(timeout time.Duration) *HttpClientBuilder {
	if timeout > 0 {
		b.clientTimeout = timeout
	}
	return b
}

// WithBasicAuth sets the credentials sent with every request. An empty
// username disables authentication.
func (b *HttpClientBuilder) WithBasicAuth(username, password string) *HttpClientBuilder {
	b.username = username
	b.password = password
	return b
}

// Build creates the configured HTTP client
func (b *HttpClientBuilder) Build() (*http.Client, error) {
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		TLSHandshakeTimeout:   b.tlsHandshakeTimeout,
		ResponseHeaderTimeout: b.responseHeaderTimeout,
	}

	if b.caCertPath != "" || b.insecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
			// #nosec G402 - only set when the user passes --insecure
			InsecureSkipVerify: b.insecureSkipVerify,
		}
	}

	if b.caCertPath != "" {
		caCert, err := os.ReadFile(b.caCertPath) // #nosec G304 - path is provided by user via CLI flag
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate bundle: %w", err)
		}

		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA certificate bundle")
		}
		transport.TLSClientConfig.RootCAs = caCertPool
	}

	// Start with validation transport
	var clientTransport http.RoundTripper = &ValidatingTransport{
		Transport: transport,
	}

	if b.username != "" {
		clientTransport = &basicAuthTransport{
			transport: clientTransport,
			username:  b.username,
			password:  b.password,
		}
	}

	client := &http.Client{
		Transport: clientTransport,
		Timeout:   b.clientTimeout,
	}

	return client, nil
}
