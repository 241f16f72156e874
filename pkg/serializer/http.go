// Copyright (c) 2025, The FoodKG Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/foodkg/recipe-finder/pkg/defaults"
)

// RespondJSON writes a JSON response with the given status code and data.
// It buffers the JSON encoding before writing headers to prevent partial responses.
func RespondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")

	// Serialize first to detect errors before writing headers
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(data); err != nil {
		slog.Error("json encoding failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(statusCode)
	if _, err := w.Write(buf.Bytes()); err != nil {
		// Connection is broken, log but can't recover
		slog.Warn("response write failed", "error", err)
	}
}

const (
	HTTPClientUserAgent = "fkg/1.0"
)

var (
	HTTPClientDefaultMaxIdleConns        = 100
	HTTPClientDefaultMaxIdleConnsPerHost = 10
)

// HTTPClientOption defines a configuration option for HTTPClient.
type HTTPClientOption func(*HTTPClient)

// HTTPClient sends JSON requests with pooled connections and bounded
// timeouts. Unlike http.Client it reads the whole body and never treats a
// status code as an error; callers decide what a status means.
type HTTPClient struct {
	UserAgent             string
	TotalTimeout          time.Duration
	ConnectTimeout        time.Duration
	ResponseHeaderTimeout time.Duration
	MaxResponseBytes      int64
	InsecureSkipVerify    bool
	Client                *http.Client

	customClient bool
}

func WithUserAgent(userAgent string) HTTPClientOption {
	return func(c *HTTPClient) {
		c.UserAgent = userAgent
	}
}

func WithTotalTimeout(timeout time.Duration) HTTPClientOption {
	return func(c *HTTPClient) {
		c.TotalTimeout = timeout
	}
}

func WithMaxResponseBytes(n int64) HTTPClientOption {
	return func(c *HTTPClient) {
		c.MaxResponseBytes = n
	}
}

func WithInsecureSkipVerify(skip bool) HTTPClientOption {
	return func(c *HTTPClient) {
		c.InsecureSkipVerify = skip
	}
}

// WithClient uses a caller supplied client as is. Timeout and transport
// options are ignored.
func WithClient(client *http.Client) HTTPClientOption {
	return func(c *HTTPClient) {
		c.Client = client
		c.customClient = client != nil
	}
}

// NewHTTPClient creates a new HTTPClient with the specified options.
func NewHTTPClient(options ...HTTPClientOption) *HTTPClient {
	c := &HTTPClient{
		UserAgent:             HTTPClientUserAgent,
		TotalTimeout:          defaults.HTTPClientTimeout,
		ConnectTimeout:        defaults.HTTPConnectTimeout,
		ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		MaxResponseBytes:      defaults.MaxResponseBytes,
	}

	for _, opt := range options {
		opt(c)
	}

	if !c.customClient {
		c.Client = &http.Client{
			Timeout:   c.TotalTimeout,
			Transport: c.newTransport(),
		}
	}
	if c.UserAgent == "" {
		c.UserAgent = HTTPClientUserAgent
	}
	if c.MaxResponseBytes <= 0 {
		c.MaxResponseBytes = defaults.MaxResponseBytes
	}
	return c
}

func (c *HTTPClient) newTransport() *http.Transport {
	return &http.Transport{
		MaxIdleConns:        HTTPClientDefaultMaxIdleConns,
		MaxIdleConnsPerHost: HTTPClientDefaultMaxIdleConnsPerHost,

		DialContext: (&net.Dialer{
			Timeout:   c.ConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ResponseHeaderTimeout: c.ResponseHeaderTimeout,
		ExpectContinueTimeout: defaults.HTTPExpectContinueTimeout,
		IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		ForceAttemptHTTP2:     true,

		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: c.InsecureSkipVerify, //nolint:gosec // opt-in for local test services
		},
	}
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Get sends a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, url, nil)
}

// PostJSON sends body as a JSON POST request.
func (c *HTTPClient) PostJSON(ctx context.Context, url string, body []byte) (*Response, error) {
	return c.Do(ctx, http.MethodPost, url, body)
}

// Do sends a request and reads the response body. Errors are returned only
// for failures to send the request or read the body.
func (c *HTTPClient) Do(ctx context.Context, method, url string, body []byte) (*Response, error) {
	if url == "" {
		return nil, fmt.Errorf("url is empty")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if c.Client == nil {
		return nil, fmt.Errorf("http client is nil")
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for url %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed for url %s: %w", url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.MaxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}
	if int64(len(data)) > c.MaxResponseBytes {
		return nil, fmt.Errorf("response from %s exceeds %d bytes", url, c.MaxResponseBytes)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       data,
	}, nil
}
