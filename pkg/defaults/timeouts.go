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

package defaults

import "time"

// Handler timeouts for the fixture search service.
const (
	// SearchHandlerTimeout is the timeout for search-by-details and
	// search-by-name requests.
	SearchHandlerTimeout = 15 * time.Second

	// CatalogEvalTimeout is the internal timeout for evaluating a query
	// against the catalog. Should be less than SearchHandlerTimeout to
	// allow error handling.
	CatalogEvalTimeout = 10 * time.Second

	// UniqueValuesCacheTTL is the cache duration advertised for unique-values responses.
	UniqueValuesCacheTTL = 10 * time.Minute

	// ReadinessCheckTimeout bounds all readiness checks of one /ready request.
	ReadinessCheckTimeout = 2 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// HTTP client timeouts for outbound requests to the search service.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 10 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive duration for connections.
	HTTPKeepAlive = 30 * time.Second

	// HTTPExpectContinueTimeout is the timeout for Expect: 100-continue.
	HTTPExpectContinueTimeout = 1 * time.Second
)

// Circuit breaker settings for the search service client.
const (
	// BreakerInterval is the cyclic period of the closed state after which
	// failure counts are cleared.
	BreakerInterval = 60 * time.Second

	// BreakerOpenTimeout is how long the breaker stays open before probing.
	BreakerOpenTimeout = 30 * time.Second

	// BreakerMaxRequests is the number of probe requests allowed while half-open.
	BreakerMaxRequests = 1

	// BreakerTripRatio is the failure ratio that trips the breaker.
	BreakerTripRatio = 0.6

	// BreakerMinRequests is the request count below which the breaker never trips.
	BreakerMinRequests = 3
)

// CLI timeouts for command-line operations.
const (
	// CLISearchTimeout bounds a single search command including option loading.
	CLISearchTimeout = 1 * time.Minute
)

// Size limits for request and response bodies.
const (
	// MaxResponseBytes caps a search service response body read by the client.
	MaxResponseBytes = 32 << 20

	// MaxRequestBytes caps a request body accepted by the search service.
	MaxRequestBytes = 1 << 20
)
