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

// Package server provides the HTTP server shared by fkgd: routing, a
// middleware chain, health probes, Prometheus metrics and graceful shutdown.
//
// # Middleware
//
// Handlers registered through WithHandler are wrapped, outermost first, in:
//
//	metrics → API version → request ID → panic recovery → rate limit → body limit → logging
//
// System endpoints (/health, /ready, /metrics) bypass the chain. /ready runs
// the checks added with WithReadinessCheck and reports each by name. Request
// metrics are labelled with the matched route pattern.
//
// # Usage
//
//	s := server.New(
//	    server.WithName("fkgd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/api/search-by-details": h.SearchByDetails,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Run blocks until SIGINT, SIGTERM or ctx cancellation and then drains
// in-flight requests for up to ShutdownTimeout.
//
// # Errors
//
// Every error body is an ErrorResponse:
//
//	{
//	  "code": "VALIDATION",
//	  "message": "Invalid search query",
//	  "details": {"error": "..."},
//	  "requestId": "6f1c...",
//	  "timestamp": "2025-01-01T00:00:00Z",
//	  "retryable": false
//	}
//
// WriteErrorFromErr derives the status from a StructuredError code via
// HTTPStatusFromCode.
//
// # Environment
//
//   - PORT: listen port (default 8080)
//   - SHUTDOWN_TIMEOUT_SECONDS: graceful shutdown budget
package server
