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

package search

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK      = "ok"
	outcomeEmpty   = "empty"
	outcomeNetwork = "network_error"
	outcomeDecode  = "decode_error"
)

var (
	// Search client metrics
	searchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fkg_search_requests_total",
			Help: "Total number of requests sent to the search service by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	searchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fkg_search_request_duration_seconds",
			Help:    "Duration of requests to the search service in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	breakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "fkg_search_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)
)

func observe(endpoint, outcome string, start time.Time) {
	searchRequests.WithLabelValues(endpoint, outcome).Inc()
	searchDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
