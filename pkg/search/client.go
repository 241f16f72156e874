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

// Package search is the client side of the recipe search service contract:
//
//	POST {base}/search-by-details   body WireQuery  → RawRecord[]
//	POST {base}/search-by-name      body NameQuery  → RawRecord[]
//	GET  {base}/unique-values                       → {property: [[value, count], ...]}
//
// Transport failures and non-success statuses are NETWORK errors; a body that
// is not the expected JSON is a DECODE error. A 404 from a search endpoint
// means nothing matched and yields an empty result.
package search

import (
	"context"
	"time"

	"github.com/foodkg/recipe-finder/pkg/defaults"
	"github.com/foodkg/recipe-finder/pkg/query"
	"github.com/foodkg/recipe-finder/pkg/ranking"
	"github.com/foodkg/recipe-finder/pkg/recipe"
)

// Endpoint paths relative to the base URL.
const (
	PathSearchByDetails = "/search-by-details"
	PathSearchByName    = "/search-by-name"
	PathUniqueValues    = "/unique-values"
)

// DefaultBaseURL is where fkgd serves the search API by default.
const DefaultBaseURL = "http://localhost:8080/api"

// Client talks to the recipe search service.
type Client interface {
	SearchByDetails(ctx context.Context, q *query.WireQuery) ([]recipe.RawRecord, error)
	SearchByName(ctx context.Context, q *query.NameQuery) ([]recipe.RawRecord, error)
	UniqueValues(ctx context.Context) (ranking.FrequencyTable, error)
}

// Config configures a search client.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Breaker BreakerConfig
}

// BreakerConfig configures the circuit breaker around the client.
type BreakerConfig struct {
	Enabled     bool
	MaxRequests uint32
	Interval    time.Duration
	OpenTimeout time.Duration
	TripRatio   float64
	MinRequests uint32
}

// DefaultConfig returns a config pointing at a local fkgd with the breaker on.
func DefaultConfig() Config {
	return Config{
		BaseURL: DefaultBaseURL,
		Timeout: defaults.HTTPClientTimeout,
		Breaker: BreakerConfig{
			Enabled:     true,
			MaxRequests: defaults.BreakerMaxRequests,
			Interval:    defaults.BreakerInterval,
			OpenTimeout: defaults.BreakerOpenTimeout,
			TripRatio:   defaults.BreakerTripRatio,
			MinRequests: defaults.BreakerMinRequests,
		},
	}
}

// New builds an HTTP client for cfg, wrapped in a circuit breaker when enabled.
func New(cfg Config) Client {
	var c Client = NewHTTPClient(cfg.BaseURL, cfg.Timeout)
	if cfg.Breaker.Enabled {
		c = NewBreakerClient(c, cfg.Breaker, "search")
	}
	return c
}
