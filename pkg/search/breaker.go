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
	"context"
	stderrors "errors"
	"log/slog"

	"github.com/sony/gobreaker"

	"github.com/foodkg/recipe-finder/pkg/errors"
	"github.com/foodkg/recipe-finder/pkg/query"
	"github.com/foodkg/recipe-finder/pkg/ranking"
	"github.com/foodkg/recipe-finder/pkg/recipe"
)

// BreakerClient wraps a Client with circuit breaking. Only NETWORK errors
// count as failures; validation and decode errors pass through without
// affecting the breaker.
type BreakerClient struct {
	client Client
	cb     *gobreaker.CircuitBreaker
}

// NewBreakerClient creates a new circuit breaker client
func NewBreakerClient(client Client, cfg BreakerConfig, name string) *BreakerClient {
	minRequests := cfg.MinRequests
	if minRequests == 0 {
		minRequests = 1
	}

	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= cfg.TripRatio
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.IsCode(err, errors.ErrCodeNetwork)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			breakerState.WithLabelValues(name).Set(float64(to))
			if to == gobreaker.StateOpen {
				slog.Warn("circuit breaker opened", "name", name, "from", from.String())
				return
			}
			slog.Info("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}

	return &BreakerClient{
		client: client,
		cb:     gobreaker.NewCircuitBreaker(st),
	}
}

// State returns the breaker state.
func (c *BreakerClient) State() gobreaker.State {
	return c.cb.State()
}

// SearchByDetails implements Client
func (c *BreakerClient) SearchByDetails(ctx context.Context, q *query.WireQuery) ([]recipe.RawRecord, error) {
	resp, err := c.cb.Execute(func() (interface{}, error) {
		return c.client.SearchByDetails(ctx, q)
	})
	if err != nil {
		return nil, breakerError(err)
	}
	return resp.([]recipe.RawRecord), nil
}

// SearchByName implements Client
func (c *BreakerClient) SearchByName(ctx context.Context, q *query.NameQuery) ([]recipe.RawRecord, error) {
	resp, err := c.cb.Execute(func() (interface{}, error) {
		return c.client.SearchByName(ctx, q)
	})
	if err != nil {
		return nil, breakerError(err)
	}
	return resp.([]recipe.RawRecord), nil
}

// UniqueValues implements Client
func (c *BreakerClient) UniqueValues(ctx context.Context) (ranking.FrequencyTable, error) {
	resp, err := c.cb.Execute(func() (interface{}, error) {
		return c.client.UniqueValues(ctx)
	})
	if err != nil {
		return nil, breakerError(err)
	}
	return resp.(ranking.FrequencyTable), nil
}

func breakerError(err error) error {
	if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
		return errors.Wrap(errors.ErrCodeNetwork, "search service unavailable", err)
	}
	return err
}
