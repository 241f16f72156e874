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
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/foodkg/recipe-finder/pkg/errors"
	"github.com/foodkg/recipe-finder/pkg/query"
	"github.com/foodkg/recipe-finder/pkg/ranking"
	"github.com/foodkg/recipe-finder/pkg/recipe"
	"github.com/foodkg/recipe-finder/pkg/serializer"
)

// HTTPClient implements Client over HTTP.
type HTTPClient struct {
	baseURL string
	http    *serializer.HTTPClient
}

// NewHTTPClient creates a client for the service at baseURL. A zero timeout
// keeps the transport default.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	opts := []serializer.HTTPClientOption{}
	if timeout > 0 {
		opts = append(opts, serializer.WithTotalTimeout(timeout))
	}
	return NewHTTPClientWith(baseURL, serializer.NewHTTPClient(opts...))
}

// NewHTTPClientWith creates a client using an existing transport.
func NewHTTPClientWith(baseURL string, c *serializer.HTTPClient) *HTTPClient {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    c,
	}
}

// BaseURL returns the service base URL.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// SearchByDetails sends an AND query with exclusions.
func (c *HTTPClient) SearchByDetails(ctx context.Context, q *query.WireQuery) ([]recipe.RawRecord, error) {
	if q == nil {
		return nil, errors.New(errors.ErrCodeValidation, "query is nil")
	}
	body, err := q.Encode()
	if err != nil {
		return nil, err
	}
	return c.search(ctx, PathSearchByDetails, body)
}

// SearchByName sends an OR name query.
func (c *HTTPClient) SearchByName(ctx context.Context, q *query.NameQuery) ([]recipe.RawRecord, error) {
	if q == nil {
		return nil, errors.New(errors.ErrCodeValidation, "query is nil")
	}
	body, err := q.Encode()
	if err != nil {
		return nil, err
	}
	return c.search(ctx, PathSearchByName, body)
}

func (c *HTTPClient) search(ctx context.Context, path string, body []byte) ([]recipe.RawRecord, error) {
	start := time.Now()
	url := c.baseURL + path

	resp, err := c.http.PostJSON(ctx, url, body)
	if err != nil {
		observe(path, outcomeNetwork, start)
		return nil, errors.WrapWithContext(errors.ErrCodeNetwork, "search request failed", err,
			map[string]any{"url": url})
	}

	if resp.StatusCode == http.StatusNotFound {
		observe(path, outcomeEmpty, start)
		slog.Debug("search matched nothing", "url", url)
		return []recipe.RawRecord{}, nil
	}
	if !resp.OK() {
		observe(path, outcomeNetwork, start)
		return nil, statusError(url, resp)
	}

	records, err := recipe.DecodeRecords(resp.Body)
	if err != nil {
		observe(path, outcomeDecode, start)
		return nil, err
	}

	observe(path, outcomeOK, start)
	slog.Debug("search completed", "url", url, "records", len(records), "duration", time.Since(start).String())
	return records, nil
}

// UniqueValues fetches the value/frequency aggregate used for quick picks.
func (c *HTTPClient) UniqueValues(ctx context.Context) (ranking.FrequencyTable, error) {
	start := time.Now()
	url := c.baseURL + PathUniqueValues

	resp, err := c.http.Get(ctx, url)
	if err != nil {
		observe(PathUniqueValues, outcomeNetwork, start)
		return nil, errors.WrapWithContext(errors.ErrCodeNetwork, "unique values request failed", err,
			map[string]any{"url": url})
	}
	if !resp.OK() {
		observe(PathUniqueValues, outcomeNetwork, start)
		return nil, statusError(url, resp)
	}

	table, err := ranking.DecodeFrequencyTable(resp.Body)
	if err != nil {
		observe(PathUniqueValues, outcomeDecode, start)
		return nil, errors.Wrap(errors.ErrCodeDecode, "failed to decode unique values", err)
	}

	observe(PathUniqueValues, outcomeOK, start)
	return table, nil
}

func statusError(url string, resp *serializer.Response) error {
	return errors.NewWithContext(errors.ErrCodeNetwork,
		fmt.Sprintf("search service returned %s", resp.Status),
		map[string]any{"url": url, "status": resp.StatusCode})
}
