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
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodkg/recipe-finder/pkg/attribute"
	"github.com/foodkg/recipe-finder/pkg/errors"
	"github.com/foodkg/recipe-finder/pkg/query"
)

const recordsBody = `[{"name":"Pad Thai","type":"Recipe","properties":{"hasCuisine":["Thai"],"hasCookTime":["20 minutes"]}}]`

func TestHTTPClient_SearchByDetails(t *testing.T) {
	var got query.WireQuery
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api"+PathSearchByDetails, r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(recordsBody))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/api/", time.Second)
	q := &query.WireQuery{Filters: []query.Filter{{Attribute: attribute.Cuisine, Values: []string{"Thai"}}}}

	records, err := c.SearchByDetails(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Pad Thai", records[0].Name)
	assert.Equal(t, []string{"Thai"}, records[0].Properties["hasCuisine"])
	require.Len(t, got.Filters, 1)
	assert.Equal(t, attribute.Cuisine, got.Filters[0].Attribute)
}

func TestHTTPClient_Statuses(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode errors.ErrorCode
		wantLen  int
	}{
		{name: "not found is empty", status: http.StatusNotFound, body: `{"error":"none"}`},
		{name: "server error", status: http.StatusInternalServerError, body: "boom", wantCode: errors.ErrCodeNetwork},
		{name: "bad gateway", status: http.StatusBadGateway, wantCode: errors.ErrCodeNetwork},
		{name: "not json", status: http.StatusOK, body: "<html>", wantCode: errors.ErrCodeDecode},
		{name: "object not array", status: http.StatusOK, body: `{"a":1}`, wantCode: errors.ErrCodeDecode},
		{name: "empty body", status: http.StatusOK, body: ""},
		{name: "records", status: http.StatusOK, body: recordsBody, wantLen: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewHTTPClient(srv.URL, time.Second)
			records, err := c.SearchByName(context.Background(), &query.NameQuery{Name: "pad"})
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, tt.wantCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, records)
			assert.Len(t, records, tt.wantLen)
		})
	}
}

func TestHTTPClient_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, time.Second)
	_, err := c.SearchByDetails(context.Background(), &query.WireQuery{Filters: []query.Filter{}})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNetwork))
}

func TestHTTPClient_NilQuery(t *testing.T) {
	c := NewHTTPClient("http://127.0.0.1:1", time.Second)
	_, err := c.SearchByDetails(context.Background(), nil)
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
	_, err = c.SearchByName(context.Background(), nil)
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}

func TestHTTPClient_UniqueValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, PathUniqueValues, r.URL.Path)
		_, _ = w.Write([]byte(`{"hasCuisine":[["Thai",4],["Italian",9]],"Diet":[["Vegan",2]],"bogus":[["x",1]]}`))
	}))
	defer srv.Close()

	table, err := NewHTTPClient(srv.URL, time.Second).UniqueValues(context.Background())
	require.NoError(t, err)
	assert.Len(t, table, 2)
	require.Len(t, table[attribute.Cuisine], 2)
	assert.Equal(t, "Italian", table[attribute.Cuisine][1].Value)
	assert.Equal(t, 9, table[attribute.Cuisine][1].Count)
	assert.Len(t, table[attribute.Diet], 1)
}

func TestHTTPClient_UniqueValuesErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[1,2,3]`))
	}))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, time.Second).UniqueValues(context.Background())
	assert.True(t, errors.IsCode(err, errors.ErrCodeDecode))
}

func TestNew_DefaultsBaseURL(t *testing.T) {
	c := NewHTTPClient("  ", 0)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())

	cfg := DefaultConfig()
	assert.True(t, cfg.Breaker.Enabled)
	_, ok := New(cfg).(*BreakerClient)
	assert.True(t, ok)

	cfg.Breaker.Enabled = false
	_, ok = New(cfg).(*HTTPClient)
	assert.True(t, ok)
}

func TestBreakerClient_TripsOnNetworkErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := BreakerConfig{
		Enabled:     true,
		MaxRequests: 1,
		Interval:    time.Minute,
		OpenTimeout: time.Minute,
		TripRatio:   0.5,
		MinRequests: 3,
	}
	c := NewBreakerClient(NewHTTPClient(srv.URL, time.Second), cfg, "test-trip")
	q := &query.NameQuery{Name: "x"}

	for i := 0; i < 3; i++ {
		_, err := c.SearchByName(context.Background(), q)
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, c.State())

	_, err := c.SearchByName(context.Background(), q)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNetwork))
	assert.Equal(t, int32(3), calls.Load(), "open breaker must not reach the service")
}

func TestBreakerClient_DecodeErrorsDoNotTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	cfg := BreakerConfig{MaxRequests: 1, Interval: time.Minute, OpenTimeout: time.Minute, TripRatio: 0.1, MinRequests: 1}
	c := NewBreakerClient(NewHTTPClient(srv.URL, time.Second), cfg, "test-decode")

	for i := 0; i < 5; i++ {
		_, err := c.SearchByDetails(context.Background(), &query.WireQuery{Filters: []query.Filter{}})
		assert.True(t, errors.IsCode(err, errors.ErrCodeDecode))
	}
	assert.Equal(t, gobreaker.StateClosed, c.State())
}

func TestBreakerClient_PassesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == PathUniqueValues {
			_, _ = w.Write([]byte(`{"Course":[["Dessert",3]]}`))
			return
		}
		_, _ = w.Write([]byte(recordsBody))
	}))
	defer srv.Close()

	c := NewBreakerClient(NewHTTPClient(srv.URL, time.Second), DefaultConfig().Breaker, "test-pass")

	records, err := c.SearchByDetails(context.Background(), &query.WireQuery{Filters: []query.Filter{}})
	require.NoError(t, err)
	assert.Len(t, records, 1)

	records, err = c.SearchByName(context.Background(), &query.NameQuery{Name: "pad"})
	require.NoError(t, err)
	assert.Len(t, records, 1)

	table, err := c.UniqueValues(context.Background())
	require.NoError(t, err)
	assert.Len(t, table[attribute.Course], 1)
}
