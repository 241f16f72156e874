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

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/foodkg/recipe-finder/pkg/defaults"
	fkgerrors "github.com/foodkg/recipe-finder/pkg/errors"
	"github.com/foodkg/recipe-finder/pkg/query"
	"github.com/foodkg/recipe-finder/pkg/ranking"
	"github.com/foodkg/recipe-finder/pkg/recipe"
	"github.com/foodkg/recipe-finder/pkg/serializer"
	"github.com/foodkg/recipe-finder/pkg/server"
)

// HandleSearchByDetails serves POST /search-by-details. The body is a
// WireQuery in JSON, or YAML when the content type says so. A search that
// matches nothing answers 404.
func (c *Catalog) HandleSearchByDetails(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var q query.WireQuery
	if err := decodeBody(r, &q); err != nil {
		server.WriteError(w, r, http.StatusBadRequest, fkgerrors.ErrCodeInvalidRequest,
			"Invalid search criteria", false, map[string]any{"error": err.Error()})
		return
	}

	slog.Debug("search by details", "filters", len(q.Filters), "exclude", len(q.Exclude))
	c.respondRecords(w, r, func(ctx context.Context) ([]recipe.RawRecord, error) {
		return c.SearchByDetails(ctx, &q)
	}, "No recipes matched the criteria")
}

// HandleSearchByName serves POST /search-by-name.
func (c *Catalog) HandleSearchByName(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var q query.NameQuery
	if err := decodeBody(r, &q); err != nil {
		server.WriteError(w, r, http.StatusBadRequest, fkgerrors.ErrCodeInvalidRequest,
			"Invalid name query", false, map[string]any{"error": err.Error()})
		return
	}

	c.respondRecords(w, r, func(ctx context.Context) ([]recipe.RawRecord, error) {
		return c.SearchByName(ctx, &q)
	}, fmt.Sprintf("No recipe found for %q", q.Name))
}

func (c *Catalog) respondRecords(w http.ResponseWriter, r *http.Request,
	search func(context.Context) ([]recipe.RawRecord, error), notFound string) {

	ctx, cancel := context.WithTimeout(r.Context(), defaults.CatalogEvalTimeout)
	defer cancel()

	records, err := search(ctx)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Search failed", nil)
		return
	}
	if len(records) == 0 {
		server.WriteError(w, r, http.StatusNotFound, fkgerrors.ErrCodeNotFound, notFound, false, nil)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, records)
}

// HandleUniqueValues serves GET /unique-values keyed by backend property.
func (c *Catalog) HandleUniqueValues(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.CatalogEvalTimeout)
	defer cancel()

	table, err := c.UniqueValues(ctx)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to aggregate values", nil)
		return
	}

	byProperty := make(map[string][]ranking.Entry, len(table))
	for a, entries := range table {
		byProperty[a.Property()] = entries
	}

	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(defaults.UniqueValuesCacheTTL.Seconds())))
	serializer.RespondJSON(w, http.StatusOK, byProperty)
}

func allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	server.WriteError(w, r, http.StatusMethodNotAllowed, fkgerrors.ErrCodeMethodNotAllowed,
		"Method not allowed", false, map[string]any{
			"method":  r.Method,
			"allowed": []string{method},
		})
	return false
}

func decodeBody(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("request body is required")
	}
	defer r.Body.Close()

	format := serializer.FormatJSON
	if strings.Contains(strings.ToLower(r.Header.Get("Content-Type")), "yaml") {
		format = serializer.FormatYAML
	}
	reader, err := serializer.NewReader(format, r.Body)
	if err != nil {
		return err
	}
	return reader.Deserialize(v)
}
