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
	"sort"
	"strings"

	"github.com/foodkg/recipe-finder/pkg/attribute"
	"github.com/foodkg/recipe-finder/pkg/errors"
	"github.com/foodkg/recipe-finder/pkg/query"
	"github.com/foodkg/recipe-finder/pkg/ranking"
	"github.com/foodkg/recipe-finder/pkg/recipe"
)

// term is a validated filter.
type term struct {
	attr   attribute.Attribute
	values []string
}

// SearchByDetails returns the recipes satisfying every filter and no
// exclusion. Nothing matching yields an empty slice.
func (c *Catalog) SearchByDetails(ctx context.Context, q *query.WireQuery) ([]recipe.RawRecord, error) {
	terms, err := validate(q)
	if err != nil {
		return nil, err
	}

	out := []recipe.RawRecord{}
	for _, e := range c.entries {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, "catalog search interrupted", err)
		}
		if e.excluded(q.Exclude) || !e.matchesAll(terms) {
			continue
		}
		out = append(out, e.record)
	}
	searches.WithLabelValues("details", resultLabel(len(out))).Inc()
	return out, nil
}

func validate(q *query.WireQuery) ([]term, error) {
	if q.IsEmpty() {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "search criteria is required")
	}
	terms := make([]term, 0, len(q.Filters))
	for i, f := range q.Filters {
		a, err := attribute.Parse(string(f.Attribute))
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "unsupported filter attribute", err,
				map[string]any{"index": i, "attribute": string(f.Attribute), "supported": attribute.Supported()})
		}
		values := make([]string, 0, len(f.Values))
		for _, v := range f.Values {
			if strings.TrimSpace(v) != "" {
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "filter has no values",
				map[string]any{"index": i, "attribute": a.String()})
		}
		terms = append(terms, term{attr: a, values: values})
	}
	return terms, nil
}

func (e entry) excluded(exclude []string) bool {
	for _, x := range exclude {
		if e.has(x) {
			return true
		}
	}
	return false
}

func (e entry) matchesAll(terms []term) bool {
	for _, t := range terms {
		for _, v := range t.values {
			if !e.matches(t.attr, v) {
				return false
			}
		}
	}
	return true
}

func (e entry) matches(a attribute.Attribute, v string) bool {
	switch a {
	case attribute.Ingredient:
		return e.has(v)
	case attribute.CookTime:
		return sameCookTime(e.recipe.CookTime, v)
	case attribute.Cuisine:
		return fold(e.recipe.Cuisine) == fold(v)
	case attribute.Diet:
		return fold(e.recipe.Diet) == fold(v)
	case attribute.Difficulty:
		return fold(e.recipe.Difficulty) == fold(v)
	case attribute.Course:
		return fold(e.recipe.Course) == fold(v)
	default:
		return false
	}
}

// sameCookTime compares cook times in canonical "<n> minutes" form when both
// sides coerce, else as folded text.
func sameCookTime(have, want string) bool {
	if strings.TrimSpace(have) == "" {
		return false
	}
	h, herr := query.CoerceCookTime(have)
	w, werr := query.CoerceCookTime(want)
	if herr == nil && werr == nil {
		return h == w
	}
	return fold(have) == fold(want)
}

// SearchByName returns recipes whose name contains q.Name or whose
// ingredients include any main ingredient, minus those containing an allergen.
func (c *Catalog) SearchByName(ctx context.Context, q *query.NameQuery) ([]recipe.RawRecord, error) {
	if q == nil || (strings.TrimSpace(q.Name) == "" && len(q.MainIngredients) == 0) {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "a name or main ingredient is required")
	}
	name := fold(q.Name)

	out := []recipe.RawRecord{}
	for _, e := range c.entries {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, "catalog search interrupted", err)
		}
		if e.excluded(q.Allergens) {
			continue
		}
		if (name != "" && strings.Contains(e.name, name)) || e.hasAny(q.MainIngredients) {
			out = append(out, e.record)
		}
	}
	searches.WithLabelValues("name", resultLabel(len(out))).Inc()
	return out, nil
}

func (e entry) hasAny(ingredients []string) bool {
	for _, ing := range ingredients {
		if strings.TrimSpace(ing) != "" && e.has(ing) {
			return true
		}
	}
	return false
}

// UniqueValues counts the values of every attribute that offers quick picks.
// Entries are ordered by descending count, ties in first-seen order.
func (c *Catalog) UniqueValues(ctx context.Context) (ranking.FrequencyTable, error) {
	table := ranking.FrequencyTable{}
	for _, a := range attribute.Ranked() {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, "catalog aggregation interrupted", err)
		}
		index := map[string]int{}
		entries := []ranking.Entry{}
		for _, e := range c.entries {
			v := strings.TrimSpace(e.value(a))
			if v == "" {
				continue
			}
			if i, ok := index[v]; ok {
				entries[i].Count++
				continue
			}
			index[v] = len(entries)
			entries = append(entries, ranking.Entry{Value: v, Count: 1})
		}
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].Count > entries[j].Count
		})
		table[a] = entries
	}
	return table, nil
}

func (e entry) value(a attribute.Attribute) string {
	switch a {
	case attribute.Cuisine:
		return e.recipe.Cuisine
	case attribute.Diet:
		return e.recipe.Diet
	case attribute.Difficulty:
		return e.recipe.Difficulty
	case attribute.Course:
		return e.recipe.Course
	case attribute.CookTime:
		return e.recipe.CookTime
	default:
		return ""
	}
}

func resultLabel(n int) string {
	if n == 0 {
		return "empty"
	}
	return "matched"
}
