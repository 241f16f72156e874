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

// Package query compiles a constraint set into the request bodies sent to the
// recipe search service.
//
// Compilation is pure and deterministic: the same constraint set always
// encodes to the same bytes. No network I/O happens here.
package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/foodkg/recipe-finder/pkg/attribute"
	"github.com/foodkg/recipe-finder/pkg/constraint"
	"github.com/foodkg/recipe-finder/pkg/errors"
)

// CookTimeUnit is the suffix every cook time value carries on the wire.
const CookTimeUnit = "minutes"

// Filter is one inclusion term. A recipe satisfies the term when it matches
// every value listed.
type Filter struct {
	Attribute attribute.Attribute `json:"attribute" yaml:"attribute"`
	Values    []string            `json:"values" yaml:"values"`
}

// WireQuery is the /search-by-details request body.
//
// Filters combine with AND semantics: a recipe must satisfy every term.
// Exclude is kept separate from Filters and vetoes any recipe matching one of
// its entries, regardless of how many filters that recipe satisfies.
type WireQuery struct {
	Filters []Filter `json:"filters" yaml:"filters"`
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// Encode returns the JSON encoding of the query.
func (q *WireQuery) Encode() ([]byte, error) {
	return encode(q)
}

// IsEmpty reports whether the query has neither filters nor exclusions.
func (q *WireQuery) IsEmpty() bool {
	return q == nil || (len(q.Filters) == 0 && len(q.Exclude) == 0)
}

// NameQuery is the /search-by-name request body. Its fields combine with OR
// semantics; Allergens still veto.
type NameQuery struct {
	Name            string   `json:"name" yaml:"name"`
	MainIngredients []string `json:"mainIngredients" yaml:"mainIngredients"`
	Allergens       []string `json:"allergens" yaml:"allergens"`
}

// Encode returns the JSON encoding of the query.
func (q *NameQuery) Encode() ([]byte, error) {
	return encode(q)
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to encode query", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Compile turns the constraint set into a WireQuery. Rows without an
// attribute or value are skipped; filters keep row order. Cook time values
// are coerced to "<n> minutes".
func Compile(set constraint.Set) (*WireQuery, error) {
	q := &WireQuery{Filters: []Filter{}}

	for i, c := range set.Constraints {
		if !c.HasValue() {
			continue
		}
		values := c.Values()
		if capability, _ := attribute.Lookup(c.Attribute); capability.Coerced {
			for j, v := range values {
				coerced, err := coerce(c.Attribute, v)
				if err != nil {
					return nil, errors.WrapWithContext(errors.ErrCodeValidation,
						fmt.Sprintf("invalid value for %s", c.Attribute), err,
						map[string]any{"row": i, "value": v})
				}
				values[j] = coerced
			}
		}
		q.Filters = append(q.Filters, Filter{Attribute: c.Attribute, Values: values})
	}

	if len(set.Exclusions) > 0 {
		q.Exclude = append([]string{}, set.Exclusions...)
	}

	return q, nil
}

func coerce(a attribute.Attribute, v string) (string, error) {
	switch a {
	case attribute.CookTime:
		return CoerceCookTime(v)
	default:
		return v, nil
	}
}

// CoerceCookTime normalizes a cook time such as "30", "30 minutes" or
// "30 Minutes" to "30 minutes". Anything that is not a positive integer once
// the unit is stripped fails validation.
func CoerceCookTime(v string) (string, error) {
	s := strings.TrimSpace(v)
	if len(s) >= len(CookTimeUnit) && strings.EqualFold(s[len(s)-len(CookTimeUnit):], CookTimeUnit) {
		s = strings.TrimSpace(s[:len(s)-len(CookTimeUnit)])
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return "", errors.NewWithContext(errors.ErrCodeValidation,
			fmt.Sprintf("cook time must be a positive whole number of %s", CookTimeUnit),
			map[string]any{"value": v})
	}
	return fmt.Sprintf("%d %s", n, CookTimeUnit), nil
}

// CompileName builds a name search body. List inputs are trimmed and empty
// entries dropped; at least one of name or main ingredients is required.
func CompileName(name string, mainIngredients, allergens []string) (*NameQuery, error) {
	q := &NameQuery{
		Name:            strings.TrimSpace(name),
		MainIngredients: clean(mainIngredients),
		Allergens:       clean(allergens),
	}
	if q.Name == "" && len(q.MainIngredients) == 0 {
		return nil, errors.New(errors.ErrCodeValidation, "enter a recipe name or at least one main ingredient")
	}
	return q, nil
}

func clean(in []string) []string {
	out := []string{}
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
