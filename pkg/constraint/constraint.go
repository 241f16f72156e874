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

// Package constraint models the ordered set of search constraints a user is
// assembling, plus the exclusion list, as an immutable value driven by a
// reducer: every gesture is an Action and Apply returns a new Set.
package constraint

import (
	"fmt"
	"strings"

	"github.com/foodkg/recipe-finder/pkg/attribute"
	"github.com/foodkg/recipe-finder/pkg/errors"
	"github.com/foodkg/recipe-finder/pkg/picker"
)

// Constraint is one (attribute, value-or-values) search term.
type Constraint struct {
	Attribute    attribute.Attribute
	PrimaryValue string
	ValueList    []string
	Picker       picker.State
}

// IsCustom reports whether the value was entered through custom input.
func (c Constraint) IsCustom() bool {
	return c.Picker.IsCustom()
}

// PendingInput returns the custom text typed but not yet committed.
func (c Constraint) PendingInput() string {
	return c.Picker.Pending
}

// HasValue reports whether the row would contribute a filter term.
func (c Constraint) HasValue() bool {
	return c.Attribute.IsValid() && (len(c.ValueList) > 0 || strings.TrimSpace(c.PrimaryValue) != "")
}

// Values returns ValueList when set, else the primary value, else nil.
func (c Constraint) Values() []string {
	if len(c.ValueList) > 0 {
		return append([]string{}, c.ValueList...)
	}
	if v := strings.TrimSpace(c.PrimaryValue); v != "" {
		return []string{v}
	}
	return nil
}

func (c Constraint) clone() Constraint {
	c.ValueList = append([]string{}, c.ValueList...)
	return c
}

// ExclusionSet is an ordered set of excluded ingredients or allergens.
// Any result matching an entry is vetoed by the search service.
type ExclusionSet []string

// NewExclusionSet returns a set with duplicates removed, first occurrence kept.
func NewExclusionSet(values []string) ExclusionSet {
	out := ExclusionSet{}
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Set is the constraint rows in display order plus the exclusions.
type Set struct {
	Constraints []Constraint
	Exclusions  ExclusionSet
}

// NewSet returns an empty set.
func NewSet() Set {
	return Set{Constraints: []Constraint{}, Exclusions: ExclusionSet{}}
}

// Len returns the number of rows.
func (s Set) Len() int {
	return len(s.Constraints)
}

// Row returns a copy of row i.
func (s Set) Row(i int) (Constraint, bool) {
	if i < 0 || i >= len(s.Constraints) {
		return Constraint{}, false
	}
	return s.Constraints[i].clone(), true
}

// Clone returns a deep copy of s.
func (s Set) Clone() Set {
	out := Set{
		Constraints: make([]Constraint, len(s.Constraints)),
		Exclusions:  append(ExclusionSet{}, s.Exclusions...),
	}
	for i, c := range s.Constraints {
		out.Constraints[i] = c.clone()
	}
	return out
}

// Split splits comma separated input, trimming tokens and dropping empty ones.
func Split(raw string) []string {
	out := []string{}
	for _, tok := range strings.Split(raw, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// CheckSubmittable rejects a set that would produce an empty query: no row
// carries an attribute with a value and there are no exclusions.
func (s Set) CheckSubmittable() error {
	if len(s.Exclusions) > 0 {
		return nil
	}
	for _, c := range s.Constraints {
		if c.HasValue() {
			return nil
		}
	}
	return errors.New(errors.ErrCodeValidation, "select at least one attribute and value, or an exclusion")
}

func indexError(i, n int) error {
	return errors.NewWithContext(errors.ErrCodeValidation,
		fmt.Sprintf("constraint index %d out of range", i),
		map[string]any{"index": i, "count": n})
}

func kindError(c Constraint, want attribute.Cardinality) error {
	if c.Attribute.IsUnset() {
		return errors.New(errors.ErrCodeValidation, "select an attribute before entering a value")
	}
	return errors.NewWithContext(errors.ErrCodeValidation,
		fmt.Sprintf("attribute %q does not take a %s value", c.Attribute, want),
		map[string]any{"attribute": c.Attribute.String()})
}
