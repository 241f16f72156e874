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

package constraint

import (
	"fmt"
	"strings"

	"github.com/foodkg/recipe-finder/pkg/attribute"
	"github.com/foodkg/recipe-finder/pkg/errors"
	"github.com/foodkg/recipe-finder/pkg/picker"
)

// Action is one user gesture on the constraint set.
type Action interface {
	apply(s Set) (Set, error)
}

// AddConstraint appends an empty row.
type AddConstraint struct{}

// SelectAttribute sets the attribute of a row, discarding its value state.
type SelectAttribute struct {
	Index     int
	Attribute attribute.Attribute
}

// SetPrimaryValue sets the value of a singleton attribute row.
type SetPrimaryValue struct {
	Index int
	Value string
}

// SetMultiValue replaces the value list of a multi-valued row from comma
// separated input.
type SetMultiValue struct {
	Index int
	Raw   string
}

// SetExclusions replaces the exclusion set from comma separated input.
type SetExclusions struct {
	Raw string
}

// Pick forwards a picker event to a row and mirrors the picker value into
// the row's primary value.
type Pick struct {
	Index int
	Event picker.Event
}

// Reset discards every row and exclusion.
type Reset struct{}

// Apply returns the set after action a. The receiver is never modified; on
// error it is returned unchanged together with a validation error.
func (s Set) Apply(a Action) (Set, error) {
	if a == nil {
		return s, errors.New(errors.ErrCodeValidation, "action is nil")
	}
	next, err := a.apply(s.Clone())
	if err != nil {
		return s, err
	}
	return next, nil
}

// ApplyAll applies actions in order, stopping at the first error.
func (s Set) ApplyAll(actions ...Action) (Set, error) {
	cur := s
	for _, a := range actions {
		next, err := cur.Apply(a)
		if err != nil {
			return s, err
		}
		cur = next
	}
	return cur, nil
}

func (AddConstraint) apply(s Set) (Set, error) {
	s.Constraints = append(s.Constraints, Constraint{ValueList: []string{}})
	return s, nil
}

func (a SelectAttribute) apply(s Set) (Set, error) {
	if a.Index < 0 || a.Index >= len(s.Constraints) {
		return s, indexError(a.Index, len(s.Constraints))
	}
	if !a.Attribute.IsValid() {
		return s, errors.NewWithContext(errors.ErrCodeValidation,
			fmt.Sprintf("unknown attribute %q", a.Attribute),
			map[string]any{"supported": attribute.Supported()})
	}
	s.Constraints[a.Index] = Constraint{
		Attribute: a.Attribute,
		ValueList: []string{},
		Picker:    picker.Reduce(picker.State{}, picker.AttributeSelected{}),
	}
	return s, nil
}

func (a SetPrimaryValue) apply(s Set) (Set, error) {
	if a.Index < 0 || a.Index >= len(s.Constraints) {
		return s, indexError(a.Index, len(s.Constraints))
	}
	row := s.Constraints[a.Index]
	if c, ok := attribute.Lookup(row.Attribute); !ok || c.Cardinality != attribute.Singleton {
		return s, kindError(row, attribute.Singleton)
	}
	v := strings.TrimSpace(a.Value)
	row.PrimaryValue = v
	row.Picker = picker.Reduce(row.Picker, picker.ChipSelected{Value: v})
	s.Constraints[a.Index] = row
	return s, nil
}

func (a SetMultiValue) apply(s Set) (Set, error) {
	if a.Index < 0 || a.Index >= len(s.Constraints) {
		return s, indexError(a.Index, len(s.Constraints))
	}
	row := s.Constraints[a.Index]
	if c, ok := attribute.Lookup(row.Attribute); !ok || c.Cardinality != attribute.Multi {
		return s, kindError(row, attribute.Multi)
	}
	row.ValueList = Split(a.Raw)
	s.Constraints[a.Index] = row
	return s, nil
}

func (a SetExclusions) apply(s Set) (Set, error) {
	s.Exclusions = NewExclusionSet(Split(a.Raw))
	return s, nil
}

func (a Pick) apply(s Set) (Set, error) {
	if a.Index < 0 || a.Index >= len(s.Constraints) {
		return s, indexError(a.Index, len(s.Constraints))
	}
	if a.Event == nil {
		return s, errors.New(errors.ErrCodeValidation, "picker event is nil")
	}
	row := s.Constraints[a.Index]
	if c, ok := attribute.Lookup(row.Attribute); !ok || c.Cardinality != attribute.Singleton {
		return s, kindError(row, attribute.Singleton)
	}
	row.Picker = picker.Reduce(row.Picker, a.Event)
	row.PrimaryValue = row.Picker.Value
	s.Constraints[a.Index] = row
	return s, nil
}

func (Reset) apply(Set) (Set, error) {
	return NewSet(), nil
}
