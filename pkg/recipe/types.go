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

package recipe

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Backend property names read by the normalizer.
const (
	PropertyCuisine               = "hasCuisine"
	PropertyDiet                  = "hasDiet"
	PropertyDifficulty            = "hasDifficulty"
	PropertyCourse                = "hasCourse"
	PropertyCookTime              = "hasCookTime"
	PropertyPrepTime              = "hasPrepTime"
	PropertyTotalTime             = "hasTotalTime"
	PropertyRecipeURL             = "hasRecipeURL"
	PropertyActualIngredients     = "hasActualIngredients"
	PropertyIngredientDescription = "hasIngredientDescription"
	PropertyInstructions          = "hasInstructions"
)

// RawRecord is a recipe record as returned by the search service.
type RawRecord struct {
	Name       string     `json:"name" yaml:"name"`
	Type       string     `json:"type" yaml:"type"`
	Properties Properties `json:"properties" yaml:"properties"`
}

// Properties maps a backend property to its values. Values of ingredient
// descriptions and instructions are quasi-JSON text.
type Properties map[string][]string

// First returns the first value of a property.
func (p Properties) First(property string) (string, bool) {
	values := p[property]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// UnmarshalJSON accepts property values that are arrays of scalars or a bare
// scalar. Numbers and booleans are kept in their JSON text form; nulls are dropped.
func (p *Properties) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Properties, len(raw))
	for key, msg := range raw {
		values, err := scalarList(msg)
		if err != nil {
			return fmt.Errorf("property %q: %w", key, err)
		}
		out[key] = values
	}
	*p = out
	return nil
}

func scalarList(msg json.RawMessage) ([]string, error) {
	var list []json.RawMessage
	if err := json.Unmarshal(msg, &list); err != nil {
		s, ok, serr := scalar(msg)
		if serr != nil {
			return nil, serr
		}
		if !ok {
			return []string{}, nil
		}
		return []string{s}, nil
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok, err := scalar(item)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func scalar(msg json.RawMessage) (string, bool, error) {
	var v any
	if err := json.Unmarshal(msg, &v); err != nil {
		return "", false, err
	}
	switch t := v.(type) {
	case nil:
		return "", false, nil
	case string:
		return t, true, nil
	case float64, bool:
		return string(msg), true, nil
	default:
		return "", false, fmt.Errorf("unsupported value %s", string(msg))
	}
}

// Summary is a normalized, render-ready recipe. Optional scalars are nil
// when the backend did not supply them. Ingredients and InstructionSteps are
// never nil.
type Summary struct {
	Name             string       `json:"name" yaml:"name"`
	Type             string       `json:"type" yaml:"type"`
	Cuisine          *string      `json:"cuisine,omitempty" yaml:"cuisine,omitempty"`
	Diet             *string      `json:"diet,omitempty" yaml:"diet,omitempty"`
	Difficulty       *string      `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Course           *string      `json:"course,omitempty" yaml:"course,omitempty"`
	CookTime         *string      `json:"cookTime,omitempty" yaml:"cookTime,omitempty"`
	PrepTime         *string      `json:"prepTime,omitempty" yaml:"prepTime,omitempty"`
	TotalTime        *string      `json:"totalTime,omitempty" yaml:"totalTime,omitempty"`
	Ingredients      []Ingredient `json:"ingredients" yaml:"ingredients"`
	InstructionSteps []Step       `json:"instructionSteps" yaml:"instructionSteps"`
	SourceURL        *string      `json:"sourceUrl,omitempty" yaml:"sourceUrl,omitempty"`
}

// Ingredient is one flattened ingredient line.
type Ingredient struct {
	Item     string  `json:"item" yaml:"item"`
	Form     *string `json:"form,omitempty" yaml:"form,omitempty"`
	Quantity *string `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Unit     *string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Notes    *string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Step is one instruction group.
type Step struct {
	Heading string `json:"heading" yaml:"heading"`
	Text    string `json:"text" yaml:"text"`
}

// text is an optional string that also accepts a JSON number or boolean.
type text struct {
	value *string
}

func (t *text) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		t.value = nil
	case string:
		t.value = &x
	case float64:
		s := strconv.FormatFloat(x, 'f', -1, 64)
		t.value = &s
	case bool:
		s := strconv.FormatBool(x)
		t.value = &s
	default:
		return fmt.Errorf("expected a scalar, got %s", string(data))
	}
	return nil
}
