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
	"bytes"
	"encoding/json"
	"log/slog"

	"github.com/foodkg/recipe-finder/pkg/errors"
)

// Normalize converts raw records into summaries, one per record, in order.
// It never fails: malformed embedded text only drops the affected element.
func Normalize(records []RawRecord) []Summary {
	out := make([]Summary, 0, len(records))
	for _, r := range records {
		out = append(out, NormalizeRecord(r))
	}
	return out
}

// NormalizeRecord converts one raw record into a summary.
func NormalizeRecord(r RawRecord) Summary {
	s := Summary{
		Name:             r.Name,
		Type:             r.Type,
		Cuisine:          first(r.Properties, PropertyCuisine),
		Diet:             first(r.Properties, PropertyDiet),
		Difficulty:       first(r.Properties, PropertyDifficulty),
		Course:           first(r.Properties, PropertyCourse),
		CookTime:         first(r.Properties, PropertyCookTime),
		PrepTime:         first(r.Properties, PropertyPrepTime),
		TotalTime:        first(r.Properties, PropertyTotalTime),
		SourceURL:        first(r.Properties, PropertyRecipeURL),
		Ingredients:      []Ingredient{},
		InstructionSteps: []Step{},
	}

	for i, raw := range r.Properties[PropertyIngredientDescription] {
		items, err := parseIngredients(raw)
		if err != nil {
			skipped(r.Name, PropertyIngredientDescription, i, err)
			continue
		}
		s.Ingredients = append(s.Ingredients, items...)
	}

	for i, raw := range r.Properties[PropertyInstructions] {
		steps, err := parseInstructions(raw)
		if err != nil {
			skipped(r.Name, PropertyInstructions, i, err)
			continue
		}
		s.InstructionSteps = append(s.InstructionSteps, steps...)
	}

	return s
}

func first(p Properties, property string) *string {
	v, ok := p.First(property)
	if !ok {
		return nil
	}
	return &v
}

func skipped(name, property string, index int, err error) {
	parseFailures.WithLabelValues(property).Inc()
	slog.Debug("skipping malformed recipe property element",
		"recipe", name,
		"property", property,
		"index", index,
		"error", err,
	)
}

// DecodeRecords decodes a search response body. Anything other than a JSON
// array of records is a DECODE error; an empty or null body decodes to no
// records.
func DecodeRecords(body []byte) ([]RawRecord, error) {
	var records []RawRecord
	if len(bytes.TrimSpace(body)) == 0 {
		return []RawRecord{}, nil
	}
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, "failed to decode search response", err)
	}
	if records == nil {
		records = []RawRecord{}
	}
	return records, nil
}
