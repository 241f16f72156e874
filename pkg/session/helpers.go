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

package session

import (
	"github.com/foodkg/recipe-finder/pkg/attribute"
	"github.com/foodkg/recipe-finder/pkg/constraint"
	"github.com/foodkg/recipe-finder/pkg/query"
	"github.com/foodkg/recipe-finder/pkg/ranking"
	"github.com/foodkg/recipe-finder/pkg/recipe"
)

// BuildConstraint returns set with an empty row appended.
func BuildConstraint(set constraint.Set) constraint.Set {
	next, _ := set.Apply(constraint.AddConstraint{})
	return next
}

// UpdateConstraint applies one action to set.
func UpdateConstraint(set constraint.Set, a constraint.Action) (constraint.Set, error) {
	return set.Apply(a)
}

// CompileQuery checks that set is submittable and compiles it.
func CompileQuery(set constraint.Set) (*query.WireQuery, error) {
	if err := set.CheckSubmittable(); err != nil {
		return nil, err
	}
	return query.Compile(set)
}

// NormalizeResponse decodes a search response body into summaries.
func NormalizeResponse(body []byte) ([]recipe.Summary, error) {
	records, err := recipe.DecodeRecords(body)
	if err != nil {
		return nil, err
	}
	return recipe.Normalize(records), nil
}

// RankOptions ranks every attribute that offers quick picks.
func RankOptions(table ranking.FrequencyTable) map[attribute.Attribute]ranking.RankedOptions {
	return ranking.RankTable(table)
}
