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

// Package recipe normalizes the heterogeneous recipe records returned by the
// knowledge-graph search service into uniform summaries.
//
// # Records
//
// A RawRecord carries a name, a type and a property map whose values are
// arrays of strings:
//
//	{
//	  "name": "margherita_pizza",
//	  "type": "Recipe",
//	  "properties": {
//	    "hasCuisine": ["Italian"],
//	    "hasCookTime": ["15 minutes"],
//	    "hasIngredientDescription": ["{'heading': 'Dough', 'items': {'Flour': {'quantity': '2', 'unit': 'cups'}}}"],
//	    "hasInstructions": ["{'heading': 'Bake', 'instructions': 'Bake for 15 minutes.'}"]
//	  }
//	}
//
// Ingredient descriptions and instructions are quasi-JSON: JSON-like text that
// delimits strings with single quotes. ToJSON rewrites it lexically before a
// regular JSON parse.
//
// # Normalization
//
// NormalizeRecord produces a Summary:
//   - scalar properties take the first array element, or stay nil
//   - ingredient groups are flattened to one Ingredient per item, in the
//     order the items appear in the text
//   - instruction groups map one to one onto Steps
//   - an element that cannot be parsed is skipped, logged at debug level and
//     counted in fkg_recipe_parse_failures_total
//   - absent properties give empty, non-nil slices
//
// Normalization never fails. DecodeRecords, used at the network boundary,
// is the only function here that returns an error for a malformed response.
//
// # Usage
//
//	records, err := recipe.DecodeRecords(body)
//	if err != nil {
//	    return err // DECODE
//	}
//	for _, s := range recipe.Normalize(records) {
//	    fmt.Println(s.Name, len(s.Ingredients))
//	}
package recipe
