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

// Package catalog is an in-memory recipe catalog that serves the search
// contract consumed by pkg/search. It backs the fkgd fixture service and the
// CLI's offline mode.
//
// The catalog is loaded from YAML, either the dataset embedded in the binary
// or a user supplied file:
//
//	recipes:
//	  - name: Pad Thai
//	    cuisine: Thai
//	    cookTime: 20 minutes
//	    ingredients: [Rice Noodles, Shrimp, Peanuts]
//	    ingredientGroups:
//	      - heading: Main
//	        items:
//	          - {item: Shrimp, form: peeled, quantity: "12"}
//	    instructions:
//	      - heading: Stir Fry
//	        steps: [Soak the noodles., Fry everything.]
//
// Records are emitted the way the knowledge graph emits them: scalar
// properties as single element arrays, ingredient descriptions and
// instructions as quasi-JSON strings.
//
// Matching is case-insensitive. Detail filters combine with AND; the
// exclusion list vetoes any recipe whose actual ingredients contain an
// excluded entry. Name searches match on name OR main ingredients and are
// vetoed by allergens.
package catalog
