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
	"strings"

	"github.com/foodkg/recipe-finder/pkg/recipe"
)

// Record renders r the way the knowledge graph returns it.
func (r Recipe) Record() recipe.RawRecord {
	props := recipe.Properties{}
	set := func(property, value string) {
		if v := strings.TrimSpace(value); v != "" {
			props[property] = []string{v}
		}
	}
	set(recipe.PropertyCuisine, r.Cuisine)
	set(recipe.PropertyDiet, r.Diet)
	set(recipe.PropertyDifficulty, r.Difficulty)
	set(recipe.PropertyCourse, r.Course)
	set(recipe.PropertyCookTime, r.CookTime)
	set(recipe.PropertyPrepTime, r.PrepTime)
	set(recipe.PropertyTotalTime, r.TotalTime)
	set(recipe.PropertyRecipeURL, r.URL)

	if len(r.Ingredients) > 0 {
		props[recipe.PropertyActualIngredients] = append([]string{}, r.Ingredients...)
	}
	for _, g := range r.IngredientGroups {
		props[recipe.PropertyIngredientDescription] = append(props[recipe.PropertyIngredientDescription], g.quasi())
	}
	for _, g := range r.Instructions {
		props[recipe.PropertyInstructions] = append(props[recipe.PropertyInstructions], g.quasi())
	}

	return recipe.RawRecord{
		Name:       r.Name,
		Type:       "Recipe",
		Properties: props,
	}
}

// quasi renders {'heading': ..., 'items': {item: {form, quantity, unit, notes}}}
// keeping item order.
func (g IngredientGroup) quasi() string {
	var b strings.Builder
	b.WriteString("{'heading': ")
	b.WriteString(quote(g.Heading))
	b.WriteString(", 'items': {")
	for i, it := range g.Items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(quote(it.Item))
		b.WriteString(": {")
		n := 0
		for _, kv := range [][2]string{
			{"form", it.Form},
			{"quantity", it.Quantity},
			{"unit", it.Unit},
			{"notes", it.Notes},
		} {
			if kv[1] == "" {
				continue
			}
			if n > 0 {
				b.WriteString(", ")
			}
			b.WriteString(quote(kv[0]))
			b.WriteString(": ")
			b.WriteString(quote(kv[1]))
			n++
		}
		b.WriteString("}")
	}
	b.WriteString("}}")
	return b.String()
}

// quasi renders {'heading': ..., 'instructions': ...}; a single step is a
// string, several are a list.
func (g InstructionGroup) quasi() string {
	var b strings.Builder
	b.WriteString("{'heading': ")
	b.WriteString(quote(g.Heading))
	b.WriteString(", 'instructions': ")
	if len(g.Steps) == 1 {
		b.WriteString(quote(g.Steps[0]))
	} else {
		b.WriteString("[")
		for i, s := range g.Steps {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(quote(s))
		}
		b.WriteString("]")
	}
	b.WriteString("}")
	return b.String()
}

var quoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\\"`,
	"\n", `\n`,
	"\t", `\t`,
)

// quote renders s as a single-quoted quasi-JSON string.
func quote(s string) string {
	return "'" + quoteReplacer.Replace(s) + "'"
}
