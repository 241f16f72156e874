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
	"bytes"
	"context"
	// embed package is required to satisfy go:embed directives declared in this package.
	_ "embed"
	"log/slog"
	"strings"

	"golang.org/x/text/cases"

	"github.com/foodkg/recipe-finder/pkg/errors"
	"github.com/foodkg/recipe-finder/pkg/recipe"
	"github.com/foodkg/recipe-finder/pkg/serializer"
)

//go:embed data/recipes.yaml
var embeddedDataset []byte

// Dataset is the on-disk catalog layout.
type Dataset struct {
	Recipes []Recipe `json:"recipes" yaml:"recipes"`
}

// Recipe is one catalog entry.
type Recipe struct {
	Name             string             `json:"name" yaml:"name"`
	Cuisine          string             `json:"cuisine,omitempty" yaml:"cuisine,omitempty"`
	Diet             string             `json:"diet,omitempty" yaml:"diet,omitempty"`
	Difficulty       string             `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
	Course           string             `json:"course,omitempty" yaml:"course,omitempty"`
	CookTime         string             `json:"cookTime,omitempty" yaml:"cookTime,omitempty"`
	PrepTime         string             `json:"prepTime,omitempty" yaml:"prepTime,omitempty"`
	TotalTime        string             `json:"totalTime,omitempty" yaml:"totalTime,omitempty"`
	URL              string             `json:"url,omitempty" yaml:"url,omitempty"`
	Ingredients      []string           `json:"ingredients,omitempty" yaml:"ingredients,omitempty"`
	IngredientGroups []IngredientGroup  `json:"ingredientGroups,omitempty" yaml:"ingredientGroups,omitempty"`
	Instructions     []InstructionGroup `json:"instructions,omitempty" yaml:"instructions,omitempty"`
}

// IngredientGroup is a headed list of ingredient lines.
type IngredientGroup struct {
	Heading string `json:"heading" yaml:"heading"`
	Items   []Item `json:"items" yaml:"items"`
}

// Item is one ingredient line.
type Item struct {
	Item     string `json:"item" yaml:"item"`
	Form     string `json:"form,omitempty" yaml:"form,omitempty"`
	Quantity string `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Unit     string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Notes    string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// InstructionGroup is a headed list of steps.
type InstructionGroup struct {
	Heading string   `json:"heading" yaml:"heading"`
	Steps   []string `json:"steps" yaml:"steps"`
}

// Catalog is an immutable, indexed set of recipes. Safe for concurrent use.
type Catalog struct {
	entries []entry
}

type entry struct {
	recipe      Recipe
	record      recipe.RawRecord
	name        string
	ingredients map[string]struct{}
}

// fold case-folds s. Casers are not safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// New indexes recipes. Every recipe needs a name.
func New(recipes []Recipe) (*Catalog, error) {
	c := &Catalog{entries: make([]entry, 0, len(recipes))}
	for i, r := range recipes {
		if strings.TrimSpace(r.Name) == "" {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"catalog recipe has no name", map[string]any{"index": i})
		}
		e := entry{
			recipe:      r,
			record:      r.Record(),
			name:        fold(r.Name),
			ingredients: make(map[string]struct{}, len(r.Ingredients)),
		}
		for _, ing := range r.Ingredients {
			e.ingredients[fold(ing)] = struct{}{}
		}
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	reader, err := serializer.NewReader(serializer.FormatYAML, bytes.NewReader(embeddedDataset))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to create dataset reader", err)
	}
	var ds Dataset
	if err := reader.Deserialize(&ds); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to parse embedded dataset", err)
	}
	return New(ds.Recipes)
}

// Load reads a JSON or YAML dataset file.
func Load(path string) (*Catalog, error) {
	ds, err := serializer.FromFile[Dataset](path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to load catalog", err,
			map[string]any{"path": path})
	}
	slog.Debug("catalog loaded", "path", path, "recipes", len(ds.Recipes))
	return New(ds.Recipes)
}

// Ready reports whether the catalog can answer searches: it must hold at
// least one recipe and offer at least one ranked option value.
func (c *Catalog) Ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(errors.ErrCodeTimeout, "readiness check canceled", err)
	}
	if c.Len() == 0 {
		return errors.New(errors.ErrCodeUnavailable, "catalog has no recipes")
	}
	table, err := c.UniqueValues(ctx)
	if err != nil {
		return err
	}
	for _, entries := range table {
		if len(entries) > 0 {
			return nil
		}
	}
	return errors.New(errors.ErrCodeUnavailable, "catalog has no option values")
}

// Open loads path, or the embedded dataset when path is empty.
func Open(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	return Load(path)
}

// Len returns the number of recipes.
func (c *Catalog) Len() int {
	return len(c.entries)
}

func (e entry) has(ingredient string) bool {
	_, ok := e.ingredients[fold(ingredient)]
	return ok
}
