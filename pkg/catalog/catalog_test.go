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
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/foodkg/recipe-finder/pkg/attribute"
	"github.com/foodkg/recipe-finder/pkg/errors"
	"github.com/foodkg/recipe-finder/pkg/query"
	"github.com/foodkg/recipe-finder/pkg/ranking"
	"github.com/foodkg/recipe-finder/pkg/recipe"
)

func defaultCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := Default()
	require.NoError(t, err)
	require.Equal(t, 12, c.Len())
	return c
}

func names(records []recipe.RawRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func filter(a attribute.Attribute, values ...string) query.Filter {
	return query.Filter{Attribute: a, Values: values}
}

func TestSearchByDetails(t *testing.T) {
	c := defaultCatalog(t)

	tests := []struct {
		name string
		q    query.WireQuery
		want []string
	}{
		{
			name: "ingredients combine with and",
			q:    query.WireQuery{Filters: []query.Filter{filter(attribute.Ingredient, "Tomatoes", "Garlic")}},
			want: []string{"Spaghetti Pomodoro", "Chicken Tikka Masala"},
		},
		{
			name: "filters combine with and",
			q: query.WireQuery{Filters: []query.Filter{
				filter(attribute.Ingredient, "Tomatoes", "Garlic"),
				filter(attribute.Cuisine, "Italian"),
			}},
			want: []string{"Spaghetti Pomodoro"},
		},
		{
			name: "exclusion vetoes",
			q: query.WireQuery{
				Filters: []query.Filter{filter(attribute.Cuisine, "Thai")},
				Exclude: []string{"Peanuts"},
			},
			want: []string{"Green Curry"},
		},
		{
			name: "exclusion only",
			q:    query.WireQuery{Filters: []query.Filter{}, Exclude: []string{"garlic", "tomatoes", "tofu", "chicken", "yogurt", "mascarpone", "lamb"}},
			want: []string{},
		},
		{
			name: "case insensitive",
			q:    query.WireQuery{Filters: []query.Filter{filter(attribute.Cuisine, "thai")}},
			want: []string{"Pad Thai", "Green Curry"},
		},
		{
			name: "cook time canonical",
			q:    query.WireQuery{Filters: []query.Filter{filter(attribute.CookTime, "30 minutes")}},
			want: []string{"Spaghetti Pomodoro"},
		},
		{
			name: "cook time bare number",
			q:    query.WireQuery{Filters: []query.Filter{filter(attribute.CookTime, "30")}},
			want: []string{"Spaghetti Pomodoro"},
		},
		{
			name: "property name as attribute",
			q:    query.WireQuery{Filters: []query.Filter{{Attribute: "hasCourse", Values: []string{"Dessert"}}}},
			want: []string{"Tiramisu"},
		},
		{
			name: "nothing matches",
			q:    query.WireQuery{Filters: []query.Filter{filter(attribute.Cuisine, "Martian")}},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.SearchByDetails(context.Background(), &tt.q)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestSearchByDetails_Concurrent(t *testing.T) {
	c := defaultCatalog(t)
	q := &query.WireQuery{Filters: []query.Filter{
		filter(attribute.Ingredient, "TOMATOES", "garlic"),
		filter(attribute.Cuisine, "italian"),
	}}

	var g errgroup.Group
	for range 16 {
		g.Go(func() error {
			got, err := c.SearchByDetails(context.Background(), q)
			if err != nil {
				return err
			}
			if len(got) != 1 || got[0].Name != "Spaghetti Pomodoro" {
				return fmt.Errorf("unexpected result %v", names(got))
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestSearchByDetails_Invalid(t *testing.T) {
	c := defaultCatalog(t)

	tests := []struct {
		name string
		q    *query.WireQuery
	}{
		{name: "nil", q: nil},
		{name: "empty", q: &query.WireQuery{Filters: []query.Filter{}}},
		{name: "unknown attribute", q: &query.WireQuery{Filters: []query.Filter{{Attribute: "Color", Values: []string{"red"}}}}},
		{name: "no values", q: &query.WireQuery{Filters: []query.Filter{filter(attribute.Diet, " ")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.SearchByDetails(context.Background(), tt.q)
			assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest), "got %v", err)
		})
	}
}

func TestSearchByDetails_Canceled(t *testing.T) {
	c := defaultCatalog(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.SearchByDetails(ctx, &query.WireQuery{Filters: []query.Filter{filter(attribute.Diet, "Vegan")}})
	assert.True(t, errors.IsCode(err, errors.ErrCodeTimeout))
}

func TestSearchByName(t *testing.T) {
	c := defaultCatalog(t)

	tests := []struct {
		name string
		q    query.NameQuery
		want []string
	}{
		{name: "name substring", q: query.NameQuery{Name: "curry"}, want: []string{"Green Curry"}},
		{name: "name or ingredient", q: query.NameQuery{Name: "curry", MainIngredients: []string{"Peanuts"}}, want: []string{"Pad Thai", "Green Curry"}},
		{name: "allergen veto", q: query.NameQuery{Name: "chicken", Allergens: []string{"yogurt"}}, want: []string{"Chicken Tacos"}},
		{name: "vetoed to nothing", q: query.NameQuery{MainIngredients: []string{"Peanuts"}, Allergens: []string{"Shrimp"}}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.SearchByName(context.Background(), &tt.q)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}

	_, err := c.SearchByName(context.Background(), &query.NameQuery{Allergens: []string{"nuts"}})
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestUniqueValues(t *testing.T) {
	c := defaultCatalog(t)

	table, err := c.UniqueValues(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ranking.Entry{Value: "Indian", Count: 3}, table[attribute.Cuisine][0])
	assert.Contains(t, table[attribute.Cuisine], ranking.Entry{Value: "NA", Count: 1})
	assert.Equal(t, ranking.Entry{Value: "Main Course", Count: 7}, table[attribute.Course][0])
	assert.NotContains(t, table, attribute.Ingredient)

	ranked := ranking.RankTable(table)
	assert.Equal(t, []string{"Indian", "Italian", "Thai", "Mexican", "Japanese", "British"}, ranked[attribute.Cuisine].QuickPicks)
	assert.Empty(t, ranked[attribute.Cuisine].Overflow)
	assert.Equal(t, []string{"Vegetarian", "Non Vegetarian", "Vegan"}, ranked[attribute.Diet].QuickPicks)
}

func TestRecord_NormalizesBack(t *testing.T) {
	c := defaultCatalog(t)
	got, err := c.SearchByDetails(context.Background(), &query.WireQuery{Filters: []query.Filter{filter(attribute.CookTime, "30")}})
	require.NoError(t, err)
	require.Len(t, got, 1)

	s := recipe.NormalizeRecord(got[0])
	assert.Equal(t, "Spaghetti Pomodoro", s.Name)
	require.NotNil(t, s.Cuisine)
	assert.Equal(t, "Italian", *s.Cuisine)
	require.NotNil(t, s.SourceURL)

	items := make([]string, 0, len(s.Ingredients))
	for _, ing := range s.Ingredients {
		items = append(items, ing.Item)
	}
	assert.Equal(t, []string{"Tomatoes", "Garlic", "Olive Oil", "Basil", "Spaghetti"}, items)
	require.NotNil(t, s.Ingredients[3].Notes)
	assert.Equal(t, "a handful, don't chop", *s.Ingredients[3].Notes)
	assert.Nil(t, s.Ingredients[2].Form)

	require.Len(t, s.InstructionSteps, 2)
	assert.Equal(t, "Sauce", s.InstructionSteps[0].Heading)
	assert.Equal(t, "Warm the oil and soften the garlic.\nAdd tomatoes and simmer for 20 minutes.", s.InstructionSteps[0].Text)
	assert.Equal(t, "Boil the pasta, toss with sauce and basil.", s.InstructionSteps[1].Text)
}

func TestQuote_RoundTrips(t *testing.T) {
	for _, s := range []string{`plain`, `don't`, `say "hi"`, `back\slash`, `tail\`, "two\nlines", `mix \' and \"`} {
		var got string
		require.NoError(t, json.Unmarshal([]byte(recipe.ToJSON(quote(s))), &got), s)
		assert.Equal(t, s, got)
	}
}

func TestNew_RequiresName(t *testing.T) {
	_, err := New([]Recipe{{Name: "ok"}, {Name: " "}})
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestOpen(t *testing.T) {
	c, err := Open("")
	require.NoError(t, err)
	assert.Equal(t, 12, c.Len())

	path := filepath.Join(t.TempDir(), "recipes.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"recipes":[{"name":"Toast","ingredients":["Bread"]}]}`), 0o600))
	c, err = Open(path)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = Open(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}

func TestReady(t *testing.T) {
	c := defaultCatalog(t)
	require.NoError(t, c.Ready(context.Background()))

	empty, err := New(nil)
	require.NoError(t, err)
	assert.True(t, errors.IsCode(empty.Ready(context.Background()), errors.ErrCodeUnavailable))

	blank, err := New([]Recipe{{Name: "Toast", Ingredients: []string{"Bread"}}})
	require.NoError(t, err)
	assert.True(t, errors.IsCode(blank.Ready(context.Background()), errors.ErrCodeUnavailable))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.True(t, errors.IsCode(c.Ready(ctx), errors.ErrCodeTimeout))
}
