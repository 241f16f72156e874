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

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodkg/recipe-finder/pkg/attribute"
	"github.com/foodkg/recipe-finder/pkg/constraint"
	"github.com/foodkg/recipe-finder/pkg/errors"
)

func build(t *testing.T, actions ...constraint.Action) constraint.Set {
	t.Helper()
	s, err := constraint.NewSet().ApplyAll(actions...)
	require.NoError(t, err)
	return s
}

func TestCompileScenario(t *testing.T) {
	set := build(t,
		constraint.AddConstraint{},
		constraint.SelectAttribute{Index: 0, Attribute: attribute.Ingredient},
		constraint.SetMultiValue{Index: 0, Raw: "Tomatoes, Garlic"},
		constraint.AddConstraint{},
		constraint.SelectAttribute{Index: 1, Attribute: attribute.Cuisine},
		constraint.SetPrimaryValue{Index: 1, Value: "Italian"},
		constraint.SetExclusions{Raw: "Peanuts"},
	)

	q, err := Compile(set)
	require.NoError(t, err)

	assert.Equal(t, &WireQuery{
		Filters: []Filter{
			{Attribute: attribute.Ingredient, Values: []string{"Tomatoes", "Garlic"}},
			{Attribute: attribute.Cuisine, Values: []string{"Italian"}},
		},
		Exclude: []string{"Peanuts"},
	}, q)

	b, err := q.Encode()
	require.NoError(t, err)
	assert.Equal(t,
		`{"filters":[{"attribute":"Ingredient","values":["Tomatoes","Garlic"]},{"attribute":"Cuisine","values":["Italian"]}],"exclude":["Peanuts"]}`,
		string(b))
}

func TestCompileDeterministic(t *testing.T) {
	set := build(t,
		constraint.AddConstraint{},
		constraint.SelectAttribute{Index: 0, Attribute: attribute.Diet},
		constraint.SetPrimaryValue{Index: 0, Value: "Vegan"},
		constraint.AddConstraint{},
		constraint.SelectAttribute{Index: 1, Attribute: attribute.CookTime},
		constraint.SetPrimaryValue{Index: 1, Value: "45"},
		constraint.SetExclusions{Raw: "Soy, Sesame"},
	)

	first, err := Compile(set)
	require.NoError(t, err)
	a, err := first.Encode()
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		q, err := Compile(set)
		require.NoError(t, err)
		b, err := q.Encode()
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestCompileSkipsEmptyRows(t *testing.T) {
	set := build(t,
		constraint.AddConstraint{},
		constraint.AddConstraint{},
		constraint.SelectAttribute{Index: 1, Attribute: attribute.Course},
		constraint.AddConstraint{},
		constraint.SelectAttribute{Index: 2, Attribute: attribute.Difficulty},
		constraint.SetPrimaryValue{Index: 2, Value: "Easy"},
	)

	q, err := Compile(set)
	require.NoError(t, err)
	assert.Equal(t, []Filter{{Attribute: attribute.Difficulty, Values: []string{"Easy"}}}, q.Filters)
	assert.Nil(t, q.Exclude)

	b, err := q.Encode()
	require.NoError(t, err)
	assert.NotContains(t, string(b), "exclude")
}

func TestCompileEmptySet(t *testing.T) {
	q, err := Compile(constraint.NewSet())
	require.NoError(t, err)
	assert.True(t, q.IsEmpty())

	b, err := q.Encode()
	require.NoError(t, err)
	assert.Equal(t, `{"filters":[]}`, string(b))
}

func TestCompileCookTime(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"30 minutes", "30 minutes", false},
		{"30", "30 minutes", false},
		{" 15 Minutes ", "15 minutes", false},
		{"015", "15 minutes", false},
		{"abc minutes", "", true},
		{"0 minutes", "", true},
		{"-5", "", true},
		{"2.5 minutes", "", true},
		{"minutes", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			set := build(t,
				constraint.AddConstraint{},
				constraint.SelectAttribute{Index: 0, Attribute: attribute.CookTime},
				constraint.SetPrimaryValue{Index: 0, Value: tt.in},
			)
			q, err := Compile(set)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
				assert.Nil(t, q)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{tt.want}, q.Filters[0].Values)
		})
	}
}

func TestCoerceCookTime(t *testing.T) {
	v, err := CoerceCookTime("30 minutes")
	require.NoError(t, err)
	assert.Equal(t, "30 minutes", v)

	_, err = CoerceCookTime("abc minutes")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeValidation, errors.CodeOf(err))
}

func TestCompileDoesNotAliasSet(t *testing.T) {
	set := build(t,
		constraint.AddConstraint{},
		constraint.SelectAttribute{Index: 0, Attribute: attribute.Ingredient},
		constraint.SetMultiValue{Index: 0, Raw: "Rice"},
		constraint.SetExclusions{Raw: "Eggs"},
	)
	q, err := Compile(set)
	require.NoError(t, err)
	q.Filters[0].Values[0] = "changed"
	q.Exclude[0] = "changed"

	assert.Equal(t, []string{"Rice"}, set.Constraints[0].ValueList)
	assert.Equal(t, constraint.ExclusionSet{"Eggs"}, set.Exclusions)
}

func TestCompileName(t *testing.T) {
	q, err := CompileName(" Pad Thai ", []string{"Noodles", " "}, nil)
	require.NoError(t, err)
	assert.Equal(t, &NameQuery{Name: "Pad Thai", MainIngredients: []string{"Noodles"}, Allergens: []string{}}, q)

	b, err := q.Encode()
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Pad Thai","mainIngredients":["Noodles"],"allergens":[]}`, string(b))

	q, err = CompileName("", []string{"Chicken"}, []string{"Peanuts"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Peanuts"}, q.Allergens)

	_, err = CompileName("  ", nil, []string{"Peanuts"})
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeValidation))
}
