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
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodkg/recipe-finder/pkg/errors"
)

func ptr(s string) *string { return &s }

func TestToJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{'a': 'b'}`, `{"a": "b"}`},
		{"escaped apostrophe", `{'note': 'chef\'s knife'}`, `{"note": "chef's knife"}`},
		{"escaped double quote", `{'q': 'say \\"hi\\"'}`, `{"q": "say \"hi\""}`},
		{"already escaped double quote", `{'q': 'say \"hi\"'}`, `{"q": "say \"hi\""}`},
		{"other escapes kept", `{'x': 'a\nb'}`, `{"x": "a\nb"}`},
		{"trailing backslash", `ab\`, `ab\`},
		{"no quotes", `[1, 2]`, `[1, 2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToJSON(tt.in))
		})
	}
}

func TestParseQuasiJSON(t *testing.T) {
	var v map[string]string
	require.NoError(t, ParseQuasiJSON(`{'note': 'chef\'s knife'}`, &v))
	assert.Equal(t, "chef's knife", v["note"])

	// bare apostrophe is not guessed at
	err := ParseQuasiJSON(`{'note': 'chef's knife'}`, &v)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeParse, errors.CodeOf(err))

	err = ParseQuasiJSON("  ", &v)
	assert.True(t, errors.IsCode(err, errors.ErrCodeParse))
}

func TestNormalizeRecord(t *testing.T) {
	r := RawRecord{
		Name: "margherita_pizza",
		Type: "Recipe",
		Properties: Properties{
			PropertyCuisine:   {"Italian", "Neapolitan"},
			PropertyDiet:      {"Vegetarian"},
			PropertyCookTime:  {"15 minutes"},
			PropertyRecipeURL: {"https://example.org/pizza"},
			PropertyIngredientDescription: {
				`{'heading': 'Dough', 'items': {'Flour': {'quantity': '2', 'unit': 'cups'}, 'Yeast': {'quantity': 1, 'unit': 'tsp', 'form': 'dry'}}}`,
				`{'heading': 'Topping', 'items': {'Tomatoes': {'form': 'crushed', 'notes': 'San Marzano if possible'}, 'Basil': {}}}`,
			},
			PropertyInstructions: {
				`{'heading': 'Dough', 'instructions': 'Mix and knead.'}`,
				`{'heading': 'Bake', 'instructions': 'Bake for 15 minutes.'}`,
			},
		},
	}

	s := NormalizeRecord(r)

	assert.Equal(t, "margherita_pizza", s.Name)
	assert.Equal(t, "Recipe", s.Type)
	assert.Equal(t, ptr("Italian"), s.Cuisine)
	assert.Equal(t, ptr("Vegetarian"), s.Diet)
	assert.Equal(t, ptr("15 minutes"), s.CookTime)
	assert.Equal(t, ptr("https://example.org/pizza"), s.SourceURL)
	assert.Nil(t, s.Difficulty)
	assert.Nil(t, s.Course)
	assert.Nil(t, s.PrepTime)
	assert.Nil(t, s.TotalTime)

	assert.Equal(t, []Ingredient{
		{Item: "Flour", Quantity: ptr("2"), Unit: ptr("cups")},
		{Item: "Yeast", Quantity: ptr("1"), Unit: ptr("tsp"), Form: ptr("dry")},
		{Item: "Tomatoes", Form: ptr("crushed"), Notes: ptr("San Marzano if possible")},
		{Item: "Basil"},
	}, s.Ingredients)

	assert.Equal(t, []Step{
		{Heading: "Dough", Text: "Mix and knead."},
		{Heading: "Bake", Text: "Bake for 15 minutes."},
	}, s.InstructionSteps)
}

func TestNormalizeKeepsItemOrder(t *testing.T) {
	r := RawRecord{Properties: Properties{
		PropertyIngredientDescription: {
			`{'heading': '', 'items': {'Zucchini': {}, 'Apple': {}, 'Milk': {}, 'Basil': {}}}`,
		},
	}}

	s := NormalizeRecord(r)
	var items []string
	for _, i := range s.Ingredients {
		items = append(items, i.Item)
	}
	assert.Equal(t, []string{"Zucchini", "Apple", "Milk", "Basil"}, items)
}

func TestNormalizeMalformedInstructions(t *testing.T) {
	r := RawRecord{
		Name: "broken",
		Properties: Properties{
			PropertyInstructions: {`{'heading': 'Bake', 'instructions': Bake until golden}`},
		},
	}

	before := testutil.ToFloat64(parseFailures.WithLabelValues(PropertyInstructions))

	var s Summary
	require.NotPanics(t, func() { s = NormalizeRecord(r) })
	assert.NotNil(t, s.InstructionSteps)
	assert.Empty(t, s.InstructionSteps)
	assert.Equal(t, "broken", s.Name)

	after := testutil.ToFloat64(parseFailures.WithLabelValues(PropertyInstructions))
	assert.Equal(t, before+1, after)
}

func TestNormalizeSkipsOnlyBadElement(t *testing.T) {
	r := RawRecord{Properties: Properties{
		PropertyIngredientDescription: {
			`{'heading': 'A', 'items': {'Salt': {'quantity': '1', 'unit': 'pinch'}}}`,
			`{'heading': 'B', 'items': {'Cook's choice': {}}}`,
			`{'heading': 'C', 'items': ['not', 'an', 'object']}`,
			`{'heading': 'D', 'items': {'Pepper': {}}}`,
		},
		PropertyInstructions: {
			`not even close`,
			`{'heading': 'Serve', 'instructions': 'Plate it.'}`,
		},
	}}

	s := NormalizeRecord(r)
	require.Len(t, s.Ingredients, 2)
	assert.Equal(t, "Salt", s.Ingredients[0].Item)
	assert.Equal(t, "Pepper", s.Ingredients[1].Item)
	assert.Equal(t, []Step{{Heading: "Serve", Text: "Plate it."}}, s.InstructionSteps)
}

func TestNormalizeAbsentProperties(t *testing.T) {
	s := NormalizeRecord(RawRecord{Name: "bare", Type: "Recipe"})
	assert.NotNil(t, s.Ingredients)
	assert.Empty(t, s.Ingredients)
	assert.NotNil(t, s.InstructionSteps)
	assert.Empty(t, s.InstructionSteps)
	assert.Nil(t, s.Cuisine)

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"bare","type":"Recipe","ingredients":[],"instructionSteps":[]}`, string(b))
}

func TestNormalizeGroupLists(t *testing.T) {
	r := RawRecord{Properties: Properties{
		PropertyIngredientDescription: {
			`[{'heading': 'A', 'items': {'Rice': {'quantity': 1.5, 'unit': 'cups'}}}, {'heading': 'B', 'items': {'Water': {'quantity': null}}}]`,
		},
		PropertyInstructions: {
			`{'heading': 'Cook', 'instructions': ['Rinse rice.', 'Simmer 20 minutes.']}`,
		},
	}}

	s := NormalizeRecord(r)
	assert.Equal(t, []Ingredient{
		{Item: "Rice", Quantity: ptr("1.5"), Unit: ptr("cups")},
		{Item: "Water"},
	}, s.Ingredients)
	assert.Equal(t, []Step{{Heading: "Cook", Text: "Rinse rice.\nSimmer 20 minutes."}}, s.InstructionSteps)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, []Summary{}, Normalize(nil))

	out := Normalize([]RawRecord{{Name: "a"}, {Name: "b"}})
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].Name)
	assert.Equal(t, "b", out[1].Name)
}

func TestDecodeRecords(t *testing.T) {
	body := []byte(`[
		{"name": "pad_thai", "type": "Recipe", "properties": {
			"hasCuisine": ["Thai"],
			"hasCookTime": "20 minutes",
			"hasServings": [4],
			"hasRecipeURL": [null],
			"hasDiet": []
		}}
	]`)

	records, err := DecodeRecords(body)
	require.NoError(t, err)
	require.Len(t, records, 1)

	p := records[0].Properties
	assert.Equal(t, []string{"Thai"}, p[PropertyCuisine])
	assert.Equal(t, []string{"20 minutes"}, p[PropertyCookTime])
	assert.Equal(t, []string{"4"}, p["hasServings"])
	assert.Equal(t, []string{}, p[PropertyRecipeURL])

	s := NormalizeRecord(records[0])
	assert.Nil(t, s.SourceURL)
	assert.Nil(t, s.Diet)
	assert.Equal(t, ptr("20 minutes"), s.CookTime)
}

func TestDecodeRecordsErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `<html>oops</html>`},
		{"object instead of array", `{"error": "no recipe"}`},
		{"nested object property", `[{"name": "x", "properties": {"hasCuisine": [{"a": 1}]}}]`},
		{"truncated", `[{"name": "x"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeRecords([]byte(tt.body))
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeDecode, errors.CodeOf(err))
		})
	}
}

func TestDecodeRecordsEmpty(t *testing.T) {
	for _, body := range []string{"", "null", "[]"} {
		records, err := DecodeRecords([]byte(body))
		require.NoError(t, err)
		assert.Equal(t, []RawRecord{}, records)
	}
}
