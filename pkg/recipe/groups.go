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
	"fmt"
	"strings"
)

// rawGroups is either a single group object or a list of them.
type rawGroups []json.RawMessage

func (g *rawGroups) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []json.RawMessage
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return err
		}
		*g = list
		return nil
	}
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fmt.Errorf("expected an object or array, got %q", string(trimmed))
	}
	*g = rawGroups{json.RawMessage(trimmed)}
	return nil
}

type ingredientGroup struct {
	Heading string          `json:"heading"`
	Items   json.RawMessage `json:"items"`
}

type ingredientDetail struct {
	Form     text `json:"form"`
	Quantity text `json:"quantity"`
	Unit     text `json:"unit"`
	Notes    text `json:"notes"`
}

// parseIngredients parses one ingredient description and flattens its items
// in document order.
func parseIngredients(s string) ([]Ingredient, error) {
	var groups rawGroups
	if err := ParseQuasiJSON(s, &groups); err != nil {
		return nil, err
	}
	out := []Ingredient{}
	for _, raw := range groups {
		var g ingredientGroup
		if err := json.Unmarshal(raw, &g); err != nil {
			return nil, err
		}
		items, err := orderedItems(g.Items)
		if err != nil {
			return nil, err
		}
		out = append(out, items...)
	}
	return out, nil
}

// orderedItems decodes an item → detail object keeping key order, which a
// Go map would lose.
func orderedItems(data json.RawMessage) ([]Ingredient, error) {
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("items must be an object")
	}

	var out []Ingredient
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		item, _ := tok.(string)

		var detail ingredientDetail
		if err := dec.Decode(&detail); err != nil {
			return nil, fmt.Errorf("item %q: %w", item, err)
		}
		out = append(out, Ingredient{
			Item:     item,
			Form:     detail.Form.value,
			Quantity: detail.Quantity.value,
			Unit:     detail.Unit.value,
			Notes:    detail.Notes.value,
		})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return out, nil
}

type instructionGroup struct {
	Heading      string          `json:"heading"`
	Instructions json.RawMessage `json:"instructions"`
}

// parseInstructions parses one instruction description into steps. The
// instructions field may be a string or a list of strings.
func parseInstructions(s string) ([]Step, error) {
	var groups rawGroups
	if err := ParseQuasiJSON(s, &groups); err != nil {
		return nil, err
	}
	out := []Step{}
	for _, raw := range groups {
		var g instructionGroup
		if err := json.Unmarshal(raw, &g); err != nil {
			return nil, err
		}
		body, err := instructionText(g.Instructions)
		if err != nil {
			return nil, err
		}
		out = append(out, Step{Heading: g.Heading, Text: body})
	}
	return out, nil
}

func instructionText(data json.RawMessage) (string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return "", nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		return one, nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return "", fmt.Errorf("instructions must be a string or list of strings")
	}
	return strings.Join(many, "\n"), nil
}
