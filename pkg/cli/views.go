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

package cli

import (
	"strconv"
	"strings"

	"github.com/foodkg/recipe-finder/pkg/header"
	"github.com/foodkg/recipe-finder/pkg/query"
	"github.com/foodkg/recipe-finder/pkg/recipe"
	"github.com/foodkg/recipe-finder/pkg/session"
)

// resultView is the serialized form of a search outcome.
type resultView struct {
	header.Header `json:",inline" yaml:",inline"`

	Query   *query.WireQuery `json:"query,omitempty" yaml:"query,omitempty"`
	Recipes []recipe.Summary `json:"recipes" yaml:"recipes"`
	Error   string           `json:"error,omitempty" yaml:"error,omitempty"`
}

func newResultView(out *session.Outcome) resultView {
	v := resultView{
		Header:  header.New(header.KindSearchResult, header.WithVersion(version)),
		Query:   out.Query,
		Recipes: out.Recipes,
	}
	if out.Err != nil {
		v.Error = out.Err.Error()
	}
	return v
}

func (v resultView) Columns() []string {
	return []string{"NAME", "CUISINE", "DIET", "DIFFICULTY", "COURSE", "COOK TIME", "INGREDIENTS", "STEPS"}
}

func (v resultView) Rows() [][]string {
	rows := make([][]string, 0, len(v.Recipes))
	for _, r := range v.Recipes {
		rows = append(rows, []string{
			r.Name,
			deref(r.Cuisine),
			deref(r.Diet),
			deref(r.Difficulty),
			deref(r.Course),
			deref(r.CookTime),
			strconv.Itoa(len(r.Ingredients)),
			strconv.Itoa(len(r.InstructionSteps)),
		})
	}
	return rows
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

type attributeOptions struct {
	Attribute  string   `json:"attribute" yaml:"attribute"`
	QuickPicks []string `json:"quickPicks" yaml:"quickPicks"`
	Overflow   []string `json:"overflow" yaml:"overflow"`
}

// optionsView is the serialized form of ranked options.
type optionsView struct {
	header.Header `json:",inline" yaml:",inline"`

	Options []attributeOptions `json:"options" yaml:"options"`
}

func (v optionsView) Columns() []string {
	return []string{"ATTRIBUTE", "QUICK PICKS", "OVERFLOW"}
}

func (v optionsView) Rows() [][]string {
	rows := make([][]string, 0, len(v.Options))
	for _, o := range v.Options {
		rows = append(rows, []string{o.Attribute, strings.Join(o.QuickPicks, ", "), strings.Join(o.Overflow, ", ")})
	}
	return rows
}
