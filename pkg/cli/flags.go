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
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/foodkg/recipe-finder/pkg/attribute"
	"github.com/foodkg/recipe-finder/pkg/constraint"
	"github.com/foodkg/recipe-finder/pkg/serializer"
)

var (
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatTable),
		Usage:   fmt.Sprintf("output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
)

// attributeFlags maps each attribute to its dedicated flag name.
var attributeFlags = []struct {
	attr attribute.Attribute
	flag string
}{
	{attribute.Ingredient, "ingredient"},
	{attribute.CookTime, "cook-time"},
	{attribute.Cuisine, "cuisine"},
	{attribute.Diet, "diet"},
	{attribute.Difficulty, "difficulty"},
	{attribute.Course, "course"},
}

func constraintFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "ingredient", Aliases: []string{"i"}, Usage: "comma separated ingredients, all required"},
		&cli.StringFlag{Name: "cook-time", Usage: "cook time in minutes (e.g. 30 or \"30 minutes\")"},
		&cli.StringFlag{Name: "cuisine", Usage: "cuisine (e.g. Italian)"},
		&cli.StringFlag{Name: "diet", Usage: "diet (e.g. Vegetarian)"},
		&cli.StringFlag{Name: "difficulty", Usage: "difficulty (e.g. Easy)"},
		&cli.StringFlag{Name: "course", Usage: "course (e.g. Dessert)"},
		&cli.StringSliceFlag{
			Name: "where",
			Usage: fmt.Sprintf("additional constraint as Attribute=value, repeatable (supported attributes: %s)",
				strings.Join(attribute.Supported(), ", ")),
		},
		&cli.StringFlag{Name: "exclude", Aliases: []string{"x"}, Usage: "comma separated ingredients or allergens to exclude"},
	}
}

// parseOutputFormat returns the --format value if it is supported.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", f)
	}
	return f, nil
}

// buildActions turns the constraint flags into the actions an interactive
// user would dispatch, and the set they produce.
func buildActions(cmd *cli.Command) ([]constraint.Action, constraint.Set, error) {
	var actions []constraint.Action
	set := constraint.NewSet()

	apply := func(steps ...constraint.Action) error {
		next, err := set.ApplyAll(steps...)
		if err != nil {
			return err
		}
		set = next
		actions = append(actions, steps...)
		return nil
	}

	appendRow := func(a attribute.Attribute, value string) error {
		idx := set.Len()
		steps := []constraint.Action{
			constraint.AddConstraint{},
			constraint.SelectAttribute{Index: idx, Attribute: a},
		}
		if c, _ := attribute.Lookup(a); c.Cardinality == attribute.Multi {
			steps = append(steps, constraint.SetMultiValue{Index: idx, Raw: value})
		} else {
			steps = append(steps, constraint.SetPrimaryValue{Index: idx, Value: value})
		}
		return apply(steps...)
	}

	for _, af := range attributeFlags {
		if v := cmd.String(af.flag); strings.TrimSpace(v) != "" {
			if err := appendRow(af.attr, v); err != nil {
				return nil, set, fmt.Errorf("--%s: %w", af.flag, err)
			}
		}
	}

	for _, w := range cmd.StringSlice("where") {
		key, value, ok := strings.Cut(w, "=")
		if !ok {
			return nil, set, fmt.Errorf("--where %q: expected Attribute=value", w)
		}
		a, err := attribute.Parse(key)
		if err != nil {
			return nil, set, fmt.Errorf("--where %q: %w (supported: %s)", w, err, strings.Join(attribute.Supported(), ", "))
		}
		if err := appendRow(a, value); err != nil {
			return nil, set, fmt.Errorf("--where %q: %w", w, err)
		}
	}

	if raw := cmd.String("exclude"); raw != "" {
		if err := apply(constraint.SetExclusions{Raw: raw}); err != nil {
			return nil, set, err
		}
	}
	return actions, set, nil
}
