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
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/foodkg/recipe-finder/pkg/attribute"
	"github.com/foodkg/recipe-finder/pkg/defaults"
	"github.com/foodkg/recipe-finder/pkg/header"
	"github.com/foodkg/recipe-finder/pkg/picker"
	"github.com/foodkg/recipe-finder/pkg/session"
)

func optionsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "options",
		EnableShellCompletion: true,
		Usage:                 "Show ranked quick picks and overflow values",
		Description: `Fetch value frequencies from the search service and rank them. The six most
frequent values of each attribute are its quick picks; the rest form the
overflow list, which --filter narrows the way typing in the custom value
input does.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name: "attribute",
				Usage: fmt.Sprintf("only show this attribute (supported values: %s)",
					strings.Join(rankedNames(), ", ")),
			},
			&cli.StringFlag{
				Name:  "filter",
				Usage: "case-insensitive text to narrow the overflow list (requires --attribute)",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			attrs := attribute.Ranked()
			if v := cmd.String("attribute"); v != "" {
				a, err := attribute.Parse(v)
				if err != nil {
					return fmt.Errorf("--attribute: %w", err)
				}
				if c, _ := attribute.Lookup(a); !c.Ranked {
					return fmt.Errorf("--attribute: %s has no ranked options", a)
				}
				attrs = []attribute.Attribute{a}
			}
			if cmd.IsSet("filter") && len(attrs) != 1 {
				return fmt.Errorf("--filter requires --attribute")
			}

			client, err := newClient(ctx, cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLISearchTimeout)
			defer cancel()

			ranked := session.New(client).LoadOptions(ctx)

			view := optionsView{
				Header:  header.New(header.KindOptions, header.WithVersion(version)),
				Options: make([]attributeOptions, 0, len(attrs)),
			}
			for _, a := range attrs {
				m := picker.NewMachine(ranked[a])
				overflow := m.Options.Overflow
				if cmd.IsSet("filter") {
					m = m.Apply(picker.OtherClicked{}).Apply(picker.InputChanged{Text: cmd.String("filter")})
					overflow = m.Visible()
				}
				view.Options = append(view.Options, attributeOptions{
					Attribute:  a.String(),
					QuickPicks: m.QuickPicks(),
					Overflow:   overflow,
				})
			}
			return write(ctx, cmd, outFormat, view)
		},
	}
}

func rankedNames() []string {
	var out []string
	for _, a := range attribute.Ranked() {
		out = append(out, a.String())
	}
	return out
}
