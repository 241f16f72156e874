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
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/foodkg/recipe-finder/pkg/constraint"
	"github.com/foodkg/recipe-finder/pkg/defaults"
	"github.com/foodkg/recipe-finder/pkg/serializer"
	"github.com/foodkg/recipe-finder/pkg/session"
)

func searchCmd() *cli.Command {
	return &cli.Command{
		Name:                  "search",
		EnableShellCompletion: true,
		Usage:                 "Search recipes by ingredients and details",
		Description: `Search recipes matching every given constraint:
  - Ingredients (all must be present)
  - Cook time in minutes
  - Cuisine, diet, difficulty and course

Recipes containing any excluded ingredient are removed from the result.
The result can be output in JSON, YAML, or table format.`,
		Flags:                     append(constraintFlags(), outputFlag, formatFlag),
		DisableSliceFlagSeparator: true,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			actions, _, err := buildActions(cmd)
			if err != nil {
				return fmt.Errorf("error parsing search constraints: %w", err)
			}

			client, err := newClient(ctx, cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLISearchTimeout)
			defer cancel()

			s := session.New(client)
			for _, a := range actions {
				if err := s.Dispatch(a); err != nil {
					return err
				}
			}

			out, err := s.Submit(ctx)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			return writeOutcome(ctx, cmd, outFormat, out)
		},
	}
}

func nameCmd() *cli.Command {
	return &cli.Command{
		Name:                  "name",
		EnableShellCompletion: true,
		Usage:                 "Search recipes by name or main ingredients",
		Description: `Search recipes whose name contains --name or whose ingredients include any
of --main. Recipes containing any of --allergens are removed.`,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "recipe name or part of it"},
			&cli.StringFlag{Name: "main", Usage: "comma separated main ingredients, any may match"},
			&cli.StringFlag{Name: "allergens", Aliases: []string{"a"}, Usage: "comma separated allergens to exclude"},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd)
			if err != nil {
				return err
			}

			client, err := newClient(ctx, cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLISearchTimeout)
			defer cancel()

			out, err := session.New(client).SubmitName(ctx,
				cmd.String("name"),
				constraint.Split(cmd.String("main")),
				constraint.Split(cmd.String("allergens")))
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			return writeOutcome(ctx, cmd, outFormat, out)
		},
	}
}

func compileCmd() *cli.Command {
	return &cli.Command{
		Name:                      "compile",
		EnableShellCompletion:     true,
		Usage:                     "Print the search request body without sending it",
		Flags:                     constraintFlags(),
		DisableSliceFlagSeparator: true,
		Action: func(_ context.Context, cmd *cli.Command) error {
			_, set, err := buildActions(cmd)
			if err != nil {
				return fmt.Errorf("error parsing search constraints: %w", err)
			}
			q, err := session.CompileQuery(set)
			if err != nil {
				return err
			}
			body, err := q.Encode()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.Root().Writer, string(body))
			return nil
		},
	}
}

// writeOutcome writes out and reports a failed search as an error once the
// (empty) result has been written.
func writeOutcome(ctx context.Context, cmd *cli.Command, format serializer.Format, out *session.Outcome) error {
	if err := write(ctx, cmd, format, newResultView(out)); err != nil {
		return err
	}
	if out.Failed() {
		return fmt.Errorf("search service unavailable: %w", out.Err)
	}
	slog.Debug("search completed", "recipes", len(out.Recipes), "duration", out.Duration.String())
	return nil
}

func write(ctx context.Context, cmd *cli.Command, format serializer.Format, v any) error {
	ser := serializer.NewFileWriterOrStdout(format, cmd.String("output"))
	defer func() {
		if err := ser.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}()
	return ser.Serialize(ctx, v)
}
