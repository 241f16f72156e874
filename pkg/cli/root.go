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
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/foodkg/recipe-finder/pkg/catalog"
	"github.com/foodkg/recipe-finder/pkg/config"
	"github.com/foodkg/recipe-finder/pkg/logging"
	"github.com/foodkg/recipe-finder/pkg/search"
)

const (
	name           = "fkg"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

type configKey struct{}

// Execute runs the root command with os.Args and exits non-zero on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode returns 2 when the run was interrupted and 1 otherwise.
func exitCode(err error) int {
	if stderrors.Is(err, context.Canceled) {
		return 2
	}
	return 1
}

// NewRootCommand returns the fkg command tree.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Usage:                 "Food Knowledge Graph recipe finder",
		Version:               fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "config file (default is $HOME/.fkg.yaml)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "search service base URL (overrides service.base_url)",
			},
			&cli.BoolFlag{
				Name:  "offline",
				Usage: "search the catalog embedded in the binary, or catalog.path, instead of a service",
			},
		},
		Before: before,
		Commands: []*cli.Command{
			searchCmd(),
			nameCmd(),
			optionsCmd(),
			compileCmd(),
			versionCmd(),
		},
	}
}

// before loads configuration and configures slog once flags are parsed.
func before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	if cmd.IsSet("base-url") {
		cfg.Service.BaseURL = cmd.String("base-url")
	}
	if cmd.IsSet("log-level") || cfg.Log.Level == "" {
		cfg.Log.Level = cmd.String("log-level")
	}

	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.Log.Level)
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
		"logLevel", cfg.Log.Level)

	return context.WithValue(ctx, configKey{}, cfg), nil
}

func configFrom(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

// newClient returns the search backend selected by --offline.
func newClient(ctx context.Context, cmd *cli.Command) (search.Client, error) {
	cfg := configFrom(ctx)
	if cmd.Bool("offline") {
		c, err := catalog.Open(cfg.Catalog.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open catalog: %w", err)
		}
		slog.Debug("using offline catalog", "recipes", c.Len())
		return c, nil
	}
	slog.Debug("using search service", "baseURL", cfg.Service.BaseURL)
	return search.New(cfg.Search()), nil
}

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print build information",
		Action: func(_ context.Context, cmd *cli.Command) error {
			fmt.Fprintf(cmd.Root().Writer, "%s %s\ncommit: %s\nbuilt:  %s\n", name, version, commit, date)
			return nil
		},
	}
}
