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

package api

import (
	"context"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/foodkg/recipe-finder/pkg/catalog"
	"github.com/foodkg/recipe-finder/pkg/config"
	"github.com/foodkg/recipe-finder/pkg/logging"
	"github.com/foodkg/recipe-finder/pkg/search"
	"github.com/foodkg/recipe-finder/pkg/server"
)

const (
	name           = "fkgd"
	versionDefault = "dev"

	// Prefix is the path prefix of the application endpoints.
	Prefix = "/api"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/foodkg/recipe-finder/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Routes returns the application handlers backed by c.
func Routes(c *catalog.Catalog) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		Prefix + search.PathSearchByDetails: c.HandleSearchByDetails,
		Prefix + search.PathSearchByName:    c.HandleSearchByName,
		Prefix + search.PathUniqueValues:    c.HandleUniqueValues,
	}
}

// NewServer builds the fkgd server from cfg and a loaded catalog.
func NewServer(cfg *config.Config, c *catalog.Catalog) *server.Server {
	return server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(Routes(c)),
		server.WithReadinessCheck("catalog", c.Ready),
		server.WithAddress(cfg.Server.Address),
		server.WithPort(cfg.Server.Port),
		server.WithRateLimit(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateLimitBurst),
		server.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
	)
}

// Serve starts the API server and blocks until shutdown.
// It configures logging, loads the catalog, sets up routes, and handles
// graceful shutdown.
func Serve(ctx context.Context, cfg *config.Config) error {
	if cfg == nil {
		cfg = config.Default()
	}

	logging.SetDefaultStructuredLoggerWithLevel(name, version, cfg.Log.Level)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	c, err := catalog.Open(cfg.Catalog.Path)
	if err != nil {
		slog.Error("failed to load catalog", "path", cfg.Catalog.Path, "error", err)
		return err
	}
	slog.Info("catalog loaded", "recipes", c.Len(), "path", cfg.Catalog.Path)

	if err := NewServer(cfg, c).Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
