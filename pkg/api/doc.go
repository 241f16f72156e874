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

// Package api wires the recipe catalog into the HTTP server for fkgd.
//
// # Endpoints
//
// Application endpoints (rate limited):
//   - POST /api/search-by-details - AND filters with exclusion veto
//   - POST /api/search-by-name    - name OR main ingredients, allergen veto
//   - GET  /api/unique-values     - value counts per ranked attribute
//
// System endpoints:
//   - GET /health  - liveness
//   - GET /ready   - readiness, failing while the catalog has no recipes
//   - GET /metrics - Prometheus metrics
//
// Search endpoints answer 404 when nothing matched.
//
// Example:
//
//	curl -s -X POST http://localhost:8080/api/search-by-details \
//	  -H 'Content-Type: application/json' \
//	  -d '{"filters":[{"attribute":"Cuisine","values":["Thai"]}],"exclude":["Peanuts"]}'
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/foodkg/recipe-finder/pkg/api.version=1.0.0'"
package api
