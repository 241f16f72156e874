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

package server

import (
	"context"
	"net/http"
	"time"

	"github.com/foodkg/recipe-finder/pkg/defaults"
	"github.com/foodkg/recipe-finder/pkg/serializer"
)

// HealthResponse is the body of /health and /ready.
type HealthResponse struct {
	Status    string            `json:"status" yaml:"status"`
	Version   string            `json:"version,omitempty" yaml:"version,omitempty"`
	Timestamp time.Time         `json:"timestamp" yaml:"timestamp"`
	Reason    string            `json:"reason,omitempty" yaml:"reason,omitempty"`
	Checks    map[string]string `json:"checks,omitempty" yaml:"checks,omitempty"`
}

// handleHealth reports liveness only; it never runs readiness checks.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	serializer.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Version:   s.config.Version,
		Timestamp: time.Now(),
	})
}

// handleReady is 200 once the server is serving and every readiness check
// passes, 503 otherwise. Check results are reported by name.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if !s.isReady() {
		serializer.RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "not_ready",
			Version:   s.config.Version,
			Timestamp: time.Now(),
			Reason:    "service is initializing",
		})
		return
	}

	checks, failed := s.runReadinessChecks(r.Context())
	resp := HealthResponse{
		Status:    "ready",
		Version:   s.config.Version,
		Timestamp: time.Now(),
		Checks:    checks,
	}
	status := http.StatusOK
	if failed != "" {
		status = http.StatusServiceUnavailable
		resp.Status = "not_ready"
		resp.Reason = failed + " check failed"
	}
	serializer.RespondJSON(w, status, resp)
}

// runReadinessChecks runs every check and returns their results by name and
// the name of the first failing one.
func (s *Server) runReadinessChecks(ctx context.Context) (map[string]string, string) {
	if len(s.config.ReadinessChecks) == 0 {
		return nil, ""
	}
	ctx, cancel := context.WithTimeout(ctx, defaults.ReadinessCheckTimeout)
	defer cancel()

	results := make(map[string]string, len(s.config.ReadinessChecks))
	failed := ""
	for _, c := range s.config.ReadinessChecks {
		if err := c.Check(ctx); err != nil {
			readinessFailures.WithLabelValues(c.Name).Inc()
			results[c.Name] = err.Error()
			if failed == "" {
				failed = c.Name
			}
			continue
		}
		results[c.Name] = "ok"
	}
	return results, failed
}
