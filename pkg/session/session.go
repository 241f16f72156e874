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

package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/foodkg/recipe-finder/pkg/attribute"
	"github.com/foodkg/recipe-finder/pkg/constraint"
	"github.com/foodkg/recipe-finder/pkg/errors"
	"github.com/foodkg/recipe-finder/pkg/picker"
	"github.com/foodkg/recipe-finder/pkg/query"
	"github.com/foodkg/recipe-finder/pkg/ranking"
	"github.com/foodkg/recipe-finder/pkg/recipe"
	"github.com/foodkg/recipe-finder/pkg/search"
)

// Outcome is the result of one submission.
type Outcome struct {
	// Query is the compiled request body. Nil for name searches.
	Query *query.WireQuery `json:"query,omitempty" yaml:"query,omitempty"`

	// Recipes is never nil; it is empty when nothing matched or the
	// request failed.
	Recipes []recipe.Summary `json:"recipes" yaml:"recipes"`

	// Err is set when the search service could not be reached.
	Err error `json:"-" yaml:"-"`

	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Failed reports whether the outcome carries a network error.
func (o *Outcome) Failed() bool {
	return o.Err != nil
}

// Session holds one user's constraint set and ranked options.
type Session struct {
	id     string
	client search.Client

	mu      sync.Mutex
	set     constraint.Set
	options map[attribute.Attribute]ranking.RankedOptions

	loadOnce sync.Once
	busy     atomic.Bool
}

// New creates an empty session backed by client.
func New(client search.Client) *Session {
	return &Session{
		id:      uuid.New().String(),
		client:  client,
		set:     constraint.NewSet(),
		options: ranking.EmptyTable(),
	}
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string {
	return s.id
}

// Constraints returns a snapshot of the current constraint set.
func (s *Session) Constraints() constraint.Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Clone()
}

// Dispatch applies a to the session's set. On error the set is unchanged.
func (s *Session) Dispatch(a constraint.Action) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.set.Apply(a)
	if err != nil {
		slog.Debug("action rejected", "session", s.id, "action", fmt.Sprintf("%T", a), "error", err)
		return err
	}
	s.set = next
	return nil
}

// Reset discards all constraints and exclusions.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set = constraint.NewSet()
}

// Options returns the ranked options of attribute a.
func (s *Session) Options(a attribute.Attribute) ranking.RankedOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	if opts, ok := s.options[a]; ok {
		return opts
	}
	return ranking.Empty()
}

// Machine returns the picker of row i bound to its attribute's options.
func (s *Session) Machine(i int) (picker.Machine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.set.Row(i)
	if !ok {
		return picker.Machine{}, errors.NewWithContext(errors.ErrCodeValidation,
			"constraint index out of range", map[string]any{"index": i, "len": s.set.Len()})
	}
	opts, ok := s.options[row.Attribute]
	if !ok {
		opts = ranking.Empty()
	}
	return picker.Machine{State: row.Picker, Options: opts}, nil
}

// LoadOptions fetches the unique-values aggregate once. Later calls return
// the cached result without a request. A failed fetch leaves every
// attribute with empty options; it is not retried.
func (s *Session) LoadOptions(ctx context.Context) map[attribute.Attribute]ranking.RankedOptions {
	s.loadOnce.Do(func() {
		table, err := s.client.UniqueValues(ctx)
		if err != nil {
			slog.Warn("failed to load options, continuing without quick picks",
				"session", s.id, "error", err)
			return
		}
		ranked := RankOptions(table)

		s.mu.Lock()
		s.options = ranked
		s.mu.Unlock()
		slog.Debug("options loaded", "session", s.id, "attributes", len(table))
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[attribute.Attribute]ranking.RankedOptions, len(s.options))
	for k, v := range s.options {
		out[k] = v
	}
	return out
}

// Submit compiles the current set and sends it to the search service.
func (s *Session) Submit(ctx context.Context) (*Outcome, error) {
	q, err := CompileQuery(s.Constraints())
	if err != nil {
		return nil, err
	}

	out, err := s.run(ctx, "details", func(ctx context.Context) ([]recipe.RawRecord, error) {
		return s.client.SearchByDetails(ctx, q)
	})
	if out != nil {
		out.Query = q
	}
	return out, err
}

// SubmitName runs a name search. The name or main ingredients must be set.
func (s *Session) SubmitName(ctx context.Context, name string, mainIngredients, allergens []string) (*Outcome, error) {
	q, err := query.CompileName(name, mainIngredients, allergens)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, "name", func(ctx context.Context) ([]recipe.RawRecord, error) {
		return s.client.SearchByName(ctx, q)
	})
}

func (s *Session) run(ctx context.Context, kind string, call func(context.Context) ([]recipe.RawRecord, error)) (out *Outcome, err error) {
	if !s.busy.CompareAndSwap(false, true) {
		return nil, errors.New(errors.ErrCodeBusy, "a search is already in progress")
	}
	defer s.busy.Store(false)

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic during search", "session", s.id, "panic", r)
			out = nil
			err = errors.NewWithContext(errors.ErrCodeInternal, "search failed unexpectedly",
				map[string]any{"panic": fmt.Sprint(r)})
		}
	}()

	start := time.Now()
	records, err := call(ctx)
	elapsed := time.Since(start)

	switch {
	case err == nil:
	case errors.IsCode(err, errors.ErrCodeNetwork):
		slog.Warn("search failed", "session", s.id, "kind", kind, "error", err)
		return &Outcome{Recipes: []recipe.Summary{}, Err: err, Duration: elapsed}, nil
	default:
		return nil, err
	}

	summaries := recipe.Normalize(records)
	slog.Info("search completed",
		"session", s.id,
		"kind", kind,
		"recipes", len(summaries),
		"duration", elapsed.String())

	return &Outcome{Recipes: summaries, Duration: elapsed}, nil
}

// Busy reports whether a submission is in flight.
func (s *Session) Busy() bool {
	return s.busy.Load()
}
