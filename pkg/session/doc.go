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

// Package session is the entry surface for a presentation layer.
//
// Four pure helpers cover the synchronous path:
//
//	set, _ = session.UpdateConstraint(session.BuildConstraint(set), constraint.SelectAttribute{...})
//	q, err := session.CompileQuery(set)
//	opts := session.RankOptions(table)
//	summaries, err := session.NormalizeResponse(body)
//
// A Session owns one constraint set and the two asynchronous boundaries:
// a one-shot option fetch (LoadOptions) and query submission (Submit),
// of which at most one may be in flight.
//
// Outcome rules for Submit:
//   - validation failures are returned before any network call
//   - network failures produce an empty Outcome carrying the error; the
//     session stays usable and resubmitting is the retry
//   - decode failures are returned to the caller
package session
