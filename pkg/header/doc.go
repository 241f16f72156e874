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

// Package header provides the envelope written in front of every document
// the fkg CLI serializes.
//
// A document carries a Kind naming what it holds, an APIVersion for its
// schema, and free-form Metadata:
//
//	kind: SearchResult
//	apiVersion: fkg.foodkg.io/v1
//	metadata:
//	  timestamp: "2026-01-30T10:30:00Z"
//	  version: v0.4.0
//	recipes: [...]
//
// Types embed Header inline so the envelope fields sit at the top level of
// the serialized output.
package header
