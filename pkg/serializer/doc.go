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

// Package serializer provides format-aware reading and writing plus the JSON
// HTTP plumbing shared by the CLI and the search service.
//
// # Output Formats
//
//   - json: indented, HTML characters left unescaped
//   - yaml: two-space indentation
//   - table: column layout for values implementing Tabular, otherwise
//     flattened FIELD/VALUE rows
//
// Usage:
//
//	w := serializer.NewFileWriterOrStdout(serializer.FormatTable, path)
//	defer w.Close()
//	if err := w.Serialize(ctx, results); err != nil {
//		return err
//	}
//
// # Input
//
// FromFile and NewFileReader read local JSON or YAML files, picking the
// format from the extension:
//
//	dataset, err := serializer.FromFile[catalog.Dataset]("recipes.yaml")
//
// # HTTP
//
// RespondJSON buffers the encoding before writing headers so an encoding
// failure produces a clean 500 instead of a partial body:
//
//	serializer.RespondJSON(w, http.StatusOK, records)
//
// HTTPClient sends JSON requests with pooled connections, bounded timeouts
// and a response size cap. It returns the status code to the caller rather
// than turning non-2xx responses into errors:
//
//	c := serializer.NewHTTPClient(serializer.WithTotalTimeout(10 * time.Second))
//	resp, err := c.PostJSON(ctx, url, body)
//	if err != nil {
//		return err // transport failure
//	}
//	if !resp.OK() {
//		// caller decides
//	}
package serializer
