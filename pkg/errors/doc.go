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

// Package errors provides structured error types for better observability
// and programmatic error handling across the recipe finder.
//
// The domain codes map onto the failure classes of a query session:
//
//   - ErrCodeValidation: a constraint or submission rejected locally
//   - ErrCodeNetwork: transport failure or non-success status
//   - ErrCodeParse: one embedded quasi-JSON field that could not be parsed
//   - ErrCodeDecode: the response body as a whole could not be decoded
//   - ErrCodeBusy: a submission attempted while another is in flight
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeNetwork,
//	    "search-by-details failed",
//	    cause,
//	    map[string]any{
//	        "endpoint": "/search-by-details",
//	        "status":   resp.StatusCode,
//	    },
//	)
//
//	if errors.IsCode(err, errors.ErrCodeValidation) {
//	    // blocked locally, nothing was sent
//	}
package errors
