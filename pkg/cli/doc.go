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

// Package cli implements the fkg command-line client.
//
// # Commands
//
// search - Run a multi-criteria recipe search:
//
//	fkg search --ingredient "Tomatoes, Garlic" --cuisine Italian --exclude Peanuts
//
// Each attribute flag becomes one constraint; filters combine with AND and
// exclusions veto. --where accepts "Attribute=value" for any attribute and may
// be repeated. Commas inside a --where value are kept, so an ingredient list
// is given as one value:
//
//	fkg search --where "Ingredient=Tomatoes, Garlic" --where Cuisine=Italian
//
// name - Search by recipe name or main ingredients:
//
//	fkg name --name "pad thai" --allergens peanuts
//
// options - Show ranked quick picks and the overflow list per attribute:
//
//	fkg options --attribute cuisine --filter ind
//
// compile - Print the request body a search would send, without sending it:
//
//	fkg compile --cook-time 30 --diet Vegan
//
// version - Print build information.
//
// # Global Flags
//
//	--config       Config file (default $HOME/.fkg.yaml)
//	--log-level    Log level: debug, info, warn, error
//	--base-url     Search service base URL
//	--offline      Search the embedded catalog instead of a service
//
// Search commands also take:
//
//	--output, -o   Output file path (default: stdout)
//	--format, -t   Output format: yaml, json, table (default: table)
//
// # Exit Codes
//
//	0  Success
//	1  General error (invalid arguments, execution failure)
//	2  Context canceled or timeout
//
// Version information is embedded at build time using ldflags:
//
//	go build -ldflags="-X 'github.com/foodkg/recipe-finder/pkg/cli.version=1.0.0'"
package cli
