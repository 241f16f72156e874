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

// Package logging configures the process-wide slog logger used by fkg and
// fkgd.
//
// Logs are JSON on stderr and carry the module name and version on every
// record. Debug level adds source locations. The level comes from the
// explicit argument when set, otherwise from LOG_LEVEL, otherwise INFO:
//
//	logging.SetDefaultStructuredLoggerWithLevel("fkgd", version, cfg.Log.Level)
//	slog.Info("server started", "port", cfg.Server.Port)
//
// Level names are case-insensitive: debug, info, warn (or warning), error.
package logging
