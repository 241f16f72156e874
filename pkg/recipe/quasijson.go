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

package recipe

import (
	"encoding/json"
	"strings"

	"github.com/foodkg/recipe-finder/pkg/errors"
)

// ToJSON rewrites quasi-JSON text, which uses single quotes as string
// delimiters, into JSON text:
//
//	'   becomes "
//	\'  becomes a literal apostrophe
//	\\" becomes \"
//
// Every other byte is copied unchanged. The rewrite is purely lexical, so a
// value holding a bare apostrophe or double quote yields invalid JSON and is
// rejected by the parser rather than guessed at.
func ToJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\' && strings.HasPrefix(s[i:], `\\"`):
			b.WriteString(`\"`)
			i += 2
		case c == '\\' && i+1 < len(s) && s[i+1] == '\'':
			b.WriteByte('\'')
			i++
		case c == '\\' && i+1 < len(s):
			b.WriteByte(c)
			b.WriteByte(s[i+1])
			i++
		case c == '\'':
			b.WriteByte('"')
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// ParseQuasiJSON converts s with ToJSON and decodes it into v. A failure is a
// PARSE error carrying the offending text.
func ParseQuasiJSON(s string, v any) error {
	if strings.TrimSpace(s) == "" {
		return errors.New(errors.ErrCodeParse, "empty quasi-JSON text")
	}
	if err := json.Unmarshal([]byte(ToJSON(s)), v); err != nil {
		return errors.WrapWithContext(errors.ErrCodeParse, "failed to parse quasi-JSON text", err,
			map[string]any{"text": s})
	}
	return nil
}
