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

// Package ranking turns a backend value/frequency aggregate into a bounded
// set of quick picks plus a searchable overflow list.
//
// Ranking is pure: identical input yields identical output and results are
// recomputed wholesale on refresh rather than mutated.
package ranking

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"github.com/foodkg/recipe-finder/pkg/attribute"
)

const (
	// MaxQuickPicks bounds the number of one-click chips offered per attribute.
	MaxQuickPicks = 6

	// NotAvailable is the backend sentinel for a missing value. It is never ranked.
	NotAvailable = "NA"
)

// Entry is one (value, count) pair of a frequency aggregate.
type Entry struct {
	Value string
	Count int
}

// MarshalJSON encodes the entry as a two element array.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{e.Value, e.Count})
}

// UnmarshalJSON accepts the backend's [value, count] pair form.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("frequency entry is not an array: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("frequency entry has %d elements, want 2", len(pair))
	}
	var value any
	if err := json.Unmarshal(pair[0], &value); err != nil {
		return fmt.Errorf("frequency entry value: %w", err)
	}
	switch v := value.(type) {
	case string:
		e.Value = v
	case nil:
		e.Value = ""
	default:
		e.Value = fmt.Sprint(v)
	}
	var count float64
	if err := json.Unmarshal(pair[1], &count); err != nil {
		return fmt.Errorf("frequency entry count: %w", err)
	}
	e.Count = int(count)
	return nil
}

// FrequencyTable maps an attribute to its backend value counts, in backend order.
type FrequencyTable map[attribute.Attribute][]Entry

// DecodeFrequencyTable decodes a unique-values response. Keys may be backend
// property names ("hasCuisine") or wire names ("Cuisine"); unknown keys are ignored.
func DecodeFrequencyTable(data []byte) (FrequencyTable, error) {
	var raw map[string][]Entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode frequency table: %w", err)
	}
	table := make(FrequencyTable, len(raw))
	for key, entries := range raw {
		a, err := attribute.Parse(key)
		if err != nil {
			continue
		}
		table[a] = entries
	}
	return table, nil
}

// RankedOptions is the ranked view of one attribute's values.
type RankedOptions struct {
	QuickPicks []string `json:"quickPicks" yaml:"quickPicks"`
	Overflow   []string `json:"overflow" yaml:"overflow"`
}

// Empty returns the fallback used when no aggregate is available.
func Empty() RankedOptions {
	return RankedOptions{QuickPicks: []string{}, Overflow: []string{}}
}

// IsEmpty reports whether no values are offered at all.
func (o RankedOptions) IsEmpty() bool {
	return len(o.QuickPicks) == 0 && len(o.Overflow) == 0
}

// All returns quick picks followed by overflow.
func (o RankedOptions) All() []string {
	out := make([]string, 0, len(o.QuickPicks)+len(o.Overflow))
	out = append(out, o.QuickPicks...)
	return append(out, o.Overflow...)
}

// Rank orders entries by descending count, ties keeping input order.
// The NA sentinel and blank values are dropped, and a repeated value keeps
// only its first occurrence.
func Rank(entries []Entry) RankedOptions {
	kept := make([]Entry, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		v := strings.TrimSpace(e.Value)
		if v == "" || v == NotAvailable {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		kept = append(kept, Entry{Value: v, Count: e.Count})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Count > kept[j].Count
	})

	out := Empty()
	for i, e := range kept {
		if i < MaxQuickPicks {
			out.QuickPicks = append(out.QuickPicks, e.Value)
		} else {
			out.Overflow = append(out.Overflow, e.Value)
		}
	}
	return out
}

// RankTable ranks every ranked attribute. Attributes missing from the table
// get Empty so callers can always index the result.
func RankTable(table FrequencyTable) map[attribute.Attribute]RankedOptions {
	out := make(map[attribute.Attribute]RankedOptions, len(attribute.Ranked()))
	for _, a := range attribute.Ranked() {
		out[a] = Empty()
	}
	for a, entries := range table {
		out[a] = Rank(entries)
	}
	return out
}

// EmptyTable returns Empty for every ranked attribute.
func EmptyTable() map[attribute.Attribute]RankedOptions {
	return RankTable(nil)
}

// FilterOverflow returns the overflow values containing text, compared
// case-insensitively. Blank text returns the whole overflow.
func FilterOverflow(opts RankedOptions, text string) []string {
	folder := cases.Fold()
	needle := folder.String(strings.TrimSpace(text))
	if needle == "" {
		return append([]string{}, opts.Overflow...)
	}
	out := []string{}
	for _, v := range opts.Overflow {
		if strings.Contains(folder.String(v), needle) {
			out = append(out, v)
		}
	}
	return out
}
