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

// Package attribute defines the closed set of recipe attributes a search
// constraint can target, together with a capability table describing how
// each attribute behaves.
//
// Branching on attributes goes through Lookup rather than string comparison:
//
//	capability, ok := attribute.Lookup(attribute.Cuisine)
//	if ok && capability.Cardinality == attribute.Singleton {
//	    // one primary value
//	}
package attribute

import (
	"fmt"
	"strings"
)

// Attribute identifies a searchable recipe attribute. The string value is
// the name used on the wire.
type Attribute string

// Attribute constants for supported search attributes.
const (
	Unset      Attribute = ""
	Ingredient Attribute = "Ingredient"
	CookTime   Attribute = "Cook Time"
	Cuisine    Attribute = "Cuisine"
	Diet       Attribute = "Diet"
	Difficulty Attribute = "Difficulty"
	Course     Attribute = "Course"
)

// Cardinality describes how many values a constraint on the attribute holds.
type Cardinality int

const (
	// Singleton attributes carry one primary value.
	Singleton Cardinality = iota
	// Multi attributes carry an ordered value list.
	Multi
)

// String returns a human-readable cardinality.
func (c Cardinality) String() string {
	switch c {
	case Singleton:
		return "singleton"
	case Multi:
		return "multi"
	default:
		return "unknown"
	}
}

// Capability describes how a single attribute behaves.
type Capability struct {
	// Attribute is the attribute this capability describes.
	Attribute Attribute

	// Property is the backend property the attribute is stored under.
	Property string

	// Cardinality is Singleton or Multi.
	Cardinality Cardinality

	// Ranked is true when the backend aggregates value counts for the
	// attribute, so quick picks can be offered.
	Ranked bool

	// Coerced is true when values are normalized before compilation.
	Coerced bool

	// Aliases are additional accepted spellings for Parse.
	Aliases []string
}

// capabilities is ordered as the attributes are offered to the user.
var capabilities = []Capability{
	{
		Attribute:   Ingredient,
		Property:    "hasActualIngredients",
		Cardinality: Multi,
		Aliases:     []string{"ingredients"},
	},
	{
		Attribute:   CookTime,
		Property:    "hasCookTime",
		Cardinality: Singleton,
		Coerced:     true,
		Aliases:     []string{"cook-time", "cook_time", "cooktime"},
	},
	{
		Attribute:   Cuisine,
		Property:    "hasCuisine",
		Cardinality: Singleton,
		Ranked:      true,
	},
	{
		Attribute:   Diet,
		Property:    "hasDiet",
		Cardinality: Singleton,
		Ranked:      true,
	},
	{
		Attribute:   Difficulty,
		Property:    "hasDifficulty",
		Cardinality: Singleton,
		Ranked:      true,
	},
	{
		Attribute:   Course,
		Property:    "hasCourse",
		Cardinality: Singleton,
		Ranked:      true,
	},
}

var (
	byAttribute = make(map[Attribute]Capability, len(capabilities))
	byName      = make(map[string]Attribute)
)

func init() {
	for _, c := range capabilities {
		byAttribute[c.Attribute] = c
		byName[strings.ToLower(string(c.Attribute))] = c.Attribute
		byName[strings.ToLower(c.Property)] = c.Attribute
		for _, a := range c.Aliases {
			byName[a] = c.Attribute
		}
	}
}

// Lookup returns the capability of an attribute.
func Lookup(a Attribute) (Capability, bool) {
	c, ok := byAttribute[a]
	return c, ok
}

// IsValid reports whether the attribute is one of the supported attributes.
func (a Attribute) IsValid() bool {
	_, ok := byAttribute[a]
	return ok
}

// IsUnset reports whether no attribute has been chosen.
func (a Attribute) IsUnset() bool {
	return a == Unset
}

// String returns the wire name of the attribute.
func (a Attribute) String() string {
	return string(a)
}

// Property returns the backend property name, or "" for an unknown attribute.
func (a Attribute) Property() string {
	return byAttribute[a].Property
}

// Parse resolves a user or backend supplied name into an Attribute.
// Wire names, backend property names and aliases are accepted, case-insensitively.
func Parse(s string) (Attribute, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "" {
		return Unset, fmt.Errorf("attribute name is empty")
	}
	if a, ok := byName[key]; ok {
		return a, nil
	}
	return Unset, fmt.Errorf("invalid attribute: %s", s)
}

// FromProperty resolves a backend property name such as "hasCuisine".
func FromProperty(property string) (Attribute, bool) {
	for _, c := range capabilities {
		if strings.EqualFold(c.Property, property) {
			return c.Attribute, true
		}
	}
	return Unset, false
}

// All returns every supported attribute in presentation order.
func All() []Attribute {
	out := make([]Attribute, 0, len(capabilities))
	for _, c := range capabilities {
		out = append(out, c.Attribute)
	}
	return out
}

// Ranked returns the attributes that offer quick picks, in presentation order.
func Ranked() []Attribute {
	var out []Attribute
	for _, c := range capabilities {
		if c.Ranked {
			out = append(out, c.Attribute)
		}
	}
	return out
}

// Supported returns the wire names of all attributes, for help text.
func Supported() []string {
	out := make([]string, 0, len(capabilities))
	for _, c := range capabilities {
		out = append(out, string(c.Attribute))
	}
	return out
}
