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

// Package picker implements the per-row value picker: a pure state machine
// switching between ranked quick picks and custom value entry with a
// searchable overflow list.
//
// A pointer press on an overflow item sets a selection-in-progress flag so
// that the focus loss which precedes the click does not commit the typed
// text. The click itself then commits the item. A press released without a
// click commits the typed text if focus was lost while it was held.
package picker

import (
	"strings"

	"github.com/foodkg/recipe-finder/pkg/ranking"
)

// Phase is the picker's current mode.
type Phase int

const (
	AttributeUnset Phase = iota
	Preset
	CustomEditing
	CustomCommitted
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case AttributeUnset:
		return "AttributeUnset"
	case Preset:
		return "Preset"
	case CustomEditing:
		return "CustomEditing"
	case CustomCommitted:
		return "CustomCommitted"
	default:
		return "Unknown"
	}
}

// State is the picker state of one constraint row.
type State struct {
	Phase    Phase
	Value    string
	Pending  string
	ListOpen bool

	selecting bool
	blurred   bool
}

// IsCustom reports whether the value comes from custom entry.
func (s State) IsCustom() bool {
	return s.Phase == CustomEditing || s.Phase == CustomCommitted
}

// Selecting reports whether an overflow item press is in progress.
func (s State) Selecting() bool {
	return s.selecting
}

// Event is a user gesture on a picker.
type Event interface {
	event()
}

type (
	// AttributeSelected is emitted when the row's attribute changes.
	AttributeSelected struct{}

	// ChipSelected is a click on a quick-pick chip.
	ChipSelected struct{ Value string }

	// OtherClicked is a click on the "Other" chip.
	OtherClicked struct{}

	// InputChanged is a keystroke in the custom value input.
	InputChanged struct{ Text string }

	// OverflowPressed is a pointer press on an overflow list item.
	OverflowPressed struct{}

	// OverflowReleased is a pointer leaving an item without a click.
	OverflowReleased struct{}

	// OverflowSelected is a completed click on an overflow list item.
	OverflowSelected struct{ Value string }

	// FocusLost is the custom input losing focus.
	FocusLost struct{}
)

func (AttributeSelected) event() {}
func (ChipSelected) event()      {}
func (OtherClicked) event()      {}
func (InputChanged) event()      {}
func (OverflowPressed) event()   {}
func (OverflowReleased) event()  {}
func (OverflowSelected) event()  {}
func (FocusLost) event()         {}

// Reduce returns the state following e. Events that do not apply to the
// current phase leave the state unchanged.
func Reduce(s State, e Event) State {
	switch ev := e.(type) {
	case AttributeSelected:
		return State{Phase: Preset}

	case ChipSelected:
		if s.Phase == AttributeUnset {
			return s
		}
		return State{Phase: Preset, Value: ev.Value}

	case OtherClicked:
		if s.Phase == AttributeUnset {
			return s
		}
		return State{Phase: CustomEditing, ListOpen: true}

	case InputChanged:
		if !s.IsCustom() {
			return s
		}
		return State{Phase: CustomEditing, Value: s.Value, Pending: ev.Text, ListOpen: true}

	case OverflowPressed:
		if s.Phase != CustomEditing || !s.ListOpen {
			return s
		}
		s.selecting = true
		s.blurred = false
		return s

	case OverflowReleased:
		if s.selecting && s.blurred && s.Phase == CustomEditing {
			return commitPending(s)
		}
		s.selecting = false
		s.blurred = false
		return s

	case OverflowSelected:
		if s.Phase != CustomEditing {
			return s
		}
		v := strings.TrimSpace(ev.Value)
		return State{Phase: CustomCommitted, Value: v, Pending: v}

	case FocusLost:
		if s.Phase != CustomEditing {
			return s
		}
		if s.selecting {
			s.blurred = true
			return s
		}
		return commitPending(s)
	}
	return s
}

func commitPending(s State) State {
	return State{Phase: CustomCommitted, Value: strings.TrimSpace(s.Pending), Pending: s.Pending}
}

// Machine binds a picker state to the ranked options of one attribute.
type Machine struct {
	State   State
	Options ranking.RankedOptions
}

// NewMachine returns a machine in the Preset phase for the given options.
func NewMachine(opts ranking.RankedOptions) Machine {
	return Machine{State: State{Phase: Preset}, Options: opts}
}

// Apply returns the machine after e.
func (m Machine) Apply(e Event) Machine {
	m.State = Reduce(m.State, e)
	return m
}

// QuickPicks returns the chips to offer.
func (m Machine) QuickPicks() []string {
	return m.Options.QuickPicks
}

// Visible returns the overflow entries matching the in-progress text while
// the list is open, or nil when it is closed.
func (m Machine) Visible() []string {
	if !m.State.ListOpen {
		return nil
	}
	return ranking.FilterOverflow(m.Options, m.State.Pending)
}
