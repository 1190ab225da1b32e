// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package key

import "strings"

// Modifiers is a bitflag set of the modifier keys held down.
type Modifiers uint8

const (
	// Shift is the shift key.
	Shift Modifiers = 1 << iota

	// Control is the control key.
	Control

	// Alt is the alt / option key.
	Alt

	// Meta is the system meta key (Command on macOS, Windows key elsewhere).
	Meta
)

var modifierNames = []struct {
	m    Modifiers
	name string
}{
	{Control, "Control"}, {Meta, "Meta"}, {Alt, "Alt"}, {Shift, "Shift"},
}

// HasFlag returns whether all of the given modifiers are set.
func (m Modifiers) HasFlag(f Modifiers) bool {
	return m&f == f
}

// SetFlag sets or clears the given modifiers.
func (m *Modifiers) SetFlag(on bool, f Modifiers) {
	if on {
		*m |= f
	} else {
		*m &^= f
	}
}

// Without returns m with the given modifiers cleared.
func (m Modifiers) Without(f Modifiers) Modifiers {
	return m &^ f
}

// String returns the modifiers joined with "+", such as "Control+Shift".
func (m Modifiers) String() string {
	var parts []string
	for _, mn := range modifierNames {
		if m&mn.m != 0 {
			parts = append(parts, mn.name)
		}
	}
	return strings.Join(parts, "+")
}
