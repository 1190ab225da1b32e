// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeString(t *testing.T) {
	assert.Equal(t, "S", CodeS.String())
	assert.Equal(t, "7", Code7.String())
	assert.Equal(t, "0", Code0.String())
	assert.Equal(t, "F11", CodeF11.String())
	assert.Equal(t, "Keypad0", CodeKeypad0.String())
	assert.Equal(t, "Escape", CodeEscape.String())
	assert.Equal(t, "Codes(500)", Codes(500).String())
	assert.True(t, CodeLeftShift.IsModifier())
	assert.False(t, CodeA.IsModifier())
}

func TestModifiers(t *testing.T) {
	var m Modifiers
	m.SetFlag(true, Control)
	m.SetFlag(true, Shift)
	assert.True(t, m.HasFlag(Control))
	assert.True(t, m.HasFlag(Control|Shift))
	assert.False(t, m.HasFlag(Alt))
	assert.Equal(t, "Control+Shift", m.String())
	assert.Equal(t, Control, m.Without(Shift))
	m.SetFlag(false, Control)
	assert.Equal(t, Shift, m)
}
