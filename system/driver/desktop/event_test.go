// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package desktop

import (
	"testing"

	"cogentcore.org/showimage/events"
	"cogentcore.org/showimage/events/key"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestGlfwMods(t *testing.T) {
	assert.Equal(t, key.Modifiers(0), GlfwMods(0))
	assert.Equal(t, key.Control|key.Shift, GlfwMods(glfw.ModControl|glfw.ModShift))
	assert.Equal(t, key.Alt|key.Meta, GlfwMods(glfw.ModAlt|glfw.ModSuper))
}

func TestGlfwKeyCode(t *testing.T) {
	assert.Equal(t, key.CodeS, GlfwKeyCode(glfw.KeyS))
	assert.Equal(t, key.CodeKeypadEnter, GlfwKeyCode(glfw.KeyKPEnter))
	assert.Equal(t, key.CodeUnknown, GlfwKeyCode(glfw.KeyWorld1))
	for _, c := range glfwKeyCodes {
		assert.NotEqual(t, key.CodeUnknown, c)
	}
}

func TestGlfwButton(t *testing.T) {
	assert.Equal(t, events.Left, GlfwButton(glfw.MouseButtonLeft))
	assert.Equal(t, events.Right, GlfwButton(glfw.MouseButtonRight))
	assert.Equal(t, events.Middle, GlfwButton(glfw.MouseButtonMiddle))
	assert.Equal(t, events.OtherButton(0), GlfwButton(glfw.MouseButton4))
}

func TestModifierFlag(t *testing.T) {
	assert.Equal(t, key.Control, modifierFlag(glfw.KeyRightControl))
	assert.Equal(t, key.Modifiers(0), modifierFlag(glfw.KeyA))
}
