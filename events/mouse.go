// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"fmt"
	"strings"

	"cogentcore.org/showimage/events/key"
	"cogentcore.org/showimage/geom"
)

// Buttons is a mouse button.
type Buttons int32

const (
	NoButton Buttons = iota
	Left
	Middle
	Right
)

// OtherButton returns the mouse button with the given platform index,
// for buttons beyond the standard three.
func OtherButton(n int) Buttons {
	return Right + 1 + Buttons(n)
}

func (b Buttons) String() string {
	switch b {
	case NoButton:
		return "NoButton"
	case Left:
		return "Left"
	case Middle:
		return "Middle"
	case Right:
		return "Right"
	}
	return fmt.Sprintf("Other(%d)", int32(b-Right-1))
}

// MaxButtons is the number of distinct buttons a [ButtonState] can record.
const MaxButtons = 64

// ButtonState is the set of mouse buttons held down on one device.
// The zero value has no buttons pressed.
type ButtonState uint64

// IsPressed returns whether the given button is held down.
func (bs ButtonState) IsPressed(b Buttons) bool {
	if b <= NoButton || b >= MaxButtons {
		return false
	}
	return bs&(1<<uint(b)) != 0
}

// SetPressed records the given button as pressed or released.
// Buttons beyond [MaxButtons] are ignored.
func (bs *ButtonState) SetPressed(b Buttons, pressed bool) {
	if b <= NoButton || b >= MaxButtons {
		return
	}
	if pressed {
		*bs |= 1 << uint(b)
	} else {
		*bs &^= 1 << uint(b)
	}
}

// Pressed returns the pressed buttons in ascending order.
func (bs ButtonState) Pressed() []Buttons {
	var bl []Buttons
	for b := Left; b < MaxButtons; b++ {
		if bs.IsPressed(b) {
			bl = append(bl, b)
		}
	}
	return bl
}

func (bs ButtonState) String() string {
	var s []string
	for _, b := range bs.Pressed() {
		s = append(s, b.String())
	}
	return "[" + strings.Join(s, " ") + "]"
}

// ScrollDelta is the amount scrolled by a mouse wheel or touchpad.
type ScrollDelta struct {
	// Delta is the scrolled amount along each axis.
	Delta geom.Vec2

	// Pixels is set when Delta is in pixels rather than in lines.
	Pixels bool
}

// WindowMouseEnter is sent when the cursor enters a window.
type WindowMouseEnter struct {
	WindowBase
	Device  DeviceID
	Buttons ButtonState
}

func (WindowMouseEnter) Type() Types { return MouseEnter }

// WindowMouseLeave is sent when the cursor leaves a window.
type WindowMouseLeave struct {
	WindowBase
	Device  DeviceID
	Buttons ButtonState
}

func (WindowMouseLeave) Type() Types { return MouseLeave }

// WindowMouseMove is sent when the cursor moves over a window.
type WindowMouseMove struct {
	WindowBase
	Device DeviceID

	// Pos is the new cursor position in window pixels.
	Pos geom.Vec2

	// Prev is the previous cursor position. It equals Pos for
	// the first movement of a device in a window.
	Prev geom.Vec2

	Buttons ButtonState
	Mods    key.Modifiers
}

func (WindowMouseMove) Type() Types { return MouseMove }

// Delta returns the distance moved since the previous event.
func (ev WindowMouseMove) Delta() geom.Vec2 {
	return ev.Pos.Sub(ev.Prev)
}

// Direction returns the sign of the movement along each axis:
// -1, 1, or 0 for an axis that did not move.
func (ev WindowMouseMove) Direction() geom.Vec2 {
	return ev.Delta().Sign()
}

func (ev WindowMouseMove) String() string {
	return fmt.Sprintf("%v{%v, Pos: %v, Prev: %v, Buttons: %v}", ev.Type(), ev.Window, ev.Pos, ev.Prev, ev.Buttons)
}

// WindowMouseButton is sent when a mouse button is pressed or released
// over a window.
type WindowMouseButton struct {
	WindowBase
	Device  DeviceID
	Button  Buttons
	Pressed bool

	// Pos and Prev are the last known cursor positions in the window,
	// or zero if the cursor has not moved in it yet.
	Pos  geom.Vec2
	Prev geom.Vec2

	// Buttons is the full set of pressed buttons including this one.
	Buttons ButtonState
	Mods    key.Modifiers
}

func (WindowMouseButton) Type() Types { return MouseButton }

func (ev WindowMouseButton) String() string {
	return fmt.Sprintf("%v{%v, Button: %v, Pressed: %v, Pos: %v, Mods: %v}", ev.Type(), ev.Window, ev.Button, ev.Pressed, ev.Pos, ev.Mods)
}

// WindowMouseWheel is sent when the mouse wheel or touchpad
// scrolls over a window.
type WindowMouseWheel struct {
	WindowBase
	Device DeviceID
	Delta  ScrollDelta
	Phase  TouchPhases

	// Pos is the last known cursor position, valid if HasPos.
	Pos    geom.Vec2
	HasPos bool

	Buttons ButtonState
	Mods    key.Modifiers
}

func (WindowMouseWheel) Type() Types { return MouseWheel }
