// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"fmt"
	"image"

	"cogentcore.org/showimage/events/key"
	"cogentcore.org/showimage/geom"
)

// WindowResized is sent when the inner size of a window changes.
type WindowResized struct {
	WindowBase

	// Size is the new inner size in physical pixels.
	Size image.Point
}

func (WindowResized) Type() Types { return Resized }

// WindowMoved is sent when a window is moved.
type WindowMoved struct {
	WindowBase

	// Pos is the new position of the top left corner.
	Pos image.Point
}

func (WindowMoved) Type() Types { return Moved }

// WindowCloseRequested is sent when the user asks to close a window.
// Unless a handler stops propagation, the window is destroyed.
type WindowCloseRequested struct {
	WindowBase
}

func (WindowCloseRequested) Type() Types { return CloseRequested }

// WindowDestroyed is sent after a window has been destroyed.
type WindowDestroyed struct {
	WindowBase
}

func (WindowDestroyed) Type() Types { return Destroyed }

// WindowDroppedFile is sent for each file dropped onto a window.
type WindowDroppedFile struct {
	WindowBase
	File string
}

func (WindowDroppedFile) Type() Types { return DroppedFile }

// WindowHoveredFile is sent for each file dragged over a window.
type WindowHoveredFile struct {
	WindowBase
	File string
}

func (WindowHoveredFile) Type() Types { return HoveredFile }

// WindowHoveredFileCancelled is sent when files dragged over
// a window leave it without being dropped.
type WindowHoveredFileCancelled struct {
	WindowBase
}

func (WindowHoveredFileCancelled) Type() Types { return HoveredFileCancelled }

// WindowFocusGained is sent when a window gains keyboard focus.
type WindowFocusGained struct {
	WindowBase
}

func (WindowFocusGained) Type() Types { return FocusGained }

// WindowFocusLost is sent when a window loses keyboard focus.
type WindowFocusLost struct {
	WindowBase
}

func (WindowFocusLost) Type() Types { return FocusLost }

// KeyInput describes a physical key press or release.
type KeyInput struct {
	// Scancode is the platform specific scan code of the key.
	Scancode uint32

	// Code is the physical key, or [key.CodeUnknown].
	Code key.Codes

	// Pressed is whether the key was pressed (true) or released.
	Pressed bool

	// Repeat is set for key repeats generated by holding a key down.
	Repeat bool

	// Mods are the modifiers held down at the time of the event.
	Mods key.Modifiers
}

func (ki KeyInput) String() string {
	act := "Released"
	if ki.Pressed {
		act = "Pressed"
	}
	if ki.Mods != 0 {
		return fmt.Sprintf("%v+%v %s", ki.Mods, ki.Code, act)
	}
	return fmt.Sprintf("%v %s", ki.Code, act)
}

// WindowKeyboardInput is sent for key presses in a focused window.
type WindowKeyboardInput struct {
	WindowBase
	Device DeviceID
	Input  KeyInput

	// Synthetic is set for key events generated by the platform
	// when a window gains focus with keys already held down.
	Synthetic bool
}

func (WindowKeyboardInput) Type() Types { return KeyboardInput }

func (ev WindowKeyboardInput) String() string {
	return fmt.Sprintf("%v{%v, %v}", ev.Type(), ev.Window, ev.Input)
}

// WindowTextInput is sent for each unicode character typed into a window.
type WindowTextInput struct {
	WindowBase
	Char rune
}

func (WindowTextInput) Type() Types { return TextInput }

// WindowTouch is sent for touch screen events.
type WindowTouch struct {
	WindowBase
	Device DeviceID
	Phase  TouchPhases
	Pos    geom.Vec2

	// ID distinguishes fingers within one touch gesture.
	ID uint64
}

func (WindowTouch) Type() Types { return Touch }

// WindowScaleFactorChanged is sent when the DPI scale factor of
// a window changes, such as when it is moved to another monitor.
type WindowScaleFactorChanged struct {
	WindowBase
	Scale float64
}

func (WindowScaleFactorChanged) Type() Types { return ScaleFactorChanged }

// WindowThemeChanged is sent when the system theme changes.
type WindowThemeChanged struct {
	WindowBase
	Theme Themes
}

func (WindowThemeChanged) Type() Types { return ThemeChanged }

// WindowRedrawRequested is sent right before a window is drawn.
type WindowRedrawRequested struct {
	WindowBase
}

func (WindowRedrawRequested) Type() Types { return RedrawRequested }
