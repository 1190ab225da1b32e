// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events defines the events delivered to window and context
// handlers, along with the translation of raw platform events into them.
package events

import "fmt"

// WindowID identifies a window. It is only valid while the window
// exists; operations on a stale id report an invalid window id error.
type WindowID uint64

func (id WindowID) String() string {
	return fmt.Sprintf("Window(%d)", uint64(id))
}

// DeviceID identifies an input device. The system mouse is device 0.
type DeviceID uint64

func (id DeviceID) String() string {
	return fmt.Sprintf("Device(%d)", uint64(id))
}

// Types is the type of an [Event].
type Types int32

const (
	// zero value is an unknown type
	UnknownType Types = iota

	// NewEvents is sent at the start of each event loop tick.
	NewEvents

	// MainEventsCleared is sent after all platform events and commands
	// of a tick have been processed, before windows are redrawn.
	MainEventsCleared

	// RedrawEventsCleared is sent after all windows have been redrawn.
	RedrawEventsCleared

	// AllWindowsClosed is sent once the last open window is destroyed.
	AllWindowsClosed

	Resized
	Moved
	CloseRequested
	Destroyed
	DroppedFile
	HoveredFile
	HoveredFileCancelled
	FocusGained
	FocusLost
	KeyboardInput
	TextInput
	MouseEnter
	MouseLeave
	MouseMove
	MouseButton
	MouseWheel
	Touch
	ScaleFactorChanged
	ThemeChanged
	RedrawRequested

	DeviceAdded
	DeviceRemoved
	MouseMotion
	DeviceMouseWheel
	Motion
	DeviceButton
	DeviceKeyboardInput
	DeviceText

	// Custom is a user-defined event with an arbitrary value.
	Custom
)

var typeNames = [...]string{
	"UnknownType", "NewEvents", "MainEventsCleared", "RedrawEventsCleared", "AllWindowsClosed",
	"Resized", "Moved", "CloseRequested", "Destroyed", "DroppedFile", "HoveredFile",
	"HoveredFileCancelled", "FocusGained", "FocusLost", "KeyboardInput", "TextInput",
	"MouseEnter", "MouseLeave", "MouseMove", "MouseButton", "MouseWheel", "Touch",
	"ScaleFactorChanged", "ThemeChanged", "RedrawRequested",
	"DeviceAdded", "DeviceRemoved", "MouseMotion", "DeviceMouseWheel", "Motion",
	"DeviceButton", "DeviceKeyboardInput", "DeviceText", "Custom",
}

func (tp Types) String() string {
	if tp >= 0 && int(tp) < len(typeNames) {
		return typeNames[tp]
	}
	return fmt.Sprintf("Types(%d)", int32(tp))
}

// Event is the interface implemented by all events.
// Events are plain values: every handler receives its own copy.
type Event interface {
	// Type returns the type of the event.
	Type() Types
}

// WindowEvent is an [Event] that is targeted at a single window.
type WindowEvent interface {
	Event

	// WindowID returns the window the event is for.
	WindowID() WindowID
}

// DeviceEvent is an [Event] that comes from an input device
// independently of any window.
type DeviceEvent interface {
	Event

	// DeviceID returns the device that generated the event.
	DeviceID() DeviceID
}

// WindowBase is embedded in all [WindowEvent]s.
type WindowBase struct {
	// Window is the window the event is for.
	Window WindowID
}

func (b WindowBase) WindowID() WindowID { return b.Window }

// DeviceBase is embedded in all [DeviceEvent]s.
type DeviceBase struct {
	// Device is the device that generated the event.
	Device DeviceID
}

func (b DeviceBase) DeviceID() DeviceID { return b.Device }

// Themes is the light or dark theme of the operating system.
type Themes int32

const (
	Light Themes = iota
	Dark
)

func (t Themes) String() string {
	if t == Dark {
		return "Dark"
	}
	return "Light"
}

// TouchPhases is the phase of a touch or wheel gesture.
type TouchPhases int32

const (
	TouchStarted TouchPhases = iota
	TouchMoved
	TouchEnded
	TouchCancelled
)

func (tp TouchPhases) String() string {
	switch tp {
	case TouchStarted:
		return "Started"
	case TouchMoved:
		return "Moved"
	case TouchEnded:
		return "Ended"
	}
	return "Cancelled"
}
