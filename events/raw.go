// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"image"

	"cogentcore.org/showimage/events/key"
	"cogentcore.org/showimage/geom"
)

// RawKinds is the kind of a [Raw] platform event.
type RawKinds int32

const (
	RawUnknown RawKinds = iota
	RawNewEvents
	RawMainEventsCleared
	RawRedrawEventsCleared
	RawLoopDestroyed

	RawResized
	RawMoved
	RawCloseRequested
	RawDestroyed
	RawDroppedFile
	RawHoveredFile
	RawHoveredFileCancelled
	RawFocused
	RawKeyboardInput
	RawReceivedCharacter
	RawModifiersChanged
	RawCursorMoved
	RawCursorEntered
	RawCursorLeft
	RawMouseInput
	RawMouseWheel
	RawTouch
	RawScaleFactorChanged
	RawThemeChanged
	RawRedrawRequested

	RawDeviceAdded
	RawDeviceRemoved
	RawDeviceMouseMotion
	RawDeviceMouseWheel
	RawDeviceMotion
	RawDeviceButton
	RawDeviceKey
	RawDeviceText
)

// Raw is an event as reported by a platform driver, before translation.
// Only the fields relevant to its Kind are set.
type Raw struct {
	Kind   RawKinds
	Window WindowID
	Device DeviceID

	// Size is the new size for RawResized and the new position for RawMoved.
	Size image.Point

	// Pos is the cursor or touch position.
	Pos geom.Vec2

	// Delta is the wheel or motion delta, in pixels if DeltaPixels.
	Delta       geom.Vec2
	DeltaPixels bool

	Button  Buttons
	Pressed bool

	// Key is the key code for keyboard events.
	Key      key.Codes
	Scancode uint32
	Repeat   bool

	// Synthetic marks keyboard events generated by the platform itself.
	Synthetic bool

	Mods key.Modifiers
	Char rune

	// Path is the file for RawDroppedFile and RawHoveredFile.
	Path string

	Focused bool
	Scale   float64
	Theme   Themes
	Phase   TouchPhases
	TouchID uint64

	// Axis and Value are set for RawDeviceMotion, and
	// RawButton is the raw button id for RawDeviceButton.
	Axis      uint32
	Value     float64
	RawButton uint32
}
