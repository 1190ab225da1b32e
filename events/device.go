// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "cogentcore.org/showimage/geom"

// DeviceAddedEvent is sent when an input device is connected.
type DeviceAddedEvent struct {
	DeviceBase
}

func (DeviceAddedEvent) Type() Types { return DeviceAdded }

// DeviceRemovedEvent is sent when an input device is disconnected.
type DeviceRemovedEvent struct {
	DeviceBase
}

func (DeviceRemovedEvent) Type() Types { return DeviceRemoved }

// DeviceMouseMotion reports raw, unaccelerated mouse motion.
type DeviceMouseMotion struct {
	DeviceBase
	Delta geom.Vec2
}

func (DeviceMouseMotion) Type() Types { return MouseMotion }

// DeviceMouseWheelEvent reports raw mouse wheel motion.
type DeviceMouseWheelEvent struct {
	DeviceBase
	Delta ScrollDelta
}

func (DeviceMouseWheelEvent) Type() Types { return DeviceMouseWheel }

// DeviceMotion reports the value of an analog axis, such as a joystick.
type DeviceMotion struct {
	DeviceBase
	Axis  uint32
	Value float64
}

func (DeviceMotion) Type() Types { return Motion }

// DeviceButtonEvent reports a raw button press or release.
type DeviceButtonEvent struct {
	DeviceBase
	Button  uint32
	Pressed bool
}

func (DeviceButtonEvent) Type() Types { return DeviceButton }

// DeviceKeyboardInputEvent reports a raw key press or release.
type DeviceKeyboardInputEvent struct {
	DeviceBase
	Input KeyInput
}

func (DeviceKeyboardInputEvent) Type() Types { return DeviceKeyboardInput }

// DeviceTextEvent reports a raw unicode character from a device.
type DeviceTextEvent struct {
	DeviceBase
	Char rune
}

func (DeviceTextEvent) Type() Types { return DeviceText }
