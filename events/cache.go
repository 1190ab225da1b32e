// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "cogentcore.org/showimage/geom"

type windowDevice struct {
	window WindowID
	device DeviceID
}

// MouseCache remembers the last cursor positions per window and device
// and the pressed buttons per device, which platform events do not carry.
// The zero value is ready to use.
type MouseCache struct {
	buttons map[DeviceID]ButtonState
	pos     map[windowDevice]geom.Vec2
	prev    map[windowDevice]geom.Vec2
}

// Position returns the last cursor position of the device in the window.
func (mc *MouseCache) Position(w WindowID, d DeviceID) (geom.Vec2, bool) {
	p, ok := mc.pos[windowDevice{w, d}]
	return p, ok
}

// PrevPosition returns the cursor position of the device in the window
// before the last movement.
func (mc *MouseCache) PrevPosition(w WindowID, d DeviceID) (geom.Vec2, bool) {
	p, ok := mc.prev[windowDevice{w, d}]
	return p, ok
}

// Buttons returns the buttons held down on the device.
// It returns false if nothing is known about the device.
func (mc *MouseCache) Buttons(d DeviceID) (ButtonState, bool) {
	bs, ok := mc.buttons[d]
	return bs, ok
}

// Handle updates the cache for the given raw event.
// It must be called before [Translate] for the same event.
func (mc *MouseCache) Handle(raw Raw) {
	switch raw.Kind {
	case RawMouseInput:
		if mc.buttons == nil {
			mc.buttons = make(map[DeviceID]ButtonState)
		}
		bs := mc.buttons[raw.Device]
		bs.SetPressed(raw.Button, raw.Pressed)
		mc.buttons[raw.Device] = bs
	case RawCursorMoved:
		if mc.pos == nil {
			mc.pos = make(map[windowDevice]geom.Vec2)
			mc.prev = make(map[windowDevice]geom.Vec2)
		}
		k := windowDevice{raw.Window, raw.Device}
		if p, ok := mc.pos[k]; ok {
			mc.prev[k] = p
		} else {
			mc.prev[k] = raw.Pos
		}
		mc.pos[k] = raw.Pos
	case RawCursorLeft:
		k := windowDevice{raw.Window, raw.Device}
		delete(mc.pos, k)
		delete(mc.prev, k)
	case RawDestroyed:
		mc.removeWindow(raw.Window)
	case RawDeviceRemoved:
		mc.removeDevice(raw.Device)
	}
}

func (mc *MouseCache) removeDevice(d DeviceID) {
	delete(mc.buttons, d)
	for k := range mc.pos {
		if k.device == d {
			delete(mc.pos, k)
		}
	}
	for k := range mc.prev {
		if k.device == d {
			delete(mc.prev, k)
		}
	}
}

func (mc *MouseCache) removeWindow(w WindowID) {
	for k := range mc.pos {
		if k.window == w {
			delete(mc.pos, k)
		}
	}
	for k := range mc.prev {
		if k.window == w {
			delete(mc.prev, k)
		}
	}
}
