// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

// Translate converts a raw platform event into an [Event], filling in
// positions and button state from the cache. It returns false for raw
// events that have no translation, such as modifier changes and loop
// destruction. [MouseCache.Handle] must be called for raw first.
func Translate(mc *MouseCache, raw Raw) (Event, bool) {
	wb := WindowBase{raw.Window}
	db := DeviceBase{raw.Device}
	buttons, _ := mc.Buttons(raw.Device)
	switch raw.Kind {
	case RawNewEvents:
		return LoopNewEvents{}, true
	case RawMainEventsCleared:
		return LoopMainEventsCleared{}, true
	case RawRedrawEventsCleared:
		return LoopRedrawEventsCleared{}, true
	case RawResized:
		return WindowResized{WindowBase: wb, Size: raw.Size}, true
	case RawMoved:
		return WindowMoved{WindowBase: wb, Pos: raw.Size}, true
	case RawCloseRequested:
		return WindowCloseRequested{wb}, true
	case RawDestroyed:
		return WindowDestroyed{wb}, true
	case RawDroppedFile:
		return WindowDroppedFile{WindowBase: wb, File: raw.Path}, true
	case RawHoveredFile:
		return WindowHoveredFile{WindowBase: wb, File: raw.Path}, true
	case RawHoveredFileCancelled:
		return WindowHoveredFileCancelled{wb}, true
	case RawFocused:
		if raw.Focused {
			return WindowFocusGained{wb}, true
		}
		return WindowFocusLost{wb}, true
	case RawKeyboardInput:
		return WindowKeyboardInput{WindowBase: wb, Device: raw.Device, Input: keyInput(raw), Synthetic: raw.Synthetic}, true
	case RawReceivedCharacter:
		return WindowTextInput{WindowBase: wb, Char: raw.Char}, true
	case RawCursorMoved:
		pos, ok := mc.Position(raw.Window, raw.Device)
		if !ok {
			pos = raw.Pos
		}
		prev, ok := mc.PrevPosition(raw.Window, raw.Device)
		if !ok {
			prev = pos
		}
		return WindowMouseMove{WindowBase: wb, Device: raw.Device, Pos: pos, Prev: prev, Buttons: buttons, Mods: raw.Mods}, true
	case RawCursorEntered:
		return WindowMouseEnter{WindowBase: wb, Device: raw.Device, Buttons: buttons}, true
	case RawCursorLeft:
		return WindowMouseLeave{WindowBase: wb, Device: raw.Device, Buttons: buttons}, true
	case RawMouseInput:
		pos, _ := mc.Position(raw.Window, raw.Device)
		prev, _ := mc.PrevPosition(raw.Window, raw.Device)
		return WindowMouseButton{WindowBase: wb, Device: raw.Device, Button: raw.Button, Pressed: raw.Pressed,
			Pos: pos, Prev: prev, Buttons: buttons, Mods: raw.Mods}, true
	case RawMouseWheel:
		pos, ok := mc.Position(raw.Window, raw.Device)
		return WindowMouseWheel{WindowBase: wb, Device: raw.Device, Delta: ScrollDelta{raw.Delta, raw.DeltaPixels},
			Phase: raw.Phase, Pos: pos, HasPos: ok, Buttons: buttons, Mods: raw.Mods}, true
	case RawTouch:
		return WindowTouch{WindowBase: wb, Device: raw.Device, Phase: raw.Phase, Pos: raw.Pos, ID: raw.TouchID}, true
	case RawScaleFactorChanged:
		return WindowScaleFactorChanged{WindowBase: wb, Scale: raw.Scale}, true
	case RawThemeChanged:
		return WindowThemeChanged{WindowBase: wb, Theme: raw.Theme}, true
	case RawRedrawRequested:
		return WindowRedrawRequested{wb}, true
	case RawDeviceAdded:
		return DeviceAddedEvent{db}, true
	case RawDeviceRemoved:
		return DeviceRemovedEvent{db}, true
	case RawDeviceMouseMotion:
		return DeviceMouseMotion{DeviceBase: db, Delta: raw.Delta}, true
	case RawDeviceMouseWheel:
		return DeviceMouseWheelEvent{DeviceBase: db, Delta: ScrollDelta{raw.Delta, raw.DeltaPixels}}, true
	case RawDeviceMotion:
		return DeviceMotion{DeviceBase: db, Axis: raw.Axis, Value: raw.Value}, true
	case RawDeviceButton:
		return DeviceButtonEvent{DeviceBase: db, Button: raw.RawButton, Pressed: raw.Pressed}, true
	case RawDeviceKey:
		return DeviceKeyboardInputEvent{DeviceBase: db, Input: keyInput(raw)}, true
	case RawDeviceText:
		return DeviceTextEvent{DeviceBase: db, Char: raw.Char}, true
	}
	return nil, false
}

func keyInput(raw Raw) KeyInput {
	return KeyInput{Scancode: raw.Scancode, Code: raw.Key, Pressed: raw.Pressed, Repeat: raw.Repeat, Mods: raw.Mods}
}
