// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package desktop

import (
	"cogentcore.org/showimage/events"
	"cogentcore.org/showimage/events/key"
	"cogentcore.org/showimage/geom"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func GlfwMods(mod glfw.ModifierKey) key.Modifiers {
	var m key.Modifiers
	if mod&glfw.ModShift != 0 {
		m.SetFlag(true, key.Shift)
	}
	if mod&glfw.ModControl != 0 {
		m.SetFlag(true, key.Control)
	}
	if mod&glfw.ModAlt != 0 {
		m.SetFlag(true, key.Alt)
	}
	if mod&glfw.ModSuper != 0 {
		m.SetFlag(true, key.Meta)
	}
	return m
}

// modifierFlag returns the modifier flag of a modifier key, or 0.
func modifierFlag(ky glfw.Key) key.Modifiers {
	switch ky {
	case glfw.KeyLeftShift, glfw.KeyRightShift:
		return key.Shift
	case glfw.KeyLeftControl, glfw.KeyRightControl:
		return key.Control
	case glfw.KeyLeftAlt, glfw.KeyRightAlt:
		return key.Alt
	case glfw.KeyLeftSuper, glfw.KeyRightSuper:
		return key.Meta
	}
	return 0
}

func GlfwButton(button glfw.MouseButton) events.Buttons {
	switch button {
	case glfw.MouseButtonLeft:
		return events.Left
	case glfw.MouseButtonMiddle:
		return events.Middle
	case glfw.MouseButtonRight:
		return events.Right
	}
	return events.OtherButton(int(button) - int(glfw.MouseButton4))
}

func (w *Window) setCallbacks() {
	gw := w.glw
	gw.SetFramebufferSizeCallback(w.sizeEvent)
	gw.SetPosCallback(w.posEvent)
	gw.SetCloseCallback(w.closeEvent)
	gw.SetFocusCallback(w.focusEvent)
	gw.SetRefreshCallback(w.refreshEvent)
	gw.SetContentScaleCallback(w.scaleEvent)
	gw.SetKeyCallback(w.keyEvent)
	gw.SetCharCallback(w.charEvent)
	gw.SetCursorPosCallback(w.cursorPosEvent)
	gw.SetCursorEnterCallback(w.cursorEnterEvent)
	gw.SetMouseButtonCallback(w.mouseButtonEvent)
	gw.SetScrollCallback(w.scrollEvent)
	gw.SetDropCallback(w.dropEvent)
}

func (w *Window) send(raw events.Raw) {
	raw.Window = w.id
	w.driver.send(raw)
}

func (w *Window) sizeEvent(gw *glfw.Window, width, height int) {
	w.send(events.Raw{Kind: events.RawResized, Size: w.Size()})
}

func (w *Window) posEvent(gw *glfw.Window, x, y int) {
	r := events.Raw{Kind: events.RawMoved}
	r.Size.X, r.Size.Y = x, y
	w.send(r)
}

// closeEvent turns the close button into a request: the window is
// only closed by the default action of the event.
func (w *Window) closeEvent(gw *glfw.Window) {
	gw.SetShouldClose(false)
	w.send(events.Raw{Kind: events.RawCloseRequested})
}

func (w *Window) focusEvent(gw *glfw.Window, focused bool) {
	w.send(events.Raw{Kind: events.RawFocused, Focused: focused})
}

func (w *Window) refreshEvent(gw *glfw.Window) {
	w.send(events.Raw{Kind: events.RawRedrawRequested})
}

func (w *Window) scaleEvent(gw *glfw.Window, x, y float32) {
	w.send(events.Raw{Kind: events.RawScaleFactorChanged, Scale: float64(max(x, y))})
}

// physical key
func (w *Window) keyEvent(gw *glfw.Window, ky glfw.Key, scancode int, action glfw.Action, mod glfw.ModifierKey) {
	mods := GlfwMods(mod)
	pressed := action != glfw.Release
	// glfw reports the modifier state from before the key event
	if f := modifierFlag(ky); f != 0 {
		mods.SetFlag(pressed, f)
		w.send(events.Raw{Kind: events.RawModifiersChanged, Mods: mods})
	}
	w.send(events.Raw{
		Kind:     events.RawKeyboardInput,
		Key:      GlfwKeyCode(ky),
		Scancode: uint32(scancode),
		Pressed:  pressed,
		Repeat:   action == glfw.Repeat,
		Mods:     mods,
	})
}

// char input
func (w *Window) charEvent(gw *glfw.Window, char rune) {
	w.send(events.Raw{Kind: events.RawReceivedCharacter, Char: char})
}

// cursorPos converts screen coordinates to framebuffer pixels.
func (w *Window) cursorPos(x, y float64) geom.Vec2 {
	pos := geom.V2(float32(x), float32(y))
	ww, wh := w.glw.GetSize()
	if ww <= 0 || wh <= 0 {
		return pos
	}
	fb := geom.FromPoint(w.Size())
	return pos.Mul(fb.Div(geom.V2(float32(ww), float32(wh))))
}

func (w *Window) cursorPosEvent(gw *glfw.Window, x, y float64) {
	w.send(events.Raw{Kind: events.RawCursorMoved, Pos: w.cursorPos(x, y)})
}

func (w *Window) cursorEnterEvent(gw *glfw.Window, entered bool) {
	if entered {
		w.send(events.Raw{Kind: events.RawCursorEntered})
		return
	}
	w.send(events.Raw{Kind: events.RawCursorLeft})
}

func (w *Window) mouseButtonEvent(gw *glfw.Window, button glfw.MouseButton, action glfw.Action, mod glfw.ModifierKey) {
	w.send(events.Raw{
		Kind:    events.RawMouseInput,
		Button:  GlfwButton(button),
		Pressed: action == glfw.Press,
		Mods:    GlfwMods(mod),
	})
}

// scrollEvent reports scrolling in lines, as glfw does.
func (w *Window) scrollEvent(gw *glfw.Window, xoff, yoff float64) {
	w.send(events.Raw{Kind: events.RawMouseWheel, Delta: geom.V2(float32(xoff), float32(yoff))})
}

func (w *Window) dropEvent(gw *glfw.Window, names []string) {
	for _, name := range names {
		w.send(events.Raw{Kind: events.RawDroppedFile, Path: name})
	}
}

// GlfwKeyCode returns the key code of a glfw key.
func GlfwKeyCode(kcode glfw.Key) key.Codes {
	return glfwKeyCodes[kcode]
}

var glfwKeyCodes = map[glfw.Key]key.Codes{
	glfw.KeyA: key.CodeA,
	glfw.KeyB: key.CodeB,
	glfw.KeyC: key.CodeC,
	glfw.KeyD: key.CodeD,
	glfw.KeyE: key.CodeE,
	glfw.KeyF: key.CodeF,
	glfw.KeyG: key.CodeG,
	glfw.KeyH: key.CodeH,
	glfw.KeyI: key.CodeI,
	glfw.KeyJ: key.CodeJ,
	glfw.KeyK: key.CodeK,
	glfw.KeyL: key.CodeL,
	glfw.KeyM: key.CodeM,
	glfw.KeyN: key.CodeN,
	glfw.KeyO: key.CodeO,
	glfw.KeyP: key.CodeP,
	glfw.KeyQ: key.CodeQ,
	glfw.KeyR: key.CodeR,
	glfw.KeyS: key.CodeS,
	glfw.KeyT: key.CodeT,
	glfw.KeyU: key.CodeU,
	glfw.KeyV: key.CodeV,
	glfw.KeyW: key.CodeW,
	glfw.KeyX: key.CodeX,
	glfw.KeyY: key.CodeY,
	glfw.KeyZ: key.CodeZ,

	glfw.Key1: key.Code1,
	glfw.Key2: key.Code2,
	glfw.Key3: key.Code3,
	glfw.Key4: key.Code4,
	glfw.Key5: key.Code5,
	glfw.Key6: key.Code6,
	glfw.Key7: key.Code7,
	glfw.Key8: key.Code8,
	glfw.Key9: key.Code9,
	glfw.Key0: key.Code0,

	glfw.KeyEnter:        key.CodeReturnEnter,
	glfw.KeyEscape:       key.CodeEscape,
	glfw.KeyBackspace:    key.CodeBackspace,
	glfw.KeyTab:          key.CodeTab,
	glfw.KeySpace:        key.CodeSpacebar,
	glfw.KeyMinus:        key.CodeHyphenMinus,
	glfw.KeyEqual:        key.CodeEqualSign,
	glfw.KeyLeftBracket:  key.CodeLeftSquareBracket,
	glfw.KeyRightBracket: key.CodeRightSquareBracket,
	glfw.KeyBackslash:    key.CodeBackslash,
	glfw.KeySemicolon:    key.CodeSemicolon,
	glfw.KeyApostrophe:   key.CodeApostrophe,
	glfw.KeyGraveAccent:  key.CodeGraveAccent,
	glfw.KeyComma:        key.CodeComma,
	glfw.KeyPeriod:       key.CodeFullStop,
	glfw.KeySlash:        key.CodeSlash,
	glfw.KeyCapsLock:     key.CodeCapsLock,

	glfw.KeyF1:  key.CodeF1,
	glfw.KeyF2:  key.CodeF2,
	glfw.KeyF3:  key.CodeF3,
	glfw.KeyF4:  key.CodeF4,
	glfw.KeyF5:  key.CodeF5,
	glfw.KeyF6:  key.CodeF6,
	glfw.KeyF7:  key.CodeF7,
	glfw.KeyF8:  key.CodeF8,
	glfw.KeyF9:  key.CodeF9,
	glfw.KeyF10: key.CodeF10,
	glfw.KeyF11: key.CodeF11,
	glfw.KeyF12: key.CodeF12,

	glfw.KeyPause:    key.CodePause,
	glfw.KeyInsert:   key.CodeInsert,
	glfw.KeyHome:     key.CodeHome,
	glfw.KeyPageUp:   key.CodePageUp,
	glfw.KeyDelete:   key.CodeDelete,
	glfw.KeyEnd:      key.CodeEnd,
	glfw.KeyPageDown: key.CodePageDown,
	glfw.KeyRight:    key.CodeRightArrow,
	glfw.KeyLeft:     key.CodeLeftArrow,
	glfw.KeyDown:     key.CodeDownArrow,
	glfw.KeyUp:       key.CodeUpArrow,

	glfw.KeyNumLock:    key.CodeKeypadNumLock,
	glfw.KeyKPDivide:   key.CodeKeypadSlash,
	glfw.KeyKPMultiply: key.CodeKeypadAsterisk,
	glfw.KeyKPSubtract: key.CodeKeypadHyphen,
	glfw.KeyKPAdd:      key.CodeKeypadPlusSign,
	glfw.KeyKPEnter:    key.CodeKeypadEnter,
	glfw.KeyKP1:        key.CodeKeypad1,
	glfw.KeyKP2:        key.CodeKeypad2,
	glfw.KeyKP3:        key.CodeKeypad3,
	glfw.KeyKP4:        key.CodeKeypad4,
	glfw.KeyKP5:        key.CodeKeypad5,
	glfw.KeyKP6:        key.CodeKeypad6,
	glfw.KeyKP7:        key.CodeKeypad7,
	glfw.KeyKP8:        key.CodeKeypad8,
	glfw.KeyKP9:        key.CodeKeypad9,
	glfw.KeyKP0:        key.CodeKeypad0,
	glfw.KeyKPDecimal:  key.CodeKeypadFullStop,
	glfw.KeyKPEqual:    key.CodeKeypadEqualSign,

	glfw.KeyLeftControl:  key.CodeLeftControl,
	glfw.KeyLeftShift:    key.CodeLeftShift,
	glfw.KeyLeftAlt:      key.CodeLeftAlt,
	glfw.KeyLeftSuper:    key.CodeLeftMeta,
	glfw.KeyRightControl: key.CodeRightControl,
	glfw.KeyRightShift:   key.CodeRightShift,
	glfw.KeyRightAlt:     key.CodeRightAlt,
	glfw.KeyRightSuper:   key.CodeRightMeta,
}
