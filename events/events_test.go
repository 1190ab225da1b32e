// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import (
	"image"
	"testing"

	"cogentcore.org/showimage/events/key"
	"cogentcore.org/showimage/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handle(mc *MouseCache, raw Raw) (Event, bool) {
	mc.Handle(raw)
	return Translate(mc, raw)
}

func TestFirstMoveZeroDelta(t *testing.T) {
	mc := &MouseCache{}
	ev, ok := handle(mc, Raw{Kind: RawCursorMoved, Window: 1, Pos: geom.V2(10, 20)})
	require.True(t, ok)
	mv := ev.(WindowMouseMove)
	assert.Equal(t, geom.V2(10, 20), mv.Pos)
	assert.Equal(t, mv.Pos, mv.Prev)
	assert.True(t, mv.Delta().IsZero())

	ev, _ = handle(mc, Raw{Kind: RawCursorMoved, Window: 1, Pos: geom.V2(15, 12)})
	mv = ev.(WindowMouseMove)
	assert.Equal(t, geom.V2(15, 12), mv.Pos)
	assert.Equal(t, geom.V2(10, 20), mv.Prev)
	assert.Equal(t, geom.V2(5, -8), mv.Delta())

	// another window starts fresh
	ev, _ = handle(mc, Raw{Kind: RawCursorMoved, Window: 2, Pos: geom.V2(1, 1)})
	mv = ev.(WindowMouseMove)
	assert.Equal(t, mv.Pos, mv.Prev)
}

func TestDirectionZeroAxis(t *testing.T) {
	mv := WindowMouseMove{Pos: geom.V2(5, 3), Prev: geom.V2(2, 3)}
	assert.Equal(t, geom.V2(1, 0), mv.Direction())
	mv = WindowMouseMove{Pos: geom.V2(5, 3), Prev: geom.V2(5, 9)}
	assert.Equal(t, geom.V2(0, -1), mv.Direction())
	mv = WindowMouseMove{Pos: geom.V2(5, 3), Prev: geom.V2(5, 3)}
	assert.Equal(t, geom.V2(0, 0), mv.Direction())
}

func TestButtonState(t *testing.T) {
	mc := &MouseCache{}
	handle(mc, Raw{Kind: RawCursorMoved, Window: 1, Pos: geom.V2(3, 4)})
	ev, ok := handle(mc, Raw{Kind: RawMouseInput, Window: 1, Button: Left, Pressed: true, Mods: key.Shift})
	require.True(t, ok)
	mb := ev.(WindowMouseButton)
	assert.True(t, mb.Pressed)
	assert.Equal(t, geom.V2(3, 4), mb.Pos)
	assert.True(t, mb.Buttons.IsPressed(Left))
	assert.Equal(t, key.Shift, mb.Mods)

	ev, _ = handle(mc, Raw{Kind: RawMouseInput, Window: 1, Button: Right, Pressed: true})
	mb = ev.(WindowMouseButton)
	assert.Equal(t, []Buttons{Left, Right}, mb.Buttons.Pressed())

	ev, _ = handle(mc, Raw{Kind: RawMouseInput, Window: 1, Button: Left})
	mb = ev.(WindowMouseButton)
	assert.False(t, mb.Pressed)
	assert.Equal(t, []Buttons{Right}, mb.Buttons.Pressed())

	ev, _ = handle(mc, Raw{Kind: RawCursorMoved, Window: 1, Pos: geom.V2(5, 4)})
	assert.True(t, ev.(WindowMouseMove).Buttons.IsPressed(Right))

	var bs ButtonState
	bs.SetPressed(OtherButton(2), true)
	assert.True(t, bs.IsPressed(OtherButton(2)))
	assert.Equal(t, "[Other(2)]", bs.String())
	bs.SetPressed(Buttons(MaxButtons), true)
	assert.False(t, bs.IsPressed(Buttons(MaxButtons)))
}

func TestDeviceRemovedPurges(t *testing.T) {
	mc := &MouseCache{}
	handle(mc, Raw{Kind: RawCursorMoved, Window: 1, Device: 3, Pos: geom.V2(1, 2)})
	handle(mc, Raw{Kind: RawCursorMoved, Window: 2, Device: 3, Pos: geom.V2(1, 2)})
	handle(mc, Raw{Kind: RawMouseInput, Window: 1, Device: 3, Button: Left, Pressed: true})
	handle(mc, Raw{Kind: RawCursorMoved, Window: 1, Device: 4, Pos: geom.V2(7, 7)})

	ev, ok := handle(mc, Raw{Kind: RawDeviceRemoved, Device: 3})
	require.True(t, ok)
	assert.Equal(t, DeviceID(3), ev.(DeviceEvent).DeviceID())

	_, ok = mc.Buttons(3)
	assert.False(t, ok)
	_, ok = mc.Position(1, 3)
	assert.False(t, ok)
	_, ok = mc.PrevPosition(2, 3)
	assert.False(t, ok)
	p, ok := mc.Position(1, 4)
	assert.True(t, ok)
	assert.Equal(t, geom.V2(7, 7), p)
}

func TestCursorLeft(t *testing.T) {
	mc := &MouseCache{}
	handle(mc, Raw{Kind: RawCursorMoved, Window: 1, Pos: geom.V2(10, 10)})
	handle(mc, Raw{Kind: RawMouseInput, Window: 1, Button: Middle, Pressed: true})
	ev, ok := handle(mc, Raw{Kind: RawCursorLeft, Window: 1})
	require.True(t, ok)
	assert.True(t, ev.(WindowMouseLeave).Buttons.IsPressed(Middle))

	_, ok = mc.Position(1, 0)
	assert.False(t, ok)
	bs, ok := mc.Buttons(0)
	assert.True(t, ok)
	assert.True(t, bs.IsPressed(Middle))

	ev, _ = handle(mc, Raw{Kind: RawCursorMoved, Window: 1, Pos: geom.V2(50, 60)})
	mv := ev.(WindowMouseMove)
	assert.Equal(t, mv.Pos, mv.Prev)
}

func TestTranslateDropped(t *testing.T) {
	mc := &MouseCache{}
	_, ok := handle(mc, Raw{Kind: RawModifiersChanged, Window: 1, Mods: key.Control})
	assert.False(t, ok)
	_, ok = handle(mc, Raw{Kind: RawLoopDestroyed})
	assert.False(t, ok)
	_, ok = handle(mc, Raw{Kind: RawUnknown})
	assert.False(t, ok)
}

func TestTranslateWindow(t *testing.T) {
	mc := &MouseCache{}
	ev, ok := handle(mc, Raw{Kind: RawResized, Window: 5, Size: image.Pt(640, 480)})
	require.True(t, ok)
	assert.Equal(t, WindowResized{WindowBase: WindowBase{5}, Size: image.Pt(640, 480)}, ev)
	assert.Equal(t, WindowID(5), ev.(WindowEvent).WindowID())

	ev, _ = handle(mc, Raw{Kind: RawFocused, Window: 5})
	assert.Equal(t, FocusLost, ev.Type())
	ev, _ = handle(mc, Raw{Kind: RawFocused, Window: 5, Focused: true})
	assert.Equal(t, FocusGained, ev.Type())

	ev, _ = handle(mc, Raw{Kind: RawKeyboardInput, Window: 5, Key: key.CodeS, Pressed: true, Mods: key.Control})
	kb := ev.(WindowKeyboardInput)
	assert.Equal(t, key.CodeS, kb.Input.Code)
	assert.True(t, kb.Input.Mods.HasFlag(key.Control))
	assert.Equal(t, "Control+S Pressed", kb.Input.String())

	ev, _ = handle(mc, Raw{Kind: RawMouseWheel, Window: 5, Delta: geom.V2(0, 1)})
	wh := ev.(WindowMouseWheel)
	assert.False(t, wh.HasPos)
	assert.Equal(t, geom.V2(0, 1), wh.Delta.Delta)

	ev, _ = handle(mc, Raw{Kind: RawNewEvents})
	assert.Equal(t, NewEvents, ev.Type())
	assert.Equal(t, "RedrawRequested", RedrawRequested.String())
	assert.Equal(t, "Custom", Custom.String())
}

func TestListeners(t *testing.T) {
	var ls Listeners[string]
	ls.Add("a")
	ls.Add("remove")
	ls.Add("stop")
	ls.Add("d")

	var called []string
	stopped := ls.Call(func(h string, cf *ControlFlow) {
		called = append(called, h)
		switch h {
		case "remove":
			cf.RemoveHandler = true
		case "stop":
			cf.StopPropagation = true
			ls.Add("late")
		}
	})
	assert.True(t, stopped)
	assert.Equal(t, []string{"a", "remove", "stop"}, called)
	assert.Equal(t, 4, ls.Len())

	called = nil
	stopped = ls.Call(func(h string, cf *ControlFlow) {
		called = append(called, h)
	})
	assert.False(t, stopped)
	assert.Equal(t, []string{"a", "stop", "d", "late"}, called)
}

func TestListenersNested(t *testing.T) {
	var ls Listeners[string]
	ls.Add("outer")
	ls.Add("once")
	ls.Add("last")

	var called []string
	var call func(ev string)
	call = func(ev string) {
		ls.Call(func(h string, cf *ControlFlow) {
			called = append(called, ev+":"+h)
			switch {
			case h == "outer" && ev == "first":
				call("nested")
			case h == "once":
				cf.RemoveHandler = true
			}
		})
	}
	call("first")
	assert.Equal(t, []string{
		"first:outer",
		"nested:outer", "nested:once", "nested:last",
		"first:last",
	}, called)
	assert.Equal(t, 2, ls.Len())

	called = nil
	call("second")
	assert.Equal(t, []string{"second:outer", "second:last"}, called)
}
