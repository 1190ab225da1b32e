// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"github.com/chewxy/math32"

	"cogentcore.org/showimage/events"
	"cogentcore.org/showimage/events/key"
	"cogentcore.org/showimage/geom"
)

var (
	// ZoomStep is the zoom factor for one line of mouse wheel scrolling.
	ZoomStep = float32(1.1)

	// PixelsPerLine converts pixel based scroll deltas, as sent by
	// touchpads, into lines.
	PixelsPerLine = float32(20)
)

// handleControls implements [WindowOptions.DefaultControls].
func (w *Window) handleControls(ev events.Event) {
	if w.size.X <= 0 || w.size.Y <= 0 {
		return
	}
	size := geom.FromPoint(w.size)
	switch ev := ev.(type) {
	case events.WindowMouseWheel:
		if !ev.HasPos {
			return
		}
		lines := ev.Delta.Delta.Y
		if ev.Delta.Pixels {
			lines /= PixelsPerLine
		}
		if lines == 0 {
			return
		}
		w.Zoom(math32.Pow(ZoomStep, lines), ev.Pos.Div(size))
	case events.WindowMouseMove:
		if !ev.Buttons.IsPressed(events.Left) {
			return
		}
		if d := ev.Delta(); !d.IsZero() {
			w.Pan(d.Div(size))
		}
	case events.WindowKeyboardInput:
		in := ev.Input
		if in.Pressed && in.Code == key.CodeR && in.Mods == 0 {
			w.ResetTransform()
		}
	}
}
