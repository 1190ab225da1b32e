// Copyright 2023 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"image"

	"cogentcore.org/showimage/base/errors"
	"cogentcore.org/showimage/events"
	"cogentcore.org/showimage/events/key"
	"cogentcore.org/showimage/geom"
	"cogentcore.org/showimage/imagex"
	"cogentcore.org/showimage/imagex/ggimage"
	"cogentcore.org/showimage/system"
	"cogentcore.org/showimage/system/driver"
	"github.com/gogpu/gg"
)

// step is how far the arrow keys move the triangle,
// in normalized window coordinates.
const step = 0.05

func triangle() imagex.Image {
	dc := gg.NewContext(128, 128)
	defer dc.Close()
	dc.SetRGBA(1, 0.6, 0, 0.8)
	dc.MoveTo(64, 8)
	dc.LineTo(120, 120)
	dc.LineTo(8, 120)
	dc.ClosePath()
	errors.Log(dc.Fill())
	return ggimage.FromContext(dc)
}

func checkers() imagex.Image {
	dc := gg.NewContext(640, 480)
	defer dc.Close()
	for y := 0; y < 480; y += 40 {
		for x := 0; x < 640; x += 40 {
			if (x+y)/40%2 == 0 {
				dc.SetRGB(0.9, 0.9, 0.9)
			} else {
				dc.SetRGB(0.2, 0.2, 0.3)
			}
			dc.DrawRectangle(float64(x), float64(y), 40, 40)
			errors.Log(dc.Fill())
		}
	}
	return ggimage.FromContext(dc)
}

func main() {
	opts := system.DefaultContextOptions()
	opts.ExitWithLastWindow = true
	errors.Log(driver.Run(opts, func(p system.ContextProxy) {
		wo := system.DefaultWindowOptions()
		wo.Size = image.Pt(1024, 768)
		w, err := p.CreateWindow("Overlay Test Window", wo)
		if err != nil {
			panic(err)
		}
		errors.Log(w.SetImage("checkers", checkers()))

		tri := triangle()
		tr := system.Transform{Offset: geom.V2(0.4, 0.4), Scale: geom.V2(0.2, 0.2)}
		errors.Log(w.AddOverlay("triangle", tri, tr))

		// the arrow keys move the triangle and O toggles the overlays
		errors.Log(w.AddEventHandler(func(w *system.Window, ev events.Event, cf *events.ControlFlow) {
			kev, ok := ev.(events.WindowKeyboardInput)
			if !ok || !kev.Input.Pressed {
				return
			}
			switch kev.Input.Code {
			case key.CodeLeftArrow:
				tr.Offset.X -= step
			case key.CodeRightArrow:
				tr.Offset.X += step
			case key.CodeUpArrow:
				tr.Offset.Y -= step
			case key.CodeDownArrow:
				tr.Offset.Y += step
			case key.CodeO:
				w.SetOverlaysVisible(!w.Options().OverlaysVisible)
				return
			default:
				return
			}
			w.ClearOverlays()
			errors.Log(w.AddOverlay("triangle", tri, tr))
			fmt.Println("triangle at", tr.Offset)
		}))
		errors.Log(w.WaitUntilDestroyed())
	}))
}
