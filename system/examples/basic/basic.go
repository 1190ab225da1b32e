// Copyright 2023 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"image"

	"cogentcore.org/showimage/base/errors"
	"cogentcore.org/showimage/imagex/ggimage"
	"cogentcore.org/showimage/system"
	"cogentcore.org/showimage/system/driver"
	"github.com/gogpu/gg"
)

func main() {
	opts := system.DefaultContextOptions()
	opts.ExitWithLastWindow = true
	errors.Log(driver.Run(opts, func(p system.ContextProxy) {
		wo := system.DefaultWindowOptions()
		wo.Size = image.Pt(1024, 768)
		w, err := p.CreateWindow("System Test Window", wo)
		if err != nil {
			panic(err)
		}
		fmt.Println("got new window", w.ID())

		dc := gg.NewContext(256, 256)
		for y := range 256 {
			for x := range 256 {
				dc.SetPixel(x, y, gg.RGB(float64(x)/255, float64(y)/255, 0.5))
			}
		}
		errors.Log(w.SetImage("gradient", ggimage.FromContext(dc)))
		errors.Log(dc.Close())

		rx, err := w.EventChannel()
		if err != nil {
			panic(err)
		}
		for {
			ev, err := rx.Recv()
			if err != nil {
				fmt.Println("window closed")
				return
			}
			fmt.Println(ev)
		}
	}))
}
