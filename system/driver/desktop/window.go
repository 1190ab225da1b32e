// Copyright 2018 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package desktop

import (
	"image"

	"cogentcore.org/showimage/events"
	"cogentcore.org/showimage/system"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is a GLFW window.
type Window struct {
	driver *Driver
	id     events.WindowID
	glw    *glfw.Window
	opts   system.WindowOptions

	fullscreen bool

	// windowed position and size to restore when leaving fullscreen
	windowedPos  image.Point
	windowedSize image.Point
}

// Glfw returns the underlying GLFW window.
func (w *Window) Glfw() *glfw.Window {
	return w.glw
}

// Size returns the size of the framebuffer in physical pixels.
func (w *Window) Size() image.Point {
	x, y := w.glw.GetFramebufferSize()
	return image.Pt(x, y)
}

func (w *Window) SetVisible(visible bool) {
	if visible {
		w.glw.Show()
	} else {
		w.glw.Hide()
	}
}

func (w *Window) SetOptions(opts *system.WindowOptions) {
	w.opts = *opts
	w.glw.SetAttrib(glfw.Resizable, glfwBool(opts.Resizable))
	w.glw.SetAttrib(glfw.Decorated, glfwBool(!opts.Borderless))
	if opts.Fullscreen == w.fullscreen {
		return
	}
	w.fullscreen = opts.Fullscreen
	if opts.Fullscreen {
		w.windowedPos.X, w.windowedPos.Y = w.glw.GetPos()
		w.windowedSize.X, w.windowedSize.Y = w.glw.GetSize()
		mon := glfw.GetPrimaryMonitor()
		mode := mon.GetVideoMode()
		w.glw.SetMonitor(mon, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
		return
	}
	w.glw.SetMonitor(nil, w.windowedPos.X, w.windowedPos.Y, w.windowedSize.X, w.windowedSize.Y, glfw.DontCare)
}

func (w *Window) Destroy() {
	delete(w.driver.windows, w.glw)
	w.glw.Destroy()
}

// SurfaceDescriptor returns the descriptor for creating a WebGPU
// surface that presents to the window.
func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w.glw)
}
