// Copyright 2018 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package desktop implements the system driver for desktop platforms
// with GLFW windows rendered by WebGPU.
package desktop

import (
	"image"
	"log/slog"
	"runtime"

	"cogentcore.org/showimage/base/errors"
	"cogentcore.org/showimage/events"
	"cogentcore.org/showimage/gpu"
	"cogentcore.org/showimage/system"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW must only be used from the main thread, which is the
	// thread the main goroutine starts on.
	runtime.LockOSThread()
}

// New returns a desktop driver and a WebGPU renderer.
func New() (system.Driver, system.Renderer, error) {
	return NewDriver(), gpu.NewRenderer(), nil
}

// Driver is a [system.Driver] using GLFW. All its methods except
// [Driver.Wake] must be called from the main thread.
type Driver struct {
	sink    func(raw events.Raw)
	windows map[*glfw.Window]*Window
}

// NewDriver returns a new, uninitialized driver.
func NewDriver() *Driver {
	return &Driver{windows: map[*glfw.Window]*Window{}}
}

func (d *Driver) Init(sink func(raw events.Raw)) error {
	if err := glfw.Init(); err != nil {
		return &system.OsError{Err: err}
	}
	d.sink = sink
	glfw.SetJoystickCallback(d.joystickEvent)
	for joy := glfw.Joystick1; joy <= glfw.JoystickLast; joy++ {
		if joy.Present() {
			d.sink(events.Raw{Kind: events.RawDeviceAdded, Device: joystickDevice(joy)})
		}
	}
	return nil
}

// joystickDevice returns the device id of a joystick. Id 0 is the
// system mouse and keyboard.
func joystickDevice(joy glfw.Joystick) events.DeviceID {
	return events.DeviceID(joy) + 1
}

func (d *Driver) joystickEvent(joy glfw.Joystick, event glfw.PeripheralEvent) {
	switch event {
	case glfw.Connected:
		d.sink(events.Raw{Kind: events.RawDeviceAdded, Device: joystickDevice(joy)})
	case glfw.Disconnected:
		d.sink(events.Raw{Kind: events.RawDeviceRemoved, Device: joystickDevice(joy)})
	}
}

func (d *Driver) CreateWindow(id events.WindowID, title string, opts *system.WindowOptions) (system.NativeWindow, error) {
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfwBool(opts.Resizable))
	glfw.WindowHint(glfw.Decorated, glfwBool(!opts.Borderless))

	size := opts.Size
	if size.X <= 0 || size.Y <= 0 {
		size = image.Pt(800, 600)
	}
	var monitor *glfw.Monitor
	if opts.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
		if mode := monitor.GetVideoMode(); mode != nil {
			size = image.Pt(mode.Width, mode.Height)
		}
	}
	glw, err := glfw.CreateWindow(size.X, size.Y, title, monitor, nil)
	if err != nil {
		return nil, errors.Log(err)
	}
	w := &Window{driver: d, id: id, glw: glw, opts: *opts, fullscreen: opts.Fullscreen}
	w.windowedPos.X, w.windowedPos.Y = glw.GetPos()
	w.windowedSize = size
	w.setCallbacks()
	d.windows[glw] = w
	slog.Debug("desktop: created window", "id", id, "title", title, "size", size)
	return w, nil
}

func (d *Driver) PollEvents() {
	glfw.PollEvents()
}

func (d *Driver) WaitEvents() {
	glfw.WaitEvents()
}

// Wake may be called from any goroutine.
func (d *Driver) Wake() {
	glfw.PostEmptyEvent()
}

func (d *Driver) Terminate() {
	for glw := range d.windows {
		glw.Destroy()
	}
	clear(d.windows)
	glfw.SetJoystickCallback(nil)
	glfw.Terminate()
}

func (d *Driver) send(raw events.Raw) {
	if d.sink != nil {
		d.sink(raw)
	}
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
