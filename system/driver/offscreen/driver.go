// Copyright 2023 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package offscreen provides a headless [system.Driver] and a CPU
// [system.Renderer], for testing and for capturing window contents
// without a display or GPU.
package offscreen

import (
	"image"
	"slices"
	"sync"

	"cogentcore.org/showimage/events"
	"cogentcore.org/showimage/system"
)

// DefaultSize is the size of windows created without a size.
var DefaultSize = image.Pt(800, 600)

// Driver is the offscreen [system.Driver]. Platform events are
// simulated with [Driver.Inject].
type Driver struct {
	sink func(raw events.Raw)
	wake chan struct{}

	mu      sync.Mutex
	pending []events.Raw

	// windows is only used on the event loop goroutine.
	windows map[events.WindowID]*Window

	terminated bool
}

var _ system.Driver = (*Driver)(nil)

// NewDriver returns a new offscreen driver.
func NewDriver() *Driver {
	return &Driver{
		wake:    make(chan struct{}, 1),
		windows: map[events.WindowID]*Window{},
	}
}

func (d *Driver) Init(sink func(raw events.Raw)) error {
	d.sink = sink
	return nil
}

func (d *Driver) CreateWindow(id events.WindowID, title string, opts *system.WindowOptions) (system.NativeWindow, error) {
	size := opts.Size
	if size.X <= 0 || size.Y <= 0 {
		size = DefaultSize
	}
	w := &Window{driver: d, id: id, title: title, size: size, opts: *opts}
	d.windows[id] = w
	return w, nil
}

// Inject queues a raw platform event. It is safe to call from any goroutine.
// Resize events also change the size of the simulated window.
func (d *Driver) Inject(raw ...events.Raw) {
	d.mu.Lock()
	d.pending = append(d.pending, raw...)
	d.mu.Unlock()
	d.Wake()
}

func (d *Driver) PollEvents() {
	d.mu.Lock()
	pending := d.pending
	d.pending = nil
	d.mu.Unlock()
	for _, raw := range pending {
		if raw.Kind == events.RawResized {
			if w, ok := d.windows[raw.Window]; ok {
				w.size = raw.Size
			}
		}
		d.sink(raw)
	}
}

func (d *Driver) WaitEvents() {
	d.mu.Lock()
	n := len(d.pending)
	d.mu.Unlock()
	if n == 0 {
		<-d.wake
	}
	d.PollEvents()
}

func (d *Driver) Wake() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *Driver) Terminate() {
	d.terminated = true
	d.windows = map[events.WindowID]*Window{}
}

// Terminated returns whether [Driver.Terminate] has been called.
func (d *Driver) Terminated() bool {
	return d.terminated
}

// Windows returns the ids of the open windows in ascending order.
func (d *Driver) Windows() []events.WindowID {
	ids := make([]events.WindowID, 0, len(d.windows))
	for id := range d.windows {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Window is the offscreen [system.NativeWindow].
type Window struct {
	driver  *Driver
	id      events.WindowID
	title   string
	size    image.Point
	visible bool
	opts    system.WindowOptions
}

func (w *Window) ID() events.WindowID { return w.id }

func (w *Window) Title() string { return w.title }

func (w *Window) Size() image.Point { return w.size }

func (w *Window) SetVisible(visible bool) { w.visible = visible }

func (w *Window) IsVisible() bool { return w.visible }

func (w *Window) SetOptions(opts *system.WindowOptions) { w.opts = *opts }

func (w *Window) Options() system.WindowOptions { return w.opts }

func (w *Window) Destroy() {
	if w.driver != nil {
		delete(w.driver.windows, w.id)
	}
}
