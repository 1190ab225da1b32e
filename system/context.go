// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package system provides the event loop that owns all windows and GPU
// resources, and the proxies through which other goroutines use them.
package system

import (
	"log/slog"
	"os"
	"slices"
	"sync/atomic"

	"cogentcore.org/showimage/base/background"
	"cogentcore.org/showimage/events"
	"github.com/petermattis/goid"
)

// Task is a handle to a background task.
type Task = background.Task

// live guards against more than one [Context] per process.
var live atomic.Bool

// EventHandler is a context wide event handler.
type EventHandler func(c *Context, ev events.Event, cf *events.ControlFlow)

// Context owns the driver, the renderer and all windows. It must only be
// used from the goroutine that created it, which is also the goroutine
// that must call [Context.Run]. Other goroutines use a [ContextProxy].
type Context struct {
	driver   Driver
	renderer Renderer
	opts     ContextOptions
	owner    int64
	queue    *commandQueue

	// windows in creation order
	windows []*Window
	lastID  events.WindowID

	mouse     events.MouseCache
	handlers  events.Listeners[EventHandler]
	tasks     background.Tracker
	receivers []*EventReceiver

	exitFunc func(code int)
	exiting  bool
	exitCode int
	running  bool
}

// NewContext creates a new context owned by the calling goroutine.
// Only one context can exist at a time; [ErrContextExists] is returned
// while another one has not finished running.
func NewContext(drv Driver, rend Renderer, opts ContextOptions) (*Context, error) {
	if !live.CompareAndSwap(false, true) {
		return nil, ErrContextExists
	}
	c := &Context{
		driver:   drv,
		renderer: rend,
		opts:     opts,
		owner:    goid.Get(),
		exitFunc: os.Exit,
	}
	c.queue = newCommandQueue(drv.Wake, &c.tasks)
	if err := drv.Init(c.handleRaw); err != nil {
		live.Store(false)
		return nil, err
	}
	return c, nil
}

// Proxy returns a proxy for using the context from other goroutines.
func (c *Context) Proxy() ContextProxy {
	return ContextProxy{queue: c.queue, owner: c.owner, Timeout: c.opts.Timeout}
}

// Options returns the context options.
func (c *Context) Options() ContextOptions {
	return c.opts
}

// SetExitWithLastWindow sets whether to exit once the last window is closed.
func (c *Context) SetExitWithLastWindow(exit bool) {
	c.opts.ExitWithLastWindow = exit
}

// SetExitFunc sets the function that ends the process after
// [Context.Exit]. It is [os.Exit] by default. If it returns,
// so does [Context.Run].
func (c *Context) SetExitFunc(f func(code int)) {
	c.exitFunc = f
}

// Renderer returns the renderer of the context.
func (c *Context) Renderer() Renderer {
	return c.renderer
}

// Windows returns all windows in creation order.
func (c *Context) Windows() []*Window {
	return slices.Clone(c.windows)
}

// Window returns the window with the given id.
func (c *Context) Window(id events.WindowID) (*Window, error) {
	if i := c.windowIndex(id); i >= 0 {
		return c.windows[i], nil
	}
	return nil, &InvalidWindowIDError{ID: id}
}

func (c *Context) windowIndex(id events.WindowID) int {
	return slices.IndexFunc(c.windows, func(w *Window) bool { return w.id == id })
}

// CreateWindow creates a new window.
func (c *Context) CreateWindow(title string, opts WindowOptions) (*Window, error) {
	c.lastID++
	id := c.lastID
	nw, err := c.driver.CreateWindow(id, title, &opts)
	if err != nil {
		return nil, &OsError{Err: err}
	}
	size := nw.Size()
	sf, err := c.renderer.NewSurface(nw, size)
	if err != nil {
		nw.Destroy()
		return nil, err
	}
	w := &Window{
		ctx:       c,
		id:        id,
		title:     title,
		native:    nw,
		surface:   sf,
		opts:      opts,
		size:      size,
		transform: Identity(),
	}
	w.uniforms.MarkDirty()
	c.windows = append(c.windows, w)
	w.SetVisible(!opts.StartHidden)
	w.RequestRedraw()
	slog.Debug("created window", "id", id, "title", title, "size", size)
	return w, nil
}

// DestroyWindow destroys the window. A [events.WindowDestroyed] event
// is dispatched to the context handlers afterwards.
func (c *Context) DestroyWindow(id events.WindowID) error {
	i := c.windowIndex(id)
	if i < 0 {
		return &InvalidWindowIDError{ID: id}
	}
	w := c.windows[i]
	c.windows = slices.Delete(c.windows, i, i+1)
	w.release()
	slog.Debug("destroyed window", "id", id)
	c.handleRaw(events.Raw{Kind: events.RawDestroyed, Window: id})
	if len(c.windows) == 0 {
		c.dispatch(events.LoopAllWindowsClosed{})
		if c.opts.ExitWithLastWindow {
			c.Exit(0)
		}
	}
	return nil
}

// AddEventHandler adds a context wide event handler. It is called for
// all events, after the handlers of the window the event is for.
func (c *Context) AddEventHandler(h EventHandler) {
	c.handlers.Add(h)
}

// NumEventHandlers returns the number of context wide event handlers.
func (c *Context) NumEventHandlers() int {
	return c.handlers.Len()
}

// RunBackgroundTask runs task on a new goroutine. All background tasks
// are joined before the process exits.
func (c *Context) RunBackgroundTask(task func()) *Task {
	return c.tasks.Spawn(task)
}

// Exit makes the event loop stop at the end of the current iteration:
// all windows are closed, all background tasks are joined, and the
// exit function is called with the code. Only the first call has an effect.
func (c *Context) Exit(code int) {
	if c.exiting {
		return
	}
	c.exiting = true
	c.exitCode = code
	c.driver.Wake()
}

// Run creates a context on the calling goroutine and runs f with a proxy
// on a new goroutine while the calling goroutine runs the event loop.
// When f returns, the process exits with code 0. Run only returns early
// if the context could not be created, or after the exit function set
// with [Context.SetExitFunc] returns.
func Run(drv Driver, rend Renderer, opts ContextOptions, f func(p ContextProxy)) error {
	c, err := NewContext(drv, rend, opts)
	if err != nil {
		return err
	}
	p := c.Proxy()
	go func() {
		f(p)
		p.Exit(0)
	}()
	c.Run()
	return nil
}
