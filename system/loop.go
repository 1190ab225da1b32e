// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"image"
	"log/slog"
	"slices"

	"cogentcore.org/showimage/base/errors"
	"cogentcore.org/showimage/events"
	"github.com/petermattis/goid"
)

// Run runs the event loop until [Context.Exit] is called, and then shuts
// down. It panics if not called from the goroutine that created the context.
func (c *Context) Run() {
	if goid.Get() != c.owner {
		panic("system: Context.Run must be called from the goroutine that created the context")
	}
	if c.running {
		panic("system: Context.Run called twice")
	}
	c.running = true
	slog.Debug("event loop started")
	for !c.exiting {
		c.tick()
	}
	c.shutdown()
}

// tick runs one iteration of the event loop.
func (c *Context) tick() {
	c.dispatch(events.LoopNewEvents{})
	if c.queue.len() > 0 || c.redrawPending() {
		c.driver.PollEvents()
	} else {
		c.driver.WaitEvents()
	}
	c.runCommands()
	c.dispatch(events.LoopMainEventsCleared{})
	c.tasks.Clean()
	for _, w := range slices.Clone(c.windows) {
		if w.redraw && !w.destroyed {
			w.redraw = false
			c.dispatch(events.WindowRedrawRequested{WindowBase: events.WindowBase{Window: w.id}})
		}
	}
	c.dispatch(events.LoopRedrawEventsCleared{})
}

// runCommands applies the commands that were queued when it was called.
// Commands queued by those commands run in the next iteration.
func (c *Context) runCommands() {
	n := c.queue.len()
	for range n {
		if c.exiting {
			return
		}
		cmd, ok := c.queue.next()
		if !ok {
			return
		}
		cmd.apply(c)
	}
}

func (c *Context) redrawPending() bool {
	return slices.ContainsFunc(c.windows, func(w *Window) bool { return w.redraw })
}

// shutdown closes all windows, stops accepting commands, joins the
// background tasks and calls the exit function.
func (c *Context) shutdown() {
	slog.Debug("event loop stopping", "code", c.exitCode)
	for len(c.windows) > 0 {
		errors.Log(c.DestroyWindow(c.windows[len(c.windows)-1].id))
	}
	c.queue.close()
	for _, er := range c.receivers {
		er.disconnect()
	}
	c.receivers = nil
	errors.Log(c.tasks.JoinAll())
	c.renderer.Release()
	c.driver.Terminate()
	live.Store(false)
	c.exitFunc(c.exitCode)
}

// handleRaw is the sink for raw platform events.
func (c *Context) handleRaw(raw events.Raw) {
	if raw.Kind == events.RawRedrawRequested {
		if w, err := c.Window(raw.Window); err == nil {
			w.redraw = true
		}
		return
	}
	c.mouse.Handle(raw)
	if ev, ok := events.Translate(&c.mouse, raw); ok {
		c.dispatch(ev)
	}
}

// dispatch runs the event handlers for the event: first those of the
// window the event is for, then the context handlers, and finally the
// default action. A handler that stops propagation skips the handlers
// after it, as does destroying the window in a window handler, but the
// default action always runs.
func (c *Context) dispatch(ev events.Event) {
	preventClose := false
	stopped := false
	if we, ok := ev.(events.WindowEvent); ok {
		if w, err := c.Window(we.WindowID()); err == nil {
			stopped = w.handlers.Call(func(h WindowEventHandler, cf *events.ControlFlow) {
				if !w.destroyed {
					h(w, ev, cf)
					preventClose = preventClose || cf.PreventClose
				}
			})
			stopped = stopped || w.destroyed
		}
	}
	if !stopped {
		c.handlers.Call(func(h EventHandler, cf *events.ControlFlow) {
			h(c, ev, cf)
			preventClose = preventClose || cf.PreventClose
		})
	}
	if _, ok := ev.(events.WindowCloseRequested); ok && preventClose {
		return
	}
	c.defaultAction(ev)
}

func (c *Context) defaultAction(ev events.Event) {
	switch ev := ev.(type) {
	case events.WindowResized:
		if ev.Size.X > 0 && ev.Size.Y > 0 {
			// the window may have been destroyed in the same iteration
			c.resizeWindow(ev.Window, ev.Size)
		}
	case events.WindowRedrawRequested:
		if w, err := c.Window(ev.Window); err == nil {
			errors.Log(w.render())
		}
	case events.WindowCloseRequested:
		c.DestroyWindow(ev.Window)
	case events.WindowKeyboardInput:
		c.saveShortcut(ev)
	}
	if we, ok := ev.(events.WindowEvent); ok {
		if w, err := c.Window(we.WindowID()); err == nil && w.opts.DefaultControls {
			w.handleControls(ev)
		}
	}
}

func (c *Context) resizeWindow(id events.WindowID, size image.Point) error {
	w, err := c.Window(id)
	if err != nil {
		return err
	}
	w.size = size
	w.uniforms.MarkDirty()
	w.RequestRedraw()
	return w.surface.Resize(size)
}
