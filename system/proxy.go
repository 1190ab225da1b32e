// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"time"

	"cogentcore.org/showimage/base/errors"
	"cogentcore.org/showimage/base/oneshot"
	"cogentcore.org/showimage/events"
	"cogentcore.org/showimage/imagex"
	"github.com/petermattis/goid"
)

// ContextProxy is a handle to a [Context] that can be used from any goroutine.
// It sends commands to the event loop and, for blocking calls, waits for the
// reply. Blocking calls panic when made from the goroutine running the event
// loop, since they would wait on themselves forever. Copying a proxy is cheap.
type ContextProxy struct {
	queue *commandQueue
	owner int64

	// Timeout is how long blocking calls wait for a reply before returning
	// [ErrTimeout]. Zero waits forever.
	Timeout time.Duration
}

// IsOwner returns whether the calling goroutine runs the event loop.
func (p ContextProxy) IsOwner() bool {
	return goid.Get() == p.owner
}

func (p ContextProxy) assertNotOwner(fn string) {
	if p.IsOwner() {
		panic("system: ContextProxy." + fn + " called from the event loop goroutine; this would deadlock")
	}
}

// request sends the command built by build and waits for its reply.
func request[T any](p ContextProxy, fn string, build func(reply *oneshot.Sender[T]) command) (T, error) {
	p.assertNotOwner(fn)
	var zero T
	tx, rx := oneshot.New[T]()
	if err := p.queue.send(build(tx)); err != nil {
		return zero, err
	}
	var v T
	var err error
	if p.Timeout > 0 {
		v, err = rx.RecvTimeout(p.Timeout)
	} else {
		v, err = rx.Recv()
	}
	switch {
	case errors.Is(err, oneshot.ErrTimeout):
		rx.Close()
		return zero, ErrTimeout
	case errors.Is(err, oneshot.ErrDisconnected):
		return zero, ErrEventLoopClosed
	case err != nil:
		return zero, err
	}
	return v, nil
}

// requestErr is [request] for commands that reply with an error.
func requestErr(p ContextProxy, fn string, build func(reply *oneshot.Sender[error]) command) error {
	res, err := request(p, fn, build)
	if err != nil {
		return err
	}
	return res
}

// RunFunction runs f on the event loop goroutine without waiting for it.
// Long running work blocks the event loop, and should use
// [ContextProxy.RunBackgroundTask] instead.
func (p ContextProxy) RunFunction(f func(c *Context)) error {
	return p.queue.send(&runFunctionCmd{f: f})
}

// RunFunctionWait runs f on the event loop goroutine and waits for it to finish.
func (p ContextProxy) RunFunctionWait(f func(c *Context)) error {
	_, err := RunFunctionWait(p, func(c *Context) struct{} {
		f(c)
		return struct{}{}
	})
	return err
}

// RunFunctionWait runs f on the event loop goroutine of the proxy's context,
// waits for it to finish, and returns its result.
func RunFunctionWait[T any](p ContextProxy, f func(c *Context) T) (T, error) {
	return request(p, "RunFunctionWait", func(reply *oneshot.Sender[T]) command {
		return &runFunctionCmd{
			f:    func(c *Context) { reply.Send(f(c)) },
			done: reply.Close,
		}
	})
}

// RunBackgroundTask runs task on a new goroutine that is tracked by the
// context, so that it is joined before the process exits. It returns
// [ErrEventLoopClosed] without running task once the context is exiting.
func (p ContextProxy) RunBackgroundTask(task func()) error {
	return p.queue.spawn(task)
}

// CreateWindow creates a new window and returns a proxy for it.
func (p ContextProxy) CreateWindow(title string, opts WindowOptions) (WindowProxy, error) {
	res, err := request(p, "CreateWindow", func(reply *oneshot.Sender[result[events.WindowID]]) command {
		return &createWindowCmd{title: title, opts: opts, reply: reply}
	})
	if err == nil {
		err = res.err
	}
	if err != nil {
		return WindowProxy{}, err
	}
	return WindowProxy{id: res.v, ctx: p}, nil
}

// Window returns a proxy for the window with the given id.
// The window is not checked to exist.
func (p ContextProxy) Window(id events.WindowID) WindowProxy {
	return WindowProxy{id: id, ctx: p}
}

// DestroyWindow destroys the window.
func (p ContextProxy) DestroyWindow(id events.WindowID) error {
	return requestErr(p, "DestroyWindow", func(reply *oneshot.Sender[error]) command {
		return &destroyWindowCmd{id: id, reply: reply}
	})
}

// SetWindowVisible shows or hides the window.
func (p ContextProxy) SetWindowVisible(id events.WindowID, visible bool) error {
	return requestErr(p, "SetWindowVisible", func(reply *oneshot.Sender[error]) command {
		return setVisibleCmd(id, visible, reply)
	})
}

// SetWindowImage sets the image displayed in the window. Images that do not
// own their data, such as an [imagex.View], are copied before they are sent
// to the event loop.
func (p ContextProxy) SetWindowImage(id events.WindowID, name string, img imagex.Image) error {
	if err := img.Info().Validate(len(img.Data())); err != nil {
		return err
	}
	img = imagex.ToOwned(img)
	return requestErr(p, "SetWindowImage", func(reply *oneshot.Sender[error]) command {
		return setImageCmd(id, name, img, reply)
	})
}

// AddWindowOverlay adds an overlay image on top of the window image.
func (p ContextProxy) AddWindowOverlay(id events.WindowID, name string, img imagex.Image, tr Transform) error {
	if err := img.Info().Validate(len(img.Data())); err != nil {
		return err
	}
	img = imagex.ToOwned(img)
	return requestErr(p, "AddWindowOverlay", func(reply *oneshot.Sender[error]) command {
		return addOverlayCmd(id, name, img, tr, reply)
	})
}

// ClearWindowOverlays removes all overlays from the window.
func (p ContextProxy) ClearWindowOverlays(id events.WindowID) error {
	return requestErr(p, "ClearWindowOverlays", func(reply *oneshot.Sender[error]) command {
		return clearOverlaysCmd(id, reply)
	})
}

// SetWindowOptions calls f with a copy of the window options and applies the result.
func (p ContextProxy) SetWindowOptions(id events.WindowID, f func(opts *WindowOptions)) error {
	return requestErr(p, "SetWindowOptions", func(reply *oneshot.Sender[error]) command {
		return setOptionsCmd(id, f, reply)
	})
}

// SetWindowTransform sets the zoom and pan of the window image.
func (p ContextProxy) SetWindowTransform(id events.WindowID, tr Transform) error {
	return requestErr(p, "SetWindowTransform", func(reply *oneshot.Sender[error]) command {
		return setTransformCmd(id, tr, reply)
	})
}

// AddWindowEventHandler adds an event handler to the window.
// The handler runs on the event loop goroutine.
func (p ContextProxy) AddWindowEventHandler(id events.WindowID, h WindowEventHandler) error {
	return requestErr(p, "AddWindowEventHandler", func(reply *oneshot.Sender[error]) command {
		return addWindowHandlerCmd(id, h, reply)
	})
}

// AddEventHandler adds a context wide event handler.
// The handler runs on the event loop goroutine.
func (p ContextProxy) AddEventHandler(h EventHandler) error {
	return requestErr(p, "AddEventHandler", func(reply *oneshot.Sender[error]) command {
		return &addContextHandlerCmd{h: h, reply: reply}
	})
}

// SendCustom dispatches a [events.CustomEvent] with the value to
// the context event handlers, without waiting.
func (p ContextProxy) SendCustom(v any) error {
	return p.queue.send(&customCmd{value: v})
}

// EventChannel returns a receiver for all events dispatched by the context.
func (p ContextProxy) EventChannel() (*EventReceiver, error) {
	er := newEventReceiver(p.owner)
	err := p.RunFunctionWait(func(c *Context) {
		c.receivers = append(c.receivers, er)
		c.AddEventHandler(func(c *Context, ev events.Event, cf *events.ControlFlow) {
			if !er.send(ev) {
				cf.RemoveHandler = true
				c.receivers = removeReceiver(c.receivers, er)
			}
		})
	})
	if err != nil {
		return nil, err
	}
	return er, nil
}

// WindowEventChannel returns a receiver for all events of the window.
// The receiver is disconnected when the window is destroyed.
func (p ContextProxy) WindowEventChannel(id events.WindowID) (*EventReceiver, error) {
	er := newEventReceiver(p.owner)
	res, err := RunFunctionWait(p, func(c *Context) error {
		w, err := c.Window(id)
		if err != nil {
			return err
		}
		w.receivers = append(w.receivers, er)
		w.AddEventHandler(func(w *Window, ev events.Event, cf *events.ControlFlow) {
			if !er.send(ev) {
				cf.RemoveHandler = true
				w.receivers = removeReceiver(w.receivers, er)
			}
		})
		return nil
	})
	if err == nil {
		err = res
	}
	if err != nil {
		return nil, err
	}
	return er, nil
}

// WaitUntilDestroyed blocks until the window is destroyed, regardless
// of [ContextProxy.Timeout]. It returns immediately if the window does
// not exist.
func (p ContextProxy) WaitUntilDestroyed(id events.WindowID) error {
	p.assertNotOwner("WaitUntilDestroyed")
	tx, rx := oneshot.New[struct{}]()
	err := p.queue.send(&runFunctionCmd{done: tx.Close, f: func(c *Context) {
		if _, err := c.Window(id); err != nil {
			tx.Send(struct{}{})
			return
		}
		c.AddEventHandler(func(c *Context, ev events.Event, cf *events.ControlFlow) {
			if d, ok := ev.(events.WindowDestroyed); ok && d.Window == id {
				tx.Send(struct{}{})
				cf.RemoveHandler = true
			}
		})
	}})
	if err != nil {
		return err
	}
	_, err = rx.Recv()
	if errors.Is(err, oneshot.ErrDisconnected) {
		return ErrEventLoopClosed
	}
	return err
}

// Exit closes all windows, waits for all background tasks and then exits
// the process with the given code. It never returns.
func (p ContextProxy) Exit(code int) {
	p.assertNotOwner("Exit")
	errors.Log(p.queue.send(&exitCmd{code: code}))
	select {}
}

// WindowProxy is a handle to one window that can be used from any goroutine.
// See [ContextProxy].
type WindowProxy struct {
	id  events.WindowID
	ctx ContextProxy
}

// ID returns the window id.
func (wp WindowProxy) ID() events.WindowID { return wp.id }

// Context returns the proxy of the window's context.
func (wp WindowProxy) Context() ContextProxy { return wp.ctx }

func (wp WindowProxy) Destroy() error { return wp.ctx.DestroyWindow(wp.id) }

func (wp WindowProxy) SetVisible(visible bool) error {
	return wp.ctx.SetWindowVisible(wp.id, visible)
}

func (wp WindowProxy) SetImage(name string, img imagex.Image) error {
	return wp.ctx.SetWindowImage(wp.id, name, img)
}

func (wp WindowProxy) AddOverlay(name string, img imagex.Image, tr Transform) error {
	return wp.ctx.AddWindowOverlay(wp.id, name, img, tr)
}

func (wp WindowProxy) ClearOverlays() error { return wp.ctx.ClearWindowOverlays(wp.id) }

func (wp WindowProxy) SetOptions(f func(opts *WindowOptions)) error {
	return wp.ctx.SetWindowOptions(wp.id, f)
}

func (wp WindowProxy) SetTransform(tr Transform) error {
	return wp.ctx.SetWindowTransform(wp.id, tr)
}

func (wp WindowProxy) AddEventHandler(h WindowEventHandler) error {
	return wp.ctx.AddWindowEventHandler(wp.id, h)
}

func (wp WindowProxy) EventChannel() (*EventReceiver, error) {
	return wp.ctx.WindowEventChannel(wp.id)
}

func (wp WindowProxy) WaitUntilDestroyed() error {
	return wp.ctx.WaitUntilDestroyed(wp.id)
}

// RunFunctionWait runs f with the window on the event loop goroutine
// and waits for it to finish.
func (wp WindowProxy) RunFunctionWait(f func(w *Window)) error {
	res, err := RunFunctionWait(wp.ctx, func(c *Context) error {
		w, err := c.Window(wp.id)
		if err != nil {
			return err
		}
		f(w)
		return nil
	})
	if err != nil {
		return err
	}
	return res
}
