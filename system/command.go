// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"sync"

	"cogentcore.org/showimage/base/background"
	"cogentcore.org/showimage/base/oneshot"
	"cogentcore.org/showimage/base/queue"
	"cogentcore.org/showimage/events"
	"cogentcore.org/showimage/imagex"
)

// command is a request sent from a proxy to the event loop.
type command interface {
	// apply runs the command on the owning goroutine and sends the reply.
	apply(c *Context)

	// abort disconnects the reply of a command that will never run.
	abort()
}

// commandQueue is the channel from the proxies to the event loop.
// Once closed, sending fails with [ErrEventLoopClosed], so that every
// command is either applied or aborted.
type commandQueue struct {
	mu     sync.RWMutex
	closed bool
	q      queue.Queue[command]
	wake   func()
	tasks  *background.Tracker
}

func newCommandQueue(wake func(), tasks *background.Tracker) *commandQueue {
	cq := &commandQueue{wake: wake, tasks: tasks}
	cq.q.Init()
	return cq
}

func (cq *commandQueue) send(cmd command) error {
	cq.mu.RLock()
	defer cq.mu.RUnlock()
	if cq.closed {
		return ErrEventLoopClosed
	}
	cq.q.Send(cmd)
	cq.wake()
	return nil
}

// spawn runs task as a background task, unless the queue is closed.
// The queue is closed before the tasks are joined, so every task
// accepted here is joined at exit.
func (cq *commandQueue) spawn(task func()) error {
	cq.mu.RLock()
	defer cq.mu.RUnlock()
	if cq.closed {
		return ErrEventLoopClosed
	}
	cq.tasks.Spawn(task)
	return nil
}

func (cq *commandQueue) next() (command, bool) {
	return cq.q.Next()
}

func (cq *commandQueue) len() int {
	return int(cq.q.Len())
}

// close stops accepting commands and aborts all pending ones.
func (cq *commandQueue) close() {
	cq.mu.Lock()
	cq.closed = true
	cq.mu.Unlock()
	for {
		cmd, ok := cq.q.Next()
		if !ok {
			return
		}
		cmd.abort()
	}
}

type createWindowCmd struct {
	title string
	opts  WindowOptions
	reply *oneshot.Sender[result[events.WindowID]]
}

func (cmd *createWindowCmd) apply(c *Context) {
	w, err := c.CreateWindow(cmd.title, cmd.opts)
	if err != nil {
		cmd.reply.Send(result[events.WindowID]{err: err})
		return
	}
	cmd.reply.Send(result[events.WindowID]{v: w.ID()})
}

func (cmd *createWindowCmd) abort() { cmd.reply.Close() }

// windowCmd is a command acting on one window that replies with an error.
type windowCmd struct {
	id    events.WindowID
	f     func(w *Window) error
	reply *oneshot.Sender[error]
}

func (cmd *windowCmd) apply(c *Context) {
	w, err := c.Window(cmd.id)
	if err == nil {
		err = cmd.f(w)
	}
	cmd.reply.Send(err)
}

func (cmd *windowCmd) abort() { cmd.reply.Close() }

type destroyWindowCmd struct {
	id    events.WindowID
	reply *oneshot.Sender[error]
}

func (cmd *destroyWindowCmd) apply(c *Context) {
	cmd.reply.Send(c.DestroyWindow(cmd.id))
}

func (cmd *destroyWindowCmd) abort() { cmd.reply.Close() }

func setVisibleCmd(id events.WindowID, visible bool, reply *oneshot.Sender[error]) command {
	return &windowCmd{id: id, reply: reply, f: func(w *Window) error {
		w.SetVisible(visible)
		return nil
	}}
}

func setImageCmd(id events.WindowID, name string, img imagex.Image, reply *oneshot.Sender[error]) command {
	return &windowCmd{id: id, reply: reply, f: func(w *Window) error {
		return w.SetImage(name, img)
	}}
}

func addOverlayCmd(id events.WindowID, name string, img imagex.Image, tr Transform, reply *oneshot.Sender[error]) command {
	return &windowCmd{id: id, reply: reply, f: func(w *Window) error {
		return w.AddOverlay(name, img, tr)
	}}
}

func clearOverlaysCmd(id events.WindowID, reply *oneshot.Sender[error]) command {
	return &windowCmd{id: id, reply: reply, f: func(w *Window) error {
		w.ClearOverlays()
		return nil
	}}
}

func setOptionsCmd(id events.WindowID, f func(opts *WindowOptions), reply *oneshot.Sender[error]) command {
	return &windowCmd{id: id, reply: reply, f: func(w *Window) error {
		w.SetOptions(f)
		return nil
	}}
}

func setTransformCmd(id events.WindowID, tr Transform, reply *oneshot.Sender[error]) command {
	return &windowCmd{id: id, reply: reply, f: func(w *Window) error {
		w.SetTransform(tr)
		return nil
	}}
}

func addWindowHandlerCmd(id events.WindowID, h WindowEventHandler, reply *oneshot.Sender[error]) command {
	return &windowCmd{id: id, reply: reply, f: func(w *Window) error {
		w.AddEventHandler(h)
		return nil
	}}
}

type addContextHandlerCmd struct {
	h     EventHandler
	reply *oneshot.Sender[error]
}

func (cmd *addContextHandlerCmd) apply(c *Context) {
	c.AddEventHandler(cmd.h)
	cmd.reply.Send(nil)
}

func (cmd *addContextHandlerCmd) abort() { cmd.reply.Close() }

// runFunctionCmd runs an arbitrary function on the owning goroutine.
// The reply, if any, is sent by f itself; done is closed if f never runs.
type runFunctionCmd struct {
	f    func(c *Context)
	done func()
}

func (cmd *runFunctionCmd) apply(c *Context) { cmd.f(c) }

func (cmd *runFunctionCmd) abort() {
	if cmd.done != nil {
		cmd.done()
	}
}

type customCmd struct {
	value any
}

func (cmd *customCmd) apply(c *Context) {
	c.dispatch(events.CustomEvent{Value: cmd.value})
}

func (cmd *customCmd) abort() {}

type exitCmd struct {
	code int
}

func (cmd *exitCmd) apply(c *Context) { c.Exit(cmd.code) }

func (cmd *exitCmd) abort() {}

// result carries a value or an error through a oneshot channel.
type result[T any] struct {
	v   T
	err error
}
