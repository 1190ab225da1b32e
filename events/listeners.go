// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "slices"

// ControlFlow is set by an event handler to control
// what happens after it returns.
type ControlFlow struct {
	// RemoveHandler removes the handler so that it is not
	// called for any future events.
	RemoveHandler bool

	// StopPropagation prevents the event from being passed to
	// the handlers registered after this one. The default action
	// for the event still runs.
	StopPropagation bool

	// PreventClose keeps the window open when set by a handler of a
	// close request. It has no effect for other events.
	PreventClose bool
}

type listener[H any] struct {
	id uint64
	h  H
}

// Listeners is an ordered list of event handlers of type H.
// Handlers are called in the order they were added.
// The zero value is ready to use.
type Listeners[H any] struct {
	list   []listener[H]
	lastID uint64
}

// Add appends a handler to the list.
func (ls *Listeners[H]) Add(h H) {
	ls.lastID++
	ls.list = append(ls.list, listener[H]{id: ls.lastID, h: h})
}

// Len returns the number of handlers.
func (ls *Listeners[H]) Len() int {
	return len(ls.list)
}

func (ls *Listeners[H]) index(id uint64) int {
	for i, l := range ls.list {
		if l.id == id {
			return i
		}
	}
	return -1
}

// Call calls fn for each handler in order, passing a fresh [ControlFlow]
// for the handler to set. Handlers that ask to be removed are dropped,
// and iteration stops at the first handler that stops propagation,
// in which case Call returns true.
//
// Call may be called again from inside a handler, for example when a
// handler causes another event to be dispatched. Handlers added while
// Call is running are not called for the current event, and handlers
// removed by a nested Call are not called again.
func (ls *Listeners[H]) Call(fn func(h H, cf *ControlFlow)) bool {
	for _, l := range slices.Clone(ls.list) {
		if ls.index(l.id) < 0 {
			continue
		}
		cf := ControlFlow{}
		fn(l.h, &cf)
		if cf.RemoveHandler {
			if i := ls.index(l.id); i >= 0 {
				ls.list = slices.Delete(ls.list, i, i+1)
			}
		}
		if cf.StopPropagation {
			return true
		}
	}
	return false
}
