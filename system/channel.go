// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"slices"
	"sync"
	"time"

	"cogentcore.org/showimage/events"
	"github.com/petermattis/goid"
)

// EventReceiver receives the events forwarded by an event channel
// handler. The buffer is unbounded, so the event loop never blocks on a
// slow receiver. Closing the receiver removes the handler the next time
// it is called.
type EventReceiver struct {
	owner int64

	mu           sync.Mutex
	cond         sync.Cond
	buf          []events.Event
	closed       bool
	disconnected bool
}

func newEventReceiver(owner int64) *EventReceiver {
	er := &EventReceiver{owner: owner}
	er.cond.L = &er.mu
	return er
}

// send queues an event. It returns false once the receiver is closed.
func (er *EventReceiver) send(ev events.Event) bool {
	er.mu.Lock()
	defer er.mu.Unlock()
	if er.closed {
		return false
	}
	er.buf = append(er.buf, ev)
	er.cond.Broadcast()
	return true
}

func removeReceiver(list []*EventReceiver, er *EventReceiver) []*EventReceiver {
	return slices.DeleteFunc(list, func(r *EventReceiver) bool { return r == er })
}

// disconnect is called when the event loop stops.
func (er *EventReceiver) disconnect() {
	er.mu.Lock()
	er.disconnected = true
	er.cond.Broadcast()
	er.mu.Unlock()
}

// Recv blocks until an event is available. It returns [ErrEventLoopClosed]
// once the event loop has stopped and all queued events were received.
// It panics when called from the event loop goroutine.
func (er *EventReceiver) Recv() (events.Event, error) {
	if goid.Get() == er.owner {
		panic("system: EventReceiver.Recv called from the event loop goroutine; this would deadlock")
	}
	er.mu.Lock()
	defer er.mu.Unlock()
	for len(er.buf) == 0 && !er.disconnected && !er.closed {
		er.cond.Wait()
	}
	return er.pop()
}

// RecvTimeout is like [EventReceiver.Recv], but gives up with
// [ErrTimeout] after the given duration.
func (er *EventReceiver) RecvTimeout(d time.Duration) (events.Event, error) {
	if goid.Get() == er.owner {
		panic("system: EventReceiver.RecvTimeout called from the event loop goroutine; this would deadlock")
	}
	expired := false
	t := time.AfterFunc(d, func() {
		er.mu.Lock()
		expired = true
		er.cond.Broadcast()
		er.mu.Unlock()
	})
	defer t.Stop()
	er.mu.Lock()
	defer er.mu.Unlock()
	for len(er.buf) == 0 && !er.disconnected && !er.closed && !expired {
		er.cond.Wait()
	}
	if len(er.buf) == 0 && expired {
		return nil, ErrTimeout
	}
	return er.pop()
}

// TryRecv returns the next event without blocking, or false if there is none.
func (er *EventReceiver) TryRecv() (events.Event, bool) {
	er.mu.Lock()
	defer er.mu.Unlock()
	ev, err := er.pop()
	return ev, err == nil
}

func (er *EventReceiver) pop() (events.Event, error) {
	if len(er.buf) == 0 {
		return nil, ErrEventLoopClosed
	}
	ev := er.buf[0]
	er.buf[0] = nil
	er.buf = er.buf[1:]
	return ev, nil
}

// Close stops receiving events. Events not yet received are dropped.
func (er *EventReceiver) Close() {
	er.mu.Lock()
	er.closed = true
	er.buf = nil
	er.cond.Broadcast()
	er.mu.Unlock()
}
