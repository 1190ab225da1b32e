// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package oneshot provides a channel that transfers exactly one value
// from a single sender to a single receiver. It is used for all
// synchronous request / response exchanges with the owning goroutine.
package oneshot

import (
	"sync"
	"time"

	"cogentcore.org/showimage/base/errors"
)

var (
	// ErrNotReady is returned by [Receiver.TryRecv] when
	// no value has been sent yet.
	ErrNotReady = errors.New("oneshot: value not ready")

	// ErrDisconnected is returned when the other side of the
	// channel was closed before a value was sent.
	ErrDisconnected = errors.New("oneshot: channel disconnected")

	// ErrAlreadyRetrieved is returned when the value
	// has already been received.
	ErrAlreadyRetrieved = errors.New("oneshot: value already retrieved")

	// ErrTimeout is returned by [Receiver.RecvTimeout] and
	// [Receiver.RecvDeadline] when no value arrived in time.
	ErrTimeout = errors.New("oneshot: timed out waiting for value")
)

// States are the possible states of a channel.
type States int32

const (
	// NotReady means no value has been sent yet.
	NotReady States = iota

	// Finished means a value has been sent and is waiting to be received.
	Finished

	// Retrieved means the value has been received.
	Retrieved

	// Disconnected means one side was closed before a value was sent.
	Disconnected
)

func (s States) String() string {
	switch s {
	case NotReady:
		return "NotReady"
	case Finished:
		return "Finished"
	case Retrieved:
		return "Retrieved"
	case Disconnected:
		return "Disconnected"
	}
	return "Unknown"
}

type inner[T any] struct {
	mu    sync.Mutex
	cond  sync.Cond
	state States
	value T
}

// Sender is the sending side of a oneshot channel.
type Sender[T any] struct {
	in   *inner[T]
	sent bool
}

// Receiver is the receiving side of a oneshot channel.
type Receiver[T any] struct {
	in *inner[T]
}

// New returns a connected [Sender] and [Receiver] pair.
func New[T any]() (*Sender[T], *Receiver[T]) {
	in := &inner[T]{}
	in.cond.L = &in.mu
	return &Sender[T]{in: in}, &Receiver[T]{in: in}
}

// Send sends the value to the receiver. It never blocks. It returns
// [ErrDisconnected] if the receiver was closed. Send may only be called
// once; calling it again is a programmer error and panics.
func (s *Sender[T]) Send(v T) error {
	if s.sent {
		panic("oneshot: Send called more than once")
	}
	s.sent = true
	in := s.in
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.state == Disconnected {
		return ErrDisconnected
	}
	in.value = v
	in.state = Finished
	in.cond.Broadcast()
	return nil
}

// Close closes the sender. If no value was sent, the receiver
// observes [ErrDisconnected]. Close after Send is a no-op,
// so it is safe to defer.
func (s *Sender[T]) Close() {
	if s.sent {
		return
	}
	s.sent = true
	in := s.in
	in.mu.Lock()
	defer in.mu.Unlock()
	if in.state == NotReady {
		in.state = Disconnected
		in.cond.Broadcast()
	}
}

// State returns the current state of the channel.
func (r *Receiver[T]) State() States {
	r.in.mu.Lock()
	defer r.in.mu.Unlock()
	return r.in.state
}

// take must be called with the lock held.
func (r *Receiver[T]) take() (T, error) {
	in := r.in
	var zero T
	switch in.state {
	case Finished:
		v := in.value
		in.value = zero
		in.state = Retrieved
		return v, nil
	case Retrieved:
		return zero, ErrAlreadyRetrieved
	case Disconnected:
		return zero, ErrDisconnected
	}
	return zero, ErrNotReady
}

// TryRecv returns the value if it is available, without blocking.
func (r *Receiver[T]) TryRecv() (T, error) {
	r.in.mu.Lock()
	defer r.in.mu.Unlock()
	return r.take()
}

// Recv blocks until the value is sent or the sender is closed.
func (r *Receiver[T]) Recv() (T, error) {
	in := r.in
	in.mu.Lock()
	defer in.mu.Unlock()
	for in.state == NotReady {
		in.cond.Wait()
	}
	return r.take()
}

// RecvTimeout is like [Receiver.Recv] but gives up with [ErrTimeout]
// after the given duration.
func (r *Receiver[T]) RecvTimeout(d time.Duration) (T, error) {
	return r.RecvDeadline(time.Now().Add(d))
}

// RecvDeadline is like [Receiver.Recv] but gives up with [ErrTimeout]
// once the given deadline has passed.
func (r *Receiver[T]) RecvDeadline(deadline time.Time) (T, error) {
	in := r.in
	timer := time.AfterFunc(time.Until(deadline), func() {
		in.mu.Lock()
		in.cond.Broadcast()
		in.mu.Unlock()
	})
	defer timer.Stop()

	in.mu.Lock()
	defer in.mu.Unlock()
	for in.state == NotReady {
		if !time.Now().Before(deadline) {
			var zero T
			return zero, ErrTimeout
		}
		in.cond.Wait()
	}
	return r.take()
}

// Close closes the receiver. A later [Sender.Send] reports
// [ErrDisconnected] and any unreceived value is dropped.
func (r *Receiver[T]) Close() {
	in := r.in
	in.mu.Lock()
	defer in.mu.Unlock()
	var zero T
	in.value = zero
	if in.state != Retrieved {
		in.state = Disconnected
	}
}
