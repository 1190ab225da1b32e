// Copyright 2018 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package queue provides a lock-free FIFO queue that many goroutines
// can send to while a single goroutine drains it.
package queue

import (
	"sync"
	"sync/atomic"
)

// Queue is a lock-free FIFO freelist-based queue.
// It must be initialized using [Queue.Init] or [New] before use.
// It is based on https://github.com/fyne-io/fyne/blob/master/internal/async/queue_canvasobject.go
type Queue[T any] struct {
	head atomic.Pointer[node[T]]
	tail atomic.Pointer[node[T]]
	len  atomic.Uint64
	pool sync.Pool
}

type node[T any] struct {
	next atomic.Pointer[node[T]]
	v    T
}

// New returns a new initialized [Queue].
func New[T any]() *Queue[T] {
	q := &Queue[T]{}
	q.Init()
	return q
}

// Init initializes the queue.
func (q *Queue[T]) Init() {
	q.pool.New = func() any { return &node[T]{} }
	head := &node[T]{}
	q.head.Store(head)
	q.tail.Store(head)
}

// Next removes and returns the next value in the queue.
// It returns false if the queue is empty.
func (q *Queue[T]) Next() (T, bool) {
	var first, last, firstnext *node[T]
	for {
		first = q.head.Load()
		last = q.tail.Load()
		firstnext = first.next.Load()
		if first == q.head.Load() {
			if first == last {
				if firstnext == nil {
					var zero T
					return zero, false
				}
				q.tail.CompareAndSwap(last, firstnext)
			} else {
				v := firstnext.v
				if q.head.CompareAndSwap(first, firstnext) {
					q.len.Add(^uint64(0))
					var zero T
					first.v = zero
					q.pool.Put(first)
					return v, true
				}
			}
		}
	}
}

// Send adds a value to the end of the queue.
func (q *Queue[T]) Send(v T) {
	i := q.pool.Get().(*node[T])
	i.next.Store(nil)
	i.v = v

	var last, lastnext *node[T]
	for {
		last = q.tail.Load()
		lastnext = last.next.Load()
		if q.tail.Load() == last {
			if lastnext == nil {
				if last.next.CompareAndSwap(lastnext, i) {
					q.tail.CompareAndSwap(last, i)
					q.len.Add(1)
					return
				}
			} else {
				q.tail.CompareAndSwap(last, lastnext)
			}
		}
	}
}

// Len returns the length of the queue.
func (q *Queue[T]) Len() uint64 {
	return q.len.Load()
}
