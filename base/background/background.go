// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package background tracks fire-and-forget goroutines so that
// they can all be joined before the process exits.
package background

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"slices"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Task is a handle to one tracked goroutine.
type Task struct {
	done atomic.Bool
}

// Done returns whether the task has finished running.
// It never blocks.
func (t *Task) Done() bool {
	return t.done.Load()
}

// Tracker is a collection of running [Task]s.
// The zero value is ready to use.
type Tracker struct {
	group errgroup.Group

	mu    sync.Mutex
	tasks []*Task
}

// Spawn runs f on a new goroutine and tracks it.
// A panic in f is recovered and logged, and is returned
// as an error from [Tracker.JoinAll].
func (tr *Tracker) Spawn(f func()) *Task {
	t := &Task{}
	tr.mu.Lock()
	tr.tasks = append(tr.tasks, t)
	tr.mu.Unlock()
	tr.group.Go(func() (err error) {
		defer t.done.Store(true)
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("background task panicked: %v", r)
				slog.Error(err.Error(), "stack", string(debug.Stack()))
			}
		}()
		f()
		return nil
	})
	return t
}

// Clean forgets about all finished tasks. It is called
// periodically so that the task list does not grow forever.
func (tr *Tracker) Clean() {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.tasks = slices.DeleteFunc(tr.tasks, func(t *Task) bool {
		return t.Done()
	})
}

// Len returns the number of tracked tasks, including finished
// tasks that have not been cleaned yet.
func (tr *Tracker) Len() int {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return len(tr.tasks)
}

// JoinAll blocks until every spawned task has finished,
// then forgets about them. It returns the first panic
// recovered from a task, if any.
func (tr *Tracker) JoinAll() error {
	err := tr.group.Wait()
	tr.Clean()
	return err
}
