// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package events

import "fmt"

// LoopNewEvents is sent at the start of each event loop tick.
type LoopNewEvents struct{}

func (LoopNewEvents) Type() Types { return NewEvents }

// LoopMainEventsCleared is sent when the platform events and
// commands of a tick have all been handled.
type LoopMainEventsCleared struct{}

func (LoopMainEventsCleared) Type() Types { return MainEventsCleared }

// LoopRedrawEventsCleared is sent after the windows of a tick
// have been redrawn.
type LoopRedrawEventsCleared struct{}

func (LoopRedrawEventsCleared) Type() Types { return RedrawEventsCleared }

// LoopAllWindowsClosed is sent once the last window is destroyed.
type LoopAllWindowsClosed struct{}

func (LoopAllWindowsClosed) Type() Types { return AllWindowsClosed }

// CustomEvent is a user-specified event carrying an arbitrary value.
// It is dispatched to the context handlers only.
type CustomEvent struct {
	Value any
}

func (CustomEvent) Type() Types { return Custom }

func (ce CustomEvent) String() string {
	return fmt.Sprintf("%v{Value: %v}", Custom, ce.Value)
}
