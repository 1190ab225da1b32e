// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"fmt"

	"cogentcore.org/showimage/base/errors"
	"cogentcore.org/showimage/events"
)

var (
	// ErrInvalidWindowID is matched by [InvalidWindowIDError] with [errors.Is].
	ErrInvalidWindowID = errors.New("invalid window id")

	// ErrEventLoopClosed is returned by proxy calls once the event loop
	// has stopped.
	ErrEventLoopClosed = errors.New("event loop closed")

	// ErrTimeout is returned by proxy calls that did not get a reply from
	// the event loop in time. Unlike [ErrEventLoopClosed], the loop may
	// still be running.
	ErrTimeout = errors.New("timed out waiting for the event loop")

	// ErrNoSuitableAdapter is returned when no GPU adapter can be found.
	ErrNoSuitableAdapter = errors.New("no suitable GPU adapter found")

	// ErrContextExists is returned by [NewContext] while another
	// context is alive in the process.
	ErrContextExists = errors.New("a context already exists in this process")
)

// InvalidWindowIDError is returned for operations on a window
// that does not exist (anymore).
type InvalidWindowIDError struct {
	ID events.WindowID
}

func (e *InvalidWindowIDError) Error() string {
	return fmt.Sprintf("invalid window id: %d", uint64(e.ID))
}

func (e *InvalidWindowIDError) Is(target error) bool {
	return target == ErrInvalidWindowID
}

// DeviceError is returned when the GPU device could not be created.
type DeviceError struct {
	Err error
}

func (e *DeviceError) Error() string {
	return "failed to create GPU device: " + e.Err.Error()
}

func (e *DeviceError) Unwrap() error { return e.Err }

// OsError is returned when the platform refuses to create a window.
type OsError struct {
	Err error
}

func (e *OsError) Error() string {
	return "failed to create window: " + e.Err.Error()
}

func (e *OsError) Unwrap() error { return e.Err }
