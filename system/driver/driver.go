// Copyright 2018 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package driver selects the platform [system.Driver] and [system.Renderer].
package driver

import (
	"log/slog"
	"os"
	"slices"
	"testing"

	"cogentcore.org/showimage/system"
	"cogentcore.org/showimage/system/driver/offscreen"
)

// NoGUI forces the offscreen driver.
var NoGUI bool

// Offscreen reports whether the offscreen driver is used, which is the
// case in tests and when the program is run with -nogui.
func Offscreen() bool {
	return NoGUI || testing.Testing() || slices.Contains(os.Args, "-nogui")
}

// New returns the driver and renderer for the current platform.
func New() (system.Driver, system.Renderer, error) {
	if Offscreen() {
		slog.Debug("using offscreen driver")
		return offscreen.NewDriver(), offscreen.NewRenderer(), nil
	}
	return newPlatform()
}

// Run runs f with a proxy for a new context using the platform driver,
// while the calling goroutine, which should be the main goroutine, runs
// the event loop. The process exits when f returns.
func Run(opts system.ContextOptions, f func(p system.ContextProxy)) error {
	drv, rend, err := New()
	if err != nil {
		return err
	}
	return system.Run(drv, rend, opts, f)
}
