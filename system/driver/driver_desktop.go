// Copyright 2018 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !offscreen

package driver

import (
	"cogentcore.org/showimage/system"
	"cogentcore.org/showimage/system/driver/desktop"
)

func newPlatform() (system.Driver, system.Renderer, error) {
	return desktop.New()
}
