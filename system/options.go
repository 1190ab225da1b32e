// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"image"
	"image/color"
	"time"

	"cogentcore.org/showimage/geom"
)

// WindowOptions are the options for creating a window.
// They can be changed later with [Window.SetOptions].
type WindowOptions struct {
	// PreserveAspectRatio scales the image to fit the window without
	// distorting it. Otherwise the image is stretched over the whole window.
	PreserveAspectRatio bool

	// BackgroundColor fills the parts of the window not covered by the image.
	BackgroundColor color.RGBA

	// StartHidden creates the window invisible.
	StartHidden bool

	// Size is the initial inner size of the window.
	// The zero value lets the driver decide.
	Size image.Point

	Resizable  bool
	Borderless bool
	Fullscreen bool

	// OverlaysVisible draws the overlays on top of the image.
	OverlaysVisible bool

	// DefaultControls enables zooming with the mouse wheel, panning by
	// dragging with the left button, and resetting the view with R.
	DefaultControls bool
}

// DefaultWindowOptions returns the default [WindowOptions].
func DefaultWindowOptions() WindowOptions {
	return WindowOptions{
		PreserveAspectRatio: true,
		BackgroundColor:     color.RGBA{A: 255},
		Resizable:           true,
		OverlaysVisible:     true,
		DefaultControls:     true,
	}
}

// Transform places an image in normalized window coordinates,
// where (0, 0) is the top left corner and (1, 1) the bottom right.
type Transform struct {
	Offset geom.Vec2
	Scale  geom.Vec2
}

// Identity returns the transform that leaves positions unchanged.
func Identity() Transform {
	return Transform{Scale: geom.V2(1, 1)}
}

// IsIdentity returns whether t is the identity transform.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// ContextOptions configure a [Context].
type ContextOptions struct {
	// Timeout is how long blocking proxy calls wait for a reply.
	// Zero waits forever.
	Timeout time.Duration

	// ExitWithLastWindow exits the process once the last window is closed.
	ExitWithLastWindow bool

	// SaveDir is the directory where Control+S saves window images.
	// Empty means the working directory.
	SaveDir string
}

// DefaultTimeout is the default [ContextOptions.Timeout].
const DefaultTimeout = 5 * time.Second

// DefaultContextOptions returns the default [ContextOptions].
func DefaultContextOptions() ContextOptions {
	return ContextOptions{Timeout: DefaultTimeout}
}
