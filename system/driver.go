// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"image"
	"image/color"

	"cogentcore.org/showimage/events"
	"cogentcore.org/showimage/imagex"
)

// Driver is the platform windowing backend. All methods except
// [Driver.Wake] are only called from the owning goroutine.
type Driver interface {
	// Init prepares the driver. Raw platform events are passed to sink,
	// on the owning goroutine, from within PollEvents and WaitEvents.
	Init(sink func(raw events.Raw)) error

	// CreateWindow creates a new platform window with the given id.
	CreateWindow(id events.WindowID, title string, opts *WindowOptions) (NativeWindow, error)

	// PollEvents delivers all pending platform events without blocking.
	PollEvents()

	// WaitEvents blocks until at least one platform event is available
	// or Wake is called, and then delivers all pending events.
	WaitEvents()

	// Wake makes a blocked WaitEvents return. It is safe to call from any goroutine.
	Wake()

	// Terminate releases all platform resources.
	Terminate()
}

// NativeWindow is a platform window created by a [Driver].
type NativeWindow interface {
	// Size returns the inner size of the window in physical pixels.
	Size() image.Point

	// SetVisible shows or hides the window.
	SetVisible(visible bool)

	// SetOptions applies the platform side of the options, such as
	// resizability, decorations and fullscreen.
	SetOptions(opts *WindowOptions)

	// Destroy closes the window.
	Destroy()
}

// Renderer draws images into windows. It is owned by the [Context]
// and only used from the owning goroutine.
type Renderer interface {
	// NewSurface creates a surface to render into the given window.
	NewSurface(nw NativeWindow, size image.Point) (Surface, error)

	// UploadImage creates a texture for the image. The image data must
	// not change while the texture is alive.
	UploadImage(img imagex.Image) (Texture, error)

	// RenderToImage draws the frame into a new image of the given size,
	// placing the frame image with the given uniforms.
	RenderToImage(size image.Point, fr *Frame, uniforms WindowUniforms) (*image.RGBA, error)

	// Release frees all renderer resources.
	Release()
}

// Surface is the render target of one window.
type Surface interface {
	// Resize reconfigures the surface for a new window size.
	Resize(size image.Point) error

	// WriteUniforms uploads serialized [WindowUniforms] for the base image.
	WriteUniforms(data []byte) error

	// Render draws the frame to the window.
	Render(fr *Frame) error

	// Release frees the surface.
	Release()
}

// Texture is an image uploaded to a [Renderer].
type Texture interface {
	Info() imagex.Info
	Release()
}

// Frame is everything needed to draw one window.
type Frame struct {
	Background color.RGBA

	// Image is drawn with the uniforms last passed to [Surface.WriteUniforms].
	Image Texture

	// Overlays are drawn in order on top of the image.
	Overlays []FrameOverlay
}

// FrameOverlay is one overlay to draw, with its own uniforms.
type FrameOverlay struct {
	Texture  Texture
	Uniforms WindowUniforms
}
