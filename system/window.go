// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"image"
	"image/color"

	"cogentcore.org/showimage/events"
	"cogentcore.org/showimage/geom"
	"cogentcore.org/showimage/imagex"
)

// WindowEventHandler is an event handler for one window.
type WindowEventHandler func(w *Window, ev events.Event, cf *events.ControlFlow)

// layer is an uploaded image with its name.
type layer struct {
	name      string
	tex       Texture
	transform Transform
}

// Window is a window of a [Context]. It must only be used from the event
// loop goroutine, typically in an event handler or a function passed to
// [ContextProxy.RunFunctionWait]. Other goroutines use a [WindowProxy].
type Window struct {
	ctx     *Context
	id      events.WindowID
	title   string
	native  NativeWindow
	surface Surface
	opts    WindowOptions
	size    image.Point
	visible bool

	image    *layer
	overlays []*layer

	// transform is the user zoom and pan.
	transform Transform
	uniforms  UniformsBuffer

	handlers  events.Listeners[WindowEventHandler]
	receivers []*EventReceiver

	redraw    bool
	destroyed bool
}

func (w *Window) ID() events.WindowID { return w.id }

func (w *Window) Title() string { return w.title }

// Context returns the context that owns the window.
func (w *Window) Context() *Context { return w.ctx }

// Proxy returns a proxy for using the window from other goroutines.
func (w *Window) Proxy() WindowProxy {
	return WindowProxy{id: w.id, ctx: w.ctx.Proxy()}
}

// Native returns the platform window.
func (w *Window) Native() NativeWindow { return w.native }

// Options returns a copy of the window options.
func (w *Window) Options() WindowOptions { return w.opts }

// Size returns the inner size of the window in pixels.
func (w *Window) Size() image.Point { return w.size }

func (w *Window) IsVisible() bool { return w.visible }

// SetVisible shows or hides the window.
func (w *Window) SetVisible(visible bool) {
	w.visible = visible
	w.native.SetVisible(visible)
	if visible {
		w.RequestRedraw()
	}
}

// SetImage sets the image displayed in the window. Images that do not own
// their data are copied first, so the caller may reuse the buffer.
func (w *Window) SetImage(name string, img imagex.Image) error {
	tex, err := w.upload(img)
	if err != nil {
		return err
	}
	if w.image != nil {
		w.image.tex.Release()
	}
	w.image = &layer{name: name, tex: tex}
	w.uniforms.MarkDirty()
	w.RequestRedraw()
	return nil
}

// ImageName returns the name of the displayed image, or "" if there is none.
func (w *Window) ImageName() string {
	if w.image == nil {
		return ""
	}
	return w.image.name
}

// ImageInfo returns the info of the displayed image.
func (w *Window) ImageInfo() (imagex.Info, bool) {
	if w.image == nil {
		return imagex.Info{}, false
	}
	return w.image.tex.Info(), true
}

// AddOverlay adds an image drawn on top of the window image. Overlays are
// drawn in the order they were added, each placed by its own transform
// in normalized window coordinates.
func (w *Window) AddOverlay(name string, img imagex.Image, tr Transform) error {
	tex, err := w.upload(img)
	if err != nil {
		return err
	}
	w.overlays = append(w.overlays, &layer{name: name, tex: tex, transform: tr})
	w.RequestRedraw()
	return nil
}

// OverlayNames returns the names of the overlays in drawing order.
func (w *Window) OverlayNames() []string {
	names := make([]string, len(w.overlays))
	for i, o := range w.overlays {
		names[i] = o.name
	}
	return names
}

// ClearOverlays removes all overlays.
func (w *Window) ClearOverlays() {
	for _, o := range w.overlays {
		o.tex.Release()
	}
	w.overlays = nil
	w.RequestRedraw()
}

func (w *Window) upload(img imagex.Image) (Texture, error) {
	if err := img.Info().Validate(len(img.Data())); err != nil {
		return nil, err
	}
	return w.ctx.renderer.UploadImage(imagex.ToOwned(img))
}

// SetOptions calls f with a copy of the options and applies the result.
func (w *Window) SetOptions(f func(opts *WindowOptions)) {
	opts := w.opts
	f(&opts)
	if opts.PreserveAspectRatio != w.opts.PreserveAspectRatio {
		w.uniforms.MarkDirty()
	}
	w.opts = opts
	w.native.SetOptions(&opts)
	w.RequestRedraw()
}

// SetOverlaysVisible sets whether overlays are drawn.
func (w *Window) SetOverlaysVisible(visible bool) {
	w.SetOptions(func(opts *WindowOptions) { opts.OverlaysVisible = visible })
}

// Transform returns the user zoom and pan of the image.
func (w *Window) Transform() Transform { return w.transform }

// SetTransform sets the user zoom and pan of the image.
func (w *Window) SetTransform(tr Transform) {
	w.transform = tr
	w.uniforms.MarkDirty()
	w.RequestRedraw()
}

// ResetTransform removes any zoom and pan.
func (w *Window) ResetTransform() {
	w.SetTransform(Identity())
}

// Zoom scales the image by factor, keeping the point around (in normalized
// window coordinates) fixed.
func (w *Window) Zoom(factor float32, around geom.Vec2) {
	u := w.Uniforms()
	tr := w.transform
	tr.Scale = tr.Scale.MulScalar(factor)
	tr.Offset = tr.Offset.Add(around.Sub(u.Offset).MulScalar(1 - factor))
	w.SetTransform(tr)
}

// Pan moves the image by delta in normalized window coordinates.
func (w *Window) Pan(delta geom.Vec2) {
	tr := w.transform
	tr.Offset = tr.Offset.Add(delta)
	w.SetTransform(tr)
}

// Uniforms computes the current uniforms of the window image.
func (w *Window) Uniforms() WindowUniforms {
	var isz image.Point
	if w.image != nil {
		isz = w.image.tex.Info().Size
	}
	return ComputeUniforms(w.size, isz, w.opts.PreserveAspectRatio, w.transform)
}

// MarkDirty marks the uniforms as needing an upload before the next draw.
func (w *Window) MarkDirty() {
	w.uniforms.MarkDirty()
}

// IsDirty returns whether the uniforms need an upload.
func (w *Window) IsDirty() bool {
	return w.uniforms.IsDirty()
}

// AddEventHandler adds an event handler to the window.
func (w *Window) AddEventHandler(h WindowEventHandler) {
	w.handlers.Add(h)
}

// Destroy destroys the window.
func (w *Window) Destroy() error {
	return w.ctx.DestroyWindow(w.id)
}

// RequestRedraw makes the window draw itself in the current
// or next iteration of the event loop.
func (w *Window) RequestRedraw() {
	w.redraw = true
}

// render draws the window. It does nothing without an image.
func (w *Window) render() error {
	if w.image == nil {
		return nil
	}
	if _, err := w.uniforms.Update(w.Uniforms, w.surface.WriteUniforms); err != nil {
		return err
	}
	return w.surface.Render(w.frame(w.opts.BackgroundColor, w.opts.OverlaysVisible))
}

func (w *Window) frame(bg color.RGBA, overlays bool) *Frame {
	fr := &Frame{Background: bg, Image: w.image.tex}
	if overlays {
		for _, o := range w.overlays {
			fr.Overlays = append(fr.Overlays, FrameOverlay{
				Texture:  o.tex,
				Uniforms: OverlayUniforms(o.tex.Info().Size, o.transform),
			})
		}
	}
	return fr
}

// Capture draws the window image at its own resolution on a transparent
// background, optionally with the overlays. It returns nil if the window
// has no image.
func (w *Window) Capture(overlays bool) (*image.RGBA, error) {
	if w.image == nil {
		return nil, nil
	}
	size := w.image.tex.Info().Size
	u := ComputeUniforms(size, size, false, Identity())
	return w.ctx.renderer.RenderToImage(size, w.frame(color.RGBA{}, overlays), u)
}

// release frees all resources of a destroyed window.
func (w *Window) release() {
	w.destroyed = true
	if w.image != nil {
		w.image.tex.Release()
		w.image = nil
	}
	for _, o := range w.overlays {
		o.tex.Release()
	}
	w.overlays = nil
	w.surface.Release()
	w.native.Destroy()
	for _, er := range w.receivers {
		er.disconnect()
	}
	w.receivers = nil
}
