// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"
	"image/color"
	"log/slog"
	"slices"

	"cogentcore.org/showimage/base/errors"
	"cogentcore.org/showimage/system"
	"github.com/cogentcore/webgpu/wgpu"
)

// SurfaceSource is implemented by native windows that WebGPU can
// present to.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

// Surface renders frames to a window.
type Surface struct {
	renderer *Renderer
	surface  *wgpu.Surface
	config   *wgpu.SurfaceConfiguration
	uniforms *uniformBuffer

	// overlays is a pool of uniform buffers for drawing overlays,
	// grown as needed.
	overlays []*uniformBuffer
}

// preferredFormats are the surface formats used when available.
// Non sRGB formats keep the colors of the image data unchanged.
var preferredFormats = []wgpu.TextureFormat{
	wgpu.TextureFormatBGRA8Unorm,
	wgpu.TextureFormatRGBA8Unorm,
}

// SurfaceFormat picks the format to configure a surface with.
func SurfaceFormat(available []wgpu.TextureFormat) wgpu.TextureFormat {
	for _, f := range preferredFormats {
		if slices.Contains(available, f) {
			return f
		}
	}
	if len(available) == 0 {
		return wgpu.TextureFormatBGRA8Unorm
	}
	return available[0]
}

func newSurface(r *Renderer, ws *wgpu.Surface, size image.Point) (*Surface, error) {
	gp := r.gpu
	caps := ws.GetCapabilities(gp.Adapter)
	s := &Surface{renderer: r, surface: ws}
	alpha := wgpu.CompositeAlphaModeAuto
	if len(caps.AlphaModes) > 0 {
		alpha = caps.AlphaModes[0]
	}
	s.config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      SurfaceFormat(caps.Formats),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   alpha,
	}
	var err error
	s.uniforms, err = newUniformBuffer(gp, r.pipeline, "window")
	if err != nil {
		return nil, err
	}
	if err := s.Resize(size); err != nil {
		s.Release()
		return nil, err
	}
	return s, nil
}

// Resize reconfigures the surface for the given window size.
// A zero size, as for a minimized window, leaves it unconfigured.
func (s *Surface) Resize(size image.Point) error {
	s.config.Width = uint32(max(size.X, 0))
	s.config.Height = uint32(max(size.Y, 0))
	if !s.configured() {
		return nil
	}
	s.surface.Configure(s.renderer.gpu.Adapter, s.renderer.gpu.Device, s.config)
	return nil
}

func (s *Surface) configured() bool {
	return s.config.Width > 0 && s.config.Height > 0
}

func (s *Surface) WriteUniforms(data []byte) error {
	if len(data) != system.UniformsSize {
		return errors.New("gpu: invalid uniforms buffer size")
	}
	s.uniforms.write(s.renderer.gpu, data)
	return nil
}

// Render draws the frame and presents it.
func (s *Surface) Render(fr *system.Frame) error {
	if !s.configured() {
		return nil
	}
	gp := s.renderer.gpu
	tex, err := s.surface.GetCurrentTexture()
	if err != nil {
		// the surface is usually outdated after a resize: configure it
		// again so the next frame succeeds
		slog.Debug("gpu: surface texture unavailable, reconfiguring", "err", err)
		s.surface.Configure(gp.Adapter, gp.Device, s.config)
		return &system.DeviceError{Err: err}
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		return &system.DeviceError{Err: err}
	}
	defer view.Release()

	overlays, err := s.overlayBindings(fr.Overlays)
	if err != nil {
		return err
	}
	if err := s.renderer.encode(view, s.config.Format, fr, s.uniforms.bindGroup, overlays, nil); err != nil {
		return err
	}
	s.surface.Present()
	return nil
}

// overlayBindings writes the overlay uniforms into the pool.
func (s *Surface) overlayBindings(overlays []system.FrameOverlay) ([]*overlayBinding, error) {
	gp := s.renderer.gpu
	obs := make([]*overlayBinding, 0, len(overlays))
	for i, o := range overlays {
		tx, ok := o.Texture.(*Texture)
		if !ok {
			return nil, errors.New("gpu: overlay texture was not created by this renderer")
		}
		if i == len(s.overlays) {
			ub, err := newUniformBuffer(gp, s.renderer.pipeline, "overlay")
			if err != nil {
				return nil, err
			}
			s.overlays = append(s.overlays, ub)
		}
		ub := s.overlays[i]
		ub.write(gp, o.Uniforms.Bytes())
		obs = append(obs, &overlayBinding{texture: tx, uniforms: ub})
	}
	return obs, nil
}

func (s *Surface) Release() {
	for _, ub := range s.overlays {
		ub.release()
	}
	s.overlays = nil
	if s.uniforms != nil {
		s.uniforms.release()
		s.uniforms = nil
	}
	if s.surface != nil {
		s.surface.Release()
		s.surface = nil
	}
}

// ClearColor returns the WebGPU clear value for a background color.
func ClearColor(c color.RGBA) wgpu.Color {
	return wgpu.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}
