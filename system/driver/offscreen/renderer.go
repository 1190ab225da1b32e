// Copyright 2023 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package offscreen

import (
	"encoding/binary"
	"image"
	"image/color"
	"math"

	"cogentcore.org/showimage/base/errors"
	"cogentcore.org/showimage/events"
	"cogentcore.org/showimage/geom"
	"cogentcore.org/showimage/imagex"
	"cogentcore.org/showimage/system"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Renderer is a [system.Renderer] that draws on the CPU into in-memory
// frame buffers, using nearest neighbor sampling like the GPU renderer.
type Renderer struct {
	surfaces map[events.WindowID]*Surface
	textures int
	released bool
}

var _ system.Renderer = (*Renderer)(nil)

// NewRenderer returns a new CPU renderer.
func NewRenderer() *Renderer {
	return &Renderer{surfaces: map[events.WindowID]*Surface{}}
}

func (r *Renderer) NewSurface(nw system.NativeWindow, size image.Point) (system.Surface, error) {
	w, ok := nw.(*Window)
	if !ok {
		return nil, errors.New("offscreen: the CPU renderer can only draw into offscreen windows")
	}
	s := &Surface{renderer: r, id: w.id, fb: image.NewRGBA(image.Rectangle{Max: size})}
	r.surfaces[w.id] = s
	return s, nil
}

func (r *Renderer) UploadImage(img imagex.Image) (system.Texture, error) {
	r.textures++
	return &Texture{renderer: r, info: img.Info(), rgba: imagex.ToRGBA(img)}, nil
}

func (r *Renderer) RenderToImage(size image.Point, fr *system.Frame, uniforms system.WindowUniforms) (*image.RGBA, error) {
	dst := image.NewRGBA(image.Rectangle{Max: size})
	drawFrame(dst, fr, uniforms)
	return dst, nil
}

func (r *Renderer) Release() {
	r.released = true
}

// Surface returns the surface of the window, or nil.
func (r *Renderer) Surface(id events.WindowID) *Surface {
	return r.surfaces[id]
}

// Textures returns the number of live textures.
func (r *Renderer) Textures() int {
	return r.textures
}

// Released returns whether [Renderer.Release] has been called.
func (r *Renderer) Released() bool {
	return r.released
}

// Surface is an in-memory frame buffer for one window.
type Surface struct {
	renderer *Renderer
	id       events.WindowID
	fb       *image.RGBA
	uniforms system.WindowUniforms

	// UniformUploads is the number of times uniforms were uploaded.
	UniformUploads int

	// Frames is the number of frames rendered.
	Frames int

	Released bool
}

func (s *Surface) Resize(size image.Point) error {
	s.fb = image.NewRGBA(image.Rectangle{Max: size})
	return nil
}

func (s *Surface) WriteUniforms(data []byte) error {
	if len(data) != system.UniformsSize {
		return errors.New("offscreen: invalid uniforms buffer size")
	}
	vec := func(off int) geom.Vec2 {
		return geom.V2(math.Float32frombits(binary.LittleEndian.Uint32(data[off:])),
			math.Float32frombits(binary.LittleEndian.Uint32(data[off+4:])))
	}
	s.uniforms = system.WindowUniforms{Offset: vec(0), Scale: vec(8), ImageSize: vec(16)}
	s.UniformUploads++
	return nil
}

// Uniforms returns the last uploaded uniforms.
func (s *Surface) Uniforms() system.WindowUniforms {
	return s.uniforms
}

func (s *Surface) Render(fr *system.Frame) error {
	drawFrame(s.fb, fr, s.uniforms)
	s.Frames++
	return nil
}

// Image returns the frame buffer with the last rendered frame.
func (s *Surface) Image() *image.RGBA {
	return s.fb
}

func (s *Surface) Release() {
	s.Released = true
	delete(s.renderer.surfaces, s.id)
}

// Texture is an image uploaded to the CPU renderer.
type Texture struct {
	renderer *Renderer
	info     imagex.Info
	rgba     *image.RGBA
	released bool
}

func (t *Texture) Info() imagex.Info { return t.info }

func (t *Texture) Release() {
	if !t.released {
		t.released = true
		t.renderer.textures--
	}
}

// drawFrame draws the frame into dst.
func drawFrame(dst *image.RGBA, fr *system.Frame, uniforms system.WindowUniforms) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(fr.Background), image.Point{}, draw.Src)
	if fr.Image == nil {
		return
	}
	drawTexture(dst, fr.Image.(*Texture), uniforms)
	for _, o := range fr.Overlays {
		drawTexture(dst, o.Texture.(*Texture), o.Uniforms)
	}
}

// drawTexture maps the texture to the rectangle given by the uniforms in
// normalized coordinates of dst.
func drawTexture(dst *image.RGBA, t *Texture, u system.WindowUniforms) {
	dsz := dst.Bounds().Size()
	ssz := t.rgba.Bounds().Size()
	if ssz.X == 0 || ssz.Y == 0 {
		return
	}
	sx := float64(u.Scale.X) * float64(dsz.X) / float64(ssz.X)
	sy := float64(u.Scale.Y) * float64(dsz.Y) / float64(ssz.Y)
	s2d := f64.Aff3{sx, 0, float64(u.Offset.X) * float64(dsz.X), 0, sy, float64(u.Offset.Y) * float64(dsz.Y)}
	draw.NearestNeighbor.Transform(dst, s2d, t.rgba, t.rgba.Bounds(), draw.Over, nil)
}

// ColorAt returns the color of the last rendered frame at x, y.
func (s *Surface) ColorAt(x, y int) color.RGBA {
	return s.fb.RGBAAt(x, y)
}
