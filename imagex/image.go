// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"image"
	"image/color"
)

// Image is any pixel buffer described by an [Info].
// The data must be at least Info().ByteSize() bytes long.
type Image interface {
	Info() Info
	Data() []byte
}

// View is a borrowed image: it refers to memory owned by someone
// else, and is only valid while the owner keeps the memory unchanged.
type View struct {
	info Info
	data []byte
}

// NewView returns a [View] of the given data, validating it.
func NewView(info Info, data []byte) (View, error) {
	if err := info.Validate(len(data)); err != nil {
		return View{}, err
	}
	return View{info: info, data: data}, nil
}

func (v View) Info() Info   { return v.info }
func (v View) Data() []byte { return v.data }

// Box is an image that exclusively owns its data.
type Box struct {
	info Info
	data []byte
}

// NewBox returns a [Box] taking ownership of the given data.
// The caller must not use data afterwards.
func NewBox(info Info, data []byte) (*Box, error) {
	if err := info.Validate(len(data)); err != nil {
		return nil, err
	}
	return &Box{info: info, data: data}, nil
}

func (b *Box) Info() Info   { return b.info }
func (b *Box) Data() []byte { return b.data }

// Share converts the box into a [Shared] image without copying.
// The box must not be used afterwards.
func (b *Box) Share() *Shared {
	s := &Shared{info: b.info, data: b.data}
	b.data = nil
	return s
}

// Shared is an immutable image whose data may be shared
// between goroutines. Cloning it is O(1).
type Shared struct {
	info Info
	data []byte
}

// NewShared returns a [Shared] image of the given data.
// Nobody may modify data afterwards.
func NewShared(info Info, data []byte) (*Shared, error) {
	if err := info.Validate(len(data)); err != nil {
		return nil, err
	}
	return &Shared{info: info, data: data}, nil
}

func (s *Shared) Info() Info   { return s.info }
func (s *Shared) Data() []byte { return s.data }

// Clone returns another handle to the same data.
func (s *Shared) Clone() *Shared {
	return &Shared{info: s.info, data: s.data}
}

// Copy returns a tightly packed [Box] copy of the given image.
func Copy(img Image) *Box {
	in := img.Info()
	out := NewInfo(in.Format, in.Size.X, in.Size.Y)
	data := img.Data()
	if in.IsPacked() {
		return &Box{info: out, data: append([]byte(nil), data[:in.ByteSize()]...)}
	}
	bpp := in.Format.BytesPerPixel()
	dst := make([]byte, out.ByteSize())
	for y := range in.Size.Y {
		for x := range in.Size.X {
			si := in.Offset(x, y)
			di := out.Offset(x, y)
			copy(dst[di:di+bpp], data[si:si+bpp])
		}
	}
	return &Box{info: out, data: dst}
}

// ToOwned returns an image that is safe to hand to another goroutine.
// [Box] and [Shared] images are returned without copying; anything
// else, such as a [View], is copied into a new [Box].
func ToOwned(img Image) Image {
	switch im := img.(type) {
	case *Box:
		return im
	case *Shared:
		return im.Clone()
	}
	return Copy(img)
}

// RGBAAt returns the premultiplied color of the pixel at x, y.
func RGBAAt(img Image, x, y int) color.RGBA {
	in := img.Info()
	p := img.Data()[in.Offset(x, y):]
	var r, g, b, a uint8
	switch in.Format {
	case Mono8:
		r, g, b, a = p[0], p[0], p[0], 255
	case MonoAlpha8, MonoAlpha8Premultiplied:
		r, g, b, a = p[0], p[0], p[0], p[1]
	case Bgr8:
		r, g, b, a = p[2], p[1], p[0], 255
	case Bgra8, Bgra8Premultiplied:
		r, g, b, a = p[2], p[1], p[0], p[3]
	case Rgb8:
		r, g, b, a = p[0], p[1], p[2], 255
	case Rgba8, Rgba8Premultiplied:
		r, g, b, a = p[0], p[1], p[2], p[3]
	}
	if in.Format.HasAlpha() && in.Format.Alpha() == Unpremultiplied {
		r = premul(r, a)
		g = premul(g, a)
		b = premul(b, a)
	}
	return color.RGBA{r, g, b, a}
}

func premul(c, a uint8) uint8 {
	return uint8((uint32(c)*uint32(a) + 127) / 255)
}

// ToRGBA converts the given image into a new [image.RGBA].
func ToRGBA(img Image) *image.RGBA {
	in := img.Info()
	rgba := image.NewRGBA(image.Rectangle{Max: in.Size})
	for y := range in.Size.Y {
		for x := range in.Size.X {
			rgba.SetRGBA(x, y, RGBAAt(img, x, y))
		}
	}
	return rgba
}
