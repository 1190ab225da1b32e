// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"encoding/binary"
	"image"
	"math"

	"cogentcore.org/showimage/geom"
)

// UniformsSize is the size in bytes of serialized [WindowUniforms].
// The layout matches the shader struct:
//
//	struct WindowUniforms {
//		offset: vec2<f32>,     // byte 0
//		scale: vec2<f32>,      // byte 8
//		image_size: vec2<f32>, // byte 16
//	}
//
// padded to 32 bytes, little endian.
const UniformsSize = 32

// WindowUniforms place an image inside a window.
type WindowUniforms struct {
	// Offset of the top left image corner in normalized window coordinates.
	Offset geom.Vec2

	// Scale is the size of the image in normalized window coordinates.
	Scale geom.Vec2

	// ImageSize is the size of the image in pixels.
	ImageSize geom.Vec2
}

// Bytes serializes the uniforms in the GPU layout.
func (u WindowUniforms) Bytes() []byte {
	b := make([]byte, UniformsSize)
	put := func(off int, v geom.Vec2) {
		binary.LittleEndian.PutUint32(b[off:], math.Float32bits(v.X))
		binary.LittleEndian.PutUint32(b[off+4:], math.Float32bits(v.Y))
	}
	put(0, u.Offset)
	put(8, u.Scale)
	put(16, u.ImageSize)
	return b
}

// ComputeUniforms returns the uniforms for an image of the given size in
// a window of the given size. An empty image size means there is no image.
// With preserveAspect the image is scaled to fit and centered, otherwise
// it is stretched. The user transform tr is applied last: its scale
// multiplies the scale and its offset is added to the offset.
func ComputeUniforms(windowSize, imageSize image.Point, preserveAspect bool, tr Transform) WindowUniforms {
	u := WindowUniforms{Scale: geom.V2(1, 1)}
	if imageSize.X <= 0 || imageSize.Y <= 0 {
		return u
	}
	u.ImageSize = geom.FromPoint(imageSize)
	if preserveAspect && windowSize.X > 0 && windowSize.Y > 0 {
		ratio := u.ImageSize.Div(geom.FromPoint(windowSize))
		if ratio.X >= ratio.Y {
			u.Scale = geom.V2(1, ratio.Y/ratio.X)
		} else {
			u.Scale = geom.V2(ratio.X/ratio.Y, 1)
		}
		u.Offset = geom.V2(0.5, 0.5).Sub(u.Scale.MulScalar(0.5))
	}
	u.Scale = u.Scale.Mul(tr.Scale)
	u.Offset = u.Offset.Add(tr.Offset)
	return u
}

// OverlayUniforms returns the uniforms for an overlay of the given size,
// which is placed by its own transform, independent of the base image.
func OverlayUniforms(imageSize image.Point, tr Transform) WindowUniforms {
	return WindowUniforms{Offset: tr.Offset, Scale: tr.Scale, ImageSize: geom.FromPoint(imageSize)}
}

// UniformsBuffer holds uniforms together with a dirty flag, so that they
// are only recomputed and uploaded after something changed.
type UniformsBuffer struct {
	value WindowUniforms
	dirty bool
}

// Value returns the last computed uniforms.
func (ub *UniformsBuffer) Value() WindowUniforms {
	return ub.value
}

// MarkDirty marks the uniforms as needing an update.
func (ub *UniformsBuffer) MarkDirty() {
	ub.dirty = true
}

// IsDirty returns whether the uniforms need an update.
func (ub *UniformsBuffer) IsDirty() bool {
	return ub.dirty
}

// Update recomputes the uniforms and uploads them if they are dirty.
// The dirty flag is only cleared if the upload succeeds.
// It returns whether an upload happened.
func (ub *UniformsBuffer) Update(compute func() WindowUniforms, upload func(data []byte) error) (bool, error) {
	if !ub.dirty {
		return false, nil
	}
	v := compute()
	if err := upload(v.Bytes()); err != nil {
		return false, err
	}
	ub.value = v
	ub.dirty = false
	return true, nil
}
