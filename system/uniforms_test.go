// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"encoding/binary"
	"image"
	"math"
	"testing"

	"cogentcore.org/showimage/base/errors"
	"cogentcore.org/showimage/geom"
	"github.com/stretchr/testify/assert"
)

func assertVec(t *testing.T, want, got geom.Vec2) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-4, "X of %v", got)
	assert.InDelta(t, want.Y, got.Y, 1e-4, "Y of %v", got)
}

func TestAspectFit(t *testing.T) {
	u := ComputeUniforms(image.Pt(800, 600), image.Pt(400, 300), true, Identity())
	assertVec(t, geom.V2(1, 1), u.Scale)
	assertVec(t, geom.V2(0, 0), u.Offset)
	assertVec(t, geom.V2(400, 300), u.ImageSize)

	u = ComputeUniforms(image.Pt(800, 600), image.Pt(400, 400), true, Identity())
	assertVec(t, geom.V2(0.75, 1), u.Scale)
	assertVec(t, geom.V2(0.125, 0), u.Offset)

	u = ComputeUniforms(image.Pt(600, 800), image.Pt(400, 400), true, Identity())
	assertVec(t, geom.V2(1, 0.75), u.Scale)
	assertVec(t, geom.V2(0, 0.125), u.Offset)
}

func TestStretchAndNoImage(t *testing.T) {
	u := ComputeUniforms(image.Pt(800, 600), image.Pt(400, 400), false, Identity())
	assertVec(t, geom.V2(1, 1), u.Scale)
	assertVec(t, geom.V2(0, 0), u.Offset)

	u = ComputeUniforms(image.Pt(800, 600), image.Point{}, true, Identity())
	assert.Equal(t, WindowUniforms{Scale: geom.V2(1, 1)}, u)
}

func TestUserTransform(t *testing.T) {
	tr := Transform{Offset: geom.V2(0.1, -0.2), Scale: geom.V2(2, 2)}
	u := ComputeUniforms(image.Pt(800, 600), image.Pt(400, 400), true, tr)
	assertVec(t, geom.V2(1.5, 2), u.Scale)
	assertVec(t, geom.V2(0.225, -0.2), u.Offset)

	o := OverlayUniforms(image.Pt(10, 20), tr)
	assert.Equal(t, WindowUniforms{Offset: tr.Offset, Scale: tr.Scale, ImageSize: geom.V2(10, 20)}, o)
	assert.True(t, Identity().IsIdentity())
	assert.False(t, tr.IsIdentity())
}

func TestUniformsBytes(t *testing.T) {
	u := WindowUniforms{Offset: geom.V2(0.25, 0.5), Scale: geom.V2(1, 2), ImageSize: geom.V2(640, 480)}
	b := u.Bytes()
	assert.Len(t, b, UniformsSize)
	f := func(off int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(b[off:])) }
	assert.Equal(t, []float32{0.25, 0.5, 1, 2, 640, 480, 0, 0},
		[]float32{f(0), f(4), f(8), f(12), f(16), f(20), f(24), f(28)})
}

func TestUniformsBuffer(t *testing.T) {
	var ub UniformsBuffer
	computed, uploaded := 0, 0
	compute := func() WindowUniforms {
		computed++
		return WindowUniforms{Scale: geom.V2(1, 1)}
	}
	upload := func(data []byte) error {
		uploaded++
		return nil
	}

	did, err := ub.Update(compute, upload)
	assert.NoError(t, err)
	assert.False(t, did)

	ub.MarkDirty()
	assert.True(t, ub.IsDirty())
	did, err = ub.Update(compute, upload)
	assert.NoError(t, err)
	assert.True(t, did)
	assert.False(t, ub.IsDirty())

	did, _ = ub.Update(compute, upload)
	assert.False(t, did)
	assert.Equal(t, 1, computed)
	assert.Equal(t, 1, uploaded)

	ub.MarkDirty()
	_, err = ub.Update(compute, func([]byte) error { return errors.New("lost device") })
	assert.Error(t, err)
	assert.True(t, ub.IsDirty())
}

func TestInvalidWindowIDError(t *testing.T) {
	err := error(&InvalidWindowIDError{ID: 3})
	assert.True(t, errors.Is(err, ErrInvalidWindowID))
	assert.Equal(t, "invalid window id: 3", err.Error())
	de := &DeviceError{Err: ErrNoSuitableAdapter}
	assert.True(t, errors.Is(de, ErrNoSuitableAdapter))
}
