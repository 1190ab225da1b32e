// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec2(t *testing.T) {
	a := V2(3, 4)
	assert.Equal(t, float32(5), a.Length())
	assert.Equal(t, V2(4, 6), a.Add(V2(1, 2)))
	assert.Equal(t, V2(2, 2), a.Sub(V2(1, 2)))
	assert.Equal(t, V2(6, 8), a.MulScalar(2))
	assert.Equal(t, V2(1.5, 2), a.Div(V2(2, 2)))
	assert.Equal(t, image.Pt(3, 4), a.ToPoint())
	assert.Equal(t, V2(10, 20), FromPoint(image.Pt(10, 20)))
}

func TestSign(t *testing.T) {
	assert.Equal(t, V2(1, -1), V2(5, -0.5).Sign())
	assert.Equal(t, V2(0, 1), V2(0, 2).Sign())
	assert.True(t, V2(0, 0).Sign().IsZero())
}
