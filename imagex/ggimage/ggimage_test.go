// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ggimage

import (
	"image"
	"image/color"
	"testing"

	"cogentcore.org/showimage/imagex"
	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPixmap(t *testing.T) {
	pm := gg.NewPixmap(8, 4)
	pm.Clear(gg.RGBA{R: 1, A: 1})
	v, err := FromPixmap(pm)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(8, 4), v.Info().Size)
	assert.Equal(t, imagex.Rgba8, v.Info().Format)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, imagex.RGBAAt(v, 7, 3))
}

func TestFromContext(t *testing.T) {
	dc := gg.NewContext(16, 16)
	im := FromContext(dc)
	assert.Equal(t, image.Pt(16, 16), im.Info().Size)
	assert.True(t, im.Info().IsPacked())
}
