// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/showimage/imagex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	sz, err := parseSize("")
	assert.NoError(t, err)
	assert.Equal(t, image.Point{}, sz)

	sz, err = parseSize("640x480")
	assert.NoError(t, err)
	assert.Equal(t, image.Pt(640, 480), sz)

	sz, err = parseSize("20X10")
	assert.NoError(t, err)
	assert.Equal(t, image.Pt(20, 10), sz)

	for _, s := range []string{"640", "ax480", "640xb", "0x10", "-1x10"} {
		_, err := parseSize(s)
		assert.Error(t, err, s)
	}
}

func TestImageName(t *testing.T) {
	assert.Equal(t, "cat", imageName("/tmp/pics/cat.png"))
	assert.Equal(t, "cat.old", imageName("cat.old.jpg"))
	assert.Equal(t, "noext", imageName("noext"))
}

func writeTestImage(t *testing.T, dir string) string {
	im := image.NewRGBA(image.Rect(0, 0, 8, 4))
	for y := range 4 {
		for x := range 8 {
			im.Set(x, y, color.RGBA{0, 0, 255, 255})
		}
	}
	path := filepath.Join(dir, "blue.png")
	require.NoError(t, imagex.Save(im, path))
	return path
}

func TestLoadImage(t *testing.T) {
	path := writeTestImage(t, t.TempDir())

	img, err := loadImage(path, image.Point{})
	require.NoError(t, err)
	assert.Equal(t, 8, img.Info().Width())
	assert.Equal(t, 4, img.Info().Height())
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, imagex.RGBAAt(img, 3, 2))

	img, err = loadImage(path, image.Pt(16, 2))
	require.NoError(t, err)
	assert.Equal(t, 16, img.Info().Width())
	assert.Equal(t, 2, img.Info().Height())
	assert.True(t, imagex.CompareColors(color.RGBA{0, 0, 255, 255}, imagex.RGBAAt(img, 8, 1), 2))
}

func TestLoadImageErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := loadImage(filepath.Join(dir, "missing.png"), image.Point{})
	assert.Error(t, err)

	text := filepath.Join(dir, "notes.png")
	require.NoError(t, os.WriteFile(text, []byte("not an image at all"), 0o644))
	_, err = loadImage(text, image.Point{})
	assert.ErrorContains(t, err, "not an image")
}

func TestLoadSources(t *testing.T) {
	path := writeTestImage(t, t.TempDir())
	srcs, err := loadSources([]string{path}, image.Point{})
	require.NoError(t, err)
	require.Len(t, srcs, 1)
	assert.Equal(t, "blue", srcs[0].name)
	assert.Equal(t, path, srcs[0].path)

	_, err = loadSources([]string{path, "missing.png"}, image.Point{})
	assert.Error(t, err)
}

func TestTestPattern(t *testing.T) {
	img, err := testPattern(image.Point{})
	require.NoError(t, err)
	assert.Equal(t, 512, img.Info().Width())
	assert.Equal(t, 384, img.Info().Height())

	dark := color.RGBA{77, 77, 77, 255}
	light := color.RGBA{204, 204, 204, 255}
	assert.True(t, imagex.CompareColors(dark, imagex.RGBAAt(img, 40, 8), 2))
	assert.True(t, imagex.CompareColors(light, imagex.RGBAAt(img, 72, 8), 2))
	imagex.Assert(t, img, "test-pattern")

	img, err = testPattern(image.Pt(100, 50))
	require.NoError(t, err)
	assert.Equal(t, 100, img.Info().Width())
	assert.Equal(t, 50, img.Info().Height())
}
