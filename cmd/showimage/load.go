// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"image"
	"path/filepath"
	"strconv"
	"strings"

	"cogentcore.org/showimage/imagex"
	"cogentcore.org/showimage/imagex/ggimage"
	"github.com/anthonynsimon/bild/transform"
	"github.com/gogpu/gg"
	"github.com/h2non/filetype"
)

// source is an image shown in its own window.
type source struct {
	// name is the window title and the image name.
	name string

	// path is the file the image was loaded from, if any.
	path string

	img imagex.Image
}

// TestPatternName is the name of the generated test pattern image.
const TestPatternName = "test-pattern"

// parseSize parses a size of the form WxH. The empty string is the zero size.
func parseSize(s string) (image.Point, error) {
	if s == "" {
		return image.Point{}, nil
	}
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return image.Point{}, fmt.Errorf("invalid size %q: want WxH", s)
	}
	w, err := strconv.Atoi(ws)
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	h, err := strconv.Atoi(hs)
	if err != nil {
		return image.Point{}, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return image.Point{}, fmt.Errorf("invalid size %q: must be positive", s)
	}
	return image.Pt(w, h), nil
}

// imageName returns the image name for the given file:
// its base name without the extension.
func imageName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// loadImage loads the image file at path, resized to size
// unless size is zero.
func loadImage(path string, size image.Point) (imagex.Image, error) {
	kind, err := filetype.MatchFile(path)
	if err != nil {
		return nil, err
	}
	if kind == filetype.Unknown || kind.MIME.Type != "image" {
		return nil, fmt.Errorf("%s: not an image file", path)
	}
	im, _, err := imagex.Open(path)
	if err != nil {
		return nil, err
	}
	if size != (image.Point{}) {
		im = transform.Resize(im, size.X, size.Y, transform.Linear)
	}
	return imagex.Copy(imagex.FromImage(im)).Share(), nil
}

// loadSources loads all of the given image files.
func loadSources(paths []string, size image.Point) ([]source, error) {
	srcs := make([]source, 0, len(paths))
	for _, path := range paths {
		img, err := loadImage(path, size)
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, source{name: imageName(path), path: path, img: img})
	}
	return srcs, nil
}

// testPattern draws a checkerboard with a circle and diagonals,
// which makes scaling and aspect ratio problems easy to spot.
func testPattern(size image.Point) (imagex.Image, error) {
	if size == (image.Point{}) {
		size = image.Pt(512, 384)
	}
	w, h := float64(size.X), float64(size.Y)
	dc := gg.NewContext(size.X, size.Y)
	defer dc.Close()

	const cell = 32
	for y := 0; y < size.Y; y += cell {
		for x := 0; x < size.X; x += cell {
			if (x/cell+y/cell)%2 == 0 {
				dc.SetRGB(0.8, 0.8, 0.8)
			} else {
				dc.SetRGB(0.3, 0.3, 0.3)
			}
			dc.DrawRectangle(float64(x), float64(y), cell, cell)
			if err := dc.Fill(); err != nil {
				return nil, err
			}
		}
	}

	dc.SetRGB(1, 0, 0)
	dc.SetLineWidth(4)
	dc.DrawLine(0, 0, w, h)
	dc.DrawLine(w, 0, 0, h)
	if err := dc.Stroke(); err != nil {
		return nil, err
	}

	dc.SetRGBA(0, 0.4, 1, 0.8)
	dc.DrawCircle(w/2, h/2, min(w, h)/4)
	if err := dc.Fill(); err != nil {
		return nil, err
	}
	return ggimage.FromContext(dc), nil
}
