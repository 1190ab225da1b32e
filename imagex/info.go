// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"fmt"
	"image"

	"cogentcore.org/showimage/base/errors"
)

// ErrUnsupportedFormat is the cause of an [ImageDataError] when the
// pixel data uses a format that can not be displayed.
var ErrUnsupportedFormat = errors.New("unsupported pixel format")

// ImageDataError is returned when image data can not be interpreted
// according to its [Info].
type ImageDataError struct {
	Reason string

	// Err is an optional underlying cause, such as [ErrUnsupportedFormat].
	Err error
}

func (e *ImageDataError) Error() string {
	if e.Err != nil {
		return "invalid image data: " + e.Reason + ": " + e.Err.Error()
	}
	return "invalid image data: " + e.Reason
}

func (e *ImageDataError) Unwrap() error {
	return e.Err
}

// Info describes the memory layout of an image.
type Info struct {

	// Format is the pixel format.
	Format PixelFormat

	// Size is the width and height of the image in pixels.
	Size image.Point

	// Stride is the number of bytes between horizontally adjacent
	// pixels (X, the column stride) and vertically adjacent pixels
	// (Y, the row stride).
	Stride image.Point
}

// NewInfo returns the [Info] of a tightly packed row-major image.
func NewInfo(format PixelFormat, width, height int) Info {
	bpp := format.BytesPerPixel()
	return Info{
		Format: format,
		Size:   image.Pt(width, height),
		Stride: image.Pt(bpp, bpp*width),
	}
}

func (in Info) String() string {
	return fmt.Sprintf("%v %dx%d stride %v", in.Format, in.Size.X, in.Size.Y, in.Stride)
}

// Width returns the width in pixels.
func (in Info) Width() int { return in.Size.X }

// Height returns the height in pixels.
func (in Info) Height() int { return in.Size.Y }

// IsPacked returns whether the rows are stored tightly packed and row-major.
func (in Info) IsPacked() bool {
	bpp := in.Format.BytesPerPixel()
	return in.Stride.X == bpp && in.Stride.Y == bpp*in.Size.X
}

// ByteSize returns the minimum number of bytes needed to hold the image.
func (in Info) ByteSize() int {
	if in.Size.X <= 0 || in.Size.Y <= 0 {
		return 0
	}
	return (in.Size.X-1)*in.Stride.X + (in.Size.Y-1)*in.Stride.Y + in.Format.BytesPerPixel()
}

// Offset returns the byte offset of the pixel at x, y.
func (in Info) Offset(x, y int) int {
	return x*in.Stride.X + y*in.Stride.Y
}

// Validate checks that the info is consistent and that a buffer
// of the given length holds the whole image.
func (in Info) Validate(dataLen int) error {
	if !in.Format.IsValid() {
		return &ImageDataError{Reason: in.Format.String(), Err: ErrUnsupportedFormat}
	}
	if in.Size.X <= 0 || in.Size.Y <= 0 {
		return &ImageDataError{Reason: fmt.Sprintf("image size must be positive, got %v", in.Size)}
	}
	if in.Stride.X <= 0 || in.Stride.Y <= 0 {
		return &ImageDataError{Reason: fmt.Sprintf("image strides must be positive, got %v", in.Stride)}
	}
	if need := in.ByteSize(); dataLen < need {
		return &ImageDataError{Reason: fmt.Sprintf("buffer too small for %v: need %d bytes, have %d", in, need, dataLen)}
	}
	return nil
}
