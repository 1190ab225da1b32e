// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import "fmt"

// Alpha determines how the alpha channel of a pixel relates
// to its color channels.
type Alpha int32

const (
	// Unpremultiplied means the color channels are stored
	// independently of the alpha channel.
	Unpremultiplied Alpha = iota

	// Premultiplied means the color channels have already
	// been multiplied by the alpha channel.
	Premultiplied
)

func (a Alpha) String() string {
	if a == Premultiplied {
		return "Premultiplied"
	}
	return "Unpremultiplied"
}

// PixelFormat is the memory layout of a single pixel.
// Every format uses one byte per channel. The numeric value of
// each format is the code the image shader uses to decode it.
type PixelFormat uint32

const (
	// Mono8 is a single 8-bit intensity channel.
	Mono8 PixelFormat = iota

	// MonoAlpha8 is an intensity channel followed by an
	// unpremultiplied alpha channel.
	MonoAlpha8

	// MonoAlpha8Premultiplied is an intensity channel followed
	// by a premultiplied alpha channel.
	MonoAlpha8Premultiplied

	// Bgr8 is blue, green and red.
	Bgr8

	// Bgra8 is blue, green, red and unpremultiplied alpha.
	Bgra8

	// Bgra8Premultiplied is blue, green, red and premultiplied alpha.
	Bgra8Premultiplied

	// Rgb8 is red, green and blue.
	Rgb8

	// Rgba8 is red, green, blue and unpremultiplied alpha.
	Rgba8

	// Rgba8Premultiplied is red, green, blue and premultiplied alpha.
	Rgba8Premultiplied

	pixelFormatsN
)

var pixelFormatNames = [...]string{
	"Mono8", "MonoAlpha8", "MonoAlpha8Premultiplied",
	"Bgr8", "Bgra8", "Bgra8Premultiplied",
	"Rgb8", "Rgba8", "Rgba8Premultiplied",
}

func (f PixelFormat) String() string {
	if f < pixelFormatsN {
		return pixelFormatNames[f]
	}
	return fmt.Sprintf("PixelFormat(%d)", uint32(f))
}

// IsValid returns whether f is one of the defined formats.
func (f PixelFormat) IsValid() bool {
	return f < pixelFormatsN
}

// Channels returns the number of channels of the format.
func (f PixelFormat) Channels() int {
	switch f {
	case Mono8:
		return 1
	case MonoAlpha8, MonoAlpha8Premultiplied:
		return 2
	case Bgr8, Rgb8:
		return 3
	case Bgra8, Bgra8Premultiplied, Rgba8, Rgba8Premultiplied:
		return 4
	}
	return 0
}

// BytesPerPixel returns the number of bytes of one pixel.
func (f PixelFormat) BytesPerPixel() int {
	return f.Channels()
}

// HasAlpha returns whether the format has an alpha channel.
func (f PixelFormat) HasAlpha() bool {
	switch f {
	case Mono8, Bgr8, Rgb8:
		return false
	}
	return f.IsValid()
}

// Alpha returns the alpha mode of the format.
// Formats without alpha report [Unpremultiplied].
func (f PixelFormat) Alpha() Alpha {
	switch f {
	case MonoAlpha8Premultiplied, Bgra8Premultiplied, Rgba8Premultiplied:
		return Premultiplied
	}
	return Unpremultiplied
}
