// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package imagex describes raw pixel buffers (format, size and strides)
// in borrowed, owned and shared variants, and converts between them
// and standard Go images and image files.
package imagex

import (
	"bufio"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/showimage/base/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Formats are the supported image file encoding / decoding formats.
type Formats int32

// The supported image file formats
const (
	None Formats = iota
	PNG
	JPEG
	GIF
	TIFF
	BMP
	WebP
)

var formatNames = [...]string{"None", "PNG", "JPEG", "GIF", "TIFF", "BMP", "WebP"}

func (f Formats) String() string {
	if f >= 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Formats(%d)", int32(f))
}

// ExtToFormat returns a Format based on a filename extension,
// which can start with a . or not
func ExtToFormat(ext string) (Formats, error) {
	if len(ext) == 0 {
		return None, errors.New("ExtToFormat: ext is empty")
	}
	if ext[0] == '.' {
		ext = ext[1:]
	}
	ext = strings.ToLower(ext)
	switch ext {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "gif":
		return GIF, nil
	case "tif", "tiff":
		return TIFF, nil
	case "bmp":
		return BMP, nil
	case "webp":
		return WebP, nil
	}
	return None, fmt.Errorf("ExtToFormat: extension %q not recognized", ext)
}

// FromImage returns an [Image] for the given Go image.
// RGBA, NRGBA and Gray images are viewed without copying,
// so they must not be modified while the view is in use;
// any other image type is converted into a new NRGBA buffer.
func FromImage(src image.Image) Image {
	b := src.Bounds()
	switch im := src.(type) {
	case *image.RGBA:
		return viewOf(Rgba8Premultiplied, b, im.Pix[im.PixOffset(b.Min.X, b.Min.Y):], 4, im.Stride)
	case *image.NRGBA:
		return viewOf(Rgba8, b, im.Pix[im.PixOffset(b.Min.X, b.Min.Y):], 4, im.Stride)
	case *image.Gray:
		return viewOf(Mono8, b, im.Pix[im.PixOffset(b.Min.X, b.Min.Y):], 1, im.Stride)
	}
	nrgba := image.NewNRGBA(image.Rectangle{Max: b.Size()})
	draw.Draw(nrgba, nrgba.Bounds(), src, b.Min, draw.Src)
	return viewOf(Rgba8, nrgba.Bounds(), nrgba.Pix, 4, nrgba.Stride)
}

func viewOf(format PixelFormat, b image.Rectangle, pix []byte, bpp, stride int) View {
	return View{
		info: Info{Format: format, Size: b.Size(), Stride: image.Pt(bpp, stride)},
		data: pix,
	}
}

// Open opens an image from the given filename.
// The format is inferred automatically,
// and is returned using the Formats enum.
// png, jpeg, gif, tiff, bmp, and webp are supported.
func Open(filename string) (image.Image, Formats, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, None, err
	}
	defer file.Close()
	return Read(bufio.NewReader(file))
}

// OpenFS opens an image from the given filename
// using the given [fs.FS] filesystem (e.g., for embed files).
func OpenFS(fsys fs.FS, filename string) (image.Image, Formats, error) {
	file, err := fsys.Open(filename)
	if err != nil {
		return nil, None, err
	}
	defer file.Close()
	return Read(file)
}

// Read reads an image from the given reader.
// The format is inferred automatically,
// and is returned using the Formats enum.
func Read(r io.Reader) (image.Image, Formats, error) {
	im, ext, err := image.Decode(r)
	if err != nil {
		return im, None, err
	}
	f, err := ExtToFormat(ext)
	return im, f, err
}

// Load opens the given image file and returns it as a [Shared]
// image that can be handed to any number of windows.
func Load(filename string) (*Shared, error) {
	im, _, err := Open(filename)
	if err != nil {
		return nil, err
	}
	return Copy(FromImage(im)).Share(), nil
}

// Save saves the image to the given filename,
// with the format inferred from the filename.
// png, jpeg, gif, tiff, and bmp are supported.
func Save(im image.Image, filename string) error {
	ext := filepath.Ext(filename)
	f, err := ExtToFormat(ext)
	if err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	bw := bufio.NewWriter(file)
	if err := Write(im, bw, f); err != nil {
		return err
	}
	return bw.Flush()
}

// Write writes the image to the given writer using the given format.
// png, jpeg, gif, tiff, and bmp are supported.
func Write(im image.Image, w io.Writer, f Formats) error {
	switch f {
	case PNG:
		return png.Encode(w, im)
	case JPEG:
		return jpeg.Encode(w, im, &jpeg.Options{Quality: 90})
	case GIF:
		return gif.Encode(w, im, nil)
	case TIFF:
		return tiff.Encode(w, im, nil)
	case BMP:
		return bmp.Encode(w, im)
	default:
		return fmt.Errorf("imagex.Save: format %q not valid", f)
	}
}
