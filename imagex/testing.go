// Copyright 2023 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"image"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/showimage/base/errors"
)

// TestingT is an interface wrapper around *testing.T
type TestingT interface {
	Errorf(format string, args ...any)
}

// UpdateTestImages indicates whether to update currently saved test
// images in [Assert] instead of comparing against them.
// It is set if the environment variable "SHOWIMAGE_UPDATE_TESTDATA"
// is "true". It should only be set when behavior has been updated
// that causes test images to change.
var UpdateTestImages = os.Getenv("SHOWIMAGE_UPDATE_TESTDATA") == "true"

// CompareColors returns true if no channel of the two colors
// differs by more than tol.
func CompareColors(cc, ic color.RGBA, tol int) bool {
	return absDiff(cc.R, ic.R) <= tol && absDiff(cc.G, ic.G) <= tol &&
		absDiff(cc.B, ic.B) <= tol && absDiff(cc.A, ic.A) <= tol
}

func absDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

// DiffImage returns the difference between two images,
// with pixels having the abs of the difference between pixels.
func DiffImage(a, b image.Image) image.Image {
	ab := a.Bounds()
	di := image.NewRGBA(ab)
	for y := ab.Min.Y; y < ab.Max.Y; y++ {
		for x := ab.Min.X; x < ab.Max.X; x++ {
			cc := color.RGBAModel.Convert(a.At(x, y)).(color.RGBA)
			ic := color.RGBAModel.Convert(b.At(x, y)).(color.RGBA)
			di.SetRGBA(x, y, color.RGBA{uint8(absDiff(cc.R, ic.R)), uint8(absDiff(cc.G, ic.G)), uint8(absDiff(cc.B, ic.B)), 255})
		}
	}
	return di
}

// Assert asserts that the given image is equivalent
// to the image stored at the given filename in the testdata directory,
// with ".png" added to the filename if there is no extension
// (eg: "window" becomes "testdata/window.png").
// If it is not, it fails the test with an error, but continues its
// execution. If there is no image at the given filename in the testdata
// directory, it creates the image.
func Assert(t TestingT, img Image, filename string) {
	AssertGo(t, ToRGBA(img), filename)
}

// AssertGo is like [Assert] for a standard Go image.
func AssertGo(t TestingT, img image.Image, filename string) {
	filename = filepath.Join("testdata", filename)
	if filepath.Ext(filename) == "" {
		filename += ".png"
	}

	err := os.MkdirAll(filepath.Dir(filename), 0750)
	if err != nil {
		t.Errorf("error making testdata directory: %v", err)
	}

	ext := filepath.Ext(filename)
	failFilename := strings.TrimSuffix(filename, ext) + ".fail" + ext
	diffFilename := strings.TrimSuffix(filename, ext) + ".diff" + ext

	if UpdateTestImages {
		if err := Save(img, filename); err != nil {
			t.Errorf("imagex.Assert: error saving updated image: %v", err)
		}
		os.RemoveAll(failFilename)
		os.RemoveAll(diffFilename)
		return
	}

	fimg, _, err := Open(filename)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("imagex.Assert: error opening saved image: %v", err)
			return
		}
		// we don't have the file yet, so we make it
		if err := Save(img, filename); err != nil {
			t.Errorf("imagex.Assert: error saving new image: %v", err)
		}
		return
	}

	failed := false
	ibounds := img.Bounds()
	fbounds := fimg.Bounds()
	if ibounds != fbounds {
		t.Errorf("imagex.Assert: expected bounds %v for image for %s, but got bounds %v; see %s", fbounds, filename, ibounds, failFilename)
		failed = true
	} else {
	rows:
		for y := ibounds.Min.Y; y < ibounds.Max.Y; y++ {
			for x := ibounds.Min.X; x < ibounds.Max.X; x++ {
				cc := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
				ic := color.RGBAModel.Convert(fimg.At(x, y)).(color.RGBA)
				if !CompareColors(cc, ic, 2) {
					t.Errorf("imagex.Assert: image for %s is not the same as expected; see %s; expected color %v at (%d, %d), but got %v", filename, failFilename, ic, x, y, cc)
					failed = true
					break rows
				}
			}
		}
	}

	if failed {
		errors.Log(Save(img, failFilename))
		errors.Log(Save(DiffImage(img, fimg), diffFilename))
	} else {
		os.RemoveAll(failFilename)
		os.RemoveAll(diffFilename)
	}
}
