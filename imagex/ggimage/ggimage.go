// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ggimage adapts images drawn with github.com/gogpu/gg
// so that they can be displayed directly.
package ggimage

import (
	"cogentcore.org/showimage/imagex"
	"github.com/gogpu/gg"
)

// FromPixmap returns a view of the pixel data of the given pixmap.
// The pixmap must not be drawn to while the view is in use;
// use [imagex.ToOwned] or [imagex.Copy] to detach it.
func FromPixmap(pm *gg.Pixmap) (imagex.View, error) {
	info := imagex.NewInfo(imagex.Rgba8, pm.Width(), pm.Height())
	return imagex.NewView(info, pm.Data())
}

// FromContext returns a copy of the current contents
// of the given drawing context.
func FromContext(dc *gg.Context) imagex.Image {
	return imagex.Copy(imagex.FromImage(dc.Image()))
}
