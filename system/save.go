// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system

import (
	"log/slog"
	"path/filepath"

	"cogentcore.org/showimage/events"
	"cogentcore.org/showimage/events/key"
	"cogentcore.org/showimage/imagex"
)

// saveShortcut saves the window image on Control+S,
// including the overlays if Alt is also held.
func (c *Context) saveShortcut(ev events.WindowKeyboardInput) {
	in := ev.Input
	if !in.Pressed || in.Repeat || in.Code != key.CodeS {
		return
	}
	if in.Mods.Without(key.Alt|key.Shift) != key.Control {
		return
	}
	w, err := c.Window(ev.Window)
	if err != nil {
		return
	}
	if _, err := c.SaveWindow(w, in.Mods.HasFlag(key.Alt)); err != nil {
		slog.Error("failed to render window contents", "window", w.id, "err", err)
	}
}

// SaveWindow renders the window image, optionally with overlays, and saves
// it as a PNG file named after the image in [ContextOptions.SaveDir].
// The file is written by a background task, so it is complete once the
// returned task is done, and at the latest when the process exits.
// It returns nil if the window has no image.
func (c *Context) SaveWindow(w *Window, overlays bool) (*Task, error) {
	img, err := w.Capture(overlays)
	if err != nil || img == nil {
		return nil, err
	}
	filename := filepath.Join(c.opts.SaveDir, filepath.Base(w.ImageName())+".png")
	return c.RunBackgroundTask(func() {
		if err := imagex.Save(img, filename); err != nil {
			slog.Error("failed to save image", "file", filename, "err", err)
			return
		}
		slog.Info("saved image", "file", filename)
	}), nil
}
