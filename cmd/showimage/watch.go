// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"image"
	"log/slog"
	"path/filepath"

	"cogentcore.org/showimage/system"
	"github.com/fsnotify/fsnotify"
)

// watch reloads the image of the window whenever its file is
// written, until the window is destroyed or the context exits.
func watch(w system.WindowProxy, src source, size image.Point) error {
	p := w.Context()
	rx, err := w.EventChannel()
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		rx.Close()
		return err
	}
	// the directory is watched, since many programs
	// replace a file instead of writing to it
	if err := watcher.Add(filepath.Dir(src.path)); err != nil {
		rx.Close()
		watcher.Close()
		return err
	}

	done := make(chan struct{})
	err = p.RunBackgroundTask(func() {
		defer close(done)
		for {
			if _, err := rx.Recv(); err != nil {
				return
			}
		}
	})
	if err != nil {
		rx.Close()
		watcher.Close()
		return err
	}

	target := filepath.Clean(src.path)
	return p.RunBackgroundTask(func() {
		defer watcher.Close()
		for {
			select {
			case <-done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target || !isWrite(event) {
					continue
				}
				img, err := loadImage(src.path, size)
				if err != nil {
					slog.Warn("could not reload image", "file", src.path, "err", err)
					continue
				}
				slog.Debug("reloaded image", "file", src.path)
				if err := w.SetImage(src.name, img); err != nil {
					return
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Error("image file watcher error: " + err.Error())
			}
		}
	})
}

func isWrite(event fsnotify.Event) bool {
	return event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create
}
