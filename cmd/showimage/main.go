// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command showimage shows images in windows.
//
//	showimage [flags] [image files...]
//
// Each image gets its own window. The mouse wheel zooms, dragging pans,
// R resets the view and Control+S saves the image in the save directory.
package main

import (
	"image"
	"log/slog"
	"os"

	"cogentcore.org/showimage/base/errors"
	"cogentcore.org/showimage/base/logx"
	"cogentcore.org/showimage/config"
	"cogentcore.org/showimage/imagex"
	"cogentcore.org/showimage/system"
	"cogentcore.org/showimage/system/driver"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(&options{}).Execute(); err != nil {
		os.Exit(1)
	}
}

// options are the command line flags.
type options struct {
	config string

	veryVerbose bool
	verbose     bool
	quiet       bool

	watch       bool
	resize      string
	testPattern bool
	overlay     string

	background string
	saveDir    string
	timeout    string
	borderless bool
	fullscreen bool

	noGUI bool
}

func newRootCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "showimage [flags] [image files...]",
		Short:        "Show images in windows",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(args)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.config, "config", "c", "", "config file (default "+config.DefaultFile+")")
	f.BoolVar(&o.veryVerbose, "vv", false, "print debug messages")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "print info messages")
	f.BoolVarP(&o.quiet, "quiet", "q", false, "only print errors")
	f.BoolVarP(&o.watch, "watch", "w", false, "reload images when their files change")
	f.StringVarP(&o.resize, "resize", "r", "", "resize images to WxH pixels when loading them")
	f.BoolVar(&o.testPattern, "test-pattern", false, "show a generated test pattern")
	f.StringVar(&o.overlay, "overlay", "", "image file drawn on top of every image")
	f.StringVar(&o.background, "background", "", "window background color, like #202020")
	f.StringVar(&o.saveDir, "save-dir", "", "directory that Control+S saves images into")
	f.StringVar(&o.timeout, "timeout", "", "how long to wait for the event loop, like 5s; 0 waits forever")
	f.BoolVar(&o.borderless, "borderless", false, "create windows without decorations")
	f.BoolVar(&o.fullscreen, "fullscreen", false, "create fullscreen windows")
	f.BoolVar(&o.noGUI, "nogui", false, "render offscreen and save all images into the save directory")
	f.MarkHidden("nogui")
	return cmd
}

// levelFlagSet returns whether any of the verbosity flags is set.
func (o *options) levelFlagSet() bool {
	return o.veryVerbose || o.verbose || o.quiet
}

// loadConfig loads the config file and applies the flags on top of it.
func (o *options) loadConfig() (*config.Config, error) {
	cfg, err := config.Open(o.config)
	if err != nil {
		return nil, err
	}
	flags := &config.Config{
		Timeout: o.timeout,
		SaveDir: o.saveDir,
		Window: config.Window{
			Background: o.background,
			Borderless: o.borderless,
			Fullscreen: o.fullscreen,
		},
	}
	if err := cfg.Merge(flags); err != nil {
		return nil, err
	}
	if o.noGUI {
		cfg.Window.StartHidden = true
	}
	return cfg, cfg.Validate()
}

// sources loads the images to show.
func (o *options) sources(args []string) ([]source, image.Point, error) {
	size, err := parseSize(o.resize)
	if err != nil {
		return nil, size, err
	}
	srcs, err := loadSources(args, size)
	if err != nil {
		return nil, size, err
	}
	if o.testPattern {
		img, err := testPattern(size)
		if err != nil {
			return nil, size, err
		}
		srcs = append(srcs, source{name: TestPatternName, img: img})
	}
	if len(srcs) == 0 {
		return nil, size, errors.New("no images given; pass image files or --test-pattern")
	}
	return srcs, size, nil
}

// setLogLevel uses the log level of the config file
// unless a verbosity flag is set.
func (o *options) setLogLevel(cfg *config.Config) {
	if o.levelFlagSet() {
		return
	}
	logx.UserLevel = errors.Log1(cfg.Level())
	logx.SetDefaultLogger()
}

func (o *options) run(args []string) error {
	logx.UserLevel = logx.LevelFromFlags(o.veryVerbose, o.verbose, o.quiet)
	logx.SetDefaultLogger()

	cfg, err := o.loadConfig()
	if err != nil {
		return err
	}
	o.setLogLevel(cfg)
	cfg.ApplyEnv()

	wopts, err := cfg.WindowOptions()
	if err != nil {
		return err
	}
	copts, err := cfg.ContextOptions()
	if err != nil {
		return err
	}
	srcs, size, err := o.sources(args)
	if err != nil {
		return err
	}
	var overlay imagex.Image
	if o.overlay != "" {
		overlay, err = loadImage(o.overlay, image.Point{})
		if err != nil {
			return err
		}
	}

	driver.NoGUI = o.noGUI
	return driver.Run(copts, func(p system.ContextProxy) {
		wins := show(p, srcs, wopts, overlay)
		if o.noGUI {
			saveAll(wins)
			return
		}
		if o.watch {
			for _, sw := range wins {
				if sw.src.path == "" {
					continue
				}
				if err := watch(sw.win, sw.src, size); err != nil {
					slog.Error("could not watch image file", "file", sw.src.path, "err", err)
				}
			}
		}
		for _, sw := range wins {
			sw.win.WaitUntilDestroyed()
		}
	})
}

// shown is a window showing a source.
type shown struct {
	win system.WindowProxy
	src source
}

// show creates a window for each source.
func show(p system.ContextProxy, srcs []source, opts system.WindowOptions, overlay imagex.Image) []shown {
	var wins []shown
	for _, src := range srcs {
		w, err := p.CreateWindow(src.name, opts)
		if err != nil {
			slog.Error("could not create window", "image", src.name, "err", err)
			continue
		}
		if err := w.SetImage(src.name, src.img); err != nil {
			slog.Error("could not show image", "image", src.name, "err", err)
		}
		if overlay != nil {
			if err := w.AddOverlay("overlay", overlay, system.Identity()); err != nil {
				slog.Error("could not add overlay", "image", src.name, "err", err)
			}
		}
		wins = append(wins, shown{win: w, src: src})
	}
	return wins
}

// saveAll saves the contents of all windows with their overlays.
// The files are complete once the context has exited.
func saveAll(wins []shown) {
	for _, sw := range wins {
		err := sw.win.RunFunctionWait(func(w *system.Window) {
			_, err := w.Context().SaveWindow(w, true)
			if err != nil {
				slog.Error("could not save image", "image", w.ImageName(), "err", err)
			}
		})
		if err != nil {
			slog.Error("could not save image", "err", err)
		}
	}
}
