// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration of the image viewer,
// loaded from a TOML or YAML file.
package config

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cogentcore.org/showimage/base/errors"
	"cogentcore.org/showimage/gpu"
	"cogentcore.org/showimage/system"
	"github.com/jinzhu/copier"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file loaded when none is given.
const DefaultFile = "~/.config/showimage/config.toml"

// BackendEnv overrides the GPU backend, taking precedence over
// both the config file and [gpu.BackendEnv].
const BackendEnv = "SHOWIMAGE_BACKEND"

// Config is the main config struct.
type Config struct {

	// Window has the options for new windows.
	Window Window `toml:"window" yaml:"window"`

	// Timeout is how long blocking calls wait for the event loop,
	// as a Go duration such as "5s". "0" waits forever.
	Timeout string `toml:"timeout" yaml:"timeout"`

	// ExitWithLastWindow exits once the last window is closed.
	ExitWithLastWindow bool `toml:"exit_with_last_window" yaml:"exit_with_last_window"`

	// SaveDir is the directory that Control+S saves images into.
	SaveDir string `toml:"save_dir" yaml:"save_dir"`

	// Backend is a comma separated list of GPU backends to consider.
	Backend string `toml:"backend" yaml:"backend"`

	// PowerPreference is the GPU power preference: low or high.
	PowerPreference string `toml:"power_preference" yaml:"power_preference"`

	// LogLevel is the minimum level of log messages:
	// debug, info, warn or error.
	LogLevel string `toml:"log_level" yaml:"log_level"`
}

// Window has the window options, with the field names of
// [system.WindowOptions] so that they can be copied directly.
type Window struct {
	PreserveAspectRatio bool `toml:"preserve_aspect_ratio" yaml:"preserve_aspect_ratio"`

	// Background is the background color as a hex string like "#202020".
	Background string `toml:"background" yaml:"background"`

	StartHidden     bool `toml:"start_hidden" yaml:"start_hidden"`
	Width           int  `toml:"width" yaml:"width"`
	Height          int  `toml:"height" yaml:"height"`
	Resizable       bool `toml:"resizable" yaml:"resizable"`
	Borderless      bool `toml:"borderless" yaml:"borderless"`
	Fullscreen      bool `toml:"fullscreen" yaml:"fullscreen"`
	OverlaysVisible bool `toml:"overlays_visible" yaml:"overlays_visible"`
	DefaultControls bool `toml:"default_controls" yaml:"default_controls"`
}

// Default returns the default configuration.
func Default() *Config {
	wo := system.DefaultWindowOptions()
	c := &Config{
		Timeout:            system.DefaultTimeout.String(),
		ExitWithLastWindow: true,
		LogLevel:           "info",
	}
	errors.Log(copier.Copy(&c.Window, &wo))
	c.Window.Background = FormatHex(wo.BackgroundColor)
	c.Window.Width, c.Window.Height = wo.Size.X, wo.Size.Y
	return c
}

// Open loads the config from the given file on top of the defaults.
// The format is chosen by the file extension. An empty filename
// loads [DefaultFile] if it exists.
func Open(filename string) (*Config, error) {
	c := Default()
	optional := filename == ""
	if optional {
		filename = DefaultFile
	}
	path, err := homedir.Expand(filename)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return nil, err
	}
	if err := c.Decode(b, filepath.Ext(path)); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	slog.Debug("loaded config", "file", path)
	return c, c.Validate()
}

// Decode decodes the given data in the format of the given
// file extension into c.
func (c *Config) Decode(b []byte, ext string) error {
	switch strings.ToLower(ext) {
	case ".toml":
		return toml.NewDecoder(bytes.NewReader(b)).DisallowUnknownFields().Decode(c)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		return dec.Decode(c)
	}
	return fmt.Errorf("unsupported config file extension %q", ext)
}

// Save writes the config to the given file, in the format
// of its extension.
func (c *Config) Save(filename string) error {
	path, err := homedir.Expand(filename)
	if err != nil {
		return err
	}
	var b []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		b, err = toml.Marshal(c)
	case ".yaml", ".yml":
		b, err = yaml.Marshal(c)
	default:
		err = fmt.Errorf("config: unsupported file extension %q", filepath.Ext(path))
	}
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Validate checks that all values can be used.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.TimeoutDuration(); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseHex(c.Window.Background); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if c.Backend != "" {
		if _, err := gpu.ParseBackends(c.Backend); err != nil {
			errs = append(errs, err)
		}
	}
	if _, err := gpu.ParsePower(c.PowerPreference); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Merge copies the non-empty fields of other into c.
func (c *Config) Merge(other *Config) error {
	opt := copier.Option{IgnoreEmpty: true}
	w := c.Window
	if err := copier.CopyWithOption(&w, &other.Window, opt); err != nil {
		return err
	}
	if err := copier.CopyWithOption(c, other, opt); err != nil {
		return err
	}
	c.Window = w
	return nil
}

// TimeoutDuration returns the parsed timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" || c.Timeout == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout: %v is negative", d)
	}
	return d, nil
}

// Level returns the parsed log level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	err := l.UnmarshalText([]byte(c.LogLevel))
	return l, err
}

// WindowOptions returns the options for new windows.
func (c *Config) WindowOptions() (system.WindowOptions, error) {
	opts := system.DefaultWindowOptions()
	if err := copier.Copy(&opts, &c.Window); err != nil {
		return opts, err
	}
	bg, err := ParseHex(c.Window.Background)
	if err != nil {
		return opts, err
	}
	opts.BackgroundColor = bg
	opts.Size = image.Pt(c.Window.Width, c.Window.Height)
	return opts, nil
}

// ContextOptions returns the options for the context.
func (c *Config) ContextOptions() (system.ContextOptions, error) {
	opts := system.DefaultContextOptions()
	d, err := c.TimeoutDuration()
	if err != nil {
		return opts, err
	}
	opts.Timeout = d
	opts.ExitWithLastWindow = c.ExitWithLastWindow
	if c.SaveDir != "" {
		dir, err := homedir.Expand(c.SaveDir)
		if err != nil {
			return opts, err
		}
		opts.SaveDir = dir
	}
	return opts, nil
}

// ApplyEnv exports the GPU selection to the environment read by
// package gpu. [BackendEnv] takes precedence over the config file,
// and so does an already set [gpu.BackendEnv] or [gpu.PowerEnv].
func (c *Config) ApplyEnv() {
	if b := os.Getenv(BackendEnv); b != "" {
		os.Setenv(gpu.BackendEnv, b)
	} else if c.Backend != "" && os.Getenv(gpu.BackendEnv) == "" {
		os.Setenv(gpu.BackendEnv, c.Backend)
	}
	if c.PowerPreference != "" && os.Getenv(gpu.PowerEnv) == "" {
		os.Setenv(gpu.PowerEnv, c.PowerPreference)
	}
}

// ParseHex parses a color of the form #rgb, #rrggbb or #rrggbbaa.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	var v [4]uint8
	v[3] = 255
	switch len(h) {
	case 3:
		for i := range 3 {
			n, err := hexDigit(h[i])
			if err != nil {
				return color.RGBA{}, fmt.Errorf("invalid color %q", s)
			}
			v[i] = n * 17
		}
	case 6, 8:
		for i := range len(h) / 2 {
			hi, err1 := hexDigit(h[2*i])
			lo, err2 := hexDigit(h[2*i+1])
			if err1 != nil || err2 != nil {
				return color.RGBA{}, fmt.Errorf("invalid color %q", s)
			}
			v[i] = hi<<4 | lo
		}
	default:
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{v[0], v[1], v[2], v[3]}, nil
}

func hexDigit(c byte) (uint8, error) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', nil
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, nil
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, nil
	}
	return 0, errors.New("invalid hex digit")
}

// FormatHex formats a color as #rrggbb, or #rrggbbaa if it is not opaque.
func FormatHex(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
