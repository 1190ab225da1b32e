// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cogentcore.org/showimage/gpu"
	"cogentcore.org/showimage/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	wo, err := c.WindowOptions()
	require.NoError(t, err)
	assert.Equal(t, system.DefaultWindowOptions(), wo)

	co, err := c.ContextOptions()
	require.NoError(t, err)
	assert.Equal(t, system.DefaultTimeout, co.Timeout)
	assert.True(t, co.ExitWithLastWindow)
}

func TestOpenTOML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(file, []byte(`
timeout = "250ms"
save_dir = "shots"
log_level = "debug"

[window]
background = "#102030"
width = 640
height = 480
borderless = true
default_controls = false
`), 0o644))

	c, err := Open(file)
	require.NoError(t, err)
	wo, err := c.WindowOptions()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0x10, 0x20, 0x30, 255}, wo.BackgroundColor)
	assert.Equal(t, image.Pt(640, 480), wo.Size)
	assert.True(t, wo.Borderless)
	assert.False(t, wo.DefaultControls)
	// not in the file, so the default is kept
	assert.True(t, wo.PreserveAspectRatio)

	co, err := c.ContextOptions()
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, co.Timeout)
	assert.Equal(t, "shots", co.SaveDir)
	l, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)
}

func TestOpenYAML(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("timeout: \"0\"\nexit_with_last_window: false\nwindow:\n  fullscreen: true\n"), 0o644))
	c, err := Open(file)
	require.NoError(t, err)
	co, err := c.ContextOptions()
	require.NoError(t, err)
	assert.Zero(t, co.Timeout)
	assert.False(t, co.ExitWithLastWindow)
	assert.True(t, c.Window.Fullscreen)
}

func TestOpenErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := Open(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("colour = 1\n"), 0o644))
	_, err = Open(bad)
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.toml")
	require.NoError(t, os.WriteFile(invalid, []byte("timeout = \"soon\"\n"), 0o644))
	_, err = Open(invalid)
	assert.Error(t, err)

	_, err = Open(filepath.Join(dir, "config.ini"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	c := Default()
	c.Backend = "vulkan"
	c.Window.Background = "#ffffff80"
	for _, name := range []string{"c.toml", "c.yml"} {
		file := filepath.Join(t.TempDir(), "sub", name)
		require.NoError(t, c.Save(file))
		got, err := Open(file)
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
}

func TestMerge(t *testing.T) {
	c := Default()
	require.NoError(t, c.Merge(&Config{SaveDir: "out", Window: Window{Width: 100}}))
	assert.Equal(t, "out", c.SaveDir)
	assert.Equal(t, 100, c.Window.Width)
	assert.Equal(t, "info", c.LogLevel)
	assert.True(t, c.Window.PreserveAspectRatio)
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#fa0")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 170, 0, 255}, c)
	c, err = ParseHex("00000080")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 0, 0, 128}, c)
	_, err = ParseHex("#12345")
	assert.Error(t, err)
	_, err = ParseHex("#gg0000")
	assert.Error(t, err)
	assert.Equal(t, "#0a0b0c", FormatHex(color.RGBA{10, 11, 12, 255}))
	assert.Equal(t, "#0a0b0c0d", FormatHex(color.RGBA{10, 11, 12, 13}))
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(BackendEnv, "")
	t.Setenv(gpu.BackendEnv, "")
	t.Setenv(gpu.PowerEnv, "")
	c := Default()
	c.Backend = "gl"
	c.PowerPreference = "low"
	c.ApplyEnv()
	assert.Equal(t, "gl", os.Getenv(gpu.BackendEnv))
	assert.Equal(t, "low", os.Getenv(gpu.PowerEnv))

	t.Setenv(BackendEnv, "metal")
	c.ApplyEnv()
	assert.Equal(t, "metal", os.Getenv(gpu.BackendEnv))
}
