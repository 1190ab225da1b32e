// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFromFlags(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, LevelFromFlags(true, false, true))
	assert.Equal(t, slog.LevelInfo, LevelFromFlags(false, true, false))
	assert.Equal(t, slog.LevelError, LevelFromFlags(false, false, true))
	assert.Equal(t, slog.LevelWarn, LevelFromFlags(false, false, false))
}

func TestHandler(t *testing.T) {
	buf := &bytes.Buffer{}
	l := slog.New(NewHandler(buf, slog.LevelInfo))
	l.Debug("this is debug")
	l.Info("this is info", "window", 3)
	l.WithGroup("gpu").Warn("this is warn", "adapter", "none")

	out := buf.String()
	assert.NotContains(t, out, "this is debug")
	assert.Contains(t, out, "this is info")
	assert.Contains(t, out, "window=3")
	assert.Contains(t, out, "gpu.adapter=none")
}

func TestDefaultLogger(t *testing.T) {
	UserLevel = slog.LevelDebug
	SetDefaultLogger()

	slog.Debug("this is debug")
	slog.Info("this is info")
	slog.Warn("this is warn")
}
