// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

// Handler is a [slog.Handler] that writes one line per record,
// coloring the level and message based on severity when the
// output supports it.
type Handler struct {
	level  slog.Leveler
	out    *termenv.Output
	mu     *sync.Mutex
	attrs  []slog.Attr
	groups []string
}

var _ slog.Handler = &Handler{}

// NewHandler returns a new [Handler] writing to w at the given level.
func NewHandler(w io.Writer, level slog.Leveler) *Handler {
	return &Handler{
		level: level,
		out:   termenv.NewOutput(w),
		mu:    &sync.Mutex{},
	}
}

func (h *Handler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	buf := &bytes.Buffer{}
	if !r.Time.IsZero() {
		buf.WriteString(r.Time.Format(time.TimeOnly))
		buf.WriteByte(' ')
	}
	color := levelColor(r.Level)
	buf.WriteString(h.out.String(r.Level.String()).Foreground(color).Bold().String())
	buf.WriteByte(' ')
	buf.WriteString(h.out.String(r.Message).Foreground(color).String())
	for _, a := range h.attrs {
		h.writeAttr(buf, a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(buf, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.out.Write(buf.Bytes())
	return err
}

func (h *Handler) writeAttr(buf *bytes.Buffer, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	for i := len(h.groups) - 1; i >= 0; i-- {
		key = h.groups[i] + "." + key
	}
	fmt.Fprintf(buf, " %s=%v", h.out.String(key).Faint(), a.Value.Resolve())
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &nh
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	nh.groups = append(append([]string{}, h.groups...), name)
	return &nh
}

// levelColor returns the color used for messages at the given level.
func levelColor(l slog.Level) termenv.Color {
	switch {
	case l >= slog.LevelError:
		return termenv.ANSIRed
	case l >= slog.LevelWarn:
		return termenv.ANSIYellow
	case l >= slog.LevelInfo:
		return termenv.ANSICyan
	default:
		return termenv.ANSIBrightBlack
	}
}
