// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package system_test

import (
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"cogentcore.org/showimage/base/errors"
	"cogentcore.org/showimage/events"
	"cogentcore.org/showimage/events/key"
	"cogentcore.org/showimage/geom"
	"cogentcore.org/showimage/imagex"
	"cogentcore.org/showimage/system"
	"cogentcore.org/showimage/system/driver/offscreen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t    *testing.T
	p    system.ContextProxy
	drv  *offscreen.Driver
	rend *offscreen.Renderer
}

// flush returns once everything sent before it has been handled
// and any redraw it caused has been rendered.
func (h *harness) flush() {
	for range 2 {
		assert.NoError(h.t, h.p.RunFunctionWait(func(*system.Context) {}))
	}
}

// onLoop runs f on the event loop and waits for it.
func (h *harness) onLoop(f func(c *system.Context)) {
	assert.NoError(h.t, h.p.RunFunctionWait(f))
}

func (h *harness) surface(id events.WindowID) (s offscreen.Surface) {
	h.onLoop(func(c *system.Context) {
		if sf := h.rend.Surface(id); sf != nil {
			s = *sf
		}
	})
	return
}

// runContext creates a context on the test goroutine, runs f with a
// proxy on another goroutine, and runs the event loop until f returns.
// It waits for f to return, and returns the exit code.
func runContext(t *testing.T, opts system.ContextOptions, f func(h *harness)) int {
	t.Helper()
	drv := offscreen.NewDriver()
	rend := offscreen.NewRenderer()
	c, err := system.NewContext(drv, rend, opts)
	require.NoError(t, err)
	code := -1
	c.SetExitFunc(func(cd int) { code = cd })
	h := &harness{t: t, p: c.Proxy(), drv: drv, rend: rend}
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer h.p.RunFunction(func(c *system.Context) { c.Exit(0) })
		f(h)
	}()
	c.Run()
	<-done
	assert.True(t, drv.Terminated())
	assert.True(t, rend.Released())
	return code
}

func solid(w, h int, c color.RGBA) imagex.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return imagex.FromImage(img)
}

func windowOpts(w, h int) system.WindowOptions {
	opts := system.DefaultWindowOptions()
	opts.Size = image.Pt(w, h)
	return opts
}

func TestCreateAndSetImage(t *testing.T) {
	code := runContext(t, system.DefaultContextOptions(), func(h *harness) {
		win, err := h.p.CreateWindow("image", windowOpts(800, 600))
		if !assert.NoError(t, err) {
			return
		}
		assert.NoError(t, win.SetImage("square", solid(400, 400, color.RGBA{255, 0, 0, 255})))
		h.flush()

		s := h.surface(win.ID())
		assert.Equal(t, 1, s.UniformUploads)
		u := s.Uniforms()
		assert.InDelta(t, 0.75, u.Scale.X, 1e-4)
		assert.InDelta(t, 1, u.Scale.Y, 1e-4)
		assert.InDelta(t, 0.125, u.Offset.X, 1e-4)
		assert.Equal(t, geom.V2(400, 400), u.ImageSize)

		assert.Equal(t, color.RGBA{0, 0, 0, 255}, s.ColorAt(10, 300))
		assert.Equal(t, color.RGBA{255, 0, 0, 255}, s.ColorAt(400, 300))

		var capture *image.RGBA
		assert.NoError(t, win.RunFunctionWait(func(w *system.Window) {
			assert.Equal(t, "square", w.ImageName())
			assert.False(t, w.IsDirty())
			assert.True(t, w.IsVisible())
			capture, err = w.Capture(true)
		}))
		if assert.NoError(t, err) && assert.NotNil(t, capture) {
			imagex.AssertGo(t, capture, "create-and-set-image")
		}
	})
	assert.Equal(t, 0, code)
}

func TestUniformsOnlyUploadedWhenDirty(t *testing.T) {
	runContext(t, system.DefaultContextOptions(), func(h *harness) {
		win, err := h.p.CreateWindow("dirty", windowOpts(800, 600))
		if !assert.NoError(t, err) {
			return
		}
		assert.NoError(t, win.SetImage("a", solid(8, 8, color.RGBA{0, 255, 0, 255})))
		h.flush()
		frames := h.surface(win.ID()).Frames

		assert.NoError(t, win.RunFunctionWait(func(w *system.Window) { w.RequestRedraw() }))
		h.flush()
		s := h.surface(win.ID())
		assert.Equal(t, 1, s.UniformUploads)
		assert.Equal(t, frames+1, s.Frames)

		h.drv.Inject(events.Raw{Kind: events.RawResized, Window: win.ID(), Size: image.Pt(400, 600)})
		h.flush()
		s = h.surface(win.ID())
		assert.Equal(t, 2, s.UniformUploads)
		assert.InDelta(t, 2.0/3, s.Uniforms().Scale.Y, 1e-4)
		assert.InDelta(t, 1.0/6, s.Uniforms().Offset.Y, 1e-4)
	})
}

func TestInvalidWindowID(t *testing.T) {
	runContext(t, system.DefaultContextOptions(), func(h *harness) {
		win, err := h.p.CreateWindow("gone", windowOpts(100, 100))
		if !assert.NoError(t, err) {
			return
		}
		assert.NoError(t, win.Destroy())

		img := solid(2, 2, color.RGBA{A: 255})
		assert.ErrorIs(t, win.Destroy(), system.ErrInvalidWindowID)
		assert.ErrorIs(t, win.SetVisible(false), system.ErrInvalidWindowID)
		assert.ErrorIs(t, win.SetImage("x", img), system.ErrInvalidWindowID)
		assert.ErrorIs(t, h.p.SetWindowImage(999, "x", img), system.ErrInvalidWindowID)
		var ie *system.InvalidWindowIDError
		if assert.True(t, errors.As(h.p.DestroyWindow(999), &ie)) {
			assert.Equal(t, events.WindowID(999), ie.ID)
		}
	})
}

func TestInvalidImageRejected(t *testing.T) {
	runContext(t, system.DefaultContextOptions(), func(h *harness) {
		win, err := h.p.CreateWindow("bad", windowOpts(100, 100))
		if !assert.NoError(t, err) {
			return
		}
		v, err := imagex.NewView(imagex.NewInfo(imagex.Rgba8, 4, 4), make([]byte, 64))
		if !assert.NoError(t, err) {
			return
		}
		assert.NoError(t, win.SetImage("ok", v))
		_, err = imagex.NewView(imagex.NewInfo(imagex.Rgba8, 4, 4), make([]byte, 10))
		assert.Error(t, err)
	})
}

func TestDeadlockGuard(t *testing.T) {
	runContext(t, system.DefaultContextOptions(), func(h *harness) {
		h.onLoop(func(c *system.Context) {
			p := c.Proxy()
			assert.True(t, p.IsOwner())
			assert.Panics(t, func() { p.RunFunctionWait(func(*system.Context) {}) })
			assert.Panics(t, func() { p.CreateWindow("x", system.DefaultWindowOptions()) })
			assert.Panics(t, func() { p.Exit(1) })
			assert.NotPanics(t, func() { p.RunFunction(func(*system.Context) {}) })
		})
		assert.False(t, h.p.IsOwner())
		assert.NotPanics(t, func() {
			assert.NoError(t, h.p.RunFunctionWait(func(*system.Context) {}))
		})

		other := make(chan bool)
		go func() { other <- h.p.IsOwner() }()
		assert.False(t, <-other)
	})
}

func TestContextExists(t *testing.T) {
	runContext(t, system.DefaultContextOptions(), func(h *harness) {
		_, err := system.NewContext(offscreen.NewDriver(), offscreen.NewRenderer(), system.DefaultContextOptions())
		assert.ErrorIs(t, err, system.ErrContextExists)
	})
	// released on exit
	runContext(t, system.DefaultContextOptions(), func(h *harness) {})
}

func TestTimeoutAndClosed(t *testing.T) {
	opts := system.DefaultContextOptions()
	opts.Timeout = 50 * time.Millisecond
	var p system.ContextProxy
	runContext(t, opts, func(h *harness) {
		p = h.p
		assert.NoError(t, h.p.RunFunction(func(*system.Context) { time.Sleep(300 * time.Millisecond) }))
		_, err := h.p.CreateWindow("late", system.DefaultWindowOptions())
		assert.ErrorIs(t, err, system.ErrTimeout)
	})

	done := make(chan error)
	go func() {
		_, err := p.CreateWindow("closed", system.DefaultWindowOptions())
		done <- err
	}()
	assert.ErrorIs(t, <-done, system.ErrEventLoopClosed)
	go func() { done <- p.RunFunction(func(*system.Context) {}) }()
	assert.ErrorIs(t, <-done, system.ErrEventLoopClosed)
}

func TestBackgroundTasksJoinedAtExit(t *testing.T) {
	var finished atomic.Bool
	code := runContext(t, system.DefaultContextOptions(), func(h *harness) {
		assert.NoError(t, h.p.RunBackgroundTask(func() {
			time.Sleep(100 * time.Millisecond)
			finished.Store(true)
		}))
	})
	assert.True(t, finished.Load())
	assert.Equal(t, 0, code)
}

func TestExitCode(t *testing.T) {
	code := runContext(t, system.DefaultContextOptions(), func(h *harness) {
		h.p.RunFunction(func(c *system.Context) {
			c.Exit(3)
			c.Exit(4)
		})
	})
	assert.Equal(t, 3, code)
}

func TestExitAbortsQueuedCommands(t *testing.T) {
	var ran atomic.Bool
	code := runContext(t, system.DefaultContextOptions(), func(h *harness) {
		assert.NoError(t, h.p.RunFunction(func(*system.Context) { ran.Store(true) }))
		assert.NoError(t, h.p.RunFunction(func(c *system.Context) { c.Exit(5) }))
		_, err := h.p.CreateWindow("too late", system.DefaultWindowOptions())
		assert.ErrorIs(t, err, system.ErrEventLoopClosed)
		assert.ErrorIs(t, h.p.RunBackgroundTask(func() {}), system.ErrEventLoopClosed)
	})
	assert.True(t, ran.Load())
	assert.Equal(t, 5, code)
}

func TestEventChannel(t *testing.T) {
	runContext(t, system.DefaultContextOptions(), func(h *harness) {
		ch, err := h.p.EventChannel()
		if !assert.NoError(t, err) {
			return
		}
		var before int
		h.onLoop(func(c *system.Context) { before = c.NumEventHandlers() })
		assert.Equal(t, 1, before)

		assert.NoError(t, h.p.SendCustom(42))
		for {
			ev, err := ch.RecvTimeout(time.Second)
			if !assert.NoError(t, err) {
				return
			}
			if ce, ok := ev.(events.CustomEvent); ok {
				assert.Equal(t, 42, ce.Value)
				break
			}
		}

		h.onLoop(func(c *system.Context) { assert.Equal(t, 1, c.NumReceivers()) })
		ch.Close()
		assert.NoError(t, h.p.SendCustom(43))
		h.flush()
		h.onLoop(func(c *system.Context) {
			assert.Equal(t, 0, c.NumEventHandlers())
			assert.Equal(t, 0, c.NumReceivers())
		})
	})
}

func TestWindowEventChannel(t *testing.T) {
	runContext(t, system.DefaultContextOptions(), func(h *harness) {
		win, err := h.p.CreateWindow("mouse", windowOpts(200, 200))
		if !assert.NoError(t, err) {
			return
		}
		ch, err := win.EventChannel()
		if !assert.NoError(t, err) {
			return
		}
		h.drv.Inject(
			events.Raw{Kind: events.RawCursorMoved, Window: win.ID(), Pos: geom.V2(10, 10)},
			events.Raw{Kind: events.RawCursorMoved, Window: win.ID(), Pos: geom.V2(15, 10)},
		)
		var moves []events.WindowMouseMove
		for len(moves) < 2 {
			ev, err := ch.RecvTimeout(time.Second)
			if !assert.NoError(t, err) {
				return
			}
			if mv, ok := ev.(events.WindowMouseMove); ok {
				moves = append(moves, mv)
			}
		}
		assert.Equal(t, geom.Vec2{}, moves[0].Delta())
		assert.Equal(t, geom.V2(5, 0), moves[1].Delta())
		assert.Equal(t, geom.V2(1, 0), moves[1].Direction())

		assert.NoError(t, win.Destroy())
		for {
			_, err := ch.RecvTimeout(time.Second)
			if err != nil {
				assert.ErrorIs(t, err, system.ErrEventLoopClosed)
				break
			}
		}
	})
}

func TestCloseRequested(t *testing.T) {
	runContext(t, system.DefaultContextOptions(), func(h *harness) {
		keep, err := h.p.CreateWindow("keep", windowOpts(100, 100))
		if !assert.NoError(t, err) {
			return
		}
		var contextSaw atomic.Int32
		assert.NoError(t, h.p.AddEventHandler(func(c *system.Context, ev events.Event, cf *events.ControlFlow) {
			if _, ok := ev.(events.WindowCloseRequested); ok {
				contextSaw.Add(1)
			}
		}))
		assert.NoError(t, keep.AddEventHandler(func(w *system.Window, ev events.Event, cf *events.ControlFlow) {
			if _, ok := ev.(events.WindowCloseRequested); ok {
				cf.PreventClose = true
			}
		}))
		h.drv.Inject(events.Raw{Kind: events.RawCloseRequested, Window: keep.ID()})
		h.flush()
		assert.Equal(t, int32(1), contextSaw.Load())
		assert.Equal(t, []events.WindowID{keep.ID()}, h.windows())

		closing, err := h.p.CreateWindow("close", windowOpts(100, 100))
		if !assert.NoError(t, err) {
			return
		}
		h.drv.Inject(events.Raw{Kind: events.RawCloseRequested, Window: closing.ID()})
		assert.NoError(t, closing.WaitUntilDestroyed())
		assert.Equal(t, int32(2), contextSaw.Load())
		assert.Equal(t, []events.WindowID{keep.ID()}, h.windows())
	})
}

func TestStopPropagationKeepsDefaultAction(t *testing.T) {
	runContext(t, system.DefaultContextOptions(), func(h *harness) {
		win, err := h.p.CreateWindow("resize", windowOpts(100, 100))
		if !assert.NoError(t, err) {
			return
		}
		assert.NoError(t, win.SetImage("a", solid(4, 4, color.RGBA{255, 0, 0, 255})))
		var contextSaw atomic.Bool
		assert.NoError(t, h.p.AddEventHandler(func(c *system.Context, ev events.Event, cf *events.ControlFlow) {
			if _, ok := ev.(events.WindowResized); ok {
				contextSaw.Store(true)
			}
		}))
		assert.NoError(t, win.AddEventHandler(func(w *system.Window, ev events.Event, cf *events.ControlFlow) {
			switch ev.(type) {
			case events.WindowResized, events.WindowCloseRequested:
				cf.StopPropagation = true
			}
		}))
		h.drv.Inject(events.Raw{Kind: events.RawResized, Window: win.ID(), Size: image.Pt(300, 200)})
		h.flush()
		assert.False(t, contextSaw.Load())
		assert.NoError(t, win.RunFunctionWait(func(w *system.Window) {
			assert.Equal(t, image.Pt(300, 200), w.Size())
			assert.False(t, w.IsDirty())
		}))
		s := h.surface(win.ID())
		u := s.Uniforms()
		assert.InDelta(t, 200.0/300, u.Scale.X, 1e-4)

		h.drv.Inject(events.Raw{Kind: events.RawCloseRequested, Window: win.ID()})
		assert.NoError(t, win.WaitUntilDestroyed())
	})
}

func TestDestroyFromContextHandler(t *testing.T) {
	runContext(t, system.DefaultContextOptions(), func(h *harness) {
		win, err := h.p.CreateWindow("nested", windowOpts(100, 100))
		if !assert.NoError(t, err) {
			return
		}
		ch, err := h.p.EventChannel()
		if !assert.NoError(t, err) {
			return
		}
		assert.NoError(t, h.p.AddEventHandler(func(c *system.Context, ev events.Event, cf *events.ControlFlow) {
			if ce, ok := ev.(events.CustomEvent); ok && ce.Value == "destroy" {
				assert.NoError(t, c.DestroyWindow(win.ID()))
			}
		}))
		var allClosed atomic.Bool
		assert.NoError(t, h.p.AddEventHandler(func(c *system.Context, ev events.Event, cf *events.ControlFlow) {
			if ev.Type() == events.AllWindowsClosed {
				allClosed.Store(true)
			}
		}))

		handlers := func() (n int) {
			h.onLoop(func(c *system.Context) { n = c.NumEventHandlers() })
			return
		}
		before := handlers()
		destroyed := make(chan error, 1)
		go func() { destroyed <- win.WaitUntilDestroyed() }()
		for i := 0; handlers() == before && i < 1000; i++ {
			time.Sleep(time.Millisecond)
		}
		assert.NoError(t, h.p.SendCustom("destroy"))
		select {
		case err := <-destroyed:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			assert.Fail(t, "WaitUntilDestroyed still blocked after the window was destroyed")
			return
		}
		assert.True(t, allClosed.Load())

		sawDestroyed := false
		for !sawDestroyed {
			ev, err := ch.RecvTimeout(time.Second)
			if !assert.NoError(t, err) {
				return
			}
			if d, ok := ev.(events.WindowDestroyed); ok {
				sawDestroyed = d.Window == win.ID()
			}
		}
		ch.Close()
	})
}

func (h *harness) windows() []events.WindowID {
	var ids []events.WindowID
	h.onLoop(func(c *system.Context) {
		for _, w := range c.Windows() {
			ids = append(ids, w.ID())
		}
	})
	return ids
}

func TestExitWithLastWindow(t *testing.T) {
	opts := system.DefaultContextOptions()
	opts.ExitWithLastWindow = true
	var allClosed atomic.Bool
	code := runContext(t, opts, func(h *harness) {
		assert.NoError(t, h.p.AddEventHandler(func(c *system.Context, ev events.Event, cf *events.ControlFlow) {
			if ev.Type() == events.AllWindowsClosed {
				allClosed.Store(true)
			}
		}))
		win, err := h.p.CreateWindow("last", windowOpts(100, 100))
		if !assert.NoError(t, err) {
			return
		}
		assert.NoError(t, win.Destroy())
	})
	assert.True(t, allClosed.Load())
	assert.Equal(t, 0, code)
}

func TestDefaultControls(t *testing.T) {
	runContext(t, system.DefaultContextOptions(), func(h *harness) {
		win, err := h.p.CreateWindow("controls", windowOpts(800, 600))
		if !assert.NoError(t, err) {
			return
		}
		assert.NoError(t, win.SetImage("img", solid(800, 600, color.RGBA{0, 0, 255, 255})))
		id := win.ID()
		transform := func() (tr system.Transform) {
			assert.NoError(t, win.RunFunctionWait(func(w *system.Window) { tr = w.Transform() }))
			return
		}

		h.drv.Inject(
			events.Raw{Kind: events.RawCursorMoved, Window: id, Pos: geom.V2(400, 300)},
			events.Raw{Kind: events.RawMouseWheel, Window: id, Delta: geom.V2(0, 1)},
		)
		h.flush()
		tr := transform()
		assert.InDelta(t, 1.1, tr.Scale.X, 1e-4)
		assert.InDelta(t, 1.1, tr.Scale.Y, 1e-4)
		assert.InDelta(t, -0.05, tr.Offset.X, 1e-4)
		assert.InDelta(t, -0.05, tr.Offset.Y, 1e-4)

		h.drv.Inject(
			events.Raw{Kind: events.RawMouseInput, Window: id, Button: events.Left, Pressed: true},
			events.Raw{Kind: events.RawCursorMoved, Window: id, Pos: geom.V2(480, 300)},
			events.Raw{Kind: events.RawMouseInput, Window: id, Button: events.Left},
			events.Raw{Kind: events.RawCursorMoved, Window: id, Pos: geom.V2(500, 300)},
		)
		h.flush()
		tr = transform()
		assert.InDelta(t, 0.05, tr.Offset.X, 1e-4)
		assert.InDelta(t, -0.05, tr.Offset.Y, 1e-4)

		h.drv.Inject(events.Raw{Kind: events.RawKeyboardInput, Window: id, Key: key.CodeR, Pressed: true})
		h.flush()
		assert.True(t, transform().IsIdentity())
	})
}

func TestSaveShortcut(t *testing.T) {
	opts := system.DefaultContextOptions()
	opts.SaveDir = t.TempDir()
	runContext(t, opts, func(h *harness) {
		win, err := h.p.CreateWindow("save", windowOpts(64, 64))
		if !assert.NoError(t, err) {
			return
		}
		assert.NoError(t, win.SetImage("dir/test", solid(4, 2, color.RGBA{255, 255, 0, 255})))
		h.drv.Inject(events.Raw{Kind: events.RawKeyboardInput, Window: win.ID(), Key: key.CodeS,
			Pressed: true, Mods: key.Control})
		h.flush()
	})

	saved := filepath.Join(opts.SaveDir, "test.png")
	_, err := os.Stat(saved)
	require.NoError(t, err)
	img, _, err := imagex.Open(saved)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(4, 2), img.Bounds().Size())
}
