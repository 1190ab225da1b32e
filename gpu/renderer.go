// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"

	"cogentcore.org/showimage/base/errors"
	"cogentcore.org/showimage/imagex"
	"cogentcore.org/showimage/system"
	"github.com/cogentcore/webgpu/wgpu"
)

const uniformsAllocSize = system.UniformsSize

// Renderer implements [system.Renderer] with WebGPU. The device is
// created lazily for the first window, so that the adapter is one
// that can present to it.
type Renderer struct {
	instance *wgpu.Instance
	gpu      *GPU
	pipeline *Pipeline
}

// NewRenderer returns a new renderer. No GPU resources are
// allocated until they are needed.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// GPU returns the GPU, or nil if it was not initialized yet.
func (r *Renderer) GPU() *GPU {
	return r.gpu
}

func (r *Renderer) init(compatible *wgpu.Surface) error {
	if r.gpu != nil {
		return nil
	}
	if r.instance == nil {
		inst, err := NewInstance()
		if err != nil {
			return err
		}
		r.instance = inst
	}
	gp, err := NewGPU(r.instance, compatible)
	if err != nil {
		return err
	}
	pl, err := NewPipeline(gp)
	if err != nil {
		gp.Release()
		return &system.DeviceError{Err: err}
	}
	r.gpu, r.pipeline = gp, pl
	return nil
}

func (r *Renderer) NewSurface(nw system.NativeWindow, size image.Point) (system.Surface, error) {
	src, ok := nw.(SurfaceSource)
	if !ok {
		return nil, fmt.Errorf("gpu: native window %T can not be rendered to", nw)
	}
	if r.instance == nil {
		inst, err := NewInstance()
		if err != nil {
			return nil, err
		}
		r.instance = inst
	}
	ws := r.instance.CreateSurface(src.SurfaceDescriptor())
	if err := r.init(ws); err != nil {
		ws.Release()
		return nil, err
	}
	return newSurface(r, ws, size)
}

func (r *Renderer) UploadImage(img imagex.Image) (system.Texture, error) {
	if err := r.init(nil); err != nil {
		return nil, err
	}
	return NewTexture(r.gpu, r.pipeline, img)
}

// targetFormat is the format of offscreen render targets.
const targetFormat = wgpu.TextureFormatRGBA8Unorm

// RenderToImage renders the frame into a new image of the given size.
func (r *Renderer) RenderToImage(size image.Point, fr *system.Frame, uniforms system.WindowUniforms) (*image.RGBA, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, fmt.Errorf("gpu: invalid render size %v", size)
	}
	if err := r.init(nil); err != nil {
		return nil, err
	}
	gp := r.gpu
	target, err := gp.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "capture",
		Size:          wgpu.Extent3D{Width: uint32(size.X), Height: uint32(size.Y), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        targetFormat,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopySrc,
	})
	if errors.Log(err) != nil {
		return nil, &system.DeviceError{Err: err}
	}
	defer target.Release()
	view, err := target.CreateView(nil)
	if errors.Log(err) != nil {
		return nil, &system.DeviceError{Err: err}
	}
	defer view.Release()

	ubs := make([]*uniformBuffer, 0, len(fr.Overlays)+1)
	defer func() {
		for _, ub := range ubs {
			ub.release()
		}
	}()
	ub, err := newUniformBuffer(gp, r.pipeline, "capture")
	if err != nil {
		return nil, err
	}
	ubs = append(ubs, ub)
	ub.write(gp, uniforms.Bytes())
	var overlays []*overlayBinding
	for _, o := range fr.Overlays {
		tx, ok := o.Texture.(*Texture)
		if !ok {
			return nil, errors.New("gpu: overlay texture was not created by this renderer")
		}
		oub, err := newUniformBuffer(gp, r.pipeline, "capture overlay")
		if err != nil {
			return nil, err
		}
		ubs = append(ubs, oub)
		oub.write(gp, o.Uniforms.Bytes())
		overlays = append(overlays, &overlayBinding{texture: tx, uniforms: oub})
	}

	rb := NewReadBuffer(size)
	buf, err := gp.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "capture read",
		Size:  rb.Size(),
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if errors.Log(err) != nil {
		return nil, &system.DeviceError{Err: err}
	}
	defer buf.Release()

	copyOut := func(enc *wgpu.CommandEncoder) {
		enc.CopyTextureToBuffer(
			&wgpu.ImageCopyTexture{
				Aspect:   wgpu.TextureAspectAll,
				Texture:  target,
				MipLevel: 0,
				Origin:   wgpu.Origin3D{},
			},
			&wgpu.ImageCopyBuffer{
				Buffer: buf,
				Layout: wgpu.TextureDataLayout{
					Offset:       0,
					BytesPerRow:  rb.BytesPerRow,
					RowsPerImage: uint32(size.Y),
				},
			},
			&wgpu.Extent3D{Width: uint32(size.X), Height: uint32(size.Y), DepthOrArrayLayers: 1},
		)
	}
	if err := r.encode(view, targetFormat, fr, ub.bindGroup, overlays, copyOut); err != nil {
		return nil, err
	}
	if err := BufferReadSync(gp, int(rb.Size()), buf); err != nil {
		return nil, &system.DeviceError{Err: err}
	}
	img := rb.Image(buf.GetMappedRange(0, uint(rb.Size())))
	buf.Unmap()
	return img, nil
}

// encode records and submits a render pass that clears the view to
// the frame background and draws the frame. If after is non-nil it
// is called with the encoder once the pass has ended.
func (r *Renderer) encode(view *wgpu.TextureView, format wgpu.TextureFormat, fr *system.Frame, window *wgpu.BindGroup, overlays []*overlayBinding, after func(enc *wgpu.CommandEncoder)) error {
	gp := r.gpu
	rp, err := r.pipeline.RenderPipeline(format)
	if err != nil {
		return &system.DeviceError{Err: err}
	}
	var image *Texture
	if fr.Image != nil {
		tx, ok := fr.Image.(*Texture)
		if !ok {
			return errors.New("gpu: image texture was not created by this renderer")
		}
		image = tx
	}
	enc, err := gp.Device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "frame"})
	if errors.Log(err) != nil {
		return &system.DeviceError{Err: err}
	}
	defer enc.Release()
	pass := enc.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: ClearColor(fr.Background),
		}},
	})
	r.pipeline.draw(pass, rp, image, window, overlays)
	pass.End()
	pass.Release()
	if after != nil {
		after(enc)
	}
	cmd, err := enc.Finish(nil)
	if errors.Log(err) != nil {
		return &system.DeviceError{Err: err}
	}
	defer cmd.Release()
	gp.Queue.Submit(cmd)
	return nil
}

func (r *Renderer) Release() {
	if r.pipeline != nil {
		r.pipeline.Release()
		r.pipeline = nil
	}
	if r.gpu != nil {
		r.gpu.Release()
		r.gpu = nil
	}
	if r.instance != nil {
		r.instance.Release()
		r.instance = nil
	}
}

// ReadBuffer describes the layout of a texture copied into a buffer,
// whose rows are padded to [wgpu.CopyBytesPerRowAlignment].
type ReadBuffer struct {
	ImageSize   image.Point
	BytesPerRow uint32
}

// NewReadBuffer returns the read buffer layout for an RGBA8 texture of the given size.
func NewReadBuffer(size image.Point) ReadBuffer {
	row := uint32(4 * size.X)
	align := uint32(wgpu.CopyBytesPerRowAlignment)
	return ReadBuffer{ImageSize: size, BytesPerRow: (row + align - 1) / align * align}
}

// Size returns the size of the buffer in bytes.
func (rb ReadBuffer) Size() uint64 {
	return uint64(rb.BytesPerRow) * uint64(rb.ImageSize.Y)
}

// Image converts the unpremultiplied buffer contents to an image.
func (rb ReadBuffer) Image(data []byte) *image.RGBA {
	nrgba := image.NewNRGBA(image.Rectangle{Max: rb.ImageSize})
	row := 4 * rb.ImageSize.X
	for y := range rb.ImageSize.Y {
		src := data[y*int(rb.BytesPerRow):]
		copy(nrgba.Pix[y*nrgba.Stride:y*nrgba.Stride+row], src[:row])
	}
	return imagex.ToRGBA(imagex.FromImage(nrgba))
}

// BufferReadSync maps the given buffer for reading, waiting on the device
// until the mapping is complete.
func BufferReadSync(gp *GPU, size int, buffer *wgpu.Buffer) error {
	var status wgpu.BufferMapAsyncStatus
	err := buffer.MapAsync(wgpu.MapModeRead, 0, uint64(size), func(s wgpu.BufferMapAsyncStatus) {
		status = s
	})
	if errors.Log(err) != nil {
		return err
	}
	gp.WaitDone()
	if status != wgpu.BufferMapAsyncStatusSuccess {
		return errors.New("gpu: BufferMapAsync was not successful")
	}
	return nil
}

var _ system.Renderer = (*Renderer)(nil)
