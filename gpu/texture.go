// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"encoding/binary"

	"cogentcore.org/showimage/base/errors"
	"cogentcore.org/showimage/imagex"
	"github.com/cogentcore/webgpu/wgpu"
)

// Texture is an image uploaded to the GPU. The pixel data is kept in
// its original layout in a storage buffer and decoded by the shader,
// so any [imagex.PixelFormat] can be displayed without conversion.
type Texture struct {
	info imagex.Info

	infoBuffer *wgpu.Buffer
	dataBuffer *wgpu.Buffer
	bindGroup  *wgpu.BindGroup
}

// ImageInfoBytes returns the contents of the image info uniform.
func ImageInfoBytes(info imagex.Info) []byte {
	b := make([]byte, ImageInfoSize)
	binary.LittleEndian.PutUint32(b[0:], uint32(info.Format))
	binary.LittleEndian.PutUint32(b[4:], uint32(info.Size.X))
	binary.LittleEndian.PutUint32(b[8:], uint32(info.Size.Y))
	binary.LittleEndian.PutUint32(b[12:], uint32(info.Stride.X))
	binary.LittleEndian.PutUint32(b[16:], uint32(info.Stride.Y))
	return b
}

// ImageDataBytes returns the image data, padded to a whole number
// of 32 bit words as required for storage buffers.
func ImageDataBytes(img imagex.Image) []byte {
	data := img.Data()[:img.Info().ByteSize()]
	if len(data)%4 == 0 {
		return data
	}
	padded := make([]byte, (len(data)+3)/4*4)
	copy(padded, data)
	return padded
}

// NewTexture uploads the given image to the GPU.
func NewTexture(gp *GPU, pl *Pipeline, img imagex.Image) (*Texture, error) {
	info := img.Info()
	if err := info.Validate(len(img.Data())); err != nil {
		return nil, err
	}
	tx := &Texture{info: info}
	var err error
	tx.infoBuffer, err = gp.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "image info",
		Contents: ImageInfoBytes(info),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	tx.dataBuffer, err = gp.Device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "image data",
		Contents: ImageDataBytes(img),
		Usage:    wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
	})
	if errors.Log(err) != nil {
		tx.Release()
		return nil, err
	}
	tx.bindGroup, err = pl.imageBindGroup(tx.infoBuffer, tx.dataBuffer)
	if errors.Log(err) != nil {
		tx.Release()
		return nil, err
	}
	return tx, nil
}

func (tx *Texture) Info() imagex.Info { return tx.info }

func (tx *Texture) Release() {
	if tx.bindGroup != nil {
		tx.bindGroup.Release()
		tx.bindGroup = nil
	}
	if tx.dataBuffer != nil {
		tx.dataBuffer.Release()
		tx.dataBuffer = nil
	}
	if tx.infoBuffer != nil {
		tx.infoBuffer.Release()
		tx.infoBuffer = nil
	}
}

// uniformBuffer is a window uniforms buffer with its bind group.
type uniformBuffer struct {
	buffer    *wgpu.Buffer
	bindGroup *wgpu.BindGroup
}

func newUniformBuffer(gp *GPU, pl *Pipeline, label string) (*uniformBuffer, error) {
	ub := &uniformBuffer{}
	var err error
	ub.buffer, err = gp.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uniformsAllocSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	ub.bindGroup, err = pl.windowBindGroup(ub.buffer)
	if errors.Log(err) != nil {
		ub.release()
		return nil, err
	}
	return ub, nil
}

func (ub *uniformBuffer) write(gp *GPU, data []byte) {
	gp.Queue.WriteBuffer(ub.buffer, 0, data)
}

func (ub *uniformBuffer) release() {
	if ub.bindGroup != nil {
		ub.bindGroup.Release()
		ub.bindGroup = nil
	}
	if ub.buffer != nil {
		ub.buffer.Release()
		ub.buffer = nil
	}
}

// overlayBinding is an overlay texture with the uniforms to draw it with.
type overlayBinding struct {
	texture  *Texture
	uniforms *uniformBuffer
}
