// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	_ "embed"

	"cogentcore.org/showimage/base/errors"
	"cogentcore.org/showimage/system"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed shaders/image.wgsl
var imageShader string

// ImageInfoSize is the size of the image info uniform in bytes.
const ImageInfoSize = 32

// Pipeline draws images stored in [Texture] buffers. The window
// uniforms are bind group 0 and the image is bind group 1.
// Render pipelines are created lazily for each target format.
type Pipeline struct {
	gpu *GPU

	module *wgpu.ShaderModule

	windowLayout *wgpu.BindGroupLayout
	imageLayout  *wgpu.BindGroupLayout
	layout       *wgpu.PipelineLayout

	pipelines map[wgpu.TextureFormat]*wgpu.RenderPipeline
}

// NewPipeline compiles the image shader and creates the bind group layouts.
func NewPipeline(gp *GPU) (*Pipeline, error) {
	pl := &Pipeline{gpu: gp, pipelines: map[wgpu.TextureFormat]*wgpu.RenderPipeline{}}
	dev := gp.Device
	var err error
	pl.module, err = dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "image",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: imageShader},
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	uniform := func(binding uint32, size uint64) wgpu.BindGroupLayoutEntry {
		return wgpu.BindGroupLayoutEntry{
			Binding:    binding,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type:           wgpu.BufferBindingTypeUniform,
				MinBindingSize: size,
			},
		}
	}
	pl.windowLayout, err = dev.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "window",
		Entries: []wgpu.BindGroupLayoutEntry{uniform(0, system.UniformsSize)},
	})
	if errors.Log(err) != nil {
		pl.Release()
		return nil, err
	}
	pl.imageLayout, err = dev.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "image",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniform(0, ImageInfoSize),
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeReadOnlyStorage},
			},
		},
	})
	if errors.Log(err) != nil {
		pl.Release()
		return nil, err
	}
	pl.layout, err = dev.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "image",
		BindGroupLayouts: []*wgpu.BindGroupLayout{pl.windowLayout, pl.imageLayout},
	})
	if errors.Log(err) != nil {
		pl.Release()
		return nil, err
	}
	return pl, nil
}

// RenderPipeline returns the render pipeline for the given target format.
func (pl *Pipeline) RenderPipeline(format wgpu.TextureFormat) (*wgpu.RenderPipeline, error) {
	if rp, ok := pl.pipelines[format]; ok {
		return rp, nil
	}
	rp, err := pl.gpu.Device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "image",
		Layout: pl.layout,
		Vertex: wgpu.VertexState{
			Module:     pl.module,
			EntryPoint: "vs_main",
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		Fragment: &wgpu.FragmentState{
			Module:     pl.module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format: format,
				Blend: &wgpu.BlendState{
					Color: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorSrcAlpha,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
					Alpha: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorOne,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
				},
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	pl.pipelines[format] = rp
	return rp, nil
}

// windowBindGroup returns a bind group for a window uniforms buffer.
func (pl *Pipeline) windowBindGroup(buf *wgpu.Buffer) (*wgpu.BindGroup, error) {
	return pl.gpu.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "window",
		Layout: pl.windowLayout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  buf,
			Size:    wgpu.WholeSize,
		}},
	})
}

// imageBindGroup returns a bind group for an image info and data buffer.
func (pl *Pipeline) imageBindGroup(info, data *wgpu.Buffer) (*wgpu.BindGroup, error) {
	return pl.gpu.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "image",
		Layout: pl.imageLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: info, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: data, Size: wgpu.WholeSize},
		},
	})
}

// draw records a full frame into the given render pass encoder:
// the image followed by the overlays.
func (pl *Pipeline) draw(pass *wgpu.RenderPassEncoder, rp *wgpu.RenderPipeline, image *Texture, window *wgpu.BindGroup, overlays []*overlayBinding) {
	pass.SetPipeline(rp)
	if image != nil {
		pass.SetBindGroup(0, window, nil)
		pass.SetBindGroup(1, image.bindGroup, nil)
		pass.Draw(6, 1, 0, 0)
	}
	for _, ob := range overlays {
		pass.SetBindGroup(0, ob.uniforms.bindGroup, nil)
		pass.SetBindGroup(1, ob.texture.bindGroup, nil)
		pass.Draw(6, 1, 0, 0)
	}
}

func (pl *Pipeline) Release() {
	for _, rp := range pl.pipelines {
		rp.Release()
	}
	pl.pipelines = nil
	if pl.layout != nil {
		pl.layout.Release()
		pl.layout = nil
	}
	if pl.imageLayout != nil {
		pl.imageLayout.Release()
		pl.imageLayout = nil
	}
	if pl.windowLayout != nil {
		pl.windowLayout.Release()
		pl.windowLayout = nil
	}
	if pl.module != nil {
		pl.module.Release()
		pl.module = nil
	}
}
