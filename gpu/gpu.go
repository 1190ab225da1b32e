// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu renders images to window surfaces and offscreen
// textures using WebGPU.
package gpu

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cogentcore.org/showimage/base/errors"
	"cogentcore.org/showimage/system"
	"github.com/cogentcore/webgpu/wgpu"
)

// Debug enables verbose logging of adapter selection and resource creation.
var Debug = false

const (
	// BackendEnv names the environment variable that selects the
	// graphics backends to consider, as a comma separated list of
	// vulkan, metal, dx12, dx11, gl and primary.
	BackendEnv = "WGPU_BACKEND"

	// PowerEnv names the environment variable that selects the
	// power preference of the adapter: low or high.
	PowerEnv = "WGPU_POWER_PREF"
)

// BackendsFromEnv returns the backends named by [BackendEnv],
// or the primary backends if it is not set.
func BackendsFromEnv() (wgpu.InstanceBackend, error) {
	return ParseBackends(os.Getenv(BackendEnv))
}

// ParseBackends parses a comma separated list of backend names.
// An empty string selects the primary backends.
func ParseBackends(s string) (wgpu.InstanceBackend, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return wgpu.InstanceBackendPrimary, nil
	}
	var b wgpu.InstanceBackend
	for _, name := range strings.Split(s, ",") {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "vulkan", "vk":
			b |= wgpu.InstanceBackendVulkan
		case "metal", "mtl":
			b |= wgpu.InstanceBackendMetal
		case "dx12", "d3d12":
			b |= wgpu.InstanceBackendDX12
		case "dx11", "d3d11":
			b |= wgpu.InstanceBackendDX11
		case "gl", "opengl", "gles":
			b |= wgpu.InstanceBackendGL
		case "primary":
			b |= wgpu.InstanceBackendPrimary
		default:
			return 0, fmt.Errorf("gpu: unknown backend %q in %s", name, BackendEnv)
		}
	}
	return b, nil
}

// PowerFromEnv returns the power preference named by [PowerEnv],
// or high performance if it is not set.
func PowerFromEnv() (wgpu.PowerPreference, error) {
	return ParsePower(os.Getenv(PowerEnv))
}

// ParsePower parses a power preference name.
func ParsePower(s string) (wgpu.PowerPreference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "high", "high-performance":
		return wgpu.PowerPreferenceHighPerformance, nil
	case "low", "low-power":
		return wgpu.PowerPreferenceLowPower, nil
	}
	return 0, fmt.Errorf("gpu: unknown power preference %q in %s", s, PowerEnv)
}

// GPU holds the WebGPU instance, adapter and device shared by all
// windows of a context.
type GPU struct {
	Instance *wgpu.Instance
	Adapter  *wgpu.Adapter
	Device   *wgpu.Device
	Queue    *wgpu.Queue
}

// NewInstance returns a WebGPU instance for the backends
// selected by the environment.
func NewInstance() (*wgpu.Instance, error) {
	backends, err := BackendsFromEnv()
	if err != nil {
		return nil, err
	}
	return wgpu.CreateInstance(&wgpu.InstanceDescriptor{Backends: backends}), nil
}

// NewGPU selects an adapter that can present to the given surface,
// which may be nil for offscreen use, and opens a device on it.
func NewGPU(inst *wgpu.Instance, compatible *wgpu.Surface) (*GPU, error) {
	power, err := PowerFromEnv()
	if err != nil {
		return nil, err
	}
	adapter, err := inst.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: compatible,
		PowerPreference:   power,
	})
	if err != nil || adapter == nil {
		return nil, &system.DeviceError{Err: errors.Join(system.ErrNoSuitableAdapter, err)}
	}
	gp := &GPU{Instance: inst, Adapter: adapter}
	if Debug {
		slog.Info("gpu: selected adapter", "power", power, "surface", compatible != nil)
	}
	dev, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "showimage"})
	if err != nil {
		adapter.Release()
		return nil, &system.DeviceError{Err: err}
	}
	gp.Device = dev
	gp.Queue = dev.GetQueue()
	return gp, nil
}

// WaitDone blocks until the device has finished all submitted work.
func (gp *GPU) WaitDone() {
	gp.Device.Poll(true, nil)
}

func (gp *GPU) Release() {
	if gp.Device != nil {
		gp.WaitDone()
		gp.Queue.Release()
		gp.Device.Release()
		gp.Device = nil
	}
	if gp.Adapter != nil {
		gp.Adapter.Release()
		gp.Adapter = nil
	}
}
