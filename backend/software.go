package backend

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	"github.com/gogpu/wgpu/hal/software"
)

// NameSoftware is the CPU rasterizer provider from wgpu/hal/software.
const NameSoftware = "software"

// init registers the HAL-backed providers on package import.
func init() {
	Register(NameNoop, func() Provider { return NewHALProvider(NameNoop, noop.API{}) })
	Register(NameSoftware, func() Provider { return NewHALProvider(NameSoftware, software.API{}) })
}

// HALProvider exposes the adapters of any wgpu HAL backend.
//
// HAL adapters do not report memory heaps or pipeline cache support, so
// HALProvider synthesizes both: one shared heap sized by the adapter's
// buffer limit, and in-memory pipeline cache blobs.
type HALProvider struct {
	name string
	api  hal.Backend

	mu       sync.Mutex
	instance hal.Instance
}

// NewHALProvider wraps api under the given provider name.
func NewHALProvider(name string, api hal.Backend) *HALProvider {
	return &HALProvider{name: name, api: api}
}

// Name returns the provider identifier.
func (p *HALProvider) Name() string { return p.name }

// Init creates the HAL instance on first use.
func (p *HALProvider) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.instance != nil {
		return nil
	}
	inst, err := p.api.CreateInstance(&hal.InstanceDescriptor{})
	if err != nil {
		return fmt.Errorf("backend: %s: create instance: %w", p.name, err)
	}
	p.instance = inst
	Logger().Debug("backend: HAL instance created", "provider", p.name)
	return nil
}

// Enumerate returns one PhysicalDevice per exposed HAL adapter.
func (p *HALProvider) Enumerate() ([]PhysicalDevice, error) {
	p.mu.Lock()
	inst := p.instance
	p.mu.Unlock()
	if inst == nil {
		return nil, fmt.Errorf("backend: %s: %w", p.name, ErrBackendNotAvailable)
	}

	exposed := inst.EnumerateAdapters(nil)
	if len(exposed) == 0 {
		return nil, ErrNoAdapter
	}
	devices := make([]PhysicalDevice, 0, len(exposed))
	for i := range exposed {
		devices = append(devices, &halPhysical{exposed: exposed[i]})
	}
	return devices, nil
}

// Close destroys the HAL instance.
func (p *HALProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.instance != nil {
		p.instance.Destroy()
		p.instance = nil
	}
}

// halPhysical adapts hal.ExposedAdapter to PhysicalDevice.
type halPhysical struct {
	exposed hal.ExposedAdapter
}

func (d *halPhysical) Properties() Properties {
	info := d.exposed.Info
	return Properties{
		Name:       info.Name,
		VendorID:   info.VendorID,
		DeviceID:   info.DeviceID,
		DeviceType: info.DeviceType,
		Backend:    info.Backend,
	}
}

func (d *halPhysical) MemoryHeaps() []MemoryHeap {
	return []MemoryHeap{{
		Size:        d.exposed.Capabilities.Limits.MaxBufferSize,
		DeviceLocal: d.exposed.Info.DeviceType == gputypes.DeviceTypeDiscreteGPU,
	}}
}

func (d *halPhysical) FormatFeatures(q FormatQuery) FormatFeatures {
	if q.Texture == gputypes.TextureFormatUndefined {
		return 0
	}
	caps := d.exposed.Adapter.TextureFormatCapabilities(q.Texture)
	var f FormatFeatures
	if caps.Flags&hal.TextureFormatCapabilitySampled != 0 {
		f |= FormatFeatureSampled
	}
	if caps.Flags&hal.TextureFormatCapabilityStorage != 0 {
		f |= FormatFeatureStorage
	}
	if caps.Flags&hal.TextureFormatCapabilityRenderAttachment != 0 {
		if isDepthTexture(q.Texture) {
			f |= FormatFeatureDepthStencil
		} else {
			f |= FormatFeatureRenderTarget
		}
	}
	if caps.Flags&hal.TextureFormatCapabilityBlendable != 0 {
		f |= FormatFeatureBlendable
	}
	return f
}

func (d *halPhysical) CreateDevice(features gputypes.Features) (LogicalDevice, error) {
	if !d.exposed.Features.ContainsAll(features) {
		missing := features &^ d.exposed.Features
		return nil, fmt.Errorf("%w: features 0x%x not supported by %s",
			ErrInitFailed, uint64(missing), d.exposed.Info.Name)
	}
	open, err := d.exposed.Adapter.Open(features, d.exposed.Capabilities.Limits)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitFailed, err)
	}
	return &halLogical{
		device: open.Device,
		caches: make(map[uint64][]byte),
	}, nil
}

func isDepthTexture(f gputypes.TextureFormat) bool {
	switch f {
	case gputypes.TextureFormatDepth16Unorm,
		gputypes.TextureFormatDepth24Plus,
		gputypes.TextureFormatDepth24PlusStencil8,
		gputypes.TextureFormatDepth32Float,
		gputypes.TextureFormatDepth32FloatStencil8,
		gputypes.TextureFormatStencil8:
		return true
	}
	return false
}

// halLogical adapts hal.Device to LogicalDevice.
type halLogical struct {
	device hal.Device
	lost   atomic.Bool

	mu         sync.Mutex
	caches     map[uint64][]byte
	nextHandle uint64
}

func (d *halLogical) CreatePipelineCache(initial []byte) (uint64, error) {
	if d.lost.Load() {
		return 0, ErrDeviceLost
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextHandle++
	d.caches[d.nextHandle] = append([]byte(nil), initial...)
	return d.nextHandle, nil
}

func (d *halLogical) PipelineCacheData(handle uint64) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	blob, ok := d.caches[handle]
	if !ok {
		return nil, ErrInvalidHandle
	}
	return append([]byte(nil), blob...), nil
}

func (d *halLogical) DestroyPipelineCache(handle uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.caches, handle)
}

func (d *halLogical) Status() error {
	if d.lost.Load() {
		return ErrDeviceLost
	}
	return nil
}

func (d *halLogical) WaitIdle() error {
	if err := d.device.WaitIdle(); err != nil {
		if errors.Is(err, hal.ErrDeviceLost) {
			d.lost.Store(true)
			return fmt.Errorf("%w: %w", ErrDeviceLost, err)
		}
		return err
	}
	return nil
}

func (d *halLogical) Destroy() {
	d.device.Destroy()
}
