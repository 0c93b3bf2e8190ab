package vulkan

import (
	"bytes"
	"fmt"
	"runtime"
	"unsafe"

	"github.com/gogpu/dxgi/backend"
	"github.com/gogpu/dxgi/internal/vkfn"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

type physicalDevice struct {
	inst   *vkfn.InstanceFn
	handle vk.PhysicalDevice
}

func newPhysicalDevice(inst *vkfn.InstanceFn, h vk.PhysicalDevice) *physicalDevice {
	return &physicalDevice{inst: inst, handle: h}
}

// structureTypePhysicalDeviceIDProperties is
// VK_STRUCTURE_TYPE_PHYSICAL_DEVICE_ID_PROPERTIES.
const structureTypePhysicalDeviceIDProperties vk.StructureType = 1000071004

func (d *physicalDevice) Properties() backend.Properties {
	if !d.inst.HasGetPhysicalDeviceProperties2() {
		var p vk.PhysicalDeviceProperties
		d.inst.GetPhysicalDeviceProperties(d.handle, &p)
		return convertProperties(&p)
	}

	id := vk.PhysicalDeviceIDProperties{SType: structureTypePhysicalDeviceIDProperties}
	p2 := vk.PhysicalDeviceProperties2{
		SType: vk.StructureTypePhysicalDeviceProperties2,
		PNext: (*uintptr)(unsafe.Pointer(&id)),
	}
	d.inst.GetPhysicalDeviceProperties2(d.handle, &p2)
	runtime.KeepAlive(&id)

	props := convertProperties(&p2.Properties)
	applyIDProperties(&props, &id)
	return props
}

func (d *physicalDevice) MemoryHeaps() []backend.MemoryHeap {
	var mp vk.PhysicalDeviceMemoryProperties
	d.inst.GetPhysicalDeviceMemoryProperties(d.handle, &mp)
	return convertHeaps(&mp)
}

func (d *physicalDevice) FormatFeatures(q backend.FormatQuery) backend.FormatFeatures {
	if q.Vulkan == vk.FormatUndefined {
		return 0
	}
	var fp vk.FormatProperties
	d.inst.GetPhysicalDeviceFormatProperties(d.handle, q.Vulkan, &fp)
	return convertFormatFeatures(&fp)
}

func (d *physicalDevice) CreateDevice(features gputypes.Features) (backend.LogicalDevice, error) {
	var supported vk.PhysicalDeviceFeatures
	d.inst.GetPhysicalDeviceFeatures(d.handle, &supported)

	enabled, missing := enableFeatures(features, &supported)
	if missing != 0 {
		return nil, fmt.Errorf("%w: features 0x%x not supported", backend.ErrInitFailed, uint64(missing))
	}

	family, ok := d.graphicsQueueFamily()
	if !ok {
		return nil, fmt.Errorf("%w: no graphics queue family", backend.ErrInitFailed)
	}

	priority := float32(1)
	queueInfo := vk.DeviceQueueCreateInfo{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: family,
		QueueCount:       1,
		PQueuePriorities: &priority,
	}
	createInfo := vk.DeviceCreateInfo{
		SType:                vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount: 1,
		PQueueCreateInfos:    &queueInfo,
		PEnabledFeatures:     &enabled,
	}

	var dev vk.Device
	r := d.inst.CreateDevice(d.handle, &createInfo, nil, &dev)
	runtime.KeepAlive(&queueInfo)
	runtime.KeepAlive(&enabled)
	if r != vk.Success {
		return nil, fmt.Errorf("%w: %w", backend.ErrInitFailed, resultError("vkCreateDevice", r))
	}

	loader := vkfn.DeviceLoader{Device: dev}
	fn, err := vkfn.NewDeviceFn(loader, dev)
	if err != nil {
		if !vkfn.DestroyDeviceHandle(loader, dev) {
			backend.Logger().Warn("vulkan: device leaked, vkDestroyDevice missing")
		}
		return nil, fmt.Errorf("%w: %w", backend.ErrInitFailed, err)
	}
	return newLogicalDevice(fn), nil
}

func (d *physicalDevice) graphicsQueueFamily() (uint32, bool) {
	var count uint32
	d.inst.GetPhysicalDeviceQueueFamilyProperties(d.handle, &count, nil)
	if count == 0 {
		return 0, false
	}
	families := make([]vk.QueueFamilyProperties, count)
	d.inst.GetPhysicalDeviceQueueFamilyProperties(d.handle, &count, &families[0])
	return pickGraphicsFamily(families[:count])
}

func pickGraphicsFamily(families []vk.QueueFamilyProperties) (uint32, bool) {
	for i, f := range families {
		if f.QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0 && f.QueueCount > 0 {
			return uint32(i), true //nolint:gosec // G115: family count is tiny
		}
	}
	return 0, false
}

func convertProperties(p *vk.PhysicalDeviceProperties) backend.Properties {
	name := p.DeviceName[:]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}
	return backend.Properties{
		Name:              string(name),
		VendorID:          p.VendorID,
		DeviceID:          p.DeviceID,
		DeviceType:        convertDeviceType(p.DeviceType),
		Backend:           gputypes.BackendVulkan,
		APIVersion:        p.ApiVersion,
		DriverVersion:     p.DriverVersion,
		PipelineCacheUUID: p.PipelineCacheUUID,
	}
}

// applyIDProperties copies the device LUID into p when the driver reports
// one.
func applyIDProperties(p *backend.Properties, id *vk.PhysicalDeviceIDProperties) {
	if id.DeviceLUIDValid != vk.Bool32(vk.True) {
		return
	}
	p.LUID = id.DeviceLUID
	p.LUIDValid = true
}

func convertDeviceType(t vk.PhysicalDeviceType) gputypes.DeviceType {
	switch t {
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return gputypes.DeviceTypeIntegratedGPU
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return gputypes.DeviceTypeDiscreteGPU
	case vk.PhysicalDeviceTypeVirtualGpu:
		return gputypes.DeviceTypeVirtualGPU
	case vk.PhysicalDeviceTypeCpu:
		return gputypes.DeviceTypeCPU
	default:
		return gputypes.DeviceTypeOther
	}
}

func convertHeaps(mp *vk.PhysicalDeviceMemoryProperties) []backend.MemoryHeap {
	n := min(int(mp.MemoryHeapCount), len(mp.MemoryHeaps))
	heaps := make([]backend.MemoryHeap, n)
	for i := range n {
		h := mp.MemoryHeaps[i]
		heaps[i] = backend.MemoryHeap{
			Size:        uint64(h.Size),
			DeviceLocal: h.Flags&vk.MemoryHeapFlags(vk.MemoryHeapDeviceLocalBit) != 0,
		}
	}
	return heaps
}

func convertFormatFeatures(fp *vk.FormatProperties) backend.FormatFeatures {
	has := func(flags vk.FormatFeatureFlags, bit vk.FormatFeatureFlagBits) bool {
		return flags&vk.FormatFeatureFlags(bit) != 0
	}
	opt := fp.OptimalTilingFeatures

	var f backend.FormatFeatures
	if has(opt, vk.FormatFeatureSampledImageBit) {
		f |= backend.FormatFeatureSampled
	}
	if has(opt, vk.FormatFeatureStorageImageBit) {
		f |= backend.FormatFeatureStorage
	}
	if has(opt, vk.FormatFeatureColorAttachmentBit) {
		f |= backend.FormatFeatureRenderTarget
	}
	if has(opt, vk.FormatFeatureColorAttachmentBlendBit) {
		f |= backend.FormatFeatureBlendable
	}
	if has(opt, vk.FormatFeatureDepthStencilAttachmentBit) {
		f |= backend.FormatFeatureDepthStencil
	}
	if has(fp.BufferFeatures, vk.FormatFeatureVertexBufferBit) {
		f |= backend.FormatFeatureVertexBuffer
	}
	return f
}
