package vkfn

import (
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// DeviceFn holds device-level commands for one logical device.
type DeviceFn struct {
	device vk.Device

	destroyDevice        unsafe.Pointer
	deviceWaitIdle       unsafe.Pointer
	createPipelineCache  unsafe.Pointer
	destroyPipelineCache unsafe.Pointer
	getPipelineCacheData unsafe.Pointer
}

// NewDeviceFn resolves the device command table for device.
func NewDeviceFn(l Loader, device vk.Device) (*DeviceFn, error) {
	fn := &DeviceFn{device: device}
	if err := Resolve(l, []Entry{
		required("vkDestroyDevice", &fn.destroyDevice),
		required("vkDeviceWaitIdle", &fn.deviceWaitIdle),
		required("vkCreatePipelineCache", &fn.createPipelineCache),
		required("vkDestroyPipelineCache", &fn.destroyPipelineCache),
		required("vkGetPipelineCacheData", &fn.getPipelineCacheData),
	}); err != nil {
		return nil, err
	}
	return fn, nil
}

// Device returns the device the table was resolved for.
func (f *DeviceFn) Device() vk.Device { return f.device }

// DestroyDevice wraps vkDestroyDevice.
func (f *DeviceFn) DestroyDevice(pAllocator *vk.AllocationCallbacks) {
	device := f.device
	args := [2]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&pAllocator),
	}
	_ = ffi.CallFunction(&vk.SigVoidHandlePtr, f.destroyDevice, nil, args[:])
}

// DestroyDeviceHandle destroys device through the vkDestroyDevice that l
// resolves. It is used when the full table could not be built. It reports
// false when vkDestroyDevice itself is missing and the device leaks.
func DestroyDeviceHandle(l Loader, device vk.Device) bool {
	destroy := l.Lookup("vkDestroyDevice")
	if destroy == nil {
		return false
	}
	(&DeviceFn{device: device, destroyDevice: destroy}).DestroyDevice(nil)
	return true
}

// DeviceWaitIdle wraps vkDeviceWaitIdle.
func (f *DeviceFn) DeviceWaitIdle() vk.Result {
	var result int32
	device := f.device
	args := [1]unsafe.Pointer{
		unsafe.Pointer(&device),
	}
	if err := ffi.CallFunction(&vk.SigResultHandle, f.deviceWaitIdle, unsafe.Pointer(&result), args[:]); err != nil {
		return vk.ErrorInitializationFailed
	}
	return vk.Result(result)
}

// CreatePipelineCache wraps vkCreatePipelineCache.
func (f *DeviceFn) CreatePipelineCache(pCreateInfo *vk.PipelineCacheCreateInfo, pAllocator *vk.AllocationCallbacks, pPipelineCache *vk.PipelineCache) vk.Result {
	var result int32
	device := f.device
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&pCreateInfo),
		unsafe.Pointer(&pAllocator),
		unsafe.Pointer(&pPipelineCache),
	}
	if err := ffi.CallFunction(&vk.SigResultHandlePtrPtrPtr, f.createPipelineCache, unsafe.Pointer(&result), args[:]); err != nil {
		return vk.ErrorInitializationFailed
	}
	return vk.Result(result)
}

// DestroyPipelineCache wraps vkDestroyPipelineCache.
func (f *DeviceFn) DestroyPipelineCache(pipelineCache vk.PipelineCache, pAllocator *vk.AllocationCallbacks) {
	device := f.device
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&pipelineCache),
		unsafe.Pointer(&pAllocator),
	}
	_ = ffi.CallFunction(&vk.SigVoidHandleHandlePtr, f.destroyPipelineCache, nil, args[:])
}

// GetPipelineCacheData wraps vkGetPipelineCacheData.
func (f *DeviceFn) GetPipelineCacheData(pipelineCache vk.PipelineCache, pDataSize *uintptr, pData unsafe.Pointer) vk.Result {
	var result int32
	device := f.device
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&device),
		unsafe.Pointer(&pipelineCache),
		unsafe.Pointer(&pDataSize),
		unsafe.Pointer(&pData),
	}
	if err := ffi.CallFunction(&vk.SigResultHandleHandlePtrPtr, f.getPipelineCacheData, unsafe.Pointer(&result), args[:]); err != nil {
		return vk.ErrorInitializationFailed
	}
	return vk.Result(result)
}

// PipelineCacheBlob reads the full contents of a pipeline cache.
func (f *DeviceFn) PipelineCacheBlob(cache vk.PipelineCache) ([]byte, vk.Result) {
	var size uintptr
	if r := f.GetPipelineCacheData(cache, &size, nil); r != vk.Success {
		return nil, r
	}
	if size == 0 {
		return nil, vk.Success
	}
	buf := make([]byte, size)
	r := f.GetPipelineCacheData(cache, &size, unsafe.Pointer(&buf[0]))
	if r != vk.Success && r != vk.Incomplete {
		return nil, r
	}
	return buf[:size], r
}
