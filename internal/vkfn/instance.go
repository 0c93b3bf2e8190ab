package vkfn

import (
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// InstanceFn holds instance-level commands.
type InstanceFn struct {
	instance vk.Instance

	destroyInstance                        unsafe.Pointer
	enumeratePhysicalDevices               unsafe.Pointer
	getPhysicalDeviceProperties            unsafe.Pointer
	getPhysicalDeviceMemoryProperties      unsafe.Pointer
	getPhysicalDeviceFormatProperties      unsafe.Pointer
	getPhysicalDeviceQueueFamilyProperties unsafe.Pointer
	getPhysicalDeviceFeatures              unsafe.Pointer
	createDevice                           unsafe.Pointer
	getPhysicalDeviceProperties2           unsafe.Pointer
}

// NewInstanceFn resolves the instance command table for instance.
func NewInstanceFn(l Loader, instance vk.Instance) (*InstanceFn, error) {
	fn := &InstanceFn{instance: instance}
	if err := Resolve(l, []Entry{
		required("vkDestroyInstance", &fn.destroyInstance),
		required("vkEnumeratePhysicalDevices", &fn.enumeratePhysicalDevices),
		required("vkGetPhysicalDeviceProperties", &fn.getPhysicalDeviceProperties),
		required("vkGetPhysicalDeviceMemoryProperties", &fn.getPhysicalDeviceMemoryProperties),
		required("vkGetPhysicalDeviceFormatProperties", &fn.getPhysicalDeviceFormatProperties),
		required("vkGetPhysicalDeviceQueueFamilyProperties", &fn.getPhysicalDeviceQueueFamilyProperties),
		required("vkGetPhysicalDeviceFeatures", &fn.getPhysicalDeviceFeatures),
		required("vkCreateDevice", &fn.createDevice),
		optional("vkGetPhysicalDeviceProperties2", &fn.getPhysicalDeviceProperties2),
	}); err != nil {
		return nil, err
	}
	return fn, nil
}

// Instance returns the instance the table was resolved for.
func (f *InstanceFn) Instance() vk.Instance { return f.instance }

// HasGetPhysicalDeviceProperties2 reports whether vkGetPhysicalDeviceProperties2 resolved.
func (f *InstanceFn) HasGetPhysicalDeviceProperties2() bool {
	return f.getPhysicalDeviceProperties2 != nil
}

// DestroyInstance wraps vkDestroyInstance.
func (f *InstanceFn) DestroyInstance(pAllocator *vk.AllocationCallbacks) {
	instance := f.instance
	args := [2]unsafe.Pointer{
		unsafe.Pointer(&instance),
		unsafe.Pointer(&pAllocator),
	}
	_ = ffi.CallFunction(&vk.SigVoidHandlePtr, f.destroyInstance, nil, args[:])
}

// EnumeratePhysicalDevices wraps vkEnumeratePhysicalDevices.
func (f *InstanceFn) EnumeratePhysicalDevices(pPhysicalDeviceCount *uint32, pPhysicalDevices *vk.PhysicalDevice) vk.Result {
	var result int32
	instance := f.instance
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&instance),
		unsafe.Pointer(&pPhysicalDeviceCount),
		unsafe.Pointer(&pPhysicalDevices),
	}
	if err := ffi.CallFunction(&vk.SigResultHandlePtrPtr, f.enumeratePhysicalDevices, unsafe.Pointer(&result), args[:]); err != nil {
		return vk.ErrorInitializationFailed
	}
	return vk.Result(result)
}

// GetPhysicalDeviceProperties wraps vkGetPhysicalDeviceProperties.
func (f *InstanceFn) GetPhysicalDeviceProperties(physicalDevice vk.PhysicalDevice, pProperties *vk.PhysicalDeviceProperties) {
	args := [2]unsafe.Pointer{
		unsafe.Pointer(&physicalDevice),
		unsafe.Pointer(&pProperties),
	}
	_ = ffi.CallFunction(&vk.SigVoidHandlePtr, f.getPhysicalDeviceProperties, nil, args[:])
}

// GetPhysicalDeviceMemoryProperties wraps vkGetPhysicalDeviceMemoryProperties.
func (f *InstanceFn) GetPhysicalDeviceMemoryProperties(physicalDevice vk.PhysicalDevice, pMemoryProperties *vk.PhysicalDeviceMemoryProperties) {
	args := [2]unsafe.Pointer{
		unsafe.Pointer(&physicalDevice),
		unsafe.Pointer(&pMemoryProperties),
	}
	_ = ffi.CallFunction(&vk.SigVoidHandlePtr, f.getPhysicalDeviceMemoryProperties, nil, args[:])
}

// GetPhysicalDeviceFormatProperties wraps vkGetPhysicalDeviceFormatProperties.
func (f *InstanceFn) GetPhysicalDeviceFormatProperties(physicalDevice vk.PhysicalDevice, format vk.Format, pFormatProperties *vk.FormatProperties) {
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&physicalDevice),
		unsafe.Pointer(&format),
		unsafe.Pointer(&pFormatProperties),
	}
	_ = ffi.CallFunction(&vk.SigVoidHandleU32Ptr, f.getPhysicalDeviceFormatProperties, nil, args[:])
}

// GetPhysicalDeviceQueueFamilyProperties wraps vkGetPhysicalDeviceQueueFamilyProperties.
func (f *InstanceFn) GetPhysicalDeviceQueueFamilyProperties(physicalDevice vk.PhysicalDevice, pQueueFamilyPropertyCount *uint32, pQueueFamilyProperties *vk.QueueFamilyProperties) {
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&physicalDevice),
		unsafe.Pointer(&pQueueFamilyPropertyCount),
		unsafe.Pointer(&pQueueFamilyProperties),
	}
	_ = ffi.CallFunction(&vk.SigVoidHandlePtrPtr, f.getPhysicalDeviceQueueFamilyProperties, nil, args[:])
}

// GetPhysicalDeviceFeatures wraps vkGetPhysicalDeviceFeatures.
func (f *InstanceFn) GetPhysicalDeviceFeatures(physicalDevice vk.PhysicalDevice, pFeatures *vk.PhysicalDeviceFeatures) {
	args := [2]unsafe.Pointer{
		unsafe.Pointer(&physicalDevice),
		unsafe.Pointer(&pFeatures),
	}
	_ = ffi.CallFunction(&vk.SigVoidHandlePtr, f.getPhysicalDeviceFeatures, nil, args[:])
}

// CreateDevice wraps vkCreateDevice.
func (f *InstanceFn) CreateDevice(physicalDevice vk.PhysicalDevice, pCreateInfo *vk.DeviceCreateInfo, pAllocator *vk.AllocationCallbacks, pDevice *vk.Device) vk.Result {
	var result int32
	args := [4]unsafe.Pointer{
		unsafe.Pointer(&physicalDevice),
		unsafe.Pointer(&pCreateInfo),
		unsafe.Pointer(&pAllocator),
		unsafe.Pointer(&pDevice),
	}
	if err := ffi.CallFunction(&vk.SigResultHandlePtrPtrPtr, f.createDevice, unsafe.Pointer(&result), args[:]); err != nil {
		return vk.ErrorInitializationFailed
	}
	return vk.Result(result)
}

// GetPhysicalDeviceProperties2 wraps vkGetPhysicalDeviceProperties2.
// Check HasGetPhysicalDeviceProperties2 first.
func (f *InstanceFn) GetPhysicalDeviceProperties2(physicalDevice vk.PhysicalDevice, pProperties *vk.PhysicalDeviceProperties2) {
	args := [2]unsafe.Pointer{
		unsafe.Pointer(&physicalDevice),
		unsafe.Pointer(&pProperties),
	}
	_ = ffi.CallFunction(&vk.SigVoidHandlePtr, f.getPhysicalDeviceProperties2, nil, args[:])
}
