package vkfn

import (
	"unsafe"

	"github.com/go-webgpu/goffi/ffi"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// LibraryFn holds global commands that need no instance.
type LibraryFn struct {
	createInstance           unsafe.Pointer
	enumerateInstanceVersion unsafe.Pointer
}

// NewLibraryFn resolves the global command table.
func NewLibraryFn(l Loader) (*LibraryFn, error) {
	fn := &LibraryFn{}
	if err := Resolve(l, []Entry{
		required("vkCreateInstance", &fn.createInstance),
		optional("vkEnumerateInstanceVersion", &fn.enumerateInstanceVersion),
	}); err != nil {
		return nil, err
	}
	return fn, nil
}

// HasEnumerateInstanceVersion reports whether the loader is Vulkan 1.1+.
func (f *LibraryFn) HasEnumerateInstanceVersion() bool { return f.enumerateInstanceVersion != nil }

// CreateInstance wraps vkCreateInstance.
func (f *LibraryFn) CreateInstance(pCreateInfo *vk.InstanceCreateInfo, pAllocator *vk.AllocationCallbacks, pInstance *vk.Instance) vk.Result {
	var result int32
	args := [3]unsafe.Pointer{
		unsafe.Pointer(&pCreateInfo),
		unsafe.Pointer(&pAllocator),
		unsafe.Pointer(&pInstance),
	}
	if err := ffi.CallFunction(&vk.SigResultPtrPtrPtr, f.createInstance, unsafe.Pointer(&result), args[:]); err != nil {
		return vk.ErrorInitializationFailed
	}
	return vk.Result(result)
}

// EnumerateInstanceVersion wraps vkEnumerateInstanceVersion.
// Check HasEnumerateInstanceVersion first.
func (f *LibraryFn) EnumerateInstanceVersion(pApiVersion *uint32) vk.Result {
	var result int32
	args := [1]unsafe.Pointer{
		unsafe.Pointer(&pApiVersion),
	}
	if err := ffi.CallFunction(&vk.SigResultPtr, f.enumerateInstanceVersion, unsafe.Pointer(&result), args[:]); err != nil {
		return vk.ErrorInitializationFailed
	}
	return vk.Result(result)
}
