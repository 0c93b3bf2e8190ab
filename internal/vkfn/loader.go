// Package vkfn holds the Vulkan entry points the DXGI layer calls directly.
//
// Each table is resolved once against a Loader and is immutable afterwards.
// Required entry points must resolve or construction fails; optional ones
// may stay nil and callers must check the matching Has method before use.
//
// Typed wrappers follow the goffi calling convention: every argument is
// passed as a pointer to where its value is stored.
package vkfn

import (
	"unsafe"

	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// Loader resolves an entry point by name. It returns nil when the name is
// unknown.
type Loader interface {
	Lookup(name string) unsafe.Pointer
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(name string) unsafe.Pointer

// Lookup calls f(name).
func (f LoaderFunc) Lookup(name string) unsafe.Pointer { return f(name) }

// LibraryLoader resolves global commands via vkGetInstanceProcAddr(NULL, name).
// vk.Init must have succeeded.
type LibraryLoader struct{}

// Lookup implements Loader.
func (LibraryLoader) Lookup(name string) unsafe.Pointer {
	return vk.GetInstanceProcAddr(0, name)
}

// InstanceLoader resolves instance-level commands.
type InstanceLoader struct {
	Instance vk.Instance
}

// Lookup implements Loader.
func (l InstanceLoader) Lookup(name string) unsafe.Pointer {
	return vk.GetInstanceProcAddr(l.Instance, name)
}

// DeviceLoader resolves device-level commands via vkGetDeviceProcAddr.
type DeviceLoader struct {
	Device vk.Device
}

// Lookup implements Loader.
func (l DeviceLoader) Lookup(name string) unsafe.Pointer {
	return vk.GetDeviceProcAddr(l.Device, name)
}
