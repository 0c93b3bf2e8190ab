// Package vulkan implements backend.Provider on top of the pure Go Vulkan
// bindings. Entry points are resolved through internal/vkfn tables rather
// than the full vk.Commands set, so only what the DXGI layer calls is
// required of the driver.
package vulkan

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/gogpu/dxgi/backend"
	"github.com/gogpu/dxgi/internal/vkfn"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// apiVersion11 is VK_MAKE_API_VERSION(0, 1, 1, 0).
const apiVersion11 = 1<<22 | 1<<12

var errResult = errors.New("vulkan: call failed")

func init() {
	backend.Register(backend.NameVulkan, func() backend.Provider { return NewProvider() })
}

// resultError converts a failing VkResult into an error.
// Device loss is reported as backend.ErrDeviceLost.
func resultError(op string, r vk.Result) error {
	if r == vk.ErrorDeviceLost {
		return fmt.Errorf("vulkan: %s: %w", op, backend.ErrDeviceLost)
	}
	return fmt.Errorf("%w: %s: VkResult %d", errResult, op, int32(r))
}

// Provider owns one VkInstance.
type Provider struct {
	mu   sync.Mutex
	lib  *vkfn.LibraryFn
	inst *vkfn.InstanceFn
}

// NewProvider returns an uninitialized provider.
func NewProvider() *Provider { return &Provider{} }

// Name returns "vulkan".
func (p *Provider) Name() string { return backend.NameVulkan }

// Init loads the Vulkan loader and creates an instance.
func (p *Provider) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inst != nil {
		return nil
	}

	if err := vk.Init(); err != nil {
		return fmt.Errorf("vulkan: %w", err)
	}
	lib, err := vkfn.NewLibraryFn(vkfn.LibraryLoader{})
	if err != nil {
		return err
	}

	apiVersion := uint32(apiVersion11)
	if lib.HasEnumerateInstanceVersion() {
		var v uint32
		if lib.EnumerateInstanceVersion(&v) == vk.Success && v < apiVersion {
			apiVersion = v
		}
	} else {
		apiVersion = 1 << 22
	}

	appName := []byte("dxgi\x00")
	appInfo := vk.ApplicationInfo{
		SType:            vk.StructureTypeApplicationInfo,
		PApplicationName: uintptr(unsafe.Pointer(&appName[0])),
		PEngineName:      uintptr(unsafe.Pointer(&appName[0])),
		ApiVersion:       apiVersion,
	}
	createInfo := vk.InstanceCreateInfo{
		SType:            vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo: &appInfo,
	}

	var instance vk.Instance
	r := lib.CreateInstance(&createInfo, nil, &instance)
	runtime.KeepAlive(appName)
	if r != vk.Success {
		return resultError("vkCreateInstance", r)
	}

	vk.SetDeviceProcAddr(instance)
	inst, err := vkfn.NewInstanceFn(vkfn.InstanceLoader{Instance: instance}, instance)
	if err != nil {
		// vkDestroyInstance may be the missing entry, so the instance leaks here.
		return err
	}

	p.lib = lib
	p.inst = inst
	backend.Logger().Info("vulkan: instance created", "apiVersion", apiVersionString(apiVersion))
	return nil
}

// Enumerate returns every physical device of the instance.
func (p *Provider) Enumerate() ([]backend.PhysicalDevice, error) {
	p.mu.Lock()
	inst := p.inst
	p.mu.Unlock()
	if inst == nil {
		return nil, fmt.Errorf("vulkan: %w", backend.ErrBackendNotAvailable)
	}

	var count uint32
	if r := inst.EnumeratePhysicalDevices(&count, nil); r != vk.Success {
		return nil, resultError("vkEnumeratePhysicalDevices", r)
	}
	if count == 0 {
		return nil, backend.ErrNoAdapter
	}
	handles := make([]vk.PhysicalDevice, count)
	r := inst.EnumeratePhysicalDevices(&count, &handles[0])
	if r != vk.Success && r != vk.Incomplete {
		return nil, resultError("vkEnumeratePhysicalDevices", r)
	}

	devices := make([]backend.PhysicalDevice, 0, count)
	for _, h := range handles[:count] {
		devices = append(devices, newPhysicalDevice(inst, h))
	}
	return devices, nil
}

// Close destroys the instance. The loader library stays mapped because
// vk.Init only runs once per process.
func (p *Provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inst == nil {
		return
	}
	p.inst.DestroyInstance(nil)
	p.inst = nil
	p.lib = nil
}

func apiVersionString(v uint32) string {
	return fmt.Sprintf("%d.%d.%d", v>>22&0x7F, v>>12&0x3FF, v&0xFFF)
}
