// Package backend abstracts the graphics API that sits under the DXGI
// object model.
//
// A Provider enumerates PhysicalDevices; a PhysicalDevice reports its
// identity, memory heaps and per-format features, and opens LogicalDevices.
// A LogicalDevice owns backend pipeline cache objects and reports device
// loss on demand.
//
// # Provider Registration
//
// Providers are registered via init() functions and selected at runtime.
// The HAL providers are registered on import of this package:
//
//	import "github.com/gogpu/dxgi/backend"
//
// The Vulkan provider registers itself when its package is imported:
//
//	import _ "github.com/gogpu/dxgi/backend/vulkan"
//
// # Provider Selection
//
// Use Open("") to get the best provider that initializes, or Open(name) to
// request a specific one:
//
//	p, err := backend.Open("")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer p.Close()
//
//	devices, err := p.Enumerate()
//
// # Available Providers
//
//   - "vulkan": pure Go Vulkan via goffi (backend/vulkan)
//   - "software": wgpu CPU rasterizer HAL
//   - "noop": wgpu no-op HAL, always available
package backend
