// Package dxgi implements the DXGI object model on top of a Vulkan or wgpu
// HAL backend.
//
// # Overview
//
// Clients see factories, adapters, outputs and devices through the DXGI
// interfaces (IDXGIFactory1, IDXGIAdapter1, IDXGIOutput, IDXGIDevice) and
// two private ones (IDXGIVkAdapter, IDXGIVkDevice) used by the device and
// presentation layers. The backend is never visible through these
// interfaces.
//
// # Quick Start
//
//	cfg, err := dxgi.LoadConfig(nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	factory, err := dxgi.NewFactory(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer factory.Release()
//
//	var adapter dxgi.IDXGIAdapter1
//	for i := uint32(0); factory.EnumAdapters1(i, &adapter) == dxgi.S_OK; i++ {
//		var desc dxgi.AdapterDesc1
//		adapter.GetDesc1(&desc)
//		fmt.Println(desc.DescriptionString())
//		adapter.Release()
//	}
//
// # Object Model
//
// Every object embeds ComObject: an atomic reference count starting at one,
// a fixed set of interface ids answered by QueryInterface, and a GUID-keyed
// private data store. Release destroys the object synchronously when the
// count reaches zero. Children hold a reference to their parent, so an
// adapter keeps its factory alive and a device keeps its adapter alive.
//
// Interfaces are Go interfaces declared in vtable order. The slot layout of
// each one is recorded in vtbl.go and checked at compile time.
//
// # Errors
//
// Methods return HRESULT values. Backend errors never cross the interface
// boundary: they are logged and reported as a narrow code, for example
// DXGI_ERROR_UNSUPPORTED from CreateDevice. HResultFromError performs the
// mapping for the Go-facing constructors.
//
// # Configuration
//
// Config is read once, by LoadConfig, from DXVK_* environment variables and
// optionally a viper config file. It is threaded into NewFactory and from
// there into every adapter.
//
// # Backends
//
// Importing this package registers the Vulkan provider and the wgpu noop
// and software providers. Config.Backend selects one by name; empty picks
// Vulkan when a loader is present and noop otherwise.
package dxgi
