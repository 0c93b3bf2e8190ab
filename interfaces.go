package dxgi

import (
	"unsafe"

	"github.com/gogpu/gputypes"
)

// The interfaces below are declared in vtable order. vtbl.go holds the
// matching slot layouts.

// IUnknown is the base identity every object implements.
type IUnknown interface {
	QueryInterface(riid GUID, ppvObject *IUnknown) HRESULT
	AddRef() uint32
	Release() uint32
}

// IDXGIObject adds private data and parent lookup.
type IDXGIObject interface {
	IUnknown
	SetPrivateData(name GUID, data []byte) HRESULT
	SetPrivateDataInterface(name GUID, unknown IUnknown) HRESULT
	GetPrivateData(name GUID, dataSize *uint32, data []byte) HRESULT
	GetParent(riid GUID, ppParent *IUnknown) HRESULT
}

// IDXGIFactory enumerates adapters.
type IDXGIFactory interface {
	IDXGIObject
	EnumAdapters(adapter uint32, ppAdapter *IDXGIAdapter) HRESULT
	MakeWindowAssociation(window HWND, flags uint32) HRESULT
	GetWindowAssociation(window *HWND) HRESULT
	CreateSwapChain(device IUnknown, desc unsafe.Pointer, ppSwapChain *IUnknown) HRESULT
	CreateSoftwareAdapter(module uintptr, ppAdapter *IDXGIAdapter) HRESULT
}

// IDXGIFactory1 adds EnumAdapters1.
type IDXGIFactory1 interface {
	IDXGIFactory
	EnumAdapters1(adapter uint32, ppAdapter *IDXGIAdapter1) HRESULT
	IsCurrent() bool
}

// IDXGIAdapter represents one physical device.
type IDXGIAdapter interface {
	IDXGIObject
	EnumOutputs(output uint32, ppOutput *IDXGIOutput) HRESULT
	GetDesc(desc *AdapterDesc) HRESULT
	CheckInterfaceSupport(interfaceName GUID, umdVersion *int64) HRESULT
}

// IDXGIAdapter1 adds the extended description.
type IDXGIAdapter1 interface {
	IDXGIAdapter
	GetDesc1(desc *AdapterDesc1) HRESULT
}

// IDXGIVkAdapter is the private adapter interface used by the device and
// presentation layers.
type IDXGIVkAdapter interface {
	IDXGIAdapter1
	GetOutputFromMonitor(monitor HMONITOR, ppOutput *IDXGIOutput) HRESULT
	GetOutputData(monitor HMONITOR, data *OutputData) HRESULT
	SetOutputData(monitor HMONITOR, data *OutputData) HRESULT
	CreateDevice(features gputypes.Features, ppDevice *IDXGIVkDevice) HRESULT
	LookupFormat(format Format, mode FormatMode) FormatInfo
	CheckFormatSupport(format Format, support *FormatSupport) HRESULT
}

// IDXGIOutput represents one display attached to an adapter.
type IDXGIOutput interface {
	IDXGIObject
	GetDesc(desc *OutputDesc) HRESULT
	GetDisplayModeList(format Format, flags uint32, numModes *uint32, desc []ModeDesc) HRESULT
	FindClosestMatchingMode(modeToMatch *ModeDesc, closestMatch *ModeDesc, concernedDevice IUnknown) HRESULT
	WaitForVBlank() HRESULT
	TakeOwnership(device IUnknown, exclusive bool) HRESULT
	ReleaseOwnership()
	GetGammaControlCapabilities(caps *GammaControlCapabilities) HRESULT
	SetGammaControl(array *GammaControl) HRESULT
	GetGammaControl(array *GammaControl) HRESULT
	SetDisplaySurface(scanoutSurface IUnknown) HRESULT
	GetDisplaySurfaceData(destination IUnknown) HRESULT
	GetFrameStatistics(stats *FrameStatistics) HRESULT
}

// IDXGIDevice is the device interface shared by every API built on DXGI.
type IDXGIDevice interface {
	IDXGIObject
	GetAdapter(ppAdapter *IDXGIAdapter) HRESULT
	CreateSurface(desc *SurfaceDesc, numSurfaces uint32, usage uint32, sharedResource unsafe.Pointer, ppSurface *IUnknown) HRESULT
	QueryResourceResidency(resources []IUnknown, status []Residency) HRESULT
	SetGPUThreadPriority(priority int32) HRESULT
	GetGPUThreadPriority(priority *int32) HRESULT
}

// IDXGIVkDevice exposes the backend state a device owns to the pipeline
// compiler and the presentation layer.
type IDXGIVkDevice interface {
	IDXGIDevice
	GetDeviceRemovedReason() HRESULT
	GetEnabledFeatures() gputypes.Features
	GetPipelineCacheHandle() uint64
	GetOutputData(monitor HMONITOR, data *OutputData) HRESULT
	SetOutputData(monitor HMONITOR, data *OutputData) HRESULT
}

// Compile-time interface checks.
var (
	_ IDXGIFactory1  = (*Factory)(nil)
	_ IDXGIVkAdapter = (*Adapter)(nil)
	_ IDXGIOutput    = (*Output)(nil)
	_ IDXGIVkDevice  = (*Device)(nil)
)
