package dxgi

import "unsafe"

// Vtable slot layouts. Each field is one function pointer slot in the
// order client code was compiled against. Embedding models interface
// inheritance: a derived table starts with its base.

type iUnknownVtbl struct {
	QueryInterface uintptr
	AddRef         uintptr
	Release        uintptr
}

type iDXGIObjectVtbl struct {
	iUnknownVtbl

	SetPrivateData          uintptr
	SetPrivateDataInterface uintptr
	GetPrivateData          uintptr
	GetParent               uintptr
}

type iDXGIFactoryVtbl struct {
	iDXGIObjectVtbl

	EnumAdapters          uintptr
	MakeWindowAssociation uintptr
	GetWindowAssociation  uintptr
	CreateSwapChain       uintptr
	CreateSoftwareAdapter uintptr
}

type iDXGIFactory1Vtbl struct {
	iDXGIFactoryVtbl

	EnumAdapters1 uintptr
	IsCurrent     uintptr
}

type iDXGIAdapterVtbl struct {
	iDXGIObjectVtbl

	EnumOutputs           uintptr
	GetDesc               uintptr
	CheckInterfaceSupport uintptr
}

type iDXGIAdapter1Vtbl struct {
	iDXGIAdapterVtbl

	GetDesc1 uintptr
}

type iDXGIVkAdapterVtbl struct {
	iDXGIAdapter1Vtbl

	GetOutputFromMonitor uintptr
	GetOutputData        uintptr
	SetOutputData        uintptr
	CreateDevice         uintptr
	LookupFormat         uintptr
	CheckFormatSupport   uintptr
}

type iDXGIOutputVtbl struct {
	iDXGIObjectVtbl

	GetDesc                     uintptr
	GetDisplayModeList          uintptr
	FindClosestMatchingMode     uintptr
	WaitForVBlank               uintptr
	TakeOwnership               uintptr
	ReleaseOwnership            uintptr
	GetGammaControlCapabilities uintptr
	SetGammaControl             uintptr
	GetGammaControl             uintptr
	SetDisplaySurface           uintptr
	GetDisplaySurfaceData       uintptr
	GetFrameStatistics          uintptr
}

type iDXGIDeviceVtbl struct {
	iDXGIObjectVtbl

	GetAdapter             uintptr
	CreateSurface          uintptr
	QueryResourceResidency uintptr
	SetGPUThreadPriority   uintptr
	GetGPUThreadPriority   uintptr
}

type iDXGIVkDeviceVtbl struct {
	iDXGIDeviceVtbl

	GetDeviceRemovedReason uintptr
	GetEnabledFeatures     uintptr
	GetPipelineCacheHandle uintptr
	GetOutputData          uintptr
	SetOutputData          uintptr
}

const slotSize = unsafe.Sizeof(uintptr(0))

// Slot index assertions. Indexing a one-element array with anything but
// zero fails to compile, as does a negative uintptr constant.
var (
	_ = [1]struct{}{}[unsafe.Offsetof(iUnknownVtbl{}.Release)/slotSize-2]

	_ = [1]struct{}{}[unsafe.Offsetof(iDXGIObjectVtbl{}.SetPrivateData)/slotSize-3]
	_ = [1]struct{}{}[unsafe.Offsetof(iDXGIObjectVtbl{}.GetParent)/slotSize-6]

	_ = [1]struct{}{}[unsafe.Offsetof(iDXGIFactoryVtbl{}.EnumAdapters)/slotSize-7]
	_ = [1]struct{}{}[unsafe.Offsetof(iDXGIFactoryVtbl{}.CreateSoftwareAdapter)/slotSize-11]
	_ = [1]struct{}{}[unsafe.Offsetof(iDXGIFactory1Vtbl{}.EnumAdapters1)/slotSize-12]
	_ = [1]struct{}{}[unsafe.Offsetof(iDXGIFactory1Vtbl{}.IsCurrent)/slotSize-13]

	_ = [1]struct{}{}[unsafe.Offsetof(iDXGIAdapterVtbl{}.EnumOutputs)/slotSize-7]
	_ = [1]struct{}{}[unsafe.Offsetof(iDXGIAdapterVtbl{}.CheckInterfaceSupport)/slotSize-9]
	_ = [1]struct{}{}[unsafe.Offsetof(iDXGIAdapter1Vtbl{}.GetDesc1)/slotSize-10]
	_ = [1]struct{}{}[unsafe.Offsetof(iDXGIVkAdapterVtbl{}.GetOutputFromMonitor)/slotSize-11]
	_ = [1]struct{}{}[unsafe.Offsetof(iDXGIVkAdapterVtbl{}.CreateDevice)/slotSize-14]
	_ = [1]struct{}{}[unsafe.Offsetof(iDXGIVkAdapterVtbl{}.CheckFormatSupport)/slotSize-16]

	_ = [1]struct{}{}[unsafe.Offsetof(iDXGIOutputVtbl{}.GetDesc)/slotSize-7]
	_ = [1]struct{}{}[unsafe.Offsetof(iDXGIOutputVtbl{}.GetGammaControlCapabilities)/slotSize-13]
	_ = [1]struct{}{}[unsafe.Offsetof(iDXGIOutputVtbl{}.GetFrameStatistics)/slotSize-18]

	_ = [1]struct{}{}[unsafe.Offsetof(iDXGIDeviceVtbl{}.GetAdapter)/slotSize-7]
	_ = [1]struct{}{}[unsafe.Offsetof(iDXGIDeviceVtbl{}.GetGPUThreadPriority)/slotSize-11]
	_ = [1]struct{}{}[unsafe.Offsetof(iDXGIVkDeviceVtbl{}.GetDeviceRemovedReason)/slotSize-12]
	_ = [1]struct{}{}[unsafe.Offsetof(iDXGIVkDeviceVtbl{}.SetOutputData)/slotSize-16]
)
