package dxgi

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/dxgi/backend"
)

// Adapter exposes one physical device.
//
// The description is rebuilt from live backend state on every GetDesc
// call. Vendor and device id overrides are parsed once, when the adapter is
// created, and never re-read.
type Adapter struct {
	ComObject

	factory  *Factory
	physical backend.PhysicalDevice
	luid     LUID
	vendorID idOverride
	deviceID idOverride

	outputMu   sync.Mutex
	outputData map[HMONITOR]OutputData
}

func newAdapter(factory *Factory, physical backend.PhysicalDevice, luid LUID) *Adapter {
	a := &Adapter{
		factory:    factory,
		physical:   physical,
		luid:       luid,
		outputData: make(map[HMONITOR]OutputData),
	}
	a.vendorID = parseOverride("vendor", factory.cfg.CustomVendorID)
	a.deviceID = parseOverride("device", factory.cfg.CustomDeviceID)
	factory.AddRef()
	a.init(a, "adapter", a.teardown,
		IID_IDXGIObject, IID_IDXGIAdapter, IID_IDXGIAdapter1, IID_IDXGIVkAdapter)
	return a
}

// parseOverride parses one id override. Invalid values are reported and
// ignored.
func parseOverride(which, s string) idOverride {
	o, err := parseIDOverride(s)
	if err != nil {
		Logger().Warn("dxgi: ignoring custom PCI id", "kind", which, "err", err)
		return idOverride{}
	}
	if o.set {
		Logger().Info("dxgi: using custom PCI id", "kind", which, "id", fmt.Sprintf("%04x", o.value))
	}
	return o
}

func (a *Adapter) teardown() {
	a.factory.Release()
}

// PhysicalDevice returns the backend device the adapter wraps.
func (a *Adapter) PhysicalDevice() backend.PhysicalDevice { return a.physical }

// GetParent queries the factory that enumerated the adapter.
func (a *Adapter) GetParent(riid GUID, ppParent *IUnknown) HRESULT {
	return queryParent(a.factory, riid, ppParent)
}

// CheckInterfaceSupport reports that no Direct3D 10 runtime is available.
func (a *Adapter) CheckInterfaceSupport(interfaceName GUID, umdVersion *int64) HRESULT {
	Logger().Warn("dxgi: CheckInterfaceSupport: no D3D10 support", "iid", interfaceName)
	return DXGI_ERROR_UNSUPPORTED
}

// EnumOutputs returns the primary display for index 0. Every other index
// is not found.
func (a *Adapter) EnumOutputs(output uint32, ppOutput *IDXGIOutput) HRESULT {
	if ppOutput == nil {
		return DXGI_ERROR_INVALID_CALL
	}
	if output > 0 {
		*ppOutput = nil
		return DXGI_ERROR_NOT_FOUND
	}
	monitor, desktop := primaryMonitor()
	*ppOutput = newOutput(a, monitor, desktop)
	return S_OK
}

// GetDesc fills desc from GetDesc1.
func (a *Adapter) GetDesc(desc *AdapterDesc) HRESULT {
	if desc == nil {
		return E_INVALIDARG
	}
	var d1 AdapterDesc1
	hr := a.GetDesc1(&d1)
	if hr.Failed() {
		return hr
	}
	*desc = AdapterDesc{
		Description:           d1.Description,
		VendorID:              d1.VendorID,
		DeviceID:              d1.DeviceID,
		SubSysID:              d1.SubSysID,
		Revision:              d1.Revision,
		DedicatedVideoMemory:  d1.DedicatedVideoMemory,
		DedicatedSystemMemory: d1.DedicatedSystemMemory,
		SharedSystemMemory:    d1.SharedSystemMemory,
		AdapterLuid:           d1.AdapterLuid,
	}
	return hr
}

// GetDesc1 describes the adapter. Device-local heaps count as dedicated
// video memory and every other heap as shared system memory.
func (a *Adapter) GetDesc1(desc *AdapterDesc1) HRESULT {
	if desc == nil {
		return E_INVALIDARG
	}
	props := a.physical.Properties()
	dedicated, shared := aggregateHeaps(a.physical.MemoryHeaps())

	*desc = AdapterDesc1{
		VendorID:             a.vendorID.apply(props.VendorID),
		DeviceID:             a.deviceID.apply(props.DeviceID),
		DedicatedVideoMemory: dedicated,
		SharedSystemMemory:   shared,
		AdapterLuid:          a.luid,
	}
	encodeUTF16(desc.Description[:], props.Name)
	if props.DeviceType == gputypes.DeviceTypeCPU {
		desc.Flags = AdapterFlagSoftware
	}
	return S_OK
}

// GetOutputFromMonitor returns the enumerated output whose monitor handle
// is monitor. Outputs that do not match are released.
func (a *Adapter) GetOutputFromMonitor(monitor HMONITOR, ppOutput *IDXGIOutput) HRESULT {
	if ppOutput == nil {
		return DXGI_ERROR_INVALID_CALL
	}
	for i := uint32(0); ; i++ {
		var out IDXGIOutput
		if hr := a.EnumOutputs(i, &out); hr.Failed() {
			break
		}
		var desc OutputDesc
		if hr := out.GetDesc(&desc); hr.Succeeded() && desc.Monitor == monitor {
			*ppOutput = out
			return S_OK
		}
		out.Release()
	}
	return DXGI_ERROR_NOT_FOUND
}

// GetOutputData copies the state stored for monitor into data. A nil data
// only checks for presence and returns S_FALSE when an entry exists.
func (a *Adapter) GetOutputData(monitor HMONITOR, data *OutputData) HRESULT {
	entry, err := a.OutputData(monitor)
	if err != nil {
		return HResultFromError(err)
	}
	if data == nil {
		return S_FALSE
	}
	*data = entry
	return S_OK
}

// OutputData returns a copy of the state stored for monitor, or
// ErrNotFound.
func (a *Adapter) OutputData(monitor HMONITOR) (OutputData, error) {
	a.outputMu.Lock()
	defer a.outputMu.Unlock()

	entry, ok := a.outputData[monitor]
	if !ok {
		return OutputData{}, ErrNotFound
	}
	return entry, nil
}

// SetOutputData stores data for monitor, replacing any previous entry.
func (a *Adapter) SetOutputData(monitor HMONITOR, data *OutputData) HRESULT {
	if data == nil {
		return DXGI_ERROR_INVALID_CALL
	}
	a.outputMu.Lock()
	a.outputData[monitor] = *data
	a.outputMu.Unlock()

	outputDataUpdates.Inc()
	return S_OK
}

// updateOutputData applies fn to the entry for monitor under the cache
// lock, creating a zero entry if none exists.
func (a *Adapter) updateOutputData(monitor HMONITOR, fn func(*OutputData)) {
	a.outputMu.Lock()
	entry := a.outputData[monitor]
	fn(&entry)
	a.outputData[monitor] = entry
	a.outputMu.Unlock()

	outputDataUpdates.Inc()
}

// CreateDevice opens a backend device with the requested features. Any
// backend failure, including a panic, is logged and reported as
// DXGI_ERROR_UNSUPPORTED.
func (a *Adapter) CreateDevice(features gputypes.Features, ppDevice *IDXGIVkDevice) (hr HRESULT) {
	if ppDevice == nil {
		return DXGI_ERROR_INVALID_CALL
	}
	*ppDevice = nil

	defer func() {
		if r := recover(); r != nil {
			Logger().Error("dxgi: CreateDevice: backend panic", "panic", r)
			deviceCreateFailures.Inc()
			hr = DXGI_ERROR_UNSUPPORTED
		}
	}()

	dev, err := newDevice(a, features)
	if err != nil {
		Logger().Error("dxgi: CreateDevice failed", "err", err)
		deviceCreateFailures.Inc()
		return DXGI_ERROR_UNSUPPORTED
	}
	*ppDevice = dev
	return S_OK
}

// LookupFormat maps format through the format table.
func (a *Adapter) LookupFormat(format Format, mode FormatMode) FormatInfo {
	return LookupFormat(format, mode)
}

// CheckFormatSupport reports what the backend can do with format.
func (a *Adapter) CheckFormatSupport(format Format, support *FormatSupport) HRESULT {
	if support == nil {
		return E_INVALIDARG
	}
	s, err := a.FormatSupport(format)
	*support = s
	return HResultFromError(err)
}

// FormatSupport returns what the backend can do with format. Formats
// without a mapping or without backend features yield ErrUnsupported.
func (a *Adapter) FormatSupport(format Format) (FormatSupport, error) {
	info := LookupFormat(format, FormatModeAny)
	if !info.IsDefined() {
		return 0, fmt.Errorf("%w: format %v has no mapping", ErrUnsupported, format)
	}
	features := a.physical.FormatFeatures(backend.FormatQuery{
		Vulkan:  info.Format,
		Texture: info.Texture,
	})
	s := formatSupport(features)
	if s == 0 {
		return 0, fmt.Errorf("%w: format %v", ErrUnsupported, format)
	}
	return s, nil
}
