package dxgi

import (
	"errors"
	"fmt"
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/dxgi/backend"
	"github.com/gogpu/dxgi/internal/pipecache"
)

// Device owns one logical backend device and its pipeline cache.
//
// The command recording engine is built on top of Device; it is not part
// of this package. Device keeps its adapter alive and gives the
// presentation layer access to the adapter's output cache.
type Device struct {
	ComObject

	adapter  *Adapter
	logical  backend.LogicalDevice
	cache    *pipecache.Cache
	features gputypes.Features
	priority atomic.Int32
}

// newDevice opens a logical device on a and acquires its pipeline cache.
// The logical device is destroyed if anything after its creation fails,
// including a backend panic.
func newDevice(a *Adapter, features gputypes.Features) (*Device, error) {
	logical, err := a.physical.CreateDevice(features)
	if err != nil {
		return nil, fmt.Errorf("dxgi: create device: %w", err)
	}
	built := false
	defer func() {
		if !built {
			logical.Destroy()
		}
	}()

	cache, err := a.factory.caches.Acquire(logical, pipelineCacheKey(a.physical.Properties()))
	if err != nil {
		return nil, fmt.Errorf("dxgi: create pipeline cache: %w", err)
	}

	d := &Device{
		adapter:  a,
		logical:  logical,
		cache:    cache,
		features: features,
	}
	a.AddRef()
	d.init(d, "device", d.teardown, IID_IDXGIObject, IID_IDXGIDevice, IID_IDXGIVkDevice)
	built = true
	Logger().Info("dxgi: device created", "features", uint64(features), "pipeline_cache", cache.Handle())
	return d, nil
}

// pipelineCacheKey names the persisted cache of a physical device. Caches
// are only valid for the same device and driver.
func pipelineCacheKey(p backend.Properties) string {
	key := fmt.Sprintf("%04x-%04x-%08x", p.VendorID, p.DeviceID, p.DriverVersion)
	if p.PipelineCacheUUID != [16]byte{} {
		key += fmt.Sprintf("-%x", p.PipelineCacheUUID)
	}
	return key
}

func (d *Device) teardown() {
	if err := d.adapter.factory.caches.Release(d.logical); err != nil {
		Logger().Warn("dxgi: pipeline cache release failed", "err", err)
	}
	d.logical.Destroy()
	d.adapter.Release()
}

// Logical returns the backend device.
func (d *Device) Logical() backend.LogicalDevice { return d.logical }

// GetParent queries the adapter the device was created on.
func (d *Device) GetParent(riid GUID, ppParent *IUnknown) HRESULT {
	return queryParent(d.adapter, riid, ppParent)
}

// GetAdapter returns a new reference to the device's adapter.
func (d *Device) GetAdapter(ppAdapter *IDXGIAdapter) HRESULT {
	if ppAdapter == nil {
		return DXGI_ERROR_INVALID_CALL
	}
	d.adapter.AddRef()
	*ppAdapter = d.adapter
	return S_OK
}

// CreateSurface is provided by the resource layer.
func (d *Device) CreateSurface(desc *SurfaceDesc, numSurfaces uint32, usage uint32, sharedResource unsafe.Pointer, ppSurface *IUnknown) HRESULT {
	Logger().Warn("dxgi: Device.CreateSurface: not implemented")
	return E_NOTIMPL
}

// QueryResourceResidency reports every resource as resident.
func (d *Device) QueryResourceResidency(resources []IUnknown, status []Residency) HRESULT {
	if len(status) < len(resources) {
		return E_INVALIDARG
	}
	for i := range resources {
		status[i] = ResidencyFullyResident
	}
	return S_OK
}

// ResidencyFullyResident is DXGI_RESIDENCY_FULLY_RESIDENT.
const ResidencyFullyResident Residency = 1

// SetGPUThreadPriority stores priority, which must be in [-7, 7].
func (d *Device) SetGPUThreadPriority(priority int32) HRESULT {
	if priority < -7 || priority > 7 {
		return E_INVALIDARG
	}
	d.priority.Store(priority)
	return S_OK
}

// GetGPUThreadPriority returns the value stored by SetGPUThreadPriority.
func (d *Device) GetGPUThreadPriority(priority *int32) HRESULT {
	if priority == nil {
		return DXGI_ERROR_INVALID_CALL
	}
	*priority = d.priority.Load()
	return S_OK
}

// GetDeviceRemovedReason returns S_OK while the backend device is usable
// and DXGI_ERROR_DEVICE_REMOVED once it reports loss. It is the only call
// that surfaces device loss.
func (d *Device) GetDeviceRemovedReason() HRESULT {
	return HResultFromError(d.Err())
}

// Err returns nil while the backend device is usable. Once the backend
// reports loss it returns an error wrapping ErrDeviceRemoved.
func (d *Device) Err() error {
	err := d.logical.Status()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, backend.ErrDeviceLost):
		return fmt.Errorf("%w: %w", ErrDeviceRemoved, err)
	default:
		Logger().Error("dxgi: device status", "err", err)
		return err
	}
}

// GetEnabledFeatures returns the features the device was created with.
func (d *Device) GetEnabledFeatures() gputypes.Features { return d.features }

// GetPipelineCacheHandle returns the backend pipeline cache handle.
func (d *Device) GetPipelineCacheHandle() uint64 { return d.cache.Handle() }

// GetOutputData reads the adapter's output cache.
func (d *Device) GetOutputData(monitor HMONITOR, data *OutputData) HRESULT {
	return d.adapter.GetOutputData(monitor, data)
}

// SetOutputData writes the adapter's output cache.
func (d *Device) SetOutputData(monitor HMONITOR, data *OutputData) HRESULT {
	return d.adapter.SetOutputData(monitor, data)
}
