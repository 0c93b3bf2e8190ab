package dxgi

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/gogpu/dxgi/backend"
	"github.com/gogpu/dxgi/internal/pipecache"
)

// Factory enumerates the adapters of one backend provider and owns the
// pipeline cache registry shared by their devices.
type Factory struct {
	ComObject

	cfg      Config
	provider backend.Provider
	devices  []backend.PhysicalDevice
	luids    []LUID
	caches   *pipecache.Registry
	window   atomic.Uintptr

	mu       sync.Mutex
	software backend.Provider
}

// NewFactory opens the backend named by cfg.Backend and enumerates its
// physical devices. The returned factory holds one reference.
func NewFactory(cfg Config) (*Factory, error) {
	provider, err := backend.Open(cfg.Backend)
	if err != nil {
		return nil, fmt.Errorf("dxgi: open backend %q: %w", cfg.Backend, err)
	}
	devices, err := provider.Enumerate()
	if err != nil && !errors.Is(err, backend.ErrNoAdapter) {
		provider.Close()
		return nil, fmt.Errorf("dxgi: enumerate %s adapters: %w", provider.Name(), err)
	}

	var opts []pipecache.Option
	if cfg.PipelineCacheDir != "" {
		opts = append(opts, pipecache.WithStore(pipecache.NewOsStore(cfg.PipelineCacheDir)))
	}

	f := &Factory{
		cfg:      cfg,
		provider: provider,
		devices:  devices,
		luids:    make([]LUID, len(devices)),
		caches:   pipecache.NewRegistry(opts...),
	}
	for i, d := range devices {
		f.luids[i] = adapterLUID(d.Properties())
	}
	f.init(f, "factory", f.teardown, IID_IDXGIObject, IID_IDXGIFactory, IID_IDXGIFactory1)
	pipelineCaches.track(f.caches)

	Logger().Info("dxgi: factory created", "backend", provider.Name(), "adapters", len(devices))
	return f, nil
}

// CreateFactory creates a factory and queries it for riid.
func CreateFactory(cfg Config, riid GUID, ppFactory *IUnknown) HRESULT {
	if ppFactory == nil {
		return DXGI_ERROR_INVALID_CALL
	}
	f, err := NewFactory(cfg)
	if err != nil {
		Logger().Error("dxgi: CreateFactory failed", "err", err)
		return HResultFromError(err)
	}
	hr := f.QueryInterface(riid, ppFactory)
	f.Release()
	return hr
}

func (f *Factory) teardown() {
	pipelineCaches.untrack(f.caches)
	if err := f.caches.DestroyAll(); err != nil {
		Logger().Warn("dxgi: pipeline caches not saved", "err", err)
	}

	f.mu.Lock()
	if f.software != nil {
		f.software.Close()
		f.software = nil
	}
	f.mu.Unlock()
	f.provider.Close()
}

// Config returns the configuration the factory was created with.
func (f *Factory) Config() Config { return f.cfg }

// Backend returns the name of the provider the factory enumerates.
func (f *Factory) Backend() string { return f.provider.Name() }

// GetParent always fails: a factory has no parent.
func (f *Factory) GetParent(riid GUID, ppParent *IUnknown) HRESULT {
	return queryParent(nil, riid, ppParent)
}

// EnumAdapters returns a new adapter object for index adapter.
func (f *Factory) EnumAdapters(adapter uint32, ppAdapter *IDXGIAdapter) HRESULT {
	if ppAdapter == nil {
		return DXGI_ERROR_INVALID_CALL
	}
	var a1 IDXGIAdapter1
	hr := f.EnumAdapters1(adapter, &a1)
	if hr.Failed() {
		*ppAdapter = nil
		return hr
	}
	*ppAdapter = a1
	return hr
}

// EnumAdapters1 returns a new adapter object for index adapter.
func (f *Factory) EnumAdapters1(adapter uint32, ppAdapter *IDXGIAdapter1) HRESULT {
	if ppAdapter == nil {
		return DXGI_ERROR_INVALID_CALL
	}
	if int(adapter) >= len(f.devices) {
		*ppAdapter = nil
		return DXGI_ERROR_NOT_FOUND
	}
	*ppAdapter = newAdapter(f, f.devices[adapter], f.luids[adapter])
	return S_OK
}

// MakeWindowAssociation records window. No window messages are hooked.
func (f *Factory) MakeWindowAssociation(window HWND, flags uint32) HRESULT {
	f.window.Store(uintptr(window))
	return S_OK
}

// GetWindowAssociation returns the window last passed to
// MakeWindowAssociation.
func (f *Factory) GetWindowAssociation(window *HWND) HRESULT {
	if window == nil {
		return DXGI_ERROR_INVALID_CALL
	}
	*window = HWND(f.window.Load())
	return S_OK
}

// CreateSwapChain is provided by the presentation layer, not the factory.
func (f *Factory) CreateSwapChain(device IUnknown, desc unsafe.Pointer, ppSwapChain *IUnknown) HRESULT {
	Logger().Warn("dxgi: Factory.CreateSwapChain: not implemented")
	return E_NOTIMPL
}

// CreateSoftwareAdapter returns an adapter backed by the CPU rasterizer.
// The module handle is ignored.
func (f *Factory) CreateSoftwareAdapter(module uintptr, ppAdapter *IDXGIAdapter) HRESULT {
	if ppAdapter == nil {
		return DXGI_ERROR_INVALID_CALL
	}
	*ppAdapter = nil

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.software == nil {
		p, err := backend.Open(backend.NameSoftware)
		if err != nil {
			Logger().Error("dxgi: CreateSoftwareAdapter failed", "err", err)
			return DXGI_ERROR_UNSUPPORTED
		}
		f.software = p
	}
	devices, err := f.software.Enumerate()
	if err != nil || len(devices) == 0 {
		Logger().Error("dxgi: CreateSoftwareAdapter: no adapter", "err", err)
		return DXGI_ERROR_UNSUPPORTED
	}
	*ppAdapter = newAdapter(f, devices[0], adapterLUID(devices[0].Properties()))
	return S_OK
}

// IsCurrent reports whether the adapter list is still valid. Adapters are
// never hot-plugged, so it always is.
func (f *Factory) IsCurrent() bool { return true }
