package dxgi

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/dxgi/backend"
)

// =============================================================================
// Test Helpers
// =============================================================================

const gib = uint64(1) << 30

// testObject is the smallest possible interface object.
type testObject struct {
	ComObject
	destroyed atomic.Int32
}

func newTestObject() *testObject {
	o := &testObject{}
	o.init(o, "test", func() { o.destroyed.Add(1) }, IID_IDXGIObject)
	return o
}

func (o *testObject) GetParent(riid GUID, ppParent *IUnknown) HRESULT {
	return queryParent(nil, riid, ppParent)
}

// fakeProvider serves a fixed list of physical devices.
type fakeProvider struct {
	name    string
	devices []backend.PhysicalDevice
	closed  *atomic.Int32
}

func (p *fakeProvider) Name() string { return p.name }
func (p *fakeProvider) Init() error  { return nil }
func (p *fakeProvider) Close()       { p.closed.Add(1) }

func (p *fakeProvider) Enumerate() ([]backend.PhysicalDevice, error) {
	if len(p.devices) == 0 {
		return nil, backend.ErrNoAdapter
	}
	return p.devices, nil
}

// fakePhysical is a scripted physical device.
type fakePhysical struct {
	props     backend.Properties
	heaps     []backend.MemoryHeap
	formats   backend.FormatFeatures
	createErr error
	panicMsg  string

	// cacheErr and cachePanic script the pipeline cache of created devices.
	cacheErr   error
	cachePanic string

	mu      sync.Mutex
	logical []*fakeLogical
}

func newFakePhysical(name string, vendor, device uint32) *fakePhysical {
	return &fakePhysical{
		props: backend.Properties{
			Name:       name,
			VendorID:   vendor,
			DeviceID:   device,
			DeviceType: gputypes.DeviceTypeDiscreteGPU,
			Backend:    gputypes.BackendVulkan,
		},
		heaps: []backend.MemoryHeap{{Size: 4 * gib, DeviceLocal: true}},
	}
}

func (p *fakePhysical) Properties() backend.Properties { return p.props }
func (p *fakePhysical) MemoryHeaps() []backend.MemoryHeap {
	return p.heaps
}

func (p *fakePhysical) FormatFeatures(q backend.FormatQuery) backend.FormatFeatures {
	if q.Texture == gputypes.TextureFormatUndefined {
		return 0
	}
	return p.formats
}

func (p *fakePhysical) CreateDevice(features gputypes.Features) (backend.LogicalDevice, error) {
	if p.panicMsg != "" {
		panic(p.panicMsg)
	}
	if p.createErr != nil {
		return nil, p.createErr
	}
	d := &fakeLogical{
		caches:     make(map[uint64][]byte),
		cacheErr:   p.cacheErr,
		cachePanic: p.cachePanic,
	}
	p.mu.Lock()
	p.logical = append(p.logical, d)
	p.mu.Unlock()
	return d, nil
}

// fakeLogical records pipeline cache and lifetime calls.
type fakeLogical struct {
	mu        sync.Mutex
	next      uint64
	caches    map[uint64][]byte
	destroys  map[uint64]int
	destroyed int
	status    error

	cacheErr   error
	cachePanic string
}

func (d *fakeLogical) CreatePipelineCache(initial []byte) (uint64, error) {
	if d.cachePanic != "" {
		panic(d.cachePanic)
	}
	if d.cacheErr != nil {
		return 0, d.cacheErr
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	d.caches[d.next] = append([]byte(nil), initial...)
	return d.next, nil
}

func (d *fakeLogical) PipelineCacheData(handle uint64) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	blob, ok := d.caches[handle]
	if !ok {
		return nil, backend.ErrInvalidHandle
	}
	return blob, nil
}

func (d *fakeLogical) DestroyPipelineCache(handle uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.destroys == nil {
		d.destroys = make(map[uint64]int)
	}
	d.destroys[handle]++
	delete(d.caches, handle)
}

func (d *fakeLogical) Status() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

func (d *fakeLogical) WaitIdle() error { return d.Status() }

func (d *fakeLogical) Destroy() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.destroyed++
}

// newFakeFactory registers a provider serving devices and opens a factory
// on it. The factory is released when the test ends.
func newFakeFactory(t *testing.T, cfg Config, devices ...backend.PhysicalDevice) (*Factory, *atomic.Int32) {
	t.Helper()
	name := "fake/" + t.Name()
	closed := &atomic.Int32{}
	backend.Register(name, func() backend.Provider {
		return &fakeProvider{name: name, devices: devices, closed: closed}
	})
	t.Cleanup(func() { backend.Unregister(name) })

	cfg.Backend = name
	f, err := NewFactory(cfg)
	if err != nil {
		t.Fatalf("NewFactory() error = %v", err)
	}
	return f, closed
}

// newFakeAdapter returns adapter 0 of a factory serving dev. The caller
// owns the adapter; the factory reference is dropped immediately so the
// adapter keeps the factory alive.
func newFakeAdapter(t *testing.T, cfg Config, dev backend.PhysicalDevice) *Adapter {
	t.Helper()
	f, _ := newFakeFactory(t, cfg, dev)
	defer f.Release()

	var a IDXGIAdapter1
	if hr := f.EnumAdapters1(0, &a); hr != S_OK {
		t.Fatalf("EnumAdapters1(0) = %v, want S_OK", hr)
	}
	return a.(*Adapter)
}
