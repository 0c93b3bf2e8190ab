package backend

import (
	"errors"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/vulkan/vk"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested provider is not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNoAdapter is returned when a provider reports no physical devices.
	ErrNoAdapter = errors.New("backend: no physical device available")

	// ErrDeviceLost is reported by LogicalDevice.Status once the device is unusable.
	ErrDeviceLost = errors.New("backend: device lost")

	// ErrInitFailed wraps failures raised while creating a logical device.
	ErrInitFailed = errors.New("backend: initialization failed")

	// ErrInvalidHandle is returned for unknown pipeline cache handles.
	ErrInvalidHandle = errors.New("backend: invalid handle")
)

// MemoryHeap is one memory region reported by a physical device.
type MemoryHeap struct {
	Size uint64
	// DeviceLocal is set when the heap lives in dedicated video memory.
	DeviceLocal bool
}

// Properties describes a physical device as reported by the backend.
type Properties struct {
	Name              string
	VendorID          uint32
	DeviceID          uint32
	DeviceType        gputypes.DeviceType
	Backend           gputypes.Backend
	APIVersion        uint32
	DriverVersion     uint32
	PipelineCacheUUID [16]byte

	// LUID is the driver-reported locally unique id, meaningful only when
	// LUIDValid is set.
	LUID      [8]byte
	LUIDValid bool
}

// FormatQuery names a format in both the Vulkan and the WebGPU vocabulary
// so each provider can use whichever it understands.
type FormatQuery struct {
	Vulkan  vk.Format
	Texture gputypes.TextureFormat
}

// FormatFeatures is a bitmask of operations supported for a format.
type FormatFeatures uint32

// Format feature flags.
const (
	FormatFeatureSampled FormatFeatures = 1 << iota
	FormatFeatureStorage
	FormatFeatureRenderTarget
	FormatFeatureBlendable
	FormatFeatureDepthStencil
	FormatFeatureVertexBuffer
)

// Has reports whether every bit of f2 is set in f.
func (f FormatFeatures) Has(f2 FormatFeatures) bool { return f&f2 == f2 }

// PhysicalDevice is one adapter exposed by a provider.
type PhysicalDevice interface {
	// Properties returns the identity of the device.
	Properties() Properties

	// MemoryHeaps lists every memory heap the device reports.
	MemoryHeaps() []MemoryHeap

	// FormatFeatures reports the operations available for a format.
	FormatFeatures(q FormatQuery) FormatFeatures

	// CreateDevice opens a logical device with the requested features.
	CreateDevice(features gputypes.Features) (LogicalDevice, error)
}

// LogicalDevice is an opened device.
//
// Pipeline cache handles are opaque backend values. Zero is never a valid
// handle.
type LogicalDevice interface {
	// CreatePipelineCache creates a cache seeded with initial, which may be nil.
	CreatePipelineCache(initial []byte) (uint64, error)

	// PipelineCacheData serializes the cache contents.
	PipelineCacheData(handle uint64) ([]byte, error)

	// DestroyPipelineCache releases a cache created by CreatePipelineCache.
	DestroyPipelineCache(handle uint64)

	// Status returns nil while the device is usable and ErrDeviceLost after.
	Status() error

	// WaitIdle blocks until submitted work has finished.
	WaitIdle() error

	// Destroy releases the device. All caches must be destroyed first.
	Destroy()
}

// Provider enumerates physical devices for one backend API.
type Provider interface {
	// Name returns the provider identifier (e.g., "vulkan", "noop").
	Name() string

	// Init prepares the provider. It is safe to call more than once.
	Init() error

	// Enumerate returns the physical devices in preference order.
	Enumerate() ([]PhysicalDevice, error)

	// Close releases provider resources.
	Close()
}
