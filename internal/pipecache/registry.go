// Package pipecache manages one backend pipeline cache per logical device.
package pipecache

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// Pipeline cache errors.
var (
	// ErrNilDevice is returned when acquiring a cache without a device.
	ErrNilDevice = errors.New("pipecache: device is nil")

	// ErrUnknownDevice is returned when releasing a device that holds no cache.
	ErrUnknownDevice = errors.New("pipecache: no cache for device")
)

// Device is the part of a logical device that owns pipeline caches.
type Device interface {
	CreatePipelineCache(initial []byte) (uint64, error)
	PipelineCacheData(handle uint64) ([]byte, error)
	DestroyPipelineCache(handle uint64)
}

// Cache is the pipeline cache of one device.
type Cache struct {
	handle uint64
	key    string
	device Device
}

// Handle returns the opaque backend handle. It never changes.
func (c *Cache) Handle() uint64 { return c.handle }

// Key returns the persistence key, empty when the cache is not persisted.
func (c *Cache) Key() string { return c.key }

// Data serializes the current cache contents.
func (c *Cache) Data() ([]byte, error) {
	return c.device.PipelineCacheData(c.handle)
}

// Registry maps devices to their pipeline caches.
//
// Thread Safety:
// Registry is safe for concurrent use. It uses RWMutex with
// double-check locking so repeated Acquire calls take only the read lock.
type Registry struct {
	mu     sync.RWMutex
	caches map[Device]*Cache
	store  *Store

	// hits counts Acquire calls that returned an existing cache.
	hits uint64

	// misses counts Acquire calls that created a cache.
	misses uint64
}

// Option configures a Registry.
type Option func(*Registry)

// WithStore persists cache blobs in s. Caches acquired with an empty key
// are not persisted.
func WithStore(s *Store) Option {
	return func(r *Registry) { r.store = s }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{caches: make(map[Device]*Cache)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Acquire returns the cache of dev, creating it on first use.
//
// Creation seeds the backend cache from the store when key is non-empty
// and a blob is stored for it. A second Acquire for the same device
// returns the existing cache and ignores key.
func (r *Registry) Acquire(dev Device, key string) (*Cache, error) {
	if dev == nil {
		return nil, ErrNilDevice
	}

	// Fast path: read lock
	r.mu.RLock()
	if c, ok := r.caches[dev]; ok {
		r.mu.RUnlock()
		atomic.AddUint64(&r.hits, 1)
		return c, nil
	}
	r.mu.RUnlock()

	// Slow path: write lock with double-check
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.caches[dev]; ok {
		atomic.AddUint64(&r.hits, 1)
		return c, nil
	}

	initial := r.load(key)
	handle, err := dev.CreatePipelineCache(initial)
	if err != nil && initial != nil {
		// Drivers reject blobs from other driver versions; start empty.
		slogger().Warn("pipecache: stored blob rejected", "key", key, "err", err)
		if rmErr := r.store.Remove(key); rmErr != nil {
			slogger().Warn("pipecache: remove rejected blob", "key", key, "err", rmErr)
		}
		handle, err = dev.CreatePipelineCache(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("pipecache: create: %w", err)
	}

	c := &Cache{handle: handle, key: key, device: dev}
	r.caches[dev] = c
	atomic.AddUint64(&r.misses, 1)
	slogger().Debug("pipecache: created", "handle", handle, "seed", len(initial))
	return c, nil
}

// Lookup returns the cache of dev without creating one.
func (r *Registry) Lookup(dev Device) (*Cache, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.caches[dev]
	return c, ok
}

// Release saves and destroys the cache of dev.
// The backend object is destroyed exactly once; later calls return
// ErrUnknownDevice.
func (r *Registry) Release(dev Device) error {
	r.mu.Lock()
	c, ok := r.caches[dev]
	if ok {
		delete(r.caches, dev)
	}
	r.mu.Unlock()

	if !ok {
		return ErrUnknownDevice
	}
	return r.destroy(c)
}

func (r *Registry) destroy(c *Cache) error {
	err := r.save(c)
	c.device.DestroyPipelineCache(c.handle)
	return err
}

func (r *Registry) load(key string) []byte {
	if r.store == nil || key == "" {
		return nil
	}
	blob, err := r.store.Load(key)
	if err != nil {
		slogger().Warn("pipecache: load", "key", key, "err", err)
		return nil
	}
	return blob
}

func (r *Registry) save(c *Cache) error {
	if r.store == nil || c.key == "" {
		return nil
	}
	blob, err := c.Data()
	if err != nil {
		return fmt.Errorf("pipecache: read %s: %w", c.key, err)
	}
	if len(blob) == 0 {
		return nil
	}
	if err := r.store.Save(c.key, blob); err != nil {
		return fmt.Errorf("pipecache: save %s: %w", c.key, err)
	}
	return nil
}

// Stats returns the number of Acquire hits and misses.
//
// These values are read atomically and may not be perfectly synchronized.
func (r *Registry) Stats() (hits, misses uint64) {
	return atomic.LoadUint64(&r.hits), atomic.LoadUint64(&r.misses)
}

// Size returns the number of live caches.
func (r *Registry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.caches)
}

// DestroyAll saves and destroys every cache and resets statistics.
// The first error encountered is returned; all caches are destroyed
// regardless.
func (r *Registry) DestroyAll() error {
	r.mu.Lock()
	caches := r.caches
	r.caches = make(map[Device]*Cache)
	atomic.StoreUint64(&r.hits, 0)
	atomic.StoreUint64(&r.misses, 0)
	r.mu.Unlock()

	var first error
	for _, c := range caches {
		if err := r.destroy(c); err != nil && first == nil {
			first = err
		}
	}
	return first
}
