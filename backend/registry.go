package backend

import (
	"github.com/gogpu/gpucontext"
)

// Provider name constants.
const (
	// NameVulkan is the pure Go Vulkan provider.
	NameVulkan = "vulkan"
	// NameNoop is the wgpu noop HAL provider used for tests and headless runs.
	NameNoop = "noop"
)

// ProviderFactory creates a new provider instance.
type ProviderFactory func() Provider

// providers holds registered providers.
// Vulkan is preferred; noop is the fallback.
var providers = gpucontext.NewRegistry[Provider](
	gpucontext.WithPriority(NameVulkan, NameNoop),
)

// Register registers a provider factory with the given name.
// This is typically called from init() functions in provider packages.
// If a provider with the same name is already registered, it will be replaced.
func Register(name string, factory ProviderFactory) {
	providers.Register(name, factory)
}

// Unregister removes a provider from the registry.
// This is useful for testing.
func Unregister(name string) {
	providers.Unregister(name)
}

// Available returns a list of registered provider names.
func Available() []string {
	return providers.Available()
}

// IsRegistered checks if a provider with the given name is registered.
func IsRegistered(name string) bool {
	return providers.Has(name)
}

// Get returns a provider instance by name.
// Returns nil if the provider is not registered.
func Get(name string) Provider {
	return providers.Get(name)
}

// Open returns an initialized provider.
//
// An empty name selects by priority, skipping providers whose Init fails.
// A non-empty name must refer to a registered provider.
func Open(name string) (Provider, error) {
	if name != "" {
		p := Get(name)
		if p == nil {
			return nil, ErrBackendNotAvailable
		}
		if err := p.Init(); err != nil {
			return nil, err
		}
		return p, nil
	}

	for _, n := range []string{NameVulkan, NameNoop} {
		p := Get(n)
		if p == nil {
			continue
		}
		if err := p.Init(); err != nil {
			Logger().Warn("backend: provider unavailable", "name", n, "err", err)
			continue
		}
		return p, nil
	}

	if p := providers.Best(); p != nil {
		if err := p.Init(); err == nil {
			return p, nil
		}
	}
	return nil, ErrBackendNotAvailable
}
