package dxgi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// DefaultEnvPrefix is the prefix of every environment variable LoadConfig
// reads, e.g. DXVK_CUSTOM_VENDOR_ID.
const DefaultEnvPrefix = "DXVK"

// Config is the process-wide configuration threaded into CreateFactory.
// It is read once and never consulted ad hoc afterwards.
type Config struct {
	// CustomVendorID overrides the PCI vendor id reported by adapters.
	// Hexadecimal, with or without a 0x prefix. Empty means no override.
	CustomVendorID string `mapstructure:"custom_vendor_id"`

	// CustomDeviceID overrides the PCI device id reported by adapters.
	CustomDeviceID string `mapstructure:"custom_device_id"`

	// Backend selects the backend provider by name. Empty picks the best
	// available one.
	Backend string `mapstructure:"backend"`

	// PipelineCacheDir enables pipeline cache persistence in the given
	// directory.
	PipelineCacheDir string `mapstructure:"pipeline_cache_dir"`
}

var configKeys = []string{
	"custom_vendor_id",
	"custom_device_id",
	"backend",
	"pipeline_cache_dir",
}

// LoadConfig reads the configuration from v. Environment variables with
// DefaultEnvPrefix take precedence over values already present in v (for
// example from a config file). A nil v uses a fresh viper instance, so only
// the environment is consulted.
func LoadConfig(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	v.SetEnvPrefix(DefaultEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("dxgi: bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("dxgi: load configuration: %w", err)
	}
	return cfg, nil
}

// idOverride is a parsed vendor or device id override.
type idOverride struct {
	value uint32
	set   bool
}

func (o idOverride) apply(id uint32) uint32 {
	if o.set {
		return o.value
	}
	return id
}

// parseIDOverride parses a hexadecimal PCI id. Empty input is no override.
func parseIDOverride(s string) (idOverride, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return idOverride{}, nil
	}
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return idOverride{}, fmt.Errorf("dxgi: invalid PCI id %q: %w", s, err)
	}
	return idOverride{value: uint32(v), set: true}, nil
}
