package dxgi

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("DXVK_CUSTOM_VENDOR_ID", "10de")
	t.Setenv("DXVK_CUSTOM_DEVICE_ID", "0x2204")
	t.Setenv("DXVK_BACKEND", "noop")
	t.Setenv("DXVK_PIPELINE_CACHE_DIR", "/tmp/dxgi")

	cfg, err := LoadConfig(nil)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	want := Config{
		CustomVendorID:   "10de",
		CustomDeviceID:   "0x2204",
		Backend:          "noop",
		PipelineCacheDir: "/tmp/dxgi",
	}
	if cfg != want {
		t.Errorf("LoadConfig() = %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigEmpty(t *testing.T) {
	cfg, err := LoadConfig(viper.New())
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.CustomVendorID != "" || cfg.CustomDeviceID != "" {
		t.Errorf("LoadConfig() = %+v, want no overrides", cfg)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	file := "custom_vendor_id: \"1002\"\nbackend: software\n"
	if err := v.ReadConfig(strings.NewReader(file)); err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}
	t.Setenv("DXVK_BACKEND", "noop")

	cfg, err := LoadConfig(v)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.CustomVendorID != "1002" {
		t.Errorf("CustomVendorID = %q, want %q from file", cfg.CustomVendorID, "1002")
	}
	if cfg.Backend != "noop" {
		t.Errorf("Backend = %q, want environment to win", cfg.Backend)
	}
}

func TestParseIDOverride(t *testing.T) {
	tests := []struct {
		in      string
		want    idOverride
		wantErr bool
	}{
		{"", idOverride{}, false},
		{"   ", idOverride{}, false},
		{"10DE", idOverride{value: 0x10de, set: true}, false},
		{"10de", idOverride{value: 0x10de, set: true}, false},
		{"0x1002", idOverride{value: 0x1002, set: true}, false},
		{"0X8086", idOverride{value: 0x8086, set: true}, false},
		{" 1234 ", idOverride{value: 0x1234, set: true}, false},
		{"0", idOverride{value: 0, set: true}, false},
		{"ffffffff", idOverride{value: 0xffffffff, set: true}, false},
		{"100000000", idOverride{}, true},
		{"nvidia", idOverride{}, true},
		{"0x", idOverride{}, true},
		{"-1", idOverride{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseIDOverride(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseIDOverride(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parseIDOverride(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIDOverrideApply(t *testing.T) {
	if got := (idOverride{}).apply(0x8086); got != 0x8086 {
		t.Errorf("unset apply = %#x, want 0x8086", got)
	}
	if got := (idOverride{value: 0, set: true}).apply(0x8086); got != 0 {
		t.Errorf("zero override apply = %#x, want 0", got)
	}
}
