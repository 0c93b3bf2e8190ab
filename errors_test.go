package dxgi

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gogpu/dxgi/backend"
	"github.com/gogpu/dxgi/internal/pipecache"
	"github.com/gogpu/dxgi/internal/vkfn"
)

func TestHResultFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want HRESULT
	}{
		{"nil", nil, S_OK},
		{"hresult", DXGI_ERROR_MORE_DATA, DXGI_ERROR_MORE_DATA},
		{"wrapped hresult", fmt.Errorf("ctx: %w", E_OUTOFMEMORY), E_OUTOFMEMORY},
		{"invalid arg", ErrInvalidArg, DXGI_ERROR_INVALID_CALL},
		{"not found", fmt.Errorf("lookup: %w", ErrNotFound), DXGI_ERROR_NOT_FOUND},
		{"no interface", ErrNoInterface, E_NOINTERFACE},
		{"removed", ErrDeviceRemoved, DXGI_ERROR_DEVICE_REMOVED},
		{"device lost", fmt.Errorf("submit: %w", backend.ErrDeviceLost), DXGI_ERROR_DEVICE_REMOVED},
		{"unsupported", ErrUnsupported, DXGI_ERROR_UNSUPPORTED},
		{"init failed", backend.ErrInitFailed, DXGI_ERROR_UNSUPPORTED},
		{"backend missing", backend.ErrBackendNotAvailable, DXGI_ERROR_UNSUPPORTED},
		{"entry point", vkfn.ErrMissingEntryPoint, DXGI_ERROR_UNSUPPORTED},
		{"nil device", pipecache.ErrNilDevice, DXGI_ERROR_INVALID_CALL},
		{"unknown", errors.New("boom"), E_FAIL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HResultFromError(tt.err); got != tt.want {
				t.Errorf("HResultFromError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestHRESULT(t *testing.T) {
	tests := []struct {
		hr       HRESULT
		failed   bool
		wantName string
	}{
		{S_OK, false, "S_OK"},
		{S_FALSE, false, "S_FALSE"},
		{E_NOINTERFACE, true, "E_NOINTERFACE"},
		{DXGI_ERROR_NOT_FOUND, true, "DXGI_ERROR_NOT_FOUND"},
		{DXGI_ERROR_NOT_CURRENTLY_AVAILABLE, true, "DXGI_ERROR_NOT_CURRENTLY_AVAILABLE"},
		{HRESULT(0x80001234), true, "HRESULT(0x80001234)"},
	}
	for _, tt := range tests {
		if got := tt.hr.Failed(); got != tt.failed {
			t.Errorf("%v.Failed() = %v, want %v", tt.hr, got, tt.failed)
		}
		if got := tt.hr.Succeeded(); got == tt.failed {
			t.Errorf("%v.Succeeded() = %v, want %v", tt.hr, got, !tt.failed)
		}
		if got := tt.hr.String(); got != tt.wantName {
			t.Errorf("String() = %q, want %q", got, tt.wantName)
		}
	}
	if got := E_FAIL.Error(); got != "dxgi: E_FAIL" {
		t.Errorf("Error() = %q, want %q", got, "dxgi: E_FAIL")
	}
}
