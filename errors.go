package dxgi

import (
	"errors"

	"github.com/gogpu/dxgi/backend"
	"github.com/gogpu/dxgi/internal/pipecache"
	"github.com/gogpu/dxgi/internal/vkfn"
)

// Package errors. Methods on interface objects return HRESULTs; these
// sentinels are used internally and by the Go-facing helpers, and map to
// HRESULTs through HResultFromError.
var (
	// ErrInvalidArg is returned when a required output is nil.
	ErrInvalidArg = errors.New("dxgi: invalid argument")

	// ErrNotFound is returned for missing keys, outputs and cache entries.
	ErrNotFound = errors.New("dxgi: not found")

	// ErrUnsupported is returned when the backend cannot provide a feature.
	ErrUnsupported = errors.New("dxgi: unsupported")

	// ErrNoInterface is returned when an object does not implement an interface.
	ErrNoInterface = errors.New("dxgi: no such interface")

	// ErrDeviceRemoved is returned once the backend reports device loss.
	ErrDeviceRemoved = errors.New("dxgi: device removed")
)

// HResultFromError maps err to the narrow HRESULT reported across the
// interface boundary. Unrecognized errors map to E_FAIL.
func HResultFromError(err error) HRESULT {
	if err == nil {
		return S_OK
	}
	var hr HRESULT
	if errors.As(err, &hr) {
		return hr
	}
	switch {
	case errors.Is(err, ErrInvalidArg):
		return DXGI_ERROR_INVALID_CALL
	case errors.Is(err, ErrNotFound):
		return DXGI_ERROR_NOT_FOUND
	case errors.Is(err, ErrNoInterface):
		return E_NOINTERFACE
	case errors.Is(err, ErrDeviceRemoved), errors.Is(err, backend.ErrDeviceLost):
		return DXGI_ERROR_DEVICE_REMOVED
	case errors.Is(err, ErrUnsupported),
		errors.Is(err, backend.ErrInitFailed),
		errors.Is(err, backend.ErrBackendNotAvailable),
		errors.Is(err, vkfn.ErrMissingEntryPoint):
		return DXGI_ERROR_UNSUPPORTED
	case errors.Is(err, pipecache.ErrNilDevice), errors.Is(err, pipecache.ErrUnknownDevice):
		return DXGI_ERROR_INVALID_CALL
	}
	return E_FAIL
}
