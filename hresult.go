package dxgi

import "fmt"

// HRESULT is the status code returned by every interface method.
//
// The high bit marks failure; S_OK and S_FALSE are both successes.
// HRESULT implements error so a failing code can be wrapped and
// unwrapped with the errors package.
type HRESULT uint32

//nolint:revive,stylecheck // names mirror the Windows SDK
const (
	S_OK    HRESULT = 0x00000000
	S_FALSE HRESULT = 0x00000001

	E_NOTIMPL     HRESULT = 0x80004001
	E_NOINTERFACE HRESULT = 0x80004002
	E_POINTER     HRESULT = 0x80004003
	E_FAIL        HRESULT = 0x80004005
	E_OUTOFMEMORY HRESULT = 0x8007000E
	E_INVALIDARG  HRESULT = 0x80070057

	DXGI_ERROR_INVALID_CALL            HRESULT = 0x887A0001
	DXGI_ERROR_NOT_FOUND               HRESULT = 0x887A0002
	DXGI_ERROR_MORE_DATA               HRESULT = 0x887A0003
	DXGI_ERROR_UNSUPPORTED             HRESULT = 0x887A0004
	DXGI_ERROR_DEVICE_REMOVED          HRESULT = 0x887A0005
	DXGI_ERROR_DEVICE_HUNG             HRESULT = 0x887A0006
	DXGI_ERROR_DEVICE_RESET            HRESULT = 0x887A0007
	DXGI_ERROR_DRIVER_INTERNAL_ERROR   HRESULT = 0x887A0020
	DXGI_ERROR_NOT_CURRENTLY_AVAILABLE HRESULT = 0x887A0022
)

var hresultNames = map[HRESULT]string{
	S_OK:                               "S_OK",
	S_FALSE:                            "S_FALSE",
	E_NOTIMPL:                          "E_NOTIMPL",
	E_NOINTERFACE:                      "E_NOINTERFACE",
	E_POINTER:                          "E_POINTER",
	E_FAIL:                             "E_FAIL",
	E_OUTOFMEMORY:                      "E_OUTOFMEMORY",
	E_INVALIDARG:                       "E_INVALIDARG",
	DXGI_ERROR_INVALID_CALL:            "DXGI_ERROR_INVALID_CALL",
	DXGI_ERROR_NOT_FOUND:               "DXGI_ERROR_NOT_FOUND",
	DXGI_ERROR_MORE_DATA:               "DXGI_ERROR_MORE_DATA",
	DXGI_ERROR_UNSUPPORTED:             "DXGI_ERROR_UNSUPPORTED",
	DXGI_ERROR_DEVICE_REMOVED:          "DXGI_ERROR_DEVICE_REMOVED",
	DXGI_ERROR_DEVICE_HUNG:             "DXGI_ERROR_DEVICE_HUNG",
	DXGI_ERROR_DEVICE_RESET:            "DXGI_ERROR_DEVICE_RESET",
	DXGI_ERROR_DRIVER_INTERNAL_ERROR:   "DXGI_ERROR_DRIVER_INTERNAL_ERROR",
	DXGI_ERROR_NOT_CURRENTLY_AVAILABLE: "DXGI_ERROR_NOT_CURRENTLY_AVAILABLE",
}

// Succeeded reports whether hr is a success code.
func (hr HRESULT) Succeeded() bool { return hr&0x80000000 == 0 }

// Failed reports whether hr is a failure code.
func (hr HRESULT) Failed() bool { return hr&0x80000000 != 0 }

// String returns the SDK name of hr, or its hex value if unknown.
func (hr HRESULT) String() string {
	if name, ok := hresultNames[hr]; ok {
		return name
	}
	return fmt.Sprintf("HRESULT(0x%08X)", uint32(hr))
}

// Error implements the error interface.
func (hr HRESULT) Error() string {
	return "dxgi: " + hr.String()
}
