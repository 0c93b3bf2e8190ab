package dxgi

import "github.com/google/uuid"

// GUID is a 128-bit interface or private-data identifier.
type GUID = uuid.UUID

// Interface identifiers. The DXGI values match the Windows SDK headers.
//
//nolint:revive,stylecheck // names mirror the Windows SDK
var (
	IID_IUnknown       = uuid.MustParse("00000000-0000-0000-c000-000000000046")
	IID_IDXGIObject    = uuid.MustParse("aec22fb8-76f3-4639-9be0-28eb43a67a2e")
	IID_IDXGIAdapter   = uuid.MustParse("2411e7e1-12ac-4ccf-bd14-9798e8534dc0")
	IID_IDXGIAdapter1  = uuid.MustParse("29038f61-3839-4626-91fd-086879011a05")
	IID_IDXGIOutput    = uuid.MustParse("ae02eedb-c735-4690-8d52-5a8dc20213aa")
	IID_IDXGIDevice    = uuid.MustParse("54ec77fa-1377-44e6-8c32-88fd5f44c84c")
	IID_IDXGIFactory   = uuid.MustParse("7b7166ec-21c7-44ae-b21a-c9ae321ae369")
	IID_IDXGIFactory1  = uuid.MustParse("770aae78-f26f-4dba-a829-253c83d1b387")
	IID_IDXGIVkAdapter = uuid.MustParse("907bf281-ea3c-43b4-a8e4-9f231107b4ff")
	IID_IDXGIVkDevice  = uuid.MustParse("7a622cf6-627a-46b2-b52f-360ef3da831c")
)

// WKPDID_D3DDebugObjectName is the private-data key debuggers read object
// names from.
//
//nolint:revive,stylecheck // names mirror the Windows SDK
var WKPDID_D3DDebugObjectName = uuid.MustParse("429b8c22-9188-4b0c-8742-acb0bf85c200")

// NewGUID returns a random GUID, for callers that need private-data keys.
func NewGUID() GUID { return uuid.New() }
