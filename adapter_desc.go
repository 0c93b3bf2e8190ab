package dxgi

import (
	"encoding/binary"
	"sync/atomic"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"github.com/gogpu/dxgi/backend"
)

// LUID is a locally unique identifier.
type LUID struct {
	LowPart  uint32
	HighPart int32
}

// AdapterFlag is a DXGI_ADAPTER_FLAG value.
type AdapterFlag uint32

// Adapter flags.
const (
	AdapterFlagNone     AdapterFlag = 0
	AdapterFlagRemote   AdapterFlag = 1
	AdapterFlagSoftware AdapterFlag = 2
)

// AdapterDesc mirrors DXGI_ADAPTER_DESC.
type AdapterDesc struct {
	Description           [128]uint16
	VendorID              uint32
	DeviceID              uint32
	SubSysID              uint32
	Revision              uint32
	DedicatedVideoMemory  uint64
	DedicatedSystemMemory uint64
	SharedSystemMemory    uint64
	AdapterLuid           LUID
}

// AdapterDesc1 mirrors DXGI_ADAPTER_DESC1.
type AdapterDesc1 struct {
	Description           [128]uint16
	VendorID              uint32
	DeviceID              uint32
	SubSysID              uint32
	Revision              uint32
	DedicatedVideoMemory  uint64
	DedicatedSystemMemory uint64
	SharedSystemMemory    uint64
	AdapterLuid           LUID
	Flags                 AdapterFlag
}

// DescriptionString decodes the NUL-terminated description.
func (d *AdapterDesc) DescriptionString() string { return decodeUTF16(d.Description[:]) }

// DescriptionString decodes the NUL-terminated description.
func (d *AdapterDesc1) DescriptionString() string { return decodeUTF16(d.Description[:]) }

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// encodeUTF16 writes s into dst as NUL-terminated UTF-16, truncating to
// len(dst)-1 code units without splitting a surrogate pair.
func encodeUTF16(dst []uint16, s string) {
	clear(dst)
	if len(dst) == 0 {
		return
	}
	b, err := encoding.ReplaceUnsupported(utf16le.NewEncoder()).Bytes([]byte(s))
	if err != nil {
		Logger().Warn("dxgi: cannot encode string", "value", s, "err", err)
		return
	}
	n := min(len(b)/2, len(dst)-1)
	for i := range n {
		dst[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
	}
	if n > 0 && dst[n-1] >= 0xD800 && dst[n-1] < 0xDC00 {
		dst[n-1] = 0
	}
}

func decodeUTF16(src []uint16) string {
	n := 0
	for n < len(src) && src[n] != 0 {
		n++
	}
	b := make([]byte, 2*n)
	for i, u := range src[:n] {
		b[2*i] = byte(u)
		b[2*i+1] = byte(u >> 8)
	}
	s, err := utf16le.NewDecoder().Bytes(b)
	if err != nil {
		return ""
	}
	return string(s)
}

// aggregateHeaps sums device-local heaps into dedicated and every other
// heap into shared memory.
func aggregateHeaps(heaps []backend.MemoryHeap) (dedicated, shared uint64) {
	for _, h := range heaps {
		if h.DeviceLocal {
			dedicated += h.Size
		} else {
			shared += h.Size
		}
	}
	return dedicated, shared
}

var lastLUID atomic.Uint32

// newLUID returns a process-unique, non-zero LUID.
func newLUID() LUID {
	return LUID{LowPart: lastLUID.Add(1)}
}

// adapterLUID returns the LUID the driver reports for p, or a fresh one
// from newLUID when it reports none.
func adapterLUID(p backend.Properties) LUID {
	if !p.LUIDValid {
		return newLUID()
	}
	return LUID{
		LowPart:  binary.LittleEndian.Uint32(p.LUID[0:4]),
		HighPart: int32(binary.LittleEndian.Uint32(p.LUID[4:8])), //nolint:gosec // G115: LUID high part is signed
	}
}
