package dxgi

import (
	"sync"
	"unsafe"
)

// privateEntry is either an owned byte blob or a retained interface.
type privateEntry struct {
	data  []byte
	iface IUnknown
}

// size is the value GetPrivateData reports for the entry. Interface
// entries report the size of a pointer.
func (e privateEntry) size() uint32 {
	if e.iface != nil {
		return uint32(unsafe.Sizeof(uintptr(0)))
	}
	return uint32(len(e.data))
}

// privateData is the GUID-keyed metadata store attached to every object.
type privateData struct {
	mu      sync.RWMutex
	entries map[GUID]privateEntry
}

// put replaces the entry for name and returns the previous interface, if
// any, so it can be released outside the lock.
func (p *privateData) put(name GUID, e privateEntry, remove bool) IUnknown {
	p.mu.Lock()
	defer p.mu.Unlock()
	old := p.entries[name]
	if remove {
		delete(p.entries, name)
	} else {
		if p.entries == nil {
			p.entries = make(map[GUID]privateEntry)
		}
		p.entries[name] = e
	}
	return old.iface
}

func (p *privateData) setData(name GUID, data []byte) {
	var e privateEntry
	if data != nil {
		e.data = make([]byte, len(data))
		copy(e.data, data)
	}
	if old := p.put(name, e, data == nil); old != nil {
		old.Release()
	}
}

func (p *privateData) setInterface(name GUID, unknown IUnknown) {
	if unknown != nil {
		unknown.AddRef()
	}
	if old := p.put(name, privateEntry{iface: unknown}, unknown == nil); old != nil {
		old.Release()
	}
}

func (p *privateData) lookup(name GUID) (privateEntry, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	e, ok := p.entries[name]
	return e, ok
}

func (p *privateData) getData(name GUID, dataSize *uint32, data []byte) HRESULT {
	if dataSize == nil {
		return DXGI_ERROR_INVALID_CALL
	}
	e, ok := p.lookup(name)
	if !ok {
		*dataSize = 0
		return DXGI_ERROR_NOT_FOUND
	}
	if data != nil {
		if e.iface != nil {
			return DXGI_ERROR_INVALID_CALL
		}
		n := min(int(*dataSize), len(data))
		copy(data[:n], e.data)
	}
	*dataSize = e.size()
	return S_OK
}

func (p *privateData) getInterface(name GUID, ppUnknown *IUnknown) HRESULT {
	if ppUnknown == nil {
		return DXGI_ERROR_INVALID_CALL
	}
	e, ok := p.lookup(name)
	if !ok || e.iface == nil {
		return DXGI_ERROR_NOT_FOUND
	}
	e.iface.AddRef()
	*ppUnknown = e.iface
	return S_OK
}

// clear drops every entry, releasing stored interfaces.
func (p *privateData) clear() {
	p.mu.Lock()
	entries := p.entries
	p.entries = nil
	p.mu.Unlock()

	for _, e := range entries {
		if e.iface != nil {
			e.iface.Release()
		}
	}
}

// len returns the number of entries.
func (p *privateData) len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}
