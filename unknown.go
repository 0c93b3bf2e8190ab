package dxgi

import (
	"fmt"
	"slices"
	"sync/atomic"
)

// ComObject is the reference-counted core embedded in every interface
// object. It implements IUnknown and the private-data half of IDXGIObject.
//
// An object is created with a reference count of one, owned by its
// creator. When Release brings the count to zero the object is destroyed
// synchronously on the calling goroutine: its private data is released and
// the destroy callback runs. Using an object after its final Release is a
// caller error and is not detected.
type ComObject struct {
	refs    atomic.Uint32
	self    IUnknown
	kind    string
	iids    []GUID
	destroy func()
	private privateData
}

// init prepares o for an object of the given kind. self is the value handed
// out by QueryInterface; iids lists the interfaces it implements in
// addition to IUnknown.
func (o *ComObject) init(self IUnknown, kind string, destroy func(), iids ...GUID) {
	o.refs.Store(1)
	o.self = self
	o.kind = kind
	o.iids = append([]GUID{IID_IUnknown}, iids...)
	o.destroy = destroy
	liveObjects.WithLabelValues(kind).Inc()
	Logger().Debug("dxgi: object created", "kind", kind)
}

// AddRef increments the reference count and returns the new value.
func (o *ComObject) AddRef() uint32 {
	return o.refs.Add(1)
}

// Release decrements the reference count and returns the new value. The
// object is destroyed before Release returns 0.
func (o *ComObject) Release() uint32 {
	n := o.refs.Add(^uint32(0))
	if n == 0 {
		o.private.clear()
		if o.destroy != nil {
			o.destroy()
		}
		liveObjects.WithLabelValues(o.kind).Dec()
		Logger().Debug("dxgi: object destroyed", "kind", o.kind)
	}
	return n
}

// QueryInterface stores a new reference to the object in *ppvObject when
// riid is one of its interfaces. On failure *ppvObject and the reference
// count are left untouched.
func (o *ComObject) QueryInterface(riid GUID, ppvObject *IUnknown) HRESULT {
	if ppvObject == nil {
		return E_INVALIDARG
	}
	if !o.Supports(riid) {
		Logger().Warn("dxgi: QueryInterface: unknown interface", "kind", o.kind, "iid", riid)
		return E_NOINTERFACE
	}
	o.AddRef()
	*ppvObject = o.self
	return S_OK
}

// Supports reports whether riid is one of the object's interfaces.
func (o *ComObject) Supports(riid GUID) bool {
	return slices.Contains(o.iids, riid)
}

func (o *ComObject) refCount() uint32 { return o.refs.Load() }

// SetPrivateData attaches a copy of data to the object under name. A nil
// data removes the entry.
func (o *ComObject) SetPrivateData(name GUID, data []byte) HRESULT {
	o.private.setData(name, data)
	return S_OK
}

// SetPrivateDataInterface attaches a reference to unknown under name. A nil
// unknown removes the entry.
func (o *ComObject) SetPrivateDataInterface(name GUID, unknown IUnknown) HRESULT {
	o.private.setInterface(name, unknown)
	return S_OK
}

// GetPrivateData copies the data stored under name into data.
//
// On entry *dataSize holds the capacity of data; on return it holds the
// size of the stored entry. A nil data probes the size.
func (o *ComObject) GetPrivateData(name GUID, dataSize *uint32, data []byte) HRESULT {
	return o.private.getData(name, dataSize, data)
}

// GetPrivateDataInterface stores a new reference to the interface attached
// under name in *ppUnknown.
func (o *ComObject) GetPrivateDataInterface(name GUID, ppUnknown *IUnknown) HRESULT {
	return o.private.getInterface(name, ppUnknown)
}

// QueryInterfaceAs queries u for riid and returns the result as T.
//
// The reference taken by QueryInterface is owned by the caller. If the
// object does not implement T the reference is dropped and an error
// wrapping ErrNoInterface is returned. A nil u yields ErrInvalidArg.
func QueryInterfaceAs[T any](u IUnknown, riid GUID) (T, error) {
	var zero T
	if u == nil {
		return zero, ErrInvalidArg
	}
	var out IUnknown
	if hr := u.QueryInterface(riid, &out); hr.Failed() {
		return zero, fmt.Errorf("%w: %v: %w", ErrNoInterface, riid, hr)
	}
	t, ok := out.(T)
	if !ok {
		out.Release()
		return zero, fmt.Errorf("%w: %v", ErrNoInterface, riid)
	}
	return t, nil
}

// queryParent resolves GetParent against parent, which may be nil for
// top-level objects.
func queryParent(parent IUnknown, riid GUID, ppParent *IUnknown) HRESULT {
	if ppParent == nil {
		return DXGI_ERROR_INVALID_CALL
	}
	if parent == nil {
		return E_NOINTERFACE
	}
	return parent.QueryInterface(riid, ppParent)
}
