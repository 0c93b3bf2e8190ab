package dxgi

import (
	"bytes"
	"fmt"
	"sync"
	"testing"
)

func TestPrivateDataRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 7, 64, 4096} {
		t.Run(fmt.Sprintf("size=%d", n), func(t *testing.T) {
			o := newTestObject()
			defer o.Release()

			key := NewGUID()
			want := make([]byte, n)
			for i := range want {
				want[i] = byte(i * 31)
			}
			if hr := o.SetPrivateData(key, want); hr != S_OK {
				t.Fatalf("SetPrivateData() = %v, want S_OK", hr)
			}

			size := uint32(n)
			got := make([]byte, n)
			if hr := o.GetPrivateData(key, &size, got); hr != S_OK {
				t.Fatalf("GetPrivateData() = %v, want S_OK", hr)
			}
			if size != uint32(n) {
				t.Errorf("size = %d, want %d", size, n)
			}
			if !bytes.Equal(got, want) {
				t.Error("data mismatch")
			}
		})
	}
}

func TestPrivateDataOwnedCopy(t *testing.T) {
	o := newTestObject()
	defer o.Release()

	key := NewGUID()
	src := []byte("abc")
	o.SetPrivateData(key, src)
	src[0] = 'x'

	size := uint32(3)
	got := make([]byte, 3)
	o.GetPrivateData(key, &size, got)
	if string(got) != "abc" {
		t.Errorf("stored data = %q, want %q", got, "abc")
	}
}

func TestPrivateDataMissingKey(t *testing.T) {
	o := newTestObject()
	defer o.Release()

	size := uint32(99)
	if hr := o.GetPrivateData(NewGUID(), &size, make([]byte, 99)); hr != DXGI_ERROR_NOT_FOUND {
		t.Errorf("GetPrivateData() = %v, want DXGI_ERROR_NOT_FOUND", hr)
	}
	if size != 0 {
		t.Errorf("size = %d, want 0", size)
	}
}

func TestPrivateDataNilSize(t *testing.T) {
	o := newTestObject()
	defer o.Release()

	key := NewGUID()
	o.SetPrivateData(key, []byte{1})
	if hr := o.GetPrivateData(key, nil, nil); hr != DXGI_ERROR_INVALID_CALL {
		t.Errorf("GetPrivateData(nil size) = %v, want DXGI_ERROR_INVALID_CALL", hr)
	}
}

func TestPrivateDataProbe(t *testing.T) {
	o := newTestObject()
	defer o.Release()

	key := NewGUID()
	o.SetPrivateData(key, []byte("hello"))

	var size uint32
	if hr := o.GetPrivateData(key, &size, nil); hr != S_OK {
		t.Fatalf("probe = %v, want S_OK", hr)
	}
	if size != 5 {
		t.Errorf("probed size = %d, want 5", size)
	}
}

func TestPrivateDataShortBuffer(t *testing.T) {
	o := newTestObject()
	defer o.Release()

	key := NewGUID()
	o.SetPrivateData(key, []byte("hello"))

	size := uint32(2)
	buf := []byte{0, 0, 0, 0}
	if hr := o.GetPrivateData(key, &size, buf); hr != S_OK {
		t.Fatalf("GetPrivateData() = %v, want S_OK", hr)
	}
	if !bytes.Equal(buf, []byte{'h', 'e', 0, 0}) {
		t.Errorf("buf = %q, want only the first two bytes copied", buf)
	}
	if size != 5 {
		t.Errorf("size = %d, want stored size 5", size)
	}
}

func TestPrivateDataOverwriteAndDelete(t *testing.T) {
	o := newTestObject()
	defer o.Release()

	key := NewGUID()
	o.SetPrivateData(key, []byte("first"))
	o.SetPrivateData(key, []byte("2nd"))

	var size uint32
	o.GetPrivateData(key, &size, nil)
	if size != 3 {
		t.Errorf("size after overwrite = %d, want 3", size)
	}

	o.SetPrivateData(key, nil)
	if hr := o.GetPrivateData(key, &size, nil); hr != DXGI_ERROR_NOT_FOUND {
		t.Errorf("GetPrivateData() after delete = %v, want DXGI_ERROR_NOT_FOUND", hr)
	}
	if n := o.private.len(); n != 0 {
		t.Errorf("entries = %d, want 0", n)
	}
}

func TestPrivateDataInterface(t *testing.T) {
	o := newTestObject()
	defer o.Release()
	attached := newTestObject()
	defer attached.Release()

	key := NewGUID()
	if hr := o.SetPrivateDataInterface(key, attached); hr != S_OK {
		t.Fatalf("SetPrivateDataInterface() = %v, want S_OK", hr)
	}
	if got := attached.refCount(); got != 2 {
		t.Errorf("refcount after set = %d, want 2", got)
	}

	var out IUnknown
	if hr := o.GetPrivateDataInterface(key, &out); hr != S_OK {
		t.Fatalf("GetPrivateDataInterface() = %v, want S_OK", hr)
	}
	if out != IUnknown(attached) {
		t.Error("GetPrivateDataInterface returned a different object")
	}
	out.Release()

	var size uint32
	if hr := o.GetPrivateData(key, &size, nil); hr != S_OK || size != 8 {
		t.Errorf("probe = %v size %d, want S_OK size 8", hr, size)
	}
	size = 8
	if hr := o.GetPrivateData(key, &size, make([]byte, 8)); hr != DXGI_ERROR_INVALID_CALL {
		t.Errorf("byte copy of interface = %v, want DXGI_ERROR_INVALID_CALL", hr)
	}

	// Replacing the interface with a blob releases it.
	o.SetPrivateData(key, []byte{1})
	if got := attached.refCount(); got != 1 {
		t.Errorf("refcount after overwrite = %d, want 1", got)
	}
}

func TestPrivateDataInterfaceReplace(t *testing.T) {
	o := newTestObject()
	defer o.Release()
	first, second := newTestObject(), newTestObject()
	defer first.Release()
	defer second.Release()

	key := NewGUID()
	o.SetPrivateDataInterface(key, first)
	o.SetPrivateDataInterface(key, second)
	if got := first.refCount(); got != 1 {
		t.Errorf("first refcount = %d, want 1", got)
	}
	if got := second.refCount(); got != 2 {
		t.Errorf("second refcount = %d, want 2", got)
	}

	o.SetPrivateDataInterface(key, nil)
	if got := second.refCount(); got != 1 {
		t.Errorf("second refcount after delete = %d, want 1", got)
	}
}

func TestPrivateDataInterfaceMissing(t *testing.T) {
	o := newTestObject()
	defer o.Release()

	key := NewGUID()
	var out IUnknown
	if hr := o.GetPrivateDataInterface(key, &out); hr != DXGI_ERROR_NOT_FOUND {
		t.Errorf("GetPrivateDataInterface(missing) = %v, want DXGI_ERROR_NOT_FOUND", hr)
	}
	o.SetPrivateData(key, []byte{1})
	if hr := o.GetPrivateDataInterface(key, &out); hr != DXGI_ERROR_NOT_FOUND {
		t.Errorf("GetPrivateDataInterface(blob) = %v, want DXGI_ERROR_NOT_FOUND", hr)
	}
	if hr := o.GetPrivateDataInterface(key, nil); hr != DXGI_ERROR_INVALID_CALL {
		t.Errorf("GetPrivateDataInterface(nil) = %v, want DXGI_ERROR_INVALID_CALL", hr)
	}
}

func TestPrivateDataDebugName(t *testing.T) {
	o := newTestObject()
	defer o.Release()

	o.SetPrivateData(WKPDID_D3DDebugObjectName, []byte("swapchain-backbuffer"))
	size := uint32(64)
	buf := make([]byte, 64)
	o.GetPrivateData(WKPDID_D3DDebugObjectName, &size, buf)
	if got := string(buf[:size]); got != "swapchain-backbuffer" {
		t.Errorf("debug name = %q", got)
	}
}

func TestPrivateDataConcurrent(t *testing.T) {
	o := newTestObject()
	defer o.Release()

	const goroutines = 16
	keys := make([]GUID, goroutines)
	for i := range keys {
		keys[i] = NewGUID()
	}

	var wg sync.WaitGroup
	for i := range goroutines {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := range 100 {
				o.SetPrivateData(keys[i], []byte{byte(i), byte(j)})
				size := uint32(2)
				buf := make([]byte, 2)
				if hr := o.GetPrivateData(keys[i], &size, buf); hr != S_OK || buf[0] != byte(i) {
					t.Errorf("goroutine %d: GetPrivateData() = %v %v", i, hr, buf)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	if n := o.private.len(); n != goroutines {
		t.Errorf("entries = %d, want %d", n, goroutines)
	}
}
