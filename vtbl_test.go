package dxgi

import (
	"reflect"
	"testing"
)

// slotNames flattens a vtable struct into its slot names in order.
func slotNames(t reflect.Type) []string {
	var names []string
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Anonymous {
			names = append(names, slotNames(f.Type)...)
			continue
		}
		names = append(names, f.Name)
	}
	return names
}

func TestVtblMatchesInterfaces(t *testing.T) {
	tests := []struct {
		name  string
		vtbl  any
		iface reflect.Type
		slots int
	}{
		{"IUnknown", iUnknownVtbl{}, reflect.TypeFor[IUnknown](), 3},
		{"IDXGIObject", iDXGIObjectVtbl{}, reflect.TypeFor[IDXGIObject](), 7},
		{"IDXGIFactory", iDXGIFactoryVtbl{}, reflect.TypeFor[IDXGIFactory](), 12},
		{"IDXGIFactory1", iDXGIFactory1Vtbl{}, reflect.TypeFor[IDXGIFactory1](), 14},
		{"IDXGIAdapter", iDXGIAdapterVtbl{}, reflect.TypeFor[IDXGIAdapter](), 10},
		{"IDXGIAdapter1", iDXGIAdapter1Vtbl{}, reflect.TypeFor[IDXGIAdapter1](), 11},
		{"IDXGIVkAdapter", iDXGIVkAdapterVtbl{}, reflect.TypeFor[IDXGIVkAdapter](), 17},
		{"IDXGIOutput", iDXGIOutputVtbl{}, reflect.TypeFor[IDXGIOutput](), 19},
		{"IDXGIDevice", iDXGIDeviceVtbl{}, reflect.TypeFor[IDXGIDevice](), 12},
		{"IDXGIVkDevice", iDXGIVkDeviceVtbl{}, reflect.TypeFor[IDXGIVkDevice](), 17},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := slotNames(reflect.TypeOf(tt.vtbl))
			if len(slots) != tt.slots {
				t.Errorf("slot count = %d, want %d", len(slots), tt.slots)
			}
			if n := tt.iface.NumMethod(); n != len(slots) {
				t.Errorf("%s has %d methods, vtable has %d slots", tt.name, n, len(slots))
			}
			for _, name := range slots {
				if _, ok := tt.iface.MethodByName(name); !ok {
					t.Errorf("slot %s has no method on %s", name, tt.name)
				}
			}
		})
	}
}

func TestVtblSlotSize(t *testing.T) {
	if got := reflect.TypeFor[iDXGIVkDeviceVtbl]().Size(); got != 17*slotSize {
		t.Errorf("sizeof(iDXGIVkDeviceVtbl) = %d, want %d", got, 17*slotSize)
	}
}
