package vkfn

import (
	"errors"
	"fmt"
	"strings"
	"unsafe"
)

// ErrMissingEntryPoint is returned when a required entry point cannot be resolved.
var ErrMissingEntryPoint = errors.New("vkfn: required entry point not found")

// Entry declares one entry point of a table.
type Entry struct {
	Name     string
	Required bool
	Slot     *unsafe.Pointer
}

func required(name string, slot *unsafe.Pointer) Entry {
	return Entry{Name: name, Required: true, Slot: slot}
}

func optional(name string, slot *unsafe.Pointer) Entry {
	return Entry{Name: name, Slot: slot}
}

// Resolve looks up every entry through l and stores the result in its slot.
//
// All entries are visited so the error names every missing required entry
// point. Slots of missing optional entries are set to nil.
func Resolve(l Loader, entries []Entry) error {
	var missing []string
	for _, e := range entries {
		p := l.Lookup(e.Name)
		*e.Slot = p
		if p == nil && e.Required {
			missing = append(missing, e.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingEntryPoint, strings.Join(missing, ", "))
	}
	return nil
}
