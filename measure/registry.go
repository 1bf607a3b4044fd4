package measure

import (
	"sync"

	"github.com/hyp3rd/ewrap"

	"github.com/HailongWen/gostats/errors"
)

// Registry assigns stable, compact identifiers to named measurement
// streams and guarantees uniqueness and typed lookup across its
// lifetime. A single reader/writer lock protects both the descriptor
// list and the name map: registration takes the writer lock, all
// lookups take the reader lock. Handles returned by a Registry are
// plain values and may be freely shared across goroutines.
type Registry struct {
	mu          sync.RWMutex
	descriptors []Descriptor
	ids         map[string]Handle
}

// NewRegistry returns an empty, ready-to-use Registry. Tests should
// construct their own Registry rather than share Default, which is
// process-wide and never reset.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]Handle)}
}

// Default is the process-wide registry used by the package-level
// Register*/*ByName functions. It is lazily populated on first use and
// never torn down.
var Default = NewRegistry()

// RegisterDouble registers name as a Double measure and returns its
// handle, or the existing handle if name is already registered as
// Double. Re-registering an existing name under a different type
// returns the invalid sentinel handle and logs a diagnostic instead of
// reusing the first registration.
func (r *Registry) RegisterDouble(name, unit, description string) Handle {
	return r.register(name, unit, description, Double)
}

// RegisterInt registers name as an Int64 measure.
func (r *Registry) RegisterInt(name, unit, description string) Handle {
	return r.register(name, unit, description, Int64)
}

func (r *Registry) register(name, unit, description string, t Type) Handle {
	if name == "" {
		errors.Diagnostic("measure: %v: register called with an empty name", errors.ErrParamCannotBeEmpty)

		return Handle(0)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.ids[name]; ok {
		if IDToType(id) != t {
			errors.Diagnostic("measure: %q already registered as %v, refusing re-registration as %v", name, IDToType(id), t)

			return Handle(0)
		}

		return id
	}

	index := uint64(len(r.descriptors))
	r.descriptors = append(r.descriptors, Descriptor{
		Name:        name,
		Unit:        unit,
		Description: description,
		Type:        t,
	})

	id := createID(index, true, t)
	r.ids[name] = id

	return id
}

// DescriptorByName returns the descriptor registered under name, or
// ErrMeasureNotFound if name was never registered.
func (r *Registry) DescriptorByName(name string) (Descriptor, error) {
	if name == "" {
		return Descriptor{}, ewrap.Wrap(errors.ErrParamCannotBeEmpty, "name")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.ids[name]
	if !ok {
		return Descriptor{}, ewrap.Wrap(errors.ErrMeasureNotFound, name)
	}

	return r.descriptors[IDToIndex(id)], nil
}

// DoubleByName returns the Double handle registered under name, or the
// invalid sentinel handle if name is unregistered or registered with a
// different type. Callers must check IDValid before use.
func (r *Registry) DoubleByName(name string) Handle {
	return r.byName(name, Double)
}

// IntByName returns the Int64 handle registered under name, or the
// invalid sentinel handle if name is unregistered or registered with a
// different type.
func (r *Registry) IntByName(name string) Handle {
	return r.byName(name, Int64)
}

func (r *Registry) byName(name string, want Type) Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.ids[name]
	if !ok || IDToType(id) != want {
		return Handle(0)
	}

	return id
}

// IDByName returns the raw packed id registered under name, or the
// invalid sentinel if name is unregistered. It is the internal,
// type-erased counterpart to DoubleByName/IntByName.
func (r *Registry) IDByName(name string) Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.ids[name]
}

// Descriptor returns the descriptor for h. An invalid handle returns
// the shared zero-value Descriptor; Descriptor never fails.
func (r *Registry) Descriptor(h Handle) Descriptor {
	if !IDValid(h) {
		return defaultDescriptor
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	index := IDToIndex(h)
	if index >= uint64(len(r.descriptors)) {
		return defaultDescriptor
	}

	return r.descriptors[index]
}

// RegisterDouble registers name on the Default registry.
func RegisterDouble(name, unit, description string) Handle {
	return Default.RegisterDouble(name, unit, description)
}

// RegisterInt registers name on the Default registry.
func RegisterInt(name, unit, description string) Handle {
	return Default.RegisterInt(name, unit, description)
}

// DescriptorByName looks up name on the Default registry.
func DescriptorByName(name string) (Descriptor, error) {
	return Default.DescriptorByName(name)
}

// DoubleByName looks up name on the Default registry.
func DoubleByName(name string) Handle {
	return Default.DoubleByName(name)
}

// IntByName looks up name on the Default registry.
func IntByName(name string) Handle {
	return Default.IntByName(name)
}
