package load

import (
	"errors"
	"fmt"
)

// ErrDuplicateType is returned when two object types share a name.
var ErrDuplicateType = errors.New("load: duplicate type")

// Registry is an insertion-ordered set of loaded types keyed by name.
// The order in which types are added is the order of every output
// derived from the registry.
type Registry struct {
	types []*Schema
	index map[string]int
}

// NewRegistry creates a registry holding the given types in order.
func NewRegistry(types ...*Schema) (*Registry, error) {
	r := &Registry{
		types: make([]*Schema, 0, len(types)),
		index: make(map[string]int, len(types)),
	}
	for _, s := range types {
		if err := r.Add(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add appends a type to the registry.
func (r *Registry) Add(s *Schema) error {
	if s == nil || s.Name == "" {
		return errors.New("load: type without a name")
	}
	if i, ok := r.index[s.Name]; ok {
		prev := r.types[i]
		if prev.Pos != "" {
			return fmt.Errorf("%w %q (previously declared at %s)", ErrDuplicateType, s.Name, prev.Pos)
		}
		return fmt.Errorf("%w %q", ErrDuplicateType, s.Name)
	}
	if r.index == nil {
		r.index = make(map[string]int)
	}
	r.index[s.Name] = len(r.types)
	r.types = append(r.types, s)
	return nil
}

// Lookup returns the type with the exact given name.
func (r *Registry) Lookup(name string) (*Schema, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.types[i], true
}

// Types returns the registered types in insertion order.
func (r *Registry) Types() []*Schema {
	return append([]*Schema(nil), r.types...)
}

// Names returns the registered type names in insertion order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.types))
	for i, s := range r.types {
		names[i] = s.Name
	}
	return names
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.types)
}
