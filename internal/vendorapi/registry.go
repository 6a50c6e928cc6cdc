package vendorapi

import "fmt"

// Registry is a plain dispatch table from manufacturer API identifier to
// adapter. Adapters are registered once at startup; lookups are read-only.
type Registry struct {
	adapters map[string]Adapter
}

func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

func (r *Registry) Register(identifier string, adapter Adapter) {
	r.adapters[identifier] = adapter
}

func (r *Registry) Lookup(identifier string) (Adapter, error) {
	adapter, ok := r.adapters[identifier]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedManufacturer, identifier)
	}
	return adapter, nil
}
