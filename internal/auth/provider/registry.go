package provider

import "strings"

// Factory constructs a provider instance. Providers are stateless
// beyond configuration, so the registry builds a fresh instance per
// Resolve call.
type Factory func() (Provider, error)

// Registry maps provider names to factories. Lookup is
// case-insensitive. Adding a provider is a single Register call; no
// caller changes.
type Registry struct {
	factories map[string]Factory
	names     []string // registration order
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a provider factory under the given name. Later
// registrations with the same name replace earlier ones.
func (r *Registry) Register(name string, f Factory) {
	key := strings.ToLower(name)
	if _, exists := r.factories[key]; !exists {
		r.names = append(r.names, key)
	}
	r.factories[key] = f
}

// Resolve constructs a provider by name or returns an
// UnsupportedError listing the registered names.
func (r *Registry) Resolve(name string) (Provider, error) {
	f, ok := r.factories[strings.ToLower(name)]
	if !ok {
		return nil, &UnsupportedError{Name: name, Supported: r.Supported()}
	}
	return f()
}

// Supported returns the registered provider names in registration
// order.
func (r *Registry) Supported() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}
