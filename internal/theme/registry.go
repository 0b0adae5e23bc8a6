package theme

import (
	"fmt"
	"sort"
	"strings"
)

// Registry holds the registered themes by name. It is only used from the
// single-threaded frame loop and is not safe for concurrent use.
type Registry struct {
	themes map[string]*Theme
}

// NewRegistry returns a registry preloaded with the built-in themes.
func NewRegistry() *Registry {
	r := &Registry{themes: make(map[string]*Theme)}
	for _, b := range builtins {
		t, err := New(b.name, b.opts)
		if err != nil {
			panic(fmt.Sprintf("theme: builtin %q: %v", b.name, err))
		}
		r.themes[t.Name] = t
	}
	return r
}

// Register validates opts and adds (or replaces) the named theme. On error
// the registry is left unchanged.
func (r *Registry) Register(name string, opts Options) error {
	t, err := New(name, opts)
	if err != nil {
		return err
	}
	r.themes[t.Name] = t
	return nil
}

// Unregister removes a theme. The caller checks that no channel uses it.
func (r *Registry) Unregister(name string) error {
	name = strings.TrimSpace(name)
	if _, ok := r.themes[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(r.themes, name)
	return nil
}

// Get returns the named theme.
func (r *Registry) Get(name string) (*Theme, error) {
	t, ok := r.themes[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return t, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.themes[strings.TrimSpace(name)]
	return ok
}

// Names returns the registered theme names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.themes))
	for n := range r.themes {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
