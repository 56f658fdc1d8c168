package ruleset

import (
	"errors"
	"fmt"
	"sort"
)

// ErrTemplateNotFound is returned when a template lookup yields no result.
var ErrTemplateNotFound = errors.New("template not found")

// Registry provides lookup of loaded templates by name.
//
// A Registry is populated once at startup and is safe for concurrent reads afterwards.
type Registry struct {
	templates map[string]*Template
}

// NewRegistry returns an empty Registry.
//
// Postcondition: Returns a non-nil *Registry ready to accept registrations.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]*Template)}
}

// NewRegistryFromDir loads every template in dir into a new Registry.
//
// Postcondition: Returns a populated Registry, or an error if loading fails or
// two files declare the same template name.
func NewRegistryFromDir(dir string) (*Registry, error) {
	templates, err := LoadTemplates(dir)
	if err != nil {
		return nil, err
	}
	r := NewRegistry()
	for _, t := range templates {
		if _, dup := r.templates[t.Name]; dup {
			return nil, fmt.Errorf("template %q declared more than once in %s", t.Name, dir)
		}
		r.Register(t)
	}
	return r, nil
}

// Register adds a Template to the registry.
//
// Precondition: t must be non-nil with a non-empty Name.
// Postcondition: t is retrievable via Template using t.Name;
// if called multiple times with the same name, the last call wins.
func (r *Registry) Register(t *Template) {
	if t == nil {
		panic("Registry.Register: precondition violated: template must be non-nil")
	}
	if t.Name == "" {
		panic("Registry.Register: precondition violated: template name must be non-empty")
	}
	r.templates[t.Name] = t
}

// Template returns the template registered under name.
//
// Postcondition: Returns the Template and true, or nil and false if not found.
func (r *Registry) Template(name string) (*Template, bool) {
	t, ok := r.templates[name]
	return t, ok
}

// Lookup returns the template registered under name, checking the version
// when want is non-nil.
//
// Postcondition: Returns the Template, or an error wrapping ErrTemplateNotFound.
func (r *Registry) Lookup(name string, want *Version) (*Template, error) {
	t, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}
	if want != nil && t.Version != *want {
		return nil, fmt.Errorf("%w: %q version %s (loaded %s)", ErrTemplateNotFound, name, want, t.Version)
	}
	return t, nil
}

// Names returns the registered template names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.templates))
	for n := range r.templates {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	return len(r.templates)
}
