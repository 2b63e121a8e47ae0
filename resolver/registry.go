package resolver

import (
	"reflect"

	"github.com/dmitrymomot/validkit/descriptor"
)

// Registry is a hand-written descriptor provider. Descriptors are
// registered explicitly during startup; the registry never inspects types
// itself. Place it ahead of a StructResolver in a chain to override
// reflection-derived descriptors for the types it claims.
//
// Registration is not safe for concurrent use with resolution; populate
// the registry before the chain serves its first lookup.
type Registry struct {
	types  map[reflect.Type]*descriptor.Type
	params map[registryParamKey]*descriptor.Parameter
}

type registryParamKey struct {
	name   string
	source string
}

// NewRegistry creates an empty descriptor registry.
func NewRegistry() *Registry {
	return &Registry{
		types:  make(map[reflect.Type]*descriptor.Type),
		params: make(map[registryParamKey]*descriptor.Parameter),
	}
}

// RegisterType adds a type descriptor, replacing any previous registration
// for the same type.
func (r *Registry) RegisterType(desc *descriptor.Type) {
	if desc != nil {
		r.types[desc.GoType] = desc
	}
}

// RegisterParameter adds a parameter descriptor for the given source
// ("path", "query", ...). An empty source matches requests from any source.
func (r *Registry) RegisterParameter(source string, desc *descriptor.Parameter) {
	if desc != nil {
		r.params[registryParamKey{name: desc.Name, source: source}] = desc
	}
}

// ResolveType implements Resolver.
func (r *Registry) ResolveType(t reflect.Type) (*descriptor.Type, error) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return r.types[t], nil
}

// ResolveParameter implements Resolver. An exact source match wins over a
// source-agnostic registration.
func (r *Registry) ResolveParameter(req ParameterRequest) (*descriptor.Parameter, error) {
	if desc, ok := r.params[registryParamKey{name: req.Name, source: req.Source}]; ok {
		return desc, nil
	}
	return r.params[registryParamKey{name: req.Name}], nil
}
