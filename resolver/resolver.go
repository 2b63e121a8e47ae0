// Package resolver produces validation descriptors for types and
// parameters. Multiple providers can coexist behind a first-match-wins
// Chain: reflection over struct tags (StructResolver), hand-written
// registration (Registry), and YAML-declared schemas (SchemaResolver).
package resolver

import (
	"reflect"
	"sync"

	"github.com/dmitrymomot/validkit/descriptor"
)

// ParameterRequest identifies a standalone parameter to resolve, such as a
// route or query parameter. Source is optional ("path", "query", ...) and
// lets providers distinguish parameters that share a name.
type ParameterRequest struct {
	Name   string
	Type   reflect.Type
	Source string
}

// Resolver supplies descriptors for the types and parameters it recognizes.
// A provider declines by returning (nil, nil); the next provider in the
// chain is then consulted. A non-nil error is a configuration fault
// (malformed rule expression, unknown field, duplicate member) and aborts
// resolution.
type Resolver interface {
	ResolveType(t reflect.Type) (*descriptor.Type, error)
	ResolveParameter(req ParameterRequest) (*descriptor.Parameter, error)
}

// Chain consults resolvers in registration order and returns the first
// non-nil descriptor. Results, including misses, are cached process-wide:
// descriptors are flyweights built once and shared by all validation calls.
//
// Assemble the chain during startup; Append and Insert are not safe to call
// once the chain is serving lookups.
type Chain struct {
	resolvers []Resolver
	types     sync.Map // reflect.Type -> *descriptor.Type (nil for misses)
	params    sync.Map // paramCacheKey -> *descriptor.Parameter (nil for misses)
}

type paramCacheKey struct {
	name   string
	source string
	typ    reflect.Type
}

// NewChain creates a chain from the given resolvers, consulted in order.
func NewChain(resolvers ...Resolver) *Chain {
	return &Chain{resolvers: resolvers}
}

// Append adds a resolver after all currently registered ones.
func (c *Chain) Append(r Resolver) {
	c.resolvers = append(c.resolvers, r)
}

// Insert places a resolver at position i, shifting later resolvers down.
// Inserting ahead of an existing provider overrides it for every type the
// new provider claims.
func (c *Chain) Insert(i int, r Resolver) {
	if i < 0 {
		i = 0
	}
	if i > len(c.resolvers) {
		i = len(c.resolvers)
	}
	c.resolvers = append(c.resolvers[:i], append([]Resolver{r}, c.resolvers[i:]...)...)
}

// ResolveType implements Resolver.
func (c *Chain) ResolveType(t reflect.Type) (*descriptor.Type, error) {
	if t == nil {
		return nil, nil
	}
	if cached, ok := c.types.Load(t); ok {
		desc, _ := cached.(*descriptor.Type)
		return desc, nil
	}

	for _, r := range c.resolvers {
		desc, err := r.ResolveType(t)
		if err != nil {
			return nil, err
		}
		if desc != nil {
			actual, _ := c.types.LoadOrStore(t, desc)
			return actual.(*descriptor.Type), nil
		}
	}

	// Negative result is cached too: unresolvable types stay unresolvable
	// for the process lifetime.
	c.types.Store(t, (*descriptor.Type)(nil))
	return nil, nil
}

// ResolveParameter implements Resolver.
func (c *Chain) ResolveParameter(req ParameterRequest) (*descriptor.Parameter, error) {
	key := paramCacheKey{name: req.Name, source: req.Source, typ: req.Type}
	if cached, ok := c.params.Load(key); ok {
		desc, _ := cached.(*descriptor.Parameter)
		return desc, nil
	}

	for _, r := range c.resolvers {
		desc, err := r.ResolveParameter(req)
		if err != nil {
			return nil, err
		}
		if desc != nil {
			actual, _ := c.params.LoadOrStore(key, desc)
			return actual.(*descriptor.Parameter), nil
		}
	}

	c.params.Store(key, (*descriptor.Parameter)(nil))
	return nil, nil
}
