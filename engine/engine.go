// Package engine implements the recursive object-graph validation engine.
//
// The engine walks a value depth-first, resolving descriptors lazily
// through a resolver chain, evaluating the rules bound to each member, and
// collecting every failure into a validkit.ValidationError keyed by
// property path. Validation failures are data; only rule faults and
// cancellation surface as errors.
package engine

import (
	"context"
	"log/slog"
	"reflect"

	"github.com/dmitrymomot/validkit"
	"github.com/dmitrymomot/validkit/descriptor"
	"github.com/dmitrymomot/validkit/resolver"
)

// DefaultMaxDepth bounds nested traversal. Graphs deeper than this stop
// with a diagnostic entry instead of recursing further.
const DefaultMaxDepth = 32

// Engine validates object graphs against resolved descriptors. It is
// immutable after New and safe for concurrent use; every call owns its
// private traversal state.
type Engine struct {
	resolver    resolver.Resolver
	maxDepth    int
	parallelism int
	log         *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxDepth overrides the nesting depth limit.
func WithMaxDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.maxDepth = depth
		}
	}
}

// WithParallelism allows up to n sibling members to be validated
// concurrently. Values below 2 keep the default sequential traversal.
// Error maps are identical in both modes; only evaluation interleaving
// differs.
func WithParallelism(n int) Option {
	return func(e *Engine) {
		if n > 1 {
			e.parallelism = n
		}
	}
}

// WithLogger sets the logger used for operational diagnostics such as
// depth-limit hits. Defaults to a no-op logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// New creates an engine that resolves descriptors through r, typically a
// *resolver.Chain assembled at startup.
func New(r resolver.Resolver, opts ...Option) *Engine {
	e := &Engine{
		resolver:    r,
		maxDepth:    DefaultMaxDepth,
		parallelism: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = newNoopLogger()
	}
	return e
}

// Validate resolves the descriptor for value's runtime type and validates
// the full object graph rooted at it.
//
// The returned map is empty when the value is valid. A non-nil error means
// the call did not complete: ctx.Err() values signal cancellation, anything
// else is a fault in a rule or self-validation hook. Callers must not treat
// either as "valid".
func (e *Engine) Validate(ctx context.Context, value any) (validkit.ValidationError, error) {
	errs := validkit.NewValidationError()
	if value == nil {
		return errs, nil
	}

	desc, err := e.resolver.ResolveType(reflect.TypeOf(value))
	if err != nil {
		return nil, err
	}
	if desc == nil {
		// Unresolvable types have nothing to validate.
		return errs, nil
	}

	return e.ValidateType(ctx, value, desc)
}

// ValidateType validates value against an explicit type descriptor,
// bypassing resolution for the root. Nested values still resolve their own
// descriptors by runtime type.
func (e *Engine) ValidateType(ctx context.Context, value any, desc *descriptor.Type) (validkit.ValidationError, error) {
	t := &traversal{engine: e, errors: validkit.NewValidationError()}
	if err := t.walkObject(ctx, value, desc, "", 0, make(visitedSet)); err != nil {
		return nil, err
	}
	return t.errors, nil
}

// ValidateParameter resolves a parameter descriptor for req through the
// chain and validates value against it. When no provider claims the
// parameter the value is treated as unvalidatable and the result is empty.
func (e *Engine) ValidateParameter(ctx context.Context, req resolver.ParameterRequest, value any) (validkit.ValidationError, error) {
	if req.Type == nil && value != nil {
		req.Type = reflect.TypeOf(value)
	}

	desc, err := e.resolver.ResolveParameter(req)
	if err != nil {
		return nil, err
	}
	if desc == nil {
		return validkit.NewValidationError(), nil
	}

	return e.ValidateParameterType(ctx, value, desc)
}

// ValidateParameterType validates value against an explicit parameter
// descriptor.
func (e *Engine) ValidateParameterType(ctx context.Context, value any, desc *descriptor.Parameter) (validkit.ValidationError, error) {
	t := &traversal{engine: e, errors: validkit.NewValidationError()}
	prop := desc.Property(value)
	if err := t.walkMember(ctx, nil, &prop, "", 0, make(visitedSet)); err != nil {
		return nil, err
	}
	return t.errors, nil
}
