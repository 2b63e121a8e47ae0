package engine

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/validkit"
	"github.com/dmitrymomot/validkit/descriptor"
)

// identity names an object on the traversal path. The type is part of the
// key because distinct objects may share an address (a struct and its first
// field).
type identity struct {
	ptr uintptr
	typ reflect.Type
}

// visitedSet holds the identities of the ancestors on the current traversal
// branch. Entries are added before descending and removed on return, so the
// same object may be revisited via a sibling branch while cycles within one
// branch stop recursion.
type visitedSet map[identity]struct{}

// traversal is the per-call mutable state: the shared error map plus the
// engine configuration. Path prefix, depth and visited set travel as
// arguments so each branch owns its own copies.
type traversal struct {
	engine *Engine

	mu     sync.Mutex
	errors validkit.ValidationError
}

func (t *traversal) add(key, msg string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errors.Add(key, msg)
}

func (t *traversal) walkObject(ctx context.Context, value any, desc *descriptor.Type, prefix string, depth int, visited visitedSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth > t.engine.maxDepth {
		t.add(objectKey(prefix), fmt.Sprintf("validation stopped: nesting depth exceeds %d", t.engine.maxDepth))
		t.engine.log.WarnContext(ctx, "validation depth limit exceeded",
			slog.String("path", objectKey(prefix)),
			slog.Int("max_depth", t.engine.maxDepth),
		)
		return nil
	}

	if id, ok := identityOf(value); ok {
		if _, seen := visited[id]; seen {
			// Already being validated higher on this branch.
			return nil
		}
		visited[id] = struct{}{}
		defer delete(visited, id)
	}

	if t.engine.parallelism > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(t.engine.parallelism)
		for i := range desc.Members {
			member := &desc.Members[i]
			branch := maps.Clone(visited)
			g.Go(func() error {
				return t.walkMember(gctx, value, member, prefix, depth, branch)
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for i := range desc.Members {
			if err := t.walkMember(ctx, value, &desc.Members[i], prefix, depth, visited); err != nil {
				return err
			}
		}
	}

	if desc.SelfValidating {
		if err := t.selfValidate(ctx, value, desc, prefix); err != nil {
			return err
		}
	}

	return nil
}

func (t *traversal) walkMember(ctx context.Context, owner any, prop *descriptor.Property, prefix string, depth int, visited visitedSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := prefix + prop.Name
	value := prop.Get(owner)

	// Absent optional values get no rules and no traversal; absent required
	// values get exactly one error.
	if isNil(value) {
		if prop.Required {
			t.add(key, fmt.Sprintf("The %s field is required.", displayName(prop)))
		}
		return nil
	}

	// The required check is a hard barrier: it completes before any other
	// rule starts, and its failure suppresses the rest for this member.
	suppressed := false
	if prop.RequiredRule != nil {
		msg, err := evalRule(ctx, prop.RequiredRule, value)
		if err != nil {
			return fmt.Errorf("validation rule failed at %q: %w", key, err)
		}
		if msg != "" {
			t.add(key, msg)
			suppressed = true
		}
	}

	if !suppressed {
		for _, rule := range prop.Rules {
			msg, err := evalRule(ctx, rule, value)
			if err != nil {
				return fmt.Errorf("validation rule failed at %q: %w", key, err)
			}
			if msg != "" {
				t.add(key, msg)
			}
		}
	}

	// Nested traversal is governed purely by nil-ness: an empty-but-present
	// value that failed its required check is still descended into.
	if prop.Enumerable {
		if err := t.walkItems(ctx, value, key, depth, visited); err != nil {
			return err
		}
	}

	if prop.HasNested && !prop.Enumerable {
		desc, err := t.engine.resolver.ResolveType(reflect.TypeOf(value))
		if err != nil {
			return err
		}
		if desc != nil {
			return t.walkObject(ctx, value, desc, key+".", depth+1, visited)
		}
		// Unresolvable nested values are opaque: no deeper validation, no error.
	}

	return nil
}

func (t *traversal) walkItems(ctx context.Context, value any, key string, depth int, visited visitedSet) error {
	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}

	for i := 0; i < rv.Len(); i++ {
		item := rv.Index(i).Interface()
		if isNil(item) {
			continue
		}

		// Descriptors are resolved from each item's runtime type so
		// derived instances in a polymorphic collection validate against
		// their own members.
		desc, err := t.engine.resolver.ResolveType(reflect.TypeOf(item))
		if err != nil {
			return err
		}
		if desc == nil {
			continue
		}
		if err := t.walkObject(ctx, item, desc, fmt.Sprintf("%s[%d].", key, i), depth+1, visited); err != nil {
			return err
		}
	}

	return nil
}

func (t *traversal) selfValidate(ctx context.Context, value any, desc *descriptor.Type, prefix string) (err error) {
	sv, ok := value.(validkit.SelfValidator)
	if !ok {
		// Pointer-receiver hooks are unreachable from non-addressable
		// values (e.g. slice item copies); nothing to run.
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("self-validation panicked on %s: %v", desc.GoType, r)
		}
	}()

	results, err := sv.ValidateSelf(ctx)
	if err != nil {
		return fmt.Errorf("self-validation failed on %s: %w", desc.GoType, err)
	}

	for _, r := range results {
		if len(r.Members) == 0 {
			t.add(objectKey(prefix), r.Message)
			continue
		}
		for _, member := range r.Members {
			t.add(prefix+member, r.Message)
		}
	}

	return nil
}

// evalRule runs a single rule, converting panics into faults so a broken
// rule aborts the call instead of being absorbed into the error map.
func evalRule(ctx context.Context, rule validkit.Rule, value any) (msg string, err error) {
	defer func() {
		if r := recover(); r != nil {
			msg = ""
			err = fmt.Errorf("rule %T panicked: %v", rule, r)
		}
	}()
	return rule.Validate(ctx, value)
}

// objectKey converts a traversal prefix ("A.B.") into the error-map key of
// the object itself ("A.B"). The root object maps to the empty key.
func objectKey(prefix string) string {
	return strings.TrimSuffix(prefix, ".")
}

func displayName(prop *descriptor.Property) string {
	if prop.DisplayName != "" {
		return prop.DisplayName
	}
	return prop.Name
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func:
		return rv.IsNil()
	}
	return false
}

func identityOf(value any) (identity, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if rv.IsNil() {
			return identity{}, false
		}
		return identity{ptr: rv.Pointer(), typ: rv.Type()}, true
	}
	return identity{}, false
}
