// Package descriptor defines the immutable metadata the validation engine
// traverses: type descriptors, their member property descriptors, and
// standalone parameter descriptors.
//
// Descriptors are assembled once (at startup by a resolver) and shared
// read-only by every validation call for the process lifetime. None of the
// types in this package may be mutated after construction.
package descriptor

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/dmitrymomot/validkit"
)

// ErrDuplicateMember is returned when a type declares two members with the
// same wire-facing name. Path keys assume member names are unique within a
// type, so this is rejected at construction time.
var ErrDuplicateMember = errors.New("duplicate member name")

// Getter extracts a member's value from its owning object. Implementations
// must tolerate owners passed either by value or behind a pointer.
type Getter func(owner any) any

// Property describes one validatable member of a type.
//
// Name is the wire-facing identifier used to build error-path keys.
// RequiredRule, when set, is evaluated before Rules; its failure suppresses
// the remaining rules for the member (nested traversal is unaffected, it is
// governed purely by nil-ness).
type Property struct {
	Name         string
	DisplayName  string
	Type         reflect.Type
	Required     bool
	Nullable     bool
	Enumerable   bool
	HasNested    bool
	RequiredRule validkit.Rule
	Rules        []validkit.Rule
	Get          Getter
}

// Type describes a validatable type as an ordered collection of properties.
// Members keep the declaration order of the source type so error output is
// deterministic. GoType uniquely identifies the described type process-wide.
type Type struct {
	GoType         reflect.Type
	Members        []Property
	SelfValidating bool
}

// New assembles a type descriptor, rejecting duplicate member names.
func New(goType reflect.Type, members []Property, selfValidating bool) (*Type, error) {
	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		if _, ok := seen[m.Name]; ok {
			return nil, fmt.Errorf("%w: %q on type %s", ErrDuplicateMember, m.Name, goType)
		}
		seen[m.Name] = struct{}{}
	}
	return &Type{GoType: goType, Members: members, SelfValidating: selfValidating}, nil
}

// Parameter describes a standalone validatable value, such as a route or
// query parameter. It is structurally parallel to Property but not tied to
// a containing type.
type Parameter struct {
	Name         string
	DisplayName  string
	Type         reflect.Type
	Required     bool
	Nullable     bool
	Enumerable   bool
	HasNested    bool
	RequiredRule validkit.Rule
	Rules        []validkit.Rule
}

// Property converts the parameter into an equivalent property descriptor so
// the engine can reuse one traversal path for both shapes. The getter
// ignores its owner and returns the supplied value.
func (p *Parameter) Property(value any) Property {
	return Property{
		Name:         p.Name,
		DisplayName:  p.DisplayName,
		Type:         p.Type,
		Required:     p.Required,
		Nullable:     p.Nullable,
		Enumerable:   p.Enumerable,
		HasNested:    p.HasNested,
		RequiredRule: p.RequiredRule,
		Rules:        p.Rules,
		Get:          func(any) any { return value },
	}
}
