package resolver

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/dmitrymomot/validkit"
	"github.com/dmitrymomot/validkit/descriptor"
	"github.com/dmitrymomot/validkit/rules"
)

// Fallback builds a rule for an expression the rule registry does not know.
// It reports ok=false to decline, which turns the expression into a
// configuration error.
type Fallback func(name, param string) (validkit.Rule, bool)

// StructResolver discovers descriptors at runtime by reflecting over struct
// fields and their tags.
//
// Rules are declared in the validate tag as comma-separated expressions:
//
//	type Customer struct {
//		Name  string   `json:"name" validate:"required,maxlen=64"`
//		Email string   `json:"email" validate:"email"`
//		Age   int      `json:"age" validate:"range=18:120"`
//		Home  *Address `json:"home"`
//	}
//
// The wire-facing member name is taken from the json tag when present,
// falling back to the Go field name. Nested structs, pointers to structs,
// and slices of structs are traversed automatically by the engine.
type StructResolver struct {
	registry *rules.Registry
	fallback Fallback
	ruleTag  string
	nameTag  string
}

// StructOption configures a StructResolver.
type StructOption func(*StructResolver)

// WithRuleRegistry sets the registry used to build rules from tag
// expressions. Defaults to rules.DefaultRegistry().
func WithRuleRegistry(r *rules.Registry) StructOption {
	return func(s *StructResolver) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithFallback sets a builder for rule expressions unknown to the registry,
// e.g. one backed by rules.Tag for go-playground expressions.
func WithFallback(f Fallback) StructOption {
	return func(s *StructResolver) {
		s.fallback = f
	}
}

// WithRuleTag overrides the struct tag holding rule expressions.
// Defaults to "validate".
func WithRuleTag(tag string) StructOption {
	return func(s *StructResolver) {
		if tag != "" {
			s.ruleTag = tag
		}
	}
}

// WithNameTag overrides the struct tag supplying wire-facing member names.
// Defaults to "json".
func WithNameTag(tag string) StructOption {
	return func(s *StructResolver) {
		if tag != "" {
			s.nameTag = tag
		}
	}
}

// NewStructResolver creates a reflection-based resolver.
func NewStructResolver(opts ...StructOption) *StructResolver {
	s := &StructResolver{
		registry: rules.DefaultRegistry(),
		ruleTag:  "validate",
		nameTag:  "json",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	selfValidatorType = reflect.TypeOf((*validkit.SelfValidator)(nil)).Elem()
	timeType          = reflect.TypeOf(time.Time{})
)

// ResolveType implements Resolver. Non-struct types are declined.
func (s *StructResolver) ResolveType(t reflect.Type) (*descriptor.Type, error) {
	st := t
	for st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct || st == timeType {
		return nil, nil
	}

	var members []descriptor.Property
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.IsExported() {
			continue
		}

		prop, err := s.buildProperty(st, field)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", st, err)
		}
		if prop != nil {
			members = append(members, *prop)
		}
	}

	selfValidating := st.Implements(selfValidatorType) ||
		reflect.PointerTo(st).Implements(selfValidatorType)

	return descriptor.New(st, members, selfValidating)
}

// ResolveParameter implements Resolver. Struct tags carry no information
// about standalone parameters, so the resolver always declines.
func (s *StructResolver) ResolveParameter(ParameterRequest) (*descriptor.Parameter, error) {
	return nil, nil
}

func (s *StructResolver) buildProperty(owner reflect.Type, field reflect.StructField) (*descriptor.Property, error) {
	name := field.Name
	if tag, ok := field.Tag.Lookup(s.nameTag); ok {
		if wire, _, _ := strings.Cut(tag, ","); wire != "" && wire != "-" {
			name = wire
		}
	}

	prop := descriptor.Property{
		Name:        name,
		DisplayName: humanize(field.Name),
		Type:        field.Type,
		Nullable:    isNullable(field.Type),
		Enumerable:  isEnumerable(field.Type),
		HasNested:   hasNestedType(field.Type),
		Get:         fieldGetter(field.Index),
	}

	for expr := range strings.SplitSeq(field.Tag.Get(s.ruleTag), ",") {
		expr = strings.TrimSpace(expr)
		if expr == "" {
			continue
		}
		if expr == "required" {
			prop.Required = true
			prop.RequiredRule = rules.Required()
			continue
		}
		rule, err := s.buildRule(expr)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", field.Name, err)
		}
		prop.Rules = append(prop.Rules, rule)
	}

	return &prop, nil
}

func (s *StructResolver) buildRule(expr string) (validkit.Rule, error) {
	rule, err := s.registry.Build(expr)
	if err == nil {
		return rule, nil
	}
	if s.fallback != nil {
		name, param, _ := strings.Cut(expr, "=")
		if rule, ok := s.fallback(name, param); ok {
			return rule, nil
		}
	}
	return nil, err
}

// fieldGetter builds an accessor for a field identified by its index path.
func fieldGetter(index []int) descriptor.Getter {
	return func(owner any) any {
		rv := reflect.ValueOf(owner)
		for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
			if rv.IsNil() {
				return nil
			}
			rv = rv.Elem()
		}
		if rv.Kind() != reflect.Struct {
			return nil
		}
		fv := rv.FieldByIndex(index)
		if !fv.IsValid() || !fv.CanInterface() {
			return nil
		}
		return fv.Interface()
	}
}

func isNullable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return true
	}
	return false
}

func isEnumerable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Slice, reflect.Array:
		return t.Elem().Kind() != reflect.Uint8 // []byte is a scalar blob
	}
	return false
}

// hasNestedType reports whether the declared type may hold a validatable
// object graph. The engine re-resolves by runtime type at traversal time,
// so interface-typed members count as nested candidates too.
func hasNestedType(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Struct:
		return t != timeType
	case reflect.Interface:
		return true
	}
	return false
}
