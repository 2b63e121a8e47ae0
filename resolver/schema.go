package resolver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/validkit/descriptor"
	"github.com/dmitrymomot/validkit/rules"
)

// Schema resolution errors.
var (
	ErrInvalidSchema = errors.New("invalid validation schema")
	ErrUnknownField  = errors.New("schema references unknown struct field")
)

// SchemaResolver supplies descriptors declared in a YAML document instead
// of struct tags, which keeps validation rules editable without
// recompiling and covers types whose source cannot carry tags.
//
// Schema format:
//
//	types:
//	  - name: customers.Customer
//	    fields:
//	      - name: Name
//	        display_name: Full name
//	        required: true
//	        rules: [maxlen=64]
//	      - name: Age
//	        rules: [range=18:120]
//	parameters:
//	  - name: id
//	    source: path
//	    required: true
//	    rules: ["pattern=^[0-9]+$"]
//
// Type names match reflect.Type.String() (package-qualified). Field names
// are Go struct field names; flags like nullability and nestedness are
// derived from the actual field types at resolution time.
type SchemaResolver struct {
	registry *rules.Registry
	types    map[string]schemaType
	params   map[registryParamKey]schemaParameter
}

type schemaDocument struct {
	Types      []schemaType      `yaml:"types"`
	Parameters []schemaParameter `yaml:"parameters"`
}

type schemaType struct {
	Name   string        `yaml:"name"`
	Fields []schemaField `yaml:"fields"`
}

type schemaField struct {
	Name        string   `yaml:"name"`
	DisplayName string   `yaml:"display_name"`
	Required    bool     `yaml:"required"`
	Rules       []string `yaml:"rules"`
}

type schemaParameter struct {
	Name        string   `yaml:"name"`
	Source      string   `yaml:"source"`
	DisplayName string   `yaml:"display_name"`
	Required    bool     `yaml:"required"`
	Rules       []string `yaml:"rules"`
}

// SchemaOption configures a SchemaResolver.
type SchemaOption func(*SchemaResolver)

// WithSchemaRuleRegistry sets the registry used to build rules from schema
// expressions. Defaults to rules.DefaultRegistry().
func WithSchemaRuleRegistry(r *rules.Registry) SchemaOption {
	return func(s *SchemaResolver) {
		if r != nil {
			s.registry = r
		}
	}
}

// NewSchemaResolver parses a YAML schema from r.
func NewSchemaResolver(r io.Reader, opts ...SchemaOption) (*SchemaResolver, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	var doc schemaDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}

	s := &SchemaResolver{
		registry: rules.DefaultRegistry(),
		types:    make(map[string]schemaType, len(doc.Types)),
		params:   make(map[registryParamKey]schemaParameter, len(doc.Parameters)),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, t := range doc.Types {
		if t.Name == "" {
			return nil, fmt.Errorf("%w: type entry without a name", ErrInvalidSchema)
		}
		s.types[t.Name] = t
	}
	for _, p := range doc.Parameters {
		if p.Name == "" {
			return nil, fmt.Errorf("%w: parameter entry without a name", ErrInvalidSchema)
		}
		s.params[registryParamKey{name: p.Name, source: p.Source}] = p
	}

	return s, nil
}

// NewSchemaResolverFromFile reads and parses a YAML schema file.
func NewSchemaResolverFromFile(path string, opts ...SchemaOption) (*SchemaResolver, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	defer f.Close()
	return NewSchemaResolver(f, opts...)
}

// ResolveType implements Resolver.
func (s *SchemaResolver) ResolveType(t reflect.Type) (*descriptor.Type, error) {
	st := t
	for st.Kind() == reflect.Pointer {
		st = st.Elem()
	}

	entry, ok := s.types[st.String()]
	if !ok {
		return nil, nil
	}
	if st.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is declared in the schema but is not a struct", ErrInvalidSchema, st)
	}

	members := make([]descriptor.Property, 0, len(entry.Fields))
	for _, f := range entry.Fields {
		field, ok := st.FieldByName(f.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %s.%s", ErrUnknownField, st, f.Name)
		}

		prop := descriptor.Property{
			Name:        f.Name,
			DisplayName: f.DisplayName,
			Type:        field.Type,
			Required:    f.Required,
			Nullable:    isNullable(field.Type),
			Enumerable:  isEnumerable(field.Type),
			HasNested:   hasNestedType(field.Type),
			Get:         fieldGetter(field.Index),
		}
		if prop.DisplayName == "" {
			prop.DisplayName = humanize(f.Name)
		}
		if f.Required {
			prop.RequiredRule = rules.Required()
		}

		for _, expr := range f.Rules {
			rule, err := s.registry.Build(expr)
			if err != nil {
				return nil, fmt.Errorf("type %s, field %q: %w", st, f.Name, err)
			}
			prop.Rules = append(prop.Rules, rule)
		}

		members = append(members, prop)
	}

	selfValidating := st.Implements(selfValidatorType) ||
		reflect.PointerTo(st).Implements(selfValidatorType)

	return descriptor.New(st, members, selfValidating)
}

// ResolveParameter implements Resolver. An exact source match wins over a
// source-agnostic declaration.
func (s *SchemaResolver) ResolveParameter(req ParameterRequest) (*descriptor.Parameter, error) {
	entry, ok := s.params[registryParamKey{name: req.Name, source: req.Source}]
	if !ok {
		entry, ok = s.params[registryParamKey{name: req.Name}]
	}
	if !ok {
		return nil, nil
	}

	param := &descriptor.Parameter{
		Name:        entry.Name,
		DisplayName: entry.DisplayName,
		Type:        req.Type,
		Required:    entry.Required,
	}
	if param.DisplayName == "" {
		param.DisplayName = humanize(entry.Name)
	}
	if req.Type != nil {
		param.Nullable = isNullable(req.Type)
		param.Enumerable = isEnumerable(req.Type)
		param.HasNested = hasNestedType(req.Type)
	}
	if entry.Required {
		param.RequiredRule = rules.Required()
	}

	for _, expr := range entry.Rules {
		rule, err := s.registry.Build(expr)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", entry.Name, err)
		}
		param.Rules = append(param.Rules, rule)
	}

	return param, nil
}
