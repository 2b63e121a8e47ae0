package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dmitrymomot/validkit"
)

// Registry resolution errors.
var (
	ErrUnknownRule   = errors.New("unknown validation rule")
	ErrInvalidParam  = errors.New("invalid rule parameter")
	ErrMissingParam  = errors.New("missing rule parameter")
	ErrEmptyRuleExpr = errors.New("empty rule expression")
)

// Factory builds a rule from the parameter part of a rule expression.
// The parameter is empty for parameterless rules like "email".
type Factory func(param string) (validkit.Rule, error)

// Registry maps rule names to factories. It is the bridge between
// declarative rule expressions ("maxlen=5", "range=18:120") and the rule
// catalog; struct-tag and YAML-schema resolvers both build rules through it.
//
// Populate a registry during startup and treat it as read-only afterwards;
// Register is not safe for concurrent use with Build.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry pre-populated with the built-in
// catalog: required, minlen, maxlen, len, min, max, range, email, pattern,
// oneof.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("required", func(string) (validkit.Rule, error) {
		return Required(), nil
	})
	r.Register("minlen", intFactory(MinLen))
	r.Register("maxlen", intFactory(MaxLen))
	r.Register("len", intFactory(Len))
	r.Register("min", floatFactory(Min))
	r.Register("max", floatFactory(Max))
	r.Register("range", func(param string) (validkit.Rule, error) {
		lo, hi, ok := strings.Cut(param, ":")
		if !ok {
			return nil, fmt.Errorf("%w: range wants min:max, got %q", ErrInvalidParam, param)
		}
		min, err := strconv.ParseFloat(lo, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidParam, lo)
		}
		max, err := strconv.ParseFloat(hi, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidParam, hi)
		}
		return Range(min, max), nil
	})
	r.Register("email", func(string) (validkit.Rule, error) {
		return Email(), nil
	})
	r.Register("pattern", func(param string) (validkit.Rule, error) {
		if param == "" {
			return nil, fmt.Errorf("%w: pattern wants a regular expression", ErrMissingParam)
		}
		// Compile eagerly so a bad expression surfaces as a
		// configuration error instead of a panic from Pattern.
		re, err := regexp.Compile(param)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidParam, err)
		}
		return Pattern(re.String()), nil
	})
	r.Register("oneof", func(param string) (validkit.Rule, error) {
		allowed := strings.Fields(param)
		if len(allowed) == 0 {
			return nil, fmt.Errorf("%w: oneof wants space-separated values", ErrMissingParam)
		}
		return OneOf(allowed...), nil
	})
	return r
}

// Register adds or replaces a factory for a rule name.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Build resolves a single "name" or "name=param" expression into a rule.
func (r *Registry) Build(expr string) (validkit.Rule, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, ErrEmptyRuleExpr
	}

	name, param, _ := strings.Cut(expr, "=")
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	rule, err := factory(param)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", name, err)
	}
	return rule, nil
}

func intFactory(make func(int) validkit.Rule) Factory {
	return func(param string) (validkit.Rule, error) {
		n, err := strconv.Atoi(param)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidParam, param)
		}
		return make(n), nil
	}
}

func floatFactory(make func(float64) validkit.Rule) Factory {
	return func(param string) (validkit.Rule, error) {
		f, err := strconv.ParseFloat(param, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrInvalidParam, param)
		}
		return make(f), nil
	}
}
