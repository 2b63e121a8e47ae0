package rules

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/dmitrymomot/validkit"
)

// Required validates that a value is present: non-nil, not an empty or
// whitespace-only string, and not an empty collection.
//
// The engine gives rules produced by Required precedence over all other
// rules bound to the same member, so a failure here suppresses redundant
// follow-up messages.
func Required() validkit.Rule {
	return validkit.RuleFunc(func(_ context.Context, value any) (string, error) {
		if isBlank(value) {
			return "field is required", nil
		}
		return "", nil
	})
}

// MinLen validates that a string or collection has at least min elements.
func MinLen(min int) validkit.Rule {
	return validkit.RuleFunc(func(_ context.Context, value any) (string, error) {
		n, ok := lengthOf(value)
		if ok && n < min {
			return fmt.Sprintf("must be at least %d characters long", min), nil
		}
		return "", nil
	})
}

// MaxLen validates that a string or collection has at most max elements.
func MaxLen(max int) validkit.Rule {
	return validkit.RuleFunc(func(_ context.Context, value any) (string, error) {
		n, ok := lengthOf(value)
		if ok && n > max {
			return fmt.Sprintf("must be at most %d characters long", max), nil
		}
		return "", nil
	})
}

// Len validates that a string or collection has exactly the given length.
func Len(exact int) validkit.Rule {
	return validkit.RuleFunc(func(_ context.Context, value any) (string, error) {
		n, ok := lengthOf(value)
		if ok && n != exact {
			return fmt.Sprintf("must be exactly %d characters long", exact), nil
		}
		return "", nil
	})
}

func isBlank(value any) bool {
	if value == nil {
		return true
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v) == ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return isBlank(rv.Elem().Interface())
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	}
	return false
}

// lengthOf reports the length of strings, slices, arrays and maps.
// Other types have no length and are passed over by length rules.
func lengthOf(value any) (int, bool) {
	if value == nil {
		return 0, false
	}
	if s, ok := value.(string); ok {
		return len(s), true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len(), true
	case reflect.Pointer:
		if rv.IsNil() {
			return 0, false
		}
		return lengthOf(rv.Elem().Interface())
	}
	return 0, false
}
