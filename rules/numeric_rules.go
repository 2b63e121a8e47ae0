package rules

import (
	"context"
	"fmt"
	"reflect"
	"strconv"

	"github.com/dmitrymomot/validkit"
)

// Min validates that a numeric value is greater than or equal to the minimum.
func Min(min float64) validkit.Rule {
	return validkit.RuleFunc(func(_ context.Context, value any) (string, error) {
		n, ok := numericOf(value)
		if ok && n < min {
			return fmt.Sprintf("must be at least %s", formatNum(min)), nil
		}
		return "", nil
	})
}

// Max validates that a numeric value is less than or equal to the maximum.
func Max(max float64) validkit.Rule {
	return validkit.RuleFunc(func(_ context.Context, value any) (string, error) {
		n, ok := numericOf(value)
		if ok && n > max {
			return fmt.Sprintf("must be at most %s", formatNum(max)), nil
		}
		return "", nil
	})
}

// Range validates that a numeric value falls within [min, max].
func Range(min, max float64) validkit.Rule {
	return validkit.RuleFunc(func(_ context.Context, value any) (string, error) {
		n, ok := numericOf(value)
		if ok && (n < min || n > max) {
			return fmt.Sprintf("must be between %s and %s", formatNum(min), formatNum(max)), nil
		}
		return "", nil
	})
}

// numericOf converts any numeric kind to float64. Non-numeric values are
// passed over by numeric rules rather than reported as failures.
func numericOf(value any) (float64, bool) {
	if value == nil {
		return 0, false
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Pointer:
		if rv.IsNil() {
			return 0, false
		}
		return numericOf(rv.Elem().Interface())
	}
	return 0, false
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
