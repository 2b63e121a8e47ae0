package rules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validkit"
	"github.com/dmitrymomot/validkit/rules"
)

// check runs a rule and requires it not to fault.
func check(t *testing.T, rule validkit.Rule, value any) string {
	t.Helper()
	msg, err := rule.Validate(context.Background(), value)
	require.NoError(t, err)
	return msg
}

func TestRequired(t *testing.T) {
	t.Parallel()

	rule := rules.Required()

	t.Run("fails on absent values", func(t *testing.T) {
		t.Parallel()

		for _, value := range []any{nil, "", "   ", "\t\n", []string{}, map[string]int{}, (*string)(nil)} {
			assert.Equal(t, "field is required", check(t, rule, value), "value %#v", value)
		}
	})

	t.Run("passes on present values", func(t *testing.T) {
		t.Parallel()

		ptr := "x"
		for _, value := range []any{"x", " x ", 0, false, []string{"a"}, &ptr} {
			assert.Empty(t, check(t, rule, value), "value %#v", value)
		}
	})
}

func TestLengthRules(t *testing.T) {
	t.Parallel()

	t.Run("minlen", func(t *testing.T) {
		t.Parallel()

		rule := rules.MinLen(3)
		assert.Equal(t, "must be at least 3 characters long", check(t, rule, "ab"))
		assert.Empty(t, check(t, rule, "abc"))
		assert.Equal(t, "must be at least 3 characters long", check(t, rule, []int{1, 2}))
		assert.Empty(t, check(t, rule, 42), "non-measurable values are passed over")
	})

	t.Run("maxlen", func(t *testing.T) {
		t.Parallel()

		rule := rules.MaxLen(3)
		assert.Empty(t, check(t, rule, "abc"))
		assert.Equal(t, "must be at most 3 characters long", check(t, rule, "abcd"))
		assert.Equal(t, "must be at most 3 characters long", check(t, rule, []int{1, 2, 3, 4}))
	})

	t.Run("len", func(t *testing.T) {
		t.Parallel()

		rule := rules.Len(2)
		assert.Empty(t, check(t, rule, "ab"))
		assert.Equal(t, "must be exactly 2 characters long", check(t, rule, "a"))
		assert.Equal(t, "must be exactly 2 characters long", check(t, rule, "abc"))
	})

	t.Run("pointers are dereferenced", func(t *testing.T) {
		t.Parallel()

		s := "ab"
		assert.Equal(t, "must be at least 3 characters long", check(t, rules.MinLen(3), &s))
	})
}

func TestNumericRules(t *testing.T) {
	t.Parallel()

	t.Run("min", func(t *testing.T) {
		t.Parallel()

		rule := rules.Min(18)
		assert.Equal(t, "must be at least 18", check(t, rule, 17))
		assert.Empty(t, check(t, rule, 18))
		assert.Empty(t, check(t, rule, uint8(20)))
		assert.Equal(t, "must be at least 18", check(t, rule, 17.5))
	})

	t.Run("max", func(t *testing.T) {
		t.Parallel()

		rule := rules.Max(120)
		assert.Empty(t, check(t, rule, 120))
		assert.Equal(t, "must be at most 120", check(t, rule, 121))
	})

	t.Run("range", func(t *testing.T) {
		t.Parallel()

		rule := rules.Range(18, 120)
		assert.Equal(t, "must be between 18 and 120", check(t, rule, 17))
		assert.Empty(t, check(t, rule, 18))
		assert.Empty(t, check(t, rule, 120))
		assert.Equal(t, "must be between 18 and 120", check(t, rule, 121))
	})

	t.Run("fractional bounds keep their precision", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "must be at least 0.5", check(t, rules.Min(0.5), 0.25))
	})

	t.Run("non-numeric values are passed over", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, check(t, rules.Min(1), "not a number"))
		assert.Empty(t, check(t, rules.Min(1), nil))
	})
}

func TestEmail(t *testing.T) {
	t.Parallel()

	rule := rules.Email()

	t.Run("valid addresses", func(t *testing.T) {
		t.Parallel()

		for _, addr := range []string{"user@example.com", "first.last@sub.example.org", "x+tag@example.io"} {
			assert.Empty(t, check(t, rule, addr), "address %q", addr)
		}
	})

	t.Run("invalid addresses", func(t *testing.T) {
		t.Parallel()

		for _, addr := range []string{"", "not-an-email", "user@", "@example.com", "user@localhost", "user@.com", "user@com."} {
			assert.Equal(t, "must be a valid email address", check(t, rule, addr), "address %q", addr)
		}
	})

	t.Run("non-string values are passed over", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, check(t, rule, 42))
	})
}

func TestPattern(t *testing.T) {
	t.Parallel()

	rule := rules.Pattern(`^[0-9]+$`)

	assert.Empty(t, check(t, rule, "12345"))
	assert.Equal(t, `must match pattern "^[0-9]+$"`, check(t, rule, "12a45"))

	t.Run("invalid expression panics at construction", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() { rules.Pattern("([") })
	})
}

func TestOneOf(t *testing.T) {
	t.Parallel()

	rule := rules.OneOf("small", "medium", "large")

	assert.Empty(t, check(t, rule, "medium"))
	assert.Equal(t, "must be one of: small, medium, large", check(t, rule, "huge"))
}
