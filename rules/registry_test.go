package rules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validkit"
	"github.com/dmitrymomot/validkit/rules"
)

func TestRegistry_Build(t *testing.T) {
	t.Parallel()

	registry := rules.DefaultRegistry()

	t.Run("builds the built-in catalog", func(t *testing.T) {
		t.Parallel()

		for expr, failing := range map[string]any{
			"required":          "",
			"minlen=3":          "ab",
			"maxlen=3":          "abcd",
			"len=2":             "abc",
			"min=5":             4,
			"max=5":             6,
			"range=1:10":        11,
			"email":             "nope",
			"pattern=^[a-z]+$":  "123",
			"oneof=red green":   "blue",
		} {
			rule, err := registry.Build(expr)
			require.NoError(t, err, "expr %q", expr)

			msg, err := rule.Validate(context.Background(), failing)
			require.NoError(t, err, "expr %q", expr)
			assert.NotEmpty(t, msg, "expr %q must fail on %#v", expr, failing)
		}
	})

	t.Run("whitespace around expressions is tolerated", func(t *testing.T) {
		t.Parallel()

		rule, err := registry.Build("  maxlen=3  ")
		require.NoError(t, err)

		msg, err := rule.Validate(context.Background(), "abcd")
		require.NoError(t, err)
		assert.NotEmpty(t, msg)
	})

	t.Run("unknown rule names error", func(t *testing.T) {
		t.Parallel()

		_, err := registry.Build("levitate")
		assert.ErrorIs(t, err, rules.ErrUnknownRule)
	})

	t.Run("empty expression errors", func(t *testing.T) {
		t.Parallel()

		_, err := registry.Build("   ")
		assert.ErrorIs(t, err, rules.ErrEmptyRuleExpr)
	})

	t.Run("malformed parameters error", func(t *testing.T) {
		t.Parallel()

		for _, expr := range []string{"minlen=abc", "min=x", "range=18", "range=a:b", "pattern=([", "oneof="} {
			_, err := registry.Build(expr)
			assert.Error(t, err, "expr %q", expr)
		}
	})

	t.Run("missing pattern parameter errors", func(t *testing.T) {
		t.Parallel()

		_, err := registry.Build("pattern")
		assert.ErrorIs(t, err, rules.ErrMissingParam)
	})
}

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	registry := rules.NewRegistry()
	registry.Register("always", func(param string) (validkit.Rule, error) {
		return validkit.RuleFunc(func(context.Context, any) (string, error) {
			return "always fails: " + param, nil
		}), nil
	})

	rule, err := registry.Build("always=sorry")
	require.NoError(t, err)

	msg, err := rule.Validate(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "always fails: sorry", msg)

	t.Run("replacement wins", func(t *testing.T) {
		registry.Register("always", func(string) (validkit.Rule, error) {
			return validkit.RuleFunc(func(context.Context, any) (string, error) {
				return "", nil
			}), nil
		})

		rule, err := registry.Build("always")
		require.NoError(t, err)
		msg, err := rule.Validate(context.Background(), "anything")
		require.NoError(t, err)
		assert.Empty(t, msg)
	})
}
