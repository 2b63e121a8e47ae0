package validkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validkit"
)

func TestValidationError(t *testing.T) {
	t.Parallel()

	t.Run("add and get", func(t *testing.T) {
		t.Parallel()

		errs := validkit.NewValidationError()
		errs.Add("Name", "field is required")
		errs.Add("Name", "must be at least 3 characters long")

		assert.Equal(t, "field is required", errs.Get("Name"))
		assert.Equal(t, []string{"field is required", "must be at least 3 characters long"}, errs["Name"])
		assert.True(t, errs.Has("Name"))
		assert.False(t, errs.Has("Email"))
	})

	t.Run("paths are sorted", func(t *testing.T) {
		t.Parallel()

		errs := validkit.NewValidationError()
		errs.Add("Items[2].Name", "field is required")
		errs.Add("Age", "must be at least 18")
		errs.Add("HomeAddress.Street", "field is required")

		assert.Equal(t, []string{"Age", "HomeAddress.Street", "Items[2].Name"}, errs.Paths())
	})

	t.Run("merge appends without replacing", func(t *testing.T) {
		t.Parallel()

		errs := validkit.NewValidationError()
		errs.Add("Name", "first")

		other := validkit.NewValidationError()
		other.Add("Name", "second")
		other.Add("Email", "third")

		errs.Merge(other)

		assert.Equal(t, []string{"first", "second"}, errs["Name"])
		assert.Equal(t, []string{"third"}, errs["Email"])
	})

	t.Run("error message", func(t *testing.T) {
		t.Parallel()

		errs := validkit.NewValidationError()
		assert.Equal(t, "validation failed", errs.Error())

		errs.Add("Name", "field is required")
		errs.Add("Age", "must be at least 18")
		assert.Equal(t, "validation failed: Age: must be at least 18; Name: field is required", errs.Error())
	})

	t.Run("empty checks", func(t *testing.T) {
		t.Parallel()

		errs := validkit.NewValidationError()
		require.True(t, errs.IsEmpty())
		errs.Add("", "object level message")
		assert.False(t, errs.IsEmpty())
		assert.Equal(t, "object level message", errs.Get(""))
	})
}
