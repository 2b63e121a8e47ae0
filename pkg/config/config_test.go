package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validkit/pkg/config"
)

type validationConfig struct {
	MaxDepth    int    `env:"TEST_VALIDATION_MAX_DEPTH" envDefault:"32"`
	Parallelism int    `env:"TEST_VALIDATION_PARALLELISM" envDefault:"1"`
	Required    string `env:"TEST_VALIDATION_REQUIRED,required"`
}

func TestLoad(t *testing.T) {
	t.Run("defaults apply when env vars are absent", func(t *testing.T) {
		t.Setenv("TEST_VALIDATION_REQUIRED", "present")

		var cfg validationConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 32, cfg.MaxDepth)
		assert.Equal(t, 1, cfg.Parallelism)
		assert.Equal(t, "present", cfg.Required)
	})

	t.Run("env vars override defaults", func(t *testing.T) {
		t.Setenv("TEST_VALIDATION_MAX_DEPTH", "8")
		t.Setenv("TEST_VALIDATION_REQUIRED", "present")

		var cfg validationConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, 8, cfg.MaxDepth)
	})

	t.Run("missing required variable errors", func(t *testing.T) {
		var cfg validationConfig
		err := config.Load(&cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("nil target errors", func(t *testing.T) {
		err := config.Load[validationConfig](nil)
		assert.ErrorIs(t, err, config.ErrNilPointer)
	})
}

func TestMustLoad(t *testing.T) {
	t.Run("panics on missing required variable", func(t *testing.T) {
		var cfg validationConfig
		assert.Panics(t, func() {
			config.MustLoad(&cfg)
		})
	})

	t.Run("loads when the environment is complete", func(t *testing.T) {
		t.Setenv("TEST_VALIDATION_REQUIRED", "present")

		var cfg validationConfig
		assert.NotPanics(t, func() {
			config.MustLoad(&cfg)
		})
		assert.Equal(t, "present", cfg.Required)
	})
}
