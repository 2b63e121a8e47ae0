// Package config loads environment-backed configuration structs. A .env
// file is loaded once per process when present; values are then parsed
// into struct fields via env tags.
package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	// ErrNilPointer is returned when the config target is nil.
	ErrNilPointer = errors.New("config target cannot be nil")
	// ErrParsingConfig wraps env parsing failures.
	ErrParsingConfig = errors.New("failed to parse config from environment")
)

var defaultEnvLoaded sync.Once

// Load parses environment variables into the provided configuration struct.
//
// Example:
//
//	type ValidationConfig struct {
//		MaxDepth    int `env:"VALIDATION_MAX_DEPTH" envDefault:"32"`
//		Parallelism int `env:"VALIDATION_PARALLELISM" envDefault:"1"`
//	}
//
//	var cfg ValidationConfig
//	if err := config.Load(&cfg); err != nil {
//		// Handle error
//	}
func Load[T any](v *T) error {
	defaultEnvLoaded.Do(func() {
		// The .env file is optional; ignore a missing one.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// MustLoad works like Load but panics if configuration loading fails.
// Useful for configuration required for the application to start.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
