package validkit

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// ValidationError maps property paths to validation failure messages.
// It's based on url.Values to leverage built-in string slice handling.
//
// Keys are dot/bracket-joined paths produced by the validation engine,
// e.g. "Name", "HomeAddress.Street" or "Items[2].Name". Message order per
// key follows rule evaluation order; duplicates are preserved.
type ValidationError url.Values

// Error implements the error interface.
// Returns a human-readable error message summarizing validation failures.
func (e ValidationError) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}

	var parts []string
	for _, path := range e.Paths() {
		if messages := e[path]; len(messages) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", path, messages[0]))
		}
	}

	return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
}

// NewValidationError creates an empty validation error map.
func NewValidationError() ValidationError {
	return make(ValidationError)
}

// Add appends an error message for a path.
func (e ValidationError) Add(path, message string) {
	url.Values(e).Add(path, message)
}

// Get returns the first error message for a path.
func (e ValidationError) Get(path string) string {
	return url.Values(e).Get(path)
}

// Has checks if a path has any errors.
func (e ValidationError) Has(path string) bool {
	return len(e[path]) > 0
}

// Paths returns all paths that have errors, sorted for stable output.
func (e ValidationError) Paths() []string {
	paths := make([]string, 0, len(e))
	for path := range e {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Merge appends all messages from other into e.
func (e ValidationError) Merge(other ValidationError) {
	for path, messages := range other {
		for _, message := range messages {
			e.Add(path, message)
		}
	}
}

// IsEmpty returns true if there are no validation errors.
func (e ValidationError) IsEmpty() bool {
	return len(e) == 0
}
