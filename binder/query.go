package binder

import (
	"net/http"
)

// Query creates a query parameter binder.
//
// It supports struct tags for custom parameter names:
//   - `query:"name"` - binds to query parameter "name"
//   - `query:"-"` - skips the field
//
// Supported types are string, signed/unsigned integers, floats, bool,
// slices of those for multi-value parameters, and pointers for optional
// fields. Fields without a query tag bind by lowercased field name.
func Query() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrInvalidQuery)
	}
}
