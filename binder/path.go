package binder

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/go-chi/chi/v5"
)

// Path creates a binder for chi route parameters.
//
// It supports struct tags for custom parameter names:
//   - `path:"name"` - binds to route parameter "name"
//   - `path:"-"` - skips the field
//
// Example:
//
//	type GetCustomerRequest struct {
//		ID     string `path:"id" validate:"required,pattern=^[0-9]+$"`
//		Expand bool   `query:"expand"`
//	}
//
//	r.Get("/customers/{id}", handler.Wrap(h,
//		handler.WithBinders[handler.Context, GetCustomerRequest](binder.Path(), binder.Query()),
//	))
func Path() func(r *http.Request, v any) error {
	return PathFunc(chi.URLParam)
}

// PathFunc creates a path parameter binder backed by a custom extractor,
// for routers other than chi.
func PathFunc(extract func(r *http.Request, name string) string) func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		if extract == nil {
			return fmt.Errorf("%w: extractor function is nil", ErrInvalidPath)
		}

		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.IsNil() {
			return fmt.Errorf("%w: target must be a non-nil pointer", ErrInvalidPath)
		}
		rv = rv.Elem()
		if rv.Kind() != reflect.Struct {
			return fmt.Errorf("%w: target must be a pointer to struct", ErrInvalidPath)
		}

		rt := rv.Type()
		for i := 0; i < rv.NumField(); i++ {
			field := rv.Field(i)
			if !field.CanSet() {
				continue
			}

			name, skip := parseFieldTag(rt.Field(i), "path")
			if skip {
				continue
			}

			value := extract(r, name)
			if value == "" {
				continue
			}

			if err := setFieldValue(field, rt.Field(i).Type, []string{value}); err != nil {
				return fmt.Errorf("%w: field %s: %v", ErrInvalidPath, rt.Field(i).Name, err)
			}
		}

		return nil
	}
}
