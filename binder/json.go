package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// JSON creates a JSON body binder.
//
// The decoder runs in strict mode: unknown fields and trailing data are
// rejected. A request without a body is only an error when the struct
// actually expects one, which the validation engine reports field by field,
// so an empty body decodes into the zero value.
//
// Example:
//
//	r.Post("/customers", handler.Wrap(h,
//		handler.WithBinders[handler.Context, CreateCustomerRequest](binder.JSON()),
//		handler.WithValidator[handler.Context, CreateCustomerRequest](eng),
//	))
func JSON() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
		}

		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil || mediaType != "application/json" {
			return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, contentType)
		}

		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()

		if err := decoder.Decode(v); err != nil {
			if errors.Is(err, io.EOF) {
				// Empty body binds the zero value; required-field errors
				// are the validator's to report.
				return nil
			}
			return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
		}

		// Ensure the entire body was consumed.
		if err := decoder.Decode(new(json.RawMessage)); err != io.EOF {
			return fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidJSON)
		}

		return nil
	}
}
