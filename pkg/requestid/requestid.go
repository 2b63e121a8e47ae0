// Package requestid attaches a correlation ID to every HTTP request so log
// records and validation problem responses produced for the same request
// can be matched up when troubleshooting.
package requestid

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// Header is the HTTP header carrying the request ID.
const Header = "X-Request-ID"

type contextKey struct{}

// WithContext stores a request ID in the context.
func WithContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKey{}, requestID)
}

// FromContext extracts the request ID from the context, returning an empty
// string when none is set.
func FromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	requestID, _ := ctx.Value(contextKey{}).(string)
	return requestID
}

// Middleware ensures every request carries an ID: a client-supplied
// X-Request-ID is reused when it parses as a UUID, otherwise a new UUIDv4
// is generated. The ID is stored in the request context and echoed back in
// the response header.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), id)))
	})
}

// LogAttr returns a slog attribute holding the request ID from ctx, for
// injecting into structured log records.
func LogAttr(ctx context.Context) slog.Attr {
	return slog.String("request_id", FromContext(ctx))
}
