package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/validkit/binder"
	"github.com/dmitrymomot/validkit/pkg/requestid"
)

// defaultErrorHandler maps pipeline errors to HTTP responses: binding
// errors are the client's fault, cancellation means the client went away,
// everything else (including validation faults) is a server error.
func defaultErrorHandler[C Context](ctx C, err error) {
	status, detail := classifyError(err)
	if status == statusClientClosedRequest {
		// Nobody is listening; don't bother writing a body.
		return
	}
	_ = ProblemResponse(status, detail).Render(ctx.ResponseWriter(), ctx.Request())
}

// LoggingErrorHandler returns an error handler that logs through log before
// responding like the default handler. Validation faults surface here: they
// indicate broken rule configuration, not bad input, and deserve an
// operator's attention.
func LoggingErrorHandler[C Context](log *slog.Logger) ErrorHandler[C] {
	return func(ctx C, err error) {
		status, _ := classifyError(err)
		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		log.LogAttrs(ctx, level, "request pipeline error",
			slog.String("error", err.Error()),
			slog.Int("status", status),
			slog.String("request_id", requestid.FromContext(ctx)),
			slog.String("path", ctx.Request().URL.Path),
		)
		defaultErrorHandler(ctx, err)
	}
}

// statusClientClosedRequest is the de facto status for canceled requests;
// it is never written to the wire, only used for classification.
const statusClientClosedRequest = 499

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return statusClientClosedRequest, ""
	case errors.Is(err, binder.ErrInvalidJSON),
		errors.Is(err, binder.ErrInvalidQuery),
		errors.Is(err, binder.ErrInvalidPath):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, binder.ErrMissingContentType),
		errors.Is(err, binder.ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}
