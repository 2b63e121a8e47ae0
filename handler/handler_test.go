package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validkit/binder"
	"github.com/dmitrymomot/validkit/engine"
	"github.com/dmitrymomot/validkit/handler"
	"github.com/dmitrymomot/validkit/resolver"
)

type createCustomerRequest struct {
	Name  string `json:"name" validate:"required,maxlen=64"`
	Email string `json:"email" validate:"required,email"`
}

func newTestEngine() *engine.Engine {
	return engine.New(resolver.NewChain(resolver.NewStructResolver()))
}

func postJSON(body string) *http.Request {
	r := httptest.NewRequest("POST", "/customers", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func TestWrap_Pipeline(t *testing.T) {
	t.Parallel()

	echo := func(ctx handler.Context, req createCustomerRequest) handler.Response {
		return handler.JSON(map[string]string{"name": req.Name}, http.StatusCreated)
	}

	wrapped := handler.Wrap(
		handler.HandlerFunc[handler.Context, createCustomerRequest](echo),
		handler.WithBinders[handler.Context, createCustomerRequest](binder.JSON()),
		handler.WithValidator[handler.Context, createCustomerRequest](newTestEngine()),
	)

	t.Run("valid request reaches the handler", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		wrapped(rec, postJSON(`{"name":"Ada","email":"ada@example.com"}`))

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{"name":"Ada"}`, rec.Body.String())
	})

	t.Run("invalid request renders a problem document", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		wrapped(rec, postJSON(`{"name":"","email":"nope"}`))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "application/problem+json; charset=utf-8", rec.Header().Get("Content-Type"))

		var problem handler.Problem
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
		assert.Equal(t, "One or more validation errors occurred.", problem.Title)
		assert.Equal(t, http.StatusBadRequest, problem.Status)
		assert.Equal(t, []string{"field is required"}, problem.Errors["name"])
		assert.Equal(t, []string{"must be a valid email address"}, problem.Errors["email"])
	})

	t.Run("binding error yields 400 without invoking the handler", func(t *testing.T) {
		t.Parallel()

		called := false
		h := handler.Wrap(
			handler.HandlerFunc[handler.Context, createCustomerRequest](func(handler.Context, createCustomerRequest) handler.Response {
				called = true
				return handler.NoContent()
			}),
			handler.WithBinders[handler.Context, createCustomerRequest](binder.JSON()),
		)

		rec := httptest.NewRecorder()
		h(rec, postJSON(`{"name":`))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, called)
	})

	t.Run("wrong content type yields 415", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		r := httptest.NewRequest("POST", "/customers", strings.NewReader("name=Ada"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		wrapped(rec, r)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}

func TestWrap_WithoutValidation(t *testing.T) {
	t.Parallel()

	wrapped := handler.Wrap(
		handler.HandlerFunc[handler.Context, createCustomerRequest](func(_ handler.Context, req createCustomerRequest) handler.Response {
			return handler.JSON(map[string]string{"name": req.Name})
		}),
		handler.WithBinders[handler.Context, createCustomerRequest](binder.JSON()),
		handler.WithValidator[handler.Context, createCustomerRequest](newTestEngine()),
		handler.WithoutValidation[handler.Context, createCustomerRequest](),
	)

	rec := httptest.NewRecorder()
	wrapped(rec, postJSON(`{"name":"","email":""}`))

	assert.Equal(t, http.StatusOK, rec.Code, "invalid request must pass through with validation disabled")
}

func TestWrap_NilResponse(t *testing.T) {
	t.Parallel()

	wrapped := handler.Wrap(
		handler.HandlerFunc[handler.Context, createCustomerRequest](func(handler.Context, createCustomerRequest) handler.Response {
			return nil
		}),
	)

	rec := httptest.NewRecorder()
	wrapped(rec, postJSON(`{}`))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestWrap_Decorators(t *testing.T) {
	t.Parallel()

	var order []string
	decorator := func(name string) handler.Decorator[handler.Context, createCustomerRequest] {
		return func(next handler.HandlerFunc[handler.Context, createCustomerRequest]) handler.HandlerFunc[handler.Context, createCustomerRequest] {
			return func(ctx handler.Context, req createCustomerRequest) handler.Response {
				order = append(order, name)
				return next(ctx, req)
			}
		}
	}

	wrapped := handler.Wrap(
		handler.HandlerFunc[handler.Context, createCustomerRequest](func(handler.Context, createCustomerRequest) handler.Response {
			order = append(order, "handler")
			return handler.NoContent()
		}),
		handler.WithDecorators(decorator("outer"), decorator("inner")),
	)

	rec := httptest.NewRecorder()
	wrapped(rec, postJSON(`{}`))

	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestWrap_CustomErrorHandler(t *testing.T) {
	t.Parallel()

	var seen error
	wrapped := handler.Wrap(
		handler.HandlerFunc[handler.Context, createCustomerRequest](func(handler.Context, createCustomerRequest) handler.Response {
			return handler.NoContent()
		}),
		handler.WithBinders[handler.Context, createCustomerRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, createCustomerRequest](func(_ handler.Context, err error) {
			seen = err
		}),
	)

	rec := httptest.NewRecorder()
	wrapped(rec, postJSON(`{"name":`))

	require.Error(t, seen)
	assert.ErrorIs(t, seen, binder.ErrInvalidJSON)
}
