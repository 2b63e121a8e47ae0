// Package handler provides type-safe HTTP handlers with an integrated
// request-validation pipeline.
//
// A handler declares its request type once; Wrap binds the incoming request
// (JSON body, query string, chi route parameters), runs the validation
// engine against the bound value, and only invokes the handler when the
// request is valid. Validation failures render an RFC 9457 problem response
// carrying the engine's path-keyed error map verbatim, so clients see every
// failing field in one round trip.
//
//	type CreateCustomerRequest struct {
//		Name  string `json:"name" validate:"required,maxlen=64"`
//		Email string `json:"email" validate:"required,email"`
//	}
//
//	h := handler.HandlerFunc[handler.Context, CreateCustomerRequest](
//		func(ctx handler.Context, req CreateCustomerRequest) handler.Response {
//			return handler.JSON(createCustomer(req), http.StatusCreated)
//		},
//	)
//
//	r.Post("/customers", handler.Wrap(h,
//		handler.WithBinders[handler.Context, CreateCustomerRequest](binder.JSON()),
//		handler.WithValidator[handler.Context, CreateCustomerRequest](eng),
//	))
//
// Endpoints opt out of validation by omitting WithValidator (or using
// WithoutValidation when a shared option set configures one): the engine is
// simply never invoked for that route.
package handler
