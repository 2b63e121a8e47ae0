// Package binder populates request structs from HTTP requests before they
// are handed to the validation engine.
//
// Each binder is a plain func(r *http.Request, v any) error and processes
// only its own struct tags, so binders compose: JSON for the body, Query
// for the query string, Path for chi route parameters. Binding is purely
// mechanical type conversion; semantic checks belong to the validation
// engine, which runs after all binders have been applied.
package binder
