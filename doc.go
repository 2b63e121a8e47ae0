// Package validkit provides a recursive object-graph validation engine for Go.
//
// ValidKit walks an arbitrary value depth-first, evaluates the validation
// rules declared for each member, and collects every failure into a flat map
// from property path to human-readable messages. It is designed for
// validating inbound HTTP payloads and route/query parameters, but the
// engine itself is transport-agnostic.
//
// Key features:
//
//   - Structured error map keyed by dot/bracket paths ("Customer.HomeAddress.Street", "Items[2].Name")
//   - Pluggable descriptor resolvers (struct tags, hand-written registry, YAML schema)
//   - Polymorphic nested validation resolved by runtime type
//   - Cycle detection and a configurable depth guard for self-referential graphs
//   - Cross-field self-validation hooks
//   - Context-aware rules with cancellation support
//
// Basic Usage:
//
//	type Customer struct {
//		Name  string `json:"name" validate:"required"`
//		Email string `json:"email" validate:"email"`
//		Age   int    `json:"age" validate:"min=18,max=120"`
//	}
//
//	chain := resolver.NewChain(resolver.NewStructResolver())
//	eng := engine.New(chain)
//
//	errs, err := eng.Validate(ctx, &customer)
//	if err != nil {
//		// rule fault or cancellation, not invalid input
//	}
//	if !errs.IsEmpty() {
//		// errs maps "email" -> ["must be a valid email address"], ...
//	}
//
// The root package holds only the shared vocabulary: the ValidationError map,
// the Rule capability contract, and the SelfValidator hook. The engine lives
// in the engine subpackage, descriptor providers in resolver, and the
// built-in rule catalog in rules.
package validkit
