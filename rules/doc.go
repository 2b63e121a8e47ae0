// Package rules provides the built-in catalog of validation rules and the
// factory registry that turns rule expressions (from struct tags or YAML
// schemas) into validkit.Rule values.
//
// Each source file groups a family of rules for a specific domain
// (`string_rules.go`, `numeric_rules.go`, `format_rules.go`). Every exported
// constructor returns a stateless validkit.Rule; there is no hidden global
// state beyond the lazily created go-playground validator used by Tag, so
// the package is goroutine-safe.
//
// # Usage
//
//	prop.Rules = []validkit.Rule{
//		rules.MaxLen(5),
//		rules.Email(),
//		rules.Range(18, 120),
//	}
//
// Rule expressions use a `name` or `name=param` form and are resolved
// through a Registry:
//
//	rule, err := rules.DefaultRegistry().Build("maxlen=5")
//
// Custom checks can be registered on a Registry, adapted from a plain
// function via validkit.RuleFunc, or expressed as go-playground/validator
// tag expressions via Tag.
package rules
