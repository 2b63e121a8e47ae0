package validkit

import "context"

// Rule is the capability contract for a single validation check.
//
// Validate inspects a value and returns a non-empty message when the value
// fails the check. A failure is data, not a fault: it ends up in the
// ValidationError map under the field's path. A non-nil error signals that
// the rule itself could not run (broken configuration, failed dependency);
// the engine aborts the whole validation call and propagates it.
//
// Rules must be stateless or configuration-only and safe for concurrent
// use. Long-running checks (e.g. an external lookup) should honor ctx.
type Rule interface {
	Validate(ctx context.Context, value any) (msg string, err error)
}

// RuleFunc adapts a plain function to the Rule interface.
type RuleFunc func(ctx context.Context, value any) (string, error)

// Validate implements Rule.
func (f RuleFunc) Validate(ctx context.Context, value any) (string, error) {
	return f(ctx, value)
}

// MemberError is a single cross-field failure reported by a SelfValidator.
// Members names the affected members of the validated object; when empty,
// the failure is attributed to the object itself.
type MemberError struct {
	Members []string
	Message string
}

// SelfValidator lets a type run its own cross-field checks after all of its
// members have been validated. Returned MemberErrors are appended to the
// error map without replacing member-level failures for the same paths.
// A non-nil error is treated as a fault and aborts the validation call.
type SelfValidator interface {
	ValidateSelf(ctx context.Context) ([]MemberError, error)
}
