package rules

import (
	"context"
	"fmt"
	"net/mail"
	"regexp"
	"slices"
	"strings"

	"github.com/dmitrymomot/validkit"
)

// Email validates that a string is a plausible email address for typical
// web use: RFC 5322 parseable, with a dotted domain.
func Email() validkit.Rule {
	return validkit.RuleFunc(func(_ context.Context, value any) (string, error) {
		s, ok := stringOf(value)
		if !ok {
			return "", nil
		}
		if !isEmail(s) {
			return "must be a valid email address", nil
		}
		return "", nil
	})
}

// Pattern validates that a string matches the given regular expression.
// The expression is compiled eagerly; an invalid expression is a
// configuration mistake and panics at construction time.
func Pattern(expr string) validkit.Rule {
	re := regexp.MustCompile(expr)
	return validkit.RuleFunc(func(_ context.Context, value any) (string, error) {
		s, ok := stringOf(value)
		if !ok {
			return "", nil
		}
		if !re.MatchString(s) {
			return fmt.Sprintf("must match pattern %q", expr), nil
		}
		return "", nil
	})
}

// OneOf validates that a string equals one of the allowed values.
func OneOf(allowed ...string) validkit.Rule {
	return validkit.RuleFunc(func(_ context.Context, value any) (string, error) {
		s, ok := stringOf(value)
		if !ok {
			return "", nil
		}
		if !slices.Contains(allowed, s) {
			return fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")), nil
		}
		return "", nil
	})
}

func isEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}

	addr, err := mail.ParseAddress(value)
	if err != nil {
		return false
	}

	parts := strings.Split(addr.Address, "@")
	if len(parts) != 2 || parts[0] == "" {
		return false
	}

	// Domain must contain at least one dot and cannot start/end with one.
	domain := parts[1]
	return strings.Contains(domain, ".") &&
		!strings.HasPrefix(domain, ".") &&
		!strings.HasSuffix(domain, ".")
}

func stringOf(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	case fmt.Stringer:
		return v.String(), true
	}
	return "", false
}
