package rules

import (
	"context"
	"errors"
	"fmt"
	"sync"

	playground "github.com/go-playground/validator/v10"

	"github.com/dmitrymomot/validkit"
)

var (
	playgroundOnce sync.Once
	playgroundVal  *playground.Validate
)

func playgroundValidator() *playground.Validate {
	playgroundOnce.Do(func() {
		playgroundVal = playground.New(playground.WithRequiredStructEnabled())
	})
	return playgroundVal
}

// Tag adapts a go-playground/validator tag expression to the Rule contract,
// giving access to its full catalog (uuid4, url, ip, iso8601, ...) without
// re-implementing it here.
//
// A failing check yields a field message; a tag that cannot be evaluated at
// all (unknown tag, type mismatch) is reported as a fault since it points
// at broken configuration rather than invalid input.
func Tag(tag string) validkit.Rule {
	return validkit.RuleFunc(func(ctx context.Context, value any) (msg string, err error) {
		defer func() {
			// The playground validator panics on unregistered tags.
			if r := recover(); r != nil {
				msg = ""
				err = fmt.Errorf("playground tag %q: %v", tag, r)
			}
		}()

		vErr := playgroundValidator().VarCtx(ctx, value, tag)
		if vErr == nil {
			return "", nil
		}

		var fieldErrs playground.ValidationErrors
		if errors.As(vErr, &fieldErrs) && len(fieldErrs) > 0 {
			return fmt.Sprintf("failed %q validation", fieldErrs[0].Tag()), nil
		}
		return "", fmt.Errorf("playground tag %q: %w", tag, vErr)
	})
}
