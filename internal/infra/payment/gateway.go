package payment

import (
	"context"
	"errors"
	"fmt"
)

// Intent is the gateway-side object representing an attempted charge.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
}

const StatusSucceeded = "succeeded"

// Gateway wraps the third-party payment-intent API. A nil Gateway in the
// services means the credential is absent and checkout runs offline.
type Gateway interface {
	CreateIntent(ctx context.Context, amountMinorUnits int64, currency string, metadata map[string]string) (*Intent, error)
	RetrieveIntent(ctx context.Context, id string) (*Intent, error)
}

// AuthError marks a credential/configuration fault. Checkout absorbs it so
// misconfigured environments still produce pending orders.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string { return fmt.Sprintf("gateway authentication: %v", e.Err) }
func (e *AuthError) Unwrap() error { return e.Err }

func IsAuthError(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}
