package checkout

import (
	"errors"
	"fmt"
)

// ValidationError carries per-field messages for the active account
// state. Recoverable; the caller surfaces each field to the user.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %d field(s)", len(e.Fields))
}

// StateTransitionError marks a disallowed account-type switch.
type StateTransitionError struct {
	From AccountType
	To   AccountType
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("cannot switch from %s to %s while signed in", e.From, e.To)
}

// ErrDeliveryNotConfirmed blocks submission until the active state has
// a deliverable quote.
var ErrDeliveryNotConfirmed = errors.New("delivery not confirmed for this postcode")

// ProviderError wraps a quote or submission failure from an external
// collaborator. Retry is the caller's decision, never automatic.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
