package delivery

import "context"

// QuoteProvider answers whether the store delivers to a postcode and
// at what fee. Invoked only on explicit user action, never per
// keystroke.
type QuoteProvider interface {
	Quote(ctx context.Context, postcode string, subtotalMinorUnits int) (*Quote, error)
}
