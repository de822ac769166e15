package order

import "context"

// Submission persists an assembled order and returns its id.
type Submission interface {
	Submit(ctx context.Context, payload *Payload) (orderID string, err error)
}
