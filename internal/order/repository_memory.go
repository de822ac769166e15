package order

import (
	"context"

	"github.com/google/uuid"
)

type InMemoryRepository struct {
	Orders map[string]*Payload
	Err    error
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{Orders: make(map[string]*Payload)}
}

func (r *InMemoryRepository) Submit(ctx context.Context, p *Payload) (string, error) {
	if r.Err != nil {
		return "", r.Err
	}
	orderID := uuid.New().String()
	r.Orders[orderID] = p
	return orderID, nil
}
