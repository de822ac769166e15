package order

import (
	"context"
	"fmt"
	"log"
)

// Archiver stores a JSON receipt of a submitted order. Optional;
// archival failure never fails the order.
type Archiver interface {
	PutJSON(ctx context.Context, key string, v interface{}) error
}

type Service struct {
	repo    Submission
	archive Archiver
}

// NewService accepts a nil archiver when receipt storage is not
// configured.
func NewService(repo Submission, archive Archiver) *Service {
	return &Service{repo: repo, archive: archive}
}

// Submit persists the order and, best effort, archives a receipt.
func (s *Service) Submit(ctx context.Context, payload *Payload) (string, error) {
	orderID, err := s.repo.Submit(ctx, payload)
	if err != nil {
		return "", err
	}

	if s.archive != nil {
		key := fmt.Sprintf("receipts/%s.json", orderID)
		if err := s.archive.PutJSON(ctx, key, payload); err != nil {
			log.Printf("order %s: receipt archive failed: %v", orderID, err)
		}
	}

	return orderID, nil
}
