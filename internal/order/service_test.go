package order

import (
	"context"
	"errors"
	"testing"
)

type failingArchiver struct {
	calls int
}

func (f *failingArchiver) PutJSON(ctx context.Context, key string, v interface{}) error {
	f.calls++
	return errors.New("bucket unavailable")
}

func testPayload() *Payload {
	return &Payload{
		Mode:          "collection",
		Slot:          "ASAP",
		Subtotal:      1400,
		Total:         1400,
		PaymentMethod: "card",
		AccountType:   "guest",
		Contact:       Contact{FirstName: "Sam", Email: "sam@example.com", Phone: "07700900123"},
	}
}

func TestSubmitPersistsAndReturnsID(t *testing.T) {
	repo := NewInMemoryRepository()
	service := NewService(repo, nil)

	orderID, err := service.Submit(context.Background(), testPayload())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderID == "" {
		t.Fatal("expected an order id")
	}
	if _, ok := repo.Orders[orderID]; !ok {
		t.Fatal("order not persisted")
	}
}

func TestArchiveFailureDoesNotFailOrder(t *testing.T) {
	repo := NewInMemoryRepository()
	archiver := &failingArchiver{}
	service := NewService(repo, archiver)

	orderID, err := service.Submit(context.Background(), testPayload())
	if err != nil {
		t.Fatalf("archival failure must not fail the order: %v", err)
	}
	if orderID == "" {
		t.Fatal("expected an order id")
	}
	if archiver.calls != 1 {
		t.Fatalf("expected one archive attempt, got %d", archiver.calls)
	}
}

func TestRepositoryFailurePropagates(t *testing.T) {
	repo := NewInMemoryRepository()
	repo.Err = errors.New("connection refused")
	service := NewService(repo, nil)

	if _, err := service.Submit(context.Background(), testPayload()); err == nil {
		t.Fatal("expected persistence error to propagate")
	}
}
