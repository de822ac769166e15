package auth

import (
	"os"
	"testing"

	"github.com/google/uuid"
)

func TestJWTFlow(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-key-12345")

	customerID := uuid.New().String()
	email := "test@example.com"

	token, err := GenerateToken(customerID, email)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	extractedID, extractedEmail, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if extractedID != customerID {
		t.Fatalf("Expected customerID %s, got %s", customerID, extractedID)
	}
	if extractedEmail != email {
		t.Fatalf("Expected email %s, got %s", email, extractedEmail)
	}
}

func TestGenerateTokenRequiresCustomerID(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-key-12345")

	if _, err := GenerateToken("", "test@example.com"); err == nil {
		t.Fatal("expected error for empty customerID")
	}
}

func TestValidateRejectsGarbageToken(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret-key-12345")

	if _, _, err := ValidateToken("not-a-token"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
