package checkout

import (
	"errors"
	"testing"

	"tiffin/internal/delivery"
	"tiffin/internal/menu"
	"tiffin/internal/pricing"
	"tiffin/internal/schedule"
)

func sessionWithItem(t *testing.T) *Session {
	t.Helper()

	item := &menu.Item{ID: "dal-1", Name: "Dal Tadka", BasePrice: 700}
	li, err := pricing.BuildLineItem(item, pricing.NewSelection(), 2)
	if err != nil {
		t.Fatalf("build line item: %v", err)
	}

	s := NewSession("s1")
	s.AddLineItem(li)
	s.AcceptTerms(true)
	return s
}

func validGuestContact() ContactDetails {
	return ContactDetails{
		FirstName: "Sam",
		Email:     "sam@example.com",
		Phone:     "07700900123",
		Postcode:  "LS1 4DY",
		Address:   "2 Mill Lane",
	}
}

func confirmDelivery(t *testing.T, s *Session, fee, minOrder int) {
	t.Helper()
	accountType, tag := s.QuoteRequest()
	ok := s.ApplyQuote(accountType, tag, &delivery.Quote{
		Postcode:           tag,
		IsDeliverable:      true,
		FeeMinorUnits:      fee,
		MinOrderMinorUnits: minOrder,
	})
	if !ok {
		t.Fatal("quote should apply")
	}
}

func fieldError(t *testing.T, err error, field string) {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := ve.Fields[field]; !ok {
		t.Fatalf("expected field %q in %v", field, ve.Fields)
	}
}

func TestGuestCollectionPayload(t *testing.T) {
	s := sessionWithItem(t)
	s.UpdateContact(validGuestContact())
	s.SetSlot("12:15 PM")

	payload, err := s.BuildOrderPayload("card", "no cutlery")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if payload.Subtotal != 1400 || payload.Total != 1400 || payload.DeliveryFee != 0 {
		t.Fatalf("wrong totals: %+v", payload)
	}
	if payload.Mode != "collection" || payload.Slot != "12:15 PM" {
		t.Fatalf("wrong fulfilment: %+v", payload)
	}
	if payload.AccountType != "guest" || payload.Contact.FirstName != "Sam" {
		t.Fatalf("wrong account data: %+v", payload)
	}
}

func TestGuestDeliveryRequiresPostcode(t *testing.T) {
	s := sessionWithItem(t)
	contact := validGuestContact()
	contact.Postcode = ""
	s.UpdateContact(contact)
	s.SetMode(schedule.ModeDelivery)

	_, err := s.BuildOrderPayload("card", "")
	fieldError(t, err, "postcode")
}

func TestGuestInvalidEmailRejected(t *testing.T) {
	s := sessionWithItem(t)
	contact := validGuestContact()
	contact.Email = "not-an-email"
	s.UpdateContact(contact)

	_, err := s.BuildOrderPayload("card", "")
	fieldError(t, err, "email")
}

func TestDeliveryBlockedWithoutConfirmedQuote(t *testing.T) {
	s := sessionWithItem(t)
	s.UpdateContact(validGuestContact())
	s.SetMode(schedule.ModeDelivery)

	_, err := s.BuildOrderPayload("card", "")
	if !errors.Is(err, ErrDeliveryNotConfirmed) {
		t.Fatalf("expected ErrDeliveryNotConfirmed, got %v", err)
	}
}

func TestDeliveryBlockedByUndeliverableQuote(t *testing.T) {
	s := sessionWithItem(t)
	s.UpdateContact(validGuestContact())
	s.SetMode(schedule.ModeDelivery)

	accountType, tag := s.QuoteRequest()
	s.ApplyQuote(accountType, tag, &delivery.Quote{
		Postcode: tag,
		Reason:   "outside delivery area",
	})

	_, err := s.BuildOrderPayload("card", "")
	if !errors.Is(err, ErrDeliveryNotConfirmed) {
		t.Fatalf("expected ErrDeliveryNotConfirmed, got %v", err)
	}
}

func TestDeliveryPayloadCarriesFee(t *testing.T) {
	s := sessionWithItem(t)
	s.UpdateContact(validGuestContact())
	s.SetMode(schedule.ModeDelivery)
	confirmDelivery(t, s, 250, 0)

	payload, err := s.BuildOrderPayload("cash", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.DeliveryFee != 250 || payload.Total != 1650 {
		t.Fatalf("wrong totals: %+v", payload)
	}
}

func TestDeliveryBelowMinimumOrderRejected(t *testing.T) {
	s := sessionWithItem(t) // subtotal 1400
	s.UpdateContact(validGuestContact())
	s.SetMode(schedule.ModeDelivery)
	confirmDelivery(t, s, 250, 2000)

	_, err := s.BuildOrderPayload("card", "")
	fieldError(t, err, "subtotal")
}

func TestReturningRequiresAuthentication(t *testing.T) {
	s := sessionWithItem(t)
	if err := s.SetAccountType(AccountReturning); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := s.BuildOrderPayload("card", "")
	fieldError(t, err, "account")
}

func TestReturningCollectionNeedsNoDeliveryFields(t *testing.T) {
	s := sessionWithItem(t)
	s.Authenticate(testProfile())

	payload, err := s.BuildOrderPayload("card", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.CustomerID != "cust-1" || payload.AccountType != "returning" {
		t.Fatalf("wrong account attribution: %+v", payload)
	}
}

func TestNewAccountPasswordRules(t *testing.T) {
	s := sessionWithItem(t)
	if err := s.SetAccountType(AccountNew); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	contact := validGuestContact()
	contact.LastName = "Mistry"
	contact.Password = "abc"
	contact.ConfirmPassword = "abc"
	s.UpdateContact(contact)

	_, err := s.BuildOrderPayload("card", "")
	fieldError(t, err, "password")

	contact.Password = "abcdef"
	contact.ConfirmPassword = "abcdeg"
	s.UpdateContact(contact)

	_, err = s.BuildOrderPayload("card", "")
	fieldError(t, err, "confirm_password")

	contact.ConfirmPassword = "abcdef"
	s.UpdateContact(contact)

	if _, err := s.BuildOrderPayload("card", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTermsMustBeAccepted(t *testing.T) {
	s := sessionWithItem(t)
	s.UpdateContact(validGuestContact())
	s.AcceptTerms(false)

	_, err := s.BuildOrderPayload("card", "")
	fieldError(t, err, "terms")
}

func TestEmptyCartRejected(t *testing.T) {
	s := NewSession("s1")
	s.AcceptTerms(true)
	s.UpdateContact(validGuestContact())

	_, err := s.BuildOrderPayload("card", "")
	fieldError(t, err, "cart")
}

func TestFailedValidationLeavesStateIntact(t *testing.T) {
	s := sessionWithItem(t)
	contact := validGuestContact()
	contact.Email = ""
	s.UpdateContact(contact)

	if _, err := s.BuildOrderPayload("card", ""); err == nil {
		t.Fatal("expected validation failure")
	}

	if len(s.CartItems()) != 1 {
		t.Fatal("cart should survive a failed submission")
	}
	if s.Contact(AccountGuest).FirstName != "Sam" {
		t.Fatal("contact should survive a failed submission")
	}
}
