package checkout

import (
	"fmt"
	"regexp"

	"tiffin/internal/order"
	"tiffin/internal/schedule"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// BuildOrderPayload validates the active account state and assembles
// the submission payload. Field failures return *ValidationError and
// are also recorded on the state; a missing or undeliverable quote in
// delivery mode returns ErrDeliveryNotConfirmed. The session is left
// untouched on every failure path.
func (s *Session) BuildOrderPayload(paymentMethod, notes string) (*order.Payload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.states[s.active]
	isDelivery := s.mode == schedule.ModeDelivery

	fields := make(map[string]string)

	if s.ledger.Len() == 0 {
		fields["cart"] = "cart is empty"
	}
	if !s.termsAccepted {
		fields["terms"] = "terms must be accepted"
	}
	if paymentMethod == "" {
		fields["payment_method"] = "payment method is required"
	}

	validateContact(s.active, s.profile != nil, state.Contact, isDelivery, fields)

	if len(fields) > 0 {
		state.Errors = fields
		return nil, &ValidationError{Fields: fields}
	}

	deliveryFee := 0
	if isDelivery {
		quote := state.Quote
		if quote == nil || !quote.IsDeliverable {
			return nil, ErrDeliveryNotConfirmed
		}
		if quote.MinOrderMinorUnits > 0 && s.ledger.Subtotal() < quote.MinOrderMinorUnits {
			fields["subtotal"] = fmt.Sprintf(
				"order is below the %d minimum for this postcode",
				quote.MinOrderMinorUnits,
			)
			state.Errors = fields
			return nil, &ValidationError{Fields: fields}
		}
		deliveryFee = quote.FeeMinorUnits
	}

	state.Errors = make(map[string]string)

	customerID := ""
	if s.active == AccountReturning && s.profile != nil {
		customerID = s.profile.ID
	}

	subtotal := s.ledger.Subtotal()
	return &order.Payload{
		Mode:          string(s.mode),
		Slot:          s.slot,
		LineItems:     s.ledger.Items(),
		Subtotal:      subtotal,
		DeliveryFee:   deliveryFee,
		Total:         s.ledger.Total(deliveryFee),
		PaymentMethod: paymentMethod,
		Notes:         notes,
		AccountType:   string(s.active),
		CustomerID:    customerID,
		Contact: order.Contact{
			FirstName: state.Contact.FirstName,
			LastName:  state.Contact.LastName,
			Email:     state.Contact.Email,
			Phone:     state.Contact.Phone,
			Postcode:  state.Contact.Postcode,
			Address:   state.Contact.Address,
		},
	}, nil
}

func validateContact(
	t AccountType,
	authenticated bool,
	contact ContactDetails,
	isDelivery bool,
	fields map[string]string,
) {
	requireDeliveryFields := func() {
		if contact.Postcode == "" {
			fields["postcode"] = "postcode is required for delivery"
		}
		if contact.Address == "" {
			fields["address"] = "address is required for delivery"
		}
	}

	switch t {
	case AccountGuest:
		if contact.FirstName == "" {
			fields["first_name"] = "first name is required"
		}
		if !emailPattern.MatchString(contact.Email) {
			fields["email"] = "a valid email is required"
		}
		if contact.Phone == "" {
			fields["phone"] = "phone is required"
		}
		if isDelivery {
			requireDeliveryFields()
		}

	case AccountReturning:
		if !authenticated {
			fields["account"] = "sign in to use a returning account"
		}
		if isDelivery {
			requireDeliveryFields()
		}

	case AccountNew:
		if contact.FirstName == "" {
			fields["first_name"] = "first name is required"
		}
		if contact.LastName == "" {
			fields["last_name"] = "last name is required"
		}
		if !emailPattern.MatchString(contact.Email) {
			fields["email"] = "a valid email is required"
		}
		if contact.Phone == "" {
			fields["phone"] = "phone is required"
		}
		if contact.Postcode == "" {
			fields["postcode"] = "postcode is required"
		}
		if contact.Address == "" {
			fields["address"] = "address is required"
		}
		if len(contact.Password) < minPasswordLength {
			fields["password"] = fmt.Sprintf("password must be at least %d characters", minPasswordLength)
		} else if contact.Password != contact.ConfirmPassword {
			fields["confirm_password"] = "passwords do not match"
		}
	}
}
