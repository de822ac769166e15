package order

import "tiffin/internal/pricing"

// Contact is the customer data submitted with an order. Which fields
// are required depends on the checkout account type; by the time a
// payload reaches this package it is already validated.
type Contact struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Postcode  string `json:"postcode,omitempty"`
	Address   string `json:"address,omitempty"`
}

// Payload is the fully assembled order submission.
type Payload struct {
	Mode          string             `json:"mode"`
	Slot          string             `json:"slot"`
	LineItems     []pricing.LineItem `json:"line_items"`
	Subtotal      int                `json:"subtotal"`
	DeliveryFee   int                `json:"delivery_fee"`
	Total         int                `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	Notes         string             `json:"notes,omitempty"`
	AccountType   string             `json:"account_type"`
	CustomerID    string             `json:"customer_id,omitempty"`
	Contact       Contact            `json:"contact"`
}
