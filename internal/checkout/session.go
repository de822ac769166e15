package checkout

import (
	"sync"
	"time"

	"tiffin/internal/auth"
	"tiffin/internal/cart"
	"tiffin/internal/delivery"
	"tiffin/internal/pricing"
	"tiffin/internal/schedule"
)

// Session is one customer's checkout flow: a cart, the fulfilment
// mode and slot, and the three account states. One logical writer (the
// interactive customer) per session; the lock only guards against the
// HTTP layer delivering that writer's requests on different
// goroutines.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu            sync.Mutex
	ledger        *cart.Ledger
	mode          schedule.Mode
	slot          string
	active        AccountType
	states        map[AccountType]*accountState
	profile       *auth.Profile
	termsAccepted bool
}

func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		CreatedAt: time.Now(),
		ledger:    cart.NewLedger(),
		mode:      schedule.ModeCollection,
		slot:      schedule.AsapLabel,
		active:    AccountGuest,
		states: map[AccountType]*accountState{
			AccountGuest:     newAccountState(),
			AccountReturning: newAccountState(),
			AccountNew:       newAccountState(),
		},
	}
}

// Authenticate binds a customer profile, prefills the returning state
// and makes it active.
func (s *Session) Authenticate(p *auth.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = p
	s.active = AccountReturning

	state := s.states[AccountReturning]
	state.Contact.FirstName = p.FirstName
	state.Contact.LastName = p.LastName
	state.Contact.Email = p.Email
	state.Contact.Phone = p.Phone
	if state.Contact.Postcode == "" {
		state.Contact.Postcode = p.Postcode
	}
	if state.Contact.Address == "" {
		state.Contact.Address = p.Address
	}
}

// SetAccountType switches the active state. An authenticated identity
// is never silently discarded: switching into guest or new while
// signed in fails.
func (s *Session) SetAccountType(t AccountType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.states[t]; !ok {
		return &ValidationError{Fields: map[string]string{"account_type": "unknown account type"}}
	}

	if s.profile != nil && t != AccountReturning {
		return &StateTransitionError{From: s.active, To: t}
	}

	s.active = t
	return nil
}

func (s *Session) ActiveType() AccountType {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *Session) Profile() *auth.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// UpdateContact replaces the active state's contact details. Changing
// the postcode invalidates that state's delivery quote; the customer
// must check deliverability again.
func (s *Session) UpdateContact(details ContactDetails) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.states[s.active]
	oldPostcode := delivery.NormalizePostcode(state.Contact.Postcode)
	newPostcode := delivery.NormalizePostcode(details.Postcode)

	state.Contact = details
	if oldPostcode != newPostcode {
		state.Quote = nil
	}
}

// Contact returns a copy of one state's contact details.
func (s *Session) Contact(t AccountType) ContactDetails {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[t].Contact
}

// QuoteRequest snapshots the active state and its postcode for an
// outgoing quote lookup. The postcode is the staleness tag: a response
// only applies while the state's postcode still matches it.
func (s *Session) QuoteRequest() (AccountType, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active, delivery.NormalizePostcode(s.states[s.active].Contact.Postcode)
}

// ApplyQuote stores a resolved quote on the tagged state unless the
// postcode has changed since the request was issued (last write wins,
// stale responses are dropped). Reports whether the quote was kept.
func (s *Session) ApplyQuote(t AccountType, postcodeTag string, q *delivery.Quote) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.states[t]
	if delivery.NormalizePostcode(state.Contact.Postcode) != postcodeTag {
		return false
	}

	state.Quote = q
	return true
}

// Quote returns one state's current quote (may be nil).
func (s *Session) Quote(t AccountType) *delivery.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[t].Quote
}

// --------------------------------------------------
// Cart operations
// --------------------------------------------------

func (s *Session) AddLineItem(li pricing.LineItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Add(li)
}

func (s *Session) RemoveLineItem(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Remove(index)
}

func (s *Session) SetQuantity(index, qty int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.SetQuantity(index, qty)
}

func (s *Session) CartItems() []pricing.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Items()
}

func (s *Session) Subtotal() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Subtotal()
}

// --------------------------------------------------
// Fulfilment mode and slot
// --------------------------------------------------

func (s *Session) SetMode(mode schedule.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
	s.ledger.SetMode(string(mode))
}

func (s *Session) Mode() schedule.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Session) SetSlot(label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slot = label
}

func (s *Session) Slot() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slot
}

// SnapSlot reverts the chosen slot to the list head when it is no
// longer offered. Called after every mode or schedule change.
func (s *Session) SnapSlot(available []schedule.Slot) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slot = schedule.Snap(available, s.slot)
	return s.slot
}

func (s *Session) AcceptTerms(accepted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.termsAccepted = accepted
}

// ResetAfterSubmission empties the cart once an order is placed. The
// account states stay: the customer may order again.
func (s *Session) ResetAfterSubmission() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ledger.Clear()
	s.slot = schedule.AsapLabel
	s.termsAccepted = false
}
