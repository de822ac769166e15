package checkout

import "tiffin/internal/delivery"

// AccountType tags the three checkout paths.
type AccountType string

const (
	AccountGuest     AccountType = "guest"
	AccountReturning AccountType = "returning"
	AccountNew       AccountType = "new"
)

func ParseAccountType(s string) (AccountType, bool) {
	switch AccountType(s) {
	case AccountGuest, AccountReturning, AccountNew:
		return AccountType(s), true
	}
	return "", false
}

// ContactDetails is one account state's form data. Password fields are
// only meaningful on the new-account path.
type ContactDetails struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Postcode        string `json:"postcode"`
	Address         string `json:"address"`
	Password        string `json:"password,omitempty"`
	ConfirmPassword string `json:"confirm_password,omitempty"`
}

// accountState is the per-type triple of contact data, delivery quote
// and validation errors. Each of the three account types owns one
// independently, so switching between them never loses input.
type accountState struct {
	Contact ContactDetails
	Quote   *delivery.Quote
	Errors  map[string]string
}

func newAccountState() *accountState {
	return &accountState{Errors: make(map[string]string)}
}
