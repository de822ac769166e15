package auth

// Customer is the domain entity behind a returning-customer login.
// Password holds the bcrypt hash, never plain text.
type Customer struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Postcode  string
	Address   string
	Password  string
}

// Profile is the credential-free view handed to checkout to
// pre-populate the returning account state.
type Profile struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Postcode  string `json:"postcode"`
	Address   string `json:"address"`
}

func (c *Customer) Profile() *Profile {
	return &Profile{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Postcode:  c.Postcode,
		Address:   c.Address,
	}
}
