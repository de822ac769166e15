package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
)

type Service struct {
	repo CustomerRepository
}

func NewService(repo CustomerRepository) *Service {
	return &Service{repo: repo}
}

// Registration is the customer data needed to open an account.
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Postcode  string
	Address   string
	Password  string
}

// REGISTER
func (s *Service) Register(reg Registration) (*Customer, error) {
	if reg.FirstName == "" || reg.Email == "" || reg.Password == "" {
		return nil, errors.New("missing required fields")
	}

	exists, _ := s.repo.ExistsByEmail(reg.Email)
	if exists {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword(
		[]byte(reg.Password),
		bcrypt.DefaultCost,
	)
	if err != nil {
		return nil, err
	}

	customer := &Customer{
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Email:     reg.Email,
		Phone:     reg.Phone,
		Postcode:  reg.Postcode,
		Address:   reg.Address,
		Password:  string(hashedPassword),
	}

	if err := s.repo.Save(customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// LOGIN
func (s *Service) Login(email, password string) (*Customer, error) {
	customer, err := s.repo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	err = bcrypt.CompareHashAndPassword(
		[]byte(customer.Password),
		[]byte(password),
	)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return customer, nil
}

// PROFILE (returning-checkout prefill)
func (s *Service) ProfileByID(id string) (*Profile, error) {
	customer, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return customer.Profile(), nil
}
