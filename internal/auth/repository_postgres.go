package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresCustomerRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCustomerRepository(db *pgxpool.Pool) *PostgresCustomerRepository {
	return &PostgresCustomerRepository{db: db}
}

func (r *PostgresCustomerRepository) Save(customer *Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}

	query := `
		INSERT INTO customers (id, first_name, last_name, email, phone, postcode, address, password)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(context.Background(), query,
		customer.ID, customer.FirstName, customer.LastName, customer.Email,
		customer.Phone, customer.Postcode, customer.Address, customer.Password,
	)
	return err
}

func (r *PostgresCustomerRepository) ExistsByEmail(email string) (bool, error) {
	query := `SELECT 1 FROM customers WHERE email=$1 LIMIT 1`
	row := r.db.QueryRow(context.Background(), query, email)

	var exists int
	if err := row.Scan(&exists); err != nil {
		return false, nil
	}
	return true, nil
}

func (r *PostgresCustomerRepository) FindByEmail(email string) (*Customer, error) {
	return r.findOne(`
		SELECT id, first_name, last_name, email, phone, postcode, address, password
		FROM customers WHERE email=$1
	`, email)
}

func (r *PostgresCustomerRepository) FindByID(id string) (*Customer, error) {
	return r.findOne(`
		SELECT id, first_name, last_name, email, phone, postcode, address, password
		FROM customers WHERE id=$1
	`, id)
}

func (r *PostgresCustomerRepository) findOne(query, arg string) (*Customer, error) {
	row := r.db.QueryRow(context.Background(), query, arg)

	customer := &Customer{}
	if err := row.Scan(
		&customer.ID, &customer.FirstName, &customer.LastName, &customer.Email,
		&customer.Phone, &customer.Postcode, &customer.Address, &customer.Password,
	); err != nil {
		return nil, errors.New("customer not found")
	}
	return customer, nil
}
