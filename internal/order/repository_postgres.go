package order

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// SUBMIT ORDER (order + lines in one transaction)
// --------------------------------------------------
func (r *PostgresRepository) Submit(ctx context.Context, p *Payload) (string, error) {
	orderID := uuid.New().String()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (
			id, mode, slot, subtotal, delivery_fee, total,
			payment_method, notes, account_type, customer_id,
			first_name, last_name, email, phone, postcode, address,
			created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, now())
	`,
		orderID, p.Mode, p.Slot, p.Subtotal, p.DeliveryFee, p.Total,
		p.PaymentMethod, p.Notes, p.AccountType, nullable(p.CustomerID),
		p.Contact.FirstName, p.Contact.LastName, p.Contact.Email,
		p.Contact.Phone, p.Contact.Postcode, p.Contact.Address,
	)
	if err != nil {
		return "", err
	}

	for _, li := range p.LineItems {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (
				order_id, item_id, item_name,
				unit_price, quantity, summary
			)
			VALUES ($1, $2, $3, $4, $5, $6)
		`,
			orderID, li.ItemID, li.ItemName,
			li.UnitPrice, li.Quantity, strings.Join(li.Summary, "; "),
		)
		if err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}

	return orderID, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
