package delivery

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresProvider struct {
	db *pgxpool.Pool
}

func NewPostgresProvider(db *pgxpool.Pool) *PostgresProvider {
	return &PostgresProvider{db: db}
}

// --------------------------------------------------
// ZONE LOOKUP (longest matching postcode prefix wins)
// --------------------------------------------------
func (p *PostgresProvider) Quote(
	ctx context.Context,
	postcode string,
	subtotalMinorUnits int,
) (*Quote, error) {

	normalized := NormalizePostcode(postcode)

	rows, err := p.db.Query(ctx, `
		SELECT postcode_prefix, fee, min_order
		FROM delivery_zones
		ORDER BY length(postcode_prefix) DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			prefix   string
			fee      int
			minOrder int
		)
		if err := rows.Scan(&prefix, &fee, &minOrder); err != nil {
			return nil, err
		}

		if strings.HasPrefix(normalized, NormalizePostcode(prefix)) {
			return &Quote{
				Postcode:           normalized,
				IsDeliverable:      true,
				FeeMinorUnits:      fee,
				MinOrderMinorUnits: minOrder,
			}, nil
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &Quote{
		Postcode:      normalized,
		IsDeliverable: false,
		Reason:        "outside delivery area",
	}, nil
}
