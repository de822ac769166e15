package menu

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// FULL CATALOG SNAPSHOT
// --------------------------------------------------
func (r *PostgresRepository) GetCatalog(ctx context.Context) (*Catalog, error) {
	catalog := &Catalog{}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, sort_order
		FROM categories
		ORDER BY sort_order
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.SortOrder); err != nil {
			return nil, err
		}
		catalog.Categories = append(catalog.Categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	itemRows, err := r.db.Query(ctx, `
		SELECT id, category_id, name, description, base_price
		FROM menu_items
		ORDER BY category_id, sort_order
	`)
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item Item
		if err := itemRows.Scan(
			&item.ID, &item.CategoryID, &item.Name,
			&item.Description, &item.BasePrice,
		); err != nil {
			return nil, err
		}
		catalog.Items = append(catalog.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	for i := range catalog.Items {
		options, err := r.loadOptions(ctx, catalog.Items[i].ID)
		if err != nil {
			return nil, err
		}
		catalog.Items[i].Options = options
	}

	return catalog, nil
}

// --------------------------------------------------
// SINGLE ITEM (checkout add-to-cart path)
// --------------------------------------------------
func (r *PostgresRepository) GetItem(ctx context.Context, itemID string) (*Item, error) {
	item := &Item{}

	err := r.db.QueryRow(ctx, `
		SELECT id, category_id, name, description, base_price
		FROM menu_items
		WHERE id = $1
	`, itemID).Scan(
		&item.ID, &item.CategoryID, &item.Name,
		&item.Description, &item.BasePrice,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("menu item not found")
		}
		return nil, err
	}

	options, err := r.loadOptions(ctx, itemID)
	if err != nil {
		return nil, err
	}
	item.Options = options

	return item, nil
}

func (r *PostgresRepository) loadOptions(ctx context.Context, itemID string) ([]Option, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, selection_type, required,
		       depends_on_option_id, depends_on_choice_id
		FROM item_options
		WHERE item_id = $1
		ORDER BY sort_order
	`, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var options []Option
	for rows.Next() {
		var (
			opt             Option
			dependsOnOption *string
			dependsOnChoice *string
		)
		if err := rows.Scan(
			&opt.ID, &opt.Name, &opt.Type, &opt.Required,
			&dependsOnOption, &dependsOnChoice,
		); err != nil {
			return nil, err
		}
		if dependsOnOption != nil && dependsOnChoice != nil {
			opt.Condition = &ConditionalRule{
				DependsOnOptionID: *dependsOnOption,
				DependsOnChoiceID: *dependsOnChoice,
			}
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range options {
		choiceRows, err := r.db.Query(ctx, `
			SELECT id, name, price_delta
			FROM option_choices
			WHERE option_id = $1
			ORDER BY sort_order
		`, options[i].ID)
		if err != nil {
			return nil, err
		}

		for choiceRows.Next() {
			var ch Choice
			if err := choiceRows.Scan(&ch.ID, &ch.Name, &ch.PriceDelta); err != nil {
				choiceRows.Close()
				return nil, err
			}
			options[i].Choices = append(options[i].Choices, ch)
		}
		if err := choiceRows.Err(); err != nil {
			choiceRows.Close()
			return nil, err
		}
		choiceRows.Close()
	}

	return options, nil
}
