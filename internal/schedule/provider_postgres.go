package schedule

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresProvider struct {
	db  *pgxpool.Pool
	loc *time.Location
}

func NewPostgresProvider(db *pgxpool.Pool, loc *time.Location) *PostgresProvider {
	return &PostgresProvider{db: db, loc: loc}
}

// --------------------------------------------------
// TODAY'S OPENING PERIODS (store-local weekday)
// --------------------------------------------------
func (p *PostgresProvider) GetTodayHours(ctx context.Context, mode Mode) (TodayHours, error) {
	weekday := int(time.Now().In(p.loc).Weekday())

	rows, err := p.db.Query(ctx, `
		SELECT open_minute, close_minute
		FROM opening_hours
		WHERE day_of_week = $1 AND mode = $2
		ORDER BY open_minute
	`, weekday, string(mode))
	if err != nil {
		return TodayHours{}, err
	}
	defer rows.Close()

	var hours TodayHours
	for rows.Next() {
		var period OpeningPeriod
		if err := rows.Scan(&period.OpenMinute, &period.CloseMinute); err != nil {
			return TodayHours{}, err
		}
		hours.Periods = append(hours.Periods, period)
	}
	if err := rows.Err(); err != nil {
		return TodayHours{}, err
	}

	hours.IsOpen = len(hours.Periods) > 0
	return hours, nil
}

// --------------------------------------------------
// LEAD TIMES (single config row)
// --------------------------------------------------
func (p *PostgresProvider) GetLeadTimes(ctx context.Context) (LeadTimes, error) {
	var lt LeadTimes

	err := p.db.QueryRow(ctx, `
		SELECT collection_lead_minutes, delivery_lead_minutes,
		       collection_buffer_minutes, delivery_buffer_minutes
		FROM store_config
		LIMIT 1
	`).Scan(
		&lt.CollectionLeadMinutes, &lt.DeliveryLeadMinutes,
		&lt.CollectionBufferMinutes, &lt.DeliveryBufferMinutes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return LeadTimes{}, errors.New("store config missing")
		}
		return LeadTimes{}, err
	}

	return lt, nil
}
