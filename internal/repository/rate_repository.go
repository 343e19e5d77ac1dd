package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

// RateRepository persists the currency rate table. It satisfies
// currency.Store.
type RateRepository struct {
	db     DBTX
	logger *zap.Logger
}

func NewRateRepository(db DBTX, logger *zap.Logger) *RateRepository {
	return &RateRepository{
		db:     db,
		logger: logger,
	}
}

func (r *RateRepository) LoadRates(ctx context.Context) (map[string]float64, error) {
	query := squirrel.Select("code", "rate").From("currency_rates")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rates := make(map[string]float64)
	for rows.Next() {
		var code string
		var rate float64
		if err := rows.Scan(&code, &rate); err != nil {
			return nil, err
		}
		rates[code] = rate
	}

	return rates, rows.Err()
}

// SaveRates upserts the whole table in one statement, so the stored rates
// are never left half-written.
func (r *RateRepository) SaveRates(ctx context.Context, rates map[string]float64) error {
	if len(rates) == 0 {
		return nil
	}

	query := squirrel.Insert("currency_rates").
		Columns("code", "rate").
		Suffix("ON CONFLICT (code) DO UPDATE SET rate = EXCLUDED.rate").
		PlaceholderFormat(squirrel.Dollar)
	for code, rate := range rates {
		query = query.Values(code, rate)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
