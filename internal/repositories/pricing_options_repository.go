package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	intconfig "backoffice/internal/config"
	"backoffice/internal/domain"
	"backoffice/internal/domain/models"
)

// PricingOptionsRepository stores the per-itinerary pricing blob as JSON.
type PricingOptionsRepository struct {
	DB *sql.DB
}

func (r PricingOptionsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetPricingOptions returns the stored options and whether a row existed.
func (r PricingOptionsRepository) GetPricingOptions(ctx context.Context, itineraryID int64) (models.PricingOptions, bool, error) {
	var raw []byte
	err := r.db().QueryRowContext(ctx,
		`SELECT options FROM itinerary_pricing_options WHERE itinerary_id=? LIMIT 1`, itineraryID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.PricingOptions{}, false, nil
	}
	if err != nil {
		return models.PricingOptions{}, false, storeErr("get pricing options", "pricing options", err)
	}

	var opts models.PricingOptions
	if err := json.Unmarshal(raw, &opts); err != nil {
		return models.PricingOptions{}, false, domain.InternalError{Msg: "stored pricing options are unreadable", Err: err}
	}
	return opts, true, nil
}

func (r PricingOptionsRepository) SavePricingOptions(ctx context.Context, itineraryID int64, opts models.PricingOptions) error {
	raw, err := json.Marshal(opts)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	_, err = r.db().ExecContext(ctx, `
		INSERT INTO itinerary_pricing_options (itinerary_id, options) VALUES (?,?)
		ON DUPLICATE KEY UPDATE options=VALUES(options)`, itineraryID, string(raw))
	return storeErr("save pricing options", "pricing options", err)
}
