package repositories

import (
	"context"
	"database/sql"
	"errors"

	intconfig "backoffice/internal/config"
	"backoffice/internal/domain/models"
)

type SettingsRepository struct {
	DB *sql.DB
}

func (r SettingsRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetAgencySettings reads the first settings row; without one the
// defaults apply.
func (r SettingsRepository) GetAgencySettings(ctx context.Context) (models.AgencySettings, error) {
	var s models.AgencySettings
	err := r.db().QueryRowContext(ctx, `
		SELECT company_name,
		       COALESCE(currency_symbol,''),
		       COALESCE(address,''),
		       COALESCE(phone,''),
		       COALESCE(email,''),
		       COALESCE(footer_note,'')
		FROM agency_settings
		ORDER BY id ASC LIMIT 1`).Scan(
		&s.CompanyName,
		&s.CurrencySymbol,
		&s.Address,
		&s.Phone,
		&s.Email,
		&s.FooterNote,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultAgencySettings(), nil
	}
	if err != nil {
		return models.AgencySettings{}, storeErr("get agency settings", "agency settings", err)
	}
	if s.CurrencySymbol == "" {
		s.CurrencySymbol = models.DefaultAgencySettings().CurrencySymbol
	}
	return s, nil
}
