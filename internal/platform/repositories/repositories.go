package repositories

import (
	"database/sql"

	"posflow/internal/platform/models"
)

type VendorRepository struct {
	db *sql.DB
}

func NewVendorRepository(db *sql.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

func (r *VendorRepository) GetByID(id string) (*models.Vendor, error) {
	vendor := &models.Vendor{}
	err := r.db.QueryRow(`
		SELECT id, name, timezone, status, created_at, updated_at, deleted_at
		FROM vendors WHERE id = ?
	`, id).Scan(&vendor.ID, &vendor.Name, &vendor.Timezone, &vendor.Status, &vendor.CreatedAt, &vendor.UpdatedAt, &vendor.DeletedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return vendor, nil
}

type VendorLocationRepository struct {
	db *sql.DB
}

func NewVendorLocationRepository(db *sql.DB) *VendorLocationRepository {
	return &VendorLocationRepository{db: db}
}

func (r *VendorLocationRepository) GetByExternalID(provider, externalID string) (*models.VendorLocation, error) {
	loc := &models.VendorLocation{}
	err := r.db.QueryRow(`
		SELECT id, vendor_id, provider, external_id, name, created_at, updated_at
		FROM vendor_locations WHERE provider = ? AND external_id = ?
	`, provider, externalID).Scan(&loc.ID, &loc.VendorID, &loc.Provider, &loc.ExternalID, &loc.Name, &loc.CreatedAt, &loc.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return loc, nil
}

type IntegrationRepository struct {
	db *sql.DB
}

func NewIntegrationRepository(db *sql.DB) *IntegrationRepository {
	return &IntegrationRepository{db: db}
}

func (r *IntegrationRepository) GetByVendor(vendorID, provider, environment string) (*models.ProviderIntegration, error) {
	integ := &models.ProviderIntegration{}
	err := r.db.QueryRow(`
		SELECT id, vendor_id, provider, environment, access_token, refresh_token, merchant_id, status, created_at, updated_at
		FROM provider_integrations
		WHERE vendor_id = ? AND provider = ? AND environment = ? AND status = 'active'
	`, vendorID, provider, environment).Scan(&integ.ID, &integ.VendorID, &integ.Provider, &integ.Environment, &integ.AccessToken, &integ.RefreshToken, &integ.MerchantID, &integ.Status, &integ.CreatedAt, &integ.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return integ, nil
}
