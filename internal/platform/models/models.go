package models

type Vendor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Timezone  string `json:"timezone,omitempty"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`
	DeletedAt *int64 `json:"deleted_at,omitempty"`
}

// VendorLocation maps a provider-scoped external location id to a vendor.
type VendorLocation struct {
	ID         string `json:"id"`
	VendorID   string `json:"vendor_id"`
	Provider   string `json:"provider"`
	ExternalID string `json:"external_id"`
	Name       string `json:"name"`
	CreatedAt  int64  `json:"created_at"`
	UpdatedAt  int64  `json:"updated_at"`
}

// ProviderIntegration holds per-environment provider credentials for a vendor.
type ProviderIntegration struct {
	ID           string `json:"id"`
	VendorID     string `json:"vendor_id"`
	Provider     string `json:"provider"`
	Environment  string `json:"environment"` // production, sandbox
	AccessToken  string `json:"-"`
	RefreshToken string `json:"-"`
	MerchantID   string `json:"merchant_id,omitempty"`
	Status       string `json:"status"` // active, revoked
	CreatedAt    int64  `json:"created_at"`
	UpdatedAt    int64  `json:"updated_at"`
}
