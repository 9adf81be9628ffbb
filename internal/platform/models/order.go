package models

// PosOrder is the reconciled order record. At most one row exists per
// (provider, vendor_id, vendor_location_id, external_order_id); reconciliation
// upserts into that identity, never appends.
type PosOrder struct {
	ID               string `json:"id"`
	Provider         string `json:"provider"`
	VendorID         string `json:"vendor_id"`
	VendorLocationID string `json:"vendor_location_id"`
	ExternalOrderID  string `json:"external_order_id"`
	Status           string `json:"status"` // open, closed, canceled, draft
	Source           string `json:"source"`
	OrderJSON        string `json:"order_json"`
	CreatedAt        int64  `json:"created_at"`
	UpdatedAt        int64  `json:"updated_at"`
}

// KitchenTicket is the display-facing entity. Shortcodes are unique among
// active tickets at the same location; a dead ticket's code is reusable.
type KitchenTicket struct {
	ID         string `json:"id"`
	PosOrderID string `json:"pos_order_id"`
	LocationID string `json:"location_id"`
	Shortcode  string `json:"shortcode"`
	Status     string `json:"status"` // active, dead
	PlacedAt   int64  `json:"placed_at"`
	ClosedAt   *int64 `json:"closed_at,omitempty"`
}

const (
	TicketStatusActive = "active"
	TicketStatusDead   = "dead"
)

// WebhookEventReceipt records an admitted event for dedup. Processed is set
// only after a fully successful run, so a redelivered event that failed
// mid-flight is reprocessed rather than classified as a duplicate.
type WebhookEventReceipt struct {
	ID         string `json:"id"`
	Provider   string `json:"provider"`
	EventID    string `json:"event_id"`
	EventType  string `json:"event_type"`
	ObjectID   string `json:"object_id"`
	Processed  bool   `json:"processed"`
	ReceivedAt int64  `json:"received_at"`
}
