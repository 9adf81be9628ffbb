package repositories

import (
	"database/sql"

	"posflow/internal/platform/models"
)

// Store bundles the repositories behind the method set the engine consumes.
// The engine packages declare their own interfaces; Store satisfies them.
type Store struct {
	Vendors      *VendorRepository
	Locations    *VendorLocationRepository
	Integrations *IntegrationRepository
	Orders       *PosOrderRepository
	Tickets      *KitchenTicketRepository
	Receipts     *EventReceiptRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		Vendors:      NewVendorRepository(db),
		Locations:    NewVendorLocationRepository(db),
		Integrations: NewIntegrationRepository(db),
		Orders:       NewPosOrderRepository(db),
		Tickets:      NewKitchenTicketRepository(db),
		Receipts:     NewEventReceiptRepository(db),
	}
}

func (s *Store) GetVendorLocationByExternalID(provider, externalLocationID string) (*models.VendorLocation, error) {
	return s.Locations.GetByExternalID(provider, externalLocationID)
}

func (s *Store) GetVendorByID(id string) (*models.Vendor, error) {
	return s.Vendors.GetByID(id)
}

func (s *Store) GetVendorIntegration(vendorID, provider, environment string) (*models.ProviderIntegration, error) {
	return s.Integrations.GetByVendor(vendorID, provider, environment)
}

func (s *Store) UpsertPosOrder(order *models.PosOrder) (string, error) {
	return s.Orders.Upsert(order)
}

func (s *Store) GetTicketByPosOrderID(posOrderID string) (*models.KitchenTicket, error) {
	return s.Tickets.GetByPosOrderID(posOrderID)
}

func (s *Store) ActiveShortcodes(locationID string) ([]string, error) {
	return s.Tickets.ActiveShortcodes(locationID)
}

func (s *Store) CreateTicket(ticket *models.KitchenTicket) error {
	return s.Tickets.Create(ticket)
}

func (s *Store) MarkTicketDead(posOrderID, locationID string) (bool, error) {
	return s.Tickets.MarkDead(posOrderID, locationID)
}

func (s *Store) ReceiveEvent(receipt *models.WebhookEventReceipt) (bool, error) {
	return s.Receipts.Receive(receipt)
}

func (s *Store) MarkEventProcessed(provider, eventID string) error {
	return s.Receipts.MarkProcessed(provider, eventID)
}
