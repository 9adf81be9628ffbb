package repositories

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"posflow/internal/platform/models"
)

type PosOrderRepository struct {
	db *sql.DB
}

func NewPosOrderRepository(db *sql.DB) *PosOrderRepository {
	return &PosOrderRepository{db: db}
}

// Upsert inserts or updates the row identified by
// (provider, vendor_id, vendor_location_id, external_order_id) and returns its
// id. The conflict clause is the sole source of mutual exclusion for
// concurrent events on the same order; callers hold no locks.
func (r *PosOrderRepository) Upsert(order *models.PosOrder) (string, error) {
	now := time.Now().Unix()
	if order.ID == "" {
		order.ID = "ord_" + uuid.New().String()
	}

	_, err := r.db.Exec(`
		INSERT INTO pos_orders (id, provider, vendor_id, vendor_location_id, external_order_id, status, source, order_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(provider, vendor_id, vendor_location_id, external_order_id)
		DO UPDATE SET status = excluded.status, source = excluded.source, order_json = excluded.order_json, updated_at = excluded.updated_at
	`, order.ID, order.Provider, order.VendorID, order.VendorLocationID, order.ExternalOrderID, order.Status, order.Source, order.OrderJSON, now, now)
	if err != nil {
		return "", err
	}

	// The insert id is discarded on conflict, so read the surviving row's id.
	var id string
	err = r.db.QueryRow(`
		SELECT id FROM pos_orders
		WHERE provider = ? AND vendor_id = ? AND vendor_location_id = ? AND external_order_id = ?
	`, order.Provider, order.VendorID, order.VendorLocationID, order.ExternalOrderID).Scan(&id)
	if err != nil {
		return "", err
	}

	order.ID = id
	return id, nil
}

func (r *PosOrderRepository) GetByID(id string) (*models.PosOrder, error) {
	order := &models.PosOrder{}
	err := r.db.QueryRow(`
		SELECT id, provider, vendor_id, vendor_location_id, external_order_id, status, source, order_json, created_at, updated_at
		FROM pos_orders WHERE id = ?
	`, id).Scan(&order.ID, &order.Provider, &order.VendorID, &order.VendorLocationID, &order.ExternalOrderID, &order.Status, &order.Source, &order.OrderJSON, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return order, nil
}

func (r *PosOrderRepository) CountByIdentity(provider, vendorID, vendorLocationID, externalOrderID string) (int, error) {
	var n int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM pos_orders
		WHERE provider = ? AND vendor_id = ? AND vendor_location_id = ? AND external_order_id = ?
	`, provider, vendorID, vendorLocationID, externalOrderID).Scan(&n)
	return n, err
}
